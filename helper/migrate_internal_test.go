package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply_UnknownAction(t *testing.T) {
	err := apply(nil, "sideways")

	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Contains(t, err.Error(), "sideways")
}
