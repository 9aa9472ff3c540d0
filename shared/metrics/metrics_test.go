package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	ObserveHTTP("/v1/bookings", "POST", 201, 20*time.Millisecond)
	assert.InDelta(t, 1, testutil.ToFloat64(httpRequests.WithLabelValues("/v1/bookings", "POST", "201")), 0)

	IncSubmission("booking", "succeeded")
	IncSubmission("booking", "succeeded")
	assert.InDelta(t, 2, testutil.ToFloat64(submissions.WithLabelValues("booking", "succeeded")), 0)

	before := testutil.ToFloat64(codeCollisions)
	IncCodeCollision()
	assert.InDelta(t, before+1, testutil.ToFloat64(codeCollisions), 0)

	IncEvent("coating.booking", nil)
	IncEvent("coating.booking", errors.New("broker down"))
	assert.InDelta(t, 1, testutil.ToFloat64(events.WithLabelValues("coating.booking", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(events.WithLabelValues("coating.booking", "error")), 0)
}
