// Package code issues booking reference codes of the form BK followed by six characters from A-Z0-9.
package code

//go:generate go run go.uber.org/mock/mockgen -source=./code.go -destination=./mocks/code_mock.go -package=mocks

import (
	"crypto/rand"
	"fmt"
	"io"
	"regexp"
)

const (
	Prefix   = "BK"
	Length   = 6
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// bytes at or above this bound are rejected so every symbol is equally likely
	unbiasedBound = 256 - 256%len(alphabet)
)

var pattern = regexp.MustCompile(`^BK[A-Z0-9]{6}$`)

func Valid(value string) bool {
	return pattern.MatchString(value)
}

type Generator interface {
	Generate() (string, error)
}

type randomGenerator struct {
	source io.Reader
}

func New() Generator {
	return &randomGenerator{source: rand.Reader}
}

// NewFromReader draws randomness from source instead of crypto/rand.
func NewFromReader(source io.Reader) Generator {
	return &randomGenerator{source: source}
}

func (g *randomGenerator) Generate() (string, error) {
	out := make([]byte, 0, len(Prefix)+Length)
	out = append(out, Prefix...)

	buf := make([]byte, Length)

	for len(out) < len(Prefix)+Length {
		if _, err := io.ReadFull(g.source, buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}

		for _, b := range buf {
			if int(b) >= unbiasedBound {
				continue
			}

			out = append(out, alphabet[int(b)%len(alphabet)])

			if len(out) == len(Prefix)+Length {
				break
			}
		}
	}

	return string(out), nil
}
