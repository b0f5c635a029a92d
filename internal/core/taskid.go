package core

import (
	"io"
	"math/rand/v2"

	"github.com/google/uuid"
)

// TaskIDGenerator produces identifiers for newly created tasks.
type TaskIDGenerator interface {
	GenerateID() string
}

// uuidTaskIDGenerator implements TaskIDGenerator with random (version 4)
// UUIDs drawn from a non-cryptographic source.
type uuidTaskIDGenerator struct {
	rand io.Reader
}

// NewTaskIDGenerator creates a TaskIDGenerator that reads its randomness
// from r. Pass nil to use math/rand/v2.
func NewTaskIDGenerator(r io.Reader) TaskIDGenerator {
	if r == nil {
		r = mathRandReader{}
	}
	return &uuidTaskIDGenerator{rand: r}
}

// GenerateID returns a UUID v4 string such as
// 6b09e9c0-d100-414a-b68c-99886a6efd78. If the configured reader fails,
// the default source is used instead so callers never see an error.
func (g *uuidTaskIDGenerator) GenerateID() string {
	id, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		id, _ = uuid.NewRandomFromReader(mathRandReader{})
	}
	return id.String()
}

// mathRandReader adapts the math/rand/v2 global generator to io.Reader.
type mathRandReader struct{}

func (mathRandReader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); {
		v := rand.Uint64()
		for j := 0; j < 8 && i < len(p); j++ {
			p[i] = byte(v)
			v >>= 8
			i++
		}
	}
	return len(p), nil
}
