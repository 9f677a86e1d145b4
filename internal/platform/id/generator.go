package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"
)

// Generator creates opaque ids used to correlate requests across logs.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	size int
}

// NewRandomGenerator returns hex ids of 2*size characters. size <= 0 uses 8 bytes.
func NewRandomGenerator(size int) *RandomGenerator {
	if size <= 0 {
		size = 8
	}
	return &RandomGenerator{size: size}
}

func (g *RandomGenerator) NewID() (string, error) {
	size := 8
	if g != nil && g.size > 0 {
		size = g.size
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// RequestID keeps a well-formed incoming id, otherwise generates a new one.
func RequestID(gen Generator, incoming string) string {
	if incoming != "" && requestIDPattern.MatchString(incoming) {
		return incoming
	}
	if gen != nil {
		if value, err := gen.NewID(); err == nil {
			return value
		}
	}
	return hex.EncodeToString([]byte(time.Now().UTC().Format("20060102150405.000000")))
}
