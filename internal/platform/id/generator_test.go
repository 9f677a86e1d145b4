package id

import (
	"errors"
	"strings"
	"testing"
)

type failingGenerator struct{}

func (failingGenerator) NewID() (string, error) { return "", errors.New("entropy exhausted") }

func TestRandomGenerator_Length(t *testing.T) {
	t.Parallel()

	value, err := NewRandomGenerator(0).NewID()
	if err != nil {
		t.Fatalf("NewID error: %v", err)
	}
	if len(value) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", value)
	}

	value, err = NewRandomGenerator(16).NewID()
	if err != nil {
		t.Fatalf("NewID error: %v", err)
	}
	if len(value) != 32 {
		t.Fatalf("expected 32 hex chars, got %q", value)
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	gen := NewRandomGenerator(8)
	if got := RequestID(gen, "abc-123_X"); got != "abc-123_X" {
		t.Fatalf("expected incoming id to be kept, got %q", got)
	}
	if got := RequestID(gen, "bad id!"); got == "bad id!" || len(got) != 16 {
		t.Fatalf("expected generated id for malformed input, got %q", got)
	}
	if got := RequestID(gen, strings.Repeat("a", 65)); len(got) != 16 {
		t.Fatalf("expected generated id for oversized input, got %q", got)
	}
	if got := RequestID(failingGenerator{}, ""); got == "" {
		t.Fatalf("expected fallback id when generator fails")
	}
}
