package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get player: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("pq: relation players does not exist")) {
		t.Fatalf("expected unrelated error to be ignored")
	}
}

func TestNullStringRoundTrip(t *testing.T) {
	if got := nullStringPtr(nullString(nil)); got != nil {
		t.Fatalf("expected nil, got %q", *got)
	}
	value := "https://cdn.example.com/p.png"
	if got := nullStringPtr(nullString(&value)); got == nil || *got != value {
		t.Fatalf("unexpected value: %v", got)
	}
}
