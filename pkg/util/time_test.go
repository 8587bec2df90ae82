package util

import (
	"testing"
	"time"
)

func TestDateAtOffset(t *testing.T) {
	date := time.Date(2026, time.September, 1, 15, 4, 5, 0, time.UTC)

	resolved := DateAtOffset(date, 28800)

	expected := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	if !resolved.Equal(expected) {
		t.Fatalf("expected %v, got %v", expected, resolved)
	}
}
