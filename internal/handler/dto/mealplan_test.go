package dto

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, err := ParseDate("2025-03-01")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// Empty means "not provided"; required-field checks live downstream.
	got, err = ParseDate("")
	if err != nil || !got.IsZero() {
		t.Fatalf("expected zero time and nil error, got %v, %v", got, err)
	}

	if _, err := ParseDate("03/01/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestParseOptionalDate(t *testing.T) {
	t.Parallel()

	if got, err := ParseOptionalDate(nil); err != nil || got != nil {
		t.Fatalf("expected nil, nil for nil input, got %v, %v", got, err)
	}

	empty := ""
	if got, err := ParseOptionalDate(&empty); err != nil || got != nil {
		t.Fatalf("expected nil, nil for empty input, got %v, %v", got, err)
	}

	raw := "2025-03-15"
	got, err := ParseOptionalDate(&raw)
	if err != nil || got == nil {
		t.Fatalf("ParseOptionalDate failed: %v", err)
	}
	if got.Format("2006-01-02") != raw {
		t.Fatalf("expected %s, got %v", raw, got)
	}

	bad := "soon"
	if _, err := ParseOptionalDate(&bad); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
