package analytics

import (
	"errors"
	"testing"
	"time"
)

func TestParseRange(t *testing.T) {
	now := time.Date(2024, 8, 15, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		tag   string
		start *time.Time
	}{
		{tag: "7d", start: ptr(now.AddDate(0, 0, -7))},
		{tag: "", start: ptr(now.AddDate(0, 0, -30))},
		{tag: "30D", start: ptr(now.AddDate(0, 0, -30))},
		{tag: "90d", start: ptr(now.AddDate(0, 0, -90))},
		{tag: "ytd", start: ptr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
		{tag: "all", start: nil},
	}
	for _, tc := range cases {
		r, err := ParseRange(tc.tag, now)
		if err != nil {
			t.Fatalf("ParseRange(%q): %v", tc.tag, err)
		}
		if (r.Start == nil) != (tc.start == nil) {
			t.Fatalf("ParseRange(%q) start=%v, want %v", tc.tag, r.Start, tc.start)
		}
		if r.Start != nil && !r.Start.Equal(*tc.start) {
			t.Fatalf("ParseRange(%q) start=%v, want %v", tc.tag, *r.Start, *tc.start)
		}
	}

	if _, err := ParseRange("2w", now); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestDateRangeContains(t *testing.T) {
	now := time.Date(2024, 8, 15, 10, 0, 0, 0, time.UTC)
	r, _ := ParseRange("7d", now)
	if !r.Contains(now.AddDate(0, 0, -7)) {
		t.Fatalf("lower bound should be inclusive")
	}
	if r.Contains(now.AddDate(0, 0, -8)) {
		t.Fatalf("8 days ago should be outside 7d")
	}
	all, _ := ParseRange("all", now)
	if !all.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("all should have no lower bound")
	}
}

func ptr(t time.Time) *time.Time { return &t }
