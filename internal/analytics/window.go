package analytics

import (
	"fmt"
	"strings"
	"time"
)

// Range tags accepted by ParseRange.
const (
	Range7d  = "7d"
	Range30d = "30d"
	Range90d = "90d"
	RangeYTD = "ytd"
	RangeAll = "all"

	DefaultRange = Range30d
)

// DateRange bounds an aggregation window. A nil Start means no lower bound.
type DateRange struct {
	Tag   string
	Start *time.Time
	End   time.Time
}

// ParseRange resolves a relative range tag against now. An empty tag selects DefaultRange.
func ParseRange(tag string, now time.Time) (DateRange, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		tag = DefaultRange
	}

	var start time.Time
	switch tag {
	case Range7d:
		start = now.AddDate(0, 0, -7)
	case Range30d:
		start = now.AddDate(0, 0, -30)
	case Range90d:
		start = now.AddDate(0, 0, -90)
	case RangeYTD:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case RangeAll:
		return DateRange{Tag: tag, End: now}, nil
	default:
		return DateRange{}, fmt.Errorf("%w: %q (want 7d, 30d, 90d, ytd or all)", ErrInvalidRange, tag)
	}
	return DateRange{Tag: tag, Start: &start, End: now}, nil
}

// Contains reports whether t falls inside the window, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}
