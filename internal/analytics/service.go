package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"jobtracker-backend/internal/applications"
)

const recentLimit = 5

// RecordSource loads a user's records joined with their jobs.
type RecordSource interface {
	ListJoined(ctx context.Context, userID string) ([]applications.JoinedRecord, error)
}

// Dashboard is the landing-page view: all-time metrics plus recent activity.
type Dashboard struct {
	Metrics            Metrics
	RecentApplications []applications.JoinedRecord
}

// Service loads records fresh per call and summarizes them.
type Service struct {
	Records RecordSource
	Now     func() time.Time
}

// NewService constructs a Service.
func NewService(records RecordSource) *Service {
	return &Service{Records: records, Now: func() time.Time { return time.Now().UTC() }}
}

// Analytics summarizes the user's records created inside the tagged range.
func (s *Service) Analytics(ctx context.Context, userID, rangeTag string) (Summary, error) {
	now := s.now()
	window, err := ParseRange(rangeTag, now)
	if err != nil {
		return Summary{}, err
	}
	records, err := s.Records.ListJoined(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("load records: %w", err)
	}
	return Summarize(records, window, now), nil
}

// Dashboard returns all-time metrics and the most recently updated records.
func (s *Service) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	now := s.now()
	records, err := s.Records.ListJoined(ctx, userID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load records: %w", err)
	}
	summary := Summarize(records, DateRange{Tag: RangeAll, End: now}, now)

	recent := append([]applications.JoinedRecord(nil), records...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].UpdatedAt.After(recent[j].UpdatedAt)
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	return Dashboard{Metrics: summary.Metrics, RecentApplications: recent}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
