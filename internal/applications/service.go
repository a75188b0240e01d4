package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobtracker-backend/internal/jobs"
	"jobtracker-backend/internal/shared/authz"
	"jobtracker-backend/internal/shared/metrics"
)

// JobLookup resolves job postings referenced by records.
type JobLookup interface {
	GetByID(ctx context.Context, jobID string) (jobs.Job, error)
	ListByIDs(ctx context.Context, jobIDs []string) ([]jobs.Job, error)
}

// Service implements the tracker operations over application records.
type Service struct {
	Repo Repo
	Jobs JobLookup
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, jobLookup JobLookup) *Service {
	return &Service{
		Repo: repo,
		Jobs: jobLookup,
		Now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create tracks jobID for userID. An empty initialStatus means saved; any other
// status is applied through the transition engine starting from saved.
func (s *Service) Create(ctx context.Context, userID, jobID, initialStatus string) (JoinedRecord, error) {
	jobID = strings.TrimSpace(jobID)
	if strings.TrimSpace(userID) == "" || jobID == "" {
		return JoinedRecord{}, fmt.Errorf("%w: jobId is required", ErrInvalidInput)
	}

	now := s.now()
	rec := Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		JobID:     jobID,
		Status:    StatusSaved,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if initialStatus != "" {
		ch, err := ApplyTransition(rec, initialStatus, now)
		if err != nil {
			return JoinedRecord{}, err
		}
		rec = ch.Merge(rec)
	}

	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return JoinedRecord{}, ErrJobNotFound
		}
		return JoinedRecord{}, fmt.Errorf("load job: %w", err)
	}

	if _, err := s.Repo.FindByUserAndJob(ctx, userID, jobID); err == nil {
		return JoinedRecord{}, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return JoinedRecord{}, fmt.Errorf("check duplicate: %w", err)
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		return JoinedRecord{}, fmt.Errorf("create application: %w", err)
	}
	metrics.IncApplicationCreated()
	if rec.Status != StatusSaved {
		metrics.IncStatusTransition(string(rec.Status))
	}
	return JoinedRecord{Record: rec, Job: summarize(job)}, nil
}

// ListJoined returns every record owned by userID with its job attached.
func (s *Service) ListJoined(ctx context.Context, userID string) ([]JoinedRecord, error) {
	recs, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return s.join(ctx, recs)
}

// List returns the user's records partitioned by status.
func (s *Service) List(ctx context.Context, userID string) (Board, error) {
	joined, err := s.ListJoined(ctx, userID)
	if err != nil {
		return Board{}, err
	}
	board := Board{
		Saved:        []JoinedRecord{},
		Applied:      []JoinedRecord{},
		Interviewing: []JoinedRecord{},
		Offer:        []JoinedRecord{},
		Rejected:     []JoinedRecord{},
	}
	for _, jr := range joined {
		switch jr.Status {
		case StatusSaved:
			board.Saved = append(board.Saved, jr)
		case StatusApplied:
			board.Applied = append(board.Applied, jr)
		case StatusInterviewing:
			board.Interviewing = append(board.Interviewing, jr)
		case StatusOffer:
			board.Offer = append(board.Offer, jr)
		case StatusRejected:
			board.Rejected = append(board.Rejected, jr)
		}
	}
	return board, nil
}

// Get returns one record owned by userID.
func (s *Service) Get(ctx context.Context, userID, id string) (JoinedRecord, error) {
	rec, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return JoinedRecord{}, err
	}
	return s.joinOne(ctx, rec)
}

// UpdateStatus moves a record to a new status.
func (s *Service) UpdateStatus(ctx context.Context, userID, id, status string) (JoinedRecord, error) {
	return s.Update(ctx, userID, id, Patch{Status: &status})
}

// Update applies a status change and scheduling fields in one write.
func (s *Service) Update(ctx context.Context, userID, id string, patch Patch) (JoinedRecord, error) {
	if patch.empty() {
		return JoinedRecord{}, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if patch.InterviewDate != nil {
		if err := validateInterviewDate(*patch.InterviewDate); err != nil {
			return JoinedRecord{}, err
		}
	}

	rec, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return JoinedRecord{}, err
	}

	now := s.now()
	ch := Changes{UpdatedAt: now}
	if patch.Status != nil {
		ch, err = ApplyTransition(rec, *patch.Status, now)
		if err != nil {
			return JoinedRecord{}, err
		}
	}
	ch.Notes = trimmed(patch.Notes)
	ch.InterviewDate = trimmed(patch.InterviewDate)
	ch.InterviewTime = trimmed(patch.InterviewTime)
	ch.InterviewType = trimmed(patch.InterviewType)
	ch.InterviewLocation = trimmed(patch.InterviewLocation)

	updated, err := s.Repo.Update(ctx, rec.ID, ch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return JoinedRecord{}, ErrNotFound
		}
		return JoinedRecord{}, fmt.Errorf("update application: %w", err)
	}
	if ch.Status != nil {
		metrics.IncStatusTransition(string(*ch.Status))
	}
	return s.joinOne(ctx, updated)
}

// Delete hard-deletes a record owned by userID. The referenced job is untouched.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	rec, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, rec.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete application: %w", err)
	}
	metrics.IncApplicationDeleted()
	return nil
}

func (s *Service) loadOwned(ctx context.Context, userID, id string) (Record, error) {
	if strings.TrimSpace(id) == "" {
		return Record{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("load application: %w", err)
	}
	if err := authz.RequireOwner(rec.UserID, userID); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) joinOne(ctx context.Context, rec Record) (JoinedRecord, error) {
	joined, err := s.join(ctx, []Record{rec})
	if err != nil {
		return JoinedRecord{}, err
	}
	return joined[0], nil
}

func (s *Service) join(ctx context.Context, recs []Record) ([]JoinedRecord, error) {
	out := make([]JoinedRecord, 0, len(recs))
	if len(recs) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	for _, rec := range recs {
		if _, ok := seen[rec.JobID]; ok {
			continue
		}
		seen[rec.JobID] = struct{}{}
		ids = append(ids, rec.JobID)
	}
	found, err := s.Jobs.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	byID := make(map[string]jobs.Job, len(found))
	for _, job := range found {
		byID[job.ID] = job
	}
	for _, rec := range recs {
		jr := JoinedRecord{Record: rec}
		if job, ok := byID[rec.JobID]; ok {
			jr.Job = summarize(job)
		}
		out = append(out, jr)
	}
	return out, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func summarize(job jobs.Job) *JobSummary {
	return &JobSummary{
		ID:       job.ID,
		Title:    job.Title,
		Company:  job.Company,
		Location: job.Location,
		Salary:   job.Salary,
		Type:     job.Type,
	}
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

// validateInterviewDate accepts an empty value (clears the field), a calendar
// date or an RFC 3339 timestamp.
func validateInterviewDate(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", raw); err == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, raw); err == nil {
		return nil
	}
	return fmt.Errorf("%w: interviewDate must be YYYY-MM-DD or RFC 3339", ErrInvalidInput)
}
