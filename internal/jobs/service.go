package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobtracker-backend/internal/shared/authz"
	"jobtracker-backend/internal/shared/metrics"
)

// Service contains business logic for job postings.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service backed by repo.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

// Create validates input and stores a new posting owned by userID.
func (s *Service) Create(ctx context.Context, userID string, in Input) (Job, error) {
	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return Job{}, err
	}
	now := s.now()
	job := Job{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		Salary:      in.Salary,
		Type:        in.Type,
		Experience:  in.Experience,
		Skills:      in.Skills,
		Description: in.Description,
		PostedBy:    userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, fmt.Errorf("create job: %w", err)
	}
	metrics.IncJobCreated()
	return job, nil
}

// Get returns a posting by ID. Postings are readable by any caller.
func (s *Service) Get(ctx context.Context, jobID string) (Job, error) {
	if strings.TrimSpace(jobID) == "" {
		return Job{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, jobID)
}

// List returns postings matching filter.
func (s *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]Job, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Type = strings.TrimSpace(filter.Type)
	filter.Location = strings.TrimSpace(filter.Location)
	return s.Repo.List(ctx, filter, limit, offset)
}

// ListByIDs resolves a set of postings for joins.
func (s *Service) ListByIDs(ctx context.Context, jobIDs []string) ([]Job, error) {
	return s.Repo.ListByIDs(ctx, jobIDs)
}

// Update replaces the editable fields of a posting owned by userID.
func (s *Service) Update(ctx context.Context, userID, jobID string, in Input) (Job, error) {
	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return Job{}, err
	}
	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return Job{}, err
	}
	if err := authz.RequireOwner(job.PostedBy, userID); err != nil {
		return Job{}, err
	}
	job.Title = in.Title
	job.Company = in.Company
	job.Location = in.Location
	job.Salary = in.Salary
	job.Type = in.Type
	job.Experience = in.Experience
	job.Skills = in.Skills
	job.Description = in.Description
	job.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, job); err != nil {
		return Job{}, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// Delete removes a posting owned by userID. Applications referencing it are left alone.
func (s *Service) Delete(ctx context.Context, userID, jobID string) error {
	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if err := authz.RequireOwner(job.PostedBy, userID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, jobID); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func normalizeInput(in Input) Input {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Location = strings.TrimSpace(in.Location)
	in.Salary = strings.TrimSpace(in.Salary)
	in.Type = strings.TrimSpace(in.Type)
	in.Experience = strings.TrimSpace(in.Experience)
	in.Description = strings.TrimSpace(in.Description)

	skills := make([]string, 0, len(in.Skills))
	seen := make(map[string]struct{}, len(in.Skills))
	for _, skill := range in.Skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		skills = append(skills, skill)
	}
	in.Skills = skills
	return in
}

func validateInput(in Input) error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Company == "" {
		return fmt.Errorf("%w: company is required", ErrInvalidInput)
	}
	return nil
}
