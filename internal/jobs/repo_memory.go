package jobs

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo stores jobs in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Job
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Job)}
}

func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[job.ID] = cloneJob(job)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.byID[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return cloneJob(job), nil
}

// ListByIDs returns the jobs that exist among jobIDs; unknown IDs are skipped.
func (r *MemoryRepo) ListByIDs(ctx context.Context, jobIDs []string) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Job, 0, len(jobIDs))
	seen := make(map[string]struct{}, len(jobIDs))
	for _, id := range jobIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if job, ok := r.byID[id]; ok {
			out = append(out, cloneJob(job))
		}
	}
	return out, nil
}

// List returns matching jobs newest first.
func (r *MemoryRepo) List(ctx context.Context, filter Filter, limit, offset int) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	matched := make([]Job, 0, len(r.byID))
	for _, job := range r.byID {
		if matches(job, filter) {
			matched = append(matched, cloneJob(job))
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return []Job{}, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], nil
}

func (r *MemoryRepo) Update(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[job.ID]; !ok {
		return ErrNotFound
	}
	r.byID[job.ID] = cloneJob(job)
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[jobID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, jobID)
	return nil
}

func matches(job Job, filter Filter) bool {
	if filter.PostedBy != "" && job.PostedBy != filter.PostedBy {
		return false
	}
	if filter.Type != "" && !strings.EqualFold(job.Type, filter.Type) {
		return false
	}
	if filter.Location != "" && !containsFold(job.Location, filter.Location) {
		return false
	}
	if filter.Search != "" {
		if !containsFold(job.Title, filter.Search) &&
			!containsFold(job.Company, filter.Search) &&
			!containsFold(job.Description, filter.Search) {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func cloneJob(job Job) Job {
	job.Skills = append([]string(nil), job.Skills...)
	return job
}

var _ Repo = (*MemoryRepo)(nil)
