package applications

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores application records in memory.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Record)}
}

func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = cloneRecord(rec)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (r *MemoryRepo) FindByUserAndJob(ctx context.Context, userID, jobID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.byID {
		if rec.UserID == userID && rec.JobID == jobID {
			return cloneRecord(rec), nil
		}
	}
	return Record{}, ErrNotFound
}

// ListByUser returns a user's records, most recently updated first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Record, 0)
	for _, rec := range r.byID {
		if rec.UserID == userID {
			out = append(out, cloneRecord(rec))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Update merges ch into the stored record under the write lock.
func (r *MemoryRepo) Update(ctx context.Context, id string, ch Changes) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	rec = ch.Merge(rec)
	r.byID[id] = rec
	return cloneRecord(rec), nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func cloneRecord(rec Record) Record {
	if rec.AppliedDate != nil {
		t := *rec.AppliedDate
		rec.AppliedDate = &t
	}
	if rec.ResponseDate != nil {
		t := *rec.ResponseDate
		rec.ResponseDate = &t
	}
	return rec
}

var _ Repo = (*MemoryRepo)(nil)
