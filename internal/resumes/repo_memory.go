package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores résumés in memory.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, res Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[res.ID] = res
	return nil
}

func (r *MemoryRepo) GetCurrentByUser(ctx context.Context, userID string) (Resume, error) {
	list, err := r.ListByUser(ctx, userID, 1, 0)
	if err != nil {
		return Resume{}, err
	}
	if len(list) == 0 {
		return Resume{}, ErrNotFound
	}
	return list[0], nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.byID[resumeID]
	if !ok || res.UserID != userID {
		return Resume{}, ErrNotFound
	}
	return res, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	var out []Resume
	for _, res := range r.byID {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return []Resume{}, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

// UpdateExtraction records the extracted text key once; later calls are no-ops.
func (r *MemoryRepo) UpdateExtraction(ctx context.Context, userID, resumeID, extractedKey string, extractedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.byID[resumeID]
	if !ok || res.UserID != userID {
		return ErrNotFound
	}
	if res.ExtractedTextKey != "" {
		return nil
	}
	res.ExtractedTextKey = extractedKey
	at := extractedAt
	res.ExtractedAt = &at
	r.byID[resumeID] = res
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
