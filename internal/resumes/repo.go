package resumes

import (
	"context"
	"time"
)

// Repo defines persistence operations for résumés. Reads are scoped to the owner.
type Repo interface {
	Create(ctx context.Context, r Resume) error
	GetCurrentByUser(ctx context.Context, userID string) (Resume, error)
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	UpdateExtraction(ctx context.Context, userID, resumeID, extractedKey string, extractedAt time.Time) error
}
