package applications

import "context"

// Repo defines persistence operations for application records.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	FindByUserAndJob(ctx context.Context, userID, jobID string) (Record, error)
	ListByUser(ctx context.Context, userID string) ([]Record, error)
	Update(ctx context.Context, id string, ch Changes) (Record, error)
	Delete(ctx context.Context, id string) error
}
