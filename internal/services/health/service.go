package health

import (
	"context"
	"database/sql"
	"time"

	"jobtracker-backend/internal/shared/storage/db"
)

const pingTimeout = 2 * time.Second

// Status is the health payload.
type Status struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
}

// Service reports liveness and database reachability.
type Service struct {
	DB *sql.DB
}

// NewService constructs a health service. database may be nil when running on in-memory repos.
func NewService(database *sql.DB) *Service {
	return &Service{DB: database}
}

// Status pings the database if one is configured. OK is false only when a
// configured database is unreachable.
func (s *Service) Status(ctx context.Context) Status {
	if s.DB == nil {
		return Status{OK: true, Database: "memory"}
	}
	if err := db.Ping(ctx, s.DB, pingTimeout); err != nil {
		return Status{OK: false, Database: "unreachable"}
	}
	return Status{OK: true, Database: "up"}
}
