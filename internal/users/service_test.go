package users

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSyncCreatesThenRefreshes(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return first }
	ctx := context.Background()

	user, err := svc.Sync(ctx, Identity{UserID: "u1", Email: "a@example.com", Name: "Ada"})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !user.CreatedAt.Equal(first) || user.FullName != "Ada" {
		t.Fatalf("unexpected user %+v", user)
	}

	later := first.Add(time.Hour)
	svc.Now = func() time.Time { return later }

	user, err = svc.Sync(ctx, Identity{UserID: "u1"})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if user.Email != "a@example.com" || !user.UpdatedAt.Equal(first) {
		t.Fatalf("empty claims must not change the profile, got %+v", user)
	}

	user, err = svc.Sync(ctx, Identity{UserID: "u1", PictureURL: "https://img.example.com/a.png"})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !user.UpdatedAt.Equal(later) || !user.CreatedAt.Equal(first) {
		t.Fatalf("expected refresh at %v keeping createdAt %v, got %+v", later, first, user)
	}
}

func TestPGRepoUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO users").
		WithArgs("u1", "", "Ada", nil, now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := &PGRepo{DB: db}
	if err := repo.Upsert(context.Background(), User{ID: "u1", FullName: "Ada", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestMemoryUpsertKeepsStoredFields(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.Upsert(ctx, User{ID: "u1", Email: "a@example.com", FullName: "Ada", CreatedAt: created, UpdatedAt: created}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	later := created.Add(time.Hour)
	if err := repo.Upsert(ctx, User{ID: "u1", PictureURL: "https://img.example.com/a.png", CreatedAt: later, UpdatedAt: later}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	user, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Email != "a@example.com" || user.FullName != "Ada" || user.PictureURL == "" {
		t.Fatalf("expected merged profile, got %+v", user)
	}
	if !user.CreatedAt.Equal(created) || !user.UpdatedAt.Equal(later) {
		t.Fatalf("unexpected timestamps %+v", user)
	}
}
