package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

// Sync returns the caller's profile, creating it on first sight and refreshing
// fields the token carries when they changed. Empty claims never blank out stored values.
func (s *Service) Sync(ctx context.Context, id Identity) (User, error) {
	if strings.TrimSpace(id.UserID) == "" {
		return User{}, errors.New("user id is required")
	}
	now := s.now()

	user, err := s.Repo.GetByID(ctx, id.UserID)
	switch {
	case errors.Is(err, ErrNotFound):
		user = User{ID: id.UserID, CreatedAt: now}
	case err != nil:
		return User{}, fmt.Errorf("load user: %w", err)
	}

	changed := user.UpdatedAt.IsZero()
	merge := func(dst *string, v string) {
		v = strings.TrimSpace(v)
		if v != "" && v != *dst {
			*dst = v
			changed = true
		}
	}
	merge(&user.Email, id.Email)
	merge(&user.FullName, id.Name)
	merge(&user.PictureURL, id.PictureURL)
	if !changed {
		return user, nil
	}

	user.UpdatedAt = now
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, fmt.Errorf("upsert user: %w", err)
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
