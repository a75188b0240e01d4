package jobs

import (
	"errors"

	"jobtracker-backend/internal/shared/authz"
)

var (
	ErrNotFound     = errors.New("job not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = authz.ErrForbidden
)
