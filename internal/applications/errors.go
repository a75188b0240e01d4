package applications

import (
	"errors"

	"jobtracker-backend/internal/shared/authz"
)

var (
	ErrNotFound      = errors.New("application not found")
	ErrJobNotFound   = errors.New("job not found")
	ErrDuplicate     = errors.New("application already exists for this job")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = authz.ErrForbidden
)
