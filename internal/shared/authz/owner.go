package authz

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller does not own the resource.
var ErrForbidden = errors.New("forbidden")

// RequireOwner reports ErrForbidden unless callerID owns the resource.
// An empty caller never owns anything.
func RequireOwner(ownerID, callerID string) error {
	caller := strings.TrimSpace(callerID)
	if caller == "" || ownerID != caller {
		return ErrForbidden
	}
	return nil
}
