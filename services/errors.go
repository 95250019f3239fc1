package services

import (
	"errors"
	"fmt"

	"drivehub/repository"
)

// Error taxonomy surfaced to the transport layer. Repository and
// collaborator errors that do not map onto one of these bubble up as
// generic failures.
var (
	ErrNotFound         = repository.ErrNotFound
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUpstreamFailure  = errors.New("upstream failure")
)

// upstream wraps a collaborator error so callers can classify it while the
// cause stays visible in logs.
func upstream(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUpstreamFailure, op, err)
}
