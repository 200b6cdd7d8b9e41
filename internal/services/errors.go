package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gentil/internal/providers"
)

var (
	ErrUnauthenticated    = errors.New("no authenticated user")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// ValidationError carries per-field messages for a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}

// BestEffort runs fn and logs its failure. The error is returned so the
// caller can decide whether to surface or drop it.
func BestEffort(logger providers.Logger, op string, fn func() error) error {
	err := fn()
	if err != nil {
		logger.Warnf(providers.TypeApp, "%s failed: %s", op, err)
	}
	return err
}
