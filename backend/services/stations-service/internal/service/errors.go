package service

import (
	"errors"
	"fmt"
	"strings"

	"stationhub/backend/services/stations-service/internal/models"
)

// Failure kinds surfaced by the station core. Callers match them with errors.Is.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrInvalidQuery     = errors.New("invalid query")
	ErrValidation       = errors.New("validation failed")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// InvalidQueryError names the listing parameter that could not be interpreted.
type InvalidQueryError struct {
	Param string
	Value string
	Cause string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query: %s=%q: %s", e.Param, e.Value, e.Cause)
}

// Is makes the error match ErrInvalidQuery.
func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// ValidationError lists the field constraints a payload violates.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes the error match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func storeUnavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
