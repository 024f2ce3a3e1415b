package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrJobUnavailable       = errors.New("job is no longer available")
	ErrMissingResume        = errors.New("upload resume to apply")
	ErrDuplicateApplication = errors.New("already applied")
	ErrForbidden            = errors.New("not allowed for this company")
	ErrStatusConflict       = errors.New("application status changed concurrently")
	ErrCompanyExists        = errors.New("company already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUpstream             = errors.New("upstream service failed")
)

// ValidationError é devolvido antes de qualquer escrita quando a entrada é inválida.
type ValidationError struct {
	Msg string
	Err error
}

func (e *ValidationError) Error() string { return e.Msg }
func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func upstream(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUpstream, op, err)
}
