// Package apperror defines the error kinds shared by every layer of the shop.
// Lower layers wrap one of these sentinels with fmt.Errorf("...: %w", ...) and
// the HTTP error handler maps them to status codes with errors.Is.
package apperror

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrValidation marks missing or invalid request fields.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated marks a missing, invalid or expired credential.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden marks an authenticated caller without enough privilege.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a duplicate unique field, e.g. an email.
	ErrConflict = errors.New("conflict")
	// ErrStore marks a failure of the underlying persistence layer.
	ErrStore = errors.New("store failure")
	// ErrConfig marks missing or invalid process configuration.
	ErrConfig = errors.New("invalid configuration")
)

// FieldErrors maps request field names to a human readable message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (f FieldErrors) Unwrap() error { return ErrValidation }
