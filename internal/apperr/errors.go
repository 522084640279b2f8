// Package apperr defines the sentinel errors shared across viewmd packages.
package apperr

import "errors"

var (
	// ErrNotFound marks a path that does not exist under the serving root.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks a request path rejected before any filesystem
	// access: traversal segments, absolute paths, NUL bytes, or a resolved
	// target outside the serving root.
	ErrForbidden = errors.New("forbidden")
)
