package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the catalog domain - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrCycle is returned when a move would make a folder its own ancestor.
	// The guard runs before any mutation is dispatched, so a rejected move
	// issues zero writes.
	ErrCycle = errors.New("cycle rejected")

	// ErrCorruptHierarchy is returned when an ancestor walk over the folder
	// set does not terminate within |folders| steps, i.e. the stored
	// hierarchy already contains a cycle.
	ErrCorruptHierarchy = errors.New("corrupt folder hierarchy")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (folder, product, configuration)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode maps the conflict to HTTP 409
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// UpstreamError wraps a failure from an external collaborator (database,
// blob storage) so callers can distinguish it from domain rejections.
type UpstreamError struct {
	Op  string // operation that failed, e.g. "upload asset"
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
