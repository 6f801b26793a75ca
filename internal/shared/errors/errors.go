// Package errors defines the structured error model shared across the
// inventory service: stable error codes, a DomainError interface carrying
// metadata, and constructors per domain.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// DomainError is the base interface for all structured errors in the application.
type DomainError interface {
	error

	// Domain returns the domain context (e.g., "peer", "group", "bundle").
	Domain() string

	// Code returns a stable error code for API responses.
	Code() string

	// Retryable indicates if the operation can be retried.
	Retryable() bool

	// Metadata returns additional error context.
	Metadata() map[string]any

	// WithMetadata returns a copy of the error with an extra metadata entry.
	WithMetadata(key string, value any) DomainError

	// Timestamp returns when the error occurred.
	Timestamp() time.Time
}

// Standardized error codes.
const (
	// Peer domain
	ErrCodePeerNotFound    = "peer_not_found"
	ErrCodePeerConflict    = "peer_conflict"
	ErrCodePeerKeyConflict = "peer_public_key_conflict"
	ErrCodePeerValidation  = "peer_validation"

	// Group domain
	ErrCodeGroupNotFound   = "group_not_found"
	ErrCodeGroupConflict   = "group_conflict"
	ErrCodeGroupValidation = "group_validation"

	// Bundle / reconciliation domain
	ErrCodeBundleInvalid = "bundle_invalid"
	ErrCodeSnapshotRead  = "snapshot_read_failed"

	// Infrastructure
	ErrCodeValidation = "validation_failed"
	ErrCodeStore      = "store_error"
	ErrCodeKeyGen     = "key_generation_failed"
	ErrCodeInternal   = "internal_error"
)

// BaseError is the canonical DomainError implementation.
type BaseError struct {
	domain    string
	code      string
	message   string
	cause     error
	retryable bool
	metadata  map[string]any
	timestamp time.Time
}

func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.domain, e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.domain, e.code, e.message)
}

func (e *BaseError) Unwrap() error            { return e.cause }
func (e *BaseError) Domain() string           { return e.domain }
func (e *BaseError) Code() string             { return e.code }
func (e *BaseError) Retryable() bool          { return e.retryable }
func (e *BaseError) Metadata() map[string]any { return e.metadata }
func (e *BaseError) Timestamp() time.Time     { return e.timestamp }

// WithMetadata returns a copy of the error with the entry added. The receiver
// is not mutated so errors can be shared safely.
func (e *BaseError) WithMetadata(key string, value any) DomainError {
	meta := make(map[string]any, len(e.metadata)+1)
	for k, v := range e.metadata {
		meta[k] = v
	}
	meta[key] = value

	clone := *e
	clone.metadata = meta
	return &clone
}

// NewBaseError creates a DomainError with the given parameters.
func NewBaseError(domain, code, message string, retryable bool, cause error) *BaseError {
	return &BaseError{
		domain:    domain,
		code:      code,
		message:   message,
		cause:     cause,
		retryable: retryable,
		metadata:  make(map[string]any),
		timestamp: time.Now(),
	}
}

// NewPeerError creates a peer-domain error.
func NewPeerError(code, message string, retryable bool, cause error) DomainError {
	return NewBaseError("peer", code, message, retryable, cause)
}

// NewGroupError creates a group-domain error.
func NewGroupError(code, message string, retryable bool, cause error) DomainError {
	return NewBaseError("group", code, message, retryable, cause)
}

// NewBundleError creates a bundle / reconciliation error.
func NewBundleError(code, message string, cause error) DomainError {
	return NewBaseError("bundle", code, message, false, cause)
}

// NewStoreError creates an infrastructure storage error. Store errors are
// retryable unless the caller knows better.
func NewStoreError(message string, cause error) DomainError {
	return NewBaseError("store", ErrCodeStore, message, true, cause)
}

// CodeOf returns the stable code of err, or ErrCodeInternal when err is not a
// DomainError.
func CodeOf(err error) string {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code()
	}
	return ErrCodeInternal
}

// IsConflict reports whether err is a uniqueness conflict in any domain.
func IsConflict(err error) bool {
	switch CodeOf(err) {
	case ErrCodePeerConflict, ErrCodePeerKeyConflict, ErrCodeGroupConflict:
		return true
	}
	return false
}

// IsNotFound reports whether err is a not-found error in any domain.
func IsNotFound(err error) bool {
	switch CodeOf(err) {
	case ErrCodePeerNotFound, ErrCodeGroupNotFound:
		return true
	}
	return false
}
