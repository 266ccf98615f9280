package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEventNotFound is returned when a confirmed transaction did not emit the expected event
	ErrEventNotFound = errors.New("expected ledger event not found")

	// ErrNoReceipt is returned when a submitted transaction never produced a receipt
	ErrNoReceipt = errors.New("transaction receipt not available")

	// ErrAllocationExhausted is returned when no free account address was found within the attempt budget
	ErrAllocationExhausted = errors.New("account address allocation exhausted")
)

// ErrorKind classifies failures surfaced to callers of the lifecycle core
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindDomain          ErrorKind = "domain"
	KindInternal        ErrorKind = "internal"
)

// Domain error codes reported by the ledger or by precondition checks
const (
	CodeInsufficientAvailableQuantity = "insufficient-available-quantity"
	CodeAlreadyInUse                  = "already-in-use"
	CodeEntityDeleted                 = "entity-deleted"
	CodeEntityNotFound                = "entity-not-found"
	CodeNotOwner                      = "not-owner"
	CodeAlreadySold                   = "already-sold"
	CodeAlreadyRecycled               = "already-recycled"
	CodeUnknownAccount                = "unknown-account"
	CodeInvalidCredential             = "invalid-credential"
	CodeRoleNotAllowed                = "role-not-allowed"
	CodeRoleMismatch                  = "role-mismatch"
)

// Error is the uniform error type crossing component boundaries.
// Status is the HTTP-style status code the envelope reports for it.
type Error struct {
	Kind    ErrorKind
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates a 400 error for malformed or insufficient input
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Code: "validation-failed", Message: message}
}

// NewUnauthenticatedError creates a 401 error
func NewUnauthenticatedError(code string, err error) *Error {
	return &Error{Kind: KindUnauthenticated, Status: http.StatusUnauthorized, Code: code, Err: err}
}

// NewForbiddenError creates a 403 error
func NewForbiddenError(code string) *Error {
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Code: code}
}

// NewNotFoundError creates a 404 error
func NewNotFoundError(code string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Code: code}
}

// NewConflictError creates a 409 error
func NewConflictError(code string, err error) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Code: code, Err: err}
}

// NewDomainError creates a 400 error for ledger-reported business rule violations
func NewDomainError(code string, err error) *Error {
	return &Error{Kind: KindDomain, Status: http.StatusBadRequest, Code: code, Err: err}
}

// NewInternalError creates a 500 error; the cause is kept for logging only
func NewInternalError(message string, err error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Code: "internal-error", Message: message, Err: err}
}

// AsError extracts a *Error from err, wrapping unknown errors as internal
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewInternalError("unclassified failure", err)
}

// StatusOf returns the status code carried by err
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return AsError(err).Status
}

// IsKind reports whether err is a *Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
