// internals/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
)

/* =========================================================
   Error taxonomy for the gig/session core.

   Every rejection carries a Kind so the HTTP layer can map
   it deterministically, and handlers can branch without
   string-matching messages.
========================================================= */

type Kind int

const (
	KindValidation Kind = iota + 1 // malformed input, safe to retry after correction
	KindStateConflict              // operation illegal in the current state
	KindInsufficientLedger         // would drive remaining hours negative
	KindConcurrencyConflict        // lock/version contention after bounded retries
	KindExternalCollaborator       // provisioner/notifier failure, non-fatal
	KindNotFound
	KindPermissionDenied
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStateConflict:
		return "state_conflict"
	case KindInsufficientLedger:
		return "insufficient_ledger"
	case KindConcurrencyConflict:
		return "concurrency_conflict"
	case KindExternalCollaborator:
		return "external_collaborator"
	case KindNotFound:
		return "not_found"
	case KindPermissionDenied:
		return "permission_denied"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Message string
	Err     error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

/* =========================
   Constructors
========================= */

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return New(KindValidation, format, args...)
}

// StateConflict reports the current state so the caller can decide what to do.
func StateConflict(current string, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...)
	return New(KindStateConflict, "%s (current status: %s)", msg, current)
}

func InsufficientLedger(format string, args ...interface{}) *Error {
	return New(KindInsufficientLedger, format, args...)
}

func ConcurrencyConflict(err error) *Error {
	return &Error{Kind: KindConcurrencyConflict, Message: "ledger is busy, please retry", Err: err}
}

func ExternalCollaborator(op string, err error) *Error {
	return &Error{Kind: KindExternalCollaborator, Message: op, Err: err}
}

func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

func PermissionDenied(format string, args ...interface{}) *Error {
	return New(KindPermissionDenied, format, args...)
}

/* =========================
   Inspection
========================= */

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func Is(err error, kind Kind) bool { return KindOf(err) == kind }
