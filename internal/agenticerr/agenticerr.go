// Package agenticerr defines the error kinds shared across the toolchain,
// so callers can branch on failure category with errors.Is/errors.As
// instead of string matching.
package agenticerr

import "errors"

// Kind classifies the failure category of an Error, mirroring the error
// kinds enumerated in the design (NotFound, InvalidFormat, Validation, ...).
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindInvalidFormat       Kind = "invalid_format"
	KindValidation          Kind = "validation"
	KindReferenceResolution Kind = "reference_resolution"
	KindHashMismatch        Kind = "hash_mismatch"
	KindTransformFailure    Kind = "transform_failure"
	KindIOFailure           Kind = "io_failure"
	KindChildProcessFailure Kind = "child_process_failure"
)

// Sentinels for errors.Is checks against a Kind regardless of message.
var (
	ErrNotFound            = errors.New(string(KindNotFound))
	ErrInvalidFormat       = errors.New(string(KindInvalidFormat))
	ErrValidation          = errors.New(string(KindValidation))
	ErrReferenceResolution = errors.New(string(KindReferenceResolution))
	ErrHashMismatch        = errors.New(string(KindHashMismatch))
	ErrTransformFailure    = errors.New(string(KindTransformFailure))
	ErrIOFailure           = errors.New(string(KindIOFailure))
	ErrChildProcessFailure = errors.New(string(KindChildProcessFailure))
)

func sentinelFor(kind Kind) error {
	switch kind {
	case KindNotFound:
		return ErrNotFound
	case KindInvalidFormat:
		return ErrInvalidFormat
	case KindValidation:
		return ErrValidation
	case KindReferenceResolution:
		return ErrReferenceResolution
	case KindHashMismatch:
		return ErrHashMismatch
	case KindTransformFailure:
		return ErrTransformFailure
	case KindIOFailure:
		return ErrIOFailure
	case KindChildProcessFailure:
		return ErrChildProcessFailure
	default:
		return errors.New(string(kind))
	}
}

// Error is a structured failure carrying a Kind, a human message, the
// primitive or file path the failure is associated with, and an optional
// wrapped cause.
type Error struct {
	Kind    Kind
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error of the given kind, associated path, and message.
func New(kind Kind, path, message string) *Error {
	return &Error{Kind: kind, Path: path, Message: message}
}

// Wrap builds an Error of the given kind that carries cause as its
// underlying error (so errors.Unwrap(err) also reaches cause via errors.As).
func Wrap(kind Kind, path, message string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Message: message, Cause: cause}
}

// Is supports errors.Is(err, agenticerr.ErrX) by comparing the sentinel for
// e's Kind, and also lets two *Error values compare equal by Kind, Path and
// Message when compared directly against one another.
func (e *Error) Is(target error) bool {
	if target == sentinelFor(e.Kind) {
		return true
	}
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind && other.Path == e.Path && other.Message == e.Message
	}
	return false
}
