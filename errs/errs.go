// Package errs collects the sentinel errors returned by the format engine.
//
// Every error raised by varint, raw, registry, and codec wraps one
// of the sentinels below, so callers can branch on failure kind with
// errors.Is regardless of which package raised it.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error the way the wire-format spec enumerates its
// error table: io, order_violation, type_mismatch, and so on.
type Kind string

const (
	KindIO                Kind = "io"
	KindOrderViolation    Kind = "order_violation"
	KindTypeMismatch      Kind = "type_mismatch"
	KindUnknownType       Kind = "unknown_type"
	KindMissingIdentity   Kind = "missing_identity"
	KindDuplicateIdentity Kind = "duplicate_identity"
	KindRange             Kind = "range"
	KindTruncated         Kind = "truncated"
	KindUnsupported       Kind = "unsupported"
)

// Sentinel base errors. Use errors.Is against these; use As against *Error
// to recover TypeID/PropertyIndex context.
var (
	ErrIO                = errors.New("pof: io error")
	ErrOrderViolation    = errors.New("pof: order violation")
	ErrTypeMismatch      = errors.New("pof: type mismatch")
	ErrUnknownType       = errors.New("pof: unknown type")
	ErrMissingIdentity   = errors.New("pof: missing identity")
	ErrDuplicateIdentity = errors.New("pof: duplicate identity")
	ErrRange             = errors.New("pof: range violation")
	ErrTruncated         = errors.New("pof: truncated stream")
	ErrUnsupported       = errors.New("pof: unsupported")
)

var kindToSentinel = map[Kind]error{
	KindIO:                ErrIO,
	KindOrderViolation:    ErrOrderViolation,
	KindTypeMismatch:      ErrTypeMismatch,
	KindUnknownType:       ErrUnknownType,
	KindMissingIdentity:   ErrMissingIdentity,
	KindDuplicateIdentity: ErrDuplicateIdentity,
	KindRange:             ErrRange,
	KindTruncated:         ErrTruncated,
	KindUnsupported:       ErrUnsupported,
}

// Error carries the failure context the spec requires propagating to the
// caller: the error kind, and, when known, the user type id and property
// index in play when the failure occurred.
type Error struct {
	Kind          Kind
	TypeID        int32
	PropertyIndex int32
	HasTypeID     bool
	HasProperty   bool
	Msg           string
	base          error
}

func (e *Error) Error() string {
	s := "pof: " + string(e.Kind)
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.HasTypeID {
		s += fmt.Sprintf(" (type=%d)", e.TypeID)
	}
	if e.HasProperty {
		s += fmt.Sprintf(" (property=%d)", e.PropertyIndex)
	}

	return s
}

func (e *Error) Unwrap() error { return e.base }

// New builds a contextual error for the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, base: kindToSentinel[kind]}
}

// WithTypeID attaches a user type id to the error and returns it.
func (e *Error) WithTypeID(typeID int32) *Error {
	e.TypeID = typeID
	e.HasTypeID = true
	return e
}

// WithProperty attaches a property index to the error and returns it.
func (e *Error) WithProperty(index int32) *Error {
	e.PropertyIndex = index
	e.HasProperty = true
	return e
}

// Convenience constructors mirroring the error table in the spec.

func OrderViolation(target, prev int32) error {
	return New(KindOrderViolation, fmt.Sprintf("target index %d is not greater than last read index %d", target, prev))
}

func TypeMismatch(requested string, found int32) error {
	return New(KindTypeMismatch, fmt.Sprintf("cannot coerce tag %d into %s", found, requested))
}

func UnknownType(typeID int32) error {
	return New(KindUnknownType, "type id not registered").WithTypeID(typeID)
}

func MissingIdentity(id int64) error {
	return New(KindMissingIdentity, fmt.Sprintf("reference to unregistered identity %d", id))
}

func DuplicateIdentity(id int64) error {
	return New(KindDuplicateIdentity, fmt.Sprintf("identity %d registered twice", id))
}

func Range(msg string) error {
	return New(KindRange, msg)
}

func Truncated(msg string) error {
	return New(KindTruncated, msg)
}

func Unsupported(msg string) error {
	return New(KindUnsupported, msg)
}

func IO(err error) error {
	e := New(KindIO, "")
	if err != nil {
		e.base = fmt.Errorf("%w: %w", ErrIO, err)
	}

	return e
}
