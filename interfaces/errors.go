package interfaces

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or missing caller input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup that yielded nothing.
	ErrNotFound = errors.New("not found")

	// ErrUpstreamUnavailable marks connectivity or credential failures
	// talking to an external store.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamAuth marks an external store denying the operation.
	ErrUpstreamAuth = errors.New("upstream authorization denied")

	// ErrUpstream marks any other failure reported by an external store.
	ErrUpstream = errors.New("upstream error")
)

// ErrorKind classifies upstream failures.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindUnavailable
	KindAuth
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindAuth:
		return "auth"
	default:
		return "other"
	}
}

// UpstreamError is returned by gateways for every failed external call.
// errors.Is matches it against the sentinel for its Kind.
type UpstreamError struct {
	Service string
	Op      string
	Kind    ErrorKind
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUpstream:
		return true
	case ErrUpstreamUnavailable:
		return e.Kind == KindUnavailable
	case ErrUpstreamAuth:
		return e.Kind == KindAuth
	}
	return false
}

// NewValidationError wraps msg so that errors.Is(err, ErrValidation) holds.
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
