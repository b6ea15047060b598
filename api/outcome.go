package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ruteri/halow-dashboard/interfaces"
)

// Outcome is the classified result of a handler's gateway call.
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeValidation   Outcome = "validation"
	OutcomeNotFound     Outcome = "not_found"
	OutcomeUnavailable  Outcome = "unavailable"
	OutcomeUnauthorized Outcome = "unauthorized"
	OutcomeError        Outcome = "error"
)

// Classify maps an error onto an Outcome. A nil error is OutcomeOK.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, interfaces.ErrValidation):
		return OutcomeValidation
	case errors.Is(err, interfaces.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, interfaces.ErrUpstreamUnavailable):
		return OutcomeUnavailable
	case errors.Is(err, interfaces.ErrUpstreamAuth):
		return OutcomeUnauthorized
	default:
		return OutcomeError
	}
}

// StatusCode is the HTTP status used by JSON endpoints for the outcome.
func (o Outcome) StatusCode() int {
	switch o {
	case OutcomeOK:
		return http.StatusOK
	case OutcomeValidation:
		return http.StatusBadRequest
	case OutcomeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Degraded reports whether pages render with empty data instead of failing.
func (o Outcome) Degraded() bool {
	return o == OutcomeUnavailable || o == OutcomeUnauthorized
}

// DegradedNotice is the user-visible message for a degraded page render.
func DegradedNotice(o Outcome, service string) string {
	switch o {
	case OutcomeUnavailable:
		return fmt.Sprintf("Could not connect to %s. Please check credentials and connectivity.", service)
	case OutcomeUnauthorized:
		return fmt.Sprintf("Access to %s was denied. Please check permissions.", service)
	default:
		return ""
	}
}
