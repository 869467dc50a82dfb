package service

import (
	"errors"
	"strings"
)

// ErrStorage wraps any persistence failure (connectivity, constraint
// violation, timeout).  Handlers translate it into an HTTP 500 with a
// generic message; details stay in the server log.
var ErrStorage = errors.New("storage failure")

// ValidationError reports why a create-booking request was rejected.
// Missing lists required fields absent from the request; Reason carries a
// single human-readable message for values that were present but invalid
// (unparseable dates, checkOut not after checkIn, negative price).
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "missing required fields: " + strings.Join(e.Missing, ", ")
	}
	return e.Reason
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
