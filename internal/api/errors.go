package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is returned for non-2xx responses that carry no
	// backend error payload.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrSeriesKeyDrift is returned when the weight series uses the retired
	// "values" key instead of "weights".
	ErrSeriesKeyDrift = errors.New("weight series uses \"values\" instead of \"weights\"")
	// ErrMalformedSeries is returned when labels and weights differ in length.
	ErrMalformedSeries = errors.New("weight series labels and weights differ in length")
)

// Error is a logical error reported by the backend as an {"error": ...} payload.
type Error struct {
	Status  int
	Message string
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("backend error (%d): %s: %s", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
}

// AsBackendError reports whether err carries a backend error payload.
func AsBackendError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
