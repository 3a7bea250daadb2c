package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidPageRequest is returned when FetchPage is called with a negative
// page index or a non-positive page size.
var ErrInvalidPageRequest = errors.New("invalid page request")

// TransportError reports a failed exchange with the catalog: the request
// could not be sent, the status was not 2xx, or the body was unreadable.
type TransportError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("catalog %s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
	default:
		return "catalog " + e.Op + " failed"
	}
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
