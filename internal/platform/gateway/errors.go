package gateway

import (
	"errors"
	"fmt"
)

// Error is returned by every Client call that does not succeed. StatusCode is
// zero when the request never produced a response.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("gateway %s %s: status %d: %v", e.Method, e.Path, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("gateway %s %s: status %d", e.Method, e.Path, e.StatusCode)
	default:
		return fmt.Sprintf("gateway %s %s: %v", e.Method, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// isRejection reports whether err is a 4xx answer from the service.
func isRejection(err error) bool {
	var ge *Error
	if !errors.As(err, &ge) {
		return false
	}
	return ge.StatusCode >= 400 && ge.StatusCode < 500
}

// isTransport reports whether err is a failure to reach the service at all.
func isTransport(err error) bool {
	var ge *Error
	if !errors.As(err, &ge) {
		return false
	}
	return ge.StatusCode == 0
}
