package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds for entity client errors.
var (
	ErrInvalidBaseURL   = errors.New("invalid base url")
	ErrTransport        = errors.New("entity request failed")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrMissingID        = errors.New("entity id is required")
	ErrEncode           = errors.New("encode request body failed")
	ErrDecode           = errors.New("decode response body failed")
)

// maxErrorBody bounds how much of a failed response is kept on StatusError.
const maxErrorBody = 4 << 10

// StatusError reports a non-2xx response. It matches ErrUnexpectedStatus.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if len(e.Body) > 0 {
		msg += ": " + string(e.Body)
	}
	return msg
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// StatusCode returns the HTTP status carried by err, or 0 if err is not a
// StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the remote store.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
