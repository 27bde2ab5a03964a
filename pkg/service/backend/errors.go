package backend

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

var (
	// ErrTransport is returned when the backend could not be reached
	ErrTransport = goerr.New("backend is unreachable")
	// ErrDecode is returned when the backend answered with something that is not the expected JSON
	ErrDecode = goerr.New("malformed backend response")
)

// Keys of goerr values attached by the client
const (
	PathKey      = "path"
	StatusKey    = "status"
	RequestIDKey = "request_id"
)

// APIError is a {"success": false} answer from the backend. Message is
// meant for the operator; Traceback is diagnostic detail that should only
// be logged.
type APIError struct {
	Message    string
	Traceback  string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend request failed with status %d", e.StatusCode)
	}
	return e.Message
}
