// Package client provides the HTTP/JSON client used by the calendario CLI
// to talk to a running server.
package client

import (
	"fmt"
)

// APIError is an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}
