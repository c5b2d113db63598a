package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession means no access token is stored locally. Callers treat
	// it as "not logged in" rather than a failure to surface.
	ErrNoSession = errors.New("no active session")

	// ErrTransport marks a network or decode failure that happened before
	// a structured response was obtained. Match with errors.Is.
	ErrTransport = errors.New("transport failure")
)

// RejectedError is an explicit refusal from the service: invalid
// credentials, duplicate account, expired or invalid token. Message is the
// server-supplied reason and is safe to show to the user. Match with
// errors.As.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected (status %d): %s", e.Status, e.Message)
}
