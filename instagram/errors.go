package instagram

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited maps Instagram's "please wait a few minutes" family
	// of responses. The loop reacts with its long cool-down.
	ErrRateLimited = errors.New("instagram: rate limited")

	// ErrAuthRequired means the stored credentials were rejected.
	ErrAuthRequired = errors.New("instagram: authentication required")

	// ErrTwoFactorRequired means login needs an interactive challenge
	// the bot cannot answer on its own.
	ErrTwoFactorRequired = errors.New("instagram: two factor challenge required")

	// ErrInvalidSession means a previously saved session is no longer
	// accepted and a fresh login is needed.
	ErrInvalidSession = errors.New("instagram: session invalid")
)

// APIError covers everything the taxonomy above does not: transient
// provider or network trouble that the loop retries after a cool-down.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("instagram: unexpected status code %d", e.StatusCode)
	}
	return fmt.Sprintf("instagram: %s (status %d)", e.Message, e.StatusCode)
}
