package domain

import "errors"

// Sentinel errors for the four remote-originating failure kinds. Handlers and
// the HTTP error handler match on these with errors.Is; the user-facing text
// travels in AuthError.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidationRejected = errors.New("validation rejected")
	ErrNetworkFailure     = errors.New("network failure")
	ErrIdentityFetch      = errors.New("identity fetch failed")
)

// Generic per-kind fallback messages, used when the remote response carries
// no usable message. The wording matches what the gateway's own clients show.
var fallbackMessages = map[error]string{
	ErrInvalidCredentials: "Login failed",
	ErrValidationRejected: "Registration failed",
	ErrNetworkFailure:     "Could not reach the authentication service",
	ErrIdentityFetch:      "Failed to fetch user information",
}

// AuthError classifies a failed gateway operation and carries the
// human-readable message to surface. Message prefers the remote response's
// detail/message field; when absent the per-kind fallback applies.
type AuthError struct {
	Kind    error
	Message string
	cause   error
}

// NewAuthError builds an AuthError of the given kind. An empty message
// selects the generic fallback for that kind.
func NewAuthError(kind error, message string, cause error) *AuthError {
	if message == "" {
		message = fallbackMessages[kind]
	}
	return &AuthError{Kind: kind, Message: message, cause: cause}
}

func (e *AuthError) Error() string {
	return e.Message
}

// Unwrap exposes the kind sentinel (and transitively the cause) so callers
// can use errors.Is against ErrInvalidCredentials et al.
func (e *AuthError) Unwrap() error {
	return e.Kind
}

// Cause returns the underlying transport or decode error, if any.
func (e *AuthError) Cause() error {
	return e.cause
}
