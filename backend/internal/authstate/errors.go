package authstate

import "fmt"

// AuthInvalidError represents an authentication failure (HTTP 401).
// It is the sole error that triggers a forced logout; generic transport
// failures never carry this type.
type AuthInvalidError struct {
	// Reason describes why authentication is invalid (e.g., "401 Unauthorized").
	Reason string
}

// Error returns a human-readable error message.
func (e *AuthInvalidError) Error() string {
	return fmt.Sprintf("auth invalid: %s", e.Reason)
}

// Is implements the interface for errors.Is() to allow type-based matching
// anywhere in a wrapped chain.
func (e *AuthInvalidError) Is(target error) bool {
	_, ok := target.(*AuthInvalidError)
	return ok
}
