// Package authstate provides centralized authentication state management for
// the remote SIEM service session. It tracks validity, owns the Basic-auth
// header injection, and defines the error type that distinguishes a forced
// logout from a recoverable transport failure.
package authstate

// State represents the current authentication state.
type State int

const (
	// StateValid indicates stored credentials are (as far as we know) accepted.
	StateValid State = iota
	// StateInvalid indicates the service rejected the credentials; the only
	// way out is a fresh login.
	StateInvalid
)

// String returns a human-readable representation of the auth state.
func (s State) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}
