package authstate

import "sync"

// Credentials is a username/password pair used for Basic auth.
type Credentials struct {
	Username string
	Password string
}

// CredentialSource supplies the currently stored credentials, if any.
// The persistence layer implements it; the transport reads through it on
// every request so a fresh login takes effect without rebuilding the client.
type CredentialSource interface {
	Credentials() (Credentials, bool)
}

// Manager tracks authentication state. It is safe for concurrent use.
//
// The state machine is deliberately small: Valid until the service answers
// 401, then Invalid until Reset is called after a successful login. There is
// no automatic recovery; stored Basic credentials either work or they don't.
type Manager struct {
	mu     sync.RWMutex
	state  State
	reason string

	// onInvalid is called exactly once per Valid->Invalid transition.
	onInvalid func(reason string)
}

// New creates a Manager starting in StateValid. onInvalid may be nil.
func New(onInvalid func(reason string)) *Manager {
	return &Manager{state: StateValid, onInvalid: onInvalid}
}

// State returns the current state and failure reason.
func (m *Manager) State() (State, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state, m.reason
}

// IsValid reports whether the session is still considered authenticated.
func (m *Manager) IsValid() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateValid
}

// ReportFailure records an authentication failure. Idempotent: repeated
// reports while already Invalid are ignored and do not re-fire the hook.
func (m *Manager) ReportFailure(reason string) {
	m.mu.Lock()
	if m.state != StateValid {
		m.mu.Unlock()
		return
	}
	m.state = StateInvalid
	m.reason = reason
	hook := m.onInvalid
	m.mu.Unlock()

	if hook != nil {
		hook(reason)
	}
}

// Reset returns the manager to StateValid after a successful login.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateValid
	m.reason = ""
}
