package authstate

import "net/http"

// AuthAwareTransport wraps an http.RoundTripper with credential injection and
// auth state reporting.
type AuthAwareTransport struct {
	base    http.RoundTripper
	manager *Manager
	source  CredentialSource
}

// WrapTransport creates a transport that:
//   - Injects a Basic-auth header from the credential source when present
//   - Reports 401 responses as auth failures to the manager and converts
//     them into AuthInvalidError before any caller sees the response
//   - Reports 2xx/3xx responses as auth successes
//
// Other non-2xx statuses pass through untouched; classifying them is the
// remote client's job. If base is nil, http.DefaultTransport is used.
func (m *Manager) WrapTransport(base http.RoundTripper, source CredentialSource) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &AuthAwareTransport{base: base, manager: m, source: source}
}

// RoundTrip implements http.RoundTripper.
func (t *AuthAwareTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.source != nil {
		if creds, ok := t.source.Credentials(); ok {
			// Clone before mutating; RoundTrippers must not modify the
			// caller's request.
			req = req.Clone(req.Context())
			req.SetBasicAuth(creds.Username, creds.Password)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.manager.ReportFailure("401 Unauthorized")
		resp.Body.Close()
		return nil, &AuthInvalidError{Reason: "401 Unauthorized"}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		// A successful answer after a fresh login confirms the session.
		if !t.manager.IsValid() {
			t.manager.Reset()
		}
	}

	return resp, nil
}
