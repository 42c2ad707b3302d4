package authstate

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManagerReportFailureIdempotent(t *testing.T) {
	var fired int
	m := New(func(string) { fired++ })

	require.True(t, m.IsValid())

	m.ReportFailure("401 Unauthorized")
	m.ReportFailure("401 Unauthorized")

	state, reason := m.State()
	require.Equal(t, StateInvalid, state)
	require.Equal(t, "401 Unauthorized", reason)
	require.Equal(t, 1, fired, "hook fires once per Valid->Invalid transition")

	m.Reset()
	require.True(t, m.IsValid())

	m.ReportFailure("401 Unauthorized")
	require.Equal(t, 2, fired)
}

type staticCreds struct {
	creds Credentials
	ok    bool
}

func (s staticCreds) Credentials() (Credentials, bool) { return s.creds, s.ok }

func TestTransportInjectsBasicAuth(t *testing.T) {
	var gotUser, gotPass string
	var gotOK bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotOK = r.BasicAuth()
		fmt.Fprint(w, "{}")
	}))
	defer srv.Close()

	m := New(nil)
	client := &http.Client{Transport: m.WrapTransport(nil, staticCreds{
		creds: Credentials{Username: "analyst", Password: "hunter2"},
		ok:    true,
	})}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	require.True(t, gotOK)
	require.Equal(t, "analyst", gotUser)
	require.Equal(t, "hunter2", gotPass)
	require.True(t, m.IsValid())
}

func TestTransportConverts401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	var reason string
	m := New(func(r string) { reason = r })
	client := &http.Client{Transport: m.WrapTransport(nil, staticCreds{})}

	_, err := client.Get(srv.URL)
	require.Error(t, err)
	require.True(t, errors.Is(err, &AuthInvalidError{}))
	require.False(t, m.IsValid())
	require.Equal(t, "401 Unauthorized", reason)
}

func TestTransportPassesThroughOtherStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := New(nil)
	client := &http.Client{Transport: m.WrapTransport(nil, staticCreds{})}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.True(t, m.IsValid(), "a 500 is not an auth failure")
}
