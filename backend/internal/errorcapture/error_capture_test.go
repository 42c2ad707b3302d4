package errorcapture

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsAuthRelated(t *testing.T) {
	require.True(t, isAuthRelated("http 401 unauthorized"))
	require.True(t, isAuthRelated("session token expired"))
	require.True(t, isAuthRelated("permission denied on resource"))
	require.False(t, isAuthRelated("connection reset by peer"))
	// Word boundaries: identifiers containing the words do not match.
	require.False(t, isAuthRelated("tokenizerpool started"))
}

func TestScanRecentError(t *testing.T) {
	recent := "starting webview\nrender pass ok\nrequest failed: connection refused\n"
	require.Equal(t, "request failed: connection refused", scanRecentError(recent))

	require.Empty(t, scanRecentError("all good\nnothing to see\n"))
	require.Empty(t, scanRecentError(""))
}

func TestTrimBufferKeepsTail(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.WriteString("aaaaabbbbb")
	trimBuffer(buf, 8, 4)
	require.Equal(t, "bbbb", buf.String())

	buf.Reset()
	buf.WriteString("short")
	trimBuffer(buf, 8, 4)
	require.Equal(t, "short", buf.String())
}

func TestCaptureIfInteresting(t *testing.T) {
	var emitted []string
	prev := eventEmitter
	eventEmitter = func(msg string) { emitted = append(emitted, msg) }
	defer func() { eventEmitter = prev }()

	c := &Capture{buffer: &bytes.Buffer{}}
	c.captureIfInteresting("render ok\nHTTP 401 unauthorized from server\n")

	require.Equal(t, []string{"HTTP 401 unauthorized from server"}, emitted)
	require.Equal(t, "HTTP 401 unauthorized from server", c.last())
}

func TestEnhance(t *testing.T) {
	require.NoError(t, Enhance(nil))

	// Without a capture instance the error passes through untouched.
	global = nil
	err := errors.New("fetch failed")
	require.Equal(t, err, Enhance(err))

	global = &Capture{buffer: &bytes.Buffer{}}
	global.setLastError("token expired for session")
	enhanced := Enhance(errors.New("fetch failed"))
	require.Contains(t, enhanced.Error(), "token expired for session")
	// The captured line is consumed.
	require.Empty(t, global.last())
	global = nil
}
