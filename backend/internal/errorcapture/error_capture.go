/*
 * backend/internal/errorcapture/error_capture.go
 *
 * Captures stderr output from native libraries (the webview, TLS stack, and
 * anything else that writes around the app logger) so auth and connectivity
 * problems surface in the status console instead of vanishing.
 */

package errorcapture

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"
)

// Capture redirects stderr through a pipe and scans it for interesting lines.
type Capture struct {
	mu          sync.RWMutex
	buffer      *bytes.Buffer // stores captured stderr output
	originalErr *os.File      // original stderr file descriptor
	pipeReader  *os.File
	pipeWriter  *os.File
	capturing   bool
	lastError   string
	lastErrorMu sync.RWMutex
}

var (
	global       *Capture
	eventEmitter func(string)
	logSink      func(level string, message string)
	// Word-boundary matching avoids false positives from identifiers that
	// merely contain these words.
	authPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\btokens?\b`),
		regexp.MustCompile(`\bexpired\b`),
		regexp.MustCompile(`\bauthentication\b`),
		regexp.MustCompile(`\bunauthorized\b`),
		regexp.MustCompile(`\bforbidden\b`),
		regexp.MustCompile(`\b401\b`),
		regexp.MustCompile(`\bpermission\s+denied\b`),
		regexp.MustCompile(`\baccess\s+denied\b`),
	}
	fallbackErrorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\berrors?\b`),
		regexp.MustCompile(`\bfailed\b`),
		regexp.MustCompile(`\bunauthorized\b`),
		regexp.MustCompile(`\bforbidden\b`),
		regexp.MustCompile(`\bexpired\b`),
		regexp.MustCompile(`\brefused\b`),
		regexp.MustCompile(`\bpermission\s+denied\b`),
	}
)

// Init installs the global stderr capture.
func Init() {
	global = &Capture{buffer: &bytes.Buffer{}}
	global.start()
}

// start begins capturing stderr output.
func (c *Capture) start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.capturing {
		return
	}

	r, w, err := os.Pipe()
	if err != nil {
		if logSink != nil {
			logSink("error", "Failed to create pipe for stderr capture: "+err.Error())
		}
		return
	}

	c.pipeReader = r
	c.pipeWriter = w
	c.originalErr = os.Stderr
	os.Stderr = w
	c.capturing = true

	go c.readPipe()
}

// readPipe continuously reads from the stderr pipe.
func (c *Capture) readPipe() {
	scanner := make([]byte, 4096)
	for {
		n, err := c.pipeReader.Read(scanner)
		if err != nil {
			if err != io.EOF && logSink != nil {
				logSink("error", "Error reading stderr pipe: "+err.Error())
			}
			break
		}

		if n == 0 {
			continue
		}

		chunk := scanner[:n]

		c.mu.Lock()
		c.buffer.Write(chunk)
		trimBuffer(c.buffer, 100000, 50000)
		c.mu.Unlock()

		c.captureIfInteresting(string(chunk))

		if logSink != nil {
			c.emitToLogSink(chunk)
		}
	}
}

// isAuthRelated determines if a log message points at an auth or token issue.
func isAuthRelated(lower string) bool {
	return matchAnyPattern(lower, authPatterns)
}

// matchAnyPattern reports whether lower matches at least one regex.
func matchAnyPattern(lower string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

// isFallbackErrorLine matches the broader error scan used in capturedError.
func isFallbackErrorLine(line string) bool {
	return matchAnyPattern(strings.ToLower(line), fallbackErrorPatterns)
}

// forEachTrimmedLine iterates through non-empty, trimmed lines in input.
func forEachTrimmedLine(input string, fn func(string)) {
	for _, line := range strings.Split(input, "\n") {
		msg := strings.TrimSpace(line)
		if msg == "" {
			continue
		}
		fn(msg)
	}
}

// trimBuffer reduces buffer growth by keeping only the newest bytes.
func trimBuffer(buf *bytes.Buffer, maxLen, keep int) {
	if buf.Len() <= maxLen {
		return
	}
	data := buf.Bytes()
	if keep > len(data) {
		keep = len(data)
	}
	buf.Reset()
	if keep > 0 {
		buf.Write(data[len(data)-keep:])
	}
}

// tailString returns the last max bytes as a string.
func tailString(data []byte, max int) string {
	if len(data) > max {
		data = data[len(data)-max:]
	}
	return string(data)
}

// captureIfInteresting records auth-related lines and notifies the emitter.
func (c *Capture) captureIfInteresting(output string) {
	forEachTrimmedLine(output, func(msg string) {
		lower := strings.ToLower(msg)
		if !isAuthRelated(lower) {
			return
		}
		c.setLastError(msg)
		if eventEmitter != nil {
			eventEmitter(msg)
		}
	})
}

// recent returns the most recent stderr output captured.
func (c *Capture) recent() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return tailString(c.buffer.Bytes(), 5000)
}

// last returns the most recent interesting error captured.
func (c *Capture) last() string {
	c.lastErrorMu.RLock()
	defer c.lastErrorMu.RUnlock()
	return c.lastError
}

func (c *Capture) setLastError(msg string) {
	c.lastErrorMu.Lock()
	c.lastError = msg
	c.lastErrorMu.Unlock()
}

func (c *Capture) clearLast() {
	c.setLastError("")
}

// capturedError returns the most recent interesting error captured.
func capturedError() string {
	if global == nil {
		return ""
	}

	if last := global.last(); last != "" {
		global.clearLast()
		return last
	}

	return scanRecentError(global.recent())
}

// scanRecentError returns the last interesting error-ish line from recent stderr output.
func scanRecentError(recent string) string {
	if recent == "" {
		return ""
	}

	lines := strings.Split(recent, "\n")
	for i := len(lines) - 1; i >= 0 && i >= len(lines)-10; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if isFallbackErrorLine(line) {
			return line
		}
	}
	return ""
}

// Enhance augments an error with recent stderr output when helpful.
func Enhance(err error) error {
	if err == nil {
		return nil
	}

	extra := capturedError()
	if extra == "" {
		return err
	}

	orig := err.Error()
	lower := strings.ToLower(extra)
	if len(extra) <= len(orig) && !matchAnyPattern(lower, authPatterns) {
		return err
	}

	if !strings.Contains(extra, orig) && !strings.Contains(orig, extra) {
		return fmt.Errorf("%s. STDERR: %s", orig, extra)
	}
	return fmt.Errorf("%s", extra)
}

// SetEventEmitter configures a callback invoked when interesting errors are captured.
func SetEventEmitter(emitter func(string)) {
	eventEmitter = emitter
}

// SetLogSink configures a callback for lines the capture subsystem forwards.
func SetLogSink(fn func(level string, message string)) {
	logSink = fn
}

// emitToLogSink sends captured lines to the configured log sink.
func (c *Capture) emitToLogSink(chunk []byte) {
	forEachTrimmedLine(string(chunk), func(msg string) {
		level := "info"
		lower := strings.ToLower(msg)
		switch {
		case strings.Contains(lower, "error"):
			level = "error"
		case strings.Contains(lower, "warning"), strings.Contains(lower, "warn"):
			level = "warn"
		}

		logSink(level, msg)
	})
}
