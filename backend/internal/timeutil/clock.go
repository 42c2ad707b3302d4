/*
 * backend/internal/timeutil/clock.go
 *
 * Small wall-clock helpers shared by the aggregation and scheduling code.
 * Everything here takes an explicit reference time so callers stay
 * deterministic and testable.
 */

package timeutil

import (
	"context"
	"time"
)

// TruncateToHour zeroes minutes, seconds, and sub-second precision while
// keeping the instant's location.
func TruncateToHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// NextMidnight returns the first local-midnight instant strictly after now.
// The delay to it is recomputed from "now" on every call, so a timer armed
// with it never accumulates drift.
func NextMidnight(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return next.AddDate(0, 0, 1)
}

// SameDay reports whether two instants fall on the same calendar day in the
// local timezone of a.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SleepWithContext waits for d or until ctx is cancelled, whichever comes
// first. Returns ctx.Err() when cancelled early.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
