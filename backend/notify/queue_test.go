package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/argusdeck/app/backend/model"
)

func TestToastLifecycle(t *testing.T) {
	q := NewQueue(6*time.Second, 300*time.Millisecond)
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	q.Push(model.Incident{ID: 7, Severity: "high"}, "multiple failed logins")

	// First pass promotes pending to visible.
	toasts := q.Advance(base)
	require.Len(t, toasts, 1)
	require.Equal(t, PhaseVisible, toasts[0].Phase)
	require.Equal(t, int64(7), toasts[0].IncidentID)
	require.Equal(t, model.SeverityHigh, toasts[0].Severity)
	require.NotEmpty(t, toasts[0].ID)

	// Still visible just before the dwell elapses.
	toasts = q.Advance(base.Add(5 * time.Second))
	require.Equal(t, PhaseVisible, toasts[0].Phase)

	// Fading once the dwell elapses.
	toasts = q.Advance(base.Add(6 * time.Second))
	require.Equal(t, PhaseFading, toasts[0].Phase)

	// Gone after dwell + fade.
	toasts = q.Advance(base.Add(6*time.Second + 301*time.Millisecond))
	require.Empty(t, toasts)
	require.Zero(t, q.Len())
}

func TestAdvancePreservesArrivalOrder(t *testing.T) {
	q := NewQueue(6*time.Second, 300*time.Millisecond)
	now := time.Now()

	q.Push(model.Incident{ID: 1, Severity: "low"}, "first")
	q.Push(model.Incident{ID: 2, Severity: "critical"}, "second")
	q.Push(model.Incident{ID: 3, Severity: "medium"}, "third")

	toasts := q.Advance(now)
	require.Len(t, toasts, 3)
	require.Equal(t, "first", toasts[0].Message)
	require.Equal(t, "second", toasts[1].Message)
	require.Equal(t, "third", toasts[2].Message)
}

func TestDwellCountsFromVisibility(t *testing.T) {
	q := NewQueue(6*time.Second, 300*time.Millisecond)
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	q.Push(model.Incident{ID: 1, Severity: "low"}, "early")
	q.Advance(base)

	// A toast pushed later starts its dwell at its own first render pass.
	q.Push(model.Incident{ID: 2, Severity: "low"}, "late")
	toasts := q.Advance(base.Add(4 * time.Second))
	require.Len(t, toasts, 2)
	require.Equal(t, PhaseVisible, toasts[1].Phase)

	toasts = q.Advance(base.Add(7 * time.Second))
	require.Equal(t, PhaseFading, toasts[0].Phase)
	require.Equal(t, PhaseVisible, toasts[1].Phase)
}

func TestUnknownSeverityToast(t *testing.T) {
	q := NewQueue(time.Second, time.Second)
	q.Push(model.Incident{ID: 9, Severity: "weird"}, "odd incident")
	toasts := q.Advance(time.Now())
	require.Equal(t, model.SeverityUnknown, toasts[0].Severity)
}
