/*
 * backend/notify/queue.go
 *
 * Transient toast queue for newly observed incidents. Each toast walks a
 * fixed lifecycle: pending until the next render pass (so the frontend can
 * play an entrance transition), visible for the dwell time, fading for the
 * exit duration, then discarded. Order of arrival is preserved.
 */

package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/argusdeck/app/backend/model"
)

// Phase is a toast's lifecycle stage.
type Phase string

const (
	PhasePending Phase = "pending"
	PhaseVisible Phase = "visible"
	PhaseFading  Phase = "fading"
)

// Toast is one transient alert as exposed to the renderer.
type Toast struct {
	ID         string         `json:"id"`
	IncidentID int64          `json:"incidentId"`
	Severity   model.Severity `json:"severity"`
	Message    string         `json:"message"`
	Phase      Phase          `json:"phase"`
}

type entry struct {
	toast     Toast
	visibleAt time.Time // set on the pending->visible transition
}

// Queue holds live toasts. There is no capacity bound; arrival rate is
// bounded by the polling interval.
type Queue struct {
	mu      sync.Mutex
	entries []*entry
	dwell   time.Duration
	fade    time.Duration
}

// NewQueue builds a queue with the given dwell and fade durations.
func NewQueue(dwell, fade time.Duration) *Queue {
	return &Queue{dwell: dwell, fade: fade}
}

// Push enqueues a toast for a newly detected incident. It starts pending and
// becomes visible on the next Advance.
func (q *Queue) Push(inc model.Incident, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, &entry{
		toast: Toast{
			ID:         uuid.NewString(),
			IncidentID: inc.ID,
			Severity:   model.ParseSeverity(inc.Severity),
			Message:    message,
			Phase:      PhasePending,
		},
	})
}

// Advance drives the lifecycle against now and returns the live toasts in
// arrival order. Expired toasts are discarded before the snapshot is taken.
func (q *Queue) Advance(now time.Time) []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.entries[:0]
	for _, e := range q.entries {
		switch e.toast.Phase {
		case PhasePending:
			// First render pass after enqueue: show it.
			e.toast.Phase = PhaseVisible
			e.visibleAt = now
		case PhaseVisible:
			if now.Sub(e.visibleAt) >= q.dwell {
				e.toast.Phase = PhaseFading
			}
		case PhaseFading:
			if now.Sub(e.visibleAt) >= q.dwell+q.fade {
				continue // discard
			}
		}
		kept = append(kept, e)
	}
	q.entries = kept

	out := make([]Toast, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.toast
	}
	return out
}

// Len returns the number of live toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
