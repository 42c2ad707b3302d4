/*
 * backend/refresh/cache.go
 *
 * In-memory incident cache fed by the remote API. Concurrent refreshes are
 * collapsed through singleflight, and a monotonic sequence guard ensures a
 * slow response can never overwrite data from a newer one.
 */

package refresh

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/argusdeck/app/backend/internal/authstate"
	"github.com/argusdeck/app/backend/internal/config"
	"github.com/argusdeck/app/backend/model"
)

// Source fetches incident pages. *api.Client satisfies it.
type Source interface {
	Incidents(ctx context.Context, limit, offset int) ([]model.Incident, error)
}

// Snapshot is the cache state handed to callers. Incidents are sorted newest
// first and must be treated as read-only.
type Snapshot struct {
	Incidents   []model.Incident
	Sequence    uint64
	LastSuccess time.Time
	LastError   string
}

// Cache holds the latest good incident list.
type Cache struct {
	source Source
	group  singleflight.Group
	now    func() time.Time

	mu          sync.RWMutex
	incidents   []model.Incident
	sequence    uint64
	nextSeq     uint64
	lastSuccess time.Time
	lastError   string
}

// NewCache builds a cache over the given source.
func NewCache(source Source) *Cache {
	return &Cache{source: source, now: time.Now}
}

// Refresh fetches the incident list and replaces the cached copy. Concurrent
// callers share one fetch. When silent is set a fetch failure is swallowed
// and the last good snapshot is returned instead; a non-silent failure is
// returned to the caller after being recorded in the snapshot state. Auth
// failures are returned even when silent, since retrying cannot fix them.
func (c *Cache) Refresh(ctx context.Context, silent bool) (Snapshot, error) {
	_, err, _ := c.group.Do("incidents", func() (any, error) {
		c.mu.Lock()
		c.nextSeq++
		seq := c.nextSeq
		c.mu.Unlock()

		list, fetchErr := c.source.Incidents(ctx, config.IncidentPageLimit, 0)
		if fetchErr != nil {
			c.recordError(seq, fetchErr)
			return nil, fetchErr
		}
		c.store(seq, list)
		return nil, nil
	})
	if err != nil && (!silent || errors.Is(err, &authstate.AuthInvalidError{})) {
		return c.Snapshot(), err
	}
	return c.Snapshot(), nil
}

// store installs a fetched list unless a newer fetch already landed.
func (c *Cache) store(seq uint64, list []model.Incident) {
	sorted := make([]model.Incident, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DetectedAt.After(sorted[j].DetectedAt)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.sequence {
		return // a newer response already landed
	}
	c.incidents = sorted
	c.sequence = seq
	c.lastSuccess = c.now()
	c.lastError = ""
}

func (c *Cache) recordError(seq uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.sequence {
		return
	}
	c.lastError = err.Error()
}

// Snapshot returns the current cache state without fetching.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Incident, len(c.incidents))
	copy(out, c.incidents)
	return Snapshot{
		Incidents:   out,
		Sequence:    c.sequence,
		LastSuccess: c.lastSuccess,
		LastError:   c.lastError,
	}
}
