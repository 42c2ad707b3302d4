/*
 * backend/refresh/dashboard.go
 *
 * Combined dashboard fetch: the incident cache refresh and the event page
 * load run in parallel and the dashboard waits for both.
 */

package refresh

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/argusdeck/app/backend/internal/authstate"
	"github.com/argusdeck/app/backend/internal/config"
	"github.com/argusdeck/app/backend/model"
)

// EventSource fetches event pages. *api.Client satisfies it.
type EventSource interface {
	Events(ctx context.Context, limit, offset int) ([]model.Event, error)
}

// DashboardData bundles the two feeds the dashboard renders from. EventsStale
// is set when a silent fetch could not load events; the caller keeps rendering
// from whatever event list it already has.
type DashboardData struct {
	Incidents   Snapshot
	Events      []model.Event
	EventsStale bool
}

// FetchDashboard refreshes the incident cache and loads the latest events
// concurrently. The two sides are independent: a failure on one never cancels
// the other, so incidents keep refreshing while the events endpoint is down.
// When silent is set each side degrades on its own — incidents fall back to
// the last good snapshot and an events failure only marks the feed stale.
// Auth failures always propagate.
func FetchDashboard(ctx context.Context, cache *Cache, events EventSource, silent bool) (DashboardData, error) {
	var data DashboardData
	var g errgroup.Group
	g.Go(func() error {
		snap, err := cache.Refresh(ctx, silent)
		data.Incidents = snap
		return err
	})
	g.Go(func() error {
		list, err := events.Events(ctx, config.EventPageLimit, 0)
		if err != nil {
			if silent && !errors.Is(err, &authstate.AuthInvalidError{}) {
				data.EventsStale = true
				return nil
			}
			return err
		}
		data.Events = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return data, err
	}
	return data, nil
}
