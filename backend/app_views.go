package backend

import (
	"time"

	"github.com/argusdeck/app/backend/aggregate"
	"github.com/argusdeck/app/backend/chart"
	"github.com/argusdeck/app/backend/internal/config"
	"github.com/argusdeck/app/backend/model"
	"github.com/argusdeck/app/backend/notify"
	"github.com/argusdeck/app/backend/refresh"
	"github.com/argusdeck/app/backend/route"
)

// DashboardView is the single payload the dashboard renders from. The backend
// computes every derived number so the frontend only draws.
type DashboardView struct {
	GeneratedAt    time.Time                  `json:"generatedAt"`
	Stats          aggregate.DashboardStats   `json:"stats"`
	SeverityCounts []aggregate.SeverityCount  `json:"severityCounts"`
	Pie            chart.Pie                  `json:"pie"`
	HourBuckets    []aggregate.HourBucket     `json:"hourBuckets"`
	EventTypes     []aggregate.EventTypeCount `json:"eventTypes"`
	RecentEvents   []model.Event              `json:"recentEvents"`
	LastError      string                     `json:"lastError,omitempty"`
}

// IncidentRow is one incident prepared for the list view.
type IncidentRow struct {
	Incident model.Incident `json:"incident"`
	Summary  string         `json:"summary"`
	Place    string         `json:"place,omitempty"`
}

// buildDashboardView assembles the dashboard payload from one fetch.
func (a *App) buildDashboardView(data refresh.DashboardData) DashboardView {
	now := a.now()
	counts := aggregate.CountBySeverity(data.Incidents.Incidents)

	a.eventsMu.Lock()
	if data.EventsStale {
		// Keep rendering from the last event page we managed to load.
		data.Events = a.lastEvents
	} else {
		a.lastEvents = data.Events
	}
	a.eventsMu.Unlock()

	recent := data.Events
	if len(recent) > config.RecentEventRows {
		recent = recent[:config.RecentEventRows]
	}

	return DashboardView{
		GeneratedAt:    now,
		Stats:          aggregate.ComputeDashboardStats(data.Events, data.Incidents.Incidents, now),
		SeverityCounts: counts,
		Pie:            chart.BuildPie(counts),
		HourBuckets:    aggregate.BucketByHour(data.Events, config.HistogramWindowHours, now),
		EventTypes:     aggregate.CountByEventType(data.Events),
		RecentEvents:   recent,
		LastError:      data.Incidents.LastError,
	}
}

// GetDashboard refreshes both feeds and returns the assembled dashboard.
// Unlike the background poll this surfaces fetch errors to the caller.
func (a *App) GetDashboard() (DashboardView, error) {
	data, err := refresh.FetchDashboard(a.CtxOrBackground(), a.cache, a.client, false)
	if err != nil {
		return DashboardView{}, err
	}
	return a.buildDashboardView(data), nil
}

// Navigate applies a navigation intent and returns the new fragment address.
func (a *App) Navigate(name string, severity string) string {
	next := route.Apply(a.currentRoute(), route.Intent{Name: name, Severity: severity})
	a.setRoute(next)
	address := next.Serialize()
	a.logger.Debug("Navigated to "+address, "Router")
	a.emitEvent("route-changed", address)
	return address
}

// OpenAddress restores router state from a fragment address, e.g. on startup
// or when the user activates a deep link. Unknown addresses land on the
// dashboard rather than erroring.
func (a *App) OpenAddress(address string) string {
	next := route.Parse(address)
	a.setRoute(next)
	return next.Serialize()
}

// CurrentAddress returns the fragment address for the active router state.
func (a *App) CurrentAddress() string {
	return a.currentRoute().Serialize()
}

// ListIncidents returns cached incidents filtered by the active route and an
// optional free-text query, newest first, decorated for display.
func (a *App) ListIncidents(query string) []IncidentRow {
	snap := a.cache.Snapshot()
	filtered := route.FilterIncidents(snap.Incidents, a.currentRoute(), query)

	rows := make([]IncidentRow, len(filtered))
	for i, inc := range filtered {
		rows[i] = IncidentRow{
			Incident: inc,
			Summary:  route.Describe(inc),
			Place:    route.DetailPlace(inc),
		}
	}
	return rows
}

// HitTestPie maps a pointer position (relative to the pie center) to the
// severity slice under it. The empty string means no slice was hit.
func (a *App) HitTestPie(x, y, radius float64) string {
	snap := a.cache.Snapshot()
	pie := chart.BuildPie(aggregate.CountBySeverity(snap.Incidents))
	slice, ok := pie.HitTest(x, y, radius)
	if !ok {
		return ""
	}
	return string(slice.Severity)
}

// BuildHistogram lays out the hour-bucketed chart for the given plot size
// from the most recent event fetch. Exposed so the frontend can relayout on
// resize without refetching.
func (a *App) BuildHistogram(plotWidth, plotHeight float64) chart.Histogram {
	a.eventsMu.Lock()
	events := a.lastEvents
	a.eventsMu.Unlock()

	buckets := aggregate.BucketByHour(events, config.HistogramWindowHours, a.now())
	return chart.BuildHistogram(buckets, plotWidth, plotHeight)
}

// ActiveToasts advances the toast lifecycle and returns what should be on
// screen. The frontend calls this on every render pass.
func (a *App) ActiveToasts() []notify.Toast {
	return a.toasts.Advance(a.now())
}
