package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/argusdeck/app/backend/model"
	"github.com/argusdeck/app/backend/route"
)

func TestGetDashboardAssemblesPayload(t *testing.T) {
	fb := newFakeBackend(t)
	now := time.Now().UTC()
	fb.setIncidents([]model.Incident{
		{ID: 1, IncidentType: "multiple_failed_logins", Severity: "critical", DetectedAt: now},
		{ID: 2, IncidentType: "service_crash_or_restart", Severity: "low", DetectedAt: now.Add(-time.Hour)},
	})
	fb.mu.Lock()
	fb.events = []model.Event{
		{ID: 10, TS: now, EventType: "login_failed", Severity: "high"},
		{ID: 11, TS: now.Add(-2 * time.Hour), EventType: "login_failed", Severity: "low"},
	}
	fb.mu.Unlock()
	app := newPollingTestApp(t, fb)

	view, err := app.GetDashboard()
	require.NoError(t, err)

	require.Equal(t, 2, view.Stats.TotalIncidents)
	require.Equal(t, 2, view.Stats.TotalEvents)
	require.False(t, view.Pie.Empty())
	require.Equal(t, 2, view.Pie.Total)
	require.Len(t, view.HourBuckets, 2)
	require.Len(t, view.EventTypes, 1)
	require.Equal(t, "login_failed", view.EventTypes[0].EventType)
	require.Len(t, view.RecentEvents, 2)
	require.Empty(t, view.LastError)
}

func TestNavigationRoundTrip(t *testing.T) {
	app := newTestApp(t)

	require.Equal(t, "#dashboard", app.CurrentAddress())

	address := app.Navigate(route.IntentIncidents, "high")
	require.Equal(t, "#incidents?mode=summary&severity=high", address)

	address = app.Navigate(route.IntentIncidentsList, "high")
	require.Equal(t, "#incidents?mode=list&severity=high", address)

	// Restoring the serialized address lands on the identical state.
	restored := app.OpenAddress(address)
	require.Equal(t, address, restored)

	require.Equal(t, "#dashboard", app.OpenAddress("#garbage"))
}

func TestListIncidentsFiltersByRouteAndQuery(t *testing.T) {
	fb := newFakeBackend(t)
	now := time.Now().UTC()
	fb.setIncidents([]model.Incident{
		{ID: 1, IncidentType: "multiple_failed_logins", Severity: "critical", DetectedAt: now,
			Details: map[string]any{"failed_count": float64(12)}},
		{ID: 2, IncidentType: "service_crash_or_restart", Severity: "low", DetectedAt: now.Add(-time.Hour),
			Details: map[string]any{"service": "nginx"}},
	})
	app := newPollingTestApp(t, fb)
	app.runPollIteration(context.Background())

	app.Navigate(route.IntentIncidents, "critical")
	rows := app.ListIncidents("")
	require.Len(t, rows, 1)
	require.Equal(t, int64(1), rows[0].Incident.ID)
	require.NotEmpty(t, rows[0].Summary)

	app.Navigate(route.IntentIncidents, "all")
	rows = app.ListIncidents("nginx")
	require.Len(t, rows, 1)
	require.Equal(t, "nginx", rows[0].Place)
}

func TestHitTestPieMapsPointerToSeverity(t *testing.T) {
	fb := newFakeBackend(t)
	fb.setIncidents([]model.Incident{
		{ID: 1, Severity: "critical", DetectedAt: time.Now().UTC()},
	})
	app := newPollingTestApp(t, fb)
	app.runPollIteration(context.Background())

	// A single slice covers the whole disc, so any in-radius point hits it.
	require.Equal(t, "critical", app.HitTestPie(10, 10, 100))
	require.Empty(t, app.HitTestPie(200, 200, 100))
}

func TestBuildHistogramUsesLastFetchedEvents(t *testing.T) {
	fb := newFakeBackend(t)
	now := time.Now().UTC()
	fb.mu.Lock()
	fb.events = []model.Event{
		{ID: 1, TS: now, EventType: "login_failed", Severity: "high"},
	}
	fb.mu.Unlock()
	app := newPollingTestApp(t, fb)

	// Before any fetch the chart reports no data.
	require.True(t, app.BuildHistogram(800, 200).NoData)

	app.runPollIteration(context.Background())

	hist := app.BuildHistogram(800, 200)
	require.False(t, hist.NoData)
	require.Len(t, hist.Bars, 1)
}

func TestActiveToastsAdvanceLifecycle(t *testing.T) {
	app := newTestApp(t)
	app.toasts.Push(model.Incident{ID: 3, Severity: "medium"}, "repeated network errors")

	toasts := app.ActiveToasts()
	require.Len(t, toasts, 1)
	require.Equal(t, int64(3), toasts[0].IncidentID)
}
