package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/argusdeck/app/backend/model"
)

func TestCountBySeverityEmptyInput(t *testing.T) {
	counts := CountBySeverity(nil)

	require.Len(t, counts, 4, "all four standard buckets present even with no incidents")
	for i, sev := range model.SeverityOrder {
		require.Equal(t, sev, counts[i].Severity)
		require.Zero(t, counts[i].Count)
	}
}

func TestCountBySeverityUnknownOverflow(t *testing.T) {
	incidents := []model.Incident{
		{ID: 1, Severity: "critical"},
		{ID: 2, Severity: "critical"},
		{ID: 3, Severity: "low"},
		{ID: 4, Severity: "warning"},
		{ID: 5, Severity: ""},
	}

	counts := CountBySeverity(incidents)
	require.Len(t, counts, 5)
	require.Equal(t, model.SeverityCritical, counts[0].Severity)
	require.Equal(t, 2, counts[0].Count)
	require.Equal(t, 1, counts[3].Count) // low
	require.Equal(t, model.SeverityUnknown, counts[4].Severity)
	require.Equal(t, 2, counts[4].Count, "unrecognized severities are counted, not dropped")
}

func TestBucketByHourWindow(t *testing.T) {
	now := time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC)
	events := []model.Event{
		{ID: 1, Severity: "critical", TS: now.Add(-time.Hour)},
		{ID: 2, Severity: "low", TS: now.Add(-25 * time.Hour)},
	}

	buckets := BucketByHour(events, 24, now)
	require.Len(t, buckets, 1, "the 25h-old event is outside the window")
	require.Equal(t, 1, buckets[0].Critical)
	require.Zero(t, buckets[0].Low)
	require.Equal(t, time.Date(2024, 3, 9, 11, 0, 0, 0, time.UTC), buckets[0].Start)
}

func TestBucketByHourLabelsAndOrder(t *testing.T) {
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	events := []model.Event{
		{ID: 1, Severity: "low", TS: time.Date(2024, 3, 9, 8, 15, 0, 0, time.UTC)},
		{ID: 2, Severity: "high", TS: time.Date(2024, 3, 9, 11, 45, 0, 0, time.UTC)},
		{ID: 3, Severity: "medium", TS: time.Date(2024, 3, 9, 11, 5, 0, 0, time.UTC)},
	}

	buckets := BucketByHour(events, 24, now)
	require.Len(t, buckets, 2)

	// Newest-first by instant.
	require.Equal(t, time.Date(2024, 3, 9, 11, 0, 0, 0, time.UTC), buckets[0].Start)
	require.Equal(t, time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC), buckets[1].Start)

	// Labels carry the fixed +03:00 display offset.
	require.Equal(t, "09 Mar 14:00", buckets[0].Label)
	require.Equal(t, "09 Mar 11:00", buckets[1].Label)

	require.Equal(t, 1, buckets[0].High)
	require.Equal(t, 1, buckets[0].Medium)
	require.Equal(t, 2, buckets[0].Total())
}

func TestBucketByHourSkipsZeroAndNonStandard(t *testing.T) {
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	events := []model.Event{
		{ID: 1, Severity: "critical"}, // zero timestamp
		{ID: 2, Severity: "warning", TS: now.Add(-time.Hour)},
	}
	require.Empty(t, BucketByHour(events, 24, now))
}

func TestComputeDashboardStats(t *testing.T) {
	now := time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC)
	incidents := []model.Incident{
		{ID: 1, Severity: "critical", DetectedAt: now.Add(-2 * time.Hour)},
		{ID: 2, Severity: "low", DetectedAt: now.Add(-30 * time.Hour)},
	}
	events := []model.Event{{ID: 1}, {ID: 2}, {ID: 3}}

	stats := ComputeDashboardStats(events, incidents, now)
	require.Equal(t, 3, stats.TotalEvents)
	require.Equal(t, 2, stats.TotalIncidents)
	require.Equal(t, 1, stats.IncidentsToday)
	require.True(t, stats.HasCritical)
}

func TestCountByEventTypeDeterministic(t *testing.T) {
	events := []model.Event{
		{EventType: "network_error"},
		{EventType: "network_error"},
		{EventType: "auth_failed"},
		{EventType: ""},
	}

	counts := CountByEventType(events)
	require.Equal(t, []EventTypeCount{
		{EventType: "network_error", Count: 2},
		{EventType: "auth_failed", Count: 1},
		{EventType: "unknown", Count: 1},
	}, counts)
}
