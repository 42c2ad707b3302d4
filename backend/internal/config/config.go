/*
 * backend/internal/config/config.go
 *
 * Timing and sizing settings used across the backend synchronization subsystem.
 */

package config

import "time"

// Timing knobs for the polling scheduler and remote client.
const (
	// PollInterval is the cadence of the background polling tick that drives
	// analysis, incident refresh, and toast detection.
	PollInterval = 10 * time.Second

	// RequestTimeout bounds every remote API call issued by the client.
	RequestTimeout = 30 * time.Second

	// AnalysisWindowMinutes is the trailing window handed to the remote
	// analysis trigger on every tick. Analysis is advisory; failures are
	// swallowed by the scheduler.
	AnalysisWindowMinutes = 60

	// SettingsWatchDebounce coalesces bursts of settings.json change events
	// before the file is re-read.
	SettingsWatchDebounce = 500 * time.Millisecond
)

// DefaultServerURL is where the monitoring backend listens when the user has
// not configured one in settings.json.
const DefaultServerURL = "http://127.0.0.1:8000"

// Sizing knobs.
const (
	// IncidentPageLimit caps a single incident fetch. The remote collection is
	// small enough that one page covers it.
	IncidentPageLimit = 500

	// EventPageLimit caps a single event fetch used for dashboard aggregation.
	EventPageLimit = 500

	// RecentEventRows is how many events the dashboard's recent-events table shows.
	RecentEventRows = 20

	// LoggerMaxEntries bounds the in-memory application log ring.
	LoggerMaxEntries = 1000
)

// Toast lifecycle knobs.
const (
	// ToastDwell is how long a new-incident toast stays fully visible.
	ToastDwell = 6 * time.Second

	// ToastFade is the exit transition duration before a toast is discarded.
	ToastFade = 300 * time.Millisecond
)

// Aggregation knobs.
const (
	// HistogramWindowHours is the trailing window of the hour-bucketed chart.
	HistogramWindowHours = 24
)

// DisplayTimezoneOffset shifts hour-bucket labels into the fixed display
// timezone. Aggregation itself stays in UTC instants; only labels move.
const DisplayTimezoneOffset = 3 * time.Hour
