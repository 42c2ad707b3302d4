/*
 * backend/aggregate/aggregate.go
 *
 * Pure aggregation over incident/event snapshots. Every function takes its
 * inputs (including the reference time) explicitly and has no side effects,
 * so the chart layer renders from deterministic, independently testable data.
 */

package aggregate

import (
	"sort"
	"time"

	"github.com/argusdeck/app/backend/internal/config"
	"github.com/argusdeck/app/backend/internal/timeutil"
	"github.com/argusdeck/app/backend/model"
)

// hourLabelFormat renders a bucket's hour in the fixed display timezone.
const hourLabelFormat = "02 Jan 15:04"

// SeverityCount is one bucket of the severity breakdown.
type SeverityCount struct {
	Severity model.Severity `json:"severity"`
	Count    int            `json:"count"`
}

// CountBySeverity buckets incidents by severity in the fixed category order
// critical, high, medium, low. All four standard buckets are always present,
// zero-filled, so legends and axes stay stable. Unrecognized severities are
// never dropped: they accumulate in a trailing unknown bucket, which is
// appended only when non-empty.
func CountBySeverity(incidents []model.Incident) []SeverityCount {
	counts := make(map[model.Severity]int, len(model.SeverityOrder)+1)
	for _, inc := range incidents {
		counts[model.ParseSeverity(inc.Severity)]++
	}

	out := make([]SeverityCount, 0, len(model.SeverityOrder)+1)
	for _, sev := range model.SeverityOrder {
		out = append(out, SeverityCount{Severity: sev, Count: counts[sev]})
	}
	if unknown := counts[model.SeverityUnknown]; unknown > 0 {
		out = append(out, SeverityCount{Severity: model.SeverityUnknown, Count: unknown})
	}
	return out
}

// HourBucket is one hour of the stacked event histogram.
type HourBucket struct {
	// Start is the truncated hour instant; ordering uses it, never the label.
	Start time.Time `json:"start"`
	// Label is Start shifted into the fixed display timezone.
	Label    string `json:"label"`
	Critical int    `json:"critical"`
	High     int    `json:"high"`
	Medium   int    `json:"medium"`
	Low      int    `json:"low"`
}

// Total is the stacked height of the bucket.
func (b HourBucket) Total() int {
	return b.Critical + b.High + b.Medium + b.Low
}

// BucketByHour groups events into hour buckets over the trailing window
// ending at referenceNow. Events with a zero timestamp or older than the
// window are discarded; severities outside the four standard buckets are
// ignored for this series. Only hours with at least one qualifying event
// appear. The result is sorted newest-first by instant.
func BucketByHour(events []model.Event, windowHours int, referenceNow time.Time) []HourBucket {
	if windowHours <= 0 {
		windowHours = config.HistogramWindowHours
	}
	cutoff := referenceNow.Add(-time.Duration(windowHours) * time.Hour)

	buckets := make(map[time.Time]*HourBucket)
	for _, ev := range events {
		if ev.TS.IsZero() || ev.TS.Before(cutoff) {
			continue
		}
		sev := model.ParseSeverity(ev.Severity)
		if !sev.IsStandard() {
			continue
		}

		hour := timeutil.TruncateToHour(ev.TS.UTC())
		b := buckets[hour]
		if b == nil {
			b = &HourBucket{
				Start: hour,
				Label: hour.Add(config.DisplayTimezoneOffset).Format(hourLabelFormat),
			}
			buckets[hour] = b
		}
		switch sev {
		case model.SeverityCritical:
			b.Critical++
		case model.SeverityHigh:
			b.High++
		case model.SeverityMedium:
			b.Medium++
		case model.SeverityLow:
			b.Low++
		}
	}

	out := make([]HourBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.After(out[j].Start)
	})
	return out
}

// DashboardStats summarizes the snapshot for the dashboard stat tiles.
type DashboardStats struct {
	TotalEvents    int  `json:"totalEvents"`
	TotalIncidents int  `json:"totalIncidents"`
	IncidentsToday int  `json:"incidentsToday"`
	HasCritical    bool `json:"hasCritical"`
}

// ComputeDashboardStats derives the stat tiles from one consistent snapshot.
// "Today" means the same calendar day as referenceNow in its timezone.
func ComputeDashboardStats(events []model.Event, incidents []model.Incident, referenceNow time.Time) DashboardStats {
	stats := DashboardStats{
		TotalEvents:    len(events),
		TotalIncidents: len(incidents),
	}
	for _, inc := range incidents {
		if !inc.DetectedAt.IsZero() && timeutil.SameDay(referenceNow, inc.DetectedAt) {
			stats.IncidentsToday++
		}
		if model.ParseSeverity(inc.Severity) == model.SeverityCritical {
			stats.HasCritical = true
		}
	}
	return stats
}

// EventTypeCount is one entry of the event-type tally.
type EventTypeCount struct {
	EventType string `json:"eventType"`
	Count     int    `json:"count"`
}

// CountByEventType tallies events per type, sorted by count descending and
// then by type name so the panel ordering is deterministic. Empty types
// count as "unknown".
func CountByEventType(events []model.Event) []EventTypeCount {
	counts := make(map[string]int)
	for _, ev := range events {
		name := ev.EventType
		if name == "" {
			name = "unknown"
		}
		counts[name]++
	}

	out := make([]EventTypeCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, EventTypeCount{EventType: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].EventType < out[j].EventType
	})
	return out
}
