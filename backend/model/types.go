/*
 * backend/model/types.go
 *
 * Wire-level domain types shared between the remote client, the incident
 * cache, and the view layer. Incidents and events are immutable once
 * received; the backend only ever learns of new ones via re-fetch.
 */

package model

import "time"

// Severity is the ordinal urgency classification of an incident or event.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	// SeverityUnknown is the overflow bucket for values outside the fixed set.
	// Unrecognized severities are counted here, never folded into low.
	SeverityUnknown Severity = "unknown"
)

// SeverityOrder is the single fixed iteration order for severity-keyed
// rendering. Never alphabetical, never insertion order: the visual meaning of
// legends and axes depends on this staying stable.
var SeverityOrder = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// ParseSeverity normalizes a raw severity string. Anything outside the fixed
// four-value set maps to SeverityUnknown.
func ParseSeverity(raw string) Severity {
	switch Severity(raw) {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return Severity(raw)
	default:
		return SeverityUnknown
	}
}

// IsStandard reports whether s is one of the four standard severities.
func (s Severity) IsStandard() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Incident is a server-derived security finding aggregating one or more raw
// events. IDs are unique and stable across fetches.
type Incident struct {
	ID                  int64          `json:"id"`
	IncidentType        string         `json:"incident_type"`
	Severity            string         `json:"severity"`
	DetectedAt          time.Time      `json:"detected_at"`
	Description         string         `json:"description"`
	FriendlyDescription string         `json:"friendly_description,omitempty"`
	Details             map[string]any `json:"details,omitempty"`
}

// Event is a raw observed occurrence ingested upstream.
type Event struct {
	ID             int64     `json:"id"`
	TS             time.Time `json:"ts"`
	EventType      string    `json:"event_type"`
	Severity       string    `json:"severity"`
	SourceCategory string    `json:"source_category,omitempty"`
	SourceOS       string    `json:"source_os,omitempty"`
	Status         string    `json:"status,omitempty"`
}

// Principal identifies the authenticated user.
type Principal struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// AnalysisResult is the response of a remote analysis trigger.
type AnalysisResult struct {
	IncidentsFound int `json:"incidents_found"`
}

// CollectResult is the response of a file-collection request.
type CollectResult struct {
	CollectedCount int `json:"collected_count"`
	SavedCount     int `json:"saved_count"`
}
