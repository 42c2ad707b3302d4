/*
 * backend/route/route.go
 *
 * View-routing state machine. Navigation intents map to a small set of
 * states, and every reachable state serializes to a fragment-style address
 * and parses back losslessly. The router never touches data; it only selects
 * what the incident cache's current snapshot is rendered into.
 */

package route

import (
	"net/url"
	"strings"

	"github.com/argusdeck/app/backend/model"
)

// View identifies the active screen.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewIncidents View = "incidents"
)

// Mode selects the incident-list presentation.
type Mode string

const (
	ModeSummary Mode = "summary"
	ModeList    Mode = "list"
)

// SeverityAll means the incident list is unfiltered.
const SeverityAll = "all"

// State is the complete routing state. The zero-value-ish Dashboard state is
// the initial state when no address is present.
type State struct {
	View     View   `json:"view"`
	Severity string `json:"severity"`
	Mode     Mode   `json:"mode"`
}

// Dashboard returns the initial state.
func Dashboard() State {
	return State{View: ViewDashboard}
}

// Incidents returns the incident list in summary mode for a severity.
func Incidents(severity string) State {
	return State{View: ViewIncidents, Severity: normalizeSeverity(severity), Mode: ModeSummary}
}

// IncidentsList returns the incident list in full-list mode for a severity.
func IncidentsList(severity string) State {
	return State{View: ViewIncidents, Severity: normalizeSeverity(severity), Mode: ModeList}
}

func normalizeSeverity(severity string) string {
	severity = strings.ToLower(strings.TrimSpace(severity))
	if severity == "" {
		return SeverityAll
	}
	return severity
}

// Serialize renders the state as a fragment-style address:
// "#dashboard" or "#incidents?severity=S&mode=M".
func (s State) Serialize() string {
	if s.View != ViewIncidents {
		return "#" + string(ViewDashboard)
	}
	values := url.Values{}
	values.Set("severity", normalizeSeverity(s.Severity))
	mode := s.Mode
	if mode != ModeList {
		mode = ModeSummary
	}
	values.Set("mode", string(mode))
	return "#" + string(ViewIncidents) + "?" + values.Encode()
}

// Parse derives a state from an address string. Unknown views, a missing
// address, or a bare "#" all land on the dashboard; a missing severity means
// unfiltered and a missing mode means summary, so Parse(Serialize(s)) == s
// for every reachable state.
func Parse(address string) State {
	address = strings.TrimPrefix(strings.TrimSpace(address), "#")
	if address == "" {
		return Dashboard()
	}

	path, rawQuery, _ := strings.Cut(address, "?")
	if View(path) != ViewIncidents {
		return Dashboard()
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}
	severity := normalizeSeverity(values.Get("severity"))
	mode := ModeSummary
	if Mode(values.Get("mode")) == ModeList {
		mode = ModeList
	}
	return State{View: ViewIncidents, Severity: severity, Mode: mode}
}

// Intent is a typed navigation gesture from the frontend. A single
// dispatcher maps intents to state transitions so the state machine stays
// the only source of truth.
type Intent struct {
	Name     string `json:"name"`
	Severity string `json:"severity,omitempty"`
}

// Intent names accepted by Apply.
const (
	IntentDashboard     = "dashboard"
	IntentIncidents     = "incidents"
	IntentIncidentsList = "incidents-list"
)

// Apply maps an intent onto the current state. Unknown intents keep the
// state unchanged.
func Apply(current State, intent Intent) State {
	switch intent.Name {
	case IntentDashboard:
		return Dashboard()
	case IntentIncidents:
		return Incidents(intent.Severity)
	case IntentIncidentsList:
		return IncidentsList(intent.Severity)
	default:
		return current
	}
}

// Matches reports whether an incident belongs to the state's severity
// filter.
func (s State) Matches(inc model.Incident) bool {
	if s.View != ViewIncidents || s.Severity == SeverityAll {
		return true
	}
	return string(model.ParseSeverity(inc.Severity)) == s.Severity
}
