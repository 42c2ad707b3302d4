package route

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/argusdeck/app/backend/model"
)

var titleCaser = cases.Title(language.English)

// detailPlaceKeys are the detail fields that can carry the affected
// service/process/application name, in lookup priority order.
var detailPlaceKeys = []string{"service", "process", "program", "application"}

// Describe synthesizes a human phrase for an incident. Known incident types
// get a tailored description enriched from the details mapping; everything
// else falls back to the raw description or a title-cased type name.
func Describe(inc model.Incident) string {
	details := inc.Details
	switch inc.IncidentType {
	case "multiple_failed_logins":
		return "multiple failed login attempts"
	case "repeated_network_errors":
		window := detailInt(details, "window_minutes", 60)
		if count, ok := detailIntOK(details, "events_count"); ok {
			return fmt.Sprintf("repeated network errors: %d events in the last %d minutes", count, window)
		}
		return "repeated network errors"
	case "service_crash_or_restart":
		if place := DetailPlace(inc); place != "" {
			return fmt.Sprintf("crash or restart of service %s", place)
		}
		return "service crash or restart"
	}
	if inc.Description != "" {
		return inc.Description
	}
	if inc.IncidentType != "" {
		return "security incident: " + titleCaser.String(strings.ReplaceAll(inc.IncidentType, "_", " "))
	}
	return "security incident"
}

// DetailPlace extracts the affected service/process/application name from
// the open details mapping, or "" when none is recorded.
func DetailPlace(inc model.Incident) string {
	for _, key := range detailPlaceKeys {
		if v, ok := inc.Details[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func detailInt(details map[string]any, key string, fallback int) int {
	if n, ok := detailIntOK(details, key); ok {
		return n
	}
	return fallback
}

func detailIntOK(details map[string]any, key string) (int, bool) {
	v, ok := details[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		// JSON numbers decode as float64.
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

// FilterIncidents restricts a snapshot to the state's severity, applies the
// free-text query, and sorts by detection time descending. The query is
// matched case-insensitively against the synthesized description, the raw
// description fields, and the details place name.
func FilterIncidents(incidents []model.Incident, state State, query string) []model.Incident {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]model.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if !state.Matches(inc) {
			continue
		}
		if query != "" && !matchesQuery(inc, query) {
			continue
		}
		out = append(out, inc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DetectedAt.After(out[j].DetectedAt)
	})
	return out
}

func matchesQuery(inc model.Incident, loweredQuery string) bool {
	haystack := strings.ToLower(strings.Join([]string{
		Describe(inc),
		inc.Description,
		inc.FriendlyDescription,
		DetailPlace(inc),
	}, " "))
	return strings.Contains(haystack, loweredQuery)
}
