package backend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/argusdeck/app/backend/internal/authstate"
	"github.com/argusdeck/app/backend/internal/config"
	"github.com/argusdeck/app/backend/model"
	"github.com/argusdeck/app/backend/refresh"
	"github.com/argusdeck/app/backend/route"
)

// Login verifies credentials against the backend, persists them on success,
// and starts the polling loop.
func (a *App) Login(username, password string) (*model.Principal, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	// Install the candidate credentials so the transport sends them, keeping
	// the previous ones around in case verification fails.
	a.persistenceMu.Lock()
	previous := a.credentials
	a.credentials = &authstate.Credentials{Username: username, Password: password}
	a.persistenceMu.Unlock()

	principal, err := a.client.Me(a.CtxOrBackground())
	if err != nil {
		a.persistenceMu.Lock()
		a.credentials = previous
		a.persistenceMu.Unlock()
		if errors.Is(err, &authstate.AuthInvalidError{}) {
			return nil, fmt.Errorf("invalid username or password")
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}

	a.auth.Reset()
	if err := a.setCredentials(&authstate.Credentials{Username: username, Password: password}); err != nil {
		a.logger.Warn(fmt.Sprintf("Failed to persist credentials: %v", err), "Auth")
	}

	a.logger.Info("Logged in as "+principal.Username, "Auth")
	a.emitEvent("auth-valid", principal)
	a.startPolling()
	return principal, nil
}

// Logout ends the session: polling stops and the stored login is removed.
func (a *App) Logout() error {
	a.stopPolling()
	if err := a.setCredentials(nil); err != nil {
		return err
	}
	a.auth.ReportFailure("logged out")
	a.logger.Info("Logged out", "Auth")
	return nil
}

// CurrentUser returns the authenticated principal, or an error when the
// session is not valid.
func (a *App) CurrentUser() (*model.Principal, error) {
	return a.client.Me(a.CtxOrBackground())
}

// HasStoredCredentials reports whether a saved login exists, so the frontend
// can attempt an automatic session restore on startup.
func (a *App) HasStoredCredentials() bool {
	a.persistenceMu.Lock()
	defer a.persistenceMu.Unlock()
	return a.credentials != nil
}

// RestoreSession validates the stored login and starts polling when it still
// works.
func (a *App) RestoreSession() (*model.Principal, error) {
	if !a.HasStoredCredentials() {
		return nil, fmt.Errorf("no stored credentials")
	}

	principal, err := a.client.Me(a.CtxOrBackground())
	if err != nil {
		return nil, err
	}

	a.auth.Reset()
	a.logger.Info("Session restored for "+principal.Username, "Auth")
	a.startPolling()
	return principal, nil
}

// RunAnalysis triggers an on-demand analysis pass over the trailing window
// and refreshes the dashboard with whatever it produced.
func (a *App) RunAnalysis() (*model.AnalysisResult, error) {
	result, err := a.client.RunAnalysis(a.CtxOrBackground(), config.AnalysisWindowMinutes)
	if err != nil {
		return nil, err
	}

	a.logger.Info(fmt.Sprintf("Analysis found %d incident(s)", result.IncidentsFound), "Actions")

	data, fetchErr := refresh.FetchDashboard(a.CtxOrBackground(), a.cache, a.client, false)
	if fetchErr != nil {
		a.logger.Warn(fmt.Sprintf("Refresh after analysis failed: %v", fetchErr), "Actions")
		return result, nil
	}
	a.emitEvent("dashboard-updated", a.buildDashboardView(data))

	if fresh, detectErr := a.detector.DetectNew(data.Incidents.Incidents); detectErr == nil {
		for _, inc := range fresh {
			a.toasts.Push(inc, route.Describe(inc))
		}
	}
	return result, nil
}

// CollectFileEvents asks the backend to ingest a log file from its local
// filesystem, then reloads the event feed.
func (a *App) CollectFileEvents(filePath string, maxLines int) (*model.CollectResult, error) {
	trimmed := strings.TrimSpace(filePath)
	if trimmed == "" {
		return nil, fmt.Errorf("file path is required")
	}

	result, err := a.client.CollectFile(a.CtxOrBackground(), trimmed, maxLines)
	if err != nil {
		return nil, err
	}

	a.logger.Info(fmt.Sprintf("Collected %d event(s), saved %d", result.CollectedCount, result.SavedCount), "Actions")

	if data, fetchErr := refresh.FetchDashboard(a.CtxOrBackground(), a.cache, a.client, false); fetchErr == nil {
		a.emitEvent("dashboard-updated", a.buildDashboardView(data))
	}
	return result, nil
}

// LoadEvents fetches one page of raw events for the event browser.
func (a *App) LoadEvents(limit, offset int) ([]model.Event, error) {
	if limit <= 0 || limit > config.EventPageLimit {
		limit = config.EventPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return a.client.Events(a.CtxOrBackground(), limit, offset)
}
