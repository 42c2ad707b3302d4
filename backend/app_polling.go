package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/argusdeck/app/backend/internal/authstate"
	"github.com/argusdeck/app/backend/internal/config"
	"github.com/argusdeck/app/backend/internal/timeutil"
	"github.com/argusdeck/app/backend/refresh"
	"github.com/argusdeck/app/backend/route"
)

// startPolling launches the background polling loop and the midnight rollover
// timer. Safe to call repeatedly; a running loop is left alone.
func (a *App) startPolling() {
	a.pollMu.Lock()
	if a.pollCancel != nil {
		a.pollMu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.pollCancel = cancel
	a.pollMu.Unlock()

	a.logger.Info("Polling started", "Polling")
	go a.runPollingLoop(ctx)
	a.scheduleMidnightRollover()
}

// stopPolling cancels the loop and the rollover timer. Called on logout, on
// auth invalidation, and during shutdown.
func (a *App) stopPolling() {
	a.pollMu.Lock()
	defer a.pollMu.Unlock()
	if a.pollCancel != nil {
		a.pollCancel()
		a.pollCancel = nil
		a.logger.Info("Polling stopped", "Polling")
	}
	if a.midnightTimer != nil {
		a.midnightTimer.Stop()
		a.midnightTimer = nil
	}
}

// runPollingLoop fires one iteration immediately so the UI has data right
// after login, then repeats every config.PollInterval until ctx is cancelled.
func (a *App) runPollingLoop(ctx context.Context) {
	a.runPollIteration(ctx)

	ticker := time.NewTicker(config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.runPollIteration(ctx)
		}
	}
}

// runPollIteration is one scheduler tick:
//  1. Trigger a remote analysis pass over the trailing window (best effort).
//  2. Refresh incidents and events in one silent fetch.
//  3. Push the rebuilt dashboard payload to the frontend.
//  4. Detect never-before-seen incidents and enqueue toasts for them.
//
// A tick that starts while the previous one is still in flight is skipped,
// not queued; the next ticker fire covers it.
func (a *App) runPollIteration(ctx context.Context) {
	a.pollMu.Lock()
	if a.pollInFlight {
		a.pollMu.Unlock()
		a.logger.Debug("Poll tick skipped, previous iteration still running", "Polling")
		return
	}
	a.pollInFlight = true
	a.pollMu.Unlock()

	defer func() {
		a.pollMu.Lock()
		a.pollInFlight = false
		a.pollMu.Unlock()
	}()

	// Analysis is advisory. The dashboard renders whatever the backend has
	// even when the analyzer is down.
	if _, err := a.client.RunAnalysis(ctx, config.AnalysisWindowMinutes); err != nil {
		a.logger.Debug(fmt.Sprintf("Analysis trigger failed: %v", err), "Polling")
	}

	data, err := refresh.FetchDashboard(ctx, a.cache, a.client, true)
	if err != nil {
		if errors.Is(err, &authstate.AuthInvalidError{}) {
			// The transport already reported the failure; onAuthInvalid is
			// stopping this loop.
			return
		}
		a.logger.Warn(fmt.Sprintf("Poll fetch failed: %v", err), "Polling")
		return
	}

	a.emitEvent("dashboard-updated", a.buildDashboardView(data))

	fresh, detectErr := a.detector.DetectNew(data.Incidents.Incidents)
	if detectErr != nil {
		a.logger.Warn(fmt.Sprintf("Failed to persist seen incidents: %v", detectErr), "Polling")
	}
	for _, inc := range fresh {
		a.toasts.Push(inc, route.Describe(inc))
	}
	if len(fresh) > 0 {
		a.logger.Info(fmt.Sprintf("%d new incident(s) detected", len(fresh)), "Polling")
		a.emitEvent("incidents-new", fresh)
	}
}

// scheduleMidnightRollover arms a one-shot timer for the next local midnight.
// On fire it tells the frontend the day changed (date headers, relative
// labels), forces a fresh poll, and re-arms itself for the following night.
func (a *App) scheduleMidnightRollover() {
	delay := time.Until(timeutil.NextMidnight(a.now()))
	timer := time.AfterFunc(delay, func() {
		a.pollMu.Lock()
		stopped := a.pollCancel == nil
		a.pollMu.Unlock()
		if stopped {
			return
		}
		a.logger.Info("Midnight rollover", "Polling")
		a.emitEvent("day-rollover")
		a.runPollIteration(context.Background())
		a.scheduleMidnightRollover()
	})

	a.pollMu.Lock()
	if a.midnightTimer != nil {
		a.midnightTimer.Stop()
	}
	a.midnightTimer = timer
	a.pollMu.Unlock()
}
