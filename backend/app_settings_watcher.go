package backend

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/argusdeck/app/backend/internal/config"
)

// settingsWatcher reloads settings.json when it changes on disk, so edits made
// outside the app (or by another instance) take effect without a restart.
// Events are debounced because editors and the atomic-write path both produce
// bursts of create/write/rename notifications.
type settingsWatcher struct {
	app       *App
	watcher   *fsnotify.Watcher
	filename  string
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func newSettingsWatcher(app *App) (*settingsWatcher, error) {
	path, err := app.getSettingsFilePath()
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w := &settingsWatcher{
		app:       app,
		watcher:   fsWatcher,
		filename:  filepath.Base(path),
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}

	go w.eventLoop()
	return w, nil
}

func (w *settingsWatcher) eventLoop() {
	defer close(w.stoppedCh)

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isRelevantSettingsEvent(event) {
				continue
			}
			if filepath.Base(event.Name) != w.filename {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(config.SettingsWatchDebounce)
			debounceCh = debounceTimer.C

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.app != nil && w.app.logger != nil {
				w.app.logger.Warn("settings watcher error", "SettingsWatcher")
			}

		case <-debounceCh:
			debounceCh = nil
			w.app.reloadSettingsFromDisk()
		}
	}
}

func isRelevantSettingsEvent(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0
}

func (w *settingsWatcher) stop() {
	select {
	case <-w.stopCh:
		return
	default:
		close(w.stopCh)
	}
	_ = w.watcher.Close()
	<-w.stoppedCh
}

// reloadSettingsFromDisk re-reads settings.json and applies changes the
// frontend and client need to see (server URL, theme).
func (a *App) reloadSettingsFromDisk() {
	settings, err := a.loadSettingsFile()
	if err != nil {
		a.logger.Warn(fmt.Sprintf("Failed to reload settings: %v", err), "SettingsWatcher")
		return
	}

	a.settingsMu.Lock()
	previousURL := ""
	if a.appSettings != nil {
		previousURL = a.appSettings.ServerURL
	}
	a.appSettings = &AppSettings{
		Theme:     settings.Preferences.Theme,
		ServerURL: settings.Server.URL,
	}
	applied := *a.appSettings
	a.settingsMu.Unlock()

	if settings.Server.URL != previousURL {
		a.logger.Info(fmt.Sprintf("Server URL updated from settings file: %s", settings.Server.URL), "SettingsWatcher")
		a.client.SetBaseURL(settings.Server.URL)
	}

	a.emitEvent("settings-changed", applied)
}
