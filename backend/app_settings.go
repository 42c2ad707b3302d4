package backend

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/argusdeck/app/backend/internal/config"
)

var (
	runtimeWindowGetPosition = runtime.WindowGetPosition
	runtimeWindowGetSize     = runtime.WindowGetSize
	runtimeWindowIsMaximised = runtime.WindowIsMaximised
)

const settingsSchemaVersion = 1

// WindowSettings captures the restored window geometry.
type WindowSettings struct {
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	Maximized bool `json:"maximized"`
}

// AppSettings is the user-facing preference set exposed to the frontend.
type AppSettings struct {
	Theme     string `json:"theme"`
	ServerURL string `json:"serverUrl"`
}

// ThemeInfo reports the effective theme to the frontend.
type ThemeInfo struct {
	CurrentTheme string `json:"currentTheme"`
	UserTheme    string `json:"userTheme"`
}

// settingsFile captures the persisted application settings stored in settings.json.
type settingsFile struct {
	SchemaVersion int                 `json:"schemaVersion"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	Preferences   settingsPreferences `json:"preferences"`
	Server        settingsServer      `json:"server"`
	UI            settingsUI          `json:"ui"`
}

type settingsPreferences struct {
	Theme string `json:"theme"`
}

type settingsServer struct {
	URL string `json:"url"`
}

type settingsUI struct {
	Window WindowSettings `json:"window"`
}

// defaultSettingsFile provides a fully-populated settings file with safe defaults.
func defaultSettingsFile() *settingsFile {
	return &settingsFile{
		SchemaVersion: settingsSchemaVersion,
		UpdatedAt:     time.Now().UTC(),
		Preferences:   settingsPreferences{Theme: "system"},
		Server:        settingsServer{URL: config.DefaultServerURL},
	}
}

// normalizeSettingsFile ensures required defaults are present after loading.
func normalizeSettingsFile(settings *settingsFile) *settingsFile {
	if settings == nil {
		return defaultSettingsFile()
	}
	if settings.SchemaVersion == 0 {
		settings.SchemaVersion = settingsSchemaVersion
	}
	if settings.Preferences.Theme == "" {
		settings.Preferences.Theme = "system"
	}
	if strings.TrimSpace(settings.Server.URL) == "" {
		settings.Server.URL = config.DefaultServerURL
	}
	return settings
}

// getSettingsFilePath returns the path to the settings.json location.
func (a *App) getSettingsFilePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find config directory: %w", err)
	}

	configDir = filepath.Join(configDir, "argusdeck")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "settings.json"), nil
}

// loadSettingsFile reads settings.json or returns defaults when missing.
func (a *App) loadSettingsFile() (*settingsFile, error) {
	configFile, err := a.getSettingsFilePath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return defaultSettingsFile(), nil
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := &settingsFile{}
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	return normalizeSettingsFile(settings), nil
}

// saveSettingsFile writes settings.json with an updated timestamp.
func (a *App) saveSettingsFile(settings *settingsFile) error {
	if settings == nil {
		return fmt.Errorf("no settings to save")
	}

	configFile, err := a.getSettingsFilePath()
	if err != nil {
		return err
	}

	settings.SchemaVersion = settingsSchemaVersion
	settings.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := writeFileAtomic(configFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// writeFileAtomic persists data with a temp file + rename sequence.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return err
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tempFile.Name(), perm); err != nil {
		return err
	}

	// Windows cannot rename over an existing file, so remove it first.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tempFile.Name(), path)
}

func (a *App) SaveWindowSettings() error {
	x, y := runtimeWindowGetPosition(a.Ctx)
	width, height := runtimeWindowGetSize(a.Ctx)
	maximized := runtimeWindowIsMaximised(a.Ctx)

	a.windowSettings = &WindowSettings{X: x, Y: y, Width: width, Height: height, Maximized: maximized}

	settings, err := a.loadSettingsFile()
	if err != nil {
		return err
	}

	settings.UI.Window = *a.windowSettings
	return a.saveSettingsFile(settings)
}

func (a *App) LoadWindowSettings() (*WindowSettings, error) {
	settings, err := a.loadSettingsFile()
	if err != nil {
		return nil, err
	}

	window := settings.UI.Window
	if window.Width <= 0 || window.Height <= 0 {
		window.Width = 1200
		window.Height = 800
	}

	a.windowSettings = &window
	return &window, nil
}

func getDefaultAppSettings() *AppSettings {
	return &AppSettings{Theme: "system", ServerURL: config.DefaultServerURL}
}

func (a *App) loadAppSettings() error {
	a.settingsMu.Lock()
	defer a.settingsMu.Unlock()
	return a.loadAppSettingsLocked()
}

// loadAppSettingsLocked requires settingsMu to be held.
func (a *App) loadAppSettingsLocked() error {
	settings, err := a.loadSettingsFile()
	if err != nil {
		return err
	}

	a.appSettings = &AppSettings{
		Theme:     settings.Preferences.Theme,
		ServerURL: settings.Server.URL,
	}
	return nil
}

func (a *App) saveAppSettings(app AppSettings) error {
	settings, err := a.loadSettingsFile()
	if err != nil {
		return err
	}

	settings.Preferences.Theme = app.Theme
	settings.Server.URL = app.ServerURL

	return a.saveSettingsFile(settings)
}

// currentAppSettings returns a copy of the in-memory settings, loading them
// from disk on first use. Callers get a copy so the watcher goroutine can
// never mutate a value they hold.
func (a *App) currentAppSettings() (AppSettings, error) {
	a.settingsMu.Lock()
	defer a.settingsMu.Unlock()
	if a.appSettings == nil {
		if err := a.loadAppSettingsLocked(); err != nil {
			return AppSettings{}, err
		}
	}
	return *a.appSettings, nil
}

func (a *App) GetAppSettings() (*AppSettings, error) {
	settings, err := a.currentAppSettings()
	if err != nil {
		return getDefaultAppSettings(), nil
	}
	return &settings, nil
}

func (a *App) SetTheme(theme string) error {
	if theme != "light" && theme != "dark" && theme != "system" {
		return fmt.Errorf("invalid theme: %s", theme)
	}

	a.settingsMu.Lock()
	if a.appSettings == nil {
		if err := a.loadAppSettingsLocked(); err != nil {
			a.settingsMu.Unlock()
			return err
		}
	}
	a.appSettings.Theme = theme
	snapshot := *a.appSettings
	a.settingsMu.Unlock()

	a.logger.Info(fmt.Sprintf("Theme changed to: %s", theme), "Settings")
	return a.saveAppSettings(snapshot)
}

// SetServerURL validates and stores the monitoring backend address, then
// points the live client at it.
func (a *App) SetServerURL(serverURL string) error {
	trimmed := strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if err := validateServerURL(trimmed); err != nil {
		return err
	}

	a.settingsMu.Lock()
	if a.appSettings == nil {
		if err := a.loadAppSettingsLocked(); err != nil {
			a.settingsMu.Unlock()
			return err
		}
	}
	a.appSettings.ServerURL = trimmed
	snapshot := *a.appSettings
	a.settingsMu.Unlock()

	a.logger.Info(fmt.Sprintf("Server URL changed to: %s", trimmed), "Settings")
	if err := a.saveAppSettings(snapshot); err != nil {
		return err
	}

	a.client.SetBaseURL(trimmed)
	return nil
}

func validateServerURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("server URL is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("server URL must use http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("server URL is missing a host")
	}
	return nil
}

func (a *App) GetThemeInfo() (*ThemeInfo, error) {
	settings, err := a.GetAppSettings()
	if err != nil {
		return nil, err
	}

	return &ThemeInfo{
		CurrentTheme: settings.Theme,
		UserTheme:    settings.Theme,
	}, nil
}

func (a *App) ShowSettings() {
	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		if a.Ctx != nil {
			a.logger.Debug("Settings menu triggered", "App")
			a.emitEvent("open-settings")
			return
		}
		if i < maxRetries-1 {
			time.Sleep(100 * time.Millisecond)
		}
	}
	a.logger.Warn("Cannot show settings: application context is nil after retries", "App")
}

func (a *App) ShowAbout() {
	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		if a.Ctx != nil {
			a.logger.Debug("About menu triggered", "App")
			a.emitEvent("open-about")
			return
		}
		if i < maxRetries-1 {
			time.Sleep(100 * time.Millisecond)
		}
	}
	a.logger.Warn("Cannot show about: application context is nil after retries", "App")
}
