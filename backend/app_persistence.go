package backend

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/argusdeck/app/backend/internal/authstate"
)

const persistenceSchemaVersion = 1

// persistenceFile captures the durable session state stored in persistence.json:
// which incidents have already produced a toast, and the saved login.
type persistenceFile struct {
	SchemaVersion   int                `json:"schemaVersion"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	SeenIncidentIDs []int64            `json:"seenIncidentIds"`
	Credentials     *storedCredentials `json:"credentials,omitempty"`
}

type storedCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// defaultPersistenceFile provides a baseline persistence document with empty state.
func defaultPersistenceFile() *persistenceFile {
	return &persistenceFile{
		SchemaVersion: persistenceSchemaVersion,
		UpdatedAt:     time.Now().UTC(),
	}
}

// normalizePersistenceFile ensures required defaults are present after loading.
func normalizePersistenceFile(state *persistenceFile) *persistenceFile {
	if state == nil {
		return defaultPersistenceFile()
	}
	if state.SchemaVersion == 0 {
		state.SchemaVersion = persistenceSchemaVersion
	}
	if state.Credentials != nil && state.Credentials.Username == "" {
		state.Credentials = nil
	}
	return state
}

// getPersistenceFilePath returns the path to persistence.json.
func (a *App) getPersistenceFilePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find config directory: %w", err)
	}

	configDir = filepath.Join(configDir, "argusdeck")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "persistence.json"), nil
}

// loadPersistenceFile reads persistence.json. A missing or unreadable file
// yields defaults so a damaged state file can never block startup.
func (a *App) loadPersistenceFile() *persistenceFile {
	configFile, err := a.getPersistenceFilePath()
	if err != nil {
		a.logger.Warn(fmt.Sprintf("Persistence path unavailable: %v", err), "Persistence")
		return defaultPersistenceFile()
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			a.logger.Warn(fmt.Sprintf("Failed to read persistence file: %v", err), "Persistence")
		}
		return defaultPersistenceFile()
	}

	state := &persistenceFile{}
	if err := json.Unmarshal(data, state); err != nil {
		a.logger.Warn(fmt.Sprintf("Persistence file is corrupt, starting fresh: %v", err), "Persistence")
		return defaultPersistenceFile()
	}

	return normalizePersistenceFile(state)
}

// savePersistenceFile writes persistence.json with an updated timestamp.
func (a *App) savePersistenceFile(state *persistenceFile) error {
	if state == nil {
		return fmt.Errorf("no persistence state to save")
	}

	configFile, err := a.getPersistenceFilePath()
	if err != nil {
		return err
	}

	state.SchemaVersion = persistenceSchemaVersion
	state.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal persistence state: %w", err)
	}

	if err := writeFileAtomic(configFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write persistence file: %w", err)
	}
	return nil
}

// restorePersistedState loads persistence.json into the in-memory mirrors.
// Called once during startup before polling begins.
func (a *App) restorePersistedState() {
	state := a.loadPersistenceFile()

	a.persistenceMu.Lock()
	defer a.persistenceMu.Unlock()

	a.seenIDs = make(map[int64]struct{}, len(state.SeenIncidentIDs))
	for _, id := range state.SeenIncidentIDs {
		a.seenIDs[id] = struct{}{}
	}
	if state.Credentials != nil {
		a.credentials = &authstate.Credentials{
			Username: state.Credentials.Username,
			Password: state.Credentials.Password,
		}
	} else {
		a.credentials = nil
	}
}

// persistLocked writes the in-memory mirrors back to disk. Callers hold
// persistenceMu.
func (a *App) persistLocked() error {
	state := a.loadPersistenceFile()

	ids := make([]int64, 0, len(a.seenIDs))
	for id := range a.seenIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	state.SeenIncidentIDs = ids

	if a.credentials != nil {
		state.Credentials = &storedCredentials{
			Username: a.credentials.Username,
			Password: a.credentials.Password,
		}
	} else {
		state.Credentials = nil
	}

	return a.savePersistenceFile(state)
}

// setCredentials stores the session login and persists it.
func (a *App) setCredentials(creds *authstate.Credentials) error {
	a.persistenceMu.Lock()
	defer a.persistenceMu.Unlock()
	a.credentials = creds
	return a.persistLocked()
}

// persistedCredentials adapts the App's stored login to the transport layer.
type persistedCredentials struct{ app *App }

func (p persistedCredentials) Credentials() (authstate.Credentials, bool) {
	p.app.persistenceMu.Lock()
	defer p.app.persistenceMu.Unlock()
	if p.app.credentials == nil {
		return authstate.Credentials{}, false
	}
	return *p.app.credentials, true
}

// persistedSeen adapts the App's seen-ID set to the new-incident detector.
// Marks hit the disk before the detector reports success, so a crash between
// detection and the next poll cannot replay toasts.
type persistedSeen struct{ app *App }

func (p persistedSeen) IsSeen(id int64) bool {
	p.app.persistenceMu.Lock()
	defer p.app.persistenceMu.Unlock()
	_, ok := p.app.seenIDs[id]
	return ok
}

func (p persistedSeen) MarkSeen(ids []int64) error {
	p.app.persistenceMu.Lock()
	defer p.app.persistenceMu.Unlock()
	for _, id := range ids {
		p.app.seenIDs[id] = struct{}{}
	}
	return p.app.persistLocked()
}
