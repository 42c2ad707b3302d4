package backend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/argusdeck/app/backend/internal/authstate"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return NewApp()
}

func TestPersistenceRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	app := NewApp()
	require.NoError(t, app.setCredentials(&authstate.Credentials{Username: "analyst", Password: "hunter2"}))
	require.NoError(t, persistedSeen{app}.MarkSeen([]int64{5, 3, 9}))

	// A fresh App over the same config dir restores the same state.
	restored := NewApp()
	restored.restorePersistedState()

	require.True(t, persistedSeen{restored}.IsSeen(3))
	require.True(t, persistedSeen{restored}.IsSeen(9))
	require.False(t, persistedSeen{restored}.IsSeen(4))

	creds, ok := persistedCredentials{restored}.Credentials()
	require.True(t, ok)
	require.Equal(t, "analyst", creds.Username)
	require.Equal(t, "hunter2", creds.Password)
}

func TestPersistenceCorruptFileFallsBackToDefaults(t *testing.T) {
	app := newTestApp(t)

	path, err := app.getPersistenceFilePath()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	state := app.loadPersistenceFile()
	require.Equal(t, persistenceSchemaVersion, state.SchemaVersion)
	require.Empty(t, state.SeenIncidentIDs)
	require.Nil(t, state.Credentials)
}

func TestClearingCredentialsRemovesThemFromDisk(t *testing.T) {
	app := newTestApp(t)

	require.NoError(t, app.setCredentials(&authstate.Credentials{Username: "analyst", Password: "pw"}))
	require.NoError(t, app.setCredentials(nil))

	_, ok := persistedCredentials{app}.Credentials()
	require.False(t, ok)

	state := app.loadPersistenceFile()
	require.Nil(t, state.Credentials)
}

func TestMarkSeenPersistsSortedIDs(t *testing.T) {
	app := newTestApp(t)

	require.NoError(t, persistedSeen{app}.MarkSeen([]int64{9, 1, 5}))

	state := app.loadPersistenceFile()
	require.Equal(t, []int64{1, 5, 9}, state.SeenIncidentIDs)
}

func TestWriteFileAtomicReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	require.NoError(t, writeFileAtomic(path, []byte("one"), 0o600))
	require.NoError(t, writeFileAtomic(path, []byte("two"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "two", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
