package backend

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerKeepsMostRecentEntries(t *testing.T) {
	logger := NewLogger(3)
	for i := 0; i < 5; i++ {
		logger.Info(fmt.Sprintf("entry %d", i), "Test")
	}

	entries := logger.GetEntries()
	require.Len(t, entries, 3)
	require.Equal(t, "entry 2", entries[0].Message)
	require.Equal(t, "entry 4", entries[2].Message)
}

func TestLoggerLevelsAndSource(t *testing.T) {
	logger := NewLogger(10)
	logger.Debug("d")
	logger.Warn("w", "Polling")
	logger.Error("e")

	entries := logger.GetEntries()
	require.Equal(t, "DEBUG", entries[0].Level)
	require.Equal(t, "WARN", entries[1].Level)
	require.Equal(t, "Polling", entries[1].Source)
	require.Equal(t, "ERROR", entries[2].Level)
}

func TestLoggerEmitterAndNilSafety(t *testing.T) {
	logger := NewLogger(10)
	fired := 0
	logger.SetEventEmitter(func(name string) {
		require.Equal(t, "log-added", name)
		fired++
	})
	logger.Info("hello")
	require.Equal(t, 1, fired)

	var nilLogger *Logger
	nilLogger.Info("ignored")
	require.Zero(t, nilLogger.Count())

	logger.Clear()
	require.Zero(t, logger.Count())
}
