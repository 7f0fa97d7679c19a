package logger_test

import (
	"bytes"
	"testing"

	"github.com/ostafen/mflaw/internal/logger"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(&buf, logger.WarnLevel)
	l.Info("hidden")
	l.Warnf("disk %s missing", "fd0")
	l.Error("boom")

	require.Equal(t, "[WARN] disk fd0 missing\n[ERROR] boom\n", buf.String())
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(&buf, logger.DebugLevel).With("image", "disk.img")
	l.With("partition", 2).Debug("formatted")
	l.Info("closed")

	require.Equal(t, "[DEBUG] formatted image=disk.img partition=2\n[INFO] closed image=disk.img\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, logger.DebugLevel, logger.ParseLevel("debug"))
	require.Equal(t, logger.ErrorLevel, logger.ParseLevel("ERROR"))
	require.Equal(t, logger.InfoLevel, logger.ParseLevel("verbose"))
	require.Equal(t, "WARN", logger.WarnLevel.String())
}
