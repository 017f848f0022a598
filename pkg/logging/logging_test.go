package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevels(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = New(Options{Verbose: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thrive.log")
	l, err := New(Options{File: path})
	require.NoError(t, err)
	l.Warn("analysis slow")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"analysis slow"`)
}

func TestFileOutputCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh", "nested", "thrive.log")
	l, err := New(Options{File: path})
	require.NoError(t, err)
	l.Warn("first run")
	require.NoError(t, l.Sync())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
