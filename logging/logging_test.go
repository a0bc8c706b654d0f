package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesLogDirAndFile(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "log")

	sugar, err := New(logDir)
	require.NoError(t, err)
	require.NotNil(t, sugar)
	defer sugar.Sync()

	sugar.Infow("hello", "key", "value")
	sugar.Sync()

	_, err = os.Stat(filepath.Join(logDir, "oriterm.log"))
	assert.NoError(t, err)
}

func TestInstallCrashHookWritesCrashFileAndRepanics(t *testing.T) {
	dir := t.TempDir()
	sugar, err := New(filepath.Join(dir, "log"))
	require.NoError(t, err)
	defer sugar.Sync()

	crashDir := filepath.Join(dir, "crash")
	require.NoError(t, os.MkdirAll(crashDir, 0o755))

	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			assert.Equal(t, "boom", r)
		}()
		defer InstallCrashHook(sugar, crashDir)()
		panic("boom")
	}()

	entries, err := os.ReadDir(crashDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "crash-")

	data, err := os.ReadFile(filepath.Join(crashDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "panic: boom")
}

func TestInstallCrashHookNoPanicIsNoop(t *testing.T) {
	dir := t.TempDir()
	sugar, err := New(filepath.Join(dir, "log"))
	require.NoError(t, err)
	defer sugar.Sync()

	crashDir := filepath.Join(dir, "crash")
	require.NoError(t, os.MkdirAll(crashDir, 0o755))

	func() {
		defer InstallCrashHook(sugar, crashDir)()
	}()

	entries, err := os.ReadDir(crashDir)
	require.NoError(t, err)
	assert.Len(t, entries, 0)
}
