package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Colors.Scheme, cfg.Colors.Scheme)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Colors.Scheme = "catppuccin-mocha"
	cfg.Terminal.Scrollback = 5000
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "catppuccin-mocha", loaded.Colors.Scheme)
	assert.Equal(t, 5000, loaded.Terminal.Scrollback)
}

func TestLoadParseErrorKeepsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0o644))
	cfg, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, Default().Font.Size, cfg.Font.Size)
}

func TestThemeOptionsNonEmpty(t *testing.T) {
	opts := ThemeOptions()
	assert.NotEmpty(t, opts)
	assert.Equal(t, "Oriterm Blue", ThemeLabel("oriterm-blue"))
}
