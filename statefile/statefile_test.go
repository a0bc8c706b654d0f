package statefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type geometry struct {
	X, Y, W, H int
}

func TestWriteReadJSONRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "window.json")
	in := geometry{X: 10, Y: 20, W: 800, H: 600}
	require.NoError(t, WriteJSON(path, in))

	var out geometry
	ok, err := ReadJSON(path, &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)
}

func TestReadJSONMissingFileNotAnError(t *testing.T) {
	var out geometry
	ok, err := ReadJSON(filepath.Join(t.TempDir(), "missing.json"), &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteBytesLeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.bin")
	require.NoError(t, WriteBytes(path, []byte("pipeline-cache-blob")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cache.bin", entries[0].Name())
}

func TestReadBytesMissingFileIsColdStart(t *testing.T) {
	data, ok, err := ReadBytes(filepath.Join(t.TempDir(), "missing.bin"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestWriteBytesOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.bin")
	require.NoError(t, WriteBytes(path, []byte("first")))
	require.NoError(t, WriteBytes(path, []byte("second")))

	data, ok, err := ReadBytes(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", string(data))
}
