// Package statefile provides atomic write-to-temp-rename persistence for
// the window-geometry file and the GPU pipeline-cache blob, per spec.md
// §6's "all writes are atomic" rule.
package statefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteJSON marshals v and writes it to path atomically.
func WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("statefile: encode %s: %w", path, err)
	}
	return WriteBytes(path, data)
}

// ReadJSON reads and unmarshals path into v. A missing file is not an
// error; v is left untouched and ok is false.
func ReadJSON(path string, v interface{}) (ok bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("statefile: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("statefile: decode %s: %w", path, err)
	}
	return true, nil
}

// WriteBytes writes data to path via a temp file in the same directory
// followed by a rename, so a crash mid-write never leaves a truncated
// file at path.
func WriteBytes(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("statefile: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("statefile: write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("statefile: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("statefile: rename %s: %w", path, err)
	}
	return nil
}

// ReadBytes reads path's raw contents, returning ok=false (no error) if it
// doesn't exist — used for the opportunistic pipeline-cache load, which
// treats a miss as a cold start rather than a failure.
func ReadBytes(path string) (data []byte, ok bool, err error) {
	data, err = os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("statefile: read %s: %w", path, err)
	}
	return data, true, nil
}
