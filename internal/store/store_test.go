package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveWritesSanitizedFilename(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	path, err := s.Save("weather", " New York ", json.RawMessage(`{"main":{"temp":11.2}}`))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "weather_new_york.json"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"main":{"temp":11.2}}`, string(content))
}

func TestSaveOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	_, err := s.Save("crypto", "bitcoin", map[string]any{"usd": 1.0})
	require.NoError(t, err)
	path, err := s.Save("crypto", "bitcoin", map[string]any{"usd": 2.0})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"usd":2.0}`, string(content))
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := New(dir)

	_, err := s.Save("weather", "london", map[string]string{"ok": "yes"})
	require.NoError(t, err)
	_, err = os.Stat(dir)
	require.NoError(t, err)
}
