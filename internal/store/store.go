// Package store mirrors raw provider payloads to flat JSON files under a
// data directory, one file per (category, name) pair. It is a best-effort
// side channel for inspection and the dashboard; nothing in the core reads
// these files back.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store writes JSON dumps under a single directory, created on demand.
type Store struct {
	dir string
}

func New(dir string) *Store {
	if dir == "" {
		dir = "data"
	}
	return &Store{dir: dir}
}

// Save writes payload to <dir>/<category>_<sanitized name>.json and returns
// the file path. Names are lower-cased with spaces replaced by underscores.
func (s *Store) Save(category, name string, payload any) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	safeName := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", category, safeName))

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s payload: %w", category, err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
