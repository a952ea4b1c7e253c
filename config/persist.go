// SPDX-License-Identifier: MIT

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nsl-tools/tutconf/internal/log"
)

// jsonIndent pins the on-disk pretty-print to four spaces.
const jsonIndent = "    "

// Save serializes the entire current mapping as pretty-printed JSON at
// path, overwriting any existing file. An empty path means the store's
// configuration file. Parent directories are created as needed and the
// write is atomic: the file holds either the old or the new content,
// never a torn mix. The in-memory state is not re-validated; Update
// already validated everything it committed.
func (s *Store) Save(path string) error {
	if path == "" {
		path = s.path
	}

	data, err := json.MarshalIndent(s.values, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("%w: encode configuration: %w", ErrInvalidConfig, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%w: create directory %s: %w", ErrFileIO, dir, err)
		}
	}

	if err := s.writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrFileIO, path, err)
	}

	s.logger.Info().
		Str(log.FieldEvent, "config.save").
		Str(log.FieldSchema, s.schema.Name).
		Str(log.FieldFile, path).
		Int(log.FieldBytes, len(data)).
		Msg("configuration saved")
	return nil
}

// Load reads JSON from path and applies it through Update, so the normal
// validation rules hold and an invalid file leaves the store unchanged.
// An empty path means the store's configuration file. A missing or
// unreadable file fails with ErrFileIO; malformed JSON or a top-level
// value that is not an object fails with ErrInvalidConfig.
func (s *Store) Load(path string) error {
	if path == "" {
		path = s.path
	}

	data, err := os.ReadFile(path) // #nosec G304 -- the path is chosen by the caller by contract
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrFileIO, path, err)
	}

	var entries map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("%w: parse %s: %w", ErrInvalidConfig, path, err)
	}
	if entries == nil {
		return fmt.Errorf("%w: %s: top-level value is not an object", ErrInvalidConfig, path)
	}

	if err := s.Update(entries); err != nil {
		return fmt.Errorf("apply %s: %w", path, err)
	}

	s.logger.Info().
		Str(log.FieldEvent, "config.load").
		Str(log.FieldSchema, s.schema.Name).
		Str(log.FieldFile, path).
		Msg("configuration loaded")
	return nil
}
