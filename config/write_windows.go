// SPDX-License-Identifier: MIT

//go:build windows

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic writes data to path using temp file + rename.
// Note: Windows doesn't support atomic rename with fsync like Unix.
func (s *Store) writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tutconf-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("write config data: %w", err)
	}

	// Close before rename (Windows requires this)
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	tmpFile = nil // Prevent double close in defer

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename config file: %w", err)
	}

	return nil
}
