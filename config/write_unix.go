// SPDX-License-Identifier: MIT

//go:build !windows

package config

import (
	"fmt"

	"github.com/google/renameio/v2"
)

// writeFileAtomic writes data to path with full durability guarantees:
// fsync before rename, so a crash leaves either the old file or the new
// one, never a partial write.
func (s *Store) writeFileAtomic(path string, data []byte) error {
	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending config file: %w", err)
	}
	defer func() {
		// Cleanup on error - renameio removes the temp file if not committed
		if err := pendingFile.Cleanup(); err != nil {
			s.logger.Debug().Err(err).Msg("cleanup pending config file")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write config data: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace config file: %w", err)
	}

	return nil
}
