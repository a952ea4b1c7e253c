// SPDX-License-Identifier: MIT

package datasets

import (
	"os"
	"path/filepath"
)

// cacheSubdir names this module's slice of the platform cache directory.
const cacheSubdir = "tutconf"

// DefaultCacheDir resolves the platform-appropriate directory for dataset
// storage: the user cache directory when the platform provides one, the
// system temp directory otherwise. The directory is not created; it only
// serves as the built-in default for data_dir.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, cacheSubdir)
}
