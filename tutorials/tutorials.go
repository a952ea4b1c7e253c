// SPDX-License-Identifier: MIT

// Package tutorials holds the configuration store for the tutorial data
// directory: a single data_path entry that must name an existing directory.
package tutorials

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nsl-tools/tutconf/config"
	"github.com/nsl-tools/tutconf/internal/log"
	"github.com/nsl-tools/tutconf/internal/validate"
)

// Filename is the conventional configuration file, resolved against the
// current working directory.
const Filename = "tutorials_conf.json"

// KeyDataPath names the directory holding tutorial data.
const KeyDataPath = "data_path"

// Config is the tutorial deployment of the configuration store. The
// generic store surface (Get, Set, Update, Save, Load, ...) is embedded;
// DataPath and SetDataPath cover the known field.
type Config struct {
	*config.Store
}

// Schema returns the tutorial configuration schema.
func Schema() config.Schema {
	return config.Schema{
		Name:     "tutorials",
		Filename: Filename,
		Defaults: defaults,
		Fields: map[string]config.FieldFunc{
			KeyDataPath: dataPath,
		},
	}
}

// defaults prefers a data directory under the working directory and falls
// back to the working directory itself.
func defaults() map[string]any {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	path := filepath.Join(cwd, "data")
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		path = cwd
	}
	return map[string]any{KeyDataPath: path}
}

func dataPath(v *validate.Validator, value any) any {
	path, ok := value.(string)
	if !ok {
		v.AddError(KeyDataPath, fmt.Sprintf("must be a string, got %T", value), value)
		return value
	}
	v.Directory(KeyDataPath, path)
	return path
}

// Open constructs a tutorial configuration store: defaults first, then the
// entries of Filename when it exists in the working directory. Open is the
// dependency injection seam; callers that want the one process-wide
// instance use Global.
func Open(opts ...config.Option) (*Config, error) {
	base := []config.Option{config.WithLogger(log.WithComponent("tutorials"))}
	store, err := config.Open(Schema(), append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Config{Store: store}, nil
}

// DataPath returns the configured tutorial data directory.
func (c *Config) DataPath() string {
	path, err := c.GetString(KeyDataPath)
	if err != nil {
		return ""
	}
	return path
}

// SetDataPath points the store at an existing data directory.
func (c *Config) SetDataPath(path string) error {
	return c.Set(KeyDataPath, path)
}

var (
	globalOnce sync.Once
	global     *Config
	globalErr  error
)

// Global returns the process-wide tutorial configuration, constructing it
// on the first call. Construction runs exactly once: every later call
// returns the same instance (or the same construction error), and nothing
// passed to later constructions can alter it.
func Global() (*Config, error) {
	globalOnce.Do(func() {
		global, globalErr = Open()
	})
	return global, globalErr
}
