// SPDX-License-Identifier: MIT

// Package datasets holds the configuration store for dataset cache
// directories: a shared data_dir plus per-dataset overrides whose keys
// must be recognized dataset names.
package datasets

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/nsl-tools/tutconf/config"
	"github.com/nsl-tools/tutconf/internal/log"
	"github.com/nsl-tools/tutconf/internal/validate"
)

// Filename is the conventional configuration file, resolved against the
// current working directory.
const Filename = "datasets_conf.json"

// Configuration keys.
const (
	// KeyDataDir is the shared cache directory for dataset storage.
	KeyDataDir = "data_dir"

	// KeyUniqueDataDir maps recognized dataset names to directories that
	// override KeyDataDir for that dataset.
	KeyUniqueDataDir = "unique_data_dir"
)

// ErrUnknownDataset classifies dataset names outside the registry.
// Use errors.Is(err, ErrUnknownDataset) instead of string matching.
var ErrUnknownDataset = errors.New("unknown dataset name")

// Config is the dataset deployment of the configuration store. The
// generic store surface (Get, Set, Update, Save, Load, Reset, ...) is
// embedded; the typed accessors cover the known fields.
type Config struct {
	*config.Store
	registry *Registry
}

// Schema returns the dataset configuration schema bound to reg.
func Schema(reg *Registry) config.Schema {
	return config.Schema{
		Name:     "datasets",
		Filename: Filename,
		Defaults: defaults,
		Fields: map[string]config.FieldFunc{
			KeyDataDir:       dataDir,
			KeyUniqueDataDir: uniqueDataDir(reg),
		},
	}
}

func defaults() map[string]any {
	return map[string]any{
		KeyDataDir:       DefaultCacheDir(),
		KeyUniqueDataDir: map[string]string{},
	}
}

// dataDir accepts strings and path-like values and stores their string form.
func dataDir(v *validate.Validator, value any) any {
	path, ok := pathString(value)
	if !ok {
		v.AddError(KeyDataDir, fmt.Sprintf("must be a string or path-like value, got %T", value), value)
		return value
	}
	return path
}

// uniqueDataDir checks every key against the registry and normalizes every
// value to its string form.
func uniqueDataDir(reg *Registry) config.FieldFunc {
	return func(v *validate.Validator, value any) any {
		entries, ok := mapEntries(value)
		if !ok {
			v.AddError(KeyUniqueDataDir, fmt.Sprintf("must be a mapping of dataset names to paths, got %T", value), value)
			return value
		}
		normalized := make(map[string]string, len(entries))
		for name, raw := range entries {
			v.OneOf(KeyUniqueDataDir, name, reg.Names())
			path, ok := pathString(raw)
			if !ok {
				v.AddError(KeyUniqueDataDir, fmt.Sprintf("directory for %q must be a string or path-like value, got %T", name, raw), raw)
				continue
			}
			normalized[name] = path
		}
		return normalized
	}
}

// pathString coerces strings and fmt.Stringer values (path types) to a
// plain string.
func pathString(value any) (string, bool) {
	switch p := value.(type) {
	case string:
		return p, true
	case fmt.Stringer:
		return p.String(), true
	default:
		return "", false
	}
}

func mapEntries(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	default:
		return nil, false
	}
}

// Open constructs a dataset configuration store validated against reg; a
// nil reg means DefaultRegistry. Defaults come first, then the entries of
// Filename when it exists in the working directory. Open is the dependency
// injection seam; callers that want the one process-wide instance use
// Global.
func Open(reg *Registry, opts ...config.Option) (*Config, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	base := []config.Option{config.WithLogger(log.WithComponent("datasets"))}
	store, err := config.Open(Schema(reg), append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Config{Store: store, registry: reg}, nil
}

// Registry returns the registry the store validates against.
func (c *Config) Registry() *Registry {
	return c.registry
}

// DataDir returns the shared dataset cache directory.
func (c *Config) DataDir() string {
	dir, err := c.GetString(KeyDataDir)
	if err != nil {
		return ""
	}
	return dir
}

// SetDataDir stores dir as the shared dataset cache directory.
func (c *Config) SetDataDir(dir string) error {
	return c.Set(KeyDataDir, dir)
}

// UniqueDataDir returns a copy of the per-dataset directory overrides.
func (c *Config) UniqueDataDir() map[string]string {
	overrides, err := c.GetStringMap(KeyUniqueDataDir)
	if err != nil {
		return map[string]string{}
	}
	return overrides
}

// SetDatasetDir records dir as the override directory for dataset name.
func (c *Config) SetDatasetDir(name, dir string) error {
	overrides := c.UniqueDataDir()
	overrides[name] = dir
	return c.Set(KeyUniqueDataDir, overrides)
}

// Dir resolves the effective directory for dataset name: the override
// recorded under unique_data_dir when present, otherwise a directory named
// after the dataset under data_dir.
func (c *Config) Dir(name string) (string, error) {
	if !c.registry.Has(name) {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownDataset)
	}
	if dir, ok := c.UniqueDataDir()[name]; ok {
		return dir, nil
	}
	return filepath.Join(c.DataDir(), name), nil
}

var (
	globalOnce sync.Once
	global     *Config
	globalErr  error
)

// Global returns the process-wide dataset configuration bound to the
// default registry, constructing it on the first call. Construction runs
// exactly once: every later call returns the same instance (or the same
// construction error), and nothing passed to later constructions can
// alter it.
func Global() (*Config, error) {
	globalOnce.Do(func() {
		global, globalErr = Open(nil)
	})
	return global, globalErr
}
