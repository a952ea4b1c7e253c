// SPDX-License-Identifier: MIT

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/nsl-tools/tutconf/internal/log"
	"github.com/nsl-tools/tutconf/internal/validate"
)

// Store holds the current configuration mapping for one deployment.
type Store struct {
	schema   Schema
	path     string
	values   map[string]any
	defaults map[string]any
	logger   zerolog.Logger
}

// Option adjusts store construction.
type Option func(*Store)

// WithPath overrides the conventional configuration file consulted at
// construction and used by Save and Load when given an empty path.
func WithPath(path string) Option {
	return func(s *Store) { s.path = path }
}

// WithLogger replaces the store's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Open builds a store for schema. The store starts from the schema
// defaults; when the configuration file exists, its entries are applied as
// a validated update. A file that cannot be read or does not validate
// aborts construction, so an Open that returns nil error always yields a
// store in a valid state.
func Open(schema Schema, opts ...Option) (*Store, error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}

	s := &Store{
		schema: schema,
		path:   schema.Filename,
		logger: log.WithComponent("config"),
	}
	for _, opt := range opts {
		opt(s)
	}

	defaults := schema.Defaults()
	s.defaults = cloneMap(defaults)
	s.values = cloneMap(defaults)

	if _, err := os.Stat(s.path); err == nil {
		if err := s.Load(s.path); err != nil {
			return nil, fmt.Errorf("overlay %s: %w", s.path, err)
		}
	}

	s.logger.Debug().
		Str(log.FieldEvent, "config.open").
		Str(log.FieldSchema, schema.Name).
		Str(log.FieldFile, s.path).
		Msg("store opened")
	return s, nil
}

// Get returns the current value for key, or ErrKeyNotFound when the key
// was never set. The returned value is a copy; mutate through Update.
func (s *Store) Get(key string) (any, error) {
	value, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, ErrKeyNotFound)
	}
	return cloneValue(value), nil
}

// GetString returns the value for key as a string.
func (s *Store) GetString(key string) (string, error) {
	value, err := s.Get(key)
	if err != nil {
		return "", err
	}
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s holds %T, want string", ErrInvalidConfig, key, value)
	}
	return str, nil
}

// GetStringMap returns the value for key as a string map.
func (s *Store) GetStringMap(key string) (map[string]string, error) {
	value, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	m, ok := value.(map[string]string)
	if !ok {
		return nil, fmt.Errorf("%w: %s holds %T, want map[string]string", ErrInvalidConfig, key, value)
	}
	return m, nil
}

// Set is shorthand for Update with a single entry.
func (s *Store) Set(key string, value any) error {
	return s.Update(map[string]any{key: value})
}

// Update validates entries against the schema and merges them into the
// store: existing keys are overwritten, unspecified keys stay untouched.
// Validation runs over the full submitted mapping before any mutation;
// one invalid entry rejects the whole update and the store is unchanged.
func (s *Store) Update(entries map[string]any) error {
	if len(entries) == 0 {
		return nil
	}

	v := validate.New()
	staged := make(map[string]any, len(entries))
	for key, value := range entries {
		if field, ok := s.schema.Fields[key]; ok {
			staged[key] = field(v, value)
			continue
		}
		// Keys outside the schema pass through, but must survive Save.
		if _, err := json.Marshal(value); err != nil {
			v.AddError(key, fmt.Sprintf("value is not JSON-serializable: %v", err), value)
			continue
		}
		staged[key] = value
	}
	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	keys := make([]string, 0, len(staged))
	for key, value := range staged {
		s.values[key] = value
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s.logger.Debug().
		Str(log.FieldEvent, "config.update").
		Str(log.FieldSchema, s.schema.Name).
		Strs(log.FieldKeys, keys).
		Msg("configuration updated")
	return nil
}

// Delete removes key from the mapping and reports whether it was present.
func (s *Store) Delete(key string) bool {
	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)
	return true
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return len(s.values)
}

// Has reports whether key is currently set.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Map returns an alias-free copy of the current mapping.
func (s *Store) Map() map[string]any {
	return cloneMap(s.values)
}

// Reset discards all current entries and restores the defaults captured at
// construction. Defaults are assumed valid, so no validation runs.
func (s *Store) Reset() {
	s.values = cloneMap(s.defaults)
	s.logger.Debug().
		Str(log.FieldEvent, "config.reset").
		Str(log.FieldSchema, s.schema.Name).
		Msg("configuration reset to defaults")
}

// Path returns the configuration file consulted when Save or Load get an
// empty path.
func (s *Store) Path() string {
	return s.path
}

// String renders the current mapping as compact JSON for debugging.
func (s *Store) String() string {
	data, err := json.Marshal(s.values)
	if err != nil {
		return fmt.Sprintf("%v", s.values)
	}
	return string(data)
}
