// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/nsl-tools/tutconf/internal/validate"
)

// FieldFunc validates and normalizes a single schema field. Implementations
// report problems on v and return the canonical form to store; returned
// values are committed only when the whole update passes.
type FieldFunc func(v *validate.Validator, value any) any

// Schema describes one deployment of the store: its identity, the
// conventional file overlaid at construction, the defaults it starts from,
// and the field table consulted by Update.
type Schema struct {
	// Name identifies the deployment in log entries.
	Name string

	// Filename is the conventional configuration file, resolved against
	// the current working directory unless WithPath overrides it.
	Filename string

	// Defaults returns a fresh defaults mapping. It is called once at
	// construction; the result seeds the store and is retained as the
	// Reset snapshot. Defaults are assumed valid and are not validated.
	Defaults func() map[string]any

	// Fields maps field names to their validators. Keys absent from the
	// table are stored as-is, provided their values are JSON-serializable.
	Fields map[string]FieldFunc
}

func (s Schema) validate() error {
	v := validate.New()
	v.NotEmpty("name", s.Name)
	v.NotEmpty("filename", s.Filename)
	if s.Defaults == nil {
		v.AddError("defaults", "defaults constructor is required", nil)
	}
	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: schema: %w", ErrInvalidConfig, err)
	}
	return nil
}
