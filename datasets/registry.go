// SPDX-License-Identifier: MIT

package datasets

import "sort"

// Registry is a read-only set of recognized dataset names. Keys of the
// per-dataset override map must come from it.
type Registry struct {
	names map[string]struct{}
}

// NewRegistry builds a registry from the given dataset names.
func NewRegistry(names ...string) *Registry {
	r := &Registry{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		r.names[name] = struct{}{}
	}
	return r
}

// Has reports whether name is a recognized dataset.
func (r *Registry) Has(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Names returns the recognized dataset names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of recognized datasets.
func (r *Registry) Len() int {
	return len(r.names)
}

// DefaultRegistry returns the registry of datasets the tutorial ecosystem
// publishes loaders for.
func DefaultRegistry() *Registry {
	return NewRegistry(
		"A2929-200711",
		"Achilles_10252013",
		"Mouse32-140822",
	)
}
