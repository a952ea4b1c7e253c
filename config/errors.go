// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrInvalidConfig classifies rejected updates: field validation
	// failures, values that cannot be serialized, and loaded files whose
	// content is not a JSON object. Use errors.Is(err, ErrInvalidConfig)
	// instead of string matching; the chain keeps the field-level detail.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrKeyNotFound classifies lookups of keys that were never set.
	ErrKeyNotFound = errors.New("config key not found")

	// ErrFileIO classifies configuration files that could not be read or
	// written (missing file, permission denied, unwritable path).
	ErrFileIO = errors.New("config file i/o")
)
