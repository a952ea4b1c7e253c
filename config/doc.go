// SPDX-License-Identifier: MIT

// Package config implements a validated key-value configuration store
// backed by a flat JSON file.
//
// A Store starts from its schema's defaults, overlays the conventional
// configuration file when one exists in the working directory, and from
// then on accepts mutations only through Update. Validation runs over the
// whole submitted mapping before anything is committed: one invalid entry
// rejects the entire update and leaves the store unchanged.
//
// Stores are not safe for concurrent use. A host with multiple goroutines
// must serialize access itself; the store provides no locking.
package config
