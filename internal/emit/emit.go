// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package emit serializes compiled schemas into loadable source modules.
package emit

import (
	"fmt"
	"sort"

	"github.com/dacolabs/formschema/internal/compiler"
)

// Emitter defines the interface all output dialects must implement.
type Emitter interface {
	// Name returns the dialect identifier (e.g., "js", "ts")
	Name() string

	// Emit renders every schema of m into one module exporting them all
	Emit(m *compiler.SchemaMap) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".js")
	FileExtension() string
}

// Register maps dialect names to emitters.
type Register map[string]Emitter

// Add registers an emitter under its own name.
func (r Register) Add(e Emitter) {
	r[e.Name()] = e
}

// Get retrieves an emitter by dialect name.
func (r Register) Get(name string) (Emitter, error) {
	e, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown dialect: %s", name)
	}
	return e, nil
}

// Available returns all registered dialect names, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
