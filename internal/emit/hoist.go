// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package emit

import (
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dacolabs/formschema/internal/compiler"
	"github.com/dacolabs/formschema/internal/jschema"
)

// Hoisted is one model split for emission. Schema is a copy whose
// definitions are empty; Definitions remembers what was taken out.
type Hoisted struct {
	Name        string
	Schema      *jsonschema.Schema
	Definitions []string // sorted names
	original    map[string]*jsonschema.Schema
}

// Module is a SchemaMap after the hoist pass.
type Module struct {
	Models []Hoisted
	byName map[string]*Hoisted
}

// Hoist runs the first pass of emission: every model's definitions are
// extracted and replaced with an empty map, so each model renders as a
// self-contained literal. The input map is not modified.
func Hoist(m *compiler.SchemaMap) *Module {
	mod := &Module{byName: make(map[string]*Hoisted)}
	for _, name := range m.Names() {
		s, _ := m.Get(name)
		c := *s
		c.Definitions = map[string]*jsonschema.Schema{}
		mod.Models = append(mod.Models, Hoisted{
			Name:        name,
			Schema:      &c,
			Definitions: jschema.DefinitionNames(s),
			original:    s.Definitions,
		})
	}
	for i := range mod.Models {
		mod.byName[mod.Models[i].Name] = &mod.Models[i]
	}
	return mod
}

// Definition resolves a hoisted definition name of model h. A name that is
// also a top-level model resolves to that model's hoisted schema and shared
// is true; otherwise the original definition is returned.
func (mod *Module) Definition(h *Hoisted, name string) (s *jsonschema.Schema, shared bool) {
	if top, ok := mod.byName[name]; ok {
		return top.Schema, true
	}
	return h.original[name], false
}

// Reattach runs the second pass for one model: a copy of its hoisted schema
// with definitions filled in by name.
func (mod *Module) Reattach(h *Hoisted) *jsonschema.Schema {
	c := *h.Schema
	c.Definitions = make(map[string]*jsonschema.Schema, len(h.Definitions))
	for _, name := range h.Definitions {
		c.Definitions[name], _ = mod.Definition(h, name)
	}
	return &c
}

// ModuleData is the input passed to a module template.
type ModuleData struct {
	Models []ModelData
	Extra  map[string]any // dialect-specific template data
}

// ModelData is one model of a module template.
type ModelData struct {
	Name        string // constant name
	Literal     string // JSON literal with empty definitions
	Definitions string // object expression reattaching definitions by name
}

// Prepare hoists m and renders the literals a module template needs.
func Prepare(m *compiler.SchemaMap) (*ModuleData, error) {
	mod := Hoist(m)
	data := &ModuleData{Extra: make(map[string]any)}
	for i := range mod.Models {
		h := &mod.Models[i]
		lit, err := Literal(h.Schema)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", h.Name, err)
		}
		entries := make([]string, 0, len(h.Definitions))
		for _, name := range h.Definitions {
			def, shared := mod.Definition(h, name)
			if shared {
				entries = append(entries, name)
				continue
			}
			defLit, err := Literal(def)
			if err != nil {
				return nil, fmt.Errorf("model %s definition %s: %w", h.Name, name, err)
			}
			entries = append(entries, name+": "+defLit)
		}
		defs := "{}"
		if len(entries) > 0 {
			defs = "{ " + strings.Join(entries, ", ") + " }"
		}
		data.Models = append(data.Models, ModelData{
			Name:        h.Name,
			Literal:     lit,
			Definitions: defs,
		})
	}
	return data, nil
}
