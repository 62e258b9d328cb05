// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema provides JSON Schema helpers shared by the compiler, the
// emitters and the builder: ordered property edits, $ref handling, deep
// copies, traversal and key-order preserving decoding.
package jschema

import (
	"slices"
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Schema is the JSON Schema object model used throughout formschema.
type Schema = jsonschema.Schema

// DefinitionsPrefix is the $ref prefix for hoisted definitions.
const DefinitionsPrefix = "#/definitions/"

// DefinitionRef returns the $ref string for a definition name.
func DefinitionRef(name string) string {
	return DefinitionsPrefix + name
}

// RefName extracts the definition name from a local $ref string.
// Supports definitions, $defs and components/schemas (OpenAPI) formats.
// Returns empty string if the ref format is not recognized.
func RefName(ref string) string {
	path, ok := strings.CutPrefix(ref, "#/")
	if !ok {
		return ""
	}
	switch {
	case strings.HasPrefix(path, "definitions/"):
		return strings.TrimPrefix(path, "definitions/")
	case strings.HasPrefix(path, "$defs/"):
		return strings.TrimPrefix(path, "$defs/")
	case strings.HasPrefix(path, "components/schemas/"):
		return strings.TrimPrefix(path, "components/schemas/")
	}
	return ""
}

// TargetRef returns the $ref a relation property points at, looking through
// array items. Returns empty string for non-relation properties.
func TargetRef(s *Schema) string {
	if s == nil {
		return ""
	}
	if s.Ref != "" {
		return s.Ref
	}
	if s.Items != nil {
		return s.Items.Ref
	}
	return ""
}

// NewObject returns an empty object schema with the given title.
// Required, Properties and Definitions are non-nil.
func NewObject(title string) *Schema {
	return &Schema{
		Title:       title,
		Type:        "object",
		Required:    []string{},
		Properties:  map[string]*Schema{},
		Definitions: map[string]*Schema{},
	}
}

// PropertyNames returns property names in PropertyOrder. Properties missing
// from PropertyOrder follow, sorted alphabetically for deterministic output.
func PropertyNames(s *Schema) []string {
	names := make([]string, 0, len(s.Properties))
	seen := make(map[string]bool, len(s.Properties))
	for _, name := range s.PropertyOrder {
		if _, ok := s.Properties[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range s.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// SetProperty adds or replaces a property. New properties go last.
func SetProperty(s *Schema, name string, prop *Schema) {
	if s.Properties == nil {
		s.Properties = make(map[string]*Schema)
	}
	if _, ok := s.Properties[name]; !ok {
		s.PropertyOrder = append(PropertyNames(s), name)
	}
	s.Properties[name] = prop
}

// DeleteProperty removes a property from Properties, PropertyOrder and
// Required. It reports whether the property existed.
func DeleteProperty(s *Schema, name string) bool {
	_, ok := s.Properties[name]
	delete(s.Properties, name)
	s.PropertyOrder = slices.DeleteFunc(slices.Clone(s.PropertyOrder), func(n string) bool { return n == name })
	RemoveRequired(s, name)
	return ok
}

// Property is a named property schema, used where insertion order matters.
type Property struct {
	Name   string
	Schema *Schema
}

// InsertProperties places props at index in the property order, clamped to
// the valid range. Existing properties with the same names are moved.
func InsertProperties(s *Schema, index int, props ...Property) {
	if s.Properties == nil {
		s.Properties = make(map[string]*Schema)
	}
	names := PropertyNames(s)
	for _, p := range props {
		if i := slices.Index(names, p.Name); i >= 0 {
			names = slices.Delete(names, i, i+1)
			if i < index {
				index--
			}
		}
	}
	index = max(0, min(index, len(names)))
	inserted := make([]string, 0, len(props))
	for _, p := range props {
		if !slices.Contains(inserted, p.Name) {
			inserted = append(inserted, p.Name)
		}
		s.Properties[p.Name] = p.Schema
	}
	s.PropertyOrder = slices.Insert(names, index, inserted...)
}

// AddRequired appends names to Required, skipping duplicates.
func AddRequired(s *Schema, names ...string) {
	if s.Required == nil {
		s.Required = []string{}
	}
	for _, name := range names {
		if !slices.Contains(s.Required, name) {
			s.Required = append(s.Required, name)
		}
	}
}

// RemoveRequired drops names from Required.
func RemoveRequired(s *Schema, names ...string) {
	if len(s.Required) == 0 {
		return
	}
	s.Required = slices.DeleteFunc(slices.Clone(s.Required), func(n string) bool {
		return slices.Contains(names, n)
	})
}

// DefinitionNames returns the names in Definitions, sorted for deterministic output.
func DefinitionNames(s *Schema) []string {
	names := make([]string, 0, len(s.Definitions))
	for name := range s.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of s. Shared sub-schemas stay shared in the copy
// and cycles are preserved rather than followed.
func Clone(s *Schema) *Schema {
	return cloneWith(s, make(map[*Schema]*Schema))
}

func cloneWith(s *Schema, seen map[*Schema]*Schema) *Schema {
	if s == nil {
		return nil
	}
	if c, ok := seen[s]; ok {
		return c
	}
	c := new(Schema)
	seen[s] = c
	*c = *s

	c.Required = slices.Clone(s.Required)
	c.PropertyOrder = slices.Clone(s.PropertyOrder)
	c.Enum = slices.Clone(s.Enum)
	c.Default = slices.Clone(s.Default)
	c.Properties = cloneMap(s.Properties, seen)
	c.Definitions = cloneMap(s.Definitions, seen)
	c.Defs = cloneMap(s.Defs, seen)
	c.Items = cloneWith(s.Items, seen)
	c.AdditionalProperties = cloneWith(s.AdditionalProperties, seen)
	c.Not = cloneWith(s.Not, seen)
	c.PrefixItems = cloneSlice(s.PrefixItems, seen)
	c.AllOf = cloneSlice(s.AllOf, seen)
	c.AnyOf = cloneSlice(s.AnyOf, seen)
	c.OneOf = cloneSlice(s.OneOf, seen)
	return c
}

func cloneMap(m map[string]*Schema, seen map[*Schema]*Schema) map[string]*Schema {
	if m == nil {
		return nil
	}
	out := make(map[string]*Schema, len(m))
	for k, v := range m {
		out[k] = cloneWith(v, seen)
	}
	return out
}

func cloneSlice(list []*Schema, seen map[*Schema]*Schema) []*Schema {
	if list == nil {
		return nil
	}
	out := make([]*Schema, len(list))
	for i, v := range list {
		out[i] = cloneWith(v, seen)
	}
	return out
}
