// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"iter"
	"slices"
)

// Traverse returns an iterator over all schemas in the tree.
// It handles cycles by tracking visited schemas.
// Properties are visited in PropertyOrder and definitions by sorted name.
func Traverse(schema *Schema) iter.Seq[*Schema] {
	return func(yield func(*Schema) bool) {
		visited := make(map[*Schema]struct{})
		traverseWithVisited(schema, yield, visited)
	}
}

func traverseWithVisited(schema *Schema, yield func(*Schema) bool, visited map[*Schema]struct{}) bool {
	if schema == nil {
		return true
	}
	if _, ok := visited[schema]; ok {
		return true
	}
	visited[schema] = struct{}{}

	if !yield(schema) {
		return false
	}

	for _, name := range PropertyNames(schema) {
		if !traverseWithVisited(schema.Properties[name], yield, visited) {
			return false
		}
	}
	if !traverseWithVisited(schema.AdditionalProperties, yield, visited) {
		return false
	}
	if !traverseWithVisited(schema.Items, yield, visited) {
		return false
	}
	for _, list := range [][]*Schema{schema.PrefixItems, schema.AllOf, schema.AnyOf, schema.OneOf} {
		for _, s := range list {
			if !traverseWithVisited(s, yield, visited) {
				return false
			}
		}
	}
	if !traverseWithVisited(schema.Not, yield, visited) {
		return false
	}
	for _, name := range DefinitionNames(schema) {
		if !traverseWithVisited(schema.Definitions[name], yield, visited) {
			return false
		}
	}
	for _, s := range schema.Defs {
		if !traverseWithVisited(s, yield, visited) {
			return false
		}
	}
	return true
}

// Refs returns the definition names referenced anywhere in the tree, in
// traversal order and without duplicates.
func Refs(schema *Schema) []string {
	var names []string
	for s := range Traverse(schema) {
		if name := RefName(s.Ref); name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// UnresolvedRefs returns every local $ref under schema that does not name a
// key in the definitions of the node holding it or of one of its ancestors.
func UnresolvedRefs(schema *Schema) []string {
	var missing []string
	visited := make(map[*Schema]struct{})
	var walk func(s *Schema, scopes []map[string]*Schema)
	walk = func(s *Schema, scopes []map[string]*Schema) {
		if s == nil {
			return
		}
		if _, ok := visited[s]; ok {
			return
		}
		visited[s] = struct{}{}
		if len(s.Definitions) > 0 {
			scopes = append(slices.Clip(scopes), s.Definitions)
		}
		if s.Ref != "" && !resolves(s.Ref, scopes) {
			missing = append(missing, s.Ref)
		}
		for _, name := range PropertyNames(s) {
			walk(s.Properties[name], scopes)
		}
		walk(s.Items, scopes)
		for _, name := range DefinitionNames(s) {
			walk(s.Definitions[name], scopes)
		}
	}
	walk(schema, nil)
	return missing
}

func resolves(ref string, scopes []map[string]*Schema) bool {
	name := RefName(ref)
	if name == "" {
		return false
	}
	for _, defs := range scopes {
		if _, ok := defs[name]; ok {
			return true
		}
	}
	return false
}
