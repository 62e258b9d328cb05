// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package builder reshapes a compiled model schema after generation: fields
// can be omitted, omitted through relations, or inserted at a position.
package builder

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dacolabs/formschema/internal/jschema"
)

// PathError describes an OmitDeep path that could not be resolved.
type PathError struct {
	Path    []string
	Segment int // index of the segment that failed
	Reason  string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("omit %s: segment %q: %s", strings.Join(e.Path, "."), e.Path[e.Segment], e.Reason)
}

// Field is a named property fragment to insert.
type Field = jschema.Property

// Option configures a Builder.
type Option func(*Builder)

// WithStrictPaths makes Err report OmitDeep paths that could not be resolved.
// Without it those paths are only recorded in Diagnostics.
func WithStrictPaths() Option {
	return func(b *Builder) {
		b.strict = true
	}
}

// Builder edits a private deep copy of a schema. Methods return the builder
// for chaining.
type Builder struct {
	schema *jsonschema.Schema
	strict bool
	diags  []*PathError
}

// New copies schema and returns a builder over the copy.
func New(schema *jsonschema.Schema, opts ...Option) *Builder {
	b := &Builder{schema: jschema.Clone(schema)}
	if b.schema == nil {
		b.schema = jschema.NewObject("")
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Omit removes keys from properties and required when cond is true.
// Keys that do not exist are ignored.
func (b *Builder) Omit(cond bool, keys ...string) *Builder {
	if !cond {
		return b
	}
	for _, key := range keys {
		jschema.DeleteProperty(b.schema, key)
	}
	return b
}

// OmitDeep removes the property named by the last path segment when cond is
// true. Each earlier segment names a relation property whose $ref is followed
// into definitions. A path that cannot be resolved leaves the schema
// unchanged and is recorded in Diagnostics.
func (b *Builder) OmitDeep(cond bool, path ...string) *Builder {
	if !cond {
		return b
	}
	if len(path) == 0 {
		return b
	}
	node := b.schema
	for i, seg := range path[:len(path)-1] {
		prop, ok := node.Properties[seg]
		if !ok {
			b.fail(path, i, "no such property")
			return b
		}
		ref := jschema.TargetRef(prop)
		if ref == "" {
			b.fail(path, i, "not a relation")
			return b
		}
		next := b.definition(node, jschema.RefName(ref))
		if next == nil {
			b.fail(path, i, fmt.Sprintf("unresolved $ref %q", ref))
			return b
		}
		node = next
	}
	last := len(path) - 1
	if !jschema.DeleteProperty(node, path[last]) {
		b.fail(path, last, "no such property")
	}
	return b
}

// definition looks a name up in the current node's definitions, then in the root's.
func (b *Builder) definition(node *jsonschema.Schema, name string) *jsonschema.Schema {
	if name == "" {
		return nil
	}
	if def, ok := node.Definitions[name]; ok {
		return def
	}
	return b.schema.Definitions[name]
}

func (b *Builder) fail(path []string, segment int, reason string) {
	b.diags = append(b.diags, &PathError{
		Path:    slices.Clone(path),
		Segment: segment,
		Reason:  reason,
	})
}

// AppendBefore inserts fields immediately before the property key. If key
// does not exist the fields go first.
func (b *Builder) AppendBefore(key string, fields ...Field) *Builder {
	index := slices.Index(jschema.PropertyNames(b.schema), key)
	if index < 0 {
		index = 0
	}
	return b.insert(index, fields)
}

// AppendAfter inserts fields immediately after the property key. If key does
// not exist the fields go second, after the first existing property.
func (b *Builder) AppendAfter(key string, fields ...Field) *Builder {
	index := slices.Index(jschema.PropertyNames(b.schema), key)
	if index < 0 {
		return b.insert(1, fields)
	}
	return b.insert(index+1, fields)
}

// insert places copies of fields at index. A fragment's own required list is
// merged into the schema's required set and its definitions into the
// schema's definitions, last write wins.
func (b *Builder) insert(index int, fields []Field) *Builder {
	props := make([]jschema.Property, 0, len(fields))
	for _, f := range fields {
		frag := jschema.Clone(f.Schema)
		if frag == nil {
			frag = &jsonschema.Schema{}
		}
		props = append(props, jschema.Property{Name: f.Name, Schema: frag})
		if len(frag.Required) > 0 {
			jschema.AddRequired(b.schema, frag.Required...)
		}
		if len(frag.Definitions) > 0 {
			if b.schema.Definitions == nil {
				b.schema.Definitions = make(map[string]*jsonschema.Schema)
			}
			for name, def := range frag.Definitions {
				b.schema.Definitions[name] = def
			}
		}
	}
	jschema.InsertProperties(b.schema, index, props...)
	return b
}

// Diagnostics returns the OmitDeep paths that could not be resolved.
func (b *Builder) Diagnostics() []*PathError {
	return slices.Clone(b.diags)
}

// Err returns the unresolved OmitDeep paths joined into one error when the
// builder was created WithStrictPaths, and nil otherwise.
func (b *Builder) Err() error {
	if !b.strict || len(b.diags) == 0 {
		return nil
	}
	errs := make([]error, len(b.diags))
	for i, d := range b.diags {
		errs[i] = d
	}
	return errors.Join(errs...)
}

// Build returns the edited schema.
func (b *Builder) Build() *jsonschema.Schema {
	return b.schema
}
