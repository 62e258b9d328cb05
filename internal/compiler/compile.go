// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package compiler turns Prisma model declarations into JSON Schema objects
// for form rendering.
package compiler

import (
	"fmt"
	"slices"

	json "github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dacolabs/formschema/internal/jschema"
	"github.com/dacolabs/formschema/internal/prisma"
)

// Options configures compilation.
type Options struct {
	// IgnoreFields are removed from every model before classification.
	IgnoreFields []string
}

// accumulator holds the state shared by every node compiled under one
// top-level Compile call. Relation targets are hoisted into root.Definitions.
type accumulator struct {
	index *Index
	opts  Options
	root  *jsonschema.Schema

	// seen holds relation targets that are in progress or already hoisted.
	// A target is added before descending into it and never removed.
	seen map[string]bool
}

// compileContext is the state of one model node being compiled.
type compileContext struct {
	acc         *accumulator
	model       *prisma.Model
	node        *jsonschema.Schema
	foreignKeys []string
}

func (a *accumulator) newContext(m *prisma.Model) *compileContext {
	node := jschema.NewObject(m.Name)
	node.Description = m.Doc
	return &compileContext{acc: a, model: m, node: node}
}

// Compile produces the JSON Schema for model m. Related models are compiled
// once each and hoisted into the result's definitions; relation properties
// are $refs into them.
func Compile(m *prisma.Model, idx *Index, opts Options) (*jsonschema.Schema, error) {
	acc := &accumulator{
		index: idx,
		opts:  opts,
		seen:  map[string]bool{m.Name: true},
	}
	ctx := acc.newContext(m)
	acc.root = ctx.node

	if err := ctx.compile(); err != nil {
		return nil, err
	}

	// A relation back to the root model needs a definition too. It is a copy
	// without definitions so the schema stays acyclic.
	if slices.Contains(jschema.Refs(acc.root), m.Name) {
		defs := acc.root.Definitions
		acc.root.Definitions = nil
		self := jschema.Clone(acc.root)
		acc.root.Definitions = defs
		self.Definitions = map[string]*jsonschema.Schema{}
		acc.root.Definitions[m.Name] = self
	}
	return acc.root, nil
}

func (c *compileContext) compile() error {
	plans, err := classify(c.model, c.acc.index, c.acc.opts.IgnoreFields)
	if err != nil {
		return err
	}
	for _, p := range plans {
		var prop *jsonschema.Schema
		switch p.kind {
		case KindIdentifier:
			continue
		case KindForeignKey:
			c.foreignKeys = append(c.foreignKeys, p.field.Name)
			continue
		case KindEnum:
			prop = enumFragment(p.members)
		case KindScalar:
			prop = &jsonschema.Schema{Type: scalarTypes[p.field.Type]}
		case KindRelation:
			prop, err = c.relation(p.target)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", c.model.Name, p.field.Name, err)
			}
		}
		if p.field.List {
			prop = &jsonschema.Schema{Type: "array", Items: prop}
		}
		if p.kind != KindRelation {
			prop.Default = defaultValue(p)
		}
		prop.Description = p.field.Doc

		jschema.SetProperty(c.node, p.field.Name, prop)
		if p.required {
			jschema.AddRequired(c.node, p.field.Name)
		}
	}
	return nil
}

// relation returns a $ref to target, compiling and hoisting target the first
// time it is reached. Targets already in progress are only referenced, which
// bounds recursion on cyclic relations.
func (c *compileContext) relation(target *prisma.Model) (*jsonschema.Schema, error) {
	ref := &jsonschema.Schema{Ref: jschema.DefinitionRef(target.Name)}
	if c.acc.seen[target.Name] {
		return ref, nil
	}
	c.acc.seen[target.Name] = true

	child := c.acc.newContext(target)
	if err := child.compile(); err != nil {
		return nil, err
	}
	c.acc.root.Definitions[target.Name] = child.node
	return ref, nil
}

func enumFragment(members []string) *jsonschema.Schema {
	values := make([]any, len(members))
	for i, m := range members {
		values[i] = m
	}
	return &jsonschema.Schema{Type: "string", Enum: values}
}

// defaultValue encodes a literal @default argument. Function defaults such as
// now() or autoincrement() are filled by the database and yield nil.
func defaultValue(p fieldPlan) []byte {
	attr, ok := p.field.Attribute(attrDefault)
	if !ok {
		return nil
	}
	v, ok := attr.Arg("")
	if !ok {
		return nil
	}
	if p.field.List {
		if v.Kind != prisma.ArrayValue {
			return nil
		}
		items := make([]json.RawMessage, 0, len(v.Items))
		for _, item := range v.Items {
			raw := literal(p, item)
			if raw == nil {
				return nil
			}
			items = append(items, raw)
		}
		data, err := json.Marshal(items)
		if err != nil {
			return nil
		}
		return data
	}
	return literal(p, v)
}

func literal(p fieldPlan, v prisma.Value) []byte {
	var val any
	switch v.Kind {
	case prisma.StringValue:
		val = v.Text
	case prisma.NumberValue:
		if !json.Valid([]byte(v.Text)) {
			return nil
		}
		return []byte(v.Text)
	case prisma.IdentValue:
		switch {
		case p.kind == KindEnum && slices.Contains(p.members, v.Text):
			val = v.Text
		case p.field.Type == "Boolean" && (v.Text == "true" || v.Text == "false"):
			val = v.Text == "true"
		default:
			return nil
		}
	default:
		return nil
	}
	data, err := json.Marshal(val)
	if err != nil {
		return nil
	}
	return data
}
