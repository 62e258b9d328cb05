// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dacolabs/formschema/internal/jschema"
	"github.com/dacolabs/formschema/internal/prisma"
)

// SchemaMap maps model names to compiled schemas, in declaration order.
type SchemaMap struct {
	names   []string
	schemas map[string]*jsonschema.Schema
}

// NewSchemaMap returns an empty SchemaMap.
func NewSchemaMap() *SchemaMap {
	return &SchemaMap{schemas: make(map[string]*jsonschema.Schema)}
}

// Set stores a schema. A new name is appended to the order.
func (m *SchemaMap) Set(name string, s *jsonschema.Schema) {
	if _, ok := m.schemas[name]; !ok {
		m.names = append(m.names, name)
	}
	m.schemas[name] = s
}

// Get returns the schema for a model name.
func (m *SchemaMap) Get(name string) (*jsonschema.Schema, bool) {
	s, ok := m.schemas[name]
	return s, ok
}

// Names returns the model names in order.
func (m *SchemaMap) Names() []string {
	return append([]string(nil), m.names...)
}

// Len returns the number of schemas.
func (m *SchemaMap) Len() int {
	return len(m.names)
}

// Result is the outcome of compiling one model: either Schema or Err is set.
type Result struct {
	Model  string
	Schema *jsonschema.Schema
	Err    error
}

// Report is the outcome of a batch compilation.
type Report struct {
	Results []Result   // one per model, in declaration order
	Schemas *SchemaMap // successfully compiled models only
}

// Failures returns the results that carry an error.
func (r *Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err joins the failures into one error, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Failures() {
		errs = append(errs, fmt.Errorf("model %s: %w", res.Model, res.Err))
	}
	return errors.Join(errs...)
}

// Assemble compiles every model of doc. Enums are indexed before any model is
// compiled. Each model compiles in isolation: a failing model is reported and
// left out of Schemas without affecting the others.
func Assemble(doc *prisma.Document, opts Options) *Report {
	idx := NewIndex(doc)
	report := &Report{Schemas: NewSchemaMap()}
	for _, m := range doc.Models() {
		s, err := Compile(m, idx, opts)
		if err == nil {
			if missing := jschema.UnresolvedRefs(s); len(missing) > 0 {
				s, err = nil, fmt.Errorf("%w: %s", ErrDanglingRef, strings.Join(missing, ", "))
			}
		}
		report.Results = append(report.Results, Result{Model: m.Name, Schema: s, Err: err})
		if err == nil {
			report.Schemas.Set(m.Name, s)
		}
	}
	return report
}
