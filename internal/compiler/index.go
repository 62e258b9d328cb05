// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package compiler

import "github.com/dacolabs/formschema/internal/prisma"

// Index is the read-only lookup built once per compilation run.
type Index struct {
	models map[string]*prisma.Model
	enums  map[string][]string
}

// NewIndex indexes the enums and models of doc. Enums are indexed first so
// the enum table is complete before any model is looked up.
func NewIndex(doc *prisma.Document) *Index {
	idx := &Index{
		models: make(map[string]*prisma.Model),
		enums:  make(map[string][]string),
	}
	for _, e := range doc.Enums() {
		idx.enums[e.Name] = append([]string(nil), e.Members...)
	}
	for _, m := range doc.Models() {
		idx.models[m.Name] = m
	}
	return idx
}

// Model returns the model declaration with the given name.
func (i *Index) Model(name string) (*prisma.Model, bool) {
	m, ok := i.models[name]
	return m, ok
}

// Enum returns the members of the named enum in declaration order.
func (i *Index) Enum(name string) ([]string, bool) {
	members, ok := i.enums[name]
	return members, ok
}
