// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"fmt"
	"io"
	"io/fs"
	"strings"

	json "github.com/goccy/go-json"
)

// Decode parses a single JSON schema, keeping property order.
func Decode(data []byte) (*Schema, error) {
	var schema Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	keyOrder, err := ExtractKeyOrderFromJSON(data)
	if err != nil {
		return nil, err
	}
	SetPropertyOrder(&schema, keyOrder, "")
	return &schema, nil
}

// Document is a named set of schemas decoded from one JSON object, such as
// the output of the json emitter.
type Document struct {
	Names   []string // in document order
	Schemas map[string]*Schema
}

// DecodeDocument parses a JSON object mapping names to schemas.
func DecodeDocument(data []byte) (*Document, error) {
	var schemas map[string]*Schema
	if err := json.Unmarshal(data, &schemas); err != nil {
		return nil, err
	}
	keyOrder, err := ExtractKeyOrderFromJSON(data)
	if err != nil {
		return nil, err
	}
	doc := &Document{Schemas: schemas}
	for _, name := range keyOrder[""] {
		if s, ok := schemas[name]; ok && s != nil {
			SetPropertyOrder(s, keyOrder, name)
			doc.Names = append(doc.Names, name)
		}
	}
	return doc, nil
}

// Loader loads schemas from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads and parses a single schema file.
func (l *Loader) LoadFile(filePath string) (*Schema, error) {
	data, err := l.read(filePath)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// LoadDocument loads a file holding a JSON object of named schemas.
func (l *Loader) LoadDocument(filePath string) (*Document, error) {
	data, err := l.read(filePath)
	if err != nil {
		return nil, err
	}
	return DecodeDocument(data)
}

func (l *Loader) read(filePath string) ([]byte, error) {
	if !strings.HasSuffix(filePath, ".json") {
		return nil, fmt.Errorf("format not supported: %s", filePath)
	}
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	return io.ReadAll(f)
}
