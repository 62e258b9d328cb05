// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jsondoc emits compiled schemas as one JSON document. Definitions
// are reattached by value, so the document can be loaded back with
// jschema.DecodeDocument.
package jsondoc

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/dacolabs/formschema/internal/compiler"
	"github.com/dacolabs/formschema/internal/emit"
)

// Emitter writes a JSON object mapping model names to schemas.
type Emitter struct{}

// Name returns the dialect identifier.
func (e *Emitter) Name() string {
	return "json"
}

// FileExtension returns the file extension for JSON documents.
func (e *Emitter) FileExtension() string {
	return ".json"
}

// Emit renders m as a JSON document, one model per line.
func (e *Emitter) Emit(m *compiler.SchemaMap) ([]byte, error) {
	mod := emit.Hoist(m)

	var buf bytes.Buffer
	buf.WriteString("{")
	for i := range mod.Models {
		h := &mod.Models[i]
		lit, err := emit.Literal(mod.Reattach(h))
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", h.Name, err)
		}
		if i > 0 {
			buf.WriteString(",")
		}
		name, err := json.Marshal(h.Name)
		if err != nil {
			return nil, err
		}
		buf.WriteString("\n  ")
		buf.Write(name)
		buf.WriteString(": ")
		buf.WriteString(lit)
	}
	if len(mod.Models) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
