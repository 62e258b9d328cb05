// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package javascript emits compiled schemas as an untyped ES module.
package javascript

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/dacolabs/formschema/internal/compiler"
	"github.com/dacolabs/formschema/internal/emit"
)

//go:embed module.js.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.ParseFS(tmplFS, "module.js.tmpl"))

// Emitter writes an ES module whose default export maps model names to schemas.
type Emitter struct{}

// Name returns the dialect identifier.
func (e *Emitter) Name() string {
	return "js"
}

// FileExtension returns the file extension for JavaScript modules.
func (e *Emitter) FileExtension() string {
	return ".js"
}

// Emit renders m as JavaScript source.
func (e *Emitter) Emit(m *compiler.SchemaMap) ([]byte, error) {
	data, err := emit.Prepare(m)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare module data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "module.js.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}
