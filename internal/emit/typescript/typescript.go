// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package typescript emits compiled schemas as a TypeScript module typed
// with RJSFSchema from @rjsf/utils.
package typescript

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/dacolabs/formschema/internal/compiler"
	"github.com/dacolabs/formschema/internal/emit"
)

//go:embed module.ts.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.ParseFS(tmplFS, "module.ts.tmpl"))

// Emitter writes a typed TypeScript module.
type Emitter struct{}

// Name returns the dialect identifier.
func (e *Emitter) Name() string {
	return "ts"
}

// FileExtension returns the file extension for TypeScript modules.
func (e *Emitter) FileExtension() string {
	return ".ts"
}

// Emit renders m as TypeScript source.
func (e *Emitter) Emit(m *compiler.SchemaMap) ([]byte, error) {
	data, err := emit.Prepare(m)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare module data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "module.ts.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}
