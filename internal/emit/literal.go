// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package emit

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dacolabs/formschema/internal/jschema"
)

// Literal renders s as compact JSON with a fixed key order: title,
// description, type, format, enum, default, $ref, items, required,
// properties, definitions. Properties follow PropertyOrder and definitions
// are sorted by name, so equal schemas always render to identical text.
// Keywords outside that subset are not written.
func Literal(s *jsonschema.Schema) (string, error) {
	var buf bytes.Buffer
	if err := writeLiteral(&buf, s, make(map[*jsonschema.Schema]bool)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type objectWriter struct {
	buf   *bytes.Buffer
	count int
}

func (w *objectWriter) key(name string) error {
	if w.count > 0 {
		w.buf.WriteByte(',')
	}
	w.count++
	return writeJSON(w.buf, name)
}

func (w *objectWriter) field(name string, v any) error {
	if err := w.key(name); err != nil {
		return err
	}
	w.buf.WriteByte(':')
	return writeJSON(w.buf, v)
}

func writeLiteral(buf *bytes.Buffer, s *jsonschema.Schema, active map[*jsonschema.Schema]bool) error {
	if s == nil {
		buf.WriteString("null")
		return nil
	}
	if active[s] {
		return fmt.Errorf("cyclic schema %q", s.Title)
	}
	active[s] = true
	defer delete(active, s)

	w := &objectWriter{buf: buf}
	buf.WriteByte('{')
	for _, kv := range []struct {
		key string
		val string
	}{
		{"title", s.Title},
		{"description", s.Description},
		{"type", s.Type},
		{"format", s.Format},
	} {
		if kv.val == "" {
			continue
		}
		if err := w.field(kv.key, kv.val); err != nil {
			return err
		}
	}
	if s.Enum != nil {
		if err := w.field("enum", s.Enum); err != nil {
			return err
		}
	}
	if len(s.Default) > 0 {
		if err := w.key("default"); err != nil {
			return err
		}
		buf.WriteByte(':')
		var def bytes.Buffer
		if err := json.Compact(&def, s.Default); err != nil {
			return fmt.Errorf("invalid default: %w", err)
		}
		buf.Write(def.Bytes())
	}
	if s.Ref != "" {
		if err := w.field("$ref", s.Ref); err != nil {
			return err
		}
	}
	if s.Items != nil {
		if err := w.key("items"); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeLiteral(buf, s.Items, active); err != nil {
			return err
		}
	}
	if s.Required != nil {
		if err := w.field("required", s.Required); err != nil {
			return err
		}
	}
	if s.Properties != nil {
		if err := w.key("properties"); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeSchemas(buf, s.Properties, jschema.PropertyNames(s), active); err != nil {
			return err
		}
	}
	if s.Definitions != nil {
		if err := w.key("definitions"); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeSchemas(buf, s.Definitions, jschema.DefinitionNames(s), active); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeSchemas(buf *bytes.Buffer, m map[string]*jsonschema.Schema, names []string, active map[*jsonschema.Schema]bool) error {
	w := &objectWriter{buf: buf}
	buf.WriteByte('{')
	for _, name := range names {
		if err := w.key(name); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeLiteral(buf, m[name], active); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
