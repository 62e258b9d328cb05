// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package compiler

import (
	"fmt"
	"slices"

	"github.com/dacolabs/formschema/internal/prisma"
)

// FieldKind is the classification of a model field, computed once per field
// before any schema is emitted.
type FieldKind int

// Field kinds.
const (
	KindScalar FieldKind = iota
	KindIdentifier
	KindEnum
	KindRelation
	KindForeignKey
)

func (k FieldKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindIdentifier:
		return "identifier"
	case KindEnum:
		return "enum"
	case KindRelation:
		return "relation"
	case KindForeignKey:
		return "foreign-key"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// Attribute names the classifier looks at.
const (
	attrID        = "id"
	attrDefault   = "default"
	attrUpdatedAt = "updatedAt"
	attrRelation  = "relation"

	createdAtField  = "createdAt"
	unsupportedType = "Unsupported"
)

// scalarTypes maps Prisma scalar types to JSON Schema types.
var scalarTypes = map[string]string{
	"String":   "string",
	"DateTime": "string",
	"Bytes":    "string",
	"Int":      "integer",
	"BigInt":   "integer",
	"Float":    "number",
	"Decimal":  "number",
	"Boolean":  "boolean",
	"Json":     "object",
}

// fieldPlan is a classified field.
type fieldPlan struct {
	field    *prisma.Field
	kind     FieldKind
	required bool
	members  []string      // KindEnum
	target   *prisma.Model // KindRelation
}

// classify walks the fields of m in declaration order. Ignored fields and
// Unsupported(...) columns are dropped before classification.
func classify(m *prisma.Model, idx *Index, ignore []string) ([]fieldPlan, error) {
	var fields []*prisma.Field
	for _, f := range m.Fields {
		if f == nil || f.Name == "" || f.Type == "" {
			return nil, fmt.Errorf("%w in model %s", ErrMalformedField, m.Name)
		}
		if slices.Contains(ignore, f.Name) || f.Type == unsupportedType {
			continue
		}
		fields = append(fields, f)
	}

	foreignKeys, err := foreignKeys(m, fields)
	if err != nil {
		return nil, err
	}

	plans := make([]fieldPlan, 0, len(fields))
	for _, f := range fields {
		p := fieldPlan{field: f, required: isRequired(f)}
		switch {
		case f.HasAttribute(attrID):
			p.kind = KindIdentifier
		case slices.Contains(foreignKeys, f.Name):
			p.kind = KindForeignKey
		default:
			if members, ok := idx.Enum(f.Type); ok {
				p.kind = KindEnum
				p.members = members
			} else if target, ok := idx.Model(f.Type); ok {
				p.kind = KindRelation
				p.target = target
			} else if _, ok := scalarTypes[f.Type]; ok {
				p.kind = KindScalar
			} else {
				return nil, fmt.Errorf("%w: %s.%s has type %q", ErrUnresolvedType, m.Name, f.Name, f.Type)
			}
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// foreignKeys collects the scalar fields named by @relation(fields: [...])
// on the relation fields of a model.
func foreignKeys(m *prisma.Model, fields []*prisma.Field) ([]string, error) {
	var names []string
	for _, f := range fields {
		attr, ok := f.Attribute(attrRelation)
		if !ok {
			continue
		}
		v, ok := attr.Arg("fields")
		if !ok {
			continue
		}
		for _, name := range v.Idents() {
			if m.Field(name) == nil {
				return nil, fmt.Errorf("%w: %s.%s relates through unknown field %q", ErrMalformedField, m.Name, f.Name, name)
			}
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

func hasDefault(f *prisma.Field) bool {
	return f.HasAttribute(attrDefault)
}

// isSpecial reports whether f is maintained by the database: an @updatedAt
// field, or a createdAt field with a default.
func isSpecial(f *prisma.Field) bool {
	return f.HasAttribute(attrUpdatedAt) || (f.Name == createdAtField && hasDefault(f))
}

func isRequired(f *prisma.Field) bool {
	return !f.Optional && !hasDefault(f) && !isSpecial(f)
}
