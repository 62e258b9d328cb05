// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package prisma parses Prisma schema files into model and enum declarations.
//
// Only the declarations that matter to schema compilation are kept: models with
// their fields and attributes, and enums with their members. datasource,
// generator, view and type blocks are recognized and skipped.
package prisma

// Declaration is a top-level model or enum block.
type Declaration interface {
	DeclName() string
	declaration()
}

// Document is a parsed schema file. Declarations keep their source order.
type Document struct {
	Declarations []Declaration
}

// Models returns the model declarations in source order.
func (d *Document) Models() []*Model {
	var models []*Model
	for _, decl := range d.Declarations {
		if m, ok := decl.(*Model); ok {
			models = append(models, m)
		}
	}
	return models
}

// Enums returns the enum declarations in source order.
func (d *Document) Enums() []*Enum {
	var enums []*Enum
	for _, decl := range d.Declarations {
		if e, ok := decl.(*Enum); ok {
			enums = append(enums, e)
		}
	}
	return enums
}

// Model is a model block.
type Model struct {
	Name       string
	Doc        string
	Fields     []*Field
	Attributes []Attribute // block attributes (@@id, @@map, ...)
}

// DeclName returns the model name.
func (m *Model) DeclName() string { return m.Name }
func (m *Model) declaration()     {}

// Field returns the field with the given name, or nil.
func (m *Model) Field(name string) *Field {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Field is a single model field.
type Field struct {
	Name       string
	Type       string
	List       bool
	Optional   bool
	Doc        string
	Attributes []Attribute
}

// Attribute returns the first attribute with the given name.
func (f *Field) Attribute(name string) (Attribute, bool) {
	for _, a := range f.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// HasAttribute reports whether the field carries the named attribute.
func (f *Field) HasAttribute(name string) bool {
	_, ok := f.Attribute(name)
	return ok
}

// Enum is an enum block.
type Enum struct {
	Name    string
	Doc     string
	Members []string
}

// DeclName returns the enum name.
func (e *Enum) DeclName() string { return e.Name }
func (e *Enum) declaration()     {}

// Attribute is a field (@name) or block (@@name) attribute. Namespaced
// attributes such as @db.VarChar keep their dotted name.
type Attribute struct {
	Name string
	Args []Arg
}

// Arg returns the argument with the given name. An empty name selects the
// first positional argument.
func (a Attribute) Arg(name string) (Value, bool) {
	for _, arg := range a.Args {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return Value{}, false
}

// Arg is a positional or named attribute argument.
type Arg struct {
	Name  string
	Value Value
}

// ValueKind identifies the shape of a Value.
type ValueKind int

// Value kinds.
const (
	StringValue ValueKind = iota
	NumberValue
	IdentValue
	FuncValue
	ArrayValue
)

// Value is an attribute argument expression.
type Value struct {
	Kind  ValueKind
	Text  string  // string contents, number literal, identifier or function name
	Args  []Arg   // FuncValue arguments
	Items []Value // ArrayValue elements
}

// Idents returns the identifier names in an array value, or the single name of
// an identifier value.
func (v Value) Idents() []string {
	switch v.Kind {
	case IdentValue:
		return []string{v.Text}
	case ArrayValue:
		names := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			if item.Kind == IdentValue {
				names = append(names, item.Text)
			}
		}
		return names
	}
	return nil
}
