// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{ref: "#/definitions/User", want: "User"},
		{ref: "#/$defs/Address", want: "Address"},
		{ref: "#/components/schemas/Pet", want: "Pet"},
		{ref: "#/properties/name", want: ""},
		{ref: "other.json#/definitions/User", want: ""},
		{ref: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, RefName(tt.ref))
		})
	}
	assert.Equal(t, "User", RefName(DefinitionRef("User")))
}

func TestTargetRef(t *testing.T) {
	assert.Equal(t, "#/definitions/Post", TargetRef(&Schema{Ref: "#/definitions/Post"}))
	assert.Equal(t, "#/definitions/Post", TargetRef(&Schema{Type: "array", Items: &Schema{Ref: "#/definitions/Post"}}))
	assert.Empty(t, TargetRef(&Schema{Type: "string"}))
	assert.Empty(t, TargetRef(&Schema{Type: "array", Items: &Schema{Type: "string"}}))
	assert.Empty(t, TargetRef(nil))
}

func TestNewObject(t *testing.T) {
	s := NewObject("User")
	assert.Equal(t, "User", s.Title)
	assert.Equal(t, "object", s.Type)
	assert.NotNil(t, s.Required)
	assert.NotNil(t, s.Properties)
	assert.NotNil(t, s.Definitions)
}

func TestPropertyNames(t *testing.T) {
	s := &Schema{
		Properties: map[string]*Schema{
			"b": {}, "a": {}, "z": {}, "c": {},
		},
		PropertyOrder: []string{"z", "gone", "b", "z"},
	}
	assert.Equal(t, []string{"z", "b", "a", "c"}, PropertyNames(s))
	assert.Empty(t, PropertyNames(&Schema{}))
}

func TestSetProperty(t *testing.T) {
	s := &Schema{}
	SetProperty(s, "email", &Schema{Type: "string"})
	SetProperty(s, "age", &Schema{Type: "integer"})
	SetProperty(s, "email", &Schema{Type: "string", Format: "email"})

	assert.Equal(t, []string{"email", "age"}, PropertyNames(s))
	assert.Equal(t, "email", s.Properties["email"].Format)
}

func TestDeleteProperty(t *testing.T) {
	s := NewObject("User")
	SetProperty(s, "email", &Schema{Type: "string"})
	SetProperty(s, "name", &Schema{Type: "string"})
	AddRequired(s, "email", "name")
	order := s.PropertyOrder

	assert.True(t, DeleteProperty(s, "email"))
	assert.False(t, DeleteProperty(s, "email"))
	assert.Equal(t, []string{"name"}, PropertyNames(s))
	assert.Equal(t, []string{"name"}, s.Required)
	// the previous backing array is untouched
	assert.Equal(t, []string{"email", "name"}, order)
}

func TestInsertProperties(t *testing.T) {
	base := func() *Schema {
		s := NewObject("T")
		for _, name := range []string{"a", "b", "c"} {
			SetProperty(s, name, &Schema{Type: "string"})
		}
		return s
	}
	tests := []struct {
		name  string
		index int
		props []string
		want  []string
	}{
		{name: "front", index: 0, props: []string{"x"}, want: []string{"x", "a", "b", "c"}},
		{name: "middle", index: 2, props: []string{"x", "y"}, want: []string{"a", "b", "x", "y", "c"}},
		{name: "end", index: 3, props: []string{"x"}, want: []string{"a", "b", "c", "x"}},
		{name: "clamped high", index: 10, props: []string{"x"}, want: []string{"a", "b", "c", "x"}},
		{name: "clamped low", index: -4, props: []string{"x"}, want: []string{"x", "a", "b", "c"}},
		{name: "moves existing forward", index: 0, props: []string{"c"}, want: []string{"c", "a", "b"}},
		{name: "moves existing backward", index: 3, props: []string{"a"}, want: []string{"b", "c", "a"}},
		{name: "duplicate names once", index: 1, props: []string{"x", "x"}, want: []string{"a", "x", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			props := make([]Property, len(tt.props))
			for i, name := range tt.props {
				props[i] = Property{Name: name, Schema: &Schema{Type: "integer"}}
			}
			InsertProperties(s, tt.index, props...)
			assert.Equal(t, tt.want, PropertyNames(s))
			for _, name := range tt.props {
				assert.Equal(t, "integer", s.Properties[name].Type)
			}
		})
	}
}

func TestRequired(t *testing.T) {
	s := &Schema{}
	AddRequired(s, "a", "b", "a")
	AddRequired(s, "b", "c")
	assert.Equal(t, []string{"a", "b", "c"}, s.Required)

	RemoveRequired(s, "b", "missing")
	assert.Equal(t, []string{"a", "c"}, s.Required)

	empty := &Schema{}
	RemoveRequired(empty, "a")
	assert.Nil(t, empty.Required)
}

func TestDefinitionNames(t *testing.T) {
	s := NewObject("Root")
	s.Definitions["Post"] = NewObject("Post")
	s.Definitions["Comment"] = NewObject("Comment")
	s.Definitions["User"] = NewObject("User")
	assert.Equal(t, []string{"Comment", "Post", "User"}, DefinitionNames(s))
}

func TestClone(t *testing.T) {
	tag := NewObject("Tag")
	s := NewObject("Post")
	SetProperty(s, "tag", &Schema{Ref: DefinitionRef("Tag")})
	SetProperty(s, "tags", &Schema{Type: "array", Items: &Schema{Ref: DefinitionRef("Tag")}})
	SetProperty(s, "status", &Schema{Type: "string", Enum: []any{"DRAFT", "LIVE"}, Default: []byte(`"DRAFT"`)})
	AddRequired(s, "tag")
	s.Definitions["Tag"] = tag
	s.Definitions["Alias"] = tag

	c := Clone(s)
	require.NotSame(t, s, c)
	assert.Equal(t, PropertyNames(s), PropertyNames(c))
	assert.NotSame(t, s.Properties["tag"], c.Properties["tag"])
	assert.NotSame(t, tag, c.Definitions["Tag"])
	assert.Same(t, c.Definitions["Tag"], c.Definitions["Alias"])

	c.Required[0] = "changed"
	c.Properties["status"].Enum[0] = "changed"
	c.Properties["status"].Default[1] = 'X'
	c.Definitions["Tag"].Title = "changed"
	DeleteProperty(c, "tags")

	assert.Equal(t, []string{"tag"}, s.Required)
	assert.Equal(t, "DRAFT", s.Properties["status"].Enum[0])
	assert.Equal(t, `"DRAFT"`, string(s.Properties["status"].Default))
	assert.Equal(t, "Tag", tag.Title)
	assert.Contains(t, s.Properties, "tags")
}

func TestClone_Cycle(t *testing.T) {
	s := NewObject("Loop")
	s.Definitions["Loop"] = s

	c := Clone(s)
	assert.Same(t, c, c.Definitions["Loop"])
	assert.NotSame(t, s, c)
	assert.Nil(t, Clone(nil))
}
