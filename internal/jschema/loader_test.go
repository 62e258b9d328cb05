// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userJSON = `{
  "title": "User",
  "type": "object",
  "required": ["zeta", "alpha"],
  "properties": {
    "zeta": {"type": "string"},
    "alpha": {"type": "string"},
    "posts": {"type": "array", "items": {"$ref": "#/definitions/Post"}}
  },
  "definitions": {
    "Post": {
      "title": "Post",
      "type": "object",
      "properties": {
        "title": {"type": "string"},
        "body": {"type": "string"},
        "author": {"$ref": "#/definitions/User"}
      }
    }
  }
}`

func TestDecode_KeepsPropertyOrder(t *testing.T) {
	s, err := Decode([]byte(userJSON))
	require.NoError(t, err)

	assert.Equal(t, "User", s.Title)
	assert.Equal(t, []string{"zeta", "alpha", "posts"}, PropertyNames(s))
	assert.Equal(t, []string{"title", "body", "author"}, PropertyNames(s.Definitions["Post"]))
	assert.Equal(t, "#/definitions/Post", TargetRef(s.Properties["posts"]))
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte(`{"title": `))
	assert.Error(t, err)
}

func TestExtractKeyOrderFromJSON(t *testing.T) {
	order, err := ExtractKeyOrderFromJSON([]byte(userJSON))
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "type", "required", "properties", "definitions"}, order[""])
	assert.Equal(t, []string{"zeta", "alpha", "posts"}, order["properties"])
	assert.Equal(t, []string{"title", "body", "author"}, order["definitions.Post.properties"])
	assert.NotContains(t, order, "definitions")
}

func TestDecodeDocument(t *testing.T) {
	data := []byte(`{
  "Post": {"title": "Post", "type": "object", "properties": {"b": {"type": "string"}, "a": {"type": "string"}}},
  "User": {"title": "User", "type": "object", "properties": {"z": {"type": "string"}, "y": {"type": "string"}}}
}`)

	doc, err := DecodeDocument(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Post", "User"}, doc.Names)
	assert.Equal(t, []string{"b", "a"}, PropertyNames(doc.Schemas["Post"]))
	assert.Equal(t, []string{"z", "y"}, PropertyNames(doc.Schemas["User"]))
}

func TestLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"schemas/user.json":  {Data: []byte(userJSON)},
		"schemas/forms.json": {Data: []byte(`{"User": ` + userJSON + `}`)},
		"schemas/user.yaml":  {Data: []byte("title: User\n")},
	}
	loader := NewLoader(fsys)

	s, err := loader.LoadFile("schemas/user.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "posts"}, PropertyNames(s))

	doc, err := loader.LoadDocument("schemas/forms.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"User"}, doc.Names)
	assert.Equal(t, []string{"title", "body", "author"}, PropertyNames(doc.Schemas["User"].Definitions["Post"]))

	_, err = loader.LoadFile("schemas/user.yaml")
	assert.EqualError(t, err, "format not supported: schemas/user.yaml")

	_, err = loader.LoadFile("schemas/missing.json")
	assert.Error(t, err)
}
