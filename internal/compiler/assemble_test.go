// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package compiler

import (
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/formschema/internal/prisma"
)

const blogSchema = `
datasource db {
  provider = "postgresql"
  url      = env("DATABASE_URL")
}

generator client {
  provider = "prisma-client-js"
}

model User {
  id        Int      @id @default(autoincrement())
  email     String   @unique
  role      Role     @default(USER)
  posts     Post[]
  createdAt DateTime @default(now())
  updatedAt DateTime @updatedAt
}

model Broken {
  id    Int     @id
  owner Missing
}

model Post {
  id       Int    @id @default(autoincrement())
  title    String
  author   User   @relation(fields: [authorId], references: [id])
  authorId Int
}

enum Role {
  ADMIN
  USER
}
`

func TestAssemble_IsolatesFailures(t *testing.T) {
	doc, err := prisma.ParseString(blogSchema)
	require.NoError(t, err)

	report := Assemble(doc, Options{IgnoreFields: []string{"createdAt", "updatedAt"}})

	require.Len(t, report.Results, 3)
	assert.Equal(t, []string{"User", "Post"}, report.Schemas.Names())
	assert.Equal(t, 2, report.Schemas.Len())

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "Broken", failures[0].Model)
	assert.Nil(t, failures[0].Schema)
	assert.ErrorIs(t, failures[0].Err, ErrUnresolvedType)
	assert.ErrorIs(t, report.Err(), ErrUnresolvedType)
	assert.Contains(t, report.Err().Error(), "model Broken")

	_, ok := report.Schemas.Get("Broken")
	assert.False(t, ok)

	user, ok := report.Schemas.Get("User")
	require.True(t, ok)
	assert.Equal(t, []string{"email", "posts"}, user.Required)
	assert.NotContains(t, user.Properties, "createdAt")
	assert.Contains(t, user.Definitions, "Post")
	assert.Contains(t, user.Definitions, "User")
}

func TestAssemble_EmptyDocument(t *testing.T) {
	report := Assemble(&prisma.Document{}, Options{})
	assert.Empty(t, report.Results)
	assert.Equal(t, 0, report.Schemas.Len())
	assert.NoError(t, report.Err())
}

func TestAssemble_EnumDeclaredAfterModel(t *testing.T) {
	doc, err := prisma.ParseString(blogSchema)
	require.NoError(t, err)

	report := Assemble(doc, Options{})
	user, ok := report.Schemas.Get("User")
	require.True(t, ok)
	assert.Equal(t, []any{"ADMIN", "USER"}, user.Properties["role"].Enum)
}

func TestSchemaMap(t *testing.T) {
	m := NewSchemaMap()
	a := &jsonschema.Schema{Title: "A"}
	m.Set("B", &jsonschema.Schema{Title: "B"})
	m.Set("A", a)
	m.Set("B", &jsonschema.Schema{Title: "B2"})

	assert.Equal(t, []string{"B", "A"}, m.Names())
	got, ok := m.Get("A")
	require.True(t, ok)
	assert.Same(t, a, got)
	b, _ := m.Get("B")
	assert.Equal(t, "B2", b.Title)

	names := m.Names()
	names[0] = "changed"
	assert.Equal(t, []string{"B", "A"}, m.Names())
}
