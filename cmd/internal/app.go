// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/dacolabs/formschema/internal/commands"
	"github.com/dacolabs/formschema/internal/emit"
	"github.com/dacolabs/formschema/internal/emit/javascript"
	"github.com/dacolabs/formschema/internal/emit/jsondoc"
	"github.com/dacolabs/formschema/internal/emit/typescript"
)

// RegisterEmitters returns every output dialect the CLI supports.
func RegisterEmitters() emit.Register {
	emitters := make(emit.Register)
	emitters.Add(&javascript.Emitter{})
	emitters.Add(&typescript.Emitter{})
	emitters.Add(&jsondoc.Emitter{})
	return emitters
}

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, arguments, env lookup).
func Run(ctx context.Context, args []string, getenv func(string) string) error {
	rootCmd := commands.NewRootCmd(RegisterEmitters())
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
