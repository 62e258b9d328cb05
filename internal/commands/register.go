// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dacolabs/formschema/internal/emit"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(emitters emit.Register) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "formschema",
		Short: "Compile Prisma models into JSON Schema for form UIs",
		Long: `formschema reads a Prisma schema and generates one JSON Schema per model,
ready to drive form renderers such as react-jsonschema-form.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newGenerateCmd(emitters))
	rootCmd.AddCommand(newReshapeCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
