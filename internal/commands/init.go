// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dacolabs/formschema/internal/config"
	"github.com/dacolabs/formschema/internal/prompts"
	"github.com/dacolabs/formschema/internal/session"
)

type initOptions struct {
	input          string
	output         string
	dialect        string
	ignoreFields   []string
	strictPaths    bool
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new formschema project",
		Long:  `Initialize a new formschema project with a formschema.yaml configuration file.`,
		Example: `  # Interactive mode
  formschema init

  # Non-interactive
  formschema init --non-interactive
  formschema init --output src/forms.ts --ignore createdAt,updatedAt,deletedAt --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", config.DefaultInput, "Path to the Prisma schema")
	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutput, "Path of the generated module")
	cmd.Flags().StringVarP(&opts.dialect, "dialect", "d", "", fmt.Sprintf("Output dialect (%s); inferred from --output when empty", strings.Join(config.Dialects, ", ")))
	cmd.Flags().StringSliceVar(&opts.ignoreFields, "ignore", config.DefaultIgnoreFields, "Fields left out of every model")
	cmd.Flags().BoolVar(&opts.strictPaths, "strict-paths", false, "Fail reshape on omit paths that do not resolve")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Check that the current directory isn't already initialized
	cfgPath := filepath.Join(cwd, session.ConfigFileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.New("formschema.yaml already exists; project already initialized")
	}

	cfg := &config.Config{
		Version:      config.CurrentConfigVersion,
		Input:        opts.input,
		Output:       opts.output,
		Dialect:      opts.dialect,
		IgnoreFields: append([]string{}, opts.ignoreFields...),
		StrictPaths:  opts.strictPaths,
	}

	if !opts.nonInteractive {
		if err := prompts.RunInitForm(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Input", Value: cfg.Input},
		{Label: "Output", Value: cfg.Output},
		{Label: "Dialect", Value: cfg.ResolveDialect()},
		{Label: "Ignored fields", Value: strings.Join(cfg.IgnoreFields, ", ")},
	}, "Initialization completed")

	return nil
}
