// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dacolabs/formschema/internal/compiler"
	"github.com/dacolabs/formschema/internal/config"
	"github.com/dacolabs/formschema/internal/emit"
	"github.com/dacolabs/formschema/internal/prisma"
	"github.com/dacolabs/formschema/internal/prompts"
	"github.com/dacolabs/formschema/internal/session"
)

type generateOptions struct {
	input        string
	output       string
	dialect      string
	ignoreFields []string
}

func newGenerateCmd(emitters emit.Register) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate form schemas from the Prisma schema",
		Long: fmt.Sprintf(`Compile every model of the Prisma schema into JSON Schema and write them
as one module. Models that fail to compile are reported and left out; the
module is still written with the rest.

Settings come from formschema.yaml when present. Flags override them.

Available dialects: %s`, strings.Join(emitters.Available(), ", ")),
		Example: `  # Use formschema.yaml or the defaults
  formschema generate

  # Typed output to a custom location
  formschema generate --output src/forms.ts

  # Keep audit timestamps in the forms
  formschema generate --ignore ""`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, emitters, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Path to the Prisma schema")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Path of the generated module")
	cmd.Flags().StringVarP(&opts.dialect, "dialect", "d", "", fmt.Sprintf("Output dialect (%s)", strings.Join(emitters.Available(), ", ")))
	cmd.Flags().StringSliceVar(&opts.ignoreFields, "ignore", nil, "Fields left out of every model")

	return cmd
}

// resolve layers the flags that were set over the session config.
func (opts *generateOptions) resolve(cmd *cobra.Command, base *config.Config) config.Config {
	cfg := *base
	if cmd.Flags().Changed("input") {
		cfg.Input = opts.input
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = opts.output
	}
	if cmd.Flags().Changed("dialect") {
		cfg.Dialect = opts.dialect
	}
	if cmd.Flags().Changed("ignore") {
		cfg.IgnoreFields = prompts.SplitList(strings.Join(opts.ignoreFields, ","))
	}
	return cfg
}

func runGenerate(cmd *cobra.Command, emitters emit.Register, opts *generateOptions) error {
	ctx, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}
	cfg := opts.resolve(cmd, ctx.Config)

	emitter, err := emitters.Get(cfg.ResolveDialect())
	if err != nil {
		return fmt.Errorf("unsupported dialect %q. Available dialects: %s",
			cfg.ResolveDialect(), strings.Join(emitters.Available(), ", "))
	}

	inPath := ctx.Path(cfg.Input)
	f, err := os.Open(inPath) //nolint:gosec // path comes from config or flags
	if err != nil {
		return fmt.Errorf("failed to open schema: %w", err)
	}
	defer f.Close() //nolint:errcheck

	doc, err := prisma.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", cfg.Input, err)
	}

	report := compiler.Assemble(doc, compiler.Options{IgnoreFields: cfg.IgnoreFields})

	data, err := emitter.Emit(report.Schemas)
	if err != nil {
		return fmt.Errorf("failed to emit %s module: %w", emitter.Name(), err)
	}

	outPath := ctx.Path(cfg.Output)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.Output, err)
	}

	out := cmd.OutOrStdout()
	prompts.PrintResult(out, []prompts.ResultField{
		{Label: "Input", Value: cfg.Input},
		{Label: "Output", Value: cfg.Output},
		{Label: "Dialect", Value: emitter.Name()},
		{Label: "Models", Value: strconv.Itoa(report.Schemas.Len())},
	}, "")

	failures := report.Failures()
	if len(failures) == 0 {
		return nil
	}
	items := make([]prompts.ResultField, len(failures))
	for i, res := range failures {
		items[i] = prompts.ResultField{Label: res.Model, Value: res.Err.Error()}
	}
	prompts.PrintFailures(out, "Skipped models:", items)
	return fmt.Errorf("failed to compile %d model(s)", len(failures))
}
