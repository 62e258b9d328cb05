// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"

	"github.com/dacolabs/formschema/internal/builder"
	"github.com/dacolabs/formschema/internal/emit"
	"github.com/dacolabs/formschema/internal/jschema"
	"github.com/dacolabs/formschema/internal/prompts"
	"github.com/dacolabs/formschema/internal/session"
)

// fieldTypes are the types accepted by --add.
var fieldTypes = []string{"string", "number", "integer", "boolean", "object", "array"}

type reshapeOptions struct {
	input    string
	output   string
	model    string
	omit     []string
	omitDeep []string
	add      []string
	before   string
	after    string
	strict   bool
}

func newReshapeCmd() *cobra.Command {
	opts := &reshapeOptions{}

	cmd := &cobra.Command{
		Use:   "reshape",
		Short: "Edit one generated model schema",
		Long: `Load a model from a document generated with the json dialect, omit or add
properties, and print the edited schema as JSON.

Deep omit paths are dotted: each segment but the last names a relation that is
followed into definitions. Paths that do not resolve are reported as warnings,
or fail the command with --strict.`,
		Example: `  # Interactive mode
  formschema reshape --input generate/schema.json

  # Drop a field and a nested relation field
  formschema reshape -i generate/schema.json -m User --omit email --omit-deep posts.author

  # Insert a field after an existing one
  formschema reshape -i generate/schema.json -m User --add confirm:string --after email`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReshape(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Generated json document (defaults to the configured output when it is json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "Where to write the edited schema (- for stdout)")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Model to reshape")
	cmd.Flags().StringSliceVar(&opts.omit, "omit", nil, "Properties to omit")
	cmd.Flags().StringArrayVar(&opts.omitDeep, "omit-deep", nil, "Dotted property path to omit through relations (repeatable)")
	cmd.Flags().StringArrayVar(&opts.add, "add", nil, fmt.Sprintf("Property to insert as name:type (%s)", strings.Join(fieldTypes, ", ")))
	cmd.Flags().StringVar(&opts.before, "before", "", "Insert --add properties before this property")
	cmd.Flags().StringVar(&opts.after, "after", "", "Insert --add properties after this property")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on omit paths that do not resolve (defaults to strictPaths from config)")

	return cmd
}

func runReshape(cmd *cobra.Command, opts *reshapeOptions) error {
	ctx, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	if opts.before != "" && opts.after != "" {
		return errors.New("--before and --after are mutually exclusive")
	}
	fields, err := parseFields(opts.add)
	if err != nil {
		return err
	}

	input := opts.input
	if input == "" {
		if ctx.Config.ResolveDialect() != "json" {
			return errors.New("no json document to read; pass --input or generate with --dialect json")
		}
		input = ctx.Config.Output
	}
	inPath := ctx.Path(input)
	doc, err := jschema.NewLoader(os.DirFS(filepath.Dir(inPath))).LoadDocument(filepath.Base(inPath))
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", input, err)
	}

	if opts.model == "" {
		properties := func(model string) []string {
			if s := doc.Schemas[model]; s != nil {
				return jschema.PropertyNames(s)
			}
			return nil
		}
		if err := prompts.RunReshapeForm(doc.Names, properties, &opts.model, &opts.omit); err != nil {
			return err
		}
	}

	schema, ok := doc.Schemas[opts.model]
	if !ok || schema == nil {
		return fmt.Errorf("model %q not found in %s", opts.model, input)
	}

	strict := ctx.Config.StrictPaths
	if cmd.Flags().Changed("strict") {
		strict = opts.strict
	}
	var bopts []builder.Option
	if strict {
		bopts = append(bopts, builder.WithStrictPaths())
	}

	b := builder.New(schema, bopts...).Omit(len(opts.omit) > 0, opts.omit...)
	for _, path := range opts.omitDeep {
		b.OmitDeep(true, strings.Split(path, ".")...)
	}
	switch {
	case len(fields) == 0:
	case opts.before != "":
		b.AppendBefore(opts.before, fields...)
	case opts.after != "":
		b.AppendAfter(opts.after, fields...)
	default:
		names := jschema.PropertyNames(b.Build())
		if len(names) == 0 {
			b.AppendBefore("", fields...)
		} else {
			b.AppendAfter(names[len(names)-1], fields...)
		}
	}

	for _, d := range b.Diagnostics() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", d)
	}
	if err := b.Err(); err != nil {
		return err
	}

	lit, err := emit.Literal(b.Build())
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, []byte(lit), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')

	if opts.output == "-" {
		_, err = cmd.OutOrStdout().Write(out.Bytes())
		return err
	}
	if err := os.WriteFile(ctx.Path(opts.output), out.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.output, err)
	}
	return nil
}

// parseFields turns name:type pairs into property fragments.
func parseFields(specs []string) ([]builder.Field, error) {
	fields := make([]builder.Field, 0, len(specs))
	for _, spec := range specs {
		name, typ, ok := strings.Cut(spec, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --add %q: expected name:type", spec)
		}
		if !slices.Contains(fieldTypes, typ) {
			return nil, fmt.Errorf("invalid --add %q: unknown type %q", spec, typ)
		}
		fields = append(fields, builder.Field{Name: name, Schema: &jsonschema.Schema{Type: typ}})
	}
	return fields, nil
}
