// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/dacolabs/formschema/internal/config"
)

// RunInitForm runs the interactive form for the init command. Fields of cfg
// that are already set are offered as the initial answers.
func RunInitForm(cfg *config.Config) error {
	ignore := strings.Join(cfg.IgnoreFields, ", ")

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Schema file").
				Placeholder(config.DefaultInput).
				Validate(requiredValidator("schema file")).
				Value(&cfg.Input),
			huh.NewInput().
				Title("Output file").
				Placeholder(config.DefaultOutput).
				Validate(requiredValidator("output file")).
				Value(&cfg.Output),
		),
		huh.NewGroup(
			DialectSelect(&cfg.Dialect, config.Dialects),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Fields to leave out of every form").
				Description("Comma-separated. Leave empty to keep all fields.").
				Validate(identifierListValidator).
				Value(&ignore),
			huh.NewConfirm().
				Title("Fail reshape on paths that do not resolve?").
				Affirmative("Yes").
				Negative("No").
				Value(&cfg.StrictPaths),
		),
	).WithTheme(Theme()).Run()
	if err != nil {
		return err
	}

	cfg.IgnoreFields = SplitList(ignore)
	if cfg.IgnoreFields == nil {
		cfg.IgnoreFields = []string{}
	}
	return nil
}

// DialectSelect returns a select field for choosing the output dialect. The
// empty value infers the dialect from the output file extension.
func DialectSelect(value *string, dialects []string) *huh.Select[string] {
	options := make([]huh.Option[string], 0, len(dialects)+1)
	options = append(options, huh.NewOption("Infer from output file", ""))
	for _, d := range dialects {
		options = append(options, huh.NewOption(d, d))
	}
	return huh.NewSelect[string]().
		Title("Output dialect").
		Options(options...).
		Value(value)
}
