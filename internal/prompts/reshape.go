// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// RunReshapeForm prompts for the model to reshape when model is empty, then
// for the properties to omit from it. properties returns a model's property
// names in order.
func RunReshapeForm(models []string, properties func(string) []string, model *string, omit *[]string) error {
	if len(models) == 0 {
		return errors.New("no models to reshape")
	}

	if *model == "" {
		options := make([]huh.Option[string], len(models))
		for i, m := range models {
			options[i] = huh.NewOption(m, m)
		}
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Model").
					Options(options...).
					Filtering(true).
					Height(8).
					Value(model),
			),
		).WithTheme(Theme()).Run(); err != nil {
			return err
		}
	}

	names := properties(*model)
	if len(names) == 0 {
		return nil
	}
	options := make([]huh.Option[string], len(names))
	for i, n := range names {
		options[i] = huh.NewOption(n, n)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Properties to omit").
				Options(options...).
				Value(omit),
		),
	).WithTheme(Theme()).Run()
}
