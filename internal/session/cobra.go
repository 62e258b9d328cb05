// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"fmt"

	"github.com/spf13/cobra"
)

// FromCommand returns the project Context attached to cmd, or nil.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// RequireFromCommand is FromCommand for commands that cannot run without a
// project. The error names the command and wraps ErrNotLoaded.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	if ctx := FromCommand(cmd); ctx != nil {
		return ctx, nil
	}
	return nil, fmt.Errorf("%s: %w", cmd.CommandPath(), ErrNotLoaded)
}

// PreRunLoad is a cobra PreRunE that resolves formschema.yaml from the
// working directory and attaches it to the command. A Context that is
// already attached is kept as is.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	if FromCommand(cmd) != nil {
		return nil
	}
	ctx, err := Load(cmd.Context())
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}
