// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/formschema/internal/config"
)

var (
	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotLoaded indicates a command ran without PreRunLoad.
	ErrNotLoaded = errors.New("project context not loaded")
)

// ConfigFileName is the name of the formschema configuration file.
const ConfigFileName = "formschema.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved project configuration.
type Context struct {
	// Config has defaults applied and has been validated.
	Config *config.Config

	// Dir is the project directory relative paths are resolved against.
	Dir string

	// FromFile is false when no config file was found and defaults are in use.
	FromFile bool
}

// Path resolves a config-relative path against the project directory.
func (c *Context) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the formschema Context stored in it.
// A missing config file is not an error: defaults are used instead.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	fsCtx, err := LoadDir(cwd)
	if err != nil {
		return nil, err
	}
	return With(ctx, fsCtx), nil
}

// LoadDir resolves the project context for dir.
func LoadDir(dir string) (*Context, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return &Context{Config: config.Default(), Dir: dir}, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.ApplyDefaults()

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	return &Context{Config: cfg, Dir: dir, FromFile: true}, nil
}

// With stores c in ctx.
func With(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// From extracts the formschema Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if fsCtx, ok := ctx.Value(contextKey{}).(*Context); ok {
		return fsCtx
	}
	return nil
}
