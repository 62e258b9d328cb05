// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles formschema project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// Defaults applied to fields left empty in the config file.
const (
	DefaultInput   = "prisma/schema.prisma"
	DefaultOutput  = "generate/schema.js"
	DefaultDialect = "js"
)

// DefaultIgnoreFields are the audit timestamps excluded from every model.
var DefaultIgnoreFields = []string{"createdAt", "updatedAt"}

// Dialects lists the accepted output dialects.
var Dialects = []string{"js", "ts", "json"}

// Config represents the formschema.yaml project configuration file.
type Config struct {
	Version int    `yaml:"version"`
	Input   string `yaml:"input,omitempty"`
	Output  string `yaml:"output,omitempty"`

	// IgnoreFields is nil when the key is absent, which selects
	// DefaultIgnoreFields. An explicit empty list ignores nothing.
	IgnoreFields []string `yaml:"ignoreFields"`

	// Dialect is inferred from the Output extension when empty.
	Dialect string `yaml:"dialect,omitempty"`

	// StrictPaths makes reshape fail on OmitDeep paths that do not resolve.
	StrictPaths bool `yaml:"strictPaths,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{Version: CurrentConfigVersion}
	cfg.ApplyDefaults()
	return cfg
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// ApplyDefaults fills empty fields. The dialect is left for ResolveDialect.
func (c *Config) ApplyDefaults() {
	if c.Input == "" {
		c.Input = DefaultInput
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.IgnoreFields == nil {
		c.IgnoreFields = slices.Clone(DefaultIgnoreFields)
	}
}

// ResolveDialect returns the configured dialect, or the one implied by the
// output file extension, or DefaultDialect.
func (c *Config) ResolveDialect() string {
	if c.Dialect != "" {
		return c.Dialect
	}
	switch filepath.Ext(c.Output) {
	case ".ts":
		return "ts"
	case ".json":
		return "json"
	}
	return DefaultDialect
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if c.Input == "" {
		return errors.New("input is required")
	}
	if c.Output == "" {
		return errors.New("output is required")
	}
	if c.Dialect != "" && !slices.Contains(Dialects, c.Dialect) {
		return fmt.Errorf("unknown dialect %q (expected one of %v)", c.Dialect, Dialects)
	}
	for _, name := range c.IgnoreFields {
		if name == "" {
			return errors.New("ignoreFields contains an empty name")
		}
	}
	return nil
}
