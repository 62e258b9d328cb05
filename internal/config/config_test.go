// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_LoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "formschema.yaml")

	cfg := Config{
		Version:      1,
		Input:        "db/schema.prisma",
		Output:       "web/forms.ts",
		IgnoreFields: []string{"deletedAt"},
		StrictPaths:  true,
	}

	err := cfg.Save(cfgPath)
	require.NoError(t, err)

	loaded, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, cfg, *loaded)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "valid config",
			cfg:     *Default(),
			wantErr: "",
		},
		{
			name:    "unsupported version",
			cfg:     Config{Version: 99, Input: "a", Output: "b"},
			wantErr: "unsupported config version",
		},
		{
			name:    "missing input",
			cfg:     Config{Version: 1, Output: "b"},
			wantErr: "input is required",
		},
		{
			name:    "missing output",
			cfg:     Config{Version: 1, Input: "a"},
			wantErr: "output is required",
		},
		{
			name:    "unknown dialect",
			cfg:     Config{Version: 1, Input: "a", Output: "b", Dialect: "python"},
			wantErr: `unknown dialect "python"`,
		},
		{
			name:    "empty ignored field",
			cfg:     Config{Version: 1, Input: "a", Output: "b", IgnoreFields: []string{""}},
			wantErr: "ignoreFields contains an empty name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_SaveFormat(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "formschema.yaml")

	err := Default().Save(cfgPath)
	require.NoError(t, err)

	content, err := os.ReadFile(cfgPath) //nolint:gosec // test file path
	require.NoError(t, err)

	output := string(content)
	assert.Contains(t, output, "version: 1")
	assert.Contains(t, output, "input: prisma/schema.prisma")
	assert.Contains(t, output, "output: generate/schema.js")
	assert.Contains(t, output, "ignoreFields:")
	assert.Contains(t, output, "- createdAt")
	assert.NotContains(t, output, "dialect")
}

func TestConfig_Load(t *testing.T) {
	cfg, err := Load("testdata/valid.yaml")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "schema/app.prisma", cfg.Input)
	assert.Equal(t, "src/forms.ts", cfg.Output)
	assert.Equal(t, []string{"createdAt", "updatedAt", "deletedAt"}, cfg.IgnoreFields)
	assert.Equal(t, "ts", cfg.ResolveDialect())
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Load_NotFound(t *testing.T) {
	_, err := Load("testdata/nonexistent.yaml")
	assert.Error(t, err)
}

func TestConfig_Load_Invalid(t *testing.T) {
	_, err := Load("testdata/invalid.yaml")
	assert.Error(t, err)
}

func TestConfig_Save_InvalidPath(t *testing.T) {
	cfg := Config{Version: 1}

	err := cfg.Save("/nonexistent/directory/config.yaml")
	assert.Error(t, err)
}

func TestConfig_Load_Empty(t *testing.T) {
	tmpDir := t.TempDir()
	emptyFile := filepath.Join(tmpDir, "empty.yaml")
	require.NoError(t, os.WriteFile(emptyFile, []byte(""), 0o600))

	_, err := Load(emptyFile)
	assert.Error(t, err)
}

func TestConfig_ApplyDefaults(t *testing.T) {
	tests := []struct {
		name       string
		yaml       string
		wantInput  string
		wantIgnore []string
	}{
		{
			name:       "absent ignore list uses defaults",
			yaml:       "version: 1\n",
			wantInput:  DefaultInput,
			wantIgnore: []string{"createdAt", "updatedAt"},
		},
		{
			name:       "explicit empty list disables ignoring",
			yaml:       "version: 1\nignoreFields: []\n",
			wantInput:  DefaultInput,
			wantIgnore: []string{},
		},
		{
			name:       "explicit values are kept",
			yaml:       "version: 1\ninput: other.prisma\nignoreFields: [secret]\n",
			wantInput:  "other.prisma",
			wantIgnore: []string{"secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "formschema.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			cfg, err := Load(path)
			require.NoError(t, err)
			cfg.ApplyDefaults()

			assert.Equal(t, tt.wantInput, cfg.Input)
			assert.Equal(t, DefaultOutput, cfg.Output)
			assert.Equal(t, tt.wantIgnore, cfg.IgnoreFields)
		})
	}
}

func TestConfig_ApplyDefaults_DoesNotShareDefaults(t *testing.T) {
	cfg := Default()
	cfg.IgnoreFields[0] = "changed"
	assert.Equal(t, "createdAt", DefaultIgnoreFields[0])
}

func TestConfig_ResolveDialect(t *testing.T) {
	tests := []struct {
		dialect string
		output  string
		want    string
	}{
		{output: "generate/schema.js", want: "js"},
		{output: "generate/schema.ts", want: "ts"},
		{output: "generate/schema.json", want: "json"},
		{output: "generate/schema.mjs", want: "js"},
		{output: "generate/schema", want: "js"},
		{dialect: "ts", output: "generate/schema.js", want: "ts"},
	}

	for _, tt := range tests {
		t.Run(tt.output+"/"+tt.dialect, func(t *testing.T) {
			cfg := Config{Output: tt.output, Dialect: tt.dialect}
			assert.Equal(t, tt.want, cfg.ResolveDialect())
		})
	}
}
