// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/invowk/texshuffle/internal/issue"
	"github.com/invowk/texshuffle/pkg/cueutil"
	"github.com/invowk/texshuffle/pkg/fspath"
	"github.com/invowk/texshuffle/pkg/types"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "texshuffle"
	// ConfigFileName is the default configuration file, resolved against the
	// working directory.
	ConfigFileName = "config.json"
	// EnvPrefix prefixes environment variables that override scalar settings.
	EnvPrefix = "TEXSHUFFLE"

	// DefaultExtension selects which files take part in shuffling.
	DefaultExtension = ".png"
	// DefaultPackFormat is the pack_format written when the file does not set one.
	DefaultPackFormat = 15

	keyExcludedDirs        = "excludedDirs"
	keyCompatibilityGroups = "compatibilityGroups"
	keyExtension           = "extension"
	keyPackFormat          = "packFormat"
	keyDescription         = "description"
)

//go:embed config_schema.cue
var configSchema string

// DefaultConfig returns the configuration used for fields a file omits.
func DefaultConfig() *Config {
	return &Config{
		ExcludedDirs:        []types.TexturePath{},
		CompatibilityGroups: [][]types.TexturePath{},
		Extension:           DefaultExtension,
		PackFormat:          DefaultPackFormat,
		Description:         "",
	}
}

// StarterConfig returns the configuration written by 'texshuffle config init'.
// It keeps UI atlases and fonts out of the shuffle and confines item and
// block textures to their own pools.
func StarterConfig() *Config {
	cfg := DefaultConfig()
	cfg.ExcludedDirs = []types.TexturePath{"colormap", "environment", "font", "gui", "misc"}
	cfg.CompatibilityGroups = [][]types.TexturePath{
		{"item"},
		{"block"},
		{"entity"},
	}
	return cfg
}

// ResolvePath returns the configuration file that Load reads for opts.
func ResolvePath(opts LoadOptions) types.FilesystemPath {
	path := opts.ConfigFilePath
	if path == "" {
		path = ConfigFileName
	}
	if opts.BaseDir != "" && !fspath.IsAbs(path) {
		path = fspath.Join(opts.BaseDir, path)
	}
	return path
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. A missing file is an error: the rules are required.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, types.FilesystemPath, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	path := ResolvePath(opts)
	if !fileExists(path) {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path.String()).
			WithIssue(issue.ConfigNotFoundId).
			WithSuggestion("Run 'texshuffle config init' to create a starter config.json").
			WithSuggestion("Pass --config to point at a different file").
			Wrap(fmt.Errorf("%w: %s", ErrConfigNotFound, path)).
			BuildError()
	}

	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault(keyExtension, defaults.Extension)
	v.SetDefault(keyPackFormat, defaults.PackFormat)
	v.SetDefault(keyDescription, defaults.Description)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := loadCUEIntoViper(v, path); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path.String()).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Check that the file contains valid JSON").
			WithSuggestion("Run 'texshuffle config show' to see the expected layout").
			Wrap(err).
			BuildError()
	}

	var raw fileConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	cfg, err := raw.toConfig()
	if err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path.String()).
			WithIssue(issue.InvalidPathEntryId).
			WithSuggestion("Write paths as \"entity/chest\" or [\"entity\", \"chest\"]").
			WithSuggestion("Paths are relative to the texture root and cannot contain '..'").
			Wrap(err).
			BuildError()
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path.String()).
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return cfg, path, nil
}

// loadCUEIntoViper validates a config file against the #Config schema and
// merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path types.FilesystemPath) error {
	data, err := os.ReadFile(path.String())
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.DecodeMap(configSchema, data, "#Config",
		cueutil.WithFilename(path.String()),
		cueutil.WithConcrete(true))
	if err != nil {
		return err
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path types.FilesystemPath) bool {
	info, err := os.Stat(path.String())
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes StarterConfig to path. An existing file is left
// untouched unless overwrite is set; the returned bool reports whether the
// file was written.
func CreateDefaultConfig(path types.FilesystemPath, overwrite bool) (bool, error) {
	if _, err := os.Stat(path.String()); err == nil && !overwrite {
		return false, nil
	}

	if err := os.MkdirAll(fspath.Dir(path).String(), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	content, err := GenerateJSON(StarterConfig())
	if err != nil {
		return false, err
	}

	if err := os.WriteFile(path.String(), content, 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}

// GenerateJSON renders cfg in the on-disk format, with paths as
// forward-slash strings.
func GenerateJSON(cfg *Config) ([]byte, error) {
	out, err := json.MarshalIndent(toFileConfig(cfg), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return append(out, '\n'), nil
}
