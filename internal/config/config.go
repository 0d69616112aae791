// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pwalaunch/pwalaunch/internal/issue"
	"github.com/pwalaunch/pwalaunch/pkg/cueutil"
	"github.com/pwalaunch/pwalaunch/pkg/types"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "pwalauncher"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. PWALAUNCHER_DIAGNOSTICS_LEVEL.
	EnvPrefix = "PWALAUNCHER"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the pwalauncher configuration directory inside the
// platform's per-user configuration directory.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (types.FilesystemPath, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return types.FilesystemPath(filepath.Join(base, AppName)), nil
}

func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("diagnostics.level", string(defaults.Diagnostics.Level))
	v.SetDefault("diagnostics.file", string(defaults.Diagnostics.File))
	v.SetDefault("diagnostics.event_log", defaults.Diagnostics.EventLog)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var resolved types.FilesystemPath

	if opts.ConfigFilePath != "" {
		// An explicit settings file must exist.
		if !fileExists(opts.ConfigFilePath) {
			return nil, issue.NewErrorContext().
				WithOperation("load settings").
				WithResource(opts.ConfigFilePath.String()).
				WithSuggestion("Verify the --settings path is correct").
				WithSuggestion("Run 'pwalauncher config show' to see the default settings").
				Wrap(fmt.Errorf("settings file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		resolved = opts.ConfigFilePath
	} else {
		cfgDir := opts.ConfigDirPath
		if cfgDir == "" {
			dir, err := ConfigDir()
			if err != nil {
				return nil, err
			}
			cfgDir = dir
		}
		if candidate := cfgDir.Join(ConfigFileName + "." + ConfigFileExt); fileExists(candidate) {
			resolved = candidate
		}
		// No settings file: defaults and environment only.
	}

	if resolved != "" {
		if err := loadCUEIntoViper(v, resolved); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load settings").
				WithResource(resolved.String()).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Allowed keys: diagnostics.level, diagnostics.file, diagnostics.event_log, ui.verbose").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	cfg.Diagnostics.Level = LogLevel(strings.ToLower(string(cfg.Diagnostics.Level)))
	cfg.Source = resolved

	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate settings").
			WithSuggestion("Check " + EnvPrefix + "_DIAGNOSTICS_LEVEL and the settings file").
			Wrap(err).
			BuildError()
	}

	return &cfg, nil
}

// loadCUEIntoViper validates a CUE settings file against #Config and merges
// it into v. Fields are optional, so this decodes into a map with
// Concrete(false) instead of going through cueutil.ParseAndDecode.
func loadCUEIntoViper(v *viper.Viper, path types.FilesystemPath) error {
	data, err := os.ReadFile(path.String())
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	// Settings may leave optional fields unset; viper supplies the defaults.
	result, err := cueutil.ParseAndDecode[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path.String()),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}
	configMap := *result.Value

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge settings: %w", err)
	}
	return nil
}

func fileExists(path types.FilesystemPath) bool {
	info, err := os.Stat(path.String())
	return err == nil && !info.IsDir()
}

// GenerateCUE renders cfg as a settings file.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// pwalauncher settings\n\n")
	sb.WriteString("diagnostics: {\n")
	fmt.Fprintf(&sb, "\tlevel: %q\n", cfg.Diagnostics.Level)
	if cfg.Diagnostics.File != "" {
		fmt.Fprintf(&sb, "\tfile: %q\n", cfg.Diagnostics.File)
	}
	fmt.Fprintf(&sb, "\tevent_log: %v\n", cfg.Diagnostics.EventLog)
	sb.WriteString("}\n")
	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
