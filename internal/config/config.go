// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves the studynotes configuration from flags, the
// environment, an optional YAML file, and local secrets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/studynotes/internal/secrets"
	"github.com/pdiddy/studynotes/pkg/types"
)

const (
	// EnvPrefix is prepended to every config key when read from the environment.
	EnvPrefix = "STUDYNOTES"

	// APIKeyEnv and PDFPathEnv are honoured without the prefix.
	APIKeyEnv  = "OPENAI_API_KEY"
	PDFPathEnv = "PDF_PATH"

	configName = "studynotes"
)

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("pdf_path", filepath.Join("data", "lecture-1.pdf"))
	v.SetDefault("converter", string(types.ConverterNative))
	v.SetDefault("log_level", "info")
	v.SetDefault("ledger", true)

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.timeout", 120*time.Second)
	v.SetDefault("ai.max_retries", 3)

	v.SetDefault("qa.model", "gpt-3.5-turbo")
	v.SetDefault("qa.temperature", 0.7)
	v.SetDefault("qa.max_tokens", 500)

	v.SetDefault("notes.model", "gpt-4o-mini")
	v.SetDefault("notes.temperature", 0.7)
	v.SetDefault("notes.max_tokens", 0)
}

// ReadFile points v at cfgFile, or at the default search path when cfgFile
// is empty, and reads it. It returns the file used, or "" when no default
// config file exists. An explicit cfgFile that cannot be read is an error.
func ReadFile(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("%w: reading config file: %w", types.ErrConfiguration, err)
	}
	return v.ConfigFileUsed(), nil
}

// Load applies defaults and environment bindings to v and decodes the
// result. The API key falls back to the .secrets/ value when neither the
// environment nor the config file sets it. Load does not validate.
func Load(v *viper.Viper, found map[string]string) (types.Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("ai.api_key", APIKeyEnv, EnvPrefix+"_AI_API_KEY"); err != nil {
		return types.Config{}, fmt.Errorf("%w: binding %s: %w", types.ErrConfiguration, APIKeyEnv, err)
	}
	if err := v.BindEnv("pdf_path", PDFPathEnv, EnvPrefix+"_PDF_PATH"); err != nil {
		return types.Config{}, fmt.Errorf("%w: binding %s: %w", types.ErrConfiguration, PDFPathEnv, err)
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("%w: decoding config: %w", types.ErrConfiguration, err)
	}

	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = found[secrets.OpenAIAPIKey]
	}
	return cfg, nil
}

// Validate reports settings that make every command unusable.
func Validate(cfg types.Config) error {
	if strings.TrimSpace(cfg.AI.APIKey) == "" {
		return fmt.Errorf("%w: %s not found in environment, config, or .secrets/%s",
			types.ErrConfiguration, APIKeyEnv, secrets.OpenAIAPIKey)
	}
	switch cfg.Converter {
	case types.ConverterNative, types.ConverterMarkitdown:
	default:
		return fmt.Errorf("%w: unknown converter %q (want %s or %s)",
			types.ErrConfiguration, cfg.Converter, types.ConverterNative, types.ConverterMarkitdown)
	}
	return nil
}

// Paths derived from DataDir.

// ProcessedDir returns the content store directory.
func ProcessedDir(cfg types.Config) string { return filepath.Join(cfg.DataDir, "processed") }

// NotesDir returns the directory for generated notes.
func NotesDir(cfg types.Config) string { return filepath.Join(cfg.DataDir, "notes") }

// IndexDir returns the directory holding the artifact ledger.
func IndexDir(cfg types.Config) string { return filepath.Join(cfg.DataDir, "index") }
