// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets gathers credentials from the two local sources the CLI
// honours besides the real environment: a .env file and a .secrets/
// directory of one-value-per-file keys.
//
// Recognised key files: openai-api-key.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/subosito/gotenv"
)

// OpenAIAPIKey is the .secrets/ file name holding the completion API key.
const OpenAIAPIKey = "openai-api-key"

// LoadDotEnv exports the variables in path into the process environment.
// Variables already set in the environment win. A missing file is not an
// error.
func LoadDotEnv(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if err := gotenv.Load(path); err != nil {
		return false, fmt.Errorf("loading %s: %w", path, err)
	}
	return true, nil
}

// Load reads every regular, non-hidden file in dir and returns a map of
// file name to trimmed contents. A missing directory yields an empty map.
// Unreadable or empty files are skipped; unreadable ones are logged.
func Load(dir string, logger *slog.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	found := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("skipping unreadable secret", "name", name, "err", err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			found[name] = value
		}
	}
	return found, nil
}
