// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/studynotes/internal/config"
	"github.com/pdiddy/studynotes/pkg/types"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("reading question: %w", context.Canceled), 130},
		{"failure", errors.New("boom"), 1},
		{"configuration", fmt.Errorf("%w: no key", types.ErrConfiguration), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestHistoryWithLedgerDisabledCreatesNothing(t *testing.T) {
	saved := appConfig
	t.Cleanup(func() { appConfig = saved })
	appConfig = types.Config{DataDir: filepath.Join(t.TempDir(), "data"), Ledger: false}

	require.NoError(t, runHistory(historyCmd, nil))

	_, err := os.Stat(config.IndexDir(appConfig))
	assert.True(t, os.IsNotExist(err), "index directory should not be created")
}
