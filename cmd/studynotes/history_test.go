// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/studynotes/internal/ledger"
)

func TestFormatHistory(t *testing.T) {
	entries := []ledger.Entry{
		{ID: 2, Session: "s", Kind: ledger.KindNotes, Format: "markdown", Path: "data/notes/notes_20260101_000000.md", CreatedAt: time.Now()},
		{ID: 1, Session: "s", Kind: ledger.KindProcessed, Path: "data/processed/lecture-1_processed.txt", CreatedAt: time.Now()},
	}

	var table strings.Builder
	require.NoError(t, formatHistory(entries, false, &table))
	lines := strings.Split(strings.TrimSpace(table.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[2], "2 "))
	assert.Contains(t, lines[2], "notes_20260101_000000.md")
	assert.Contains(t, lines[3], "processed")

	var js strings.Builder
	require.NoError(t, formatHistory(entries, true, &js))
	var decoded []ledger.Entry
	require.NoError(t, json.Unmarshal([]byte(js.String()), &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, int64(2), decoded[0].ID)
}

func TestFormatHistoryEmpty(t *testing.T) {
	var table strings.Builder
	require.NoError(t, formatHistory(nil, false, &table))
	assert.Equal(t, "No artifacts recorded.\n", table.String())

	var js strings.Builder
	require.NoError(t, formatHistory(nil, true, &js))
	assert.Equal(t, "[]\n", js.String())
}
