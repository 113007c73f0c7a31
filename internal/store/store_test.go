// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/studynotes/internal/logging"
	"github.com/pdiddy/studynotes/pkg/types"
)

func writeArtifact(t *testing.T, dir, name, content string, mod time.Time) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
	return path
}

func TestLoadLatestEmpty(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "missing directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "processed")
			},
		},
		{
			name: "empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "only unrelated files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeArtifact(t, dir, "notes.md", "not processed", time.Now())
				require.NoError(t, os.Mkdir(filepath.Join(dir, "x"+Suffix), 0o755))
				return dir
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := New(tt.setup(t), logging.Discard()).LoadLatest()
			require.NoError(t, err)
			assert.True(t, doc.Empty())
			assert.Empty(t, doc.Path)
		})
	}
}

func TestLoadLatestPicksMostRecent(t *testing.T) {
	dir := t.TempDir()
	t1 := time.Now().Add(-time.Hour)
	t2 := time.Now().Add(-time.Minute)

	writeArtifact(t, dir, "zeta"+Suffix, "older content", t1)
	newer := writeArtifact(t, dir, "alpha"+Suffix, "newer content", t2)

	doc, err := New(dir, logging.Discard()).LoadLatest()
	require.NoError(t, err)
	assert.Equal(t, "newer content", doc.Text)
	assert.Equal(t, newer, doc.Path)
	assert.WithinDuration(t, t2, doc.CreatedAt, time.Second)
}

func TestLoadLatestTieBreaksByName(t *testing.T) {
	dir := t.TempDir()
	same := time.Now().Add(-time.Hour).Truncate(time.Second)

	writeArtifact(t, dir, "a"+Suffix, "from a", same)
	writeArtifact(t, dir, "b"+Suffix, "from b", same)

	doc, err := New(dir, logging.Discard()).LoadLatest()
	require.NoError(t, err)
	assert.Equal(t, "from b", doc.Text)
}

func TestLoadLatestRescans(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, logging.Discard())

	writeArtifact(t, dir, "week1"+Suffix, "week one", time.Now().Add(-time.Hour))
	doc, err := s.LoadLatest()
	require.NoError(t, err)
	assert.Equal(t, "week one", doc.Text)

	writeArtifact(t, dir, "week2"+Suffix, "week two", time.Now())
	doc, err = s.LoadLatest()
	require.NoError(t, err)
	assert.Equal(t, "week two", doc.Text)
}

func TestArtifactName(t *testing.T) {
	assert.Equal(t, "lecture-1"+Suffix, ArtifactName("data/lecture-1.pdf"))
	assert.Equal(t, "notes.v2"+Suffix, ArtifactName("/abs/notes.v2.PDF"))
	assert.Equal(t, "raw"+Suffix, ArtifactName("raw"))
}

func TestSaveProcessed(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "processed")
	s := New(dir, logging.Discard())

	saved, err := s.SaveProcessed(types.ProcessedDocument{SourcePath: "data/lecture-1.pdf", Text: "Page1\n\nPage2\n\n"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lecture-1"+Suffix), saved.Path)
	assert.False(t, saved.CreatedAt.IsZero())

	loaded, err := s.LoadLatest()
	require.NoError(t, err)
	assert.Equal(t, "Page1\n\nPage2\n\n", loaded.Text)
	assert.Equal(t, saved.Path, loaded.Path)
}

func TestSaveProcessedRequiresSource(t *testing.T) {
	_, err := New(t.TempDir(), logging.Discard()).SaveProcessed(types.ProcessedDocument{Text: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIO)
}

func TestSaveProcessedUnwritable(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := New(filepath.Join(blocker, "processed"), logging.Discard()).SaveProcessed(types.ProcessedDocument{SourcePath: "a.pdf", Text: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIO)
}
