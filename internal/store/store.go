// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps processed document text on disk and hands back the
// most recent one on request.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/studynotes/pkg/types"
)

// Suffix marks a processed-text artifact in the store directory.
const Suffix = "_processed.txt"

// Store is a directory of processed-text artifacts.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New returns a store rooted at dir. The directory is created lazily on
// the first save.
func New(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

// LoadLatest rescans the store and returns the most recently written
// artifact. A missing directory or a directory without artifacts yields a
// zero document and a nil error; callers check doc.Empty(). Only a failure
// to read the selected artifact is an error.
//
// Recency is the file modification time. Equal times fall back to the
// lexically greatest file name so the choice is stable.
func (s *Store) LoadLatest() (types.ProcessedDocument, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("no processed content found", "dir", s.dir)
			return types.ProcessedDocument{}, nil
		}
		return types.ProcessedDocument{}, fmt.Errorf("%w: reading store %s: %w", types.ErrIO, s.dir, err)
	}

	var (
		latestName string
		latestTime time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Suffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			s.logger.Warn("skipping unreadable artifact", "name", entry.Name(), "err", err)
			continue
		}
		mod := info.ModTime()
		if latestName == "" || mod.After(latestTime) || (mod.Equal(latestTime) && entry.Name() > latestName) {
			latestName, latestTime = entry.Name(), mod
		}
	}

	if latestName == "" {
		s.logger.Warn("no processed files found", "dir", s.dir)
		return types.ProcessedDocument{}, nil
	}

	path := filepath.Join(s.dir, latestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ProcessedDocument{}, fmt.Errorf("%w: loading processed content %s: %w", types.ErrIO, path, err)
	}

	s.logger.Debug("loaded processed content", "path", path, "bytes", len(data))
	return types.ProcessedDocument{
		Path:      path,
		Text:      string(data),
		CreatedAt: latestTime,
	}, nil
}

// ArtifactName returns the store file name for a source PDF path.
func ArtifactName(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + Suffix
}

// SaveProcessed writes doc.Text as the artifact for doc.SourcePath and
// returns the document with Path and CreatedAt filled in. An existing
// artifact for the same source is replaced.
func (s *Store) SaveProcessed(doc types.ProcessedDocument) (types.ProcessedDocument, error) {
	if doc.SourcePath == "" {
		return types.ProcessedDocument{}, fmt.Errorf("%w: processed document has no source path", types.ErrIO)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return types.ProcessedDocument{}, fmt.Errorf("%w: creating store directory: %w", types.ErrIO, err)
	}

	path := filepath.Join(s.dir, ArtifactName(doc.SourcePath))
	if err := os.WriteFile(path, []byte(doc.Text), 0o644); err != nil {
		return types.ProcessedDocument{}, fmt.Errorf("%w: writing %s: %w", types.ErrIO, path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return types.ProcessedDocument{}, fmt.Errorf("%w: stat %s: %w", types.ErrIO, path, err)
	}

	doc.Path = path
	doc.CreatedAt = info.ModTime()
	return doc, nil
}
