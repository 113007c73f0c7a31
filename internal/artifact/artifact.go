// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package artifact persists generated notes as timestamped files and reads
// saved outlines back.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/studynotes/internal/notes"
	"github.com/pdiddy/studynotes/pkg/types"
)

// TimestampLayout gives file names second resolution. Two saves of the
// same format within one second write the same file; the later one wins.
const TimestampLayout = "20060102_150405"

// Writer saves notes artifacts under Dir.
type Writer struct {
	Dir string

	// Now supplies the timestamp; nil means time.Now.
	Now func() time.Time
}

// NewWriter returns a writer for dir using the wall clock.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, Now: time.Now}
}

// FileName returns the notes file name for format at ts.
func FileName(format types.Format, ts time.Time) string {
	return fmt.Sprintf("notes_%s.%s", ts.Format(TimestampLayout), format.Extension())
}

// Save writes a as notes_<timestamp>.<ext>. Markdown is written verbatim;
// JSON and YAML serialize the outline. Every failure wraps types.ErrIO.
func (w *Writer) Save(a types.NotesArtifact) (types.StoredArtifact, error) {
	data, err := encode(a)
	if err != nil {
		return types.StoredArtifact{}, err
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return types.StoredArtifact{}, fmt.Errorf("%w: creating notes directory: %w", types.ErrIO, err)
	}

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	ts := now()
	path := filepath.Join(w.Dir, FileName(a.Format, ts))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return types.StoredArtifact{}, fmt.Errorf("%w: saving notes: %w", types.ErrIO, err)
	}
	return types.StoredArtifact{Path: path, Timestamp: ts.Format(TimestampLayout)}, nil
}

func encode(a types.NotesArtifact) ([]byte, error) {
	switch a.Format {
	case types.FormatMarkdown:
		if strings.TrimSpace(a.Markdown) == "" {
			return nil, fmt.Errorf("%w: no notes to save", types.ErrIO)
		}
		return []byte(a.Markdown), nil
	case types.FormatJSON:
		if a.Outline == nil {
			return nil, fmt.Errorf("%w: no notes to save", types.ErrIO)
		}
		data, err := notes.EncodeOutline(*a.Outline)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrIO, err)
		}
		return data, nil
	case types.FormatYAML:
		if a.Outline == nil {
			return nil, fmt.Errorf("%w: no notes to save", types.ErrIO)
		}
		data, err := yaml.Marshal(a.Outline)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding outline YAML: %w", types.ErrIO, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: unknown notes format %q", types.ErrIO, a.Format)
	}
}

// ReadOutline loads a saved .json or .yaml notes file through the same
// strict validation applied to completion responses.
func ReadOutline(path string) (types.Outline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Outline{}, fmt.Errorf("%w: reading %s: %w", types.ErrIO, path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return notes.ParseOutline(string(data))
	case ".yaml", ".yml":
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return types.Outline{}, fmt.Errorf("%w: decoding %s: %w", types.ErrMalformedResponse, path, err)
		}
		asJSON, err := json.Marshal(generic)
		if err != nil {
			return types.Outline{}, fmt.Errorf("%w: converting %s: %w", types.ErrMalformedResponse, path, err)
		}
		return notes.ParseOutline(string(asJSON))
	default:
		return types.Outline{}, fmt.Errorf("%w: %s is not a JSON or YAML outline", types.ErrIO, path)
	}
}
