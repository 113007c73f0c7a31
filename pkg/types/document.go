// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"time"
)

// ProcessedDocument is the plain text extracted from one source PDF.
type ProcessedDocument struct {
	// SourcePath is the PDF the text came from. It is empty when the
	// document was loaded back from the content store.
	SourcePath string `json:"source_path,omitempty" yaml:"source_path,omitempty"`

	// Path is the processed-text artifact in the content store.
	Path string `json:"path" yaml:"path"`

	// Text is the extracted content.
	Text string `json:"-" yaml:"-"`

	// CreatedAt is when the artifact was written.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Empty reports whether the document carries no usable text.
func (d ProcessedDocument) Empty() bool {
	return strings.TrimSpace(d.Text) == ""
}

// Outline is the structured summary of a document produced before notes
// rendering.
type Outline struct {
	Title    string    `json:"title" yaml:"title"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section is one top-level topic of an Outline.
type Section struct {
	Title       string       `json:"title" yaml:"title"`
	Subsections []Subsection `json:"subsections" yaml:"subsections"`
}

// Subsection is a subtopic with its key points.
type Subsection struct {
	Title     string   `json:"title" yaml:"title"`
	KeyPoints []string `json:"key_points" yaml:"key_points"`
}

// Format selects how generated notes are rendered and persisted.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatMarkdown, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Extension returns the file extension used for f, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "md"
	}
}

// NotesArtifact is the result of one notes generation. Markdown is set for
// FormatMarkdown; Outline is set for every format because the markdown is
// rendered from it.
type NotesArtifact struct {
	Format   Format
	Markdown string
	Outline  *Outline
}

// StoredArtifact identifies a file written by the persistence writer.
type StoredArtifact struct {
	Path      string `json:"path" yaml:"path"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}
