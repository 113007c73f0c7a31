// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notes generates study notes in two completion steps: a
// schema-checked outline, then Markdown rendered from that outline and
// the original text.
package notes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdiddy/studynotes/internal/llm"
	"github.com/pdiddy/studynotes/pkg/types"
)

// State names a step of a Generate run.
type State string

const (
	StateNoContext     State = "no-context"
	StateContextLoaded State = "context-loaded"
	StateOutlineBuilt  State = "outline-built"
	StateDone          State = "done"
)

// GenerateError reports the state a Generate run failed from. Nothing from
// the failed run is kept.
type GenerateError struct {
	From State
	Err  error
}

func (e *GenerateError) Error() string {
	switch e.From {
	case StateNoContext:
		return "loading content: " + e.Err.Error()
	case StateContextLoaded:
		return "building outline: " + e.Err.Error()
	default:
		return "rendering notes: " + e.Err.Error()
	}
}

func (e *GenerateError) Unwrap() error { return e.Err }

// Pipeline issues the outline and notes requests through a Completer.
type Pipeline struct {
	completer llm.Completer
	opts      llm.Options
	logger    *slog.Logger
}

// New returns a pipeline using opts for both requests. The outline request
// always runs in JSON mode regardless of opts.JSON.
func New(c llm.Completer, opts llm.Options, logger *slog.Logger) *Pipeline {
	return &Pipeline{completer: c, opts: opts, logger: logger}
}

// BuildOutline asks for an outline of text and validates it. It makes
// exactly one request and never retries.
func (p *Pipeline) BuildOutline(ctx context.Context, text string) (types.Outline, error) {
	if strings.TrimSpace(text) == "" {
		return types.Outline{}, fmt.Errorf("%w: nothing to outline", types.ErrEmptyContext)
	}

	prompt, err := renderOutlinePrompt(text)
	if err != nil {
		return types.Outline{}, fmt.Errorf("rendering outline prompt: %w", err)
	}

	opts := p.opts
	opts.JSON = true
	raw, err := p.completer.Complete(ctx, llm.Request{System: systemPrompt, User: prompt, Options: opts})
	if err != nil {
		return types.Outline{}, err
	}
	return ParseOutline(raw)
}

// RenderNotes asks for Markdown notes built from outline and text. The
// response is returned verbatim; only an empty response is rejected.
func (p *Pipeline) RenderNotes(ctx context.Context, outline types.Outline, text string) (string, error) {
	prompt, err := renderNotesPrompt(outline, text)
	if err != nil {
		return "", fmt.Errorf("rendering notes prompt: %w", err)
	}

	opts := p.opts
	opts.JSON = false
	md, err := p.completer.Complete(ctx, llm.Request{System: systemPrompt, User: prompt, Options: opts})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(md) == "" {
		return "", fmt.Errorf("%w: completion returned empty notes", types.ErrMalformedResponse)
	}
	return md, nil
}

// Generate runs the pipeline for doc. JSON and YAML formats stop after the
// outline; Markdown continues to rendering. Failures are *GenerateError.
func (p *Pipeline) Generate(ctx context.Context, doc types.ProcessedDocument, format types.Format) (types.NotesArtifact, error) {
	if !format.Valid() {
		return types.NotesArtifact{}, fmt.Errorf("unknown notes format %q", format)
	}

	state := StateNoContext
	fail := func(err error) (types.NotesArtifact, error) {
		p.logger.Debug("notes generation failed", "state", state, "err", err)
		return types.NotesArtifact{}, &GenerateError{From: state, Err: err}
	}

	if doc.Empty() {
		return fail(fmt.Errorf("%w: run `studynotes bootstrap` first", types.ErrEmptyContext))
	}
	state = StateContextLoaded
	p.logger.Debug("notes generation", "state", state, "format", format, "source", doc.Path)

	outline, err := p.BuildOutline(ctx, doc.Text)
	if err != nil {
		return fail(err)
	}
	state = StateOutlineBuilt
	p.logger.Debug("notes generation", "state", state, "sections", len(outline.Sections))

	artifact := types.NotesArtifact{Format: format, Outline: &outline}
	if format == types.FormatMarkdown {
		md, err := p.RenderNotes(ctx, outline, doc.Text)
		if err != nil {
			return fail(err)
		}
		artifact.Markdown = md
	}

	p.logger.Debug("notes generation", "state", StateDone)
	return artifact, nil
}
