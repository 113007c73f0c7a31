// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the state shared by the Q&A and notes workflows:
// the loaded document, the completion client, and the artifact sinks.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/studynotes/internal/artifact"
	"github.com/pdiddy/studynotes/internal/config"
	"github.com/pdiddy/studynotes/internal/convert"
	"github.com/pdiddy/studynotes/internal/ledger"
	"github.com/pdiddy/studynotes/internal/llm"
	"github.com/pdiddy/studynotes/internal/notes"
	"github.com/pdiddy/studynotes/internal/store"
	"github.com/pdiddy/studynotes/pkg/types"
)

const (
	qaSystemPrompt = "You are a helpful tutor. Answer questions based on the provided context."

	// NoContentMessage is the answer given when nothing has been processed.
	NoContentMessage = "Error: No content has been processed yet. Please run `studynotes bootstrap` first."
)

// Deps carries optional collaborators. Nil fields are built from the
// config passed to New.
type Deps struct {
	Completer llm.Completer
	Ledger    *ledger.Ledger
	Logger    *slog.Logger
	Now       func() time.Time
}

// Session is one interactive run. It is not safe for concurrent use; the
// REPLs drive it from a single goroutine.
type Session struct {
	id        string
	cfg       types.Config
	logger    *slog.Logger
	completer llm.Completer
	store     *store.Store
	writer    *artifact.Writer
	pipeline  *notes.Pipeline
	ledger    *ledger.Ledger
	ownLedger bool

	doc types.ProcessedDocument
}

// New validates cfg and wires the session. A missing API key fails with
// types.ErrConfiguration before any file or network access. The latest
// processed document is loaded; a failure to read it is logged and the
// session starts with an empty context.
func New(cfg types.Config, deps Deps) (*Session, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	logger = logger.With("session", id)

	completer := deps.Completer
	if completer == nil {
		client, err := llm.NewOpenAIClient(cfg.AI, logger)
		if err != nil {
			return nil, err
		}
		completer = client
	}

	writer := artifact.NewWriter(config.NotesDir(cfg))
	if deps.Now != nil {
		writer.Now = deps.Now
	}

	s := &Session{
		id:        id,
		cfg:       cfg,
		logger:    logger,
		completer: completer,
		store:     store.New(config.ProcessedDir(cfg), logger),
		writer:    writer,
		pipeline:  notes.New(completer, llm.OptionsFrom(cfg.Notes), logger),
		ledger:    deps.Ledger,
	}

	if s.ledger == nil && cfg.Ledger {
		l, err := ledger.Open(config.IndexDir(cfg))
		if err != nil {
			logger.Warn("artifact ledger disabled", "err", err)
		} else {
			s.ledger, s.ownLedger = l, true
		}
	}

	if err := s.Reload(); err != nil {
		logger.Warn("starting without processed content", "err", err)
	}
	return s, nil
}

// ID returns the session identifier used in logs and ledger rows.
func (s *Session) ID() string { return s.id }

// Document returns the currently loaded document.
func (s *Session) Document() types.ProcessedDocument { return s.doc }

// Close releases the ledger if the session opened it.
func (s *Session) Close() error {
	if s.ownLedger && s.ledger != nil {
		return s.ledger.Close()
	}
	return nil
}

// Reload rescans the content store and replaces the loaded document. On
// error the context is cleared.
func (s *Session) Reload() error {
	doc, err := s.store.LoadLatest()
	if err != nil {
		s.doc = types.ProcessedDocument{}
		return err
	}
	s.doc = doc
	return nil
}

// Ask answers question from the loaded context. It never returns an
// error; failures become the answer text.
func (s *Session) Ask(ctx context.Context, question string) string {
	if s.doc.Empty() {
		return NoContentMessage
	}

	answer, err := s.completer.Complete(ctx, llm.Request{
		System:  qaSystemPrompt,
		User:    fmt.Sprintf("Context:\n%s\n\nQuestion: %s", s.doc.Text, question),
		Options: llm.OptionsFrom(s.cfg.QA),
	})
	if err != nil {
		s.logger.Debug("question failed", "err", err)
		return fmt.Sprintf("Error getting response: %v", err)
	}
	return answer
}

// GenerateNotes produces notes in format from the loaded context,
// reloading from the store first when nothing is loaded.
func (s *Session) GenerateNotes(ctx context.Context, format types.Format) (types.NotesArtifact, error) {
	if s.doc.Empty() {
		if err := s.Reload(); err != nil {
			return types.NotesArtifact{}, err
		}
	}
	return s.pipeline.Generate(ctx, s.doc, format)
}

// SaveNotes persists a and records it in the ledger.
func (s *Session) SaveNotes(ctx context.Context, a types.NotesArtifact) (types.StoredArtifact, error) {
	stored, err := s.writer.Save(a)
	if err != nil {
		return types.StoredArtifact{}, err
	}
	s.record(ctx, ledger.KindNotes, string(a.Format), stored.Path)
	return stored, nil
}

// Bootstrap extracts pdfPath with c into the content store, loads the
// result as the session context, and records it in the ledger.
func (s *Session) Bootstrap(ctx context.Context, c convert.Converter, pdfPath string, w io.Writer) (types.ProcessedDocument, error) {
	doc, err := convert.Bootstrap(ctx, c, s.store, pdfPath, w)
	if err != nil {
		return types.ProcessedDocument{}, err
	}
	s.doc = doc
	s.record(ctx, ledger.KindProcessed, "", doc.Path)
	return doc, nil
}

// History lists ledger entries newest first. It returns nil when the
// ledger is disabled.
func (s *Session) History(ctx context.Context, kind ledger.Kind, limit int) ([]ledger.Entry, error) {
	if s.ledger == nil {
		return nil, nil
	}
	return s.ledger.List(ctx, kind, limit)
}

func (s *Session) record(ctx context.Context, kind ledger.Kind, format, path string) {
	if s.ledger == nil {
		return
	}
	e, err := s.ledger.Record(ctx, ledger.Entry{Session: s.id, Kind: kind, Format: format, Path: path})
	if err != nil {
		s.logger.Warn("ledger write failed", "kind", kind, "path", path, "err", err)
		return
	}
	s.logger.Debug("ledger entry recorded", "id", e.ID, "kind", kind, "path", path)
}
