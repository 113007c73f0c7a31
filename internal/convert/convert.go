// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a source PDF into plain text and stores it as a
// processed document.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdiddy/studynotes/internal/container"
	"github.com/pdiddy/studynotes/internal/store"
	"github.com/pdiddy/studynotes/pkg/types"
)

// Converter extracts the text of a PDF. Different backends (the native
// text-layer reader, markitdown) implement this interface.
type Converter interface {
	Convert(ctx context.Context, pdfPath string) (string, error)
}

// New returns the converter for backend.
func New(ctx context.Context, backend types.ConverterBackend) (Converter, error) {
	switch backend {
	case "", types.ConverterNative:
		return PDFConverter{}, nil
	case types.ConverterMarkitdown:
		rt, err := container.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
		}
		return NewMarkitdownConverter(ctx, rt)
	default:
		return nil, fmt.Errorf("%w: unknown converter %q", types.ErrConfiguration, backend)
	}
}

// ResolvePath returns path when it exists, otherwise the same path one
// directory up. If neither exists the error wraps types.ErrNotFound.
func ResolvePath(path string) (string, error) {
	candidates := []string{path}
	if !filepath.IsAbs(path) {
		candidates = append(candidates, filepath.Join("..", path))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: checking %s: %w", types.ErrIO, p, err)
		}
	}
	return "", fmt.Errorf("%w: PDF file not found at expected path: %s", types.ErrNotFound, path)
}

// Bootstrap resolves pdfPath, extracts its text with c, and saves it into
// st. Progress lines are written to w.
func Bootstrap(ctx context.Context, c Converter, st *store.Store, pdfPath string, w io.Writer) (types.ProcessedDocument, error) {
	resolved, err := ResolvePath(pdfPath)
	if err != nil {
		return types.ProcessedDocument{}, err
	}

	fmt.Fprintf(w, "Extracting text from PDF: %s\n", resolved)
	text, err := c.Convert(ctx, resolved)
	if err != nil {
		return types.ProcessedDocument{}, fmt.Errorf("extracting %s: %w", resolved, err)
	}

	doc, err := st.SaveProcessed(types.ProcessedDocument{SourcePath: resolved, Text: text})
	if err != nil {
		return types.ProcessedDocument{}, err
	}
	fmt.Fprintf(w, "Processed text saved to: %s\n", doc.Path)
	return doc, nil
}
