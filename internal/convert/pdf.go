// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFConverter reads the embedded text layer of a PDF in-process. Scanned
// (image-only) pages yield no text; no OCR, ligature, or column repair is
// attempted.
type PDFConverter struct{}

// Convert returns every page's plain text in page order, each followed by
// a blank line.
func (PDFConverter) Convert(ctx context.Context, pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i, pdfPath, err)
		}
		pages = append(pages, text)
	}
	return joinPages(pages), nil
}

// joinPages concatenates page texts, terminating each with a blank line.
func joinPages(pages []string) string {
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	return b.String()
}
