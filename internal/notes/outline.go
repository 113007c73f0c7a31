// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/studynotes/pkg/types"
)

// Wire shapes use pointers so a missing key is distinguishable from an
// empty value.
type wireOutline struct {
	Title    *string        `json:"title"`
	Sections *[]wireSection `json:"sections"`
}

type wireSection struct {
	Title       *string          `json:"title"`
	Subsections []wireSubsection `json:"subsections"`
}

type wireSubsection struct {
	Title     *string   `json:"title"`
	KeyPoints []*string `json:"key_points"`
}

// ParseOutline decodes raw as an outline and validates its shape. The
// result is all-or-nothing: any deviation returns an error wrapping
// types.ErrMalformedResponse and a zero Outline.
//
// Required: a single JSON object with a string "title" and an array
// "sections"; every section and subsection has a non-blank string "title".
// "subsections" and "key_points" may be omitted and decode as empty.
// Unknown keys are ignored.
func ParseOutline(raw string) (types.Outline, error) {
	dec := json.NewDecoder(strings.NewReader(raw))

	var w wireOutline
	if err := dec.Decode(&w); err != nil {
		return types.Outline{}, malformed("decoding outline JSON: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return types.Outline{}, malformed("unexpected data after outline object")
	}
	if w.Title == nil {
		return types.Outline{}, malformed(`outline has no "title"`)
	}
	if w.Sections == nil {
		return types.Outline{}, malformed(`outline has no "sections" array`)
	}

	out := types.Outline{
		Title:    *w.Title,
		Sections: make([]types.Section, 0, len(*w.Sections)),
	}
	for i, ws := range *w.Sections {
		if ws.Title == nil || strings.TrimSpace(*ws.Title) == "" {
			return types.Outline{}, malformed("section %d has no title", i)
		}
		sec := types.Section{
			Title:       *ws.Title,
			Subsections: make([]types.Subsection, 0, len(ws.Subsections)),
		}
		for j, wsub := range ws.Subsections {
			if wsub.Title == nil || strings.TrimSpace(*wsub.Title) == "" {
				return types.Outline{}, malformed("section %d subsection %d has no title", i, j)
			}
			points := make([]string, 0, len(wsub.KeyPoints))
			for k, p := range wsub.KeyPoints {
				if p == nil {
					return types.Outline{}, malformed("section %d subsection %d key point %d is not a string", i, j, k)
				}
				points = append(points, *p)
			}
			sec.Subsections = append(sec.Subsections, types.Subsection{
				Title:     *wsub.Title,
				KeyPoints: points,
			})
		}
		out.Sections = append(out.Sections, sec)
	}
	return out, nil
}

// EncodeOutline returns the two-space indented JSON form of o.
func EncodeOutline(o types.Outline) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return nil, fmt.Errorf("encoding outline: %w", err)
	}
	return buf.Bytes(), nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", types.ErrMalformedResponse, fmt.Sprintf(format, args...))
}
