// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/pdiddy/studynotes/pkg/types"
)

// systemPrompt is shared by the outline and notes requests.
const systemPrompt = "You are a professional note-taker and educator."

// outlinePromptTmpl asks for the outline as a single JSON object. The word
// JSON must appear in the prompt for the API's JSON response mode.
var outlinePromptTmpl = template.Must(template.New("outline").Parse(`Create a detailed outline of the following content.
Break it down into main topics, subtopics, and key points.
Format the response as a JSON object with the following structure:
{
    "title": "Main title of the content",
    "sections": [
        {
            "title": "Section title",
            "subsections": [
                {
                    "title": "Subsection title",
                    "key_points": ["point 1", "point 2"]
                }
            ]
        }
    ]
}
Do not include any text outside the JSON object.

Content:
{{.Text}}`))

// notesPromptTmpl asks for Markdown study notes grounded in the outline
// and the full source text.
var notesPromptTmpl = template.Must(template.New("notes").Parse(`Based on the following outline, create detailed study notes in markdown format.
Include:
1. Clear headings and subheadings
2. Bullet points for key concepts
3. Important definitions and explanations
4. Examples where relevant
5. Key takeaways

Outline:
{{.Outline}}

Content for reference:
{{.Text}}`))

func renderOutlinePrompt(text string) (string, error) {
	var buf bytes.Buffer
	if err := outlinePromptTmpl.Execute(&buf, struct{ Text string }{text}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderNotesPrompt(outline types.Outline, text string) (string, error) {
	encoded, err := json.MarshalIndent(outline, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding outline: %w", err)
	}
	var buf bytes.Buffer
	data := struct{ Outline, Text string }{string(encoded), text}
	if err := notesPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
