// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package repl implements the line-oriented Q&A and notes loops.
package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/studynotes/internal/notes"
	"github.com/pdiddy/studynotes/pkg/types"
)

// Asker answers questions against a reloadable context.
type Asker interface {
	Ask(ctx context.Context, question string) string
	Reload() error
}

// NotesMaker generates and saves notes artifacts.
type NotesMaker interface {
	GenerateNotes(ctx context.Context, format types.Format) (types.NotesArtifact, error)
	SaveNotes(ctx context.Context, a types.NotesArtifact) (types.StoredArtifact, error)
}

// RunQA reads questions from in until "exit" or EOF. Errors from the
// session are printed and never end the loop. A read failure on in or a
// cancelled ctx is returned.
func RunQA(ctx context.Context, a Asker, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("Welcome to the Q&A Assistant!"))
	fmt.Fprintln(out, mutedStyle.Render("Type 'exit' to quit"))
	fmt.Fprintln(out, mutedStyle.Render("Type 'reload' to reload the processed content"))

	lines := newLineReader(in)
	defer lines.close()
	for {
		fmt.Fprint(out, "\nYour question: ")
		text, ok, err := lines.next(ctx)
		if !ok {
			fmt.Fprintln(out)
			return err
		}
		question := strings.TrimSpace(text)

		switch strings.ToLower(question) {
		case "exit":
			return nil
		case "reload":
			if err := a.Reload(); err != nil {
				fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("Error loading processed content: %v", err)))
				continue
			}
			fmt.Fprintln(out, successStyle.Render("Content reloaded!"))
			continue
		case "":
			continue
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, headerStyle.Render("Assistant's response:"))
		fmt.Fprintln(out, a.Ask(ctx, question))
	}
}

// RunNotesMenu shows the generator menu and handles choices from in until
// "3" or EOF. A cancelled ctx ends the loop with ctx.Err().
func RunNotesMenu(ctx context.Context, n NotesMaker, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("Welcome to the Notes Generator!"))
	fmt.Fprintln(out, "1. Generate Markdown Notes")
	fmt.Fprintln(out, "2. Generate JSON Notes")
	fmt.Fprintln(out, "3. Exit")

	lines := newLineReader(in)
	defer lines.close()
	for {
		fmt.Fprint(out, "\nEnter your choice (1-3): ")
		text, ok, err := lines.next(ctx)
		if !ok {
			fmt.Fprintln(out)
			return err
		}

		switch strings.TrimSpace(text) {
		case "1":
			GenerateAndSave(ctx, n, types.FormatMarkdown, out)
		case "2":
			GenerateAndSave(ctx, n, types.FormatJSON, out)
		case "3":
			fmt.Fprintln(out, "Exiting Notes Generator. Goodbye!")
			return nil
		default:
			fmt.Fprintln(out, errorStyle.Render("Invalid choice. Please enter 1, 2, or 3."))
		}
	}
}

// GenerateAndSave runs one generation in format, prints the result between
// rules, and saves it. Failures are printed to out.
func GenerateAndSave(ctx context.Context, n NotesMaker, format types.Format, out io.Writer) {
	a, err := n.GenerateNotes(ctx, format)
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("Error generating notes: %v", err)))
		return
	}

	body, title := a.Markdown, "Generated Notes:"
	if format != types.FormatMarkdown && a.Outline != nil {
		data, err := notes.EncodeOutline(*a.Outline)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("Error generating notes: %v", err)))
			return
		}
		body, title = strings.TrimRight(string(data), "\n"), "Generated Notes Structure:"
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render(title))
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, body)
	fmt.Fprintln(out, rule)

	stored, err := n.SaveNotes(ctx, a)
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("Error saving notes: %v", err)))
		return
	}
	fmt.Fprintln(out, successStyle.Render("Notes saved successfully to "+stored.Path))
}
