// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/studynotes/pkg/types"
)

type fakeAsker struct {
	questions []string
	reloads   int
	reloadErr error
}

func (f *fakeAsker) Ask(_ context.Context, q string) string {
	f.questions = append(f.questions, q)
	return "answer to " + q
}

func (f *fakeAsker) Reload() error {
	f.reloads++
	return f.reloadErr
}

type fakeNotes struct {
	genErr  error
	saveErr error
	formats []types.Format
	saved   []types.NotesArtifact
}

func (f *fakeNotes) GenerateNotes(_ context.Context, format types.Format) (types.NotesArtifact, error) {
	f.formats = append(f.formats, format)
	if f.genErr != nil {
		return types.NotesArtifact{}, f.genErr
	}
	o := &types.Outline{Title: "Cells", Sections: []types.Section{}}
	a := types.NotesArtifact{Format: format, Outline: o}
	if format == types.FormatMarkdown {
		a.Markdown = "# Cells\n- membranes"
	}
	return a, nil
}

func (f *fakeNotes) SaveNotes(_ context.Context, a types.NotesArtifact) (types.StoredArtifact, error) {
	if f.saveErr != nil {
		return types.StoredArtifact{}, f.saveErr
	}
	f.saved = append(f.saved, a)
	return types.StoredArtifact{Path: fmt.Sprintf("data/notes/notes_x.%s", a.Format.Extension())}, nil
}

func TestRunQA(t *testing.T) {
	a := &fakeAsker{}
	var out strings.Builder
	in := strings.NewReader("What is a cell?\n\n   \nRELOAD\nwhy?\nExit\nnever asked\n")

	require.NoError(t, RunQA(context.Background(), a, in, &out))

	assert.Equal(t, []string{"What is a cell?", "why?"}, a.questions)
	assert.Equal(t, 1, a.reloads)
	s := out.String()
	assert.Contains(t, s, "Welcome to the Q&A Assistant!")
	assert.Contains(t, s, "Your question: ")
	assert.Contains(t, s, "Content reloaded!")
	assert.Contains(t, s, "Assistant's response:")
	assert.Contains(t, s, "answer to What is a cell?")
	assert.NotContains(t, s, "never asked")
}

func TestRunQAEndsAtEOF(t *testing.T) {
	a := &fakeAsker{}
	var out strings.Builder
	require.NoError(t, RunQA(context.Background(), a, strings.NewReader("only question"), &out))
	assert.Equal(t, []string{"only question"}, a.questions)
}

func TestRunQAReloadError(t *testing.T) {
	a := &fakeAsker{reloadErr: errors.New("permission denied")}
	var out strings.Builder
	require.NoError(t, RunQA(context.Background(), a, strings.NewReader("reload\nexit\n"), &out))

	assert.Contains(t, out.String(), "Error loading processed content: permission denied")
	assert.NotContains(t, out.String(), "Content reloaded!")
}

func TestRunNotesMenu(t *testing.T) {
	n := &fakeNotes{}
	var out strings.Builder
	in := strings.NewReader("4\n1\n2\nabc\n3\n1\n")

	require.NoError(t, RunNotesMenu(context.Background(), n, in, &out))

	assert.Equal(t, []types.Format{types.FormatMarkdown, types.FormatJSON}, n.formats)
	require.Len(t, n.saved, 2)
	s := out.String()
	assert.Equal(t, 2, strings.Count(s, "Invalid choice. Please enter 1, 2, or 3."))
	assert.Contains(t, s, "Generated Notes:")
	assert.Contains(t, s, rule+"\n# Cells\n- membranes\n"+rule)
	assert.Contains(t, s, "Generated Notes Structure:")
	assert.Contains(t, s, "\"title\": \"Cells\"")
	assert.Contains(t, s, "Notes saved successfully to data/notes/notes_x.md")
	assert.Contains(t, s, "Notes saved successfully to data/notes/notes_x.json")
	assert.Contains(t, s, "Exiting Notes Generator. Goodbye!")
}

func TestRunNotesMenuErrorsKeepLooping(t *testing.T) {
	tests := []struct {
		name string
		n    *fakeNotes
		want string
	}{
		{"generation", &fakeNotes{genErr: types.ErrEmptyContext}, "Error generating notes: no processed content"},
		{"save", &fakeNotes{saveErr: fmt.Errorf("%w: disk full", types.ErrIO)}, "Error saving notes: io error: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			require.NoError(t, RunNotesMenu(context.Background(), tt.n, strings.NewReader("1\n2\n3\n"), &out))
			assert.Len(t, tt.n.formats, 2)
			assert.Equal(t, 2, strings.Count(out.String(), tt.want))
			assert.Contains(t, out.String(), "Goodbye!")
		})
	}
}

func TestLoopsStopOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &fakeAsker{}
	var qaOut strings.Builder
	err := RunQA(ctx, a, strings.NewReader("first\nsecond\nthird\n"), &qaOut)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, a.questions)

	n := &fakeNotes{}
	var menuOut strings.Builder
	err = RunNotesMenu(ctx, n, strings.NewReader("1\n2\n"), &menuOut)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, n.formats)
}

func TestRunQAStopsWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var out strings.Builder
	go func() { done <- RunQA(ctx, &fakeAsker{}, pr, &out) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("RunQA did not return after cancel")
	}
}

// cancelingAsker cancels the loop's context while answering, as an
// interrupt during a completion request would.
type cancelingAsker struct {
	fakeAsker
	cancel context.CancelFunc
}

func (c *cancelingAsker) Ask(ctx context.Context, q string) string {
	c.cancel()
	return c.fakeAsker.Ask(ctx, q)
}

func TestRunQAStopsAfterInterruptedAnswer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &cancelingAsker{cancel: cancel}
	var out strings.Builder

	err := RunQA(ctx, a, strings.NewReader("one\ntwo\nthree\n"), &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"one"}, a.questions)
}
