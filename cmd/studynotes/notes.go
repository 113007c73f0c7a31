// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/studynotes/internal/repl"
	"github.com/pdiddy/studynotes/pkg/types"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Generate study notes from the processed lecture",
	Long: `Notes builds an outline of the processed lecture and saves it under
data/notes/. With --format it generates once and exits; without it an
interactive menu offers Markdown and JSON notes.

Markdown notes are rendered from the outline in a second request. JSON and
YAML notes are the outline itself.`,
	Args: cobra.NoArgs,
	RunE: runNotes,
}

func init() {
	notesCmd.Flags().String("format", "", "generate once in this format: markdown, json, or yaml")

	rootCmd.AddCommand(notesCmd)
}

func runNotes(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	format := types.Format(formatFlag)
	if formatFlag != "" && !format.Valid() {
		return fmt.Errorf("unknown format %q (want markdown, json, or yaml)", formatFlag)
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if formatFlag == "" {
		return repl.RunNotesMenu(ctx, s, os.Stdin, os.Stdout)
	}

	a, err := s.GenerateNotes(ctx, format)
	if err != nil {
		return err
	}
	stored, err := s.SaveNotes(ctx, a)
	if err != nil {
		return err
	}
	fmt.Printf("Notes saved successfully to %s\n", stored.Path)
	return nil
}
