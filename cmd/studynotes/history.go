// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/studynotes/internal/config"
	"github.com/pdiddy/studynotes/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List processed text and notes written by this tool",
	Long: `History reads the artifact ledger in data/index/ledger.db and lists
entries newest first. It does not need an API key. With ledger: false
nothing is opened or created.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("kind", "", "filter by kind: processed or notes")
	historyCmd.Flags().Int("limit", 20, "maximum entries to list (0 for all)")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	kindFlag, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	kind := ledger.Kind(kindFlag)
	switch kind {
	case "", ledger.KindProcessed, ledger.KindNotes:
	default:
		return fmt.Errorf("unknown kind %q (want %s or %s)", kindFlag, ledger.KindProcessed, ledger.KindNotes)
	}

	if !appConfig.Ledger {
		return formatHistory(nil, jsonOutput, os.Stdout)
	}

	l, err := ledger.Open(config.IndexDir(appConfig))
	if err != nil {
		return err
	}
	defer l.Close()

	entries, err := l.List(cmd.Context(), kind, limit)
	if err != nil {
		return err
	}
	return formatHistory(entries, jsonOutput, os.Stdout)
}

func formatHistory(entries []ledger.Entry, jsonOutput bool, w io.Writer) error {
	if jsonOutput {
		if entries == nil {
			entries = []ledger.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No artifacts recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-9s  %-8s  %-19s  %s\n", "ID", "Kind", "Format", "Created", "Path")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, e := range entries {
		fmt.Fprintf(w, "%-5d  %-9s  %-8s  %-19s  %s\n",
			e.ID, e.Kind, e.Format, e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Path)
	}
	return nil
}
