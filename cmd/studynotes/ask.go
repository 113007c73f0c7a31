// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/studynotes/internal/repl"
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask questions about the processed lecture",
	Long: `Ask answers a single question given as arguments, or starts an
interactive loop when no arguments are given. In the loop, type 'reload' to
pick up newly processed content and 'exit' to quit.`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if question := strings.TrimSpace(strings.Join(args, " ")); question != "" {
		fmt.Println(s.Ask(ctx, question))
		return nil
	}
	return repl.RunQA(ctx, s, os.Stdin, os.Stdout)
}
