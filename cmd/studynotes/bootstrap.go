// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/studynotes/internal/convert"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap [pdf]",
	Short: "Extract the text of a lecture PDF into the content store",
	Long: `Bootstrap reads the PDF (the argument, PDF_PATH, or data/lecture-1.pdf),
extracts its text with the configured converter, and writes it to
data/processed/<name>_processed.txt. A relative path that does not exist is
also tried one directory up.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBootstrap,
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	pdfPath := appConfig.PDFPath
	if len(args) == 1 {
		pdfPath = args[0]
	}

	ctx := cmd.Context()
	c, err := convert.New(ctx, appConfig.Converter)
	if err != nil {
		return err
	}

	doc, err := s.Bootstrap(ctx, c, pdfPath, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println("\nBootstrap process completed.")
	fmt.Println("Your text has been processed and is ready for Q&A.")
	fmt.Printf("Processed file location: %s\n", doc.Path)
	return nil
}
