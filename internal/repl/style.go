// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repl

import "github.com/charmbracelet/lipgloss"

// Styles used by both loops. lipgloss drops the escape codes when the
// output is not a terminal, so piped transcripts stay plain.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89B4FA"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CBA6F7"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1"))
)

// rule is the separator printed around generated notes.
const rule = "=================================================="
