// Package ui centralizes terminal styling for hug-tools text output.
// Colors match the Hug SCM shell palette: yellow hashes, blue dates,
// grey subjects, cyan tracking info.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	Hash    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	Date    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	Subject = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	Track   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	Warn    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	Header  = lipgloss.NewStyle().Bold(true)
)

// Init disables colors when stdout is not a terminal so eval'd and
// piped output stays clean. Call once from main before rendering.
func Init() {
	if !isTerminal() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
