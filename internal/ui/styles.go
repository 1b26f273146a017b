// Package ui renders status glyphs and highlighted text for terminal output.
//
// Colour is used only when stdout is a terminal and NO_COLOR is unset.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	renderer = lipgloss.NewRenderer(os.Stdout)

	passStyle   lipgloss.Style
	warnStyle   lipgloss.Style
	failStyle   lipgloss.Style
	accentStyle lipgloss.Style
	mutedStyle  lipgloss.Style
)

func init() {
	SetColor(IsTerminal(os.Stdout) && !termenv.EnvNoColor())
}

// SetColor forces colour output on or off.
func SetColor(enabled bool) {
	if enabled {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	passStyle = renderer.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle = renderer.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	failStyle = renderer.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	accentStyle = renderer.NewStyle().Foreground(lipgloss.Color("39"))
	mutedStyle = renderer.NewStyle().Foreground(lipgloss.Color("245"))
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// RenderPass renders a success marker.
func RenderPass(s string) string { return passStyle.Render(s) }

// RenderWarn renders a warning marker.
func RenderWarn(s string) string { return warnStyle.Render(s) }

// RenderFail renders a failure marker.
func RenderFail(s string) string { return failStyle.Render(s) }

// RenderAccent highlights s.
func RenderAccent(s string) string { return accentStyle.Render(s) }

// RenderMuted dims s.
func RenderMuted(s string) string { return mutedStyle.Render(s) }
