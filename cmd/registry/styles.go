// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Palette for CLI output. Colors degrade to plain text when stderr is not a
// terminal.
var (
	colorBrand   = lipgloss.AdaptiveColor{Light: "#B7410E", Dark: "#F74C00"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	colorOK      = lipgloss.Color("#10B981")
	colorFail    = lipgloss.Color("#EF4444")
	colorWarn    = lipgloss.Color("#F59E0B")
	colorLiteral = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle renders the program name in help output.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	// SubtitleStyle renders secondary text.
	SubtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	// SuccessStyle marks accepted manifests and completed writes.
	SuccessStyle = lipgloss.NewStyle().Foreground(colorOK)
	// ErrorStyle marks rejected input and failures.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFail)
	// WarningStyle marks conditions that did not stop the command.
	WarningStyle = lipgloss.NewStyle().Foreground(colorWarn)
	// CmdStyle renders crate names, paths and commands.
	CmdStyle = lipgloss.NewStyle().Foreground(colorLiteral)
)

// success prints a check-marked status line on stderr.
func (a *App) success(format string, args ...any) {
	fmt.Fprintln(a.stderr, SuccessStyle.Render("✓ ")+fmt.Sprintf(format, args...))
}

// warn prints a warning status line on stderr.
func (a *App) warn(format string, args ...any) {
	fmt.Fprintln(a.stderr, WarningStyle.Render("! ")+fmt.Sprintf(format, args...))
}

// literal renders s as a name, path or command.
func literal(s string) string { return CmdStyle.Render(s) }
