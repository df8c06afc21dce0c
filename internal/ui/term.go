package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/wisesched/internal/schedule"
)

// Color definitions for consistent styling across the UI.
var (
	colorOrder   = color.New(color.FgCyan, color.Bold)
	colorIdle    = color.New(color.FgWhite, color.Faint)
	colorSetup   = color.New(color.FgYellow)
	colorTesting = color.New(color.FgMagenta)
	colorStopped = color.New(color.FgRed, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Success messages
	colorOK = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func statusColor(s schedule.Status) *color.Color {
	switch s {
	case schedule.StatusOrderCreated:
		return colorOrder
	case schedule.StatusSetup:
		return colorSetup
	case schedule.StatusTesting:
		return colorTesting
	case schedule.StatusStopped:
		return colorStopped
	default:
		return colorIdle
	}
}

// formatStatus renders the status name in its color.
func formatStatus(s schedule.Status) string {
	return statusColor(s).Sprint(string(s))
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatOK formats a success message.
func formatOK(s string) string {
	return colorOK.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
