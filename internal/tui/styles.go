// Package tui provides terminal user interface components for Flow.
//
// Interactive menus are built on Charm Huh, styled output on Lip Gloss, and
// the generation progress view on Bubble Tea. All colors use AdaptiveColor
// for light/dark terminal support.
//
// # Semantic Colors
//
// Five semantic colors are exported for use across TUI components:
//   - ColorPrimary (Blue): Active states, prompts, primary actions
//   - ColorSuccess (Green): Success states, completed steps
//   - ColorWarning (Yellow): Warning states, optional-tool notices
//   - ColorError (Red): Error states, failed steps
//   - ColorMuted (Gray): Dim/inactive states, pending steps, secondary text
//
// # NO_COLOR Support
//
// Call CheckNoColor() at the start of commands to respect the NO_COLOR
// environment variable. Colors are also disabled when TERM=dumb.
package tui

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mrz1836/flow/internal/constants"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for active states, prompts, and primary actions.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for success states and completed steps.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for warning states and optional-tool notices.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for error states and failed steps.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for dim/inactive states and secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}
)

// DefaultMenuWidth is the default maximum width for menus and wizard prompts.
const DefaultMenuWidth = 80

// Styles holds the lipgloss styles used by one command invocation.
// Build a fresh value with NewStyles per run; constructing styles is cheap,
// and keeping them off package globals means NO_COLOR and color-profile
// changes between runs cannot leak rendered state across tests.
type Styles struct {
	// Title styles section headings and the wizard banner.
	Title lipgloss.Style
	// Success styles success messages and completed steps.
	Success lipgloss.Style
	// Error styles error messages and failed steps.
	Error lipgloss.Style
	// Warning styles warnings.
	Warning lipgloss.Style
	// Info styles informational messages and the running-step marker.
	Info lipgloss.Style
	// Dim styles secondary text, pending steps, and key hints.
	Dim lipgloss.Style
	// Bold styles emphasized inline text such as project names.
	Bold lipgloss.Style
}

// NewStyles builds the style set from the semantic color palette.
func NewStyles() *Styles {
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Info:    lipgloss.NewStyle().Foreground(ColorPrimary),
		Dim:     lipgloss.NewStyle().Foreground(ColorMuted),
		Bold:    lipgloss.NewStyle().Bold(true),
	}
}

// TableStyles holds lipgloss styles for table rendering.
type TableStyles struct {
	Header lipgloss.Style
	Cell   lipgloss.Style
	Dim    lipgloss.Style
}

// NewTableStyles creates styles for table rendering.
func NewTableStyles() *TableStyles {
	return &TableStyles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}),
		Cell: lipgloss.NewStyle(),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
	}
}

// RunStatusIcon returns the icon/symbol for a generation run or step status.
// Icons keep triple redundancy with color and text so status remains readable
// without color support.
func RunStatusIcon(status constants.RunStatus) string {
	icons := map[constants.RunStatus]string{
		constants.RunStatusPending:   "○",
		constants.RunStatusRunning:   "●",
		constants.RunStatusSucceeded: "✓",
		constants.RunStatusFailed:    "✗",
	}
	if icon, ok := icons[status]; ok {
		return icon
	}
	return "?"
}

// RunStatusColors returns the semantic color for each run status.
// Uses AdaptiveColor for light/dark terminal support.
func RunStatusColors() map[constants.RunStatus]lipgloss.AdaptiveColor {
	return map[constants.RunStatus]lipgloss.AdaptiveColor{
		constants.RunStatusPending:   ColorMuted,
		constants.RunStatusRunning:   ColorPrimary,
		constants.RunStatusSucceeded: ColorSuccess,
		constants.RunStatusFailed:    ColorError,
	}
}

// CheckNoColor respects the NO_COLOR environment variable.
// Call this at the start of commands that output styled text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns true if the terminal supports colors.
// Returns false if NO_COLOR is set (any value including empty string) or TERM=dumb.
// This follows the NO_COLOR standard: https://no-color.org/
func HasColorSupport() bool {
	// NO_COLOR spec: if the variable exists in the environment with any value,
	// including empty, color should be disabled.
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return true
}

// stripANSI removes ANSI escape codes from a string.
// Used to calculate visible character count (excluding color codes).
// Handles both CSI sequences (\x1b[...letter) and OSC sequences (\x1b]...ST).
func stripANSI(s string) string {
	var result strings.Builder
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		if newI := trySkipANSI(runes, i); newI != i {
			i = newI
			continue
		}
		result.WriteRune(runes[i])
		i++
	}
	return result.String()
}

// trySkipANSI attempts to skip an ANSI escape sequence starting at position i.
// Returns the new position after the sequence, or i if no sequence was found.
func trySkipANSI(runes []rune, i int) int {
	if i >= len(runes) || runes[i] != '\x1b' || i+1 >= len(runes) {
		return i
	}

	next := runes[i+1]
	if next == '[' {
		return skipCSISequence(runes, i)
	}
	if next == ']' {
		return skipOSCSequence(runes, i)
	}
	return i
}

// skipCSISequence skips a CSI sequence: \x1b[...letter
func skipCSISequence(runes []rune, i int) int {
	i += 2 // skip \x1b[
	for i < len(runes) {
		c := runes[i]
		i++
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			break // CSI sequence ends with a letter
		}
	}
	return i
}

// skipOSCSequence skips an OSC sequence: \x1b]...ST (where ST is \x1b\\ or \x07)
func skipOSCSequence(runes []rune, i int) int {
	i += 2 // skip \x1b]
	for i < len(runes) {
		c := runes[i]
		if c == '\x07' {
			i++ // skip BEL terminator
			break
		}
		if c == '\x1b' && i+1 < len(runes) && runes[i+1] == '\\' {
			i += 2 // skip ST (\x1b\\)
			break
		}
		i++
	}
	return i
}

// padRight pads a string to the right to reach the target width.
// Uses visible character count (excluding ANSI escape codes) for proper width calculation.
func padRight(s string, width int) string {
	visible := stripANSI(s)
	runeCount := utf8.RuneCountInString(visible)
	if runeCount >= width {
		// Truncate to width runes (not bytes)
		runes := []rune(s)
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-runeCount)
}
