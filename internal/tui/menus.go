// Package tui provides terminal user interface components for Flow.
//
// This file provides the interactive menu system using Charm Huh for the
// project wizard and confirmation prompts.
//
// # Interactive Menu Functions
//
// Four primary functions are provided for user interaction:
//   - Select: Single selection from a list of options
//   - MultiSelect: Multiple selection with preselected defaults
//   - Confirm: Yes/no confirmation prompts
//   - Input: Single-line text input, optionally validated
//
// # Styling
//
// All menus use the established style system from styles.go, with a custom
// Flow theme that maps ColorPrimary, ColorSuccess, and ColorError to the
// appropriate Huh form states.
//
// # Cancellation
//
// Pressing q or Escape inside any menu returns ErrMenuCanceled. Menus also
// return ErrMenuCanceled immediately when stdin is not a terminal, which
// keeps tests from hanging on form input.
package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	flowerrors "github.com/mrz1836/flow/internal/errors"
)

// Terminal layout constants.
const (
	// TerminalEdgeMargin is the number of characters to leave between
	// menu content and the terminal edge for visual padding.
	TerminalEdgeMargin = 4

	// MinMenuWidth is the minimum usable width for menu content.
	// Menus narrower than this become difficult to read and use.
	MinMenuWidth = 40
)

// ErrMenuCanceled is an alias for errors.ErrMenuCanceled for package-local use.
// Returned when the user cancels a menu operation by pressing q or Escape.
var ErrMenuCanceled = flowerrors.ErrMenuCanceled

// Option represents a selectable menu option.
type Option struct {
	// Label is the display text shown to the user.
	Label string
	// Description is optional help text shown alongside the label.
	Description string
	// Value is the value returned when this option is selected.
	Value string
}

// MenuConfig holds configuration for menu components.
type MenuConfig struct {
	// Width is the maximum width for the menu. If 0, adapts to terminal width.
	Width int
	// Accessible enables accessible mode for screen readers.
	Accessible bool
	// ShowKeyHints controls whether key hints are displayed.
	ShowKeyHints bool
}

// MenuConfigOption is a functional option for configuring MenuConfig.
type MenuConfigOption func(*MenuConfig)

// WithMenuWidth sets the menu width.
func WithMenuWidth(width int) MenuConfigOption {
	return func(c *MenuConfig) {
		c.Width = width
	}
}

// WithMenuAccessible enables or disables accessible mode.
func WithMenuAccessible(enabled bool) MenuConfigOption {
	return func(c *MenuConfig) {
		c.Accessible = enabled
	}
}

// WithMenuKeyHints enables or disables key hints display.
func WithMenuKeyHints(show bool) MenuConfigOption {
	return func(c *MenuConfig) {
		c.ShowKeyHints = show
	}
}

// NewMenuConfig creates a MenuConfig with sensible defaults.
// It automatically detects accessible mode from the ACCESSIBLE environment
// variable. Use functional options to customize:
// NewMenuConfig(WithMenuWidth(60), WithMenuKeyHints(false))
func NewMenuConfig(opts ...MenuConfigOption) *MenuConfig {
	_, accessible := os.LookupEnv("ACCESSIBLE")

	c := &MenuConfig{
		Width:        DefaultMenuWidth, // From styles.go
		Accessible:   accessible,
		ShowKeyHints: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithWidth returns a new MenuConfig with the specified width.
func (c *MenuConfig) WithWidth(width int) *MenuConfig {
	return &MenuConfig{
		Width:        width,
		Accessible:   c.Accessible,
		ShowKeyHints: c.ShowKeyHints,
	}
}

// WithAccessible returns a new MenuConfig with accessible mode enabled/disabled.
func (c *MenuConfig) WithAccessible(enabled bool) *MenuConfig {
	return &MenuConfig{
		Width:        c.Width,
		Accessible:   enabled,
		ShowKeyHints: c.ShowKeyHints,
	}
}

// WithKeyHints returns a new MenuConfig with key hints enabled/disabled.
func (c *MenuConfig) WithKeyHints(show bool) *MenuConfig {
	return &MenuConfig{
		Width:        c.Width,
		Accessible:   c.Accessible,
		ShowKeyHints: show,
	}
}

// adaptWidth returns an appropriate menu width based on terminal size.
// It respects the maxWidth constraint while adapting to narrower terminals.
func adaptWidth(maxWidth int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		if maxWidth <= 0 {
			return DefaultMenuWidth
		}
		return maxWidth
	}

	// Leave some margin from terminal edge for visual padding
	availableWidth := width - TerminalEdgeMargin

	// Use the smaller of maxWidth and available terminal width
	if maxWidth > 0 && maxWidth < availableWidth {
		return maxWidth
	}

	// Ensure minimum usable width
	if availableWidth < MinMenuWidth {
		return MinMenuWidth
	}

	return availableWidth
}

// runFormWithConfig creates and runs a form with the given field and config.
// It handles common setup (theme, width, accessibility) and error handling.
// The errorContext parameter is used to wrap errors with descriptive context.
func runFormWithConfig(field huh.Field, cfg *MenuConfig, errorContext string) error {
	// Check if we're running in a terminal environment.
	// This prevents tests from hanging when TUI code is called without a terminal.
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrMenuCanceled
	}

	CheckNoColor()

	width := adaptWidth(cfg.Width)

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(FlowTheme()).
		WithWidth(width).
		WithAccessible(cfg.Accessible).
		WithShowHelp(cfg.ShowKeyHints)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrMenuCanceled
		}
		return fmt.Errorf("%s: %w", errorContext, err)
	}

	return nil
}

// FlowTheme returns a custom Huh theme using Flow colors from styles.go.
// Uses AdaptiveColor for proper light/dark terminal support.
func FlowTheme() *huh.Theme {
	CheckNoColor()

	// Start with base theme and customize
	t := huh.ThemeBase()

	// Map ColorPrimary to focused state
	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(ColorPrimary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ColorPrimary)

	// Map ColorSuccess to selected/completed state
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(ColorSuccess)

	// Map ColorError to error/validation failed state
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorError)

	// Map ColorMuted to unfocused/help text state
	t.Blurred.Base = t.Blurred.Base.BorderForeground(ColorMuted)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Help.Ellipsis = t.Help.Ellipsis.Foreground(ColorMuted)

	return t
}

// Select presents a single-selection menu and returns the selected value.
// Returns ErrMenuCanceled if the user presses q or Esc.
func Select(title string, options []Option) (string, error) {
	return SelectWithConfig(title, options, NewMenuConfig())
}

// SelectWithConfig presents a single-selection menu with custom configuration.
func SelectWithConfig(title string, options []Option, cfg *MenuConfig) (string, error) {
	if len(options) == 0 {
		return "", flowerrors.ErrNoMenuOptions
	}

	// Huh doesn't support option-level descriptions natively, so the
	// description is folded into the label when present.
	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		label := opt.Label
		if opt.Description != "" {
			label = opt.Label + " - " + opt.Description
		}
		huhOptions[i] = huh.NewOption(label, opt.Value)
	}

	var selected string

	selectField := huh.NewSelect[string]().
		Title(title).
		Options(huhOptions...).
		Value(&selected)

	if err := runFormWithConfig(selectField, cfg, "select menu failed"); err != nil {
		return "", err
	}

	return selected, nil
}

// MultiSelect presents a multiple-selection menu and returns the chosen values
// in menu order. Options whose Value appears in preselected start checked.
// Returns ErrMenuCanceled if the user presses q or Esc.
func MultiSelect(title string, options []Option, preselected []string) ([]string, error) {
	return MultiSelectWithConfig(title, options, preselected, NewMenuConfig())
}

// MultiSelectWithConfig presents a multiple-selection menu with custom configuration.
func MultiSelectWithConfig(title string, options []Option, preselected []string, cfg *MenuConfig) ([]string, error) {
	if len(options) == 0 {
		return nil, flowerrors.ErrNoMenuOptions
	}

	checked := make(map[string]bool, len(preselected))
	for _, v := range preselected {
		checked[v] = true
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		label := opt.Label
		if opt.Description != "" {
			label = opt.Label + " - " + opt.Description
		}
		huhOptions[i] = huh.NewOption(label, opt.Value).Selected(checked[opt.Value])
	}

	var selected []string

	multiField := huh.NewMultiSelect[string]().
		Title(title).
		Options(huhOptions...).
		Value(&selected)

	if err := runFormWithConfig(multiField, cfg, "multi-select menu failed"); err != nil {
		return nil, err
	}

	return selected, nil
}

// Confirm presents a yes/no confirmation prompt.
// Returns the user's choice or ErrMenuCanceled if canceled.
func Confirm(message string, defaultYes bool) (bool, error) {
	return ConfirmWithConfig(message, defaultYes, NewMenuConfig())
}

// ConfirmWithConfig presents a confirmation prompt with custom configuration.
func ConfirmWithConfig(message string, defaultYes bool, cfg *MenuConfig) (bool, error) {
	var confirmed bool
	if defaultYes {
		confirmed = true
	}

	confirmField := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := runFormWithConfig(confirmField, cfg, "confirm prompt failed"); err != nil {
		return false, err
	}

	return confirmed, nil
}

// Input presents a single-line text input prompt.
// Returns the entered text or ErrMenuCanceled if canceled.
func Input(prompt, defaultValue string) (string, error) {
	return InputWithConfig(prompt, defaultValue, NewMenuConfig())
}

// InputWithConfig presents an input prompt with custom configuration.
func InputWithConfig(prompt, defaultValue string, cfg *MenuConfig) (string, error) {
	var value string
	if defaultValue != "" {
		value = defaultValue
	}

	inputField := huh.NewInput().
		Title(prompt).
		Value(&value)

	if err := runFormWithConfig(inputField, cfg, "input prompt failed"); err != nil {
		return "", err
	}

	return value, nil
}

// InputWithValidation presents an input prompt with a validation function.
// The form re-prompts until validate returns nil or the user cancels.
func InputWithValidation(prompt, defaultValue string, validate func(string) error) (string, error) {
	return InputWithValidationConfig(prompt, defaultValue, validate, NewMenuConfig())
}

// InputWithValidationConfig presents an input prompt with validation and custom config.
func InputWithValidationConfig(prompt, defaultValue string, validate func(string) error, cfg *MenuConfig) (string, error) {
	var value string
	if defaultValue != "" {
		value = defaultValue
	}

	inputField := huh.NewInput().
		Title(prompt).
		Value(&value).
		Validate(validate)

	if err := runFormWithConfig(inputField, cfg, "validated input prompt failed"); err != nil {
		return "", err
	}

	return value, nil
}
