// Package cli provides the command-line interface for flow.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/flow/internal/config"
	"github.com/mrz1836/flow/internal/tui"
)

// newConfigCmd creates the 'config' parent command.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage Flow settings",
		Long: `Manage Flow settings stored in ~/.flow/config.json.

Subcommands:
  show   Display all settings
  get    Print a single setting value
  set    Change a setting
  path   Print the settings file location

Examples:
  flow config show                          # Display all settings
  flow config get development_folder        # Print one value
  flow config set preferred_editor code     # Change a setting
  flow config path                          # Where settings live`,
	}

	AddConfigShowCommand(cmd)
	AddConfigGetCommand(cmd)
	AddConfigSetCommand(cmd)
	AddConfigPathCommand(cmd)

	return cmd
}

// AddConfigCommand adds the config command to the root command.
func AddConfigCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newConfigCmd())
}

// newConfigShowCmd creates the 'config show' subcommand.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current settings",
		Long: `Display the current Flow settings.

Settings missing from the file fall back to their defaults, so the output
always lists every key.

Examples:
  flow config show              # Settings as a table
  flow config show -o json      # Settings as JSON
  flow config show -o yaml      # Settings as YAML`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), cmd.Flag("output").Value.String())
		},
		SilenceUsage: true,
	}
}

// AddConfigShowCommand adds the show subcommand to the config command.
func AddConfigShowCommand(configCmd *cobra.Command) {
	configCmd.AddCommand(newConfigShowCmd())
}

// runConfigShow executes the config show command.
func runConfigShow(ctx context.Context, w io.Writer, format string) error {
	// Check cancellation at entry
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	settings, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	switch format {
	case OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(settings)
	case OutputYAML:
		values, err := settings.AsMap()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(values)
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return writeSettingsTable(w, settings)
	}
}

// writeSettingsTable renders settings as a two-column table with the file
// location underneath.
func writeSettingsTable(w io.Writer, settings *config.Settings) error {
	rows := make([][]string, 0, len(config.Keys()))
	for _, key := range config.Keys() {
		value, err := settings.Get(key)
		if err != nil {
			return err
		}
		rows = append(rows, []string{key, value})
	}

	out := tui.NewOutput(w, OutputText)
	out.Table([]string{"SETTING", "VALUE"}, rows)

	if path, err := config.SettingsPath(); err == nil {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintf(w, "Settings file: %s\n", path)
	}

	return nil
}

// newConfigGetCmd creates the 'config get' subcommand.
func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a single setting value",
		Long: `Print the value of one setting, with no decoration, so it can be
captured in scripts.

Examples:
  flow config get development_folder
  cd "$(flow config get development_folder)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
		SilenceUsage: true,
	}
}

// AddConfigGetCommand adds the get subcommand to the config command.
func AddConfigGetCommand(configCmd *cobra.Command) {
	configCmd.AddCommand(newConfigGetCmd())
}

// runConfigGet executes the config get command.
func runConfigGet(ctx context.Context, w io.Writer, key string) error {
	// Check cancellation at entry
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	settings, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	value, err := settings.Get(key)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w, value)

	return nil
}

// newConfigSetCmd creates the 'config set' subcommand.
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Long: `Change one setting and write it back to ~/.flow/config.json.

Valid keys:
  development_folder   Where new projects are created (default ~/Development)
  preferred_editor     Editor command to launch after generation (default cursor)

Examples:
  flow config set development_folder ~/Code
  flow config set preferred_editor "code --new-window"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.Context(), cmd.OutOrStdout(), cmd.Flag("output").Value.String(), args[0], args[1])
		},
		SilenceUsage: true,
	}
}

// AddConfigSetCommand adds the set subcommand to the config command.
func AddConfigSetCommand(configCmd *cobra.Command) {
	configCmd.AddCommand(newConfigSetCmd())
}

// runConfigSet executes the config set command.
func runConfigSet(ctx context.Context, w io.Writer, format, key, value string) error {
	// Check cancellation at entry
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if _, err := config.Update(ctx, key, value); err != nil {
		return err
	}

	out := tui.NewOutput(w, format)
	out.Success(fmt.Sprintf("%s set to %s", key, value))

	return nil
}

// newConfigPathCmd creates the 'config path' subcommand.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Long: `Print the absolute path of the settings file. The file may not exist
yet; it is created on the first 'flow config set' or wizard run.

Example:
  cat "$(flow config path)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigPath(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
}

// AddConfigPathCommand adds the path subcommand to the config command.
func AddConfigPathCommand(configCmd *cobra.Command) {
	configCmd.AddCommand(newConfigPathCmd())
}

// runConfigPath executes the config path command.
func runConfigPath(ctx context.Context, w io.Writer) error {
	// Check cancellation at entry
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path, err := config.SettingsPath()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w, path)

	return nil
}
