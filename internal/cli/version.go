// Package cli provides the command-line interface for flow.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// versionReport is the serializable form of build information.
type versionReport struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

// buildVersionReport fills the report, substituting the same placeholders
// formatVersion uses for unset fields.
func buildVersionReport(info BuildInfo) versionReport {
	report := versionReport{
		Version: info.Version,
		Commit:  info.Commit,
		Date:    info.Date,
	}
	if report.Version == "" {
		report.Version = "dev"
	}
	if report.Commit == "" {
		report.Commit = "none"
	}
	if report.Date == "" {
		report.Date = "unknown"
	}
	return report
}

// newVersionCmd creates the 'version' command.
func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the flow version, the commit it was built from, and the build date.

Examples:
  flow version            # Human-readable version line
  flow version -o json    # Version as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd.Context(), cmd.OutOrStdout(), cmd.Flag("output").Value.String(), info)
		},
		SilenceUsage: true,
	}
}

// AddVersionCommand adds the version command to the root command.
func AddVersionCommand(rootCmd *cobra.Command, info BuildInfo) {
	rootCmd.AddCommand(newVersionCmd(info))
}

// runVersion executes the version command.
func runVersion(ctx context.Context, w io.Writer, format string, info BuildInfo) error {
	// Check cancellation at entry
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	switch format {
	case OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(buildVersionReport(info))
	case OutputYAML:
		data, err := yaml.Marshal(buildVersionReport(info))
		if err != nil {
			return fmt.Errorf("failed to encode version: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		_, _ = fmt.Fprintf(w, "flow %s\n", formatVersion(info))
		return nil
	}
}
