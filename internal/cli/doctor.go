// Package cli provides the command-line interface for flow.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/flow/internal/config"
	flowerrors "github.com/mrz1836/flow/internal/errors"
	"github.com/mrz1836/flow/internal/tui"
)

// doctorReport is the serializable form of a tool detection run.
type doctorReport struct {
	Tools              []doctorTool `json:"tools" yaml:"tools"`
	HasMissingRequired bool         `json:"has_missing_required" yaml:"has_missing_required"`
}

// doctorTool is the serializable form of one detected tool.
type doctorTool struct {
	Name           string `json:"name" yaml:"name"`
	Required       bool   `json:"required" yaml:"required"`
	Status         string `json:"status" yaml:"status"`
	CurrentVersion string `json:"current_version,omitempty" yaml:"current_version,omitempty"`
	MinVersion     string `json:"min_version,omitempty" yaml:"min_version,omitempty"`
	InstallHint    string `json:"install_hint" yaml:"install_hint"`
}

// toDoctorReport converts a detection result into its serializable form.
func toDoctorReport(result *config.ToolDetectionResult) doctorReport {
	tools := make([]doctorTool, 0, len(result.Tools))
	for _, tool := range result.Tools {
		tools = append(tools, doctorTool{
			Name:           tool.Name,
			Required:       tool.Required,
			Status:         tool.Status.String(),
			CurrentVersion: tool.CurrentVersion,
			MinVersion:     tool.MinVersion,
			InstallHint:    tool.InstallHint,
		})
	}

	return doctorReport{
		Tools:              tools,
		HasMissingRequired: result.HasMissingRequired,
	}
}

// newDoctorCmd creates the 'doctor' command.
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external scaffolding tools",
		Long: `Check that the external tools flow shells out to are installed and
recent enough. node, npm, npx, and python3 are required by the built-in
templates; git, poetry, and cursor are optional.

Exits non-zero when a required tool is missing or outdated.

Examples:
  flow doctor            # Styled report with install hints
  flow doctor -o json    # Report as JSON
  flow doctor -o yaml    # Report as YAML`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runDoctor(cmd.Context(), cmd.OutOrStdout(), cmd.Flag("output").Value.String())
			// The report already shows what is missing; silence cobra's
			// error printing but still return error for non-zero exit code
			if stderrors.Is(err, flowerrors.ErrMissingRequiredTools) {
				cmd.SilenceErrors = true
			}
			return err
		},
		SilenceUsage: true,
	}
}

// AddDoctorCommand adds the doctor command to the root command.
func AddDoctorCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newDoctorCmd())
}

// runDoctor executes the doctor command with the default detector.
func runDoctor(ctx context.Context, w io.Writer, format string) error {
	return runDoctorWithDetector(ctx, w, format, config.NewToolDetector())
}

// runDoctorWithDetector executes the doctor command with an injected detector.
// This enables testing with mock executors.
func runDoctorWithDetector(ctx context.Context, w io.Writer, format string, detector config.ToolDetector) error {
	// Check cancellation at entry
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := detector.Detect(ctx)
	if err != nil {
		return fmt.Errorf("failed to detect tools: %w", err)
	}

	// Detection runs in parallel, so result order is not stable.
	sortTools(result.Tools)

	switch format {
	case OutputJSON:
		if err = tui.NewOutput(w, format).JSON(toDoctorReport(result)); err != nil {
			return err
		}
	case OutputYAML:
		data, yamlErr := yaml.Marshal(toDoctorReport(result))
		if yamlErr != nil {
			return fmt.Errorf("failed to encode report: %w", yamlErr)
		}
		if _, err = w.Write(data); err != nil {
			return err
		}
	default:
		displayDoctorReport(w, result)
	}

	if result.HasMissingRequired {
		return flowerrors.ErrMissingRequiredTools
	}

	return nil
}

// sortTools orders tools required-first, then by name.
func sortTools(tools []config.Tool) {
	sort.Slice(tools, func(i, j int) bool {
		if tools[i].Required != tools[j].Required {
			return tools[i].Required
		}
		return tools[i].Name < tools[j].Name
	})
}

// displayDoctorReport renders the detection result as a table with install
// hints and a final verdict.
func displayDoctorReport(w io.Writer, result *config.ToolDetectionResult) {
	out := tui.NewOutput(w, OutputText)

	rows := make([][]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		rows = append(rows, []string{tool.Name, requiredLabel(tool.Required), tool.Status.String(), versionLabel(tool)})
	}
	out.Table([]string{"TOOL", "REQUIRED", "STATUS", "VERSION"}, rows)

	flagged := false
	for _, tool := range result.Tools {
		if tool.Status == config.ToolStatusInstalled {
			continue
		}
		if !flagged {
			_, _ = fmt.Fprintln(w)
			flagged = true
		}
		out.Info(fmt.Sprintf("%s: %s", tool.Name, tool.InstallHint))
	}

	_, _ = fmt.Fprintln(w)
	if result.HasMissingRequired {
		out.Warning("Required tools are missing. Install them and run 'flow doctor' again.")
	} else {
		out.Success("All required tools are installed.")
	}
}

// requiredLabel renders the REQUIRED column value.
func requiredLabel(required bool) string {
	if required {
		return "yes"
	}
	return "no"
}

// versionLabel renders the VERSION column value.
func versionLabel(tool config.Tool) string {
	switch tool.Status {
	case config.ToolStatusMissing:
		return "-"
	case config.ToolStatusOutdated:
		return fmt.Sprintf("%s (need %s)", tool.CurrentVersion, tool.MinVersion)
	default:
		return tool.CurrentVersion
	}
}
