// Package cli provides the command-line interface for flow.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/flow/internal/scaffold"
	"github.com/mrz1836/flow/internal/tui"
)

var (
	glamourRenderer     *glamour.TermRenderer //nolint:gochecknoglobals // cached renderer for performance
	glamourRendererOnce sync.Once             //nolint:gochecknoglobals // sync.Once for renderer initialization
)

// getGlamourRenderer returns a cached glamour renderer for markdown rendering.
// The renderer is initialized once and reused across all calls.
func getGlamourRenderer() *glamour.TermRenderer {
	glamourRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			glamourRenderer = r
		}
	})
	return glamourRenderer
}

// templateListing is the serializable form of a registered kind.
type templateListing struct {
	Name        string   `json:"name" yaml:"name"`
	DisplayName string   `json:"display_name" yaml:"display_name"`
	Category    string   `json:"category" yaml:"category"`
	Type        string   `json:"type" yaml:"type"`
	Framework   string   `json:"framework,omitempty" yaml:"framework,omitempty"`
	Description string   `json:"description" yaml:"description"`
	Features    []string `json:"features,omitempty" yaml:"features,omitempty"`
	Tools       []string `json:"tools,omitempty" yaml:"tools,omitempty"`
}

// toTemplateListing converts a kind into its serializable form.
func toTemplateListing(k *scaffold.Kind) templateListing {
	features := make([]string, 0, len(k.Features))
	for _, f := range k.Features {
		features = append(features, f.Feature.String())
	}

	return templateListing{
		Name:        k.Name,
		DisplayName: k.DisplayName,
		Category:    k.Category.String(),
		Type:        k.Type.String(),
		Framework:   k.Framework.String(),
		Description: k.Description,
		Features:    features,
		Tools:       k.Tools,
	}
}

// newTemplatesCmd creates the 'templates' command.
func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List available project templates",
		Long: `List the project templates flow can scaffold.

Each template is identified by a name (e.g. react-vite) that can be passed
to 'flow templates info' for the full description.

Examples:
  flow templates                     # List templates as a table
  flow templates -o json             # List templates as JSON
  flow templates info react-vite     # Show one template in detail`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTemplatesList(cmd.Context(), cmd.OutOrStdout(), cmd.Flag("output").Value.String())
		},
		SilenceUsage: true,
	}

	AddTemplatesInfoCommand(cmd)

	return cmd
}

// AddTemplatesCommand adds the templates command to the root command.
func AddTemplatesCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newTemplatesCmd())
}

// runTemplatesList executes the templates command.
func runTemplatesList(ctx context.Context, w io.Writer, format string) error {
	// Check cancellation at entry
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	kinds := scaffold.NewDefaultRegistry().List()
	listings := make([]templateListing, 0, len(kinds))
	for _, k := range kinds {
		listings = append(listings, toTemplateListing(k))
	}

	switch format {
	case OutputJSON:
		return tui.NewOutput(w, format).JSON(listings)
	case OutputYAML:
		data, err := yaml.Marshal(listings)
		if err != nil {
			return fmt.Errorf("failed to encode templates: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		displayTemplatesTable(w, listings)
		return nil
	}
}

// displayTemplatesTable renders the template catalogue as a table.
func displayTemplatesTable(w io.Writer, listings []templateListing) {
	rows := make([][]string, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, []string{l.Name, l.DisplayName, l.Category, l.Description})
	}

	out := tui.NewOutput(w, OutputText)
	out.Table([]string{"NAME", "TEMPLATE", "CATEGORY", "DESCRIPTION"}, rows)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Run 'flow templates info <name>' for details.")
}

// newTemplatesInfoCmd creates the 'templates info' subcommand.
func newTemplatesInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <name>",
		Short: "Show one template in detail",
		Long: `Show the full description of one template, rendered as markdown.

The name is the first column of 'flow templates'.

Examples:
  flow templates info react-vite
  flow templates info t3-stack`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplatesInfo(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
		SilenceUsage: true,
	}
}

// AddTemplatesInfoCommand adds the info subcommand to the templates command.
func AddTemplatesInfoCommand(templatesCmd *cobra.Command) {
	templatesCmd.AddCommand(newTemplatesInfoCmd())
}

// runTemplatesInfo executes the templates info command.
func runTemplatesInfo(ctx context.Context, w io.Writer, name string) error {
	// Check cancellation at entry
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	k, err := scaffold.NewDefaultRegistry().Lookup(name)
	if err != nil {
		return err
	}

	renderTemplateDoc(w, k.Doc)

	return nil
}

// renderTemplateDoc renders a template's markdown doc using glamour.
func renderTemplateDoc(w io.Writer, doc string) {
	if renderer := getGlamourRenderer(); renderer != nil {
		if rendered, err := renderer.Render(doc); err == nil {
			_, _ = fmt.Fprint(w, rendered)
			return
		}
	}
	// Fallback to plain text
	_, _ = fmt.Fprintln(w, strings.TrimRight(doc, "\n"))
}
