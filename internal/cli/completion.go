// Package cli provides the command-line interface for flow.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// shellType represents supported shell types.
type shellType string

// Sentinel errors for completion commands.
var (
	errUnsupportedShell = errors.New("unsupported shell (supported: zsh, bash, fish)")
	errNoShellDetected  = errors.New("could not detect shell from $SHELL environment variable; use --shell flag")
)

const (
	shellZsh     shellType = "zsh"
	shellBash    shellType = "bash"
	shellFish    shellType = "fish"
	shellUnknown shellType = "unknown"
)

// AddCompletionCommand adds the completion command with subcommands to the root command.
// This replaces Cobra's default completion command with a custom one that includes
// an "install" subcommand for easy setup.
func AddCompletionCommand(rootCmd *cobra.Command) {
	// Disable Cobra's default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	completionCmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for flow.

To install completions automatically:
  flow completion install

To generate completion scripts manually:
  flow completion bash
  flow completion zsh
  flow completion fish
  flow completion powershell`,
	}

	// Add shell-specific generation subcommands
	completionCmd.AddCommand(newBashCompletionCmd())
	completionCmd.AddCommand(newZshCompletionCmd())
	completionCmd.AddCommand(newFishCompletionCmd())
	completionCmd.AddCommand(newPowershellCompletionCmd())
	completionCmd.AddCommand(newInstallCompletionCmd())

	rootCmd.AddCommand(completionCmd)
}

func newBashCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate bash completion script for flow.

To load completions in current session:
  source <(flow completion bash)

To install completions permanently:
  flow completion install --shell bash`,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	}
}

func newZshCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zsh",
		Short: "Generate zsh completion script",
		Long: `Generate zsh completion script for flow.

To load completions in current session:
  source <(flow completion zsh)

To install completions permanently:
  flow completion install --shell zsh`,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		},
	}
}

func newFishCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate fish completion script for flow.

To load completions in current session:
  flow completion fish | source

To install completions permanently:
  flow completion install --shell fish`,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	}
}

func newPowershellCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "powershell",
		Short: "Generate powershell completion script",
		Long: `Generate powershell completion script for flow.

To load completions in current session:
  flow completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		},
	}
}

func newInstallCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install shell completions automatically",
		Long: `Install shell completions for flow.

This command auto-detects your shell and installs completions to the appropriate location.
You can override the detected shell with the --shell flag.

Supported shells: zsh, bash, fish

Examples:
  flow completion install              # Auto-detect shell
  flow completion install --shell zsh  # Force zsh`,
		RunE: runCompletionInstall,
	}

	cmd.Flags().String("shell", "", "Shell to install completions for (zsh, bash, fish)")
	return cmd
}

// runCompletionInstall handles the completion install subcommand.
func runCompletionInstall(cmd *cobra.Command, _ []string) error {
	shellFlag, _ := cmd.Flags().GetString("shell")
	quiet, _ := cmd.Flags().GetBool("quiet")

	shell, err := resolveShell(shellFlag)
	if err != nil {
		return err
	}

	if !quiet {
		cmd.Printf("Detected shell: %s\n\n", shell)
		cmd.Println("Installing completions...")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not determine home directory: %w", err)
	}

	completionPath, rcUpdated, err := installCompletions(cmd.Root(), shell, home)
	if err != nil {
		return err
	}

	if !quiet {
		cmd.Printf("  Created %s\n", completionPath)
		if rcUpdated {
			cmd.Printf("  Updated %s\n", getShellRCFile(shell))
		}
		cmd.Println()
		cmd.Printf("Done! Restart your shell or run: source %s\n", getShellRCFile(shell))
	}

	return nil
}

// resolveShell picks the install target from the --shell flag, falling back
// to $SHELL detection when the flag is empty.
func resolveShell(flag string) (shellType, error) {
	if flag != "" {
		shell := shellType(flag)
		if _, ok := installSpecFor(shell); !ok {
			return shellUnknown, fmt.Errorf("%s: %w", flag, errUnsupportedShell)
		}
		return shell, nil
	}

	if shell := detectShell(); shell != shellUnknown {
		return shell, nil
	}
	return shellUnknown, errNoShellDetected
}

// detectShell detects the user's shell from the $SHELL environment variable.
func detectShell() shellType {
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return shellUnknown
	}

	switch filepath.Base(shellPath) {
	case "zsh":
		return shellZsh
	case "bash":
		return shellBash
	case "fish":
		return shellFish
	default:
		return shellUnknown
	}
}

// getShellRCFile returns the path to the shell's RC file.
func getShellRCFile(shell shellType) string {
	home, _ := os.UserHomeDir()
	switch shell {
	case shellZsh:
		return filepath.Join(home, ".zshrc")
	case shellBash:
		return filepath.Join(home, ".bashrc")
	case shellFish:
		return filepath.Join(home, ".config", "fish", "config.fish")
	case shellUnknown:
		return ""
	}
	return ""
}

// installSpec bundles the per-shell constants for completion install: where
// the script lives under home, what it is called, how Cobra generates it,
// and how the shell's RC file learns about it. A nil updateRC means the
// shell auto-loads scripts from the directory.
type installSpec struct {
	relDir   []string
	fileName string
	generate func(*cobra.Command, io.Writer) error
	updateRC func(home, completionsDir string) (bool, error)
}

// installSpecFor returns the install spec for shell. ok is false for shells
// install does not support (powershell profiles have no stable location).
func installSpecFor(shell shellType) (installSpec, bool) {
	switch shell {
	case shellZsh:
		return installSpec{
			relDir:   []string{".zsh", "completions"},
			fileName: "_flow",
			generate: func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
			updateRC: updateZshRC,
		}, true
	case shellBash:
		return installSpec{
			relDir:   []string{".bash_completion.d"},
			fileName: "flow",
			generate: func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletion(w) },
			updateRC: updateBashRC,
		}, true
	case shellFish:
		return installSpec{
			relDir:   []string{".config", "fish", "completions"},
			fileName: "flow.fish",
			generate: func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
		}, true
	case shellUnknown:
		return installSpec{}, false
	}
	return installSpec{}, false
}

// installCompletions writes the completion script for shell under home and,
// for shells that need it, wires the RC file to load it. It returns the
// script path and whether the RC file changed.
func installCompletions(root *cobra.Command, shell shellType, home string) (string, bool, error) {
	spec, ok := installSpecFor(shell)
	if !ok {
		return "", false, fmt.Errorf("%s: %w", shell, errUnsupportedShell)
	}

	completionsDir := filepath.Join(append([]string{home}, spec.relDir...)...)
	if err := os.MkdirAll(completionsDir, 0o750); err != nil {
		return "", false, fmt.Errorf("could not create %s: %w", completionsDir, err)
	}

	var buf bytes.Buffer
	if err := spec.generate(root, &buf); err != nil {
		return "", false, fmt.Errorf("could not generate %s completions: %w", shell, err)
	}

	completionPath := filepath.Join(completionsDir, spec.fileName)
	if err := os.WriteFile(completionPath, buf.Bytes(), 0o600); err != nil {
		return "", false, fmt.Errorf("could not write %s: %w", completionPath, err)
	}

	if spec.updateRC == nil {
		return completionPath, false, nil
	}

	rcUpdated, err := spec.updateRC(home, completionsDir)
	if err != nil {
		return completionPath, false, fmt.Errorf("could not update %s: %w", filepath.Base(getShellRCFile(shell)), err)
	}
	return completionPath, rcUpdated, nil
}

// updateZshRC ensures fpath and compinit are configured in .zshrc.
func updateZshRC(home, completionsDir string) (bool, error) {
	rcPath := filepath.Clean(filepath.Join(home, ".zshrc"))

	content, err := os.ReadFile(rcPath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	contentStr := string(content)

	var additions []string
	if !strings.Contains(contentStr, completionsDir) {
		additions = append(additions, fmt.Sprintf("fpath=(%s $fpath)", completionsDir))
	}
	if !strings.Contains(contentStr, "compinit") {
		additions = append(additions, "autoload -U compinit && compinit")
	}
	if len(additions) == 0 {
		return false, nil
	}

	block := "\n# Flow shell completions\n" + strings.Join(additions, "\n") + "\n"
	if err := appendToRC(rcPath, block); err != nil {
		return false, err
	}
	return true, nil
}

// updateBashRC ensures completion sourcing is configured in .bashrc.
func updateBashRC(home, completionsDir string) (bool, error) {
	rcPath := filepath.Clean(filepath.Join(home, ".bashrc"))

	content, err := os.ReadFile(rcPath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	if strings.Contains(string(content), ".bash_completion.d") {
		return false, nil
	}

	block := fmt.Sprintf(`
# Flow shell completions
for f in %s/*; do
  [ -f "$f" ] && source "$f"
done
`, completionsDir)
	if err := appendToRC(rcPath, block); err != nil {
		return false, err
	}
	return true, nil
}

// appendToRC appends block to the RC file at path, creating it if absent.
func appendToRC(path, block string) error {
	f, err := os.OpenFile(filepath.Clean(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = f.WriteString(block)
	return err
}
