// Package cli provides the command-line interface for flow.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrz1836/flow/internal/config"
	"github.com/mrz1836/flow/internal/constants"
	"github.com/mrz1836/flow/internal/domain"
	flowerrors "github.com/mrz1836/flow/internal/errors"
	"github.com/mrz1836/flow/internal/fsops"
	"github.com/mrz1836/flow/internal/runner"
	"github.com/mrz1836/flow/internal/scaffold"
	"github.com/mrz1836/flow/internal/signal"
	"github.com/mrz1836/flow/internal/tui"
)

// AddNewCommand adds the new command to the root command.
func AddNewCommand(root *cobra.Command) {
	root.AddCommand(newNewCmd())
}

// newNewCmd creates the new command.
func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a new project interactively",
		Long: `Create a new project through a guided wizard.

The wizard asks for a project name, a category, a project type, and
optional features, then runs the scaffolding tools for the selected
template. The project is created under your development folder
(see 'flow config show') and opened in your preferred editor.

If any step fails or the run is interrupted, the partially created
project directory is removed.

Examples:
  flow new              # Start the wizard
  flow new --verbose    # Start the wizard with debug logging`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runNew(cmd.Context(), cmd, cmd.OutOrStdout())
			// The run's verdict is already displayed; silence cobra's
			// error printing but still return error for non-zero exit code
			if err != nil {
				cmd.SilenceErrors = true
			}
			return err
		},
		SilenceUsage: true,
	}
}

// wizardSelection holds everything the wizard gathered for one run.
type wizardSelection struct {
	name      string
	kind      *scaffold.Kind
	features  []string
	targetDir string
}

// runNew executes the new command.
func runNew(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	// Check context cancellation at entry
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// Create signal handler so Ctrl+C between prompts cancels the run
	sigHandler := signal.NewHandler(ctx)
	defer sigHandler.Stop()
	ctx = sigHandler.Context()

	logger := GetLogger()
	outputFormat := cmd.Flag("output").Value.String()

	// Respect NO_COLOR environment variable
	tui.CheckNoColor()
	out := tui.NewOutput(w, outputFormat)

	err := executeNew(ctx, logger, out, w)
	if stderrors.Is(err, tui.ErrMenuCanceled) {
		err = flowerrors.ErrCreationCancelled
	}
	if err != nil {
		reportNewError(out, err)
	}
	return err
}

// executeNew runs the wizard and then the generation it configured.
func executeNew(ctx context.Context, logger zerolog.Logger, out tui.Output, w io.Writer) error {
	// The wizard cannot read answers from a pipe or CI job
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return flowerrors.ErrNonInteractive
	}

	settings, err := config.Load(ctx)
	if err != nil {
		return err
	}

	registry := scaffold.NewDefaultRegistry()

	sel, err := runWizard(registry, settings)
	if err != nil {
		return err
	}

	if err = confirmOverwrite(sel.targetDir); err != nil {
		return err
	}

	req, err := domain.NewRequest(sel.name, sel.kind.Type, sel.kind.Framework, sel.kind.FeatureTokens(), sel.features, sel.targetDir)
	if err != nil {
		return err
	}

	if err = preflightTools(ctx, w, sel.kind.Tools); err != nil {
		return err
	}

	logger.Info().
		Str("run_id", req.RunID).
		Str("kind", sel.kind.Name).
		Str("project_name", req.ProjectName).
		Strs("features", req.Features.Strings()).
		Str("target_dir", req.TargetDir).
		Msg("generation starting")

	res, err := generateWithProgress(ctx, logger, sel.kind, *req)
	if res != nil {
		logGenerationResult(logger, res)
		if res.RollbackErr != nil {
			out.Warning(fmt.Sprintf("Could not clean up %s: %v", res.TargetDir, res.RollbackErr))
		}
	}
	if err != nil {
		return err
	}

	out.Success(fmt.Sprintf("Project %s created at %s", req.ProjectName, res.TargetDir))
	launchEditor(logger, out, settings.PreferredEditor, res.TargetDir)
	return nil
}

// reportNewError prints the user-facing verdict for a failed run. Cancel
// paths are informational; everything else is an error with a hint.
func reportNewError(out tui.Output, err error) {
	switch {
	case stderrors.Is(err, flowerrors.ErrCreationCancelled),
		stderrors.Is(err, flowerrors.ErrInterrupted),
		stderrors.Is(err, context.Canceled):
		out.Info(flowerrors.UserMessage(flowerrors.ErrCreationCancelled))
	default:
		out.Error(err)
	}
}

// runWizard walks the user through the selection prompts.
func runWizard(registry *scaffold.Registry, settings *config.Settings) (*wizardSelection, error) {
	name, err := promptProjectName()
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	category, err := promptCategory()
	if err != nil {
		return nil, err
	}

	projType, err := promptProjectType(category)
	if err != nil {
		return nil, err
	}

	var framework domain.Framework
	if projType.HasFrameworkChoice() {
		framework, err = promptFramework(projType)
		if err != nil {
			return nil, err
		}
	}

	kind, err := registry.Resolve(projType, framework)
	if err != nil {
		return nil, err
	}

	features, err := promptFeatures(kind)
	if err != nil {
		return nil, err
	}

	targetDir, err := settings.TargetDir(name)
	if err != nil {
		return nil, err
	}

	return &wizardSelection{
		name:      name,
		kind:      kind,
		features:  features,
		targetDir: targetDir,
	}, nil
}

// promptProjectName asks for the project name, validating it inline.
func promptProjectName() (string, error) {
	return tui.InputWithValidation("Project name", "", validateProjectName)
}

// validateProjectName rejects names that cannot become a directory.
func validateProjectName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return flowerrors.ErrProjectNameRequired
	}
	if !domain.ValidProjectName(name) {
		return flowerrors.ErrInvalidProjectName
	}
	return nil
}

// promptCategory asks for the project category.
func promptCategory() (domain.Category, error) {
	categories := domain.Categories()
	options := make([]tui.Option, 0, len(categories))
	for _, c := range categories {
		options = append(options, tui.Option{Label: c.DisplayName(), Value: c.String()})
	}

	value, err := tui.Select("What do you want to build?", options)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", flowerrors.ErrCategoryRequired
	}
	return domain.Category(value), nil
}

// promptProjectType asks for the project type within the chosen category.
func promptProjectType(c domain.Category) (domain.ProjectType, error) {
	types := domain.ProjectTypesFor(c)
	options := make([]tui.Option, 0, len(types))
	for _, p := range types {
		options = append(options, tui.Option{Label: p.DisplayName(), Value: p.String()})
	}

	value, err := tui.Select("Choose a project type", options)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", flowerrors.ErrProjectTypeRequired
	}
	return domain.ProjectType(value), nil
}

// promptFramework asks for the framework on project types that branch on one.
func promptFramework(p domain.ProjectType) (domain.Framework, error) {
	frameworks := p.Frameworks()
	options := make([]tui.Option, 0, len(frameworks))
	for _, fw := range frameworks {
		options = append(options, tui.Option{Label: frameworkLabel(fw), Value: fw.String()})
	}

	value, err := tui.Select("Choose a framework", options)
	if err != nil {
		return "", err
	}
	return domain.Framework(value), nil
}

// frameworkLabel maps framework identifiers to their display names.
func frameworkLabel(fw domain.Framework) string {
	switch fw {
	case domain.FrameworkVite:
		return "Vite"
	case domain.FrameworkNext:
		return "Next.js"
	default:
		return cases.Title(language.English).String(fw.String())
	}
}

// promptFeatures shows the kind's feature multi-select with its defaults
// pre-checked. Kinds without features skip the prompt entirely.
func promptFeatures(k *scaffold.Kind) ([]string, error) {
	if len(k.Features) == 0 {
		return nil, nil
	}

	options := make([]tui.Option, 0, len(k.Features))
	for _, f := range k.Features {
		options = append(options, tui.Option{Label: f.Feature.String(), Value: f.Feature.String()})
	}

	defaults := k.DefaultFeatures()
	preselected := make([]string, 0, len(defaults))
	for _, f := range defaults {
		preselected = append(preselected, f.String())
	}

	return tui.MultiSelect("Select features", options, preselected)
}

// confirmOverwrite asks before clobbering an existing target directory and
// removes it once the user agrees. Declining cancels the run before any
// generation state exists.
func confirmOverwrite(targetDir string) error {
	if _, err := os.Stat(targetDir); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return flowerrors.Wrapf(err, "stat %s", targetDir)
	}

	overwrite, err := tui.Confirm(fmt.Sprintf("%s already exists. Overwrite it?", targetDir), false)
	if err != nil {
		return err
	}
	if !overwrite {
		return flowerrors.ErrCreationCancelled
	}

	if err := os.RemoveAll(targetDir); err != nil {
		return flowerrors.Wrapf(err, "remove %s", targetDir)
	}
	return nil
}

// preflightTools verifies the kind's required executables before the run
// starts, so a missing toolchain fails fast instead of mid-generation.
func preflightTools(ctx context.Context, w io.Writer, tools []string) error {
	if len(tools) == 0 {
		return nil
	}

	sp := tui.NewTerminalSpinner(os.Stderr)
	sp.Start(ctx, "Checking required tools...")

	detector := config.NewToolDetector()
	result, err := detector.DetectCommands(ctx, tools...)
	if err != nil {
		sp.Stop()
		return err
	}

	missing := result.MissingRequiredTools()
	if len(missing) == 0 {
		sp.Stop()
		return nil
	}

	sp.StopWithError("Required tools are missing")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprint(w, config.FormatMissingToolsError(missing))
	return flowerrors.ErrMissingRequiredTools
}

// generateWithProgress drives one generation run behind the step progress
// view. Ctrl+C cancels the run through the model; the engine rolls back and
// reports the interruption.
func generateWithProgress(ctx context.Context, logger zerolog.Logger, k *scaffold.Kind, req domain.Request) (*scaffold.Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.NewProgressModel(req.ProjectName, k.DisplayName, cancel)
	prog := tea.NewProgram(model)

	engine := scaffold.NewEngine(
		runner.NewExecRunner(logger),
		fsops.NewDiskWriter(),
		scaffold.WithObserver(tui.NewProgramObserver(prog)),
	)

	done := make(chan tui.GenerationDoneMsg, 1)
	go func() {
		res, genErr := engine.Generate(runCtx, k, req)
		msg := tui.GenerationDoneMsg{Result: res, Err: genErr}
		done <- msg
		prog.Send(msg)
	}()

	final, runErr := prog.Run()
	if runErr != nil {
		// The display died; cancel the run and wait for the rollback so the
		// engine's verdict stays authoritative.
		cancel()
		msg := <-done
		if msg.Err != nil {
			return msg.Result, msg.Err
		}
		return msg.Result, flowerrors.Wrap(runErr, "progress display failed")
	}

	m, ok := final.(*tui.ProgressModel)
	if !ok {
		msg := <-done
		return msg.Result, msg.Err
	}
	return m.Result(), m.Err()
}

// logGenerationResult records the run verdict in the log file.
func logGenerationResult(logger zerolog.Logger, res *scaffold.Result) {
	evt := logger.Info()
	if res.Status == constants.RunStatusFailed {
		evt = logger.Error()
	}
	if res.FailedStep != "" {
		evt = evt.Str("failed_step", res.FailedStep)
	}
	evt.
		Str("run_id", res.RunID).
		Str("status", string(res.Status)).
		Int("steps", len(res.Steps)).
		Dur("duration", res.Duration).
		Msg("generation finished")
}

// launchEditor hands the finished project to the configured editor. The
// launch is best effort: a failure or a hang is reported as a warning and
// never affects the generated project.
func launchEditor(logger zerolog.Logger, out tui.Output, editor, targetDir string) {
	if editor == "" {
		return
	}

	// The editor setting may carry flags ("code -n")
	argv := append(strings.Fields(editor), targetDir)
	launcher := runner.NewExecRunner(logger)

	done := make(chan error, 1)
	go func() { done <- launcher.Start(targetDir, argv...) }()

	select {
	case err := <-done:
		if err != nil {
			logger.Warn().Err(err).Str("editor", editor).Msg("editor launch failed")
			out.Warning(flowerrors.UserMessage(flowerrors.ErrEditorLaunch))
			return
		}
		out.Info(fmt.Sprintf("Opening in %s...", argv[0]))
	case <-time.After(constants.EditorLaunchTimeout):
		logger.Warn().Str("editor", editor).Msg("editor launch timed out")
		out.Warning(flowerrors.UserMessage(flowerrors.ErrEditorLaunch))
	}
}
