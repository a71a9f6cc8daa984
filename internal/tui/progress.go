// Package tui provides terminal user interface components for Flow.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrz1836/flow/internal/constants"
	"github.com/mrz1836/flow/internal/scaffold"
)

// StepStartedMsg marks a generation step as running.
type StepStartedMsg struct {
	Index int
	Total int
	Name  string
}

// StepFinishedMsg records the outcome of a finished generation step.
type StepFinishedMsg struct {
	Index   int
	Name    string
	Err     error
	Elapsed time.Duration
}

// GenerationDoneMsg carries the terminal result of the run.
type GenerationDoneMsg struct {
	Result *scaffold.Result
	Err    error
}

// FrameMsg advances the running-step spinner animation.
type FrameMsg time.Time

// ProgramObserver forwards engine step events to a running Bubble Tea
// program. Send is safe to call from the generation goroutine and becomes a
// no-op once the program has exited.
type ProgramObserver struct {
	p *tea.Program
}

// NewProgramObserver creates an observer that sends step events to p.
func NewProgramObserver(p *tea.Program) *ProgramObserver {
	return &ProgramObserver{p: p}
}

// StepStarted implements scaffold.Observer.
func (o *ProgramObserver) StepStarted(index, total int, name string) {
	o.p.Send(StepStartedMsg{Index: index, Total: total, Name: name})
}

// StepFinished implements scaffold.Observer.
func (o *ProgramObserver) StepFinished(index, _ int, name string, err error, elapsed time.Duration) {
	o.p.Send(StepFinishedMsg{Index: index, Name: name, Err: err, Elapsed: elapsed})
}

// stepView is the display state of one step in the progress checklist.
type stepView struct {
	name    string
	status  constants.RunStatus
	elapsed time.Duration
}

// ProgressModel is the Bubble Tea model for the generation progress view.
// It renders a live checklist of the run's steps and implements the tea.Model
// interface (Init, Update, View).
//
// Ctrl+C does not quit the view directly: it invokes the cancel function so
// the engine can kill the current step and roll back. The view quits when the
// GenerationDoneMsg arrives, leaving the final checklist on screen.
type ProgressModel struct {
	// project is the project name shown in the header.
	project string
	// kind is the display name of the kind being generated.
	kind string
	// steps holds the started steps in plan order.
	steps []stepView
	// total is the number of steps in the plan, learned from the first
	// StepStartedMsg.
	total int
	// frame is the current spinner animation frame.
	frame int
	// cancelling is set after ctrl+c until the engine reports back.
	cancelling bool
	// done is set when the run reached a terminal state.
	done bool
	// result is the engine's result, present once done.
	result *scaffold.Result
	// err is the engine's run error, present once done when the run failed.
	err error
	// cancel stops the generation context. May be nil in tests.
	cancel context.CancelFunc
	styles *Styles
	width  int
}

// NewProgressModel creates a progress model for one generation run.
// cancel is invoked when the user presses ctrl+c.
func NewProgressModel(project, kind string, cancel context.CancelFunc) *ProgressModel {
	return &ProgressModel{
		project: project,
		kind:    kind,
		cancel:  cancel,
		styles:  NewStyles(),
		width:   80,
	}
}

// Init returns the initial command: the spinner frame timer.
func (m *ProgressModel) Init() tea.Cmd {
	return m.frameTick()
}

// Update handles messages and returns the updated model and any commands.
func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.handleInterrupt()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame++
		if m.done {
			return m, nil
		}
		return m, m.frameTick()

	case StepStartedMsg:
		m.total = msg.Total
		m.steps = append(m.steps, stepView{name: msg.Name, status: constants.RunStatusRunning})
		return m, nil

	case StepFinishedMsg:
		if msg.Index >= 0 && msg.Index < len(m.steps) {
			status := constants.RunStatusSucceeded
			if msg.Err != nil {
				status = constants.RunStatusFailed
			}
			m.steps[msg.Index].status = status
			m.steps[msg.Index].elapsed = msg.Elapsed
		}
		return m, nil

	case GenerationDoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// handleInterrupt cancels the run on the first ctrl+c. The view stays up so
// the user can watch the rollback happen; the done message quits it.
func (m *ProgressModel) handleInterrupt() (tea.Model, tea.Cmd) {
	if m.done {
		return m, tea.Quit
	}
	if !m.cancelling {
		m.cancelling = true
		if m.cancel != nil {
			m.cancel()
		}
	}
	return m, nil
}

// View renders the current state to a string.
func (m *ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Creating " + m.project))
	if m.kind != "" {
		b.WriteString(" " + m.styles.Dim.Render(m.kind))
	}
	b.WriteString("\n\n")

	if len(m.steps) == 0 {
		b.WriteString(m.styles.Dim.Render("  Preparing..."))
		b.WriteString("\n")
	}

	for _, s := range m.steps {
		b.WriteString("  " + m.stepIcon(s) + " " + s.name)
		if s.status == constants.RunStatusSucceeded || s.status == constants.RunStatusFailed {
			b.WriteString(" " + m.styles.Dim.Render(FormatDuration(s.elapsed.Milliseconds())))
		}
		b.WriteString("\n")
	}

	switch {
	case m.done:
		// The closing message is printed by the command after the program
		// exits; the final checklist stays on screen as-is.
	case m.cancelling:
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render("Cancelling, cleaning up..."))
		b.WriteString("\n")
	default:
		b.WriteString("\n")
		b.WriteString(m.styles.Dim.Render(m.progressHint()))
		b.WriteString("\n")
	}

	return b.String()
}

// progressHint builds the "[n/total]" footer with the cancel key hint.
func (m *ProgressModel) progressHint() string {
	if m.total == 0 {
		return "Press ctrl+c to cancel"
	}
	finished := 0
	for _, s := range m.steps {
		if s.status.IsTerminal() {
			finished++
		}
	}
	return fmt.Sprintf("[%d/%d] Press ctrl+c to cancel", finished, m.total)
}

// stepIcon returns the rendered status marker for a step line.
func (m *ProgressModel) stepIcon(s stepView) string {
	switch s.status {
	case constants.RunStatusRunning:
		return m.styles.Info.Render(spinnerFrames[m.frame%len(spinnerFrames)])
	case constants.RunStatusSucceeded:
		return m.styles.Success.Render(RunStatusIcon(s.status))
	case constants.RunStatusFailed:
		return m.styles.Error.Render(RunStatusIcon(s.status))
	default:
		return m.styles.Dim.Render(RunStatusIcon(s.status))
	}
}

// frameTick returns a command that advances the spinner after SpinnerInterval.
func (m *ProgressModel) frameTick() tea.Cmd {
	return tea.Tick(SpinnerInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Result returns the engine result once the run finished (useful for testing).
func (m *ProgressModel) Result() *scaffold.Result {
	return m.result
}

// Err returns the run error once the run finished.
func (m *ProgressModel) Err() error {
	return m.err
}

// IsDone returns true once the terminal result arrived.
func (m *ProgressModel) IsDone() bool {
	return m.done
}

// IsCancelling returns true after the user pressed ctrl+c.
func (m *ProgressModel) IsCancelling() bool {
	return m.cancelling
}
