package scaffold

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/flow/internal/clock"
	"github.com/mrz1836/flow/internal/constants"
	"github.com/mrz1836/flow/internal/ctxutil"
	"github.com/mrz1836/flow/internal/domain"
	flowerrors "github.com/mrz1836/flow/internal/errors"
	"github.com/mrz1836/flow/internal/fsops"
	"github.com/mrz1836/flow/internal/runner"
)

// Observer receives step lifecycle notifications during a run. index is
// zero-based; total is the number of steps in the plan. Implementations must
// not block: notifications happen on the generation goroutine.
type Observer interface {
	// StepStarted fires immediately before a step runs.
	StepStarted(index, total int, name string)

	// StepFinished fires after a step returns, with its outcome and timing.
	StepFinished(index, total int, name string, err error, elapsed time.Duration)
}

// nopObserver discards all notifications.
type nopObserver struct{}

func (nopObserver) StepStarted(int, int, string) {}

func (nopObserver) StepFinished(int, int, string, error, time.Duration) {}

// StepResult records the outcome of one executed step.
type StepResult struct {
	// Name is the step name from the plan.
	Name string

	// Duration is how long the step ran.
	Duration time.Duration

	// Err is nil when the step succeeded.
	Err error
}

// Result describes one finished generation run. Exactly one of the terminal
// statuses is set; FailedStep and the rollback fields are only meaningful
// when Status is failed.
type Result struct {
	// RunID is the request's run identifier.
	RunID string

	// Kind is the name of the kind that was generated.
	Kind string

	// TargetDir is the project directory the run owned.
	TargetDir string

	// Status is the terminal state of the run.
	Status constants.RunStatus

	// Steps records every executed step in order. Gated-out steps never
	// appear; on failure the last entry is the failing step.
	Steps []StepResult

	// FailedStep names the step that halted the run, if any.
	FailedStep string

	// RolledBack reports whether the target directory was removed after a
	// failure.
	RolledBack bool

	// RollbackErr is set when the compensating delete itself failed. It
	// never replaces the run's failure verdict.
	RollbackErr error

	// Duration is the wall-clock time of the whole run.
	Duration time.Duration
}

// Engine executes generation runs. It is stateless across runs and safe to
// reuse, though Flow only ever drives one run at a time.
type Engine struct {
	runner runner.Runner
	files  fsops.Writer
	clk    clock.Clock
	obs    Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used for step timing.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		e.clk = c
	}
}

// WithObserver registers an observer for step lifecycle events.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.obs = o
	}
}

// NewEngine creates an engine that runs commands with r and writes files
// with files.
func NewEngine(r runner.Runner, files fsops.Writer, opts ...Option) *Engine {
	e := &Engine{
		runner: r,
		files:  files,
		clk:    clock.RealClock{},
		obs:    nopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate runs the kind's step plan for the request.
//
// The run transitions pending → running on entry and ends succeeded or
// failed. Steps execute strictly in plan order; the first error halts the
// sequence. On any failure, including interruption and a recovered panic, the
// engine removes the target directory (best effort) before returning. A
// rollback error is recorded on the Result and logged, never returned in
// place of the run error.
//
// The returned error is nil exactly when Status is succeeded. Interruption
// surfaces as ErrInterrupted; every other failure wraps ErrGenerationFailed
// with the failing step's error.
func (e *Engine) Generate(ctx context.Context, k *Kind, req domain.Request) (*Result, error) {
	log := zerolog.Ctx(ctx).With().
		Str("component", "scaffold").
		Str("run_id", req.RunID).
		Str("kind", k.Name).
		Logger()

	res := &Result{
		RunID:     req.RunID,
		Kind:      k.Name,
		TargetDir: req.TargetDir,
		Status:    constants.RunStatusPending,
	}

	c := &Context{Request: req, Runner: e.runner, Files: e.files}
	plan := k.Plan(c)

	start := e.clk.Now()
	res.Status = constants.RunStatusRunning
	log.Info().
		Int("steps", len(plan)).
		Str("target_dir", req.TargetDir).
		Strs("features", req.Features.Strings()).
		Msg("starting generation")

	var runErr error
	for i, step := range plan {
		if err := ctxutil.Canceled(ctx); err != nil {
			res.FailedStep = step.Name
			runErr = err
			break
		}

		e.obs.StepStarted(i, len(plan), step.Name)
		stepStart := e.clk.Now()
		err := runStep(ctx, step)
		elapsed := clock.Since(e.clk, stepStart)

		res.Steps = append(res.Steps, StepResult{Name: step.Name, Duration: elapsed, Err: err})
		e.obs.StepFinished(i, len(plan), step.Name, err, elapsed)

		if err != nil {
			log.Error().Err(err).
				Str("step", step.Name).
				Int64("duration_ms", elapsed.Milliseconds()).
				Msg("step failed")
			res.FailedStep = step.Name
			runErr = flowerrors.Wrapf(err, "step %q", step.Name)
			break
		}

		log.Debug().
			Str("step", step.Name).
			Int64("duration_ms", elapsed.Milliseconds()).
			Msg("step completed")
	}

	res.Duration = clock.Since(e.clk, start)

	if runErr == nil {
		res.Status = constants.RunStatusSucceeded
		log.Info().
			Int64("duration_ms", res.Duration.Milliseconds()).
			Msg("generation succeeded")
		return res, nil
	}

	res.Status = constants.RunStatusFailed
	e.rollback(log, res)

	if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
		log.Warn().Str("step", res.FailedStep).Msg("generation interrupted")
		return res, flowerrors.ErrInterrupted
	}
	return res, fmt.Errorf("%w: %w", flowerrors.ErrGenerationFailed, runErr)
}

// runStep executes a single step, converting a panic into a step error so a
// broken step cannot take down the CLI with a half-written project behind.
func runStep(ctx context.Context, s Step) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", flowerrors.ErrStepFailed, r)
		}
	}()
	return s.Run(ctx)
}

// rollback removes the partially generated target directory after a failure.
// Outcome is recorded on the Result only; the run's verdict is already set.
func (e *Engine) rollback(log zerolog.Logger, res *Result) {
	target := res.TargetDir

	// The request validates TargetDir, but never RemoveAll anything that
	// could be a filesystem root.
	if target == "" || target == string(filepath.Separator) || filepath.Dir(target) == target {
		res.RollbackErr = fmt.Errorf("%w: refusing to remove %q", flowerrors.ErrRollbackFailed, target)
		log.Error().Str("target_dir", target).Msg("rollback refused")
		return
	}

	log.Warn().Str("target_dir", target).Msg("removing partial project directory")
	if err := e.files.RemoveAll(target); err != nil {
		res.RollbackErr = fmt.Errorf("%w: %v", flowerrors.ErrRollbackFailed, err)
		log.Error().Err(err).Str("target_dir", target).Msg("rollback failed")
		return
	}
	res.RolledBack = true
}
