// Package runner executes external scaffolding commands.
//
// Every generator command (npm create vite, npx create-next-app, django-admin
// startproject, and so on) goes through the Runner interface so generation
// logic can be tested without touching the real toolchain. Commands run as
// argv vectors, never through a shell, so project names and flags are passed
// to the process verbatim.
package runner

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	flowerrors "github.com/mrz1836/flow/internal/errors"
)

// Runner defines the interface for executing external commands.
// Implementations must honor context cancellation by killing the child
// process, so an interrupt aborts a blocked step.
type Runner interface {
	// Run executes argv[0] with the remaining arguments in workDir.
	// A non-zero exit or spawn failure is returned as an error wrapping
	// ErrCommandFailed; context cancellation is returned as ctx.Err().
	Run(ctx context.Context, workDir string, argv ...string) error

	// RunOutput behaves like Run but also returns the combined output,
	// trimmed of trailing whitespace.
	RunOutput(ctx context.Context, workDir string, argv ...string) (string, error)
}

// Launcher starts a detached process and returns without waiting for it.
type Launcher interface {
	Start(workDir string, argv ...string) error
}

// ExecRunner implements Runner and Launcher using os/exec.
type ExecRunner struct {
	log zerolog.Logger
}

// NewExecRunner creates an ExecRunner that logs command starts and failures
// through the given logger.
func NewExecRunner(log zerolog.Logger) *ExecRunner {
	return &ExecRunner{log: log}
}

// Run executes the command and discards its output except for error context.
func (r *ExecRunner) Run(ctx context.Context, workDir string, argv ...string) error {
	_, err := r.RunOutput(ctx, workDir, argv...)
	return err
}

// RunOutput executes the command and returns its combined output.
func (r *ExecRunner) RunOutput(ctx context.Context, workDir string, argv ...string) (string, error) {
	if len(argv) == 0 {
		return "", flowerrors.ErrEmptyCommand
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.log.Debug().
		Str("command", argv[0]).
		Strs("args", argv[1:]).
		Str("work_dir", workDir).
		Msg("running command")

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //#nosec G204 -- argv comes from the static step catalogue, not user input
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Cancellation kills the child; report the interruption, not the
		// resulting exit status.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		r.log.Debug().
			Str("command", argv[0]).
			Str("stderr", strings.TrimSpace(stderr.String())).
			Err(err).
			Msg("command failed")

		if stderr.Len() > 0 {
			return "", flowerrors.Wrapf(flowerrors.ErrCommandFailed, "%s: %s", argv[0], strings.TrimSpace(stderr.String()))
		}
		return "", flowerrors.Wrapf(flowerrors.ErrCommandFailed, "%s: %v", argv[0], err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Start launches the command without waiting for it to finish. It is used to
// hand a project off to an editor; the editor process outlives the CLI.
func (r *ExecRunner) Start(workDir string, argv ...string) error {
	if len(argv) == 0 {
		return flowerrors.ErrEmptyCommand
	}

	r.log.Debug().
		Str("command", argv[0]).
		Strs("args", argv[1:]).
		Msg("starting detached command")

	cmd := exec.Command(argv[0], argv[1:]...) //#nosec G204 -- argv comes from settings plus a path we created
	cmd.Dir = workDir
	if err := cmd.Start(); err != nil {
		return flowerrors.Wrapf(flowerrors.ErrCommandFailed, "%s: %v", argv[0], err)
	}

	// Reap the child in the background so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()

	return nil
}

// Ensure ExecRunner implements Runner and Launcher.
var (
	_ Runner   = (*ExecRunner)(nil)
	_ Launcher = (*ExecRunner)(nil)
)
