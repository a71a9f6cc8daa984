package scaffold

import (
	"context"

	"github.com/mrz1836/flow/internal/domain"
)

// Step is one unit of work in a generation run. A step either succeeds
// (nil error) or fails and halts the run.
type Step struct {
	// Name identifies the step in logs, results, and the progress view.
	Name string

	// Gate names the feature that must be selected for the step to run.
	// The zero value means the step always runs.
	Gate domain.Feature

	// Run performs the work. Implementations must honor ctx cancellation;
	// command steps inherit it through the runner.
	Run func(ctx context.Context) error
}

// Gated returns a copy of the step that only runs when f is selected.
func (s Step) Gated(f domain.Feature) Step {
	s.Gate = f
	return s
}

// Command returns a step that runs argv in the target directory.
func (c *Context) Command(name string, argv ...string) Step {
	return c.CommandIn(name, c.TargetDir(), argv...)
}

// CommandIn returns a step that runs argv with dir as the working directory.
func (c *Context) CommandIn(name, dir string, argv ...string) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context) error {
			return c.Runner.Run(ctx, dir, argv...)
		},
	}
}

// File returns a step that writes content to relPath under the target
// directory, creating parent directories as needed.
func (c *Context) File(name, relPath, content string) Step {
	return Step{
		Name: name,
		Run: func(_ context.Context) error {
			return c.Files.WriteFile(c.Path(relPath), []byte(content))
		},
	}
}

// Dirs returns a step that creates each relPath under the target directory.
func (c *Context) Dirs(name string, relPaths ...string) Step {
	return Step{
		Name: name,
		Run: func(_ context.Context) error {
			for _, rel := range relPaths {
				if err := c.Files.EnsureDir(c.Path(rel)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
