// Package scaffold implements the project generation protocol for Flow.
// Kinds declare an ordered, feature-gated step sequence; the engine executes
// the steps for one request and rolls the target directory back on failure.
package scaffold

import (
	"path/filepath"

	"github.com/mrz1836/flow/internal/domain"
	"github.com/mrz1836/flow/internal/fsops"
	"github.com/mrz1836/flow/internal/runner"
)

// FeatureOption is one entry in a kind's feature multi-select.
type FeatureOption struct {
	// Feature is the token offered to the user.
	Feature domain.Feature

	// Default marks the feature as pre-checked in the menu.
	Default bool
}

// Kind describes one scaffoldable project type. Kinds are immutable data:
// they are constructed once, registered, and never mutated afterwards.
type Kind struct {
	// Name is the stable identifier (e.g. "react-vite"), used by
	// `flow templates info <name>` and in log events.
	Name string

	// DisplayName is the human-readable label (e.g. "React (Vite)").
	DisplayName string

	// Description is a one-line summary shown in menus and listings.
	Description string

	// Category groups the kind in the first wizard menu.
	Category domain.Category

	// Type is the project type this kind scaffolds.
	Type domain.ProjectType

	// Framework disambiguates kinds that share a project type. Empty for
	// types without a framework choice.
	Framework domain.Framework

	// Features lists the recognized feature tokens in menu order.
	Features []FeatureOption

	// Tools names the executables that must be present before a run starts.
	// Feature-dependent tools are not listed; a missing one fails its step.
	Tools []string

	// Doc is the markdown document rendered by `flow templates info`.
	Doc string

	// Steps builds the full step sequence for one request. Gated steps are
	// included unconditionally here; the engine filters them per request.
	Steps func(c *Context) []Step
}

// FeatureTokens returns the recognized feature tokens in menu order.
func (k *Kind) FeatureTokens() []domain.Feature {
	out := make([]domain.Feature, len(k.Features))
	for i, opt := range k.Features {
		out[i] = opt.Feature
	}
	return out
}

// DefaultFeatures returns the tokens pre-checked in the feature menu.
func (k *Kind) DefaultFeatures() []domain.Feature {
	var out []domain.Feature
	for _, opt := range k.Features {
		if opt.Default {
			out = append(out, opt.Feature)
		}
	}
	return out
}

// Plan builds the ordered step list for one request, dropping steps whose
// gate feature was not selected. The result is what the engine executes and
// what the progress view renders.
func (k *Kind) Plan(c *Context) []Step {
	all := k.Steps(c)
	plan := make([]Step, 0, len(all))
	for _, s := range all {
		if s.Gate != "" && !c.Has(s.Gate) {
			continue
		}
		plan = append(plan, s)
	}
	return plan
}

// Context carries the per-run inputs a step builder closes over.
type Context struct {
	// Request is the immutable run request.
	Request domain.Request

	// Runner executes external scaffolding commands.
	Runner runner.Runner

	// Files performs all filesystem writes for the run.
	Files fsops.Writer
}

// TargetDir returns the absolute project directory for this run.
func (c *Context) TargetDir() string {
	return c.Request.TargetDir
}

// ParentDir returns the directory the project is created under.
func (c *Context) ParentDir() string {
	return filepath.Dir(c.Request.TargetDir)
}

// Path joins parts onto the target directory.
func (c *Context) Path(parts ...string) string {
	return filepath.Join(append([]string{c.Request.TargetDir}, parts...)...)
}

// Has reports whether the request selected the feature.
func (c *Context) Has(f domain.Feature) bool {
	return c.Request.Features.Has(f)
}
