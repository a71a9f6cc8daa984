// Package domain provides shared domain types for the Flow project scaffolder.
package domain

import (
	"strings"

	"github.com/google/uuid"

	flowerrors "github.com/mrz1836/flow/internal/errors"
)

// Category groups project types in the wizard's first menu.
type Category string

// Category constants define the top-level project groupings.
const (
	// CategoryFrontend holds browser-facing starters.
	CategoryFrontend Category = "frontend"

	// CategoryBackend holds server-side starters.
	CategoryBackend Category = "backend"

	// CategoryFullStack holds combined starters.
	CategoryFullStack Category = "full_stack"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// DisplayName returns the label shown in menus.
func (c Category) DisplayName() string {
	switch c {
	case CategoryFrontend:
		return "Frontend"
	case CategoryBackend:
		return "Backend"
	case CategoryFullStack:
		return "Full Stack"
	default:
		return string(c)
	}
}

// Categories returns all categories in menu order.
func Categories() []Category {
	return []Category{CategoryFrontend, CategoryBackend, CategoryFullStack}
}

// ProjectType identifies a scaffoldable project archetype within a category.
type ProjectType string

// Project type constants define the selectable archetypes.
const (
	// ProjectTypeReact is a React single-page app (framework selects the generator).
	ProjectTypeReact ProjectType = "react_frontend"

	// ProjectTypeVue is a Vue 3 single-page app.
	ProjectTypeVue ProjectType = "vue_frontend"

	// ProjectTypePython is a plain Python package skeleton with no external
	// scaffolding tool.
	ProjectTypePython ProjectType = "python_backend"

	// ProjectTypeFastAPI is a FastAPI service.
	ProjectTypeFastAPI ProjectType = "fastapi_backend"

	// ProjectTypeDjango is a Django site.
	ProjectTypeDjango ProjectType = "django_backend"

	// ProjectTypeReactSupabase is a React app wired to Supabase.
	ProjectTypeReactSupabase ProjectType = "react_supabase"

	// ProjectTypeT3 is a T3 stack app (Next.js + tRPC + Tailwind).
	ProjectTypeT3 ProjectType = "t3_stack"
)

// String returns the string representation of the ProjectType.
func (p ProjectType) String() string {
	return string(p)
}

// DisplayName returns the label shown in menus.
func (p ProjectType) DisplayName() string {
	switch p {
	case ProjectTypeReact:
		return "React Frontend"
	case ProjectTypeVue:
		return "Vue Frontend"
	case ProjectTypePython:
		return "Python Project"
	case ProjectTypeFastAPI:
		return "FastAPI Backend"
	case ProjectTypeDjango:
		return "Django Full-stack"
	case ProjectTypeReactSupabase:
		return "React + Supabase"
	case ProjectTypeT3:
		return "T3 Stack"
	default:
		return string(p)
	}
}

// Category returns the category a project type belongs to.
func (p ProjectType) Category() Category {
	switch p {
	case ProjectTypeReact, ProjectTypeVue:
		return CategoryFrontend
	case ProjectTypePython, ProjectTypeFastAPI, ProjectTypeDjango:
		return CategoryBackend
	case ProjectTypeReactSupabase, ProjectTypeT3:
		return CategoryFullStack
	default:
		return ""
	}
}

// ProjectTypesFor returns the project types within a category, in menu order.
func ProjectTypesFor(c Category) []ProjectType {
	switch c {
	case CategoryFrontend:
		return []ProjectType{ProjectTypeReact, ProjectTypeVue}
	case CategoryBackend:
		return []ProjectType{ProjectTypePython, ProjectTypeFastAPI, ProjectTypeDjango}
	case CategoryFullStack:
		return []ProjectType{ProjectTypeReactSupabase, ProjectTypeT3}
	default:
		return nil
	}
}

// Framework selects the underlying generator for project types that branch
// on one. Only the React frontend type does.
type Framework string

// Framework constants for the React frontend type.
const (
	// FrameworkVite scaffolds with `npm create vite@latest`.
	FrameworkVite Framework = "vite"

	// FrameworkNext scaffolds with `npx create-next-app@latest`.
	FrameworkNext Framework = "next"
)

// String returns the string representation of the Framework.
func (f Framework) String() string {
	return string(f)
}

// HasFrameworkChoice reports whether the project type branches on a framework.
func (p ProjectType) HasFrameworkChoice() bool {
	return p == ProjectTypeReact
}

// Frameworks returns the selectable frameworks for the project type, or nil
// when the type does not branch.
func (p ProjectType) Frameworks() []Framework {
	if !p.HasFrameworkChoice() {
		return nil
	}
	return []Framework{FrameworkVite, FrameworkNext}
}

// Request captures one validated generation request. It is constructed once
// per run from user input and is immutable thereafter.
type Request struct {
	// RunID uniquely identifies this generation run in logs.
	RunID string `json:"run_id"`

	// ProjectName is the non-empty, filesystem-safe directory name.
	ProjectName string `json:"project_name"`

	// Category is the selected project category.
	Category Category `json:"category"`

	// ProjectType is the selected archetype.
	ProjectType ProjectType `json:"project_type"`

	// Framework is set only for project types that branch on one.
	Framework Framework `json:"framework,omitempty"`

	// Features holds the recognized feature tokens for this run.
	// Unrecognized tokens were dropped at construction.
	Features FeatureSet `json:"features"`

	// TargetDir is the absolute path the project is generated into.
	TargetDir string `json:"target_dir"`
}

// NewRequest validates the inputs and builds an immutable Request.
// Unrecognized feature tokens (relative to recognized) are silently dropped;
// they are inert by policy, never an error.
func NewRequest(name string, projectType ProjectType, framework Framework, recognized []Feature, tokens []string, targetDir string) (*Request, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, flowerrors.ErrProjectNameRequired
	}
	if !ValidProjectName(name) {
		return nil, flowerrors.Wrapf(flowerrors.ErrInvalidProjectName, "%q", name)
	}

	return &Request{
		RunID:       uuid.NewString(),
		ProjectName: name,
		Category:    projectType.Category(),
		ProjectType: projectType,
		Framework:   framework,
		Features:    NewFeatureSet(recognized, tokens),
		TargetDir:   targetDir,
	}, nil
}

// ValidProjectName reports whether name is safe to use as a directory name:
// letters, digits, dash, underscore, and dot, not starting with a dot or dash.
func ValidProjectName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if name[0] == '.' || name[0] == '-' {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}
