package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flowerrors "github.com/mrz1836/flow/internal/errors"
)

// TestCategoryDisplayName verifies menu labels for categories.
func TestCategoryDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		want     string
	}{
		{name: "frontend", category: CategoryFrontend, want: "Frontend"},
		{name: "backend", category: CategoryBackend, want: "Backend"},
		{name: "full stack", category: CategoryFullStack, want: "Full Stack"},
		{name: "unknown passes through", category: Category("mystery"), want: "mystery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.DisplayName())
		})
	}
}

// TestCategories verifies the menu order of categories.
func TestCategories(t *testing.T) {
	got := Categories()
	require.Len(t, got, 3)
	assert.Equal(t, CategoryFrontend, got[0])
	assert.Equal(t, CategoryBackend, got[1])
	assert.Equal(t, CategoryFullStack, got[2])
}

// TestProjectTypeCategory verifies every project type maps to its category.
func TestProjectTypeCategory(t *testing.T) {
	tests := []struct {
		projectType ProjectType
		want        Category
	}{
		{ProjectTypeReact, CategoryFrontend},
		{ProjectTypeVue, CategoryFrontend},
		{ProjectTypePython, CategoryBackend},
		{ProjectTypeFastAPI, CategoryBackend},
		{ProjectTypeDjango, CategoryBackend},
		{ProjectTypeReactSupabase, CategoryFullStack},
		{ProjectTypeT3, CategoryFullStack},
	}

	for _, tt := range tests {
		t.Run(tt.projectType.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.projectType.Category())
		})
	}
}

// TestProjectTypesFor verifies each category lists its own types.
func TestProjectTypesFor(t *testing.T) {
	t.Run("frontend", func(t *testing.T) {
		got := ProjectTypesFor(CategoryFrontend)
		assert.Equal(t, []ProjectType{ProjectTypeReact, ProjectTypeVue}, got)
	})

	t.Run("backend", func(t *testing.T) {
		got := ProjectTypesFor(CategoryBackend)
		assert.Equal(t, []ProjectType{ProjectTypePython, ProjectTypeFastAPI, ProjectTypeDjango}, got)
	})

	t.Run("full stack", func(t *testing.T) {
		got := ProjectTypesFor(CategoryFullStack)
		assert.Equal(t, []ProjectType{ProjectTypeReactSupabase, ProjectTypeT3}, got)
	})

	t.Run("unknown category returns nil", func(t *testing.T) {
		assert.Nil(t, ProjectTypesFor(Category("mystery")))
	})

	t.Run("every listed type belongs to its category", func(t *testing.T) {
		for _, c := range Categories() {
			for _, p := range ProjectTypesFor(c) {
				assert.Equal(t, c, p.Category(), "type %s listed under %s", p, c)
			}
		}
	})
}

// TestProjectTypeDisplayName verifies menu labels for project types.
func TestProjectTypeDisplayName(t *testing.T) {
	tests := []struct {
		projectType ProjectType
		want        string
	}{
		{ProjectTypeReact, "React Frontend"},
		{ProjectTypeVue, "Vue Frontend"},
		{ProjectTypePython, "Python Project"},
		{ProjectTypeFastAPI, "FastAPI Backend"},
		{ProjectTypeDjango, "Django Full-stack"},
		{ProjectTypeReactSupabase, "React + Supabase"},
		{ProjectTypeT3, "T3 Stack"},
	}

	for _, tt := range tests {
		t.Run(tt.projectType.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.projectType.DisplayName())
		})
	}
}

// TestFrameworkChoice verifies only the React type branches on a framework.
func TestFrameworkChoice(t *testing.T) {
	t.Run("react branches", func(t *testing.T) {
		assert.True(t, ProjectTypeReact.HasFrameworkChoice())
		assert.Equal(t, []Framework{FrameworkVite, FrameworkNext}, ProjectTypeReact.Frameworks())
	})

	t.Run("others do not branch", func(t *testing.T) {
		for _, p := range []ProjectType{
			ProjectTypeVue, ProjectTypePython, ProjectTypeFastAPI,
			ProjectTypeDjango, ProjectTypeReactSupabase, ProjectTypeT3,
		} {
			assert.False(t, p.HasFrameworkChoice(), "type %s", p)
			assert.Nil(t, p.Frameworks(), "type %s", p)
		}
	})
}

// TestValidProjectName verifies the directory-name rules.
func TestValidProjectName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
	}{
		{name: "simple", input: "my-app", wantOK: true},
		{name: "underscores and digits", input: "app_2", wantOK: true},
		{name: "interior dot", input: "app.v2", wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "dot", input: ".", wantOK: false},
		{name: "dot dot", input: "..", wantOK: false},
		{name: "leading dot", input: ".hidden", wantOK: false},
		{name: "leading dash", input: "-app", wantOK: false},
		{name: "path separator", input: "a/b", wantOK: false},
		{name: "backslash", input: "a\\b", wantOK: false},
		{name: "space", input: "my app", wantOK: false},
		{name: "shell metachar", input: "app;rm", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantOK, ValidProjectName(tt.input))
		})
	}
}

// TestNewRequest verifies validation and construction of generation requests.
func TestNewRequest(t *testing.T) {
	recognized := []Feature{FeatureTypeScript, FeatureTailwind, FeatureESLint}

	t.Run("valid request", func(t *testing.T) {
		req, err := NewRequest("my-app", ProjectTypeReact, FrameworkVite,
			recognized, []string{"TypeScript", "Tailwind CSS"}, "/tmp/dev/my-app")
		require.NoError(t, err)
		require.NotNil(t, req)

		assert.NotEmpty(t, req.RunID)
		assert.Equal(t, "my-app", req.ProjectName)
		assert.Equal(t, CategoryFrontend, req.Category)
		assert.Equal(t, ProjectTypeReact, req.ProjectType)
		assert.Equal(t, FrameworkVite, req.Framework)
		assert.Equal(t, "/tmp/dev/my-app", req.TargetDir)
		assert.True(t, req.Features.Has(FeatureTypeScript))
		assert.True(t, req.Features.Has(FeatureTailwind))
		assert.False(t, req.Features.Has(FeatureESLint))
	})

	t.Run("empty name rejected", func(t *testing.T) {
		req, err := NewRequest("", ProjectTypeReact, FrameworkVite, recognized, nil, "/tmp/dev")
		require.Error(t, err)
		assert.ErrorIs(t, err, flowerrors.ErrProjectNameRequired)
		assert.Nil(t, req)
	})

	t.Run("whitespace name rejected", func(t *testing.T) {
		req, err := NewRequest("   ", ProjectTypeReact, FrameworkVite, recognized, nil, "/tmp/dev")
		require.Error(t, err)
		assert.ErrorIs(t, err, flowerrors.ErrProjectNameRequired)
		assert.Nil(t, req)
	})

	t.Run("name is trimmed", func(t *testing.T) {
		req, err := NewRequest("  my-app  ", ProjectTypeVue, "", recognized, nil, "/tmp/dev/my-app")
		require.NoError(t, err)
		assert.Equal(t, "my-app", req.ProjectName)
	})

	t.Run("invalid name rejected", func(t *testing.T) {
		req, err := NewRequest("bad/name", ProjectTypeReact, FrameworkVite, recognized, nil, "/tmp/dev")
		require.Error(t, err)
		assert.ErrorIs(t, err, flowerrors.ErrInvalidProjectName)
		assert.Nil(t, req)
	})

	t.Run("unknown feature tokens are dropped", func(t *testing.T) {
		req, err := NewRequest("my-app", ProjectTypeReact, FrameworkVite,
			recognized, []string{"TypeScript", "Quantum Tunneling"}, "/tmp/dev/my-app")
		require.NoError(t, err)
		assert.Equal(t, 1, req.Features.Len())
		assert.True(t, req.Features.Has(FeatureTypeScript))
	})

	t.Run("run ids are unique", func(t *testing.T) {
		a, err := NewRequest("my-app", ProjectTypeVue, "", recognized, nil, "/tmp/dev/my-app")
		require.NoError(t, err)
		b, err := NewRequest("my-app", ProjectTypeVue, "", recognized, nil, "/tmp/dev/my-app")
		require.NoError(t, err)
		assert.NotEqual(t, a.RunID, b.RunID)
	})
}
