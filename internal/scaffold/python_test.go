package scaffold

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/flow/internal/domain"
)

func TestNewPythonKind(t *testing.T) {
	k := NewPythonKind()

	require.NotNil(t, k)
	assert.Equal(t, "python", k.Name)
	assert.Equal(t, "Python Project", k.DisplayName)
	assert.Equal(t, domain.CategoryBackend, k.Category)
	assert.Equal(t, domain.ProjectTypePython, k.Type)
	assert.Empty(t, k.Tools)
	assert.NotEmpty(t, k.Doc)

	assert.Equal(t, []domain.Feature{
		domain.FeatureBlack, domain.FeatureFlake8, domain.FeaturePytest,
	}, k.DefaultFeatures())
	assert.Len(t, k.FeatureTokens(), 5)
}

func TestPythonKind_Generate_RunsNoCommands(t *testing.T) {
	k := NewPythonKind()

	r, _, _ := runKind(t, k, allTokens(k)...)
	assert.Empty(t, r.commands())
}

func TestPythonKind_Generate_Defaults(t *testing.T) {
	k := NewPythonKind()

	_, w, req := runKind(t, k, "Black", "Flake8", "pytest")

	assert.Contains(t, w.content(req.TargetDir, "src/main.py"), "class MyProject")
	assert.True(t, w.Exists(filepath.Join(req.TargetDir, "src/__init__.py")))
	assert.True(t, w.Exists(filepath.Join(req.TargetDir, "tests/__init__.py")))

	assert.Equal(t, "pytest>=7.0.0\nblack>=23.0.0\nflake8>=6.0.0\n",
		w.content(req.TargetDir, "requirements.txt"))

	readme := w.content(req.TargetDir, "README.md")
	assert.Contains(t, readme, "# myapp")
	assert.Contains(t, readme, "pip install -r requirements.txt")

	assert.Contains(t, w.content(req.TargetDir, "tests/test_main.py"), "def test_hello")

	// Nothing beyond the defaults.
	assert.False(t, w.Exists(filepath.Join(req.TargetDir, ".pre-commit-config.yaml")))
	assert.False(t, w.Exists(filepath.Join(req.TargetDir, "Dockerfile")))
}

func TestPythonKind_Generate_RequirementsFollowSelection(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   string
	}{
		{
			name:   "all three tools",
			tokens: []string{"Black", "Flake8", "pytest"},
			want:   "pytest>=7.0.0\nblack>=23.0.0\nflake8>=6.0.0\n",
		},
		{
			name:   "black only",
			tokens: []string{"Black"},
			want:   "black>=23.0.0\n",
		},
		{
			name:   "nothing selected",
			tokens: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewPythonKind()
			_, w, req := runKind(t, k, tt.tokens...)
			assert.Equal(t, tt.want, w.content(req.TargetDir, "requirements.txt"))
		})
	}
}

func TestPythonKind_Generate_TestModuleGatedOnPytest(t *testing.T) {
	k := NewPythonKind()

	_, w, req := runKind(t, k, "Black")
	assert.False(t, w.Exists(filepath.Join(req.TargetDir, "tests/test_main.py")))
}

func TestPythonKind_Generate_PreCommit(t *testing.T) {
	k := NewPythonKind()

	_, w, req := runKind(t, k, "pre-commit hooks")
	config := w.content(req.TargetDir, ".pre-commit-config.yaml")
	assert.Contains(t, config, "https://github.com/psf/black")
	assert.Contains(t, config, "flake8")
}

func TestPythonKind_Generate_DockerSetup(t *testing.T) {
	k := NewPythonKind()

	_, w, req := runKind(t, k, "Docker setup")
	assert.Contains(t, w.content(req.TargetDir, "Dockerfile"), "FROM python:")
	assert.Equal(t, "venv/\n__pycache__/\n*.pyc\n.pytest_cache/\n",
		w.content(req.TargetDir, ".dockerignore"))
}
