package scaffold

import (
	"fmt"
	"strings"

	"github.com/mrz1836/flow/internal/domain"
)

// pythonDockerignore keeps the virtualenv and caches out of the image.
const pythonDockerignore = `venv/
__pycache__/
*.pyc
.pytest_cache/
`

// NewPythonKind creates the plain Python backend kind. It is the one kind
// that shells out to nothing: every step is a directory or file write.
// Steps: project structure → main module → requirements → README →
// test module → pre-commit config → Docker files.
func NewPythonKind() *Kind {
	return &Kind{
		Name:        "python",
		DisplayName: "Python Project",
		Description: "Production-ready Python project structure",
		Category:    domain.CategoryBackend,
		Type:        domain.ProjectTypePython,
		Features: []FeatureOption{
			{Feature: domain.FeatureBlack, Default: true},
			{Feature: domain.FeatureFlake8, Default: true},
			{Feature: domain.FeaturePytest, Default: true},
			{Feature: domain.FeaturePreCommit},
			{Feature: domain.FeatureDockerSetup},
		},
		Tools: nil,
		Doc:   asset("docs/python.md"),
		Steps: pythonSteps,
	}
}

func pythonSteps(c *Context) []Step {
	return []Step{
		c.Dirs("create project structure", "src", "tests"),
		c.File("write main module", "src/main.py", asset("python/main.py")),
		c.File("write src package marker", "src/__init__.py", ""),
		c.File("write tests package marker", "tests/__init__.py", ""),
		c.File("write requirements", "requirements.txt", pythonRequirements(c)),
		c.File("write readme", "README.md", fmt.Sprintf(asset("python/README.md"), c.Request.ProjectName)),
		c.File("write test module", "tests/test_main.py", asset("python/test_main.py")).Gated(domain.FeaturePytest),
		c.File("write pre-commit config", ".pre-commit-config.yaml", asset("python/pre-commit-config.yaml")).Gated(domain.FeaturePreCommit),
		c.File("write dockerfile", "Dockerfile", asset("python/Dockerfile")).Gated(domain.FeatureDockerSetup),
		c.File("write dockerignore", ".dockerignore", pythonDockerignore).Gated(domain.FeatureDockerSetup),
	}
}

// pythonRequirements lists the pinned dev tools for the selected features.
func pythonRequirements(c *Context) string {
	var b strings.Builder
	if c.Has(domain.FeaturePytest) {
		b.WriteString("pytest>=7.0.0\n")
	}
	if c.Has(domain.FeatureBlack) {
		b.WriteString("black>=23.0.0\n")
	}
	if c.Has(domain.FeatureFlake8) {
		b.WriteString("flake8>=6.0.0\n")
	}
	return b.String()
}
