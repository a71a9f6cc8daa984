package scaffold

import (
	"strings"

	"github.com/mrz1836/flow/internal/domain"
)

// fastapiDevRequirements pins the dev toolchain for the requirements branch.
const fastapiDevRequirements = `black>=23.0.0
flake8>=6.0.0
pytest>=7.0.0
pytest-asyncio>=0.21.0
httpx>=0.24.0
`

// fastapiMetrics exposes the Prometheus instrumentator on the app.
const fastapiMetrics = `from prometheus_fastapi_instrumentator import Instrumentator

def setup_metrics(app):
    Instrumentator().instrument(app).expose(app)
`

// NewFastAPIKind creates the FastAPI backend kind.
// Steps: directory skeleton → Poetry or requirements files → app module →
// SQLAlchemy → Alembic → JWT auth → Docker → metrics → docs.
func NewFastAPIKind() *Kind {
	return &Kind{
		Name:        "fastapi",
		DisplayName: "FastAPI Backend",
		Description: "Modern async Python API with FastAPI",
		Category:    domain.CategoryBackend,
		Type:        domain.ProjectTypeFastAPI,
		Features: []FeatureOption{
			{Feature: domain.FeaturePoetry},
			{Feature: domain.FeatureSQLAlchemy},
			{Feature: domain.FeatureAlembic},
			{Feature: domain.FeatureJWTAuth},
			{Feature: domain.FeatureDocker},
			{Feature: domain.FeaturePrometheus},
			{Feature: domain.FeatureAPIDocs},
		},
		Tools: nil,
		Doc:   asset("docs/fastapi.md"),
		Steps: fastapiSteps,
	}
}

// fastapiSteps builds the FastAPI step sequence. Dependency management is an
// either-or: Poetry when selected, plain requirements files otherwise.
// Alembic only makes sense on top of SQLAlchemy, so its steps appear only
// when both are selected.
func fastapiSteps(c *Context) []Step {
	steps := []Step{
		c.Dirs("create project structure",
			"src", "tests",
			"src/api", "src/core", "src/db",
			"src/models", "src/schemas", "src/services"),
	}

	if c.Has(domain.FeaturePoetry) {
		deps := []string{"fastapi", "uvicorn[standard]", "pydantic[email]", "python-dotenv"}
		if c.Has(domain.FeatureSQLAlchemy) {
			deps = append(deps, "sqlalchemy", "asyncpg")
		}
		if c.Has(domain.FeatureJWTAuth) {
			deps = append(deps, "python-jose[cryptography]", "passlib[bcrypt]")
		}
		if c.Has(domain.FeaturePrometheus) {
			deps = append(deps, "prometheus-fastapi-instrumentator")
		}
		steps = append(steps,
			c.Command("init poetry", "poetry", "init", "--no-interaction"),
			c.Command("add dependencies", append([]string{"poetry", "add"}, deps...)...),
			c.Command("add dev dependencies",
				"poetry", "add", "--group", "dev", "black", "flake8", "pytest", "pytest-asyncio", "httpx"),
		)
	} else {
		steps = append(steps,
			c.File("write requirements", "requirements.txt", fastapiRequirements(c)),
			c.File("write dev requirements", "requirements-dev.txt", fastapiDevRequirements),
		)
	}

	steps = append(steps,
		c.File("write app module", "src/main.py", asset("fastapi/main.py")),

		c.File("write database config", "src/db/database.py", asset("fastapi/database.py")).Gated(domain.FeatureSQLAlchemy),
		c.File("write user model", "src/models/user.py", asset("fastapi/user.py")).Gated(domain.FeatureSQLAlchemy),
	)

	if c.Has(domain.FeatureSQLAlchemy) {
		steps = append(steps,
			c.Command("init alembic", "alembic", "init", "migrations").Gated(domain.FeatureAlembic),
			c.File("write alembic config", "alembic.ini", asset("fastapi/alembic.ini")).Gated(domain.FeatureAlembic),
		)
	}

	return append(steps,
		c.File("write auth module", "src/core/auth.py", asset("fastapi/auth.py")).Gated(domain.FeatureJWTAuth),

		c.File("write dockerfile", "Dockerfile", asset("fastapi/Dockerfile")).Gated(domain.FeatureDocker),
		c.File("write docker compose", "docker-compose.yml", asset("fastapi/docker-compose.yml")).Gated(domain.FeatureDocker),

		c.File("write metrics module", "src/core/metrics.py", fastapiMetrics).Gated(domain.FeaturePrometheus),
		c.File("write docs module", "src/core/docs.py", asset("fastapi/docs.py")).Gated(domain.FeatureAPIDocs),
	)
}

// fastapiRequirements lists the pinned runtime dependencies for the selected
// features. asyncpg keeps its PostgreSQL note so readers know why it is there.
func fastapiRequirements(c *Context) string {
	var b strings.Builder
	b.WriteString(`fastapi>=0.100.0
uvicorn[standard]>=0.23.0
pydantic[email]>=2.0.0
python-dotenv>=1.0.0
`)
	if c.Has(domain.FeatureSQLAlchemy) {
		b.WriteString("sqlalchemy>=2.0.0\nasyncpg>=0.28.0  # For PostgreSQL\n")
	}
	if c.Has(domain.FeatureJWTAuth) {
		b.WriteString("python-jose[cryptography]>=3.3.0\npasslib[bcrypt]>=1.7.4\n")
	}
	if c.Has(domain.FeaturePrometheus) {
		b.WriteString("prometheus-fastapi-instrumentator>=6.0.0\n")
	}
	return b.String()
}
