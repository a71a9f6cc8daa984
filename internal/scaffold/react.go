package scaffold

import (
	"context"

	"github.com/mrz1836/flow/internal/constants"
	"github.com/mrz1836/flow/internal/domain"
)

// tailwindCSS replaces the generated stylesheet with the Tailwind directives.
const tailwindCSS = `@tailwind base;
@tailwind components;
@tailwind utilities;
`

// NewReactViteKind creates the React frontend kind scaffolded with Vite.
// Steps: prepare parent → create vite app → npm install → Tailwind →
// ESLint/Prettier configs → lint tooling install.
func NewReactViteKind() *Kind {
	return &Kind{
		Name:        "react-vite",
		DisplayName: "React (Vite)",
		Description: "Modern React application with Vite",
		Category:    domain.CategoryFrontend,
		Type:        domain.ProjectTypeReact,
		Framework:   domain.FrameworkVite,
		Features: []FeatureOption{
			{Feature: domain.FeatureTypeScript, Default: true},
			{Feature: domain.FeatureTailwind},
			{Feature: domain.FeatureESLint},
			{Feature: domain.FeaturePrettier},
		},
		Tools: []string{constants.ToolNode, constants.ToolNPM},
		Doc:   asset("docs/react-vite.md"),
		Steps: reactViteSteps,
	}
}

// reactViteSteps builds the React (Vite) step sequence. create-vite runs in
// the parent directory and creates the project directory itself.
func reactViteSteps(c *Context) []Step {
	template := "react"
	if c.Has(domain.FeatureTypeScript) {
		template = "react-ts"
	}

	steps := []Step{
		{
			Name: "prepare parent directory",
			Run: func(_ context.Context) error {
				return c.Files.EnsureDir(c.ParentDir())
			},
		},
		c.CommandIn("create vite app", c.ParentDir(),
			"npm", "create", "vite@latest", c.Request.ProjectName, "--", "--template", template),
		c.Command("install dependencies", "npm", "install"),

		c.File("write tailwind stylesheet", "src/index.css", tailwindCSS).Gated(domain.FeatureTailwind),
		c.Command("install tailwind",
			"npm", "install", "-D", "tailwindcss", "postcss", "autoprefixer").Gated(domain.FeatureTailwind),
		c.Command("init tailwind", "npx", "tailwindcss", "init", "-p").Gated(domain.FeatureTailwind),
		c.File("write tailwind config", "tailwind.config.js", asset("react/tailwind.config.js")).Gated(domain.FeatureTailwind),

		c.File("write eslint config", ".eslintrc.json", asset("react/eslintrc.json")).Gated(domain.FeatureESLint),
		c.File("write prettier config", ".prettierrc", asset("react/prettierrc.json")).Gated(domain.FeaturePrettier),
	}

	// ESLint and Prettier dev packages install as one combined command.
	if pkgs := lintPackages(c); len(pkgs) > 0 {
		steps = append(steps, c.Command("install lint tooling",
			append([]string{"npm", "install", "-D"}, pkgs...)...))
	}

	return steps
}

// lintPackages returns the dev packages for the selected lint features.
func lintPackages(c *Context) []string {
	var pkgs []string
	if c.Has(domain.FeatureESLint) {
		pkgs = append(pkgs,
			"eslint",
			"@typescript-eslint/parser",
			"@typescript-eslint/eslint-plugin",
			"eslint-plugin-react",
			"eslint-plugin-react-hooks",
		)
	}
	if c.Has(domain.FeaturePrettier) {
		pkgs = append(pkgs,
			"prettier",
			"eslint-config-prettier",
			"eslint-plugin-prettier",
		)
	}
	return pkgs
}
