package scaffold

import (
	"github.com/mrz1836/flow/internal/constants"
	"github.com/mrz1836/flow/internal/domain"
)

// NewNextKind creates the Next.js frontend kind.
// Steps: create-next-app → PWA files → Prisma init + schema → combined dev
// install → Prettier config.
func NewNextKind() *Kind {
	return &Kind{
		Name:        "react-next",
		DisplayName: "Next.js",
		Description: "Full-featured React framework with SSR",
		Category:    domain.CategoryFrontend,
		Type:        domain.ProjectTypeReact,
		Framework:   domain.FrameworkNext,
		Features: []FeatureOption{
			{Feature: domain.FeatureTypeScript, Default: true},
			{Feature: domain.FeatureTailwind},
			{Feature: domain.FeatureESLint},
			{Feature: domain.FeaturePrettier},
			{Feature: domain.FeaturePWA},
			{Feature: domain.FeatureMongoDB},
		},
		Tools: []string{constants.ToolNode, constants.ToolNPX, constants.ToolNPM},
		Doc:   asset("docs/react-next.md"),
		Steps: nextSteps,
	}
}

// nextSteps builds the Next.js step sequence. create-next-app takes the
// TypeScript, Tailwind and ESLint choices as flags, so those features add no
// steps of their own.
func nextSteps(c *Context) []Step {
	flag := func(f domain.Feature, on, off string) string {
		if c.Has(f) {
			return on
		}
		return off
	}

	steps := []Step{
		c.CommandIn("create next app", c.ParentDir(),
			"npx", "create-next-app@latest", c.Request.ProjectName,
			flag(domain.FeatureTypeScript, "--ts", "--js"),
			flag(domain.FeatureTailwind, "--tailwind", "--no-tailwind"),
			flag(domain.FeatureESLint, "--eslint", "--no-eslint"),
			"--app",
			"--src-dir",
			"--import-alias", "@/*",
			"--no-git"),

		c.File("write pwa config", "next.config.js", asset("nextjs/next.config.js")).Gated(domain.FeaturePWA),
		c.File("write pwa manifest", "public/manifest.json", asset("nextjs/manifest.json")).Gated(domain.FeaturePWA),

		c.Command("init prisma", "npx", "prisma", "init").Gated(domain.FeatureMongoDB),
		c.File("write prisma schema", "prisma/schema.prisma", asset("nextjs/schema.prisma")).Gated(domain.FeatureMongoDB),
		c.File("write database helper", "src/lib/db.ts", asset("nextjs/db.ts")).Gated(domain.FeatureMongoDB),
	}

	var pkgs []string
	if c.Has(domain.FeaturePrettier) {
		pkgs = append(pkgs,
			"prettier",
			"prettier-plugin-tailwindcss",
			"eslint-config-prettier",
			"eslint-plugin-prettier",
		)
	}
	if c.Has(domain.FeaturePWA) {
		pkgs = append(pkgs, "next-pwa")
	}
	if c.Has(domain.FeatureMongoDB) {
		pkgs = append(pkgs, "@prisma/client", "prisma")
	}
	if len(pkgs) > 0 {
		steps = append(steps, c.Command("install extra packages",
			append([]string{"npm", "install", "-D"}, pkgs...)...))
	}

	steps = append(steps,
		c.File("write prettier config", ".prettierrc", asset("nextjs/prettierrc.json")).Gated(domain.FeaturePrettier),
	)

	return steps
}
