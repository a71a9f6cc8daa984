package scaffold

import (
	"github.com/mrz1836/flow/internal/constants"
	"github.com/mrz1836/flow/internal/domain"
)

// t3TestSetup registers the jest-dom matchers for every test file.
const t3TestSetup = `import '@testing-library/jest-dom';`

// NewT3Kind creates the T3 stack full-stack kind (Next.js + tRPC + Tailwind).
// Steps: create-t3-app in CI mode → PWA files → Jest config → subscription
// client → package installs → tsconfig rewrite.
func NewT3Kind() *Kind {
	return &Kind{
		Name:        "t3",
		DisplayName: "T3 Stack",
		Description: "Next.js, tRPC, Tailwind and Prisma, end to end typesafe",
		Category:    domain.CategoryFullStack,
		Type:        domain.ProjectTypeT3,
		Features: []FeatureOption{
			{Feature: domain.FeatureNextAuth},
			{Feature: domain.FeaturePrisma},
			{Feature: domain.FeaturePWA},
			{Feature: domain.FeatureJest},
			{Feature: domain.FeatureTRPCSubs},
		},
		Tools: []string{constants.ToolNode, constants.ToolNPX, constants.ToolNPM},
		Doc:   asset("docs/t3.md"),
		Steps: t3Steps,
	}
}

// t3Steps builds the T3 step sequence. create-t3-app runs in CI mode so the
// feature choices pass as flags instead of interactive answers; Tailwind,
// tRPC and the app router are always on.
func t3Steps(c *Context) []Step {
	createArgs := []string{"npx", "create-t3-app@latest", c.Request.ProjectName, "--noGit", "--CI"}
	if c.Has(domain.FeatureNextAuth) {
		createArgs = append(createArgs, "--nextAuth", "true")
	}
	if c.Has(domain.FeaturePrisma) {
		createArgs = append(createArgs, "--prisma", "true")
	}
	createArgs = append(createArgs, "--tailwind", "true", "--trpc", "true", "--appRouter", "true")

	steps := []Step{
		c.CommandIn("create t3 app", c.ParentDir(), createArgs...),

		c.File("write pwa config", "next.config.mjs", asset("t3/next.config.mjs")).Gated(domain.FeaturePWA),
		c.File("write pwa manifest", "public/manifest.json", asset("t3/manifest.json")).Gated(domain.FeaturePWA),

		c.File("write jest config", "jest.config.js", asset("t3/jest.config.js")).Gated(domain.FeatureJest),
		c.File("write test setup", "src/test/setup.ts", t3TestSetup).Gated(domain.FeatureJest),

		c.File("write subscription client", "src/utils/api.ts", asset("t3/api.ts")).Gated(domain.FeatureTRPCSubs),
	}

	var pkgs, devPkgs []string
	if c.Has(domain.FeaturePWA) {
		pkgs = append(pkgs, "next-pwa")
	}
	if c.Has(domain.FeatureJest) {
		devPkgs = append(devPkgs,
			"@testing-library/react",
			"@testing-library/jest-dom",
			"jest",
			"@types/jest",
			"ts-jest",
		)
	}
	if c.Has(domain.FeatureTRPCSubs) {
		pkgs = append(pkgs, "@trpc/server", "@trpc/client", "ws", "@trpc/react-query")
	}
	if len(pkgs) > 0 {
		steps = append(steps, c.Command("install extra packages",
			append([]string{"npm", "install"}, pkgs...)...))
	}
	if len(devPkgs) > 0 {
		steps = append(steps, c.Command("install dev packages",
			append([]string{"npm", "install", "-D"}, devPkgs...)...))
	}

	steps = append(steps, c.File("write tsconfig", "tsconfig.json", asset("t3/tsconfig.json")))

	return steps
}
