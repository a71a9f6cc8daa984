package scaffold

import (
	"github.com/mrz1836/flow/internal/constants"
	"github.com/mrz1836/flow/internal/domain"
)

// supabaseEnv is the environment template for the Supabase client. It is
// written to both .env and .env.example so the real keys never need to land
// in version control.
const supabaseEnv = `VITE_SUPABASE_URL=your-project-url
VITE_SUPABASE_ANON_KEY=your-anon-key
`

// NewReactSupabaseKind creates the React + Supabase full-stack kind. It is a
// composition over the React (Vite) kind: the React steps run first, then the
// Supabase client and the selected helper modules layer on top.
// Steps: react-vite sequence → install @supabase/supabase-js → env files →
// client → auth provider → database helpers → storage helpers.
func NewReactSupabaseKind() *Kind {
	return &Kind{
		Name:        "react-supabase",
		DisplayName: "React + Supabase",
		Description: "React frontend with a Supabase backend",
		Category:    domain.CategoryFullStack,
		Type:        domain.ProjectTypeReactSupabase,
		Features: []FeatureOption{
			{Feature: domain.FeatureTypeScript, Default: true},
			{Feature: domain.FeatureTailwind},
			{Feature: domain.FeatureESLint},
			{Feature: domain.FeaturePrettier},
			{Feature: domain.FeatureAuthentication},
			{Feature: domain.FeatureDatabaseHelpers},
			{Feature: domain.FeatureStorageHelpers},
		},
		Tools: []string{constants.ToolNode, constants.ToolNPM},
		Doc:   asset("docs/react-supabase.md"),
		Steps: reactSupabaseSteps,
	}
}

func reactSupabaseSteps(c *Context) []Step {
	steps := reactViteSteps(c)
	return append(steps,
		c.Command("install supabase client", "npm", "install", "@supabase/supabase-js"),
		c.File("write env file", ".env", supabaseEnv),
		c.File("write env example", ".env.example", supabaseEnv),
		c.File("write supabase client", "src/supabase.ts", asset("supabase/supabase.ts")),
		c.File("write auth provider", "src/auth.tsx", asset("supabase/auth.tsx")).Gated(domain.FeatureAuthentication),
		c.File("write database helpers", "src/db.ts", asset("supabase/db.ts")).Gated(domain.FeatureDatabaseHelpers),
		c.File("write storage helpers", "src/storage.ts", asset("supabase/storage.ts")).Gated(domain.FeatureStorageHelpers),
	)
}
