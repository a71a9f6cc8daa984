package scaffold

import (
	"context"

	"github.com/mrz1836/flow/internal/constants"
	"github.com/mrz1836/flow/internal/domain"
)

// NewVueKind creates the Vue 3 frontend kind.
// Steps: prepare parent → create vue app (flag matrix) → npm install →
// Tailwind → PWA plugin + vite config → i18n.
func NewVueKind() *Kind {
	return &Kind{
		Name:        "vue",
		DisplayName: "Vue 3",
		Description: "Progressive Vue.js application with Vite",
		Category:    domain.CategoryFrontend,
		Type:        domain.ProjectTypeVue,
		Features: []FeatureOption{
			{Feature: domain.FeatureTypeScript, Default: true},
			{Feature: domain.FeatureJSX},
			{Feature: domain.FeatureVueRouter},
			{Feature: domain.FeaturePinia},
			{Feature: domain.FeatureVitest},
			{Feature: domain.FeatureCypress},
			{Feature: domain.FeatureESLint},
			{Feature: domain.FeaturePrettier},
			{Feature: domain.FeatureTailwind},
			{Feature: domain.FeaturePWA},
			{Feature: domain.FeatureI18n},
		},
		Tools: []string{constants.ToolNode, constants.ToolNPM},
		Doc:   asset("docs/vue.md"),
		Steps: vueSteps,
	}
}

// vueSteps builds the Vue 3 step sequence. create-vue takes one flag per
// selected feature; Tailwind, PWA and i18n are wired up afterwards.
func vueSteps(c *Context) []Step {
	createArgs := []string{"npm", "create", "vue@latest", c.Request.ProjectName, "--"}
	for _, opt := range []struct {
		feature domain.Feature
		flag    string
	}{
		{domain.FeatureTypeScript, "--typescript"},
		{domain.FeatureJSX, "--jsx"},
		{domain.FeatureVueRouter, "--router"},
		{domain.FeaturePinia, "--pinia"},
		{domain.FeatureVitest, "--vitest"},
		{domain.FeatureCypress, "--cypress"},
		{domain.FeatureESLint, "--eslint"},
		{domain.FeaturePrettier, "--prettier"},
	} {
		if c.Has(opt.feature) {
			createArgs = append(createArgs, opt.flag)
		}
	}

	ext := "js"
	if c.Has(domain.FeatureTypeScript) {
		ext = "ts"
	}

	return []Step{
		{
			Name: "prepare parent directory",
			Run: func(_ context.Context) error {
				return c.Files.EnsureDir(c.ParentDir())
			},
		},
		c.CommandIn("create vue app", c.ParentDir(), createArgs...),
		c.Command("install dependencies", "npm", "install"),

		c.File("write tailwind stylesheet", "src/style.css", tailwindCSS).Gated(domain.FeatureTailwind),
		c.Command("install tailwind",
			"npm", "install", "-D", "tailwindcss", "postcss", "autoprefixer").Gated(domain.FeatureTailwind),
		c.Command("init tailwind", "npx", "tailwindcss", "init", "-p").Gated(domain.FeatureTailwind),
		c.File("write tailwind config", "tailwind.config.js", asset("vue/tailwind.config.js")).Gated(domain.FeatureTailwind),

		c.Command("install pwa plugin", "npm", "install", "-D", "vite-plugin-pwa").Gated(domain.FeaturePWA),
		c.File("write vite config", "vite.config."+ext, asset("vue/vite.config.ts")).Gated(domain.FeaturePWA),

		c.Command("install vue-i18n", "npm", "install", "vue-i18n@9").Gated(domain.FeatureI18n),
		c.File("write i18n config", "src/i18n/index."+ext, asset("vue/i18n.ts")).Gated(domain.FeatureI18n),
		c.File("write app entrypoint", "src/main."+ext, asset("vue/main.ts")).Gated(domain.FeatureI18n),
	}
}
