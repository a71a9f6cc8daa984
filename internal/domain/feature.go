package domain

import (
	"encoding/json"
	"sort"
)

// Feature is an optional add-on a project kind can offer. Feature values
// double as the labels shown in the multi-select menu.
type Feature string

// Feature constants. Values match the menu labels exactly so the wizard can
// show them without a mapping layer.
const (
	FeatureTypeScript      Feature = "TypeScript"
	FeatureTailwind        Feature = "Tailwind CSS"
	FeatureESLint          Feature = "ESLint"
	FeaturePrettier        Feature = "Prettier"
	FeaturePWA             Feature = "PWA"
	FeatureMongoDB         Feature = "MongoDB"
	FeatureJSX             Feature = "JSX"
	FeatureVueRouter       Feature = "Vue Router"
	FeaturePinia           Feature = "Pinia"
	FeatureVitest          Feature = "Vitest"
	FeatureCypress         Feature = "Cypress"
	FeatureI18n            Feature = "i18n"
	FeatureAuthentication  Feature = "Authentication"
	FeatureDatabaseHelpers Feature = "Database Helpers"
	FeatureStorageHelpers  Feature = "Storage Helpers"
	FeatureNextAuth        Feature = "NextAuth"
	FeaturePrisma          Feature = "Prisma"
	FeatureJest            Feature = "Jest"
	FeatureTRPCSubs        Feature = "tRPC Subscriptions"
	FeatureBlack           Feature = "Black"
	FeatureFlake8          Feature = "Flake8"
	FeaturePytest          Feature = "pytest"
	FeaturePreCommit       Feature = "pre-commit hooks"
	FeatureDockerSetup     Feature = "Docker setup"
	FeaturePoetry          Feature = "Poetry"
	FeatureSQLAlchemy      Feature = "SQLAlchemy"
	FeatureAlembic         Feature = "Alembic"
	FeatureJWTAuth         Feature = "JWT Auth"
	FeatureDocker          Feature = "Docker"
	FeaturePrometheus      Feature = "Prometheus"
	FeatureAPIDocs         Feature = "API Docs"
	FeaturePostgreSQL      Feature = "PostgreSQL"
	FeatureMySQL           Feature = "MySQL"
	FeatureDebugToolbar    Feature = "Debug Toolbar"
	FeatureCORS            Feature = "CORS"
	FeatureRESTFramework   Feature = "REST Framework"
	FeatureCelery          Feature = "Celery"
	FeatureRedis           Feature = "Redis"
	FeatureWhiteNoise      Feature = "WhiteNoise"
	FeatureProduction      Feature = "Production"
	FeatureTesting         Feature = "Testing"
)

// String returns the string representation of the Feature.
func (f Feature) String() string {
	return string(f)
}

// FeatureSet is the validated set of features selected for one run.
// Membership is fixed at construction.
type FeatureSet struct {
	members map[Feature]struct{}
}

// NewFeatureSet builds a FeatureSet from raw tokens, keeping only tokens that
// appear in recognized. Unknown tokens are dropped without error.
func NewFeatureSet(recognized []Feature, tokens []string) FeatureSet {
	allowed := make(map[Feature]struct{}, len(recognized))
	for _, f := range recognized {
		allowed[f] = struct{}{}
	}

	members := make(map[Feature]struct{})
	for _, tok := range tokens {
		f := Feature(tok)
		if _, ok := allowed[f]; ok {
			members[f] = struct{}{}
		}
	}
	return FeatureSet{members: members}
}

// Has reports whether the feature was selected.
func (s FeatureSet) Has(f Feature) bool {
	_, ok := s.members[f]
	return ok
}

// Len returns the number of selected features.
func (s FeatureSet) Len() int {
	return len(s.members)
}

// List returns the selected features sorted by name.
func (s FeatureSet) List() []Feature {
	out := make([]Feature, 0, len(s.members))
	for f := range s.members {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the selected features as sorted strings, for logging and
// JSON output.
func (s FeatureSet) Strings() []string {
	list := s.List()
	out := make([]string, len(list))
	for i, f := range list {
		out[i] = string(f)
	}
	return out
}

// MarshalJSON encodes the set as a sorted JSON array of feature names.
func (s FeatureSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}
