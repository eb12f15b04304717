package cypress

// Config file names, in the order they are tried.
const (
	TypedConfigFile  = "cypress.config.ts"
	LegacyConfigFile = "cypress.json"
)

// ScriptConfigFiles are the directly loadable config variants.
var ScriptConfigFiles = []string{
	"cypress.config.js",
	"cypress.config.mjs",
	"cypress.config.cjs",
}

// Legacy (cypress.json) defaults.
const (
	DefaultIntegrationFolder = "cypress/integration"
	DefaultTestFiles         = "**/*.*"
)

// Modern (cypress.config.*) defaults. These mirror Cypress 10+ and must not
// drift, otherwise discovery disagrees with what `cypress run` executes.
const (
	DefaultE2ESpecPattern       = "cypress/e2e/**/*.cy.{js,jsx,ts,tsx}"
	DefaultComponentSpecPattern = "**/*.cy.{js,jsx,ts,tsx}"

	nodeModulesPattern    = "**/node_modules/**"
	hotUpdatePattern      = "*.hot-update.js"
	snapshotsPattern      = "**/__snapshots__/*"
	imageSnapshotsPattern = "**/__image_snapshots__/*"
)

func defaultE2EInclude() []string {
	return []string{DefaultE2ESpecPattern}
}

func defaultE2EExclude() []string {
	return []string{nodeModulesPattern, hotUpdatePattern}
}

func defaultComponentInclude() []string {
	return []string{DefaultComponentSpecPattern}
}

// defaultComponentExclude keeps e2e specs out of the component category.
func defaultComponentExclude(e2eInclude []string) []string {
	out := []string{nodeModulesPattern}
	out = append(out, e2eInclude...)
	return append(out, snapshotsPattern, imageSnapshotsPattern)
}
