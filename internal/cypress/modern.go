package cypress

import (
	"context"
	"fmt"

	"cyspec/pkg/logging"
)

// testingTypeConfig is one of the e2e / component sections of a modern
// config. Unset fields are nil.
type testingTypeConfig struct {
	SpecPattern        Patterns
	ExcludeSpecPattern Patterns
}

type modernConfig struct {
	E2E       testingTypeConfig
	Component testingTypeConfig
}

// modernAdapter reads cypress.config.{ts,js,mjs,cjs} through a ScriptLoader.
type modernAdapter struct {
	path   string
	kind   Kind
	loader ScriptLoader
}

func newModernAdapter(path string, kind Kind, loader ScriptLoader) *modernAdapter {
	return &modernAdapter{path: path, kind: kind, loader: loader}
}

func (a *modernAdapter) Kind() Kind   { return a.kind }
func (a *modernAdapter) Path() string { return a.path }

// Resolve evaluates the config script and applies the per-category defaults.
func (a *modernAdapter) Resolve(ctx context.Context) (*ResolvedConfig, error) {
	exported, err := a.loader.Load(ctx, a.path)
	if err != nil {
		return nil, err
	}

	cfg, err := parseModernConfig(exported)
	if err != nil {
		return nil, &ConfigError{File: a.path, Err: err}
	}

	resolved := resolveModern(cfg)
	logging.Debug("Modern", "Resolved %s: e2e=%+v component=%+v", a.path, resolved.Integration, *resolved.Component)
	return resolved, nil
}

func parseModernConfig(exported map[string]any) (modernConfig, error) {
	root := unwrapDefault(exported)

	e2e, err := parseTestingType(root, "e2e")
	if err != nil {
		return modernConfig{}, err
	}
	component, err := parseTestingType(root, "component")
	if err != nil {
		return modernConfig{}, err
	}
	return modernConfig{E2E: e2e, Component: component}, nil
}

// unwrapDefault strips the `{default: ...}` wrapper an ES module export
// produces once compiled to CommonJS.
func unwrapDefault(exported map[string]any) map[string]any {
	if inner, ok := exported["default"].(map[string]any); ok {
		return inner
	}
	return exported
}

func parseTestingType(root map[string]any, key string) (testingTypeConfig, error) {
	raw, ok := root[key]
	if !ok || raw == nil {
		return testingTypeConfig{}, nil
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return testingTypeConfig{}, fmt.Errorf("%s must be an object, got %T", key, raw)
	}

	spec, err := patternsFromValue(section["specPattern"])
	if err != nil {
		return testingTypeConfig{}, fmt.Errorf("%s.specPattern: %w", key, err)
	}
	exclude, err := patternsFromValue(section["excludeSpecPattern"])
	if err != nil {
		return testingTypeConfig{}, fmt.Errorf("%s.excludeSpecPattern: %w", key, err)
	}
	return testingTypeConfig{SpecPattern: spec, ExcludeSpecPattern: exclude}, nil
}

// resolveModern fills every missing field with its category default. The
// component exclude default embeds the resolved e2e include patterns, so e2e
// specs are never reported as component specs as well.
func resolveModern(cfg modernConfig) *ResolvedConfig {
	e2eInclude := cfg.E2E.SpecPattern.orDefault(defaultE2EInclude())
	e2eExclude := cfg.E2E.ExcludeSpecPattern.orDefault(defaultE2EExclude())

	componentInclude := cfg.Component.SpecPattern.orDefault(defaultComponentInclude())
	componentExclude := cfg.Component.ExcludeSpecPattern.orDefault(defaultComponentExclude(e2eInclude))

	return &ResolvedConfig{
		Integration: DiscoveryRule{
			Include: e2eInclude,
			Exclude: e2eExclude,
		},
		Component: &DiscoveryRule{
			Include: componentInclude,
			Exclude: componentExclude,
		},
	}
}
