package cypress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"cyspec/pkg/logging"
)

// legacyConfig is the subset of cypress.json that drives spec discovery.
type legacyConfig struct {
	IntegrationFolder folder   `json:"integrationFolder"`
	ComponentFolder   folder   `json:"componentFolder"`
	TestFiles         Patterns `json:"testFiles"`
	IgnoreTestFiles   Patterns `json:"ignoreTestFiles"`
}

// folder is a folder setting; Cypress 9 also accepts `false` to switch a
// category off, which decodes to the empty string.
type folder string

func (f *folder) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*f = ""
	case bool:
		if v {
			return fmt.Errorf("folder must be a path or false, got true")
		}
		*f = ""
	case string:
		*f = folder(v)
	default:
		return fmt.Errorf("folder must be a string, got %T", raw)
	}
	return nil
}

// legacyAdapter reads cypress.json.
type legacyAdapter struct {
	path string
}

func newLegacyAdapter(path string) *legacyAdapter {
	return &legacyAdapter{path: path}
}

func (a *legacyAdapter) Kind() Kind   { return KindLegacy }
func (a *legacyAdapter) Path() string { return a.path }

// Resolve loads cypress.json and applies the legacy defaults.
func (a *legacyAdapter) Resolve(_ context.Context) (*ResolvedConfig, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, &ConfigError{File: a.path, Err: err}
	}

	cfg, err := parseLegacyConfig(data)
	if err != nil {
		return nil, &ConfigError{File: a.path, Err: err}
	}

	resolved := resolveLegacy(cfg)
	logging.Debug("Legacy", "Resolved %s: integration=%+v component=%v", a.path, resolved.Integration, resolved.Component != nil)
	return resolved, nil
}

func parseLegacyConfig(data []byte) (legacyConfig, error) {
	var cfg legacyConfig
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return legacyConfig{}, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return cfg, nil
}

// resolveLegacy builds the rules field by field. Both categories share
// testFiles and ignoreTestFiles; the component rule only exists when
// componentFolder is set.
func resolveLegacy(cfg legacyConfig) *ResolvedConfig {
	integrationFolder := string(cfg.IntegrationFolder)
	if integrationFolder == "" {
		integrationFolder = DefaultIntegrationFolder
	}
	include := cfg.TestFiles.orDefault([]string{DefaultTestFiles})
	exclude := cfg.IgnoreTestFiles.orDefault(nil)

	resolved := &ResolvedConfig{
		Integration: DiscoveryRule{
			RootFolder: integrationFolder,
			Include:    include,
			Exclude:    exclude,
		},
	}

	if cfg.ComponentFolder != "" {
		resolved.Component = &DiscoveryRule{
			RootFolder: string(cfg.ComponentFolder),
			Include:    append([]string{}, include...),
			Exclude:    append([]string{}, exclude...),
		}
	}
	return resolved
}
