package app

import (
	"context"

	"cyspec/internal/config"
	"cyspec/internal/cypress"
	"cyspec/pkg/logging"
)

// RulesReport describes the discovery rules a working directory resolves to.
type RulesReport struct {
	ConfigFile string                  `json:"configFile" yaml:"configFile"`
	Adapter    string                  `json:"adapter" yaml:"adapter"`
	Rules      *cypress.ResolvedConfig `json:"rules" yaml:"rules"`
}

// ResolveRules selects the adapter for run and resolves its rules without
// touching the spec files. Unlike Run, errors are returned as they are.
func ResolveRules(ctx context.Context, run config.RunConfig) (*RulesReport, error) {
	parser := newParser(run)

	adapter, err := parser.SelectAdapter()
	if err != nil {
		return nil, err
	}

	resolved, err := adapter.Resolve(ctx)
	if err != nil {
		logging.Error("Rules", err, "Failed to resolve %s", adapter.Path())
		return nil, err
	}

	return &RulesReport{
		ConfigFile: adapter.Path(),
		Adapter:    adapter.Kind().String(),
		Rules:      resolved,
	}, nil
}
