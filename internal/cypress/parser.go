package cypress

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cyspec/internal/discovery"
	"cyspec/pkg/logging"
)

// Adapter loads one configuration schema and resolves its discovery rules.
type Adapter interface {
	// Kind identifies the schema.
	Kind() Kind
	// Path is the config file the adapter reads.
	Path() string
	// Resolve loads the config file and applies the schema defaults.
	Resolve(ctx context.Context) (*ResolvedConfig, error)
}

// Parser selects an adapter for a working directory and turns its rules into
// file lists.
type Parser struct {
	dir        string
	configFile string
	globOpts   discovery.Options
	loader     ScriptLoader
}

// Option customizes a Parser.
type Option func(*Parser)

// WithConfigFile skips discovery and uses the given config file.
func WithConfigFile(path string) Option {
	return func(p *Parser) { p.configFile = path }
}

// WithGlobOptions sets the traversal options used for every rule.
func WithGlobOptions(opts discovery.Options) Option {
	return func(p *Parser) { p.globOpts = opts }
}

// WithScriptLoader replaces the sandboxed script loader.
func WithScriptLoader(loader ScriptLoader) Option {
	return func(p *Parser) { p.loader = loader }
}

// NewParser creates a Parser rooted at dir.
func NewParser(dir string, opts ...Option) *Parser {
	p := &Parser{
		dir:      dir,
		globOpts: discovery.DefaultOptions(),
		loader:   NewScriptLoader(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// selection is one step of the fixed adapter precedence.
type selection struct {
	kind  Kind
	names []string
}

var precedence = []selection{
	{kind: KindModernTyped, names: []string{TypedConfigFile}},
	{kind: KindModernScript, names: ScriptConfigFiles},
	{kind: KindLegacy, names: []string{LegacyConfigFile}},
}

// SelectAdapter returns the adapter for the first config file present, trying
// the typed script, then plain scripts, then cypress.json. It returns
// ErrNoSupportedConfig when none is found.
func (p *Parser) SelectAdapter() (Adapter, error) {
	if p.configFile != "" {
		return p.adapterForFile(p.configFile)
	}

	for _, sel := range precedence {
		path, err := Locate(p.dir, sel.names)
		switch {
		case err == nil:
			return p.newAdapter(sel.kind, path), nil
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrAmbiguous):
			continue
		default:
			return nil, err
		}
	}
	return nil, ErrNoSupportedConfig
}

func (p *Parser) adapterForFile(path string) (Adapter, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a readable file", ErrNoSupportedConfig, path)
	}

	name := filepath.Base(path)
	switch ext := strings.ToLower(filepath.Ext(name)); {
	case ext == ".json":
		return p.newAdapter(KindLegacy, path), nil
	case ext == ".ts":
		return p.newAdapter(KindModernTyped, path), nil
	case slices.Contains([]string{".js", ".mjs", ".cjs"}, ext):
		return p.newAdapter(KindModernScript, path), nil
	default:
		return nil, fmt.Errorf("%w: unrecognized config file %s", ErrNoSupportedConfig, name)
	}
}

func (p *Parser) newAdapter(kind Kind, path string) Adapter {
	if kind == KindLegacy {
		return newLegacyAdapter(path)
	}
	return newModernAdapter(path, kind, p.loader)
}

// Parse discovers the spec files of the working directory. Adapter selection
// errors and cancellation of ctx are returned; any other failure inside the
// adapter is logged and yields empty results, leaving it to the caller's
// emptiness check to fail.
func (p *Parser) Parse(ctx context.Context) (TestFiles, error) {
	adapter, err := p.SelectAdapter()
	if err != nil {
		return TestFiles{}, err
	}
	logging.Info("Parser", "Using %s config %s", adapter.Kind(), adapter.Path())

	files, err := p.ParseTests(ctx, adapter)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return TestFiles{}, fmt.Errorf("discovery interrupted: %w", ctxErr)
		}
		logging.Error("Parser", err, "Failed to discover tests from %s", adapter.Path())
		return TestFiles{IntegrationTests: []string{}}, nil
	}
	return files, nil
}

// ParseTests resolves the adapter's rules and globs them, integration first.
func (p *Parser) ParseTests(ctx context.Context, adapter Adapter) (TestFiles, error) {
	resolved, err := adapter.Resolve(ctx)
	if err != nil {
		return TestFiles{}, err
	}

	integration, err := p.collect(ctx, resolved.Integration)
	if err != nil {
		return TestFiles{}, fmt.Errorf("integration specs: %w", err)
	}
	files := TestFiles{IntegrationTests: integration}

	if resolved.Component != nil {
		component, err := p.collect(ctx, *resolved.Component)
		if err != nil {
			return TestFiles{}, fmt.Errorf("component specs: %w", err)
		}
		files.ComponentTests = component
		files.HasComponent = true
	}

	logging.Debug("Parser", "Discovered %d integration and %d component specs", len(files.IntegrationTests), len(files.ComponentTests))
	return files, nil
}

// collect globs one rule. Returned paths are relative to the rule's root folder.
func (p *Parser) collect(ctx context.Context, rule DiscoveryRule) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return discovery.Glob(p.rootOf(rule), rule.Include, rule.Exclude, p.globOpts)
}

func (p *Parser) rootOf(rule DiscoveryRule) string {
	if rule.RootFolder == "" {
		return p.dir
	}
	folder := filepath.FromSlash(rule.RootFolder)
	if filepath.IsAbs(folder) {
		return folder
	}
	return filepath.Join(p.dir, folder)
}
