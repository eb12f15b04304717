package cypress

// DiscoveryRule is the search specification of one test category.
type DiscoveryRule struct {
	// RootFolder is relative to the working directory; empty means the
	// working directory itself.
	RootFolder string `json:"rootFolder" yaml:"rootFolder"`
	// Include is never empty once defaults are applied.
	Include []string `json:"include" yaml:"include"`
	// Exclude is always a list, possibly empty.
	Exclude []string `json:"exclude" yaml:"exclude"`
}

// ResolvedConfig is the schema-agnostic view produced by an adapter.
type ResolvedConfig struct {
	// Integration holds the e2e (modern) or integration (legacy) rule.
	Integration DiscoveryRule `json:"integration" yaml:"integration"`
	// Component is nil when the configuration declares no component category.
	Component *DiscoveryRule `json:"component,omitempty" yaml:"component,omitempty"`
}

// TestFiles is the discovery result.
type TestFiles struct {
	IntegrationTests []string
	// ComponentTests only carries meaning when HasComponent is true.
	ComponentTests []string
	// HasComponent distinguishes "no component category" from "component
	// category that matched nothing".
	HasComponent bool
}

// Empty reports whether neither category matched a file.
func (f TestFiles) Empty() bool {
	return len(f.IntegrationTests) == 0 && len(f.ComponentTests) == 0
}

// Kind identifies the configuration schema an adapter handles.
type Kind int

const (
	// KindModernTyped is cypress.config.ts, transpiled before loading.
	KindModernTyped Kind = iota
	// KindModernScript is cypress.config.{js,mjs,cjs}.
	KindModernScript
	// KindLegacy is cypress.json.
	KindLegacy
)

func (k Kind) String() string {
	switch k {
	case KindModernTyped:
		return "modern-typed"
	case KindModernScript:
		return "modern-script"
	case KindLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}
