package config

// Input names as declared by the action metadata. The same names are used for
// command-line flags and, prefixed with INPUT_, for environment variables.
const (
	KeyWorkingDirectory    = "working-directory"
	KeyCountRunners        = "count-runners"
	KeyFollowSymbolicLinks = "follow-symbolic-links"
	KeyConfigFile          = "config-file"
	KeyOutputFormat        = "output-format"
)

// Output formats understood by the reporting package.
const (
	OutputFormatGitHub = "github"
	OutputFormatJSON   = "json"
	OutputFormatYAML   = "yaml"
	OutputFormatText   = "text"
)

// RunConfig holds the settings of a single invocation.
type RunConfig struct {
	// WorkingDirectory is the absolute directory searched for the Cypress
	// config file and used as the root for spec discovery.
	WorkingDirectory string `yaml:"workingDirectory" json:"workingDirectory"`

	// ConfigFile optionally overrides config discovery with an explicit path.
	ConfigFile string `yaml:"configFile,omitempty" json:"configFile,omitempty"`

	// FollowSymbolicLinks controls whether the glob engine descends into
	// symlinked directories.
	FollowSymbolicLinks bool `yaml:"followSymbolicLinks" json:"followSymbolicLinks"`

	// CountRunners is the requested number of groups. Zero disables grouping.
	CountRunners int `yaml:"countRunners" json:"countRunners"`

	// OutputFormat selects the reporter.
	OutputFormat string `yaml:"outputFormat" json:"outputFormat"`
}

// GroupingEnabled reports whether discovered specs should be chunked.
func (c RunConfig) GroupingEnabled() bool {
	return c.CountRunners > 0
}
