package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"cyspec/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// For mocking in tests
var osGetwd = os.Getwd

// envPrefix matches the way GitHub Actions exposes `with:` inputs to a step:
// INPUT_<NAME> with the name upper-cased and dashes kept.
const envPrefix = "INPUT"

// InputEnvNames returns the environment variables read for an input key. The
// runner keeps the dashes (INPUT_COUNT-RUNNERS); the underscore spelling
// (INPUT_COUNT_RUNNERS) is accepted too since dotenv files and most shells
// cannot name a variable with a dash.
func InputEnvNames(key string) []string {
	upper := strings.ToUpper(key)
	return []string{
		envPrefix + "_" + upper,
		envPrefix + "_" + strings.ReplaceAll(upper, "-", "_"),
	}
}

var inputKeys = []string{
	KeyWorkingDirectory,
	KeyConfigFile,
	KeyCountRunners,
	KeyFollowSymbolicLinks,
	KeyOutputFormat,
}

// LoadRunConfig resolves the RunConfig by layering defaults, an optional
// dotenv file, INPUT_* environment variables and explicitly set flags.
func LoadRunConfig(flags *pflag.FlagSet, envFile string) (RunConfig, error) {
	// 1. Start with the defaults
	config := DefaultRunConfig()

	// 2. A dotenv file only fills variables that are not already set. Its
	// names use underscores (INPUT_COUNT_RUNNERS), see InputEnvNames.
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return RunConfig{}, fmt.Errorf("error loading env file %s: %w", envFile, err)
		}
		logging.Debug("Config", "Loaded inputs from env file %s", envFile)
	}

	// 3. Environment and flags, resolved by viper (changed flags win)
	v, err := newInputReader(flags)
	if err != nil {
		return RunConfig{}, err
	}
	config = applyInputs(config, v)

	// 4. Make paths absolute without touching the process directory
	cwd, err := osGetwd()
	if err != nil {
		return RunConfig{}, fmt.Errorf("could not determine current directory: %w", err)
	}
	config.WorkingDirectory = resolvePath(cwd, config.WorkingDirectory)
	if config.ConfigFile != "" {
		config.ConfigFile = resolvePath(config.WorkingDirectory, config.ConfigFile)
	}

	if err := ValidateRunConfig(config); err != nil {
		return RunConfig{}, err
	}
	return config, nil
}

func newInputReader(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	for _, key := range inputKeys {
		if err := v.BindEnv(append([]string{key}, InputEnvNames(key)...)...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	if flags == nil {
		return v, nil
	}
	for _, key := range inputKeys {
		f := flags.Lookup(key)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}
	return v, nil
}

// applyInputs overlays every input that was provided onto base, field by field.
func applyInputs(base RunConfig, v *viper.Viper) RunConfig {
	config := base

	if wd, ok := lookupString(v, KeyWorkingDirectory); ok {
		config.WorkingDirectory = wd
	}
	if cf, ok := lookupString(v, KeyConfigFile); ok {
		config.ConfigFile = cf
	}
	if raw, ok := lookupString(v, KeyCountRunners); ok {
		config.CountRunners = ParseCountRunners(raw)
	}
	if raw, ok := lookupString(v, KeyFollowSymbolicLinks); ok {
		follow, err := strconv.ParseBool(raw)
		if err != nil {
			logging.Warn("Config", "Ignoring invalid %s value %q, keeping %t", KeyFollowSymbolicLinks, raw, config.FollowSymbolicLinks)
		} else {
			config.FollowSymbolicLinks = follow
		}
	}
	if format, ok := lookupString(v, KeyOutputFormat); ok {
		config.OutputFormat = strings.ToLower(format)
	}

	return config
}

func lookupString(v *viper.Viper, key string) (string, bool) {
	if !v.IsSet(key) {
		return "", false
	}
	s := strings.TrimSpace(v.GetString(key))
	return s, s != ""
}

// ParseCountRunners parses the count-runners input. Anything that is not a
// positive integer disables grouping.
func ParseCountRunners(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		logging.Debug("Config", "count-runners %q is not a number, grouping disabled", raw)
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

// ValidateRunConfig checks the resolved configuration
func ValidateRunConfig(config RunConfig) error {
	if config.WorkingDirectory == "" {
		return fmt.Errorf("working directory must not be empty")
	}
	if !slices.Contains(SupportedOutputFormats(), config.OutputFormat) {
		return fmt.Errorf("unsupported output format %q (supported: %s)",
			config.OutputFormat, strings.Join(SupportedOutputFormats(), ", "))
	}
	return nil
}

func resolvePath(base, p string) string {
	if p == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
