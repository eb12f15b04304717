// Package config resolves the settings of a single cyspec invocation.
//
// Settings are layered, later sources overriding earlier ones:
//
//  1. Defaults (DefaultRunConfig)
//     - follow-symbolic-links: true
//     - count-runners: 0 (no grouping)
//     - output-format: "github" inside GitHub Actions, "json" elsewhere
//
//  2. Dotenv file (--env-file)
//     - Only fills variables that are not already present in the environment
//     - Handy to reproduce a CI run locally
//     - Names use underscores (INPUT_COUNT_RUNNERS), dotenv files cannot
//       contain dashes
//
//  3. Action inputs (INPUT_<NAME> environment variables)
//     - Exactly how GitHub Actions passes `with:` values to a step,
//       for example INPUT_WORKING-DIRECTORY or INPUT_COUNT-RUNNERS
//     - The underscore spelling (INPUT_COUNT_RUNNERS) is read as well
//
//  4. Command-line flags that were explicitly set
//
// # Inputs
//
//	working-directory      directory to search, defaults to the process directory
//	count-runners          number of groups; non-numeric or <= 0 disables grouping
//	follow-symbolic-links  descend into symlinked directories (default true)
//	config-file            explicit config path, skips discovery
//	output-format          github, json, yaml or text
//
// Relative paths are resolved against the process directory (working-directory)
// or the working directory (config-file). The process directory itself is never
// changed.
package config
