package cypress

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means no candidate config file exists in the directory.
	ErrNotFound = errors.New("config file not found")
	// ErrAmbiguous means more than one candidate config file exists.
	ErrAmbiguous = errors.New("multiple config files found")
	// ErrNoSupportedConfig means no adapter could be selected.
	ErrNoSupportedConfig = errors.New("no supported Cypress config file found")
)

// TranspileError carries the diagnostics reported while turning a config
// script into a loadable module.
type TranspileError struct {
	File        string
	Diagnostics []string
}

func (e *TranspileError) Error() string {
	return fmt.Sprintf("error transpiling %s: %s", e.File, strings.Join(e.Diagnostics, "; "))
}

// ConfigError wraps a failure to read or interpret a config file.
type ConfigError struct {
	File string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %v", e.File, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
