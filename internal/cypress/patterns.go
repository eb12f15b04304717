package cypress

import (
	"encoding/json"
	"fmt"
)

// Patterns is a list of glob patterns that config files may spell as a
// single string or as an array of strings.
type Patterns []string

// UnmarshalJSON accepts a string, an array of strings or null.
func (p *Patterns) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := patternsFromValue(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// patternsFromValue normalizes a decoded JSON or script value. nil means the
// field was not given.
func patternsFromValue(v any) (Patterns, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if val == "" {
			return nil, nil
		}
		return Patterns{val}, nil
	case []string:
		return compact(val), nil
	case []any:
		out := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("pattern at index %d is %T, expected string", i, item)
			}
			out = append(out, s)
		}
		return compact(out), nil
	default:
		return nil, fmt.Errorf("pattern is %T, expected string or list of strings", v)
	}
}

// compact drops empty entries; an all-empty list counts as not given.
func compact(in []string) Patterns {
	out := make(Patterns, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// orDefault returns p when it was given, otherwise a copy of def.
func (p Patterns) orDefault(def []string) []string {
	if len(p) > 0 {
		return append([]string{}, p...)
	}
	return append([]string{}, def...)
}
