package config

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// OptionError reports a tool option with an unusable value.
type OptionError struct {
	Key    string // Normalized option name
	Value  any    // Offending value
	Reason string // What was expected
}

// Error implements the error interface for OptionError.
func (e *OptionError) Error() string {
	return fmt.Sprintf("option %q: %s (got %v)", e.Key, e.Reason, e.Value)
}

// NormalizeKey maps the dash spelling of an option onto the underscore one, so
// "remove-unused-variables" and "remove_unused_variables" are the same key.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.TrimSpace(key), "-", "_")
}

// Options is one tool's section of the config file. Keys are normalized at
// construction and the values are never modified afterwards.
type Options struct {
	values map[string]any
}

// NewOptions copies raw into an Options, normalizing every key. When two
// spellings of one key are present the underscore spelling wins.
func NewOptions(raw map[string]any) Options {
	values := make(map[string]any, len(raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	// Dash spellings sort before underscores, so underscore keys land last.
	sort.Strings(keys)
	for _, k := range keys {
		values[NormalizeKey(k)] = copyValue(raw[k])
	}
	return Options{values: values}
}

func copyValue(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = copyValue(val[i])
		}
		return out
	case []string:
		return append([]string(nil), val...)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = copyValue(inner)
		}
		return out
	default:
		return v
	}
}

// Len returns the number of options.
func (o Options) Len() int {
	return len(o.values)
}

// Has reports whether key is set in either spelling.
func (o Options) Has(key string) bool {
	_, ok := o.values[NormalizeKey(key)]
	return ok
}

// Get returns the raw value for key.
func (o Options) Get(key string) (any, bool) {
	v, ok := o.values[NormalizeKey(key)]
	return copyValue(v), ok
}

// Keys returns the normalized keys in sorted order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o.values))
	for k := range o.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the normalized options.
func (o Options) Map() map[string]any {
	out := make(map[string]any, len(o.values))
	for k, v := range o.values {
		out[k] = copyValue(v)
	}
	return out
}

// Bool returns the boolean option key, or def when unset.
func (o Options) Bool(key string, def bool) (bool, error) {
	v, ok := o.values[NormalizeKey(key)]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return def, &OptionError{Key: NormalizeKey(key), Value: v, Reason: "expected a boolean"}
	}
	return b, nil
}

// String returns the string option key, or def when unset.
func (o Options) String(key string, def string) (string, error) {
	v, ok := o.values[NormalizeKey(key)]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return def, &OptionError{Key: NormalizeKey(key), Value: v, Reason: "expected a string"}
	}
	return s, nil
}

// Int returns the integer option key, or def when unset.
func (o Options) Int(key string, def int) (int, error) {
	v, ok := o.values[NormalizeKey(key)]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	}
	return def, &OptionError{Key: NormalizeKey(key), Value: v, Reason: "expected an integer"}
}

// Strings returns the string list option key. A single string is treated as a
// one-element list. The second return value reports whether key was set.
func (o Options) Strings(key string) ([]string, bool, error) {
	v, ok := o.values[NormalizeKey(key)]
	if !ok {
		return nil, false, nil
	}
	switch list := v.(type) {
	case string:
		return []string{list}, true, nil
	case []string:
		return append([]string(nil), list...), true, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, true, &OptionError{Key: NormalizeKey(key), Value: v, Reason: "expected a list of strings"}
			}
			out = append(out, s)
		}
		return out, true, nil
	default:
		return nil, true, &OptionError{Key: NormalizeKey(key), Value: v, Reason: "expected a list of strings"}
	}
}

// PathOverride returns the tool-specific source paths from src_paths, or
// src_dirs when src_paths is absent.
func (o Options) PathOverride() ([]string, bool, error) {
	for _, key := range []string{"src_paths", "src_dirs"} {
		paths, ok, err := o.Strings(key)
		if ok || err != nil {
			return paths, ok, err
		}
	}
	return nil, false, nil
}
