// Package normalization turns loosely typed strings (query parameters, cookie
// values, YAML fields) into typed enum values.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Func rewrites a raw string before lookup.
type Func func(string) string

// Normalizer provides type-safe string-to-enum normalization.
type Normalizer[T comparable] struct {
	validValues  map[string]T
	defaultValue T
	validKeys    []string
	clean        Func
}

// Option customizes a Normalizer.
type Option func(*options)

type options struct {
	clean Func
}

// Exact disables case folding; only surrounding whitespace is trimmed.
// Used where the browser sends values verbatim and mixed case must not match.
func Exact() Option {
	return func(o *options) { o.clean = strings.TrimSpace }
}

// WithFunc installs a custom cleaning function.
func WithFunc(fn Func) Option {
	return func(o *options) { o.clean = fn }
}

// NewNormalizer creates a normalizer with a map of valid string->value pairs.
// By default keys and inputs are trimmed and lower-cased.
func NewNormalizer[T comparable](values map[string]T, defaultValue T, opts ...Option) *Normalizer[T] {
	o := options{clean: defaultNormalization}
	for _, opt := range opts {
		opt(&o)
	}

	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))
	for k, v := range values {
		key := o.clean(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
		clean:        o.clean,
	}
}

// Normalize converts raw to the enum type, falling back to the default.
func (n *Normalizer[T]) Normalize(raw string) T {
	if value, ok := n.Lookup(raw); ok {
		return value
	}
	return n.defaultValue
}

// Lookup reports whether raw names a valid value.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	value, ok := n.validValues[n.clean(raw)]
	return value, ok
}

// NormalizeWithError converts raw to the enum type or explains what was expected.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	if value, ok := n.Lookup(raw); ok {
		return value, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q, valid options: %v", raw, n.validKeys)
}

// ValidKeys returns all valid normalized keys in sorted order.
func (n *Normalizer[T]) ValidKeys() []string {
	result := make([]string, len(n.validKeys))
	copy(result, n.validKeys)
	return result
}

func defaultNormalization(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
