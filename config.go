package conftree

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Configuration is an ordered mapping from string keys to values. A value is
// either a scalar (bool, int64, float64, string, nil), a []any of scalars and
// sub-configurations, or a nested *Configuration.
//
// Keys are bound once: re-binding an existing key through Set fails with
// ErrDuplicateKey and requires the explicit Overwrite path. Every mapping
// value assigned through any insertion point is normalized into a nested
// *Configuration, so the whole tree is uniformly typed and exclusively owned
// by its root.
type Configuration struct {
	keys    []string
	entries map[string]any
}

// New creates an empty Configuration.
func New() *Configuration {
	return &Configuration{
		entries: make(map[string]any),
	}
}

// FromMap creates a Configuration from a plain nested mapping, wrapping every
// nested string-keyed map into a sub-configuration. Since Go maps carry no
// order, keys are inserted in sorted order for determinism.
func FromMap(data map[string]any) (*Configuration, error) {
	c := New()
	for _, key := range sortedKeys(data) {
		if err := c.SetAt(splitKey(key), data[key]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Get returns the value bound at a dotted key.
func (c *Configuration) Get(key string) (any, error) {
	return c.GetAt(splitKey(key))
}

// GetAt returns the value bound at an explicit segment path. Resolution never
// creates intermediate sub-configurations; an unbound segment or a descend
// into a non-configuration value fails with ErrMissingKey.
func (c *Configuration) GetAt(path []string) (any, error) {
	owner, leaf, err := c.resolve(path, resolveRead)
	if err != nil {
		return nil, err
	}
	value, bound := owner.entries[leaf]
	if !bound {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, leaf)
	}
	return value, nil
}

// Set binds a value at a dotted key. The key must not already be bound; use
// Overwrite for re-binding.
func (c *Configuration) Set(key string, value any) error {
	return c.SetAt(splitKey(key), value)
}

// SetAt binds a value at an explicit segment path, creating intermediate
// sub-configurations as needed.
func (c *Configuration) SetAt(path []string, value any) error {
	owner, leaf, err := c.resolve(path, resolveCreate)
	if err != nil {
		return err
	}
	return owner.bind(leaf, value)
}

// Delete removes the binding at a dotted key.
func (c *Configuration) Delete(key string) error {
	return c.DeleteAt(splitKey(key))
}

// DeleteAt removes the binding at an explicit segment path.
func (c *Configuration) DeleteAt(path []string) error {
	owner, leaf, err := c.resolve(path, resolveRead)
	if err != nil {
		return err
	}
	if _, bound := owner.entries[leaf]; !bound {
		return fmt.Errorf("%w: %q", ErrMissingKey, leaf)
	}
	owner.remove(leaf)
	return nil
}

// Has reports whether a dotted key resolves to a bound value.
func (c *Configuration) Has(key string) bool {
	return c.HasAt(splitKey(key))
}

// HasAt reports whether an explicit segment path resolves to a bound value.
func (c *Configuration) HasAt(path []string) bool {
	_, err := c.GetAt(path)
	return err == nil
}

// Len returns the number of top-level bound keys (not recursive).
func (c *Configuration) Len() int {
	return len(c.keys)
}

// Keys returns the top-level keys in insertion order.
func (c *Configuration) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// ToMap converts the configuration tree back into a plain nested mapping.
// Sub-configurations become map[string]any at every level, including inside
// sequences. This is the form consumed by Dumpers.
func (c *Configuration) ToMap() map[string]any {
	data := make(map[string]any, len(c.keys))
	for _, key := range c.keys {
		data[key] = unwrapValue(c.entries[key])
	}
	return data
}

// String renders the configuration as "{key: value, ...}" in insertion order.
func (c *Configuration) String() string {
	parts := make([]string, 0, len(c.keys))
	for _, key := range c.keys {
		parts = append(parts, fmt.Sprintf("%s: %v", key, c.entries[key]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// bind validates the leaf key and binds the normalized value, failing with
// ErrDuplicateKey when the key is already bound.
func (c *Configuration) bind(key string, value any) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if _, bound := c.entries[key]; bound {
		return fmt.Errorf("%w: %q already defined, use Overwrite instead", ErrDuplicateKey, key)
	}

	normalized, err := normalizeValue(value)
	if err != nil {
		return err
	}
	c.entries[key] = normalized
	c.keys = append(c.keys, key)
	return nil
}

// remove drops a bound leaf key, keeping insertion order of the rest.
func (c *Configuration) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

// normalizeValue converts a value into the uniform in-tree representation:
// string-keyed maps of any kind become sub-configurations, slices are copied
// with their elements normalized, integer kinds widen to int64 and float32 to
// float64. *Configuration values are deep-copied so that no sharing is
// introduced between trees.
func normalizeValue(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *Configuration:
		return v.DeepCopy(), nil
	case map[string]any:
		return FromMap(v)
	case bool, string, int64, float64:
		return v, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case float32:
		return float64(v), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: mapping with non-string keys (%T)", ErrInvalidKey, value)
		}
		data := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			data[iter.Key().String()] = iter.Value().Interface()
		}
		return FromMap(data)
	case reflect.Slice, reflect.Array:
		seq := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			element, err := normalizeValue(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			seq[i] = element
		}
		return seq, nil
	}

	// Anything else is kept as an opaque scalar; dumpers reject what they
	// cannot serialize.
	return value, nil
}

// unwrapValue is the inverse of normalizeValue for container types.
func unwrapValue(value any) any {
	switch v := value.(type) {
	case *Configuration:
		return v.ToMap()
	case []any:
		seq := make([]any, len(v))
		for i, element := range v {
			seq[i] = unwrapValue(element)
		}
		return seq
	default:
		return value
	}
}

// asMapping reports whether a value is mapping-shaped and returns it as a
// plain string-keyed map. Used by the overwrite merge path.
func asMapping(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case *Configuration:
		return v.ToMap(), true
	case map[string]any:
		return v, true
	}

	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	data := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		data[iter.Key().String()] = iter.Value().Interface()
	}
	return data, true
}

func sortedKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
