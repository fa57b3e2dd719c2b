package conftree

import (
	"fmt"
	"strings"
	"unicode"
)

// resolveMode selects the behavior of resolve when an intermediate path
// segment is not bound.
type resolveMode int

const (
	// resolveRead fails with ErrMissingKey on unbound intermediate segments.
	resolveRead resolveMode = iota
	// resolveCreate inserts empty sub-configurations for unbound
	// intermediate segments.
	resolveCreate
)

// splitKey turns a dotted key into its path segments. A key without dots
// yields a single segment.
func splitKey(key string) []string {
	return strings.Split(key, ".")
}

// resolve walks all but the last segment of path from c and returns the
// sub-configuration that owns the final segment, together with that leaf
// segment. In resolveCreate mode, unbound intermediate segments are bound to
// new empty sub-configurations (subject to key validation). A segment that is
// bound to a non-configuration value cannot be descended into and fails with
// ErrMissingKey in either mode.
func (c *Configuration) resolve(path []string, mode resolveMode) (*Configuration, string, error) {
	if len(path) == 0 {
		return nil, "", fmt.Errorf("%w: empty path", ErrMissingKey)
	}

	owner := c
	for _, segment := range path[:len(path)-1] {
		value, bound := owner.entries[segment]
		if !bound {
			if mode != resolveCreate {
				return nil, "", fmt.Errorf("%w: %q", ErrMissingKey, segment)
			}
			if err := owner.bind(segment, New()); err != nil {
				return nil, "", err
			}
			// bind stores a normalized copy; descend into the stored child,
			// not the detached original.
			owner = owner.entries[segment].(*Configuration)
			continue
		}

		sub, ok := value.(*Configuration)
		if !ok {
			// Bound to a scalar or sequence, cannot hold sub-keys.
			return nil, "", fmt.Errorf("%w: %q", ErrMissingKey, segment)
		}
		owner = sub
	}

	return owner, path[len(path)-1], nil
}

// validateKey checks a single leaf key against the naming rules.
func validateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("%w: key is empty", ErrInvalidKey)
	}

	for i, r := range key {
		if i == 0 {
			if !unicode.IsLetter(r) {
				return fmt.Errorf("%w: %q does not start with a letter", ErrInvalidKey, key)
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return fmt.Errorf("%w: %q contains symbols that are not allowed", ErrInvalidKey, key)
		}
	}

	return nil
}
