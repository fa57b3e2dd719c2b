package conftree

// Entry is an ordered key/value pair for batch overwrites. The key may be a
// dotted path.
type Entry struct {
	Key   string
	Value any
}

// Overwrite re-binds the value at a dotted key, returning the previous value
// (nil if the key was not bound).
//
// When the old value is a sub-configuration and the new value is
// mapping-shaped, the new entries are recursively overwritten into the old
// sub-configuration instead of replacing it, so unrelated keys of the subtree
// survive. The returned old value is then the mapping of previous values
// reported by that recursive overwrite.
func (c *Configuration) Overwrite(key string, value any) (any, error) {
	return c.OverwriteAt(splitKey(key), value)
}

// OverwriteAt is Overwrite for an explicit segment path.
func (c *Configuration) OverwriteAt(path []string, value any) (any, error) {
	owner, leaf, err := c.resolve(path, resolveCreate)
	if err != nil {
		return nil, err
	}
	return owner.overwriteLeaf(leaf, value)
}

func (c *Configuration) overwriteLeaf(key string, value any) (any, error) {
	old, bound := c.entries[key]

	if sub, isSub := old.(*Configuration); bound && isSub {
		if mapping, isMapping := asMapping(value); isMapping {
			// Deep-merge-by-overwrite: update the matching keys of the old
			// subtree and rebind the subtree itself, not the flat mapping.
			// The merge runs on a copy so a failing entry leaves the
			// original subtree intact.
			merged := sub.DeepCopy()
			previous, err := merged.OverwriteAll(mapping)
			if err != nil {
				return nil, err
			}
			c.remove(key)
			if err := c.bind(key, merged); err != nil {
				return nil, err
			}
			return previous, nil
		}
	}

	// Normalization can reject the value; the old binding must survive that.
	normalized, err := normalizeValue(value)
	if err != nil {
		return nil, err
	}
	if bound {
		c.remove(key)
	}
	if err := c.bind(key, normalized); err != nil {
		return nil, err
	}
	return old, nil
}

// OverwriteAll overwrites every entry of a plain mapping, in sorted key order
// for determinism, and returns the previous value per key (nil where the key
// was not bound). It behaves exactly like calling Overwrite once per entry.
func (c *Configuration) OverwriteAll(data map[string]any) (map[string]any, error) {
	oldValues := make(map[string]any, len(data))
	for _, key := range sortedKeys(data) {
		old, err := c.Overwrite(key, data[key])
		if err != nil {
			return nil, err
		}
		oldValues[key] = old
	}
	return oldValues, nil
}

// OverwriteEntries overwrites an ordered list of entries. Later entries win
// when the same key appears more than once; the reported old value for a key
// is the one captured by its last overwrite.
func (c *Configuration) OverwriteEntries(entries []Entry) (map[string]any, error) {
	oldValues := make(map[string]any, len(entries))
	for _, entry := range entries {
		old, err := c.Overwrite(entry.Key, entry.Value)
		if err != nil {
			return nil, err
		}
		oldValues[entry.Key] = old
	}
	return oldValues, nil
}
