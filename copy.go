package conftree

// Copy returns a shallow copy: a new Configuration with the same top-level
// bindings. Sub-configurations are shared by reference between the copy and
// the original; this is the only way the API introduces aliasing.
func (c *Configuration) Copy() *Configuration {
	result := New()
	result.keys = append(result.keys, c.keys...)
	for key, value := range c.entries {
		result.entries[key] = value
	}
	return result
}

// DeepCopy returns an independent duplicate of the whole tree. Aliased
// sub-values (possible after shallow copies) are duplicated once and shared
// the same way in the result, so diamond-shaped sharing is preserved rather
// than multiplied.
func (c *Configuration) DeepCopy() *Configuration {
	return c.deepCopy(make(map[*Configuration]*Configuration))
}

func (c *Configuration) deepCopy(memo map[*Configuration]*Configuration) *Configuration {
	if dup, seen := memo[c]; seen {
		return dup
	}

	result := New()
	memo[c] = result
	result.keys = append(result.keys, c.keys...)
	for key, value := range c.entries {
		result.entries[key] = deepCopyValue(value, memo)
	}
	return result
}

func deepCopyValue(value any, memo map[*Configuration]*Configuration) any {
	switch v := value.(type) {
	case *Configuration:
		return v.deepCopy(memo)
	case []any:
		seq := make([]any, len(v))
		for i, element := range v {
			seq[i] = deepCopyValue(element, memo)
		}
		return seq
	default:
		return value
	}
}
