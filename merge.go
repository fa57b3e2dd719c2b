package conftree

// Update binds every top-level entry of other into c, in other's insertion
// order. Binding is strict: a key already bound in c fails with
// ErrDuplicateKey, possibly leaving earlier entries applied. Update combines
// disjoint configurations; use OverwriteAll for conflict resolution.
func (c *Configuration) Update(other *Configuration) error {
	for _, key := range other.keys {
		if err := c.bind(key, other.entries[key]); err != nil {
			return err
		}
	}
	return nil
}

// Combine produces a new Configuration holding c's entries followed by
// other's. Key collisions fail with ErrDuplicateKey, like Update.
func (c *Configuration) Combine(other *Configuration) (*Configuration, error) {
	result := New()
	if err := result.Update(c); err != nil {
		return nil, err
	}
	if err := result.Update(other); err != nil {
		return nil, err
	}
	return result, nil
}
