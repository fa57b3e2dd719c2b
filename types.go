package conftree

import "fmt"

// Typed accessors over dotted keys. These are strict: the bound value must
// already have the requested dynamic type. Values loaded from files are
// normalized (integers to int64, floats to float64), so the assertions match
// across formats.

// GetString returns the string bound at a dotted key.
func (c *Configuration) GetString(key string) (string, error) {
	value, err := c.Get(key)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("key %q holds %T, not string", key, value)
	}
	return s, nil
}

// GetInt64 returns the integer bound at a dotted key.
func (c *Configuration) GetInt64(key string) (int64, error) {
	value, err := c.Get(key)
	if err != nil {
		return 0, err
	}
	i, ok := value.(int64)
	if !ok {
		return 0, fmt.Errorf("key %q holds %T, not int64", key, value)
	}
	return i, nil
}

// GetFloat64 returns the float bound at a dotted key.
func (c *Configuration) GetFloat64(key string) (float64, error) {
	value, err := c.Get(key)
	if err != nil {
		return 0, err
	}
	f, ok := value.(float64)
	if !ok {
		return 0, fmt.Errorf("key %q holds %T, not float64", key, value)
	}
	return f, nil
}

// GetBool returns the boolean bound at a dotted key.
func (c *Configuration) GetBool(key string) (bool, error) {
	value, err := c.Get(key)
	if err != nil {
		return false, err
	}
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("key %q holds %T, not bool", key, value)
	}
	return b, nil
}

// GetSlice returns the sequence bound at a dotted key.
func (c *Configuration) GetSlice(key string) ([]any, error) {
	value, err := c.Get(key)
	if err != nil {
		return nil, err
	}
	seq, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("key %q holds %T, not a sequence", key, value)
	}
	return seq, nil
}

// Sub returns the sub-configuration bound at a dotted key.
func (c *Configuration) Sub(key string) (*Configuration, error) {
	value, err := c.Get(key)
	if err != nil {
		return nil, err
	}
	sub, ok := value.(*Configuration)
	if !ok {
		return nil, fmt.Errorf("%w: key %q holds %T, not a configuration", ErrMissingKey, key, value)
	}
	return sub, nil
}
