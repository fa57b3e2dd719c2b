package conftree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// JSONCodec loads and saves JSON configuration files.
//
// Numbers are decoded through json.Number and normalized to int64 when
// integral, float64 otherwise. On save, Indent is the number of spaces per
// nesting level (2 when unset) and SortKeys selects sorted key order; without
// it keys are written in Go map iteration order.
type JSONCodec struct {
	Indent   int
	SortKeys bool
}

// Load reads a JSON file into a plain nested mapping.
func (c *JSONCodec) Load(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	data := make(map[string]any)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config file '%s': %w", path, err)
	}

	return decodeNumbers(data).(map[string]any), nil
}

// Save writes a plain nested mapping as JSON.
func (c *JSONCodec) Save(data map[string]any, path string) error {
	rendered, err := c.Marshal(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, rendered, 0644); err != nil {
		return fmt.Errorf("failed to write config file '%s': %w", path, err)
	}
	return nil
}

// Marshal renders a plain nested mapping as JSON text.
func (c *JSONCodec) Marshal(data map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, data, c.SortKeys, strings.Repeat(" ", c.indent()), ""); err != nil {
		return nil, fmt.Errorf("failed to marshal config data to JSON: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (c *JSONCodec) indent() int {
	if c.Indent <= 0 {
		return 2
	}
	return c.Indent
}

// appendJSON emits a value as indented JSON, controlling map key order
// (encoding/json always sorts map keys, which would defeat the SortKeys
// option).
func appendJSON(buf *bytes.Buffer, value any, sortKeys bool, unit, indent string) error {
	switch v := value.(type) {
	case map[string]any:
		if len(v) == 0 {
			buf.WriteString("{}")
			return nil
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		if sortKeys {
			keys = sortedKeys(v)
		}
		buf.WriteString("{\n")
		inner := indent + unit
		for i, key := range keys {
			buf.WriteString(inner)
			encodedKey, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(encodedKey)
			buf.WriteString(": ")
			if err := appendJSON(buf, v[key], sortKeys, unit, inner); err != nil {
				return err
			}
			if i < len(keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(indent + "}")
	case []any:
		if len(v) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		inner := indent + unit
		for i, element := range v {
			buf.WriteString(inner)
			if err := appendJSON(buf, element, sortKeys, unit, inner); err != nil {
				return err
			}
			if i < len(v)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(indent + "]")
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	}
	return nil
}

// decodeNumbers replaces json.Number values with int64 or float64 throughout
// a decoded tree.
func decodeNumbers(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		f, _ := v.Float64()
		return f
	case map[string]any:
		for key, element := range v {
			v[key] = decodeNumbers(element)
		}
		return v
	case []any:
		for i, element := range v {
			v[i] = decodeNumbers(element)
		}
		return v
	default:
		return value
	}
}

// parseJSONLiteral parses a string as a JSON literal (number, bool, null,
// quoted string, array or object). The second return reports success.
func parseJSONLiteral(s string) (any, bool) {
	decoder := json.NewDecoder(strings.NewReader(s))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, false
	}
	// Reject trailing garbage such as "1abc".
	if decoder.More() {
		return nil, false
	}
	return decodeNumbers(value), true
}
