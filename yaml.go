package conftree

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// missedFloats matches float literals the YAML 1.1 implicit resolver leaves
// as strings: bare exponents ("1e5"), leading-dot forms and underscore
// digit separators.
var missedFloats = regexp.MustCompile(`^[-+]?(` +
	`[0-9][0-9_]*\.[0-9_]*([eE][0-9]+)?` +
	`|\.[0-9][0-9_]*([eE][0-9]+)?` +
	`|[0-9][0-9_]*[eE][-+]?[0-9]+` +
	`)$`)

// YAMLCodec loads and saves YAML configuration files (safe subset: mappings,
// sequences and scalars only).
//
// On load, plain scalars in the edge-case float forms missed by the resolver
// are recognized as floats; quoted strings are never converted. On save,
// Indent is the number of spaces per nesting level (2 when unset) and
// SortKeys selects sorted key order; without it keys are written in Go map
// iteration order.
type YAMLCodec struct {
	Indent   int
	SortKeys bool
}

// Load reads a YAML file into a plain nested mapping.
func (c *YAMLCodec) Load(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config file '%s': %w", path, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return map[string]any{}, nil
	}

	value, err := yamlValue(root.Content[0])
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML config file '%s': %w", path, err)
	}
	data, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("config file '%s' does not contain a mapping", path)
	}
	return data, nil
}

// Save writes a plain nested mapping as YAML.
func (c *YAMLCodec) Save(data map[string]any, path string) error {
	node, err := yamlNode(data, c.SortKeys)
	if err != nil {
		return fmt.Errorf("failed to marshal config data to YAML: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(c.indent())
	if err := encoder.Encode(node); err != nil {
		return fmt.Errorf("failed to marshal config data to YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to marshal config data to YAML: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file '%s': %w", path, err)
	}
	return nil
}

func (c *YAMLCodec) indent() int {
	if c.Indent <= 0 {
		return 2
	}
	return c.Indent
}

// yamlValue converts a decoded node tree into plain Go values. Working at the
// node level keeps the missed-float fix limited to plain (unquoted) scalars.
func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		data := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, err
			}
			value, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			data[key] = value
		}
		return data, nil
	case yaml.SequenceNode:
		seq := make([]any, len(n.Content))
		for i, element := range n.Content {
			value, err := yamlValue(element)
			if err != nil {
				return nil, err
			}
			seq[i] = value
		}
		return seq, nil
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	default:
		if n.Tag == "!!str" && n.Style == 0 && missedFloats.MatchString(n.Value) {
			if f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64); err == nil {
				return f, nil
			}
		}
		var value any
		if err := n.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	}
}

// yamlNode builds the node tree for encoding, controlling map key order.
func yamlNode(value any, sortKeys bool) (*yaml.Node, error) {
	switch v := value.(type) {
	case map[string]any:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		if sortKeys {
			keys = sortedKeys(v)
		}
		for _, key := range keys {
			child, err := yamlNode(v[key], sortKeys)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, element := range v {
			child, err := yamlNode(element, sortKeys)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return node, nil
	}
}
