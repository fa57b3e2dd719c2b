package conftree

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// TOMLCodec loads and saves TOML configuration files. Indent is the
// indentation string prefix per nesting level on save (two spaces when
// unset).
type TOMLCodec struct {
	Indent int
}

// Load reads a TOML file into a plain nested mapping.
func (c *TOMLCodec) Load(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	data := make(map[string]any)
	if err := toml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config file '%s': %w", path, err)
	}
	return data, nil
}

// Save writes a plain nested mapping as TOML. Values TOML cannot represent
// (e.g. nil) make the encoder fail, and the failure propagates.
func (c *TOMLCodec) Save(data map[string]any, path string) error {
	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = strings.Repeat(" ", c.indent())
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to marshal config data to TOML: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file '%s': %w", path, err)
	}
	return nil
}

func (c *TOMLCodec) indent() int {
	if c.Indent <= 0 {
		return 2
	}
	return c.Indent
}
