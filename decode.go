package conftree

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Scan decodes the subtree at a dotted base path into the target struct or
// map. The target must be a non-nil pointer. Fields map through the "config"
// struct tag; no weak type coercion is performed, so target field types must
// match the stored values (strings, bool, int64/float64 numbers, slices,
// nested structs for sub-configurations).
func (c *Configuration) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	section := c
	if basePath != "" {
		sub, err := c.Sub(basePath)
		if err != nil {
			return err
		}
		section = sub
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "config",
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(section.ToMap()); err != nil {
		return fmt.Errorf("failed to scan section %q into %T: %w", basePath, target, err)
	}
	return nil
}
