package conftree

import (
	"fmt"
	"os"

	"dario.cat/mergo"
)

// ValidatorFunc validates a fully built Configuration.
type ValidatorFunc func(c *Configuration) error

// Builder provides a fluent interface for assembling a configuration from a
// file, defaults, key modifiers and command-line style overrides.
type Builder struct {
	registry   *Registry
	file       string
	format     Format
	defaults   map[string]any
	modifiers  map[string]string
	overrides  []Entry
	validators []ValidatorFunc
	err        error
}

// NewBuilder creates a builder backed by DefaultRegistry.
func NewBuilder() *Builder {
	return &Builder{registry: DefaultRegistry}
}

// WithRegistry replaces the format registry used for suffix dispatch.
func (b *Builder) WithRegistry(registry *Registry) *Builder {
	b.registry = registry
	return b
}

// WithFile sets the configuration file (or directory) to load.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithFormat forces a format instead of suffix dispatch.
func (b *Builder) WithFormat(format Format) *Builder {
	b.format = format
	return b
}

// WithDefaults sets a plain mapping of default values. Defaults fill in keys
// absent from the loaded data, recursively; loaded values always win.
func (b *Builder) WithDefaults(defaults map[string]any) *Builder {
	b.defaults = defaults
	return b
}

// WithKeyModifiers sets literal substring replacements applied to every key
// on load.
func (b *Builder) WithKeyModifiers(modifiers map[string]string) *Builder {
	b.modifiers = modifiers
	return b
}

// WithOverrides adds KEY=VALUE override tokens, applied in order after
// loading. Values are parsed as JSON literals, falling back to raw strings.
func (b *Builder) WithOverrides(tokens ...string) *Builder {
	entries, err := parseAssignments(tokens)
	if err != nil && b.err == nil {
		b.err = err
		return b
	}
	b.overrides = append(b.overrides, entries...)
	return b
}

// WithValidator adds a validation function run at the end of Build, in the
// order added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build assembles the Configuration.
func (b *Builder) Build() (*Configuration, error) {
	if b.err != nil {
		return nil, b.err
	}

	data := make(map[string]any)
	if b.file != "" {
		loader, err := b.loader()
		if err != nil {
			return nil, err
		}
		if data, err = loader.Load(expandPath(b.file)); err != nil {
			return nil, err
		}
		data = replaceInKeys(data, b.modifiers)
	}

	if b.defaults != nil {
		if err := mergo.Merge(&data, b.defaults); err != nil {
			return nil, fmt.Errorf("failed to merge defaults: %w", err)
		}
	}

	cfg, err := FromMap(data)
	if err != nil {
		return nil, err
	}
	if _, err := cfg.OverwriteEntries(b.overrides); err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Configuration {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return cfg
}

func (b *Builder) loader() (Loader, error) {
	if b.format != nil {
		return b.format, nil
	}
	if info, err := os.Stat(expandPath(b.file)); err == nil && info.IsDir() {
		return &DirLoader{Formats: b.registry}, nil
	}
	return b.registry.ForPath(b.file)
}
