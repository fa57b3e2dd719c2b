package conftree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader reads a file (or directory) into a plain nested mapping. Loaders
// never see Configuration internals.
type Loader interface {
	Load(path string) (map[string]any, error)
}

// Dumper writes a plain nested mapping to a file (or directory). Dumpers must
// propagate serialization failures, never swallow them.
type Dumper interface {
	Save(data map[string]any, path string) error
}

// Format is a Loader and Dumper for one file format.
type Format interface {
	Loader
	Dumper
}

// Load reads a configuration through the given loader, applying the key
// modifiers (literal substring replacements on every key at every nesting
// level) before wrapping the result into a Configuration.
func Load(path string, loader Loader, modifiers map[string]string) (*Configuration, error) {
	data, err := loader.Load(expandPath(path))
	if err != nil {
		return nil, err
	}
	return FromMap(replaceInKeys(data, modifiers))
}

// Save writes a configuration through the given dumper, applying the key
// modifiers first. Parent directories are created as needed.
func Save(c *Configuration, path string, dumper Dumper, modifiers map[string]string) error {
	path = expandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory '%s': %w", filepath.Dir(path), err)
	}
	return dumper.Save(replaceInKeys(c.ToMap(), modifiers), path)
}

// Registry maps file suffixes (with leading dot) to formats. It backs both
// the plain-path entry points and the CLI --config dispatch.
type Registry struct {
	formats map[string]Format
}

// NewRegistry creates an empty format registry.
func NewRegistry() *Registry {
	return &Registry{formats: make(map[string]Format)}
}

// Register binds a file suffix (e.g. ".json") to a format, replacing any
// previous binding.
func (r *Registry) Register(suffix string, format Format) {
	r.formats[strings.ToLower(suffix)] = format
}

// ForPath returns the format registered for the path's suffix, or
// ErrUnsupportedFormat listing the supported suffixes.
func (r *Registry) ForPath(path string) (Format, error) {
	suffix := strings.ToLower(filepath.Ext(path))
	format, ok := r.formats[suffix]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, suffix, strings.Join(r.Suffixes(), ", "))
	}
	return format, nil
}

// Suffixes returns the registered suffixes, sorted.
func (r *Registry) Suffixes() []string {
	suffixes := make([]string, 0, len(r.formats))
	for suffix := range r.formats {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// Loaders returns the registry as a suffix-to-Loader mapping, the shape
// consumed by the CLI layer.
func (r *Registry) Loaders() map[string]Loader {
	loaders := make(map[string]Loader, len(r.formats))
	for suffix, format := range r.formats {
		loaders[suffix] = format
	}
	return loaders
}

// DefaultRegistry holds the built-in formats, keyed by suffix.
var DefaultRegistry = func() *Registry {
	r := NewRegistry()
	r.Register(".json", &JSONCodec{})
	r.Register(".yaml", &YAMLCodec{})
	r.Register(".yml", &YAMLCodec{})
	r.Register(".toml", &TOMLCodec{})
	return r
}()

// LoadFile reads a configuration from a file, selecting the format from
// DefaultRegistry by suffix. A directory path is assembled through DirLoader.
func LoadFile(path string, modifiers map[string]string) (*Configuration, error) {
	path = expandPath(path)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return Load(path, &DirLoader{Formats: DefaultRegistry}, modifiers)
	}

	format, err := DefaultRegistry.ForPath(path)
	if err != nil {
		return nil, err
	}
	return Load(path, format, modifiers)
}

// SaveFile writes a configuration to a file, selecting the format from
// DefaultRegistry by suffix.
func SaveFile(c *Configuration, path string, modifiers map[string]string) error {
	format, err := DefaultRegistry.ForPath(path)
	if err != nil {
		return err
	}
	return Save(c, path, format, modifiers)
}

// replaceInKeys applies literal substring replacements to every key at every
// mapping level, longest replacement source first so that overlapping rules
// are deterministic (ties broken lexicographically). Values inside sequences
// are not touched.
func replaceInKeys(data map[string]any, modifiers map[string]string) map[string]any {
	if len(modifiers) == 0 {
		return data
	}

	sources := make([]string, 0, len(modifiers))
	for source := range modifiers {
		sources = append(sources, source)
	}
	sort.Slice(sources, func(i, j int) bool {
		if len(sources[i]) != len(sources[j]) {
			return len(sources[i]) > len(sources[j])
		}
		return sources[i] < sources[j]
	})

	result := data
	for _, source := range sources {
		result = replaceKey(result, source, modifiers[source])
	}
	return result
}

func replaceKey(data map[string]any, source, replacement string) map[string]any {
	result := make(map[string]any, len(data))
	for key, value := range data {
		if nested, ok := value.(map[string]any); ok {
			value = replaceKey(nested, source, replacement)
		}
		result[strings.ReplaceAll(key, source, replacement)] = value
	}
	return result
}

// expandPath resolves a leading "~" against the user's home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
