package conftree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDirGlob matches the base configuration file of a directory.
	DefaultDirGlob = "config.*"
	// DefaultDirName is the file DirDumper writes into a directory.
	DefaultDirName = "config.json"
)

// DirLoader assembles one configuration from a directory of files.
//
// The file matching Glob (default "config.*") is the base mapping. Every
// other entry is loaded through the format registry; its stem becomes a new
// top-level key. When the base already binds that key to an option value, the
// entry must be a mapping of option to sub-config and the matching sub-config
// is selected. Sub-directories are assembled recursively.
type DirLoader struct {
	Formats *Registry
	Glob    string
}

// Load reads a directory into a plain nested mapping.
func (l *DirLoader) Load(path string) (map[string]any, error) {
	registry := l.Formats
	if registry == nil {
		registry = DefaultRegistry
	}
	glob := l.Glob
	if glob == "" {
		glob = DefaultDirGlob
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory '%s': %w", path, err)
	}

	base := make(map[string]any)
	baseName := ""
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := filepath.Match(glob, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", glob, err)
		}
		if matched {
			baseName = entry.Name()
			break
		}
	}
	if baseName != "" {
		format, err := registry.ForPath(baseName)
		if err != nil {
			return nil, err
		}
		if base, err = format.Load(filepath.Join(path, baseName)); err != nil {
			return nil, err
		}
	}

	// os.ReadDir sorts by name, so sibling files apply deterministically.
	for _, entry := range entries {
		if entry.Name() == baseName {
			continue
		}

		sub, err := l.loadEntry(registry, filepath.Join(path, entry.Name()), entry.IsDir())
		if err != nil {
			return nil, err
		}

		key := stem(entry.Name())
		option, bound := base[key]
		if !bound {
			base[key] = sub
			continue
		}

		optionKey, ok := option.(string)
		if !ok {
			return nil, fmt.Errorf("%w: value %v for %q in the base config does not name an option in '%s'",
				ErrOptionMismatch, option, key, entry.Name())
		}
		selected, ok := sub[optionKey]
		if !ok {
			return nil, fmt.Errorf("%w: value %q for %q in the base config does not match any of the options in '%s'",
				ErrOptionMismatch, optionKey, key, entry.Name())
		}
		base[key] = selected
	}

	return base, nil
}

func (l *DirLoader) loadEntry(registry *Registry, path string, isDir bool) (map[string]any, error) {
	if isDir {
		return l.Load(path)
	}
	format, err := registry.ForPath(path)
	if err != nil {
		return nil, err
	}
	return format.Load(path)
}

// DirDumper writes a configuration into a directory as a single base file
// (default "config.json").
type DirDumper struct {
	Dumper Dumper
	Name   string
}

// Save writes the mapping into the directory, creating it if needed.
func (d *DirDumper) Save(data map[string]any, path string) error {
	name := d.Name
	if name == "" {
		name = DefaultDirName
	}
	dumper := d.Dumper
	if dumper == nil {
		format, err := DefaultRegistry.ForPath(name)
		if err != nil {
			return err
		}
		dumper = format
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create config directory '%s': %w", path, err)
	}
	return dumper.Save(data, filepath.Join(path, name))
}

// stem strips the final suffix from a file name.
func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
