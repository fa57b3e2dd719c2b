package conftree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// exit is swapped out in tests.
var exit = os.Exit

// CLI assembles a Configuration from command-line arguments: positional
// KEY=VALUE override tokens plus an optional --config file selected by suffix
// from the Loaders registry. All merge logic is delegated to Configuration.
type CLI struct {
	Loaders map[string]Loader
}

// NewCLI creates a CLI layer. loaders maps file suffixes (".json") to the
// loader for that suffix; with no loaders the --config flag is not offered.
// DefaultRegistry.Loaders() supplies the built-in formats.
func NewCLI(loaders map[string]Loader) *CLI {
	return &CLI{Loaders: loaders}
}

// FromArgs parses args and returns the assembled configuration. A
// caller-supplied FlagSet keeps its own flags and receives the --config flag;
// positional arguments are consumed as KEY=VALUE overrides, each VALUE parsed
// as a JSON literal when possible and kept as a raw string otherwise.
// Overrides are applied to the base configuration in argument order through
// the permissive overwrite path.
func (c *CLI) FromArgs(args []string, fs *pflag.FlagSet) (*Configuration, error) {
	if fs == nil {
		fs = pflag.NewFlagSet("configuration", pflag.ContinueOnError)
	}

	var configPath string
	if len(c.Loaders) > 0 {
		fs.StringVar(&configPath, "config", "", "path to configuration file")
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	overrides, err := parseAssignments(fs.Args())
	if err != nil {
		return nil, err
	}

	cfg := New()
	if configPath != "" {
		loader, ok := c.Loaders[strings.ToLower(filepath.Ext(configPath))]
		if !ok {
			return nil, fmt.Errorf("%w: %q (supported: %s)",
				ErrUnsupportedFormat, filepath.Ext(configPath), strings.Join(c.suffixes(), ", "))
		}
		if cfg, err = Load(configPath, loader, nil); err != nil {
			return nil, err
		}
	}

	if _, err := cfg.OverwriteEntries(overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromCLI is the terminating front-end around FromArgs: any failure becomes
// a usage message on stderr and a non-zero exit instead of an error value.
func (c *CLI) FromCLI(args []string, fs *pflag.FlagSet) *Configuration {
	if fs == nil {
		fs = pflag.NewFlagSet("configuration", pflag.ContinueOnError)
	}

	cfg, err := c.FromArgs(args, fs)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			exit(0)
			return nil
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		fmt.Fprint(os.Stderr, fs.FlagUsages())
		exit(2)
		return nil
	}
	return cfg
}

func (c *CLI) suffixes() []string {
	suffixes := make([]string, 0, len(c.Loaders))
	for suffix := range c.Loaders {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// parseAssignments splits KEY=VALUE tokens on the first "=" and parses each
// value as a JSON literal, falling back to the raw string.
func parseAssignments(tokens []string) ([]Entry, error) {
	entries := make([]Entry, 0, len(tokens))
	for _, token := range tokens {
		key, raw, found := strings.Cut(token, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid override %q, expected KEY=VALUE", token)
		}

		value, ok := parseJSONLiteral(raw)
		if !ok {
			value = raw
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	return entries, nil
}
