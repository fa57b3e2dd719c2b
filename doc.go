// Package conftree provides a hierarchical configuration tree with dotted-key
// access, write-once-then-explicit-overwrite semantics, format-agnostic file
// I/O (JSON, YAML, TOML, directories of files) and command-line override
// merging.
//
// Features:
//   - Ordered, recursive string-keyed mapping with dotted and segment-path access
//   - First-bind-only insertion; explicit Overwrite path with recursive merge
//   - Strict Update/Combine for disjoint configurations
//   - Shallow and memoized deep copies
//   - Key modifiers (literal substring replacement) on load and save
//   - Suffix-based format registry shared by file I/O and the CLI layer
//   - Directory assembly with option selection per sub-file
//   - KEY=VALUE command-line overrides with JSON literal values
//   - Struct decoding and a fluent builder with defaults and discovery
//
// Quick start:
//
//	cfg, err := conftree.LoadFile("config.yaml", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	host, _ := cfg.GetString("server.host")
//	port, _ := cfg.GetInt64("server.port")
//
//	if err := cfg.Set("server.tls", true); err != nil { ... } // first bind
//	old, err := cfg.Overwrite("server.port", 9090)            // explicit re-bind
//
// Command-line overrides:
//
//	cli := conftree.NewCLI(conftree.DefaultRegistry.Loaders())
//	cfg := cli.FromCLI(os.Args[1:], nil) // a.b=1 c=hello --config base.json
//
// Configurations are not safe for concurrent mutation; callers must not share
// a tree across concurrent writers.
package conftree
