package conftree

import "errors"

// Sentinel errors returned (wrapped) by this package.
// Use errors.Is to classify failures.
var (
	// ErrInvalidKey indicates a key that does not follow the naming rules:
	// non-empty, starting with a letter, containing only letters, digits
	// and underscores.
	ErrInvalidKey = errors.New("invalid key")

	// ErrDuplicateKey indicates an attempt to bind an already-bound key
	// through the normal insertion path. Use Overwrite instead.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrMissingKey indicates a read, delete or descend into a key that is
	// not bound, or whose parent segment is bound to a non-configuration
	// value.
	ErrMissingKey = errors.New("missing key")

	// ErrUnsupportedFormat indicates a file suffix with no registered
	// loader or dumper.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrOptionMismatch indicates that a directory sub-config file does not
	// contain an entry matching the option selected by the base config.
	ErrOptionMismatch = errors.New("option mismatch")
)
