// Package config loads and validates whisparr configuration.
//
// Defaults are an immutable value produced by Default(); a user TOML file is
// decoded over a copy of it, so any key the user supplies overrides the
// default at that leaf while untouched keys keep their defaults. The rest of
// the program only ever sees the typed Config value.
package config
