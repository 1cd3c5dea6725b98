// Package cmd implements the nova subcommands.
//
// Each command is a kong command struct whose Run method receives the
// command context and the shared interpreter flags ([Interp]):
//
//   - [Run] runs a script, or starts the REPL when no script is given
//   - [Repl] starts the interactive REPL
//   - [AST] prints the syntax tree of a script as JSON or YAML
//   - [Tokens] prints the token stream of a script
//   - [Init] writes a configuration file with the current flag values
package cmd

// Identifiers of kong variables set by the CLI.
const (
	// CacheIdentifier names the variable holding the cache directory path.
	CacheIdentifier = "cache"
	// ConfigIdentifier names the variable holding the configuration file
	// path.
	ConfigIdentifier = "config"
	// HistoryIdentifier names the variable holding the REPL history file
	// path.
	HistoryIdentifier = "history"
)
