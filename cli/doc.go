// Package cli contains the command line interface for nova.
//
// # Usage
//
//	nova [flags] [run] SCRIPT.nv   run a script
//	nova [flags]                   start the REPL
//	nova repl                      start the REPL
//	nova ast SCRIPT.nv -f yaml     print the syntax tree
//	nova tokens SCRIPT.nv          print the token stream
//	nova init                      write the configuration file
//
// # Configuration
//
// Flags may also be set in $XDG_CONFIG_HOME/nova/config.yaml. Keys are flag
// names with hyphens or underscores, and nested mappings are joined with
// hyphens:
//
//	log:
//	  level: debug
//	max_depth: 512
//
// Command-line flags override configuration values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output on a terminal
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default
//     $XDG_CACHE_HOME/nova/pprof)
package cli
