// Package profile provides optional runtime profiling for nova.
//
// Profiling is built on [github.com/pkg/profile] and is only available when
// the binary is built with the pprof build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Start] returns a no-op.
//
// # Modes
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// # Command-Line Usage
//
//	nova --pprof-mode cpu script.nv
//	nova --pprof-mode heap --pprof-dir ./profiles script.nv
//
// Profiles are written to $XDG_CACHE_HOME/nova/pprof by default and can be
// analyzed with go tool pprof:
//
//	go tool pprof -http=: ~/.cache/nova/pprof/cpu.pprof
//
// When built with the pprof tag, this package also imports [net/http/pprof],
// which registers HTTP handlers at /debug/pprof/ on the default mux.
package profile
