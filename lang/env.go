package lang

import (
	"log/slog"
	"maps"
	"slices"
)

// Env is a lexical scope: a mapping from names to values with a set of names
// marked constant and an optional parent scope.
//
// Lookups walk outward through parents. Declarations and constant markers
// are strictly local to the scope in which they are made.
type Env struct {
	parent *Env
	vars   map[string]Value
	consts map[string]struct{}
	order  []string
	file   string
}

// NewEnv returns an empty scope whose parent is parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		vars:   make(map[string]Value),
		consts: make(map[string]struct{}),
	}
}

// NewFileEnv returns an empty scope that records path as the file whose
// statements evaluate in it. Relative imports resolve against the
// directory of the nearest recorded file.
func NewFileEnv(parent *Env, path string) *Env {
	e := NewEnv(parent)
	e.file = path

	return e
}

// NewRootEnv returns a scope holding the literals true, false, and null and
// each of the given natives, all declared constant. Natives are declared in
// lexical order of their names.
func NewRootEnv(natives map[string]Value) (*Env, error) {
	root := NewEnv(nil)

	literals := []struct {
		name  string
		value Value
	}{
		{"true", Bool(true)},
		{"false", Bool(false)},
		{"null", Null{}},
	}

	for _, lit := range literals {
		if _, err := root.Declare(lit.name, lit.value, true); err != nil {
			return nil, err
		}
	}

	for _, name := range slices.Sorted(maps.Keys(natives)) {
		if _, err := root.Declare(name, natives[name], true); err != nil {
			return nil, err
		}
	}

	return root, nil
}

// Parent returns the enclosing scope, or nil for a root scope.
func (e *Env) Parent() *Env { return e.parent }

// File returns the path of the file evaluating in the nearest scope that
// recorded one, or "" if none did.
func (e *Env) File() string {
	for s := e; s != nil; s = s.parent {
		if s.file != "" {
			return s.file
		}
	}

	return ""
}

// Declare binds name to value in this scope.
// It fails if name is already declared in this scope, even if the existing
// binding is mutable.
func (e *Env) Declare(name string, value Value, constant bool) (Value, error) {
	if _, ok := e.vars[name]; ok {
		return nil, ErrRedeclared.With(slog.String("name", name))
	}

	if value == nil {
		value = Null{}
	}

	e.vars[name] = value
	e.order = append(e.order, name)

	if constant {
		e.consts[name] = struct{}{}
	}

	return value, nil
}

// Assign rebinds name in the nearest scope that declares it.
func (e *Env) Assign(name string, value Value) (Value, error) {
	scope, err := e.Resolve(name)
	if err != nil {
		return nil, err
	}

	if _, ok := scope.consts[name]; ok {
		return nil, ErrConstAssign.With(slog.String("name", name))
	}

	if value == nil {
		value = Null{}
	}

	scope.vars[name] = value

	return value, nil
}

// Lookup returns the value bound to name in the nearest scope that
// declares it.
func (e *Env) Lookup(name string) (Value, error) {
	scope, err := e.Resolve(name)
	if err != nil {
		return nil, err
	}

	return scope.vars[name], nil
}

// Resolve returns the nearest scope, starting at e, that declares name.
func (e *Env) Resolve(name string) (*Env, error) {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			return s, nil
		}
	}

	return nil, ErrUnresolved.With(slog.String("name", name))
}

// Has reports whether name is declared in this scope.
func (e *Env) Has(name string) bool {
	_, ok := e.vars[name]

	return ok
}

// IsConstant reports whether name is declared constant in this scope.
func (e *Env) IsConstant(name string) bool {
	_, ok := e.consts[name]

	return ok
}

// Names returns the names declared in this scope in declaration order.
func (e *Env) Names() []string { return slices.Clone(e.order) }

// Visible returns every binding reachable from e. Inner declarations shadow
// outer ones.
func (e *Env) Visible() map[string]Value {
	vis := make(map[string]Value)

	for s := e; s != nil; s = s.parent {
		for name, v := range s.vars {
			if _, ok := vis[name]; !ok {
				vis[name] = v
			}
		}
	}

	return vis
}
