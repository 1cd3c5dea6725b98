package lang

import (
	"iter"
	"slices"
)

//go:generate go tool stringer -type=Type -linecomment -output=value_string.go

// Type identifies the runtime type of a [Value]. Its string form is the name
// reported by the type() builtin.
type Type int

// Value types.
const (
	TypeNull     Type = iota // null
	TypeNumber               // number
	TypeBoolean              // boolean
	TypeString               // string
	TypeArray                // array
	TypeObject               // object
	TypeFunction             // function
	TypeNative               // native-fn
	TypeClass                // class
	TypeInstance             // class-obj
)

// Value is a runtime value.
type Value interface {
	Type() Type
}

// Null is the absent value.
type Null struct{}

// Bool is a boolean value.
type Bool bool

// Number is a double-precision floating point value.
type Number float64

// Str is a string value.
type Str string

// Array is an ordered, growable list of values. Arrays are shared by
// reference.
type Array struct {
	Elements []Value
}

// NewArray returns an array holding elems.
func NewArray(elems ...Value) *Array {
	if elems == nil {
		elems = make([]Value, 0)
	}

	return &Array{Elements: elems}
}

// Object is a mapping from property names to values that remembers
// insertion order.
type Object struct {
	props map[string]Value
	keys  []string
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{props: make(map[string]Value)}
}

// Set binds key to v, appending key to the iteration order if it is new.
func (o *Object) Set(key string, v Value) *Object {
	if _, ok := o.props[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.props[key] = v

	return o
}

// Get returns the value bound to key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.props[key]

	return v, ok
}

// Keys returns the property names in insertion order.
func (o *Object) Keys() []string { return slices.Clone(o.keys) }

// Len returns the number of properties.
func (o *Object) Len() int { return len(o.keys) }

// All iterates properties in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range o.keys {
			if !yield(k, o.props[k]) {
				return
			}
		}
	}
}

// Function is a user-defined function closed over the environment in which
// it was declared.
type Function struct {
	Env  *Env
	Decl *FunctionDeclaration
}

// Name returns the declared function name.
func (f *Function) Name() string { return f.Decl.Name }

// Params returns the declared parameter names.
func (f *Function) Params() []string { return f.Decl.Parameters }

// NativeFunc is the signature of functions implemented in Go.
type NativeFunc func(args []Value, env *Env) (Value, error)

// Native is a function implemented in Go.
type Native struct {
	Call NativeFunc
	Name string
}

// NewNative returns a native function value.
func NewNative(name string, fn NativeFunc) *Native {
	return &Native{Name: name, Call: fn}
}

// Class is a class declaration closed over the environment in which it was
// declared.
type Class struct {
	Env  *Env
	Decl *ClassDeclaration
}

// Name returns the declared class name.
func (c *Class) Name() string { return c.Decl.Name }

// Instance is an object created by instantiating a [Class]. Its members live
// in a dedicated scope whose parent is the class's closure environment, so
// methods see the instance's properties as variables.
type Instance struct {
	Class *Class
	scope *Env
	keys  []string
}

// Get returns the member named key.
func (i *Instance) Get(key string) (Value, bool) {
	if !i.scope.Has(key) {
		return nil, false
	}

	v, err := i.scope.Lookup(key)
	if err != nil {
		return nil, false
	}

	return v, true
}

// Keys returns the member names, properties first, in declaration order.
func (i *Instance) Keys() []string { return slices.Clone(i.keys) }

// All iterates members in declaration order.
func (i *Instance) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range i.keys {
			v, _ := i.Get(k)
			if !yield(k, v) {
				return
			}
		}
	}
}

func (Null) Type() Type      { return TypeNull }
func (Bool) Type() Type      { return TypeBoolean }
func (Number) Type() Type    { return TypeNumber }
func (Str) Type() Type       { return TypeString }
func (*Array) Type() Type    { return TypeArray }
func (*Object) Type() Type   { return TypeObject }
func (*Function) Type() Type { return TypeFunction }
func (*Native) Type() Type   { return TypeNative }
func (*Class) Type() Type    { return TypeClass }
func (*Instance) Type() Type { return TypeInstance }

// TypeOf returns the type name of v. A nil Value is null.
func TypeOf(v Value) string {
	if v == nil {
		return TypeNull.String()
	}

	return v.Type().String()
}
