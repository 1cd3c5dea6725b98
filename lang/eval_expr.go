package lang

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

func (in *Interpreter) evalAssignmentExpr(
	ctx context.Context,
	expr *AssignmentExpr,
	env *Env,
) (Value, error) {
	id, ok := expr.Target.(*Identifier)
	if !ok {
		return nil, ErrInvalidAssign.WithPosition(expr.Target.Pos()).
			With(slog.String("target", expr.Target.Kind().String()))
	}

	v, err := in.value(ctx, expr.Value, env)
	if err != nil {
		return nil, err
	}

	v, err = env.Assign(id.Symbol, v)
	if err != nil {
		return nil, withPos(err, id.Pos())
	}

	return v, nil
}

// evalBinaryExpr applies an arithmetic or comparison operator.
//
// Arithmetic requires two numbers and otherwise yields null. Comparisons
// always yield a boolean: two strings compare lexically, and any other pair
// compares numerically (see [toNumber]).
func (in *Interpreter) evalBinaryExpr(
	ctx context.Context,
	expr *BinaryExpr,
	env *Env,
) (Value, error) {
	left, err := in.value(ctx, expr.Left, env)
	if err != nil {
		return nil, err
	}

	right, err := in.value(ctx, expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case "+", "-", "*", "/", "%":
		l, lok := left.(Number)
		r, rok := right.(Number)

		if !lok || !rok {
			return Null{}, nil
		}

		return arithmetic(expr.Operator, float64(l), float64(r)), nil

	case "==", "<", ">", "<=", ">=":
		return Bool(compare(expr.Operator, left, right)), nil
	}

	return Null{}, nil
}

func arithmetic(op string, l, r float64) Number {
	switch op {
	case "+":
		return Number(l + r)
	case "-":
		return Number(l - r)
	case "*":
		return Number(l * r)
	case "/":
		return Number(l / r)
	}

	return Number(math.Mod(l, r))
}

func compare(op string, left, right Value) bool {
	var c int

	ls, lok := left.(Str)
	rs, rok := right.(Str)

	if lok && rok {
		c = strings.Compare(string(ls), string(rs))
	} else {
		l, r := toNumber(left), toNumber(right)
		if math.IsNaN(l) || math.IsNaN(r) {
			return false
		}

		switch {
		case l < r:
			c = -1
		case l > r:
			c = 1
		}
	}

	switch op {
	case "==":
		return c == 0
	case "<":
		return c < 0
	case ">":
		return c > 0
	case "<=":
		return c <= 0
	}

	return c >= 0
}

// toNumber views v as a number for comparison. Booleans are 0 or 1, null is
// 0, and strings holding a decimal number are that number. Every other
// value is NaN.
func toNumber(v Value) float64 {
	switch x := v.(type) {
	case Number:
		return float64(x)
	case Bool:
		if x {
			return 1
		}

		return 0
	case Null:
		return 0
	case Str:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return math.NaN()
		}

		return f
	}

	return math.NaN()
}

func (in *Interpreter) evalMemberExpr(
	ctx context.Context,
	expr *MemberExpr,
	env *Env,
) (Value, error) {
	obj, err := in.value(ctx, expr.Object, env)
	if err != nil {
		return nil, err
	}

	var (
		v  Value
		ok bool
	)

	switch o := obj.(type) {
	case *Object:
		v, ok = o.Get(expr.Property)
	case *Instance:
		v, ok = o.Get(expr.Property)
	}

	if !ok {
		return nil, ErrNoProperty.WithPosition(expr.Pos()).With(
			slog.String("property", expr.Property),
			slog.String("type", TypeOf(obj)),
		)
	}

	return v, nil
}

func (in *Interpreter) evalArrayIndexExpr(
	ctx context.Context,
	expr *ArrayIndexExpr,
	env *Env,
) (Value, error) {
	obj, err := in.value(ctx, expr.Object, env)
	if err != nil {
		return nil, err
	}

	arr, ok := obj.(*Array)
	if !ok {
		return nil, ErrNotIndexable.WithPosition(expr.Pos()).
			With(slog.String("type", TypeOf(obj)))
	}

	idx, err := in.value(ctx, expr.Index, env)
	if err != nil {
		return nil, err
	}

	n, ok := idx.(Number)
	if !ok {
		return nil, ErrIndexType.WithPosition(expr.Index.Pos()).
			With(slog.String("type", TypeOf(idx)))
	}

	i := float64(n)
	if i != math.Trunc(i) || i < 0 || i >= float64(len(arr.Elements)) {
		return nil, ErrOutOfBounds.WithPosition(expr.Index.Pos()).With(
			slog.Float64("index", i),
			slog.Int("length", len(arr.Elements)),
		)
	}

	return arr.Elements[int(i)], nil
}

// evalCallExpr evaluates the arguments left to right, then the callee.
func (in *Interpreter) evalCallExpr(
	ctx context.Context,
	expr *CallExpr,
	env *Env,
) (Value, error) {
	args := make([]Value, 0, len(expr.Args))

	for _, a := range expr.Args {
		v, err := in.value(ctx, a, env)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	callee, err := in.value(ctx, expr.Callee, env)
	if err != nil {
		return nil, err
	}

	v, err := in.call(ctx, callee, args, env)
	if err != nil {
		return nil, withPos(err, expr.Pos())
	}

	return v, nil
}

func (in *Interpreter) call(
	ctx context.Context,
	callee Value,
	args []Value,
	env *Env,
) (Value, error) {
	switch fn := callee.(type) {
	case *Native:
		v, err := fn.Call(args, env)
		if err != nil {
			var le *Error
			if errors.As(err, &le) {
				return nil, err
			}

			return nil, ErrNative.Wrap(err).With(slog.String("name", fn.Name))
		}

		if v == nil {
			v = Null{}
		}

		return v, nil

	case *Function:
		if in.depth >= in.maxDepth {
			return nil, ErrMaxDepth.With(
				slog.String("name", fn.Name()),
				slog.Int("depth", in.depth),
			)
		}

		in.depth++
		defer func() { in.depth-- }()

		scope := NewEnv(fn.Env)

		for i, name := range fn.Params() {
			var arg Value = Null{}
			if i < len(args) {
				arg = args[i]
			}

			if _, err := scope.Declare(name, arg, false); err != nil {
				return nil, err
			}
		}

		v, _, err := in.evalBody(ctx, fn.Decl.Body, scope)
		if err != nil {
			return nil, inFile(err, fn.Env.File())
		}

		return v, nil
	}

	return nil, ErrNotCallable.With(slog.String("type", TypeOf(callee)))
}

// evalNewExpr evaluates the arguments, which are not bound to anything, and
// instantiates the named class.
func (in *Interpreter) evalNewExpr(
	ctx context.Context,
	expr *NewExpr,
	env *Env,
) (Value, error) {
	v, err := env.Lookup(expr.ClassName)
	if err != nil {
		return nil, withPos(err, expr.Pos())
	}

	cls, ok := v.(*Class)
	if !ok {
		return nil, ErrNotClass.WithPosition(expr.Pos()).With(
			slog.String("name", expr.ClassName),
			slog.String("type", TypeOf(v)),
		)
	}

	for _, a := range expr.Args {
		if _, err := in.value(ctx, a, env); err != nil {
			return nil, err
		}
	}

	return in.instantiate(ctx, cls)
}

// instantiate creates an instance of cls. Properties are evaluated first,
// then methods are declared, all in a fresh scope beneath the class's
// closure environment.
func (in *Interpreter) instantiate(ctx context.Context, cls *Class) (*Instance, error) {
	inst := &Instance{Class: cls, scope: NewEnv(cls.Env)}

	for _, prop := range cls.Decl.Properties {
		if _, err := in.evalVarDeclaration(ctx, prop, inst.scope); err != nil {
			return nil, err
		}

		inst.keys = append(inst.keys, prop.Identifier)
	}

	for _, method := range cls.Decl.Methods {
		if _, err := in.evalFunctionDeclaration(method, inst.scope); err != nil {
			return nil, err
		}

		inst.keys = append(inst.keys, method.Name)
	}

	in.logger.TraceContext(ctx, "instantiate",
		slog.String("class", cls.Name()),
		slog.Int("member_count", len(inst.keys)),
	)

	return inst, nil
}

func (in *Interpreter) evalObjectLiteral(
	ctx context.Context,
	expr *ObjectLiteral,
	env *Env,
) (Value, error) {
	obj := NewObject()

	for _, prop := range expr.Properties {
		var (
			v   Value
			err error
		)

		if prop.Value == nil {
			v, err = env.Lookup(prop.Key)
			if err != nil {
				return nil, withPos(err, prop.Pos)
			}
		} else if v, err = in.value(ctx, prop.Value, env); err != nil {
			return nil, err
		}

		obj.Set(prop.Key, v)
	}

	return obj, nil
}

func (in *Interpreter) evalArrayLiteral(
	ctx context.Context,
	expr *ArrayLiteral,
	env *Env,
) (Value, error) {
	elems := make([]Value, 0, len(expr.Elements))

	for _, e := range expr.Elements {
		v, err := in.value(ctx, e, env)
		if err != nil {
			return nil, err
		}

		elems = append(elems, v)
	}

	return NewArray(elems...), nil
}
