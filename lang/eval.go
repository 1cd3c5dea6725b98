package lang

import (
	"context"
	"fmt"
	"log/slog"
)

// Interpreter evaluates syntax trees.
//
// An Interpreter is not safe for concurrent use; each goroutine should use
// its own.
type Interpreter struct {
	modules moduleCache
	config
	depth     int
	importing []string // paths of files being evaluated, outermost first
}

// New returns an Interpreter configured by opts.
func New(opts ...Option) *Interpreter {
	return &Interpreter{config: makeConfig(opts...)}
}

// Evaluate evaluates node in env using a new Interpreter configured by opts.
func Evaluate(
	ctx context.Context,
	node Node,
	env *Env,
	opts ...Option,
) (Value, error) {
	return New(opts...).Evaluate(ctx, node, env)
}

// Evaluate evaluates node in env and returns its value.
//
// Statements yield the value of the last statement they evaluated, and
// declarations yield the declared value. A return statement outside of any
// function ends evaluation of the enclosing program.
func (in *Interpreter) Evaluate(
	ctx context.Context,
	node Node,
	env *Env,
) (Value, error) {
	v, _, err := in.eval(ctx, node, env)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// Run parses source and evaluates it in a new scope beneath env that records
// path as the current file. An empty path leaves relative imports resolving
// against the working directory.
func (in *Interpreter) Run(
	ctx context.Context,
	source, path string,
	env *Env,
) (Value, error) {
	prog, err := parse(ctx, source, in.logger)
	if err != nil {
		return nil, err
	}

	if path != "" {
		env = NewFileEnv(env, path)

		in.importing = append(in.importing, path)
		defer func() { in.importing = in.importing[:len(in.importing)-1] }()
	}

	return in.Evaluate(ctx, prog, env)
}

// RunFile reads the file at path through the configured [Host] and runs it.
func (in *Interpreter) RunFile(
	ctx context.Context,
	path string,
	env *Env,
) (Value, error) {
	abs, err := in.host.ResolvePath("", path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("path", path))
	}

	source, err := in.host.ReadFile(abs)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("path", abs))
	}

	return in.Run(ctx, source, abs, env)
}

// Call invokes a function value with args.
func (in *Interpreter) Call(
	ctx context.Context,
	fn Value,
	args []Value,
	env *Env,
) (Value, error) {
	return in.call(ctx, fn, args, env)
}

// flow tells statement lists whether to keep going.
type flow int

const (
	flowNext   flow = iota // continue with the next statement
	flowReturn             // unwind to the nearest function call
)

// eval is the single dispatch point for every node kind.
func (in *Interpreter) eval(
	ctx context.Context,
	node Node,
	env *Env,
) (Value, flow, error) {
	if err := ctx.Err(); err != nil {
		return nil, flowNext, err
	}

	var (
		v   Value
		err error
	)

	switch n := node.(type) {
	case *Program:
		v, err = in.evalProgram(ctx, n, env)
	case *VarDeclaration:
		v, err = in.evalVarDeclaration(ctx, n, env)
	case *FunctionDeclaration:
		v, err = in.evalFunctionDeclaration(n, env)
	case *ClassDeclaration:
		v, err = in.evalClassDeclaration(n, env)
	case *IfStatement:
		return in.evalIfStatement(ctx, n, env)
	case *WhileStatement:
		return in.evalLoop(ctx, n.Test, true, n.Body, env)
	case *UntilStatement:
		return in.evalLoop(ctx, n.Test, false, n.Body, env)
	case *ForStatement:
		return in.evalForStatement(ctx, n, env)
	case *TryCatchStatement:
		return in.evalTryCatchStatement(ctx, n, env)
	case *ImportStatement:
		v, err = in.evalImportStatement(ctx, n, env)
	case *ReturnStatement:
		v, err = in.evalReturnStatement(ctx, n, env)
		if err != nil {
			return nil, flowNext, err
		}

		return v, flowReturn, nil
	case *AssignmentExpr:
		v, err = in.evalAssignmentExpr(ctx, n, env)
	case *BinaryExpr:
		v, err = in.evalBinaryExpr(ctx, n, env)
	case *MemberExpr:
		v, err = in.evalMemberExpr(ctx, n, env)
	case *ArrayIndexExpr:
		v, err = in.evalArrayIndexExpr(ctx, n, env)
	case *CallExpr:
		v, err = in.evalCallExpr(ctx, n, env)
	case *NewExpr:
		v, err = in.evalNewExpr(ctx, n, env)
	case *Identifier:
		v, err = env.Lookup(n.Symbol)
		if err != nil {
			err = withPos(err, n.Pos())
		}
	case *NumericLiteral:
		v = Number(n.Value)
	case *StringLiteral:
		v = Str(n.Value)
	case *ObjectLiteral:
		v, err = in.evalObjectLiteral(ctx, n, env)
	case *ArrayLiteral:
		v, err = in.evalArrayLiteral(ctx, n, env)
	default:
		return nil, flowNext, ErrNotInterpretable.With(
			slog.String("node", fmt.Sprintf("%T", node)),
		)
	}

	if err != nil {
		return nil, flowNext, err
	}

	return v, flowNext, nil
}

// value evaluates an expression.
func (in *Interpreter) value(ctx context.Context, expr Expr, env *Env) (Value, error) {
	v, _, err := in.eval(ctx, expr, env)

	return v, err
}

// evalBody evaluates statements in order within scope and yields the value
// of the last one, or null for an empty list. It stops early on error or
// when a return statement fires.
func (in *Interpreter) evalBody(
	ctx context.Context,
	body []Stmt,
	scope *Env,
) (Value, flow, error) {
	var last Value = Null{}

	for _, stmt := range body {
		v, f, err := in.eval(ctx, stmt, scope)
		if err != nil {
			return nil, flowNext, err
		}

		last = v

		if f == flowReturn {
			return last, flowReturn, nil
		}
	}

	return last, flowNext, nil
}

// withPos attaches pos to err unless err already carries a position.
func withPos(err error, pos Position) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}

	if _, has := e.Position(); has {
		return err
	}

	return e.WithPosition(pos)
}
