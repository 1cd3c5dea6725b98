package lang

import (
	"context"
	"log/slog"
)

func (in *Interpreter) evalProgram(
	ctx context.Context,
	prog *Program,
	env *Env,
) (Value, error) {
	// A top-level return ends the program, but goes no further.
	v, _, err := in.evalBody(ctx, prog.Body, env)

	return v, err
}

func (in *Interpreter) evalVarDeclaration(
	ctx context.Context,
	decl *VarDeclaration,
	env *Env,
) (Value, error) {
	var v Value = Null{}

	if decl.Value != nil {
		var err error
		if v, err = in.value(ctx, decl.Value, env); err != nil {
			return nil, err
		}
	}

	v, err := env.Declare(decl.Identifier, v, decl.Constant)
	if err != nil {
		return nil, withPos(err, decl.Pos())
	}

	return v, nil
}

func (in *Interpreter) evalFunctionDeclaration(
	decl *FunctionDeclaration,
	env *Env,
) (Value, error) {
	fn := &Function{Decl: decl, Env: env}

	v, err := env.Declare(decl.Name, fn, true)
	if err != nil {
		return nil, withPos(err, decl.Pos())
	}

	return v, nil
}

func (in *Interpreter) evalClassDeclaration(
	decl *ClassDeclaration,
	env *Env,
) (Value, error) {
	cls := &Class{Decl: decl, Env: env}

	v, err := env.Declare(decl.Name, cls, true)
	if err != nil {
		return nil, withPos(err, decl.Pos())
	}

	return v, nil
}

func (in *Interpreter) evalIfStatement(
	ctx context.Context,
	stmt *IfStatement,
	env *Env,
) (Value, flow, error) {
	test, err := in.value(ctx, stmt.Test, env)
	if err != nil {
		return nil, flowNext, err
	}

	b, ok := test.(Bool)
	if !ok {
		return nil, flowNext, ErrNotBoolean.WithPosition(stmt.Test.Pos()).
			With(slog.String("type", TypeOf(test)))
	}

	switch {
	case bool(b):
		return in.evalBody(ctx, stmt.Body, NewEnv(env))
	case stmt.Alternate != nil:
		return in.evalBody(ctx, stmt.Alternate, NewEnv(env))
	}

	return Null{}, flowNext, nil
}

// evalLoop runs body while test evaluates to want. A test that does not
// evaluate to a boolean ends the loop. Every iteration runs in a fresh
// scope beneath a scope shared by the whole loop.
func (in *Interpreter) evalLoop(
	ctx context.Context,
	test Expr,
	want bool,
	body []Stmt,
	env *Env,
) (Value, flow, error) {
	loop := NewEnv(env)

	for {
		v, err := in.value(ctx, test, loop)
		if err != nil {
			return nil, flowNext, err
		}

		if b, ok := v.(Bool); !ok || bool(b) != want {
			return Null{}, flowNext, nil
		}

		result, f, err := in.evalBody(ctx, body, NewEnv(loop))
		if err != nil {
			return nil, flowNext, err
		}

		if f == flowReturn {
			return result, f, nil
		}
	}
}

func (in *Interpreter) evalForStatement(
	ctx context.Context,
	stmt *ForStatement,
	env *Env,
) (Value, flow, error) {
	loop := NewEnv(env)

	if _, err := in.evalVarDeclaration(ctx, stmt.Init, loop); err != nil {
		return nil, flowNext, err
	}

	for {
		v, err := in.value(ctx, stmt.Test, loop)
		if err != nil {
			return nil, flowNext, err
		}

		if b, ok := v.(Bool); !ok || !bool(b) {
			return Null{}, flowNext, nil
		}

		result, f, err := in.evalBody(ctx, stmt.Body, NewEnv(loop))
		if err != nil {
			return nil, flowNext, err
		}

		if f == flowReturn {
			return result, f, nil
		}

		if _, err := in.value(ctx, stmt.Update, loop); err != nil {
			return nil, flowNext, err
		}
	}
}

func (in *Interpreter) evalTryCatchStatement(
	ctx context.Context,
	stmt *TryCatchStatement,
	env *Env,
) (Value, flow, error) {
	v, f, err := in.evalBody(ctx, stmt.Body, NewEnv(env))
	if err == nil {
		return v, f, nil
	}

	if IsFatal(err) || ctx.Err() != nil {
		return nil, flowNext, err
	}

	in.logger.TraceContext(ctx, "caught error",
		slog.Any("error", err),
		slog.String("at", stmt.Pos().String()),
	)

	v, f, err = in.evalBody(ctx, stmt.Alternate, NewEnv(env))
	if err != nil {
		return nil, flowNext, ErrUnhandledCatch.WithPosition(stmt.Pos()).Wrap(err)
	}

	return v, f, nil
}

// evalReturnStatement evaluates the returned value. Scalars and arrays pass
// through; any other value is replaced by a string naming its type.
func (in *Interpreter) evalReturnStatement(
	ctx context.Context,
	stmt *ReturnStatement,
	env *Env,
) (Value, error) {
	if stmt.Value == nil {
		return Null{}, nil
	}

	v, err := in.value(ctx, stmt.Value, env)
	if err != nil {
		return nil, err
	}

	switch r := v.(type) {
	case Null, Bool, Number, Str:
		return r, nil
	case *Array:
		return &Array{Elements: r.Elements}, nil
	}

	return Str("<type '" + TypeOf(v) + "'>"), nil
}
