package lang

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
)

// evalImportStatement evaluates another source file in its own scope and
// binds the requested names, as constants, into env.
//
// The module path resolves against the directory of the importing file. The
// module scope is a child of env, so module code can see the importer's
// bindings, but only names the module declares itself can be imported.
func (in *Interpreter) evalImportStatement(
	ctx context.Context,
	stmt *ImportStatement,
	env *Env,
) (Value, error) {
	var base string
	if file := env.File(); file != "" {
		base = filepath.Dir(file)
	}

	path, err := in.host.ResolvePath(base, stmt.Source)
	if err != nil {
		return nil, ErrImport.WithPosition(stmt.Pos()).Wrap(err).
			With(slog.String("source", stmt.Source))
	}

	if slices.Contains(in.importing, path) {
		return nil, ErrImport.WithPosition(stmt.Pos()).With(
			slog.String("source", stmt.Source),
			slog.String("cycle", path),
		)
	}

	source, err := in.host.ReadFile(path)
	if err != nil {
		return nil, ErrImport.WithPosition(stmt.Pos()).Wrap(err).
			With(slog.String("source", stmt.Source), slog.String("path", path))
	}

	prog, err := in.modules.parse(ctx, in.config, source)
	if err != nil {
		return nil, inFile(err, path)
	}

	in.logger.TraceContext(ctx, "import",
		slog.String("path", path),
		slog.Bool("wildcard", stmt.Wildcard),
		slog.Any("names", stmt.Names),
	)

	mod := NewFileEnv(env, path)

	in.importing = append(in.importing, path)
	_, _, err = in.eval(ctx, prog, mod)
	in.importing = in.importing[:len(in.importing)-1]

	if err != nil {
		return nil, inFile(err, path)
	}

	names := stmt.Names
	if stmt.Wildcard {
		names = mod.Names()
	}

	for _, name := range names {
		if !mod.Has(name) {
			return nil, ErrNotExported.WithPosition(stmt.Pos()).With(
				slog.String("name", name),
				slog.String("path", path),
			)
		}

		v, _ := mod.Lookup(name)

		if _, err := env.Declare(name, v, true); err != nil {
			return nil, withPos(err, stmt.Pos())
		}
	}

	return Null{}, nil
}
