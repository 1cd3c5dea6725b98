package lang

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"github.com/klauspost/readahead"

	"github.com/ardnew/nova/log"
)

// ParseReader parses a Program from an io.Reader.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Program, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return Parse(ctx, string(data), opts...)
}

// Parse tokenizes and parses source text into a Program.
//
// Parsing stops at the first lexical or syntax error. Non-fatal findings,
// such as a constant declared without a value, are recorded in
// [Program.Diagnostics].
func Parse(ctx context.Context, source string, opts ...Option) (*Program, error) {
	cfg := makeConfig(opts...)

	return parse(ctx, source, cfg.logger)
}

func parse(ctx context.Context, source string, logger log.Logger) (*Program, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}

	logger.TraceContext(ctx, "tokenize complete",
		slog.Int("token_count", len(tokens)))

	p := &parser{tokens: tokens}

	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}

	for _, d := range prog.Diagnostics {
		logger.WarnContext(ctx, d.Message, d.Pos.attrs()...)
	}

	logger.TraceContext(ctx, "parse complete",
		slog.Int("statement_count", len(prog.Body)),
		slog.Int("diagnostic_count", len(prog.Diagnostics)))

	return prog, nil
}

// parser holds the parser state.
type parser struct {
	tokens []Token
	diags  []Diagnostic
	pos    int
}

// parseProgram parses: Stmt* EOF.
func (p *parser) parseProgram() (*Program, error) {
	prog := &Program{
		Body: make([]Stmt, 0),
		span: span{p.at().Pos},
	}

	for !p.is(TokenEOF) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		prog.Body = append(prog.Body, stmt)
	}

	prog.Diagnostics = p.diags

	return prog, nil
}

func (p *parser) parseStmt() (Stmt, error) {
	switch p.at().Kind {
	case TokenMut, TokenConst:
		return p.parseVarDeclaration()
	case TokenFunc:
		return p.parseFunctionDeclaration()
	case TokenClass:
		return p.parseClassDeclaration()
	case TokenIf:
		return p.parseIfStatement()
	case TokenWhile, TokenUntil:
		return p.parseLoopStatement()
	case TokenFor:
		return p.parseForStatement()
	case TokenTry:
		return p.parseTryCatchStatement()
	case TokenImport:
		return p.parseImportStatement()
	case TokenReturn:
		return p.parseReturnStatement()
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	p.skip(TokenSemicolon)

	return expr, nil
}

// parseBlock parses: '{' Stmt* '}'.
func (p *parser) parseBlock(what string) ([]Stmt, error) {
	if _, err := p.expect(TokenOpenBrace, "'{' to open "+what); err != nil {
		return nil, err
	}

	body := make([]Stmt, 0)

	for !p.is(TokenCloseBrace) && !p.is(TokenEOF) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		body = append(body, stmt)
	}

	if _, err := p.expect(TokenCloseBrace, "'}' to close "+what); err != nil {
		return nil, err
	}

	return body, nil
}

// parseVarDeclaration parses: ('mut' | 'const') Identifier ('=' Expr)? ';'.
func (p *parser) parseVarDeclaration() (*VarDeclaration, error) {
	kw := p.eat()

	name, err := p.expect(TokenIdentifier,
		"identifier name after "+kw.Value+" keyword")
	if err != nil {
		return nil, err
	}

	decl := &VarDeclaration{
		Identifier: name.Value,
		Constant:   kw.Kind == TokenConst,
		span:       span{kw.Pos},
	}

	if p.is(TokenSemicolon) {
		p.eat()

		if decl.Constant {
			p.diags = append(p.diags, Diagnostic{
				Message: "constant declared without a value: " + name.Value,
				Pos:     name.Pos,
			})
			decl.Constant = false
		}

		return decl, nil
	}

	if _, err := p.expect(TokenEquals, "'=' after variable name"); err != nil {
		return nil, err
	}

	if decl.Value, err = p.parseExpr(); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon,
		"';' after variable declaration"); err != nil {
		return nil, err
	}

	return decl, nil
}

// parseFunctionDeclaration parses: 'func' Identifier Args Block.
func (p *parser) parseFunctionDeclaration() (*FunctionDeclaration, error) {
	kw := p.eat()

	name, err := p.expect(TokenIdentifier, "function name after func keyword")
	if err != nil {
		return nil, err
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	params := make([]string, 0, len(args))

	for _, arg := range args {
		id, ok := arg.(*Identifier)
		if !ok {
			return nil, ErrParse.WithPosition(arg.Pos()).With(
				slog.String("expected", "parameter name"),
				slog.String("kind", arg.Kind().String()),
			)
		}

		params = append(params, id.Symbol)
	}

	body, err := p.parseBlock("function body")
	if err != nil {
		return nil, err
	}

	return &FunctionDeclaration{
		Name:       name.Value,
		Parameters: params,
		Body:       body,
		span:       span{kw.Pos},
	}, nil
}

// parseClassDeclaration parses: 'class' Identifier '{' Member* '}'.
func (p *parser) parseClassDeclaration() (*ClassDeclaration, error) {
	kw := p.eat()

	name, err := p.expect(TokenIdentifier, "class name after class keyword")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenOpenBrace, "'{' to open class body"); err != nil {
		return nil, err
	}

	decl := &ClassDeclaration{
		Name:       name.Value,
		Methods:    make([]*FunctionDeclaration, 0),
		Properties: make([]*VarDeclaration, 0),
		span:       span{kw.Pos},
	}

	for !p.is(TokenCloseBrace) && !p.is(TokenEOF) {
		switch p.at().Kind {
		case TokenFunc:
			fn, err := p.parseFunctionDeclaration()
			if err != nil {
				return nil, err
			}

			decl.Methods = append(decl.Methods, fn)

		case TokenMut, TokenConst:
			prop, err := p.parseVarDeclaration()
			if err != nil {
				return nil, err
			}

			decl.Properties = append(decl.Properties, prop)

		default:
			return nil, p.unexpected(p.at(), "method or property in class body")
		}
	}

	if _, err := p.expect(TokenCloseBrace, "'}' to close class body"); err != nil {
		return nil, err
	}

	return decl, nil
}

// parseCondition parses: '(' Expr ')'.
func (p *parser) parseCondition(kw string) (Expr, error) {
	if _, err := p.expect(TokenOpenParen, "'(' after "+kw); err != nil {
		return nil, err
	}

	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParen, "')' after "+kw+" condition"); err != nil {
		return nil, err
	}

	return test, nil
}

// parseIfStatement parses: 'if' Condition Block ('else' (IfStmt | Block))?.
func (p *parser) parseIfStatement() (*IfStatement, error) {
	kw := p.eat()

	test, err := p.parseCondition(kw.Value)
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock("if body")
	if err != nil {
		return nil, err
	}

	stmt := &IfStatement{Test: test, Body: body, span: span{kw.Pos}}

	if !p.is(TokenElse) {
		return stmt, nil
	}

	p.eat()

	if p.is(TokenIf) {
		nested, err := p.parseIfStatement()
		if err != nil {
			return nil, err
		}

		stmt.Alternate = []Stmt{nested}

		return stmt, nil
	}

	if stmt.Alternate, err = p.parseBlock("else body"); err != nil {
		return nil, err
	}

	return stmt, nil
}

// parseLoopStatement parses: ('while' | 'until') Condition Block.
func (p *parser) parseLoopStatement() (Stmt, error) {
	kw := p.eat()

	test, err := p.parseCondition(kw.Value)
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock(kw.Value + " body")
	if err != nil {
		return nil, err
	}

	if kw.Kind == TokenUntil {
		return &UntilStatement{Test: test, Body: body, span: span{kw.Pos}}, nil
	}

	return &WhileStatement{Test: test, Body: body, span: span{kw.Pos}}, nil
}

// parseForStatement parses: 'for' '(' VarDecl Expr ';' Expr ')' Block.
func (p *parser) parseForStatement() (*ForStatement, error) {
	kw := p.eat()

	if _, err := p.expect(TokenOpenParen, "'(' after for"); err != nil {
		return nil, err
	}

	if !p.is(TokenMut) && !p.is(TokenConst) {
		return nil, p.unexpected(p.at(), "variable declaration in for loop")
	}

	init, err := p.parseVarDeclaration()
	if err != nil {
		return nil, err
	}

	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon, "';' after for condition"); err != nil {
		return nil, err
	}

	update, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParen, "')' after for update"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock("for body")
	if err != nil {
		return nil, err
	}

	return &ForStatement{
		Init:   init,
		Test:   test,
		Update: update,
		Body:   body,
		span:   span{kw.Pos},
	}, nil
}

// parseTryCatchStatement parses: 'try' Block 'catch' Block.
func (p *parser) parseTryCatchStatement() (*TryCatchStatement, error) {
	kw := p.eat()

	body, err := p.parseBlock("try body")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCatch, "catch after try body"); err != nil {
		return nil, err
	}

	alt, err := p.parseBlock("catch body")
	if err != nil {
		return nil, err
	}

	return &TryCatchStatement{Body: body, Alternate: alt, span: span{kw.Pos}}, nil
}

// parseImportStatement parses:
//
//	'import' ('{' (Identifier (',' Identifier)*)? '}' | '*' | Identifier)
//	'from' String ';'?
func (p *parser) parseImportStatement() (*ImportStatement, error) {
	kw := p.eat()

	stmt := &ImportStatement{Names: make([]string, 0), span: span{kw.Pos}}

	switch {
	case p.is(TokenOpenBrace):
		p.eat()

		for !p.is(TokenCloseBrace) {
			id, err := p.expect(TokenIdentifier, "imported name")
			if err != nil {
				return nil, err
			}

			stmt.Names = append(stmt.Names, id.Value)

			if !p.is(TokenComma) {
				break
			}

			p.eat()
		}

		if _, err := p.expect(TokenCloseBrace, "'}' after imported names"); err != nil {
			return nil, err
		}

	case p.isOperator("*"):
		p.eat()

		stmt.Wildcard = true

	case p.is(TokenIdentifier):
		stmt.Names = append(stmt.Names, p.eat().Value)

	default:
		return nil, p.unexpected(p.at(), "imported names after import")
	}

	if _, err := p.expect(TokenFrom, "from after imported names"); err != nil {
		return nil, err
	}

	src, err := p.expect(TokenString, "module path after from")
	if err != nil {
		return nil, err
	}

	stmt.Source = src.Value

	p.skip(TokenSemicolon)

	return stmt, nil
}

// parseReturnStatement parses: 'return' Expr? ';'?.
func (p *parser) parseReturnStatement() (*ReturnStatement, error) {
	kw := p.eat()

	stmt := &ReturnStatement{span: span{kw.Pos}}

	if !p.is(TokenSemicolon) && !p.is(TokenCloseBrace) && !p.is(TokenEOF) {
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		stmt.Value = value
	}

	p.skip(TokenSemicolon)

	return stmt, nil
}

func (p *parser) parseExpr() (Expr, error) {
	return p.parseAssignmentExpr()
}

// parseAssignmentExpr parses: ObjectExpr ('=' AssignmentExpr)?.
func (p *parser) parseAssignmentExpr() (Expr, error) {
	left, err := p.parseObjectExpr()
	if err != nil {
		return nil, err
	}

	if !p.is(TokenEquals) {
		return left, nil
	}

	p.eat()

	value, err := p.parseAssignmentExpr()
	if err != nil {
		return nil, err
	}

	return &AssignmentExpr{
		Target:   left,
		Value:    value,
		exprSpan: exprAt(left.Pos()),
	}, nil
}

// parseObjectExpr parses: NewExpr | ObjectLiteral | ComparisonExpr.
func (p *parser) parseObjectExpr() (Expr, error) {
	if p.is(TokenNew) {
		return p.parseNewExpr()
	}

	if !p.is(TokenOpenBrace) {
		return p.parseComparisonExpr()
	}

	open := p.eat()

	obj := &ObjectLiteral{
		Properties: make([]Property, 0),
		exprSpan:   exprAt(open.Pos),
	}

	for !p.is(TokenCloseBrace) && !p.is(TokenEOF) {
		key, err := p.expect(TokenIdentifier, "object literal key")
		if err != nil {
			return nil, err
		}

		prop := Property{Key: key.Value, Pos: key.Pos}

		// Shorthand { key, ... } or { key }
		if p.is(TokenComma) {
			p.eat()

			obj.Properties = append(obj.Properties, prop)

			continue
		}

		if p.is(TokenCloseBrace) {
			obj.Properties = append(obj.Properties, prop)

			continue
		}

		if _, err := p.expect(TokenColon, "':' after object literal key"); err != nil {
			return nil, err
		}

		if prop.Value, err = p.parseExpr(); err != nil {
			return nil, err
		}

		obj.Properties = append(obj.Properties, prop)

		if !p.is(TokenCloseBrace) {
			if _, err := p.expect(TokenComma,
				"',' or '}' after object property"); err != nil {
				return nil, err
			}
		}
	}

	if _, err := p.expect(TokenCloseBrace, "'}' to close object literal"); err != nil {
		return nil, err
	}

	return obj, nil
}

// parseNewExpr parses: 'new' Identifier Args.
func (p *parser) parseNewExpr() (Expr, error) {
	kw := p.eat()

	name, err := p.expect(TokenIdentifier, "class name after new")
	if err != nil {
		return nil, err
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	return &NewExpr{ClassName: name.Value, Args: args, exprSpan: exprAt(kw.Pos)}, nil
}

func (p *parser) parseComparisonExpr() (Expr, error) {
	return p.parseBinaryExpr(p.parseAdditiveExpr, ">", "<", "==", ">=", "<=")
}

func (p *parser) parseAdditiveExpr() (Expr, error) {
	return p.parseBinaryExpr(p.parseMultiplicativeExpr, "+", "-")
}

func (p *parser) parseMultiplicativeExpr() (Expr, error) {
	return p.parseBinaryExpr(p.parseCallMemberExpr, "*", "/", "%")
}

// parseBinaryExpr parses a left-associative chain of operands joined by any
// of the given operators.
func (p *parser) parseBinaryExpr(
	operand func() (Expr, error),
	ops ...string,
) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for p.isOperator(ops...) {
		op := p.eat()

		right, err := operand()
		if err != nil {
			return nil, err
		}

		left = &BinaryExpr{
			Left:     left,
			Right:    right,
			Operator: op.Value,
			exprSpan: exprAt(left.Pos()),
		}
	}

	return left, nil
}

// parseCallMemberExpr parses: MemberExpr CallSuffix*.
func (p *parser) parseCallMemberExpr() (Expr, error) {
	expr, err := p.parseMemberExpr()
	if err != nil {
		return nil, err
	}

	for p.is(TokenOpenParen) {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}

		expr = &CallExpr{Callee: expr, Args: args, exprSpan: exprAt(expr.Pos())}
	}

	return expr, nil
}

// parseArgs parses: '(' (AssignmentExpr (',' AssignmentExpr)*)? ')'.
func (p *parser) parseArgs() ([]Expr, error) {
	if _, err := p.expect(TokenOpenParen, "'(' to open argument list"); err != nil {
		return nil, err
	}

	args := make([]Expr, 0)

	if p.is(TokenCloseParen) {
		p.eat()

		return args, nil
	}

	for {
		arg, err := p.parseAssignmentExpr()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if !p.is(TokenComma) {
			break
		}

		p.eat()
	}

	if _, err := p.expect(TokenCloseParen, "')' to close argument list"); err != nil {
		return nil, err
	}

	return args, nil
}

// parseMemberExpr parses: PrimaryExpr ('.' Identifier | '[' Expr ']')*.
func (p *parser) parseMemberExpr() (Expr, error) {
	expr, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.is(TokenDot):
			p.eat()

			prop, err := p.expect(TokenIdentifier, "property name after '.'")
			if err != nil {
				return nil, err
			}

			expr = &MemberExpr{
				Object:   expr,
				Property: prop.Value,
				exprSpan: exprAt(expr.Pos()),
			}

		case p.is(TokenOpenBracket):
			p.eat()

			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(TokenCloseBracket, "']' after index"); err != nil {
				return nil, err
			}

			expr = &ArrayIndexExpr{
				Object:   expr,
				Index:    index,
				exprSpan: exprAt(expr.Pos()),
			}

		default:
			return expr, nil
		}
	}
}

func (p *parser) parsePrimaryExpr() (Expr, error) {
	tok := p.at()

	switch tok.Kind {
	case TokenIdentifier:
		p.eat()

		return &Identifier{Symbol: tok.Value, exprSpan: exprAt(tok.Pos)}, nil

	case TokenNumber:
		p.eat()

		// Digit runs always parse; overlong runs saturate to +Inf.
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, ErrParse.WithPosition(tok.Pos).Wrap(err)
		}

		return &NumericLiteral{Value: value, exprSpan: exprAt(tok.Pos)}, nil

	case TokenString:
		p.eat()

		return &StringLiteral{Value: tok.Value, exprSpan: exprAt(tok.Pos)}, nil

	case TokenOpenParen:
		p.eat()

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenCloseParen,
			"')' after parenthesized expression"); err != nil {
			return nil, err
		}

		return expr, nil

	case TokenOpenBracket:
		return p.parseArrayLiteral()
	}

	return nil, p.unexpected(tok, "expression")
}

// parseArrayLiteral parses: '[' (Expr (',' Expr)*)? ']'.
func (p *parser) parseArrayLiteral() (Expr, error) {
	open := p.eat()

	arr := &ArrayLiteral{Elements: make([]Expr, 0), exprSpan: exprAt(open.Pos)}

	for !p.is(TokenCloseBracket) && !p.is(TokenEOF) {
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		arr.Elements = append(arr.Elements, elem)

		if !p.is(TokenCloseBracket) {
			if _, err := p.expect(TokenComma,
				"',' or ']' after array element"); err != nil {
				return nil, err
			}
		}
	}

	if _, err := p.expect(TokenCloseBracket, "']' to close array literal"); err != nil {
		return nil, err
	}

	return arr, nil
}

// Helper methods

func (p *parser) at() Token { return p.tokens[p.pos] }

// eat consumes the current token. The trailing EOF token is never consumed.
func (p *parser) eat() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}

	return tok
}

func (p *parser) is(kind TokenKind) bool { return p.at().Kind == kind }

func (p *parser) isOperator(ops ...string) bool {
	tok := p.at()

	return tok.Kind == TokenBinaryOperator && slices.Contains(ops, tok.Value)
}

func (p *parser) skip(kind TokenKind) {
	if p.is(kind) {
		p.eat()
	}
}

func (p *parser) expect(kind TokenKind, what string) (Token, error) {
	tok := p.eat()
	if tok.Kind != kind {
		return tok, p.unexpected(tok, what)
	}

	return tok, nil
}

func (p *parser) unexpected(tok Token, what string) error {
	return ErrParse.WithPosition(tok.Pos).With(
		slog.String("token", tok.Value),
		slog.String("kind", tok.Kind.String()),
		slog.String("expected", what),
	)
}

func exprAt(pos Position) exprSpan { return exprSpan{span{pos}} }
