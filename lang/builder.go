package lang

// Builder provides a programmatic API for constructing syntax trees without
// parsing source text. Built nodes carry no source position. A tree built
// this way can be evaluated with [Evaluate] or written out with
// [Program.FormatJSON].
//
// Example:
//
//	b := lang.NewBuilder()
//	prog := b.Program(
//	    b.Func("double", []string{"x"},
//	        b.Binary(b.Ident("x"), "*", b.Number(2)),
//	    ),
//	    b.Call(b.Ident("double"), b.Number(21)),
//	)
type Builder struct{}

// NewBuilder creates a new syntax tree builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Program creates a [Program] with the given statements.
func (b *Builder) Program(body ...Stmt) *Program {
	return &Program{Body: stmts(body)}
}

// Mut creates a mutable [VarDeclaration]. A nil value declares null.
func (b *Builder) Mut(name string, value Expr) *VarDeclaration {
	return &VarDeclaration{Identifier: name, Value: value}
}

// Const creates a constant [VarDeclaration].
func (b *Builder) Const(name string, value Expr) *VarDeclaration {
	return &VarDeclaration{Identifier: name, Value: value, Constant: true}
}

// Func creates a [FunctionDeclaration].
func (b *Builder) Func(name string, params []string, body ...Stmt) *FunctionDeclaration {
	return &FunctionDeclaration{
		Name:       name,
		Parameters: append(make([]string, 0, len(params)), params...),
		Body:       stmts(body),
	}
}

// Class creates a [ClassDeclaration] from its properties and methods.
func (b *Builder) Class(
	name string,
	props []*VarDeclaration,
	methods ...*FunctionDeclaration,
) *ClassDeclaration {
	return &ClassDeclaration{
		Name:       name,
		Properties: append(make([]*VarDeclaration, 0, len(props)), props...),
		Methods:    append(make([]*FunctionDeclaration, 0, len(methods)), methods...),
	}
}

// If creates an [IfStatement]. A nil alternate means there is no else
// branch.
func (b *Builder) If(test Expr, body, alternate []Stmt) *IfStatement {
	return &IfStatement{Test: test, Body: stmts(body), Alternate: alternate}
}

// While creates a [WhileStatement].
func (b *Builder) While(test Expr, body ...Stmt) *WhileStatement {
	return &WhileStatement{Test: test, Body: stmts(body)}
}

// Until creates an [UntilStatement].
func (b *Builder) Until(test Expr, body ...Stmt) *UntilStatement {
	return &UntilStatement{Test: test, Body: stmts(body)}
}

// For creates a [ForStatement].
func (b *Builder) For(
	init *VarDeclaration,
	test, update Expr,
	body ...Stmt,
) *ForStatement {
	return &ForStatement{Init: init, Test: test, Update: update, Body: stmts(body)}
}

// Try creates a [TryCatchStatement].
func (b *Builder) Try(body, catch []Stmt) *TryCatchStatement {
	return &TryCatchStatement{Body: stmts(body), Alternate: stmts(catch)}
}

// Import creates an [ImportStatement] binding names from source.
func (b *Builder) Import(source string, names ...string) *ImportStatement {
	return &ImportStatement{
		Source: source,
		Names:  append(make([]string, 0, len(names)), names...),
	}
}

// ImportAll creates a wildcard [ImportStatement].
func (b *Builder) ImportAll(source string) *ImportStatement {
	return &ImportStatement{Source: source, Names: make([]string, 0), Wildcard: true}
}

// Return creates a [ReturnStatement].
func (b *Builder) Return(value Expr) *ReturnStatement {
	return &ReturnStatement{Value: value}
}

// Assign creates an [AssignmentExpr].
func (b *Builder) Assign(target, value Expr) *AssignmentExpr {
	return &AssignmentExpr{Target: target, Value: value}
}

// Binary creates a [BinaryExpr].
func (b *Builder) Binary(left Expr, op string, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Operator: op, Right: right}
}

// Member creates a [MemberExpr].
func (b *Builder) Member(object Expr, property string) *MemberExpr {
	return &MemberExpr{Object: object, Property: property}
}

// Index creates an [ArrayIndexExpr].
func (b *Builder) Index(object, index Expr) *ArrayIndexExpr {
	return &ArrayIndexExpr{Object: object, Index: index}
}

// Call creates a [CallExpr].
func (b *Builder) Call(callee Expr, args ...Expr) *CallExpr {
	return &CallExpr{Callee: callee, Args: exprs(args)}
}

// New creates a [NewExpr].
func (b *Builder) New(class string, args ...Expr) *NewExpr {
	return &NewExpr{ClassName: class, Args: exprs(args)}
}

// Ident creates an [Identifier].
func (b *Builder) Ident(name string) *Identifier {
	return &Identifier{Symbol: name}
}

// Number creates a [NumericLiteral].
func (b *Builder) Number(n float64) *NumericLiteral {
	return &NumericLiteral{Value: n}
}

// String creates a [StringLiteral].
func (b *Builder) String(s string) *StringLiteral {
	return &StringLiteral{Value: s}
}

// Object creates an [ObjectLiteral] from its properties.
func (b *Builder) Object(props ...Property) *ObjectLiteral {
	return &ObjectLiteral{Properties: append(make([]Property, 0, len(props)), props...)}
}

// Prop creates an object literal [Property].
func (b *Builder) Prop(key string, value Expr) Property {
	return Property{Key: key, Value: value}
}

// Array creates an [ArrayLiteral].
func (b *Builder) Array(elems ...Expr) *ArrayLiteral {
	return &ArrayLiteral{Elements: exprs(elems)}
}

func stmts(list []Stmt) []Stmt { return append(make([]Stmt, 0, len(list)), list...) }

func exprs(list []Expr) []Expr { return append(make([]Expr, 0, len(list)), list...) }
