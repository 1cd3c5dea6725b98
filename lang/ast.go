package lang

//go:generate go tool stringer -type=NodeKind -linecomment -output=ast_string.go

// NodeKind identifies the concrete type of a [Node].
type NodeKind int

// Node kinds.
const (
	KindProgram             NodeKind = iota // Program
	KindVarDeclaration                      // VarDeclaration
	KindFunctionDeclaration                 // FunctionDeclaration
	KindClassDeclaration                    // ClassDeclaration
	KindIfStatement                         // IfStatement
	KindWhileStatement                      // WhileStatement
	KindUntilStatement                      // UntilStatement
	KindForStatement                        // ForStatement
	KindTryCatchStatement                   // TryCatchStatement
	KindImportStatement                     // ImportStatement
	KindReturnStatement                     // ReturnStatement
	KindAssignmentExpr                      // AssignmentExpr
	KindBinaryExpr                          // BinaryExpr
	KindMemberExpr                          // MemberExpr
	KindArrayIndexExpr                      // ArrayIndexExpr
	KindCallExpr                            // CallExpr
	KindNewExpr                             // NewExpr
	KindIdentifier                          // Identifier
	KindNumericLiteral                      // NumericLiteral
	KindStringLiteral                       // StringLiteral
	KindObjectLiteral                       // ObjectLiteral
	KindArrayLiteral                        // ArrayLiteral
)

// Node is any element of the syntax tree.
type Node interface {
	Kind() NodeKind
	Pos() Position
	node()
}

// Stmt is a node that may appear in a statement list.
type Stmt interface {
	Node
	stmt()
}

// Expr is a node that produces a value. Every expression is also a
// statement.
type Expr interface {
	Stmt
	expr()
}

// span records where a node begins and marks it as a statement.
type span struct {
	Start Position
}

func (s span) Pos() Position { return s.Start }
func (span) node()           {}
func (span) stmt()           {}

// exprSpan additionally marks a node as an expression.
type exprSpan struct{ span }

func (exprSpan) expr() {}

// Diagnostic is a non-fatal message produced while parsing.
type Diagnostic struct {
	Message string
	Pos     Position
}

// Program is the root of a parsed source file.
type Program struct {
	Body        []Stmt
	Diagnostics []Diagnostic
	span
}

// VarDeclaration declares a variable. Value is nil when no initializer was
// given.
type VarDeclaration struct {
	Value      Expr
	Identifier string
	span
	Constant bool
}

// FunctionDeclaration declares a named function.
type FunctionDeclaration struct {
	Name       string
	Parameters []string
	Body       []Stmt
	span
}

// ClassDeclaration declares a class with properties and methods.
type ClassDeclaration struct {
	Name       string
	Methods    []*FunctionDeclaration
	Properties []*VarDeclaration
	span
}

// IfStatement is a conditional. Alternate is nil when there is no else
// branch; an "else if" is an Alternate holding one nested IfStatement.
type IfStatement struct {
	Test      Expr
	Body      []Stmt
	Alternate []Stmt
	span
}

// WhileStatement runs Body while Test is true.
type WhileStatement struct {
	Test Expr
	Body []Stmt
	span
}

// UntilStatement runs Body while Test is false.
type UntilStatement struct {
	Test Expr
	Body []Stmt
	span
}

// ForStatement is a three-clause loop.
type ForStatement struct {
	Init   *VarDeclaration
	Test   Expr
	Update Expr
	Body   []Stmt
	span
}

// TryCatchStatement runs Body, and Alternate if Body fails.
type TryCatchStatement struct {
	Body      []Stmt
	Alternate []Stmt
	span
}

// ImportStatement binds names defined by another source file.
type ImportStatement struct {
	Source   string
	Names    []string
	span
	Wildcard bool
}

// ReturnStatement ends the enclosing function. Value is nil for a bare
// return.
type ReturnStatement struct {
	Value Expr
	span
}

// AssignmentExpr assigns Value to Target.
type AssignmentExpr struct {
	Target Expr
	Value  Expr
	exprSpan
}

// BinaryExpr applies Operator to Left and Right.
type BinaryExpr struct {
	Left     Expr
	Right    Expr
	Operator string
	exprSpan
}

// MemberExpr reads a named property of Object.
type MemberExpr struct {
	Object   Expr
	Property string
	exprSpan
}

// ArrayIndexExpr reads an element of the array Object.
type ArrayIndexExpr struct {
	Object Expr
	Index  Expr
	exprSpan
}

// CallExpr invokes Callee with Args.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	exprSpan
}

// NewExpr instantiates the class named ClassName.
type NewExpr struct {
	ClassName string
	Args      []Expr
	exprSpan
}

// Identifier references a variable.
type Identifier struct {
	Symbol string
	exprSpan
}

// NumericLiteral is a number written in source.
type NumericLiteral struct {
	Value float64
	exprSpan
}

// StringLiteral is a string written in source, with escapes decoded.
type StringLiteral struct {
	Value string
	exprSpan
}

// Property is a key of an [ObjectLiteral]. Value is nil for the shorthand
// form, which reads the variable named Key.
type Property struct {
	Value Expr
	Key   string
	Pos   Position
}

// ObjectLiteral constructs an object.
type ObjectLiteral struct {
	Properties []Property
	exprSpan
}

// ArrayLiteral constructs an array.
type ArrayLiteral struct {
	Elements []Expr
	exprSpan
}

func (*Program) Kind() NodeKind             { return KindProgram }
func (*VarDeclaration) Kind() NodeKind      { return KindVarDeclaration }
func (*FunctionDeclaration) Kind() NodeKind { return KindFunctionDeclaration }
func (*ClassDeclaration) Kind() NodeKind    { return KindClassDeclaration }
func (*IfStatement) Kind() NodeKind         { return KindIfStatement }
func (*WhileStatement) Kind() NodeKind      { return KindWhileStatement }
func (*UntilStatement) Kind() NodeKind      { return KindUntilStatement }
func (*ForStatement) Kind() NodeKind        { return KindForStatement }
func (*TryCatchStatement) Kind() NodeKind   { return KindTryCatchStatement }
func (*ImportStatement) Kind() NodeKind     { return KindImportStatement }
func (*ReturnStatement) Kind() NodeKind     { return KindReturnStatement }
func (*AssignmentExpr) Kind() NodeKind      { return KindAssignmentExpr }
func (*BinaryExpr) Kind() NodeKind          { return KindBinaryExpr }
func (*MemberExpr) Kind() NodeKind          { return KindMemberExpr }
func (*ArrayIndexExpr) Kind() NodeKind      { return KindArrayIndexExpr }
func (*CallExpr) Kind() NodeKind            { return KindCallExpr }
func (*NewExpr) Kind() NodeKind             { return KindNewExpr }
func (*Identifier) Kind() NodeKind          { return KindIdentifier }
func (*NumericLiteral) Kind() NodeKind      { return KindNumericLiteral }
func (*StringLiteral) Kind() NodeKind       { return KindStringLiteral }
func (*ObjectLiteral) Kind() NodeKind       { return KindObjectLiteral }
func (*ArrayLiteral) Kind() NodeKind        { return KindArrayLiteral }
