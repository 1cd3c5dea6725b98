// Package lang implements NovaScript, a small dynamically typed scripting
// language with lexically scoped variables, first-class functions and
// closures, classes, try/catch, and file imports.
//
// Source text flows through three stages:
//
//   - [Tokenize] converts text into a [Token] sequence ending in [TokenEOF].
//   - [Parse] builds a [Program] syntax tree by recursive descent.
//   - [Interpreter.Evaluate] walks the tree against an [Env] chain.
//
// # Grammar
//
// Informal EBNF:
//
//	Program     → Stmt* EOF
//	Stmt        → VarDecl | FuncDecl | ClassDecl | If | While | Until | For
//	            | TryCatch | Import | Return | Expr ';'?
//	VarDecl     → ('mut' | 'const') Identifier ('=' Expr)? ';'
//	FuncDecl    → 'func' Identifier '(' Params? ')' Block
//	ClassDecl   → 'class' Identifier '{' (FuncDecl | VarDecl)* '}'
//	If          → 'if' '(' Expr ')' Block ('else' (If | Block))?
//	While       → 'while' '(' Expr ')' Block
//	Until       → 'until' '(' Expr ')' Block
//	For         → 'for' '(' VarDecl Expr ';' Expr ')' Block
//	TryCatch    → 'try' Block 'catch' Block
//	Import      → 'import' ('{' Names? '}' | '*' | Identifier)
//	              'from' String ';'?
//	Return      → 'return' Expr? ';'?
//	Block       → '{' Stmt* '}'
//	Expr        → Assignment
//	Assignment  → Object ('=' Assignment)?
//	Object      → 'new' Identifier Args | '{' Props? '}' | Comparison
//	Comparison  → Additive (('>' | '<' | '==' | '>=' | '<=') Additive)*
//	Additive    → Multiplic (('+' | '-') Multiplic)*
//	Multiplic   → Call (('*' | '/' | '%') Call)*
//	Call        → Member Args*
//	Member      → Primary ('.' Identifier | '[' Expr ']')*
//	Primary     → Identifier | Number | String | '(' Expr ')' | '[' Exprs? ']'
//
// Comments are either "//" to end of line or delimited by "/(" and ")/".
//
// # Example
//
//	func fib(n) {
//	  if (n < 2) { return n; }
//	  fib(n - 1) + fib(n - 2)
//	}
//
//	class Counter {
//	  mut count = 0;
//	  func next() { count = count + 1; }
//	}
//
//	const c = new Counter();
//	c.next();
//	print(fib(10), c.next());
//
// # Semantics
//
// Variables are declared once per scope with mut (mutable) or const.
// Functions close over the scope in which they are declared, and each call
// runs in a fresh child of that scope. A call yields the value of the last
// statement of its body unless a return statement fires first.
//
// Blocks of if, while, until, for, try, and catch each evaluate in a fresh
// child scope, and loops create a new scope on every iteration.
//
// Arithmetic applies only to two numbers and otherwise yields null.
// Comparisons always yield a boolean.
//
// Errors are Go errors matching one of the sentinels declared by this
// package. Lexical and syntax errors, and errors raised inside a catch
// block, are fatal: no try statement can intercept them (see [IsFatal]).
package lang
