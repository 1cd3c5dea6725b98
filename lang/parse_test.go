package lang

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()

	prog, err := Parse(t.Context(), src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	return prog
}

func TestParse_Statements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []NodeKind
	}{
		{"empty", "", []NodeKind{}},
		{"var declaration", "mut x = 1;", []NodeKind{KindVarDeclaration}},
		{"const declaration", "const x = 1;", []NodeKind{KindVarDeclaration}},
		{"function", "func f(a, b) { a }", []NodeKind{KindFunctionDeclaration}},
		{"class", "class C { mut x = 1; func m() { x } }", []NodeKind{KindClassDeclaration}},
		{"if", "if (true) { 1 }", []NodeKind{KindIfStatement}},
		{"while", "while (false) {}", []NodeKind{KindWhileStatement}},
		{"until", "until (true) {}", []NodeKind{KindUntilStatement}},
		{"for", "for (mut i = 0; i < 3; i = i + 1) {}", []NodeKind{KindForStatement}},
		{"try", "try { 1 } catch { 2 }", []NodeKind{KindTryCatchStatement}},
		{"import", `import { a } from "m.nv"`, []NodeKind{KindImportStatement}},
		{"return", "return 1;", []NodeKind{KindReturnStatement}},
		{
			"expression statements without separators",
			"a b c",
			[]NodeKind{KindIdentifier, KindIdentifier, KindIdentifier},
		},
		{
			"expression statements with separators",
			"1; 2;",
			[]NodeKind{KindNumericLiteral, KindNumericLiteral},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, tt.input)

			got := make([]NodeKind, len(prog.Body))
			for i, s := range prog.Body {
				got[i] = s.Kind()
			}

			if !equalSlices(got, tt.want) {
				t.Errorf("statement kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse_Precedence(t *testing.T) {
	prog := mustParse(t, "1 + 2 * 3 > 4 - 5 % 2")

	cmp, ok := prog.Body[0].(*BinaryExpr)
	if !ok || cmp.Operator != ">" {
		t.Fatalf("root = %#v, want comparison", prog.Body[0])
	}

	add, ok := cmp.Left.(*BinaryExpr)
	if !ok || add.Operator != "+" {
		t.Fatalf("left = %#v, want addition", cmp.Left)
	}

	if mul, ok := add.Right.(*BinaryExpr); !ok || mul.Operator != "*" {
		t.Errorf("addition right = %#v, want multiplication", add.Right)
	}

	sub, ok := cmp.Right.(*BinaryExpr)
	if !ok || sub.Operator != "-" {
		t.Fatalf("right = %#v, want subtraction", cmp.Right)
	}

	if mod, ok := sub.Right.(*BinaryExpr); !ok || mod.Operator != "%" {
		t.Errorf("subtraction right = %#v, want modulo", sub.Right)
	}
}

func TestParse_LeftAssociative(t *testing.T) {
	prog := mustParse(t, "10 - 3 - 2")

	outer := prog.Body[0].(*BinaryExpr)

	inner, ok := outer.Left.(*BinaryExpr)
	if !ok {
		t.Fatalf("left = %#v, want nested subtraction", outer.Left)
	}

	if n := inner.Left.(*NumericLiteral).Value; n != 10 {
		t.Errorf("innermost left = %v, want 10", n)
	}

	if n := outer.Right.(*NumericLiteral).Value; n != 2 {
		t.Errorf("outer right = %v, want 2", n)
	}
}

func TestParse_AssignmentRightAssociative(t *testing.T) {
	prog := mustParse(t, "a = b = 3")

	outer, ok := prog.Body[0].(*AssignmentExpr)
	if !ok {
		t.Fatalf("root = %#v, want assignment", prog.Body[0])
	}

	if id := outer.Target.(*Identifier); id.Symbol != "a" {
		t.Errorf("outer target = %q", id.Symbol)
	}

	if _, ok := outer.Value.(*AssignmentExpr); !ok {
		t.Errorf("outer value = %#v, want assignment", outer.Value)
	}
}

func TestParse_MemberAndCallChains(t *testing.T) {
	prog := mustParse(t, `a.b.c[0]["k"](1)(2)`)

	outer, ok := prog.Body[0].(*CallExpr)
	if !ok {
		t.Fatalf("root = %#v, want call", prog.Body[0])
	}

	inner, ok := outer.Callee.(*CallExpr)
	if !ok {
		t.Fatalf("callee = %#v, want call", outer.Callee)
	}

	idx, ok := inner.Callee.(*ArrayIndexExpr)
	if !ok {
		t.Fatalf("inner callee = %#v, want index", inner.Callee)
	}

	if s, ok := idx.Index.(*StringLiteral); !ok || s.Value != "k" {
		t.Errorf("index = %#v", idx.Index)
	}

	idx2 := idx.Object.(*ArrayIndexExpr)
	mem := idx2.Object.(*MemberExpr)

	if mem.Property != "c" {
		t.Errorf("property = %q, want c", mem.Property)
	}

	if mem.Object.(*MemberExpr).Property != "b" {
		t.Errorf("nested property mismatch")
	}
}

func TestParse_ObjectLiteral(t *testing.T) {
	prog := mustParse(t, `mut o = { a: 1, b, c: "x" };`)

	decl := prog.Body[0].(*VarDeclaration)
	obj, ok := decl.Value.(*ObjectLiteral)
	if !ok {
		t.Fatalf("value = %#v, want object literal", decl.Value)
	}

	if len(obj.Properties) != 3 {
		t.Fatalf("got %d properties, want 3", len(obj.Properties))
	}

	if obj.Properties[1].Key != "b" || obj.Properties[1].Value != nil {
		t.Errorf("shorthand property = %+v", obj.Properties[1])
	}

	if obj.Properties[2].Key != "c" || obj.Properties[2].Value == nil {
		t.Errorf("third property = %+v", obj.Properties[2])
	}
}

func TestParse_IfElseChain(t *testing.T) {
	prog := mustParse(t, "if (a) { 1 } else if (b) { 2 } else { 3 }")

	stmt := prog.Body[0].(*IfStatement)
	if len(stmt.Alternate) != 1 {
		t.Fatalf("alternate = %d statements, want 1", len(stmt.Alternate))
	}

	nested, ok := stmt.Alternate[0].(*IfStatement)
	if !ok {
		t.Fatalf("alternate = %#v, want if statement", stmt.Alternate[0])
	}

	if nested.Alternate == nil || len(nested.Alternate) != 1 {
		t.Errorf("nested alternate = %#v", nested.Alternate)
	}

	noElse := mustParse(t, "if (a) { 1 }").Body[0].(*IfStatement)
	if noElse.Alternate != nil {
		t.Errorf("alternate without else = %#v, want nil", noElse.Alternate)
	}
}

func TestParse_Imports(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		names    []string
		wildcard bool
	}{
		{"braced", `import { a, b } from "m.nv";`, []string{"a", "b"}, false},
		{"single", `import a from "m.nv"`, []string{"a"}, false},
		{"wildcard", `import * from "m.nv"`, []string{}, true},
		{"empty braces", `import {} from "m.nv"`, []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := mustParse(t, tt.input).Body[0].(*ImportStatement)

			if stmt.Source != "m.nv" {
				t.Errorf("source = %q", stmt.Source)
			}

			if !equalSlices(stmt.Names, tt.names) {
				t.Errorf("names = %q, want %q", stmt.Names, tt.names)
			}

			if stmt.Wildcard != tt.wildcard {
				t.Errorf("wildcard = %v, want %v", stmt.Wildcard, tt.wildcard)
			}
		})
	}
}

func TestParse_ConstWithoutValue(t *testing.T) {
	prog := mustParse(t, "const x;")

	decl := prog.Body[0].(*VarDeclaration)
	if decl.Constant {
		t.Error("constant without value should be demoted to mutable")
	}

	if decl.Value != nil {
		t.Errorf("value = %#v, want nil", decl.Value)
	}

	if len(prog.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(prog.Diagnostics))
	}

	if prog.Diagnostics[0].Pos.Column != 7 {
		t.Errorf("diagnostic column = %d, want 7", prog.Diagnostics[0].Pos.Column)
	}
}

func TestParse_Return(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		hasValue bool
	}{
		{"bare with semicolon", "func f() { return; }", false},
		{"bare before brace", "func f() { return }", false},
		{"with value", "func f() { return 1 + 2; }", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := mustParse(t, tt.input).Body[0].(*FunctionDeclaration)
			ret := fn.Body[0].(*ReturnStatement)

			if (ret.Value != nil) != tt.hasValue {
				t.Errorf("has value = %v, want %v", ret.Value != nil, tt.hasValue)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		line  int
		col   int
	}{
		{"missing semicolon", "mut x = 1", ErrParse, 1, 10},
		{"missing identifier", "mut = 1;", ErrParse, 1, 5},
		{"missing equals", "mut x 1;", ErrParse, 1, 7},
		{"unclosed block", "if (a) { 1", ErrParse, 1, 11},
		{"unclosed paren", "(1 + 2", ErrParse, 1, 7},
		{"stray close brace", "}", ErrParse, 1, 1},
		{"non-identifier parameter", "func f(1) {}", ErrParse, 1, 8},
		{"for without declaration", "for (i = 0; i < 1; i) {}", ErrParse, 1, 6},
		{"try without catch", "try { 1 }", ErrParse, 1, 10},
		{"bad class member", "class C { 1 }", ErrParse, 1, 11},
		{"bad wildcard", `import + from "m"`, ErrParse, 1, 8},
		{"import without from", `import a "m"`, ErrParse, 1, 10},
		{"property after dot", "a.1", ErrParse, 1, 3},
		{"object key", "{ 1: 2 }", ErrParse, 1, 3},
		{"lexical error surfaces", "mut x = $;", ErrLex, 1, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(t.Context(), tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}

			if !IsFatal(err) {
				t.Error("parse error should be fatal")
			}

			pos, ok := PositionOf(err)
			if !ok {
				t.Fatal("error has no position")
			}

			if pos.Line != tt.line || pos.Column != tt.col {
				t.Errorf("position = %d:%d, want %d:%d",
					pos.Line, pos.Column, tt.line, tt.col)
			}
		})
	}
}

func TestParseReader(t *testing.T) {
	prog, err := ParseReader(t.Context(), strings.NewReader("mut x = 1;\nx"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(prog.Body) != 2 {
		t.Errorf("got %d statements, want 2", len(prog.Body))
	}
}
