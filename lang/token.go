package lang

import (
	"log/slog"
	"strconv"
)

//go:generate go tool stringer -type=TokenKind -linecomment -output=token_string.go

// TokenKind classifies a lexical token.
type TokenKind int

// Token kinds.
const (
	TokenEOF            TokenKind = iota // EOF
	TokenNumber                          // Number
	TokenIdentifier                      // Identifier
	TokenString                          // String
	TokenEquals                          // Equals
	TokenBinaryOperator                  // BinaryOperator
	TokenComma                           // Comma
	TokenColon                           // Colon
	TokenSemicolon                       // Semicolon
	TokenDot                             // Dot
	TokenOpenParen                       // OpenParen
	TokenCloseParen                      // CloseParen
	TokenOpenBrace                       // OpenBrace
	TokenCloseBrace                      // CloseBrace
	TokenOpenBracket                     // OpenBracket
	TokenCloseBracket                    // CloseBracket
	TokenMut                             // Mut
	TokenConst                           // Const
	TokenFunc                            // Func
	TokenClass                           // Class
	TokenIf                              // If
	TokenElse                            // Else
	TokenWhile                           // While
	TokenUntil                           // Until
	TokenFor                             // For
	TokenTry                             // Try
	TokenCatch                           // Catch
	TokenImport                          // Import
	TokenFrom                            // From
	TokenNew                             // New
	TokenReturn                          // Return
)

// eofValue is the text of the token appended after the last real token.
const eofValue = "EndOfFile"

// keywords maps reserved words to their token kinds.
//
//nolint:gochecknoglobals
var keywords = map[string]TokenKind{
	"mut":    TokenMut,
	"const":  TokenConst,
	"func":   TokenFunc,
	"class":  TokenClass,
	"if":     TokenIf,
	"else":   TokenElse,
	"while":  TokenWhile,
	"until":  TokenUntil,
	"for":    TokenFor,
	"try":    TokenTry,
	"catch":  TokenCatch,
	"import": TokenImport,
	"from":   TokenFrom,
	"new":    TokenNew,
	"return": TokenReturn,
}

// Keywords returns the reserved words of the language.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}

	return words
}

// punctuation maps single-character tokens to their kinds.
//
//nolint:gochecknoglobals
var punctuation = map[rune]TokenKind{
	'(': TokenOpenParen,
	')': TokenCloseParen,
	'{': TokenOpenBrace,
	'}': TokenCloseBrace,
	'[': TokenOpenBracket,
	']': TokenCloseBracket,
	'.': TokenDot,
	',': TokenComma,
	':': TokenColon,
	';': TokenSemicolon,
}

// Position represents a location in source text.
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number (in runes), starting at 1
}

// String returns "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

func (p Position) attrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
	}
}

// Token is a single lexical unit of source text.
type Token struct {
	Value string
	Kind  TokenKind
	Pos   Position
}

// String returns a compact representation of the token.
func (t Token) String() string {
	return t.Kind.String() + "(" + strconv.Quote(t.Value) + ")@" + t.Pos.String()
}
