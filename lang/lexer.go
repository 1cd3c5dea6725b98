package lang

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize converts source text into a sequence of tokens.
//
// The final token always has kind [TokenEOF] and value "EndOfFile".
// Whitespace and comments are discarded. Line comments start with "//" and
// run to the end of the line; block comments are delimited by "/(" and ")/".
// An unterminated block comment runs to the end of the input.
//
// Any character that cannot begin a token produces an error matching
// [ErrLex], and an unterminated string literal produces an error matching
// [ErrUnterminated]. Lexical errors are fatal.
func Tokenize(source string) ([]Token, error) {
	lx := &lexer{input: source, line: 1, col: 1}

	for {
		lx.skipWhitespaceAndComments()

		if lx.eof() {
			break
		}

		if err := lx.scan(); err != nil {
			return nil, err
		}
	}

	lx.tokens = append(lx.tokens, Token{
		Value: eofValue,
		Kind:  TokenEOF,
		Pos:   lx.position(),
	})

	return lx.tokens, nil
}

// lexer holds the tokenizer state.
type lexer struct {
	input  string
	tokens []Token
	pos    int
	line   int
	col    int
}

// scan reads exactly one token starting at the current position.
func (lx *lexer) scan() error {
	pos := lx.position()
	ch := lx.peek()

	if kind, ok := punctuation[ch]; ok {
		lx.advance()
		lx.emit(string(ch), kind, pos)

		return nil
	}

	switch {
	case ch == '>' || ch == '<' || ch == '=':
		lx.advance()

		if lx.peek() == '=' {
			lx.advance()
			lx.emit(string(ch)+"=", TokenBinaryOperator, pos)

			return nil
		}

		if ch == '=' {
			lx.emit("=", TokenEquals, pos)
		} else {
			lx.emit(string(ch), TokenBinaryOperator, pos)
		}

		return nil

	case strings.ContainsRune("+-*/%", ch):
		lx.advance()
		lx.emit(string(ch), TokenBinaryOperator, pos)

		return nil

	case ch == '"':
		value, err := lx.scanString()
		if err != nil {
			return err
		}

		lx.emit(value, TokenString, pos)

		return nil

	case isDigit(ch):
		lx.emit(lx.scanWhile(isDigit), TokenNumber, pos)

		return nil

	case unicode.IsLetter(ch):
		word := lx.scanWhile(unicode.IsLetter)
		if kind, ok := keywords[word]; ok {
			lx.emit(word, kind, pos)
		} else {
			lx.emit(word, TokenIdentifier, pos)
		}

		return nil
	}

	return ErrLex.WithPosition(pos).With(
		slog.String("char", string(ch)),
		slog.Int("code", int(ch)),
	)
}

// scanString reads a double-quoted string literal and returns its decoded
// contents. The escapes \n, \t, \r, and \\ are decoded; a backslash
// followed by any other character is kept verbatim along with that
// character.
func (lx *lexer) scanString() (string, error) {
	start := lx.position()

	lx.advance() // skip opening quote

	var b strings.Builder

	for {
		if lx.eof() {
			return "", ErrUnterminated.WithPosition(start)
		}

		ch := lx.peek()
		lx.advance()

		switch ch {
		case '"':
			return b.String(), nil

		case '\\':
			if lx.eof() {
				return "", ErrUnterminated.WithPosition(start)
			}

			esc := lx.peek()
			lx.advance()

			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte('\\')
				b.WriteRune(esc)
			}

		default:
			b.WriteRune(ch)
		}
	}
}

func (lx *lexer) scanWhile(pred func(rune) bool) string {
	start := lx.pos
	for !lx.eof() && pred(lx.peek()) {
		lx.advance()
	}

	return lx.input[start:lx.pos]
}

func (lx *lexer) emit(value string, kind TokenKind, pos Position) {
	lx.tokens = append(lx.tokens, Token{Value: value, Kind: kind, Pos: pos})
}

// Helper methods

func (lx *lexer) peek() rune {
	if lx.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(lx.input[lx.pos:])

	return r
}

func (lx *lexer) peekN(n int) string {
	if lx.pos+n > len(lx.input) {
		return lx.input[lx.pos:]
	}

	return lx.input[lx.pos : lx.pos+n]
}

func (lx *lexer) advance() {
	if lx.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(lx.input[lx.pos:])

	lx.pos += size
	if r == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
}

func (lx *lexer) eof() bool {
	return lx.pos >= len(lx.input)
}

func (lx *lexer) position() Position {
	return Position{
		Offset: lx.pos,
		Line:   lx.line,
		Column: lx.col,
	}
}

func (lx *lexer) skipWhitespaceAndComments() {
	for !lx.eof() {
		switch ch := lx.peek(); {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.advance()

		case lx.peekN(2) == "//":
			lx.skipLineComment()

		case lx.peekN(2) == "/(":
			lx.skipBlockComment()

		default:
			return
		}
	}
}

func (lx *lexer) skipLineComment() {
	for !lx.eof() && lx.peek() != '\n' {
		lx.advance()
	}
}

func (lx *lexer) skipBlockComment() {
	lx.advance() // skip '/'
	lx.advance() // skip '('

	for !lx.eof() {
		if lx.peekN(2) == ")/" {
			lx.advance()
			lx.advance()

			return
		}

		lx.advance()
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
