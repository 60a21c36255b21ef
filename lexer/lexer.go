// Package lexer turns a byte-buffer holding an arithmetic expression
// into a stream of token.Token values, on demand.
package lexer

import (
	"fmt"

	"github.com/mathvm/mathvm/token"
)

// ErrorKind distinguishes the ways scanning can fail.
type ErrorKind byte

// The kinds of lexer error.
const (
	// Eof is a control signal, not a user-facing error: it means no
	// token is left, only whitespace or nothing at all after the
	// cursor.
	Eof ErrorKind = iota
	InvalidChar
	InvalidNumberFormat
)

// Error is returned by Scan. It carries the offending byte (unused for
// Eof) alongside the ErrorKind.
type Error struct {
	Kind ErrorKind
	Char byte
}

func (e Error) Error() string {
	switch e.Kind {
	case Eof:
		return "unexpected end of input"
	case InvalidChar:
		return fmt.Sprintf("invalid character %q", rune(e.Char))
	case InvalidNumberFormat:
		return fmt.Sprintf("invalid number format at %q", rune(e.Char))
	default:
		return "unknown lexer error"
	}
}

// Is lets callers use errors.Is against the Eof sentinel without
// comparing the Char field, which is meaningless for that kind.
func (e Error) Is(target error) bool {
	other, ok := target.(Error)
	return ok && other.Kind == e.Kind
}

// Scanner is implemented by anything that can hand tokens to a
// compiler one at a time. Lexer is the only production implementation;
// tests substitute a mock that plays back a fixed token sequence.
type Scanner interface {
	Scan() (token.Token, error)
}

// Lexer holds our object-state: the source buffer and a byte cursor
// into it. A Lexer is created once per source buffer and discarded
// once that buffer has been fully scanned.
type Lexer struct {
	src   []byte
	index int
}

// New creates a Lexer over src. The Lexer borrows src; it does not
// copy it.
func New(src []byte) *Lexer {
	return &Lexer{src: src}
}

func (l *Lexer) peek() (byte, bool) {
	if l.index >= len(l.src) {
		return 0, false
	}
	return l.src[l.index], true
}

func (l *Lexer) advance() {
	l.index++
}

// consume builds tok after skipping n bytes of matched input.
func (l *Lexer) consume(tok token.Token, n int) token.Token {
	l.index += n
	return tok
}

func (l *Lexer) skipWhitespace() (byte, error) {
	for {
		c, ok := l.peek()
		if !ok {
			return 0, Error{Kind: Eof}
		}
		if c != ' ' && c != '\t' && c != '\n' && c != '\f' && c != '\r' {
			return c, nil
		}
		l.advance()
	}
}

// matches reports whether the bytes at the cursor equal word, without
// consuming anything.
func (l *Lexer) matches(word string) bool {
	if l.index+len(word) > len(l.src) {
		return false
	}
	return string(l.src[l.index:l.index+len(word)]) == word
}

// Scan returns the next token.Token in the buffer, skipping ASCII
// whitespace between tokens.
func (l *Lexer) Scan() (token.Token, error) {
	c, err := l.skipWhitespace()
	if err != nil {
		return token.Token{}, err
	}

	if isDigit(c) {
		return l.consumeNumber()
	}

	switch c {
	case '(':
		return l.consume(token.Token{Kind: token.LeftParen}, 1), nil
	case ')':
		return l.consume(token.Token{Kind: token.RightParen}, 1), nil
	case '+':
		return l.consume(token.Token{Kind: token.Plus}, 1), nil
	case '-':
		return l.consume(token.Token{Kind: token.Minus}, 1), nil
	case '*':
		return l.consume(token.Token{Kind: token.Mult}, 1), nil
	case '/':
		return l.consume(token.Token{Kind: token.Div}, 1), nil
	case ',':
		return l.consume(token.Token{Kind: token.Comma}, 1), nil
	case 'a':
		if l.matches("ans") {
			return l.consume(token.Token{Kind: token.Ans}, 3), nil
		}
		return token.Token{}, Error{Kind: InvalidChar, Char: c}
	case 's':
		if l.matches("sqrt") {
			return l.consume(token.Token{Kind: token.Func, Func: token.Sqrt}, 4), nil
		}
		if l.matches("sin") {
			return l.consume(token.Token{Kind: token.Func, Func: token.Sin}, 3), nil
		}
		return token.Token{}, Error{Kind: InvalidChar, Char: c}
	case 'c':
		if l.matches("cos") {
			return l.consume(token.Token{Kind: token.Func, Func: token.Cos}, 3), nil
		}
		return token.Token{}, Error{Kind: InvalidChar, Char: c}
	case 'l':
		if l.matches("log") {
			return l.consume(token.Token{Kind: token.Func, Func: token.Log}, 3), nil
		}
		return token.Token{}, Error{Kind: InvalidChar, Char: c}
	case 'p':
		if l.matches("pow") {
			return l.consume(token.Token{Kind: token.Func, Func: token.Pow}, 3), nil
		}
		return token.Token{}, Error{Kind: InvalidChar, Char: c}
	default:
		return token.Token{}, Error{Kind: InvalidChar, Char: c}
	}
}

// consumeNumber scans a numeric literal: digits, at most one '.', and
// at most one 'e' with an optional '-' immediately following it.
func (l *Lexer) consumeNumber() (token.Token, error) {
	begin := l.index
	var dot, exponent bool
	var prev byte
	havePrev := false

	for {
		c, ok := l.peek()
		if !ok {
			break
		}

		switch {
		case c == '.':
			if dot || exponent {
				return token.Token{}, Error{Kind: InvalidNumberFormat, Char: c}
			}
			dot = true
		case c == '-':
			if havePrev && prev != 'e' {
				return token.Token{}, Error{Kind: InvalidNumberFormat, Char: c}
			}
		case c == 'e':
			if exponent || (havePrev && prev != '.' && !isDigit(prev)) {
				return token.Token{}, Error{Kind: InvalidNumberFormat, Char: c}
			}
			exponent = true
		case !isDigit(c):
			if havePrev && (prev == 'e' || prev == '.') {
				return token.Token{}, Error{Kind: InvalidNumberFormat, Char: c}
			}
			return token.Token{Kind: token.Number, Digits: l.src[begin:l.index]}, nil
		}

		l.advance()
		prev = c
		havePrev = true
	}
	return token.Token{Kind: token.Number, Digits: l.src[begin:l.index]}, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
