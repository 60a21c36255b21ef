package compiler

import (
	"fmt"

	"github.com/mathvm/mathvm/token"
)

// ErrorKind distinguishes the ways compilation can fail.
type ErrorKind int

// The kinds of compiler error.
const (
	FromLexer ErrorKind = iota
	InvalidNumber
	InvalidToken
	InvalidTokenBefore
	UnterminedGroup
	MissingFunctionParen
	MissingCommaInFunctionCall
)

// Error reports why Compile failed. Only the fields relevant to Kind
// are populated; it carries the minimum context needed to reproduce
// the failure, per the token or digit slice that triggered it.
type Error struct {
	Kind ErrorKind

	// FromLexer
	Lexer error

	// InvalidNumber
	Digits []byte

	// InvalidToken
	Token token.Token

	// InvalidTokenBefore
	Prev    token.Token
	Current *token.Token
}

func (e *Error) Error() string {
	switch e.Kind {
	case FromLexer:
		return fmt.Sprintf("lexer error: %s", e.Lexer)
	case InvalidNumber:
		return fmt.Sprintf("invalid number literal %q", e.Digits)
	case InvalidToken:
		return fmt.Sprintf("invalid token %q", e.Token)
	case InvalidTokenBefore:
		if e.Current != nil {
			return fmt.Sprintf("invalid token %q before %q", e.Prev, *e.Current)
		}
		return fmt.Sprintf("invalid token %q before end of input", e.Prev)
	case UnterminedGroup:
		return "unterminated group: missing ')'"
	case MissingFunctionParen:
		return "missing '(' or ')' in function call"
	case MissingCommaInFunctionCall:
		return "missing ',' between function arguments"
	default:
		return "unknown compiler error"
	}
}

// Unwrap exposes the underlying lexer.Error for FromLexer so callers
// can use errors.As against either layer.
func (e *Error) Unwrap() error {
	if e.Kind == FromLexer {
		return e.Lexer
	}
	return nil
}

// Is lets callers use errors.Is against a bare Error{Kind: ...} value
// without having to populate every field.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == e.Kind
}
