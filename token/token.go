// Package token contains the tokens that the lexer will produce when
// parsing an input-expression, and the precedence ladder the compiler
// climbs while consuming them.
package token

// FuncKind identifies one of the fixed, built-in functions.
type FuncKind byte

// The known function kinds, in the order their byte-ids appear in the
// compiled bytecode (see the opcode package).
const (
	Sqrt FuncKind = iota
	Log
	Sin
	Cos
	Pow
)

// Arity returns the number of arguments fn expects.
func (fn FuncKind) Arity() int {
	if fn == Pow {
		return 2
	}
	return 1
}

// String renders a FuncKind the way it appears in source text.
func (fn FuncKind) String() string {
	switch fn {
	case Sqrt:
		return "sqrt"
	case Log:
		return "log"
	case Sin:
		return "sin"
	case Cos:
		return "cos"
	case Pow:
		return "pow"
	default:
		return "<unknown func>"
	}
}

// Kind distinguishes the variants a Token can hold.
type Kind byte

// The token kinds the lexer may produce.
const (
	Number Kind = iota
	LeftParen
	RightParen
	Plus
	Minus
	Mult
	Div
	Comma
	Ans
	Func
)

// Token is a single lexical unit. A Number token borrows its digits
// directly from the source buffer the lexer was created with; every
// other kind carries no payload beyond its Kind (Func additionally
// carries which function it names).
type Token struct {
	Kind   Kind
	Digits []byte
	Func   FuncKind
}

// String renders a Token the way it appears in an error message.
func (t Token) String() string {
	switch t.Kind {
	case Number:
		return string(t.Digits)
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Mult:
		return "*"
	case Div:
		return "/"
	case Comma:
		return ","
	case Ans:
		return "ans"
	case Func:
		return t.Func.String()
	default:
		return "<unknown token>"
	}
}

// Priority is a rung on the precedence ladder. Priorities are totally
// ordered; a higher priority binds tighter.
type Priority byte

// The ladder, low to high.
const (
	Null Priority = iota
	CommaPriority
	NumberPriority
	Term
	Factor
	Unary
	Group
)

// Next returns the rung immediately above p. Recursing at p.Next()
// is how the compiler enforces left-associativity for binary
// operators. Group is a fixed point: nothing binds tighter than a
// parenthesized group or a function call's argument list.
func (p Priority) Next() Priority {
	switch p {
	case Null:
		return CommaPriority
	case CommaPriority:
		return NumberPriority
	case NumberPriority:
		return Term
	case Term:
		return Factor
	case Factor:
		return Unary
	default: // Unary, Group
		return Group
	}
}

// Priority reports where t sits on the precedence ladder.
func (t Token) Priority() Priority {
	switch t.Kind {
	case Number, Ans:
		return NumberPriority
	case LeftParen:
		return Group
	case RightParen:
		return Null
	case Plus, Minus:
		return Term
	case Mult, Div:
		return Factor
	case Func:
		return Factor
	case Comma:
		return CommaPriority
	default:
		return Null
	}
}
