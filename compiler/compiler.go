// The compiler-package contains the core of our compiler.
//
// In brief we go through a single pass: we drive the lexer one token
// ahead of ourselves and, for every token we consume, immediately
// append bytes to an output chunk. There's no intermediate AST: the
// recursive-descent/precedence-climbing structure below *is* the
// tree, and postfix emission order means the chunk can be fed
// straight to the VM's stack machine.
//
// Parsing follows Pratt's scheme: `expression` parses one "prefix"
// production (a number, a unary minus, a group, a function call, or
// `ans`) and then keeps folding in "infix" productions (the four
// binary operators) for as long as the next token's priority is at
// least as tight as the minimum we were called with. Recursing with
// `priority.Next()` on the right-hand side of a binary operator is
// what makes `1 - 2 - 3` parse as `(1 - 2) - 3` rather than
// `1 - (2 - 3)`.
package compiler

import (
	"github.com/mathvm/mathvm/lexer"
	"github.com/mathvm/mathvm/opcode"
	"github.com/mathvm/mathvm/token"
)

// initialChunkSize is the starting capacity of a Compiler's output
// buffer; Reset preserves whatever capacity the buffer grew to.
const initialChunkSize = 100

// Compiler holds our object-state: the two most recent tokens (prev,
// current) and the opcode chunk we've emitted so far. A Compiler is
// long-lived; callers Reset it between compiles rather than
// allocating a new one, so the chunk's backing array is reused.
type Compiler struct {
	prev    *token.Token
	current *token.Token
	chunk   []byte
}

// New returns a ready-to-use Compiler.
func New() *Compiler {
	return &Compiler{chunk: make([]byte, 0, initialChunkSize)}
}

// Opcodes returns a read-only view of the bytecode emitted by the most
// recent Compile call.
func (c *Compiler) Opcodes() []byte {
	return c.chunk
}

// Reset clears the buffer and the token slots but keeps the buffer's
// capacity, so a REPL can reuse one Compiler across many inputs
// without reallocating on every line.
func (c *Compiler) Reset() {
	c.chunk = c.chunk[:0]
	c.prev = nil
	c.current = nil
}

// Compile drives lx to completion, parsing by operator precedence and
// appending the resulting bytecode to Opcodes(). An empty input
// compiles to an empty opcode stream with no error.
func (c *Compiler) Compile(lx lexer.Scanner) error {
	if err := c.advance(lx); err != nil {
		return err
	}
	if err := c.expression(lx, token.Term); err != nil {
		return err
	}
	if c.current != nil {
		return &Error{Kind: InvalidToken, Token: *c.current}
	}
	return nil
}

// advance shifts current into prev and scans the next token into
// current. A lexer Eof is not an error here: it just means there's no
// current token left, which expression's loop condition already
// handles.
func (c *Compiler) advance(lx lexer.Scanner) error {
	c.prev = c.current
	c.current = nil

	tok, err := lx.Scan()
	if err != nil {
		if le, ok := err.(lexer.Error); ok && le.Kind == lexer.Eof {
			return nil
		}
		return &Error{Kind: FromLexer, Lexer: err}
	}
	c.current = &tok
	return nil
}

// consume requires that current is exactly the given kind, advancing
// past it; otherwise it fails with errKind.
func (c *Compiler) consume(lx lexer.Scanner, kind token.Kind, errKind ErrorKind) error {
	if c.current != nil && c.current.Kind == kind {
		return c.advance(lx)
	}
	return &Error{Kind: errKind}
}

// expression is the precedence-climbing core. It consumes one prefix
// production, then folds in infix productions for as long as the
// lookahead's priority is at least `priority`.
func (c *Compiler) expression(lx lexer.Scanner, priority token.Priority) error {
	before := c.prev
	if err := c.advance(lx); err != nil {
		return err
	}
	if c.prev == nil {
		// Input ran out where an operand was expected. Only a wholly
		// empty input (no token before this point) is accepted.
		if before == nil {
			return nil
		}
		return &Error{Kind: InvalidTokenBefore, Prev: *before}
	}
	if err := c.prefix(lx, *c.prev); err != nil {
		return err
	}

	for c.current != nil && c.current.Priority() >= priority {
		if err := c.advance(lx); err != nil {
			return err
		}
		if c.prev != nil {
			if err := c.infix(lx, *c.prev); err != nil {
				return err
			}
		}
	}
	return nil
}

// prefix emits the production led by a token that can start an
// expression: a literal, a unary minus, a parenthesized group, a
// function call, or `ans`.
func (c *Compiler) prefix(lx lexer.Scanner, prev token.Token) error {
	switch prev.Kind {
	case token.Minus:
		return c.emitUnary(lx)
	case token.Number:
		return c.emitNumber(prev.Digits)
	case token.LeftParen:
		return c.parseGroup(lx)
	case token.Func:
		return c.parseFunc(lx, prev.Func)
	case token.Ans:
		c.chunk = append(c.chunk, byte(opcode.Ans))
		return nil
	default:
		return &Error{Kind: InvalidTokenBefore, Prev: prev, Current: c.current}
	}
}

// infix emits the production led by a binary operator consumed by
// expression's lookahead loop.
func (c *Compiler) infix(lx lexer.Scanner, prev token.Token) error {
	switch prev.Kind {
	case token.Plus, token.Minus, token.Mult, token.Div:
		return c.parseBinary(lx, prev)
	default:
		return &Error{Kind: InvalidToken, Token: prev}
	}
}

// parseBinary parses the right-hand operand at one rung tighter than
// tok's own priority (enforcing left-associativity) and then emits
// the matching opcode.
func (c *Compiler) parseBinary(lx lexer.Scanner, tok token.Token) error {
	if err := c.expression(lx, tok.Priority().Next()); err != nil {
		return err
	}
	switch tok.Kind {
	case token.Plus:
		c.chunk = append(c.chunk, byte(opcode.Plus))
	case token.Minus:
		c.chunk = append(c.chunk, byte(opcode.Minus))
	case token.Mult:
		c.chunk = append(c.chunk, byte(opcode.Mult))
	case token.Div:
		c.chunk = append(c.chunk, byte(opcode.Div))
	default:
		return &Error{Kind: InvalidToken, Token: tok}
	}
	return nil
}

// parseGroup parses a parenthesized sub-expression.
func (c *Compiler) parseGroup(lx lexer.Scanner) error {
	if err := c.expression(lx, token.Term); err != nil {
		return err
	}
	return c.consume(lx, token.RightParen, UnterminedGroup)
}

// parseFunc parses a call to one of the fixed built-in functions:
// `name(` arg (`,` arg)* `)`, with exactly fn.Arity() arguments.
func (c *Compiler) parseFunc(lx lexer.Scanner, fn token.FuncKind) error {
	if err := c.consume(lx, token.LeftParen, MissingFunctionParen); err != nil {
		return err
	}

	arity := fn.Arity()
	if arity > 0 {
		for i := 0; i < arity-1; i++ {
			if err := c.expression(lx, token.Term); err != nil {
				return err
			}
			if err := c.consume(lx, token.Comma, MissingCommaInFunctionCall); err != nil {
				return err
			}
		}
		if err := c.expression(lx, token.Term); err != nil {
			return err
		}
	}

	if err := c.consume(lx, token.RightParen, MissingFunctionParen); err != nil {
		return err
	}
	c.chunk = append(c.chunk, byte(opcode.Func), funcOpcodeID(fn))
	return nil
}
