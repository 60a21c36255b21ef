// generator.go contains the code for emitting bytecode: one function
// per leaf instruction, each appending bytes to the chunk.

package compiler

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/mathvm/mathvm/lexer"
	"github.com/mathvm/mathvm/opcode"
	"github.com/mathvm/mathvm/token"
)

// emitUnary parses the operand of a unary minus at Unary priority
// (binding tighter than any binary operator) and emits Negate.
func (c *Compiler) emitUnary(lx lexer.Scanner) error {
	if err := c.expression(lx, token.Unary); err != nil {
		return err
	}
	c.chunk = append(c.chunk, byte(opcode.Negate))
	return nil
}

// emitNumber parses digits as a float64 and appends the matching
// literal opcode: NumberI8 when the value is integral and fits in a
// signed byte, Number (with an 8-byte little-endian payload)
// otherwise.
func (c *Compiler) emitNumber(digits []byte) error {
	n, err := strconv.ParseFloat(string(digits), 64)
	if err != nil {
		return &Error{Kind: InvalidNumber, Digits: digits}
	}

	if n == math.Trunc(n) && n >= -128 && n <= 127 {
		c.chunk = append(c.chunk, byte(opcode.NumberI8), byte(int8(n)))
		return nil
	}

	c.chunk = append(c.chunk, byte(opcode.Number))
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(n))
	c.chunk = append(c.chunk, buf[:]...)
	return nil
}

// funcOpcodeID maps a token.FuncKind to the byte the VM expects to
// follow a Func opcode. The two enums are numbered identically today;
// this indirection exists so the lexer's vocabulary and the wire
// format can diverge without a silent miscompile.
func funcOpcodeID(fn token.FuncKind) byte {
	switch fn {
	case token.Sqrt:
		return byte(opcode.Sqrt)
	case token.Log:
		return byte(opcode.Log)
	case token.Sin:
		return byte(opcode.Sin)
	case token.Cos:
		return byte(opcode.Cos)
	case token.Pow:
		return byte(opcode.Pow)
	default:
		panic("unreachable: unknown FuncKind")
	}
}
