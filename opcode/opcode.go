// Package opcode contains the instruction tags the compiler emits and
// the VM decodes: a single enum of "things the compiler must generate
// code for", one constant per instruction, plus the function id table
// that both the compiler and the VM need to agree on.
//
// Each tag is encoded directly as a byte in the compiled chunk, with
// the payload, if any, documented alongside it.
package opcode

// Op is a single byte opcode tag.
type Op byte

// The opcode set. Payload, if any, immediately follows the tag byte
// in the compiled chunk.
const (
	// Number pushes the 8-byte little-endian float64 that follows.
	Number Op = iota

	// Plus pops a, b (in that order) and pushes b+a.
	Plus

	// Minus pops a, b and pushes b-a.
	Minus

	// Mult pops a, b and pushes b*a.
	Mult

	// Div pops a, b and pushes b/a.
	Div

	// Negate pops a and pushes -a.
	Negate

	// Func pops the arguments for the function named by the byte
	// that follows and pushes its result.
	Func

	// Ans pushes the VM's saved answer, if one exists.
	Ans

	// NumberI8 pushes the signed byte that follows, widened to
	// float64. Used instead of Number when the literal is integral
	// and fits in [-128, 127].
	NumberI8
)

// String names an Op the way it would appear in a trace/disassembly.
func (o Op) String() string {
	switch o {
	case Number:
		return "NUMBER"
	case Plus:
		return "PLUS"
	case Minus:
		return "MINUS"
	case Mult:
		return "MULT"
	case Div:
		return "DIV"
	case Negate:
		return "NEGATE"
	case Func:
		return "FUNC"
	case Ans:
		return "ANS"
	case NumberI8:
		return "NUMBER_I8"
	default:
		return "<invalid opcode>"
	}
}

// FuncID is the byte payload that follows a Func opcode, identifying
// which of the fixed built-in functions to call.
type FuncID byte

// The function ids, matching token.FuncKind's numbering.
const (
	Sqrt FuncID = iota
	Log
	Sin
	Cos
	Pow
)
