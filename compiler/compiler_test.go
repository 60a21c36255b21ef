package compiler

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/mathvm/mathvm/lexer"
	"github.com/mathvm/mathvm/opcode"
	"github.com/mathvm/mathvm/token"
)

// mockLexer plays back a fixed sequence of tokens, letting compiler
// tests exercise parsing without a real source buffer.
type mockLexer struct {
	tokens []token.Token
	index  int
}

func newMockLexer(tokens ...token.Token) *mockLexer {
	return &mockLexer{tokens: tokens}
}

func (m *mockLexer) Scan() (token.Token, error) {
	if m.index < len(m.tokens) {
		tok := m.tokens[m.index]
		m.index++
		return tok, nil
	}
	return token.Token{}, lexer.Error{Kind: lexer.Eof}
}

func num(digits string) token.Token {
	return token.Token{Kind: token.Number, Digits: []byte(digits)}
}

func tok(kind token.Kind) token.Token {
	return token.Token{Kind: kind}
}

func fn(k token.FuncKind) token.Token {
	return token.Token{Kind: token.Func, Func: k}
}

func i8At(t *testing.T, chunk []byte, i int) float64 {
	t.Helper()
	if chunk[i] != byte(opcode.NumberI8) {
		t.Fatalf("chunk[%d]: expected NumberI8, got %d", i, chunk[i])
	}
	return float64(int8(chunk[i+1]))
}

func numberAt(t *testing.T, chunk []byte, i int) float64 {
	t.Helper()
	if chunk[i] != byte(opcode.Number) {
		t.Fatalf("chunk[%d]: expected Number, got %d", i, chunk[i])
	}
	bits := binary.LittleEndian.Uint64(chunk[i+1 : i+9])
	return math.Float64frombits(bits)
}

func TestSingleNumber(t *testing.T) {
	lx := newMockLexer(num("1"))
	c := New()
	if err := c.Compile(lx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := i8At(t, c.Opcodes(), 0); got != 1.0 {
		t.Errorf("expected 1.0, got %v", got)
	}
}

func TestSingleNegativeNumber(t *testing.T) {
	lx := newMockLexer(tok(token.Minus), num("1"))
	c := New()
	if err := c.Compile(lx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chunk := c.Opcodes()
	if got := i8At(t, chunk, 0); got != 1.0 {
		t.Errorf("expected 1.0, got %v", got)
	}
	if chunk[2] != byte(opcode.Negate) {
		t.Errorf("expected Negate, got %d", chunk[2])
	}
}

func TestSumOfTwoNumbers(t *testing.T) {
	lx := newMockLexer(num("1"), tok(token.Plus), num("2"))
	c := New()
	if err := c.Compile(lx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chunk := c.Opcodes()
	if i8At(t, chunk, 0) != 1.0 || i8At(t, chunk, 2) != 2.0 {
		t.Fatalf("unexpected operands in %v", chunk)
	}
	if chunk[4] != byte(opcode.Plus) {
		t.Errorf("expected Plus, got %d", chunk[4])
	}
}

func TestGrouping(t *testing.T) {
	// 2 * (1 + 1.5)
	lx := newMockLexer(
		num("2"), tok(token.Mult), tok(token.LeftParen),
		num("1"), tok(token.Plus), num("1.5"), tok(token.RightParen),
	)
	c := New()
	if err := c.Compile(lx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chunk := c.Opcodes()
	if i8At(t, chunk, 0) != 2.0 {
		t.Fatalf("unexpected first operand in %v", chunk)
	}
	if i8At(t, chunk, 2) != 1.0 {
		t.Fatalf("unexpected second operand in %v", chunk)
	}
	if numberAt(t, chunk, 4) != 1.5 {
		t.Fatalf("unexpected third operand in %v", chunk)
	}
	if chunk[13] != byte(opcode.Plus) {
		t.Errorf("expected Plus at 13, got %d", chunk[13])
	}
	if len(chunk) != 15 || chunk[14] != byte(opcode.Mult) {
		t.Errorf("expected trailing Mult, got %v", chunk)
	}
}

func TestLongComplexExpression(t *testing.T) {
	// 1 + (2e-3 / 4 + 2) * 2 - 1
	lx := newMockLexer(
		num("1"), tok(token.Plus), tok(token.LeftParen),
		num("2e-3"), tok(token.Div), num("4"), tok(token.Plus), num("2"), tok(token.RightParen),
		tok(token.Mult), num("2"), tok(token.Minus), num("1"),
	)
	c := New()
	if err := c.Compile(lx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chunk := c.Opcodes()

	if i8At(t, chunk, 0) != 1.0 {
		t.Fatalf("expected 1.0 at 0")
	}
	if numberAt(t, chunk, 2) != 2e-3 {
		t.Fatalf("expected 2e-3 at 2")
	}
	if i8At(t, chunk, 11) != 4.0 {
		t.Fatalf("expected 4.0 at 11")
	}
	if chunk[13] != byte(opcode.Div) {
		t.Fatalf("expected Div at 13")
	}
	if i8At(t, chunk, 14) != 2.0 {
		t.Fatalf("expected 2.0 at 14")
	}
	if chunk[16] != byte(opcode.Plus) {
		t.Fatalf("expected Plus at 16")
	}
	if i8At(t, chunk, 17) != 2.0 {
		t.Fatalf("expected 2.0 at 17")
	}
	if chunk[19] != byte(opcode.Mult) {
		t.Fatalf("expected Mult at 19")
	}
	if chunk[20] != byte(opcode.Plus) {
		t.Fatalf("expected Plus at 20")
	}
	if i8At(t, chunk, 21) != 1.0 {
		t.Fatalf("expected 1.0 at 21")
	}
	if chunk[23] != byte(opcode.Minus) {
		t.Fatalf("expected Minus at 23")
	}
}

func TestFunctionCalls(t *testing.T) {
	tests := []struct {
		name string
		kind token.FuncKind
		id   opcode.FuncID
	}{
		{"sin", token.Sin, opcode.Sin},
		{"cos", token.Cos, opcode.Cos},
		{"log", token.Log, opcode.Log},
		{"sqrt", token.Sqrt, opcode.Sqrt},
	}

	for _, tt := range tests {
		lx := newMockLexer(fn(tt.kind), tok(token.LeftParen), num("4"), tok(token.RightParen))
		c := New()
		if err := c.Compile(lx); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		chunk := c.Opcodes()
		if i8At(t, chunk, 0) != 4.0 {
			t.Fatalf("%s: expected 4.0 argument", tt.name)
		}
		if chunk[2] != byte(opcode.Func) || chunk[3] != byte(tt.id) {
			t.Errorf("%s: expected Func/%d, got %v", tt.name, tt.id, chunk[2:4])
		}
	}
}

func TestPow(t *testing.T) {
	lx := newMockLexer(fn(token.Pow), tok(token.LeftParen), num("3"), tok(token.Comma), num("2"), tok(token.RightParen))
	c := New()
	if err := c.Compile(lx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chunk := c.Opcodes()
	if i8At(t, chunk, 0) != 3.0 || i8At(t, chunk, 2) != 2.0 {
		t.Fatalf("unexpected operands: %v", chunk)
	}
	if chunk[4] != byte(opcode.Func) || chunk[5] != byte(opcode.Pow) {
		t.Errorf("expected Func/Pow, got %v", chunk[4:6])
	}
}

func TestAns(t *testing.T) {
	lx := newMockLexer(tok(token.Ans))
	c := New()
	if err := c.Compile(lx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chunk := c.Opcodes(); len(chunk) != 1 || chunk[0] != byte(opcode.Ans) {
		t.Errorf("expected [Ans], got %v", chunk)
	}
}

func TestEmptyInputCompiles(t *testing.T) {
	lx := newMockLexer()
	c := New()
	if err := c.Compile(lx); err != nil {
		t.Fatalf("expected empty input to compile, got %v", err)
	}
	if len(c.Opcodes()) != 0 {
		t.Errorf("expected empty opcode stream, got %v", c.Opcodes())
	}
}

func TestMissingOperatorIsInvalidToken(t *testing.T) {
	lx := newMockLexer(num("3"), num("3"))
	c := New()
	err := c.Compile(lx)
	if err == nil {
		t.Fatal("expected an error")
	}
	cerr, ok := err.(*Error)
	if !ok || cerr.Kind != InvalidToken {
		t.Errorf("expected InvalidToken, got %v", err)
	}
}

func TestEmptyGroupIsInvalidTokenBefore(t *testing.T) {
	// "1 + ()"
	lx := newMockLexer(num("1"), tok(token.Plus), tok(token.LeftParen), tok(token.RightParen))
	c := New()
	err := c.Compile(lx)
	if err == nil {
		t.Fatal("expected an error")
	}
	cerr, ok := err.(*Error)
	if !ok || cerr.Kind != InvalidTokenBefore {
		t.Errorf("expected InvalidTokenBefore, got %v", err)
	}
	if cerr.Prev.Kind != token.RightParen || cerr.Current != nil {
		t.Errorf("expected prev=')' current=nil, got prev=%v current=%v", cerr.Prev, cerr.Current)
	}
}

func TestUnterminatedGroup(t *testing.T) {
	// "1 + (2 + 1 * (1 - 3)"
	lx := newMockLexer(
		num("1"), tok(token.Plus), tok(token.LeftParen),
		num("2"), tok(token.Plus), num("1"), tok(token.Mult), tok(token.LeftParen),
		num("1"), tok(token.Minus), num("3"), tok(token.RightParen),
	)
	c := New()
	err := c.Compile(lx)
	if err == nil {
		t.Fatal("expected an error")
	}
	cerr, ok := err.(*Error)
	if !ok || cerr.Kind != UnterminedGroup {
		t.Errorf("expected UnterminedGroup, got %v", err)
	}
}

func TestResetClearsStateButKeepsCapacity(t *testing.T) {
	lx := newMockLexer(num("1"), tok(token.Plus), num("2"))
	c := New()
	if err := c.Compile(lx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstLen := len(c.Opcodes())
	capBefore := cap(c.chunk)

	c.Reset()
	if len(c.Opcodes()) != 0 {
		t.Errorf("expected empty chunk after reset")
	}

	lx2 := newMockLexer(num("1"), tok(token.Plus), num("2"))
	if err := c.Compile(lx2); err != nil {
		t.Fatalf("unexpected error on recompile: %v", err)
	}
	if len(c.Opcodes()) != firstLen {
		t.Errorf("expected idempotent recompile, got different length")
	}
	if cap(c.chunk) != capBefore {
		t.Errorf("expected Reset to preserve capacity: before=%d after=%d", capBefore, cap(c.chunk))
	}
}
