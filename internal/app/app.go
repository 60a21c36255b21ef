// Package app wires the core packages together into the single
// one-shot evaluation entry point every shell (CLI, REPL, GUI) drives
// the pipeline through.
package app

import (
	"fmt"

	"github.com/mathvm/mathvm/compiler"
	"github.com/mathvm/mathvm/lexer"
	"github.com/mathvm/mathvm/vm"
)

// Error wraps whichever layer rejected src, keeping that layer's error
// reachable via errors.As/errors.Unwrap.
type Error struct {
	// Stage names which layer produced Err: "compile" or "interpret".
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Run lexes, compiles and interprets src in one shot, optionally
// seeding the VM's `ans` from a previous result. It is the Go
// equivalent of running one line through a fresh Lexer, Compiler and
// VirtualMachine.
func Run(src []byte, ans *float64) (float64, error) {
	lx := lexer.New(src)

	c := compiler.New()
	if err := c.Compile(lx); err != nil {
		return 0, &Error{Stage: "compile", Err: err}
	}

	machine := vm.New(ans)
	result, err := machine.Interpret(c.Opcodes())
	if err != nil {
		return 0, &Error{Stage: "interpret", Err: err}
	}
	return result, nil
}
