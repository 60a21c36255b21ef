// Package repl is the interactive shell: it reads one line at a time
// with history and line-editing, runs it through one long-lived
// compiler/VM pair, and prints either a result or an error, following
// the prompt/error/ans-update protocol of the pipeline it wraps.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/mathvm/mathvm/compiler"
	"github.com/mathvm/mathvm/internal/config"
	"github.com/mathvm/mathvm/lexer"
	"github.com/mathvm/mathvm/vm"
)

// REPL holds the long-lived state shared across lines: one Compiler,
// one VirtualMachine (both Reset between lines rather than
// reallocated), and the last successful result, if any.
type REPL struct {
	cfg      *config.Config
	compiler *compiler.Compiler
	vm       *vm.VirtualMachine
	ans      *float64
}

// New returns a REPL ready to Run.
func New(cfg *config.Config) *REPL {
	return &REPL{
		cfg:      cfg,
		compiler: compiler.New(),
		vm:       vm.New(nil),
	}
}

// Run drives the read-eval-print loop until the input stream is
// exhausted (EOF, ^D). An interrupt (^C) discards the current line and
// the loop goes on.
func (r *REPL) Run(out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.cfg.REPL.Prompt,
		HistoryFile:     r.cfg.REPL.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		return fmt.Errorf("initializing readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		r.evalLine(out, line)
	}
}

// evalLine runs one line and prints its outcome, updating r.ans on
// success and leaving it untouched on failure (unless the config says
// to drop it too).
func (r *REPL) evalLine(out io.Writer, line string) {
	r.compiler.Reset()
	lx := lexer.New([]byte(line))

	if err := r.compiler.Compile(lx); err != nil {
		fmt.Fprintf(out, "Compiler error: %s\n", err)
		if !r.cfg.REPL.KeepAnsOnError {
			r.ans = nil
		}
		return
	}

	r.vm.Reset(r.ans)
	result, err := r.vm.Interpret(r.compiler.Opcodes())
	if err != nil {
		fmt.Fprintf(out, "Virtual machine error: %s\n", err)
		if !r.cfg.REPL.KeepAnsOnError {
			r.ans = nil
		}
		return
	}

	r.ans = &result
	fmt.Fprintf(out, "$ %s\n", r.cfg.FormatResult(result))
}
