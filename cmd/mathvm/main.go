// Command mathvm evaluates arithmetic expressions: one-shot from an
// argument or a file, interactively in a REPL, or through a graphical
// button grid. It is the thin driver around the internal/app,
// internal/repl, and internal/guiapp packages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mathvm/mathvm/compiler"
	"github.com/mathvm/mathvm/internal/app"
	"github.com/mathvm/mathvm/internal/config"
	"github.com/mathvm/mathvm/internal/guiapp"
	"github.com/mathvm/mathvm/internal/repl"
	"github.com/mathvm/mathvm/lexer"
)

var (
	debug      bool
	configPath string
	precision  int
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mathvm",
		Short: "Compile and run arithmetic expressions on a small bytecode VM",
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "dump compiled opcodes before running")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().IntVar(&precision, "precision", -1, "decimal places in the printed result (-1 uses %g)")

	root.AddCommand(evalCmd(), runCmd(), replCmd(), guiCmd())
	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if precision != -1 {
		cfg.Display.Precision = precision
	}
	return cfg, nil
}

func evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a single expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return evaluateOnce(cmd, []byte(args[0]))
		},
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Evaluate the expression stored in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return evaluateOnce(cmd, src)
		},
	}
}

func evaluateOnce(cmd *cobra.Command, src []byte) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if debug {
		dumpOpcodes(cmd, src)
	}

	result, err := app.Run(src, nil)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cfg.FormatResult(result))
	return nil
}

// dumpOpcodes prints the compiled chunk's opcode trace without
// interpreting it, for --debug. A compile failure here prints nothing;
// the evaluation that follows reports it through the normal error path.
func dumpOpcodes(cmd *cobra.Command, src []byte) {
	c := compiler.New()
	if err := c.Compile(lexer.New(src)); err != nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "opcodes: % x\n", c.Opcodes())
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return repl.New(cfg).Run(cmd.OutOrStdout())
		},
	}
}

func guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the graphical button-grid calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			guiapp.Run(cfg)
			return nil
		},
	}
}
