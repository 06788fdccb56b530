// Command fern is the reference driver described in spec.md §6: it reads
// a source file, runs the lex/parse/check/emit pipeline, and (for
// `build`) shells out to the external `qbe` tool and a C compiler/linker
// to produce an executable. Subcommand layout is grounded on the pack's
// aledsdavies-opal `cmd/devcmd` driver (root command + cobra.Command
// subcommands, package-level `var ...Cmd = &cobra.Command{...}`), which
// is the one repo in the retrieved pack shaped like a multi-subcommand
// compiler-adjacent CLI rather than a single-shot transpiler.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fern-lang/fern/internal/arena"
	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/codegen"
	"github.com/fern-lang/fern/internal/diag"
	"github.com/fern-lang/fern/internal/lexer"
	"github.com/fern-lang/fern/internal/parser"
	"github.com/fern-lang/fern/internal/sema"
	"github.com/spf13/cobra"
)

var qbePath string // overrides the `qbe` binary looked up on PATH, for testing

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fern",
	Short: "Fern is an ahead-of-time compiler for the Fern language",
	Long: `Fern compiles .fn (or .🌿) source files to QBE intermediate
representation and, via "fern build", on to a native executable.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&qbePath, "qbe", "qbe", "path to the qbe binary")
	rootCmd.AddCommand(buildCmd, checkCmd, emitCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build <file>",
	Short: "Compile a source file to a native executable",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Lex, parse, and type-check a source file without emitting code",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

var emitCmd = &cobra.Command{
	Use:   "emit <file>",
	Short: "Print the compiled QBE IR to standard output",
	Args:  cobra.ExactArgs(1),
	RunE:  runEmit,
}

// pipeline holds the product of every stage up to (but not including)
// code generation, plus every diagnostic collected along the way —
// spec.md §7's "resilient" lexer/parser/checker posture means a single
// run can carry lex, parse, and type diagnostics all at once.
type pipeline struct {
	path    string
	program *ast.Program
	checker *sema.Checker
	diags   diag.List
}

func compile(path string) (*pipeline, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	a := arena.New(0)
	defer a.Destroy()

	lx := lexer.New(a, string(src))
	p := parser.New(lx.Tokens())
	prog, perrs := p.ParseProgram()

	pl := &pipeline{path: path, program: prog}
	pl.diags = append(pl.diags, lx.Errors...)
	pl.diags = append(pl.diags, perrs...)

	if lx.Errors.HasErrors() || perrs.HasErrors() {
		return pl, nil
	}

	checker := sema.NewChecker()
	checker.CheckProgram(prog)
	pl.checker = checker
	pl.diags = append(pl.diags, checker.Errors...)
	return pl, nil
}

// report prints every diagnostic to stderr prefixed with the source file
// name, per spec.md §7's "User presentation".
func (pl *pipeline) report() {
	for _, d := range pl.diags {
		fmt.Fprintf(os.Stderr, "%s: %s\n", pl.path, d)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	pl, err := compile(args[0])
	if err != nil {
		return err
	}
	pl.report()
	if pl.diags.HasErrors() {
		return fmt.Errorf("type errors in %s", args[0])
	}
	fmt.Printf("✓ %s: No type errors\n", args[0])
	return nil
}

func runEmit(cmd *cobra.Command, args []string) error {
	pl, err := compile(args[0])
	if err != nil {
		return err
	}
	pl.report()
	if pl.diags.HasErrors() {
		return fmt.Errorf("cannot emit IR for %s: has errors", args[0])
	}
	e := codegen.New()
	e.EmitProgram(pl.program, pl.checker)
	return e.Emit(os.Stdout)
}

func runBuild(cmd *cobra.Command, args []string) error {
	path := args[0]
	pl, err := compile(path)
	if err != nil {
		return err
	}
	pl.report()
	if pl.diags.HasErrors() {
		return fmt.Errorf("cannot build %s: has errors", path)
	}

	e := codegen.New()
	e.EmitProgram(pl.program, pl.checker)

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	irPath := base + ".qbe"
	asmPath := base + ".s"
	if err := e.Write(irPath); err != nil {
		return fmt.Errorf("writing IR: %w", err)
	}

	// spec.md §6: the driver "invokes the external qbe tool to produce
	// assembly, then a system C compiler to assemble and link against the
	// runtime".
	qbeCmd := exec.Command(qbePath, "-o", asmPath, irPath)
	qbeCmd.Stderr = os.Stderr
	if err := qbeCmd.Run(); err != nil {
		return fmt.Errorf("qbe: %w", err)
	}

	ccCmd := exec.Command("cc", "-o", base, asmPath, "-lfernrt")
	ccCmd.Stderr = os.Stderr
	if err := ccCmd.Run(); err != nil {
		return fmt.Errorf("cc: %w", err)
	}

	fmt.Printf("✓ built %s\n", base)
	return nil
}
