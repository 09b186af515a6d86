// Command darc is the CLI front end for the darlang compiler core: it
// parses a source file, runs it through the type-inference and
// specialization pipeline, and hands the result to a back end.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/dar-lang/darc/internal/codegen"
	"github.com/dar-lang/darc/internal/config"
	"github.com/dar-lang/darc/internal/diag"
	"github.com/dar-lang/darc/internal/driver"
	"github.com/dar-lang/darc/internal/lexer"
	"github.com/dar-lang/darc/internal/parser"
	"github.com/dar-lang/darc/internal/trace"
)

var (
	Version = "dev"
	Commit  = "unknown"

	bold   = color.New(color.Bold).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printHelp()
		return 2
	}

	switch args[0] {
	case "-version", "--version":
		printVersion()
		return 0
	case "-help", "--help", "help":
		printHelp()
		return 0
	case "compile":
		return runCompile(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), args[0])
		printHelp()
		return 2
	}
}

func runCompile(args []string) int {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	out := fs.String("o", "", "output IR path (default stdout)")
	traceFlag := fs.Bool("trace", false, "emit a JSON trace of every specialization decision")
	intrinsicsPath := fs.String("intrinsics", "", "path to an intrinsic manifest (default: embedded manifest)")
	colorFlag := fs.Bool("color", false, "force colorized diagnostics")
	noColorFlag := fs.Bool("no-color", false, "disable colorized diagnostics")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *colorFlag && *noColorFlag {
		fmt.Fprintf(os.Stderr, "%s: -color and -no-color are mutually exclusive\n", red("Error"))
		return 2
	}
	if *colorFlag {
		color.NoColor = false
	}
	if *noColorFlag {
		color.NoColor = true
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s: expected exactly one input file\n", red("Error"))
		fmt.Fprintln(os.Stderr, "Usage: darc compile [flags] <input.src>")
		return 2
	}
	inputPath := fs.Arg(0)

	content, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file %q: %v\n", red("Error"), inputPath, err)
		return 2
	}

	l := lexer.New(string(content), inputPath)
	p := parser.New(l)
	mod, err := p.ParseModule()
	if err != nil {
		printErr(err)
		return 1
	}

	manifest, err := loadManifest(*intrinsicsPath)
	if err != nil {
		printErr(err)
		return 1
	}

	var rec *trace.Recorder
	if *traceFlag {
		rec = trace.NewRecorder()
	}

	result, err := driver.Compile(context.Background(), mod, driver.Options{
		Manifest: manifest,
		Trace:    rec,
	})
	if err != nil {
		printErr(err)
		return 1
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot create output file %q: %v\n", red("Error"), *out, err)
			return 2
		}
		defer f.Close()
		w = f
	}

	backend := codegen.NewDisassembler(w)
	if err := codegen.EmitAll(backend, result.Specializations); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		return 1
	}

	if rec != nil {
		if err := rec.WriteJSON(os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "%s: writing trace: %v\n", yellow("Warning"), err)
		}
	}

	return 0
}

func loadManifest(path string) (*config.IntrinsicManifest, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

func printErr(err error) {
	if rep, ok := diag.As(err); ok {
		fmt.Fprintln(os.Stderr, rep.Print())
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
}

func printVersion() {
	fmt.Printf("darc %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("commit: %s\n", Commit)
	}
}

func printHelp() {
	fmt.Println(bold("darc - the darlang compiler"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  darc <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s [flags] <file>   Compile a source file\n", cyan("compile"))
	fmt.Println()
	fmt.Println("Compile flags:")
	fmt.Println("  -o <path>          Output IR path (default stdout)")
	fmt.Println("  -trace             Emit a JSON specialization trace to stderr")
	fmt.Println("  -intrinsics <file> Load an intrinsic manifest instead of the embedded default")
	fmt.Println("  -color             Force colorized diagnostics")
	fmt.Println("  -no-color          Disable colorized diagnostics")
	fmt.Println()
	fmt.Println("Exit codes: 0 success, 1 compile error, 2 usage error")
}
