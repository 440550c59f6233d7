package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterh/liner"

	"github.com/vcrobe/sfc/compiler"
	"github.com/vcrobe/sfc/console"
)

func main() {
	// --- CLI Flags ---
	// The '-in' flag specifies the source directory to scan for components.
	inDir := flag.String("in", "", "The source directory to scan for *.sfc files.")
	// The '-file' flag compiles a single component instead of a directory.
	inFile := flag.String("file", "", "A single *.sfc file to compile.")
	// The '-out' flag only applies to -file; '-' writes to stdout.
	outPath := flag.String("out", "", "Output path for -file (default: <file>.go, '-' for stdout).")
	// The '-dev' flag enables hot reload ids and source maps.
	devMode := flag.Bool("dev", false, "Enable development mode (hot reload ids, source maps)")
	strict := flag.Bool("strict", false, "Abort a component on its first error and emit a diagnostic module")
	repl := flag.Bool("repl", false, "Start an interactive template compiler")
	pkgName := flag.String("pkg", "", "Package name for components outside a Go package")
	keepWhitespace := flag.Bool("keep-whitespace", false, "Keep whitespace-only text between elements")
	flag.Parse()

	console.SetOutput(os.Stdout, os.Stderr, liner.TerminalSupported())

	opts := compiler.DefaultOptions()
	opts.StrictMode = *strict
	opts.PreserveWhitespace = *keepWhitespace
	opts.HotReload = *devMode
	opts.GenerateSourceMaps = *devMode
	if *pkgName != "" {
		opts.PackageName = *pkgName
	}

	switch {
	case *repl:
		os.Exit(runRepl(opts))
	case *inFile != "":
		if err := compileFile(*inFile, *outPath, opts); err != nil {
			log.Fatalf("Compilation failed: %v", err)
		}
	default:
		dir := *inDir
		if dir == "" {
			dir = "."
		}
		console.Log("Starting compilation...")
		console.Log("Source directory:", dir)
		if *devMode {
			console.Log("Development mode: ENABLED")
		}
		if err := compileDir(dir, opts); err != nil {
			log.Fatalf("Compilation failed: %v", err)
		}
	}
}

func compileFile(path, out string, opts compiler.Options) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	opts.Filename = path
	res := compiler.Compile(string(src), opts)
	report(path, string(src), res)

	if out == "-" {
		fmt.Print(res.Code)
		return nil
	}
	if out == "" {
		out = path + ".go"
	}
	if err := os.WriteFile(out, []byte(res.Code), 0o644); err != nil {
		return err
	}
	if res.Map != "" {
		if err := os.WriteFile(out+".map", []byte(res.Map), 0o644); err != nil {
			return err
		}
	}
	if len(res.Errors) > 0 {
		return fmt.Errorf("%s: %d error(s)", path, len(res.Errors))
	}
	console.Log("Compiled", path, "to", out)
	return nil
}

func compileDir(dir string, opts compiler.Options) error {
	results, err := compiler.CompileDir(dir, opts)
	if err != nil {
		return err
	}
	console.Log(fmt.Sprintf("Discovered %d component(s).", len(results)))

	failed := 0
	for _, r := range results {
		src, _ := os.ReadFile(r.Source)
		report(r.Source, string(src), r.Result)
		if len(r.Result.Errors) > 0 {
			failed++
			continue
		}
		if r.Result.Map != "" {
			if err := os.WriteFile(r.Output+".map", []byte(r.Result.Map), 0o644); err != nil {
				return err
			}
		}
		console.Log("Compiled", r.Output)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d component(s) had errors", failed, len(results))
	}
	console.Log("Compilation completed successfully!")
	return nil
}

// report prints warnings and errors with source context to stderr.
func report(path, src string, res *compiler.Result) {
	for _, w := range res.Warnings {
		console.Warning(compiler.FormatMessage(path, src, w))
	}
	for _, e := range res.Errors {
		console.Error(compiler.FormatMessage(path, src, e))
	}
}
