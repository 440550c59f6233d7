package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/vcrobe/sfc/compiler"
)

const (
	historyFile = ".sfcc_history"
	promptMain  = "sfc> "
	promptCont  = "...  "
	replBanner  = "sfcc interactive template compiler. Type markup to compile it, :help for commands."
	replHelp    = `:strict   toggle strict mode
:ws       toggle whitespace preservation
:hoist    toggle static hoisting
:quit     exit`
)

// runRepl compiles templates typed at the prompt and prints the generated
// module. Input that ends inside an element, tag or interpolation continues
// on the next line.
func runRepl(opts compiler.Options) int {
	fmt.Println(replBanner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	opts.Filename = "repl.sfc"
	for {
		src, ok := readTemplate(ln, opts.Limits)
		if !ok {
			fmt.Println()
			break
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return 0
			case ":help":
				fmt.Println(replHelp)
			case ":strict":
				opts.StrictMode = !opts.StrictMode
				fmt.Printf("strict mode: %v\n", opts.StrictMode)
			case ":ws":
				opts.PreserveWhitespace = !opts.PreserveWhitespace
				fmt.Printf("preserve whitespace: %v\n", opts.PreserveWhitespace)
			case ":hoist":
				opts.OptimizeStaticNodes = !opts.OptimizeStaticNodes
				fmt.Printf("static hoisting: %v\n", opts.OptimizeStaticNodes)
			default:
				fmt.Printf("unknown command. Type :help for commands.\n")
			}
			continue
		}

		sfc := src
		if !strings.Contains(src, "<template") {
			sfc = "<template>\n" + src + "\n</template>\n"
		}
		res := compiler.Compile(sfc, opts)
		report(opts.Filename, sfc, res)
		fmt.Println(res.Code)
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
	return 0
}

// readTemplate reads lines until they form a template that is not
// incomplete. It returns false at end of input.
func readTemplate(ln *liner.State, limits compiler.Limits) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(promptMain)
		} else {
			line, err = ln.Prompt(promptCont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl-C drops the pending input
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if compiler.Incomplete(src, limits) {
			continue
		}
		return src, true
	}
}
