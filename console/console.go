package console

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
	color            = true
)

func red(s string) string    { return "\x1b[31m" + s + "\x1b[0m" }
func yellow(s string) string { return "\x1b[33m" + s + "\x1b[0m" }

// SetOutput redirects Log to w and Warning/Error to errW. Color codes are
// only written when enabled.
func SetOutput(w, errW io.Writer, enableColor bool) {
	mu.Lock()
	defer mu.Unlock()
	out, errOut, color = w, errW, enableColor
}

// Log prints a progress line.
func Log(args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, args...)
}

// Warning prints a warning line to the error stream.
func Warning(args ...any) {
	write("Warning: ", yellow, args)
}

// Error prints an error line to the error stream.
func Error(args ...any) {
	write("Compilation Error: ", red, args)
}

func write(prefix string, paint func(string) string, args []any) {
	mu.Lock()
	defer mu.Unlock()
	msg := prefix + fmt.Sprint(args...)
	if color {
		msg = paint(msg)
	}
	fmt.Fprintln(errOut, msg)
}
