package console

import (
	"bytes"
	"os"
	"testing"
)

// TestOutput verifies prefixes, streams and coloring.
func TestOutput(t *testing.T) {
	// Arrange
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut, false)
	defer SetOutput(os.Stdout, os.Stderr, true)

	// Act
	Log("compiled", 2, "files")
	Warning("unused ", "x")
	Error("bad")

	// Assert
	if got := out.String(); got != "compiled 2 files\n" {
		t.Errorf("Unexpected log output %q", got)
	}
	if got := errOut.String(); got != "Warning: unused x\nCompilation Error: bad\n" {
		t.Errorf("Unexpected error output %q", got)
	}

	// Act
	errOut.Reset()
	SetOutput(&out, &errOut, true)
	Error("bad")

	// Assert
	if got := errOut.String(); got != "\x1b[31mCompilation Error: bad\x1b[0m\n" {
		t.Errorf("Unexpected colored output %q", got)
	}
}
