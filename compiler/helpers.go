package compiler

import (
	"fmt"
	"strings"
)

// FormatMessage renders a compiler message the way the CLI reports it:
// "file:line: message", followed by the surrounding source lines when the
// line is known.
func FormatMessage(filename, source string, m Message) string {
	if filename == "" {
		filename = "<input>"
	}
	if m.Line <= 0 {
		return fmt.Sprintf("%s: %s", filename, m.Message)
	}
	return fmt.Sprintf("%s:%d: %s%s", filename, m.Line, m.Message, getContextLines(source, m.Line, 2))
}

// getContextLines returns a formatted string with context lines around the error line.
// It shows 'contextSize' lines before and after the target line.
func getContextLines(source string, lineNumber int, contextSize int) string {
	lines := strings.Split(source, "\n")
	if lineNumber > len(lines) {
		return ""
	}

	// Calculate the range of lines to show
	startLine := max(lineNumber-contextSize-1, 0) // -1 for 0-based indexing
	endLine := min(lineNumber+contextSize, len(lines))

	var result strings.Builder
	result.WriteString("\n")

	for i := startLine; i < endLine; i++ {
		lineNum := i + 1
		prefix := "  "

		// Highlight the error line with a marker
		if lineNum == lineNumber {
			prefix = "> "
		}

		result.WriteString(fmt.Sprintf("%s%4d | %s\n", prefix, lineNum, lines[i]))
	}

	return result.String()
}
