package compiler

import (
	"errors"
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
)

var (
	reTag          = regexp.MustCompile(`<(/?)([A-Za-z][A-Za-z0-9:._-]*)([^<>]*?)(/?)>`)
	reComment      = regexp.MustCompile(`(?s)<!--.*?-->`)
	reBareAttrVal  = regexp.MustCompile(`"[^"]*"|'[^']*'|(\s[^\s"'=<>/]+)\s*=\s*([^\s"'=<>` + "`" + `]+)`)
	reRawBlockOpen = regexp.MustCompile(`(?i)<(style|script)\b[^>]*>`)
)

// Parse runs the tokenizer and builder over a template. When the direct path
// fails (a panic, an error or no root element) it applies textual repairs to
// the source and retries once. If that fails too it returns a diagnostic AST
// describing the failure together with the error; the returned root is never
// nil.
func Parse(source string, limits Limits) (*Node, []Message, error) {
	root, warnings, err := parseDirect(source, limits)
	if err == nil {
		return root, warnings, nil
	}

	repaired, fixes := repairTemplate(source)
	if repaired != source {
		root2, warnings2, err2 := parseDirect(repaired, limits)
		if err2 == nil {
			for _, fix := range fixes {
				warnings2 = append(warnings2, Message{Message: "template repaired: " + fix})
			}
			return root2, warnings2, nil
		}
	}
	return diagnosticAST(err), warnings, err
}

// parseDirect is the tokenizer->builder path. Panics are converted into
// errors carrying the stack.
func parseDirect(source string, limits Limits) (root *Node, warnings []Message, err error) {
	defer func() {
		if r := recover(); r != nil {
			root = nil
			err = &panicError{Value: r, Stack: debug.Stack()}
		}
	}()

	t := newTokenizer(source, limits)
	t.run()
	warnings = append(warnings, t.warnings...)

	root, buildWarnings, err := Build(t.tokens, limits)
	warnings = append(warnings, buildWarnings...)
	if len(t.faults) > 0 {
		f := t.faults[0]
		return nil, warnings, fmt.Errorf("line %d: %s", f.Line, f.Message)
	}
	if err != nil {
		return nil, warnings, err
	}
	if root == nil {
		return nil, warnings, ErrNoRoot
	}
	return root, warnings, nil
}

// Incomplete reports whether more input could complete the template: it
// ends inside a tag, comment, interpolation or open element.
func Incomplete(source string, limits Limits) bool {
	t := newTokenizer(source, limits)
	t.run()
	if len(t.faults) > 0 {
		return true
	}
	_, _, err := Build(t.tokens, limits)
	return errors.Is(err, ErrUnclosed)
}

// repairTemplate applies the three independent repairs and returns the
// repaired source with a description of each fix that changed something.
func repairTemplate(src string) (string, []string) {
	var fixes []string
	if out, n := quoteBareAttributes(src); n > 0 {
		src = out
		fixes = append(fixes, fmt.Sprintf("quoted %d unquoted attribute value(s)", n))
	}
	if out, closed := closeUnterminatedBlocks(src); len(closed) > 0 {
		src = out
		fixes = append(fixes, "closed unterminated "+strings.Join(closed, ", "))
	}
	if out, tags := closeUnclosedTags(src); len(tags) > 0 {
		src = out
		fixes = append(fixes, fmt.Sprintf("closed %d unclosed tag(s): %s", len(tags), strings.Join(tags, ", ")))
	}
	return src, fixes
}

// quoteBareAttributes wraps unquoted attribute values in double quotes.
// Quoted values are matched first and left alone, so name=value text inside
// them is never rewritten.
func quoteBareAttributes(src string) (string, int) {
	count := 0
	out := reTag.ReplaceAllStringFunc(src, func(tag string) string {
		m := reTag.FindStringSubmatch(tag)
		if m[1] == "/" || m[3] == "" {
			return tag
		}
		attrs := m[3]
		selfClose := m[4]
		if selfClose == "" && strings.HasSuffix(attrs, "/") {
			attrs = strings.TrimSuffix(attrs, "/")
			selfClose = "/"
		}
		attrs = reBareAttrVal.ReplaceAllStringFunc(attrs, func(a string) string {
			if a[0] == '"' || a[0] == '\'' {
				return a
			}
			sub := reBareAttrVal.FindStringSubmatch(a)
			count++
			return fmt.Sprintf(`%s="%s"`, sub[1], strings.ReplaceAll(sub[2], `"`, "&quot;"))
		})
		return "<" + m[2] + attrs + selfClose + ">"
	})
	return out, count
}

// closeUnterminatedBlocks appends the closers of interpolations, comments and
// style/script blocks left open at the end of the template.
func closeUnterminatedBlocks(src string) (string, []string) {
	var closed []string

	if last := strings.LastIndex(src, commentOpen); last >= 0 && !strings.Contains(src[last:], commentClose) {
		src += commentClose
		closed = append(closed, "comment")
	}

	masked := reComment.ReplaceAllString(src, "")
	openCount := strings.Count(masked, interpolationOpen)
	closeCount := strings.Count(masked, interpolationClose)
	if openCount > closeCount {
		src += strings.Repeat(" "+interpolationClose, openCount-closeCount)
		closed = append(closed, fmt.Sprintf("%d interpolation(s)", openCount-closeCount))
	}

	lower := strings.ToLower(src)
	for _, m := range reRawBlockOpen.FindAllStringSubmatchIndex(lower, -1) {
		tag := lower[m[2]:m[3]]
		if !strings.Contains(lower[m[1]:], "</"+tag) {
			src += "</" + tag + ">"
			lower += "</" + tag + ">"
			closed = append(closed, "<"+tag+"> block")
		}
	}
	return src, closed
}

// closeUnclosedTags injects missing close tags. An element implicitly closed
// by an outer close tag gets its closer just before that close tag; elements
// still open at the end get closers appended, innermost first.
func closeUnclosedTags(src string) (string, []string) {
	masked := reComment.ReplaceAllStringFunc(src, func(c string) string {
		return strings.Repeat(" ", len(c))
	})

	type insertion struct {
		at   int
		text string
	}
	var inserts []insertion
	var unclosed []string
	var stack []string

	for _, m := range reTag.FindAllStringSubmatchIndex(masked, -1) {
		closing := m[3] > m[2]
		name := masked[m[4]:m[5]]
		selfClosing := m[9] > m[8]
		if isVoidElement(name) {
			continue
		}
		if !closing {
			if !selfClosing {
				stack = append(stack, name)
			}
			continue
		}
		match := -1
		for i := len(stack) - 1; i >= 0; i-- {
			if strings.EqualFold(stack[i], name) {
				match = i
				break
			}
		}
		if match < 0 {
			continue
		}
		for i := len(stack) - 1; i > match; i-- {
			inserts = append(inserts, insertion{at: m[0], text: "</" + stack[i] + ">"})
			unclosed = append(unclosed, "<"+stack[i]+">")
		}
		stack = stack[:match]
	}

	var b strings.Builder
	prev := 0
	for _, ins := range inserts {
		b.WriteString(src[prev:ins.at])
		b.WriteString(ins.text)
		prev = ins.at
	}
	b.WriteString(src[prev:])
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteString("</" + stack[i] + ">")
		unclosed = append(unclosed, "<"+stack[i]+">")
	}
	return b.String(), unclosed
}

// panicError is a recovered panic converted into an error at a stage boundary.
type panicError struct {
	Value any
	Stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("internal compiler panic: %v", e.Value)
}

// traceOf returns the stack captured with a recovered panic, if any.
func traceOf(err error) string {
	var pe *panicError
	if errors.As(err, &pe) {
		return string(pe.Stack)
	}
	return ""
}
