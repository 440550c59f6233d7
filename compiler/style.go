package compiler

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// scopeIDPrefix starts the attribute that ties scoped CSS to the
// component's elements.
const scopeIDPrefix = "data-v-"

// scopeID derives the stable scope attribute for a component.
func scopeID(filename, source string) string {
	sum := sha256.Sum256([]byte(filename + source))
	return scopeIDPrefix + hex.EncodeToString(sum[:4])
}

// cssRule is one rule seen by processRules: the selector or at-rule prelude
// and the content between its braces.
type cssRule struct {
	Selector string
	Content  string
}

// scopeCSS appends [scopeAttr] to every selector so the rules only match the
// component's own elements. Grouping at-rules (@media, @supports, ...) are
// scoped recursively; @keyframes, @font-face and other at-rules are left
// untouched. :deep(x) escapes the scope for x.
func scopeCSS(css, scopeAttr string) string {
	attr := "[" + scopeAttr + "]"
	return processRules(css, func(rule *cssRule) {
		sel := strings.TrimSpace(rule.Selector)
		if strings.HasPrefix(sel, "@") {
			if isGroupingAtRule(sel) {
				rule.Content = scopeCSS(rule.Content, scopeAttr)
			}
			return
		}
		parts := splitSelectorByComma(rule.Selector)
		for i, p := range parts {
			parts[i] = scopeSelector(p, attr)
		}
		rule.Selector = strings.Join(parts, ", ")
	})
}

func isGroupingAtRule(prelude string) bool {
	for _, at := range []string{"@media", "@supports", "@container", "@layer", "@document"} {
		if strings.HasPrefix(prelude, at) {
			return true
		}
	}
	return false
}

// processRules walks the top-level rules of a stylesheet, lets fn rewrite
// each one and reassembles the text. Comments and strings are copied
// verbatim; statements without a block (@import ...;) are passed through.
func processRules(css string, fn func(*cssRule)) string {
	var out strings.Builder
	i := 0
	for i < len(css) {
		// leading whitespace and comments
		start := i
		for i < len(css) {
			if isSpace(css[i]) {
				i++
				continue
			}
			if strings.HasPrefix(css[i:], "/*") {
				end := strings.Index(css[i+2:], "*/")
				if end < 0 {
					i = len(css)
					break
				}
				i += 2 + end + 2
				continue
			}
			break
		}
		out.WriteString(css[start:i])
		if i >= len(css) {
			break
		}

		selStart := i
		for i < len(css) && css[i] != '{' && css[i] != ';' && css[i] != '}' {
			i = skipCSSString(css, i)
		}
		if i >= len(css) || css[i] != '{' {
			// statement or stray text
			if i < len(css) {
				i++
			}
			out.WriteString(css[selStart:i])
			continue
		}

		rule := &cssRule{Selector: css[selStart:i]}
		contentStart := i + 1
		depth := 1
		i++
		for i < len(css) && depth > 0 {
			switch css[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth == 0 {
				break
			}
			i = skipCSSString(css, i)
		}
		rule.Content = css[contentStart:min(i, len(css))]
		sel := strings.TrimRight(rule.Selector, " \t\r\n")
		trailing := rule.Selector[len(sel):]
		fn(rule)

		out.WriteString(strings.TrimRight(rule.Selector, " \t\r\n"))
		out.WriteString(trailing)
		out.WriteString("{")
		out.WriteString(rule.Content)
		if i < len(css) {
			out.WriteString("}")
			i++
		}
	}
	return out.String()
}

// skipCSSString advances past the byte at i, or past a whole quoted string
// when one starts there.
func skipCSSString(css string, i int) int {
	q := css[i]
	if q != '"' && q != '\'' {
		return i + 1
	}
	for j := i + 1; j < len(css); j++ {
		switch css[j] {
		case '\\':
			j++
		case q:
			return j + 1
		}
	}
	return len(css)
}

// splitSelectorByComma splits a selector list on commas outside brackets
// and parentheses.
func splitSelectorByComma(selector string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(selector); i++ {
		switch selector[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(selector[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(selector[start:]); last != "" {
		parts = append(parts, last)
	}
	return parts
}

// scopeSelector adds attr to the last compound selector, ahead of any
// pseudo-class or pseudo-element: "ul > li:hover" becomes
// "ul > li[data-v-x]:hover".
func scopeSelector(selector, attr string) string {
	if i := strings.Index(selector, ":deep("); i >= 0 {
		inner := selector[i+len(":deep("):]
		if j := strings.LastIndex(inner, ")"); j >= 0 {
			inner = inner[:j]
		}
		prefix := strings.TrimSpace(selector[:i])
		if prefix == "" {
			return attr + " " + strings.TrimSpace(inner)
		}
		return scopeSelector(prefix, attr) + " " + strings.TrimSpace(inner)
	}

	// start of the last compound: after the last combinator at depth 0
	depth := 0
	last := 0
	for i := 0; i < len(selector); i++ {
		switch selector[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ' ', '>', '+', '~', '\t', '\n':
			if depth == 0 {
				last = i + 1
			}
		}
	}
	compound := selector[last:]

	// insert before the first pseudo at depth 0
	insert := len(compound)
	depth = 0
	for i := 0; i < len(compound); i++ {
		switch compound[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ':':
			if depth == 0 && insert == len(compound) {
				insert = i
			}
		}
	}
	if compound[:insert] == "" && last == 0 {
		// a bare pseudo such as ":root" or "::selection"
		return attr + compound
	}
	return selector[:last] + compound[:insert] + attr + compound[insert:]
}
