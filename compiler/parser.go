package compiler

import (
	"fmt"
	"strings"
	"time"
)

// Build turns a token stream into an AST using an explicit stack of open
// elements, so nesting depth never grows the Go call stack.
//
// The returned root is a RootNode whose children are the template's root
// elements. Mismatched close tags are reported as warnings and still pop the
// stack. Text outside any element is dropped. Build returns ErrNoRoot when no
// element was opened, and an error naming the first element still open at
// the end of input (the root is returned alongside so callers can inspect it).
func Build(tokens []Token, limits Limits) (*Node, []Message, error) {
	limits = limits.withDefaults()
	start := time.Now()

	root := &Node{Kind: RootNode}
	var stack []*Node
	var warnings []Message
	opened := false

	for i, tok := range tokens {
		if i >= limits.MaxIterations {
			warnings = append(warnings, Message{Message: fmt.Sprintf("parser stopped after %d tokens; template truncated", limits.MaxIterations), Line: tok.Line})
			break
		}
		if i&0xff == 0 && time.Since(start) > limits.MaxDuration {
			warnings = append(warnings, Message{Message: fmt.Sprintf("parser exceeded %s; template truncated", limits.MaxDuration), Line: tok.Line})
			break
		}

		switch tok.Kind {
		case OpenTagToken:
			el := &Node{Kind: ElementNode, Tag: tok.Name, Attrs: tok.Attrs, Line: tok.Line}
			parent := root
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			parent.Children = append(parent.Children, el)
			opened = true
			if !tok.SelfClosing && !isVoidElement(tok.Name) {
				stack = append(stack, el)
			}

		case CloseTagToken:
			if isVoidElement(tok.Name) {
				// </br> and friends carry no structure
				continue
			}
			if len(stack) == 0 {
				warnings = append(warnings, Message{Message: fmt.Sprintf("unexpected closing tag </%s>", tok.Name), Line: tok.Line})
				continue
			}
			top := stack[len(stack)-1]
			if !strings.EqualFold(top.Tag, tok.Name) {
				warnings = append(warnings, Message{
					Message: fmt.Sprintf("closing tag </%s> does not match <%s> opened on line %d", tok.Name, top.Tag, top.Line),
					Line:    tok.Line,
				})
			}
			stack = stack[:len(stack)-1]

		case TextToken, InterpolationToken:
			if len(stack) == 0 {
				continue
			}
			kind := TextNode
			if tok.Kind == InterpolationToken {
				kind = InterpolationNode
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{Kind: kind, Data: tok.Data, Line: tok.Line})

		case CommentToken:
		}
	}

	if !opened {
		return nil, warnings, ErrNoRoot
	}
	if len(stack) > 0 {
		el := stack[0]
		return root, warnings, fmt.Errorf("line %d: %w <%s>", el.Line, ErrUnclosed, el.Tag)
	}
	return root, warnings, nil
}
