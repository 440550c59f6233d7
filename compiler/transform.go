package compiler

import (
	"fmt"
	"regexp"
	"strings"
)

var reSpaceRun = regexp.MustCompile(`\s+`)

// TransformOptions configures Transform.
type TransformOptions struct {
	PreserveWhitespace bool
	ScopeAttr          string // attribute added to every element, e.g. "data-v-1a2b3c4d"; "" disables scoping
}

type transformer struct {
	opts     TransformOptions
	warnings []Message
	errors   []Message
}

// Transform rewrites the AST in place: directives become annotations, v-if
// chains are bound, whitespace is condensed and the scope attribute is added.
// Invalid directives are reported as errors and dropped; the element itself
// is kept.
func Transform(root *Node, opts TransformOptions) (warnings, errors []Message) {
	if root == nil {
		return nil, nil
	}
	t := &transformer{opts: opts}
	t.children(root, false)
	return t.warnings, t.errors
}

func (t *transformer) warn(line int, format string, args ...any) {
	t.warnings = append(t.warnings, Message{Message: fmt.Sprintf(format, args...), Line: line})
}

func (t *transformer) fail(line int, err error) {
	t.errors = append(t.errors, Message{Message: err.Error(), Line: line})
}

// children transforms every child of parent and then binds conditional
// chains among them.
func (t *transformer) children(parent *Node, pre bool) {
	if !pre && !t.opts.PreserveWhitespace {
		parent.Children = condenseWhitespace(parent.Children)
	}
	for _, c := range parent.Children {
		switch c.Kind {
		case ElementNode:
			t.element(c, pre || c.Tag == "pre")
		case InterpolationNode:
			if err := validateExpression(c.Data, "{{ }}"); err != nil {
				t.fail(c.Line, err)
				c.Kind, c.Data = TextNode, ""
			}
		}
	}
	parent.Children = t.bindConditionals(parent.Children)
}

func (t *transformer) element(n *Node, pre bool) {
	literal, dirs := splitAttributes(n.Attrs)
	n.Attrs = literal
	n.Directives = dirs

	for _, d := range dirs {
		t.apply(n, d)
	}

	if n.Tag == "slot" && n.Slot == nil {
		t.slotOutlet(n)
	}

	if t.opts.ScopeAttr != "" && n.Tag != "slot" && n.Tag != "template" {
		n.Attrs = append(n.Attrs, Attr{Name: t.opts.ScopeAttr, Bare: true})
	}

	if n.TextExpr != "" || n.HTMLExpr != "" {
		for _, c := range n.Children {
			if !isWhitespaceText(c) {
				which := "v-text"
				if n.TextExpr == "" {
					which = "v-html"
				}
				t.warn(n.Line, "children of <%s> are replaced by %s", n.Tag, which)
				break
			}
		}
		n.Children = nil
		return
	}
	t.children(n, pre)
}

// apply records one directive on the element.
func (t *transformer) apply(n *Node, d Directive) {
	switch d.Name {
	case "for":
		loop, err := parseLoop(d.Value)
		if err != nil {
			t.fail(n.Line, err)
			return
		}
		n.Loop = loop

	case "if", "else-if":
		if n.If != nil {
			t.warn(n.Line, "v-%s ignored: <%s> already has %s", d.Name, n.Tag, n.If.Kind.directive())
			return
		}
		if err := validateExpression(d.Value, "v-"+d.Name); err != nil {
			t.fail(n.Line, err)
			return
		}
		kind := CondIf
		if d.Name == "else-if" {
			kind = CondElseIf
		}
		n.If = &Conditional{Kind: kind, Expr: d.Value}

	case "else":
		if n.If != nil {
			t.warn(n.Line, "v-else ignored: <%s> already has %s", n.Tag, n.If.Kind.directive())
			return
		}
		if strings.TrimSpace(d.Value) != "" {
			t.warn(n.Line, "v-else does not take an expression; %q ignored", d.Value)
		}
		n.If = &Conditional{Kind: CondElse}

	case "show":
		if err := validateExpression(d.Value, "v-show"); err != nil {
			t.fail(n.Line, err)
			return
		}
		n.Show = d.Value

	case "model":
		if err := validateAssignable(d.Value); err != nil {
			t.fail(n.Line, err)
			return
		}
		n.Model = &ModelBinding{Expr: d.Value, Modifiers: d.Modifiers}

	case "bind":
		if d.Arg == "" {
			t.warn(n.Line, "v-bind without an argument is not supported; %q ignored", d.Value)
			return
		}
		if err := validateExpression(d.Value, d.Raw); err != nil {
			t.fail(n.Line, err)
			return
		}
		n.Props = append(n.Props, Binding{Name: d.Arg, Expr: d.Value})

	case "on":
		if d.Arg == "" {
			t.fail(n.Line, fmt.Errorf("%s requires an event name", d.Raw))
			return
		}
		handler, err := normalizeHandler(d.Value)
		if err != nil {
			t.fail(n.Line, err)
			return
		}
		n.Events = append(n.Events, EventBinding{Name: d.Arg, Handler: handler, Modifiers: d.Modifiers})

	case "slot":
		if n.TextExpr != "" || n.HTMLExpr != "" || n.Slot != nil {
			t.warn(n.Line, "%s ignored: <%s> already renders its content another way", d.Raw, n.Tag)
			return
		}
		name := d.Arg
		if name == "" {
			name = "default"
		}
		if d.Value != "" {
			if err := validateExpression(d.Value, d.Raw); err != nil {
				t.fail(n.Line, err)
				return
			}
		}
		n.Slot = &SlotBinding{Name: name, Props: d.Value}

	case "text", "html":
		if n.TextExpr != "" || n.HTMLExpr != "" || n.Slot != nil {
			t.warn(n.Line, "v-%s ignored: <%s> already renders its content another way", d.Name, n.Tag)
			return
		}
		if err := validateExpression(d.Value, "v-"+d.Name); err != nil {
			t.fail(n.Line, err)
			return
		}
		if d.Name == "text" {
			n.TextExpr = d.Value
		} else {
			n.HTMLExpr = d.Value
		}

	default:
		t.warn(n.Line, "unknown directive %q", "v-"+d.Name)
	}
}

// slotOutlet turns <slot name="x" :prop="expr"> into a slot annotation whose
// props are the bound attributes. The element's children become the fallback.
func (t *transformer) slotOutlet(n *Node) {
	name := "default"
	var rest []Attr
	for _, a := range n.Attrs {
		if a.Name == "name" && a.Value != "" {
			name = a.Value
			continue
		}
		rest = append(rest, a)
	}
	n.Attrs = rest

	var props string
	if len(n.Props) > 0 {
		entries := make([]string, 0, len(n.Props))
		for _, p := range n.Props {
			entries = append(entries, fmt.Sprintf("%q: %s", p.Name, p.Expr))
		}
		props = "map[string]any{" + strings.Join(entries, ", ") + "}"
		n.Props = nil
	}
	n.Slot = &SlotBinding{Name: name, Props: props}
}

// bindConditionals moves every v-else-if / v-else element into the Branches
// of the v-if it follows. Whitespace text between the members of a chain is
// dropped. A branch with no open chain before it is reported and rendered
// unconditionally.
func (t *transformer) bindConditionals(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	var open *Node
	for _, c := range children {
		if c.Kind == ElementNode && c.If != nil && c.If.Kind != CondIf {
			if open != nil {
				for len(out) > 0 && isWhitespaceText(out[len(out)-1]) {
					out = out[:len(out)-1]
				}
				open.If.Branches = append(open.If.Branches, c)
				if c.If.Kind == CondElse {
					open = nil
				}
				continue
			}
			t.warn(c.Line, "%s has no adjacent v-if", c.If.Kind.directive())
			c.If = nil
		}
		if isWhitespaceText(c) {
			out = append(out, c)
			continue
		}
		if c.Kind == ElementNode && c.If != nil {
			open = c
		} else {
			open = nil
		}
		out = append(out, c)
	}
	return out
}

// condenseWhitespace collapses whitespace runs in text to one space and
// removes whitespace-only text at the edges and between elements when it
// spans a line break.
func condenseWhitespace(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	for i, c := range children {
		if c.Kind != TextNode {
			out = append(out, c)
			continue
		}
		if isWhitespaceText(c) {
			if i == 0 || i == len(children)-1 {
				continue
			}
			prev, next := children[i-1], children[i+1]
			if prev.Kind == ElementNode && next.Kind == ElementNode && strings.ContainsAny(c.Data, "\r\n") {
				continue
			}
			c.Data = " "
			out = append(out, c)
			continue
		}
		c.Data = reSpaceRun.ReplaceAllString(c.Data, " ")
		out = append(out, c)
	}
	return out
}
