package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// element generates the expression for an element as a child: a hoisted
// reference, a loop (which yields a []*vdom.VNode the H helper flattens), a
// conditional or a plain element.
func (g *generator) element(n *Node) string {
	if n.HoistID > 0 {
		return fmt.Sprintf("_hoisted_%d", n.HoistID)
	}
	if n.Loop != nil {
		return g.loop(n)
	}
	if n.If != nil {
		return g.conditional(n)
	}
	return g.plain(n)
}

// single is element restricted to expressions of type *vdom.VNode, wrapping
// loops in a fragment.
func (g *generator) single(n *Node) string {
	if n.HoistID == 0 && n.Loop != nil {
		return g.fragment([]string{g.loop(n)})
	}
	return g.element(n)
}

// plain generates the element itself, ignoring its loop and conditional.
func (g *generator) plain(n *Node) string {
	children := g.childrenOf(n)

	// <template> renders its children only
	if n.Tag == "template" && n.Slot == nil {
		return g.call(g.use(helperFragment), "nil", children)
	}
	if n.Slot != nil && (n.Tag == "template" || n.Tag == "slot") {
		return g.slot(n, children)
	}
	if n.Slot != nil {
		children = []string{g.slot(n, children)}
	}
	return g.call(strconv.Quote(n.Tag), g.props(n), children)
}

// call formats _h(tag, props, children...).
func (g *generator) call(tag, props string, children []string) string {
	h := g.use(helperH)
	switch len(children) {
	case 0:
		return fmt.Sprintf("%s(%s, %s)", h, tag, props)
	case 1:
		if !strings.Contains(children[0], "\n") {
			return fmt.Sprintf("%s(%s, %s, %s)", h, tag, props, children[0])
		}
	}
	return fmt.Sprintf("%s(%s, %s,\n%s,\n)", h, tag, props, strings.Join(children, ",\n"))
}

// slot formats the slot render call; children are the fallback content.
func (g *generator) slot(n *Node, fallback []string) string {
	props := n.Slot.Props
	if props == "" {
		props = "nil"
	}
	args := append([]string{strconv.Quote(n.Slot.Name), props}, fallback...)
	return fmt.Sprintf("%s(%s)", g.use(helperRenderSlot), strings.Join(args, ", "))
}

// childrenOf generates the child expressions of an element.
func (g *generator) childrenOf(n *Node) []string {
	if n.TextExpr != "" {
		return []string{fmt.Sprintf("%s(%s)", g.use(helperToDisplayString), n.TextExpr)}
	}
	if n.HTMLExpr != "" {
		return nil
	}

	var out []string
	var run []*Node
	flush := func() {
		if len(run) > 0 {
			out = append(out, g.textRun(run))
			run = nil
		}
	}
	for _, c := range n.Children {
		switch c.Kind {
		case TextNode, InterpolationNode:
			run = append(run, c)
		case ElementNode:
			flush()
			out = append(out, g.element(c))
		}
	}
	flush()
	return out
}
