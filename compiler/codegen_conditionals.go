package compiler

import (
	"fmt"
	"strings"
)

// conditional generates an immediately invoked function that returns the
// first branch whose condition holds. Without a v-else branch it returns a
// "v-if" comment placeholder.
func (g *generator) conditional(n *Node) string {
	return g.chain(n, g.branch(n))
}

// chain generates the conditional of n with primary as the body of its
// first branch. A loop passes the item it is expanding so the chain never
// re-enters the loop.
func (g *generator) chain(n *Node, primary string) string {
	var code strings.Builder

	code.WriteString("func() *vdom.VNode {\n")
	fmt.Fprintf(&code, "if (%s) {\nreturn %s\n}", n.If.Expr, primary)

	fallback := ""
	for _, b := range n.If.Branches {
		switch b.If.Kind {
		case CondElseIf:
			fmt.Fprintf(&code, " else if (%s) {\nreturn %s\n}", b.If.Expr, g.branch(b))
		case CondElse:
			fallback = g.branch(b)
		}
	}
	code.WriteString("\n")

	if fallback == "" {
		fallback = fmt.Sprintf("%s(%q)", g.use(helperCreateComment), "v-if")
	}
	fmt.Fprintf(&code, "return %s\n}()", fallback)
	return code.String()
}

// branch generates one member of a chain as a single *vdom.VNode. A branch
// with its own loop renders as a fragment of the unguarded items.
func (g *generator) branch(n *Node) string {
	if n.HoistID > 0 {
		return fmt.Sprintf("_hoisted_%d", n.HoistID)
	}
	if n.Loop != nil {
		return g.fragment([]string{g.loop(n)})
	}
	return g.plain(n)
}
