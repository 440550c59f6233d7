package compiler

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// loop generates list rendering over a range loop. A v-if on the same
// element sits inside the loop body so it is evaluated once per item:
//
//	_renderList(func(yield func(*vdom.VNode) bool) {
//		for i, item := range (items) {
//			_ = item
//			_ = i
//			if !yield(...) {
//				return
//			}
//		}
//	})
//
// Sources are ranged as written, so a two-variable loop needs a slice, map,
// string or channel. An integer literal source counts from zero and binds
// both names to the counter.
func (g *generator) loop(n *Node) string {
	loop := n.Loop

	var item string
	if n.If != nil && n.If.Kind == CondIf {
		item = g.chain(n, g.plain(n))
	} else {
		// a v-else or v-else-if branch was already selected by its chain
		item = g.plain(n)
	}

	index := loop.Index
	if index == "" {
		index = "_"
	}

	var code strings.Builder
	fmt.Fprintf(&code, "%s(func(yield func(*vdom.VNode) bool) {\n", g.use(helperRenderList))
	switch {
	case index == "_" && loop.Item == "_":
		fmt.Fprintf(&code, "for range (%s) {\n", loop.Source)
	case isIntLiteral(loop.Source):
		counter := loop.Item
		if counter == "_" {
			counter = index
		}
		fmt.Fprintf(&code, "for %s := range (%s) {\n", counter, loop.Source)
		if index != "_" && index != counter {
			fmt.Fprintf(&code, "%s := %s\n", index, counter)
		}
	default:
		fmt.Fprintf(&code, "for %s, %s := range (%s) {\n", index, loop.Item, loop.Source)
	}
	for _, v := range []string{loop.Item, loop.Index} {
		if v != "" && v != "_" {
			fmt.Fprintf(&code, "_ = %s\n", v)
		}
	}
	fmt.Fprintf(&code, "if !yield(%s) {\nreturn\n}\n", item)
	code.WriteString("}\n})")
	return code.String()
}

// isIntLiteral reports whether src is an integer constant such as 10.
func isIntLiteral(src string) bool {
	e, err := parser.ParseExpr(src)
	if err != nil {
		return false
	}
	if p, ok := e.(*ast.ParenExpr); ok {
		e = p.X
	}
	lit, ok := e.(*ast.BasicLit)
	return ok && lit.Kind == token.INT
}
