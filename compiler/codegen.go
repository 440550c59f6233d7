package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// Local names the generated code uses for the vdom helpers, in the order
// they are declared.
const (
	helperH               = "_h"
	helperToDisplayString = "_toDisplayString"
	helperRenderList      = "_renderList"
	helperWithModifiers   = "_withModifiers"
	helperCreateComment   = "_createComment"
	helperRenderSlot      = "_renderSlot"
	helperFragment        = "_Fragment"
	helperBindModel       = "_bindModel"
)

var helperOrder = []struct {
	local  string
	export string
}{
	{helperH, "H"},
	{helperToDisplayString, "ToDisplayString"},
	{helperRenderList, "RenderList"},
	{helperWithModifiers, "WithModifiers"},
	{helperCreateComment, "Comment"},
	{helperRenderSlot, "RenderSlot"},
	{helperFragment, "Fragment"},
	{helperBindModel, "BindModel"},
}

// generator holds the state of one Generate call.
type generator struct {
	used     map[string]bool
	warnings []Message
}

func newGenerator() *generator {
	return &generator{used: make(map[string]bool)}
}

// use records a helper reference and returns its local name.
func (g *generator) use(helper string) string {
	g.used[helper] = true
	return helper
}

func (g *generator) warn(line int, format string, args ...any) {
	g.warnings = append(g.warnings, Message{Message: fmt.Sprintf(format, args...), Line: line})
}

// Generate emits the render factory for a transformed AST: a Go expression
// of type func() *vdom.VNode. Helper aliases and hoisted subtrees are
// evaluated once, when the expression is; the returned producer builds the
// dynamic part of the tree on every call. table may be nil.
func Generate(root *Node, table *HoistTable) (string, []Message, error) {
	if root == nil {
		return "", nil, errors.New("generate: nil root")
	}
	g := newGenerator()

	body := g.producerBody(root)

	hoisted := make([]string, 0, table.Len())
	if table != nil {
		for _, n := range table.Nodes {
			hoisted = append(hoisted, fmt.Sprintf("_hoisted_%d = %s", n.HoistID, g.plain(n)))
		}
	}

	var b strings.Builder
	b.WriteString("func() func() *vdom.VNode {\n")
	var decls []string
	for _, h := range helperOrder {
		if g.used[h.local] {
			decls = append(decls, fmt.Sprintf("%s = vdom.%s", h.local, h.export))
		}
	}
	writeVarBlock(&b, decls)
	writeVarBlock(&b, hoisted)
	b.WriteString("return func() *vdom.VNode {\n")
	b.WriteString("return ")
	b.WriteString(body)
	b.WriteString("\n}\n}()")
	return b.String(), g.warnings, nil
}

func writeVarBlock(b *strings.Builder, decls []string) {
	if len(decls) == 0 {
		return
	}
	b.WriteString("var (\n")
	for _, d := range decls {
		b.WriteString(d)
		b.WriteString("\n")
	}
	b.WriteString(")\n")
}

// producerBody returns the single root, a fragment over several roots or
// an "empty" placeholder.
func (g *generator) producerBody(root *Node) string {
	var roots []*Node
	for _, c := range root.Children {
		if c.Kind == ElementNode {
			roots = append(roots, c)
		}
	}
	switch len(roots) {
	case 0:
		return fmt.Sprintf("%s(%q)", g.use(helperCreateComment), "empty")
	case 1:
		return g.single(roots[0])
	}
	parts := make([]string, 0, len(roots))
	for _, r := range roots {
		parts = append(parts, g.element(r))
	}
	return g.fragment(parts)
}

func (g *generator) fragment(children []string) string {
	return fmt.Sprintf("%s(%s, nil,\n%s,\n)", g.use(helperH), g.use(helperFragment), strings.Join(children, ",\n"))
}
