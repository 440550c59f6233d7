package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// Class and inline style of the panel that replaces output which could not
// be compiled.
const (
	diagnosticClass   = "sfc-compile-error"
	diagnosticStyle   = "border:2px solid #e53935;border-radius:4px;padding:12px;margin:8px;color:#b71c1c;background:#ffebee;font-family:monospace;"
	diagnosticHeading = "Template compilation failed"
)

func diagnosticMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// diagnosticAST builds the template AST of the error panel. It only
// allocates nodes and cannot fail.
func diagnosticAST(err error) *Node {
	panel := &Node{
		Kind: ElementNode,
		Tag:  "div",
		Attrs: []Attr{
			{Name: "class", Value: diagnosticClass},
			{Name: "style", Value: diagnosticStyle},
		},
		Children: []*Node{
			{Kind: ElementNode, Tag: "h3", Children: []*Node{{Kind: TextNode, Data: diagnosticHeading}}},
			{Kind: ElementNode, Tag: "pre", Children: []*Node{{Kind: TextNode, Data: diagnosticMessage(err)}}},
		},
	}
	if trace := traceOf(err); trace != "" {
		panel.Children = append(panel.Children, &Node{
			Kind:     ElementNode,
			Tag:      "pre",
			Children: []*Node{{Kind: TextNode, Data: trace}},
		})
	}
	return &Node{Kind: RootNode, Children: []*Node{panel}}
}

// diagnosticProducer is the render factory used when a template stage
// fails. It is written out directly so it does not depend on the generator
// that may have been the one to fail. It references the vdom package by
// name.
func diagnosticProducer(err error) string {
	var b strings.Builder
	b.WriteString("func() func() *vdom.VNode {\n")
	b.WriteString("\treturn func() *vdom.VNode {\n")
	fmt.Fprintf(&b, "\t\treturn vdom.H(%q, map[string]any{%q: %q, %q: %q},\n", "div", "class", diagnosticClass, "style", diagnosticStyle)
	fmt.Fprintf(&b, "\t\t\tvdom.H(%q, nil, %s),\n", "h3", strconv.Quote(diagnosticHeading))
	fmt.Fprintf(&b, "\t\t\tvdom.H(%q, nil, %s),\n", "pre", strconv.Quote(diagnosticMessage(err)))
	if trace := traceOf(err); trace != "" {
		fmt.Fprintf(&b, "\t\t\tvdom.H(%q, nil, %s),\n", "pre", strconv.Quote(trace))
	}
	b.WriteString("\t\t)\n")
	b.WriteString("\t}\n")
	b.WriteString("}()")
	return b.String()
}

// diagnosticModule is a complete module whose component renders the error
// panel. Strict mode and assembly failures return it as Result.Code.
func diagnosticModule(opts Options, name string, err error) string {
	var b strings.Builder
	b.WriteString(generatedHeader)
	fmt.Fprintf(&b, "package %s\n\n", opts.PackageName)
	b.WriteString("import (\n")
	fmt.Fprintf(&b, "\truntime %s\n", strconv.Quote(opts.ComponentImportPath))
	fmt.Fprintf(&b, "\tvdom %s\n", strconv.Quote(opts.RuntimeImportPath))
	b.WriteString(")\n\n")
	fmt.Fprintf(&b, "var render%s = %s\n\n", name, diagnosticProducer(err))
	b.WriteString("var Component = runtime.Component{\n")
	fmt.Fprintf(&b, "\tName:   %s,\n", strconv.Quote(name))
	fmt.Fprintf(&b, "\tRender: render%s,\n", name)
	b.WriteString("}\n")
	return b.String()
}
