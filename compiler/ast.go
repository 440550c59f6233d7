package compiler

import (
	"fmt"
	"strings"
)

// NodeKind discriminates the variants of Node.
type NodeKind int

const (
	RootNode NodeKind = iota
	ElementNode
	TextNode
	InterpolationNode
)

func (k NodeKind) String() string {
	switch k {
	case RootNode:
		return "Root"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case InterpolationNode:
		return "Interpolation"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is the template AST. It is a tagged union: Tag, Attrs, Directives and
// the annotations are meaningful for ElementNode only; Data holds the text of
// a TextNode or the expression of an InterpolationNode.
type Node struct {
	Kind       NodeKind
	Tag        string
	Attrs      []Attr
	Directives []Directive
	Children   []*Node
	Data       string
	Line       int

	// Annotations written by Transform.
	If       *Conditional
	Loop     *LoopBinding
	Show     string
	Model    *ModelBinding
	Props    []Binding
	Events   []EventBinding
	TextExpr string
	HTMLExpr string
	Slot     *SlotBinding

	// Written by Hoist.
	Static  bool
	HoistID int
}

// Directive is an attribute recognized by prefix: v-name:arg.mod1.mod2,
// :prop, @event or #slot.
type Directive struct {
	Name      string
	Arg       string
	Value     string
	Modifiers []string
	Raw       string // the attribute name as written
}

// ConditionKind tells the branches of a v-if chain apart.
type ConditionKind int

const (
	CondIf ConditionKind = iota
	CondElseIf
	CondElse
)

func (k ConditionKind) directive() string {
	switch k {
	case CondElseIf:
		return "v-else-if"
	case CondElse:
		return "v-else"
	}
	return "v-if"
}

// Conditional is the v-if / v-else-if / v-else annotation. Branches is only
// set on the primary node and lists the bound else-if/else siblings in order.
type Conditional struct {
	Kind     ConditionKind
	Expr     string
	Branches []*Node
}

// LoopBinding is the parsed value of v-for.
type LoopBinding struct {
	Source string
	Item   string
	Index  string // "" when the loop binds no index
}

// ModelBinding is the v-model annotation.
type ModelBinding struct {
	Expr      string
	Modifiers []string
}

// Binding is one bound property (:name="expr").
type Binding struct {
	Name string
	Expr string
}

// EventBinding is one event listener (@name.mods="handler").
type EventBinding struct {
	Name      string
	Handler   string
	Modifiers []string
}

// SlotBinding is the v-slot annotation: the children render through the
// named slot, with Props forwarded to the slot content.
type SlotBinding struct {
	Name  string
	Props string
}

// dynamic reports whether the element carries any annotation that makes
// its output vary between renders.
func (n *Node) dynamic() bool {
	return n.If != nil || n.Loop != nil || n.Show != "" || n.Model != nil ||
		len(n.Props) > 0 || len(n.Events) > 0 || n.TextExpr != "" ||
		n.HTMLExpr != "" || n.Slot != nil
}

// attr returns the value of a literal attribute.
func (n *Node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func isWhitespaceText(n *Node) bool {
	return n.Kind == TextNode && strings.TrimSpace(n.Data) == ""
}
