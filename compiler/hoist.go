package compiler

// HoistTable lists the static subtrees of one compiled template. Entry i has
// hoist id i+1.
type HoistTable struct {
	Nodes []*Node
}

// Len returns the number of hoisted subtrees.
func (t *HoistTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Nodes)
}

// Hoist marks static elements and collects the outermost ones into a new
// table. A node is static when it carries no annotation and all of its
// children are static; text is always static, interpolations never are.
// Component tags and slot outlets are never hoisted.
func Hoist(root *Node) *HoistTable {
	table := &HoistTable{}
	if root == nil {
		return table
	}
	markStatic(root)
	for _, c := range root.Children {
		collectHoisted(c, table)
	}
	return table
}

// markStatic walks post-order and sets Static on every element.
func markStatic(n *Node) bool {
	switch n.Kind {
	case TextNode:
		return true
	case InterpolationNode:
		return false
	}

	static := n.Kind == ElementNode && !n.dynamic() && !isComponentTag(n.Tag) && n.Tag != "slot"
	if n.TextExpr == "" && n.HTMLExpr == "" {
		for _, c := range n.Children {
			if !markStatic(c) {
				static = false
			}
		}
	}
	if n.If != nil {
		for _, b := range n.If.Branches {
			markStatic(b)
		}
	}
	n.Static = static
	return static
}

// collectHoisted assigns ids to the outermost static elements in document
// order; their descendants are emitted as part of them.
func collectHoisted(n *Node, table *HoistTable) {
	if n.Kind != ElementNode {
		return
	}
	if n.Static {
		table.Nodes = append(table.Nodes, n)
		n.HoistID = len(table.Nodes)
		return
	}
	if n.TextExpr == "" && n.HTMLExpr == "" {
		for _, c := range n.Children {
			collectHoisted(c, table)
		}
	}
	if n.If != nil {
		for _, b := range n.If.Branches {
			collectHoisted(b, table)
		}
	}
}
