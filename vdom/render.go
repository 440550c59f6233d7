package vdom

import (
	"sort"
	"strings"
	"unicode"

	g "maragu.dev/gomponents"
)

// RenderHTML renders a descriptor tree to HTML. Event handlers, keys and other
// non-attribute values are skipped; innerHTML is emitted unescaped.
// Used for server-side rendering and for inspecting compiled templates.
func RenderHTML(n *VNode) (string, error) {
	var b strings.Builder
	if err := toNode(n).Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func toNode(n *VNode) g.Node {
	if n == nil {
		return g.Group(nil)
	}
	switch n.Tag {
	case TextTag:
		return g.Text(n.Content)
	case CommentTag:
		return g.Raw("<!--" + strings.ReplaceAll(n.Content, "--", "- -") + "-->")
	case Fragment, SlotTag:
		return g.Group(childNodes(n.Children))
	}

	var nodes []g.Node
	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var inner g.Node
	for _, k := range keys {
		v := n.Attributes[k]
		if k == "innerHTML" {
			inner = g.Raw(ToDisplayString(v))
			continue
		}
		if k == "key" || isEventKey(k) {
			continue
		}
		switch val := v.(type) {
		case bool:
			if val {
				nodes = append(nodes, g.Attr(k))
			}
		case nil, func(any), func(), *ModifiedHandler:
		default:
			nodes = append(nodes, g.Attr(k, ToDisplayString(val)))
		}
	}
	if inner != nil {
		nodes = append(nodes, inner)
	} else {
		nodes = append(nodes, childNodes(n.Children)...)
	}
	return g.El(n.Tag, nodes...)
}

func childNodes(children []*VNode) []g.Node {
	nodes := make([]g.Node, 0, len(children))
	for _, c := range children {
		nodes = append(nodes, toNode(c))
	}
	return nodes
}

// isEventKey reports whether an attribute key names an event handler
// ("onClick", "onUpdate:modelValue").
func isEventKey(k string) bool {
	if len(k) < 3 || !strings.HasPrefix(k, "on") {
		return false
	}
	return unicode.IsUpper(rune(k[2]))
}
