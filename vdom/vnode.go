package vdom

import (
	"encoding/json"
	"fmt"
	"iter"
	"reflect"
)

// Special tags for descriptors that do not map to a markup element.
const (
	Fragment   = "#fragment" // groups sibling roots without an enclosing element
	TextTag    = "#text"
	CommentTag = "#comment"
	SlotTag    = "#slot"
)

// VNode represents a virtual DOM node.
type VNode struct {
	Tag        string         // The HTML tag name, or one of the special tags above
	Attributes map[string]any // Attributes, bound properties and event handlers
	Children   []*VNode       // The child nodes
	Content    string         // Text of #text and #comment nodes
}

// NewVNode creates a new VNode.
func NewVNode(tag string, attributes map[string]any, children []*VNode, content string) *VNode {
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   children,
		Content:    content,
	}
}

// H is the descriptor constructor referenced by generated render code.
//
// Children may be *VNode, []*VNode (flattened, as returned by RenderList),
// string (becomes a text node) or nil (skipped). Anything else is
// stringified with ToDisplayString.
func H(tag string, attributes map[string]any, children ...any) *VNode {
	return NewVNode(tag, attributes, normalizeChildren(children), "")
}

func normalizeChildren(children []any) []*VNode {
	if len(children) == 0 {
		return nil
	}
	out := make([]*VNode, 0, len(children))
	for _, c := range children {
		switch v := c.(type) {
		case nil:
		case *VNode:
			if v != nil {
				out = append(out, v)
			}
		case []*VNode:
			for _, n := range v {
				if n != nil {
					out = append(out, n)
				}
			}
		case string:
			out = append(out, Text(v))
		default:
			out = append(out, Text(ToDisplayString(v)))
		}
	}
	return out
}

// Text creates a #text VNode.
func Text(s string) *VNode {
	return NewVNode(TextTag, nil, nil, s)
}

// Comment creates the inert placeholder rendered in place of a false
// conditional or an empty template.
func Comment(text string) *VNode {
	return NewVNode(CommentTag, nil, nil, text)
}

// ToDisplayString converts an interpolated value to the text shown in the UI.
// nil renders as the empty string; maps, slices and structs render as
// indented JSON.
func ToDisplayString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		b, err := json.MarshalIndent(rv.Interface(), "", "  ")
		if err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(rv.Interface())
}

// RenderList expands a v-for loop into a flat slice of descriptors.
// nil descriptors yielded by the loop body are dropped.
func RenderList(seq iter.Seq[*VNode]) []*VNode {
	var nodes []*VNode
	for n := range seq {
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// ModifiedHandler is an event handler annotated with event modifiers
// (stop, prevent, self, once, key filters...). The patch layer applies them.
type ModifiedHandler struct {
	Handler   any
	Modifiers []string
}

// WithModifiers wraps an event handler with its modifiers.
func WithModifiers(handler any, modifiers ...string) *ModifiedHandler {
	return &ModifiedHandler{Handler: handler, Modifiers: modifiers}
}

// RenderSlot creates a #slot descriptor for the named slot. The patch layer
// replaces it with the projected content, or with fallback when the parent
// provides none.
func RenderSlot(name string, props map[string]any, fallback ...any) *VNode {
	attrs := map[string]any{"name": name}
	if props != nil {
		attrs["props"] = props
	}
	return NewVNode(SlotTag, attrs, normalizeChildren(fallback), "")
}
