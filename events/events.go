package events

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vcrobe/sfc/vdom"
)

// Key returns the property key a listener for the event is stored under:
// click -> onClick.
func Key(name string) string {
	if name == "" {
		return "on"
	}
	return "on" + strings.ToUpper(name[:1]) + name[1:]
}

// Dispatch invokes the listeners node has for the named event with arg.
// Handlers may be func(), func(any), a *vdom.ModifiedHandler wrapping
// either, or a []any of those. It returns an error when the node has no
// listener for the event or a handler has an unsupported type.
func Dispatch(node *vdom.VNode, name string, arg any) error {
	if node == nil {
		return fmt.Errorf("dispatch %q: nil node", name)
	}
	h, ok := node.Attributes[Key(name)]
	if !ok {
		return fmt.Errorf("dispatch %q: <%s> has no listener", name, node.Tag)
	}
	return invoke(h, arg)
}

func invoke(h any, arg any) error {
	switch fn := h.(type) {
	case func():
		fn()
	case func(any):
		fn(arg)
	case *vdom.ModifiedHandler:
		// modifiers are applied by the host's event layer; "once" and
		// friends have no meaning for a synthetic dispatch
		return invoke(fn.Handler, arg)
	case []any:
		for _, each := range fn {
			if err := invoke(each, arg); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported handler type %T", h)
	}
	return nil
}

// Find returns the first node in document order for which match is true.
func Find(root *vdom.VNode, match func(*vdom.VNode) bool) *vdom.VNode {
	if root == nil {
		return nil
	}
	if match(root) {
		return root
	}
	for _, c := range root.Children {
		if n := Find(c, match); n != nil {
			return n
		}
	}
	return nil
}

// ByTag matches elements with the given tag.
func ByTag(tag string) func(*vdom.VNode) bool {
	return func(n *vdom.VNode) bool { return n.Tag == tag }
}

// HasClass matches elements whose class attribute lists class.
func HasClass(class string) func(*vdom.VNode) bool {
	return func(n *vdom.VNode) bool {
		v, _ := n.Attributes["class"].(string)
		return slices.Contains(strings.Fields(v), class)
	}
}
