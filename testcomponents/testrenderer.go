package testcomponents

import (
	"fmt"

	"github.com/vcrobe/sfc/events"
	"github.com/vcrobe/sfc/runtime"
	"github.com/vcrobe/sfc/vdom"
)

// TestRenderer is a minimal test harness that implements runtime.Renderer
// for in-memory testing without a browser.
//
// It captures descriptor output from component renders and allows tests to:
// - Render a compiled component definition
// - Dispatch events to listeners in the rendered tree and re-render
// - Inspect the resulting tree or its HTML
type TestRenderer struct {
	currentVDOM *vdom.VNode
	component   runtime.Component
	renders     int
}

// Compile-time assertion to ensure TestRenderer implements runtime.Renderer interface.
var _ runtime.Renderer = (*TestRenderer)(nil)

// NewTestRenderer creates a test renderer for the given component definition.
func NewTestRenderer(comp runtime.Component) *TestRenderer {
	return &TestRenderer{component: comp}
}

// RenderRoot performs the initial render of the component.
// This should be called at the start of a test to get the initial tree.
func (r *TestRenderer) RenderRoot() *vdom.VNode {
	r.ReRender()
	return r.currentVDOM
}

// ReRender invokes the component's render entry point again.
func (r *TestRenderer) ReRender() {
	r.currentVDOM = r.component.Render()
	r.renders++
}

// GetCurrentVDOM returns the most recently rendered tree.
// Tests use this to inspect the component's output after renders.
func (r *TestRenderer) GetCurrentVDOM() *vdom.VNode {
	return r.currentVDOM
}

// Renders returns how many times the component has been rendered.
func (r *TestRenderer) Renders() int {
	return r.renders
}

// HTML renders the current tree to markup.
func (r *TestRenderer) HTML() (string, error) {
	return vdom.RenderHTML(r.currentVDOM)
}

// Dispatch fires an event on the first node matched by match, then
// re-renders, which is what a state change does in a live host.
func (r *TestRenderer) Dispatch(match func(*vdom.VNode) bool, event string, arg any) error {
	target := events.Find(r.currentVDOM, match)
	if target == nil {
		return fmt.Errorf("no node matches the %q target", event)
	}
	if err := events.Dispatch(target, event, arg); err != nil {
		return err
	}
	r.ReRender()
	return nil
}

// TextContent concatenates the text of a subtree, like the DOM property.
func TextContent(n *vdom.VNode) string {
	if n == nil {
		return ""
	}
	if n.Tag == vdom.TextTag {
		return n.Content
	}
	var s string
	for _, c := range n.Children {
		s += TextContent(c)
	}
	return s
}
