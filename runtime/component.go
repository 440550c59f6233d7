package runtime

import (
	"fmt"

	"github.com/vcrobe/sfc/vdom"
)

// Component is the definition exported by every compiled single-file component
// as its default export. The compiler assigns Render; ScopeID and HMRID are set
// when the component has scoped styles or was compiled for hot reload.
type Component struct {
	Name    string
	Render  func() *vdom.VNode
	ScopeID string
	HMRID   string
}

// RenderHTML invokes the component's render entry point and renders the
// resulting descriptor tree to HTML.
func (c *Component) RenderHTML() (string, error) {
	if c.Render == nil {
		return "", fmt.Errorf("component %q has no render function", c.Name)
	}
	return vdom.RenderHTML(c.Render())
}
