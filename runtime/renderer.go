package runtime

import "github.com/vcrobe/sfc/vdom"

// Renderer defines the minimal set of operations a host uses to drive a
// compiled component. The patch layer that reconciles descriptors against a
// live UI tree implements it; tests use an in-memory implementation.
type Renderer interface {
	// RenderRoot performs the first render of the attached component.
	RenderRoot() *vdom.VNode

	// ReRender re-runs the component's render entry point after state changed.
	ReRender()
}
