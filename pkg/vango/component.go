package vango

import (
	"github.com/vango-dev/mwc/pkg/dom"
	"github.com/vango-dev/mwc/pkg/vdom"
)

// Component is the interface for renderable components.
type Component interface {
	// Render returns the VNode tree for this component.
	Render() *vdom.VNode
}

// Updater is implemented by components that accept new props from their
// owner. Update returns true when the component must re-render.
type Updater interface {
	Update(props any) bool
}

// Mounter is implemented by components that need their native nodes.
// first is true for the first render after a mount.
type Mounter interface {
	Mounted(first bool)
}

// Unmounter is implemented by components that hold resources tied to the
// mounted window, such as event subscriptions.
type Unmounter interface {
	Unmounted()
}

// Document resolves rendered elements to native nodes.
type Document interface {
	// Resolve returns the native node for an element with a HID.
	Resolve(node *vdom.VNode) (dom.Node, error)

	// Release tells the document the runtime no longer uses hid.
	Release(hid string)
}

// FuncComponent wraps a render function as a Component.
type FuncComponent func() *vdom.VNode

// Render calls the wrapped function.
func (f FuncComponent) Render() *vdom.VNode {
	return f()
}
