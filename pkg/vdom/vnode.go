package vdom

import (
	"strings"

	"github.com/vango-dev/mwc/pkg/dom"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <mwc-dialog>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// refProp is the internal prop holding a ref capture point.
const refProp = "_ref"

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "mwc-dialog")
	Props    Props     // Attributes, event handlers and internal values
	Children []*VNode  // Child nodes
	Key      string    // Reconciliation key
	Text     string    // For KindText
	HID      string    // Hydration ID (assigned before render/mount)
	Comp     Component // For KindComponent

	// expanded is set once Comp has rendered into Children.
	expanded bool
}

// Props holds attributes and event handlers.
type Props map[string]any

// IsInteractive returns true if this node has event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key, value := range v.Props {
		if isEventHandler(key) && value != nil {
			return true
		}
	}
	return false
}

// NodeRef returns the ref capture point attached to this node, if any.
func (v *VNode) NodeRef() *dom.NodeRef {
	if v == nil || v.Kind != KindElement {
		return nil
	}
	ref, _ := v.Props[refProp].(*dom.NodeRef)
	return ref
}

// NeedsHID reports whether the node must be addressable after render:
// it has handlers or a ref capture point.
func (v *VNode) NeedsHID() bool {
	return v.IsInteractive() || v.NodeRef() != nil
}

// Handlers returns the event handlers on this node keyed by event name
// (without the "on" prefix).
func (v *VNode) Handlers() map[string]any {
	if v == nil || v.Kind != KindElement {
		return nil
	}
	var out map[string]any
	for key, value := range v.Props {
		if !isEventHandler(key) || value == nil {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[key[2:]] = value
	}
	return out
}

// Walk visits v and its descendants in pre-order.
// Returning false from fn skips the node's children.
func (v *VNode) Walk(fn func(*VNode) bool) {
	if v == nil {
		return
	}
	if !fn(v) {
		return
	}
	for _, child := range v.Children {
		child.Walk(fn)
	}
}

// isEventHandler reports whether a prop key names an event handler.
func isEventHandler(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on")
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "onclosed", etc.
	Handler any    // func() or func(dom.Event)
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

// ComponentNode wraps c as a nested component node. Its output is rendered
// by Expand.
func ComponentNode(c Component) *VNode {
	return &VNode{Kind: KindComponent, Comp: c}
}

// Expand renders every nested component in the tree in place and returns
// the components in pre-order. A component node keeps its output as its
// only child; components nested in that output are expanded too. Nodes
// already expanded are not rendered again, so Expand is idempotent.
func Expand(node *VNode) []Component {
	var out []Component
	expand(node, &out)
	return out
}

func expand(v *VNode, out *[]Component) {
	if v == nil {
		return
	}
	if v.Kind == KindComponent {
		if v.Comp == nil {
			return
		}
		if !v.expanded {
			v.expanded = true
			v.Children = nil
			if rendered := v.Comp.Render(); rendered != nil {
				v.Children = []*VNode{rendered}
			}
		}
		*out = append(*out, v.Comp)
	}
	for _, child := range v.Children {
		expand(child, out)
	}
}
