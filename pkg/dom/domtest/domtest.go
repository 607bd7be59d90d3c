// Package domtest provides in-memory native nodes for tests.
//
// A Document resolves every rendered element to a *Node that records
// attribute writes and method calls and lets the test fire events.
package domtest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vango-dev/mwc/pkg/dom"
	"github.com/vango-dev/mwc/pkg/vdom"
)

// Node is an in-memory dom.Node.
type Node struct {
	tag string
	hid string

	mu       sync.Mutex
	attrs    map[string]string
	calls    []string
	detached bool
	// CallErr, when set, is returned by Call.
	CallErr error

	target dom.EventTarget
}

var _ dom.Node = (*Node)(nil)

// NewNode creates a detached-from-document node with the given tag and HID.
func NewNode(tag, hid string) *Node {
	return &Node{tag: tag, hid: hid, attrs: make(map[string]string)}
}

// Tag implements dom.Node.
func (n *Node) Tag() string { return n.tag }

// HID implements dom.Node.
func (n *Node) HID() string { return n.hid }

// SetAttribute implements dom.Node.
func (n *Node) SetAttribute(name, value string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.detached {
		return dom.ErrDetached
	}
	n.attrs[name] = value
	return nil
}

// RemoveAttribute implements dom.Node.
func (n *Node) RemoveAttribute(name string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.detached {
		return dom.ErrDetached
	}
	delete(n.attrs, name)
	return nil
}

// AddEventListener implements dom.Node.
func (n *Node) AddEventListener(event string, fn func(dom.Event)) *dom.Listener {
	return n.target.Add(event, fn)
}

// Call implements dom.Node. It records method in the call log.
func (n *Node) Call(ctx context.Context, method string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.detached {
		return dom.ErrDetached
	}
	if n.CallErr != nil {
		return n.CallErr
	}
	n.calls = append(n.calls, method)
	return nil
}

// Fire dispatches a native event with the given detail and returns the
// number of listeners that received it.
func (n *Node) Fire(event string, detail any) int {
	return n.target.Dispatch(dom.Event{Type: event, Detail: detail})
}

// Listeners returns the number of active listeners for event.
func (n *Node) Listeners(event string) int {
	return n.target.Count(event)
}

// Calls returns a copy of the recorded method calls.
func (n *Node) Calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.calls))
	copy(out, n.calls)
	return out
}

// Attr returns the current value of an attribute.
func (n *Node) Attr(name string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	v, ok := n.attrs[name]
	return v, ok
}

// Attrs returns a copy of all attributes.
func (n *Node) Attrs() map[string]string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// Detach marks the node as released; later writes fail with dom.ErrDetached.
func (n *Node) Detach() {
	n.mu.Lock()
	n.detached = true
	n.mu.Unlock()
	n.target.Clear()
}

// Document resolves rendered elements to in-memory nodes keyed by HID.
// Resolving the same HID twice returns the same node.
type Document struct {
	mu    sync.Mutex
	nodes map[string]*Node
	// ResolveErr, when set, is returned by Resolve.
	ResolveErr error
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{nodes: make(map[string]*Node)}
}

// Resolve returns the node for v, creating it with v's current attributes.
func (d *Document) Resolve(v *vdom.VNode) (dom.Node, error) {
	if d.ResolveErr != nil {
		return nil, d.ResolveErr
	}
	if v == nil || v.HID == "" {
		return nil, fmt.Errorf("domtest: node has no hydration id")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if n, ok := d.nodes[v.HID]; ok && n.tag == v.Tag {
		return n, nil
	}
	n := NewNode(v.Tag, v.HID)
	for k, val := range vdom.EffectiveAttrs(v) {
		n.attrs[k] = val
	}
	d.nodes[v.HID] = n
	return n, nil
}

// Release detaches the node for hid.
func (d *Document) Release(hid string) {
	d.mu.Lock()
	n, ok := d.nodes[hid]
	delete(d.nodes, hid)
	d.mu.Unlock()
	if ok {
		n.Detach()
	}
}

// Node returns the node bound to hid.
func (d *Document) Node(hid string) (*Node, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.nodes[hid]
	return n, ok
}

// ByTag returns the first resolved node with the given tag, by HID order.
func (d *Document) ByTag(tag string) (*Node, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	hids := make([]string, 0, len(d.nodes))
	for hid, n := range d.nodes {
		if n.tag == tag {
			hids = append(hids, hid)
		}
	}
	if len(hids) == 0 {
		return nil, false
	}
	sort.Strings(hids)
	return d.nodes[hids[0]], true
}
