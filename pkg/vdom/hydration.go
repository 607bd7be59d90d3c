package vdom

import (
	"fmt"
	"sync"
)

// HIDGenerator generates unique hydration IDs for addressable elements.
type HIDGenerator struct {
	counter uint32
	mu      sync.Mutex
}

// NewHIDGenerator creates a new HIDGenerator.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next hydration ID (e.g., "h1", "h2", ...).
func (g *HIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("h%d", g.counter)
}

// Reset resets the counter to 0.
func (g *HIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = 0
}

// AssignHIDs expands nested components, then walks the tree in pre-order
// and assigns HIDs to elements that have handlers or ref capture points.
// The same tree shape always yields the same HIDs, which is what lets the
// server-rendered page and a later live session agree on node identity.
func AssignHIDs(node *VNode, gen *HIDGenerator) {
	Expand(node)
	node.Walk(func(n *VNode) bool {
		if n.Kind == KindElement && n.NeedsHID() {
			n.HID = gen.Next()
		}
		return true
	})
}

// CollectHIDs returns every element with a HID keyed by that HID.
func CollectHIDs(node *VNode) map[string]*VNode {
	out := make(map[string]*VNode)
	node.Walk(func(n *VNode) bool {
		if n.Kind == KindElement && n.HID != "" {
			out[n.HID] = n
		}
		return true
	})
	return out
}
