package dom

import "sync"

// NodeRef is a single-slot cell holding the native node a rendered element
// was resolved to. The runtime fills it on mount and clears it on unmount;
// readers must tolerate both "not yet captured" and "already released".
//
// NodeRef is safe for concurrent access.
type NodeRef struct {
	mu   sync.RWMutex
	node Node
}

// NewNodeRef creates an empty NodeRef.
func NewNodeRef() *NodeRef {
	return &NodeRef{}
}

// Node returns the captured node and whether one is set.
func (r *NodeRef) Node() (Node, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.node, r.node != nil
}

// Set captures n.
func (r *NodeRef) Set(n Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.node = n
}

// Clear releases the captured node.
func (r *NodeRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.node = nil
}

// IsSet reports whether a node is captured.
func (r *NodeRef) IsSet() bool {
	_, ok := r.Node()
	return ok
}
