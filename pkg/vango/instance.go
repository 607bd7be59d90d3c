package vango

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/vango-dev/mwc/pkg/dom"
	"github.com/vango-dev/mwc/pkg/vdom"
)

// Instance errors.
var (
	ErrUnmounted = errors.New("vango: instance is unmounted")
	ErrNilRender = errors.New("vango: component rendered nil")
)

// Option configures an Instance.
type Option func(*Instance)

// WithLogger sets the instance logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Instance) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// binding is the live state for one addressable element.
type binding struct {
	vnode     *vdom.VNode
	node      dom.Node
	ref       *dom.NodeRef
	listeners []*dom.Listener
}

// Instance is a mounted component together with the native nodes its
// rendered tree resolved to.
//
// Components nested in the rendered tree take part in the lifecycle too:
// Mounted and Unmounted reach the root first, then every nested Mounter or
// Unmounter in tree order.
//
// Lifecycle calls (Mount, Update, Unmount) must not run concurrently; the
// runtime drives them from a single goroutine per document.
type Instance struct {
	comp   Component
	doc    Document
	logger *slog.Logger

	mu       sync.Mutex
	tree     *vdom.VNode
	nested   []Component
	bindings map[string]*binding
	mounted  bool
}

// Mount renders comp, resolves its addressable elements through doc and
// calls Mounted(true). On error nothing stays bound.
func Mount(comp Component, doc Document, opts ...Option) (*Instance, error) {
	inst := &Instance{
		comp:   comp,
		doc:    doc,
		logger: slog.Default().With("component", "vango"),
	}
	for _, opt := range opts {
		opt(inst)
	}
	if err := inst.mount(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Remount mounts an unmounted instance again with a fresh render.
func (i *Instance) Remount() error {
	i.mu.Lock()
	mounted := i.mounted
	i.mu.Unlock()
	if mounted {
		return nil
	}
	return i.mount()
}

func (i *Instance) mount() error {
	tree, nested, err := i.render()
	if err != nil {
		return err
	}

	bindings := make(map[string]*binding)
	for hid, v := range vdom.CollectHIDs(tree) {
		b, err := i.bind(v)
		if err != nil {
			for _, done := range bindings {
				i.unbind(done)
			}
			return fmt.Errorf("vango: resolve %s <%s>: %w", hid, v.Tag, err)
		}
		bindings[hid] = b
	}

	i.mu.Lock()
	i.tree = tree
	i.nested = nested
	i.bindings = bindings
	i.mounted = true
	i.mu.Unlock()

	i.logger.Debug("mounted", "nodes", len(bindings), "components", len(nested))
	notifyMounted(i.comp, true)
	for _, c := range nested {
		notifyMounted(c, true)
	}
	return nil
}

// render produces a fresh tree with nested components expanded and HIDs
// assigned. It returns the nested components that take part in the
// lifecycle, in tree order.
func (i *Instance) render() (*vdom.VNode, []Component, error) {
	tree := i.comp.Render()
	if tree == nil {
		return nil, nil, ErrNilRender
	}
	var nested []Component
	for _, c := range vdom.Expand(tree) {
		_, m := c.(Mounter)
		_, u := c.(Unmounter)
		if m || u {
			nested = append(nested, c)
		}
	}
	vdom.AssignHIDs(tree, vdom.NewHIDGenerator())
	return tree, nested, nil
}

func notifyMounted(c Component, first bool) {
	if m, ok := c.(Mounter); ok {
		m.Mounted(first)
	}
}

func notifyUnmounted(c Component) {
	if u, ok := c.(Unmounter); ok {
		u.Unmounted()
	}
}

// sameComponent reports whether a and b are the same component value.
// Values of incomparable types never match.
func sameComponent(a, b Component) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func containsComponent(list []Component, c Component) bool {
	for _, other := range list {
		if sameComponent(other, c) {
			return true
		}
	}
	return false
}

// bind resolves v, fills its ref and attaches its declarative handlers.
func (i *Instance) bind(v *vdom.VNode) (*binding, error) {
	node, err := i.doc.Resolve(v)
	if err != nil {
		return nil, err
	}
	b := &binding{vnode: v, node: node, ref: v.NodeRef()}
	if b.ref != nil {
		b.ref.Set(node)
	}
	b.listeners = i.attachHandlers(node, v)
	return b, nil
}

// unbind drops handlers, clears the ref and releases the node.
func (i *Instance) unbind(b *binding) {
	for _, l := range b.listeners {
		l.Remove()
	}
	b.listeners = nil
	if b.ref != nil {
		b.ref.Clear()
	}
	i.doc.Release(b.node.HID())
}

func (i *Instance) attachHandlers(node dom.Node, v *vdom.VNode) []*dom.Listener {
	var out []*dom.Listener
	for event, h := range v.Handlers() {
		fn := adaptHandler(h)
		if fn == nil {
			i.logger.Warn("unsupported handler type", "hid", v.HID, "event", event, "type", fmt.Sprintf("%T", h))
			continue
		}
		out = append(out, node.AddEventListener(event, fn))
	}
	return out
}

// adaptHandler converts the handler shapes the runtime accepts.
func adaptHandler(h any) func(dom.Event) {
	switch fn := h.(type) {
	case func():
		return func(dom.Event) { fn() }
	case func(dom.Event):
		return fn
	default:
		return nil
	}
}

// Update passes props to the component. When the component asks for a
// re-render, the new tree's attribute changes are applied to the live
// nodes, handlers are rebound and Mounted(false) is called.
//
// Elements are matched by HID and tag. Elements that appear are resolved;
// elements that disappear are released.
func (i *Instance) Update(props any) (bool, error) {
	i.mu.Lock()
	mounted := i.mounted
	i.mu.Unlock()
	if !mounted {
		return false, ErrUnmounted
	}

	u, ok := i.comp.(Updater)
	if !ok || !u.Update(props) {
		return false, nil
	}
	return true, i.Rerender()
}

// Rerender renders the component again and reconciles the live nodes.
func (i *Instance) Rerender() error {
	i.mu.Lock()
	if !i.mounted {
		i.mu.Unlock()
		return ErrUnmounted
	}
	old := i.bindings
	prevNested := i.nested
	i.mu.Unlock()

	tree, nested, err := i.render()
	if err != nil {
		return err
	}

	next := make(map[string]*binding)
	var firstErr error
	for hid, v := range vdom.CollectHIDs(tree) {
		prev, ok := old[hid]
		if ok && prev.vnode.Tag == v.Tag {
			i.patch(prev, v)
			next[hid] = prev
			delete(old, hid)
			continue
		}
		b, err := i.bind(v)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("vango: resolve %s <%s>: %w", hid, v.Tag, err)
			}
			continue
		}
		next[hid] = b
	}
	// Components that left the tree let go of their nodes before those
	// nodes are released.
	for _, c := range prevNested {
		if !containsComponent(nested, c) {
			notifyUnmounted(c)
		}
	}
	for _, gone := range old {
		i.unbind(gone)
	}

	i.mu.Lock()
	i.tree = tree
	i.nested = nested
	i.bindings = next
	i.mu.Unlock()

	notifyMounted(i.comp, false)
	for _, c := range nested {
		notifyMounted(c, !containsComponent(prevNested, c))
	}
	return firstErr
}

// patch applies attribute changes and rebinds handlers and ref for an
// element that survived a re-render.
func (i *Instance) patch(b *binding, v *vdom.VNode) {
	for _, p := range vdom.DiffAttrs(b.vnode, v) {
		var err error
		switch p.Op {
		case vdom.AttrSet:
			err = b.node.SetAttribute(p.Name, p.Value)
		case vdom.AttrRemove:
			err = b.node.RemoveAttribute(p.Name)
		}
		if err != nil {
			i.logger.Warn("attribute patch failed", "hid", v.HID, "attr", p.Name, "op", p.Op.String(), "error", err)
		}
	}

	// New handlers go on before the old ones come off so an event never
	// loses its last listener in between.
	stale := b.listeners
	b.listeners = i.attachHandlers(b.node, v)
	for _, l := range stale {
		l.Remove()
	}

	if ref := v.NodeRef(); ref != b.ref {
		if b.ref != nil {
			b.ref.Clear()
		}
		b.ref = ref
	}
	if b.ref != nil {
		b.ref.Set(b.node)
	}
	b.vnode = v
}

// Unmount tells the component it is unmounted, then drops all handlers,
// clears refs and releases nodes. It is safe to call more than once.
func (i *Instance) Unmount() {
	i.mu.Lock()
	if !i.mounted {
		i.mu.Unlock()
		return
	}
	i.mounted = false
	bindings := i.bindings
	nested := i.nested
	i.bindings = nil
	i.nested = nil
	i.mu.Unlock()

	notifyUnmounted(i.comp)
	for _, c := range nested {
		notifyUnmounted(c)
	}
	for _, b := range bindings {
		i.unbind(b)
	}
	i.logger.Debug("unmounted", "nodes", len(bindings))
}

// Mounted reports whether the instance is currently mounted.
func (i *Instance) Mounted() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.mounted
}

// Tree returns the last rendered tree.
func (i *Instance) Tree() *vdom.VNode {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.tree
}

// Node returns the native node bound to hid.
func (i *Instance) Node(hid string) (dom.Node, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	b, ok := i.bindings[hid]
	if !ok {
		return nil, false
	}
	return b.node, true
}

// Component returns the mounted component.
func (i *Instance) Component() Component {
	return i.comp
}
