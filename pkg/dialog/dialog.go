package dialog

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/vango-dev/mwc/pkg/dom"
	"github.com/vango-dev/mwc/pkg/element"
	"github.com/vango-dev/mwc/pkg/vango"
	"github.com/vango-dev/mwc/pkg/vdom"
)

// Tag is the custom element name.
const Tag = "mwc-dialog"

// Definition is the element definition loaded before the first dialog.
var Definition = element.Definition{Tag: Tag, Module: "mwc-dialog.js"}

type state uint8

const (
	stateCreated state = iota
	stateMounted
	stateUnmounted
)

func (s state) String() string {
	switch s {
	case stateCreated:
		return "created"
	case stateMounted:
		return "mounted"
	case stateUnmounted:
		return "unmounted"
	default:
		return "unknown"
	}
}

// listenerSet holds the four lifecycle subscriptions, each removed
// independently.
type listenerSet struct {
	opening, opened, closing, closed *dom.Listener
	node                             dom.Node
}

func (s *listenerSet) empty() bool {
	return s.opening == nil && s.opened == nil && s.closing == nil && s.closed == nil
}

// release removes every subscription. Missing ones are skipped.
func (s *listenerSet) release() {
	s.opening.Remove()
	s.opened.Remove()
	s.closing.Remove()
	s.closed.Remove()
	*s = listenerSet{}
}

// Dialog is an mwc-dialog component. It implements vango.Component,
// vango.Updater, vango.Mounter and vango.Unmounter.
//
// Lifecycle methods are driven by a single goroutine; the mutex only guards
// against Handle calls from other goroutines.
type Dialog struct {
	mu        sync.Mutex
	props     Props
	ref       *dom.NodeRef
	handle    *Handle
	listeners listenerSet
	state     state
	logger    *slog.Logger
}

var (
	_ vango.Component = (*Dialog)(nil)
	_ vango.Updater   = (*Dialog)(nil)
	_ vango.Mounter   = (*Dialog)(nil)
	_ vango.Unmounter = (*Dialog)(nil)
)

// New creates a dialog with props. When handle is non-nil it is pointed at
// the new dialog.
//
// New makes sure the mwc-dialog definition is loaded in the process-wide
// element registry and panics if it cannot be: without it there is no
// dialog to drive.
func New(props Props, handle *Handle) *Dialog {
	element.MustEnsure(Definition)

	d := &Dialog{
		props:  props,
		ref:    dom.NewNodeRef(),
		handle: handle,
		logger: slog.Default().With("component", "dialog"),
	}
	if handle != nil {
		handle.owner.Store(d)
		handle.ref.Set(d)
	}
	return d
}

// Props returns the current props.
func (d *Dialog) Props() Props {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.props
}

// SetProps replaces the props. It always reports that a re-render is
// needed; the element itself detects which attributes changed.
func (d *Dialog) SetProps(props Props) bool {
	d.mu.Lock()
	d.props = props
	d.mu.Unlock()
	return true
}

// Update implements vango.Updater for Props and *Props values.
func (d *Dialog) Update(props any) bool {
	switch p := props.(type) {
	case Props:
		return d.SetProps(p)
	case *Props:
		if p != nil {
			return d.SetProps(*p)
		}
	}
	d.logger.Warn("ignoring update with unexpected props", "type", fmt.Sprintf("%T", props))
	return false
}

// Render implements vango.Component.
func (d *Dialog) Render() *vdom.VNode {
	d.mu.Lock()
	props := d.props
	d.mu.Unlock()

	return vdom.CustomElement(Tag,
		props.attrs(),
		vdom.Ref(d.ref),
		props.Children,
	)
}

// Mounted implements vango.Mounter. Lifecycle listeners are attached when
// none are active, so repeated calls never subscribe twice. If the element
// was re-created under the dialog the listeners move to the new node.
//
// Without a captured node the dialog stays unmounted.
func (d *Dialog) Mounted(first bool) {
	node, ok := d.ref.Node()

	d.mu.Lock()
	defer d.mu.Unlock()

	if !ok {
		d.logger.Warn("mounted without a captured node", "first", first)
		return
	}
	d.state = stateMounted
	d.reclaimHandle()
	if !d.listeners.empty() {
		if d.listeners.node == node {
			return
		}
		d.listeners.release()
	}

	d.listeners = listenerSet{
		node:    node,
		opening: node.AddEventListener(EventOpening, func(dom.Event) { d.fire(EventOpening, "") }),
		opened:  node.AddEventListener(EventOpened, func(dom.Event) { d.fire(EventOpened, "") }),
		closing: node.AddEventListener(EventClosing, func(e dom.Event) { d.fire(EventClosing, d.action(e)) }),
		closed:  node.AddEventListener(EventClosed, func(e dom.Event) { d.fire(EventClosed, d.action(e)) }),
	}
	d.logger.Debug("listeners attached", "hid", node.HID(), "first", first)
}

// Unmounted implements vango.Unmounter. It releases the listeners and
// detaches the handle. Calling it more than once, or before Mounted, is
// harmless.
func (d *Dialog) Unmounted() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners.release()
	d.state = stateUnmounted
	if d.handle != nil {
		if cur, ok := d.handle.ref.Get(); ok && cur == d {
			d.handle.ref.Clear()
		}
	}
}

// reclaimHandle points the handle back at d after a remount. A handle that
// New has since given to another dialog is left alone.
func (d *Dialog) reclaimHandle() {
	if d.handle == nil || d.handle.owner.Load() != d {
		return
	}
	if _, ok := d.handle.ref.Get(); !ok {
		d.handle.ref.Set(d)
	}
}

// action parses the event detail, logging details without an action.
func (d *Dialog) action(e dom.Event) string {
	action, ok := parseAction(e.Detail)
	if !ok {
		d.logger.Debug("event detail has no action", "event", e.Type, "detail", fmt.Sprintf("%T", e.Detail))
	}
	return action
}

// fire invokes the callback for event with the current props. Callbacks run
// without the lock held so they may call back into the dialog.
func (d *Dialog) fire(event, action string) {
	d.mu.Lock()
	if d.state != stateMounted {
		d.mu.Unlock()
		return
	}
	props := d.props
	d.mu.Unlock()

	switch event {
	case EventOpening:
		if props.OnOpening != nil {
			props.OnOpening()
		}
	case EventOpened:
		if props.OnOpened != nil {
			props.OnOpened()
		}
	case EventClosing:
		if props.OnClosing != nil {
			props.OnClosing(action)
		}
	case EventClosed:
		if props.OnClosed != nil {
			props.OnClosed(action)
		}
	}
}

// node returns the captured native node for method.
func (d *Dialog) node(method string) (dom.Node, error) {
	d.mu.Lock()
	st := d.state
	d.mu.Unlock()

	switch st {
	case stateCreated:
		return nil, useBeforeMount(method)
	case stateUnmounted:
		return nil, useAfterUnmount(method)
	}
	node, ok := d.ref.Node()
	if !ok {
		return nil, useBeforeMount(method)
	}
	return node, nil
}
