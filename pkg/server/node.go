package server

import (
	"context"
	"sync/atomic"

	"github.com/vango-dev/mwc/pkg/dom"
	"github.com/vango-dev/mwc/pkg/middleware"
	"github.com/vango-dev/mwc/pkg/protocol"
)

// remoteNode is a browser element reached through its session.
type remoteNode struct {
	s        *Session
	tag      string
	hid      string
	target   dom.EventTarget
	detached atomic.Bool
}

var _ dom.Node = (*remoteNode)(nil)

func newRemoteNode(s *Session, tag, hid string) *remoteNode {
	n := &remoteNode{s: s, tag: tag, hid: hid}
	// The browser only forwards events someone listens to.
	n.target.OnFirst = func(event string) {
		if n.detached.Load() {
			return
		}
		if err := s.command(protocol.CommandListen, hid, event, ""); err != nil {
			s.logger.Debug("listen not sent", "hid", hid, "event", event, "error", err)
		}
	}
	n.target.OnLast = func(event string) {
		if n.detached.Load() {
			return
		}
		if err := s.command(protocol.CommandUnlisten, hid, event, ""); err != nil {
			s.logger.Debug("unlisten not sent", "hid", hid, "event", event, "error", err)
		}
	}
	return n
}

func (n *remoteNode) Tag() string { return n.tag }

func (n *remoteNode) HID() string { return n.hid }

func (n *remoteNode) SetAttribute(name, value string) error {
	if n.detached.Load() {
		return dom.ErrDetached
	}
	return n.s.command(protocol.CommandSetAttr, n.hid, name, value)
}

func (n *remoteNode) RemoveAttribute(name string) error {
	if n.detached.Load() {
		return dom.ErrDetached
	}
	return n.s.command(protocol.CommandRemoveAttr, n.hid, name, "")
}

func (n *remoteNode) AddEventListener(event string, fn func(dom.Event)) *dom.Listener {
	return n.target.Add(event, fn)
}

// Call sends the method invocation and returns once it is written. Failures
// inside the browser come back asynchronously as error frames.
func (n *remoteNode) Call(ctx context.Context, method string) error {
	_, span := n.s.tracer.StartCall(ctx, n.s.ID, n.hid, n.tag, method)
	err := n.call(ctx, method)
	middleware.End(span, err)
	return err
}

func (n *remoteNode) call(ctx context.Context, method string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.detached.Load() {
		return dom.ErrDetached
	}
	return n.s.command(protocol.CommandCall, n.hid, method, "")
}

func (n *remoteNode) dispatch(ev dom.Event) int {
	return n.target.Dispatch(ev)
}

// detach cuts the node off from its session. Listeners are dropped without
// telling the browser; the element is gone or about to be.
func (n *remoteNode) detach() {
	n.detached.Store(true)
	n.target.Clear()
}
