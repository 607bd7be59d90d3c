package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vango-dev/mwc/pkg/dom"
	"github.com/vango-dev/mwc/pkg/middleware"
	"github.com/vango-dev/mwc/pkg/protocol"
	"github.com/vango-dev/mwc/pkg/vango"
	"github.com/vango-dev/mwc/pkg/vdom"
)

// ErrSessionClosed is returned by node operations once the session is closed.
var ErrSessionClosed = errors.New("server: session closed")

// recentCommands is how many sent commands are remembered so browser error
// reports can be matched to them.
const recentCommands = 256

type sentCommand struct {
	seq  uint64
	op   protocol.CommandOp
	hid  string
	name string
}

// Session is one live page: a WebSocket connection and the component
// mounted for it. It implements vango.Document.
type Session struct {
	// ID is the random session identifier sent in the server hello.
	ID string

	conn    *websocket.Conn
	config  *Config
	logger  *slog.Logger
	metrics *middleware.Metrics
	tracer  *middleware.Tracer

	writeMu sync.Mutex
	seq     atomic.Uint64
	recent  [recentCommands]sentCommand

	nodesMu sync.Mutex
	nodes   map[string]*remoteNode

	inst *vango.Instance

	done      chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
	onClose   func(*Session)
}

var _ vango.Document = (*Session)(nil)

func newSession(conn *websocket.Conn, config *Config, logger *slog.Logger, metrics *middleware.Metrics, tracer *middleware.Tracer) *Session {
	id := uuid.NewString()
	return &Session{
		ID:      id,
		conn:    conn,
		config:  config,
		logger:  logger.With("session_id", id),
		metrics: metrics,
		tracer:  tracer,
		nodes:   make(map[string]*remoteNode),
		done:    make(chan struct{}),
	}
}

// Resolve implements vango.Document. Elements are matched by HID; a HID
// that now carries a different tag gets a fresh node.
func (s *Session) Resolve(v *vdom.VNode) (dom.Node, error) {
	if s.closed.Load() {
		return nil, ErrSessionClosed
	}
	if v.HID == "" {
		return nil, fmt.Errorf("server: <%s> has no hid", v.Tag)
	}

	s.nodesMu.Lock()
	defer s.nodesMu.Unlock()
	if n, ok := s.nodes[v.HID]; ok {
		if n.tag == v.Tag {
			return n, nil
		}
		n.detach()
	}
	n := newRemoteNode(s, v.Tag, v.HID)
	s.nodes[v.HID] = n
	return n, nil
}

// Release implements vango.Document.
func (s *Session) Release(hid string) {
	s.nodesMu.Lock()
	n, ok := s.nodes[hid]
	delete(s.nodes, hid)
	s.nodesMu.Unlock()
	if ok {
		n.detach()
	}
}

func (s *Session) node(hid string) (*remoteNode, bool) {
	s.nodesMu.Lock()
	defer s.nodesMu.Unlock()
	n, ok := s.nodes[hid]
	return n, ok
}

// mount mounts comp against this session.
func (s *Session) mount(comp vango.Component) error {
	inst, err := vango.Mount(comp, s, vango.WithLogger(s.logger))
	if err != nil {
		return err
	}
	s.inst = inst
	return nil
}

// command sends one command frame.
func (s *Session) command(op protocol.CommandOp, hid, name, value string) error {
	seq := s.seq.Add(1)
	payload := protocol.EncodeCommand(&protocol.Command{
		Seq:   seq,
		Op:    op,
		HID:   hid,
		Name:  name,
		Value: value,
	})
	if err := s.writeFrame(protocol.FrameCommand, payload, func() {
		s.recent[seq%recentCommands] = sentCommand{seq: seq, op: op, hid: hid, name: name}
	}); err != nil {
		s.metrics.CommandFailed(op.String())
		return err
	}
	s.metrics.CommandSent(op.String())
	return nil
}

// writeFrame writes a frame under the write mutex. locked, when set, runs
// while the mutex is held.
func (s *Session) writeFrame(ft protocol.FrameType, payload []byte, locked func()) error {
	data, err := protocol.NewFrame(ft, payload).Encode()
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if locked != nil {
		locked()
	}
	return s.writeLocked(data)
}

func (s *Session) writeLocked(data []byte) error {
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

// ReadLoop reads frames until the connection fails or the session closes,
// then unmounts the component.
func (s *Session) ReadLoop() {
	defer s.teardown()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Warn("frame decode error", "error", err)
			s.sendError(protocol.NewError(protocol.ErrInvalidFrame, "invalid frame"))
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)

		case protocol.FrameControl:
			s.handleControlFrame(frame.Payload)

		case protocol.FrameError:
			s.handleErrorFrame(frame.Payload)

		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type)
		}

		if s.closed.Load() {
			return
		}
	}
}

// handleEventFrame dispatches a browser event to the node's listeners and
// re-renders the root afterwards.
func (s *Session) handleEventFrame(payload []byte) {
	pe, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.metrics.EventDecodeFailed()
		s.logger.Warn("event decode error", "error", err)
		s.sendError(protocol.NewError(protocol.ErrInvalidEvent, "invalid event"))
		return
	}

	n, ok := s.node(pe.HID)
	if !ok {
		// The node can be released while an event for it is in flight.
		s.logger.Debug("event for unknown node", "hid", pe.HID, "event", pe.Name)
		em := protocol.NewError(protocol.ErrUnknownNode, "unknown node "+pe.HID)
		em.Seq = pe.Seq
		s.sendError(em)
		return
	}

	_, span := s.tracer.StartEvent(context.Background(), s.ID, pe.HID, pe.Name)
	start := time.Now()
	err = s.dispatch(n, dom.Event{Type: pe.Name, Detail: pe.Detail})
	s.metrics.EventDispatched(pe.Name, time.Since(start))
	middleware.End(span, err)

	if err != nil {
		em := protocol.NewError(protocol.ErrHandlerPanic, err.Error())
		em.Seq = pe.Seq
		s.sendError(em)
	}
}

// dispatch runs the listeners and the follow-up re-render, turning a panic
// in component code into an error.
func (s *Session) dispatch(n *remoteNode, ev dom.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event handler panic",
				"hid", n.hid,
				"event", ev.Type,
				"panic", r,
				"stack", string(debug.Stack()))
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	if n.dispatch(ev) == 0 {
		return nil
	}
	if s.inst == nil || !s.inst.Mounted() {
		return nil
	}
	if err := s.inst.Rerender(); err != nil {
		s.logger.Warn("rerender failed", "event", ev.Type, "error", err)
	}
	return nil
}

// handleControlFrame handles ping, pong and close.
func (s *Session) handleControlFrame(payload []byte) {
	c, err := protocol.DecodeControl(payload)
	if err != nil {
		s.logger.Warn("control decode error", "error", err)
		return
	}

	switch c.Type {
	case protocol.ControlPing:
		s.sendControl(protocol.NewPong(c.Timestamp))

	case protocol.ControlPong:
		s.logger.Debug("received pong")

	case protocol.ControlClose:
		s.logger.Info("client closing", "reason", c.Reason, "message", c.Message)
		s.closeWith(nil)
	}
}

// handleErrorFrame logs a browser-side failure and matches it to the command
// that caused it.
func (s *Session) handleErrorFrame(payload []byte) {
	em, err := protocol.DecodeErrorMessage(payload)
	if err != nil {
		s.logger.Warn("error frame decode error", "error", err)
		return
	}

	attrs := []any{"code", em.Code.String(), "message", em.Message, "seq", em.Seq}
	op := "unknown"
	s.writeMu.Lock()
	sent := s.recent[em.Seq%recentCommands]
	s.writeMu.Unlock()
	if em.Seq != 0 && sent.seq == em.Seq {
		op = sent.op.String()
		attrs = append(attrs, "op", op, "hid", sent.hid, "name", sent.name)
	}
	if em.Code == protocol.ErrCommandFailed || em.Code == protocol.ErrUnknownNode {
		s.metrics.CommandFailed(op)
	}
	s.logger.Warn("browser reported error", attrs...)
}

func (s *Session) sendControl(c *protocol.Control) error {
	err := s.writeFrame(protocol.FrameControl, protocol.EncodeControl(c), nil)
	if err != nil && !errors.Is(err, ErrSessionClosed) {
		s.logger.Error("control write error", "type", c.Type, "error", err)
	}
	return err
}

func (s *Session) sendError(em *protocol.ErrorMessage) {
	err := s.writeFrame(protocol.FrameError, protocol.EncodeErrorMessage(em), nil)
	if err != nil && !errors.Is(err, ErrSessionClosed) {
		s.logger.Error("error write error", "code", em.Code, "error", err)
	}
}

// WriteLoop sends heartbeat pings until the session closes.
func (s *Session) WriteLoop() {
	if s.config.HeartbeatInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ping := protocol.NewPing(uint64(time.Now().UnixMilli()))
			if err := s.sendControl(ping); err != nil {
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

// Close ends the session normally.
func (s *Session) Close() {
	s.closeWith(nil)
}

// CloseWithReason tells the browser why the session ends, then closes it.
func (s *Session) CloseWithReason(reason protocol.CloseReason, message string) {
	s.closeWith(protocol.NewClose(reason, message))
}

// closeWith marks the session closed, optionally sends a close control frame
// and closes the connection, which ends the read loop. Only the first call
// has any effect. It is safe from any goroutine.
func (s *Session) closeWith(notice *protocol.Control) {
	s.closeOnce.Do(func() {
		s.writeMu.Lock()
		s.closed.Store(true)
		if notice != nil {
			if data, err := protocol.NewFrame(protocol.FrameControl, protocol.EncodeControl(notice)).Encode(); err == nil {
				s.writeLocked(data)
			}
		}
		s.writeMu.Unlock()
		close(s.done)
		s.conn.Close()
	})
}

// teardown unmounts the component and drops every node. It runs on the
// read loop's goroutine, which is the only one driving the component.
func (s *Session) teardown() {
	s.closeWith(nil)

	if s.inst != nil {
		s.inst.Unmount()
	}

	s.nodesMu.Lock()
	for hid, n := range s.nodes {
		n.detach()
		delete(s.nodes, hid)
	}
	s.nodesMu.Unlock()

	s.logger.Debug("session closed")
	if s.onClose != nil {
		s.onClose(s)
	}
}

// IsClosed reports whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done is closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// NodeCount returns the number of resolved nodes.
func (s *Session) NodeCount() int {
	s.nodesMu.Lock()
	defer s.nodesMu.Unlock()
	return len(s.nodes)
}
