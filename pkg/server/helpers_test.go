package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/mwc/pkg/dialog"
	"github.com/vango-dev/mwc/pkg/protocol"
	"github.com/vango-dev/mwc/pkg/vango"
	"github.com/vango-dev/mwc/pkg/vdom"
)

// testRoot is a page with a button that opens a dialog. The button carries
// the last close action so attribute patches can be observed.
type testRoot struct {
	handle *dialog.Handle
	dlg    *dialog.Dialog

	mu         sync.Mutex
	lastAction string
	events     []string
	notify     chan string
}

func newTestRoot() *testRoot {
	r := &testRoot{handle: dialog.NewHandle(), notify: make(chan string, 16)}
	r.dlg = dialog.New(dialog.Props{
		Heading:  dialog.String("Confirm"),
		OnOpened: func() { r.record("opened") },
		OnClosing: func(action string) {
			r.record("closing:" + action)
		},
		OnClosed: func(action string) {
			r.mu.Lock()
			r.lastAction = action
			r.mu.Unlock()
			r.record("closed:" + action)
		},
	}, r.handle)
	return r
}

func (r *testRoot) record(ev string) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	r.notify <- ev
}

func (r *testRoot) Render() *vdom.VNode {
	r.mu.Lock()
	last := r.lastAction
	r.mu.Unlock()
	return vdom.Div(
		vdom.Button(
			vdom.Data("last-action", last),
			vdom.OnClick(func() {
				if err := r.handle.Show(context.Background()); err != nil {
					r.record("show error: " + err.Error())
				}
			}),
			"Open",
		),
		r.dlg,
	)
}

// rootRecorder hands out test roots and remembers the latest one.
type rootRecorder struct {
	mu    sync.Mutex
	roots []*testRoot
}

func (rr *rootRecorder) root() vango.Component {
	r := newTestRoot()
	rr.mu.Lock()
	rr.roots = append(rr.roots, r)
	rr.mu.Unlock()
	return r
}

func (rr *rootRecorder) last() *testRoot {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return rr.roots[len(rr.roots)-1]
}

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server, *rootRecorder) {
	t.Helper()
	rr := &rootRecorder{}
	srv := New(&Config{Title: "Test"}, rr.root, opts...)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts, rr
}

type testClient struct {
	t    *testing.T
	conn *websocket.Conn
	seq  uint64
}

func dial(t *testing.T, ts *httptest.Server) *testClient {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/_mwc/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return &testClient{t: t, conn: conn}
}

func (c *testClient) send(ft protocol.FrameType, payload []byte) {
	c.t.Helper()
	data, err := protocol.NewFrame(ft, payload).Encode()
	if err != nil {
		c.t.Fatalf("encode frame: %v", err)
	}
	if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		c.t.Fatalf("write: %v", err)
	}
}

func (c *testClient) hello(major uint8) *protocol.ServerHello {
	c.t.Helper()
	c.send(protocol.FrameHello, protocol.EncodeClientHello(&protocol.ClientHello{
		Major: major,
		Minor: protocol.VersionMinor,
		Path:  "/",
	}))
	f := c.read()
	if f.Type != protocol.FrameHello {
		c.t.Fatalf("first frame = %v, want Hello", f.Type)
	}
	sh, err := protocol.DecodeServerHello(f.Payload)
	if err != nil {
		c.t.Fatalf("decode server hello: %v", err)
	}
	return sh
}

func (c *testClient) read() *protocol.Frame {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		c.t.Fatalf("read: %v", err)
	}
	f, err := protocol.DecodeFrame(msg)
	if err != nil {
		c.t.Fatalf("decode frame: %v", err)
	}
	return f
}

// readUntil reads frames until one of type ft arrives.
func (c *testClient) readUntil(ft protocol.FrameType) *protocol.Frame {
	c.t.Helper()
	for {
		f := c.read()
		if f.Type == ft {
			return f
		}
	}
}

func (c *testClient) command() *protocol.Command {
	c.t.Helper()
	cmd, err := protocol.DecodeCommand(c.readUntil(protocol.FrameCommand).Payload)
	if err != nil {
		c.t.Fatalf("decode command: %v", err)
	}
	return cmd
}

// listens collects n listen commands keyed "hid:event".
func (c *testClient) listens(n int) map[string]bool {
	c.t.Helper()
	got := make(map[string]bool)
	for len(got) < n {
		cmd := c.command()
		if cmd.Op != protocol.CommandListen {
			c.t.Fatalf("command = %s %s %s, want listen", cmd.Op, cmd.HID, cmd.Name)
		}
		got[cmd.HID+":"+cmd.Name] = true
	}
	return got
}

func (c *testClient) event(hid, name string, detail any) uint64 {
	c.t.Helper()
	c.seq++
	c.send(protocol.FrameEvent, protocol.EncodeEvent(&protocol.Event{
		Seq:    c.seq,
		HID:    hid,
		Name:   name,
		Detail: detail,
	}))
	return c.seq
}

func waitFor(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("event = %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
	}
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

func httptestRequest(host, origin string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "http://"+host+"/_mwc/ws", nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	return r
}
