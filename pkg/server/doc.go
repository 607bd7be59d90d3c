// Package server serves server-rendered pages and runs their live sessions.
//
// A page request renders the root component to HTML. The browser bridge on
// that page then opens a WebSocket, and the server mounts a fresh root
// component against a Session. The Session is the component's
// vango.Document: every addressable element resolves to a remote node whose
// attribute writes, listener subscriptions and method calls become command
// frames, and whose DOM events arrive as event frames.
//
// Each session has two goroutines:
//   - the read loop decodes frames and dispatches events to node listeners,
//     then re-renders the root so attribute changes reach the browser
//   - the write loop sends heartbeat pings
//
// All writes to the connection go through one mutex with a write deadline.
//
// Usage:
//
//	srv := server.New(server.DefaultConfig(), func() vango.Component {
//	    return app.NewRoot()
//	}, server.WithAssets(src, manifest))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
