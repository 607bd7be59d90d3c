// Package dom describes native nodes as seen from the Go side of a
// server-driven UI.
//
// A native node is the live element that a rendered vdom.VNode became. In a
// browser session it is a remote element reached over the WebSocket; in tests
// it is an in-memory fake (see package domtest). Components never care which.
//
// The package provides:
//   - Node: attribute writes, event subscription and method invocation
//   - Event: a native event with an optional structured detail payload
//   - EventTarget: the listener registry Node implementations embed
//   - NodeRef: the single-slot cell a render-time capture point fills
package dom
