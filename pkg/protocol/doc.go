// Package protocol implements the binary wire format spoken between the
// server and the browser bridge.
//
// Every WebSocket message carries exactly one frame: a 4 byte header (type,
// flags, big-endian payload length) followed by the payload.
//
//	client → server   FrameHello, FrameEvent, FrameControl
//	server → client   FrameHello, FrameCommand, FrameControl, FrameError
//
// Events report DOM events fired on nodes the server listens to. The event
// detail is carried with the typed value codec (null, bool, int, float,
// string, array, object), which bounds nesting depth, allocation sizes and
// collection counts so a hostile client cannot exhaust the server.
//
// Commands drive the browser: invoke a method on a node, start or stop
// forwarding an event, and set or remove attributes.
package protocol
