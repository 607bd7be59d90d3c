package dom

import (
	"context"
	"errors"
)

// ErrDetached is returned by node operations after the node has been
// released by its document.
var ErrDetached = errors.New("dom: node detached")

// Event is a native event delivered to a listener.
type Event struct {
	// Type is the event name (e.g., "closing").
	Type string

	// Detail is the structured payload of a CustomEvent, or nil.
	// Remote events carry decoded values: nil, bool, int64, float64,
	// string, []any or map[string]any.
	Detail any
}

// Node is a captured native element.
type Node interface {
	// Tag returns the element tag name.
	Tag() string

	// HID returns the hydration ID the node was resolved from.
	HID() string

	// SetAttribute sets an attribute on the native element.
	SetAttribute(name, value string) error

	// RemoveAttribute removes an attribute from the native element.
	RemoveAttribute(name string) error

	// AddEventListener subscribes fn to the named event. The returned
	// Listener stays active until Remove is called.
	AddEventListener(event string, fn func(Event)) *Listener

	// Call invokes a zero-argument method on the native element.
	Call(ctx context.Context, method string) error
}
