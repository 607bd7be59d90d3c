package vdom

import (
	"strings"

	"github.com/vango-dev/mwc/pkg/dom"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// A creates an arbitrary attribute. Custom elements use this for their own
// attribute vocabulary.
func A(name string, value any) Attr { return attr(name, value) }

// BoolAttr creates a presence-style attribute: present when on is true,
// omitted otherwise.
func BoolAttr(name string, on bool) Attr {
	if !on {
		return Attr{}
	}
	return attr(name, true)
}

// OptAttr creates a valued attribute from an optional string. A nil value
// yields an empty Attr, which element constructors ignore.
func OptAttr(name string, value *string) Attr {
	if value == nil {
		return Attr{}
	}
	return attr(name, *value)
}

// Ref attaches a capture point. After mount the runtime stores the native
// node this element resolved to in ref.
func Ref(ref *dom.NodeRef) Attr {
	if ref == nil {
		return Attr{}
	}
	return attr(refProp, ref)
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Slot sets the slot attribute for light-DOM content of a custom element.
func Slot(name string) Attr { return attr("slot", name) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Disabled sets the disabled attribute.
func Disabled() Attr { return attr("disabled", true) }

// Autofocus sets the autofocus attribute.
func Autofocus() Attr { return attr("autofocus", true) }

// Key creates a key attribute for reconciliation.
func Key(key string) Attr { return attr("key", key) }
