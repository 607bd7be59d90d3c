// Package vdom provides the declarative node tree components render to.
//
// A VNode is either an element, a text node or a fragment. Elements carry
// Props: attribute values, event handlers (keys prefixed with "on") and
// internal values (keys prefixed with "_", such as ref capture points).
//
// Custom elements are first-class: CustomElement builds an element with any
// tag, and every boolean attribute is presence-style. A true value renders
// the bare attribute, a false or nil value omits it entirely. EffectiveAttrs
// is the single place that rule lives; the renderer and the runtime's
// attribute diff both go through it.
//
//	vdom.CustomElement("mwc-dialog",
//	    vdom.BoolAttr("open", props.Open),
//	    vdom.OptAttr("heading", props.Heading),
//	    vdom.Ref(nodeRef),
//	    children,
//	)
package vdom
