// Package render renders VNode trees to HTML on the server.
//
// Attribute output goes through vdom.EffectiveAttrs, the same function the
// live runtime diffs against, so a server-rendered page and a mounted
// instance always agree on which attributes a node carries. Boolean
// attributes are written bare (`<mwc-dialog open>`), nodes that need to be
// addressed later carry `data-hid`, and declarative handlers leave a
// `data-on-<event>` marker for the browser bridge.
//
// RenderPage wraps a body in a full document that loads the module of every
// custom element definition ensured so far, followed by the bridge script.
package render
