// Package clientdist holds the browser bridge served next to rendered pages.
package clientdist

import _ "embed"

// BridgeJS is the browser bridge. It is served at "/_mwc/bridge.js" and
// connects the page's custom elements to their live session.
//
//go:embed bridge.js
var BridgeJS []byte
