// Package assets serves and verifies the JavaScript modules that define
// custom elements.
//
// A Source is where bundles live: a local directory (DirSource) or an S3
// bucket (S3Source). Loader turns a Source into an element.Loader that checks
// a definition's module exists before the element is considered loaded.
// Handler streams bundles to the browser, and Resolver maps module names to
// the URLs the page references, optionally through a fingerprint Manifest:
//
//	{
//	  "mwc-dialog.js": "mwc-dialog.3f9a1c.js"
//	}
package assets
