package render

import (
	"io"
	"strings"

	"github.com/vango-dev/mwc/pkg/assets"
	"github.com/vango-dev/mwc/pkg/element"
	"github.com/vango-dev/mwc/pkg/vdom"
)

// Default paths served by pkg/server.
const (
	DefaultBridgeScript = "/_mwc/bridge.js"
	DefaultSocketPath   = "/_mwc/ws"
)

// PageData is everything needed to render a complete document.
type PageData struct {
	// Body is the page content. HIDs must already be assigned.
	Body *vdom.VNode

	Title string

	// Lang is the html lang attribute. Defaults to "en".
	Lang string

	// Modules are module script URLs, loaded in order before the bridge.
	Modules []string

	// Styles are inline CSS blocks placed in the head.
	Styles []string

	// BridgeScript is the URL of the browser bridge. Defaults to
	// DefaultBridgeScript. The bridge is omitted when Static is set.
	BridgeScript string

	// SocketPath is the WebSocket endpoint the bridge connects to.
	// Defaults to DefaultSocketPath.
	SocketPath string

	// Static renders a page without the bridge (no live session).
	Static bool
}

// ModuleURLs lists the module URL of every definition loaded in reg, in
// load order, resolved through res.
func ModuleURLs(reg *element.Registry, res assets.Resolver) []string {
	defs := reg.Loaded()
	urls := make([]string, 0, len(defs))
	for _, def := range defs {
		if def.Module == "" {
			continue
		}
		urls = append(urls, res.Module(def.Module))
	}
	return urls
}

// RenderPage renders a complete HTML document to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	bridge := page.BridgeScript
	if bridge == "" {
		bridge = DefaultBridgeScript
	}
	socket := page.SocketPath
	if socket == "" {
		socket = DefaultSocketPath
	}

	ew := &errWriter{w: w}
	ew.WriteString("<!DOCTYPE html>\n")
	ew.WriteString(`<html lang="` + escapeAttr(lang) + `">` + "\n")

	ew.WriteString("<head>\n")
	ew.WriteString(`<meta charset="utf-8">` + "\n")
	ew.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	if page.Title != "" {
		ew.WriteString("<title>" + escapeHTML(page.Title) + "</title>\n")
	}
	for _, css := range page.Styles {
		// Closing tags inside CSS would end the style element early.
		ew.WriteString("<style>" + neutralizeClose(css, "</style") + "</style>\n")
	}
	for _, src := range page.Modules {
		ew.WriteString(`<script type="module" src="` + escapeAttr(src) + `"></script>` + "\n")
	}
	ew.WriteString("</head>\n")

	ew.WriteString("<body>\n")
	if ew.err != nil {
		return ew.err
	}
	vdom.Expand(page.Body)
	r.renderNode(ew, page.Body, 0)
	ew.WriteString("\n")
	if !page.Static {
		ew.WriteString(`<script type="module" src="` + escapeAttr(bridge) + `" data-ws="` + escapeAttr(socket) + `"></script>` + "\n")
	}
	ew.WriteString("</body>\n</html>\n")
	return ew.err
}

// neutralizeClose rewrites every case-insensitive occurrence of closeTag
// (e.g. "</style") as "<\/style" so embedded text cannot end the element.
func neutralizeClose(s, closeTag string) string {
	lower := asciiLower(s)
	var b strings.Builder
	for {
		i := strings.Index(lower, closeTag)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i+1])
		b.WriteString(`\`)
		s, lower = s[i+1:], lower[i+1:]
	}
}

// asciiLower lowercases ASCII letters only, keeping byte offsets aligned
// with s.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
