package assets

// Resolver maps a module name to the URL the page loads it from.
type Resolver interface {
	// Module returns the URL path for module, e.g.
	// "mwc-dialog.js" -> "/_mwc/modules/mwc-dialog.3f9a1c.js".
	Module(name string) string
}

type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver that looks names up in m (which may be nil)
// and prepends prefix.
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{manifest: m, prefix: prefix}
}

func (r *manifestResolver) Module(name string) string {
	return r.prefix + r.manifest.Resolve(name)
}
