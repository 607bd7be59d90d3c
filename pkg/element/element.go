// Package element keeps the process-wide registry of custom element
// definitions.
//
// A custom element (such as mwc-dialog) is defined by a JavaScript module the
// page must load before the element upgrades. Components call EnsureLoaded
// when they are created; the first call for a tag runs the Loader, every later
// call returns the remembered outcome. The page renderer lists Loaded
// definitions as module scripts.
package element

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/mwc/internal/errors"
)

// Definition names a custom element and the module that defines it.
type Definition struct {
	// Tag is the custom element tag name (e.g., "mwc-dialog").
	Tag string

	// Module is the module path relative to the asset source
	// (e.g., "mwc-dialog.js").
	Module string
}

// Loader registers a definition. Implementations typically verify that the
// module is available to the page.
type Loader interface {
	Load(ctx context.Context, def Definition) error
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, def Definition) error

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, def Definition) error {
	return f(ctx, def)
}

// acceptAll is the default loader: every definition is available.
var acceptAll = LoaderFunc(func(context.Context, Definition) error { return nil })

// entry is the one-shot state for a tag.
type entry struct {
	once sync.Once
	def  Definition
	err  error
	seq  int
}

// Registry tracks which definitions have been loaded.
type Registry struct {
	mu      sync.Mutex
	loader  Loader
	entries map[string]*entry
	seq     int
	timeout time.Duration
	logger  *slog.Logger
}

// NewRegistry creates a registry using loader. A nil loader accepts every
// definition.
func NewRegistry(loader Loader) *Registry {
	if loader == nil {
		loader = acceptAll
	}
	return &Registry{
		loader:  loader,
		entries: make(map[string]*entry),
		timeout: 10 * time.Second,
		logger:  slog.Default().With("component", "element"),
	}
}

// SetLoader replaces the loader used for tags not yet loaded.
func (r *Registry) SetLoader(loader Loader) {
	if loader == nil {
		loader = acceptAll
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loader = loader
}

// EnsureLoaded loads def at most once per registry. Concurrent and later
// callers for the same tag get the first call's result.
func (r *Registry) EnsureLoaded(def Definition) error {
	if def.Tag == "" {
		return errors.New("M201").WithDetail("definition has no tag")
	}

	r.mu.Lock()
	e, ok := r.entries[def.Tag]
	if !ok {
		e = &entry{def: def}
		r.entries[def.Tag] = e
	}
	loader := r.loader
	timeout := r.timeout
	r.mu.Unlock()

	e.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		if err := loader.Load(ctx, def); err != nil {
			e.err = errors.New("M201").
				WithDetail(fmt.Sprintf("<%s> from %q", def.Tag, def.Module)).
				Wrap(err)
			r.logger.Error("element load failed", "tag", def.Tag, "module", def.Module, "error", err)
			return
		}

		r.mu.Lock()
		r.seq++
		e.seq = r.seq
		r.mu.Unlock()
		r.logger.Debug("element loaded", "tag", def.Tag, "module", def.Module, "duration", time.Since(start))
	})
	return e.err
}

// IsLoaded reports whether tag was loaded successfully.
func (r *Registry) IsLoaded(tag string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[tag]
	return ok && e.seq > 0
}

// Loaded returns the successfully loaded definitions in load order.
func (r *Registry) Loaded() []Definition {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Definition, r.seq)
	n := 0
	for _, e := range r.entries {
		if e.seq > 0 {
			out[e.seq-1] = e.def
			n++
		}
	}
	return out[:n]
}

var defaultRegistry = NewRegistry(nil)

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// SetDefaultLoader sets the loader of the process-wide registry. It must run
// before the first component that needs an element is created.
func SetDefaultLoader(loader Loader) {
	defaultRegistry.SetLoader(loader)
}

// EnsureLoaded loads def into the process-wide registry.
func EnsureLoaded(def Definition) error {
	return defaultRegistry.EnsureLoaded(def)
}

// MustEnsure loads def into the process-wide registry and panics if the
// definition cannot be loaded. Without its definition an element has no
// behavior at all, so there is nothing to fall back to.
func MustEnsure(def Definition) {
	if err := defaultRegistry.EnsureLoaded(def); err != nil {
		panic(err)
	}
}
