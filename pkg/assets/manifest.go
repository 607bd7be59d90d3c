package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// ManifestName is the conventional name of the fingerprint manifest.
const ManifestName = "manifest.json"

// Manifest maps module names to their fingerprinted file names.
// It is safe for concurrent use.
type Manifest struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{entries: make(map[string]string)}
}

// LoadManifest reads a JSON manifest from src.
// A missing manifest is reported as ErrNotFound so callers can fall back to
// unfingerprinted names.
func LoadManifest(ctx context.Context, src Source, name string) (*Manifest, error) {
	rc, _, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", name, err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("assets: parse %s: %w", name, err)
	}
	if entries == nil {
		entries = make(map[string]string)
	}
	return &Manifest{entries: entries}, nil
}

// Resolve returns the fingerprinted name for module, or module unchanged.
func (m *Manifest) Resolve(module string) string {
	if m == nil {
		return module
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if resolved, ok := m.entries[module]; ok {
		return resolved
	}
	return module
}

// Has reports whether the manifest has an entry for module.
func (m *Manifest) Has(module string) bool {
	if m == nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[module]
	return ok
}

// Set adds or replaces an entry.
func (m *Manifest) Set(module, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[module] = resolved
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}
