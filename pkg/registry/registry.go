// Package registry provides a centralized registry of built-in processors
// (instruments and effects), keyed by plugin ID, mirroring the teacher's
// plugin registry but over the pure-Go plugin.Processor contract instead of
// cgo handles into a real CLAP host.
package registry

import (
	"fmt"
	"sync"

	"github.com/patchbay/sessioncore/pkg/plugin"
)

// Entry represents a registered processor factory.
type Entry struct {
	Info    plugin.Info
	Creator func() plugin.Processor
}

// Registry is the centralized registry for all built-in processors.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	order   []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds a processor factory under info.ID.
func (r *Registry) Register(info plugin.Info, creator func() plugin.Processor) error {
	if info.ID == "" {
		return fmt.Errorf("registry: processor ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[info.ID]; !exists {
		r.order = append(r.order, info.ID)
	}
	r.entries[info.ID] = Entry{Info: info, Creator: creator}
	return nil
}

// Count returns the number of registered processors.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// InfoAt returns processor info by registration order index.
func (r *Registry) InfoAt(index int) (plugin.Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.order) {
		return plugin.Info{}, false
	}
	return r.entries[r.order[index]].Info, true
}

// Create instantiates a new processor by ID.
func (r *Registry) Create(id string) (plugin.Processor, error) {
	r.mu.RLock()
	entry, exists := r.entries[id]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("registry: no processor registered for id %q", id)
	}

	p := entry.Creator()
	if p == nil {
		return nil, fmt.Errorf("registry: factory for id %q returned nil", id)
	}
	return p, nil
}

// IDs returns the registered processor IDs in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

var global = New()

// Register adds a processor factory to the global registry.
func Register(info plugin.Info, creator func() plugin.Processor) error {
	return global.Register(info, creator)
}

// Create instantiates a processor by ID from the global registry.
func Create(id string) (plugin.Processor, error) {
	return global.Create(id)
}

// Count returns the number of processors in the global registry.
func Count() int {
	return global.Count()
}

// IDs returns the registered IDs in the global registry.
func IDs() []string {
	return global.IDs()
}

// Global returns the global registry instance.
func Global() *Registry {
	return global
}
