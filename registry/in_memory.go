package registry

import (
	"fmt"
	"sync"

	"github.com/hupe1980/tilemesh/core"
)

// InMemory is the standard MeshTensorRegistry implementation: a single
// mutable slot of buffer-id → metadata guarded by an RWMutex. One instance
// belongs to one compilation context; concurrent compilations must each own
// their own.
type InMemory struct {
	mu      sync.RWMutex
	entries map[core.BufferID]core.MeshTensorInfo
}

// Compile-time interface assertion.
var _ core.MeshTensorRegistry = (*InMemory)(nil)

// NewInMemory returns an empty in-memory registry.
func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[core.BufferID]core.MeshTensorInfo)}
}

// RegisterAll validates every entry, then atomically replaces the registry
// contents with deep copies of the validated records. If any entry is
// invalid the registry keeps its previous state and the error names the
// offending buffer and record.
func (r *InMemory) RegisterAll(entries map[core.BufferID]core.MeshTensorInfo) error {
	staged := make(map[core.BufferID]core.MeshTensorInfo, len(entries))
	for id, info := range entries {
		if id == "" {
			return fmt.Errorf("%w: empty buffer id in mesh tensor info map", core.ErrInvalidArgument)
		}
		if err := info.Validate(); err != nil {
			return fmt.Errorf("buffer %q: %w", id, err)
		}
		staged[id] = info.Clone()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = staged
	return nil
}

// Lookup returns a deep copy of the metadata for the buffer, or ErrNotFound.
func (r *InMemory) Lookup(id core.BufferID) (core.MeshTensorInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.entries[id]
	if !ok {
		return core.MeshTensorInfo{}, fmt.Errorf("%w: buffer %q has no registered mesh tensor info", core.ErrNotFound, id)
	}
	return info.Clone(), nil
}

// Len returns the number of registered buffers.
func (r *InMemory) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
