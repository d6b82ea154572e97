package emitter

import (
	"sync"

	"github.com/hupe1980/tilemesh/core"
)

// Recorder is an in-memory Emitter that appends every emitted descriptor to
// an ordered log. Safe for concurrent use.
type Recorder struct {
	mu          sync.RWMutex
	descriptors []core.Descriptor
}

var _ core.Emitter = (*Recorder)(nil)

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit appends the descriptor to the log.
func (r *Recorder) Emit(d core.Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors = append(r.descriptors, d)
	return nil
}

// Descriptors returns a snapshot of the emission log in order. The slice is
// safe for caller mutation.
func (r *Recorder) Descriptors() []core.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := make([]core.Descriptor, len(r.descriptors))
	copy(cp, r.descriptors)
	return cp
}

// Len returns the number of recorded descriptors.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descriptors)
}

// Reset clears the log.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors = nil
}
