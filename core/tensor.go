package core

import "fmt"

// MeshTensorInfo is the per-tensor mesh metadata record attached during
// annotation. BlockShape gives the shard extent along each tensor axis,
// ProgramID identifies the shard's owning program, and Sharding is an opaque
// policy descriptor passed through to the lowering stage uninterpreted.
type MeshTensorInfo struct {
	BlockShape []int  `json:"block_shape"`
	ProgramID  string `json:"program_id"`
	Sharding   any    `json:"sharding"`
}

// Validate checks that all three required fields are present: a non-empty
// block shape with positive extents, a program id, and a sharding policy.
// The returned error names the offending field and value.
func (i MeshTensorInfo) Validate() error {
	if len(i.BlockShape) == 0 {
		return fmt.Errorf("%w: missing block_shape in mesh tensor info %+v", ErrInvalidArgument, i)
	}
	for axis, extent := range i.BlockShape {
		if extent <= 0 {
			return fmt.Errorf("%w: block_shape extent %d on axis %d must be positive", ErrInvalidArgument, extent, axis)
		}
	}
	if i.ProgramID == "" {
		return fmt.Errorf("%w: missing program_id in mesh tensor info %+v", ErrInvalidArgument, i)
	}
	if i.Sharding == nil {
		return fmt.Errorf("%w: missing sharding in mesh tensor info %+v", ErrInvalidArgument, i)
	}
	return nil
}

// Clone returns a deep copy of the record. Registered metadata is isolated
// from later mutation of caller-held slices and maps in both directions.
func (i MeshTensorInfo) Clone() MeshTensorInfo {
	cp := MeshTensorInfo{
		BlockShape: make([]int, len(i.BlockShape)),
		ProgramID:  i.ProgramID,
		Sharding:   deepCopyValue(i.Sharding),
	}
	copy(cp.BlockShape, i.BlockShape)
	return cp
}

// deepCopyValue copies the container shapes an opaque sharding policy is
// expected to take (maps, slices, scalars). Unknown types are returned as-is.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		cp := make(map[string]any, len(val))
		for k, elem := range val {
			cp[k] = deepCopyValue(elem)
		}
		return cp
	case []any:
		cp := make([]any, len(val))
		for i, elem := range val {
			cp[i] = deepCopyValue(elem)
		}
		return cp
	case []int:
		cp := make([]int, len(val))
		copy(cp, val)
		return cp
	case []string:
		cp := make([]string, len(val))
		copy(cp, val)
		return cp
	default:
		return v
	}
}

// MeshTensorRegistry maps buffer identity to mesh tensor metadata for one
// annotation context. RegisterAll is all-or-nothing and fully supersedes the
// prior contents; Lookup returns ErrNotFound for unannotated buffers.
//
// A registry instance is scoped to a single compilation context. Concurrent
// compilations must each own an independent instance.
type MeshTensorRegistry interface {
	RegisterAll(entries map[BufferID]MeshTensorInfo) error
	Lookup(id BufferID) (MeshTensorInfo, error)
}
