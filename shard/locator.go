package shard

import (
	"errors"
	"fmt"

	"github.com/hupe1980/tilemesh/core"
)

// Locator computes the buffer sub-region owned by the shard at a mesh
// coordinate, using block shapes from a mesh tensor registry. It holds no
// state of its own and is deterministic for a given registry state.
type Locator struct {
	registry core.MeshTensorRegistry
	regions  core.RegionUtil
}

// NewLocator constructs a Locator over the given registry and region
// utility.
func NewLocator(registry core.MeshTensorRegistry, regions core.RegionUtil) *Locator {
	return &Locator{registry: registry, regions: regions}
}

// Locate narrows base to the shard at coord of the tensor identified by id.
//
// A nil coord requests no narrowing and returns base unchanged, registered
// or not. Otherwise the tensor must have been annotated (ShardInfoMissing
// names the buffer if not) and coord must have exactly one entry per block
// shape axis (ArityMismatch if not). The shard region is anchored at
// coord[i]*block_shape[i] per axis with extent block_shape.
func (l *Locator) Locate(base core.BufferRegion, id core.BufferID, coord []int) (core.BufferRegion, error) {
	if coord == nil {
		return base, nil
	}
	if base == nil {
		return nil, fmt.Errorf("%w: nil base region for buffer %q", core.ErrInvalidArgument, id)
	}

	info, err := l.registry.Lookup(id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, &core.ShardInfoMissingError{Buffer: id}
		}
		return nil, err
	}
	if len(coord) != len(info.BlockShape) {
		return nil, &core.ArityMismatchError{Buffer: id, Want: len(info.BlockShape), Got: len(coord)}
	}

	offsets := make([]int, len(coord))
	for axis, c := range coord {
		if c < 0 {
			return nil, fmt.Errorf("%w: negative mesh coordinate %d on axis %d for buffer %q", core.ErrInvalidArgument, c, axis, id)
		}
		offsets[axis] = c * info.BlockShape[axis]
	}
	return l.regions.Narrow(base, offsets, info.BlockShape)
}
