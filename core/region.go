package core

// Buffer is the minimal view of an allocated tensor buffer this layer needs:
// a stable storage identity and a full shape. Allocation and data movement
// belong to the runtime, not to descriptor construction.
type Buffer interface {
	ID() BufferID
	Shape() []int
}

// BufferRegion is a rectangular sub-view of a buffer: a per-axis base offset
// plus a per-axis extent, both in elements. Regions are immutable values;
// narrowing always derives a new region.
type BufferRegion interface {
	Buffer() BufferID
	Offsets() []int
	Extents() []int
}

// RegionUtil is the slicing primitive this layer delegates to. ToRegion
// normalizes a buffer to its full region; Narrow derives a sub-region of r
// anchored at the given per-axis offsets (relative to r) with the given
// extents. Implementations validate rank and bounds.
type RegionUtil interface {
	ToRegion(buf Buffer) (BufferRegion, error)
	Narrow(r BufferRegion, offsets, extents []int) (BufferRegion, error)
}
