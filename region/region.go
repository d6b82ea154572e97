package region

import (
	"fmt"

	"github.com/hupe1980/tilemesh/core"
)

// Buffer is a dense in-memory tensor buffer: an identity plus a full shape.
// It carries no data; descriptor construction only needs addressing.
type Buffer struct {
	id    core.BufferID
	shape []int
}

// Compile-time interface assertions.
var (
	_ core.Buffer       = (*Buffer)(nil)
	_ core.BufferRegion = (*Region)(nil)
	_ core.RegionUtil   = (*Util)(nil)
)

// NewBuffer constructs a buffer handle with the given identity and shape.
// The shape slice is copied.
func NewBuffer(id string, shape ...int) *Buffer {
	cp := make([]int, len(shape))
	copy(cp, shape)
	return &Buffer{id: core.BufferID(id), shape: cp}
}

// ID returns the buffer's stable storage identity.
func (b *Buffer) ID() core.BufferID { return b.id }

// Shape returns a copy of the buffer's full shape.
func (b *Buffer) Shape() []int {
	cp := make([]int, len(b.shape))
	copy(cp, b.shape)
	return cp
}

// Region is an immutable rectangular sub-view of a buffer.
type Region struct {
	buffer  core.BufferID
	offsets []int
	extents []int
}

// Buffer returns the identity of the underlying buffer.
func (r *Region) Buffer() core.BufferID { return r.buffer }

// Offsets returns a copy of the per-axis base offsets in elements.
func (r *Region) Offsets() []int {
	cp := make([]int, len(r.offsets))
	copy(cp, r.offsets)
	return cp
}

// Extents returns a copy of the per-axis extents in elements.
func (r *Region) Extents() []int {
	cp := make([]int, len(r.extents))
	copy(cp, r.extents)
	return cp
}

// String renders the region for error messages and logs.
func (r *Region) String() string {
	return fmt.Sprintf("%s@%v+%v", r.buffer, r.offsets, r.extents)
}

// Util implements core.RegionUtil with bounds-checked slicing arithmetic.
// It is stateless and safe for concurrent use.
type Util struct{}

// NewUtil returns the standard region utility.
func NewUtil() *Util { return &Util{} }

// ToRegion normalizes a buffer to its full region: zero offsets, extents
// equal to the buffer shape.
func (u *Util) ToRegion(buf core.Buffer) (core.BufferRegion, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", core.ErrInvalidArgument)
	}
	shape := buf.Shape()
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: buffer %q has empty shape", core.ErrInvalidArgument, buf.ID())
	}
	for axis, extent := range shape {
		if extent <= 0 {
			return nil, fmt.Errorf("%w: buffer %q extent %d on axis %d must be positive", core.ErrInvalidArgument, buf.ID(), extent, axis)
		}
	}
	return &Region{
		buffer:  buf.ID(),
		offsets: make([]int, len(shape)),
		extents: shape,
	}, nil
}

// Narrow derives a sub-region of r anchored at the given offsets (relative
// to r's own offsets) with the given extents. Rank mismatches are an
// InvalidArgument error; a sub-region escaping the base region is
// OutOfBounds.
func (u *Util) Narrow(r core.BufferRegion, offsets, extents []int) (core.BufferRegion, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil region", core.ErrInvalidArgument)
	}
	base := r.Offsets()
	bounds := r.Extents()
	if len(offsets) != len(base) || len(extents) != len(base) {
		return nil, fmt.Errorf("%w: narrow of rank-%d region %s with %d offsets and %d extents",
			core.ErrInvalidArgument, len(base), r, len(offsets), len(extents))
	}
	abs := make([]int, len(base))
	ext := make([]int, len(base))
	for axis := range base {
		if offsets[axis] < 0 || extents[axis] <= 0 {
			return nil, fmt.Errorf("%w: narrow offset %d / extent %d on axis %d of region %s",
				core.ErrInvalidArgument, offsets[axis], extents[axis], axis, r)
		}
		if offsets[axis]+extents[axis] > bounds[axis] {
			return nil, fmt.Errorf("%w: sub-region [%d, %d) exceeds extent %d on axis %d of region %s",
				core.ErrOutOfBounds, offsets[axis], offsets[axis]+extents[axis], bounds[axis], axis, r)
		}
		abs[axis] = base[axis] + offsets[axis]
		ext[axis] = extents[axis]
	}
	return &Region{buffer: r.Buffer(), offsets: abs, extents: ext}, nil
}
