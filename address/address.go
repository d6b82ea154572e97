package address

import (
	"fmt"

	"github.com/hupe1980/tilemesh/core"
)

// Resolve converts a core reference into a linear core address on the given
// mesh shape.
//
// A coordinate (row, col) must satisfy 0 <= row < shape.X and
// 0 <= col < shape.Y and resolves to row*shape.X + col. The X extent as
// multiplier is the target's addressing convention and is preserved exactly.
// A linear id must satisfy 0 <= id < shape.X*shape.Y and resolves to itself.
func Resolve(ref core.CoreRef, shape core.MeshShape) (core.CoreAddress, error) {
	if !shape.Valid() {
		return 0, fmt.Errorf("%w: mesh shape %s has non-positive extent", core.ErrInvalidArgument, shape)
	}
	switch r := ref.(type) {
	case core.CoordRef:
		if r.Row < 0 || r.Row >= shape.X {
			return 0, fmt.Errorf("%w: row %d out of bounds for mesh shape %s", core.ErrOutOfBounds, r.Row, shape)
		}
		if r.Col < 0 || r.Col >= shape.Y {
			return 0, fmt.Errorf("%w: col %d out of bounds for mesh shape %s", core.ErrOutOfBounds, r.Col, shape)
		}
		return core.CoreAddress(r.Row*shape.X + r.Col), nil
	case core.LinearRef:
		if int(r) < 0 || int(r) >= shape.Cores() {
			return 0, fmt.Errorf("%w: core id %d out of bounds for mesh shape %s", core.ErrOutOfBounds, int(r), shape)
		}
		return core.CoreAddress(r), nil
	case nil:
		return 0, fmt.Errorf("%w: nil core reference", core.ErrInvalidArgument)
	default:
		return 0, fmt.Errorf("%w: core reference must be a linear id or a (row, col) coordinate, got %T", core.ErrInvalidArgument, ref)
	}
}

// ResolveGroup resolves an ordered participant group, preserving order and
// failing on the first invalid member. A nil or empty group resolves to nil,
// meaning the emitter's default participant set.
func ResolveGroup(refs []core.CoreRef, shape core.MeshShape) ([]core.CoreAddress, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	addrs := make([]core.CoreAddress, len(refs))
	for i, ref := range refs {
		addr, err := Resolve(ref, shape)
		if err != nil {
			return nil, fmt.Errorf("group member %d: %w", i, err)
		}
		addrs[i] = addr
	}
	return addrs, nil
}
