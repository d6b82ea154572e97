package core

import (
	"fmt"

	"github.com/google/uuid"
)

// MeshShape describes the compute grid as extents along the X and Y axes.
// It is obtained from a target configuration lookup and treated as read-only
// for the duration of a compilation unit.
type MeshShape struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Cores returns the number of cores on the mesh (X*Y).
func (s MeshShape) Cores() int { return s.X * s.Y }

// Valid reports whether both extents are positive.
func (s MeshShape) Valid() bool { return s.X > 0 && s.Y > 0 }

// String renders the shape as "(XxY)" for error messages and logs.
func (s MeshShape) String() string { return fmt.Sprintf("(%dx%d)", s.X, s.Y) }

// CoreAddress is a validated linear core identifier on the active mesh,
// in the range [0, X*Y). Values only enter the system through address
// resolution; out-of-range ids are rejected there, never clamped.
type CoreAddress int

// CoreRef is a symbolic reference to a core, either by linear id or by 2D
// coordinate. It is a sealed variant: the only implementations are LinearRef
// and CoordRef, resolved by a single type switch in the address package.
type CoreRef interface {
	isCoreRef()
}

// LinearRef references a core by its linear id.
type LinearRef int

func (LinearRef) isCoreRef() {}

// CoordRef references a core by its (row, col) coordinate on the mesh,
// with row in [0, X) and col in [0, Y).
type CoordRef struct {
	Row, Col int
}

func (CoordRef) isCoreRef() {}

// Linear returns a CoreRef for a linear core id.
func Linear(id int) CoreRef { return LinearRef(id) }

// Coordinate returns a CoreRef for a (row, col) mesh coordinate.
func Coordinate(row, col int) CoreRef { return CoordRef{Row: row, Col: col} }

// BufferID is a stable, comparable handle to a buffer's underlying storage.
// Mesh tensor metadata is keyed by BufferID, not by any particular view or
// shape of the buffer.
type BufferID string

// NewID returns a new unique identifier (UUID v4 string). Used to correlate
// descriptors and annotation contexts in logs and recorded emissions.
func NewID() string { return uuid.NewString() }
