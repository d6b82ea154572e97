// Package address resolves symbolic core references (linear id or 2D
// coordinate) into validated linear core addresses against a mesh shape.
// Resolution is a pure function: no state, no I/O, and no clamping — any
// out-of-range reference is an error that names the offending value.
package address
