// Package core provides the foundational domain types, interfaces and error
// taxonomy used by TileMesh. It defines the core abstractions for:
//
//   - Mesh geometry (MeshShape, CoreAddress, CoreRef variants)
//   - Mesh tensor metadata (MeshTensorInfo, MeshTensorRegistry)
//   - Buffer regions (Buffer, BufferRegion, RegionUtil)
//   - Collective operation descriptors (Descriptor, Operand, op tags)
//   - The downstream Emitter contract
//
// The package intentionally keeps implementation concerns (registry storage,
// region arithmetic, descriptor assembly) out of scope, exposing small
// interfaces to enable custom backends and extensions. All exported
// identifiers include concise documentation to aid discoverability and
// external consumption.
package core
