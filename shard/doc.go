// Package shard resolves mesh coordinates to buffer sub-regions. Given a
// registered block shape, the shard at coordinate c of a tensor starts at
// element offset c[i]*block_shape[i] along each axis and spans one block.
// The actual slicing arithmetic is delegated to the region utility.
package shard
