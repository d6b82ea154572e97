// Package region provides the reference implementation of the buffer-region
// utility: dense buffers identified by a stable id, full-buffer region
// normalization, and bounds-checked narrowing. Regions are immutable values;
// narrowing derives a new region anchored relative to its base. Production
// integrations may substitute their own core.RegionUtil backed by a real
// allocator, as long as rank and bounds validation is preserved.
package region
