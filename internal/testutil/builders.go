package testutil

import (
	"testing"

	"github.com/hupe1980/tilemesh/core"
	"github.com/hupe1980/tilemesh/region"
)

// Info builds a valid mesh tensor metadata record with the given block
// shape, a fixed program id and a simple row sharding policy.
func Info(block ...int) core.MeshTensorInfo {
	return core.MeshTensorInfo{
		BlockShape: block,
		ProgramID:  "prog0",
		Sharding:   map[string]any{"policy": "row"},
	}
}

// MustRegion normalizes a buffer to its full region, failing the test on
// error.
func MustRegion(t *testing.T, util core.RegionUtil, buf core.Buffer) core.BufferRegion {
	t.Helper()
	r, err := util.ToRegion(buf)
	if err != nil {
		t.Fatalf("to region: %v", err)
	}
	return r
}

// Buffer is a shorthand for region.NewBuffer.
func Buffer(id string, shape ...int) *region.Buffer {
	return region.NewBuffer(id, shape...)
}

// OperandKinds extracts the kind sequence of a descriptor for layout
// assertions.
func OperandKinds(d core.Descriptor) []core.OperandKind {
	kinds := make([]core.OperandKind, len(d.Operands))
	for i, op := range d.Operands {
		kinds[i] = op.Kind
	}
	return kinds
}
