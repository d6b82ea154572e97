package collective

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tilemesh/core"
	"github.com/hupe1980/tilemesh/region"
)

func newBuilder(t *testing.T, x, y int) *Builder {
	t.Helper()
	b, err := NewBuilder(core.MeshShape{X: x, Y: y}, region.NewUtil())
	require.NoError(t, err)
	return b
}

func operandKinds(d core.Descriptor) []core.OperandKind {
	kinds := make([]core.OperandKind, len(d.Operands))
	for i, op := range d.Operands {
		kinds[i] = op.Kind
	}
	return kinds
}

func TestNewBuilder_InvalidShape(t *testing.T) {
	_, err := NewBuilder(core.MeshShape{X: 0, Y: 4}, region.NewUtil())
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))

	_, err = NewBuilder(core.MeshShape{X: 2, Y: 2}, nil)
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))
}

func TestCoreID(t *testing.T) {
	b := newBuilder(t, 2, 4)
	d, err := b.CoreID(core.Coordinate(1, 3))
	require.NoError(t, err)
	assert.Equal(t, core.OpCoreID, d.Op)
	require.Equal(t, 1, d.Arity())
	assert.Equal(t, core.CoreAddress(5), d.Operands[0].Core)
	assert.NotEmpty(t, d.ID)
}

func TestPut(t *testing.T) {
	b := newBuilder(t, 2, 4)
	src := region.NewBuffer("A", 32)
	dst := region.NewBuffer("B", 32)

	d, err := b.Put(src, dst, core.Coordinate(1, 1))
	require.NoError(t, err)
	assert.Equal(t, core.OpPut, d.Op)
	assert.Equal(t, []core.OperandKind{core.OperandRegion, core.OperandRegion, core.OperandCore}, operandKinds(d))
	assert.Equal(t, core.BufferID("A"), d.Operands[0].Region.Buffer())
	assert.Equal(t, core.BufferID("B"), d.Operands[1].Region.Buffer())
	assert.Equal(t, core.CoreAddress(3), d.Operands[2].Core)
}

func TestPut_WithSize(t *testing.T) {
	b := newBuilder(t, 2, 4)
	d, err := b.Put(region.NewBuffer("A", 32), region.NewBuffer("B", 32), core.Linear(0), WithSize(1024))
	require.NoError(t, err)
	require.Equal(t, 4, d.Arity())
	assert.Equal(t, core.OperandScalar, d.Operands[3].Kind)
	assert.Equal(t, 1024, d.Operands[3].Scalar)
}

func TestPut_Errors(t *testing.T) {
	b := newBuilder(t, 2, 2)
	src := region.NewBuffer("A", 32)
	dst := region.NewBuffer("B", 32)

	_, err := b.Put(src, dst, core.Coordinate(2, 0))
	assert.True(t, errors.Is(err, core.ErrOutOfBounds))

	_, err = b.Put(src, dst, nil)
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))

	_, err = b.Put(nil, dst, core.Linear(0))
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))

	_, err = b.Put(src, dst, core.Linear(0), WithSize(0))
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))
}

func TestBroadcast_DefaultGroup(t *testing.T) {
	b := newBuilder(t, 2, 2)
	d, err := b.Broadcast(region.NewBuffer("A", 16), core.Coordinate(0, 0))
	require.NoError(t, err)
	assert.Equal(t, core.OpBroadcast, d.Op)
	assert.Equal(t, []core.OperandKind{core.OperandRegion, core.OperandCore}, operandKinds(d))
}

func TestBroadcast_ExplicitGroup(t *testing.T) {
	b := newBuilder(t, 2, 2)
	d, err := b.Broadcast(region.NewBuffer("A", 16), core.Coordinate(1, 0),
		core.Coordinate(1, 0), core.Coordinate(1, 1))
	require.NoError(t, err)
	require.Equal(t, 4, d.Arity())
	assert.Equal(t, core.CoreAddress(2), d.Operands[1].Core)
	assert.Equal(t, core.CoreAddress(2), d.Operands[2].Core)
	assert.Equal(t, core.CoreAddress(3), d.Operands[3].Core)
}

func TestAllGather(t *testing.T) {
	b := newBuilder(t, 2, 2)
	send := region.NewBuffer("S", 8)
	recv := region.NewBuffer("R", 32)

	d, err := b.AllGather(send, recv)
	require.NoError(t, err)
	assert.Equal(t, core.OpAllGather, d.Op)
	assert.Equal(t, 2, d.Arity())

	d, err = b.AllGather(send, recv, core.Linear(0), core.Linear(1), core.Linear(2))
	require.NoError(t, err)
	require.Equal(t, 5, d.Arity())
	for _, op := range d.Operands[2:] {
		assert.Equal(t, core.OperandCore, op.Kind)
	}
}

func TestAllReduce_FourLayouts(t *testing.T) {
	b := newBuilder(t, 2, 2)
	src := region.NewBuffer("S", 16)
	dst := region.NewBuffer("D", 16)
	group := []core.CoreRef{core.Coordinate(0, 0), core.Coordinate(0, 1)}

	// (op, src, dst)
	d, err := b.AllReduce(ReduceSum, src, dst)
	require.NoError(t, err)
	assert.Equal(t, core.OpReduce, d.Op)
	assert.Equal(t, []core.OperandKind{core.OperandString, core.OperandRegion, core.OperandRegion}, operandKinds(d))
	assert.Equal(t, "sum", d.Operands[0].Str)

	// (op, src, dst, axis)
	d, err = b.AllReduce(ReduceSum, src, dst, WithAxis(0))
	require.NoError(t, err)
	require.Equal(t, 4, d.Arity())
	assert.Equal(t, core.OperandScalar, d.Operands[3].Kind)
	assert.Equal(t, 0, d.Operands[3].Scalar)

	// (op, src, dst, group...)
	d, err = b.AllReduce(ReduceMax, src, dst, WithGroup(group...))
	require.NoError(t, err)
	require.Equal(t, 5, d.Arity())
	assert.Equal(t, core.OperandCore, d.Operands[3].Kind)
	assert.Equal(t, core.CoreAddress(0), d.Operands[3].Core)
	assert.Equal(t, core.CoreAddress(1), d.Operands[4].Core)

	// (op, src, dst, axis, group...) with the axis immediately before the group
	d, err = b.AllReduce(ReduceSum, src, dst, WithAxis(1), WithGroup(group...))
	require.NoError(t, err)
	require.Equal(t, 6, d.Arity())
	assert.Equal(t, core.OperandScalar, d.Operands[3].Kind)
	assert.Equal(t, 1, d.Operands[3].Scalar)
	assert.Equal(t, core.OperandCore, d.Operands[4].Kind)
	assert.Equal(t, core.OperandCore, d.Operands[5].Kind)
}

func TestAllReduce_Errors(t *testing.T) {
	b := newBuilder(t, 2, 2)
	src := region.NewBuffer("S", 16)
	dst := region.NewBuffer("D", 16)

	_, err := b.AllReduce("", src, dst)
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))

	_, err = b.AllReduce(ReduceSum, src, dst, WithGroup(core.Linear(99)))
	assert.True(t, errors.Is(err, core.ErrOutOfBounds))
}

func TestBarrier(t *testing.T) {
	b := newBuilder(t, 2, 2)

	d, err := b.Barrier()
	require.NoError(t, err)
	assert.Equal(t, core.OpBarrier, d.Op)
	assert.Equal(t, 0, d.Arity())

	d, err = b.Barrier(core.Coordinate(0, 0), core.Coordinate(0, 1))
	require.NoError(t, err)
	require.Equal(t, 2, d.Arity())
	assert.Equal(t, core.CoreAddress(0), d.Operands[0].Core)
	assert.Equal(t, core.CoreAddress(1), d.Operands[1].Core)
}

func TestBarrier_OutOfBoundsMember(t *testing.T) {
	b := newBuilder(t, 2, 2)
	_, err := b.Barrier(core.Coordinate(0, 0), core.Coordinate(3, 3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrOutOfBounds))
}

func TestFenceAndCurrentCore(t *testing.T) {
	b := newBuilder(t, 2, 2)

	d := b.Fence()
	assert.Equal(t, core.OpFence, d.Op)
	assert.Equal(t, 0, d.Arity())

	d = b.CurrentCore()
	assert.Equal(t, core.OpCurrentCore, d.Op)
	assert.Equal(t, 0, d.Arity())
}

func TestCopy(t *testing.T) {
	b := newBuilder(t, 2, 2)
	util := region.NewUtil()
	src, _ := util.ToRegion(region.NewBuffer("S", 32))
	dst, _ := util.ToRegion(region.NewBuffer("D", 32))

	d, err := b.Copy(src, dst)
	require.NoError(t, err)
	assert.Equal(t, core.OpCopy, d.Op)
	assert.Equal(t, 2, d.Arity())

	_, err = b.Copy(nil, dst)
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))
}

func TestDescriptorIDsUnique(t *testing.T) {
	b := newBuilder(t, 2, 2)
	d1 := b.Fence()
	d2 := b.Fence()
	assert.NotEqual(t, d1.ID, d2.ID)
}
