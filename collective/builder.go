package collective

import (
	"fmt"

	"github.com/hupe1980/tilemesh/address"
	"github.com/hupe1980/tilemesh/core"
)

// Well-known reduction operator names. The vocabulary is open: the builder
// forwards any non-empty name, and the emitter decides what it supports.
const (
	ReduceSum  = "sum"
	ReduceMax  = "max"
	ReduceMin  = "min"
	ReduceProd = "prod"
)

// Builder assembles collective operation descriptors against one mesh shape.
// It is stateless apart from its configuration and safe for concurrent use.
type Builder struct {
	shape   core.MeshShape
	regions core.RegionUtil
}

// NewBuilder constructs a Builder for the given mesh shape and region
// utility.
func NewBuilder(shape core.MeshShape, regions core.RegionUtil) (*Builder, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("%w: mesh shape %s has non-positive extent", core.ErrInvalidArgument, shape)
	}
	if regions == nil {
		return nil, fmt.Errorf("%w: nil region utility", core.ErrInvalidArgument)
	}
	return &Builder{shape: shape, regions: regions}, nil
}

// Shape returns the mesh shape this builder resolves against.
func (b *Builder) Shape() core.MeshShape { return b.shape }

// CoreID builds a CoreId descriptor wrapping the resolved core address.
func (b *Builder) CoreID(ref core.CoreRef) (core.Descriptor, error) {
	addr, err := address.Resolve(ref, b.shape)
	if err != nil {
		return core.Descriptor{}, err
	}
	return core.NewDescriptor(core.OpCoreID, core.CoreOperand(addr)), nil
}

// PutOption configures an optional Put parameter.
type PutOption func(*putOptions)

type putOptions struct {
	size *int
}

// WithSize limits a put to the first n elements of the source region instead
// of the full region.
func WithSize(n int) PutOption {
	return func(o *putOptions) { o.size = &n }
}

// Put builds a comm_put descriptor copying src to dst on dstCore. Without
// WithSize the operands are (src region, dst region, dst core); with it a
// trailing size scalar is appended.
func (b *Builder) Put(src, dst core.Buffer, dstCore core.CoreRef, opts ...PutOption) (core.Descriptor, error) {
	var o putOptions
	for _, fn := range opts {
		fn(&o)
	}

	srcRegion, err := b.regions.ToRegion(src)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("put src: %w", err)
	}
	dstRegion, err := b.regions.ToRegion(dst)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("put dst: %w", err)
	}
	addr, err := address.Resolve(dstCore, b.shape)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("put dst core: %w", err)
	}

	operands := []core.Operand{
		core.RegionOperand(srcRegion),
		core.RegionOperand(dstRegion),
		core.CoreOperand(addr),
	}
	if o.size != nil {
		if *o.size <= 0 {
			return core.Descriptor{}, fmt.Errorf("%w: put size %d must be positive", core.ErrInvalidArgument, *o.size)
		}
		operands = append(operands, core.ScalarOperand(*o.size))
	}
	return core.NewDescriptor(core.OpPut, operands...), nil
}

// Broadcast builds a comm_broadcast descriptor distributing buf from
// srcCore. An empty group selects the emitter's default participant set;
// otherwise the resolved group follows the source core in order.
func (b *Builder) Broadcast(buf core.Buffer, srcCore core.CoreRef, group ...core.CoreRef) (core.Descriptor, error) {
	bufRegion, err := b.regions.ToRegion(buf)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("broadcast buffer: %w", err)
	}
	addr, err := address.Resolve(srcCore, b.shape)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("broadcast src core: %w", err)
	}
	operands := []core.Operand{core.RegionOperand(bufRegion), core.CoreOperand(addr)}
	operands, err = appendGroup(operands, group, b.shape)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("broadcast: %w", err)
	}
	return core.NewDescriptor(core.OpBroadcast, operands...), nil
}

// AllGather builds a comm_allgather descriptor collecting each participant's
// send buffer into recv. Group semantics match Broadcast.
func (b *Builder) AllGather(send, recv core.Buffer, group ...core.CoreRef) (core.Descriptor, error) {
	sendRegion, err := b.regions.ToRegion(send)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("all-gather send: %w", err)
	}
	recvRegion, err := b.regions.ToRegion(recv)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("all-gather recv: %w", err)
	}
	operands := []core.Operand{core.RegionOperand(sendRegion), core.RegionOperand(recvRegion)}
	operands, err = appendGroup(operands, group, b.shape)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("all-gather: %w", err)
	}
	return core.NewDescriptor(core.OpAllGather, operands...), nil
}

// ReduceOption configures an optional AllReduce parameter.
type ReduceOption func(*reduceOptions)

type reduceOptions struct {
	axis  *int
	group []core.CoreRef
}

// WithAxis restricts the reduction to one tensor axis.
func WithAxis(axis int) ReduceOption {
	return func(o *reduceOptions) { o.axis = &axis }
}

// WithGroup sets the participant set for the reduction.
func WithGroup(group ...core.CoreRef) ReduceOption {
	return func(o *reduceOptions) { o.group = group }
}

// AllReduce builds a comm_reduce descriptor combining src into dst with the
// named operator. The emitter expects a fixed arity per call shape, so the
// four layouts are assembled explicitly: (op, src, dst), (op, src, dst,
// group...), (op, src, dst, axis) and (op, src, dst, axis, group...). The
// axis always precedes the group.
func (b *Builder) AllReduce(op string, src, dst core.Buffer, opts ...ReduceOption) (core.Descriptor, error) {
	if op == "" {
		return core.Descriptor{}, fmt.Errorf("%w: empty reduction operator", core.ErrInvalidArgument)
	}
	var o reduceOptions
	for _, fn := range opts {
		fn(&o)
	}

	srcRegion, err := b.regions.ToRegion(src)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("all-reduce src: %w", err)
	}
	dstRegion, err := b.regions.ToRegion(dst)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("all-reduce dst: %w", err)
	}
	group, err := address.ResolveGroup(o.group, b.shape)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("all-reduce: %w", err)
	}

	head := []core.Operand{
		core.StringOperand(op),
		core.RegionOperand(srcRegion),
		core.RegionOperand(dstRegion),
	}

	var operands []core.Operand
	switch {
	case o.axis == nil && group == nil:
		operands = head
	case o.axis == nil && group != nil:
		operands = append(head, coreOperands(group)...)
	case o.axis != nil && group == nil:
		operands = append(head, core.ScalarOperand(*o.axis))
	default:
		operands = append(append(head, core.ScalarOperand(*o.axis)), coreOperands(group)...)
	}
	return core.NewDescriptor(core.OpReduce, operands...), nil
}

// Barrier builds a comm_barrier descriptor. With no group the descriptor has
// zero operands and the emitter synchronizes its default participant set;
// otherwise the operands are the resolved group in order.
func (b *Builder) Barrier(group ...core.CoreRef) (core.Descriptor, error) {
	operands, err := appendGroup(nil, group, b.shape)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("barrier: %w", err)
	}
	return core.NewDescriptor(core.OpBarrier, operands...), nil
}

// Fence builds the zero-operand comm_fence descriptor.
func (b *Builder) Fence() core.Descriptor {
	return core.NewDescriptor(core.OpFence)
}

// CurrentCore builds the zero-operand comm_current_core descriptor. The
// calling core's id is resolved by the emitter at lowering time.
func (b *Builder) CurrentCore() core.Descriptor {
	return core.NewDescriptor(core.OpCurrentCore)
}

// Copy builds a copy descriptor between two already-narrowed regions, used
// for shard-relative mesh tensor copies.
func (b *Builder) Copy(src, dst core.BufferRegion) (core.Descriptor, error) {
	if src == nil || dst == nil {
		return core.Descriptor{}, fmt.Errorf("%w: copy requires source and destination regions", core.ErrInvalidArgument)
	}
	return core.NewDescriptor(core.OpCopy, core.RegionOperand(src), core.RegionOperand(dst)), nil
}

func appendGroup(operands []core.Operand, group []core.CoreRef, shape core.MeshShape) ([]core.Operand, error) {
	addrs, err := address.ResolveGroup(group, shape)
	if err != nil {
		return nil, err
	}
	return append(operands, coreOperands(addrs)...), nil
}

func coreOperands(addrs []core.CoreAddress) []core.Operand {
	operands := make([]core.Operand, len(addrs))
	for i, addr := range addrs {
		operands[i] = core.CoreOperand(addr)
	}
	return operands
}
