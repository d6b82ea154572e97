package core

import "fmt"

// OpTag names an intrinsic understood by the downstream emitter. The
// vocabulary is fixed; the emitter matches on tag plus operand arity, so
// descriptor construction must produce exactly the layouts documented on
// the builder.
type OpTag string

const (
	// OpCoreID wraps a resolved linear core id as an intrinsic handle.
	OpCoreID OpTag = "CoreId"
	// OpPut is a point-to-point copy to a destination core.
	OpPut OpTag = "comm_put"
	// OpBroadcast distributes a region from a source core to a group.
	OpBroadcast OpTag = "comm_broadcast"
	// OpAllGather collects per-core contributions into a receive region.
	OpAllGather OpTag = "comm_allgather"
	// OpReduce combines values across cores with a named reduction.
	OpReduce OpTag = "comm_reduce"
	// OpBarrier synchronizes a group of cores.
	OpBarrier OpTag = "comm_barrier"
	// OpFence orders outstanding communication before subsequent accesses.
	OpFence OpTag = "comm_fence"
	// OpCurrentCore resolves to the calling core's id at lowering time.
	OpCurrentCore OpTag = "comm_current_core"
	// OpCopy is the compute-side element copy between two regions, used by
	// shard-relative mesh tensor copies. Not part of the comm_* family but
	// lowered by the same emitter.
	OpCopy OpTag = "copy"
)

// OperandKind discriminates the typed operand variants.
type OperandKind int

const (
	// OperandRegion carries a BufferRegion.
	OperandRegion OperandKind = iota
	// OperandCore carries a resolved CoreAddress.
	OperandCore
	// OperandScalar carries an integer scalar (size, axis).
	OperandScalar
	// OperandString carries a string tag (reduction operator name).
	OperandString
)

// String returns the kind name for diagnostics.
func (k OperandKind) String() string {
	switch k {
	case OperandRegion:
		return "region"
	case OperandCore:
		return "core"
	case OperandScalar:
		return "scalar"
	case OperandString:
		return "string"
	default:
		return "unknown"
	}
}

// Operand is one positional argument of a descriptor. Exactly the field
// selected by Kind is meaningful.
type Operand struct {
	Kind   OperandKind
	Region BufferRegion
	Core   CoreAddress
	Scalar int
	Str    string
}

// RegionOperand wraps a buffer region as an operand.
func RegionOperand(r BufferRegion) Operand { return Operand{Kind: OperandRegion, Region: r} }

// CoreOperand wraps a resolved core address as an operand.
func CoreOperand(c CoreAddress) Operand { return Operand{Kind: OperandCore, Core: c} }

// ScalarOperand wraps an integer scalar as an operand.
func ScalarOperand(n int) Operand { return Operand{Kind: OperandScalar, Scalar: n} }

// StringOperand wraps a string tag as an operand.
func StringOperand(s string) Operand { return Operand{Kind: OperandString, Str: s} }

// String renders the operand value for logs and error messages.
func (o Operand) String() string {
	switch o.Kind {
	case OperandRegion:
		if o.Region == nil {
			return "region(nil)"
		}
		return fmt.Sprintf("region(%s@%v+%v)", o.Region.Buffer(), o.Region.Offsets(), o.Region.Extents())
	case OperandCore:
		return fmt.Sprintf("core(%d)", o.Core)
	case OperandScalar:
		return fmt.Sprintf("%d", o.Scalar)
	case OperandString:
		return fmt.Sprintf("%q", o.Str)
	default:
		return "operand(?)"
	}
}

// Descriptor is the emitter-ready representation of one communication
// operation: an op tag plus an ordered, fixed-arity operand list. After
// construction it should be treated as immutable.
type Descriptor struct {
	ID       string
	Op       OpTag
	Operands []Operand
}

// NewDescriptor constructs a descriptor with a fresh correlation id.
func NewDescriptor(op OpTag, operands ...Operand) Descriptor {
	return Descriptor{ID: NewID(), Op: op, Operands: operands}
}

// Arity returns the number of operands.
func (d Descriptor) Arity() int { return len(d.Operands) }

// Emitter is the downstream consumer of constructed descriptors. It owns all
// lowering to native mesh-network instructions; this layer's sole contract
// with it is that operand order and arity match the documented layouts.
type Emitter interface {
	Emit(d Descriptor) error
}

// EmitterFunc adapts a plain function to the Emitter interface.
type EmitterFunc func(d Descriptor) error

// Emit calls f(d).
func (f EmitterFunc) Emit(d Descriptor) error { return f(d) }
