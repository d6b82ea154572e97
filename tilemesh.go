// Package tilemesh provides a high-level façade over the mesh addressing and
// collective-descriptor layer for tile-structured compute meshes. Most
// applications interact with this package by:
//  1. Creating a TileMesh via New() with a target mesh shape provider
//  2. Annotating mesh tensor metadata once per compilation context
//     (AnnotateMeshTensors)
//  3. Building and emitting collective descriptors (Put, Broadcast,
//     AllGather, AllReduce, Barrier, Fence, CurrentCore)
//
// The façade delegates resolution to the address and shard packages and
// descriptor assembly to collective.Builder while keeping setup and usage
// ergonomics concise. All defaults are safe for local development and
// testing; production toolchains supply their own emitter and region
// utility.
package tilemesh

import (
	"fmt"

	"github.com/hupe1980/tilemesh/address"
	"github.com/hupe1980/tilemesh/collective"
	"github.com/hupe1980/tilemesh/core"
	"github.com/hupe1980/tilemesh/emitter"
	"github.com/hupe1980/tilemesh/logging"
	"github.com/hupe1980/tilemesh/region"
	"github.com/hupe1980/tilemesh/registry"
	"github.com/hupe1980/tilemesh/shard"
	"github.com/hupe1980/tilemesh/target"
)

// Options configures the TileMesh instance.
type Options struct {
	// Target resolves the mesh shape for this compilation context. Required.
	Target target.Provider

	// Selector is the target selector passed to the provider. Defaults to
	// target.SelectorAuto ("current compilation target").
	Selector string

	// Regions is the buffer slicing utility (defaults to the in-memory
	// implementation if not provided).
	Regions core.RegionUtil

	// Emitter consumes constructed descriptors (defaults to an in-memory
	// recorder if not provided).
	Emitter core.Emitter

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// TileMesh is the high-level façade aggregating the mesh shape, the mesh
// tensor registry and the descriptor builder for one compilation context.
// Each context must own its own instance; the registry is not shared across
// concurrent compilations.
type TileMesh struct {
	opts     Options
	shape    core.MeshShape
	registry *registry.InMemory
	locator  *shard.Locator
	builder  *collective.Builder
	logger   logging.Logger
}

// New creates a TileMesh for the target selected by the options. The mesh
// shape is resolved once at construction and treated as read-only
// afterwards.
func New(optFns ...func(o *Options)) (*TileMesh, error) {
	opts := Options{
		Selector: target.SelectorAuto,
		Regions:  region.NewUtil(),
		Emitter:  emitter.NewRecorder(),
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Target == nil {
		return nil, fmt.Errorf("%w: target mesh shape provider is required", core.ErrInvalidArgument)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	shape, err := opts.Target.MeshShape(opts.Selector)
	if err != nil {
		return nil, fmt.Errorf("resolve mesh shape for selector %q: %w", opts.Selector, err)
	}

	builder, err := collective.NewBuilder(shape, opts.Regions)
	if err != nil {
		return nil, err
	}

	reg := registry.NewInMemory()
	return &TileMesh{
		opts:     opts,
		shape:    shape,
		registry: reg,
		locator:  shard.NewLocator(reg, opts.Regions),
		builder:  builder,
		logger:   opts.Logger,
	}, nil
}

// MeshShape returns the resolved mesh shape of this context.
func (m *TileMesh) MeshShape() core.MeshShape { return m.shape }

// Registry exposes the context's mesh tensor registry for read access by
// collaborating passes.
func (m *TileMesh) Registry() core.MeshTensorRegistry { return m.registry }

// ResolveCore resolves a symbolic core reference against the context's mesh
// shape.
func (m *TileMesh) ResolveCore(ref core.CoreRef) (core.CoreAddress, error) {
	return address.Resolve(ref, m.shape)
}

// Annotation is the result of a mesh tensor annotation: a correlation id and
// a deep copy of the registered metadata, suitable for attaching to function
// attributes in the lowering pipeline.
type Annotation struct {
	ID   string
	Info map[core.BufferID]core.MeshTensorInfo
}

// AnnotateMeshTensors registers mesh tensor metadata for this context,
// fully superseding any previous annotation. This is the sole mutation
// surface of the registry and must be called before any shard-relative
// communication in the same context. Registration is all-or-nothing; on
// failure the previous annotation stays in effect.
func (m *TileMesh) AnnotateMeshTensors(entries map[core.BufferID]core.MeshTensorInfo) (Annotation, error) {
	if err := m.registry.RegisterAll(entries); err != nil {
		return Annotation{}, err
	}
	ann := Annotation{ID: core.NewID(), Info: make(map[core.BufferID]core.MeshTensorInfo, len(entries))}
	for id := range entries {
		info, err := m.registry.Lookup(id)
		if err != nil {
			return Annotation{}, err
		}
		ann.Info[id] = info
	}
	m.logger.Debug("mesh tensors annotated", "annotation_id", ann.ID, "tensors", len(ann.Info))
	return ann, nil
}

// ShardRegion resolves the sub-region of buf owned by the shard at the given
// mesh coordinate, per the annotated block shape. A nil coordinate returns
// the full buffer region unchanged.
func (m *TileMesh) ShardRegion(buf core.Buffer, coord []int) (core.BufferRegion, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", core.ErrInvalidArgument)
	}
	base, err := m.opts.Regions.ToRegion(buf)
	if err != nil {
		return nil, err
	}
	return m.locator.Locate(base, buf.ID(), coord)
}

// CopyOption configures shard coordinates for CopyMeshTensor.
type CopyOption func(*copyOptions)

type copyOptions struct {
	srcCoord []int
	dstCoord []int
}

// WithSrcCoord narrows the copy source to the shard at the given mesh
// coordinate.
func WithSrcCoord(coord ...int) CopyOption {
	return func(o *copyOptions) { o.srcCoord = coord }
}

// WithDstCoord narrows the copy destination to the shard at the given mesh
// coordinate.
func WithDstCoord(coord ...int) CopyOption {
	return func(o *copyOptions) { o.dstCoord = coord }
}

// CopyMeshTensor builds and emits a copy descriptor between src and dst,
// optionally narrowing either side to a shard via the annotated block
// shapes. Both tensors must be annotated before a coordinate can be applied
// to them.
func (m *TileMesh) CopyMeshTensor(src, dst core.Buffer, opts ...CopyOption) (core.Descriptor, error) {
	var o copyOptions
	for _, fn := range opts {
		fn(&o)
	}
	srcRegion, err := m.ShardRegion(src, o.srcCoord)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("copy src: %w", err)
	}
	dstRegion, err := m.ShardRegion(dst, o.dstCoord)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("copy dst: %w", err)
	}
	d, err := m.builder.Copy(srcRegion, dstRegion)
	if err != nil {
		return core.Descriptor{}, err
	}
	return m.emit(d)
}

// CoreID builds and emits a CoreId descriptor for the resolved core.
func (m *TileMesh) CoreID(ref core.CoreRef) (core.Descriptor, error) {
	d, err := m.builder.CoreID(ref)
	if err != nil {
		return core.Descriptor{}, err
	}
	return m.emit(d)
}

// Put builds and emits a point-to-point copy descriptor to dstCore.
func (m *TileMesh) Put(src, dst core.Buffer, dstCore core.CoreRef, opts ...collective.PutOption) (core.Descriptor, error) {
	d, err := m.builder.Put(src, dst, dstCore, opts...)
	if err != nil {
		return core.Descriptor{}, err
	}
	return m.emit(d)
}

// Broadcast builds and emits a broadcast descriptor from srcCore.
func (m *TileMesh) Broadcast(buf core.Buffer, srcCore core.CoreRef, group ...core.CoreRef) (core.Descriptor, error) {
	d, err := m.builder.Broadcast(buf, srcCore, group...)
	if err != nil {
		return core.Descriptor{}, err
	}
	return m.emit(d)
}

// AllGather builds and emits an all-gather descriptor.
func (m *TileMesh) AllGather(send, recv core.Buffer, group ...core.CoreRef) (core.Descriptor, error) {
	d, err := m.builder.AllGather(send, recv, group...)
	if err != nil {
		return core.Descriptor{}, err
	}
	return m.emit(d)
}

// AllReduce builds and emits an all-reduce descriptor with the named
// operator.
func (m *TileMesh) AllReduce(op string, src, dst core.Buffer, opts ...collective.ReduceOption) (core.Descriptor, error) {
	d, err := m.builder.AllReduce(op, src, dst, opts...)
	if err != nil {
		return core.Descriptor{}, err
	}
	return m.emit(d)
}

// Barrier builds and emits a barrier descriptor.
func (m *TileMesh) Barrier(group ...core.CoreRef) (core.Descriptor, error) {
	d, err := m.builder.Barrier(group...)
	if err != nil {
		return core.Descriptor{}, err
	}
	return m.emit(d)
}

// Fence builds and emits the fence descriptor.
func (m *TileMesh) Fence() (core.Descriptor, error) {
	return m.emit(m.builder.Fence())
}

// CurrentCore builds and emits the current-core descriptor.
func (m *TileMesh) CurrentCore() (core.Descriptor, error) {
	return m.emit(m.builder.CurrentCore())
}

func (m *TileMesh) emit(d core.Descriptor) (core.Descriptor, error) {
	if err := m.opts.Emitter.Emit(d); err != nil {
		return core.Descriptor{}, fmt.Errorf("emit %s: %w", d.Op, err)
	}
	m.logger.Debug("descriptor emitted", "descriptor_id", d.ID, "op", string(d.Op), "arity", d.Arity())
	return d, nil
}
