// Package collective constructs emitter-ready descriptors for the mesh
// communication intrinsics: put, broadcast, all-gather, all-reduce, barrier,
// fence and core-id queries. The downstream intrinsic emitter matches on op
// tag plus operand arity rather than named parameters, so every builder
// method assembles one of a fixed set of positional operand layouts:
//
//	CoreId            core
//	comm_put          src region, dst region, dst core [, size]
//	comm_broadcast    region, src core [, group...]
//	comm_allgather    send region, recv region [, group...]
//	comm_reduce       op, src region, dst region
//	                  op, src region, dst region, group...
//	                  op, src region, dst region, axis
//	                  op, src region, dst region, axis, group...
//	comm_barrier      [group...]
//	comm_fence        (none)
//	comm_current_core (none)
//
// Buffers are normalized to regions through the region utility and core
// references are resolved against the mesh shape before they enter a
// descriptor. An omitted group means the emitter's default participant set.
package collective
