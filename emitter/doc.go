// Package emitter provides consumer-side helpers for constructed
// descriptors. The real intrinsic emitter lives in the lowering backend;
// Recorder is an in-memory stand-in that captures descriptors in emission
// order for tests, golden comparisons and prototyping.
package emitter
