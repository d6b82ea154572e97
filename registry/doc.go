// Package registry provides the in-memory MeshTensorRegistry used during a
// single compilation context. Registration is all-or-nothing with
// clear-then-repopulate semantics: a successful RegisterAll fully supersedes
// the prior contents, and a failed one leaves them untouched. Entries are
// deep-copied on the way in and out so caller-held records and registered
// state cannot corrupt each other.
package registry
