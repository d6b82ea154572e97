// Package logging provides a minimal logging interface and adapters for
// TileMesh. The Logger interface defines the standard logging methods
// (Debug, Info, Warn, Error) used by the façade for observability of
// annotation and descriptor construction. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available. The
// addressing and descriptor packages themselves stay pure and never log.
package logging
