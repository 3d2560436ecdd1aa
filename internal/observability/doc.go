// Package observability holds the three bounded ring buffers (errors,
// including unhandled async errors; logs; frame timings) and the route observer
// state described in spec §4.E. Buffers are single-writer (the host's
// subscription callbacks, invoked on the UI thread) and multi-reader
// (RPC handlers); entries are immutable once recorded.
package observability
