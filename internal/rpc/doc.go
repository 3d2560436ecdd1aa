// Package rpc implements the RPC server (spec §4.F, §6): a duplex
// framed-JSON server over a WebSocket loopback connection, dispatching
// method calls into the tree indexer, selector engine, action executor,
// and observability buffers, and broadcasting recording-event
// notifications. Every connection is one goroutine; handlers never
// hold the tree lock across a suspension point — they re-index
// immediately before selector evaluation and serialize synchronously
// before any wait.
package rpc
