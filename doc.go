// Package fap is the Flutter Agent Protocol core: an in-process
// automation agent that indexes a client-rendered UI's accessibility
// tree, resolves selectors against it, dispatches synthetic input, and
// exposes all of it over a duplex WebSocket RPC server.
//
// Agent wires every subsystem (tree indexer, action executor,
// observability buffers, RPC server) against a host-supplied
// hostbridge.Port. Construct one with New, start it with Start, and
// stop it with Stop.
package fap
