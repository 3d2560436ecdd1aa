// Package hostbridge defines the port through which the agent core
// talks to a host UI toolkit: accessibility and element tree
// traversal, action dispatch, text-channel injection, image capture,
// and the subscription hooks the core attaches once at startup.
//
// A host-specific adapter implements Port; the rest of the agent
// depends only on this interface, never on a concrete toolkit.
package hostbridge
