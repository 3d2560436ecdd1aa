// Package hostfake is a reference implementation of hostbridge.Port
// backed by an in-memory widget tree. It exists so the agent core and
// its RPC surface can be exercised end to end without a real host
// toolkit attached, and so the reference harness (cmd/fap-harness) has
// something to drive.
package hostfake
