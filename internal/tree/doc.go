// Package tree implements the tree indexer: it walks the host's
// accessibility and element trees through a hostbridge.Port, produces
// a snapshot of indexed elements enriched with widget type and key,
// serves a short-lived resilience cache when the host's accessibility
// subsystem goes momentarily dark, and diffs consecutive snapshots.
package tree
