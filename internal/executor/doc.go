// Package executor translates a resolved target — a rect and
// optionally a correlated accessibility node — into pointer sequences,
// text-channel operations, and accessibility-action fallbacks, per
// spec §4.D. Pointer dispatch never fails locally; pre-flight checks
// against is_interactable and target resolution are what produce
// ELEMENT_NOT_INTERACTABLE / ELEMENT_NOT_FOUND.
package executor
