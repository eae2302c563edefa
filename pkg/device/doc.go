// Package device provides the per-category facades applications drive
// effects through, and the directory that opens them.
//
// A Device wraps a Backend and tracks the effect currently active on it.
// Setting an effect creates a new one and replaces the tracked id; the
// predecessor is not deleted — the backend replaces the active effect on
// its side, and reclaiming orphaned effects is the backend's concern.
//
// Concurrent SetEffect calls on the same Device are last-writer-wins:
// whichever create call returns first is applied first. Callers that need
// strict ordering serialize their own calls.
//
// Generic (untyped) devices are only constructed for identifiers present in
// the device catalog; see Catalog.
package device
