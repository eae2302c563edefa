// Package effect defines the value vocabulary shared by all backends:
// effect identifiers, device categories, effect kinds, colors, and the
// typed parameter payloads for the built-in effects.
//
// Effect identifiers are opaque 128-bit values minted by a backend when an
// effect is created. The library never constructs one itself; the zero
// value is the "no effect" sentinel.
//
// Parameter payloads are forwarded to the backend unchanged. The structs in
// this package cover the common cases (static color, per-LED custom grids);
// any JSON-marshalable value can be supplied instead.
package effect
