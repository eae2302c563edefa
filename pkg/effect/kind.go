package effect

// Kind names an effect type in the form the wire protocol expects.
// Not every kind accepts a parameter payload, and not every kind is
// meaningful on every device category; the per-category device facades
// expose only the kinds their category supports.
type Kind string

// Effect kinds.
const (
	// KindNone removes the active effect.
	KindNone Kind = "CHROMA_NONE"

	// KindStatic applies a single color to every LED.
	KindStatic Kind = "CHROMA_STATIC"

	// KindCustom applies a caller-supplied per-LED color grid.
	KindCustom Kind = "CHROMA_CUSTOM"

	// KindCustomKey applies a per-LED grid with a separate key overlay.
	// Keyboard only.
	KindCustomKey Kind = "CHROMA_CUSTOM_KEY"
)

// HasParam reports whether the kind carries a parameter payload.
func (k Kind) HasParam() bool {
	return k != KindNone
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	return string(k)
}
