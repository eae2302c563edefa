package effect

// Grid dimensions per device category. Custom effects address every LED of
// the densest layout a category ships with; sparser hardware ignores the
// positions it does not have.
const (
	KeyboardRows    = 6
	KeyboardColumns = 22

	KeypadRows    = 4
	KeypadColumns = 5

	MouseRows    = 9
	MouseColumns = 7

	MousepadLEDCount = 15
	LinkLEDCount     = 5
)

// StaticParams is the payload for KindStatic.
type StaticParams struct {
	Color Color `json:"color"`
}

// KeyboardCustom is the payload for KindCustom on a keyboard: one color per
// key position, row-major.
type KeyboardCustom [KeyboardRows][KeyboardColumns]Color

// KeypadCustom is the payload for KindCustom on a keypad.
type KeypadCustom [KeypadRows][KeypadColumns]Color

// MouseCustom is the payload for KindCustom on a mouse.
type MouseCustom [MouseRows][MouseColumns]Color

// MousepadCustom is the payload for KindCustom on a mousepad.
type MousepadCustom [MousepadLEDCount]Color

// LinkCustom is the payload for KindCustom on a link device.
type LinkCustom [LinkLEDCount]Color
