package effect

import "fmt"

// Color is a packed color value in 0x00BBGGRR layout, the representation
// the backends consume directly.
type Color uint32

// Common colors.
const (
	Black Color = 0x000000
	Red   Color = 0x0000FF
	Green Color = 0x00FF00
	Blue  Color = 0xFF0000
	White Color = 0xFFFFFF
)

// NewColor packs red, green and blue components into a Color.
func NewColor(r, g, b uint8) Color {
	return Color(uint32(r) | uint32(g)<<8 | uint32(b)<<16)
}

// R returns the red component.
func (c Color) R() uint8 { return uint8(c) }

// G returns the green component.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c Color) B() uint8 { return uint8(c >> 16) }

// String returns the color as "#RRGGBB".
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R(), c.G(), c.B())
}
