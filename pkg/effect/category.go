package effect

// Category is the fixed class of peripheral a device represents.
// It is closed: backends reject categories they do not know.
type Category uint8

// Device categories.
const (
	CategoryKeyboard Category = iota
	CategoryMouse
	CategoryMousepad
	CategoryHeadset
	CategoryKeypad
	CategoryLink
	CategoryGeneric
)

var categoryNames = map[Category]string{
	CategoryKeyboard: "keyboard",
	CategoryMouse:    "mouse",
	CategoryMousepad: "mousepad",
	CategoryHeadset:  "headset",
	CategoryKeypad:   "keypad",
	CategoryLink:     "chromalink",
	CategoryGeneric:  "generic",
}

// String returns the lower-case category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether the category is one of the defined values.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}
