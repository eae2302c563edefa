package effect

import "github.com/google/uuid"

// ID identifies a single effect instance created by a backend.
// IDs are opaque 128-bit values; the zero value means "no effect".
type ID uuid.UUID

// Nil is the "no effect" sentinel.
var Nil ID

// ParseID parses an ID from its canonical string form.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, err
	}
	return ID(u), nil
}

// IsZero reports whether the ID is the "no effect" sentinel.
func (id ID) IsZero() bool {
	return id == Nil
}

// String returns the canonical string form of the ID.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}
