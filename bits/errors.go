package bits

import (
	"errors"
	"fmt"
)

// ErrRange is matched by every *RangeError.
var ErrRange = errors.New("bit field out of range")

// RangeError reports a bit field that does not fit its buffer, or a value
// that does not fit its field.
type RangeError struct {
	// Offset is the index of the first bit of the field
	Offset int

	// Width is the field width in bits
	Width int

	// BufferBits is the number of bits available in the buffer
	BufferBits int

	// Value is set when the field fits the buffer but the value does not fit
	// the field
	Value uint64

	overflow bool
}

func (e *RangeError) Error() string {
	if e.overflow {
		return fmt.Sprintf("value 0x%X does not fit in %d bits", e.Value, e.Width)
	}
	return fmt.Sprintf("bit field [%d:%d] exceeds buffer of %d bits",
		e.Offset, e.Offset+e.Width, e.BufferBits)
}

// Is reports whether target is ErrRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrRange
}
