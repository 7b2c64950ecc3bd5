package protocol

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-usbpd/bits"
)

// Error kinds. Every typed error below matches exactly one of these with errors.Is.
var (
	// ErrLength indicates a buffer shorter or longer than the structure requires
	ErrLength = errors.New("invalid length")

	// ErrUnsupportedVariant indicates a recognized discriminant with no decoder
	ErrUnsupportedVariant = errors.New("unsupported variant")

	// ErrUnrecognizedType indicates a type code with no mapped variant
	ErrUnrecognizedType = errors.New("unrecognized type")

	// ErrInvalidEnum indicates a field value outside its enumeration
	ErrInvalidEnum = errors.New("invalid enumeration value")

	// ErrRange indicates a bit field outside its buffer or a value wider than its field
	ErrRange = bits.ErrRange

	// ErrCRC indicates a frame whose trailing CRC does not match its contents
	ErrCRC = errors.New("crc mismatch")
)

// LengthError reports a buffer whose size does not match the structure being parsed.
type LengthError struct {
	// Structure names what was being parsed
	Structure string

	// Got is the number of bytes supplied
	Got int

	// Want is the number of bytes required
	Want int

	// AtLeast is true when Want is a minimum rather than an exact size
	AtLeast bool
}

func (e *LengthError) Error() string {
	if e.AtLeast {
		return fmt.Sprintf("%s: got %d bytes, minimum is %d", e.Structure, e.Got, e.Want)
	}
	return fmt.Sprintf("%s: got %d bytes, expected %d", e.Structure, e.Got, e.Want)
}

// Is reports whether target is ErrLength.
func (e *LengthError) Is(target error) bool { return target == ErrLength }

// UnsupportedVariantError reports a tagged union whose discriminant is
// recognized but has no decoder.
type UnsupportedVariantError struct {
	Structure    string
	Discriminant uint32
	Name         string
}

func (e *UnsupportedVariantError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (0b%b) is not supported", e.Structure, e.Name, e.Discriminant)
	}
	return fmt.Sprintf("%s: variant 0b%b is not supported", e.Structure, e.Discriminant)
}

// Is reports whether target is ErrUnsupportedVariant.
func (e *UnsupportedVariantError) Is(target error) bool { return target == ErrUnsupportedVariant }

// UnrecognizedTypeError reports a message type code with no mapped variant.
// The classifier never returns it; it falls back to a generic message instead.
type UnrecognizedTypeError struct {
	// Code is the raw 5-bit message type
	Code uint8

	// Context is "control", "data" or "extended"
	Context string
}

func (e *UnrecognizedTypeError) Error() string {
	return fmt.Sprintf("unrecognized %s message type 0b%05b", e.Context, e.Code)
}

// Is reports whether target is ErrUnrecognizedType.
func (e *UnrecognizedTypeError) Is(target error) bool { return target == ErrUnrecognizedType }

// InvalidEnumError reports a field whose value has no enumeration member.
type InvalidEnumError struct {
	Field string
	Value uint32
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s: 0x%X", e.Field, e.Value)
}

// Is reports whether target is ErrInvalidEnum.
func (e *InvalidEnumError) Is(target error) bool { return target == ErrInvalidEnum }

// CRCError reports a received frame whose CRC does not match.
type CRCError struct {
	Got  uint32
	Want uint32
}

func (e *CRCError) Error() string {
	return fmt.Sprintf("crc mismatch: frame carries 0x%08X, computed 0x%08X", e.Got, e.Want)
}

// Is reports whether target is ErrCRC.
func (e *CRCError) Is(target error) bool { return target == ErrCRC }

// FieldError wraps a failure with the structure and field that produced it.
type FieldError struct {
	Structure string
	Field     string
	Err       error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Structure, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error { return e.Err }

// IsLengthError returns true if err is or wraps a LengthError.
func IsLengthError(err error) bool {
	return errors.Is(err, ErrLength)
}

// IsUnsupportedVariant returns true if err is or wraps an UnsupportedVariantError.
func IsUnsupportedVariant(err error) bool {
	return errors.Is(err, ErrUnsupportedVariant)
}

func checkExact(structure string, b []byte, want int) error {
	if len(b) != want {
		return &LengthError{Structure: structure, Got: len(b), Want: want}
	}
	return nil
}

func checkAtLeast(structure string, b []byte, want int) error {
	if len(b) < want {
		return &LengthError{Structure: structure, Got: len(b), Want: want, AtLeast: true}
	}
	return nil
}
