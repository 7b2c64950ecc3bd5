package bits

// MaxWidth is the widest field Uint and PutUint can handle.
const MaxWidth = 64

// BitsPerByte is the number of bits per byte
const BitsPerByte = 8

func check(buf []byte, offset, width int) error {
	total := len(buf) * BitsPerByte
	if offset < 0 || width < 0 || width > MaxWidth || offset+width > total {
		return &RangeError{Offset: offset, Width: width, BufferBits: total}
	}
	return nil
}

// Uint returns the width-bit unsigned field that starts at bit offset.
//
// Example:
//
//	// Number of Data Objects, bits 12..14 of a message header
//	n, err := bits.Uint([]byte{0x61, 0x11}, 12, 3) // n == 1
func Uint(buf []byte, offset, width int) (uint64, error) {
	if err := check(buf, offset, width); err != nil {
		return 0, err
	}

	var v uint64
	for i := 0; i < width; {
		pos := offset + i
		shift := pos % BitsPerByte

		// Take as many bits as remain in the current byte
		n := BitsPerByte - shift
		if n > width-i {
			n = width - i
		}
		chunk := (uint64(buf[pos/BitsPerByte]) >> shift) & (1<<n - 1)
		v |= chunk << i
		i += n
	}
	return v, nil
}

// Bit reports whether bit index is set.
func Bit(buf []byte, index int) (bool, error) {
	if err := check(buf, index, 1); err != nil {
		return false, err
	}
	return buf[index/BitsPerByte]&(1<<(index%BitsPerByte)) != 0, nil
}

// PutUint writes v into the width-bit field that starts at bit offset,
// leaving every bit outside the field untouched.
func PutUint(buf []byte, offset, width int, v uint64) error {
	if err := check(buf, offset, width); err != nil {
		return err
	}
	if width < MaxWidth && v>>width != 0 {
		return &RangeError{Offset: offset, Width: width, BufferBits: len(buf) * BitsPerByte, Value: v, overflow: true}
	}

	for i := 0; i < width; {
		pos := offset + i
		shift := pos % BitsPerByte
		n := BitsPerByte - shift
		if n > width-i {
			n = width - i
		}
		mask := byte((1<<n - 1) << shift)
		chunk := byte((v>>i)&(1<<n-1)) << shift
		idx := pos / BitsPerByte
		buf[idx] = buf[idx]&^mask | chunk
		i += n
	}
	return nil
}

// PutBit sets or clears bit index.
func PutBit(buf []byte, index int, v bool) error {
	if err := check(buf, index, 1); err != nil {
		return err
	}
	mask := byte(1 << (index % BitsPerByte))
	if v {
		buf[index/BitsPerByte] |= mask
	} else {
		buf[index/BitsPerByte] &^= mask
	}
	return nil
}
