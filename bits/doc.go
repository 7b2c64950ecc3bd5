// Package bits reads and writes arbitrarily positioned bit fields inside a
// byte buffer.
//
// # Bit Numbering
//
// Bit numbering is little-endian across the whole buffer. Bit 0 is the
// least-significant bit of byte 0, bit 8 is the least-significant bit of
// byte 1, and so on:
//
//	bit index i  ->  byte i/8, bit i%8 within that byte
//
// A field that spans byte boundaries is read as if the entire buffer were a
// single little-endian integer and the field were a contiguous slice of that
// integer starting at the given offset. This is the layout used by every USB
// Power Delivery structure:
//
//	buf := []byte{0x41, 0x0C}           // a GoodCRC message header
//	msgType, _ := bits.Uint(buf, 0, 5)  // 0x01
//	msgID, _ := bits.Uint(buf, 9, 3)    // 0x06
//
// # Errors
//
// Every function validates that the requested field lies inside the buffer.
// Out-of-bounds requests and values that do not fit their field return a
// *RangeError, which matches ErrRange with errors.Is.
//
// All functions are pure and safe for concurrent use on distinct buffers.
package bits
