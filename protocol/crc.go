package protocol

import (
	"encoding/binary"
	"hash/crc32"
)

// CRC constants.
const (
	// CRCSize is the size of the CRC that follows every packet on the wire
	CRCSize = 4

	// CRCResidual is the CRC-32 of a packet followed by its own CRC
	CRCResidual = 0x2144DF1C
)

// CRC computes the CRC-32 a port transmits after the header and data
// objects of a packet.
//
// CRC-32 parameters:
//   - Polynomial: 0x04C11DB7 (reflected 0xEDB88320)
//   - Initial value: 0xFFFFFFFF
//   - Final XOR: 0xFFFFFFFF
func CRC(packet []byte) uint32 {
	return crc32.ChecksumIEEE(packet)
}

// AppendCRC returns packet followed by its CRC, least significant byte first.
func AppendCRC(packet []byte) []byte {
	out := make([]byte, len(packet), len(packet)+CRCSize)
	copy(out, packet)
	return binary.LittleEndian.AppendUint32(out, CRC(packet))
}

// SplitCRC checks the CRC that ends a received frame and returns the packet
// before it.
func SplitCRC(frame []byte) ([]byte, error) {
	if err := checkAtLeast("frame with crc", frame, HeaderSize+CRCSize); err != nil {
		return nil, err
	}

	n := len(frame) - CRCSize
	packet := frame[:n]
	got := binary.LittleEndian.Uint32(frame[n:])
	if want := CRC(packet); got != want {
		return nil, &CRCError{Got: got, Want: want}
	}
	return packet, nil
}
