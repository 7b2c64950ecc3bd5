package protocol

import "fmt"

// Header is the 16-bit Message Header present at the start of every message (6.2.1.1).
type Header struct {
	// MessageType is the raw 5-bit type code. Its meaning depends on
	// Extended and NumDataObjects; see ControlMessageType, DataMessageType
	// and ExtendedMessageType.
	MessageType uint8

	// PortDataRole holds header bit 5 (UFP or DFP)
	PortDataRole PortDataRole

	// SpecRevision is the Specification Revision in bits 6..7
	SpecRevision SpecRevision

	// PortPowerRole holds header bit 8. On SOP'/SOP'' frames the same bit is
	// the Cable Plug flag; use CablePlug to read it that way.
	PortPowerRole PortPowerRole

	// MessageID is the 3-bit rolling message counter
	MessageID uint8

	// NumDataObjects is the number of 32-bit data objects that follow the
	// header (or, for chunked extended messages, the chunk length in words)
	NumDataObjects uint8

	// Extended marks an Extended Message Header after this one
	Extended bool
}

// ParseHeader parses a 2-byte Message Header.
//
// Enumerated fields are never rejected while parsing: every 2-bit Specification
// Revision value, including Reserved, is carried through so the header
// re-encodes to the same bytes.
func ParseHeader(b []byte) (Header, error) {
	if err := checkExact("message header", b, HeaderSize); err != nil {
		return Header{}, err
	}

	r := newFieldReader("message header", b)
	h := Header{
		MessageType:    uint8(r.uint(hdrMessageType)),
		PortDataRole:   PortDataRole(r.uint(hdrPortDataRole)),
		SpecRevision:   SpecRevision(r.uint(hdrSpecRevision)),
		PortPowerRole:  PortPowerRole(r.uint(hdrPortPowerRole)),
		MessageID:      uint8(r.uint(hdrMessageID)),
		NumDataObjects: uint8(r.uint(hdrNumDataObjects)),
		Extended:       r.flag(hdrExtended),
	}
	if r.err != nil {
		return Header{}, r.err
	}
	return h, nil
}

// Encode packs the header into 2 bytes. Fields wider than their slot
// produce an error wrapping ErrRange.
func (h Header) Encode() ([]byte, error) {
	w := newFieldWriter("message header", HeaderSize)
	w.uint(hdrMessageType, uint64(h.MessageType))
	w.enum(hdrPortDataRole, uint64(h.PortDataRole), uint64(PortDataRoleDFP))
	w.enum(hdrSpecRevision, uint64(h.SpecRevision), uint64(SpecRevisionReserved))
	w.enum(hdrPortPowerRole, uint64(h.PortPowerRole), uint64(PortPowerRoleSource))
	w.uint(hdrMessageID, uint64(h.MessageID))
	w.uint(hdrNumDataObjects, uint64(h.NumDataObjects))
	w.flag(hdrExtended, h.Extended)
	return w.bytes()
}

// CablePlug reinterprets header bit 8 as the Cable Plug flag.
func (h Header) CablePlug() CablePlug {
	return CablePlug(h.PortPowerRole)
}

// IsFromCablePlug reports whether a frame received on sop was sent by a
// cable plug. It is always false for SOP frames.
func (h Header) IsFromCablePlug(sop SOP) bool {
	return sop.IsCable() && h.CablePlug() == CablePlugFromCable
}

// IsControl reports whether the header introduces a Control Message.
func (h Header) IsControl() bool {
	return !h.Extended && h.NumDataObjects == 0
}

// IsData reports whether the header introduces a Data Message.
func (h Header) IsData() bool {
	return !h.Extended && h.NumDataObjects > 0
}

// IsExtended reports whether the header introduces an Extended Message.
func (h Header) IsExtended() bool {
	return h.Extended
}

// MessageLength returns the number of bytes the header declares for the
// whole message, header included. For extended messages this is only the
// chunk length in words; the Extended Header decides the real payload size.
func (h Header) MessageLength() int {
	return HeaderSize + int(h.NumDataObjects)*DataObjectSize
}

// TypeName returns the message type name resolved against the header's
// context (control, data or extended).
func (h Header) TypeName() string {
	switch {
	case h.Extended:
		return ExtendedMessageType(h.MessageType).String()
	case h.NumDataObjects > 0:
		return DataMessageType(h.MessageType).String()
	default:
		return ControlMessageType(h.MessageType).String()
	}
}

func (h Header) String() string {
	return fmt.Sprintf("%s id=%d objs=%d %s %s %s ext=%t",
		h.TypeName(), h.MessageID, h.NumDataObjects, h.SpecRevision, h.PortDataRole, h.PortPowerRole, h.Extended)
}

// ExtendedHeader is the 16-bit Extended Message Header that follows the
// Message Header when its Extended bit is set (6.2.1.2).
type ExtendedHeader struct {
	// DataSize is the total payload size in bytes across all chunks
	DataSize uint16

	// RequestChunk marks a request for the chunk numbered ChunkNumber
	RequestChunk bool

	ChunkNumber uint8
	Chunked     bool
}

// ParseExtendedHeader parses a 2-byte Extended Message Header.
// Reserved bit 9 is ignored and encodes as zero.
func ParseExtendedHeader(b []byte) (ExtendedHeader, error) {
	if err := checkExact("extended header", b, ExtendedHeaderSize); err != nil {
		return ExtendedHeader{}, err
	}

	r := newFieldReader("extended header", b)
	e := ExtendedHeader{
		DataSize:     uint16(r.uint(extDataSize)),
		RequestChunk: r.flag(extRequestChunk),
		ChunkNumber:  uint8(r.uint(extChunkNumber)),
		Chunked:      r.flag(extChunked),
	}
	if r.err != nil {
		return ExtendedHeader{}, r.err
	}
	return e, nil
}

// Encode packs the extended header into 2 bytes.
func (e ExtendedHeader) Encode() ([]byte, error) {
	w := newFieldWriter("extended header", ExtendedHeaderSize)
	w.uint(extDataSize, uint64(e.DataSize))
	w.flag(extRequestChunk, e.RequestChunk)
	w.uint(extChunkNumber, uint64(e.ChunkNumber))
	w.flag(extChunked, e.Chunked)
	return w.bytes()
}

// PayloadSize returns the number of payload bytes that follow this header
// in the current message:
//   - a chunk request carries no payload
//   - an unchunked message carries DataSize bytes
//   - a chunk carries the remaining bytes, at most MaxExtendedChunkSize
func (e ExtendedHeader) PayloadSize() int {
	switch {
	case e.Chunked && e.RequestChunk:
		return 0
	case !e.Chunked:
		return int(e.DataSize)
	}
	remaining := int(e.DataSize) - int(e.ChunkNumber)*MaxExtendedChunkSize
	if remaining < 0 {
		return 0
	}
	if remaining > MaxExtendedChunkSize {
		return MaxExtendedChunkSize
	}
	return remaining
}

func (e ExtendedHeader) String() string {
	return fmt.Sprintf("size=%d chunked=%t chunk=%d request=%t", e.DataSize, e.Chunked, e.ChunkNumber, e.RequestChunk)
}
