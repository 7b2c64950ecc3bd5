package message

import (
	"fmt"

	"github.com/moffa90/go-usbpd/protocol"
)

// ExtendedMessage is a message with the Extended bit set. It carries one
// chunk (or the whole, if unchunked) of the extended payload. Reassembling
// chunks is left to the caller; see package analyzer.
type ExtendedMessage struct {
	hdr     protocol.Header
	ext     protocol.ExtendedHeader
	payload []byte
}

// NewExtendedMessage builds an Extended Message. For chunked messages the
// header's Number of Data Objects is derived from the payload length.
func NewExtendedMessage(t protocol.ExtendedMessageType, h protocol.Header, ext protocol.ExtendedHeader, payload []byte) *ExtendedMessage {
	h.MessageType = uint8(t)
	h.Extended = true
	m := &ExtendedMessage{hdr: h, ext: ext, payload: append([]byte(nil), payload...)}
	if ext.Chunked {
		m.hdr.NumDataObjects = objectCount(m.paddedLength() / protocol.DataObjectSize)
	}
	return m
}

// ParseExtendedMessage parses an Extended Message. The payload length comes
// from the Extended Header: a chunk request carries none, an unchunked
// message carries Data Size bytes and a chunk carries at most 26 bytes.
// Padding after the payload is ignored.
func ParseExtendedMessage(raw []byte) (*ExtendedMessage, error) {
	h, err := parseHeaderPrefix("extended message", raw)
	if err != nil {
		return nil, err
	}
	if err := checkFamily(KindExtended, h, FamilyExtended); err != nil {
		return nil, err
	}

	const prefix = protocol.HeaderSize + protocol.ExtendedHeaderSize
	if len(raw) < prefix {
		return nil, &protocol.LengthError{Structure: "extended message", Got: len(raw), Want: prefix, AtLeast: true}
	}
	ext, err := protocol.ParseExtendedHeader(raw[protocol.HeaderSize:prefix])
	if err != nil {
		return nil, err
	}

	size := ext.PayloadSize()
	if len(raw) < prefix+size {
		return nil, &protocol.LengthError{Structure: "extended message", Got: len(raw), Want: prefix + size, AtLeast: true}
	}

	payload := make([]byte, size)
	copy(payload, raw[prefix:prefix+size])
	return &ExtendedMessage{hdr: h, ext: ext, payload: payload}, nil
}

// Kind returns KindExtended.
func (m *ExtendedMessage) Kind() Kind { return KindExtended }

// Header returns the Message Header.
func (m *ExtendedMessage) Header() protocol.Header { return m.hdr }

// Type returns the Extended Message type code.
func (m *ExtendedMessage) Type() protocol.ExtendedMessageType {
	return protocol.ExtendedMessageType(m.hdr.MessageType)
}

// ExtendedHeader returns the Extended Message Header.
func (m *ExtendedMessage) ExtendedHeader() protocol.ExtendedHeader { return m.ext }

// Payload returns a copy of the chunk payload.
func (m *ExtendedMessage) Payload() []byte {
	return append([]byte(nil), m.payload...)
}

// IsChunkRequest reports whether the message asks for a chunk rather than
// carrying one.
func (m *ExtendedMessage) IsChunkRequest() bool {
	return m.ext.Chunked && m.ext.RequestChunk
}

// paddedLength is the extended header plus payload rounded up to whole
// data objects.
func (m *ExtendedMessage) paddedLength() int {
	n := protocol.ExtendedHeaderSize + len(m.payload)
	if r := n % protocol.DataObjectSize; r != 0 {
		n += protocol.DataObjectSize - r
	}
	return n
}

// Encode packs the message. Chunked messages are zero-padded to a whole
// number of data objects and their Number of Data Objects is re-derived.
// Unchunked messages keep the header as parsed.
func (m *ExtendedMessage) Encode() ([]byte, error) {
	if want := m.ext.PayloadSize(); want != len(m.payload) {
		return nil, &protocol.LengthError{Structure: "extended message payload", Got: len(m.payload), Want: want}
	}

	h := m.hdr
	body := protocol.ExtendedHeaderSize + len(m.payload)
	if m.ext.Chunked {
		body = m.paddedLength()
		h.NumDataObjects = objectCount(body / protocol.DataObjectSize)
	}

	hb, err := h.Encode()
	if err != nil {
		return nil, err
	}
	eb, err := m.ext.Encode()
	if err != nil {
		return nil, err
	}

	out := make([]byte, protocol.HeaderSize+body)
	copy(out, hb)
	copy(out[protocol.HeaderSize:], eb)
	copy(out[protocol.HeaderSize+protocol.ExtendedHeaderSize:], m.payload)
	return out, nil
}

func (m *ExtendedMessage) String() string {
	return fmt.Sprintf("%s (id=%d) %s payload=% X", m.Type(), m.hdr.MessageID, m.ext, m.payload)
}
