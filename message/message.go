package message

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/moffa90/go-usbpd/protocol"
)

// Message is a parsed USB PD message.
type Message interface {
	// Kind returns the variant tag
	Kind() Kind

	// Header returns the Message Header as parsed or constructed
	Header() protocol.Header

	// Encode packs the message into wire bytes
	Encode() ([]byte, error)

	String() string
}

// DataObject is one raw 32-bit data object in wire order.
type DataObject [protocol.DataObjectSize]byte

// Uint32 returns the object as a little-endian integer.
func (o DataObject) Uint32() uint32 {
	return binary.LittleEndian.Uint32(o[:])
}

func (o DataObject) String() string {
	return fmt.Sprintf("0x%08X", o.Uint32())
}

// DataObjectFromUint32 builds a data object from its integer value.
func DataObjectFromUint32(v uint32) DataObject {
	var o DataObject
	binary.LittleEndian.PutUint32(o[:], v)
	return o
}

// ControlMessage is a message with no data objects.
type ControlMessage struct {
	kind Kind
	hdr  protocol.Header
}

// NewControlMessage builds a Control Message of the given type.
func NewControlMessage(t protocol.ControlMessageType, h protocol.Header) *ControlMessage {
	h.MessageType = uint8(t)
	h.NumDataObjects = 0
	h.Extended = false
	return &ControlMessage{kind: KindOf(h), hdr: h}
}

// ParseControlMessage parses a Control Message. Bytes after the header are
// ignored.
func ParseControlMessage(raw []byte) (*ControlMessage, error) {
	return parseControl(KindControl, raw)
}

func parseControl(kind Kind, raw []byte) (*ControlMessage, error) {
	h, err := parseHeaderPrefix("control message", raw)
	if err != nil {
		return nil, err
	}
	if err := checkFamily(kind, h, FamilyControl); err != nil {
		return nil, err
	}
	return &ControlMessage{kind: kind, hdr: h}, nil
}

// Kind returns the control kind, or KindControl for a generic parse.
func (m *ControlMessage) Kind() Kind { return m.kind }

// Header returns the Message Header.
func (m *ControlMessage) Header() protocol.Header { return m.hdr }

// Type returns the Control Message type code.
func (m *ControlMessage) Type() protocol.ControlMessageType {
	return protocol.ControlMessageType(m.hdr.MessageType)
}

// Encode packs the header.
func (m *ControlMessage) Encode() ([]byte, error) {
	return m.hdr.Encode()
}

func (m *ControlMessage) String() string {
	return fmt.Sprintf("%s (id=%d)", m.Type(), m.hdr.MessageID)
}

// DataMessage is a message carrying raw data objects. It is the generic form
// of every data kind without a typed variant.
type DataMessage struct {
	kind    Kind
	hdr     protocol.Header
	objects []DataObject
}

// NewDataMessage builds a Data Message of the given type.
func NewDataMessage(t protocol.DataMessageType, h protocol.Header, objects []DataObject) *DataMessage {
	h = dataHeader(h, uint8(t), len(objects))
	return &DataMessage{kind: KindOf(h), hdr: h, objects: append([]DataObject(nil), objects...)}
}

// ParseDataMessage parses any Data Message into raw data objects.
func ParseDataMessage(raw []byte) (*DataMessage, error) {
	return parseData(KindData, raw)
}

func parseData(kind Kind, raw []byte) (*DataMessage, error) {
	h, objects, err := splitData(kind, raw)
	if err != nil {
		return nil, err
	}
	return &DataMessage{kind: kind, hdr: h, objects: objects}, nil
}

// Kind returns the data kind, or KindData for a generic parse.
func (m *DataMessage) Kind() Kind { return m.kind }

// Header returns the Message Header.
func (m *DataMessage) Header() protocol.Header { return m.hdr }

// Type returns the Data Message type code.
func (m *DataMessage) Type() protocol.DataMessageType {
	return protocol.DataMessageType(m.hdr.MessageType)
}

// Objects returns a copy of the data objects.
func (m *DataMessage) Objects() []DataObject {
	return append([]DataObject(nil), m.objects...)
}

// Encode packs the header and objects. The Number of Data Objects is taken
// from the object list.
func (m *DataMessage) Encode() ([]byte, error) {
	return encodeData(m.hdr, m.objects)
}

func (m *DataMessage) String() string {
	return fmt.Sprintf("%s (id=%d) %v", m.Type(), m.hdr.MessageID, m.objects)
}

// parseHeaderPrefix parses the first two bytes of a message.
func parseHeaderPrefix(structure string, raw []byte) (protocol.Header, error) {
	if len(raw) < protocol.HeaderSize {
		return protocol.Header{}, &protocol.LengthError{
			Structure: structure,
			Got:       len(raw),
			Want:      protocol.HeaderSize,
			AtLeast:   true,
		}
	}
	return protocol.ParseHeader(raw[:protocol.HeaderSize])
}

// splitData parses the header and slices Number of Data Objects 4-byte
// objects after it. Trailing bytes are ignored.
func splitData(kind Kind, raw []byte) (protocol.Header, []DataObject, error) {
	h, err := parseHeaderPrefix("data message", raw)
	if err != nil {
		return protocol.Header{}, nil, err
	}
	if err := checkFamily(kind, h, FamilyData); err != nil {
		return protocol.Header{}, nil, err
	}

	want := h.MessageLength()
	if len(raw) < want {
		return protocol.Header{}, nil, &protocol.LengthError{
			Structure: "data message",
			Got:       len(raw),
			Want:      want,
			AtLeast:   true,
		}
	}

	objects := make([]DataObject, h.NumDataObjects)
	for i := range objects {
		off := protocol.HeaderSize + i*protocol.DataObjectSize
		copy(objects[i][:], raw[off:off+protocol.DataObjectSize])
	}
	return h, objects, nil
}

func encodeData(h protocol.Header, objects []DataObject) ([]byte, error) {
	if len(objects) == 0 {
		return nil, &protocol.LengthError{
			Structure: "data message",
			Got:       protocol.HeaderSize,
			Want:      protocol.HeaderSize + protocol.DataObjectSize,
			AtLeast:   true,
		}
	}

	h.NumDataObjects = objectCount(len(objects))
	hb, err := h.Encode()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, protocol.HeaderSize+len(objects)*protocol.DataObjectSize)
	out = append(out, hb...)
	for _, o := range objects {
		out = append(out, o[:]...)
	}
	return out, nil
}

// dataHeader fixes the fields a data variant controls.
func dataHeader(h protocol.Header, code uint8, n int) protocol.Header {
	h.MessageType = code
	h.NumDataObjects = objectCount(n)
	h.Extended = false
	return h
}

// objectCount saturates n so the header encoder reports the overflow.
func objectCount(n int) uint8 {
	if n > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(n)
}

// checkFamily rejects a header that cannot carry kind.
func checkFamily(kind Kind, h protocol.Header, family Family) error {
	got := KindOf(h)
	if got.Family() != family {
		return &protocol.UnsupportedVariantError{
			Structure:    kind.String() + " message",
			Discriminant: uint32(h.MessageType),
			Name:         fmt.Sprintf("%s message %s", got.Family(), h.TypeName()),
		}
	}
	if !kind.Generic() && kind != got {
		return &protocol.UnsupportedVariantError{
			Structure:    kind.String() + " message",
			Discriminant: uint32(h.MessageType),
			Name:         h.TypeName(),
		}
	}
	return nil
}

func encodeObject(o interface{ Encode() ([]byte, error) }) (DataObject, error) {
	var d DataObject
	b, err := o.Encode()
	if err != nil {
		return d, err
	}
	copy(d[:], b)
	return d, nil
}
