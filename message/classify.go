package message

import (
	"fmt"

	"github.com/moffa90/go-usbpd/protocol"
)

// Classify reads only the Message Header of raw and returns the kind the
// full parse will produce.
func Classify(raw []byte) (Kind, protocol.Header, error) {
	h, err := parseHeaderPrefix("message", raw)
	if err != nil {
		return KindUnknown, protocol.Header{}, err
	}
	return KindOf(h), h, nil
}

// parsers is the dispatch table from typed kinds to their parsers. Kinds
// absent from the table parse as ControlMessage or DataMessage according
// to their family.
var parsers = map[Kind]func([]byte) (Message, error){
	KindSourceCapabilities: asMessage(ParseSourceCapabilities),
	KindRequest:            asMessage(ParseRequest),
	KindBIST:               asMessage(ParseBIST),
	KindRevision:           asMessage(ParseRevision),
	KindVendorDefined:      asMessage(ParseVendorDefined),
	KindExtended:           asMessage(ParseExtendedMessage),
}

// asMessage adapts a concrete parser so a failed parse yields a nil Message.
func asMessage[M Message](parse func([]byte) (M, error)) func([]byte) (Message, error) {
	return func(raw []byte) (Message, error) {
		m, err := parse(raw)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

// ParseKind fully parses raw as kind. The header must be one kind can carry;
// a generic kind accepts any header of its family.
func ParseKind(kind Kind, raw []byte) (Message, error) {
	if parse, ok := parsers[kind]; ok {
		return parse(raw)
	}

	switch kind.Family() {
	case FamilyControl:
		return asMessage(func(raw []byte) (*ControlMessage, error) { return parseControl(kind, raw) })(raw)
	case FamilyData:
		return asMessage(func(raw []byte) (*DataMessage, error) { return parseData(kind, raw) })(raw)
	default:
		return nil, &protocol.UnsupportedVariantError{
			Structure:    "message",
			Discriminant: uint32(kind),
			Name:         kind.String(),
		}
	}
}

// Parse classifies raw and parses it with the selected variant.
func Parse(raw []byte) (Message, error) {
	kind, _, err := Classify(raw)
	if err != nil {
		return nil, err
	}
	return ParseKind(kind, raw)
}

// Frame is a parsed message together with the Start of Packet it arrived on.
type Frame struct {
	SOP     protocol.SOP
	Message Message
}

// ParseWithSOP parses raw and attaches the SOP reported by the framing layer.
func ParseWithSOP(sop protocol.SOP, raw []byte) (Frame, error) {
	m, err := Parse(raw)
	if err != nil {
		return Frame{}, err
	}
	return Frame{SOP: sop, Message: m}, nil
}

// FromCablePlug reports whether the frame was sent by a cable plug.
func (f Frame) FromCablePlug() bool {
	if f.Message == nil {
		return false
	}
	return f.Message.Header().IsFromCablePlug(f.SOP)
}

func (f Frame) String() string {
	return fmt.Sprintf("%s %s", f.SOP, f.Message)
}
