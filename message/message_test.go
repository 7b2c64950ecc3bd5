package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-usbpd/protocol"
)

func TestParseSourceCapabilities(t *testing.T) {
	// Captured frame including the trailing CRC-32
	raw := []byte{0x61, 0x11, 0x96, 0x90, 0x01, 0x36, 0x3E, 0x61, 0x73, 0x9C}

	msg, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, KindSourceCapabilities, msg.Kind())

	caps, ok := msg.(*SourceCapabilities)
	require.True(t, ok)

	h := caps.Header()
	assert.Equal(t, uint8(1), h.NumDataObjects)
	assert.Equal(t, uint8(0), h.MessageID)
	assert.Equal(t, protocol.SpecRevision20, h.SpecRevision)
	assert.Equal(t, protocol.PortDataRoleDFP, h.PortDataRole)
	assert.Equal(t, protocol.PortPowerRoleSource, h.PortPowerRole)

	pdos := caps.PDOs()
	require.Len(t, pdos, 1)
	fixed, ok := pdos[0].(protocol.FixedSupplyPDO)
	require.True(t, ok)
	assert.Equal(t, 5000, fixed.VoltageMillivolts())
	assert.Equal(t, 1500, fixed.MaxCurrentMilliamps())
	assert.True(t, fixed.DualRolePower)
	assert.True(t, fixed.USBCommunicationsCapable)

	encoded, err := msg.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw[:6], encoded)
	assert.Equal(t, "Source_Capabilities (id=0) [#1 Fixed 5000mV 1500mA]", msg.String())
}

func TestParseGoodCRC(t *testing.T) {
	raw := []byte{0x41, 0x0C}

	msg, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, KindGoodCRC, msg.Kind())

	ctrl, ok := msg.(*ControlMessage)
	require.True(t, ok)
	assert.Equal(t, protocol.ControlGoodCRC, ctrl.Type())
	assert.Equal(t, uint8(6), ctrl.Header().MessageID)
	assert.Equal(t, "GoodCRC (id=6)", ctrl.String())

	encoded, err := msg.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, encoded)
}

func TestParseVendorDefinedStructured(t *testing.T) {
	raw := []byte{0x8F, 0x10, 0x01, 0xA0, 0x00, 0xFF}

	msg, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, KindVendorDefined, msg.Kind())

	vdm, ok := msg.(*VendorDefined)
	require.True(t, ok)

	h := vdm.Header()
	assert.Equal(t, uint8(1), h.NumDataObjects)
	assert.Equal(t, uint8(0), h.MessageID)
	assert.Equal(t, protocol.PortPowerRoleSink, h.PortPowerRole)
	assert.Equal(t, protocol.SpecRevision30, h.SpecRevision)

	svdm, ok := vdm.VDMHeader().(protocol.StructuredVDMHeader)
	require.True(t, ok)
	assert.Equal(t, uint16(0xFF00), svdm.VendorID())
	assert.True(t, svdm.Structured())
	assert.Equal(t, protocol.StructuredVDMVersion20, svdm.Version)
	assert.Equal(t, uint8(0), svdm.ObjectPosition)
	assert.Equal(t, protocol.VDMCommandTypeREQ, svdm.CommandType)
	assert.Equal(t, protocol.VDMCommandDiscoverIdentity, svdm.Command)
	assert.Empty(t, vdm.VDOs())

	encoded, err := msg.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, encoded)
}

func TestParseVendorDefinedUnstructured(t *testing.T) {
	raw := []byte{0x6F, 0x2D, 0x01, 0x01, 0xAC, 0x05, 0x00, 0x00, 0x00, 0x00}

	msg, err := Parse(raw)
	require.NoError(t, err)

	vdm, ok := msg.(*VendorDefined)
	require.True(t, ok)

	h := vdm.Header()
	assert.Equal(t, uint8(2), h.NumDataObjects)
	assert.Equal(t, uint8(6), h.MessageID)
	assert.Equal(t, protocol.PortDataRoleDFP, h.PortDataRole)
	assert.Equal(t, protocol.PortPowerRoleSource, h.PortPowerRole)

	assert.Equal(t, protocol.UnstructuredVDMHeader{VID: 0x05AC, VendorUse: 0x0101}, vdm.VDMHeader())
	assert.Equal(t, []DataObject{{}}, vdm.VDOs())

	encoded, err := msg.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, encoded)
}

func TestParseDataMessageBoundary(t *testing.T) {
	exact := []byte{0x61, 0x11, 0x96, 0x90, 0x01, 0x36}

	msg, err := Parse(exact)
	require.NoError(t, err)
	assert.Equal(t, KindSourceCapabilities, msg.Kind())

	_, err = Parse(exact[:len(exact)-1])
	require.Error(t, err)
	assert.ErrorIs(t, err, protocol.ErrLength)

	var lerr *protocol.LengthError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 5, lerr.Got)
	assert.Equal(t, 6, lerr.Want)
	assert.True(t, lerr.AtLeast)

	// Seven objects, the largest count the header can declare
	seven := make([]byte, protocol.MaxMessageSize)
	seven[0], seven[1] = 0x44, 0x70 // Sink_Capabilities, seven objects
	msg, err = Parse(seven)
	require.NoError(t, err)
	assert.Len(t, msg.(*DataMessage).Objects(), 7)

	_, err = Parse(seven[:protocol.MaxMessageSize-1])
	assert.ErrorIs(t, err, protocol.ErrLength)
}

func TestParseIdempotent(t *testing.T) {
	inputs := [][]byte{
		{0x41, 0x0C},
		{0x61, 0x11, 0x96, 0x90, 0x01, 0x36},
		{0x8F, 0x10, 0x01, 0xA0, 0x00, 0xFF},
		{0x82, 0xB0, 0x07, 0x80, 1, 2, 3, 4, 5, 6, 7, 0, 0, 0},
	}

	for _, raw := range inputs {
		first, err := Parse(raw)
		require.NoError(t, err)
		second, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestParseEncodePreservesReservedBits(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		kind Kind
	}{
		{"request bit 20", []byte{0x42, 0x10, 0x2C, 0xB1, 0x14, 0x10}, KindRequest},
		{"fixed pdo bit 22", []byte{0x61, 0x11, 0x96, 0x90, 0x41, 0x36}, KindSourceCapabilities},
		{"structured vdm bit 5", []byte{0x8F, 0x10, 0x21, 0xA0, 0x00, 0xFF}, KindVendorDefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, m.Kind())

			out, err := m.Encode()
			require.NoError(t, err)
			assert.Equal(t, tt.raw, out)
		})
	}
}

func TestParseAugmentedPDO(t *testing.T) {
	raw := []byte{0x81, 0x10, 0x00, 0x00, 0x00, 0xC0}

	msg, err := Parse(raw)
	require.Error(t, err)
	assert.Nil(t, msg)
	assert.ErrorIs(t, err, protocol.ErrUnsupportedVariant)
	assert.Contains(t, err.Error(), "pdo #1")

	// The same frame still parses as raw data objects
	generic, err := ParseKind(KindData, raw)
	require.NoError(t, err)
	assert.Equal(t, KindData, generic.Kind())
}

func TestParseTypeCodeContext(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want Kind
	}{
		{name: "Accept", raw: []byte{0x03, 0x00}, want: KindAccept},
		{name: "BIST", raw: []byte{0x03, 0x10, 0x00, 0x00, 0x00, 0x50}, want: KindBIST},
		{name: "GotoMin", raw: []byte{0x02, 0x00}, want: KindGotoMin},
		{name: "Request", raw: []byte{0x02, 0x10, 0x96, 0x58, 0x02, 0x13}, want: KindRequest},
		{name: "Get_Revision", raw: []byte{0x98, 0x00}, want: KindGetRevision},
		{name: "Revision", raw: []byte{0x8C, 0x10, 0x00, 0x00, 0x17, 0x31}, want: KindRevision},
		{name: "Source_Capabilities_Extended", raw: []byte{0x81, 0x80, 0x00, 0x00}, want: KindExtended},
		{name: "Sink_Capabilities", raw: []byte{0x04, 0x10, 0x96, 0x90, 0x01, 0x36}, want: KindSinkCapabilities},
		{name: "reserved control", raw: []byte{0x1F, 0x00}, want: KindControl},
		{name: "zero control", raw: []byte{0x00, 0x00}, want: KindControl},
		{name: "reserved data", raw: []byte{0x0D, 0x10, 0x00, 0x00, 0x00, 0x00}, want: KindData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, h, err := Classify(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
			assert.Equal(t, KindOf(h), kind)

			msg, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, msg.Kind())

			encoded, err := msg.Encode()
			require.NoError(t, err)
			assert.Equal(t, tt.raw, encoded)
		})
	}
}

func TestParseTypedDataVariants(t *testing.T) {
	msg, err := Parse([]byte{0x02, 0x10, 0x96, 0x58, 0x02, 0x13})
	require.NoError(t, err)
	req := msg.(*Request)
	assert.Equal(t, uint8(1), req.RDO().ObjectPosition)
	assert.Equal(t, 1500, req.RDO().OperatingCurrentMilliamps())

	msg, err = Parse([]byte{0x8C, 0x10, 0x00, 0x00, 0x17, 0x31})
	require.NoError(t, err)
	rev := msg.(*Revision)
	assert.Equal(t, uint8(3), rev.RevisionDataObject().RevisionMajor)
	assert.Equal(t, uint8(1), rev.RevisionDataObject().RevisionMinor)

	msg, err = Parse([]byte{0x03, 0x20, 0x00, 0x00, 0x00, 0x80, 0xAA, 0xBB, 0xCC, 0xDD})
	require.NoError(t, err)
	bist := msg.(*BIST)
	assert.Equal(t, protocol.BISTModeTestData, bist.BISTDataObject().Mode)
	assert.Equal(t, []DataObject{{0xAA, 0xBB, 0xCC, 0xDD}}, bist.TestData())

	sink, err := Parse([]byte{0x04, 0x10, 0x96, 0x90, 0x01, 0x36})
	require.NoError(t, err)
	dm, ok := sink.(*DataMessage)
	require.True(t, ok)
	assert.Equal(t, protocol.DataSinkCapabilities, dm.Type())
	assert.Equal(t, uint32(0x36019096), dm.Objects()[0].Uint32())
}

func TestParseSingleObjectVariantsRejectExtraObjects(t *testing.T) {
	_, err := Parse([]byte{0x02, 0x20, 0x96, 0x58, 0x02, 0x13, 0x00, 0x00, 0x00, 0x00})
	assert.ErrorIs(t, err, protocol.ErrLength)

	_, err = Parse([]byte{0x8C, 0x20, 0x00, 0x00, 0x17, 0x31, 0x00, 0x00, 0x00, 0x00})
	assert.ErrorIs(t, err, protocol.ErrLength)
}

func TestUnrecognized(t *testing.T) {
	_, h, err := Classify([]byte{0x1F, 0x00})
	require.NoError(t, err)

	uerr := Unrecognized(h)
	require.Error(t, uerr)
	assert.ErrorIs(t, uerr, protocol.ErrUnrecognizedType)
	assert.Equal(t, "unrecognized control message type 0b11111", uerr.Error())

	_, h, err = Classify([]byte{0x0D, 0x10})
	require.NoError(t, err)
	assert.ErrorIs(t, Unrecognized(h), protocol.ErrUnrecognizedType)

	_, h, err = Classify([]byte{0x93, 0x80})
	require.NoError(t, err)
	assert.ErrorIs(t, Unrecognized(h), protocol.ErrUnrecognizedType)

	_, h, err = Classify([]byte{0x41, 0x0C})
	require.NoError(t, err)
	assert.NoError(t, Unrecognized(h))
}

func TestClassifyShortBuffer(t *testing.T) {
	for _, raw := range [][]byte{nil, {0x41}} {
		kind, _, err := Classify(raw)
		assert.Equal(t, KindUnknown, kind)
		assert.ErrorIs(t, err, protocol.ErrLength)

		_, err = Parse(raw)
		assert.ErrorIs(t, err, protocol.ErrLength)
	}
}

func TestParseKindMismatch(t *testing.T) {
	goodCRC := []byte{0x41, 0x0C}

	_, err := ParseKind(KindAccept, goodCRC)
	assert.ErrorIs(t, err, protocol.ErrUnsupportedVariant)

	_, err = ParseKind(KindSourceCapabilities, goodCRC)
	assert.ErrorIs(t, err, protocol.ErrUnsupportedVariant)

	_, err = ParseKind(KindExtended, goodCRC)
	assert.ErrorIs(t, err, protocol.ErrUnsupportedVariant)

	_, err = ParseKind(KindUnknown, goodCRC)
	assert.ErrorIs(t, err, protocol.ErrUnsupportedVariant)

	msg, err := ParseKind(KindControl, goodCRC)
	require.NoError(t, err)
	assert.Equal(t, KindControl, msg.Kind())
}

func TestParseWithSOP(t *testing.T) {
	// GoodCRC with header bit 8 set
	raw := []byte{0x41, 0x0D}

	frame, err := ParseWithSOP(protocol.SOPPrime, raw)
	require.NoError(t, err)
	assert.Equal(t, protocol.SOPPrime, frame.SOP)
	assert.True(t, frame.FromCablePlug())
	assert.Equal(t, "SOP' GoodCRC (id=6)", frame.String())

	frame, err = ParseWithSOP(protocol.SOPDefault, raw)
	require.NoError(t, err)
	assert.False(t, frame.FromCablePlug())

	_, err = ParseWithSOP(protocol.SOPDefault, raw[:1])
	assert.ErrorIs(t, err, protocol.ErrLength)

	assert.False(t, Frame{}.FromCablePlug())
}
