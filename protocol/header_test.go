package protocol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want Header
	}{
		{
			name: "GoodCRC",
			raw:  []byte{0x41, 0x0C},
			want: Header{
				MessageType:  uint8(ControlGoodCRC),
				PortDataRole: PortDataRoleUFP,
				SpecRevision: SpecRevision20,
				MessageID:    6,
			},
		},
		{
			name: "Source_Capabilities",
			raw:  []byte{0x61, 0x11},
			want: Header{
				MessageType:    uint8(DataSourceCapabilities),
				PortDataRole:   PortDataRoleDFP,
				SpecRevision:   SpecRevision20,
				PortPowerRole:  PortPowerRoleSource,
				NumDataObjects: 1,
			},
		},
		{
			name: "Vendor_Defined",
			raw:  []byte{0x8F, 0x10},
			want: Header{
				MessageType:    uint8(DataVendorDefined),
				SpecRevision:   SpecRevision30,
				PortPowerRole:  PortPowerRoleSink,
				NumDataObjects: 1,
			},
		},
		{
			name: "reserved revision decodes",
			raw:  []byte{0xC3, 0x00},
			want: Header{
				MessageType:  uint8(ControlAccept),
				SpecRevision: SpecRevisionReserved,
			},
		},
		{
			name: "extended",
			raw:  []byte{0x81, 0x81},
			want: Header{
				MessageType:   uint8(ExtendedSourceCapabilitiesExtended),
				PortDataRole:  PortDataRoleUFP,
				SpecRevision:  SpecRevision30,
				PortPowerRole: PortPowerRoleSource,
				Extended:      true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHeader(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, h)

			encoded, err := h.Encode()
			require.NoError(t, err)
			assert.Equal(t, tt.raw, encoded)
		})
	}
}

func TestParseHeaderLength(t *testing.T) {
	for _, raw := range [][]byte{nil, {0x41}, {0x41, 0x0C, 0x00}} {
		_, err := ParseHeader(raw)
		require.Error(t, err)
		assert.True(t, IsLengthError(err))

		var lerr *LengthError
		require.True(t, errors.As(err, &lerr))
		assert.Equal(t, len(raw), lerr.Got)
		assert.Equal(t, HeaderSize, lerr.Want)
	}
}

func TestHeaderEncodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		header Header
		kind   error
	}{
		{name: "message type too wide", header: Header{MessageType: 32}, kind: ErrRange},
		{name: "message id too wide", header: Header{MessageID: 8}, kind: ErrRange},
		{name: "too many data objects", header: Header{NumDataObjects: 8}, kind: ErrRange},
		{name: "bad data role", header: Header{PortDataRole: 2}, kind: ErrInvalidEnum},
		{name: "bad revision", header: Header{SpecRevision: 4}, kind: ErrInvalidEnum},
		{name: "bad power role", header: Header{PortPowerRole: 2}, kind: ErrInvalidEnum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.header.Encode()
			require.Error(t, err)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, tt.kind)

			var ferr *FieldError
			require.ErrorAs(t, err, &ferr)
			assert.Equal(t, "message header", ferr.Structure)
		})
	}
}

func TestHeaderCablePlug(t *testing.T) {
	h, err := ParseHeader([]byte{0x41, 0x01})
	require.NoError(t, err)

	assert.Equal(t, PortPowerRoleSource, h.PortPowerRole)
	assert.Equal(t, CablePlugFromCable, h.CablePlug())
	assert.False(t, h.IsFromCablePlug(SOPDefault))
	assert.True(t, h.IsFromCablePlug(SOPPrime))
	assert.True(t, h.IsFromCablePlug(SOPDoublePrimeDebug))

	h.PortPowerRole = PortPowerRoleSink
	assert.False(t, h.IsFromCablePlug(SOPPrime))
}

func TestHeaderClassification(t *testing.T) {
	control := Header{MessageType: uint8(ControlAccept)}
	assert.True(t, control.IsControl())
	assert.False(t, control.IsData())
	assert.Equal(t, "Accept", control.TypeName())
	assert.Equal(t, HeaderSize, control.MessageLength())

	data := Header{MessageType: uint8(DataRequest), NumDataObjects: 1}
	assert.True(t, data.IsData())
	assert.Equal(t, "Request", data.TypeName())
	assert.Equal(t, 6, data.MessageLength())

	ext := Header{MessageType: uint8(ExtendedStatus), NumDataObjects: 2, Extended: true}
	assert.True(t, ext.IsExtended())
	assert.False(t, ext.IsData())
	assert.False(t, ext.IsControl())
	assert.Equal(t, "Status", ext.TypeName())

	// Same code, different context
	assert.Equal(t, "BIST", Header{MessageType: 3, NumDataObjects: 1}.TypeName())
	assert.Equal(t, "Accept", Header{MessageType: 3}.TypeName())
}

func TestExtendedHeader(t *testing.T) {
	raw := []byte{0x1E, 0x88}
	e, err := ParseExtendedHeader(raw)
	require.NoError(t, err)
	assert.Equal(t, ExtendedHeader{DataSize: 30, ChunkNumber: 1, Chunked: true}, e)

	encoded, err := e.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, encoded)

	// Reserved bit 9 is dropped
	e, err = ParseExtendedHeader([]byte{0x05, 0x02})
	require.NoError(t, err)
	assert.Equal(t, ExtendedHeader{DataSize: 5}, e)

	_, err = ParseExtendedHeader([]byte{0x05})
	assert.ErrorIs(t, err, ErrLength)

	_, err = ExtendedHeader{DataSize: 512}.Encode()
	assert.ErrorIs(t, err, ErrRange)

	_, err = ExtendedHeader{ChunkNumber: 16}.Encode()
	assert.ErrorIs(t, err, ErrRange)
}

func TestExtendedHeaderPayloadSize(t *testing.T) {
	tests := []struct {
		name   string
		header ExtendedHeader
		want   int
	}{
		{name: "unchunked", header: ExtendedHeader{DataSize: 5}, want: 5},
		{name: "first chunk", header: ExtendedHeader{DataSize: 30, Chunked: true}, want: 26},
		{name: "last chunk", header: ExtendedHeader{DataSize: 30, Chunked: true, ChunkNumber: 1}, want: 4},
		{name: "chunk past end", header: ExtendedHeader{DataSize: 30, Chunked: true, ChunkNumber: 3}, want: 0},
		{name: "exact chunk", header: ExtendedHeader{DataSize: 26, Chunked: true}, want: 26},
		{name: "chunk request", header: ExtendedHeader{DataSize: 30, Chunked: true, RequestChunk: true, ChunkNumber: 1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.header.PayloadSize())
		})
	}
}
