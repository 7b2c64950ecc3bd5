package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-usbpd/protocol"
)

func TestParseExtendedUnchunked(t *testing.T) {
	raw := []byte{0x81, 0x80, 0x03, 0x00, 0xAA, 0xBB, 0xCC}

	msg, err := Parse(raw)
	require.NoError(t, err)
	ext, ok := msg.(*ExtendedMessage)
	require.True(t, ok)

	assert.Equal(t, KindExtended, ext.Kind())
	assert.Equal(t, protocol.ExtendedSourceCapabilitiesExtended, ext.Type())
	assert.Equal(t, protocol.ExtendedHeader{DataSize: 3}, ext.ExtendedHeader())
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, ext.Payload())
	assert.False(t, ext.IsChunkRequest())

	encoded, err := ext.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, encoded)
}

func TestParseExtendedChunked(t *testing.T) {
	// Status, 7 bytes in chunk 0, padded to three data objects
	raw := []byte{0x82, 0xB0, 0x07, 0x80, 1, 2, 3, 4, 5, 6, 7, 0, 0, 0}

	msg, err := Parse(raw)
	require.NoError(t, err)
	ext := msg.(*ExtendedMessage)

	assert.Equal(t, protocol.ExtendedStatus, ext.Type())
	assert.Equal(t, uint8(3), ext.Header().NumDataObjects)
	assert.Equal(t, protocol.ExtendedHeader{DataSize: 7, Chunked: true}, ext.ExtendedHeader())
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7}, ext.Payload())

	encoded, err := ext.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, encoded)
}

func TestParseExtendedChunkRequest(t *testing.T) {
	raw := []byte{0x81, 0x90, 0x00, 0x8C, 0x00, 0x00}

	msg, err := Parse(raw)
	require.NoError(t, err)
	ext := msg.(*ExtendedMessage)

	assert.True(t, ext.IsChunkRequest())
	assert.Equal(t, uint8(1), ext.ExtendedHeader().ChunkNumber)
	assert.Empty(t, ext.Payload())

	encoded, err := ext.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, encoded)
}

func TestParseExtendedChunkSizes(t *testing.T) {
	payload := make([]byte, 30)
	for i := range payload {
		payload[i] = byte(i)
	}

	first := NewExtendedMessage(protocol.ExtendedManufacturerInfo, protocol.Header{SpecRevision: protocol.SpecRevision30},
		protocol.ExtendedHeader{DataSize: 30, Chunked: true}, payload[:26])
	raw, err := first.Encode()
	require.NoError(t, err)
	assert.Len(t, raw, 30)
	assert.Equal(t, uint8(7), first.Header().NumDataObjects)

	parsed, err := ParseExtendedMessage(raw)
	require.NoError(t, err)
	assert.Equal(t, payload[:26], parsed.Payload())

	second := NewExtendedMessage(protocol.ExtendedManufacturerInfo, protocol.Header{SpecRevision: protocol.SpecRevision30},
		protocol.ExtendedHeader{DataSize: 30, Chunked: true, ChunkNumber: 1}, payload[26:])
	raw, err = second.Encode()
	require.NoError(t, err)
	assert.Len(t, raw, 2+8)
	assert.Equal(t, uint8(2), second.Header().NumDataObjects)

	parsed, err = ParseExtendedMessage(raw)
	require.NoError(t, err)
	assert.Equal(t, payload[26:], parsed.Payload())
}

func TestParseExtendedShort(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{name: "no extended header", raw: []byte{0x81, 0x80}},
		{name: "half extended header", raw: []byte{0x81, 0x80, 0x03}},
		{name: "short payload", raw: []byte{0x81, 0x80, 0x03, 0x00, 0xAA}},
		{name: "short chunk", raw: []byte{0x82, 0xF0, 0x1E, 0x80, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			assert.ErrorIs(t, err, protocol.ErrLength)
		})
	}
}

func TestExtendedEncodePayloadMismatch(t *testing.T) {
	m := NewExtendedMessage(protocol.ExtendedStatus, protocol.Header{}, protocol.ExtendedHeader{DataSize: 7}, []byte{1, 2})
	_, err := m.Encode()
	assert.ErrorIs(t, err, protocol.ErrLength)

	_, err = ParseExtendedMessage([]byte{0x41, 0x0C})
	assert.ErrorIs(t, err, protocol.ErrUnsupportedVariant)
}
