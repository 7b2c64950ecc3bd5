package analyzer

import (
	"github.com/moffa90/go-usbpd/message"
	"github.com/moffa90/go-usbpd/protocol"
)

type chunkKey struct {
	sop protocol.SOP
	typ protocol.ExtendedMessageType
}

type partialPayload struct {
	size int
	next uint8
	data []byte
}

// Reassembler joins the chunks of chunked extended messages into complete
// payloads. Chunks are tracked per SOP and extended message type.
// A Reassembler is not safe for concurrent use.
type Reassembler struct {
	pending map[chunkKey]*partialPayload
}

// NewReassembler creates an empty Reassembler.
func NewReassembler() *Reassembler {
	return &Reassembler{pending: make(map[chunkKey]*partialPayload)}
}

// Add feeds one extended message. It returns the complete payload and true
// when m finishes one: an unchunked message completes immediately, a chunked
// one completes when Data Size bytes have been collected. Chunk requests are
// ignored.
//
// Chunk 0 always starts a new payload, discarding any incomplete one for the
// same SOP and type. A chunk out of sequence, or one declaring a Data Size
// above MaxExtendedDataSize, returns a ChunkSequenceError and drops the
// pending payload.
func (r *Reassembler) Add(sop protocol.SOP, m *message.ExtendedMessage) ([]byte, bool, error) {
	ext := m.ExtendedHeader()
	if !ext.Chunked {
		return m.Payload(), true, nil
	}
	if ext.RequestChunk {
		return nil, false, nil
	}

	key := chunkKey{sop: sop, typ: m.Type()}
	p, ok := r.pending[key]

	if int(ext.DataSize) > protocol.MaxExtendedDataSize {
		delete(r.pending, key)
		return nil, false, &ChunkSequenceError{
			SOP:    sop,
			Type:   key.typ,
			Got:    ext.ChunkNumber,
			Reason: "data size exceeds maximum",
		}
	}

	if ext.ChunkNumber == 0 {
		p = &partialPayload{
			size: int(ext.DataSize),
			data: make([]byte, 0, ext.DataSize),
		}
		r.pending[key] = p
	} else {
		seqErr := &ChunkSequenceError{SOP: sop, Type: key.typ, Got: ext.ChunkNumber}
		switch {
		case !ok:
			seqErr.Reason = "no payload in progress"
		case ext.ChunkNumber != p.next:
			seqErr.Expected = p.next
			seqErr.Reason = "chunk out of order"
		case int(ext.DataSize) != p.size:
			seqErr.Expected = p.next
			seqErr.Reason = "data size changed"
		default:
			seqErr = nil
		}
		if seqErr != nil {
			delete(r.pending, key)
			return nil, false, seqErr
		}
	}

	p.data = append(p.data, m.Payload()...)
	p.next++
	if len(p.data) < p.size {
		return nil, false, nil
	}

	delete(r.pending, key)
	return p.data[:p.size], true, nil
}

// Pending returns the number of incomplete payloads.
func (r *Reassembler) Pending() int {
	return len(r.pending)
}

// Reset discards all incomplete payloads.
func (r *Reassembler) Reset() {
	r.pending = make(map[chunkKey]*partialPayload)
}
