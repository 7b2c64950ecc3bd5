package trace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/moffa90/go-usbpd/protocol"
)

// StreamExtension is the file extension of CBOR capture streams.
const StreamExtension = ".pdcap"

// streamEncMode is the CBOR encoder mode for capture entries.
var streamEncMode cbor.EncMode

// streamDecMode is the CBOR decoder mode for capture entries.
var streamDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	streamEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create capture CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	streamDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create capture CBOR decoder mode: %v", err))
	}
}

// Entry is one frame of a CBOR capture stream.
type Entry struct {
	// Timestamp when the frame was captured (nanosecond precision)
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the capture session (UUID)
	SessionID string `cbor:"2,keyasint,omitempty"`

	// SOP the frame arrived on
	SOP protocol.SOP `cbor:"3,keyasint"`

	// Raw message bytes
	Raw []byte `cbor:"4,keyasint"`
}

// Session parses the entry's session ID.
func (e Entry) Session() (uuid.UUID, error) {
	if e.SessionID == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(e.SessionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session id: %w", err)
	}
	return id, nil
}

// Record converts the entry to a Record.
func (e Entry) Record() *Record {
	return &Record{
		Timestamp: e.Timestamp,
		SOP:       e.SOP,
		Raw:       append([]byte(nil), e.Raw...),
	}
}

// EncodeEntry encodes a single entry to CBOR bytes.
func EncodeEntry(e Entry) ([]byte, error) {
	return streamEncMode.Marshal(e)
}

// DecodeEntry decodes a single entry from CBOR bytes.
func DecodeEntry(data []byte) (Entry, error) {
	var e Entry
	if err := streamDecMode.Unmarshal(data, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Encoder writes a CBOR capture stream. All entries written through it
// share one session ID.
type Encoder struct {
	enc     *cbor.Encoder
	session uuid.UUID
	now     func() time.Time
}

// NewEncoder creates an Encoder that writes to w under a new random session ID.
func NewEncoder(w io.Writer) *Encoder {
	return NewSessionEncoder(w, uuid.New())
}

// NewSessionEncoder creates an Encoder that writes to w under the given session ID.
func NewSessionEncoder(w io.Writer, session uuid.UUID) *Encoder {
	return &Encoder{enc: streamEncMode.NewEncoder(w), session: session, now: time.Now}
}

// SessionID returns the session ID stamped on every entry.
func (e *Encoder) SessionID() uuid.UUID {
	return e.session
}

// WriteRecord writes rec as one entry. A zero timestamp is replaced with
// the current time.
func (e *Encoder) WriteRecord(rec *Record) error {
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = e.now()
	}
	return e.Encode(Entry{
		Timestamp: ts,
		SessionID: e.session.String(),
		SOP:       rec.SOP,
		Raw:       rec.Raw,
	})
}

// Encode writes one entry as is.
func (e *Encoder) Encode(entry Entry) error {
	if err := e.enc.Encode(entry); err != nil {
		return fmt.Errorf("failed to encode capture entry: %w", err)
	}
	return nil
}

// Decoder reads a CBOR capture stream.
type Decoder struct {
	dec   *cbor.Decoder
	count int
}

// NewDecoder creates a Decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: streamDecMode.NewDecoder(r)}
}

// Next returns the next entry. It returns io.EOF when the stream ends
// cleanly.
func (d *Decoder) Next() (Entry, error) {
	var e Entry
	if err := d.dec.Decode(&e); err != nil {
		if errors.Is(err, io.EOF) {
			return Entry{}, io.EOF
		}
		return Entry{}, fmt.Errorf("entry %d: %w", d.count+1, err)
	}
	d.count++
	return e, nil
}

// Count returns the number of entries decoded so far.
func (d *Decoder) Count() int {
	return d.count
}

// ReadStream decodes a whole CBOR capture stream into a Capture. Record.Line
// holds the 1-based entry index.
func ReadStream(r io.Reader) (*Capture, error) {
	d := NewDecoder(r)
	capture := &Capture{Records: make([]*Record, 0, DefaultRecordCapacity)}
	for {
		e, err := d.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec := e.Record()
		rec.Line = d.Count()
		capture.Records = append(capture.Records, rec)
	}
	return capture, nil
}

// WriteStream encodes every record of c as a CBOR capture stream under a new
// session ID and returns that ID.
func WriteStream(w io.Writer, c *Capture) (uuid.UUID, error) {
	enc := NewEncoder(w)
	for _, rec := range c.Records {
		if err := enc.WriteRecord(rec); err != nil {
			return uuid.Nil, err
		}
	}
	return enc.SessionID(), nil
}

// Open reads a capture file, choosing the CBOR stream format for files
// ending in StreamExtension and the text format otherwise.
func Open(path string) (*Capture, error) {
	if !IsStream(path) {
		return Parse(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadStream(f)
}

// IsStream reports whether path names a CBOR capture stream.
func IsStream(path string) bool {
	return filepath.Ext(path) == StreamExtension
}
