package trace

import (
	"time"

	"github.com/moffa90/go-usbpd/protocol"
)

// Capture is a parsed sequence of frames.
type Capture struct {
	// Records in capture order
	Records []*Record
}

// Record is one captured frame.
type Record struct {
	// Line is the 1-based source line of a text capture, or the 1-based
	// record index of a CBOR stream
	Line int

	// Timestamp is when the frame was captured. Text captures leave it zero.
	Timestamp time.Time

	// SOP is the Start of Packet the frame arrived on
	SOP protocol.SOP

	// Raw holds the message bytes, starting at the Message Header
	Raw []byte
}

// Len returns the number of records.
func (c *Capture) Len() int {
	return len(c.Records)
}
