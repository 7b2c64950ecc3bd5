package analyzer

import (
	"fmt"

	"github.com/moffa90/go-usbpd/protocol"
)

// FrameError reports a frame that failed to decode.
type FrameError struct {
	// Index is the 1-based position of the frame in the run
	Index int

	// Line is the source line or record index of the frame, if known
	Line int

	SOP protocol.SOP
	Raw []byte
	Err error
}

func (e *FrameError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("frame %d (line %d, %s): %v", e.Index, e.Line, e.SOP, e.Err)
	}
	return fmt.Sprintf("frame %d (%s): %v", e.Index, e.SOP, e.Err)
}

// Unwrap returns the decode error.
func (e *FrameError) Unwrap() error { return e.Err }

// ChunkSequenceError reports a chunk of an extended message that does not
// continue the payload being reassembled.
type ChunkSequenceError struct {
	SOP  protocol.SOP
	Type protocol.ExtendedMessageType

	// Expected is the chunk number the reassembler was waiting for
	Expected uint8

	// Got is the chunk number received
	Got uint8

	// Reason describes the mismatch
	Reason string
}

func (e *ChunkSequenceError) Error() string {
	return fmt.Sprintf("%s %s: %s: expected chunk %d, got %d",
		e.SOP, e.Type, e.Reason, e.Expected, e.Got)
}
