package analyzer

import (
	"time"

	"github.com/moffa90/go-usbpd/message"
	"github.com/moffa90/go-usbpd/trace"
)

// Result describes one decoded frame. Passed to MessageHandler.
type Result struct {
	// Index is the 1-based position of the frame in the run
	Index int

	// Record is the frame as read from the source
	Record *trace.Record

	// Frame is the parsed message and its SOP
	Frame message.Frame

	// Unrecognized is set when the type code has no mapped variant and the
	// message was decoded generically. It wraps protocol.ErrUnrecognizedType.
	Unrecognized error

	// Fallback is set when the typed parse failed with an unsupported
	// variant and the message was decoded generically instead
	Fallback error

	// Payload is the complete extended message payload. It is set for
	// unchunked extended messages and for the chunk that completes a
	// reassembled payload.
	Payload []byte
}

// Kind returns the kind of the decoded message.
func (r Result) Kind() message.Kind {
	if r.Frame.Message == nil {
		return message.KindUnknown
	}
	return r.Frame.Message.Kind()
}

// MessageHandler is called for every decoded frame.
// Implementations should return quickly to avoid stalling the run.
//
// Example:
//
//	a := analyzer.New(analyzer.WithMessageHandler(func(r analyzer.Result) {
//	    fmt.Printf("#%d %s\n", r.Index, r.Frame)
//	}))
type MessageHandler func(Result)

// ErrorHandler is called for every frame that fails to decode.
type ErrorHandler func(*FrameError)

// Stats summarizes a run.
type Stats struct {
	// Frames is the number of frames read from the source
	Frames int

	// Decoded is the number of frames decoded into a message
	Decoded int

	// Errors is the number of frames that failed to decode
	Errors int

	// Unrecognized is the number of frames with unmapped type codes
	Unrecognized int

	// Fallbacks is the number of frames decoded generically after an
	// unsupported variant
	Fallbacks int

	// Reassembled is the number of extended payloads completed
	Reassembled int

	// ByKind counts decoded frames per message kind
	ByKind map[message.Kind]int

	// Elapsed is the wall time of the run
	Elapsed time.Duration
}

// Logger is an optional logging interface that can be provided to the analyzer.
// This allows integration with any logging framework; see NewSlogLogger.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	a := analyzer.New(analyzer.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
