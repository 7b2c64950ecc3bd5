package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/moffa90/go-usbpd/message"
	"github.com/moffa90/go-usbpd/protocol"
	"github.com/moffa90/go-usbpd/trace"
)

// Analyzer decodes captured USB PD frames into messages.
type Analyzer struct {
	config Config
}

// New creates a new Analyzer with the given options.
//
// Example:
//
//	a := analyzer.New(
//	    analyzer.WithLogger(logger),
//	    analyzer.WithMessageHandler(func(r analyzer.Result) {
//	        fmt.Println(r.Frame)
//	    }),
//	)
func New(opts ...Option) *Analyzer {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.SessionID == uuid.Nil {
		config.SessionID = uuid.New()
	}

	return &Analyzer{config: config}
}

// SessionID returns the session ID attached to this analyzer's logs.
func (a *Analyzer) SessionID() uuid.UUID {
	return a.config.SessionID
}

// Decode parses a single frame. It performs no reassembly and invokes no
// callbacks, so it is safe for concurrent use.
//
// A frame whose type code has no mapped variant decodes generically and
// sets Result.Unrecognized. With fallback enabled, a frame whose typed
// parse hits an unsupported variant decodes as a generic DataMessage and
// sets Result.Fallback. With CRC checking enabled the trailing CRC-32 is
// verified and removed before parsing.
func (a *Analyzer) Decode(rec *trace.Record) (Result, error) {
	if rec == nil {
		return Result{}, errors.New("nil record")
	}
	res := Result{Record: rec}

	raw := rec.Raw
	if a.config.CRC {
		packet, err := protocol.SplitCRC(raw)
		if err != nil {
			return res, err
		}
		raw = packet
	}

	frame, err := message.ParseWithSOP(rec.SOP, raw)
	if err != nil {
		if !a.config.Fallback || !errors.Is(err, protocol.ErrUnsupportedVariant) {
			return res, err
		}
		generic, gerr := parseGeneric(raw)
		if gerr != nil {
			return res, err
		}
		frame = message.Frame{SOP: rec.SOP, Message: generic}
		res.Fallback = err
	}
	res.Frame = frame

	if uerr := message.Unrecognized(frame.Message.Header()); uerr != nil {
		res.Unrecognized = uerr
	}
	if ext, ok := frame.Message.(*message.ExtendedMessage); ok && !ext.ExtendedHeader().Chunked {
		res.Payload = ext.Payload()
	}

	return res, nil
}

// parseGeneric parses raw with the generic variant of its family.
func parseGeneric(raw []byte) (message.Message, error) {
	kind, _, err := message.Classify(raw)
	if err != nil {
		return nil, err
	}
	switch kind.Family() {
	case message.FamilyControl:
		return message.ParseControlMessage(raw)
	case message.FamilyData:
		return message.ParseDataMessage(raw)
	}
	return nil, fmt.Errorf("no generic variant for %s", kind)
}

// Run decodes every frame from src until it returns io.EOF.
//
// Frames that fail to decode are reported to the ErrorHandler and counted.
// With StopOnError, Run returns the first such failure as a *FrameError.
// Run returns early with ctx.Err() if the context is cancelled.
func (a *Analyzer) Run(ctx context.Context, src FrameSource) (Stats, error) {
	if src == nil {
		panic("frame source cannot be nil")
	}

	startTime := time.Now()
	stats := Stats{ByKind: make(map[message.Kind]int)}
	var reasm *Reassembler
	if a.config.Reassembly {
		reasm = NewReassembler()
	}

	a.logInfo("run started", "session", a.config.SessionID)

	for {
		if err := ctx.Err(); err != nil {
			stats.Elapsed = time.Since(startTime)
			a.logError("run cancelled", "session", a.config.SessionID, "frames", stats.Frames)
			return stats, err
		}

		rec, err := src.ReadFrame(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			stats.Elapsed = time.Since(startTime)
			a.logError("read frame failed", "session", a.config.SessionID, "error", err)
			return stats, fmt.Errorf("read frame: %w", err)
		}
		stats.Frames++

		res, err := a.Decode(rec)
		res.Index = stats.Frames
		reassembled := false
		if err == nil && reasm != nil {
			reassembled, err = a.reassemble(reasm, &res)
		}
		if err != nil {
			stats.Errors++
			frameErr := &FrameError{
				Index: stats.Frames,
				Line:  rec.Line,
				SOP:   rec.SOP,
				Raw:   rec.Raw,
				Err:   err,
			}
			a.logError("decode failed", "frame", frameErr.Index, "line", frameErr.Line, "error", err)
			if a.config.ErrorHandler != nil {
				a.config.ErrorHandler(frameErr)
			}
			if a.config.StopOnError {
				stats.Elapsed = time.Since(startTime)
				return stats, frameErr
			}
			continue
		}

		stats.Decoded++
		stats.ByKind[res.Kind()]++
		if reassembled {
			stats.Reassembled++
		}
		if res.Unrecognized != nil {
			stats.Unrecognized++
			a.logInfo("unrecognized message type", "frame", res.Index, "error", res.Unrecognized)
		}
		if res.Fallback != nil {
			stats.Fallbacks++
			a.logInfo("decoded generically", "frame", res.Index, "reason", res.Fallback)
		}
		a.logDebug("decoded", "frame", res.Index, "message", res.Frame.String())

		if a.config.MessageHandler != nil {
			a.config.MessageHandler(res)
		}
	}

	if reasm != nil && reasm.Pending() > 0 {
		a.logInfo("incomplete extended payloads at end of capture", "pending", reasm.Pending())
	}

	stats.Elapsed = time.Since(startTime)
	a.logInfo("run completed",
		"session", a.config.SessionID,
		"frames", stats.Frames,
		"errors", stats.Errors,
		"elapsed", stats.Elapsed)

	return stats, nil
}

// reassemble feeds chunked extended messages to r and stores a completed
// payload in res, reporting whether one completed. Unchunked payloads are
// already set by Decode.
func (a *Analyzer) reassemble(r *Reassembler, res *Result) (bool, error) {
	ext, ok := res.Frame.Message.(*message.ExtendedMessage)
	if !ok || !ext.ExtendedHeader().Chunked {
		return false, nil
	}
	payload, done, err := r.Add(res.Frame.SOP, ext)
	if err != nil || !done {
		return false, err
	}
	res.Payload = payload
	a.logDebug("extended payload reassembled", "frame", res.Index, "type", ext.Type().String(), "size", len(payload))
	return true, nil
}

// Helper methods for logging

func (a *Analyzer) logDebug(msg string, keysAndValues ...interface{}) {
	if a.config.Logger != nil {
		a.config.Logger.Debug(msg, keysAndValues...)
	}
}

func (a *Analyzer) logInfo(msg string, keysAndValues ...interface{}) {
	if a.config.Logger != nil {
		a.config.Logger.Info(msg, keysAndValues...)
	}
}

func (a *Analyzer) logError(msg string, keysAndValues ...interface{}) {
	if a.config.Logger != nil {
		a.config.Logger.Error(msg, keysAndValues...)
	}
}
