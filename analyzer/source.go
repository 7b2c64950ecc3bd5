package analyzer

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/moffa90/go-usbpd/trace"
)

// FrameSource supplies frames to an Analyzer.
// ReadFrame returns io.EOF when no frames remain.
type FrameSource interface {
	ReadFrame(ctx context.Context) (*trace.Record, error)
}

// SliceSource replays the records of a parsed capture.
type SliceSource struct {
	records []*trace.Record
	pos     int
}

// NewSliceSource creates a source over the records of c.
func NewSliceSource(c *trace.Capture) *SliceSource {
	return &SliceSource{records: c.Records}
}

// ReadFrame returns the next record.
func (s *SliceSource) ReadFrame(ctx context.Context) (*trace.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.records) {
		return nil, io.EOF
	}
	rec := s.records[s.pos]
	s.pos++
	return rec, nil
}

// StreamSource reads records from a CBOR capture stream.
type StreamSource struct {
	dec *trace.Decoder
}

// NewStreamSource creates a source that decodes entries from r.
func NewStreamSource(r io.Reader) *StreamSource {
	return &StreamSource{dec: trace.NewDecoder(r)}
}

// ReadFrame decodes the next stream entry.
func (s *StreamSource) ReadFrame(ctx context.Context) (*trace.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry, err := s.dec.Next()
	if err != nil {
		return nil, err
	}
	rec := entry.Record()
	rec.Line = s.dec.Count()
	return rec, nil
}

// LineSource reads records from text capture lines as they arrive, such as
// a capture piped on standard input.
type LineSource struct {
	scanner *bufio.Scanner
	line    int
}

// NewLineSource creates a source that parses text capture lines from r.
func NewLineSource(r io.Reader) *LineSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), trace.MaxLineLength)
	return &LineSource{scanner: scanner}
}

// ReadFrame parses lines until the next frame, skipping blank and comment lines.
func (s *LineSource) ReadFrame(ctx context.Context) (*trace.Record, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, fmt.Errorf("read capture: %w", err)
			}
			return nil, io.EOF
		}
		s.line++

		rec, err := trace.ParseLine(s.scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", s.line, err)
		}
		if rec == nil {
			continue
		}
		rec.Line = s.line
		return rec, nil
	}
}

// Compile-time interface satisfaction checks.
var (
	_ FrameSource = (*SliceSource)(nil)
	_ FrameSource = (*StreamSource)(nil)
	_ FrameSource = (*LineSource)(nil)
)
