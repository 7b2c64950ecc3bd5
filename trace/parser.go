package trace

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/moffa90/go-usbpd/protocol"
)

// Constants for text capture parsing.
const (
	// CommentPrefix starts a comment that runs to the end of the line
	CommentPrefix = "#"

	// HexPrefix is the optional prefix of a hex byte
	HexPrefix = "0x"

	// DefaultRecordCapacity is the default initial capacity for the records slice
	DefaultRecordCapacity = 256

	// MaxLineLength bounds a single capture line
	MaxLineLength = 64 * 1024
)

// Parse parses a text capture from the given file path.
//
// Example:
//
//	capture, err := trace.Parse("session.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Frames: %d\n", capture.Len())
func Parse(path string) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader parses a text capture from any io.Reader.
//
// Example:
//
//	capture, err := trace.ParseReader(strings.NewReader("SOP 41 0C\n"))
func ParseReader(r io.Reader) (*Capture, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineLength)

	capture := &Capture{Records: make([]*Record, 0, DefaultRecordCapacity)}

	lineNum := 0
	for scanner.Scan() {
		lineNum++

		rec, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if rec == nil {
			continue
		}

		rec.Line = lineNum
		capture.Records = append(capture.Records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read capture: %w", err)
	}

	if len(capture.Records) == 0 {
		return nil, fmt.Errorf("no frames found in capture")
	}

	return capture, nil
}

// ParseLine parses a single capture line. It returns nil, nil for blank and
// comment-only lines.
//
// Line format:
//
//	[SOP] <hex bytes> [# comment]
//
// Example: "SOP' 41 0D" = SOP: SOP', Raw: [0x41, 0x0D]
func ParseLine(line string) (*Record, error) {
	if i := strings.Index(line, CommentPrefix); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}

	sop := protocol.SOPDefault
	if strings.HasPrefix(strings.ToUpper(fields[0]), "SOP") {
		s, err := protocol.ParseSOP(fields[0])
		if err != nil {
			return nil, err
		}
		sop = s
		fields = fields[1:]
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("no frame bytes after %s", sop)
	}

	raw, err := DecodeHex(strings.Join(fields, " "))
	if err != nil {
		return nil, err
	}

	if len(raw) < protocol.HeaderSize {
		return nil, fmt.Errorf("frame too short: got %d bytes, minimum is %d", len(raw), protocol.HeaderSize)
	}

	return &Record{SOP: sop, Raw: raw}, nil
}

// DecodeHex decodes hex bytes written with any mix of spaces, commas, colons
// and 0x prefixes.
//
// Example:
//
//	raw, err := trace.DecodeHex("0x61, 0x11 96:90 0136")
func DecodeHex(s string) ([]byte, error) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ',' || r == ':'
	})

	var b strings.Builder
	for _, tok := range tokens {
		if len(tok) > len(HexPrefix) && strings.EqualFold(tok[:len(HexPrefix)], HexPrefix) {
			tok = tok[len(HexPrefix):]
		}
		if len(tok)%2 != 0 {
			return nil, fmt.Errorf("invalid hex data %q: odd number of digits", tok)
		}
		b.WriteString(tok)
	}

	if b.Len() == 0 {
		return nil, fmt.Errorf("no hex data")
	}

	raw, err := hex.DecodeString(b.String())
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	return raw, nil
}

// FormatLine renders a frame in the text capture format. ParseLine inverts it.
func FormatLine(sop protocol.SOP, raw []byte) string {
	return fmt.Sprintf("%-11s % X", sop, raw)
}

// Write writes every record of c in the text capture format.
func Write(w io.Writer, c *Capture) error {
	bw := bufio.NewWriter(w)
	for _, rec := range c.Records {
		if _, err := fmt.Fprintln(bw, FormatLine(rec.SOP, rec.Raw)); err != nil {
			return fmt.Errorf("failed to write capture: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write capture: %w", err)
	}
	return nil
}
