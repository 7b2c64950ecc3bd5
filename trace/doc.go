// Package trace reads and writes USB PD capture files.
//
// # Text Capture Format
//
// A text capture holds one frame per line. The Start of Packet token is
// optional and defaults to SOP:
//
//	# source capabilities then GoodCRC
//	SOP   61 11 96 90 01 36
//	SOP'  0x41 0x0D
//	410C
//
// Hex bytes may be separated by spaces, commas or colons, or written
// contiguously, with or without 0x prefixes. A '#' starts a comment that runs
// to the end of the line. Blank lines are skipped.
//
// # CBOR Capture Stream
//
// A binary capture (.pdcap) is a sequence of CBOR maps with integer keys:
//
//	1: timestamp (RFC 3339, nanosecond precision)
//	2: capture session ID (UUID string)
//	3: SOP
//	4: raw frame bytes
//
// Streams are written with Encoder and read back with Decoder.
//
// # Usage
//
//	capture, err := trace.Parse("session.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range capture.Records {
//	    msg, err := message.Parse(rec.Raw)
//	    ...
//	}
//
// # Error Handling
//
// Text parse errors carry the 1-based line number of the offending line.
package trace
