package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/moffa90/go-usbpd/analyzer"
	"github.com/moffa90/go-usbpd/protocol"
	"github.com/moffa90/go-usbpd/trace"
)

// DecodeOptions configures the decode command.
type DecodeOptions struct {
	commonOptions
	SOP string
	CRC bool
}

// RunDecode runs the decode command. With arguments it decodes them as one
// frame; without, it decodes capture lines from stdin.
func RunDecode(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts DecodeOptions
	fs := newFlagSet("decode", stderr)
	opts.register(fs)
	fs.StringVar(&opts.SOP, "sop", "SOP", "start of packet of the frame")
	fs.BoolVar(&opts.CRC, "crc", false, "frames end with their CRC-32")
	if err := fs.Parse(args); err != nil {
		return ExitCommandError
	}

	if fs.NArg() == 0 {
		return runAnalyzer(context.Background(), analyzer.NewLineSource(stdin),
			TraceOptions{commonOptions: opts.commonOptions, CRC: opts.CRC}, stdout, stderr)
	}

	sop, err := protocol.ParseSOP(opts.SOP)
	if err != nil {
		return fail(stderr, "%v", err)
	}
	raw, err := trace.DecodeHex(strings.Join(fs.Args(), " "))
	if err != nil {
		return fail(stderr, "%v", err)
	}

	a := analyzer.New(analyzer.WithCRC(opts.CRC))
	return decodeFrame(a, &trace.Record{SOP: sop, Raw: raw}, opts.JSON, stdout, stderr)
}

// decodeFrame decodes and prints a single frame.
func decodeFrame(a *analyzer.Analyzer, rec *trace.Record, asJSON bool, stdout, stderr io.Writer) int {
	res, err := a.Decode(rec)
	if err != nil {
		if asJSON {
			_ = writeJSON(stdout, errorReport(&analyzer.FrameError{SOP: rec.SOP, Raw: rec.Raw, Err: err}))
			return ExitFailures
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitFailures
	}

	report := newReport(res)
	if asJSON {
		if err := writeJSON(stdout, report); err != nil {
			return fail(stderr, "write output: %v", err)
		}
		return ExitSuccess
	}
	report.writeText(stdout)
	return ExitSuccess
}
