package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/moffa90/go-usbpd/analyzer"
	"github.com/moffa90/go-usbpd/trace"
)

// TraceOptions configures the trace command.
type TraceOptions struct {
	commonOptions
	Input        string
	StopOnError  bool
	NoReassembly bool
	NoFallback   bool
	CRC          bool
}

// traceReport is the JSON document written by trace -json.
type traceReport struct {
	Session string        `json:"session"`
	Frames  []frameReport `json:"frames"`
	Stats   statsReport   `json:"stats"`
}

type statsReport struct {
	Frames       int            `json:"frames"`
	Decoded      int            `json:"decoded"`
	Errors       int            `json:"errors"`
	Unrecognized int            `json:"unrecognized"`
	Fallbacks    int            `json:"fallbacks"`
	Reassembled  int            `json:"reassembled"`
	ByKind       map[string]int `json:"by_kind"`
}

func newStatsReport(s analyzer.Stats) statsReport {
	r := statsReport{
		Frames:       s.Frames,
		Decoded:      s.Decoded,
		Errors:       s.Errors,
		Unrecognized: s.Unrecognized,
		Fallbacks:    s.Fallbacks,
		Reassembled:  s.Reassembled,
		ByKind:       make(map[string]int, len(s.ByKind)),
	}
	for k, n := range s.ByKind {
		r.ByKind[k.String()] = n
	}
	return r
}

// RunTrace runs the trace command.
func RunTrace(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts TraceOptions
	fs := newFlagSet("trace", stderr)
	opts.register(fs)
	fs.BoolVar(&opts.StopOnError, "strict", false, "stop at the first frame that fails to decode")
	fs.BoolVar(&opts.NoReassembly, "no-reassembly", false, "do not reassemble chunked extended messages")
	fs.BoolVar(&opts.CRC, "crc", false, "frames end with their CRC-32")
	fs.BoolVar(&opts.NoFallback, "no-fallback", false, "fail frames with unsupported variants instead of decoding them generically")
	if err := fs.Parse(args); err != nil {
		return ExitCommandError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected one capture file (or - for stdin)")
		return ExitCommandError
	}
	opts.Input = fs.Arg(0)

	var src analyzer.FrameSource
	if opts.Input == "-" {
		src = analyzer.NewLineSource(stdin)
	} else {
		capture, err := trace.Open(opts.Input)
		if err != nil {
			return fail(stderr, "%v", err)
		}
		src = analyzer.NewSliceSource(capture)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runAnalyzer(ctx, src, opts, stdout, stderr)
}

// runAnalyzer decodes every frame of src and prints the reports.
func runAnalyzer(ctx context.Context, src analyzer.FrameSource, opts TraceOptions, stdout, stderr io.Writer) int {
	logger, closer := opts.setupLogging(stderr)
	defer closer.Close()

	var reports []frameReport
	emit := func(r frameReport) {
		if opts.JSON {
			reports = append(reports, r)
			return
		}
		r.writeText(stdout)
	}

	a := analyzer.New(
		analyzer.WithLogger(analyzer.NewSlogLogger(logger)),
		analyzer.WithReassembly(!opts.NoReassembly),
		analyzer.WithFallback(!opts.NoFallback),
		analyzer.WithStopOnError(opts.StopOnError),
		analyzer.WithCRC(opts.CRC),
		analyzer.WithMessageHandler(func(res analyzer.Result) { emit(newReport(res)) }),
		analyzer.WithErrorHandler(func(err *analyzer.FrameError) { emit(errorReport(err)) }),
	)

	stats, runErr := a.Run(ctx, src)

	if opts.JSON {
		doc := traceReport{Session: a.SessionID().String(), Frames: reports, Stats: newStatsReport(stats)}
		if doc.Frames == nil {
			doc.Frames = []frameReport{}
		}
		if err := writeJSON(stdout, doc); err != nil {
			return fail(stderr, "write output: %v", err)
		}
	} else {
		writeStats(stdout, stats)
	}

	var frameErr *analyzer.FrameError
	switch {
	case runErr != nil && !errors.As(runErr, &frameErr):
		return fail(stderr, "%v", runErr)
	case stats.Errors > 0:
		return ExitFailures
	}
	return ExitSuccess
}

func writeStats(w io.Writer, s analyzer.Stats) {
	fmt.Fprintf(w, "\n%d frames, %d decoded, %d errors", s.Frames, s.Decoded, s.Errors)
	if s.Unrecognized > 0 {
		fmt.Fprintf(w, ", %d unrecognized", s.Unrecognized)
	}
	if s.Fallbacks > 0 {
		fmt.Fprintf(w, ", %d generic", s.Fallbacks)
	}
	if s.Reassembled > 0 {
		fmt.Fprintf(w, ", %d payloads reassembled", s.Reassembled)
	}
	fmt.Fprintln(w)

	kinds := make([]string, 0, len(s.ByKind))
	for k, n := range s.ByKind {
		kinds = append(kinds, fmt.Sprintf("%s=%d", k, n))
	}
	sort.Strings(kinds)
	if len(kinds) > 0 {
		fmt.Fprintln(w, strings.Join(kinds, " "))
	}
}
