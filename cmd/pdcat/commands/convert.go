package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/moffa90/go-usbpd/trace"
)

// RunConvert runs the convert command. The output format follows the output
// file extension: .pdcap writes a CBOR capture stream, anything else text.
func RunConvert(args []string, stdout, stderr io.Writer) int {
	var opts commonOptions
	fs := newFlagSet("convert", stderr)
	opts.register(fs)
	if err := fs.Parse(args); err != nil {
		return ExitCommandError
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "Error: expected an input and an output file")
		return ExitCommandError
	}
	input, output := fs.Arg(0), fs.Arg(1)

	logger, closer := opts.setupLogging(stderr)
	defer closer.Close()

	capture, err := trace.Open(input)
	if err != nil {
		return fail(stderr, "%v", err)
	}

	f, err := os.Create(output)
	if err != nil {
		return fail(stderr, "create output: %v", err)
	}
	w := bufio.NewWriter(f)

	var session string
	if trace.IsStream(output) {
		id, werr := trace.WriteStream(w, capture)
		err = werr
		session = id.String()
	} else {
		err = trace.Write(w, capture)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fail(stderr, "write output: %v", err)
	}

	logger.Info("capture converted", "input", input, "output", output, "frames", capture.Len(), "session", session)
	if opts.JSON {
		_ = writeJSON(stdout, map[string]interface{}{
			"input":   input,
			"output":  output,
			"frames":  capture.Len(),
			"session": session,
		})
		return ExitSuccess
	}
	fmt.Fprintf(stdout, "Converted %s -> %s (%d frames)\n", input, output, capture.Len())
	return ExitSuccess
}
