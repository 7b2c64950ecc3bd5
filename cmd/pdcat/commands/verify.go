package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/moffa90/go-usbpd/internal/vectors"
)

// verifyReport is the JSON document written by verify -json.
type verifyReport struct {
	Suites   int             `json:"suites"`
	Vectors  int             `json:"vectors"`
	Failures []failureReport `json:"failures"`
}

type failureReport struct {
	Suite  string `json:"suite"`
	Vector string `json:"vector"`
	Error  string `json:"error"`
}

// RunVerify runs the verify command over suite files and directories.
func RunVerify(args []string, stdout, stderr io.Writer) int {
	var opts commonOptions
	fs := newFlagSet("verify", stderr)
	opts.register(fs)
	if err := fs.Parse(args); err != nil {
		return ExitCommandError
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: no suites specified")
		return ExitCommandError
	}

	logger, closer := opts.setupLogging(stderr)
	defer closer.Close()

	var suites []*vectors.Suite
	for _, path := range fs.Args() {
		loaded, err := loadSuites(path)
		if err != nil {
			return fail(stderr, "%v", err)
		}
		suites = append(suites, loaded...)
	}

	report := verifyReport{Suites: len(suites), Failures: []failureReport{}}
	for _, s := range suites {
		report.Vectors += len(s.Vectors)
		failures := s.Check(vectors.Vector.Verify)
		logger.Info("suite checked", "suite", s.Name, "vectors", len(s.Vectors), "failures", len(failures))

		for _, f := range failures {
			report.Failures = append(report.Failures, failureReport{Suite: f.Suite, Vector: f.Vector, Error: f.Err.Error()})
		}
		if opts.JSON {
			continue
		}
		if len(failures) == 0 {
			fmt.Fprintf(stdout, "OK   %s (%d vectors)\n", s.Name, len(s.Vectors))
			continue
		}
		fmt.Fprintf(stdout, "FAIL %s (%d of %d vectors)\n", s.Name, len(failures), len(s.Vectors))
		for _, f := range failures {
			fmt.Fprintf(stdout, "     %s: %v\n", f.Vector, f.Err)
		}
	}

	if opts.JSON {
		if err := writeJSON(stdout, report); err != nil {
			return fail(stderr, "write output: %v", err)
		}
	}
	if len(report.Failures) > 0 {
		return ExitFailures
	}
	return ExitSuccess
}

func loadSuites(path string) ([]*vectors.Suite, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return vectors.LoadDir(path)
	}
	s, err := vectors.Load(path)
	if err != nil {
		return nil, err
	}
	return []*vectors.Suite{s}, nil
}
