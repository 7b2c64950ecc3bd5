// Package commands implements the pdcat subcommands.
package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Exit codes.
const (
	ExitSuccess      = 0
	ExitCommandError = 1
	ExitFailures     = 2
)

// Log rotation defaults for -log-file.
const (
	logMaxSizeMB  = 25
	logMaxAgeDays = 7
	logMaxBackups = 5
)

// commonOptions are the flags every subcommand accepts.
type commonOptions struct {
	JSON    bool
	LogFile string
	Verbose bool
}

func (o *commonOptions) register(fs *flag.FlagSet) {
	fs.BoolVar(&o.JSON, "json", false, "write JSON output")
	fs.StringVar(&o.LogFile, "log-file", "", "also write logs to a rotating file")
	fs.BoolVar(&o.Verbose, "v", false, "verbose logging")
}

// setupLogging builds the command logger. Logs go to stderr, and to a
// rotating file when -log-file is set. The returned closer releases the file.
func (o *commonOptions) setupLogging(stderr io.Writer) (*slog.Logger, io.Closer) {
	level := slog.LevelWarn
	if o.LogFile != "" {
		level = slog.LevelInfo
	}
	if o.Verbose {
		level = slog.LevelDebug
	}

	out := stderr
	var closer io.Closer = nopCloser{}
	if o.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   o.LogFile,
			MaxSize:    logMaxSizeMB,
			MaxAge:     logMaxAgeDays,
			MaxBackups: logMaxBackups,
		}
		out = io.MultiWriter(stderr, rotator)
		closer = rotator
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fail(stderr io.Writer, format string, args ...interface{}) int {
	fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
	return ExitCommandError
}
