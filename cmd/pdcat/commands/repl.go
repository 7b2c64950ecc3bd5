package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/moffa90/go-usbpd/analyzer"
	"github.com/moffa90/go-usbpd/trace"
)

const replHelp = `Enter a frame as hex, optionally preceded by its SOP:
  61 11 96 90 01 36
  SOP' 41 0D
Commands:
  json on|off   toggle JSON output
  help          show this help
  exit          quit`

// RunRepl runs the interactive decoder.
func RunRepl(args []string, stdout, stderr io.Writer) int {
	var opts commonOptions
	var crc bool
	fs := newFlagSet("repl", stderr)
	opts.register(fs)
	fs.BoolVar(&crc, "crc", false, "frames end with their CRC-32")
	if err := fs.Parse(args); err != nil {
		return ExitCommandError
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pd> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          stdout,
		Stderr:          stderr,
	})
	if err != nil {
		return fail(stderr, "failed to create readline: %v", err)
	}
	defer rl.Close()

	sess := newReplSession(opts.JSON, crc)
	fmt.Fprintln(rl.Stdout(), replHelp)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return ExitSuccess
		}
		if sess.eval(line, rl.Stdout()) {
			return ExitSuccess
		}
	}
}

// replSession holds the state of an interactive session.
type replSession struct {
	asJSON   bool
	analyzer *analyzer.Analyzer
}

func newReplSession(asJSON, crc bool) *replSession {
	return &replSession{asJSON: asJSON, analyzer: analyzer.New(analyzer.WithCRC(crc))}
}

// eval handles one input line and reports whether the session should end.
func (s *replSession) eval(line string, out io.Writer) bool {
	input := strings.TrimSpace(line)
	switch {
	case input == "":
		return false
	case input == "exit" || input == "quit":
		return true
	case input == "help":
		fmt.Fprintln(out, replHelp)
		return false
	case strings.HasPrefix(input, "json "):
		switch strings.TrimSpace(strings.TrimPrefix(input, "json ")) {
		case "on":
			s.asJSON = true
		case "off":
			s.asJSON = false
		default:
			fmt.Fprintln(out, "usage: json on|off")
		}
		return false
	}

	rec, err := trace.ParseLine(input)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return false
	}
	if rec == nil {
		return false
	}
	decodeFrame(s.analyzer, rec, s.asJSON, out, out)
	return false
}
