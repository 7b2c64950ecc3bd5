// pdcat decodes captured USB Power Delivery traffic.
package main

import (
	"fmt"
	"os"

	"github.com/moffa90/go-usbpd/cmd/pdcat/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(commands.ExitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "decode":
		exitCode = commands.RunDecode(args, os.Stdin, os.Stdout, os.Stderr)
	case "trace":
		exitCode = commands.RunTrace(args, os.Stdin, os.Stdout, os.Stderr)
	case "verify":
		exitCode = commands.RunVerify(args, os.Stdout, os.Stderr)
	case "convert":
		exitCode = commands.RunConvert(args, os.Stdout, os.Stderr)
	case "repl":
		exitCode = commands.RunRepl(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = commands.ExitSuccess
	case "version", "--version":
		fmt.Println("pdcat version " + version)
		exitCode = commands.ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = commands.ExitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`pdcat - USB Power Delivery message decoder

Usage:
  pdcat <command> [options] [args...]

Commands:
  decode    Decode one frame given as hex, or frames read from stdin
  trace     Decode a capture file (text or .pdcap stream)
  verify    Check YAML conformance vector suites
  convert   Convert a capture between text and .pdcap
  repl      Decode frames typed interactively

Common options:
  -json            Write JSON output
  -log-file PATH   Also write logs to a rotating file
  -v               Verbose logging

Examples:
  pdcat decode 61 11 96 90 01 36
  pdcat decode -sop "SOP'" 41 0D
  pdcat trace -json session.txt
  pdcat verify internal/vectors/testdata
  pdcat convert session.txt session.pdcap`)
}
