package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-usbpd/protocol"
	"github.com/moffa90/go-usbpd/trace"
)

const vectorsDir = "../../../internal/vectors/testdata"

func run(fn func(stdout, stderr *bytes.Buffer) int) (int, string, string) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := fn(stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func writeCapture(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}

func TestRunDecode(t *testing.T) {
	t.Run("hex arguments", func(t *testing.T) {
		code, out, errOut := run(func(stdout, stderr *bytes.Buffer) int {
			return RunDecode([]string{"61", "11", "96", "90", "01", "36"}, nil, stdout, stderr)
		})
		require.Equal(t, ExitSuccess, code, errOut)
		assert.Contains(t, out, "Source_Capabilities")
		assert.Contains(t, out, "header: Source_Capabilities id=0 objs=1")
		assert.Contains(t, out, "PDO #1: Fixed 5000mV 1500mA")
	})

	t.Run("json", func(t *testing.T) {
		code, out, _ := run(func(stdout, stderr *bytes.Buffer) int {
			return RunDecode([]string{"-json", "-sop", "SOP'", "41 0D"}, nil, stdout, stderr)
		})
		require.Equal(t, ExitSuccess, code)

		var r frameReport
		require.NoError(t, json.Unmarshal([]byte(out), &r))
		assert.Equal(t, "GoodCRC", r.Kind)
		assert.Equal(t, "control", r.Family)
		assert.Equal(t, "SOP'", r.SOP)
		assert.Equal(t, uint8(6), r.MessageID)
		assert.True(t, r.FromCablePlug)
		assert.Equal(t, "41 0D", r.Raw)
	})

	t.Run("vendor defined details", func(t *testing.T) {
		code, out, _ := run(func(stdout, stderr *bytes.Buffer) int {
			return RunDecode([]string{"8F10 01A0 00FF"}, nil, stdout, stderr)
		})
		require.Equal(t, ExitSuccess, code)
		assert.Contains(t, out, "SVDM svid=0xFF00")
	})

	t.Run("decode failure", func(t *testing.T) {
		code, _, errOut := run(func(stdout, stderr *bytes.Buffer) int {
			return RunDecode([]string{"61 11 96 90"}, nil, stdout, stderr)
		})
		assert.Equal(t, ExitFailures, code)
		assert.Contains(t, errOut, "Error:")
	})

	t.Run("decode failure json", func(t *testing.T) {
		code, out, _ := run(func(stdout, stderr *bytes.Buffer) int {
			return RunDecode([]string{"-json", "61"}, nil, stdout, stderr)
		})
		assert.Equal(t, ExitFailures, code)

		var r frameReport
		require.NoError(t, json.Unmarshal([]byte(out), &r))
		assert.NotEmpty(t, r.Error)
	})

	t.Run("bad hex", func(t *testing.T) {
		code, _, errOut := run(func(stdout, stderr *bytes.Buffer) int {
			return RunDecode([]string{"6"}, nil, stdout, stderr)
		})
		assert.Equal(t, ExitCommandError, code)
		assert.Contains(t, errOut, "odd number of digits")
	})

	t.Run("crc", func(t *testing.T) {
		frame := fmt.Sprintf("% X", protocol.AppendCRC([]byte{0x41, 0x0C}))
		code, out, errOut := run(func(stdout, stderr *bytes.Buffer) int {
			return RunDecode([]string{"-crc", frame}, nil, stdout, stderr)
		})
		require.Equal(t, ExitSuccess, code, errOut)
		assert.Contains(t, out, "GoodCRC")

		code, _, errOut = run(func(stdout, stderr *bytes.Buffer) int {
			return RunDecode([]string{"-crc", "41 0C 00 00 00 00"}, nil, stdout, stderr)
		})
		assert.Equal(t, ExitFailures, code)
		assert.Contains(t, errOut, "crc mismatch")
	})

	t.Run("bad sop", func(t *testing.T) {
		code, _, _ := run(func(stdout, stderr *bytes.Buffer) int {
			return RunDecode([]string{"-sop", "SOP3", "41 0C"}, nil, stdout, stderr)
		})
		assert.Equal(t, ExitCommandError, code)
	})

	t.Run("stdin", func(t *testing.T) {
		in := strings.NewReader("# two frames\nSOP 41 0C\n61 11 96 90 01 36\n")
		code, out, _ := run(func(stdout, stderr *bytes.Buffer) int {
			return RunDecode(nil, in, stdout, stderr)
		})
		require.Equal(t, ExitSuccess, code)
		assert.Contains(t, out, "    1 SOP         GoodCRC")
		assert.Contains(t, out, "2 frames, 2 decoded, 0 errors")
	})
}

func TestRunTrace(t *testing.T) {
	path := writeCapture(t,
		"# session",
		"SOP 61 11 96 90 01 36",
		"SOP 41 0C",
		"SOP 61 11 96 90",
		"SOP 1F 00",
		"SOP 82 B0 07 80 01 02 03 04 05 06 07 00 00 00",
	)

	t.Run("text", func(t *testing.T) {
		code, out, _ := run(func(stdout, stderr *bytes.Buffer) int {
			return RunTrace([]string{path}, nil, stdout, stderr)
		})
		assert.Equal(t, ExitFailures, code)
		assert.Contains(t, out, "error: ")
		assert.Contains(t, out, "warning: ")
		assert.Contains(t, out, "payload: 01 02 03 04 05 06 07")
		assert.Contains(t, out, "5 frames, 4 decoded, 1 errors, 1 unrecognized, 1 payloads reassembled")
		assert.Contains(t, out, "GoodCRC=1")
	})

	t.Run("json", func(t *testing.T) {
		code, out, _ := run(func(stdout, stderr *bytes.Buffer) int {
			return RunTrace([]string{"-json", path}, nil, stdout, stderr)
		})
		assert.Equal(t, ExitFailures, code)

		var doc traceReport
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.NotEmpty(t, doc.Session)
		require.Len(t, doc.Frames, 5)
		assert.Equal(t, 3, doc.Frames[1].Line)
		assert.NotEmpty(t, doc.Frames[2].Error)
		assert.Equal(t, 4, doc.Stats.Decoded)
		assert.Equal(t, 1, doc.Stats.ByKind["Source_Capabilities"])
	})

	t.Run("strict", func(t *testing.T) {
		code, out, _ := run(func(stdout, stderr *bytes.Buffer) int {
			return RunTrace([]string{"-strict", path}, nil, stdout, stderr)
		})
		assert.Equal(t, ExitFailures, code)
		assert.Contains(t, out, "3 frames, 2 decoded, 1 errors")
	})

	t.Run("log file", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "pdcat.log")
		code, _, _ := run(func(stdout, stderr *bytes.Buffer) int {
			return RunTrace([]string{"-log-file", logPath, path}, nil, stdout, stderr)
		})
		assert.Equal(t, ExitFailures, code)

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "run completed")
		assert.Contains(t, string(data), "decode failed")
	})

	t.Run("missing file", func(t *testing.T) {
		code, _, errOut := run(func(stdout, stderr *bytes.Buffer) int {
			return RunTrace([]string{filepath.Join(t.TempDir(), "none.txt")}, nil, stdout, stderr)
		})
		assert.Equal(t, ExitCommandError, code)
		assert.Contains(t, errOut, "Error:")
	})

	t.Run("no arguments", func(t *testing.T) {
		code, _, _ := run(func(stdout, stderr *bytes.Buffer) int {
			return RunTrace(nil, nil, stdout, stderr)
		})
		assert.Equal(t, ExitCommandError, code)
	})
}

func TestRunVerify(t *testing.T) {
	t.Run("bundled suites", func(t *testing.T) {
		code, out, errOut := run(func(stdout, stderr *bytes.Buffer) int {
			return RunVerify([]string{vectorsDir}, stdout, stderr)
		})
		require.Equal(t, ExitSuccess, code, out+errOut)
		assert.Contains(t, out, "OK   literal examples (4 vectors)")
		assert.Contains(t, out, "OK   classification")
	})

	t.Run("failing suite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		suite := "name: wrong\nvectors:\n  - name: goodcrc\n    hex: \"41 0C\"\n    kind: Ping\n"
		require.NoError(t, os.WriteFile(path, []byte(suite), 0o600))

		code, out, _ := run(func(stdout, stderr *bytes.Buffer) int {
			return RunVerify([]string{path}, stdout, stderr)
		})
		assert.Equal(t, ExitFailures, code)
		assert.Contains(t, out, "FAIL wrong (1 of 1 vectors)")
		assert.Contains(t, out, "goodcrc: kind: want Ping, got GoodCRC")
	})

	t.Run("json", func(t *testing.T) {
		code, out, _ := run(func(stdout, stderr *bytes.Buffer) int {
			return RunVerify([]string{"-json", filepath.Join(vectorsDir, "errors.yaml")}, stdout, stderr)
		})
		require.Equal(t, ExitSuccess, code)

		var r verifyReport
		require.NoError(t, json.Unmarshal([]byte(out), &r))
		assert.Equal(t, 1, r.Suites)
		assert.Equal(t, 5, r.Vectors)
		assert.Empty(t, r.Failures)
	})

	t.Run("no suites", func(t *testing.T) {
		code, _, errOut := run(func(stdout, stderr *bytes.Buffer) int {
			return RunVerify(nil, stdout, stderr)
		})
		assert.Equal(t, ExitCommandError, code)
		assert.Contains(t, errOut, "no suites specified")
	})
}

func TestRunConvert(t *testing.T) {
	input := writeCapture(t, "SOP 41 0C", "SOP' 41 0D", "SOP 61 11 96 90 01 36")
	dir := t.TempDir()
	stream := filepath.Join(dir, "capture"+trace.StreamExtension)
	text := filepath.Join(dir, "roundtrip.txt")

	code, out, errOut := run(func(stdout, stderr *bytes.Buffer) int {
		return RunConvert([]string{input, stream}, stdout, stderr)
	})
	require.Equal(t, ExitSuccess, code, errOut)
	assert.Contains(t, out, "(3 frames)")

	code, _, errOut = run(func(stdout, stderr *bytes.Buffer) int {
		return RunConvert([]string{stream, text}, stdout, stderr)
	})
	require.Equal(t, ExitSuccess, code, errOut)

	want, err := trace.Parse(input)
	require.NoError(t, err)
	got, err := trace.Parse(text)
	require.NoError(t, err)
	require.Equal(t, want.Len(), got.Len())
	for i := range want.Records {
		assert.Equal(t, want.Records[i].SOP, got.Records[i].SOP)
		assert.Equal(t, want.Records[i].Raw, got.Records[i].Raw)
	}

	code, out, _ = run(func(stdout, stderr *bytes.Buffer) int {
		return RunTrace([]string{stream}, nil, stdout, stderr)
	})
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "3 frames, 3 decoded, 0 errors")

	code, _, _ = run(func(stdout, stderr *bytes.Buffer) int {
		return RunConvert([]string{input}, stdout, stderr)
	})
	assert.Equal(t, ExitCommandError, code)
}

func TestReplEval(t *testing.T) {
	sess := newReplSession(false, false)
	var out bytes.Buffer

	assert.False(t, sess.eval("SOP' 41 0D", &out))
	assert.Contains(t, out.String(), "GoodCRC")

	out.Reset()
	assert.False(t, sess.eval("json on", &out))
	assert.True(t, sess.asJSON)
	assert.False(t, sess.eval("41 0C", &out))
	var r frameReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &r))
	assert.Equal(t, "GoodCRC", r.Kind)

	out.Reset()
	assert.False(t, sess.eval("zz", &out))
	assert.Contains(t, out.String(), "Error:")

	out.Reset()
	assert.False(t, sess.eval("json maybe", &out))
	assert.Contains(t, out.String(), "usage")

	assert.False(t, sess.eval("  ", &out))
	assert.False(t, sess.eval("# comment", &out))
	assert.True(t, sess.eval("exit", &out))
	assert.True(t, sess.eval("quit", &out))
}
