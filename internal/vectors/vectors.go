// Package vectors loads and verifies YAML conformance suites of USB PD
// messages.
//
// A suite lists raw frames with the facts the decoder must report for them:
//
//	name: literal examples
//	vectors:
//	  - name: vendor defined
//	    sop: SOP
//	    hex: "8F 10 01 A0 00 FF"
//	    kind: Vendor_Defined
//	    num_data_obj: 1
//	    message_id: 0
//	    roundtrip: true
//	  - name: truncated
//	    hex: "61 11 96 90"
//	    error: length
package vectors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-usbpd/message"
	"github.com/moffa90/go-usbpd/protocol"
	"github.com/moffa90/go-usbpd/trace"
)

// errorNames maps the error names accepted in suites to sentinels.
var errorNames = map[string]error{
	"length":              protocol.ErrLength,
	"unsupported_variant": protocol.ErrUnsupportedVariant,
	"unrecognized_type":   protocol.ErrUnrecognizedType,
	"invalid_enum":        protocol.ErrInvalidEnum,
	"range":               protocol.ErrRange,
}

// Suite is a named list of vectors.
type Suite struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Vectors     []Vector `yaml:"vectors"`
}

// Vector is one raw frame and its expected decoding. Unset expectations are
// not checked.
type Vector struct {
	Name string `yaml:"name"`

	// SOP is the start of packet name; empty means SOP
	SOP string `yaml:"sop,omitempty"`

	// Hex holds the frame bytes in any format trace.DecodeHex accepts
	Hex string `yaml:"hex"`

	// Kind is the expected message kind name, such as "GoodCRC"
	Kind string `yaml:"kind,omitempty"`

	NumDataObjects *int `yaml:"num_data_obj,omitempty"`
	MessageID      *int `yaml:"message_id,omitempty"`

	// Error names the expected parse failure; see errorNames
	Error string `yaml:"error,omitempty"`

	// Roundtrip requires Encode to reproduce the leading bytes of Hex
	Roundtrip bool `yaml:"roundtrip,omitempty"`
}

// LoadError describes a suite that could not be loaded.
type LoadError struct {
	// File is the path of the suite (empty when parsed from bytes)
	File string

	// Message describes the error
	Message string

	// Cause is the underlying error, if any
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File == "" {
		return msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Parse parses a suite from YAML bytes and validates it.
func Parse(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}

	if s.Name == "" {
		return nil, &LoadError{Message: "suite name is required"}
	}
	if len(s.Vectors) == 0 {
		return nil, &LoadError{Message: "suite must have at least one vector"}
	}
	for i, v := range s.Vectors {
		if err := v.validate(); err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("vector %d (%s)", i+1, v.Name), Cause: err}
		}
	}

	return &s, nil
}

// Load reads and parses a suite file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}

	s, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
		}
		return nil, err
	}
	return s, nil
}

// LoadDir loads every .yaml and .yml suite in dir, in name order.
func LoadDir(dir string) ([]*Suite, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{File: dir, Message: "failed to read directory", Cause: err}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var suites []*Suite
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		s, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}

func (v Vector) validate() error {
	if v.Name == "" {
		return errors.New("name is required")
	}
	if _, err := v.Bytes(); err != nil {
		return err
	}
	if _, err := v.StartOfPacket(); err != nil {
		return err
	}
	if v.Error != "" {
		if _, ok := errorNames[v.Error]; !ok {
			return fmt.Errorf("unknown error name %q", v.Error)
		}
		if v.Kind != "" || v.Roundtrip {
			return errors.New("an error vector cannot expect a kind or a roundtrip")
		}
	}
	return nil
}

// Bytes decodes the frame bytes.
func (v Vector) Bytes() ([]byte, error) {
	return trace.DecodeHex(v.Hex)
}

// StartOfPacket returns the frame's SOP, defaulting to SOP.
func (v Vector) StartOfPacket() (protocol.SOP, error) {
	if v.SOP == "" {
		return protocol.SOPDefault, nil
	}
	return protocol.ParseSOP(v.SOP)
}

// MismatchError reports a decoded fact that differs from the vector.
type MismatchError struct {
	Field string
	Want  interface{}
	Got   interface{}
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: want %v, got %v", e.Field, e.Want, e.Got)
}

// Verify decodes the vector and checks every expectation it sets.
func (v Vector) Verify() error {
	raw, err := v.Bytes()
	if err != nil {
		return err
	}
	sop, err := v.StartOfPacket()
	if err != nil {
		return err
	}

	frame, err := message.ParseWithSOP(sop, raw)
	return v.Check(frame, err)
}

// Check compares a decode result with the vector.
func (v Vector) Check(frame message.Frame, err error) error {
	if v.Error != "" {
		want := errorNames[v.Error]
		if err == nil {
			return &MismatchError{Field: "error", Want: v.Error, Got: frame.Message}
		}
		if !errors.Is(err, want) {
			return &MismatchError{Field: "error", Want: v.Error, Got: err}
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	m := frame.Message
	h := m.Header()
	if v.Kind != "" && m.Kind().String() != v.Kind {
		return &MismatchError{Field: "kind", Want: v.Kind, Got: m.Kind()}
	}
	if v.NumDataObjects != nil && int(h.NumDataObjects) != *v.NumDataObjects {
		return &MismatchError{Field: "num_data_obj", Want: *v.NumDataObjects, Got: h.NumDataObjects}
	}
	if v.MessageID != nil && int(h.MessageID) != *v.MessageID {
		return &MismatchError{Field: "message_id", Want: *v.MessageID, Got: h.MessageID}
	}
	if v.Roundtrip {
		raw, _ := v.Bytes()
		encoded, err := m.Encode()
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if len(encoded) > len(raw) || !bytes.Equal(encoded, raw[:len(encoded)]) {
			return &MismatchError{Field: "encoding", Want: fmt.Sprintf("% X", raw), Got: fmt.Sprintf("% X", encoded)}
		}
	}
	return nil
}

// Failure is a vector that did not verify.
type Failure struct {
	Suite  string
	Vector string
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s/%s: %v", f.Suite, f.Vector, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Check runs fn on every vector and collects the failures.
//
// Example:
//
//	failures := suite.Check(vectors.Vector.Verify)
func (s *Suite) Check(fn func(Vector) error) []*Failure {
	var failures []*Failure
	for _, v := range s.Vectors {
		if err := fn(v); err != nil {
			failures = append(failures, &Failure{Suite: s.Name, Vector: v.Name, Err: err})
		}
	}
	return failures
}
