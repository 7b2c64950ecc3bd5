package protocol

import "github.com/moffa90/go-usbpd/bits"

// field is one entry of a structure's bit table. The same table drives
// parsing and encoding.
type field struct {
	name   string
	offset int
	width  int
}

// fieldReader extracts fields from a buffer, keeping the first error.
type fieldReader struct {
	structure string
	buf       []byte
	err       error
}

func newFieldReader(structure string, buf []byte) *fieldReader {
	return &fieldReader{structure: structure, buf: buf}
}

func (r *fieldReader) uint(f field) uint64 {
	if r.err != nil {
		return 0
	}
	v, err := bits.Uint(r.buf, f.offset, f.width)
	if err != nil {
		r.err = &FieldError{Structure: r.structure, Field: f.name, Err: err}
	}
	return v
}

func (r *fieldReader) flag(f field) bool {
	return r.uint(f) != 0
}

// fieldWriter packs fields into a zeroed buffer, keeping the first error.
type fieldWriter struct {
	structure string
	buf       []byte
	err       error
}

func newFieldWriter(structure string, size int) *fieldWriter {
	return &fieldWriter{structure: structure, buf: make([]byte, size)}
}

func (w *fieldWriter) uint(f field, v uint64) {
	if w.err != nil {
		return
	}
	if err := bits.PutUint(w.buf, f.offset, f.width, v); err != nil {
		w.err = &FieldError{Structure: w.structure, Field: f.name, Err: err}
	}
}

func (w *fieldWriter) flag(f field, v bool) {
	var u uint64
	if v {
		u = 1
	}
	w.uint(f, u)
}

// enum writes v after checking it against the enumeration's upper bound.
func (w *fieldWriter) enum(f field, v, limit uint64) {
	if w.err != nil {
		return
	}
	if v > limit {
		w.err = &FieldError{Structure: w.structure, Field: f.name, Err: &InvalidEnumError{Field: f.name, Value: uint32(v)}}
		return
	}
	w.uint(f, v)
}

func (w *fieldWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}
