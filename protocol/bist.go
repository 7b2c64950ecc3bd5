package protocol

import "fmt"

// BISTDataObject selects a Built-In Self-Test mode (6.4.3).
type BISTDataObject struct {
	Mode BISTMode

	// Reserved holds bits 0..27 so the object re-encodes unchanged
	Reserved uint32
}

// ParseBISTDataObject decodes a 4-byte BIST Data Object. Reserved modes are
// returned as-is.
func ParseBISTDataObject(b []byte) (BISTDataObject, error) {
	if err := checkExact("bist data object", b, DataObjectSize); err != nil {
		return BISTDataObject{}, err
	}

	r := newFieldReader("bist data object", b)
	o := BISTDataObject{
		Mode:     BISTMode(r.uint(bistMode)),
		Reserved: uint32(r.uint(bistReserved)),
	}
	if r.err != nil {
		return BISTDataObject{}, r.err
	}
	return o, nil
}

// Encode packs the object into 4 bytes.
func (o BISTDataObject) Encode() ([]byte, error) {
	w := newFieldWriter("bist data object", DataObjectSize)
	w.uint(bistMode, uint64(o.Mode))
	w.uint(bistReserved, uint64(o.Reserved))
	return w.bytes()
}

func (o BISTDataObject) String() string {
	return fmt.Sprintf("BIST %s", o.Mode)
}
