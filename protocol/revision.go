package protocol

import "fmt"

// RevisionDataObject carries the sender's PD revision and version (6.4.12).
type RevisionDataObject struct {
	RevisionMajor uint8
	RevisionMinor uint8
	VersionMajor  uint8
	VersionMinor  uint8

	// Reserved holds bits 0..15 so the object re-encodes unchanged
	Reserved uint16
}

// ParseRevisionDataObject decodes a 4-byte Revision Message Data Object.
func ParseRevisionDataObject(b []byte) (RevisionDataObject, error) {
	if err := checkExact("revision data object", b, DataObjectSize); err != nil {
		return RevisionDataObject{}, err
	}

	r := newFieldReader("revision data object", b)
	o := RevisionDataObject{
		RevisionMajor: uint8(r.uint(revRevisionMajor)),
		RevisionMinor: uint8(r.uint(revRevisionMinor)),
		VersionMajor:  uint8(r.uint(revVersionMajor)),
		VersionMinor:  uint8(r.uint(revVersionMinor)),
		Reserved:      uint16(r.uint(revReserved)),
	}
	if r.err != nil {
		return RevisionDataObject{}, r.err
	}
	return o, nil
}

// Encode packs the object into 4 bytes.
func (o RevisionDataObject) Encode() ([]byte, error) {
	w := newFieldWriter("revision data object", DataObjectSize)
	w.uint(revRevisionMajor, uint64(o.RevisionMajor))
	w.uint(revRevisionMinor, uint64(o.RevisionMinor))
	w.uint(revVersionMajor, uint64(o.VersionMajor))
	w.uint(revVersionMinor, uint64(o.VersionMinor))
	w.uint(revReserved, uint64(o.Reserved))
	return w.bytes()
}

func (o RevisionDataObject) String() string {
	return fmt.Sprintf("Revision %d.%d Version %d.%d",
		o.RevisionMajor, o.RevisionMinor, o.VersionMajor, o.VersionMinor)
}
