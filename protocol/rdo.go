package protocol

import "fmt"

// RequestDataObject is the Fixed/Variable Supply form of the Request Data
// Object a sink sends to select one of the source's PDOs (6.4.2).
type RequestDataObject struct {
	// ObjectPosition is the 1-based index of the requested PDO
	ObjectPosition uint8

	GiveBack                  bool
	CapabilityMismatch        bool
	USBCommunicationsCapable  bool
	NoUSBSuspend              bool
	UnchunkedExtendedMessages bool
	EPRCapable                bool

	// Reserved holds bits 20..21 so the object re-encodes unchanged
	Reserved uint8

	// OperatingCurrent in 10 mA units
	OperatingCurrent uint16

	// MaxOperatingCurrent in 10 mA units. With GiveBack set this is the
	// minimum operating current instead.
	MaxOperatingCurrent uint16
}

// ParseRequestDataObject decodes a 4-byte Request Data Object.
func ParseRequestDataObject(b []byte) (RequestDataObject, error) {
	if err := checkExact("request data object", b, DataObjectSize); err != nil {
		return RequestDataObject{}, err
	}

	r := newFieldReader("request data object", b)
	o := RequestDataObject{
		ObjectPosition:            uint8(r.uint(rdoObjectPosition)),
		GiveBack:                  r.flag(rdoGiveBack),
		CapabilityMismatch:        r.flag(rdoCapabilityMismatch),
		USBCommunicationsCapable:  r.flag(rdoUSBCommunications),
		NoUSBSuspend:              r.flag(rdoNoUSBSuspend),
		UnchunkedExtendedMessages: r.flag(rdoUnchunkedExtended),
		EPRCapable:                r.flag(rdoEPRCapable),
		Reserved:                  uint8(r.uint(rdoReserved)),
		OperatingCurrent:          uint16(r.uint(rdoOperatingCurrent)),
		MaxOperatingCurrent:       uint16(r.uint(rdoMaxOperatingCurrent)),
	}
	if r.err != nil {
		return RequestDataObject{}, r.err
	}
	return o, nil
}

// Encode packs the RDO into 4 bytes.
func (o RequestDataObject) Encode() ([]byte, error) {
	w := newFieldWriter("request data object", DataObjectSize)
	w.uint(rdoObjectPosition, uint64(o.ObjectPosition))
	w.flag(rdoGiveBack, o.GiveBack)
	w.flag(rdoCapabilityMismatch, o.CapabilityMismatch)
	w.flag(rdoUSBCommunications, o.USBCommunicationsCapable)
	w.flag(rdoNoUSBSuspend, o.NoUSBSuspend)
	w.flag(rdoUnchunkedExtended, o.UnchunkedExtendedMessages)
	w.flag(rdoEPRCapable, o.EPRCapable)
	w.uint(rdoReserved, uint64(o.Reserved))
	w.uint(rdoOperatingCurrent, uint64(o.OperatingCurrent))
	w.uint(rdoMaxOperatingCurrent, uint64(o.MaxOperatingCurrent))
	return w.bytes()
}

// OperatingCurrentMilliamps returns the operating current in milliamps.
func (o RequestDataObject) OperatingCurrentMilliamps() int {
	return int(o.OperatingCurrent) * CurrentUnitMilliamps
}

// MaxOperatingCurrentMilliamps returns the maximum (or, with GiveBack,
// minimum) operating current in milliamps.
func (o RequestDataObject) MaxOperatingCurrentMilliamps() int {
	return int(o.MaxOperatingCurrent) * CurrentUnitMilliamps
}

func (o RequestDataObject) String() string {
	s := fmt.Sprintf("RDO pos=%d op=%dmA max=%dmA",
		o.ObjectPosition, o.OperatingCurrentMilliamps(), o.MaxOperatingCurrentMilliamps())
	if o.CapabilityMismatch {
		s += " mismatch"
	}
	if o.GiveBack {
		s += " giveback"
	}
	return s
}
