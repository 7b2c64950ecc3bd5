package protocol

import "fmt"

// VDMHeader is the first data object of a Vendor_Defined message. The
// concrete type is StructuredVDMHeader or UnstructuredVDMHeader, selected by
// the VDM Type bit (bit 15).
type VDMHeader interface {
	// VendorID returns the SVID or VID in bits 16..31
	VendorID() uint16

	// Structured reports the VDM Type bit
	Structured() bool

	// Encode packs the header into 4 bytes
	Encode() ([]byte, error)

	String() string
}

// PeekVDMType reads only the VDM Type bit of a 4-byte VDM Header.
func PeekVDMType(b []byte) (bool, error) {
	if err := checkExact("vdm header", b, DataObjectSize); err != nil {
		return false, err
	}
	r := newFieldReader("vdm header", b)
	structured := r.flag(vdmType)
	return structured, r.err
}

// ParseVDMHeader decodes a 4-byte VDM Header into its concrete variant.
func ParseVDMHeader(b []byte) (VDMHeader, error) {
	structured, err := PeekVDMType(b)
	if err != nil {
		return nil, err
	}
	if structured {
		return ParseStructuredVDMHeader(b)
	}
	return ParseUnstructuredVDMHeader(b)
}

// StructuredVDMHeader is a VDM Header with the VDM Type bit set (6.4.4.2).
type StructuredVDMHeader struct {
	// SVID is the Standard or Vendor ID
	SVID uint16

	Version        StructuredVDMVersion
	VersionMinor   uint8
	ObjectPosition uint8
	CommandType    VDMCommandType
	Command        VDMCommand

	// Reserved holds bit 5 so the header re-encodes unchanged
	Reserved uint8
}

// ParseStructuredVDMHeader decodes a Structured VDM Header. A Structured VDM
// Version outside 1.0 and 2.0 fails with ErrInvalidEnum.
func ParseStructuredVDMHeader(b []byte) (StructuredVDMHeader, error) {
	structured, err := PeekVDMType(b)
	if err != nil {
		return StructuredVDMHeader{}, err
	}
	if !structured {
		return StructuredVDMHeader{}, &UnsupportedVariantError{
			Structure: "structured vdm header",
			Name:      "Unstructured VDM",
		}
	}

	r := newFieldReader("structured vdm header", b)
	h := StructuredVDMHeader{
		SVID:           uint16(r.uint(vdmVendorID)),
		Version:        StructuredVDMVersion(r.uint(vdmVersionMajor)),
		VersionMinor:   uint8(r.uint(vdmVersionMinor)),
		ObjectPosition: uint8(r.uint(vdmObjectPosition)),
		CommandType:    VDMCommandType(r.uint(vdmCommandType)),
		Command:        VDMCommand(r.uint(vdmCommand)),
		Reserved:       uint8(r.uint(vdmReserved)),
	}
	if r.err != nil {
		return StructuredVDMHeader{}, r.err
	}
	if !h.Version.valid() {
		return StructuredVDMHeader{}, &FieldError{
			Structure: "structured vdm header",
			Field:     vdmVersionMajor.name,
			Err:       &InvalidEnumError{Field: vdmVersionMajor.name, Value: uint32(h.Version)},
		}
	}
	return h, nil
}

// VendorID returns the SVID.
func (h StructuredVDMHeader) VendorID() uint16 { return h.SVID }

// Structured returns true.
func (h StructuredVDMHeader) Structured() bool { return true }

// Encode packs the header into 4 bytes.
func (h StructuredVDMHeader) Encode() ([]byte, error) {
	w := newFieldWriter("structured vdm header", DataObjectSize)
	w.uint(vdmVendorID, uint64(h.SVID))
	w.flag(vdmType, true)
	w.enum(vdmVersionMajor, uint64(h.Version), uint64(StructuredVDMVersion20))
	w.uint(vdmVersionMinor, uint64(h.VersionMinor))
	w.uint(vdmObjectPosition, uint64(h.ObjectPosition))
	w.enum(vdmCommandType, uint64(h.CommandType), uint64(VDMCommandTypeBUSY))
	w.uint(vdmReserved, uint64(h.Reserved))
	w.uint(vdmCommand, uint64(h.Command))
	return w.bytes()
}

func (h StructuredVDMHeader) String() string {
	return fmt.Sprintf("SVDM svid=0x%04X %s pos=%d %s %s",
		h.SVID, h.Version, h.ObjectPosition, h.CommandType, h.Command)
}

// UnstructuredVDMHeader is a VDM Header with the VDM Type bit clear (6.4.4.1).
type UnstructuredVDMHeader struct {
	VID uint16

	// VendorUse is the vendor-defined content of bits 0..14
	VendorUse uint16
}

// ParseUnstructuredVDMHeader decodes an Unstructured VDM Header.
func ParseUnstructuredVDMHeader(b []byte) (UnstructuredVDMHeader, error) {
	structured, err := PeekVDMType(b)
	if err != nil {
		return UnstructuredVDMHeader{}, err
	}
	if structured {
		return UnstructuredVDMHeader{}, &UnsupportedVariantError{
			Structure:    "unstructured vdm header",
			Discriminant: 1,
			Name:         "Structured VDM",
		}
	}

	r := newFieldReader("unstructured vdm header", b)
	h := UnstructuredVDMHeader{
		VID:       uint16(r.uint(vdmVendorID)),
		VendorUse: uint16(r.uint(vdmVendorUse)),
	}
	if r.err != nil {
		return UnstructuredVDMHeader{}, r.err
	}
	return h, nil
}

// VendorID returns the VID.
func (h UnstructuredVDMHeader) VendorID() uint16 { return h.VID }

// Structured returns false.
func (h UnstructuredVDMHeader) Structured() bool { return false }

// Encode packs the header into 4 bytes.
func (h UnstructuredVDMHeader) Encode() ([]byte, error) {
	w := newFieldWriter("unstructured vdm header", DataObjectSize)
	w.uint(vdmVendorID, uint64(h.VID))
	w.flag(vdmType, false)
	w.uint(vdmVendorUse, uint64(h.VendorUse))
	return w.bytes()
}

func (h UnstructuredVDMHeader) String() string {
	return fmt.Sprintf("UVDM vid=0x%04X vendor=0x%04X", h.VID, h.VendorUse)
}
