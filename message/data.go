package message

import (
	"fmt"
	"strings"

	"github.com/moffa90/go-usbpd/protocol"
)

// SourceCapabilities advertises the source's Power Data Objects.
type SourceCapabilities struct {
	hdr  protocol.Header
	pdos []protocol.PDO
}

// NewSourceCapabilities builds a Source_Capabilities message.
func NewSourceCapabilities(h protocol.Header, pdos []protocol.PDO) *SourceCapabilities {
	h = dataHeader(h, uint8(protocol.DataSourceCapabilities), len(pdos))
	return &SourceCapabilities{hdr: h, pdos: append([]protocol.PDO(nil), pdos...)}
}

// ParseSourceCapabilities parses a Source_Capabilities message. An
// Augmented PDO fails the parse with ErrUnsupportedVariant.
func ParseSourceCapabilities(raw []byte) (*SourceCapabilities, error) {
	h, objects, err := splitData(KindSourceCapabilities, raw)
	if err != nil {
		return nil, err
	}

	pdos := make([]protocol.PDO, len(objects))
	for i, o := range objects {
		pdo, err := protocol.ParsePDO(o[:])
		if err != nil {
			return nil, fmt.Errorf("pdo #%d: %w", i+1, err)
		}
		pdos[i] = pdo
	}
	return &SourceCapabilities{hdr: h, pdos: pdos}, nil
}

// Kind returns KindSourceCapabilities.
func (m *SourceCapabilities) Kind() Kind { return KindSourceCapabilities }

// Header returns the Message Header.
func (m *SourceCapabilities) Header() protocol.Header { return m.hdr }

// PDOs returns a copy of the advertised Power Data Objects, in object
// position order.
func (m *SourceCapabilities) PDOs() []protocol.PDO {
	return append([]protocol.PDO(nil), m.pdos...)
}

// Encode packs the message.
func (m *SourceCapabilities) Encode() ([]byte, error) {
	objects := make([]DataObject, len(m.pdos))
	for i, pdo := range m.pdos {
		o, err := encodeObject(pdo)
		if err != nil {
			return nil, fmt.Errorf("pdo #%d: %w", i+1, err)
		}
		objects[i] = o
	}
	return encodeData(m.hdr, objects)
}

func (m *SourceCapabilities) String() string {
	parts := make([]string, len(m.pdos))
	for i, pdo := range m.pdos {
		parts[i] = fmt.Sprintf("#%d %s", i+1, pdo)
	}
	return fmt.Sprintf("Source_Capabilities (id=%d) [%s]", m.hdr.MessageID, strings.Join(parts, ", "))
}

// Request carries the sink's Request Data Object.
type Request struct {
	hdr protocol.Header
	rdo protocol.RequestDataObject
}

// NewRequest builds a Request message.
func NewRequest(h protocol.Header, rdo protocol.RequestDataObject) *Request {
	return &Request{hdr: dataHeader(h, uint8(protocol.DataRequest), 1), rdo: rdo}
}

// ParseRequest parses a Request message. It must carry exactly one object.
func ParseRequest(raw []byte) (*Request, error) {
	h, objects, err := splitData(KindRequest, raw)
	if err != nil {
		return nil, err
	}
	if err := checkObjectCount("request message", objects, 1); err != nil {
		return nil, err
	}

	rdo, err := protocol.ParseRequestDataObject(objects[0][:])
	if err != nil {
		return nil, err
	}
	return &Request{hdr: h, rdo: rdo}, nil
}

// Kind returns KindRequest.
func (m *Request) Kind() Kind { return KindRequest }

// Header returns the Message Header.
func (m *Request) Header() protocol.Header { return m.hdr }

// RDO returns the Request Data Object.
func (m *Request) RDO() protocol.RequestDataObject { return m.rdo }

// Encode packs the message.
func (m *Request) Encode() ([]byte, error) {
	o, err := encodeObject(m.rdo)
	if err != nil {
		return nil, err
	}
	return encodeData(m.hdr, []DataObject{o})
}

func (m *Request) String() string {
	return fmt.Sprintf("Request (id=%d) %s", m.hdr.MessageID, m.rdo)
}

// BIST starts or ends a Built-In Self-Test. BIST Test Data messages carry
// further objects of test data after the BIST Data Object.
type BIST struct {
	hdr      protocol.Header
	bist     protocol.BISTDataObject
	testData []DataObject
}

// NewBIST builds a BIST message.
func NewBIST(h protocol.Header, bist protocol.BISTDataObject, testData []DataObject) *BIST {
	return &BIST{
		hdr:      dataHeader(h, uint8(protocol.DataBIST), 1+len(testData)),
		bist:     bist,
		testData: append([]DataObject(nil), testData...),
	}
}

// ParseBIST parses a BIST message.
func ParseBIST(raw []byte) (*BIST, error) {
	h, objects, err := splitData(KindBIST, raw)
	if err != nil {
		return nil, err
	}

	bist, err := protocol.ParseBISTDataObject(objects[0][:])
	if err != nil {
		return nil, err
	}
	return &BIST{hdr: h, bist: bist, testData: objects[1:]}, nil
}

// Kind returns KindBIST.
func (m *BIST) Kind() Kind { return KindBIST }

// Header returns the Message Header.
func (m *BIST) Header() protocol.Header { return m.hdr }

// BISTDataObject returns the first data object.
func (m *BIST) BISTDataObject() protocol.BISTDataObject { return m.bist }

// TestData returns a copy of the objects after the BIST Data Object.
func (m *BIST) TestData() []DataObject {
	return append([]DataObject(nil), m.testData...)
}

// Encode packs the message.
func (m *BIST) Encode() ([]byte, error) {
	o, err := encodeObject(m.bist)
	if err != nil {
		return nil, err
	}
	return encodeData(m.hdr, append([]DataObject{o}, m.testData...))
}

func (m *BIST) String() string {
	return fmt.Sprintf("BIST (id=%d) %s", m.hdr.MessageID, m.bist.Mode)
}

// Revision reports the sender's PD revision and version.
type Revision struct {
	hdr protocol.Header
	rev protocol.RevisionDataObject
}

// NewRevision builds a Revision message.
func NewRevision(h protocol.Header, rev protocol.RevisionDataObject) *Revision {
	return &Revision{hdr: dataHeader(h, uint8(protocol.DataRevision), 1), rev: rev}
}

// ParseRevision parses a Revision message. It must carry exactly one object.
func ParseRevision(raw []byte) (*Revision, error) {
	h, objects, err := splitData(KindRevision, raw)
	if err != nil {
		return nil, err
	}
	if err := checkObjectCount("revision message", objects, 1); err != nil {
		return nil, err
	}

	rev, err := protocol.ParseRevisionDataObject(objects[0][:])
	if err != nil {
		return nil, err
	}
	return &Revision{hdr: h, rev: rev}, nil
}

// Kind returns KindRevision.
func (m *Revision) Kind() Kind { return KindRevision }

// Header returns the Message Header.
func (m *Revision) Header() protocol.Header { return m.hdr }

// RevisionDataObject returns the Revision Message Data Object.
func (m *Revision) RevisionDataObject() protocol.RevisionDataObject { return m.rev }

// Encode packs the message.
func (m *Revision) Encode() ([]byte, error) {
	o, err := encodeObject(m.rev)
	if err != nil {
		return nil, err
	}
	return encodeData(m.hdr, []DataObject{o})
}

func (m *Revision) String() string {
	return fmt.Sprintf("Revision (id=%d) %s", m.hdr.MessageID, m.rev)
}

// VendorDefined carries a VDM Header followed by Vendor Data Objects.
type VendorDefined struct {
	hdr  protocol.Header
	vdm  protocol.VDMHeader
	vdos []DataObject
}

// NewVendorDefined builds a Vendor_Defined message.
func NewVendorDefined(h protocol.Header, vdm protocol.VDMHeader, vdos []DataObject) *VendorDefined {
	return &VendorDefined{
		hdr:  dataHeader(h, uint8(protocol.DataVendorDefined), 1+len(vdos)),
		vdm:  vdm,
		vdos: append([]DataObject(nil), vdos...),
	}
}

// ParseVendorDefined parses a Vendor_Defined message. The first object is
// decoded as a Structured or Unstructured VDM Header.
func ParseVendorDefined(raw []byte) (*VendorDefined, error) {
	h, objects, err := splitData(KindVendorDefined, raw)
	if err != nil {
		return nil, err
	}

	vdm, err := protocol.ParseVDMHeader(objects[0][:])
	if err != nil {
		return nil, err
	}
	return &VendorDefined{hdr: h, vdm: vdm, vdos: objects[1:]}, nil
}

// Kind returns KindVendorDefined.
func (m *VendorDefined) Kind() Kind { return KindVendorDefined }

// Header returns the Message Header.
func (m *VendorDefined) Header() protocol.Header { return m.hdr }

// VDMHeader returns the decoded VDM Header.
func (m *VendorDefined) VDMHeader() protocol.VDMHeader { return m.vdm }

// VDOs returns a copy of the objects after the VDM Header.
func (m *VendorDefined) VDOs() []DataObject {
	return append([]DataObject(nil), m.vdos...)
}

// Encode packs the message.
func (m *VendorDefined) Encode() ([]byte, error) {
	if m.vdm == nil {
		return nil, &protocol.LengthError{
			Structure: "vendor defined message",
			Got:       protocol.HeaderSize,
			Want:      protocol.HeaderSize + protocol.DataObjectSize,
			AtLeast:   true,
		}
	}
	o, err := encodeObject(m.vdm)
	if err != nil {
		return nil, err
	}
	return encodeData(m.hdr, append([]DataObject{o}, m.vdos...))
}

func (m *VendorDefined) String() string {
	return fmt.Sprintf("Vendor_Defined (id=%d) %s %v", m.hdr.MessageID, m.vdm, m.vdos)
}

func checkObjectCount(structure string, objects []DataObject, want int) error {
	if len(objects) != want {
		return &protocol.LengthError{
			Structure: structure,
			Got:       protocol.HeaderSize + len(objects)*protocol.DataObjectSize,
			Want:      protocol.HeaderSize + want*protocol.DataObjectSize,
		}
	}
	return nil
}
