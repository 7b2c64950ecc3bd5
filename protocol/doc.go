// Package protocol implements the USB Power Delivery message header and data
// object codecs.
//
// This package parses and encodes the fixed-size building blocks of a PD
// message according to the USB Power Delivery Specification Revision 3.1.
// Whole messages are assembled from these blocks by package message.
//
// # Wire Layout
//
// Every structure is a little-endian bit-packed record. Bit 0 is the
// least-significant bit of the first byte on the wire:
//
//	Message Header (2 bytes):
//	  [15]     Extended
//	  [14..12] Number of Data Objects
//	  [11..9]  MessageID
//	  [8]      Port Power Role (SOP) / Cable Plug (SOP'/SOP'')
//	  [7..6]   Specification Revision
//	  [5]      Port Data Role
//	  [4..0]   Message Type
//
// Data objects are 32-bit records. Power Data Objects and VDM Headers are
// tagged unions: the discriminant bits are peeked first, then the matching
// concrete decoder parses the whole object.
//
// # Parsers
//
//	hdr, err := protocol.ParseHeader(raw[0:2])
//	pdo, err := protocol.ParsePDO(raw[2:6])
//	vdm, err := protocol.ParseVDMHeader(raw[2:6])
//
// # Encoders
//
// Every parsed value encodes back to the identical bytes:
//
//	b, err := hdr.Encode()
//
// # Error Handling
//
// Errors are typed values. Match kinds with errors.Is and inspect details
// with errors.As:
//
//	if errors.Is(err, protocol.ErrUnsupportedVariant) {
//	    // e.g. an Augmented Power Data Object
//	}
//	var lerr *protocol.LengthError
//	if errors.As(err, &lerr) {
//	    fmt.Println(lerr.Structure, lerr.Got, lerr.Want)
//	}
package protocol
