// Package message classifies and parses complete USB Power Delivery messages.
//
// Parsing is a visible two-step pipeline. Classify peeks the 2-byte header and
// decides on the tuple (extended, number of data objects > 0, message type):
//
//	kind, hdr, err := message.Classify(raw)
//
// ParseKind then runs the concrete parser selected by kind over the same
// buffer:
//
//	msg, err := message.ParseKind(kind, raw)
//
// Parse composes the two steps. Unrecognized type codes never fail; they
// produce a generic ControlMessage or DataMessage tagged KindControl or
// KindData.
//
// # Variants
//
// Every Message is one of:
//
//	*ControlMessage       header only
//	*DataMessage          header and raw data objects
//	*SourceCapabilities   header and decoded PDOs
//	*Request              header and a Request Data Object
//	*BIST                 header, BIST Data Object and test data
//	*Revision             header and a Revision Data Object
//	*VendorDefined        header, VDM Header and VDOs
//	*ExtendedMessage      header, extended header and chunk payload
//
// Use a type switch on the returned Message, or Kind for a comparable tag:
//
//	switch m := msg.(type) {
//	case *message.SourceCapabilities:
//	    for _, pdo := range m.PDOs() {
//	        fmt.Println(pdo)
//	    }
//	}
//
// # Encoding
//
// Encode reproduces the wire bytes. Data messages re-derive the Number of
// Data Objects from their object list; chunked extended messages re-derive it
// from the payload length and pad to a 4-byte boundary.
package message
