package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/moffa90/go-usbpd/analyzer"
	"github.com/moffa90/go-usbpd/message"
)

// frameReport is the printable form of a decoded frame.
type frameReport struct {
	Index          int      `json:"index,omitempty"`
	Line           int      `json:"line,omitempty"`
	SOP            string   `json:"sop"`
	Raw            string   `json:"raw"`
	Kind           string   `json:"kind,omitempty"`
	Family         string   `json:"family,omitempty"`
	Type           string   `json:"type,omitempty"`
	MessageID      uint8    `json:"message_id"`
	NumDataObjects uint8    `json:"num_data_obj"`
	SpecRevision   string   `json:"spec_revision,omitempty"`
	PowerRole      string   `json:"power_role,omitempty"`
	DataRole       string   `json:"data_role,omitempty"`
	FromCablePlug  bool     `json:"from_cable_plug,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	Details        []string `json:"details,omitempty"`
	Payload        string   `json:"payload,omitempty"`
	Unrecognized   string   `json:"unrecognized,omitempty"`
	Fallback       string   `json:"fallback,omitempty"`
	Error          string   `json:"error,omitempty"`
}

func newReport(res analyzer.Result) frameReport {
	r := frameReport{Index: res.Index}
	if res.Record != nil {
		r.Line = res.Record.Line
		r.SOP = res.Record.SOP.String()
		r.Raw = fmt.Sprintf("% X", res.Record.Raw)
	}

	m := res.Frame.Message
	if m == nil {
		return r
	}
	h := m.Header()
	r.Kind = m.Kind().String()
	r.Family = m.Kind().Family().String()
	r.Type = h.TypeName()
	r.MessageID = h.MessageID
	r.NumDataObjects = h.NumDataObjects
	r.SpecRevision = h.SpecRevision.String()
	r.FromCablePlug = res.Frame.FromCablePlug()
	if r.FromCablePlug {
		r.PowerRole = h.CablePlug().String()
	} else {
		r.PowerRole = h.PortPowerRole.String()
		r.DataRole = h.PortDataRole.String()
	}
	r.Summary = m.String()
	r.Details = details(m)
	if res.Payload != nil {
		r.Payload = fmt.Sprintf("% X", res.Payload)
	}
	if res.Unrecognized != nil {
		r.Unrecognized = res.Unrecognized.Error()
	}
	if res.Fallback != nil {
		r.Fallback = res.Fallback.Error()
	}
	return r
}

func errorReport(err *analyzer.FrameError) frameReport {
	return frameReport{
		Index: err.Index,
		Line:  err.Line,
		SOP:   err.SOP.String(),
		Raw:   fmt.Sprintf("% X", err.Raw),
		Error: err.Err.Error(),
	}
}

// details lists the data objects of m, one line each.
func details(m message.Message) []string {
	var out []string
	switch m := m.(type) {
	case *message.SourceCapabilities:
		for i, p := range m.PDOs() {
			out = append(out, fmt.Sprintf("PDO #%d: %s", i+1, p))
		}
	case *message.Request:
		out = append(out, m.RDO().String())
	case *message.BIST:
		out = append(out, m.BISTDataObject().String())
		for i, o := range m.TestData() {
			out = append(out, fmt.Sprintf("Test data #%d: %s", i+1, o))
		}
	case *message.Revision:
		out = append(out, m.RevisionDataObject().String())
	case *message.VendorDefined:
		out = append(out, m.VDMHeader().String())
		for i, o := range m.VDOs() {
			out = append(out, fmt.Sprintf("VDO #%d: %s", i+1, o))
		}
	case *message.DataMessage:
		for i, o := range m.Objects() {
			out = append(out, fmt.Sprintf("Object #%d: %s", i+1, o))
		}
	case *message.ExtendedMessage:
		out = append(out, "Extended header: "+m.ExtendedHeader().String())
		if p := m.Payload(); len(p) > 0 {
			out = append(out, fmt.Sprintf("Chunk payload: % X", p))
		}
	}
	return out
}

// writeText prints a report in the human-readable layout.
func (r frameReport) writeText(w io.Writer) {
	var prefix string
	if r.Index > 0 {
		prefix = fmt.Sprintf("%5d ", r.Index)
	}
	if r.Error != "" {
		fmt.Fprintf(w, "%s%-11s %s\n%s  error: %s\n", prefix, r.SOP, r.Raw, strings.Repeat(" ", len(prefix)), r.Error)
		return
	}

	indent := strings.Repeat(" ", len(prefix)) + "  "
	fmt.Fprintf(w, "%s%-11s %s\n", prefix, r.SOP, r.Summary)
	role := r.PowerRole
	if r.DataRole != "" {
		role += "/" + r.DataRole
	}
	fmt.Fprintf(w, "%sheader: %s id=%d objs=%d %s %s\n", indent, r.Type, r.MessageID, r.NumDataObjects, r.SpecRevision, role)
	for _, d := range r.Details {
		fmt.Fprintf(w, "%s%s\n", indent, d)
	}
	if r.Payload != "" {
		fmt.Fprintf(w, "%spayload: %s\n", indent, r.Payload)
	}
	if r.Unrecognized != "" {
		fmt.Fprintf(w, "%swarning: %s\n", indent, r.Unrecognized)
	}
	if r.Fallback != "" {
		fmt.Fprintf(w, "%sdecoded generically: %s\n", indent, r.Fallback)
	}
}
