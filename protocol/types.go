package protocol

import "fmt"

// PortDataRole is the data role of the sender of a message (6.2.1.1.6).
type PortDataRole uint8

const (
	PortDataRoleUFP PortDataRole = 0
	PortDataRoleDFP PortDataRole = 1
)

func (r PortDataRole) String() string {
	switch r {
	case PortDataRoleUFP:
		return "UFP"
	case PortDataRoleDFP:
		return "DFP"
	default:
		return fmt.Sprintf("PortDataRole(%d)", uint8(r))
	}
}

// PortPowerRole is the power role of the sender of an SOP message (6.2.1.1.4).
type PortPowerRole uint8

const (
	PortPowerRoleSink   PortPowerRole = 0
	PortPowerRoleSource PortPowerRole = 1
)

func (r PortPowerRole) String() string {
	switch r {
	case PortPowerRoleSink:
		return "Sink"
	case PortPowerRoleSource:
		return "Source"
	default:
		return fmt.Sprintf("PortPowerRole(%d)", uint8(r))
	}
}

// CablePlug is the origin of an SOP'/SOP'' message (6.2.1.1.7). It occupies
// the same header bit as PortPowerRole.
type CablePlug uint8

const (
	CablePlugFromPort  CablePlug = 0
	CablePlugFromCable CablePlug = 1
)

func (c CablePlug) String() string {
	switch c {
	case CablePlugFromPort:
		return "DFP/UFP"
	case CablePlugFromCable:
		return "Cable Plug/VPD"
	default:
		return fmt.Sprintf("CablePlug(%d)", uint8(c))
	}
}

// SpecRevision is the Specification Revision header field (6.2.1.1.5).
type SpecRevision uint8

const (
	SpecRevision10       SpecRevision = 0b00
	SpecRevision20       SpecRevision = 0b01
	SpecRevision30       SpecRevision = 0b10
	SpecRevisionReserved SpecRevision = 0b11
)

func (r SpecRevision) String() string {
	switch r {
	case SpecRevision10:
		return "Revision 1.0"
	case SpecRevision20:
		return "Revision 2.0"
	case SpecRevision30:
		return "Revision 3.0"
	case SpecRevisionReserved:
		return "Reserved"
	default:
		return fmt.Sprintf("SpecRevision(%d)", uint8(r))
	}
}

// SOP identifies the Start of Packet sequence a frame was received with.
// It is supplied by the framing layer alongside the message bytes.
type SOP uint8

const (
	SOPUnknown SOP = iota
	SOPDefault
	SOPPrime
	SOPDoublePrime
	SOPPrimeDebug
	SOPDoublePrimeDebug
)

var sopNames = [...]string{
	SOPUnknown:          "Unknown",
	SOPDefault:          "SOP",
	SOPPrime:            "SOP'",
	SOPDoublePrime:      "SOP''",
	SOPPrimeDebug:       "SOP'_Debug",
	SOPDoublePrimeDebug: "SOP''_Debug",
}

func (s SOP) String() string {
	if int(s) < len(sopNames) {
		return sopNames[s]
	}
	return fmt.Sprintf("SOP(%d)", uint8(s))
}

// IsCable returns true for SOP' and SOP'' sequences (including debug variants),
// where header bit 8 is the Cable Plug flag.
func (s SOP) IsCable() bool {
	return s >= SOPPrime && s <= SOPDoublePrimeDebug
}

// ParseSOP maps a textual SOP name (as printed by String) back to its value.
func ParseSOP(s string) (SOP, error) {
	for i, name := range sopNames {
		if name == s && SOP(i) != SOPUnknown {
			return SOP(i), nil
		}
	}
	switch s {
	case "SOP1", "SOP_PRIME":
		return SOPPrime, nil
	case "SOP2", "SOP_DOUBLEPRIME":
		return SOPDoublePrime, nil
	}
	return SOPUnknown, fmt.Errorf("unknown start of packet %q: %w", s, ErrInvalidEnum)
}

// PDOType is the Power Data Object discriminant in bits 30..31 (Table 6-7).
type PDOType uint8

const (
	PDOTypeFixedSupply    PDOType = 0b00
	PDOTypeBattery        PDOType = 0b01
	PDOTypeVariableSupply PDOType = 0b10
	PDOTypeAugmented      PDOType = 0b11
)

func (t PDOType) String() string {
	switch t {
	case PDOTypeFixedSupply:
		return "Fixed Supply"
	case PDOTypeBattery:
		return "Battery"
	case PDOTypeVariableSupply:
		return "Variable Supply"
	case PDOTypeAugmented:
		return "Augmented Power Data Object"
	default:
		return fmt.Sprintf("PDOType(%d)", uint8(t))
	}
}

// PeakCurrent is the Fixed Supply PDO peak current capability (Table 6-10).
type PeakCurrent uint8

const (
	PeakCurrentIoC PeakCurrent = iota
	PeakCurrent150
	PeakCurrent200
	PeakCurrent250
)

func (p PeakCurrent) String() string {
	switch p {
	case PeakCurrentIoC:
		return "Peak current equals IOC"
	case PeakCurrent150:
		return "150% IOC overload"
	case PeakCurrent200:
		return "200% IOC overload"
	case PeakCurrent250:
		return "250% IOC overload"
	default:
		return fmt.Sprintf("PeakCurrent(%d)", uint8(p))
	}
}

// StructuredVDMVersion is the major Structured VDM version (Table 6-29).
type StructuredVDMVersion uint8

const (
	StructuredVDMVersion10 StructuredVDMVersion = 0b00
	StructuredVDMVersion20 StructuredVDMVersion = 0b01
)

func (v StructuredVDMVersion) String() string {
	switch v {
	case StructuredVDMVersion10:
		return "Version 1.0"
	case StructuredVDMVersion20:
		return "Version 2.0"
	default:
		return fmt.Sprintf("StructuredVDMVersion(%d)", uint8(v))
	}
}

func (v StructuredVDMVersion) valid() bool {
	return v == StructuredVDMVersion10 || v == StructuredVDMVersion20
}

// VDMCommandType is the Structured VDM command type (Table 6-29).
type VDMCommandType uint8

const (
	VDMCommandTypeREQ  VDMCommandType = 0b00
	VDMCommandTypeACK  VDMCommandType = 0b01
	VDMCommandTypeNAK  VDMCommandType = 0b10
	VDMCommandTypeBUSY VDMCommandType = 0b11
)

func (c VDMCommandType) String() string {
	switch c {
	case VDMCommandTypeREQ:
		return "REQ"
	case VDMCommandTypeACK:
		return "ACK"
	case VDMCommandTypeNAK:
		return "NAK"
	case VDMCommandTypeBUSY:
		return "BUSY"
	default:
		return fmt.Sprintf("VDMCommandType(%d)", uint8(c))
	}
}

// VDMCommand is the Structured VDM command (Table 6-29). Values 16..31 are
// SVID specific and are carried through unchanged.
type VDMCommand uint8

const (
	VDMCommandDiscoverIdentity VDMCommand = 1
	VDMCommandDiscoverSVIDs    VDMCommand = 2
	VDMCommandDiscoverModes    VDMCommand = 3
	VDMCommandEnterMode        VDMCommand = 4
	VDMCommandExitMode         VDMCommand = 5
	VDMCommandAttention        VDMCommand = 6
)

func (c VDMCommand) String() string {
	switch {
	case c == VDMCommandDiscoverIdentity:
		return "Discover Identity"
	case c == VDMCommandDiscoverSVIDs:
		return "Discover SVIDs"
	case c == VDMCommandDiscoverModes:
		return "Discover Modes"
	case c == VDMCommandEnterMode:
		return "Enter Mode"
	case c == VDMCommandExitMode:
		return "Exit Mode"
	case c == VDMCommandAttention:
		return "Attention"
	case c >= 16 && c <= 31:
		return fmt.Sprintf("SVID Specific (%d)", uint8(c))
	default:
		return fmt.Sprintf("Reserved (%d)", uint8(c))
	}
}

// BISTMode is the BIST Data Object mode (Table 6-27). Reserved values are
// carried through unchanged.
type BISTMode uint8

const (
	BISTModeCarrier         BISTMode = 0b0101
	BISTModeTestData        BISTMode = 0b1000
	BISTModeSharedTestEntry BISTMode = 0b1001
	BISTModeSharedTestExit  BISTMode = 0b1010
)

func (m BISTMode) String() string {
	switch m {
	case BISTModeCarrier:
		return "BIST Carrier Mode"
	case BISTModeTestData:
		return "BIST Test Data"
	case BISTModeSharedTestEntry:
		return "BIST Shared Test Mode Entry"
	case BISTModeSharedTestExit:
		return "BIST Shared Test Mode Exit"
	default:
		return fmt.Sprintf("Reserved (0b%04b)", uint8(m))
	}
}
