package message

import (
	"fmt"

	"github.com/moffa90/go-usbpd/protocol"
)

// Kind tags the concrete variant a message was parsed as.
type Kind uint8

const (
	KindUnknown Kind = iota

	// KindControl is a Control Message with an unrecognized type code
	KindControl
	KindGoodCRC
	KindGotoMin
	KindAccept
	KindReject
	KindPing
	KindPSRDY
	KindGetSourceCap
	KindGetSinkCap
	KindDRSwap
	KindPRSwap
	KindVCONNSwap
	KindWait
	KindSoftReset
	KindDataReset
	KindDataResetComplete
	KindNotSupported
	KindGetSourceCapExtended
	KindGetStatus
	KindFRSwap
	KindGetPPSStatus
	KindGetCountryCodes
	KindGetSinkCapExtended
	KindGetSourceInfo
	KindGetRevision

	// KindData is a Data Message with an unrecognized type code
	KindData
	KindSourceCapabilities
	KindRequest
	KindBIST
	KindSinkCapabilities
	KindBatteryStatus
	KindAlert
	KindGetCountryInfo
	KindEnterUSB
	KindEPRRequest
	KindEPRMode
	KindSourceInfo
	KindRevision
	KindVendorDefined

	// KindExtended is any Extended Message
	KindExtended
)

// Family groups kinds by header context.
type Family uint8

const (
	FamilyUnknown Family = iota
	FamilyControl
	FamilyData
	FamilyExtended
)

func (f Family) String() string {
	switch f {
	case FamilyControl:
		return "control"
	case FamilyData:
		return "data"
	case FamilyExtended:
		return "extended"
	default:
		return "unknown"
	}
}

// controlKinds maps Control Message type codes to kinds.
var controlKinds = map[protocol.ControlMessageType]Kind{
	protocol.ControlGoodCRC:              KindGoodCRC,
	protocol.ControlGotoMin:              KindGotoMin,
	protocol.ControlAccept:               KindAccept,
	protocol.ControlReject:               KindReject,
	protocol.ControlPing:                 KindPing,
	protocol.ControlPSRDY:                KindPSRDY,
	protocol.ControlGetSourceCap:         KindGetSourceCap,
	protocol.ControlGetSinkCap:           KindGetSinkCap,
	protocol.ControlDRSwap:               KindDRSwap,
	protocol.ControlPRSwap:               KindPRSwap,
	protocol.ControlVCONNSwap:            KindVCONNSwap,
	protocol.ControlWait:                 KindWait,
	protocol.ControlSoftReset:            KindSoftReset,
	protocol.ControlDataReset:            KindDataReset,
	protocol.ControlDataResetComplete:    KindDataResetComplete,
	protocol.ControlNotSupported:         KindNotSupported,
	protocol.ControlGetSourceCapExtended: KindGetSourceCapExtended,
	protocol.ControlGetStatus:            KindGetStatus,
	protocol.ControlFRSwap:               KindFRSwap,
	protocol.ControlGetPPSStatus:         KindGetPPSStatus,
	protocol.ControlGetCountryCodes:      KindGetCountryCodes,
	protocol.ControlGetSinkCapExtended:   KindGetSinkCapExtended,
	protocol.ControlGetSourceInfo:        KindGetSourceInfo,
	protocol.ControlGetRevision:          KindGetRevision,
}

// dataKinds maps Data Message type codes to kinds.
var dataKinds = map[protocol.DataMessageType]Kind{
	protocol.DataSourceCapabilities: KindSourceCapabilities,
	protocol.DataRequest:            KindRequest,
	protocol.DataBIST:               KindBIST,
	protocol.DataSinkCapabilities:   KindSinkCapabilities,
	protocol.DataBatteryStatus:      KindBatteryStatus,
	protocol.DataAlert:              KindAlert,
	protocol.DataGetCountryInfo:     KindGetCountryInfo,
	protocol.DataEnterUSB:           KindEnterUSB,
	protocol.DataEPRRequest:         KindEPRRequest,
	protocol.DataEPRMode:            KindEPRMode,
	protocol.DataSourceInfo:         KindSourceInfo,
	protocol.DataRevision:           KindRevision,
	protocol.DataVendorDefined:      KindVendorDefined,
}

// kindInfo is the reverse of the tables above.
type kindInfo struct {
	family Family
	code   uint8
	name   string
}

var kinds = map[Kind]kindInfo{
	KindControl:  {family: FamilyControl, name: "Control"},
	KindData:     {family: FamilyData, name: "Data"},
	KindExtended: {family: FamilyExtended, name: "Extended"},
}

func init() {
	for code, k := range controlKinds {
		kinds[k] = kindInfo{family: FamilyControl, code: uint8(code), name: code.String()}
	}
	for code, k := range dataKinds {
		kinds[k] = kindInfo{family: FamilyData, code: uint8(code), name: code.String()}
	}
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Family returns the header context the kind belongs to.
func (k Kind) Family() Family {
	return kinds[k].family
}

// Generic reports whether k is one of the fallback kinds.
func (k Kind) Generic() bool {
	return k == KindControl || k == KindData || k == KindExtended
}

// Code returns the message type code of a specific kind. Generic kinds
// return false.
func (k Kind) Code() (uint8, bool) {
	info, ok := kinds[k]
	if !ok || k.Generic() {
		return 0, false
	}
	return info.code, true
}

// KindOf applies the classification rules to a parsed header.
func KindOf(h protocol.Header) Kind {
	switch {
	case h.Extended:
		return KindExtended
	case h.NumDataObjects > 0:
		if k, ok := dataKinds[protocol.DataMessageType(h.MessageType)]; ok {
			return k
		}
		return KindData
	default:
		if k, ok := controlKinds[protocol.ControlMessageType(h.MessageType)]; ok {
			return k
		}
		return KindControl
	}
}

// Unrecognized returns an UnrecognizedTypeError when h carries a type code
// with no mapped kind, and nil otherwise.
func Unrecognized(h protocol.Header) error {
	k := KindOf(h)
	switch {
	case k == KindControl:
		return &protocol.UnrecognizedTypeError{Code: h.MessageType, Context: FamilyControl.String()}
	case k == KindData:
		return &protocol.UnrecognizedTypeError{Code: h.MessageType, Context: FamilyData.String()}
	case k == KindExtended && !protocol.ExtendedMessageType(h.MessageType).Known():
		return &protocol.UnrecognizedTypeError{Code: h.MessageType, Context: FamilyExtended.String()}
	}
	return nil
}
