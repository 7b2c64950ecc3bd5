package protocol

import "fmt"

// ControlMessageType is the Message Type of a message with no data objects (Table 6-5).
type ControlMessageType uint8

const (
	ControlGoodCRC              ControlMessageType = 0b00001
	ControlGotoMin              ControlMessageType = 0b00010
	ControlAccept               ControlMessageType = 0b00011
	ControlReject               ControlMessageType = 0b00100
	ControlPing                 ControlMessageType = 0b00101
	ControlPSRDY                ControlMessageType = 0b00110
	ControlGetSourceCap         ControlMessageType = 0b00111
	ControlGetSinkCap           ControlMessageType = 0b01000
	ControlDRSwap               ControlMessageType = 0b01001
	ControlPRSwap               ControlMessageType = 0b01010
	ControlVCONNSwap            ControlMessageType = 0b01011
	ControlWait                 ControlMessageType = 0b01100
	ControlSoftReset            ControlMessageType = 0b01101
	ControlDataReset            ControlMessageType = 0b01110
	ControlDataResetComplete    ControlMessageType = 0b01111
	ControlNotSupported         ControlMessageType = 0b10000
	ControlGetSourceCapExtended ControlMessageType = 0b10001
	ControlGetStatus            ControlMessageType = 0b10010
	ControlFRSwap               ControlMessageType = 0b10011
	ControlGetPPSStatus         ControlMessageType = 0b10100
	ControlGetCountryCodes      ControlMessageType = 0b10101
	ControlGetSinkCapExtended   ControlMessageType = 0b10110
	ControlGetSourceInfo        ControlMessageType = 0b10111
	ControlGetRevision          ControlMessageType = 0b11000
)

var controlTypeNames = map[ControlMessageType]string{
	ControlGoodCRC:              "GoodCRC",
	ControlGotoMin:              "GotoMin",
	ControlAccept:               "Accept",
	ControlReject:               "Reject",
	ControlPing:                 "Ping",
	ControlPSRDY:                "PS_RDY",
	ControlGetSourceCap:         "Get_Source_Cap",
	ControlGetSinkCap:           "Get_Sink_Cap",
	ControlDRSwap:               "DR_Swap",
	ControlPRSwap:               "PR_Swap",
	ControlVCONNSwap:            "VCONN_Swap",
	ControlWait:                 "Wait",
	ControlSoftReset:            "Soft_Reset",
	ControlDataReset:            "Data_Reset",
	ControlDataResetComplete:    "Data_Reset_Complete",
	ControlNotSupported:         "Not_Supported",
	ControlGetSourceCapExtended: "Get_Source_Cap_Extended",
	ControlGetStatus:            "Get_Status",
	ControlFRSwap:               "FR_Swap",
	ControlGetPPSStatus:         "Get_PPS_Status",
	ControlGetCountryCodes:      "Get_Country_Codes",
	ControlGetSinkCapExtended:   "Get_Sink_Cap_Extended",
	ControlGetSourceInfo:        "Get_Source_Info",
	ControlGetRevision:          "Get_Revision",
}

func (t ControlMessageType) String() string {
	if name, ok := controlTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Reserved control message (0b%05b)", uint8(t))
}

// Known reports whether t has a defined meaning.
func (t ControlMessageType) Known() bool {
	_, ok := controlTypeNames[t]
	return ok
}

// DataMessageType is the Message Type of a message with data objects (Table 6-6).
type DataMessageType uint8

const (
	DataSourceCapabilities DataMessageType = 0b00001
	DataRequest            DataMessageType = 0b00010
	DataBIST               DataMessageType = 0b00011
	DataSinkCapabilities   DataMessageType = 0b00100
	DataBatteryStatus      DataMessageType = 0b00101
	DataAlert              DataMessageType = 0b00110
	DataGetCountryInfo     DataMessageType = 0b00111
	DataEnterUSB           DataMessageType = 0b01000
	DataEPRRequest         DataMessageType = 0b01001
	DataEPRMode            DataMessageType = 0b01010
	DataSourceInfo         DataMessageType = 0b01011
	DataRevision           DataMessageType = 0b01100
	DataVendorDefined      DataMessageType = 0b01111
)

var dataTypeNames = map[DataMessageType]string{
	DataSourceCapabilities: "Source_Capabilities",
	DataRequest:            "Request",
	DataBIST:               "BIST",
	DataSinkCapabilities:   "Sink_Capabilities",
	DataBatteryStatus:      "Battery_Status",
	DataAlert:              "Alert",
	DataGetCountryInfo:     "Get_Country_Info",
	DataEnterUSB:           "Enter_USB",
	DataEPRRequest:         "EPR_Request",
	DataEPRMode:            "EPR_Mode",
	DataSourceInfo:         "Source_Info",
	DataRevision:           "Revision",
	DataVendorDefined:      "Vendor_Defined",
}

func (t DataMessageType) String() string {
	if name, ok := dataTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Reserved data message (0b%05b)", uint8(t))
}

// Known reports whether t has a defined meaning.
func (t DataMessageType) Known() bool {
	_, ok := dataTypeNames[t]
	return ok
}

// ExtendedMessageType is the Message Type of a message with the Extended bit set (Table 6-53).
type ExtendedMessageType uint8

const (
	ExtendedSourceCapabilitiesExtended ExtendedMessageType = 0b00001
	ExtendedStatus                     ExtendedMessageType = 0b00010
	ExtendedGetBatteryCap              ExtendedMessageType = 0b00011
	ExtendedGetBatteryStatus           ExtendedMessageType = 0b00100
	ExtendedBatteryCapabilities        ExtendedMessageType = 0b00101
	ExtendedGetManufacturerInfo        ExtendedMessageType = 0b00110
	ExtendedManufacturerInfo           ExtendedMessageType = 0b00111
	ExtendedSecurityRequest            ExtendedMessageType = 0b01000
	ExtendedSecurityResponse           ExtendedMessageType = 0b01001
	ExtendedFirmwareUpdateRequest      ExtendedMessageType = 0b01010
	ExtendedFirmwareUpdateResponse     ExtendedMessageType = 0b01011
	ExtendedPPSStatus                  ExtendedMessageType = 0b01100
	ExtendedCountryInfo                ExtendedMessageType = 0b01101
	ExtendedCountryCodes               ExtendedMessageType = 0b01110
	ExtendedSinkCapabilitiesExtended   ExtendedMessageType = 0b01111
	ExtendedExtendedControl            ExtendedMessageType = 0b10000
	ExtendedEPRSourceCapabilities      ExtendedMessageType = 0b10001
	ExtendedEPRSinkCapabilities        ExtendedMessageType = 0b10010
	ExtendedVendorDefinedExtended      ExtendedMessageType = 0b11110
)

var extendedTypeNames = map[ExtendedMessageType]string{
	ExtendedSourceCapabilitiesExtended: "Source_Capabilities_Extended",
	ExtendedStatus:                     "Status",
	ExtendedGetBatteryCap:              "Get_Battery_Cap",
	ExtendedGetBatteryStatus:           "Get_Battery_Status",
	ExtendedBatteryCapabilities:        "Battery_Capabilities",
	ExtendedGetManufacturerInfo:        "Get_Manufacturer_Info",
	ExtendedManufacturerInfo:           "Manufacturer_Info",
	ExtendedSecurityRequest:            "Security_Request",
	ExtendedSecurityResponse:           "Security_Response",
	ExtendedFirmwareUpdateRequest:      "Firmware_Update_Request",
	ExtendedFirmwareUpdateResponse:     "Firmware_Update_Response",
	ExtendedPPSStatus:                  "PPS_Status",
	ExtendedCountryInfo:                "Country_Info",
	ExtendedCountryCodes:               "Country_Codes",
	ExtendedSinkCapabilitiesExtended:   "Sink_Capabilities_Extended",
	ExtendedExtendedControl:            "Extended_Control",
	ExtendedEPRSourceCapabilities:      "EPR_Source_Capabilities",
	ExtendedEPRSinkCapabilities:        "EPR_Sink_Capabilities",
	ExtendedVendorDefinedExtended:      "Vendor_Defined_Extended",
}

func (t ExtendedMessageType) String() string {
	if name, ok := extendedTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Reserved extended message (0b%05b)", uint8(t))
}

// Known reports whether t has a defined meaning.
func (t ExtendedMessageType) Known() bool {
	_, ok := extendedTypeNames[t]
	return ok
}
