package protocol

// SpecificationVersion is the USB Power Delivery specification revision implemented by this package.
const SpecificationVersion = "3.1"

// Structure sizes in bytes.
const (
	// HeaderSize is the size of the Message Header
	HeaderSize = 2

	// ExtendedHeaderSize is the size of the Extended Message Header
	ExtendedHeaderSize = 2

	// DataObjectSize is the size of every data object
	DataObjectSize = 4

	// MaxDataObjects is the largest value the Number of Data Objects field can hold
	MaxDataObjects = 7

	// MaxMessageSize is a header plus MaxDataObjects data objects
	MaxMessageSize = HeaderSize + MaxDataObjects*DataObjectSize

	// MaxExtendedChunkSize is the payload carried by one chunk of a chunked extended message
	MaxExtendedChunkSize = 26

	// MaxExtendedDataSize is the largest Data Size an extended message may declare
	MaxExtendedDataSize = 260
)

// Unit scales of the power and current fields.
const (
	// VoltageUnitMillivolts is the resolution of PDO voltage fields
	VoltageUnitMillivolts = 50

	// CurrentUnitMilliamps is the resolution of PDO and RDO current fields
	CurrentUnitMilliamps = 10

	// PowerUnitMilliwatts is the resolution of Battery PDO power fields
	PowerUnitMilliwatts = 250
)

// Message Header layout.
var (
	hdrMessageType    = field{"message type", 0, 5}
	hdrPortDataRole   = field{"port data role", 5, 1}
	hdrSpecRevision   = field{"specification revision", 6, 2}
	hdrPortPowerRole  = field{"port power role", 8, 1}
	hdrMessageID      = field{"message id", 9, 3}
	hdrNumDataObjects = field{"number of data objects", 12, 3}
	hdrExtended       = field{"extended", 15, 1}
)

// Extended Message Header layout.
var (
	extDataSize     = field{"data size", 0, 9}
	extRequestChunk = field{"request chunk", 10, 1}
	extChunkNumber  = field{"chunk number", 11, 4}
	extChunked      = field{"chunked", 15, 1}
)

// Power Data Object layout. The type field is shared by every variant.
var (
	pdoType = field{"pdo type", 30, 2}

	fixedDualRolePower      = field{"dual-role power", 29, 1}
	fixedUSBSuspend         = field{"usb suspend supported", 28, 1}
	fixedUnconstrainedPower = field{"unconstrained power", 27, 1}
	fixedUSBCommunications  = field{"usb communications capable", 26, 1}
	fixedDualRoleData       = field{"dual-role data", 25, 1}
	fixedUnchunkedExtended  = field{"unchunked extended messages supported", 24, 1}
	fixedEPRCapable         = field{"epr mode capable", 23, 1}
	fixedReserved           = field{"reserved", 22, 1}
	fixedPeakCurrent        = field{"peak current", 20, 2}
	fixedVoltage            = field{"voltage", 10, 10}
	fixedMaxCurrent         = field{"maximum current", 0, 10}
	variableMaxVoltage      = field{"maximum voltage", 20, 10}
	variableMinVoltage      = field{"minimum voltage", 10, 10}
	variableMaxCurrent      = field{"maximum current", 0, 10}
	batteryMaxVoltage       = field{"maximum voltage", 20, 10}
	batteryMinVoltage       = field{"minimum voltage", 10, 10}
	batteryMaxPower         = field{"maximum power", 0, 10}
)

// Request Data Object layout.
var (
	rdoObjectPosition      = field{"object position", 28, 4}
	rdoGiveBack            = field{"giveback", 27, 1}
	rdoCapabilityMismatch  = field{"capability mismatch", 26, 1}
	rdoUSBCommunications   = field{"usb communications capable", 25, 1}
	rdoNoUSBSuspend        = field{"no usb suspend", 24, 1}
	rdoUnchunkedExtended   = field{"unchunked extended messages supported", 23, 1}
	rdoEPRCapable          = field{"epr mode capable", 22, 1}
	rdoReserved            = field{"reserved", 20, 2}
	rdoOperatingCurrent    = field{"operating current", 10, 10}
	rdoMaxOperatingCurrent = field{"maximum operating current", 0, 10}
)

// VDM Header layout.
var (
	vdmVendorID       = field{"vendor id", 16, 16}
	vdmType           = field{"vdm type", 15, 1}
	vdmVersionMajor   = field{"structured vdm version", 13, 2}
	vdmVersionMinor   = field{"structured vdm version minor", 11, 2}
	vdmObjectPosition = field{"object position", 8, 3}
	vdmCommandType    = field{"command type", 6, 2}
	vdmReserved       = field{"reserved", 5, 1}
	vdmCommand        = field{"command", 0, 5}
	vdmVendorUse      = field{"vendor use", 0, 15}
)

// Revision Message Data Object layout.
var (
	revRevisionMajor = field{"revision major", 28, 4}
	revRevisionMinor = field{"revision minor", 24, 4}
	revVersionMajor  = field{"version major", 20, 4}
	revVersionMinor  = field{"version minor", 16, 4}
	revReserved      = field{"reserved", 0, 16}
)

// BIST Data Object layout.
var (
	bistMode     = field{"bist mode", 28, 4}
	bistReserved = field{"reserved", 0, 28}
)
