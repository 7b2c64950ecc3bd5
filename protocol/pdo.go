package protocol

import (
	"encoding/binary"
	"fmt"
)

// PDO is a decoded Power Data Object. The concrete type is one of
// FixedSupplyPDO, VariableSupplyPDO or BatteryPDO.
type PDO interface {
	// Type returns the discriminant in bits 30..31
	Type() PDOType

	// Encode packs the object into 4 bytes
	Encode() ([]byte, error)

	String() string
}

// PeekPDOType reads only the discriminant of a 4-byte Power Data Object.
func PeekPDOType(b []byte) (PDOType, error) {
	if err := checkExact("power data object", b, DataObjectSize); err != nil {
		return 0, err
	}
	r := newFieldReader("power data object", b)
	t := PDOType(r.uint(pdoType))
	return t, r.err
}

// ParsePDO decodes a 4-byte Power Data Object into its concrete variant.
// Augmented Power Data Objects return an error wrapping ErrUnsupportedVariant.
func ParsePDO(b []byte) (PDO, error) {
	t, err := PeekPDOType(b)
	if err != nil {
		return nil, err
	}

	switch t {
	case PDOTypeFixedSupply:
		return ParseFixedSupplyPDO(b)
	case PDOTypeVariableSupply:
		return ParseVariableSupplyPDO(b)
	case PDOTypeBattery:
		return ParseBatteryPDO(b)
	default:
		return nil, &UnsupportedVariantError{
			Structure:    "power data object",
			Discriminant: uint32(t),
			Name:         t.String(),
		}
	}
}

// FixedSupplyPDO advertises a fixed voltage supply (6.4.1.2.2).
type FixedSupplyPDO struct {
	DualRolePower             bool
	USBSuspendSupported       bool
	UnconstrainedPower        bool
	USBCommunicationsCapable  bool
	DualRoleData              bool
	UnchunkedExtendedMessages bool
	EPRCapable                bool
	PeakCurrent               PeakCurrent

	// Reserved holds bit 22 so the object re-encodes unchanged
	Reserved uint8

	// Voltage in 50 mV units
	Voltage uint16

	// MaxCurrent in 10 mA units
	MaxCurrent uint16
}

// ParseFixedSupplyPDO decodes a Fixed Supply PDO. It fails with
// ErrUnsupportedVariant if the discriminant is not Fixed Supply.
func ParseFixedSupplyPDO(b []byte) (FixedSupplyPDO, error) {
	if err := expectPDOType(b, PDOTypeFixedSupply); err != nil {
		return FixedSupplyPDO{}, err
	}

	r := newFieldReader("fixed supply pdo", b)
	p := FixedSupplyPDO{
		DualRolePower:             r.flag(fixedDualRolePower),
		USBSuspendSupported:       r.flag(fixedUSBSuspend),
		UnconstrainedPower:        r.flag(fixedUnconstrainedPower),
		USBCommunicationsCapable:  r.flag(fixedUSBCommunications),
		DualRoleData:              r.flag(fixedDualRoleData),
		UnchunkedExtendedMessages: r.flag(fixedUnchunkedExtended),
		EPRCapable:                r.flag(fixedEPRCapable),
		Reserved:                  uint8(r.uint(fixedReserved)),
		PeakCurrent:               PeakCurrent(r.uint(fixedPeakCurrent)),
		Voltage:                   uint16(r.uint(fixedVoltage)),
		MaxCurrent:                uint16(r.uint(fixedMaxCurrent)),
	}
	if r.err != nil {
		return FixedSupplyPDO{}, r.err
	}
	return p, nil
}

// Type returns PDOTypeFixedSupply.
func (p FixedSupplyPDO) Type() PDOType { return PDOTypeFixedSupply }

// Encode packs the PDO into 4 bytes.
func (p FixedSupplyPDO) Encode() ([]byte, error) {
	w := newFieldWriter("fixed supply pdo", DataObjectSize)
	w.uint(pdoType, uint64(PDOTypeFixedSupply))
	w.flag(fixedDualRolePower, p.DualRolePower)
	w.flag(fixedUSBSuspend, p.USBSuspendSupported)
	w.flag(fixedUnconstrainedPower, p.UnconstrainedPower)
	w.flag(fixedUSBCommunications, p.USBCommunicationsCapable)
	w.flag(fixedDualRoleData, p.DualRoleData)
	w.flag(fixedUnchunkedExtended, p.UnchunkedExtendedMessages)
	w.flag(fixedEPRCapable, p.EPRCapable)
	w.uint(fixedReserved, uint64(p.Reserved))
	w.enum(fixedPeakCurrent, uint64(p.PeakCurrent), uint64(PeakCurrent250))
	w.uint(fixedVoltage, uint64(p.Voltage))
	w.uint(fixedMaxCurrent, uint64(p.MaxCurrent))
	return w.bytes()
}

// VoltageMillivolts returns the supply voltage in millivolts.
func (p FixedSupplyPDO) VoltageMillivolts() int {
	return int(p.Voltage) * VoltageUnitMillivolts
}

// MaxCurrentMilliamps returns the maximum current in milliamps.
func (p FixedSupplyPDO) MaxCurrentMilliamps() int {
	return int(p.MaxCurrent) * CurrentUnitMilliamps
}

func (p FixedSupplyPDO) String() string {
	return fmt.Sprintf("Fixed %dmV %dmA", p.VoltageMillivolts(), p.MaxCurrentMilliamps())
}

// VariableSupplyPDO advertises a non-battery supply with a voltage range (6.4.1.2.3).
type VariableSupplyPDO struct {
	// MaxVoltage in 50 mV units
	MaxVoltage uint16

	// MinVoltage in 50 mV units
	MinVoltage uint16

	// MaxCurrent in 10 mA units
	MaxCurrent uint16
}

// ParseVariableSupplyPDO decodes a Variable Supply PDO.
func ParseVariableSupplyPDO(b []byte) (VariableSupplyPDO, error) {
	if err := expectPDOType(b, PDOTypeVariableSupply); err != nil {
		return VariableSupplyPDO{}, err
	}

	r := newFieldReader("variable supply pdo", b)
	p := VariableSupplyPDO{
		MaxVoltage: uint16(r.uint(variableMaxVoltage)),
		MinVoltage: uint16(r.uint(variableMinVoltage)),
		MaxCurrent: uint16(r.uint(variableMaxCurrent)),
	}
	if r.err != nil {
		return VariableSupplyPDO{}, r.err
	}
	return p, nil
}

// Type returns PDOTypeVariableSupply.
func (p VariableSupplyPDO) Type() PDOType { return PDOTypeVariableSupply }

// Encode packs the PDO into 4 bytes.
func (p VariableSupplyPDO) Encode() ([]byte, error) {
	w := newFieldWriter("variable supply pdo", DataObjectSize)
	w.uint(pdoType, uint64(PDOTypeVariableSupply))
	w.uint(variableMaxVoltage, uint64(p.MaxVoltage))
	w.uint(variableMinVoltage, uint64(p.MinVoltage))
	w.uint(variableMaxCurrent, uint64(p.MaxCurrent))
	return w.bytes()
}

func (p VariableSupplyPDO) String() string {
	return fmt.Sprintf("Variable %d-%dmV %dmA",
		int(p.MinVoltage)*VoltageUnitMillivolts,
		int(p.MaxVoltage)*VoltageUnitMillivolts,
		int(p.MaxCurrent)*CurrentUnitMilliamps)
}

// BatteryPDO advertises a battery supply with a voltage range (6.4.1.2.4).
type BatteryPDO struct {
	// MaxVoltage in 50 mV units
	MaxVoltage uint16

	// MinVoltage in 50 mV units
	MinVoltage uint16

	// MaxPower in 250 mW units
	MaxPower uint16
}

// ParseBatteryPDO decodes a Battery Supply PDO.
func ParseBatteryPDO(b []byte) (BatteryPDO, error) {
	if err := expectPDOType(b, PDOTypeBattery); err != nil {
		return BatteryPDO{}, err
	}

	r := newFieldReader("battery pdo", b)
	p := BatteryPDO{
		MaxVoltage: uint16(r.uint(batteryMaxVoltage)),
		MinVoltage: uint16(r.uint(batteryMinVoltage)),
		MaxPower:   uint16(r.uint(batteryMaxPower)),
	}
	if r.err != nil {
		return BatteryPDO{}, r.err
	}
	return p, nil
}

// Type returns PDOTypeBattery.
func (p BatteryPDO) Type() PDOType { return PDOTypeBattery }

// Encode packs the PDO into 4 bytes.
func (p BatteryPDO) Encode() ([]byte, error) {
	w := newFieldWriter("battery pdo", DataObjectSize)
	w.uint(pdoType, uint64(PDOTypeBattery))
	w.uint(batteryMaxVoltage, uint64(p.MaxVoltage))
	w.uint(batteryMinVoltage, uint64(p.MinVoltage))
	w.uint(batteryMaxPower, uint64(p.MaxPower))
	return w.bytes()
}

func (p BatteryPDO) String() string {
	return fmt.Sprintf("Battery %d-%dmV %dmW",
		int(p.MinVoltage)*VoltageUnitMillivolts,
		int(p.MaxVoltage)*VoltageUnitMillivolts,
		int(p.MaxPower)*PowerUnitMilliwatts)
}

func expectPDOType(b []byte, want PDOType) error {
	got, err := PeekPDOType(b)
	if err != nil {
		return err
	}
	if got != want {
		return &UnsupportedVariantError{
			Structure:    want.String() + " pdo",
			Discriminant: uint32(got),
			Name:         got.String(),
		}
	}
	return nil
}

// RawDataObject returns the little-endian 32-bit value of a 4-byte data object.
func RawDataObject(b []byte) (uint32, error) {
	if err := checkExact("data object", b, DataObjectSize); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
