package dd

import "github.com/tachoscan/tachodecode/byteio"

// EquipmentType selects which CardNumber / FullCardNumber variant applies,
// per Data Dictionary section 2.67.
type EquipmentType int

const (
	EquipmentTypeRFU EquipmentType = iota
	EquipmentTypeDriverCard
	EquipmentTypeWorkshopCard
	EquipmentTypeControlCard
	EquipmentTypeCompanyCard
	EquipmentTypeVehicleUnit
	EquipmentTypeMotionSensor
)

var equipmentTypeTable = map[byte]EquipmentType{
	0:  EquipmentTypeRFU,
	1:  EquipmentTypeDriverCard,
	2:  EquipmentTypeWorkshopCard,
	3:  EquipmentTypeControlCard,
	4:  EquipmentTypeCompanyCard,
	5:  EquipmentTypeVehicleUnit,
	6:  EquipmentTypeMotionSensor,
}

// DecodeEquipmentType decodes a 1-byte EquipmentType, mapping any
// unrecognized value to EquipmentTypeRFU.
func DecodeEquipmentType(r *byteio.Reader) (EquipmentType, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	if t, ok := equipmentTypeTable[b]; ok {
		return t, nil
	}
	return EquipmentTypeRFU, nil
}

// NationNumeric is the regulation's numeric country code, section 2.101.
// Every byte value is legal (0 is "no information", 0xFD-0xFF are
// reserved); the raw byte is preserved verbatim.
type NationNumeric byte

// DecodeNationNumeric decodes a 1-byte NationNumeric.
func DecodeNationNumeric(r *byteio.Reader) (NationNumeric, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	return NationNumeric(b), nil
}

// ManufacturerCode is the regulation's manufacturer-registry byte, section
// 2.97. Every byte value is preserved verbatim; unassigned codes have no
// special meaning to the decoder.
type ManufacturerCode byte

// DecodeManufacturerCode decodes a 1-byte ManufacturerCode.
func DecodeManufacturerCode(r *byteio.Reader) (ManufacturerCode, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	return ManufacturerCode(b), nil
}

// Generation distinguishes Gen1 from Gen2 equipment, section 2.78.
type Generation int

const (
	GenerationRFU Generation = iota
	Generation1
	Generation2
)

// DecodeGeneration decodes a 1-byte Generation, mapping unrecognized
// values to GenerationRFU.
func DecodeGeneration(r *byteio.Reader) (Generation, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	switch b {
	case 1:
		return Generation1, nil
	case 2:
		return Generation2, nil
	default:
		return GenerationRFU, nil
	}
}

// CardSlotNumber identifies a physical slot. Unlike most enums in this
// file, CardSlotNumber's contract forbids an RFU fallback: any other byte
// value is a hard InvalidEnumValueError.
type CardSlotNumber int

const (
	CardSlotNumberDriver CardSlotNumber = iota
	CardSlotNumberCoDriver
)

// DecodeCardSlotNumber decodes a 1-byte CardSlotNumber.
func DecodeCardSlotNumber(r *byteio.Reader) (CardSlotNumber, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	switch b {
	case 0:
		return CardSlotNumberDriver, nil
	case 1:
		return CardSlotNumberCoDriver, nil
	default:
		return 0, &InvalidEnumValueError{Field: "CardSlotNumber", Value: b}
	}
}

// ManualInputFlag records whether a record's data was entered manually.
// Its contract forbids RFU.
type ManualInputFlag int

const (
	ManualInputFlagNoEntry ManualInputFlag = iota
	ManualInputFlagManualEntries
)

// DecodeManualInputFlag decodes a 1-byte ManualInputFlag.
func DecodeManualInputFlag(r *byteio.Reader) (ManualInputFlag, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	switch b {
	case 0:
		return ManualInputFlagNoEntry, nil
	case 1:
		return ManualInputFlagManualEntries, nil
	default:
		return 0, &InvalidEnumValueError{Field: "ManualInputFlag", Value: b}
	}
}

// EntryTypeDailyWorkPeriod classifies a CardPlaceDailyWorkPeriod /
// VuPlaceDailyWorkPeriod entry. Its contract forbids RFU.
type EntryTypeDailyWorkPeriod int

const (
	EntryTypeBeginRelatedTimeCardInsertion EntryTypeDailyWorkPeriod = iota
	EntryTypeBeginRelatedTimeManualEntry
	EntryTypeEndRelatedTimeCardWithdrawal
	EntryTypeEndRelatedTimeManualEntry
)

// DecodeEntryTypeDailyWorkPeriod decodes a 1-byte EntryTypeDailyWorkPeriod.
func DecodeEntryTypeDailyWorkPeriod(r *byteio.Reader) (EntryTypeDailyWorkPeriod, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	if b > 3 {
		return 0, &InvalidEnumValueError{Field: "EntryTypeDailyWorkPeriod", Value: b}
	}
	return EntryTypeDailyWorkPeriod(b), nil
}

// SpecificConditionType classifies a CardSpecificConditionRecord /
// VuSpecificConditionRecord, section 2.153. The value 0 ("no entry") is
// this module's RFU-equivalent sentinel and callers use it to drop
// zero-padded array slots (spec.md section 4.3 Sentinel detection; see
// spec.md section 9 Open Question 3 for the literal-"RFU" caveat this
// preserves from the source implementation).
type SpecificConditionType int

const (
	SpecificConditionTypeRFU SpecificConditionType = iota
	SpecificConditionTypeOutOfScopeBegin
	SpecificConditionTypeOutOfScopeEnd
	SpecificConditionTypeFerryTrainCrossing
)

// DecodeSpecificConditionType decodes a 1-byte SpecificConditionType,
// mapping unrecognized values to SpecificConditionTypeRFU.
func DecodeSpecificConditionType(r *byteio.Reader) (SpecificConditionType, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	switch b {
	case 1:
		return SpecificConditionTypeOutOfScopeBegin, nil
	case 2:
		return SpecificConditionTypeOutOfScopeEnd, nil
	case 3:
		return SpecificConditionTypeFerryTrainCrossing, nil
	default:
		return SpecificConditionTypeRFU, nil
	}
}

// EventFaultType is the combined event/fault-type enumeration, section
// 2.70. Unrecognized values fall back to EventFaultTypeRFU.
type EventFaultType int

const (
	EventFaultTypeRFU EventFaultType = iota
	EventFaultTypeInsertionOfNonValidCard
	EventFaultTypeCardConflict
	EventFaultTypeTimeOverlap
	EventFaultTypeDrivingWithoutAppropriateCard
	EventFaultTypeCardInsertionWhileDriving
	EventFaultTypeLastCardSessionNotClosedProperly
	EventFaultTypeOverSpeeding
	EventFaultTypePowerSupplyInterruption
	EventFaultTypeMotionDataError
	EventFaultTypeVehicleMotionConflict
	EventFaultTypeSecurityBreach
	EventFaultTypeTimeAdjustment
	EventFaultTypeVUFault
	EventFaultTypeCardFault
)

var eventFaultTypeTable = map[byte]EventFaultType{
	0x01: EventFaultTypeInsertionOfNonValidCard,
	0x02: EventFaultTypeCardConflict,
	0x03: EventFaultTypeTimeOverlap,
	0x04: EventFaultTypeDrivingWithoutAppropriateCard,
	0x05: EventFaultTypeCardInsertionWhileDriving,
	0x06: EventFaultTypeLastCardSessionNotClosedProperly,
	0x07: EventFaultTypeOverSpeeding,
	0x08: EventFaultTypePowerSupplyInterruption,
	0x09: EventFaultTypeMotionDataError,
	0x0A: EventFaultTypeVehicleMotionConflict,
	0x0B: EventFaultTypeSecurityBreach,
	0x0C: EventFaultTypeTimeAdjustment,
	0x50: EventFaultTypeVUFault,
	0x60: EventFaultTypeCardFault,
}

// DecodeEventFaultType decodes a 1-byte EventFaultType.
func DecodeEventFaultType(r *byteio.Reader) (EventFaultType, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	if t, ok := eventFaultTypeTable[b]; ok {
		return t, nil
	}
	return EventFaultTypeRFU, nil
}

// EventFaultRecordPurpose classifies why an event/fault record was stored
// (most recent, longest, last 10 occurrences, etc.), section 2.71.
type EventFaultRecordPurpose int

const (
	EventFaultRecordPurposeRFU EventFaultRecordPurpose = iota
	EventFaultRecordPurposeOneOfLast10
	EventFaultRecordPurposeLongestOfLast10
	EventFaultRecordPurposeLast
	EventFaultRecordPurposeLongestOfLastYear
	EventFaultRecordPurposeOneOfFiveLongestOfLastYear
	EventFaultRecordPurposeInProgress
)

var eventFaultRecordPurposeTable = map[byte]EventFaultRecordPurpose{
	0x01: EventFaultRecordPurposeOneOfLast10,
	0x02: EventFaultRecordPurposeLongestOfLast10,
	0x03: EventFaultRecordPurposeLast,
	0x04: EventFaultRecordPurposeLongestOfLastYear,
	0x05: EventFaultRecordPurposeOneOfFiveLongestOfLastYear,
	0x06: EventFaultRecordPurposeInProgress,
}

// DecodeEventFaultRecordPurpose decodes a 1-byte EventFaultRecordPurpose.
func DecodeEventFaultRecordPurpose(r *byteio.Reader) (EventFaultRecordPurpose, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	if p, ok := eventFaultRecordPurposeTable[b]; ok {
		return p, nil
	}
	return EventFaultRecordPurposeRFU, nil
}

// CalibrationPurpose classifies why a VuCalibrationRecord was recorded,
// section 2.15.
type CalibrationPurpose int

const (
	CalibrationPurposeRFU CalibrationPurpose = iota
	CalibrationPurposeActivation
	CalibrationPurposeFirstInstallation
	CalibrationPurposeInstallation
	CalibrationPurposePeriodicInspection
)

var calibrationPurposeTable = map[byte]CalibrationPurpose{
	0x01: CalibrationPurposeActivation,
	0x02: CalibrationPurposeFirstInstallation,
	0x03: CalibrationPurposeInstallation,
	0x04: CalibrationPurposePeriodicInspection,
}

// DecodeCalibrationPurpose decodes a 1-byte CalibrationPurpose.
func DecodeCalibrationPurpose(r *byteio.Reader) (CalibrationPurpose, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	if p, ok := calibrationPurposeTable[b]; ok {
		return p, nil
	}
	return CalibrationPurposeRFU, nil
}

// PositionAuthenticationStatus (Gen2V2) records whether a GNSS fix could
// be authenticated against the tachograph's location input.
type PositionAuthenticationStatus int

const (
	PositionAuthStatusRFU PositionAuthenticationStatus = iota
	PositionAuthStatusNotAuthenticated
	PositionAuthStatusAuthenticated
)

// DecodePositionAuthenticationStatus decodes a 1-byte
// PositionAuthenticationStatus.
func DecodePositionAuthenticationStatus(r *byteio.Reader) (PositionAuthenticationStatus, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	switch b {
	case 1:
		return PositionAuthStatusNotAuthenticated, nil
	case 2:
		return PositionAuthStatusAuthenticated, nil
	default:
		return PositionAuthStatusRFU, nil
	}
}

// OperationType (Gen2V2) classifies a load/unload operation.
type OperationType int

const (
	OperationTypeRFU OperationType = iota
	OperationTypeLoad
	OperationTypeUnload
	OperationTypeLoadAndUnload
)

// DecodeOperationType decodes a 1-byte OperationType.
func DecodeOperationType(r *byteio.Reader) (OperationType, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	switch b {
	case 1:
		return OperationTypeLoad, nil
	case 2:
		return OperationTypeUnload, nil
	case 3:
		return OperationTypeLoadAndUnload, nil
	default:
		return OperationTypeRFU, nil
	}
}

// LoadType (Gen2V2) classifies cargo carried, section added by the Gen2V2
// amendment.
type LoadType int

const (
	LoadTypeUndefined LoadType = iota
	LoadTypeGoods
	LoadTypePassengers
)

// DecodeLoadType decodes a 1-byte LoadType.
func DecodeLoadType(r *byteio.Reader) (LoadType, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	switch b {
	case 1:
		return LoadTypeGoods, nil
	case 2:
		return LoadTypePassengers, nil
	default:
		return LoadTypeUndefined, nil
	}
}

// RegionNumeric (Gen2V2) identifies a sub-national region for
// border-crossing records.
type RegionNumeric byte

// DecodeRegionNumeric decodes a 1-byte RegionNumeric.
func DecodeRegionNumeric(r *byteio.Reader) (RegionNumeric, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	return RegionNumeric(b), nil
}
