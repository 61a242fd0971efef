package dd

import "github.com/tachoscan/tachodecode/byteio"

// ActivityChangeInfoSlot identifies which card slot an activity change
// pertains to.
type ActivityChangeInfoSlot int

const (
	SlotDriver ActivityChangeInfoSlot = iota
	SlotCoDriver
)

// ActivityChangeInfoCardStatus records whether a card was inserted in the
// slot at the moment of the change.
type ActivityChangeInfoCardStatus int

const (
	CardInserted ActivityChangeInfoCardStatus = iota
	CardNotInserted
)

// ActivityChangeInfoDrivingStatus is bit 14 of ActivityChangeInfo,
// conditioned on ActivityChangeInfoCardStatus: when a card is inserted it
// denotes crew/single operation, when not inserted it denotes whether the
// activity was entered manually.
type ActivityChangeInfoDrivingStatus int

const (
	DrivingStatusSingle ActivityChangeInfoDrivingStatus = iota
	DrivingStatusCrew
)

const (
	ManualEntryKnown ActivityChangeInfoDrivingStatus = iota
	ManualEntryUnknown
)

// ActivityChangeInfoActivity is the activity selected by bits 12-11.
type ActivityChangeInfoActivity int

const (
	ActivityBreakRest ActivityChangeInfoActivity = iota
	ActivityAvailability
	ActivityWork
	ActivityDriving
)

// ActivityChangeInfo is the 16-bit packed bitfield described in spec.md
// section 3 (appendix 2.1): bit 15 slot, bit 14 driving-status-or-
// following-activity, bit 13 card-inserted, bits 12-11 activity, bits 10-0
// minutes since midnight.
type ActivityChangeInfo struct {
	Slot          ActivityChangeInfoSlot          `json:"slot"`
	CardStatus    ActivityChangeInfoCardStatus    `json:"cardStatus"`
	DrivingStatus ActivityChangeInfoDrivingStatus `json:"drivingStatus"`
	Activity      ActivityChangeInfoActivity      `json:"activity"`
	Minutes       int                             `json:"minutes"`
}

// DecodeActivityChangeInfo decodes one 2-byte ActivityChangeInfo record.
func DecodeActivityChangeInfo(r *byteio.Reader) (ActivityChangeInfo, error) {
	v, err := r.ReadUint16()
	if err != nil {
		return ActivityChangeInfo{}, err
	}
	return activityChangeInfoFromUint16(v), nil
}

func activityChangeInfoFromUint16(v uint16) ActivityChangeInfo {
	slot := ActivityChangeInfoSlot((v >> 15) & 0x1)
	driving := ActivityChangeInfoDrivingStatus((v >> 14) & 0x1)
	cardStatus := ActivityChangeInfoCardStatus((v >> 13) & 0x1)
	activity := ActivityChangeInfoActivity((v >> 11) & 0x3)
	minutes := int(v & 0x07FF)
	return ActivityChangeInfo{
		Slot:          slot,
		CardStatus:    cardStatus,
		DrivingStatus: driving,
		Activity:      activity,
		Minutes:       minutes,
	}
}

// Encode re-packs the ActivityChangeInfo into its original 16 bits. No
// decoder calls it, and no test in this module exercises it; the module
// otherwise never re-encodes to binary (see spec.md section 1 Non-goals).
func (a ActivityChangeInfo) Encode() uint16 {
	var v uint16
	v |= uint16(a.Slot&0x1) << 15
	v |= uint16(a.DrivingStatus&0x1) << 14
	v |= uint16(a.CardStatus&0x1) << 13
	v |= uint16(a.Activity&0x3) << 11
	v |= uint16(a.Minutes) & 0x07FF
	return v
}

// CardSlotStatus enumerates the type of card, if any, inserted in a slot.
type CardSlotStatus int

const (
	CardSlotStatusNoCard CardSlotStatus = iota
	CardSlotStatusDriverCardInserted
	CardSlotStatusWorkshopCardInserted
	CardSlotStatusControlCardInserted
	CardSlotStatusCompanyCardInserted
)

// CardSlotsStatus is the packed byte recording what is inserted in the
// co-driver (high nibble) and driver (low nibble) slots. The data type
// `CardSlotsStatus` is specified in the Data Dictionary, section 2.34.
// Nibble values outside {0..4} are errors (CardSlotsStatus forbids RFU).
type CardSlotsStatus struct {
	CoDriver CardSlotStatus `json:"coDriver"`
	Driver   CardSlotStatus `json:"driver"`
}

// DecodeCardSlotsStatus decodes a 1-byte CardSlotsStatus.
func DecodeCardSlotsStatus(r *byteio.Reader) (CardSlotsStatus, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return CardSlotsStatus{}, err
	}
	hi, lo := b>>4, b&0x0F
	coDriver, err := cardSlotStatusFromNibble(hi)
	if err != nil {
		return CardSlotsStatus{}, err
	}
	driver, err := cardSlotStatusFromNibble(lo)
	if err != nil {
		return CardSlotsStatus{}, err
	}
	return CardSlotsStatus{CoDriver: coDriver, Driver: driver}, nil
}

func cardSlotStatusFromNibble(n byte) (CardSlotStatus, error) {
	switch n {
	case 0x0:
		return CardSlotStatusNoCard, nil
	case 0x1:
		return CardSlotStatusDriverCardInserted, nil
	case 0x2:
		return CardSlotStatusWorkshopCardInserted, nil
	case 0x3:
		return CardSlotStatusControlCardInserted, nil
	case 0x4:
		return CardSlotStatusCompanyCardInserted, nil
	default:
		return 0, &InvalidEnumValueError{Field: "CardSlotsStatus", Value: n}
	}
}

// ControlType is the packed byte describing which control operations were
// performed during a roadside check. The data type `ControlType` is
// specified in the Data Dictionary, section 2.53. Gen2 adds the fifth,
// roadside-calibration-checking bit.
type ControlType struct {
	CardDownloading             bool `json:"cardDownloading"`
	VUDownloading               bool `json:"vuDownloading"`
	Printing                    bool `json:"printing"`
	Display                     bool `json:"display"`
	RoadsideCalibrationChecking bool `json:"roadsideCalibrationChecking,omitempty"`
}

// DecodeControlType decodes a 1-byte ControlType. isGen2 selects whether
// the fifth (roadside-calibration-checking) bit is meaningful.
func DecodeControlType(r *byteio.Reader, isGen2 bool) (ControlType, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return ControlType{}, err
	}
	ct := ControlType{
		CardDownloading: b&0x80 != 0,
		VUDownloading:   b&0x40 != 0,
		Printing:        b&0x20 != 0,
		Display:         b&0x10 != 0,
	}
	if isGen2 {
		ct.RoadsideCalibrationChecking = b&0x08 != 0
	}
	return ct, nil
}
