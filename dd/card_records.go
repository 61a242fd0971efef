package dd

import "github.com/tachoscan/tachodecode/byteio"

// VuDataBlockCounter is a 2-byte BCD counter bounded to [0, 9999], Data
// Dictionary section 2.189.
func DecodeVuDataBlockCounter(r *byteio.Reader) (int, error) {
	v, err := DecodeBCDNumber(r, 2, "VuDataBlockCounter")
	if err != nil {
		return 0, err
	}
	if v > 9999 {
		return 0, &InvalidBCDError{Field: "VuDataBlockCounter"}
	}
	return v, nil
}

// DriverCardApplicationIdentification is the fixed EF_Application_Identification
// structure of a driver card, Data Dictionary section 2.61. It advertises
// the per-type capacities (event/fault slots, activity buffer length,
// vehicle/place record counts) the rest of the card's elementary files are
// sized by.
type DriverCardApplicationIdentification struct {
	TypeOfTachographCardID  EquipmentType `json:"typeOfTachographCardId"`
	CardStructureVersion    [2]byte       `json:"cardStructureVersion"`
	NoOfEventsPerType       byte          `json:"noOfEventsPerType"`
	NoOfFaultsPerType       byte          `json:"noOfFaultsPerType"`
	ActivityStructureLength uint16        `json:"activityStructureLength"`
	NoOfCardVehicleRecords  uint16        `json:"noOfCardVehicleRecords"`
	NoOfCardPlaceRecords    byte          `json:"noOfCardPlaceRecords"`
}

// DecodeDriverCardApplicationIdentification decodes a 10-byte
// DriverCardApplicationIdentification.
func DecodeDriverCardApplicationIdentification(r *byteio.Reader) (DriverCardApplicationIdentification, error) {
	cardType, err := DecodeEquipmentType(r)
	if err != nil {
		return DriverCardApplicationIdentification{}, err
	}
	version, err := r.ReadExact(2)
	if err != nil {
		return DriverCardApplicationIdentification{}, err
	}
	eventsPerType, err := r.ReadUint8()
	if err != nil {
		return DriverCardApplicationIdentification{}, err
	}
	faultsPerType, err := r.ReadUint8()
	if err != nil {
		return DriverCardApplicationIdentification{}, err
	}
	activityLen, err := r.ReadUint16()
	if err != nil {
		return DriverCardApplicationIdentification{}, err
	}
	vehicleRecords, err := r.ReadUint16()
	if err != nil {
		return DriverCardApplicationIdentification{}, err
	}
	placeRecords, err := r.ReadUint8()
	if err != nil {
		return DriverCardApplicationIdentification{}, err
	}
	return DriverCardApplicationIdentification{
		TypeOfTachographCardID:  cardType,
		CardStructureVersion:    [2]byte{version[0], version[1]},
		NoOfEventsPerType:       eventsPerType,
		NoOfFaultsPerType:       faultsPerType,
		ActivityStructureLength: activityLen,
		NoOfCardVehicleRecords:  vehicleRecords,
		NoOfCardPlaceRecords:    placeRecords,
	}, nil
}

// CardEventRecord is a single stored driver-card event, Data Dictionary
// section 2.20.
type CardEventRecord struct {
	EventType                EventFaultType                     `json:"eventType"`
	EventBeginTime            TimeOrZero                         `json:"eventBeginTime"`
	EventEndTime              TimeOrZero                         `json:"eventEndTime"`
	EventVehicleRegistration VehicleRegistrationIdentification `json:"eventVehicleRegistration"`
}

const cardEventRecordSize = 24

// DecodeCardEventRecord decodes a 24-byte CardEventRecord.
func DecodeCardEventRecord(r *byteio.Reader) (CardEventRecord, error) {
	eventType, err := DecodeEventFaultType(r)
	if err != nil {
		return CardEventRecord{}, err
	}
	begin, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardEventRecord{}, err
	}
	end, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardEventRecord{}, err
	}
	reg, err := DecodeVehicleRegistrationIdentification(r)
	if err != nil {
		return CardEventRecord{}, err
	}
	return CardEventRecord{
		EventType:                eventType,
		EventBeginTime:            TimeOrZero(begin),
		EventEndTime:              TimeOrZero(end),
		EventVehicleRegistration: reg,
	}, nil
}

// DecodeCardEventData decodes the EF_Events_Data elementary file: a fixed
// number of per-event-type slots (6 for Gen1/Gen2, see spec.md section 6),
// each holding a run of CardEventRecord entries. A slot whose records all
// fail to decode is simply empty rather than aborting the whole file,
// matching the tolerant-array convention used throughout this package.
func DecodeCardEventData(r *byteio.Reader, size int, numSlots int) ([][]CardEventRecord, error) {
	recordsPerSlot := size / numSlots / cardEventRecordSize
	out := make([][]CardEventRecord, 0, numSlots)
	for i := 0; i < numSlots; i++ {
		var slot []CardEventRecord
		for j := 0; j < recordsPerSlot; j++ {
			rec, err := DecodeCardEventRecord(r)
			if err != nil {
				continue
			}
			slot = append(slot, rec)
		}
		if len(slot) > 0 {
			out = append(out, slot)
		}
	}
	return out, nil
}

// CardFaultRecord is a single stored driver-card equipment fault, Data
// Dictionary section 2.21-2.22. Its layout mirrors CardEventRecord exactly.
type CardFaultRecord struct {
	FaultType                EventFaultType                     `json:"faultType"`
	FaultBeginTime            TimeOrZero                         `json:"faultBeginTime"`
	FaultEndTime              TimeOrZero                         `json:"faultEndTime"`
	FaultVehicleRegistration VehicleRegistrationIdentification `json:"faultVehicleRegistration"`
}

// DecodeCardFaultRecord decodes a 24-byte CardFaultRecord.
func DecodeCardFaultRecord(r *byteio.Reader) (CardFaultRecord, error) {
	faultType, err := DecodeEventFaultType(r)
	if err != nil {
		return CardFaultRecord{}, err
	}
	begin, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardFaultRecord{}, err
	}
	end, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardFaultRecord{}, err
	}
	reg, err := DecodeVehicleRegistrationIdentification(r)
	if err != nil {
		return CardFaultRecord{}, err
	}
	return CardFaultRecord{
		FaultType:                faultType,
		FaultBeginTime:            TimeOrZero(begin),
		FaultEndTime:              TimeOrZero(end),
		FaultVehicleRegistration: reg,
	}, nil
}

// DecodeCardFaultData decodes the EF_Faults_Data elementary file: a fixed
// number of per-fault-type slots (2 for Gen1/Gen2, see spec.md section 6).
func DecodeCardFaultData(r *byteio.Reader, size int, numSlots int) ([][]CardFaultRecord, error) {
	recordsPerSlot := size / numSlots / cardEventRecordSize
	out := make([][]CardFaultRecord, 0, numSlots)
	for i := 0; i < numSlots; i++ {
		var slot []CardFaultRecord
		for j := 0; j < recordsPerSlot; j++ {
			rec, err := DecodeCardFaultRecord(r)
			if err != nil {
				continue
			}
			slot = append(slot, rec)
		}
		if len(slot) > 0 {
			out = append(out, slot)
		}
	}
	return out, nil
}

// CardVehicleRecord is a single vehicle used by the driver card holder,
// Data Dictionary section 2.37.
type CardVehicleRecord struct {
	VehicleOdometerBegin uint32                             `json:"vehicleOdometerBegin"`
	VehicleOdometerEnd   uint32                             `json:"vehicleOdometerEnd"`
	VehicleFirstUse      TimeOrZero                         `json:"vehicleFirstUse"`
	VehicleLastUse       TimeOrZero                         `json:"vehicleLastUse"`
	VehicleRegistration  VehicleRegistrationIdentification `json:"vehicleRegistration"`
	VuDataBlockCounter   int                                `json:"vuDataBlockCounter"`
}

const cardVehicleRecordSize = 31

// DecodeCardVehicleRecord decodes a 31-byte CardVehicleRecord.
func DecodeCardVehicleRecord(r *byteio.Reader) (CardVehicleRecord, error) {
	begin, err := DecodeOdometerShort(r)
	if err != nil {
		return CardVehicleRecord{}, err
	}
	end, err := DecodeOdometerShort(r)
	if err != nil {
		return CardVehicleRecord{}, err
	}
	firstUse, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardVehicleRecord{}, err
	}
	lastUse, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardVehicleRecord{}, err
	}
	reg, err := DecodeVehicleRegistrationIdentification(r)
	if err != nil {
		return CardVehicleRecord{}, err
	}
	counter, err := DecodeVuDataBlockCounter(r)
	if err != nil {
		return CardVehicleRecord{}, err
	}
	return CardVehicleRecord{
		VehicleOdometerBegin: begin,
		VehicleOdometerEnd:   end,
		VehicleFirstUse:      TimeOrZero(firstUse),
		VehicleLastUse:       TimeOrZero(lastUse),
		VehicleRegistration:  reg,
		VuDataBlockCounter:   counter,
	}, nil
}

// CardVehiclesUsed is the EF_Vehicles_Used elementary file: the ring
// buffer of vehicles the driver card was used in, Data Dictionary section
// 2.38.
type CardVehiclesUsed struct {
	VehiclePointerNewestRecord uint16              `json:"vehiclePointerNewestRecord"`
	Records                    []CardVehicleRecord `json:"records"`
}

// DecodeCardVehiclesUsed decodes a size-delimited CardVehiclesUsed: a
// 2-byte newest-record pointer followed by a flat array of
// CardVehicleRecord. The records are returned in storage order, not
// rotated into chronological order; the pointer is returned as read.
// Records that fail to decode are skipped.
func DecodeCardVehiclesUsed(r *byteio.Reader, size int) (CardVehiclesUsed, error) {
	pointer, err := r.ReadUint16()
	if err != nil {
		return CardVehiclesUsed{}, err
	}
	count := (size - 2) / cardVehicleRecordSize
	records := make([]CardVehicleRecord, 0, count)
	for i := 0; i < count; i++ {
		rec, err := DecodeCardVehicleRecord(r)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return CardVehiclesUsed{VehiclePointerNewestRecord: pointer, Records: records}, nil
}

// CardPlaceDailyWorkPeriod is the EF_Places elementary file: the ring
// buffer of daily work period place entries, Data Dictionary section
// 2.27.
type CardPlaceDailyWorkPeriod struct {
	PlacePointerNewestRecord byte          `json:"placePointerNewestRecord"`
	Records                  []PlaceRecord `json:"records"`
}

// DecodeCardPlaceDailyWorkPeriod decodes a size-delimited
// CardPlaceDailyWorkPeriod: a 1-byte newest-record pointer followed by a
// flat array of PlaceRecord, sorted ascending by entry time (unused slots,
// signalled by a zero entry time, are dropped per DecodePlaceRecord).
func DecodeCardPlaceDailyWorkPeriod(r *byteio.Reader, size int) (CardPlaceDailyWorkPeriod, error) {
	pointer, err := r.ReadUint8()
	if err != nil {
		return CardPlaceDailyWorkPeriod{}, err
	}
	const recordSize = 10
	count := (size - 1) / recordSize
	records := make([]PlaceRecord, 0, count)
	for i := 0; i < count; i++ {
		rec, ok, err := DecodePlaceRecord(r)
		if err != nil {
			continue
		}
		if ok {
			records = append(records, rec)
		}
	}
	sortPlaceRecordsByTime(records)
	return CardPlaceDailyWorkPeriod{PlacePointerNewestRecord: pointer, Records: records}, nil
}

func sortPlaceRecordsByTime(recs []PlaceRecord) {
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && recs[j-1].EntryTime.After(recs[j].EntryTime); j-- {
			recs[j-1], recs[j] = recs[j], recs[j-1]
		}
	}
}

// CardPlaceDailyWorkPeriodGen2 is CardPlaceDailyWorkPeriod as extended in
// Gen2: a 2-byte newest-record pointer (vs Gen1's 1 byte) and
// GNSS-extended PlaceRecordGen2 entries.
type CardPlaceDailyWorkPeriodGen2 struct {
	PlacePointerNewestRecord uint16            `json:"placePointerNewestRecord"`
	Records                  []PlaceRecordGen2 `json:"records"`
}

// DecodeCardPlaceDailyWorkPeriodGen2 decodes a size-delimited Gen2
// CardPlaceDailyWorkPeriod, sorted ascending by entry time.
func DecodeCardPlaceDailyWorkPeriodGen2(r *byteio.Reader, size int) (CardPlaceDailyWorkPeriodGen2, error) {
	pointer, err := r.ReadUint16()
	if err != nil {
		return CardPlaceDailyWorkPeriodGen2{}, err
	}
	const recordSize = 21
	count := (size - 2) / recordSize
	records := make([]PlaceRecordGen2, 0, count)
	for i := 0; i < count; i++ {
		rec, ok, err := DecodePlaceRecordGen2(r)
		if err != nil {
			continue
		}
		if ok {
			records = append(records, rec)
		}
	}
	sortPlaceRecordsGen2ByTime(records)
	return CardPlaceDailyWorkPeriodGen2{PlacePointerNewestRecord: pointer, Records: records}, nil
}

func sortPlaceRecordsGen2ByTime(recs []PlaceRecordGen2) {
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && recs[j-1].EntryTime.After(recs[j].EntryTime); j-- {
			recs[j-1], recs[j] = recs[j], recs[j-1]
		}
	}
}

// CardControlActivityDataRecord is the EF_Control_Activity_Data
// elementary file: the most recent roadside control performed using this
// card, Data Dictionary section 2.15.
type CardControlActivityDataRecord struct {
	ControlType               ControlType                        `json:"controlType"`
	ControlTime                TimeOrZero                        `json:"controlTime"`
	ControlCardNumber          *FullCardNumber                    `json:"controlCardNumber,omitempty"`
	ControlVehicleRegistration VehicleRegistrationIdentification `json:"controlVehicleRegistration"`
	ControlDownloadPeriodBegin TimeOrZero                        `json:"controlDownloadPeriodBegin"`
	ControlDownloadPeriodEnd   TimeOrZero                        `json:"controlDownloadPeriodEnd"`
}

// DecodeCardControlActivityDataRecord decodes a fixed-size
// CardControlActivityDataRecord.
func DecodeCardControlActivityDataRecord(r *byteio.Reader) (CardControlActivityDataRecord, error) {
	controlType, err := DecodeControlType(r, false)
	if err != nil {
		return CardControlActivityDataRecord{}, err
	}
	controlTime, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardControlActivityDataRecord{}, err
	}
	cardNumber, err := DecodeFullCardNumber(r)
	if err != nil {
		return CardControlActivityDataRecord{}, err
	}
	reg, err := DecodeVehicleRegistrationIdentification(r)
	if err != nil {
		return CardControlActivityDataRecord{}, err
	}
	periodBegin, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardControlActivityDataRecord{}, err
	}
	periodEnd, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardControlActivityDataRecord{}, err
	}
	return CardControlActivityDataRecord{
		ControlType:                controlType,
		ControlTime:                TimeOrZero(controlTime),
		ControlCardNumber:          cardNumber,
		ControlVehicleRegistration: reg,
		ControlDownloadPeriodBegin: TimeOrZero(periodBegin),
		ControlDownloadPeriodEnd:   TimeOrZero(periodEnd),
	}, nil
}
