package dd

import "github.com/tachoscan/tachodecode/byteio"

// VuDownloadablePeriod is the window of activity data a vehicle unit can
// still supply a download for, Data Dictionary section 2.193.
type VuDownloadablePeriod struct {
	MinDownloadableTime TimeOrZero `json:"minDownloadableTime"`
	MaxDownloadableTime TimeOrZero `json:"maxDownloadableTime"`
}

// DecodeVuDownloadablePeriod decodes an 8-byte VuDownloadablePeriod.
func DecodeVuDownloadablePeriod(r *byteio.Reader) (VuDownloadablePeriod, error) {
	min, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuDownloadablePeriod{}, err
	}
	max, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuDownloadablePeriod{}, err
	}
	return VuDownloadablePeriod{MinDownloadableTime: min, MaxDownloadableTime: max}, nil
}

// VuDownloadActivityData records the most recent download performed from
// a vehicle unit, Data Dictionary section 2.195.
type VuDownloadActivityData struct {
	DownloadingTime        TimeOrZero      `json:"downloadingTime"`
	FullCardNumber         *FullCardNumber `json:"fullCardNumber,omitempty"`
	CompanyOrWorkshopName  Name            `json:"companyOrWorkshopName"`
}

// DecodeVuDownloadActivityData decodes a fixed-size VuDownloadActivityData.
func DecodeVuDownloadActivityData(r *byteio.Reader) (VuDownloadActivityData, error) {
	downloadingTime, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuDownloadActivityData{}, err
	}
	fullCardNumber, err := DecodeFullCardNumber(r)
	if err != nil {
		return VuDownloadActivityData{}, err
	}
	name, err := DecodeName(r)
	if err != nil {
		return VuDownloadActivityData{}, err
	}
	return VuDownloadActivityData{
		DownloadingTime:       downloadingTime,
		FullCardNumber:        fullCardNumber,
		CompanyOrWorkshopName: name,
	}, nil
}

// VuCompanyLocksRecord is a single company-lock period, Data Dictionary
// section 2.184.
type VuCompanyLocksRecord struct {
	LockInTime         TimeOrZero      `json:"lockInTime"`
	LockOutTime        TimeOrZero      `json:"lockOutTime"`
	CompanyName        Name            `json:"companyName"`
	CompanyAddress     Address         `json:"companyAddress"`
	CompanyCardNumber  *FullCardNumber `json:"companyCardNumber,omitempty"`
}

// DecodeVuCompanyLocksRecord decodes a fixed-size VuCompanyLocksRecord.
func DecodeVuCompanyLocksRecord(r *byteio.Reader) (VuCompanyLocksRecord, error) {
	lockIn, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuCompanyLocksRecord{}, err
	}
	lockOut, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuCompanyLocksRecord{}, err
	}
	name, err := DecodeName(r)
	if err != nil {
		return VuCompanyLocksRecord{}, err
	}
	address, err := DecodeAddress(r)
	if err != nil {
		return VuCompanyLocksRecord{}, err
	}
	cardNumber, err := DecodeFullCardNumber(r)
	if err != nil {
		return VuCompanyLocksRecord{}, err
	}
	return VuCompanyLocksRecord{
		LockInTime:        lockIn,
		LockOutTime:       lockOut,
		CompanyName:       name,
		CompanyAddress:    address,
		CompanyCardNumber: cardNumber,
	}, nil
}

// DecodeVuCompanyLocksData decodes EF_Company_Locks: a 1-byte count
// followed by that many VuCompanyLocksRecord.
func DecodeVuCompanyLocksData(r *byteio.Reader) ([]VuCompanyLocksRecord, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	out := make([]VuCompanyLocksRecord, 0, n)
	for i := 0; i < int(n); i++ {
		rec, err := DecodeVuCompanyLocksRecord(r)
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// VuControlActivityRecord is a single roadside control performed using
// this vehicle unit, Data Dictionary section 2.187.
type VuControlActivityRecord struct {
	ControlType               ControlType                        `json:"controlType"`
	ControlTime                TimeOrZero                        `json:"controlTime"`
	ControlCardNumber          *FullCardNumber                    `json:"controlCardNumber,omitempty"`
	DownloadPeriodBeginTime    TimeOrZero                        `json:"downloadPeriodBeginTime"`
	DownloadPeriodEndTime      TimeOrZero                        `json:"downloadPeriodEndTime"`
}

// DecodeVuControlActivityRecord decodes a fixed-size VuControlActivityRecord.
func DecodeVuControlActivityRecord(r *byteio.Reader) (VuControlActivityRecord, error) {
	controlType, err := DecodeControlType(r, false)
	if err != nil {
		return VuControlActivityRecord{}, err
	}
	controlTime, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuControlActivityRecord{}, err
	}
	cardNumber, err := DecodeFullCardNumber(r)
	if err != nil {
		return VuControlActivityRecord{}, err
	}
	begin, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuControlActivityRecord{}, err
	}
	end, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuControlActivityRecord{}, err
	}
	return VuControlActivityRecord{
		ControlType:             controlType,
		ControlTime:             controlTime,
		ControlCardNumber:       cardNumber,
		DownloadPeriodBeginTime: begin,
		DownloadPeriodEndTime:   end,
	}, nil
}

// DecodeVuControlActivityData decodes EF_Control_Activity_Data: a 1-byte
// count followed by that many VuControlActivityRecord.
func DecodeVuControlActivityData(r *byteio.Reader) ([]VuControlActivityRecord, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	out := make([]VuControlActivityRecord, 0, n)
	for i := 0; i < int(n); i++ {
		rec, err := DecodeVuControlActivityRecord(r)
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// VuOverviewBlock is the TREP 0x01 transfer response: the vehicle unit's
// static identification plus an overview of recent downloads, company
// locks and controls, Data Dictionary Annex IB TREP table.
type VuOverviewBlock struct {
	MemberStateCertificate            Certificate                        `json:"memberStateCertificate"`
	VuCertificate                     Certificate                        `json:"vuCertificate"`
	VehicleIdentificationNumber       string                             `json:"vehicleIdentificationNumber"`
	VehicleRegistrationIdentification VehicleRegistrationIdentification `json:"vehicleRegistrationIdentification"`
	CurrentDateTime                   TimeOrZero                        `json:"currentDateTime"`
	VuDownloadablePeriod              VuDownloadablePeriod               `json:"vuDownloadablePeriod"`
	CardSlotsStatus                   CardSlotsStatus                    `json:"cardSlotsStatus"`
	VuDownloadActivityData            VuDownloadActivityData              `json:"vuDownloadActivityData"`
	VuCompanyLocksData                []VuCompanyLocksRecord              `json:"vuCompanyLocksData"`
	VuControlActivityData             []VuControlActivityRecord           `json:"vuControlActivityData"`
	Signature                         Signature                           `json:"signature"`
}

// DecodeVuOverviewBlock decodes a TREP 0x01 VuOverviewBlock.
func DecodeVuOverviewBlock(r *byteio.Reader) (VuOverviewBlock, error) {
	memberCert, err := DecodeCertificate(r)
	if err != nil {
		return VuOverviewBlock{}, err
	}
	vuCert, err := DecodeCertificate(r)
	if err != nil {
		return VuOverviewBlock{}, err
	}
	vin, err := DecodeIA5String(r, 17, CodePageDefault)
	if err != nil {
		return VuOverviewBlock{}, err
	}
	reg, err := DecodeVehicleRegistrationIdentification(r)
	if err != nil {
		return VuOverviewBlock{}, err
	}
	current, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuOverviewBlock{}, err
	}
	period, err := DecodeVuDownloadablePeriod(r)
	if err != nil {
		return VuOverviewBlock{}, err
	}
	slots, err := DecodeCardSlotsStatus(r)
	if err != nil {
		return VuOverviewBlock{}, err
	}
	download, err := DecodeVuDownloadActivityData(r)
	if err != nil {
		return VuOverviewBlock{}, err
	}
	locks, err := DecodeVuCompanyLocksData(r)
	if err != nil {
		return VuOverviewBlock{}, err
	}
	controls, err := DecodeVuControlActivityData(r)
	if err != nil {
		return VuOverviewBlock{}, err
	}
	signature, err := DecodeSignature(r)
	if err != nil {
		return VuOverviewBlock{}, err
	}
	return VuOverviewBlock{
		MemberStateCertificate:             memberCert,
		VuCertificate:                      vuCert,
		VehicleIdentificationNumber:        vin,
		VehicleRegistrationIdentification: reg,
		CurrentDateTime:                    current,
		VuDownloadablePeriod:               period,
		CardSlotsStatus:                    slots,
		VuDownloadActivityData:             download,
		VuCompanyLocksData:                 locks,
		VuControlActivityData:              controls,
		Signature:                          signature,
	}, nil
}

// VuCardIWRecord is a single card insertion/withdrawal cycle recorded by
// the vehicle unit, Data Dictionary section 2.177.
type VuCardIWRecord struct {
	CardHolderName                     HolderName            `json:"cardHolderName"`
	FullCardNumber                      *FullCardNumber        `json:"fullCardNumber,omitempty"`
	CardExpiryDate                      TimeOrZero             `json:"cardExpiryDate"`
	CardInsertionTime                   TimeOrZero             `json:"cardInsertionTime"`
	VehicleOdometerValueAtInsertion    uint32                 `json:"vehicleOdometerValueAtInsertion"`
	CardSlotNumber                      CardSlotNumber         `json:"cardSlotNumber"`
	CardWithdrawalTime                  TimeOrZero             `json:"cardWithdrawalTime"`
	VehicleOdometerValueAtWithdrawal    uint32                 `json:"vehicleOdometerValueAtWithdrawal"`
	PreviousVehicleInfo                 PreviousVehicleInfo    `json:"previousVehicleInfo"`
	ManualInputFlag                      ManualInputFlag        `json:"manualInputFlag"`
}

// DecodeVuCardIWRecord decodes a fixed-size VuCardIWRecord.
func DecodeVuCardIWRecord(r *byteio.Reader) (VuCardIWRecord, error) {
	holderName, err := DecodeHolderName(r)
	if err != nil {
		return VuCardIWRecord{}, err
	}
	fullCardNumber, err := DecodeFullCardNumber(r)
	if err != nil {
		return VuCardIWRecord{}, err
	}
	expiry, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuCardIWRecord{}, err
	}
	insertion, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuCardIWRecord{}, err
	}
	odometerInsertion, err := DecodeOdometerShort(r)
	if err != nil {
		return VuCardIWRecord{}, err
	}
	slotNumber, err := DecodeCardSlotNumber(r)
	if err != nil {
		return VuCardIWRecord{}, err
	}
	withdrawal, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuCardIWRecord{}, err
	}
	odometerWithdrawal, err := DecodeOdometerShort(r)
	if err != nil {
		return VuCardIWRecord{}, err
	}
	previous, err := DecodePreviousVehicleInfo(r)
	if err != nil {
		return VuCardIWRecord{}, err
	}
	manual, err := DecodeManualInputFlag(r)
	if err != nil {
		return VuCardIWRecord{}, err
	}
	return VuCardIWRecord{
		CardHolderName:                    holderName,
		FullCardNumber:                    fullCardNumber,
		CardExpiryDate:                    expiry,
		CardInsertionTime:                 insertion,
		VehicleOdometerValueAtInsertion:   odometerInsertion,
		CardSlotNumber:                    slotNumber,
		CardWithdrawalTime:                withdrawal,
		VehicleOdometerValueAtWithdrawal:  odometerWithdrawal,
		PreviousVehicleInfo:               previous,
		ManualInputFlag:                   manual,
	}, nil
}

// VuPlaceDailyWorkPeriodRecord pairs a PlaceRecord recorded by the vehicle
// unit with the card that was inserted when it was entered, Data
// Dictionary section 2.219.
type VuPlaceDailyWorkPeriodRecord struct {
	FullCardNumber *FullCardNumber `json:"fullCardNumber,omitempty"`
	PlaceRecord    PlaceRecord     `json:"placeRecord"`
}

// VuActivitiesBlock is the TREP 0x02 transfer response: one calendar
// day's worth of activity, card insertion/withdrawal, place and
// specific-condition data, Data Dictionary Annex IB TREP table.
type VuActivitiesBlock struct {
	TimeReal                  TimeOrZero                     `json:"timeReal"`
	OdometerValueMidnight     uint32                         `json:"odometerValueMidnight"`
	CardIWRecords             []VuCardIWRecord               `json:"cardIwRecords"`
	ActivityChangeInfos       []ActivityChangeInfo            `json:"activityChangeInfos"`
	PlaceRecords              []VuPlaceDailyWorkPeriodRecord `json:"placeRecords"`
	SpecificConditionRecords  []SpecificConditionRecord       `json:"specificConditionRecords"`
	Signature                 Signature                       `json:"signature"`
}

// DecodeVuActivitiesBlock decodes a TREP 0x02 VuActivitiesBlock.
func DecodeVuActivitiesBlock(r *byteio.Reader) (VuActivitiesBlock, error) {
	timeReal, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuActivitiesBlock{}, err
	}
	odometer, err := DecodeOdometerShort(r)
	if err != nil {
		return VuActivitiesBlock{}, err
	}

	noIW, err := r.ReadUint16()
	if err != nil {
		return VuActivitiesBlock{}, err
	}
	iwRecords := make([]VuCardIWRecord, 0, noIW)
	for i := 0; i < int(noIW); i++ {
		rec, err := DecodeVuCardIWRecord(r)
		if err != nil {
			return VuActivitiesBlock{}, err
		}
		iwRecords = append(iwRecords, rec)
	}

	noActivity, err := r.ReadUint16()
	if err != nil {
		return VuActivitiesBlock{}, err
	}
	activities := make([]ActivityChangeInfo, 0, noActivity)
	for i := 0; i < int(noActivity); i++ {
		aci, err := DecodeActivityChangeInfo(r)
		if err != nil {
			return VuActivitiesBlock{}, err
		}
		activities = append(activities, aci)
	}

	noPlaces, err := r.ReadUint8()
	if err != nil {
		return VuActivitiesBlock{}, err
	}
	places := make([]VuPlaceDailyWorkPeriodRecord, 0, noPlaces)
	for i := 0; i < int(noPlaces); i++ {
		cardNumber, err := DecodeFullCardNumber(r)
		if err != nil {
			return VuActivitiesBlock{}, err
		}
		place, _, err := DecodePlaceRecord(r)
		if err != nil {
			return VuActivitiesBlock{}, err
		}
		places = append(places, VuPlaceDailyWorkPeriodRecord{FullCardNumber: cardNumber, PlaceRecord: place})
	}

	noConditions, err := r.ReadUint16()
	if err != nil {
		return VuActivitiesBlock{}, err
	}
	conditions := make([]SpecificConditionRecord, 0, noConditions)
	for i := 0; i < int(noConditions); i++ {
		cond, err := DecodeSpecificConditionRecord(r)
		if err != nil {
			return VuActivitiesBlock{}, err
		}
		conditions = append(conditions, cond)
	}

	signature, err := DecodeSignature(r)
	if err != nil {
		return VuActivitiesBlock{}, err
	}

	return VuActivitiesBlock{
		TimeReal:                 timeReal,
		OdometerValueMidnight:    odometer,
		CardIWRecords:            iwRecords,
		ActivityChangeInfos:      activities,
		PlaceRecords:             places,
		SpecificConditionRecords: conditions,
		Signature:                signature,
	}, nil
}

// VuFaultRecord / VuEventRecord share a layout: a classified occurrence
// with begin/end times and the cards, if any, inserted in each slot at
// both ends. Data Dictionary sections 2.200-2.201 and 2.196-2.197.
type vuOccurrenceCards struct {
	DriverSlotBegin   *FullCardNumber
	CoDriverSlotBegin *FullCardNumber
	DriverSlotEnd     *FullCardNumber
	CoDriverSlotEnd   *FullCardNumber
}

func decodeVuOccurrenceCards(r *byteio.Reader) (vuOccurrenceCards, error) {
	driverBegin, err := DecodeFullCardNumber(r)
	if err != nil {
		return vuOccurrenceCards{}, err
	}
	coDriverBegin, err := DecodeFullCardNumber(r)
	if err != nil {
		return vuOccurrenceCards{}, err
	}
	driverEnd, err := DecodeFullCardNumber(r)
	if err != nil {
		return vuOccurrenceCards{}, err
	}
	coDriverEnd, err := DecodeFullCardNumber(r)
	if err != nil {
		return vuOccurrenceCards{}, err
	}
	return vuOccurrenceCards{
		DriverSlotBegin:   driverBegin,
		CoDriverSlotBegin: coDriverBegin,
		DriverSlotEnd:     driverEnd,
		CoDriverSlotEnd:   coDriverEnd,
	}, nil
}

// VuFaultRecord is a single equipment fault recorded by the vehicle unit,
// Data Dictionary section 2.201.
type VuFaultRecord struct {
	FaultType                    EventFaultType          `json:"faultType"`
	FaultRecordPurpose           EventFaultRecordPurpose `json:"faultRecordPurpose"`
	FaultBeginTime               TimeOrZero              `json:"faultBeginTime"`
	FaultEndTime                 TimeOrZero              `json:"faultEndTime"`
	CardNumberDriverSlotBegin    *FullCardNumber         `json:"cardNumberDriverSlotBegin,omitempty"`
	CardNumberCoDriverSlotBegin  *FullCardNumber         `json:"cardNumberCoDriverSlotBegin,omitempty"`
	CardNumberDriverSlotEnd      *FullCardNumber         `json:"cardNumberDriverSlotEnd,omitempty"`
	CardNumberCoDriverSlotEnd    *FullCardNumber         `json:"cardNumberCoDriverSlotEnd,omitempty"`
}

// DecodeVuFaultRecord decodes a fixed-size VuFaultRecord.
func DecodeVuFaultRecord(r *byteio.Reader) (VuFaultRecord, error) {
	faultType, err := DecodeEventFaultType(r)
	if err != nil {
		return VuFaultRecord{}, err
	}
	purpose, err := DecodeEventFaultRecordPurpose(r)
	if err != nil {
		return VuFaultRecord{}, err
	}
	begin, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuFaultRecord{}, err
	}
	end, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuFaultRecord{}, err
	}
	cards, err := decodeVuOccurrenceCards(r)
	if err != nil {
		return VuFaultRecord{}, err
	}
	return VuFaultRecord{
		FaultType:                   faultType,
		FaultRecordPurpose:          purpose,
		FaultBeginTime:              begin,
		FaultEndTime:                end,
		CardNumberDriverSlotBegin:   cards.DriverSlotBegin,
		CardNumberCoDriverSlotBegin: cards.CoDriverSlotBegin,
		CardNumberDriverSlotEnd:     cards.DriverSlotEnd,
		CardNumberCoDriverSlotEnd:   cards.CoDriverSlotEnd,
	}, nil
}

// DecodeVuFaultData decodes EF_Faults_Data: a 1-byte count followed by
// that many VuFaultRecord.
func DecodeVuFaultData(r *byteio.Reader) ([]VuFaultRecord, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	out := make([]VuFaultRecord, 0, n)
	for i := 0; i < int(n); i++ {
		rec, err := DecodeVuFaultRecord(r)
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// VuEventRecord is a single event recorded by the vehicle unit, Data
// Dictionary section 2.197. It adds a similar-events counter to the
// VuFaultRecord layout.
type VuEventRecord struct {
	EventType                   EventFaultType          `json:"eventType"`
	EventRecordPurpose          EventFaultRecordPurpose `json:"eventRecordPurpose"`
	EventBeginTime               TimeOrZero              `json:"eventBeginTime"`
	EventEndTime                 TimeOrZero              `json:"eventEndTime"`
	CardNumberDriverSlotBegin    *FullCardNumber         `json:"cardNumberDriverSlotBegin,omitempty"`
	CardNumberCoDriverSlotBegin  *FullCardNumber         `json:"cardNumberCoDriverSlotBegin,omitempty"`
	CardNumberDriverSlotEnd      *FullCardNumber         `json:"cardNumberDriverSlotEnd,omitempty"`
	CardNumberCoDriverSlotEnd    *FullCardNumber         `json:"cardNumberCoDriverSlotEnd,omitempty"`
	SimilarEventsNumber          byte                    `json:"similarEventsNumber"`
}

// DecodeVuEventRecord decodes a fixed-size VuEventRecord.
func DecodeVuEventRecord(r *byteio.Reader) (VuEventRecord, error) {
	eventType, err := DecodeEventFaultType(r)
	if err != nil {
		return VuEventRecord{}, err
	}
	purpose, err := DecodeEventFaultRecordPurpose(r)
	if err != nil {
		return VuEventRecord{}, err
	}
	begin, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuEventRecord{}, err
	}
	end, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuEventRecord{}, err
	}
	cards, err := decodeVuOccurrenceCards(r)
	if err != nil {
		return VuEventRecord{}, err
	}
	similar, err := r.ReadUint8()
	if err != nil {
		return VuEventRecord{}, err
	}
	return VuEventRecord{
		EventType:                   eventType,
		EventRecordPurpose:          purpose,
		EventBeginTime:              begin,
		EventEndTime:                end,
		CardNumberDriverSlotBegin:   cards.DriverSlotBegin,
		CardNumberCoDriverSlotBegin: cards.CoDriverSlotBegin,
		CardNumberDriverSlotEnd:     cards.DriverSlotEnd,
		CardNumberCoDriverSlotEnd:   cards.CoDriverSlotEnd,
		SimilarEventsNumber:         similar,
	}, nil
}

// DecodeVuEventData decodes EF_Events_Data: a 1-byte count followed by
// that many VuEventRecord.
func DecodeVuEventData(r *byteio.Reader) ([]VuEventRecord, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	out := make([]VuEventRecord, 0, n)
	for i := 0; i < int(n); i++ {
		rec, err := DecodeVuEventRecord(r)
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// VuOverSpeedingControlData summarizes overspeeding since the last
// control, Data Dictionary section 2.212.
type VuOverSpeedingControlData struct {
	LastOverspeedControlTime TimeOrZero `json:"lastOverspeedControlTime"`
	FirstOverspeedSince      TimeOrZero `json:"firstOverspeedSince"`
	NumberOfOverspeedSince   byte       `json:"numberOfOverspeedSince"`
}

// DecodeVuOverSpeedingControlData decodes a fixed-size
// VuOverSpeedingControlData.
func DecodeVuOverSpeedingControlData(r *byteio.Reader) (VuOverSpeedingControlData, error) {
	last, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuOverSpeedingControlData{}, err
	}
	first, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuOverSpeedingControlData{}, err
	}
	n, err := r.ReadUint8()
	if err != nil {
		return VuOverSpeedingControlData{}, err
	}
	return VuOverSpeedingControlData{LastOverspeedControlTime: last, FirstOverspeedSince: first, NumberOfOverspeedSince: n}, nil
}

// VuOverSpeedingEventRecord is a single overspeeding event, Data
// Dictionary section 2.215.
type VuOverSpeedingEventRecord struct {
	EventType           EventFaultType          `json:"eventType"`
	EventRecordPurpose  EventFaultRecordPurpose `json:"eventRecordPurpose"`
	EventBeginTime       TimeOrZero              `json:"eventBeginTime"`
	EventEndTime         TimeOrZero              `json:"eventEndTime"`
	MaxSpeedValue        byte                    `json:"maxSpeedValue"`
	AverageSpeedValue    byte                    `json:"averageSpeedValue"`
	CardNumberDriverSlot *FullCardNumber         `json:"cardNumberDriverSlot,omitempty"`
	SimilarEventsNumber  byte                    `json:"similarEventsNumber"`
}

// DecodeVuOverSpeedingEventRecord decodes a fixed-size
// VuOverSpeedingEventRecord.
func DecodeVuOverSpeedingEventRecord(r *byteio.Reader) (VuOverSpeedingEventRecord, error) {
	eventType, err := DecodeEventFaultType(r)
	if err != nil {
		return VuOverSpeedingEventRecord{}, err
	}
	purpose, err := DecodeEventFaultRecordPurpose(r)
	if err != nil {
		return VuOverSpeedingEventRecord{}, err
	}
	begin, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuOverSpeedingEventRecord{}, err
	}
	end, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuOverSpeedingEventRecord{}, err
	}
	maxSpeed, err := r.ReadUint8()
	if err != nil {
		return VuOverSpeedingEventRecord{}, err
	}
	avgSpeed, err := r.ReadUint8()
	if err != nil {
		return VuOverSpeedingEventRecord{}, err
	}
	cardNumber, err := DecodeFullCardNumber(r)
	if err != nil {
		return VuOverSpeedingEventRecord{}, err
	}
	similar, err := r.ReadUint8()
	if err != nil {
		return VuOverSpeedingEventRecord{}, err
	}
	return VuOverSpeedingEventRecord{
		EventType:            eventType,
		EventRecordPurpose:   purpose,
		EventBeginTime:       begin,
		EventEndTime:         end,
		MaxSpeedValue:        maxSpeed,
		AverageSpeedValue:    avgSpeed,
		CardNumberDriverSlot: cardNumber,
		SimilarEventsNumber:  similar,
	}, nil
}

// DecodeVuOverSpeedingEventData decodes EF_Over_Speeding_Data's event
// list: a 1-byte count followed by that many VuOverSpeedingEventRecord.
func DecodeVuOverSpeedingEventData(r *byteio.Reader) ([]VuOverSpeedingEventRecord, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	out := make([]VuOverSpeedingEventRecord, 0, n)
	for i := 0; i < int(n); i++ {
		rec, err := DecodeVuOverSpeedingEventRecord(r)
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// VuTimeAdjustmentRecord records a workshop time adjustment, Data
// Dictionary section 2.232.
type VuTimeAdjustmentRecord struct {
	OldTimeValue        TimeOrZero      `json:"oldTimeValue"`
	NewTimeValue        TimeOrZero      `json:"newTimeValue"`
	WorkshopName        Name            `json:"workshopName"`
	WorkshopAddress     Address         `json:"workshopAddress"`
	WorkshopCardNumber  *FullCardNumber `json:"workshopCardNumber,omitempty"`
}

// DecodeVuTimeAdjustmentRecord decodes a fixed-size VuTimeAdjustmentRecord.
func DecodeVuTimeAdjustmentRecord(r *byteio.Reader) (VuTimeAdjustmentRecord, error) {
	oldTime, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuTimeAdjustmentRecord{}, err
	}
	newTime, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuTimeAdjustmentRecord{}, err
	}
	name, err := DecodeName(r)
	if err != nil {
		return VuTimeAdjustmentRecord{}, err
	}
	address, err := DecodeAddress(r)
	if err != nil {
		return VuTimeAdjustmentRecord{}, err
	}
	cardNumber, err := DecodeFullCardNumber(r)
	if err != nil {
		return VuTimeAdjustmentRecord{}, err
	}
	return VuTimeAdjustmentRecord{
		OldTimeValue:       oldTime,
		NewTimeValue:       newTime,
		WorkshopName:       name,
		WorkshopAddress:    address,
		WorkshopCardNumber: cardNumber,
	}, nil
}

// DecodeVuTimeAdjustmentData decodes EF_Time_Adjustment_Data: a 1-byte
// count followed by that many VuTimeAdjustmentRecord.
func DecodeVuTimeAdjustmentData(r *byteio.Reader) ([]VuTimeAdjustmentRecord, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	out := make([]VuTimeAdjustmentRecord, 0, n)
	for i := 0; i < int(n); i++ {
		rec, err := DecodeVuTimeAdjustmentRecord(r)
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// VuEventsAndFaultsBlock is the TREP 0x03 transfer response, Data
// Dictionary Annex IB TREP table.
type VuEventsAndFaultsBlock struct {
	FaultRecords            []VuFaultRecord             `json:"faultRecords"`
	EventRecords            []VuEventRecord             `json:"eventRecords"`
	OverSpeedingControlData VuOverSpeedingControlData   `json:"overSpeedingControlData"`
	OverSpeedingEventRecords []VuOverSpeedingEventRecord `json:"overSpeedingEventRecords"`
	TimeAdjustmentRecords   []VuTimeAdjustmentRecord    `json:"timeAdjustmentRecords"`
	Signature               Signature                   `json:"signature"`
}

// DecodeVuEventsAndFaultsBlock decodes a TREP 0x03 VuEventsAndFaultsBlock.
func DecodeVuEventsAndFaultsBlock(r *byteio.Reader) (VuEventsAndFaultsBlock, error) {
	faults, err := DecodeVuFaultData(r)
	if err != nil {
		return VuEventsAndFaultsBlock{}, err
	}
	events, err := DecodeVuEventData(r)
	if err != nil {
		return VuEventsAndFaultsBlock{}, err
	}
	overSpeedControl, err := DecodeVuOverSpeedingControlData(r)
	if err != nil {
		return VuEventsAndFaultsBlock{}, err
	}
	overSpeedEvents, err := DecodeVuOverSpeedingEventData(r)
	if err != nil {
		return VuEventsAndFaultsBlock{}, err
	}
	adjustments, err := DecodeVuTimeAdjustmentData(r)
	if err != nil {
		return VuEventsAndFaultsBlock{}, err
	}
	signature, err := DecodeSignature(r)
	if err != nil {
		return VuEventsAndFaultsBlock{}, err
	}
	return VuEventsAndFaultsBlock{
		FaultRecords:             faults,
		EventRecords:             events,
		OverSpeedingControlData:  overSpeedControl,
		OverSpeedingEventRecords: overSpeedEvents,
		TimeAdjustmentRecords:    adjustments,
		Signature:                signature,
	}, nil
}

// VuDetailedSpeedBlock is one second-by-second speed sample block (60
// samples starting at speedBlockBeginDate), Data Dictionary section
// 2.224.
type VuDetailedSpeedBlock struct {
	SpeedBlockBeginDate TimeOrZero `json:"speedBlockBeginDate"`
	SpeedsPerSecond     []byte     `json:"speedsPerSecond"`
}

const vuDetailedSpeedSamplesPerBlock = 60

// DecodeVuDetailedSpeedBlock decodes a fixed-size VuDetailedSpeedBlock (4
// bytes of TimeReal + 60 one-byte speed samples).
func DecodeVuDetailedSpeedBlock(r *byteio.Reader) (VuDetailedSpeedBlock, error) {
	begin, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuDetailedSpeedBlock{}, err
	}
	samples, err := r.ReadExact(vuDetailedSpeedSamplesPerBlock)
	if err != nil {
		return VuDetailedSpeedBlock{}, err
	}
	out := make([]byte, len(samples))
	copy(out, samples)
	return VuDetailedSpeedBlock{SpeedBlockBeginDate: begin, SpeedsPerSecond: out}, nil
}

// DecodeVuDetailedSpeedData decodes TREP 0x04's block list: a 1-byte
// count followed by that many VuDetailedSpeedBlock.
func DecodeVuDetailedSpeedData(r *byteio.Reader) ([]VuDetailedSpeedBlock, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	out := make([]VuDetailedSpeedBlock, 0, n)
	for i := 0; i < int(n); i++ {
		block, err := DecodeVuDetailedSpeedBlock(r)
		if err != nil {
			return out, err
		}
		out = append(out, block)
	}
	return out, nil
}

// VuIdentification is the vehicle unit's static manufacturer
// identification, the first part of the TREP 0x05 VuTechnicalData, Data
// Dictionary section 2.176.
type VuIdentification struct {
	VuManufacturerName         Name       `json:"vuManufacturerName"`
	VuManufacturerAddress      Address    `json:"vuManufacturerAddress"`
	VuPartNumber               string     `json:"vuPartNumber"`
	VuSerialNumber             ExtendedSerialNumber `json:"vuSerialNumber"`
	VuSoftwareVersion          string     `json:"vuSoftwareVersion"`
	VuSoftInstallationDate     TimeOrZero `json:"vuSoftInstallationDate"`
	VuManufacturingDate        TimeOrZero `json:"vuManufacturingDate"`
	VuApprovalNumber           string     `json:"vuApprovalNumber"`
}

// DecodeVuIdentification decodes a fixed-size VuIdentification.
func DecodeVuIdentification(r *byteio.Reader) (VuIdentification, error) {
	name, err := DecodeName(r)
	if err != nil {
		return VuIdentification{}, err
	}
	address, err := DecodeAddress(r)
	if err != nil {
		return VuIdentification{}, err
	}
	partNumber, err := DecodeIA5String(r, 16, CodePageDefault)
	if err != nil {
		return VuIdentification{}, err
	}
	serialNumber, err := DecodeExtendedSerialNumber(r)
	if err != nil {
		return VuIdentification{}, err
	}
	softwareVersion, err := DecodeIA5String(r, 4, CodePageDefault)
	if err != nil {
		return VuIdentification{}, err
	}
	softInstallDate, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuIdentification{}, err
	}
	manufacturingDate, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuIdentification{}, err
	}
	approvalNumber, err := DecodeVuApprovalNumber(r)
	if err != nil {
		return VuIdentification{}, err
	}
	return VuIdentification{
		VuManufacturerName:     name,
		VuManufacturerAddress:  address,
		VuPartNumber:           partNumber,
		VuSerialNumber:         serialNumber,
		VuSoftwareVersion:      softwareVersion,
		VuSoftInstallationDate: softInstallDate,
		VuManufacturingDate:    manufacturingDate,
		VuApprovalNumber:       approvalNumber,
	}, nil
}
