package dd

import (
	"time"

	"github.com/tachoscan/tachodecode/byteio"
)

// ExtendedSerialNumber identifies a component (card or vehicle unit) by
// serial number, month/year of production, component type and
// manufacturer, Data Dictionary section 2.72.
type ExtendedSerialNumber struct {
	SerialNumber     uint32           `json:"serialNumber"`
	MonthYear        MonthYear        `json:"monthYear"`
	Type             byte             `json:"type"`
	ManufacturerCode ManufacturerCode `json:"manufacturerCode"`
}

// DecodeExtendedSerialNumber decodes an 8-byte ExtendedSerialNumber.
func DecodeExtendedSerialNumber(r *byteio.Reader) (ExtendedSerialNumber, error) {
	serial, err := r.ReadUint32()
	if err != nil {
		return ExtendedSerialNumber{}, err
	}
	monthYear, err := DecodeMonthYear(r)
	if err != nil {
		return ExtendedSerialNumber{}, err
	}
	typ, err := r.ReadUint8()
	if err != nil {
		return ExtendedSerialNumber{}, err
	}
	manufacturer, err := DecodeManufacturerCode(r)
	if err != nil {
		return ExtendedSerialNumber{}, err
	}
	return ExtendedSerialNumber{
		SerialNumber:     serial,
		MonthYear:        monthYear,
		Type:             typ,
		ManufacturerCode: manufacturer,
	}, nil
}

// SensorSerialNumber and VuApprovalNumber/SensorApprovalNumber/
// CardApprovalNumber are all plain IA5 approval-number strings of differing
// widths; SensorSerialNumber additionally reuses the ExtendedSerialNumber
// layout (Data Dictionary sections 2.131, 2.172, 2.11).
type SensorSerialNumber = ExtendedSerialNumber

// DecodeCardApprovalNumber decodes an 8-byte IA5 CardApprovalNumber.
func DecodeCardApprovalNumber(r *byteio.Reader) (string, error) {
	return DecodeIA5String(r, 8, CodePageDefault)
}

// DecodeSensorApprovalNumber decodes an 8-byte IA5 SensorApprovalNumber.
func DecodeSensorApprovalNumber(r *byteio.Reader) (string, error) {
	return DecodeIA5String(r, 8, CodePageDefault)
}

// DecodeVuApprovalNumber decodes an 8-byte IA5 VuApprovalNumber.
func DecodeVuApprovalNumber(r *byteio.Reader) (string, error) {
	return DecodeIA5String(r, 8, CodePageDefault)
}

// EmbedderIcAssemblerId identifies the entity that assembled a card's
// integrated circuit, Data Dictionary section 2.65.
type EmbedderIcAssemblerId struct {
	CountryCode             string `json:"countryCode"`
	ModuleEmbedder          string `json:"moduleEmbedder"`
	ManufacturerInformation byte   `json:"manufacturerInformation"`
}

// DecodeEmbedderIcAssemblerId decodes a 5-byte EmbedderIcAssemblerId (2-byte
// IA5 country code + 2-byte BCD module embedder + 1-byte manufacturer info).
func DecodeEmbedderIcAssemblerId(r *byteio.Reader) (EmbedderIcAssemblerId, error) {
	country, err := DecodeIA5String(r, 2, CodePageDefault)
	if err != nil {
		return EmbedderIcAssemblerId{}, err
	}
	moduleEmbedder, err := DecodeBCDString(r, 2)
	if err != nil {
		return EmbedderIcAssemblerId{}, err
	}
	info, err := r.ReadUint8()
	if err != nil {
		return EmbedderIcAssemblerId{}, err
	}
	return EmbedderIcAssemblerId{
		CountryCode:             country,
		ModuleEmbedder:          moduleEmbedder,
		ManufacturerInformation: info,
	}, nil
}

// CardIccIdentification describes a card's integrated circuit, Data
// Dictionary section 2.23.
type CardIccIdentification struct {
	ClockStop               byte                   `json:"clockStop"`
	CardExtendedSerialNumber ExtendedSerialNumber  `json:"cardExtendedSerialNumber"`
	CardApprovalNumber      string                 `json:"cardApprovalNumber"`
	CardPersonaliserID      ManufacturerCode       `json:"cardPersonaliserId"`
	EmbedderIcAssemblerID   EmbedderIcAssemblerId  `json:"embedderIcAssemblerId"`
	ICIdentifier            [2]byte                `json:"icIdentifier"`
}

// DecodeCardIccIdentification decodes a 25-byte CardIccIdentification.
func DecodeCardIccIdentification(r *byteio.Reader) (CardIccIdentification, error) {
	clockStop, err := r.ReadUint8()
	if err != nil {
		return CardIccIdentification{}, err
	}
	serial, err := DecodeExtendedSerialNumber(r)
	if err != nil {
		return CardIccIdentification{}, err
	}
	approval, err := DecodeCardApprovalNumber(r)
	if err != nil {
		return CardIccIdentification{}, err
	}
	personaliser, err := DecodeManufacturerCode(r)
	if err != nil {
		return CardIccIdentification{}, err
	}
	embedder, err := DecodeEmbedderIcAssemblerId(r)
	if err != nil {
		return CardIccIdentification{}, err
	}
	icID, err := r.ReadExact(2)
	if err != nil {
		return CardIccIdentification{}, err
	}
	return CardIccIdentification{
		ClockStop:                clockStop,
		CardExtendedSerialNumber: serial,
		CardApprovalNumber:       approval,
		CardPersonaliserID:       personaliser,
		EmbedderIcAssemblerID:    embedder,
		ICIdentifier:             [2]byte{icID[0], icID[1]},
	}, nil
}

// Certificate is an opaque 194-byte public-key certificate, Data Dictionary
// section 2.41. Signature verification is out of scope (see SPEC_FULL.md
// Non-goals); the raw bytes are preserved for completeness of the
// download's structure.
type Certificate []byte

// DecodeCertificate decodes a 194-byte Certificate.
func DecodeCertificate(r *byteio.Reader) (Certificate, error) {
	raw, err := r.ReadExact(194)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return Certificate(out), nil
}

// Signature is an opaque 128-byte digital signature, Data Dictionary
// section 2.149. As with Certificate, verification is out of scope.
type Signature []byte

// DecodeSignature decodes a 128-byte Signature.
func DecodeSignature(r *byteio.Reader) (Signature, error) {
	raw, err := r.ReadExact(128)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return Signature(out), nil
}

// PreviousVehicleInfo records the previous vehicle used by the driver card
// holder and when the card was withdrawn from it, Data Dictionary section
// 2.118.
type PreviousVehicleInfo struct {
	VehicleRegistrationIdentification VehicleRegistrationIdentification `json:"vehicleRegistrationIdentification"`
	CardWithdrawalTime                 time.Time                        `json:"cardWithdrawalTime"`
}

// DecodePreviousVehicleInfo decodes a 19-byte PreviousVehicleInfo.
func DecodePreviousVehicleInfo(r *byteio.Reader) (PreviousVehicleInfo, error) {
	reg, err := DecodeVehicleRegistrationIdentification(r)
	if err != nil {
		return PreviousVehicleInfo{}, err
	}
	withdrawal, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return PreviousVehicleInfo{}, err
	}
	return PreviousVehicleInfo{
		VehicleRegistrationIdentification: reg,
		CardWithdrawalTime:                 withdrawal,
	}, nil
}

// PlaceRecord is a single daily work period place entry (begin/end of a
// period, where the vehicle was), Data Dictionary section 2.117.
type PlaceRecord struct {
	EntryTime              time.Time                `json:"entryTime"`
	EntryType              EntryTypeDailyWorkPeriod `json:"entryType"`
	DailyWorkPeriodCountry NationNumeric            `json:"dailyWorkPeriodCountry"`
	DailyWorkPeriodRegion  RegionNumeric            `json:"dailyWorkPeriodRegion"`
	VehicleOdometerValue   uint32                   `json:"vehicleOdometerValue"`
}

// DecodePlaceRecord decodes a 10-byte PlaceRecord. A zero entry time marks
// an unused slot in the card's ring buffer; callers filter these out
// rather than treating them as records (spec.md section 4.3 sentinel
// detection).
func DecodePlaceRecord(r *byteio.Reader) (PlaceRecord, bool, error) {
	entryTime, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return PlaceRecord{}, false, err
	}
	entryType, err := DecodeEntryTypeDailyWorkPeriod(r)
	if err != nil {
		return PlaceRecord{}, false, err
	}
	country, err := DecodeNationNumeric(r)
	if err != nil {
		return PlaceRecord{}, false, err
	}
	region, err := DecodeRegionNumeric(r)
	if err != nil {
		return PlaceRecord{}, false, err
	}
	odometer, err := DecodeOdometerShort(r)
	if err != nil {
		return PlaceRecord{}, false, err
	}
	if entryTime.IsZero() {
		return PlaceRecord{}, false, nil
	}
	return PlaceRecord{
		EntryTime:              entryTime,
		EntryType:               entryType,
		DailyWorkPeriodCountry: country,
		DailyWorkPeriodRegion:  region,
		VehicleOdometerValue:   odometer,
	}, true, nil
}

// PlaceRecordGen2 is PlaceRecord as extended in Gen2: an additional GNSS
// fix taken at period entry is appended to the Gen1 layout, Data
// Dictionary section 2.117 (Gen2 variant).
type PlaceRecordGen2 struct {
	PlaceRecord
	EntryGNSSPlaceRecord GNSSPlaceRecord `json:"entryGnssPlaceRecord"`
}

// DecodePlaceRecordGen2 decodes a 21-byte Gen2 PlaceRecord. As with
// DecodePlaceRecord, a zero entry time marks an unused slot.
func DecodePlaceRecordGen2(r *byteio.Reader) (PlaceRecordGen2, bool, error) {
	base, ok, err := DecodePlaceRecord(r)
	if err != nil {
		return PlaceRecordGen2{}, false, err
	}
	gnss, err := DecodeGNSSPlaceRecord(r)
	if err != nil {
		return PlaceRecordGen2{}, false, err
	}
	if !ok {
		return PlaceRecordGen2{}, false, nil
	}
	return PlaceRecordGen2{PlaceRecord: base, EntryGNSSPlaceRecord: gnss}, true, nil
}

// SpecificConditionRecord records the start/end of an out-of-scope period
// or ferry/train crossing, Data Dictionary section 2.152.
type SpecificConditionRecord struct {
	EntryTime            time.Time             `json:"entryTime"`
	SpecificConditionType SpecificConditionType `json:"specificConditionType"`
}

// DecodeSpecificConditionRecord decodes a 5-byte SpecificConditionRecord.
// An RFU condition type is rejected: the source format never stores RFU
// there, so a non-zero one signals a malformed record rather than an
// unused slot (unlike PlaceRecord, which signals "unused" via a zero
// timestamp).
func DecodeSpecificConditionRecord(r *byteio.Reader) (SpecificConditionRecord, error) {
	entryTime, err := DecodeTimeReal(r)
	if err != nil {
		return SpecificConditionRecord{}, err
	}
	condition, err := DecodeSpecificConditionType(r)
	if err != nil {
		return SpecificConditionRecord{}, err
	}
	if condition == SpecificConditionTypeRFU {
		return SpecificConditionRecord{}, &InvalidEnumValueError{Field: "SpecificConditionRecord.SpecificConditionType", Value: 0}
	}
	return SpecificConditionRecord{
		EntryTime:             entryTime,
		SpecificConditionType: condition,
	}, nil
}

// DecodeSpecificConditions decodes a size-delimited array of
// SpecificConditionRecord, skipping any record that fails to parse rather
// than aborting the whole array (matching the ring/optional-record
// tolerance elsewhere in this package), and sorts the result by entry
// time ascending.
func DecodeSpecificConditions(r *byteio.Reader, size int) ([]SpecificConditionRecord, error) {
	const recordSize = 5
	count := size / recordSize
	out := make([]SpecificConditionRecord, 0, count)
	for i := 0; i < count; i++ {
		rec, err := DecodeSpecificConditionRecord(r)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	sortSpecificConditionsByTime(out)
	return out, nil
}

func sortSpecificConditionsByTime(recs []SpecificConditionRecord) {
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && recs[j-1].EntryTime.After(recs[j].EntryTime); j-- {
			recs[j-1], recs[j] = recs[j], recs[j-1]
		}
	}
}
