package dd

import (
	"github.com/tachoscan/tachodecode/byteio"
)

// GNSSAccuracy is a 1-byte confidence value in [0,100], Data Dictionary
// section 2.77.
type GNSSAccuracy byte

// DecodeGNSSAccuracy decodes a 1-byte GNSSAccuracy, rejecting values above
// 100 as the regulation defines no meaning for them.
func DecodeGNSSAccuracy(r *byteio.Reader) (GNSSAccuracy, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	if b > 100 {
		return 0, &InvalidEnumValueError{Field: "GNSSAccuracy", Value: b}
	}
	return GNSSAccuracy(b), nil
}

// GNSSPlaceRecord is a timestamped GNSS fix, Data Dictionary section 2.80.
type GNSSPlaceRecord struct {
	TimeStamp      TimeOrZero     `json:"timeStamp"`
	GNSSAccuracy   GNSSAccuracy   `json:"gnssAccuracy"`
	GeoCoordinates GeoCoordinates `json:"geoCoordinates"`
}

// DecodeGNSSPlaceRecord decodes an 11-byte GNSSPlaceRecord.
func DecodeGNSSPlaceRecord(r *byteio.Reader) (GNSSPlaceRecord, error) {
	timeStamp, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return GNSSPlaceRecord{}, err
	}
	accuracy, err := DecodeGNSSAccuracy(r)
	if err != nil {
		return GNSSPlaceRecord{}, err
	}
	geo := DecodeGeoCoordinates(r)
	return GNSSPlaceRecord{TimeStamp: timeStamp, GNSSAccuracy: accuracy, GeoCoordinates: geo}, nil
}

// DecodeVuSoftwareVersion decodes a 4-byte IA5 VuSoftwareVersion.
func DecodeVuSoftwareVersion(r *byteio.Reader) (string, error) {
	return DecodeIA5String(r, 4, CodePageDefault)
}

// CardVehicleUnitRecord is a single vehicle unit the driver card holder
// used, Data Dictionary section 2.40 (Gen2).
type CardVehicleUnitRecord struct {
	TimeStamp         TimeOrZero       `json:"timeStamp"`
	ManufacturerCode  ManufacturerCode `json:"manufacturerCode"`
	DeviceID          byte             `json:"deviceId"`
	VuSoftwareVersion string           `json:"vuSoftwareVersion"`
}

const cardVehicleUnitRecordSize = 10

// DecodeCardVehicleUnitRecord decodes a 10-byte CardVehicleUnitRecord. A
// zero timestamp marks an unused slot (sentinel, mirroring PlaceRecord).
func DecodeCardVehicleUnitRecord(r *byteio.Reader) (CardVehicleUnitRecord, bool, error) {
	timeStamp, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardVehicleUnitRecord{}, false, err
	}
	manufacturer, err := DecodeManufacturerCode(r)
	if err != nil {
		return CardVehicleUnitRecord{}, false, err
	}
	deviceID, err := r.ReadUint8()
	if err != nil {
		return CardVehicleUnitRecord{}, false, err
	}
	version, err := DecodeVuSoftwareVersion(r)
	if err != nil {
		return CardVehicleUnitRecord{}, false, err
	}
	if timeStamp.IsZero() {
		return CardVehicleUnitRecord{}, false, nil
	}
	return CardVehicleUnitRecord{
		TimeStamp:         timeStamp,
		ManufacturerCode:  manufacturer,
		DeviceID:          deviceID,
		VuSoftwareVersion: version,
	}, true, nil
}

// CardVehicleUnitsUsed is the EF_Vehicle_Units_Used elementary file
// introduced in Gen2, Data Dictionary section 2.40.
type CardVehicleUnitsUsed struct {
	NoOfCardVehicleUnitRecords uint16                  `json:"noOfCardVehicleUnitRecords"`
	CardVehicleUnitRecords     []CardVehicleUnitRecord `json:"cardVehicleUnitRecords"`
}

// DecodeCardVehicleUnitsUsed decodes a size-delimited CardVehicleUnitsUsed:
// a 2-byte declared-count field followed by a flat array of
// CardVehicleUnitRecord sized from the remaining payload, sorted
// descending by timestamp (newest first, matching the regulation's
// "most recently used first" ordering for this one file, unlike the
// ascending order used elsewhere for places/GNSS).
func DecodeCardVehicleUnitsUsed(r *byteio.Reader, size int) (CardVehicleUnitsUsed, error) {
	declared, err := r.ReadUint16()
	if err != nil {
		return CardVehicleUnitsUsed{}, err
	}
	count := (size - 2) / cardVehicleUnitRecordSize
	records := make([]CardVehicleUnitRecord, 0, count)
	for i := 0; i < count; i++ {
		rec, ok, err := DecodeCardVehicleUnitRecord(r)
		if err != nil {
			continue
		}
		if ok {
			records = append(records, rec)
		}
	}
	sortCardVehicleUnitRecordsDescending(records)
	return CardVehicleUnitsUsed{NoOfCardVehicleUnitRecords: declared, CardVehicleUnitRecords: records}, nil
}

func sortCardVehicleUnitRecordsDescending(recs []CardVehicleUnitRecord) {
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && recs[j-1].TimeStamp.Before(recs[j].TimeStamp); j-- {
			recs[j-1], recs[j] = recs[j], recs[j-1]
		}
	}
}

// GNSSAccumulatedDrivingRecord is a periodic GNSS fix taken during
// accumulated driving, Data Dictionary section 2.79.
type GNSSAccumulatedDrivingRecord struct {
	TimeStamp            TimeOrZero      `json:"timeStamp"`
	GNSSPlaceRecord       GNSSPlaceRecord `json:"gnssPlaceRecord"`
	VehicleOdometerValue uint32          `json:"vehicleOdometerValue"`
}

const gnssAccumulatedDrivingRecordSize = 18

// DecodeGNSSAccumulatedDrivingRecord decodes an 18-byte
// GNSSAccumulatedDrivingRecord. A zero timestamp marks an unused slot.
func DecodeGNSSAccumulatedDrivingRecord(r *byteio.Reader) (GNSSAccumulatedDrivingRecord, bool, error) {
	timeStamp, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return GNSSAccumulatedDrivingRecord{}, false, err
	}
	place, err := DecodeGNSSPlaceRecord(r)
	if err != nil {
		return GNSSAccumulatedDrivingRecord{}, false, err
	}
	odometer, err := DecodeOdometerShort(r)
	if err != nil {
		return GNSSAccumulatedDrivingRecord{}, false, err
	}
	if timeStamp.IsZero() {
		return GNSSAccumulatedDrivingRecord{}, false, nil
	}
	return GNSSAccumulatedDrivingRecord{TimeStamp: timeStamp, GNSSPlaceRecord: place, VehicleOdometerValue: odometer}, true, nil
}

// GNSSAccumulatedDriving is the EF_GNSS_Accumulated_Driving elementary
// file introduced in Gen2, Data Dictionary section 2.79.
type GNSSAccumulatedDriving struct {
	GNSSADPointerNewestRecord     uint16                         `json:"gnssAdPointerNewestRecord"`
	GNSSAccumulatedDrivingRecords []GNSSAccumulatedDrivingRecord `json:"gnssAccumulatedDrivingRecords"`
}

// DecodeGNSSAccumulatedDriving decodes a size-delimited
// GNSSAccumulatedDriving: a 2-byte newest-record pointer followed by a
// flat array of GNSSAccumulatedDrivingRecord, sorted ascending by
// timestamp.
func DecodeGNSSAccumulatedDriving(r *byteio.Reader, size int) (GNSSAccumulatedDriving, error) {
	pointer, err := r.ReadUint16()
	if err != nil {
		return GNSSAccumulatedDriving{}, err
	}
	count := (size - 2) / gnssAccumulatedDrivingRecordSize
	records := make([]GNSSAccumulatedDrivingRecord, 0, count)
	for i := 0; i < count; i++ {
		rec, ok, err := DecodeGNSSAccumulatedDrivingRecord(r)
		if err != nil {
			continue
		}
		if ok {
			records = append(records, rec)
		}
	}
	sortGNSSAccumulatedDrivingRecordsByTime(records)
	return GNSSAccumulatedDriving{GNSSADPointerNewestRecord: pointer, GNSSAccumulatedDrivingRecords: records}, nil
}

func sortGNSSAccumulatedDrivingRecordsByTime(recs []GNSSAccumulatedDrivingRecord) {
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && recs[j-1].TimeStamp.After(recs[j].TimeStamp); j-- {
			recs[j-1], recs[j] = recs[j], recs[j-1]
		}
	}
}
