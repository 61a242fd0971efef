package dd

import "github.com/tachoscan/tachodecode/byteio"

// SensorPaired records the motion sensor paired to the vehicle unit and
// the date that pairing began, Data Dictionary section 2.144.
type SensorPaired struct {
	SensorSerialNumber       SensorSerialNumber `json:"sensorSerialNumber"`
	SensorApprovalNumber     string             `json:"sensorApprovalNumber"`
	SensorPairingDateFirst   TimeOrZero         `json:"sensorPairingDateFirst"`
}

// DecodeSensorPaired decodes a fixed-size SensorPaired.
func DecodeSensorPaired(r *byteio.Reader) (SensorPaired, error) {
	serial, err := DecodeExtendedSerialNumber(r)
	if err != nil {
		return SensorPaired{}, err
	}
	approval, err := DecodeSensorApprovalNumber(r)
	if err != nil {
		return SensorPaired{}, err
	}
	pairingDate, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return SensorPaired{}, err
	}
	return SensorPaired{
		SensorSerialNumber:     serial,
		SensorApprovalNumber:   approval,
		SensorPairingDateFirst: pairingDate,
	}, nil
}

// VuCalibrationRecord is one calibration or installation event recorded
// by the vehicle unit, Data Dictionary section 2.174.
type VuCalibrationRecord struct {
	CalibrationPurpose                CalibrationPurpose                `json:"calibrationPurpose"`
	WorkshopName                      Name                               `json:"workshopName"`
	WorkshopAddress                   Address                            `json:"workshopAddress"`
	WorkshopCardNumber                *FullCardNumber                    `json:"workshopCardNumber,omitempty"`
	WorkshopCardExpiryDate            TimeOrZero                         `json:"workshopCardExpiryDate"`
	VehicleIdentificationNumber       string                             `json:"vehicleIdentificationNumber"`
	VehicleRegistrationIdentification VehicleRegistrationIdentification `json:"vehicleRegistrationIdentification"`
	WVehicleCharacteristicConstant    uint16                             `json:"wVehicleCharacteristicConstant"`
	KConstantOfRecordingEquipment     uint16                             `json:"kConstantOfRecordingEquipment"`
	LTyreCircumference                uint16                             `json:"lTyreCircumference"`
	TyreSize                          string                             `json:"tyreSize"`
	AuthorisedSpeed                   byte                               `json:"authorisedSpeed"`
	OldOdometerValue                  uint32                             `json:"oldOdometerValue"`
	NewOdometerValue                  uint32                             `json:"newOdometerValue"`
	OldTimeValue                      TimeOrZero                         `json:"oldTimeValue"`
	NewTimeValue                      TimeOrZero                         `json:"newTimeValue"`
	NextCalibrationDate               TimeOrZero                         `json:"nextCalibrationDate"`
}

// DecodeVuCalibrationRecord decodes a fixed-size VuCalibrationRecord.
func DecodeVuCalibrationRecord(r *byteio.Reader) (VuCalibrationRecord, error) {
	purpose, err := DecodeCalibrationPurpose(r)
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	name, err := DecodeName(r)
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	address, err := DecodeAddress(r)
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	cardNumber, err := DecodeFullCardNumber(r)
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	expiry, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	vin, err := DecodeIA5String(r, 17, CodePageDefault)
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	reg, err := DecodeVehicleRegistrationIdentification(r)
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	wConstant, err := r.ReadUint16()
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	kConstant, err := r.ReadUint16()
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	lCircumference, err := r.ReadUint16()
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	tyreSize, err := DecodeIA5String(r, 15, CodePageDefault)
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	speed, err := r.ReadUint8()
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	oldOdometer, err := DecodeOdometerShort(r)
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	newOdometer, err := DecodeOdometerShort(r)
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	oldTime, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	newTime, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	nextCalibration, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return VuCalibrationRecord{}, err
	}
	return VuCalibrationRecord{
		CalibrationPurpose:                 purpose,
		WorkshopName:                       name,
		WorkshopAddress:                    address,
		WorkshopCardNumber:                 cardNumber,
		WorkshopCardExpiryDate:             expiry,
		VehicleIdentificationNumber:        vin,
		VehicleRegistrationIdentification: reg,
		WVehicleCharacteristicConstant:     wConstant,
		KConstantOfRecordingEquipment:      kConstant,
		LTyreCircumference:                 lCircumference,
		TyreSize:                           tyreSize,
		AuthorisedSpeed:                    speed,
		OldOdometerValue:                   oldOdometer,
		NewOdometerValue:                   newOdometer,
		OldTimeValue:                       oldTime,
		NewTimeValue:                       newTime,
		NextCalibrationDate:                nextCalibration,
	}, nil
}

// VuCalibrationData is the vehicle unit's full calibration history, Data
// Dictionary section 2.173.
type VuCalibrationData struct {
	NoOfVuCalibrationRecords uint8                  `json:"noOfVuCalibrationRecords"`
	VuCalibrationRecords     []VuCalibrationRecord  `json:"vuCalibrationRecords"`
}

// DecodeVuCalibrationData decodes a 1-byte count followed by that many
// VuCalibrationRecord.
func DecodeVuCalibrationData(r *byteio.Reader) (VuCalibrationData, error) {
	count, err := r.ReadUint8()
	if err != nil {
		return VuCalibrationData{}, err
	}
	records := make([]VuCalibrationRecord, 0, count)
	for i := 0; i < int(count); i++ {
		rec, err := DecodeVuCalibrationRecord(r)
		if err != nil {
			return VuCalibrationData{}, err
		}
		records = append(records, rec)
	}
	return VuCalibrationData{NoOfVuCalibrationRecords: count, VuCalibrationRecords: records}, nil
}

// VuTechnicalData is the TREP 0x05 transfer response: the vehicle
// unit's static identification, its paired motion sensor, and its
// calibration history, Data Dictionary Annex IB TREP table.
type VuTechnicalData struct {
	VuIdentification   VuIdentification   `json:"vuIdentification"`
	SensorPaired       SensorPaired       `json:"sensorPaired"`
	VuCalibrationData  VuCalibrationData  `json:"vuCalibrationData"`
	Signature          Signature          `json:"signature"`
}

// DecodeVuTechnicalData decodes a TREP 0x05 VuTechnicalData.
func DecodeVuTechnicalData(r *byteio.Reader) (VuTechnicalData, error) {
	identification, err := DecodeVuIdentification(r)
	if err != nil {
		return VuTechnicalData{}, err
	}
	sensor, err := DecodeSensorPaired(r)
	if err != nil {
		return VuTechnicalData{}, err
	}
	calibration, err := DecodeVuCalibrationData(r)
	if err != nil {
		return VuTechnicalData{}, err
	}
	signature, err := DecodeSignature(r)
	if err != nil {
		return VuTechnicalData{}, err
	}
	return VuTechnicalData{
		VuIdentification:  identification,
		SensorPaired:      sensor,
		VuCalibrationData: calibration,
		Signature:         signature,
	}, nil
}
