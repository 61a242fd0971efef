package dd

import "github.com/tachoscan/tachodecode/byteio"

// PositionAuthenticationStatus reports whether a Gen2V2 position record's
// coordinates were cryptographically authenticated by the GNSS receiver,
// Data Dictionary section 2.117a.
type PositionAuthenticationStatus byte

const (
	PositionAuthenticationStatusNotAuthenticated PositionAuthenticationStatus = 0x00
	PositionAuthenticationStatusAuthenticated    PositionAuthenticationStatus = 0x01
)

// DecodePositionAuthenticationStatus decodes a 1-byte
// PositionAuthenticationStatus. Values above 0x01 are RFU and pass through
// unchanged rather than erroring, matching the tolerant treatment of other
// RFU-bearing enums.
func DecodePositionAuthenticationStatus(r *byteio.Reader) (PositionAuthenticationStatus, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	return PositionAuthenticationStatus(b), nil
}

// GNSSPlaceAuthRecord is a Gen2V2 GNSS fix with an authentication-status
// tail, Data Dictionary section 2.79c. It supersedes GNSSPlaceRecord inside
// the border-crossing and load/unload records introduced in Gen2V2.
type GNSSPlaceAuthRecord struct {
	TimeStamp              TimeOrZero                   `json:"timeStamp"`
	GNSSAccuracy           GNSSAccuracy                  `json:"gnssAccuracy"`
	GeoCoordinates         GeoCoordinates                `json:"geoCoordinates"`
	AuthenticationStatus   PositionAuthenticationStatus  `json:"authenticationStatus"`
}

// DecodeGNSSPlaceAuthRecord decodes a 12-byte GNSSPlaceAuthRecord.
func DecodeGNSSPlaceAuthRecord(r *byteio.Reader) (GNSSPlaceAuthRecord, error) {
	timeStamp, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return GNSSPlaceAuthRecord{}, err
	}
	accuracy, err := DecodeGNSSAccuracy(r)
	if err != nil {
		return GNSSPlaceAuthRecord{}, err
	}
	geo := DecodeGeoCoordinates(r)
	status, err := DecodePositionAuthenticationStatus(r)
	if err != nil {
		return GNSSPlaceAuthRecord{}, err
	}
	return GNSSPlaceAuthRecord{
		TimeStamp:            timeStamp,
		GNSSAccuracy:         accuracy,
		GeoCoordinates:       geo,
		AuthenticationStatus: status,
	}, nil
}

// PlaceAuthStatusRecord pairs an entry time with its authentication
// status, Data Dictionary section 2.116b.
type PlaceAuthStatusRecord struct {
	EntryTime            TimeOrZero                  `json:"entryTime"`
	AuthenticationStatus PositionAuthenticationStatus `json:"authenticationStatus"`
}

const placeAuthStatusRecordSize = 5

// DecodePlaceAuthStatusRecord decodes a 5-byte PlaceAuthStatusRecord.
func DecodePlaceAuthStatusRecord(r *byteio.Reader) (PlaceAuthStatusRecord, error) {
	entryTime, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return PlaceAuthStatusRecord{}, err
	}
	status, err := DecodePositionAuthenticationStatus(r)
	if err != nil {
		return PlaceAuthStatusRecord{}, err
	}
	return PlaceAuthStatusRecord{EntryTime: entryTime, AuthenticationStatus: status}, nil
}

// CardPlacesAuthDailyWorkPeriod is the Gen2V2 authentication-status
// companion to CardPlaceDailyWorkPeriod, Data Dictionary section 2.26a.
type CardPlacesAuthDailyWorkPeriod struct {
	PlaceAuthPointerNewestRecord uint16                  `json:"placeAuthPointerNewestRecord"`
	PlaceAuthStatusRecords       []PlaceAuthStatusRecord `json:"placeAuthStatusRecords"`
}

// DecodeCardPlacesAuthDailyWorkPeriod decodes a size-delimited
// CardPlacesAuthDailyWorkPeriod: a 2-byte newest-record pointer followed by
// a flat array of PlaceAuthStatusRecord. Parsing stops at the first record
// that fails to decode.
func DecodeCardPlacesAuthDailyWorkPeriod(r *byteio.Reader, size int) (CardPlacesAuthDailyWorkPeriod, error) {
	pointer, err := r.ReadUint16()
	if err != nil {
		return CardPlacesAuthDailyWorkPeriod{}, err
	}
	count := (size - 2) / placeAuthStatusRecordSize
	records := make([]PlaceAuthStatusRecord, 0, count)
	for i := 0; i < count; i++ {
		rec, err := DecodePlaceAuthStatusRecord(r)
		if err != nil {
			break
		}
		records = append(records, rec)
	}
	return CardPlacesAuthDailyWorkPeriod{PlaceAuthPointerNewestRecord: pointer, PlaceAuthStatusRecords: records}, nil
}

// GNSSAuthStatusADRecord is the Gen2V2 authentication-status companion to
// GNSSAccumulatedDrivingRecord, Data Dictionary section 2.79a.
type GNSSAuthStatusADRecord struct {
	TimeStamp            TimeOrZero                   `json:"timeStamp"`
	AuthenticationStatus PositionAuthenticationStatus `json:"authenticationStatus"`
}

const gnssAuthStatusADRecordSize = 5

// DecodeGNSSAuthStatusADRecord decodes a 5-byte GNSSAuthStatusADRecord.
func DecodeGNSSAuthStatusADRecord(r *byteio.Reader) (GNSSAuthStatusADRecord, error) {
	timeStamp, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return GNSSAuthStatusADRecord{}, err
	}
	status, err := DecodePositionAuthenticationStatus(r)
	if err != nil {
		return GNSSAuthStatusADRecord{}, err
	}
	return GNSSAuthStatusADRecord{TimeStamp: timeStamp, AuthenticationStatus: status}, nil
}

// GNSSAuthAccumulatedDriving is the Gen2V2 authentication-status
// companion to GNSSAccumulatedDriving, Data Dictionary section 2.79a.
type GNSSAuthAccumulatedDriving struct {
	GNSSAuthADPointerNewestRecord uint16                   `json:"gnssAuthAdPointerNewestRecord"`
	GNSSAuthStatusADRecords       []GNSSAuthStatusADRecord `json:"gnssAuthStatusAdRecords"`
}

// DecodeGNSSAuthAccumulatedDriving decodes a size-delimited
// GNSSAuthAccumulatedDriving, stopping at the first record that fails to
// decode.
func DecodeGNSSAuthAccumulatedDriving(r *byteio.Reader, size int) (GNSSAuthAccumulatedDriving, error) {
	pointer, err := r.ReadUint16()
	if err != nil {
		return GNSSAuthAccumulatedDriving{}, err
	}
	count := (size - 2) / gnssAuthStatusADRecordSize
	records := make([]GNSSAuthStatusADRecord, 0, count)
	for i := 0; i < count; i++ {
		rec, err := DecodeGNSSAuthStatusADRecord(r)
		if err != nil {
			break
		}
		records = append(records, rec)
	}
	return GNSSAuthAccumulatedDriving{GNSSAuthADPointerNewestRecord: pointer, GNSSAuthStatusADRecords: records}, nil
}

// CardBorderCrossingRecord is one vehicle border crossing recorded on a
// Gen2V2 driver card, Data Dictionary section 2.11b.
type CardBorderCrossingRecord struct {
	CountryLeft           NationNumeric       `json:"countryLeft"`
	CountryEntered        NationNumeric       `json:"countryEntered"`
	GNSSPlaceAuthRecord   GNSSPlaceAuthRecord `json:"gnssPlaceAuthRecord"`
	VehicleOdometerValue  uint32              `json:"vehicleOdometerValue"`
}

const cardBorderCrossingRecordSize = 17

// DecodeCardBorderCrossingRecord decodes a 17-byte CardBorderCrossingRecord.
func DecodeCardBorderCrossingRecord(r *byteio.Reader) (CardBorderCrossingRecord, error) {
	countryLeft, err := DecodeNationNumeric(r)
	if err != nil {
		return CardBorderCrossingRecord{}, err
	}
	countryEntered, err := DecodeNationNumeric(r)
	if err != nil {
		return CardBorderCrossingRecord{}, err
	}
	place, err := DecodeGNSSPlaceAuthRecord(r)
	if err != nil {
		return CardBorderCrossingRecord{}, err
	}
	odometer, err := DecodeOdometerShort(r)
	if err != nil {
		return CardBorderCrossingRecord{}, err
	}
	return CardBorderCrossingRecord{
		CountryLeft:          countryLeft,
		CountryEntered:       countryEntered,
		GNSSPlaceAuthRecord:  place,
		VehicleOdometerValue: odometer,
	}, nil
}

// CardBorderCrossings is the EF_Border_Crossings elementary file introduced
// in Gen2V2, Data Dictionary section 2.11a.
type CardBorderCrossings struct {
	BorderCrossingPointerNewestRecord uint16                     `json:"borderCrossingPointerNewestRecord"`
	CardBorderCrossingRecords        []CardBorderCrossingRecord `json:"cardBorderCrossingRecords"`
}

// DecodeCardBorderCrossings decodes a size-delimited CardBorderCrossings,
// stopping at the first record that fails to decode.
func DecodeCardBorderCrossings(r *byteio.Reader, size int) (CardBorderCrossings, error) {
	pointer, err := r.ReadUint16()
	if err != nil {
		return CardBorderCrossings{}, err
	}
	count := (size - 2) / cardBorderCrossingRecordSize
	records := make([]CardBorderCrossingRecord, 0, count)
	for i := 0; i < count; i++ {
		rec, err := DecodeCardBorderCrossingRecord(r)
		if err != nil {
			break
		}
		records = append(records, rec)
	}
	return CardBorderCrossings{BorderCrossingPointerNewestRecord: pointer, CardBorderCrossingRecords: records}, nil
}

// OperationType classifies a Gen2V2 load/unload event, Data Dictionary
// section 2.114a.
type OperationType byte

const (
	OperationTypeRFU                             OperationType = 0x00
	OperationTypeLoadOperation                   OperationType = 0x01
	OperationTypeUnloadOperation                 OperationType = 0x02
	OperationTypeSimultaneousLoadUnloadOperation OperationType = 0x03
)

// DecodeOperationType decodes a 1-byte OperationType. Values above 0x03 are
// RFU and pass through unchanged.
func DecodeOperationType(r *byteio.Reader) (OperationType, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	return OperationType(b), nil
}

// CardLoadUnloadRecord is one load or unload operation recorded on a
// Gen2V2 driver card, Data Dictionary section 2.24d.
type CardLoadUnloadRecord struct {
	TimeStamp             TimeOrZero          `json:"timeStamp"`
	OperationType         OperationType       `json:"operationType"`
	GNSSPlaceAuthRecord   GNSSPlaceAuthRecord `json:"gnssPlaceAuthRecord"`
	VehicleOdometerValue  uint32              `json:"vehicleOdometerValue"`
}

const cardLoadUnloadRecordSize = 20

// DecodeCardLoadUnloadRecord decodes a 20-byte CardLoadUnloadRecord.
func DecodeCardLoadUnloadRecord(r *byteio.Reader) (CardLoadUnloadRecord, error) {
	timeStamp, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardLoadUnloadRecord{}, err
	}
	operation, err := DecodeOperationType(r)
	if err != nil {
		return CardLoadUnloadRecord{}, err
	}
	place, err := DecodeGNSSPlaceAuthRecord(r)
	if err != nil {
		return CardLoadUnloadRecord{}, err
	}
	odometer, err := DecodeOdometerShort(r)
	if err != nil {
		return CardLoadUnloadRecord{}, err
	}
	return CardLoadUnloadRecord{
		TimeStamp:            timeStamp,
		OperationType:        operation,
		GNSSPlaceAuthRecord:  place,
		VehicleOdometerValue: odometer,
	}, nil
}

// CardLoadUnloadOperations is the EF_Load_Unload_Operations elementary file
// introduced in Gen2V2, Data Dictionary section 2.24c.
type CardLoadUnloadOperations struct {
	LoadUnloadPointerNewestRecord uint16                 `json:"loadUnloadPointerNewestRecord"`
	CardLoadUnloadRecords        []CardLoadUnloadRecord `json:"cardLoadUnloadRecords"`
}

// DecodeCardLoadUnloadOperations decodes a size-delimited
// CardLoadUnloadOperations, stopping at the first record that fails to
// decode.
func DecodeCardLoadUnloadOperations(r *byteio.Reader, size int) (CardLoadUnloadOperations, error) {
	pointer, err := r.ReadUint16()
	if err != nil {
		return CardLoadUnloadOperations{}, err
	}
	count := (size - 2) / cardLoadUnloadRecordSize
	records := make([]CardLoadUnloadRecord, 0, count)
	for i := 0; i < count; i++ {
		rec, err := DecodeCardLoadUnloadRecord(r)
		if err != nil {
			break
		}
		records = append(records, rec)
	}
	return CardLoadUnloadOperations{LoadUnloadPointerNewestRecord: pointer, CardLoadUnloadRecords: records}, nil
}

// LoadType classifies the cargo entered via the driver's load-type menu on
// a Gen2V2 vehicle unit, Data Dictionary section 2.90a.
type LoadType byte

const (
	LoadTypeUndefined   LoadType = 0x00
	LoadTypeGoods       LoadType = 0x01
	LoadTypePassengers  LoadType = 0x02
)

// DecodeLoadType decodes a 1-byte LoadType. Values above 0x02 are RFU and
// pass through unchanged.
func DecodeLoadType(r *byteio.Reader) (LoadType, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	return LoadType(b), nil
}

// CardLoadTypeEntryRecord is one load-type entry recorded on a Gen2V2
// driver card, Data Dictionary section 2.24b.
type CardLoadTypeEntryRecord struct {
	TimeStamp       TimeOrZero `json:"timeStamp"`
	LoadTypeEntered LoadType   `json:"loadTypeEntered"`
}

const cardLoadTypeEntryRecordSize = 5

// DecodeCardLoadTypeEntryRecord decodes a 5-byte CardLoadTypeEntryRecord.
func DecodeCardLoadTypeEntryRecord(r *byteio.Reader) (CardLoadTypeEntryRecord, error) {
	timeStamp, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardLoadTypeEntryRecord{}, err
	}
	loadType, err := DecodeLoadType(r)
	if err != nil {
		return CardLoadTypeEntryRecord{}, err
	}
	return CardLoadTypeEntryRecord{TimeStamp: timeStamp, LoadTypeEntered: loadType}, nil
}

// CardLoadTypeEntries is the EF_Load_Type_Entries elementary file
// introduced in Gen2V2, Data Dictionary section 2.24a.
type CardLoadTypeEntries struct {
	LoadTypePointerNewestRecord  uint16                    `json:"loadTypePointerNewestRecord"`
	CardLoadTypeEntryRecords    []CardLoadTypeEntryRecord `json:"cardLoadTypeEntryRecords"`
}

// DecodeCardLoadTypeEntries decodes a size-delimited CardLoadTypeEntries,
// stopping at the first record that fails to decode.
func DecodeCardLoadTypeEntries(r *byteio.Reader, size int) (CardLoadTypeEntries, error) {
	pointer, err := r.ReadUint16()
	if err != nil {
		return CardLoadTypeEntries{}, err
	}
	count := (size - 2) / cardLoadTypeEntryRecordSize
	records := make([]CardLoadTypeEntryRecord, 0, count)
	for i := 0; i < count; i++ {
		rec, err := DecodeCardLoadTypeEntryRecord(r)
		if err != nil {
			break
		}
		records = append(records, rec)
	}
	return CardLoadTypeEntries{LoadTypePointerNewestRecord: pointer, CardLoadTypeEntryRecords: records}, nil
}

// DriverCardApplicationIdentificationGen2V2 extends a Gen2 driver card's
// application identification with the Gen2V2 border-crossing,
// load/unload, and load-type record counts, Data Dictionary section 2.2a.
type DriverCardApplicationIdentificationGen2V2 struct {
	LengthOfFollowingData       uint16 `json:"lengthOfFollowingData"`
	NoOfBorderCrossingRecords   uint16 `json:"noOfBorderCrossingRecords"`
	NoOfLoadUnloadRecords       uint16 `json:"noOfLoadUnloadRecords"`
	NoOfLoadTypeEntryRecords    uint16 `json:"noOfLoadTypeEntryRecords"`
	VuConfigurationLengthRange  uint16 `json:"vuConfigurationLengthRange"`
}

// DecodeDriverCardApplicationIdentificationGen2V2 decodes a fixed 10-byte
// DriverCardApplicationIdentificationGen2V2.
func DecodeDriverCardApplicationIdentificationGen2V2(r *byteio.Reader) (DriverCardApplicationIdentificationGen2V2, error) {
	lengthOfFollowingData, err := r.ReadUint16()
	if err != nil {
		return DriverCardApplicationIdentificationGen2V2{}, err
	}
	noOfBorderCrossing, err := r.ReadUint16()
	if err != nil {
		return DriverCardApplicationIdentificationGen2V2{}, err
	}
	noOfLoadUnload, err := r.ReadUint16()
	if err != nil {
		return DriverCardApplicationIdentificationGen2V2{}, err
	}
	noOfLoadTypeEntry, err := r.ReadUint16()
	if err != nil {
		return DriverCardApplicationIdentificationGen2V2{}, err
	}
	vuConfigLengthRange, err := r.ReadUint16()
	if err != nil {
		return DriverCardApplicationIdentificationGen2V2{}, err
	}
	return DriverCardApplicationIdentificationGen2V2{
		LengthOfFollowingData:      lengthOfFollowingData,
		NoOfBorderCrossingRecords:  noOfBorderCrossing,
		NoOfLoadUnloadRecords:      noOfLoadUnload,
		NoOfLoadTypeEntryRecords:   noOfLoadTypeEntry,
		VuConfigurationLengthRange: vuConfigLengthRange,
	}, nil
}
