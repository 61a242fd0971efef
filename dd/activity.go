package dd

import (
	"github.com/tachoscan/tachodecode/byteio"
	"github.com/tachoscan/tachodecode/ring"
)

// DailyPresenceCounter is a 2-byte BCD day counter, Data Dictionary
// section 2.56.
type DailyPresenceCounter uint16

// DecodeDailyPresenceCounter decodes a 2-byte DailyPresenceCounter.
func DecodeDailyPresenceCounter(r *byteio.Reader) (DailyPresenceCounter, error) {
	v, err := DecodeBCDNumber(r, 2, "DailyPresenceCounter")
	if err != nil {
		return 0, err
	}
	return DailyPresenceCounter(v), nil
}

// Distance is a 2-byte big-endian kilometer count, Data Dictionary section
// 2.60.
type Distance uint16

// DecodeDistance decodes a 2-byte Distance.
func DecodeDistance(r *byteio.Reader) (Distance, error) {
	v, err := r.ReadUint16()
	if err != nil {
		return 0, err
	}
	return Distance(v), nil
}

// cardActivityDailyRecordMetadataSize is the byte width of
// CardActivityDailyRecord's fields preceding its ActivityChangeInfo run:
// two length fields, a TimeReal, a DailyPresenceCounter and a Distance.
const cardActivityDailyRecordMetadataSize = 12

// CardActivityDailyRecord is one calendar day's worth of activity changes
// stored in a driver card's cyclic activity buffer, Data Dictionary
// section 2.9. It is self-describing: ActivityRecordLength gives its total
// length including this header, from which the number of trailing
// ActivityChangeInfo entries is derived.
type CardActivityDailyRecord struct {
	ActivityPreviousRecordLength uint16                `json:"activityPreviousRecordLength"`
	ActivityRecordLength         uint16                `json:"activityRecordLength"`
	ActivityRecordDate           TimeOrZero             `json:"activityRecordDate"`
	ActivityDailyPresenceCounter DailyPresenceCounter  `json:"activityDailyPresenceCounter"`
	ActivityDayDistance          Distance              `json:"activityDayDistance"`
	ActivityChangeInfos          []ActivityChangeInfo  `json:"activityChangeInfos"`
}

// DecodeCardActivityDailyRecord decodes a variable-length
// CardActivityDailyRecord. An individual ActivityChangeInfo entry that
// fails to decode is skipped rather than aborting the record, matching the
// tolerant-array convention used for the record's own array-of-arrays
// context (the cyclic buffer as a whole aborts on the first whole record
// that fails; entries within one record are more granular).
func DecodeCardActivityDailyRecord(r *byteio.Reader) (CardActivityDailyRecord, error) {
	previousLength, err := r.ReadUint16()
	if err != nil {
		return CardActivityDailyRecord{}, err
	}
	recordLength, err := r.ReadUint16()
	if err != nil {
		return CardActivityDailyRecord{}, err
	}
	date, err := DecodeTimeReal(r)
	if err != nil {
		return CardActivityDailyRecord{}, err
	}
	presenceCounter, err := DecodeDailyPresenceCounter(r)
	if err != nil {
		return CardActivityDailyRecord{}, err
	}
	dayDistance, err := DecodeDistance(r)
	if err != nil {
		return CardActivityDailyRecord{}, err
	}
	var changeCount int
	if int(recordLength) > cardActivityDailyRecordMetadataSize {
		changeCount = (int(recordLength) - cardActivityDailyRecordMetadataSize) / 2
	}
	changes := make([]ActivityChangeInfo, 0, changeCount)
	for i := 0; i < changeCount; i++ {
		aci, err := DecodeActivityChangeInfo(r)
		if err != nil {
			continue
		}
		changes = append(changes, aci)
	}
	return CardActivityDailyRecord{
		ActivityPreviousRecordLength: previousLength,
		ActivityRecordLength:         recordLength,
		ActivityRecordDate:           date,
		ActivityDailyPresenceCounter: presenceCounter,
		ActivityDayDistance:          dayDistance,
		ActivityChangeInfos:          changes,
	}, nil
}

// CardDriverActivity is the EF_Driver_Activity_Data elementary file: the
// cyclic buffer of daily activity records, Data Dictionary section 2.17.
type CardDriverActivity struct {
	ActivityPointerOldestDayRecord uint16                    `json:"activityPointerOldestDayRecord"`
	ActivityPointerNewestRecord    uint16                    `json:"activityPointerNewestRecord"`
	ActivityDailyRecords           []CardActivityDailyRecord `json:"activityDailyRecords"`
}

// DecodeCardDriverActivity decodes a size-delimited CardDriverActivity: a
// 2-byte oldest-day pointer, a 2-byte newest-record pointer, and the
// remaining (regionSize) bytes of cyclic storage.
func DecodeCardDriverActivity(r *byteio.Reader, regionSize int) (CardDriverActivity, error) {
	oldest, err := r.ReadUint16()
	if err != nil {
		return CardDriverActivity{}, err
	}
	newest, err := r.ReadUint16()
	if err != nil {
		return CardDriverActivity{}, err
	}
	region, err := r.ReadExact(regionSize)
	if err != nil {
		return CardDriverActivity{}, err
	}
	linear := ring.CyclicBuffer(region, int(oldest), int(newest))
	records := ring.DecodeDailyRecords(linear, DecodeCardActivityDailyRecord)
	return CardDriverActivity{
		ActivityPointerOldestDayRecord: oldest,
		ActivityPointerNewestRecord:    newest,
		ActivityDailyRecords:           records,
	}, nil
}
