// Package ring implements the regulation's container-decoding patterns:
// fixed-cardinality record slots, pointer-prefixed record lists, Gen2's
// self-describing record arrays, and the cyclic daily-activity buffer.
// Each decoder is generic over its element type, factoring out the
// per-block-type accounting that the regulation repeats across dozens of
// elementary files.
package ring

import (
	"fmt"

	"github.com/tachoscan/tachodecode/byteio"
)

// FixedSlots decodes a regulation-mandated fixed number of outer slots,
// each holding a run of fixed-size inner records (CardEventData's 6
// event-type slots, CardFaultData's 2 fault-type slots). recordsPerSlot is
// derived by the caller from the block's declared size. decode may signal
// a sentinel/unused record by returning ok=false with a nil error; such
// records are dropped. A slot whose records all fail to decode, or whose
// decoded records are all sentinel, is dropped from the result rather
// than appearing as an empty slot.
func FixedSlots[T any](r *byteio.Reader, numSlots, recordsPerSlot int, decode func(*byteio.Reader) (T, bool, error)) [][]T {
	out := make([][]T, 0, numSlots)
	for i := 0; i < numSlots; i++ {
		var slot []T
		for j := 0; j < recordsPerSlot; j++ {
			rec, ok, err := decode(r)
			if err != nil || !ok {
				continue
			}
			slot = append(slot, rec)
		}
		if len(slot) > 0 {
			out = append(out, slot)
		}
	}
	return out
}

// PointerArray decodes a pointer-prefixed record list (CardVehiclesUsed,
// CardPlaceDailyWorkPeriod): a newest-record pointer of pointerSize bytes
// (1 or 2) followed by count fixed-size records occupying the rest of the
// payload. decode may signal a sentinel/unused slot by returning ok=false
// with a nil error; such slots are dropped. The pointer is returned
// verbatim for the caller to preserve.
func PointerArray[T any](r *byteio.Reader, pointerSize int, count int, decode func(*byteio.Reader) (T, bool, error)) (pointer uint32, records []T, err error) {
	switch pointerSize {
	case 1:
		v, err := r.ReadUint8()
		if err != nil {
			return 0, nil, err
		}
		pointer = uint32(v)
	case 2:
		v, err := r.ReadUint16()
		if err != nil {
			return 0, nil, err
		}
		pointer = uint32(v)
	default:
		return 0, nil, fmt.Errorf("ring: unsupported pointer size %d", pointerSize)
	}
	records = make([]T, 0, count)
	for i := 0; i < count; i++ {
		rec, ok, err := decode(r)
		if err != nil {
			continue
		}
		if ok {
			records = append(records, rec)
		}
	}
	return pointer, records, nil
}

// RecordType is the Gen2 RecordArray header's leading record-type tag
// (Data Dictionary Annex IB, table 2, "RecordType").
type RecordType byte

// DecodeRecordType decodes a 1-byte RecordType.
func DecodeRecordType(r *byteio.Reader) (RecordType, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	return RecordType(b), nil
}

// RecordArray is the Gen2/Gen2V2 self-describing record array: a 1-byte
// record type, 2-byte record size, 2-byte record count, followed by
// record_size*count bytes partitioned evenly into records.
type RecordArray[T any] struct {
	RecordType   RecordType `json:"recordType"`
	RecordSize   uint16     `json:"recordSize"`
	NoOfRecords  uint16     `json:"noOfRecords"`
	Records      []T        `json:"records"`
}

// ChunkDecodeError reports the index and declared record size of a
// RecordArray chunk that failed to decode.
type ChunkDecodeError struct {
	Index int
	Size  uint16
	Err   error
}

func (e *ChunkDecodeError) Error() string {
	return fmt.Sprintf("ring: record array chunk %d (size %d): %v", e.Index, e.Size, e.Err)
}

func (e *ChunkDecodeError) Unwrap() error { return e.Err }

// DecodeRecordArray decodes a Gen2 RecordArray. Each record is parsed in
// its own sub-reader of exactly RecordSize bytes; the parent reader always
// advances by RecordSize*NoOfRecords bytes regardless of how much each
// inner decode actually consumes, matching the Byte Reader's sub-window
// guarantee. A chunk that fails to parse aborts the whole array with its
// index and declared size attached.
func DecodeRecordArray[T any](r *byteio.Reader, decode func(*byteio.Reader) (T, error)) (RecordArray[T], error) {
	recordType, err := DecodeRecordType(r)
	if err != nil {
		return RecordArray[T]{}, err
	}
	recordSize, err := r.ReadUint16()
	if err != nil {
		return RecordArray[T]{}, err
	}
	count, err := r.ReadUint16()
	if err != nil {
		return RecordArray[T]{}, err
	}
	records := make([]T, 0, count)
	for i := 0; i < int(count); i++ {
		sub, err := r.Sub(int(recordSize))
		if err != nil {
			return RecordArray[T]{}, err
		}
		rec, err := decode(sub)
		if err != nil {
			return RecordArray[T]{}, &ChunkDecodeError{Index: i, Size: recordSize, Err: err}
		}
		records = append(records, rec)
	}
	return RecordArray[T]{
		RecordType:  recordType,
		RecordSize:  recordSize,
		NoOfRecords: count,
		Records:     records,
	}, nil
}
