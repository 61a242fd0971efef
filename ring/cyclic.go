package ring

import "github.com/tachoscan/tachodecode/byteio"

// CyclicBuffer linearizes a ring-buffered region of daily activity records
// into chronological byte order. The region stores records back-to-back;
// oldest and newest are byte offsets into the region marking the first and
// most recent record. A record's total length (including its own 2-byte
// self-length field) is read from offset newest+2..+4; the end of the
// newest record is (newest+length) mod len(region). When that end falls
// before oldest the logical sequence has wrapped the end of the region and
// linearization concatenates the tail and head segments; otherwise it is
// the single span between the two pointers.
func CyclicBuffer(region []byte, oldest, newest int) []byte {
	regionSize := len(region)
	if regionSize == 0 {
		return nil
	}
	newestLength := int(region[newest+2])<<8 | int(region[newest+3])
	endOfNewest := (newest + newestLength) % regionSize
	if endOfNewest < oldest {
		out := make([]byte, 0, (regionSize-oldest)+endOfNewest)
		out = append(out, region[oldest:]...)
		out = append(out, region[:endOfNewest]...)
		return out
	}
	out := make([]byte, endOfNewest-oldest)
	copy(out, region[oldest:endOfNewest])
	return out
}

// DecodeDailyRecords decodes a linearized cyclic buffer as a sequence of
// variable-length daily records, calling decode repeatedly until the
// buffer is exhausted; each call consumes exactly the bytes its record
// uses. Parsing stops, without error, at the first record for which decode
// returns an error. A record's self-declared length is not checked against
// the remaining bytes here — matching the
// original decoder's best-effort "stop at first corrupt record" behavior
// for this one cyclic structure (unlike the hard-fail policy for
// non-cyclic record arrays).
func DecodeDailyRecords[T any](data []byte, decode func(*byteio.Reader) (T, error)) []T {
	var out []T
	r := byteio.New(data)
	for !r.EOF() {
		rec, err := decode(r)
		if err != nil {
			break
		}
		out = append(out, rec)
	}
	return out
}
