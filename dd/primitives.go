package dd

import (
	"errors"
	"strconv"
	"time"

	"github.com/tachoscan/tachodecode/byteio"
)

// DecodeBCDString reads n bytes and renders each nibble as a decimal digit
// (a non-BCD nibble 10-15 is rendered as 'A'-'F'), producing a 2n-character
// string. The data type `BCDString` is specified
// in the Data Dictionary, section 2.7.
func DecodeBCDString(r *byteio.Reader, n int) (string, error) {
	raw, err := r.ReadExact(n)
	if err != nil {
		return "", err
	}
	out := make([]byte, 0, n*2)
	for _, b := range raw {
		out = append(out, hexDigit(b>>4), hexDigit(b&0x0F))
	}
	return string(out), nil
}

func hexDigit(nibble byte) byte {
	if nibble < 10 {
		return '0' + nibble
	}
	return 'A' + (nibble - 10)
}

// DecodeBCDNumber reads n bytes as a BCDString and parses it as a decimal
// integer, failing with InvalidBCDError if any nibble is not a decimal
// digit (0x0-0x9).
func DecodeBCDNumber(r *byteio.Reader, n int, field string) (int, error) {
	raw, err := r.ReadExact(n)
	if err != nil {
		return 0, err
	}
	digits := make([]byte, 0, n*2)
	for _, b := range raw {
		hi, lo := b>>4, b&0x0F
		if hi > 9 || lo > 9 {
			return 0, &InvalidBCDError{Field: field, Bytes: raw}
		}
		digits = append(digits, '0'+hi, '0'+lo)
	}
	v, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, &InvalidBCDError{Field: field, Bytes: raw}
	}
	return v, nil
}

// Datef is the regulation's plain calendar date: four BCD digits of year,
// two of month, two of day. The data type `Datef` is specified in the Data
// Dictionary, section 2.63. Month/day ranges are not semantically
// validated.
type Datef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// DecodeDatef decodes a 4-byte Datef.
func DecodeDatef(r *byteio.Reader) (Datef, error) {
	year, err := DecodeBCDNumber(r, 2, "Datef.Year")
	if err != nil {
		return Datef{}, err
	}
	month, err := DecodeBCDNumber(r, 1, "Datef.Month")
	if err != nil {
		return Datef{}, err
	}
	day, err := DecodeBCDNumber(r, 1, "Datef.Day")
	if err != nil {
		return Datef{}, err
	}
	return Datef{Year: year, Month: month, Day: day}, nil
}

// MonthYear is a two-BCD-byte (month, year) pair used for expiry-style
// fields such as workshop card validity.
type MonthYear struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// DecodeMonthYear decodes a 2-byte MonthYear.
func DecodeMonthYear(r *byteio.Reader) (MonthYear, error) {
	month, err := DecodeBCDNumber(r, 1, "MonthYear.Month")
	if err != nil {
		return MonthYear{}, err
	}
	year, err := DecodeBCDNumber(r, 1, "MonthYear.Year")
	if err != nil {
		return MonthYear{}, err
	}
	return MonthYear{Month: month, Year: year}, nil
}

// TimeOrZero is a time.Time that may be the zero value, denoting "no
// information" rather than an actual instant — the common case for
// optional TimeReal fields decoded via DecodeOptionalTimeReal.
type TimeOrZero = time.Time

// DecodeTimeReal reads a 32-bit big-endian Unix timestamp (UTC). A value of
// zero or a value exceeding 2^31-1 is rejected with InvalidTimeRealError so
// callers parsing an optional timestamp can fold the failure into "no
// value" without tainting the surrounding record. The data type `TimeReal`
// is specified in the Data Dictionary, section 2.162.
func DecodeTimeReal(r *byteio.Reader) (time.Time, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return time.Time{}, err
	}
	if v == 0 || v > 0x7FFFFFFF {
		return time.Time{}, &InvalidTimeRealError{Value: v}
	}
	return time.Unix(int64(v), 0).UTC(), nil
}

// DecodeOptionalTimeReal decodes a TimeReal, mapping InvalidTimeRealError
// (including the common all-zero sentinel) to a zero Time and no error,
// since an absent timestamp is valid in many optional contexts.
func DecodeOptionalTimeReal(r *byteio.Reader) (time.Time, error) {
	t, err := DecodeTimeReal(r)
	if err != nil {
		var invalid *InvalidTimeRealError
		if errors.As(err, &invalid) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// DecodeOdometerShort reads a 3-byte big-endian distance in kilometers,
// zero-padded into a 32-bit integer. The data type `OdometerShort` is
// specified in the Data Dictionary, section 2.113.
func DecodeOdometerShort(r *byteio.Reader) (uint32, error) {
	raw, err := r.ReadExact(3)
	if err != nil {
		return 0, err
	}
	return uint32(raw[0])<<16 | uint32(raw[1])<<8 | uint32(raw[2]), nil
}

// readInt24 sign-extends a 3-byte big-endian two's-complement integer to
// int32.
func readInt24(b []byte) int32 {
	v := int32(b[0])<<16 | int32(b[1])<<8 | int32(b[2])
	if b[0]&0x80 != 0 {
		v |= ^int32(0xFFFFFF)
	}
	return v
}

// GeoCoordinates is a latitude/longitude pair decoded from the
// regulation's DDDMM.M x10 format. The data type `GeoCoordinates` is
// specified in the Data Dictionary, section 2.76.
type GeoCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DecodeGeoCoordinates reads two signed 3-byte DDDMM.M x10 values. Per
// spec.md section 4.3, any decode shortfall yields (0, 0) — the
// regulation's in-band "no position" signal — rather than an error.
func DecodeGeoCoordinates(r *byteio.Reader) GeoCoordinates {
	raw, err := r.ReadExact(6)
	if err != nil {
		return GeoCoordinates{}
	}
	lat := ddmmToDecimal(readInt24(raw[0:3]))
	lon := ddmmToDecimal(readInt24(raw[3:6]))
	return GeoCoordinates{Latitude: lat, Longitude: lon}
}

// ddmmToDecimal converts a signed DDDMM.M x10 value to decimal degrees,
// truncated to four decimal places.
func ddmmToDecimal(v int32) float64 {
	sign := 1.0
	if v < 0 {
		sign = -1.0
		v = -v
	}
	degrees := v / 1000
	minutesTenths := v % 1000
	value := float64(degrees) + (float64(minutesTenths)/10.0)/60.0
	value = sign * value
	const scale = 10000.0
	truncated := float64(int64(value*scale)) / scale
	return truncated
}
