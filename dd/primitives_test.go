package dd

import (
	"math"
	"testing"

	"github.com/tachoscan/tachodecode/byteio"
)

func TestDdmmToDecimal(t *testing.T) {
	cases := []struct {
		name string
		raw  int32
		want float64
	}{
		{"positive, minutes just under 60", 90599, 90.9983},
		{"positive", 24938, 25.5633},
		{"negative", -24938, -25.5633},
		{"zero", 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ddmmToDecimal(c.raw)
			if math.Abs(got-c.want) > 1e-9 {
				t.Errorf("ddmmToDecimal(%d) = %v, want %v", c.raw, got, c.want)
			}
		})
	}
}

func TestDecodeGeoCoordinates(t *testing.T) {
	// lat raw 90599 (0x0161E7), lon raw -24938 (0xFF9E96).
	raw := []byte{0x01, 0x61, 0xE7, 0xFF, 0x9E, 0x96}
	r := byteio.New(raw)

	coords := DecodeGeoCoordinates(r)
	if math.Abs(coords.Latitude-90.9983) > 1e-9 {
		t.Errorf("Latitude = %v, want 90.9983", coords.Latitude)
	}
	if math.Abs(coords.Longitude-(-25.5633)) > 1e-9 {
		t.Errorf("Longitude = %v, want -25.5633", coords.Longitude)
	}
}

func TestDecodeGeoCoordinates_Shortfall(t *testing.T) {
	r := byteio.New([]byte{0x01, 0x02})

	coords := DecodeGeoCoordinates(r)
	if coords.Latitude != 0 || coords.Longitude != 0 {
		t.Errorf("DecodeGeoCoordinates() with short input = %+v, want zero value", coords)
	}
}
