package vu

import (
	"errors"
	"testing"
)

func TestDecodeTREP(t *testing.T) {
	cases := []struct {
		trep       byte
		generation Generation
		kind       blockKind
		ok         bool
	}{
		{0x01, Generation1, kindOverview, true},
		{0x05, Generation1, kindTechnicalData, true},
		{0x21, Generation2, kindOverview, true},
		{0x24, Generation2, kindDetailedSpeed, true},
		{0x31, Generation2V2, kindOverview, true},
		{0x35, Generation2V2, kindTechnicalData, true},
		{0x00, GenerationUnknown, 0, false},
		{0x06, GenerationUnknown, 0, false},
		{0x99, GenerationUnknown, 0, false},
	}
	for _, c := range cases {
		generation, kind, ok := decodeTREP(c.trep)
		if generation != c.generation || kind != c.kind || ok != c.ok {
			t.Errorf("decodeTREP(%#02x) = (%v, %v, %v), want (%v, %v, %v)",
				c.trep, generation, kind, ok, c.generation, c.kind, c.ok)
		}
	}
}

func TestParse_UnknownTREPTerminatesCleanlyThenReportsMissingOverview(t *testing.T) {
	data := []byte{sidVehicleUnit, 0xFF}
	_, err := Parse(data)
	var missingErr *MissingBlockError
	if !errors.As(err, &missingErr) {
		t.Fatalf("Parse() error = %v, want *MissingBlockError", err)
	}
	if missingErr.Block != "overview" {
		t.Fatalf("MissingBlockError.Block = %q, want overview", missingErr.Block)
	}
}

func TestParse_EmptyInputReportsMissingOverview(t *testing.T) {
	_, err := Parse(nil)
	var missingErr *MissingBlockError
	if !errors.As(err, &missingErr) {
		t.Fatalf("Parse() error = %v, want *MissingBlockError", err)
	}
}

func TestParse_UnrecognizedSIDTerminatesCleanly(t *testing.T) {
	data := []byte{0x00, 0x01}
	_, err := Parse(data)
	var missingErr *MissingBlockError
	if !errors.As(err, &missingErr) {
		t.Fatalf("Parse() error = %v, want *MissingBlockError", err)
	}
}
