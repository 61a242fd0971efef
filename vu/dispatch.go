package vu

import (
	"fmt"

	"github.com/tachoscan/tachodecode/byteio"
	"github.com/tachoscan/tachodecode/dd"
)

const sidVehicleUnit = 0x76

// Parse assembles a VehicleUnit from a vehicle unit's binary download: a
// flat sequence of (SID:0x76, TREP) blocks with no length prefix; each
// block's decoder consumes as many bytes as its own count fields and
// fixed record sizes describe. Parsing stops,
// without error, at the first (SID, TREP) pair the dispatch table does
// not recognize.
func Parse(data []byte) (*VehicleUnit, error) {
	r := byteio.New(data)
	vehicleUnit := &VehicleUnit{}
	for !r.EOF() {
		sid, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		trep, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		if sid != sidVehicleUnit {
			break
		}
		generation, kind, ok := decodeTREP(trep)
		if !ok {
			break
		}
		if vehicleUnit.Generation == GenerationUnknown {
			vehicleUnit.Generation = generation
		}
		if err := vehicleUnit.dispatch(kind, r); err != nil {
			return nil, fmt.Errorf("vu: block sid=%02x trep=%02x: %w", sid, trep, err)
		}
	}
	return vehicleUnit, vehicleUnit.finalize()
}

// blockKind is a TREP value's generation-independent block kind.
type blockKind int

const (
	kindOverview blockKind = iota + 1
	kindActivities
	kindEventsAndFaults
	kindDetailedSpeed
	kindTechnicalData
)

// decodeTREP splits a TREP byte into the generation it signals (by
// upper-nibble range) and the block kind it selects (by lower nibble),
// Data Dictionary Annex IB TREP table.
func decodeTREP(trep byte) (Generation, blockKind, bool) {
	var generation Generation
	var lowNibble byte
	switch {
	case trep >= 0x01 && trep <= 0x05:
		generation, lowNibble = Generation1, trep
	case trep >= 0x21 && trep <= 0x25:
		generation, lowNibble = Generation2, trep-0x20
	case trep >= 0x31 && trep <= 0x35:
		generation, lowNibble = Generation2V2, trep-0x30
	default:
		return GenerationUnknown, 0, false
	}
	switch lowNibble {
	case 0x01:
		return generation, kindOverview, true
	case 0x02:
		return generation, kindActivities, true
	case 0x03:
		return generation, kindEventsAndFaults, true
	case 0x04:
		return generation, kindDetailedSpeed, true
	case 0x05:
		return generation, kindTechnicalData, true
	default:
		return GenerationUnknown, 0, false
	}
}

func (v *VehicleUnit) dispatch(kind blockKind, r *byteio.Reader) error {
	switch kind {
	case kindOverview:
		block, err := dd.DecodeVuOverviewBlock(r)
		if err != nil {
			return err
		}
		v.Overview = &block
	case kindActivities:
		block, err := dd.DecodeVuActivitiesBlock(r)
		if err != nil {
			return err
		}
		v.Activities = append(v.Activities, block)
	case kindEventsAndFaults:
		block, err := dd.DecodeVuEventsAndFaultsBlock(r)
		if err != nil {
			return err
		}
		v.EventsAndFaults = append(v.EventsAndFaults, block)
	case kindDetailedSpeed:
		blocks, err := dd.DecodeVuDetailedSpeedData(r)
		if err != nil {
			return err
		}
		v.DetailedSpeed = append(v.DetailedSpeed, blocks...)
	case kindTechnicalData:
		block, err := dd.DecodeVuTechnicalData(r)
		if err != nil {
			return err
		}
		v.TechnicalData = append(v.TechnicalData, block)
	}
	return nil
}

func (v *VehicleUnit) finalize() error {
	if v.Overview == nil {
		return &MissingBlockError{Block: "overview"}
	}
	return nil
}
