// Package filetype identifies which artifact kind and regulation
// generation a tachograph download belongs to, from its leading bytes.
package filetype

import "bytes"

// Kind identifies the artifact a download holds.
type Kind int

const (
	KindUnknown Kind = iota
	KindDriverCard
	KindVehicleUnit
)

// Generation identifies the regulation generation a download was
// produced under.
type Generation int

const (
	GenerationUnknown Generation = iota
	Generation1
	Generation2
	Generation2V2
)

// Result is the outcome of sniffing a download's leading bytes.
type Result struct {
	Kind       Kind
	Generation Generation
}

var (
	gen2V2Marker = []byte{0x05, 0x25, 0x02}
	gen2Marker   = []byte{0x05, 0x01, 0x02}
)

// Sniff inspects a download's header bytes (and, for driver cards, a
// windowed substring of the whole blob) to determine its kind and
// generation.
func Sniff(data []byte) Result {
	if len(data) < 2 {
		return Result{Kind: KindUnknown}
	}
	switch {
	case data[0] == 0x76 && data[1] >= 0x01 && data[1] <= 0x05:
		return Result{Kind: KindVehicleUnit, Generation: Generation1}
	case data[0] == 0x76 && data[1] >= 0x21 && data[1] <= 0x25:
		return Result{Kind: KindVehicleUnit, Generation: Generation2}
	case data[0] == 0x76 && data[1] >= 0x30 && data[1] <= 0x35:
		return Result{Kind: KindVehicleUnit, Generation: Generation2V2}
	case data[0] == 0x00 && data[1] == 0x02:
		return Result{Kind: KindDriverCard, Generation: sniffCardGeneration(data)}
	default:
		return Result{Kind: KindUnknown}
	}
}

// sniffCardGeneration discriminates a driver card download by whether
// its Gen2V2 or Gen2 application-identification block header appears
// anywhere in the blob; a card carrying neither is Gen1.
func sniffCardGeneration(data []byte) Generation {
	switch {
	case bytes.Contains(data, gen2V2Marker):
		return Generation2V2
	case bytes.Contains(data, gen2Marker):
		return Generation2
	default:
		return Generation1
	}
}
