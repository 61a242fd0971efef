// Package vu assembles a vehicle unit's transfer response blocks into a
// generation-tagged result. The outer loop reads an (SID, TREP) header
// per block, dispatches each to its record decoder in the dd package,
// and accumulates the decoded blocks into per-kind lists.
package vu

import "github.com/tachoscan/tachodecode/dd"

// Generation identifies which regulation generation a downloaded
// vehicle unit belongs to, inferred from the TREP values it carries.
type Generation int

const (
	GenerationUnknown Generation = iota
	Generation1
	Generation2
	Generation2V2
)

// VehicleUnit is the fully assembled result of parsing a vehicle unit's
// download: the mandatory overview plus every other block kind
// downloaded, in stream order.
type VehicleUnit struct {
	Generation Generation `json:"generation"`

	Overview        *dd.VuOverviewBlock          `json:"overview"`
	Activities      []dd.VuActivitiesBlock       `json:"activities,omitempty"`
	EventsAndFaults []dd.VuEventsAndFaultsBlock  `json:"eventsAndFaults,omitempty"`
	DetailedSpeed   []dd.VuDetailedSpeedBlock    `json:"detailedSpeed,omitempty"`
	TechnicalData   []dd.VuTechnicalData         `json:"technicalData,omitempty"`
}
