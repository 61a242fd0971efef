// Package card assembles a driver card's elementary files into a
// generation-tagged result. The outer loop reads a (file_id, sfid) header
// per block, dispatches each to its record decoder in the dd package, and
// accumulates the decoded blocks into per-generation slots.
package card

import "github.com/tachoscan/tachodecode/dd"

// Signed pairs a decoded block with the digital signature that
// accompanies it on the card, Data Dictionary Annex IB appendix 11.
type Signed[T any] struct {
	Data      T            `json:"data"`
	Signature dd.Signature `json:"signature"`
}

// Gen1Blocks holds every elementary file present on a Generation 1 driver
// card, keyed by the mandatory/optional split spec.md section 5 describes.
type Gen1Blocks struct {
	ICCIdentification    dd.CardIccIdentification                     `json:"iccIdentification"`
	ChipIdentification   dd.CardChipIdentification                    `json:"chipIdentification"`
	ApplicationIdentification dd.DriverCardApplicationIdentification  `json:"applicationIdentification"`
	Identification       Signed[dd.Identification]                    `json:"identification"`
	EventsData           Signed[[][]dd.CardEventRecord]                `json:"eventsData"`
	FaultsData           Signed[[][]dd.CardFaultRecord]                 `json:"faultsData"`
	DriverActivityData   Signed[dd.CardDriverActivity]                 `json:"driverActivityData"`
	VehiclesUsed         Signed[dd.CardVehiclesUsed]                   `json:"vehiclesUsed"`
	Places               Signed[dd.CardPlaceDailyWorkPeriod]           `json:"places"`
	ControlActivity      Signed[dd.CardControlActivityDataRecord]      `json:"controlActivity"`
	Certificate          dd.Certificate                                `json:"certificate"`

	CurrentUsage       *dd.CardCurrentUse                  `json:"currentUsage,omitempty"`
	CardDownload       *dd.CardDownload                    `json:"cardDownload,omitempty"`
	DrivingLicenceInfo *dd.CardDrivingLicenceInformation   `json:"drivingLicenceInfo,omitempty"`
	SpecificConditions []dd.SpecificConditionRecord        `json:"specificConditions,omitempty"`
}

// Gen2Blocks holds the Generation 2 elementary files layered on top of a
// Gen1 card: the sfid-2/3 variants of the shared files plus the two files
// introduced in Gen2 (vehicle units used, GNSS accumulated driving).
type Gen2Blocks struct {
	ICCIdentification    dd.CardIccIdentification                     `json:"iccIdentification"`
	ChipIdentification   dd.CardChipIdentification                    `json:"chipIdentification"`
	ApplicationIdentification dd.DriverCardApplicationIdentification  `json:"applicationIdentification"`
	Identification       Signed[dd.Identification]                    `json:"identification"`
	EventsData           Signed[[][]dd.CardEventRecord]                `json:"eventsData"`
	FaultsData           Signed[[][]dd.CardFaultRecord]                 `json:"faultsData"`
	DriverActivityData   Signed[dd.CardDriverActivity]                 `json:"driverActivityData"`
	VehiclesUsed         Signed[dd.CardVehiclesUsed]                   `json:"vehiclesUsed"`
	Places               Signed[dd.CardPlaceDailyWorkPeriodGen2]       `json:"places"`
	ControlActivity      Signed[dd.CardControlActivityDataRecord]      `json:"controlActivity"`
	SigningCertificate   dd.Certificate                                `json:"signingCertificate"`
	LinkCertificate      dd.Certificate                                `json:"linkCertificate"`

	VehicleUnitsUsed        Signed[dd.CardVehicleUnitsUsed]     `json:"vehicleUnitsUsed"`
	GNSSAccumulatedDriving   Signed[dd.GNSSAccumulatedDriving]   `json:"gnssAccumulatedDriving"`

	CurrentUsage       *dd.CardCurrentUse                `json:"currentUsage,omitempty"`
	CardDownload       *dd.CardDownload                  `json:"cardDownload,omitempty"`
	DrivingLicenceInfo *dd.CardDrivingLicenceInformation `json:"drivingLicenceInfo,omitempty"`
	SpecificConditions []dd.SpecificConditionRecord      `json:"specificConditions,omitempty"`
}

// Gen2V2Blocks holds the elementary files introduced in Generation 2
// version 2: application-identification's extra record counts and the
// authenticated-position record families (border crossings, load/unload
// operations, load-type entries, and their authentication-status
// companions to Places and GNSS accumulated driving).
type Gen2V2Blocks struct {
	ApplicationIdentification dd.DriverCardApplicationIdentificationGen2V2 `json:"applicationIdentification"`

	BorderCrossings       Signed[dd.CardBorderCrossings]           `json:"borderCrossings"`
	LoadUnloadOperations  Signed[dd.CardLoadUnloadOperations]       `json:"loadUnloadOperations"`
	LoadTypeEntries       Signed[dd.CardLoadTypeEntries]            `json:"loadTypeEntries"`
	PlacesAuth            Signed[dd.CardPlacesAuthDailyWorkPeriod] `json:"placesAuth"`
	GNSSAuthAccumulatedDriving Signed[dd.GNSSAuthAccumulatedDriving] `json:"gnssAuthAccumulatedDriving"`
}

// Generation identifies which regulation generation a downloaded driver
// card belongs to.
type Generation int

const (
	GenerationUnknown Generation = iota
	Generation1
	Generation2
	Generation2V2
)

// Card is the fully assembled result of parsing a driver card's download:
// a Gen1 payload, optionally layered with Gen2 and Gen2V2 extensions.
type Card struct {
	Generation Generation    `json:"generation"`
	Gen1       *Gen1Blocks   `json:"gen1,omitempty"`
	Gen2       *Gen2Blocks   `json:"gen2,omitempty"`
	Gen2V2     *Gen2V2Blocks `json:"gen2v2,omitempty"`
}
