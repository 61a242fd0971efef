package card

import (
	"errors"
	"fmt"

	"github.com/tachoscan/tachodecode/byteio"
	"github.com/tachoscan/tachodecode/dd"
)

const (
	cardEventSlots = 6
	cardFaultSlots = 2
)

// blockKey is a card elementary file's (file_id, sfid) header. Gen1 uses
// sfid 0 (data) / 1 (signature); Gen2 uses sfid 2 / 3.
type blockKey struct {
	FileID uint16
	SFID   byte
}

// File IDs below 0x0525 mirror the regulation's Annex 2 allocation
// directly (grounded on the teacher's Rust dispatch table). File IDs
// 0x0525-0x052A are not attested in that table — the reference parser
// stops at the first unrecognized block and never reaches a Gen2V2 card
// stream in practice. 0x0525 is the Gen2V2 marker that the file-type
// sniffer also matches; 0x0526-0x052A are inferred by continuing that
// sequential numbering to give the Gen2V2-only record families (border
// crossings, load/unload, load type, and their authentication-status
// companions) a dispatch slot. See DESIGN.md.
const (
	fileIDICCIdentification            = 0x0002
	fileIDChipIdentification           = 0x0005
	fileIDApplicationIdentification    = 0x0501
	fileIDEventsData                   = 0x0502
	fileIDFaultsData                   = 0x0503
	fileIDDriverActivityData           = 0x0504
	fileIDVehiclesUsed                 = 0x0505
	fileIDPlaces                       = 0x0506
	fileIDCurrentUsage                 = 0x0507
	fileIDControlActivityData          = 0x0508
	fileIDCardDownload                 = 0x050E
	fileIDIdentification               = 0x0520
	fileIDDrivingLicenceInfo           = 0x0521
	fileIDSpecificConditions           = 0x0522
	fileIDVehicleUnitsUsed             = 0x0523
	fileIDGNSSAccumulatedDriving       = 0x0524
	fileIDApplicationIdentificationV2  = 0x0525
	fileIDBorderCrossings              = 0x0526
	fileIDLoadUnloadOperations         = 0x0527
	fileIDLoadTypeEntries              = 0x0528
	fileIDPlacesAuth                   = 0x0529
	fileIDGNSSAuthAccumulatedDriving   = 0x052A
	fileIDCardCertificate              = 0xC100
	fileIDCardSignCertificate          = 0xC101
	fileIDMemberStateCertificate       = 0xC108
	fileIDLinkCertificate              = 0xC109
)

const (
	sfidGen1Data      = 0
	sfidGen1Signature = 1
	sfidGen2Data      = 2
	sfidGen2Signature = 3
)

var errUnknownBlock = errors.New("card: unknown block")

// assembler accumulates decoded card blocks across the dispatch loop.
// Fields are pointers so presence can be distinguished from the zero
// value; finalize converts them into the public Gen1Blocks/Gen2Blocks/
// Gen2V2Blocks structs, enforcing which slots are mandatory.
type assembler struct {
	seen map[blockKey]bool

	iccIdentification          *dd.CardIccIdentification
	chipIdentification         *dd.CardChipIdentification
	applicationIdentification  *dd.DriverCardApplicationIdentification
	applicationIdentificationSig *dd.Signature
	cardCertificate            *dd.Certificate
	memberStateCertificate     *dd.Certificate
	identification             *dd.Identification
	identificationSig          *dd.Signature
	cardDownload               *dd.CardDownload
	cardDownloadSig            *dd.Signature
	drivingLicenceInfo         *dd.CardDrivingLicenceInformation
	drivingLicenceInfoSig      *dd.Signature
	eventsData                 *[][]dd.CardEventRecord
	eventsDataSig              *dd.Signature
	faultsData                 *[][]dd.CardFaultRecord
	faultsDataSig              *dd.Signature
	driverActivityData         *dd.CardDriverActivity
	driverActivityDataSig      *dd.Signature
	vehiclesUsed               *dd.CardVehiclesUsed
	vehiclesUsedSig            *dd.Signature
	places                     *dd.CardPlaceDailyWorkPeriod
	placesSig                  *dd.Signature
	currentUsage               *dd.CardCurrentUse
	currentUsageSig            *dd.Signature
	controlActivityData        *dd.CardControlActivityDataRecord
	controlActivityDataSig     *dd.Signature
	specificConditions         *[]dd.SpecificConditionRecord
	specificConditionsSig      *dd.Signature

	iccIdentification2          *dd.CardIccIdentification
	chipIdentification2         *dd.CardChipIdentification
	applicationIdentification2  *dd.DriverCardApplicationIdentification
	applicationIdentification2Sig *dd.Signature
	cardSignCertificate2        *dd.Certificate
	memberStateCertificate2     *dd.Certificate
	linkCertificate2            *dd.Certificate
	identification2             *dd.Identification
	identification2Sig          *dd.Signature
	cardDownload2               *dd.CardDownload
	cardDownload2Sig            *dd.Signature
	drivingLicenceInfo2         *dd.CardDrivingLicenceInformation
	drivingLicenceInfo2Sig      *dd.Signature
	eventsData2                 *[][]dd.CardEventRecord
	eventsData2Sig              *dd.Signature
	faultsData2                 *[][]dd.CardFaultRecord
	faultsData2Sig              *dd.Signature
	driverActivityData2         *dd.CardDriverActivity
	driverActivityData2Sig      *dd.Signature
	vehiclesUsed2               *dd.CardVehiclesUsed
	vehiclesUsed2Sig            *dd.Signature
	places2                     *dd.CardPlaceDailyWorkPeriodGen2
	places2Sig                  *dd.Signature
	currentUsage2               *dd.CardCurrentUse
	currentUsage2Sig            *dd.Signature
	controlActivityData2        *dd.CardControlActivityDataRecord
	controlActivityData2Sig     *dd.Signature
	specificConditions2         *[]dd.SpecificConditionRecord
	specificConditions2Sig      *dd.Signature
	vehicleUnitsUsed2           *dd.CardVehicleUnitsUsed
	vehicleUnitsUsed2Sig        *dd.Signature
	gnssAccumulatedDriving2     *dd.GNSSAccumulatedDriving
	gnssAccumulatedDriving2Sig  *dd.Signature

	applicationIdentificationV2    *dd.DriverCardApplicationIdentificationGen2V2
	applicationIdentificationV2Sig *dd.Signature
	borderCrossings                *dd.CardBorderCrossings
	borderCrossingsSig             *dd.Signature
	loadUnloadOperations            *dd.CardLoadUnloadOperations
	loadUnloadOperationsSig         *dd.Signature
	loadTypeEntries                 *dd.CardLoadTypeEntries
	loadTypeEntriesSig              *dd.Signature
	placesAuth                      *dd.CardPlacesAuthDailyWorkPeriod
	placesAuthSig                   *dd.Signature
	gnssAuthAccumulatedDriving      *dd.GNSSAuthAccumulatedDriving
	gnssAuthAccumulatedDrivingSig   *dd.Signature
}

// Parse assembles a Card from a driver card's binary download: a flat
// sequence of (file_id:u16, sfid:u8, size:u16, value) blocks. Parsing
// stops, without error, at the first (file_id, sfid) pair the dispatch
// table does not recognize.
func Parse(data []byte) (*Card, error) {
	r := byteio.New(data)
	a := &assembler{seen: make(map[blockKey]bool)}
	for !r.EOF() {
		fileID, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		sfid, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		size, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		sub, err := r.Sub(int(size))
		if err != nil {
			return nil, err
		}
		key := blockKey{FileID: fileID, SFID: sfid}
		if err := a.dispatch(key, sub, int(size)); err != nil {
			if errors.Is(err, errUnknownBlock) {
				break
			}
			return nil, fmt.Errorf("card: block %04x/%d: %w", fileID, sfid, err)
		}
	}
	return a.finalize()
}

// requireAbsent guards a mandatory block's duplicate-detection rule:
// optional blocks (CardDownload, DrivingLicenceInfo, CurrentUsage) never
// call this and so are never duplicate-checked.
func (a *assembler) requireAbsent(key blockKey, name string) error {
	if a.seen[key] {
		return &DuplicateBlockError{Block: name}
	}
	a.seen[key] = true
	return nil
}

func decodeSignature(r *byteio.Reader) (dd.Signature, error) { return dd.DecodeSignature(r) }

func (a *assembler) dispatch(key blockKey, r *byteio.Reader, size int) error {
	switch key {
	case blockKey{fileIDICCIdentification, sfidGen1Data}:
		if err := a.requireAbsent(key, "iccIdentification"); err != nil {
			return err
		}
		v, err := dd.DecodeCardIccIdentification(r)
		if err != nil {
			return err
		}
		a.iccIdentification = &v
	case blockKey{fileIDChipIdentification, sfidGen1Data}:
		if err := a.requireAbsent(key, "chipIdentification"); err != nil {
			return err
		}
		v, err := dd.DecodeCardChipIdentification(r)
		if err != nil {
			return err
		}
		a.chipIdentification = &v
	case blockKey{fileIDApplicationIdentification, sfidGen1Data}:
		if err := a.requireAbsent(key, "applicationIdentification"); err != nil {
			return err
		}
		v, err := dd.DecodeDriverCardApplicationIdentification(r)
		if err != nil {
			return err
		}
		a.applicationIdentification = &v
	case blockKey{fileIDApplicationIdentification, sfidGen1Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.applicationIdentificationSig = &v
	case blockKey{fileIDCardCertificate, sfidGen1Data}:
		v, err := dd.DecodeCertificate(r)
		if err != nil {
			return err
		}
		a.cardCertificate = &v
	case blockKey{fileIDMemberStateCertificate, sfidGen1Data}:
		v, err := dd.DecodeCertificate(r)
		if err != nil {
			return err
		}
		a.memberStateCertificate = &v
	case blockKey{fileIDIdentification, sfidGen1Data}:
		if err := a.requireAbsent(key, "identification"); err != nil {
			return err
		}
		v, err := dd.DecodeIdentification(r)
		if err != nil {
			return err
		}
		a.identification = &v
	case blockKey{fileIDIdentification, sfidGen1Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.identificationSig = &v
	case blockKey{fileIDCardDownload, sfidGen1Data}:
		v, err := dd.DecodeCardDownload(r)
		if err != nil {
			return err
		}
		a.cardDownload = &v
	case blockKey{fileIDCardDownload, sfidGen1Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.cardDownloadSig = &v
	case blockKey{fileIDDrivingLicenceInfo, sfidGen1Data}:
		v, err := dd.DecodeCardDrivingLicenceInformation(r)
		if err != nil {
			return err
		}
		a.drivingLicenceInfo = &v
	case blockKey{fileIDDrivingLicenceInfo, sfidGen1Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.drivingLicenceInfoSig = &v
	case blockKey{fileIDEventsData, sfidGen1Data}:
		if err := a.requireAbsent(key, "eventsData"); err != nil {
			return err
		}
		v, err := dd.DecodeCardEventData(r, size, cardEventSlots)
		if err != nil {
			return err
		}
		a.eventsData = &v
	case blockKey{fileIDEventsData, sfidGen1Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.eventsDataSig = &v
	case blockKey{fileIDFaultsData, sfidGen1Data}:
		if err := a.requireAbsent(key, "faultsData"); err != nil {
			return err
		}
		v, err := dd.DecodeCardFaultData(r, size, cardFaultSlots)
		if err != nil {
			return err
		}
		a.faultsData = &v
	case blockKey{fileIDFaultsData, sfidGen1Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.faultsDataSig = &v
	case blockKey{fileIDDriverActivityData, sfidGen1Data}:
		if err := a.requireAbsent(key, "driverActivityData"); err != nil {
			return err
		}
		v, err := dd.DecodeCardDriverActivity(r, size-4)
		if err != nil {
			return err
		}
		a.driverActivityData = &v
	case blockKey{fileIDDriverActivityData, sfidGen1Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.driverActivityDataSig = &v
	case blockKey{fileIDVehiclesUsed, sfidGen1Data}:
		if err := a.requireAbsent(key, "vehiclesUsed"); err != nil {
			return err
		}
		v, err := dd.DecodeCardVehiclesUsed(r, size)
		if err != nil {
			return err
		}
		a.vehiclesUsed = &v
	case blockKey{fileIDVehiclesUsed, sfidGen1Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.vehiclesUsedSig = &v
	case blockKey{fileIDPlaces, sfidGen1Data}:
		if err := a.requireAbsent(key, "places"); err != nil {
			return err
		}
		v, err := dd.DecodeCardPlaceDailyWorkPeriod(r, size)
		if err != nil {
			return err
		}
		a.places = &v
	case blockKey{fileIDPlaces, sfidGen1Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.placesSig = &v
	case blockKey{fileIDCurrentUsage, sfidGen1Data}:
		v, err := dd.DecodeCardCurrentUse(r)
		if err != nil {
			return err
		}
		a.currentUsage = &v
	case blockKey{fileIDCurrentUsage, sfidGen1Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.currentUsageSig = &v
	case blockKey{fileIDControlActivityData, sfidGen1Data}:
		if err := a.requireAbsent(key, "controlActivityData"); err != nil {
			return err
		}
		v, err := dd.DecodeCardControlActivityDataRecord(r)
		if err != nil {
			return err
		}
		a.controlActivityData = &v
	case blockKey{fileIDControlActivityData, sfidGen1Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.controlActivityDataSig = &v
	case blockKey{fileIDSpecificConditions, sfidGen1Data}:
		if err := a.requireAbsent(key, "specificConditions"); err != nil {
			return err
		}
		v, err := dd.DecodeSpecificConditions(r, size)
		if err != nil {
			return err
		}
		a.specificConditions = &v
	case blockKey{fileIDSpecificConditions, sfidGen1Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.specificConditionsSig = &v

	// Gen2: the common EFs (ICC/chip identification, application
	// identification, identification, driving licence, current usage,
	// control activity, specific conditions) are decoded with the same dd
	// decoders as Gen1. Where a Gen2 layout is wider, the sub-reader's
	// window absorbs the trailing Gen2-only fields, which are not decoded.
	case blockKey{fileIDICCIdentification, sfidGen2Data}:
		if err := a.requireAbsent(key, "iccIdentification2"); err != nil {
			return err
		}
		v, err := dd.DecodeCardIccIdentification(r)
		if err != nil {
			return err
		}
		a.iccIdentification2 = &v
	case blockKey{fileIDChipIdentification, sfidGen2Data}:
		if err := a.requireAbsent(key, "chipIdentification2"); err != nil {
			return err
		}
		v, err := dd.DecodeCardChipIdentification(r)
		if err != nil {
			return err
		}
		a.chipIdentification2 = &v
	case blockKey{fileIDApplicationIdentification, sfidGen2Data}:
		if err := a.requireAbsent(key, "applicationIdentification2"); err != nil {
			return err
		}
		v, err := dd.DecodeDriverCardApplicationIdentification(r)
		if err != nil {
			return err
		}
		a.applicationIdentification2 = &v
	case blockKey{fileIDApplicationIdentification, sfidGen2Signature}:
		if err := a.requireAbsent(key, "applicationIdentification2Sig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.applicationIdentification2Sig = &v
	case blockKey{fileIDCardSignCertificate, sfidGen2Data}:
		if err := a.requireAbsent(key, "cardSignCertificate2"); err != nil {
			return err
		}
		v, err := dd.DecodeCertificate(r)
		if err != nil {
			return err
		}
		a.cardSignCertificate2 = &v
	case blockKey{fileIDMemberStateCertificate, sfidGen2Data}:
		if err := a.requireAbsent(key, "memberStateCertificate2"); err != nil {
			return err
		}
		v, err := dd.DecodeCertificate(r)
		if err != nil {
			return err
		}
		a.memberStateCertificate2 = &v
	case blockKey{fileIDLinkCertificate, sfidGen2Data}:
		if err := a.requireAbsent(key, "linkCertificate2"); err != nil {
			return err
		}
		v, err := dd.DecodeCertificate(r)
		if err != nil {
			return err
		}
		a.linkCertificate2 = &v
	case blockKey{fileIDIdentification, sfidGen2Data}:
		if err := a.requireAbsent(key, "identification2"); err != nil {
			return err
		}
		v, err := dd.DecodeIdentification(r)
		if err != nil {
			return err
		}
		a.identification2 = &v
	case blockKey{fileIDIdentification, sfidGen2Signature}:
		if err := a.requireAbsent(key, "identification2Sig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.identification2Sig = &v
	case blockKey{fileIDCardDownload, sfidGen2Data}:
		v, err := dd.DecodeCardDownload(r)
		if err != nil {
			return err
		}
		a.cardDownload2 = &v
	case blockKey{fileIDCardDownload, sfidGen2Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.cardDownload2Sig = &v
	case blockKey{fileIDDrivingLicenceInfo, sfidGen2Data}:
		v, err := dd.DecodeCardDrivingLicenceInformation(r)
		if err != nil {
			return err
		}
		a.drivingLicenceInfo2 = &v
	case blockKey{fileIDDrivingLicenceInfo, sfidGen2Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.drivingLicenceInfo2Sig = &v
	case blockKey{fileIDEventsData, sfidGen2Data}:
		if err := a.requireAbsent(key, "eventsData2"); err != nil {
			return err
		}
		v, err := dd.DecodeCardEventData(r, size, cardEventSlots)
		if err != nil {
			return err
		}
		a.eventsData2 = &v
	case blockKey{fileIDEventsData, sfidGen2Signature}:
		if err := a.requireAbsent(key, "eventsData2Sig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.eventsData2Sig = &v
	case blockKey{fileIDFaultsData, sfidGen2Data}:
		if err := a.requireAbsent(key, "faultsData2"); err != nil {
			return err
		}
		v, err := dd.DecodeCardFaultData(r, size, cardFaultSlots)
		if err != nil {
			return err
		}
		a.faultsData2 = &v
	case blockKey{fileIDFaultsData, sfidGen2Signature}:
		if err := a.requireAbsent(key, "faultsData2Sig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.faultsData2Sig = &v
	case blockKey{fileIDDriverActivityData, sfidGen2Data}:
		if err := a.requireAbsent(key, "driverActivityData2"); err != nil {
			return err
		}
		v, err := dd.DecodeCardDriverActivity(r, size-4)
		if err != nil {
			return err
		}
		a.driverActivityData2 = &v
	case blockKey{fileIDDriverActivityData, sfidGen2Signature}:
		if err := a.requireAbsent(key, "driverActivityData2Sig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.driverActivityData2Sig = &v
	case blockKey{fileIDVehiclesUsed, sfidGen2Data}:
		if err := a.requireAbsent(key, "vehiclesUsed2"); err != nil {
			return err
		}
		v, err := dd.DecodeCardVehiclesUsed(r, size)
		if err != nil {
			return err
		}
		a.vehiclesUsed2 = &v
	case blockKey{fileIDVehiclesUsed, sfidGen2Signature}:
		if err := a.requireAbsent(key, "vehiclesUsed2Sig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.vehiclesUsed2Sig = &v
	case blockKey{fileIDPlaces, sfidGen2Data}:
		if err := a.requireAbsent(key, "places2"); err != nil {
			return err
		}
		v, err := dd.DecodeCardPlaceDailyWorkPeriodGen2(r, size)
		if err != nil {
			return err
		}
		a.places2 = &v
	case blockKey{fileIDPlaces, sfidGen2Signature}:
		if err := a.requireAbsent(key, "places2Sig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.places2Sig = &v
	case blockKey{fileIDCurrentUsage, sfidGen2Data}:
		v, err := dd.DecodeCardCurrentUse(r)
		if err != nil {
			return err
		}
		a.currentUsage2 = &v
	case blockKey{fileIDCurrentUsage, sfidGen2Signature}:
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.currentUsage2Sig = &v
	case blockKey{fileIDControlActivityData, sfidGen2Data}:
		if err := a.requireAbsent(key, "controlActivityData2"); err != nil {
			return err
		}
		v, err := dd.DecodeCardControlActivityDataRecord(r)
		if err != nil {
			return err
		}
		a.controlActivityData2 = &v
	case blockKey{fileIDControlActivityData, sfidGen2Signature}:
		if err := a.requireAbsent(key, "controlActivityData2Sig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.controlActivityData2Sig = &v
	case blockKey{fileIDSpecificConditions, sfidGen2Data}:
		if err := a.requireAbsent(key, "specificConditions2"); err != nil {
			return err
		}
		v, err := dd.DecodeSpecificConditions(r, size)
		if err != nil {
			return err
		}
		a.specificConditions2 = &v
	case blockKey{fileIDSpecificConditions, sfidGen2Signature}:
		if err := a.requireAbsent(key, "specificConditions2Sig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.specificConditions2Sig = &v
	case blockKey{fileIDVehicleUnitsUsed, sfidGen2Data}:
		if err := a.requireAbsent(key, "vehicleUnitsUsed2"); err != nil {
			return err
		}
		v, err := dd.DecodeCardVehicleUnitsUsed(r, size)
		if err != nil {
			return err
		}
		a.vehicleUnitsUsed2 = &v
	case blockKey{fileIDVehicleUnitsUsed, sfidGen2Signature}:
		if err := a.requireAbsent(key, "vehicleUnitsUsed2Sig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.vehicleUnitsUsed2Sig = &v
	case blockKey{fileIDGNSSAccumulatedDriving, sfidGen2Data}:
		if err := a.requireAbsent(key, "gnssAccumulatedDriving2"); err != nil {
			return err
		}
		v, err := dd.DecodeGNSSAccumulatedDriving(r, size)
		if err != nil {
			return err
		}
		a.gnssAccumulatedDriving2 = &v
	case blockKey{fileIDGNSSAccumulatedDriving, sfidGen2Signature}:
		if err := a.requireAbsent(key, "gnssAccumulatedDriving2Sig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.gnssAccumulatedDriving2Sig = &v

	// Gen2V2.
	case blockKey{fileIDApplicationIdentificationV2, sfidGen2Data}:
		if err := a.requireAbsent(key, "applicationIdentificationV2"); err != nil {
			return err
		}
		v, err := dd.DecodeDriverCardApplicationIdentificationGen2V2(r)
		if err != nil {
			return err
		}
		a.applicationIdentificationV2 = &v
	case blockKey{fileIDApplicationIdentificationV2, sfidGen2Signature}:
		if err := a.requireAbsent(key, "applicationIdentificationV2Sig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.applicationIdentificationV2Sig = &v
	case blockKey{fileIDBorderCrossings, sfidGen2Data}:
		if err := a.requireAbsent(key, "borderCrossings"); err != nil {
			return err
		}
		v, err := dd.DecodeCardBorderCrossings(r, size)
		if err != nil {
			return err
		}
		a.borderCrossings = &v
	case blockKey{fileIDBorderCrossings, sfidGen2Signature}:
		if err := a.requireAbsent(key, "borderCrossingsSig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.borderCrossingsSig = &v
	case blockKey{fileIDLoadUnloadOperations, sfidGen2Data}:
		if err := a.requireAbsent(key, "loadUnloadOperations"); err != nil {
			return err
		}
		v, err := dd.DecodeCardLoadUnloadOperations(r, size)
		if err != nil {
			return err
		}
		a.loadUnloadOperations = &v
	case blockKey{fileIDLoadUnloadOperations, sfidGen2Signature}:
		if err := a.requireAbsent(key, "loadUnloadOperationsSig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.loadUnloadOperationsSig = &v
	case blockKey{fileIDLoadTypeEntries, sfidGen2Data}:
		if err := a.requireAbsent(key, "loadTypeEntries"); err != nil {
			return err
		}
		v, err := dd.DecodeCardLoadTypeEntries(r, size)
		if err != nil {
			return err
		}
		a.loadTypeEntries = &v
	case blockKey{fileIDLoadTypeEntries, sfidGen2Signature}:
		if err := a.requireAbsent(key, "loadTypeEntriesSig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.loadTypeEntriesSig = &v
	case blockKey{fileIDPlacesAuth, sfidGen2Data}:
		if err := a.requireAbsent(key, "placesAuth"); err != nil {
			return err
		}
		v, err := dd.DecodeCardPlacesAuthDailyWorkPeriod(r, size)
		if err != nil {
			return err
		}
		a.placesAuth = &v
	case blockKey{fileIDPlacesAuth, sfidGen2Signature}:
		if err := a.requireAbsent(key, "placesAuthSig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.placesAuthSig = &v
	case blockKey{fileIDGNSSAuthAccumulatedDriving, sfidGen2Data}:
		if err := a.requireAbsent(key, "gnssAuthAccumulatedDriving"); err != nil {
			return err
		}
		v, err := dd.DecodeGNSSAuthAccumulatedDriving(r, size)
		if err != nil {
			return err
		}
		a.gnssAuthAccumulatedDriving = &v
	case blockKey{fileIDGNSSAuthAccumulatedDriving, sfidGen2Signature}:
		if err := a.requireAbsent(key, "gnssAuthAccumulatedDrivingSig"); err != nil {
			return err
		}
		v, err := decodeSignature(r)
		if err != nil {
			return err
		}
		a.gnssAuthAccumulatedDrivingSig = &v

	default:
		return errUnknownBlock
	}
	return nil
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func (a *assembler) finalize() (*Card, error) {
	gen1, err := a.finalizeGen1()
	if err != nil {
		return nil, err
	}
	card := &Card{Generation: Generation1, Gen1: gen1}

	if a.iccIdentification2 != nil {
		gen2, err := a.finalizeGen2()
		if err != nil {
			return nil, err
		}
		card.Gen2 = gen2
		card.Generation = Generation2
	}

	if a.applicationIdentificationV2 != nil {
		if card.Gen2 == nil {
			return nil, &MissingBlockError{Block: "iccIdentification2"}
		}
		card.Gen2V2 = &Gen2V2Blocks{
			ApplicationIdentification: deref(a.applicationIdentificationV2),
			BorderCrossings:           Signed[dd.CardBorderCrossings]{Data: deref(a.borderCrossings), Signature: deref(a.borderCrossingsSig)},
			LoadUnloadOperations:      Signed[dd.CardLoadUnloadOperations]{Data: deref(a.loadUnloadOperations), Signature: deref(a.loadUnloadOperationsSig)},
			LoadTypeEntries:           Signed[dd.CardLoadTypeEntries]{Data: deref(a.loadTypeEntries), Signature: deref(a.loadTypeEntriesSig)},
			PlacesAuth:                Signed[dd.CardPlacesAuthDailyWorkPeriod]{Data: deref(a.placesAuth), Signature: deref(a.placesAuthSig)},
			GNSSAuthAccumulatedDriving: Signed[dd.GNSSAuthAccumulatedDriving]{Data: deref(a.gnssAuthAccumulatedDriving), Signature: deref(a.gnssAuthAccumulatedDrivingSig)},
		}
		card.Generation = Generation2V2
	}

	return card, nil
}

func (a *assembler) finalizeGen1() (*Gen1Blocks, error) {
	required := []struct {
		name string
		ok   bool
	}{
		{"iccIdentification", a.iccIdentification != nil},
		{"chipIdentification", a.chipIdentification != nil},
		{"applicationIdentification", a.applicationIdentification != nil},
		{"identification", a.identification != nil},
		{"eventsData", a.eventsData != nil},
		{"faultsData", a.faultsData != nil},
		{"driverActivityData", a.driverActivityData != nil},
		{"vehiclesUsed", a.vehiclesUsed != nil},
		{"places", a.places != nil},
		{"controlActivityData", a.controlActivityData != nil},
	}
	for _, r := range required {
		if !r.ok {
			return nil, &MissingBlockError{Block: r.name}
		}
	}
	return &Gen1Blocks{
		ICCIdentification:         deref(a.iccIdentification),
		ChipIdentification:        deref(a.chipIdentification),
		ApplicationIdentification: deref(a.applicationIdentification),
		Identification:            Signed[dd.Identification]{Data: deref(a.identification), Signature: deref(a.identificationSig)},
		EventsData:                Signed[[][]dd.CardEventRecord]{Data: deref(a.eventsData), Signature: deref(a.eventsDataSig)},
		FaultsData:                Signed[[][]dd.CardFaultRecord]{Data: deref(a.faultsData), Signature: deref(a.faultsDataSig)},
		DriverActivityData:        Signed[dd.CardDriverActivity]{Data: deref(a.driverActivityData), Signature: deref(a.driverActivityDataSig)},
		VehiclesUsed:              Signed[dd.CardVehiclesUsed]{Data: deref(a.vehiclesUsed), Signature: deref(a.vehiclesUsedSig)},
		Places:                    Signed[dd.CardPlaceDailyWorkPeriod]{Data: deref(a.places), Signature: deref(a.placesSig)},
		ControlActivity:           Signed[dd.CardControlActivityDataRecord]{Data: deref(a.controlActivityData), Signature: deref(a.controlActivityDataSig)},
		Certificate:               deref(a.cardCertificate),
		CurrentUsage:              a.currentUsage,
		CardDownload:              a.cardDownload,
		DrivingLicenceInfo:        a.drivingLicenceInfo,
		SpecificConditions:        deref(a.specificConditions),
	}, nil
}

func (a *assembler) finalizeGen2() (*Gen2Blocks, error) {
	required := []struct {
		name string
		ok   bool
	}{
		{"chipIdentification2", a.chipIdentification2 != nil},
		{"applicationIdentification2", a.applicationIdentification2 != nil},
		{"identification2", a.identification2 != nil},
		{"eventsData2", a.eventsData2 != nil},
		{"faultsData2", a.faultsData2 != nil},
		{"driverActivityData2", a.driverActivityData2 != nil},
		{"vehiclesUsed2", a.vehiclesUsed2 != nil},
		{"places2", a.places2 != nil},
		{"controlActivityData2", a.controlActivityData2 != nil},
		{"vehicleUnitsUsed2", a.vehicleUnitsUsed2 != nil},
		{"gnssAccumulatedDriving2", a.gnssAccumulatedDriving2 != nil},
	}
	for _, r := range required {
		if !r.ok {
			return nil, &MissingBlockError{Block: r.name}
		}
	}
	return &Gen2Blocks{
		ICCIdentification:         deref(a.iccIdentification2),
		ChipIdentification:        deref(a.chipIdentification2),
		ApplicationIdentification: deref(a.applicationIdentification2),
		Identification:            Signed[dd.Identification]{Data: deref(a.identification2), Signature: deref(a.identification2Sig)},
		EventsData:                Signed[[][]dd.CardEventRecord]{Data: deref(a.eventsData2), Signature: deref(a.eventsData2Sig)},
		FaultsData:                Signed[[][]dd.CardFaultRecord]{Data: deref(a.faultsData2), Signature: deref(a.faultsData2Sig)},
		DriverActivityData:        Signed[dd.CardDriverActivity]{Data: deref(a.driverActivityData2), Signature: deref(a.driverActivityData2Sig)},
		VehiclesUsed:              Signed[dd.CardVehiclesUsed]{Data: deref(a.vehiclesUsed2), Signature: deref(a.vehiclesUsed2Sig)},
		Places:                    Signed[dd.CardPlaceDailyWorkPeriodGen2]{Data: deref(a.places2), Signature: deref(a.places2Sig)},
		ControlActivity:           Signed[dd.CardControlActivityDataRecord]{Data: deref(a.controlActivityData2), Signature: deref(a.controlActivityData2Sig)},
		SigningCertificate:        deref(a.cardSignCertificate2),
		LinkCertificate:           deref(a.linkCertificate2),
		VehicleUnitsUsed:          Signed[dd.CardVehicleUnitsUsed]{Data: deref(a.vehicleUnitsUsed2), Signature: deref(a.vehicleUnitsUsed2Sig)},
		GNSSAccumulatedDriving:    Signed[dd.GNSSAccumulatedDriving]{Data: deref(a.gnssAccumulatedDriving2), Signature: deref(a.gnssAccumulatedDriving2Sig)},
		CurrentUsage:              a.currentUsage2,
		CardDownload:              a.cardDownload2,
		DrivingLicenceInfo:        a.drivingLicenceInfo2,
		SpecificConditions:        deref(a.specificConditions2),
	}, nil
}
