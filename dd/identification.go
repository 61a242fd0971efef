package dd

import "github.com/tachoscan/tachodecode/byteio"

// CardChipIdentification carries the card's integrated-circuit
// identification and signature, Data Dictionary section 2.1.
type CardChipIdentification struct {
	CardChipIdentificationNumber    [4]byte `json:"cardChipIdentificationNumber"`
	CardChipIdentificationSignature [4]byte `json:"cardChipIdentificationSignature"`
}

// DecodeCardChipIdentification decodes an 8-byte CardChipIdentification.
func DecodeCardChipIdentification(r *byteio.Reader) (CardChipIdentification, error) {
	number, err := r.ReadExact(4)
	if err != nil {
		return CardChipIdentification{}, err
	}
	signature, err := r.ReadExact(4)
	if err != nil {
		return CardChipIdentification{}, err
	}
	return CardChipIdentification{
		CardChipIdentificationNumber:    [4]byte{number[0], number[1], number[2], number[3]},
		CardChipIdentificationSignature: [4]byte{signature[0], signature[1], signature[2], signature[3]},
	}, nil
}

// Language is a 2-byte IA5 language code.
type Language string

// DecodeLanguage decodes a 2-byte Language.
func DecodeLanguage(r *byteio.Reader) (Language, error) {
	s, err := DecodeIA5String(r, 2, CodePageDefault)
	if err != nil {
		return "", err
	}
	return Language(s), nil
}

// CardIdentification is a driver card's fixed identity block, Data
// Dictionary section 2.24.
type CardIdentification struct {
	CardIssuingMemberState    NationNumeric `json:"cardIssuingMemberState"`
	CardNumber                CardNumber    `json:"cardNumber"`
	CardIssuingAuthorityName  Name          `json:"cardIssuingAuthorityName"`
	CardIssueDate             TimeOrZero    `json:"cardIssueDate"`
	CardValidityBegin         TimeOrZero    `json:"cardValidityBegin"`
	CardExpiryDate            TimeOrZero    `json:"cardExpiryDate"`
}

// DecodeCardIdentification decodes a fixed-size CardIdentification. The
// card number is always decoded as the driver-identification variant: this
// elementary file is only ever present on driver cards.
func DecodeCardIdentification(r *byteio.Reader) (CardIdentification, error) {
	nation, err := DecodeNationNumeric(r)
	if err != nil {
		return CardIdentification{}, err
	}
	number, err := DecodeCardNumber(r, EquipmentTypeDriverCard)
	if err != nil {
		return CardIdentification{}, err
	}
	authorityName, err := DecodeName(r)
	if err != nil {
		return CardIdentification{}, err
	}
	issueDate, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardIdentification{}, err
	}
	validityBegin, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardIdentification{}, err
	}
	expiryDate, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardIdentification{}, err
	}
	return CardIdentification{
		CardIssuingMemberState:   nation,
		CardNumber:               number,
		CardIssuingAuthorityName: authorityName,
		CardIssueDate:            issueDate,
		CardValidityBegin:        validityBegin,
		CardExpiryDate:           expiryDate,
	}, nil
}

// DriverCardHolderIdentification is the human-readable driver identity
// accompanying CardIdentification, Data Dictionary section 2.62.
type DriverCardHolderIdentification struct {
	CardHolderName               HolderName `json:"cardHolderName"`
	CardHolderBirthDate          Datef      `json:"cardHolderBirthDate"`
	CardHolderPreferredLanguage  Language   `json:"cardHolderPreferredLanguage"`
}

// DecodeDriverCardHolderIdentification decodes a fixed-size
// DriverCardHolderIdentification.
func DecodeDriverCardHolderIdentification(r *byteio.Reader) (DriverCardHolderIdentification, error) {
	holderName, err := DecodeHolderName(r)
	if err != nil {
		return DriverCardHolderIdentification{}, err
	}
	birthDate, err := DecodeDatef(r)
	if err != nil {
		return DriverCardHolderIdentification{}, err
	}
	language, err := DecodeLanguage(r)
	if err != nil {
		return DriverCardHolderIdentification{}, err
	}
	return DriverCardHolderIdentification{
		CardHolderName:              holderName,
		CardHolderBirthDate:         birthDate,
		CardHolderPreferredLanguage: language,
	}, nil
}

// Identification is the EF_Identification elementary file: a driver
// card's identity plus holder details, Data Dictionary Annex IB.
type Identification struct {
	CardIdentification             CardIdentification             `json:"cardIdentification"`
	DriverCardHolderIdentification DriverCardHolderIdentification `json:"driverCardHolderIdentification"`
}

// DecodeIdentification decodes a fixed-size Identification.
func DecodeIdentification(r *byteio.Reader) (Identification, error) {
	cardID, err := DecodeCardIdentification(r)
	if err != nil {
		return Identification{}, err
	}
	holderID, err := DecodeDriverCardHolderIdentification(r)
	if err != nil {
		return Identification{}, err
	}
	return Identification{CardIdentification: cardID, DriverCardHolderIdentification: holderID}, nil
}

// CardDownload is the EF_Card_Download elementary file: the timestamp of
// the card's most recent download, Data Dictionary section 2.89.
type CardDownload struct {
	LastCardDownload TimeOrZero `json:"lastCardDownload"`
}

// DecodeCardDownload decodes a 4-byte CardDownload.
func DecodeCardDownload(r *byteio.Reader) (CardDownload, error) {
	t, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardDownload{}, err
	}
	return CardDownload{LastCardDownload: t}, nil
}

// CardDrivingLicenceInformation is a driver card's linked driving-licence
// details, Data Dictionary section 2.18.
type CardDrivingLicenceInformation struct {
	DrivingLicenceIssuingAuthority Name          `json:"drivingLicenceIssuingAuthority"`
	DrivingLicenceIssuingNation    NationNumeric `json:"drivingLicenceIssuingNation"`
	DrivingLicenceNumber           string        `json:"drivingLicenceNumber"`
}

// DecodeCardDrivingLicenceInformation decodes a fixed-size
// CardDrivingLicenceInformation.
func DecodeCardDrivingLicenceInformation(r *byteio.Reader) (CardDrivingLicenceInformation, error) {
	authority, err := DecodeName(r)
	if err != nil {
		return CardDrivingLicenceInformation{}, err
	}
	nation, err := DecodeNationNumeric(r)
	if err != nil {
		return CardDrivingLicenceInformation{}, err
	}
	number, err := DecodeIA5String(r, 16, CodePageDefault)
	if err != nil {
		return CardDrivingLicenceInformation{}, err
	}
	return CardDrivingLicenceInformation{
		DrivingLicenceIssuingAuthority: authority,
		DrivingLicenceIssuingNation:    nation,
		DrivingLicenceNumber:           number,
	}, nil
}

// CardCurrentUse is the EF_Current_Usage elementary file: the open driving
// session, if any, Data Dictionary section 2.16.
type CardCurrentUse struct {
	SessionOpenTime    TimeOrZero                         `json:"sessionOpenTime"`
	SessionOpenVehicle VehicleRegistrationIdentification `json:"sessionOpenVehicle"`
}

// DecodeCardCurrentUse decodes a fixed-size CardCurrentUse.
func DecodeCardCurrentUse(r *byteio.Reader) (CardCurrentUse, error) {
	openTime, err := DecodeOptionalTimeReal(r)
	if err != nil {
		return CardCurrentUse{}, err
	}
	vehicle, err := DecodeVehicleRegistrationIdentification(r)
	if err != nil {
		return CardCurrentUse{}, err
	}
	return CardCurrentUse{SessionOpenTime: openTime, SessionOpenVehicle: vehicle}, nil
}
