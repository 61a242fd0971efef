package dd

import "github.com/tachoscan/tachodecode/byteio"

// DriverIdentification is the 16-byte CardNumber variant used by driver
// cards: a 14-byte identification string plus replacement/renewal indices.
type DriverIdentification struct {
	DriverIdentificationNumber string `json:"driverIdentificationNumber"`
	ReplacementIndex           string `json:"replacementIndex"`
	RenewalIndex               string `json:"renewalIndex"`
}

// OwnerIdentification is the 16-byte CardNumber variant used by
// workshop/control/company cards: a 13-byte owner identification string
// plus consecutive/replacement/renewal indices.
type OwnerIdentification struct {
	OwnerIdentification string `json:"ownerIdentification"`
	ConsecutiveIndex    string `json:"consecutiveIndex"`
	ReplacementIndex    string `json:"replacementIndex"`
	RenewalIndex        string `json:"renewalIndex"`
}

// CardNumber is the polymorphic 16-byte envelope described in spec.md
// section 3: its interpretation is selected by a preceding EquipmentType
// byte. Exactly one of Driver/Owner is populated; an equipment type this
// decoder does not recognize as a card type consumes the 16 bytes into an
// opaque Unknown payload, matching "any other/reserved" in spec.md.
type CardNumber struct {
	Driver  *DriverIdentification `json:"driver,omitempty"`
	Owner   *OwnerIdentification  `json:"owner,omitempty"`
	Unknown []byte                `json:"unknown,omitempty"`
}

// DecodeCardNumber decodes the 16-byte CardNumber envelope, dispatching on
// equipmentType per spec.md section 3:
//   - DriverCard: 14-byte identification + 1-byte replacement index + 1-byte renewal index
//   - WorkshopCard/ControlCard/CompanyCard: 13-byte owner id + 1-byte consecutive + 1-byte replacement + 1-byte renewal
//   - anything else: 16 null bytes into an opaque Unknown variant
func DecodeCardNumber(r *byteio.Reader, equipmentType EquipmentType) (CardNumber, error) {
	switch equipmentType {
	case EquipmentTypeDriverCard:
		id, err := DecodeIA5String(r, 14, CodePageDefault)
		if err != nil {
			return CardNumber{}, err
		}
		replacement, err := DecodeIA5String(r, 1, CodePageDefault)
		if err != nil {
			return CardNumber{}, err
		}
		renewal, err := DecodeIA5String(r, 1, CodePageDefault)
		if err != nil {
			return CardNumber{}, err
		}
		return CardNumber{Driver: &DriverIdentification{
			DriverIdentificationNumber: id,
			ReplacementIndex:           replacement,
			RenewalIndex:               renewal,
		}}, nil

	case EquipmentTypeWorkshopCard, EquipmentTypeControlCard, EquipmentTypeCompanyCard:
		id, err := DecodeIA5String(r, 13, CodePageDefault)
		if err != nil {
			return CardNumber{}, err
		}
		consecutive, err := DecodeIA5String(r, 1, CodePageDefault)
		if err != nil {
			return CardNumber{}, err
		}
		replacement, err := DecodeIA5String(r, 1, CodePageDefault)
		if err != nil {
			return CardNumber{}, err
		}
		renewal, err := DecodeIA5String(r, 1, CodePageDefault)
		if err != nil {
			return CardNumber{}, err
		}
		return CardNumber{Owner: &OwnerIdentification{
			OwnerIdentification: id,
			ConsecutiveIndex:    consecutive,
			ReplacementIndex:    replacement,
			RenewalIndex:        renewal,
		}}, nil

	default:
		raw, err := r.ReadExact(16)
		if err != nil {
			return CardNumber{}, err
		}
		unknown := make([]byte, len(raw))
		copy(unknown, raw)
		return CardNumber{Unknown: unknown}, nil
	}
}

// FullCardNumber is the EquipmentType + NationNumeric + CardNumber triple
// described in spec.md section 4.3. If the leading EquipmentType is RFU,
// the whole record is considered absent (nil, nil) for optional contexts.
type FullCardNumber struct {
	CardType      EquipmentType `json:"cardType"`
	IssuingMemberState NationNumeric `json:"issuingMemberState"`
	CardNumber    CardNumber    `json:"cardNumber"`
}

// DecodeFullCardNumber decodes an 18-byte FullCardNumber. It returns (nil,
// nil) rather than an error when the equipment type is RFU, matching
// spec.md's "rejected / surfaced as None in an optional context" rule.
func DecodeFullCardNumber(r *byteio.Reader) (*FullCardNumber, error) {
	cardType, err := DecodeEquipmentType(r)
	if err != nil {
		return nil, err
	}
	nation, err := DecodeNationNumeric(r)
	if err != nil {
		return nil, err
	}
	if cardType == EquipmentTypeRFU {
		if _, err := r.ReadExact(16); err != nil {
			return nil, err
		}
		return nil, nil
	}
	number, err := DecodeCardNumber(r, cardType)
	if err != nil {
		return nil, err
	}
	return &FullCardNumber{CardType: cardType, IssuingMemberState: nation, CardNumber: number}, nil
}
