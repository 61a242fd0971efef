package dd

import "github.com/tachoscan/tachodecode/byteio"

// Name is a code-page-prefixed 35-byte text field used for holder
// surnames/first names and issuing-authority names, Data Dictionary
// section 2.99.
type Name struct {
	CodePage CodePage `json:"codePage"`
	Value    string   `json:"value"`
}

// DecodeName decodes a 36-byte Name (1-byte code page + 35-byte text).
func DecodeName(r *byteio.Reader) (Name, error) {
	cp, err := r.ReadUint8()
	if err != nil {
		return Name{}, err
	}
	s, err := DecodeIA5String(r, 35, CodePage(cp))
	if err != nil {
		return Name{}, err
	}
	return Name{CodePage: CodePage(cp), Value: s}, nil
}

// Address is a code-page-prefixed 35-byte text field used for holder and
// manufacturer addresses, Data Dictionary section 2.2.
type Address struct {
	CodePage CodePage `json:"codePage"`
	Value    string   `json:"value"`
}

// DecodeAddress decodes a 36-byte Address (1-byte code page + 35-byte text).
func DecodeAddress(r *byteio.Reader) (Address, error) {
	cp, err := r.ReadUint8()
	if err != nil {
		return Address{}, err
	}
	s, err := DecodeIA5String(r, 35, CodePage(cp))
	if err != nil {
		return Address{}, err
	}
	return Address{CodePage: CodePage(cp), Value: s}, nil
}

// HolderName is a driver/company holder's surname and first names, Data
// Dictionary section 2.83.
type HolderName struct {
	Surname    Name `json:"surname"`
	FirstNames Name `json:"firstNames"`
}

// DecodeHolderName decodes a 72-byte HolderName.
func DecodeHolderName(r *byteio.Reader) (HolderName, error) {
	surname, err := DecodeName(r)
	if err != nil {
		return HolderName{}, err
	}
	firstNames, err := DecodeName(r)
	if err != nil {
		return HolderName{}, err
	}
	return HolderName{Surname: surname, FirstNames: firstNames}, nil
}

// VehicleRegistrationNumber is a code-page-prefixed 13-byte registration
// plate, Data Dictionary section 2.224.
type VehicleRegistrationNumber struct {
	CodePage CodePage `json:"codePage"`
	Value    string   `json:"value"`
}

// DecodeVehicleRegistrationNumber decodes a 14-byte
// VehicleRegistrationNumber (1-byte code page + 13-byte text).
func DecodeVehicleRegistrationNumber(r *byteio.Reader) (VehicleRegistrationNumber, error) {
	cp, err := r.ReadUint8()
	if err != nil {
		return VehicleRegistrationNumber{}, err
	}
	s, err := DecodeIA5String(r, 13, CodePage(cp))
	if err != nil {
		return VehicleRegistrationNumber{}, err
	}
	return VehicleRegistrationNumber{CodePage: CodePage(cp), Value: s}, nil
}

// VehicleRegistrationIdentification pairs the issuing nation with the
// registration number, Data Dictionary section 2.224.
type VehicleRegistrationIdentification struct {
	Nation           NationNumeric             `json:"nation"`
	RegistrationNumber VehicleRegistrationNumber `json:"registrationNumber"`
}

// DecodeVehicleRegistrationIdentification decodes a 15-byte
// VehicleRegistrationIdentification.
func DecodeVehicleRegistrationIdentification(r *byteio.Reader) (VehicleRegistrationIdentification, error) {
	nation, err := DecodeNationNumeric(r)
	if err != nil {
		return VehicleRegistrationIdentification{}, err
	}
	number, err := DecodeVehicleRegistrationNumber(r)
	if err != nil {
		return VehicleRegistrationIdentification{}, err
	}
	return VehicleRegistrationIdentification{Nation: nation, RegistrationNumber: number}, nil
}
