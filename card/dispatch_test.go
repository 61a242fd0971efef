package card

import (
	"errors"
	"testing"

	"github.com/tachoscan/tachodecode/byteio"
)

// block builds a single (file_id, sfid, size, payload) wire block.
func block(fileID uint16, sfid byte, payload []byte) []byte {
	out := []byte{byte(fileID >> 8), byte(fileID), sfid, byte(len(payload) >> 8), byte(len(payload))}
	return append(out, payload...)
}

func TestDispatch_DuplicateMandatoryBlockErrors(t *testing.T) {
	chip := make([]byte, 8)
	a := &assembler{seen: make(map[blockKey]bool)}
	key := blockKey{fileIDChipIdentification, sfidGen1Data}

	sub1, err := byteio.New(chip).Sub(len(chip))
	if err != nil {
		t.Fatalf("Sub() error = %v", err)
	}
	if err := a.dispatch(key, sub1, len(chip)); err != nil {
		t.Fatalf("first dispatch() error = %v", err)
	}

	sub2, err := byteio.New(chip).Sub(len(chip))
	if err != nil {
		t.Fatalf("Sub() error = %v", err)
	}
	var dupErr *DuplicateBlockError
	if err := a.dispatch(key, sub2, len(chip)); !errors.As(err, &dupErr) {
		t.Fatalf("second dispatch() error = %v, want *DuplicateBlockError", err)
	}
}

func TestDispatch_UnknownBlockReturnsSentinel(t *testing.T) {
	a := &assembler{seen: make(map[blockKey]bool)}
	key := blockKey{0xFFFF, 9}
	sub, err := byteio.New(nil).Sub(0)
	if err != nil {
		t.Fatalf("Sub() error = %v", err)
	}
	if err := a.dispatch(key, sub, 0); !errors.Is(err, errUnknownBlock) {
		t.Fatalf("dispatch() error = %v, want errUnknownBlock", err)
	}
}

func TestParse_UnknownBlockTerminatesCleanlyThenReportsMissing(t *testing.T) {
	data := append(
		block(fileIDChipIdentification, sfidGen1Data, make([]byte, 8)),
		block(0xFFFF, 9, nil)...,
	)
	_, err := Parse(data)
	var missingErr *MissingBlockError
	if !errors.As(err, &missingErr) {
		t.Fatalf("Parse() error = %v, want *MissingBlockError", err)
	}
	if missingErr.Block != "iccIdentification" {
		t.Fatalf("MissingBlockError.Block = %q, want iccIdentification (first mandatory slot checked)", missingErr.Block)
	}
}

func TestParse_EmptyInputReportsMissingICC(t *testing.T) {
	_, err := Parse(nil)
	var missingErr *MissingBlockError
	if !errors.As(err, &missingErr) {
		t.Fatalf("Parse() error = %v, want *MissingBlockError", err)
	}
	if missingErr.Block != "iccIdentification" {
		t.Fatalf("MissingBlockError.Block = %q, want iccIdentification", missingErr.Block)
	}
}

// TestDispatch_OptionalBlocksNeverGuardDuplicates covers CardDownload,
// DrivingLicenceInfo, and CurrentUsage: a second occurrence of the
// signature block must be accepted, not treated as a duplicate, on both
// Gen1 and Gen2 signature sfids.
func TestDispatch_OptionalBlocksNeverGuardDuplicates(t *testing.T) {
	sig := make([]byte, 128)

	optionalKeys := []blockKey{
		{fileIDCardDownload, sfidGen1Signature},
		{fileIDCardDownload, sfidGen2Signature},
		{fileIDDrivingLicenceInfo, sfidGen1Signature},
		{fileIDDrivingLicenceInfo, sfidGen2Signature},
		{fileIDCurrentUsage, sfidGen1Signature},
		{fileIDCurrentUsage, sfidGen2Signature},
	}

	for _, key := range optionalKeys {
		a := &assembler{seen: make(map[blockKey]bool)}
		for i := 0; i < 2; i++ {
			sub, err := byteio.New(sig).Sub(len(sig))
			if err != nil {
				t.Fatalf("Sub() error = %v", err)
			}
			if err := a.dispatch(key, sub, len(sig)); err != nil {
				t.Fatalf("dispatch(%+v) occurrence %d error = %v, want nil (optional blocks are not duplicate-guarded)", key, i+1, err)
			}
		}
	}
}
