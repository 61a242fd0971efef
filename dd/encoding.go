package dd

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/tachoscan/tachodecode/byteio"
)

// CodePage identifies the character set used to interpret an IA5String's
// raw bytes, per Data Dictionary appendix 1 "Character sets".
type CodePage byte

const (
	CodePageDefault CodePage = 0
	CodePageISO8859_1  CodePage = 1
	CodePageISO8859_2  CodePage = 2
	CodePageISO8859_3  CodePage = 3
	CodePageISO8859_5  CodePage = 5
	CodePageISO8859_7  CodePage = 7
	CodePageISO8859_9  CodePage = 9
	CodePageISO8859_13 CodePage = 13
	CodePageISO8859_15 CodePage = 15
	CodePageISO8859_16 CodePage = 16
	CodePageKOI8U      CodePage = 80
	CodePageKOI8R      CodePage = 85
	CodePageEmpty      CodePage = 255
)

// charmapFor maps a code page byte to the corresponding charmap codec.
// Recognized pages are ISO-8859-1..9,13..16 and KOI8-R/KOI8-U; any other
// value (including reserved ISO-8859-4/6/8/10..12/14, which the
// regulation's code-page table does not define) falls back to lossy UTF-8,
// per spec.md Open Question 1, preserved from the source implementation.
func charmapFor(page CodePage) *charmap.Charmap {
	switch page {
	case CodePageDefault, CodePageISO8859_1:
		return charmap.ISO8859_1
	case CodePageISO8859_2:
		return charmap.ISO8859_2
	case CodePageISO8859_3:
		return charmap.ISO8859_3
	case CodePageISO8859_5:
		return charmap.ISO8859_5
	case CodePageISO8859_7:
		return charmap.ISO8859_7
	case CodePageISO8859_9:
		return charmap.ISO8859_9
	case CodePageISO8859_13:
		return charmap.ISO8859_13
	case CodePageISO8859_15:
		return charmap.ISO8859_15
	case CodePageISO8859_16:
		return charmap.ISO8859_16
	case CodePageKOI8U:
		return charmap.KOI8U
	case CodePageKOI8R:
		return charmap.KOI8R
	default:
		return nil
	}
}

// isBlacklistedRune reports whether r is one of the code points stripped
// from decoded IA5 strings after code-page conversion: ASCII control characters (other than
// space), DEL, BOM, zero-width spaces, line/paragraph separators, word
// joiners and the Unicode replacement character.
func isBlacklistedRune(r rune) bool {
	switch {
	case r >= 0x0000 && r <= 0x001F && r != ' ':
		return true
	case r == 0x007F:
		return true
	case r == 0xFEFF:
		return true
	case r >= 0x200B && r <= 0x200F:
		return true
	case r >= 0x2028 && r <= 0x202E:
		return true
	case r >= 0x2060 && r <= 0x2064:
		return true
	case r == utf8.RuneError:
		return true
	default:
		return false
	}
}

// DecodeIA5String reads n bytes from r and decodes them through the
// code-page table described in the Data Dictionary, stripping the
// blacklisted control/format characters and trimming the result.
//
// Code page 255 denotes an empty/unassigned string: the bytes are still
// consumed (to keep the caller's byte accounting correct) but the result is
// always "".
func DecodeIA5String(r *byteio.Reader, n int, page CodePage) (string, error) {
	raw, err := r.ReadExact(n)
	if err != nil {
		return "", err
	}
	if page == CodePageEmpty {
		return "", nil
	}
	anyMeaningful := false
	for _, b := range raw {
		if b > 0 && b < 0xFF {
			anyMeaningful = true
			break
		}
	}
	if !anyMeaningful {
		return "", nil
	}
	var decoded string
	if cm := charmapFor(page); cm != nil {
		out, decErr := cm.NewDecoder().Bytes(raw)
		if decErr != nil {
			// Fall back to lossy UTF-8 rather than failing the surrounding
			// record: Open Question 1 in spec.md directs this behavior for
			// unrecognized/undecodable code pages.
			decoded = strings.ToValidUTF8(string(raw), string(utf8.RuneError))
		} else {
			decoded = string(out)
		}
	} else {
		decoded = strings.ToValidUTF8(string(raw), string(utf8.RuneError))
	}
	decoded = strings.Map(func(r rune) rune {
		if isBlacklistedRune(r) {
			return -1
		}
		return r
	}, decoded)
	decoded = strings.Trim(decoded, " \t\n\v\f\r")
	decoded = strings.TrimRight(decoded, "?")
	return decoded, nil
}
