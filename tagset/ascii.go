package tagset

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeASCIIDisplay decodes a raw ASCII/byte tag payload for display
// purposes only: the canonical payload stored on the Field is always the
// raw bytes, never this decoded form. Valid UTF-8 (the common case, since
// ASCII is a UTF-8 subset) is returned unchanged. Invalid sequences
// (vendor fields that smuggle Latin-1 text through an ASCII tag, mostly)
// fall back to charmap.ISO8859_1 so dump output still shows readable
// text instead of the replacement character. usedFallback reports whether
// the fallback path was taken, so callers can record a warning while
// keeping the raw bytes.
func DecodeASCIIDisplay(raw []byte) (text string, usedFallback bool) {
	trimmed := trimTrailingNUL(raw)
	if utf8.Valid(trimmed) {
		return string(trimmed), false
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(trimmed)
	if err != nil {
		return string(trimmed), true
	}
	return string(decoded), true
}

func trimTrailingNUL(raw []byte) []byte {
	end := len(raw)
	for end > 0 && raw[end-1] == 0 {
		end--
	}
	return raw[:end]
}
