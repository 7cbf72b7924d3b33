package parse

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// decode normalizes raw file bytes to validated UTF-8: byte order marks are
// stripped, BOM-marked UTF-16 of either endianness is transcoded, and NUL
// bytes are replaced with U+FFFD. The returned slice never aliases raw.
func decode(path string, raw []byte) ([]byte, error) {
	content, err := decodeBOM(path, raw)
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(content); {
		r, size := utf8.DecodeRune(content[i:])
		if r == utf8.RuneError && size == 1 {
			return nil, &EncodingError{Path: path, Offset: i}
		}
		i += size
	}

	if bytes.IndexByte(content, 0) >= 0 {
		content = bytes.ReplaceAll(content, []byte{0}, []byte("�"))
	}
	return content, nil
}

func decodeBOM(path string, raw []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return bytes.Clone(raw[len(bomUTF8):]), nil
	case bytes.HasPrefix(raw, bomUTF16BE), bytes.HasPrefix(raw, bomUTF16LE):
		// The BOM picks the endianness and is consumed by the decoder.
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(raw)
		if err != nil {
			return nil, &EncodingError{Path: path, Offset: 0}
		}
		return out, nil
	default:
		return bytes.Clone(raw), nil
	}
}
