package sheet

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var zipMagic = []byte("PK\x03\x04")

// Decode returns payload as UTF-8 text. A leading BOM is dropped and payloads that
// are not valid UTF-8 are read as Windows-1254, the usual encoding of Turkish exports.
func Decode(payload []byte) string {
	payload = bytes.TrimPrefix(payload, []byte(bom))
	if utf8.Valid(payload) {
		return string(payload)
	}
	out, err := charmap.Windows1254.NewDecoder().Bytes(payload)
	if err != nil {
		return string(payload)
	}
	return string(out)
}

// IsXLSX reports whether payload looks like an Office Open XML workbook.
func IsXLSX(payload []byte) bool {
	return bytes.HasPrefix(payload, zipMagic)
}

// Text converts a fetched payload to delimited text, unpacking XLSX workbooks.
func Text(payload []byte) (string, error) {
	if IsXLSX(payload) {
		return XLSXToText(bytes.NewReader(payload))
	}
	return Decode(payload), nil
}
