package csvimport

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Encoding names accepted in supplier master data
const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"
	EncodingCP932    = "cp932"
)

// DecodeToUTF8 converts raw CSV bytes to UTF-8. The supplier's declared
// encoding is tried first, then UTF-8, then CP932. Market exports often
// lie about their encoding, so a failed decode falls through instead of
// failing the import outright.
func DecodeToUTF8(data []byte, declared string) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyFile
	}

	tried := map[string]bool{}
	for _, name := range []string{declared, EncodingUTF8, EncodingCP932} {
		if name == "" || tried[name] {
			continue
		}
		tried[name] = true

		decoded, err := decodeAs(data, name)
		if err == nil {
			return stripBOM(decoded), name, nil
		}
	}
	return nil, "", ErrInvalidEncoding
}

func decodeAs(data []byte, name string) ([]byte, error) {
	switch name {
	case EncodingUTF8:
		if !utf8.Valid(data) {
			return nil, ErrInvalidEncoding
		}
		return data, nil
	case EncodingShiftJIS, EncodingCP932:
		// japanese.ShiftJIS implements Microsoft's CP932 superset
		decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(decoded) {
			return nil, ErrInvalidEncoding
		}
		return decoded, nil
	default:
		return nil, ErrUnsupportedEncoding
	}
}

// stripBOM removes a UTF-8 byte order mark if present.
func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}
