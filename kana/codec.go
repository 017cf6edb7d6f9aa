package kana

import (
	"errors"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// ErrEncodingUnsupported is returned when the requested legacy
// encoding has no registered codec.
var ErrEncodingUnsupported = errors.New("kana: unsupported encoding")

// legacy names a small registry of supported multibyte encodings,
// generalizing the original implementation's hardcoded SJIS-only pair
// (original_source/base/encoding_util.cc) into a table that can grow
// without an API break.
var legacy = map[string]encoding.Encoding{
	"shift_jis": japanese.ShiftJIS,
	"sjis":      japanese.ShiftJIS,
	"SJIS":      japanese.ShiftJIS,
}

// ToUTF8FromLegacy converts bytes in the named legacy multibyte
// encoding to canonical UTF-8. It fails cleanly with
// ErrEncodingUnsupported when encoding is not registered, mirroring
// the original codec boundary's fail-closed contract.
func ToUTF8FromLegacy(encodingName string, in []byte) (string, error) {
	enc, ok := legacy[encodingName]
	if !ok {
		return "", ErrEncodingUnsupported
	}
	out, err := enc.NewDecoder().Bytes(in)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// FromUTF8ToLegacy converts a UTF-8 string to bytes in the named
// legacy multibyte encoding.
func FromUTF8ToLegacy(encodingName string, in string) ([]byte, error) {
	enc, ok := legacy[encodingName]
	if !ok {
		return nil, ErrEncodingUnsupported
	}
	out, err := enc.NewEncoder().Bytes([]byte(in))
	if err != nil {
		return nil, err
	}
	return out, nil
}
