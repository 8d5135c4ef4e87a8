// Package encoding converts archive entry names between EUC-KR and UTF-8.
package encoding

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// DecodeName returns name as UTF-8. Valid UTF-8 is returned unchanged;
// anything else is decoded as EUC-KR, falling back to the raw bytes.
func DecodeName(name []byte) string {
	if utf8.Valid(name) {
		return string(name)
	}
	out, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), name)
	if err != nil {
		return string(name)
	}
	return string(out)
}

// EncodeName converts a UTF-8 name to EUC-KR. ASCII names and names with
// runes EUC-KR cannot represent are returned as UTF-8 bytes.
func EncodeName(name string) []byte {
	if isASCII(name) {
		return []byte(name)
	}
	out, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(name))
	if err != nil {
		return []byte(name)
	}
	return out
}

// NormalizePath converts backslashes to slashes and lowercases path for
// case-insensitive lookups.
func NormalizePath(path string) string {
	return strings.ToLower(strings.ReplaceAll(path, "\\", "/"))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
