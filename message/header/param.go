package header

import (
	"regexp"
	"strings"
)

// Parameter extraction is plain pattern matching rather than a full RFC
// 2045 parameter-list tokenizer. Attribute names match case-insensitively,
// quotes around the value are optional, and the captured value keeps its
// case. Quoted values containing ';' or '"' are a known weak spot.
var (
	charsetParam  = regexp.MustCompile(`(?i)charset="?([^"\s;]+)"?`)
	boundaryParam = regexp.MustCompile(`(?i)boundary="?([^";]+)"?`)
	filenameParam = regexp.MustCompile(`(?i)filename="?([^";]+)"?`)
)

// Charset extracts the charset parameter from a Content-Type value,
// defaulting to utf-8 when the parameter is absent.
func Charset(contentType string) string {
	if m := charsetParam.FindStringSubmatch(contentType); m != nil {
		return m[1]
	}
	return "utf-8"
}

// Boundary extracts the boundary parameter from a Content-Type value.
// The boolean is false when no boundary parameter is present.
func Boundary(contentType string) (string, bool) {
	if m := boundaryParam.FindStringSubmatch(contentType); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// Filename extracts the filename parameter from a Content-Disposition
// value, decoding any encoded-words in the name. The boolean is false
// when no filename parameter is present.
func Filename(disposition string) (string, bool) {
	if m := filenameParam.FindStringSubmatch(disposition); m != nil {
		return DecodeWords(strings.TrimSpace(m[1])), true
	}
	return "", false
}
