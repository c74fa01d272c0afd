// Package header parses RFC 5322 header blocks along with the RFC 2047
// encoded-word and RFC 2045 parameter syntax that rides along in them.
package header

import "strings"

// Lower-cased names of the fields the decoder reads.
const (
	ContentType             = "content-type"
	ContentTransferEncoding = "content-transfer-encoding"
	ContentDisposition      = "content-disposition"
	Subject                 = "subject"
	Date                    = "date"
	From                    = "from"
)

// Header is a case-flattened view of one header block. Keys are
// lower-cased and a repeated field keeps only its last occurrence.
type Header map[string]string

// Get returns the value stored for name, matching case-insensitively.
// Missing fields return the empty string.
func (h Header) Get(name string) string {
	return h[strings.ToLower(name)]
}

// Parse splits a raw header block into a Header. Lines may end in CRLF or
// bare LF. A line whose first character is whitespace continues the
// previous field's value, joined with a single space. A line without a
// colon is dropped and does not disturb the field being accumulated.
// Every completed value has its encoded-words decoded before being
// stored. Parse cannot fail; a block with no parsable field yields an
// empty Header.
func Parse(block string) Header {
	h := make(Header)
	var key, value string
	flush := func() {
		if key != "" {
			h[key] = DecodeWords(strings.TrimSpace(value))
		}
	}
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if key != "" {
				value += " " + strings.TrimSpace(line)
			}
			continue
		}
		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		flush()
		key = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(rest)
	}
	flush()
	return h
}
