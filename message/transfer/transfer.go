// Package transfer decodes Content-Transfer-Encoding'd message bodies.
//
// Two decode paths exist. DecodeText is for body parts that will be shown
// as text: it applies the transfer decoding and then the declared charset.
// DecodeBinary is for attachments: it applies only the transfer decoding
// so the bytes come out exactly as the sender attached them.
//
// Neither path ever fails. A decode step that cannot complete returns the
// literal input for that fragment and reports the degradation through its
// boolean result, so callers can tell "decoded" from "fell back" without
// an error channel.
package transfer

import (
	"encoding/base64"
	"strings"

	"github.com/driftmail/driftmail/message/charset"
)

// Canonical Content-Transfer-Encoding tokens. Matching is by substring,
// so sloppy values like "base64;" or "Quoted-Printable " still select the
// right decoder. Anything else, including 7bit, 8bit, binary and the
// empty string, is treated as identity.
const (
	QuotedPrintable = "quoted-printable"
	Base64          = "base64"
)

// DecodeText decodes a body per its transfer encoding, then interprets
// the resulting bytes in the charset named by label. The boolean is false
// when the transfer decode failed and the literal body was returned. An
// unknown charset is substituted with UTF-8 and never counts as a
// failure.
func DecodeText(body, encoding, label string) (string, bool) {
	switch enc := strings.ToLower(encoding); {
	case strings.Contains(enc, Base64):
		raw, err := Base64Bytes(body)
		if err != nil {
			return body, false
		}
		s, _ := charset.Decode(label, raw)
		return s, true
	case strings.Contains(enc, QuotedPrintable):
		s, _ := charset.Decode(label, QuotedPrintableBytes(body))
		return s, true
	default:
		return body, true
	}
}

// DecodeBinary decodes an attachment body into raw bytes. Base64 content
// is fully binary safe. Quoted-printable and identity content pass the
// part's code units through byte-for-byte, which corrupts true binary
// payloads delivered without base64 wrapping; that limitation is
// inherited and deliberate.
func DecodeBinary(body, encoding string) ([]byte, bool) {
	switch enc := strings.ToLower(encoding); {
	case strings.Contains(enc, Base64):
		raw, err := Base64Bytes(body)
		if err != nil {
			return []byte(body), false
		}
		return raw, true
	case strings.Contains(enc, QuotedPrintable):
		return QuotedPrintableBytes(body), true
	default:
		return []byte(body), true
	}
}

// Base64Bytes strips whitespace and decodes the standard base64 alphabet.
// Unpadded input is accepted on a second attempt.
func Base64Bytes(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
	raw, err := base64.StdEncoding.DecodeString(clean)
	if err == nil {
		return raw, nil
	}
	return base64.RawStdEncoding.DecodeString(clean)
}

var softBreaks = strings.NewReplacer("=\r\n", "", "=\n", "")

// QuotedPrintableBytes performs a lenient quoted-printable decode. Soft
// line breaks are removed first, then each "=XX" hex escape emits the
// corresponding byte and every other character emits its own code unit.
// Malformed escapes are kept literally, so the decode cannot fail.
func QuotedPrintableBytes(s string) []byte {
	s = softBreaks.Replace(s)
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '=' && i+2 < len(s) {
			hi, okHi := unhex(s[i+1])
			lo, okLo := unhex(s[i+2])
			if okHi && okLo {
				out = append(out, hi<<4|lo)
				i += 2
				continue
			}
		}
		out = append(out, s[i])
	}
	return out
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}
