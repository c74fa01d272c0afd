package header

import (
	"regexp"
	"strings"

	"github.com/driftmail/driftmail/message/charset"
	"github.com/driftmail/driftmail/message/transfer"
)

// encodedWord matches one RFC 2047 token: =?charset?enc?text?= where enc
// is B or Q in either case.
var encodedWord = regexp.MustCompile(`=\?([^?]+)\?([bBqQ])\?([^?]*)\?=`)

// DecodeWords decodes every encoded-word in v independently, each with
// its own charset and encoding. A token that fails to decode is left
// exactly as it appeared, so one bad token never spoils the rest of the
// value. Text outside the tokens passes through verbatim.
func DecodeWords(v string) string {
	if !strings.Contains(v, "=?") {
		return v
	}
	return encodedWord.ReplaceAllStringFunc(v, func(tok string) string {
		m := encodedWord.FindStringSubmatch(tok)
		label, enc, text := m[1], m[2], m[3]

		var raw []byte
		switch enc {
		case "B", "b":
			var err error
			raw, err = transfer.Base64Bytes(text)
			if err != nil {
				return tok
			}
		case "Q", "q":
			// In Q encoding an underscore stands for a space.
			raw = transfer.QuotedPrintableBytes(strings.ReplaceAll(text, "_", " "))
		}

		s, _ := charset.Decode(label, raw)
		return s
	})
}
