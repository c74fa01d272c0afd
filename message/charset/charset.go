// Package charset maps MIME charset labels onto byte-to-text decoders.
//
// Lookup is deliberately forgiving: labels are normalized before the table
// is consulted, and anything the table does not know is treated as UTF-8.
// Mail in the wild declares charsets with wildly inconsistent spelling
// ("UTF-8", "utf8", "GB-2312"), and a failed lookup must never fail the
// message it came from.
package charset

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// encodings maps normalized labels to byte encodings. The utf8 entry is
// nil because UTF-8 input needs no transformation. gb2312 maps to GBK,
// which is its superset; real mail labeled gb2312 routinely carries GBK
// bytes.
var encodings = map[string]encoding.Encoding{
	"utf8":        nil,
	"gbk":         simplifiedchinese.GBK,
	"gb2312":      simplifiedchinese.GBK,
	"gb18030":     simplifiedchinese.GB18030,
	"big5":        traditionalchinese.Big5,
	"iso88591":    charmap.ISO8859_1,
	"windows1252": charmap.Windows1252,
}

// Normalize reduces a charset label to its lookup form: every character
// that is not a letter or digit is removed and the rest is lower-cased.
func Normalize(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// Lookup returns the encoding registered for label. The boolean is false
// when the label is unknown and the caller is getting the UTF-8 fallback.
// A nil encoding with a true boolean means the label named UTF-8 itself.
func Lookup(label string) (encoding.Encoding, bool) {
	enc, ok := encodings[Normalize(label)]
	return enc, ok
}

// Decode converts raw bytes to a string using the encoding named by label.
// Unknown labels fall back to UTF-8 and a conversion error returns the
// bytes unchanged, so Decode cannot fail. The boolean reports whether the
// requested conversion actually took place.
func Decode(label string, b []byte) (string, bool) {
	enc, known := Lookup(label)
	if enc == nil {
		return string(b), known
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b), false
	}
	return string(out), true
}
