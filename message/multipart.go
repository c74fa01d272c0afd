package message

import (
	"strings"

	"github.com/driftmail/driftmail/message/header"
)

// part is one segment of a multipart body: its own header block plus its
// raw, undecoded body text. Parts exist only while the splitter's caller
// classifies them.
type part struct {
	headers header.Header
	body    string
}

// splitParts breaks a multipart body at every "--boundary" delimiter. The
// preamble before the first delimiter is discarded. A segment beginning
// with a further "--" is the terminator; it and everything after it (the
// epilogue) are discarded. Each remaining segment is trimmed and split at
// its first blank line into the part's header block and body; segments
// without a blank line are malformed and silently skipped.
func splitParts(body, boundary string) []part {
	segments := strings.Split(body, "--"+boundary)
	if len(segments) < 2 {
		return nil
	}
	parts := make([]part, 0, len(segments)-1)
	for _, seg := range segments[1:] {
		if strings.HasPrefix(seg, "--") {
			break
		}
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		head, rest, ok := splitHeadBody(seg)
		if !ok {
			continue
		}
		parts = append(parts, part{headers: header.Parse(head), body: rest})
	}
	return parts
}

// splitHeadBody splits s at the first blank line, whichever of CRLF CRLF
// or LF LF comes first.
func splitHeadBody(s string) (head, body string, ok bool) {
	iCRLF := strings.Index(s, "\r\n\r\n")
	iLF := strings.Index(s, "\n\n")
	switch {
	case iCRLF >= 0 && (iLF < 0 || iCRLF <= iLF):
		return s[:iCRLF], s[iCRLF+4:], true
	case iLF >= 0:
		return s[:iLF], s[iLF+2:], true
	}
	return "", "", false
}
