package message

import "github.com/driftmail/driftmail/message/header"

// Email is the decoded form of one raw message.
type Email struct {
	// Headers maps lower-cased field names to decoded values. A repeated
	// field keeps only its last occurrence.
	Headers header.Header

	// Text and HTML are the decoded body alternatives. Either may be
	// empty. When a message carries only HTML, Text holds a lossy
	// plain-text rendering of it.
	Text string
	HTML string

	// Attachments appear in the order their parts appeared in the
	// message.
	Attachments []Attachment

	// Raw retains the original message verbatim.
	Raw string
}

// Attachment is one decoded attachment part.
type Attachment struct {
	Filename    string // decoded name, "attachment" when the part has none
	ContentType string // primary MIME type with parameters stripped
	Content     []byte // decoded bytes, binary safe for base64 parts
	Size        int    // byte length of Content after decoding
}

// Subject returns the decoded subject header, or "" when absent.
func (e *Email) Subject() string {
	return e.Headers.Get(header.Subject)
}

// HasAttachments reports whether any attachment part was decoded.
func (e *Email) HasAttachments() bool {
	return len(e.Attachments) > 0
}
