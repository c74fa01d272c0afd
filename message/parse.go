package message

import (
	"strings"

	"github.com/driftmail/driftmail/message/header"
	"github.com/driftmail/driftmail/message/transfer"
)

// DefaultMaxDepth is the default number of multipart levels Parse will
// descend into before treating the remaining structure as opaque text.
const DefaultMaxDepth = 10

type parser struct {
	maxDepth int
}

var defaultParser = parser{
	maxDepth: DefaultMaxDepth,
}

// Option adjusts how Parse works.
type Option func(*parser)

// WithMaxDepth sets how many multipart levels Parse descends into. At the
// bound a nested multipart body is decoded as plain text instead of being
// split further, so hostile nesting cannot grow the stack without limit.
// Values below 1 disable multipart handling entirely.
func WithMaxDepth(n int) Option {
	return func(p *parser) { p.maxDepth = n }
}

// Parse decodes one raw RFC 5322 message, CRLF preferred and LF
// tolerated. It never fails: a local decode problem degrades that
// fragment to its most literal available representation, and the worst
// malformed input yields is a partially filled or empty Email.
func Parse(raw []byte, opts ...Option) *Email {
	p := defaultParser
	for _, opt := range opts {
		opt(&p)
	}

	text := string(raw)
	head, body, ok := splitHeadBody(text)
	if !ok {
		// No blank line at all: the whole message is header.
		head, body = text, ""
	}

	email := &Email{
		Headers: header.Parse(head),
		Raw:     text,
	}

	contentType := email.Headers.Get(header.ContentType)
	if contentType == "" {
		contentType = "text/plain"
	}
	encoding := email.Headers.Get(header.ContentTransferEncoding)

	switch {
	case strings.Contains(contentType, "multipart"):
		boundary, ok := header.Boundary(contentType)
		if !ok || p.maxDepth < 1 {
			// A multipart body with no usable boundary cannot be split.
			// It is dropped rather than guessed at: text, HTML, and
			// attachments all stay empty.
			break
		}
		p.walk(email, splitParts(body, boundary), 1)
	case strings.Contains(contentType, "text/html"):
		email.HTML, _ = transfer.DecodeText(body, encoding, header.Charset(contentType))
	default:
		email.Text, _ = transfer.DecodeText(body, encoding, header.Charset(contentType))
	}

	if email.Text == "" && email.HTML != "" {
		email.Text = HTMLToText(email.HTML)
	}

	return email
}

// walk classifies each part at one multipart level. When sibling parts
// qualify for the same slot, the last one processed wins.
func (p *parser) walk(email *Email, parts []part, depth int) {
	for _, pt := range parts {
		contentType := pt.headers.Get(header.ContentType)
		if contentType == "" {
			contentType = "text/plain"
		}
		encoding := pt.headers.Get(header.ContentTransferEncoding)

		// An attachment disposition wins over the content type.
		if disposition := pt.headers.Get(header.ContentDisposition); strings.Contains(disposition, "attachment") {
			email.Attachments = append(email.Attachments, decodeAttachment(pt, contentType, encoding, disposition))
			continue
		}

		switch {
		case strings.Contains(contentType, "multipart"):
			boundary, ok := header.Boundary(contentType)
			if !ok {
				continue
			}
			if depth >= p.maxDepth {
				// Depth bound reached: the nested structure is opaque
				// body text from here on.
				email.Text, _ = transfer.DecodeText(pt.body, encoding, header.Charset(contentType))
				continue
			}
			p.walk(email, splitParts(pt.body, boundary), depth+1)
		case strings.Contains(contentType, "text/html"):
			email.HTML, _ = transfer.DecodeText(pt.body, encoding, header.Charset(contentType))
		case strings.Contains(contentType, "text/plain"):
			email.Text, _ = transfer.DecodeText(pt.body, encoding, header.Charset(contentType))
		}
	}
}

// decodeAttachment decodes an attachment part through the binary-safe
// path, so base64 content arrives byte-for-byte intact.
func decodeAttachment(pt part, contentType, encoding, disposition string) Attachment {
	filename, ok := header.Filename(disposition)
	if !ok || filename == "" {
		filename = "attachment"
	}
	content, _ := transfer.DecodeBinary(pt.body, encoding)
	primary, _, _ := strings.Cut(contentType, ";")
	return Attachment{
		Filename:    filename,
		ContentType: strings.TrimSpace(primary),
		Content:     content,
		Size:        len(content),
	}
}
