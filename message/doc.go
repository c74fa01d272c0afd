// Package message turns a raw RFC 5322 message into structured data:
// decoded headers, a plain-text body, an HTML body, and attachments.
//
// The decoder understands multipart bodies (RFC 2046), the base64 and
// quoted-printable transfer encodings (RFC 2045), encoded-word headers
// (RFC 2047), and the character sets listed in the charset subpackage.
// It is a pure transformation with no I/O and no shared state, so
// concurrent calls for unrelated messages need no coordination.
//
// The guiding rule is that nothing local ever fails the whole parse. A
// fragment that cannot be decoded is kept in its most literal available
// form, an unknown charset is read as UTF-8, and malformed framing is
// skipped. The only failure mode a caller can observe is a partially
// filled or empty Email.
package message
