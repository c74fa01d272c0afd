package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driftmail/driftmail/message/header"
)

func TestCharset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "utf-8", header.Charset("text/plain; charset=utf-8"))
	assert.Equal(t, "GBK", header.Charset(`text/html; charset="GBK"`))
	assert.Equal(t, "gb2312", header.Charset(`text/plain; CHARSET=gb2312; format=flowed`))
	// Absent parameter defaults to utf-8.
	assert.Equal(t, "utf-8", header.Charset("text/plain"))
}

func TestBoundary(t *testing.T) {
	t.Parallel()

	b, ok := header.Boundary(`multipart/mixed; boundary="==abc=="`)
	assert.True(t, ok)
	assert.Equal(t, "==abc==", b)

	b, ok = header.Boundary("multipart/alternative; boundary=xyz")
	assert.True(t, ok)
	assert.Equal(t, "xyz", b)

	b, ok = header.Boundary("Multipart/Mixed; BOUNDARY=upper")
	assert.True(t, ok)
	assert.Equal(t, "upper", b)

	_, ok = header.Boundary("multipart/mixed")
	assert.False(t, ok)
}

func TestFilename(t *testing.T) {
	t.Parallel()

	f, ok := header.Filename(`attachment; filename="report.pdf"`)
	assert.True(t, ok)
	assert.Equal(t, "report.pdf", f)

	f, ok = header.Filename("attachment; filename=notes.txt")
	assert.True(t, ok)
	assert.Equal(t, "notes.txt", f)

	// Encoded-word filenames decode: 文档.pdf in UTF-8 base64.
	f, ok = header.Filename(`attachment; filename="=?utf-8?B?5paH5qGjLnBkZg==?="`)
	assert.True(t, ok)
	assert.Equal(t, "文档.pdf", f)

	_, ok = header.Filename("inline")
	assert.False(t, ok)
}
