package charset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driftmail/driftmail/message/charset"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "utf8", charset.Normalize("UTF-8"))
	assert.Equal(t, "utf8", charset.Normalize("utf_8"))
	assert.Equal(t, "iso88591", charset.Normalize("ISO-8859-1"))
	assert.Equal(t, "gb2312", charset.Normalize("GB 2312"))
	assert.Equal(t, "windows1252", charset.Normalize("Windows-1252"))
	assert.Equal(t, "", charset.Normalize("---"))
}

func TestDecodeChinese(t *testing.T) {
	t.Parallel()

	// 你好 in its GBK and Big5 byte forms.
	gbk := []byte{0xc4, 0xe3, 0xba, 0xc3}
	big5 := []byte{0xa7, 0x41, 0xa6, 0x6e}

	s, ok := charset.Decode("gbk", gbk)
	assert.True(t, ok)
	assert.Equal(t, "你好", s)

	// gb2312 is read as GBK and gb18030 is a GBK superset.
	s, ok = charset.Decode("GB2312", gbk)
	assert.True(t, ok)
	assert.Equal(t, "你好", s)

	s, ok = charset.Decode("gb18030", gbk)
	assert.True(t, ok)
	assert.Equal(t, "你好", s)

	s, ok = charset.Decode("Big5", big5)
	assert.True(t, ok)
	assert.Equal(t, "你好", s)
}

func TestDecodeLatin(t *testing.T) {
	t.Parallel()

	s, ok := charset.Decode("ISO-8859-1", []byte{0x63, 0x61, 0x66, 0xe9})
	assert.True(t, ok)
	assert.Equal(t, "café", s)

	s, ok = charset.Decode("windows-1252", []byte{0x93, 0x48, 0x69, 0x94})
	assert.True(t, ok)
	assert.Equal(t, "“Hi”", s)
}

func TestDecodeFallback(t *testing.T) {
	t.Parallel()

	// Unknown labels silently read the bytes as UTF-8.
	s, ok := charset.Decode("x-mystery-charset", []byte("plain text"))
	assert.False(t, ok)
	assert.Equal(t, "plain text", s)

	s, ok = charset.Decode("utf-8", []byte("日本語"))
	assert.True(t, ok)
	assert.Equal(t, "日本語", s)

	// The empty label is unknown, not an error.
	s, ok = charset.Decode("", []byte("abc"))
	assert.False(t, ok)
	assert.Equal(t, "abc", s)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	enc, ok := charset.Lookup("UTF-8")
	assert.True(t, ok)
	assert.Nil(t, enc)

	enc, ok = charset.Lookup("big5")
	assert.True(t, ok)
	assert.NotNil(t, enc)

	_, ok = charset.Lookup("klingon")
	assert.False(t, ok)
}
