package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestCursorIntegers(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0xff, 0xff}
	c := NewCursor(data, DefaultText)

	u8, err := c.Uint8(0)
	require.NoError(t, err)
	require.Equal(t, uint8(0x01), u8)

	u16, err := c.Uint16(0)
	require.NoError(t, err)
	require.Equal(t, uint16(0x0201), u16)

	u32, err := c.Uint32(0)
	require.NoError(t, err)
	require.Equal(t, uint32(0x04030201), u32)

	u64, err := c.Uint64(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0807060504030201), u64)

	i16, err := c.Int16(8)
	require.NoError(t, err)
	require.Equal(t, int16(-1), i16)
}

func TestCursorTruncated(t *testing.T) {
	c := NewCursor(make([]byte, 6), DefaultText)

	tests := []struct {
		name string
		read func() error
	}{
		{"uint16 at end", func() error { _, err := c.Uint16(5); return err }},
		{"uint32 past end", func() error { _, err := c.Uint32(4); return err }},
		{"uint64 too large", func() error { _, err := c.Uint64(0); return err }},
		{"negative offset", func() error { _, err := c.Uint8(-1); return err }},
		{"offset beyond buffer", func() error { _, err := c.Bytes(100, 1); return err }},
		{"huge length", func() error { _, err := c.Bytes(1, int(^uint(0)>>1)); return err }},
		{"guid", func() error { _, err := c.Array16(0); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read()
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrTruncated))
		})
	}
}

func TestCursorBytesIsCopy(t *testing.T) {
	data := []byte{1, 2, 3}
	c := NewCursor(data, DefaultText)
	out, err := c.Bytes(0, 3)
	require.NoError(t, err)
	out[0] = 9
	require.Equal(t, byte(1), data[0])
}

func TestCursorStrings(t *testing.T) {
	data := []byte("abc\x00d\x00e\x00\x00\x00")
	c := NewCursor(data, DefaultText)

	s, next, err := c.ANSIString(0)
	require.NoError(t, err)
	require.Equal(t, "abc", s)
	require.Equal(t, 4, next)

	u, next, err := c.UnicodeString(4)
	require.NoError(t, err)
	require.Equal(t, "de", u)
	require.Equal(t, 10, next)

	_, _, err = NewCursor([]byte("abc"), DefaultText).ANSIString(0)
	require.True(t, errors.Is(err, ErrTruncated))
}

func TestCursorLengthPrefixed(t *testing.T) {
	ansi := append([]byte{0x03, 0x00}, []byte("cmd")...)
	s, next, err := NewCursor(ansi, DefaultText).LengthPrefixed(0, false)
	require.NoError(t, err)
	require.Equal(t, "cmd", s)
	require.Equal(t, 5, next)

	wide := []byte{0x02, 0x00, 'o', 0x00, 'k', 0x00}
	s, next, err = NewCursor(wide, DefaultText).LengthPrefixed(0, true)
	require.NoError(t, err)
	require.Equal(t, "ok", s)
	require.Equal(t, 6, next)

	short := []byte{0x05, 0x00, 'a'}
	_, next, err = NewCursor(short, DefaultText).LengthPrefixed(0, false)
	require.True(t, errors.Is(err, ErrTruncated))
	require.Equal(t, 0, next)
}

func TestClean(t *testing.T) {
	require.Equal(t, "C:\\a b", Clean([]byte("C:\\a\x00 b\x13\x14\x80\xff")))
	require.Equal(t, "", Clean(nil))
}

func TestTextRaw(t *testing.T) {
	raw := Text{Charset: charmap.Windows1252}

	// "é" in windows-1252
	require.Equal(t, "caf\u00e9", raw.ANSI([]byte{'c', 'a', 'f', 0xe9}))
	require.Equal(t, "caf", DefaultText.ANSI([]byte{'c', 'a', 'f', 0xe9}))

	// U+00E9 as UTF-16LE
	wide := []byte{'c', 0, 'a', 0, 'f', 0, 0xe9, 0x00}
	require.Equal(t, "caf\u00e9", raw.Unicode(wide))
	require.Equal(t, "caf", DefaultText.Unicode(wide))

	enc, ok := CodePage(932)
	require.True(t, ok)
	sjis := Text{Charset: enc}
	// "テ" in Shift JIS
	require.Equal(t, "\u30c6", sjis.ANSI([]byte{0x83, 0x65}))

	_, ok = CodePage(12345)
	require.False(t, ok)
}

func TestReadFixed(t *testing.T) {
	field := make([]byte, 16)
	copy(field, "%windir%")
	require.Equal(t, "%windir%", DefaultText.ReadString(field, 0))

	wide := make([]byte, 16)
	copy(wide, []byte{'x', 0, 'y', 0})
	require.Equal(t, "xy", DefaultText.ReadUnicode(wide, 0))
	require.Equal(t, "", DefaultText.ReadUnicode(wide, 32))

	c := NewCursor(append(field, wide...), DefaultText)
	s, err := c.FixedANSI(0, 16)
	require.NoError(t, err)
	require.Equal(t, "%windir%", s)
	s, err = c.FixedUnicode(16, 16)
	require.NoError(t, err)
	require.Equal(t, "xy", s)
	_, err = c.FixedUnicode(20, 16)
	require.True(t, errors.Is(err, ErrTruncated))
}
