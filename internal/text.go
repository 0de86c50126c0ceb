package internal

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Bytes outside the open interval (printableLow, printableHigh) are dropped by
// Clean.
const (
	printableLow  = 0x14
	printableHigh = 0x80
)

// Text turns raw string bytes found in a shortcut into Go strings.
//
// With Normalize set, both 8-bit and UTF-16LE data go through Clean, which
// keeps only the bytes strictly between 0x14 and 0x80. This mirrors the
// display behaviour analysts are used to from existing LNK tooling but loses
// any non-ASCII character. With Normalize unset, UTF-16LE data is decoded
// properly and 8-bit data is decoded with Charset.
type Text struct {
	Normalize bool
	Charset   encoding.Encoding
}

// DefaultText is the normalizing decoder.
var DefaultText = Text{Normalize: true, Charset: charmap.Windows1252}

// Clean strips NUL bytes and everything outside the printable range.
func Clean(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		if c > printableLow && c < printableHigh {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ANSI decodes 8-bit string bytes.
func (t Text) ANSI(raw []byte) string {
	if t.Normalize {
		return Clean(raw)
	}
	charset := t.Charset
	if charset == nil {
		charset = charmap.Windows1252
	}
	decoded, err := charset.NewDecoder().Bytes(raw)
	if err != nil {
		return Clean(raw)
	}
	return strings.TrimRight(string(decoded), "\x00")
}

// Unicode decodes UTF-16LE string bytes. A trailing odd byte is ignored.
func (t Text) Unicode(raw []byte) string {
	if t.Normalize {
		return Clean(raw)
	}
	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		units = append(units, binary.LittleEndian.Uint16(raw[i:]))
	}
	return strings.TrimRight(string(utf16.Decode(units)), "\x00")
}

// ReadString decodes the 8-bit string starting at offset in data, stopping at
// the first NUL or the end of data.
func (t Text) ReadString(data []byte, offset int) string {
	if offset >= len(data) {
		return ""
	}
	end := offset
	for end < len(data) && data[end] != 0 {
		end++
	}
	return t.ANSI(data[offset:end])
}

// ReadUnicode decodes the UTF-16LE string starting at offset in data,
// stopping at the first NUL code unit or the end of data.
func (t Text) ReadUnicode(data []byte, offset int) string {
	if offset >= len(data) {
		return ""
	}
	end := offset
	for end+1 < len(data) {
		if data[end] == 0 && data[end+1] == 0 {
			break
		}
		end += 2
	}
	if end > len(data) {
		end = len(data)
	}
	return t.Unicode(data[offset:end])
}
