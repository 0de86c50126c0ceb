package internal

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrTruncated is returned when a read would go past the end of the buffer.
var ErrTruncated = errors.New("truncated")

// Cursor provides bounds-checked little-endian reads at absolute offsets
// into an immutable buffer. It never mutates or retains ownership of the
// underlying data; every slice it returns is a copy.
type Cursor struct {
	data []byte
	text Text
}

// NewCursor wraps data. Strings read through the cursor are decoded with text.
func NewCursor(data []byte, text Text) Cursor {
	return Cursor{data: data, text: text}
}

// Len returns the size of the underlying buffer.
func (c Cursor) Len() int {
	return len(c.data)
}

// Remaining returns the number of bytes available from offset.
func (c Cursor) Remaining(offset int) int {
	if offset < 0 || offset > len(c.data) {
		return 0
	}
	return len(c.data) - offset
}

// Text returns the string decoder the cursor was created with.
func (c Cursor) Text() Text {
	return c.text
}

func (c Cursor) check(offset, n int) error {
	if offset < 0 || n < 0 || offset > len(c.data) || n > len(c.data)-offset {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, offset, c.Remaining(offset))
	}
	return nil
}

// Uint8 reads a byte at offset.
func (c Cursor) Uint8(offset int) (uint8, error) {
	if err := c.check(offset, 1); err != nil {
		return 0, err
	}
	return c.data[offset], nil
}

// Uint16 reads a little-endian uint16 at offset.
func (c Cursor) Uint16(offset int) (uint16, error) {
	if err := c.check(offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(c.data[offset:]), nil
}

// Uint32 reads a little-endian uint32 at offset.
func (c Cursor) Uint32(offset int) (uint32, error) {
	if err := c.check(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(c.data[offset:]), nil
}

// Uint64 reads a little-endian uint64 at offset.
func (c Cursor) Uint64(offset int) (uint64, error) {
	if err := c.check(offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(c.data[offset:]), nil
}

// Int16 reads a little-endian int16 at offset.
func (c Cursor) Int16(offset int) (int16, error) {
	v, err := c.Uint16(offset)
	return int16(v), err
}

// Int32 reads a little-endian int32 at offset.
func (c Cursor) Int32(offset int) (int32, error) {
	v, err := c.Uint32(offset)
	return int32(v), err
}

// Int64 reads a little-endian int64 at offset.
func (c Cursor) Int64(offset int) (int64, error) {
	v, err := c.Uint64(offset)
	return int64(v), err
}

// Bytes returns a copy of n bytes at offset.
func (c Cursor) Bytes(offset, n int) ([]byte, error) {
	if err := c.check(offset, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.data[offset:offset+n])
	return out, nil
}

// Array16 reads a fixed 16 byte field, typically a GUID.
func (c Cursor) Array16(offset int) ([16]byte, error) {
	var out [16]byte
	if err := c.check(offset, 16); err != nil {
		return out, err
	}
	copy(out[:], c.data[offset:offset+16])
	return out, nil
}

// ANSIString reads a NUL terminated 8-bit string starting at offset and
// returns it along with the offset just past the terminator.
func (c Cursor) ANSIString(offset int) (string, int, error) {
	if err := c.check(offset, 1); err != nil {
		return "", offset, err
	}
	for i := offset; i < len(c.data); i++ {
		if c.data[i] == 0 {
			return c.text.ANSI(c.data[offset:i]), i + 1, nil
		}
	}
	return "", offset, fmt.Errorf("%w: unterminated string at offset %d", ErrTruncated, offset)
}

// UnicodeString reads a NUL terminated UTF-16LE string starting at offset and
// returns it along with the offset just past the two byte terminator.
func (c Cursor) UnicodeString(offset int) (string, int, error) {
	if err := c.check(offset, 2); err != nil {
		return "", offset, err
	}
	for i := offset; i+1 < len(c.data); i += 2 {
		if c.data[i] == 0 && c.data[i+1] == 0 {
			return c.text.Unicode(c.data[offset:i]), i + 2, nil
		}
	}
	return "", offset, fmt.Errorf("%w: unterminated unicode string at offset %d", ErrTruncated, offset)
}

// FixedANSI decodes an 8-bit string stored in a fixed width field. The string
// ends at the first NUL or at the end of the field, whichever comes first.
func (c Cursor) FixedANSI(offset, width int) (string, error) {
	if err := c.check(offset, width); err != nil {
		return "", err
	}
	return c.text.ReadString(c.data[offset:offset+width], 0), nil
}

// FixedUnicode decodes a UTF-16LE string stored in a fixed width field.
func (c Cursor) FixedUnicode(offset, width int) (string, error) {
	if err := c.check(offset, width); err != nil {
		return "", err
	}
	return c.text.ReadUnicode(c.data[offset:offset+width], 0), nil
}

// LengthPrefixed reads a string preceded by a 16-bit character count. When
// unicode is set each character occupies two bytes. The returned offset points
// just past the string data.
func (c Cursor) LengthPrefixed(offset int, unicode bool) (string, int, error) {
	count, err := c.Uint16(offset)
	if err != nil {
		return "", offset, err
	}
	width := 1
	if unicode {
		width = 2
	}
	n := int(count) * width
	if err := c.check(offset+2, n); err != nil {
		return "", offset, err
	}
	raw := c.data[offset+2 : offset+2+n]
	if unicode {
		return c.text.Unicode(raw), offset + 2 + n, nil
	}
	return c.text.ANSI(raw), offset + 2 + n, nil
}
