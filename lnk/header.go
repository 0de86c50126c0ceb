package lnk

import (
	"fmt"
	"strconv"

	"github.com/andrewstucki/shortcut/internal"
)

// HeaderSize is the only valid value of the header size field.
const HeaderSize = 0x4C

// header field offsets
const (
	offsetCLSID        = 4
	offsetLinkFlags    = 20
	offsetFileFlags    = 24
	offsetCreationTime = 28
	offsetAccessTime   = 36
	offsetWriteTime    = 44
	offsetFileSize     = 52
	offsetIconIndex    = 56
	offsetShowCommand  = 60
	offsetHotKey       = 64
	offsetReserved0    = 66
	offsetReserved1    = 68
	offsetReserved2    = 72
)

var showCommands = [...]string{
	"SW_HIDE",
	"SW_NORMAL",
	"SW_SHOWMINIMIZED",
	"SW_MAXIMIZE",
	"SW_SHOWNOACTIVATE",
	"SW_SHOW",
	"SW_MINIMIZE",
	"SW_SHOWMINNOACTIVE",
	"SW_SHOWNA",
	"SW_RESTORE",
	"SW_SHOWDEFAULT",
}

// ShowCommand is the window state the target is launched with.
type ShowCommand uint32

// Known reports whether the value has a name.
func (s ShowCommand) Known() bool {
	return int(s) < len(showCommands)
}

// String returns the SW_* name, or the raw number when out of range.
func (s ShowCommand) String() string {
	if s.Known() {
		return showCommands[s]
	}
	return strconv.FormatUint(uint64(s), 10)
}

// MarshalText renders the same value as String.
func (s ShowCommand) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var hotKeyModifiers = map[byte]string{
	0x00: "UNSET",
	0x01: "HOTKEYF_SHIFT",
	0x02: "HOTKEYF_CONTROL",
	0x04: "HOTKEYF_ALT",
}

// HotKey is the keyboard shortcut assigned to the link.
type HotKey struct {
	Key      byte `json:"key"`
	Modifier byte `json:"modifier"`
}

// Raw returns the packed 16-bit value as stored in the header.
func (h HotKey) Raw() uint16 {
	return uint16(h.Modifier)<<8 | uint16(h.Key)
}

// KeyName returns the virtual key name, or the hex value when unmapped.
func (h HotKey) KeyName() string {
	switch k := h.Key; {
	case k >= 0x30 && k <= 0x39, k >= 0x41 && k <= 0x5a:
		return string(rune(k))
	case k >= 0x70 && k <= 0x87:
		return "F" + strconv.Itoa(int(k-0x70)+1)
	case k == 0x90:
		return "NUM LOCK"
	case k == 0x91:
		return "SCROLL LOCK"
	default:
		return fmt.Sprintf("0x%02x", k)
	}
}

// ModifierName returns the HOTKEYF_* name, or the hex value when unmapped.
func (h HotKey) ModifierName() string {
	if name, ok := hotKeyModifiers[h.Modifier]; ok {
		return name
	}
	return fmt.Sprintf("0x%02x", h.Modifier)
}

func (h HotKey) String() string {
	return fmt.Sprintf("%s - %s {0x%04x}", h.ModifierName(), h.KeyName(), h.Raw())
}

// Header is the fixed size ShellLinkHeader.
type Header struct {
	HeaderSize   uint32      `json:"headerSize"`
	CLSID        GUID        `json:"clsid"`
	RawLinkFlags uint32      `json:"rawLinkFlags"`
	RawFileFlags uint32      `json:"rawFileFlags"`
	CreationTime FileTime    `json:"creationTime"`
	AccessTime   FileTime    `json:"accessTime"`
	WriteTime    FileTime    `json:"writeTime"`
	FileSize     uint32      `json:"fileSize"`
	IconIndex    int32       `json:"iconIndex"`
	ShowCommand  ShowCommand `json:"showCommand"`
	HotKey       HotKey      `json:"hotKey"`
	Reserved0    uint16      `json:"reserved0"`
	Reserved1    uint32      `json:"reserved1"`
	Reserved2    uint32      `json:"reserved2"`
}

func decodeHeader(c internal.Cursor) (Header, error) {
	var h Header
	if c.Len() < HeaderSize {
		return h, fmt.Errorf("%w: file is %d bytes, need %d", ErrInvalidHeader, c.Len(), HeaderSize)
	}

	// every read below is within the first HeaderSize bytes
	h.HeaderSize, _ = c.Uint32(0)
	if h.HeaderSize != HeaderSize {
		return Header{}, fmt.Errorf("%w: header size 0x%x", ErrInvalidHeader, h.HeaderSize)
	}
	h.CLSID, _ = c.Array16(offsetCLSID)
	h.RawLinkFlags, _ = c.Uint32(offsetLinkFlags)
	h.RawFileFlags, _ = c.Uint32(offsetFileFlags)

	creation, _ := c.Uint64(offsetCreationTime)
	access, _ := c.Uint64(offsetAccessTime)
	write, _ := c.Uint64(offsetWriteTime)
	h.CreationTime = FileTime(creation)
	h.AccessTime = FileTime(access)
	h.WriteTime = FileTime(write)

	h.FileSize, _ = c.Uint32(offsetFileSize)
	h.IconIndex, _ = c.Int32(offsetIconIndex)
	show, _ := c.Uint32(offsetShowCommand)
	h.ShowCommand = ShowCommand(show)

	h.HotKey.Key, _ = c.Uint8(offsetHotKey)
	h.HotKey.Modifier, _ = c.Uint8(offsetHotKey + 1)

	h.Reserved0, _ = c.Uint16(offsetReserved0)
	h.Reserved1, _ = c.Uint32(offsetReserved1)
	h.Reserved2, _ = c.Uint32(offsetReserved2)
	return h, nil
}

// Sniff reports whether buf starts with the shell link header size. The
// CLSID is not checked so that links with a bad one still reach Decode.
func Sniff(buf []byte) bool {
	size, err := internal.NewCursor(buf, internal.DefaultText).Uint32(0)
	return err == nil && size == HeaderSize
}

// HasShellLinkCLSID reports whether the header carries the CLSID every shell
// link is required to use.
func (h Header) HasShellLinkCLSID() bool {
	return h.CLSID == shellLinkCLSID
}
