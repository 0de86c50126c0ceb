package lnk

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

// linkBuilder assembles shell links for tests. Sections are appended in the
// order they are added, so callers must follow file order.
type linkBuilder struct {
	linkFlags   LinkFlags
	fileFlags   FileAttributeFlags
	creation    uint64
	access      uint64
	write       uint64
	fileSize    uint32
	iconIndex   int32
	showCommand uint32
	hotKey      uint16
	body        bytes.Buffer
}

func newLink() *linkBuilder {
	return &linkBuilder{showCommand: 1}
}

func (b *linkBuilder) flags(flags ...LinkFlags) *linkBuilder {
	for _, f := range flags {
		b.linkFlags |= f
	}
	return b
}

func (b *linkBuilder) raw(data ...[]byte) *linkBuilder {
	for _, d := range data {
		b.body.Write(d)
	}
	return b
}

func (b *linkBuilder) header() []byte {
	h := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(h[0:], HeaderSize)
	copy(h[offsetCLSID:], shellLinkCLSID[:])
	binary.LittleEndian.PutUint32(h[offsetLinkFlags:], uint32(b.linkFlags))
	binary.LittleEndian.PutUint32(h[offsetFileFlags:], uint32(b.fileFlags))
	binary.LittleEndian.PutUint64(h[offsetCreationTime:], b.creation)
	binary.LittleEndian.PutUint64(h[offsetAccessTime:], b.access)
	binary.LittleEndian.PutUint64(h[offsetWriteTime:], b.write)
	binary.LittleEndian.PutUint32(h[offsetFileSize:], b.fileSize)
	binary.LittleEndian.PutUint32(h[offsetIconIndex:], uint32(b.iconIndex))
	binary.LittleEndian.PutUint32(h[offsetShowCommand:], b.showCommand)
	binary.LittleEndian.PutUint16(h[offsetHotKey:], b.hotKey)
	return h
}

func (b *linkBuilder) bytes() []byte {
	return append(b.header(), b.body.Bytes()...)
}

func u16(v uint16) []byte {
	out := make([]byte, 2)
	binary.LittleEndian.PutUint16(out, v)
	return out
}

func u32(v uint32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, v)
	return out
}

func join(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func utf16le(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, 2*len(units))
	for _, u := range units {
		out = append(out, u16(u)...)
	}
	return out
}

// cstring is s followed by a NUL byte.
func cstring(s string) []byte {
	return append([]byte(s), 0)
}

// wstring is s in UTF-16LE followed by a NUL code unit.
func wstring(s string) []byte {
	return append(utf16le(s), 0, 0)
}

func fixed(data []byte, width int) []byte {
	out := make([]byte, width)
	copy(out, data)
	return out
}

// ansiField is a length prefixed 8-bit string data field.
func ansiField(s string) []byte {
	return join(u16(uint16(len(s))), []byte(s))
}

// unicodeField is a length prefixed UTF-16LE string data field.
func unicodeField(s string) []byte {
	encoded := utf16le(s)
	return join(u16(uint16(len(encoded)/2)), encoded)
}

// block frames payload as an extra data block.
func block(signature uint32, payload []byte) []byte {
	return join(u32(uint32(8+len(payload))), u32(signature), payload)
}

// idList frames shell items as an ID list with its terminal item.
func idList(items ...[]byte) []byte {
	body := join(join(items...), u16(0))
	return join(u16(uint16(len(body))), body)
}

// shellItem frames data, starting with the type indicator, as a shell item.
func shellItem(data []byte) []byte {
	return join(u16(uint16(2+len(data))), data)
}

// localLinkInfo builds a LinkInfo structure for a target on a local volume.
func localLinkInfo(label, basePath, suffix string, driveType, serial uint32) []byte {
	const headerSize = 0x1C
	volume := join(u32(0), u32(driveType), u32(serial), u32(0x10), cstring(label))
	binary.LittleEndian.PutUint32(volume, uint32(len(volume)))

	volumeOffset := headerSize
	basePathOffset := volumeOffset + len(volume)
	suffixOffset := basePathOffset + len(basePath) + 1
	size := suffixOffset + len(suffix) + 1

	return join(
		u32(uint32(size)),
		u32(headerSize),
		u32(linkInfoVolumeIDAndLocalBasePath),
		u32(uint32(volumeOffset)),
		u32(uint32(basePathOffset)),
		u32(0),
		u32(uint32(suffixOffset)),
		volume,
		cstring(basePath),
		cstring(suffix),
	)
}

// networkLinkInfo builds a LinkInfo structure for a target on a share.
func networkLinkInfo(share, device, suffix string, provider uint32) []byte {
	const headerSize = 0x1C
	flags := uint32(networkValidNetType)
	deviceOffset := 0
	netNameOffset := 0x14
	if device != "" {
		flags |= networkValidDevice
		deviceOffset = netNameOffset + len(share) + 1
	}
	network := join(u32(0), u32(flags), u32(uint32(netNameOffset)), u32(uint32(deviceOffset)), u32(provider), cstring(share))
	if device != "" {
		network = join(network, cstring(device))
	}
	binary.LittleEndian.PutUint32(network, uint32(len(network)))

	networkOffset := headerSize
	suffixOffset := networkOffset + len(network)
	size := suffixOffset + len(suffix) + 1

	return join(
		u32(uint32(size)),
		u32(headerSize),
		u32(linkInfoCommonNetworkRelativeLinkAndPathSuffix),
		u32(0),
		u32(0),
		u32(uint32(networkOffset)),
		u32(uint32(suffixOffset)),
		network,
		cstring(suffix),
	)
}

// windowsOrder converts an RFC 4122 byte order identifier to the mixed
// endian layout stored in shell links.
func windowsOrder(b [16]byte) GUID {
	var g GUID
	copy(g[:], b[:])
	g[0], g[1], g[2], g[3] = b[3], b[2], b[1], b[0]
	g[4], g[5] = b[5], b[4]
	g[6], g[7] = b[7], b[6]
	return g
}
