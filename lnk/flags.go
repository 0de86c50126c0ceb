package lnk

import "encoding/json"

// LinkFlags is the header bit field that controls which optional structures
// follow the header.
type LinkFlags uint32

// Link flag bits, in bit order.
const (
	HasTargetIDList LinkFlags = 1 << iota
	HasLinkInfo
	HasName
	HasRelativePath
	HasWorkingDir
	HasArguments
	HasIconLocation
	IsUnicode
	ForceNoLinkInfo
	HasExpString
	RunInSeparateProcess
	LinkFlagReserved0
	HasDarwinID
	RunAsUser
	HasExpIcon
	NoPidlAlias
	LinkFlagReserved1
	RunWithShimLayer
	ForceNoLinkTrack
	EnableTargetMetadata
	DisableLinkPathTracking
	DisableKnownFolderTracking
	DisableKnownFolderAlias
	AllowLinkToLink
	UnaliasOnSave
	PreferEnvironmentPath
	KeepLocalIDListForUNCTarget
)

// FileAttributeFlags describes the attributes of the link target.
type FileAttributeFlags uint32

// File attribute bits, in bit order.
const (
	FileAttributeReadOnly FileAttributeFlags = 1 << iota
	FileAttributeHidden
	FileAttributeSystem
	FileAttributeReserved1
	FileAttributeDirectory
	FileAttributeArchive
	FileAttributeDevice
	FileAttributeNormal
	FileAttributeTemporary
	FileAttributeSparseFile
	FileAttributeReparsePoint
	FileAttributeCompressed
	FileAttributeOffline
	FileAttributeNotContentIndexed
	FileAttributeEncrypted
	FileAttributeUnknown
	FileAttributeVirtual
)

type namedBit struct {
	mask uint32
	name string
}

// The names are the ones used by the reference documentation and existing
// tooling, including the reserved entries.
var linkFlagNames = []namedBit{
	{uint32(HasTargetIDList), "HasTargetIDList"},
	{uint32(HasLinkInfo), "HasLinkInfo"},
	{uint32(HasName), "HasName"},
	{uint32(HasRelativePath), "HasRelativePath"},
	{uint32(HasWorkingDir), "HasWorkingDir"},
	{uint32(HasArguments), "HasArguments"},
	{uint32(HasIconLocation), "HasIconLocation"},
	{uint32(IsUnicode), "IsUnicode"},
	{uint32(ForceNoLinkInfo), "ForceNoLinkInfo"},
	{uint32(HasExpString), "HasExpString"},
	{uint32(RunInSeparateProcess), "RunInSeparateProcess"},
	{uint32(LinkFlagReserved0), "Reserved0"},
	{uint32(HasDarwinID), "HasDarwinID"},
	{uint32(RunAsUser), "RunAsUser"},
	{uint32(HasExpIcon), "HasExpIcon"},
	{uint32(NoPidlAlias), "NoPidlAlias"},
	{uint32(LinkFlagReserved1), "Reserved1"},
	{uint32(RunWithShimLayer), "RunWithShimLayer"},
	{uint32(ForceNoLinkTrack), "ForceNoLinkTrack"},
	{uint32(EnableTargetMetadata), "EnableTargetMetadata"},
	{uint32(DisableLinkPathTracking), "DisableLinkPathTracking"},
	{uint32(DisableKnownFolderTracking), "DisableKnownFolderTracking"},
	{uint32(DisableKnownFolderAlias), "DisableKnownFolderAlias"},
	{uint32(AllowLinkToLink), "AllowLinkToLink"},
	{uint32(UnaliasOnSave), "UnaliasOnSave"},
	{uint32(PreferEnvironmentPath), "PreferEnvironmentPath"},
	{uint32(KeepLocalIDListForUNCTarget), "KeepLocalIDListForUNCTarget"},
}

var fileAttributeNames = []namedBit{
	{uint32(FileAttributeReadOnly), "FILE_ATTRIBUTE_READONLY"},
	{uint32(FileAttributeHidden), "FILE_ATTRIBUTE_HIDDEN"},
	{uint32(FileAttributeSystem), "FILE_ATTRIBUTE_SYSTEM"},
	{uint32(FileAttributeReserved1), "Reserved, not used by the LNK format"},
	{uint32(FileAttributeDirectory), "FILE_ATTRIBUTE_DIRECTORY"},
	{uint32(FileAttributeArchive), "FILE_ATTRIBUTE_ARCHIVE"},
	{uint32(FileAttributeDevice), "FILE_ATTRIBUTE_DEVICE"},
	{uint32(FileAttributeNormal), "FILE_ATTRIBUTE_NORMAL"},
	{uint32(FileAttributeTemporary), "FILE_ATTRIBUTE_TEMPORARY"},
	{uint32(FileAttributeSparseFile), "FILE_ATTRIBUTE_SPARSE_FILE"},
	{uint32(FileAttributeReparsePoint), "FILE_ATTRIBUTE_REPARSE_POINT"},
	{uint32(FileAttributeCompressed), "FILE_ATTRIBUTE_COMPRESSED"},
	{uint32(FileAttributeOffline), "FILE_ATTRIBUTE_OFFLINE"},
	{uint32(FileAttributeNotContentIndexed), "FILE_ATTRIBUTE_NOT_CONTENT_INDEXED"},
	{uint32(FileAttributeEncrypted), "FILE_ATTRIBUTE_ENCRYPTED"},
	{uint32(FileAttributeUnknown), "Unknown (seen on Windows 95 FAT)"},
	{uint32(FileAttributeVirtual), "FILE_ATTRIBUTE_VIRTUAL"},
}

func names(table []namedBit, word uint32) []string {
	enabled := []string{}
	for _, bit := range table {
		if word&bit.mask != 0 {
			enabled = append(enabled, bit.name)
		}
	}
	return enabled
}

func set(table []namedBit, word uint32) map[string]bool {
	out := make(map[string]bool, len(table))
	for _, bit := range table {
		out[bit.name] = word&bit.mask != 0
	}
	return out
}

func encode(table []namedBit, enabled []string) uint32 {
	var word uint32
	for _, name := range enabled {
		for _, bit := range table {
			if bit.name == name {
				word |= bit.mask
				break
			}
		}
	}
	return word
}

func mask(table []namedBit) uint32 {
	var word uint32
	for _, bit := range table {
		word |= bit.mask
	}
	return word
}

// DecodeFlags splits the two raw header words into their named sets.
func DecodeFlags(link, file uint32) (LinkFlags, FileAttributeFlags) {
	return LinkFlags(link), FileAttributeFlags(file)
}

// Has reports whether every bit of flag is set.
func (f LinkFlags) Has(flag LinkFlags) bool {
	return f&flag == flag
}

// Names lists the enabled flags in bit order. Bits without a name are
// omitted.
func (f LinkFlags) Names() []string {
	return names(linkFlagNames, uint32(f))
}

// Set returns every named flag and whether it is enabled.
func (f LinkFlags) Set() map[string]bool {
	return set(linkFlagNames, uint32(f))
}

// Known returns f with every unnamed bit cleared.
func (f LinkFlags) Known() LinkFlags {
	return f & LinkFlags(mask(linkFlagNames))
}

// MarshalJSON encodes the enabled flag names.
func (f LinkFlags) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Names())
}

// LinkFlagsFromNames rebuilds a flag word from flag names. Unknown names are
// ignored.
func LinkFlagsFromNames(enabled []string) LinkFlags {
	return LinkFlags(encode(linkFlagNames, enabled))
}

// Has reports whether every bit of flag is set.
func (f FileAttributeFlags) Has(flag FileAttributeFlags) bool {
	return f&flag == flag
}

// Names lists the enabled attributes in bit order.
func (f FileAttributeFlags) Names() []string {
	return names(fileAttributeNames, uint32(f))
}

// Set returns every named attribute and whether it is enabled.
func (f FileAttributeFlags) Set() map[string]bool {
	return set(fileAttributeNames, uint32(f))
}

// Known returns f with every unnamed bit cleared.
func (f FileAttributeFlags) Known() FileAttributeFlags {
	return f & FileAttributeFlags(mask(fileAttributeNames))
}

// MarshalJSON encodes the enabled attribute names.
func (f FileAttributeFlags) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Names())
}

// FileAttributeFlagsFromNames rebuilds an attribute word from names.
func FileAttributeFlagsFromNames(enabled []string) FileAttributeFlags {
	return FileAttributeFlags(encode(fileAttributeNames, enabled))
}
