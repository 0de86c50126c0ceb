package lnk

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	linkInfoMinSize      = 0x1C
	linkInfoUnicodeSize  = 0x24
	volumeIDMinSize      = 0x10
	volumeLabelUnicode   = 0x14
	networkLinkMinSize   = 0x14
	networkUnicodeOffset = 0x14

	linkInfoVolumeIDAndLocalBasePath               = 0x1
	linkInfoCommonNetworkRelativeLinkAndPathSuffix = 0x2

	networkValidDevice  = 0x1
	networkValidNetType = 0x2
)

var driveTypes = [...]string{
	"DRIVE_UNKNOWN",
	"DRIVE_NO_ROOT_DIR",
	"DRIVE_REMOVABLE",
	"DRIVE_FIXED",
	"DRIVE_REMOTE",
	"DRIVE_CDROM",
	"DRIVE_RAMDISK",
}

// DriveType is the type of drive the link target is stored on.
type DriveType uint32

// String returns the DRIVE_* name, or the raw number when out of range.
func (d DriveType) String() string {
	if int(d) < len(driveTypes) {
		return driveTypes[d]
	}
	return strconv.FormatUint(uint64(d), 10)
}

// MarshalText renders the same value as String.
func (d DriveType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

var networkProviders = map[uint32]string{
	0x00020000: "WNNC_NET_LANMAN",
	0x001A0000: "WNNC_NET_AVID",
	0x001B0000: "WNNC_NET_DOCUSPACE",
	0x001C0000: "WNNC_NET_MANGOSOFT",
	0x001D0000: "WNNC_NET_SERNET",
	0x001E0000: "WNNC_NET_RIVERFRONT1",
	0x001F0000: "WNNC_NET_RIVERFRONT2",
	0x00200000: "WNNC_NET_DECORB",
	0x00210000: "WNNC_NET_PROTSTOR",
	0x00220000: "WNNC_NET_FJ_REDIR",
	0x00230000: "WNNC_NET_DISTINCT",
	0x00240000: "WNNC_NET_TWINS",
	0x00250000: "WNNC_NET_RDR2SAMPLE",
	0x00260000: "WNNC_NET_CSC",
	0x00270000: "WNNC_NET_3IN1",
	0x00290000: "WNNC_NET_EXTENDNET",
	0x002A0000: "WNNC_NET_STAC",
	0x002B0000: "WNNC_NET_FOXBAT",
	0x002C0000: "WNNC_NET_YAHOO",
	0x002D0000: "WNNC_NET_EXIFS",
	0x002E0000: "WNNC_NET_DAV",
	0x002F0000: "WNNC_NET_KNOWARE",
	0x00300000: "WNNC_NET_OBJECT_DIRE",
	0x00310000: "WNNC_NET_MASFAX",
	0x00320000: "WNNC_NET_HOB_NFS",
	0x00330000: "WNNC_NET_SHIVA",
	0x00340000: "WNNC_NET_IBMAL",
	0x00350000: "WNNC_NET_LOCK",
	0x00360000: "WNNC_NET_TERMSRV",
	0x00370000: "WNNC_NET_SRT",
	0x00380000: "WNNC_NET_QUINCY",
	0x00390000: "WNNC_NET_OPENAFS",
	0x003A0000: "WNNC_NET_AVID1",
	0x003B0000: "WNNC_NET_DFS",
	0x003C0000: "WNNC_NET_KWNP",
	0x003D0000: "WNNC_NET_ZENWORKS",
	0x003E0000: "WNNC_NET_DRIVEONWEB",
	0x003F0000: "WNNC_NET_VMWARE",
	0x00400000: "WNNC_NET_RSFX",
	0x00410000: "WNNC_NET_MFILES",
	0x00420000: "WNNC_NET_MS_NFS",
	0x00430000: "WNNC_NET_GOOGLE",
}

// NetworkProviderType identifies the network redirector of a share.
type NetworkProviderType uint32

func (n NetworkProviderType) String() string {
	if name, ok := networkProviders[uint32(n)]; ok {
		return name
	}
	return hex32(uint32(n))
}

// MarshalText renders the same value as String.
func (n NetworkProviderType) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// LinkInfo describes where the link target lives, either on a local volume
// or on a network share.
type LinkInfo struct {
	Size                            uint32   `json:"size"`
	HeaderSize                      uint32   `json:"headerSize"`
	Flags                           uint32   `json:"flags"`
	VolumeIDOffset                  uint32   `json:"volumeIdOffset"`
	LocalBasePathOffset             uint32   `json:"localBasePathOffset"`
	CommonNetworkRelativeLinkOffset uint32   `json:"commonNetworkRelativeLinkOffset"`
	CommonPathSuffixOffset          uint32   `json:"commonPathSuffixOffset"`
	LocalBasePathOffsetUnicode      uint32   `json:"localBasePathOffsetUnicode,omitempty"`
	CommonPathSuffixOffsetUnicode   uint32   `json:"commonPathSuffixOffsetUnicode,omitempty"`
	CommonPathSuffix                string   `json:"commonPathSuffix,omitempty"`
	CommonPathSuffixUnicode         string   `json:"commonPathSuffixUnicode,omitempty"`
	Location                        Location `json:"location,omitempty"`
}

// Location is one of *LocalPath or *NetworkPath.
type Location interface {
	Name() string
	location()
}

// LocalPath is the VolumeIDAndLocalBasePath variant.
type LocalPath struct {
	VolumeID             *VolumeID `json:"volumeId,omitempty"`
	LocalBasePath        string    `json:"localBasePath,omitempty"`
	LocalBasePathUnicode string    `json:"localBasePathUnicode,omitempty"`
}

// Name returns the variant name.
func (*LocalPath) Name() string { return "VolumeIDAndLocalBasePath" }
func (*LocalPath) location()    {}

// NetworkPath is the CommonNetworkRelativeLinkAndPathSuffix variant.
type NetworkPath struct {
	Link *CommonNetworkRelativeLink `json:"commonNetworkRelativeLink,omitempty"`
}

// Name returns the variant name.
func (*NetworkPath) Name() string { return "CommonNetworkRelativeLinkAndPathSuffix" }
func (*NetworkPath) location()    {}

// VolumeID describes the volume a local target was stored on.
type VolumeID struct {
	Size                     uint32    `json:"size"`
	DriveType                DriveType `json:"driveType"`
	DriveSerialNumber        uint32    `json:"driveSerialNumber"`
	VolumeLabelOffset        uint32    `json:"volumeLabelOffset"`
	VolumeLabelOffsetUnicode uint32    `json:"volumeLabelOffsetUnicode,omitempty"`
	VolumeLabel              string    `json:"volumeLabel"`
}

// CommonNetworkRelativeLink describes the share a network target lives on.
type CommonNetworkRelativeLink struct {
	Size                    uint32              `json:"size"`
	Flags                   uint32              `json:"flags"`
	NetNameOffset           uint32              `json:"netNameOffset"`
	DeviceNameOffset        uint32              `json:"deviceNameOffset"`
	NetworkProviderType     NetworkProviderType `json:"networkProviderType"`
	NetNameOffsetUnicode    uint32              `json:"netNameOffsetUnicode,omitempty"`
	DeviceNameOffsetUnicode uint32              `json:"deviceNameOffsetUnicode,omitempty"`
	NetName                 string              `json:"netName,omitempty"`
	DeviceName              string              `json:"deviceName,omitempty"`
	NetNameUnicode          string              `json:"netNameUnicode,omitempty"`
	DeviceNameUnicode       string              `json:"deviceNameUnicode,omitempty"`
}

// HasNetworkProvider reports whether NetworkProviderType is meaningful.
func (l *CommonNetworkRelativeLink) HasNetworkProvider() bool {
	return l.Flags&networkValidNetType != 0
}

// Path joins the location specific prefix with the common path suffix. The
// Unicode variants are preferred when present.
func (l *LinkInfo) Path() string {
	suffix := firstNonEmpty(l.CommonPathSuffixUnicode, l.CommonPathSuffix)
	switch loc := l.Location.(type) {
	case *LocalPath:
		return firstNonEmpty(loc.LocalBasePathUnicode, loc.LocalBasePath) + suffix
	case *NetworkPath:
		if loc.Link == nil {
			return suffix
		}
		share := firstNonEmpty(loc.Link.NetNameUnicode, loc.Link.NetName)
		if suffix == "" {
			return share
		}
		return strings.TrimRight(share, `\`) + `\` + suffix
	}
	return suffix
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

const sectionLinkInfo = "linkInfo"

// skipLinkInfo steps over a LinkInfo structure that ForceNoLinkInfo marks as
// ignored.
func (d *decoder) skipLinkInfo(base int) int {
	size, err := d.c.Uint32(base)
	if err != nil {
		d.fail(sectionLinkInfo, "size", base, err)
		return d.c.Len()
	}
	d.log.Debug("ignoring link info", zap.Int("offset", base), zap.Uint32("size", size))
	switch {
	case size < 4:
		d.fail(sectionLinkInfo, "size", base, malformed("size 0x%x below minimum", size))
		return base + 4
	case int(size) > d.c.Remaining(base):
		d.fail(sectionLinkInfo, "size", base, malformed("size 0x%x exceeds file", size))
		return d.c.Len()
	}
	return base + int(size)
}

// linkInfo decodes the LinkInfo structure at base. The returned offset is
// always base + LinkInfoSize, clamped to the end of the buffer.
func (d *decoder) linkInfo(base int) (*LinkInfo, int) {
	size, err := d.c.Uint32(base)
	if err != nil {
		d.fail(sectionLinkInfo, "size", base, err)
		return nil, d.c.Len()
	}
	next := base + int(size)
	if int(size) > d.c.Remaining(base) {
		d.fail(sectionLinkInfo, "size", base, malformed("size 0x%x exceeds file", size))
		next = d.c.Len()
	}
	if size < linkInfoMinSize {
		d.fail(sectionLinkInfo, "size", base, malformed("size 0x%x below minimum", size))
		if size < 4 {
			// a zero size would never advance
			next = base + 4
		}
		return nil, next
	}

	info := &LinkInfo{Size: size}
	fields := []*uint32{
		&info.HeaderSize,
		&info.Flags,
		&info.VolumeIDOffset,
		&info.LocalBasePathOffset,
		&info.CommonNetworkRelativeLinkOffset,
		&info.CommonPathSuffixOffset,
	}
	for i, field := range fields {
		if *field, err = d.c.Uint32(base + 4 + 4*i); err != nil {
			d.fail(sectionLinkInfo, "header", base+4+4*i, err)
			return info, next
		}
	}

	if info.HeaderSize >= linkInfoUnicodeSize {
		if info.LocalBasePathOffsetUnicode, err = d.c.Uint32(base + 28); err != nil {
			d.fail(sectionLinkInfo, "localBasePathOffsetUnicode", base+28, err)
		}
		if info.CommonPathSuffixOffsetUnicode, err = d.c.Uint32(base + 32); err != nil {
			d.fail(sectionLinkInfo, "commonPathSuffixOffsetUnicode", base+32, err)
		}
	}

	switch {
	case info.Flags&linkInfoVolumeIDAndLocalBasePath != 0:
		info.Location = d.localPath(info, base)
	case info.Flags&linkInfoCommonNetworkRelativeLinkAndPathSuffix != 0:
		info.Location = d.networkPath(info, base)
	}

	if at, ok := d.within(sectionLinkInfo, "commonPathSuffix", base, size, info.CommonPathSuffixOffset); ok {
		info.CommonPathSuffix = d.ansi(sectionLinkInfo, "commonPathSuffix", at)
	}
	if at, ok := d.within(sectionLinkInfo, "commonPathSuffixUnicode", base, size, info.CommonPathSuffixOffsetUnicode); ok {
		info.CommonPathSuffixUnicode = d.unicode(sectionLinkInfo, "commonPathSuffixUnicode", at)
	}
	return info, next
}

func (d *decoder) localPath(info *LinkInfo, base int) *LocalPath {
	local := &LocalPath{}
	if at, ok := d.within(sectionLinkInfo, "volumeId", base, info.Size, info.VolumeIDOffset); ok {
		local.VolumeID = d.volumeID(at)
	}
	if at, ok := d.within(sectionLinkInfo, "localBasePath", base, info.Size, info.LocalBasePathOffset); ok {
		local.LocalBasePath = d.ansi(sectionLinkInfo, "localBasePath", at)
	}
	if at, ok := d.within(sectionLinkInfo, "localBasePathUnicode", base, info.Size, info.LocalBasePathOffsetUnicode); ok {
		local.LocalBasePathUnicode = d.unicode(sectionLinkInfo, "localBasePathUnicode", at)
	}
	return local
}

const sectionVolumeID = "linkInfo.volumeId"

func (d *decoder) volumeID(base int) *VolumeID {
	var (
		volume VolumeID
		err    error
	)
	if volume.Size, err = d.c.Uint32(base); err != nil {
		d.fail(sectionVolumeID, "size", base, err)
		return nil
	}
	if volume.Size < volumeIDMinSize {
		d.fail(sectionVolumeID, "size", base, malformed("size 0x%x below minimum", volume.Size))
		return nil
	}
	driveType, err := d.c.Uint32(base + 4)
	if err != nil {
		d.fail(sectionVolumeID, "driveType", base+4, err)
		return nil
	}
	volume.DriveType = DriveType(driveType)
	if volume.DriveSerialNumber, err = d.c.Uint32(base + 8); err != nil {
		d.fail(sectionVolumeID, "driveSerialNumber", base+8, err)
		return &volume
	}
	if volume.VolumeLabelOffset, err = d.c.Uint32(base + 12); err != nil {
		d.fail(sectionVolumeID, "volumeLabelOffset", base+12, err)
		return &volume
	}

	if volume.VolumeLabelOffset == volumeLabelUnicode {
		if volume.VolumeLabelOffsetUnicode, err = d.c.Uint32(base + 16); err != nil {
			d.fail(sectionVolumeID, "volumeLabelOffsetUnicode", base+16, err)
			return &volume
		}
		if at, ok := d.within(sectionVolumeID, "volumeLabelUnicode", base, volume.Size, volume.VolumeLabelOffsetUnicode); ok {
			volume.VolumeLabel = d.unicode(sectionVolumeID, "volumeLabelUnicode", at)
		}
		return &volume
	}
	if at, ok := d.within(sectionVolumeID, "volumeLabel", base, volume.Size, volume.VolumeLabelOffset); ok {
		volume.VolumeLabel = d.ansi(sectionVolumeID, "volumeLabel", at)
	}
	return &volume
}

const sectionNetwork = "linkInfo.commonNetworkRelativeLink"

func (d *decoder) networkPath(info *LinkInfo, base int) *NetworkPath {
	network := &NetworkPath{}
	at, ok := d.within(sectionLinkInfo, "commonNetworkRelativeLink", base, info.Size, info.CommonNetworkRelativeLinkOffset)
	if !ok {
		return network
	}

	var (
		link CommonNetworkRelativeLink
		err  error
	)
	fields := []*uint32{&link.Size, &link.Flags, &link.NetNameOffset, &link.DeviceNameOffset}
	for i, field := range fields {
		if *field, err = d.c.Uint32(at + 4*i); err != nil {
			d.fail(sectionNetwork, "header", at+4*i, err)
			return network
		}
	}
	network.Link = &link
	if link.Size < networkLinkMinSize {
		d.fail(sectionNetwork, "size", at, malformed("size 0x%x below minimum", link.Size))
		return network
	}
	provider, err := d.c.Uint32(at + 16)
	if err != nil {
		d.fail(sectionNetwork, "networkProviderType", at+16, err)
		return network
	}
	link.NetworkProviderType = NetworkProviderType(provider)

	if link.NetNameOffset > networkUnicodeOffset {
		if link.NetNameOffsetUnicode, err = d.c.Uint32(at + 20); err != nil {
			d.fail(sectionNetwork, "netNameOffsetUnicode", at+20, err)
		}
		if link.DeviceNameOffsetUnicode, err = d.c.Uint32(at + 24); err != nil {
			d.fail(sectionNetwork, "deviceNameOffsetUnicode", at+24, err)
		}
	}

	if name, ok := d.within(sectionNetwork, "netName", at, link.Size, link.NetNameOffset); ok {
		link.NetName = d.ansi(sectionNetwork, "netName", name)
	}
	if name, ok := d.within(sectionNetwork, "netNameUnicode", at, link.Size, link.NetNameOffsetUnicode); ok {
		link.NetNameUnicode = d.unicode(sectionNetwork, "netNameUnicode", name)
	}
	if link.Flags&networkValidDevice != 0 {
		if name, ok := d.within(sectionNetwork, "deviceName", at, link.Size, link.DeviceNameOffset); ok {
			link.DeviceName = d.ansi(sectionNetwork, "deviceName", name)
		}
		if name, ok := d.within(sectionNetwork, "deviceNameUnicode", at, link.Size, link.DeviceNameOffsetUnicode); ok {
			link.DeviceNameUnicode = d.unicode(sectionNetwork, "deviceNameUnicode", name)
		}
	}
	return network
}
