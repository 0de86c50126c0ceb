package lnk

import (
	"encoding/hex"
	"fmt"
)

// Fidelity selects how much of the raw structure a report retains.
type Fidelity int

const (
	// Compact omits sizes, offsets and reserved fields.
	Compact Fidelity = iota
	// Full retains every raw field and lists the contained decoding errors.
	Full
)

// ParseFidelity maps "full" to Full and anything else to Compact.
func ParseFidelity(full bool) Fidelity {
	if full {
		return Full
	}
	return Compact
}

// report is a map that drops raw-only keys when building a compact report.
type report struct {
	values map[string]interface{}
	full   bool
}

func newReport(f Fidelity) report {
	return report{values: map[string]interface{}{}, full: f == Full}
}

func (r report) set(key string, value interface{}) {
	r.values[key] = value
}

func (r report) raw(key string, value interface{}) {
	if r.full {
		r.values[key] = value
	}
}

func (r report) optional(key, value string) {
	if value != "" {
		r.values[key] = value
	}
}

// Report converts the decoded link to nested maps suitable for JSON or YAML
// encoding. Timestamps are rendered as strings.
func (i *Info) Report(f Fidelity) map[string]interface{} {
	r := newReport(f)
	r.set("header", i.headerReport(f))
	r.set("data", i.StringData.report())
	r.set("extra", i.extraReport(f))
	r.set("command", i.Command())
	if i.Targets != nil {
		r.set("target", i.Targets.report(f))
	}
	if i.LinkInfo != nil {
		r.set("link_info", i.LinkInfo.report(f))
	}
	if r.full {
		errs := make([]string, 0, len(i.Errors))
		for _, err := range i.Errors {
			errs = append(errs, err.Error())
		}
		r.set("errors", errs)
	}
	return r.values
}

func (i *Info) headerReport(f Fidelity) map[string]interface{} {
	h := i.Header
	r := newReport(f)
	r.set("guid", h.CLSID.String())
	r.set("r_link_flags", h.RawLinkFlags)
	r.set("r_file_flags", h.RawFileFlags)
	r.set("link_flags", i.LinkFlags.Names())
	r.set("file_flags", i.FileFlags.Names())
	r.set("creation_time", h.CreationTime.String())
	r.set("accessed_time", h.AccessTime.String())
	r.set("modified_time", h.WriteTime.String())
	r.set("file_size", h.FileSize)
	r.set("icon_index", h.IconIndex)
	r.set("windowstyle", h.ShowCommand.String())
	r.set("hotkey", h.HotKey.String())
	r.set("r_hotkey", h.HotKey.Raw())
	r.raw("header_size", h.HeaderSize)
	r.raw("reserved0", h.Reserved0)
	r.raw("reserved1", h.Reserved1)
	r.raw("reserved2", h.Reserved2)
	return r.values
}

func (s StringData) report() map[string]interface{} {
	out := map[string]interface{}{}
	for key, value := range map[string]*string{
		"description":            s.Description,
		"relative_path":          s.RelativePath,
		"working_directory":      s.WorkingDir,
		"command_line_arguments": s.Arguments,
		"icon_location":          s.IconLocation,
	} {
		if value != nil {
			out[key] = *value
		}
	}
	return out
}

func (t *TargetIDList) report(f Fidelity) map[string]interface{} {
	r := newReport(f)
	r.raw("size", t.Size)
	r.set("items", shellItemsReport(t.Items, f))
	return r.values
}

func shellItemsReport(items []ShellItem, f Fidelity) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		r := newReport(f)
		r.set("class", string(item.Class))
		r.set("type", item.TypeName())
		r.optional("name", item.Name)
		if item.FolderID != nil {
			r.set("folder_id", item.FolderID.String())
		}
		if item.ModificationTime != nil {
			r.set("modification_time", item.ModificationTime.String())
		}
		r.raw("size", item.Size)
		r.raw("data", hex.EncodeToString(item.Data))
		out = append(out, r.values)
	}
	return out
}

func (l *LinkInfo) report(f Fidelity) map[string]interface{} {
	r := newReport(f)
	r.set("link_info_flags", l.Flags)
	r.set("path", l.Path())
	r.optional("common_path_suffix", l.CommonPathSuffix)
	r.optional("common_path_suffix_unicode", l.CommonPathSuffixUnicode)
	r.raw("link_info_size", l.Size)
	r.raw("link_info_header_size", l.HeaderSize)
	r.raw("volume_id_offset", l.VolumeIDOffset)
	r.raw("local_base_path_offset", l.LocalBasePathOffset)
	r.raw("common_network_relative_link_offset", l.CommonNetworkRelativeLinkOffset)
	r.raw("common_path_suffix_offset", l.CommonPathSuffixOffset)
	if l.HeaderSize >= linkInfoUnicodeSize {
		r.raw("local_base_path_offset_unicode", l.LocalBasePathOffsetUnicode)
		r.raw("common_path_suffix_offset_unicode", l.CommonPathSuffixOffsetUnicode)
	}

	switch loc := l.Location.(type) {
	case *LocalPath:
		r.set("location", "Local")
		r.optional("local_base_path", loc.LocalBasePath)
		r.optional("local_base_path_unicode", loc.LocalBasePathUnicode)
		if loc.VolumeID != nil {
			r.set("location_info", loc.VolumeID.report(f))
		}
	case *NetworkPath:
		r.set("location", "Network")
		if loc.Link != nil {
			r.set("location_info", loc.Link.report(f))
		}
	}
	return r.values
}

func (v *VolumeID) report(f Fidelity) map[string]interface{} {
	r := newReport(f)
	r.set("drive_type", v.DriveType.String())
	r.set("r_drive_type", uint32(v.DriveType))
	r.set("drive_serial_number", hex32(v.DriveSerialNumber))
	r.set("volume_label", v.VolumeLabel)
	r.raw("volume_id_size", v.Size)
	r.raw("volume_label_offset", v.VolumeLabelOffset)
	if v.VolumeLabelOffset == volumeLabelUnicode {
		r.raw("volume_label_offset_unicode", v.VolumeLabelOffsetUnicode)
	}
	return r.values
}

func (l *CommonNetworkRelativeLink) report(f Fidelity) map[string]interface{} {
	r := newReport(f)
	r.set("common_network_relative_link_flags", l.Flags)
	r.set("net_name", l.NetName)
	r.optional("net_name_unicode", l.NetNameUnicode)
	r.optional("device_name", l.DeviceName)
	r.optional("device_name_unicode", l.DeviceNameUnicode)
	if l.HasNetworkProvider() {
		r.set("network_provider_type", l.NetworkProviderType.String())
	}
	r.set("r_network_provider_type", uint32(l.NetworkProviderType))
	r.raw("common_network_relative_link_size", l.Size)
	r.raw("net_name_offset", l.NetNameOffset)
	r.raw("device_name_offset", l.DeviceNameOffset)
	if l.NetNameOffset > networkUnicodeOffset {
		r.raw("net_name_offset_unicode", l.NetNameOffsetUnicode)
		r.raw("device_name_offset_unicode", l.DeviceNameOffsetUnicode)
	}
	return r.values
}

func (i *Info) extraReport(f Fidelity) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(i.Extra))
	for _, block := range i.Extra {
		r := newReport(f)
		r.set("name", block.Name())
		r.raw("size", block.Size())
		r.raw("signature", fmt.Sprintf("0x%08X", block.Signature()))
		blockReport(r, block, f)
		out = append(out, r.values)
	}
	return out
}

func blockReport(r report, block Block, f Fidelity) {
	switch b := block.(type) {
	case *EnvironmentBlock:
		r.set("target_ansi", b.TargetANSI)
		r.set("target_unicode", b.TargetUnicode)
	case *IconEnvironmentBlock:
		r.set("target_ansi", b.TargetANSI)
		r.set("target_unicode", b.TargetUnicode)
	case *DarwinBlock:
		r.set("darwin_data_ansi", b.DataANSI)
		r.set("darwin_data_unicode", b.DataUnicode)
	case *ConsoleBlock:
		r.set("fill_attributes", b.FillAttributes)
		r.set("popup_fill_attributes", b.PopupFillAttributes)
		r.set("screen_buffer_size_x", b.ScreenBufferSizeX)
		r.set("screen_buffer_size_y", b.ScreenBufferSizeY)
		r.set("window_size_x", b.WindowSizeX)
		r.set("window_size_y", b.WindowSizeY)
		r.set("window_origin_x", b.WindowOriginX)
		r.set("window_origin_y", b.WindowOriginY)
		r.set("font_size", b.FontSize)
		r.set("font_family", b.FontFamily)
		r.set("font_weight", b.FontWeight)
		r.set("face_name", b.FaceName)
		r.set("cursor_size", b.CursorSize)
		r.set("full_screen", b.FullScreen)
		r.set("quick_edit", b.QuickEdit)
		r.set("insert_mode", b.InsertMode)
		r.set("auto_position", b.AutoPosition)
		r.set("history_buffer_size", b.HistoryBufferSize)
		r.set("number_of_history_buffers", b.NumberOfHistoryBuffers)
		r.set("history_no_dup", b.HistoryNoDup)
		r.set("color_table", b.ColorTable)
	case *TrackerBlock:
		r.raw("length", b.Length)
		r.set("version", b.Version)
		r.set("machine_identifier", b.MachineID)
		r.set("droid_volume_identifier", droidReport(b.DroidVolumeID))
		r.set("droid_file_identifier", droidReport(b.DroidFileID))
		r.set("birth_droid_volume_identifier", droidReport(b.BirthDroidVolume))
		r.set("birth_droid_file_identifier", droidReport(b.BirthDroidFile))
	case *CodePageBlock:
		r.set("code_page", b.CodePage)
	case *SpecialFolderBlock:
		r.set("special_folder_id", b.SpecialFolderID)
		r.raw("offset", b.Offset)
	case *ShimBlock:
		r.set("layer_name", b.LayerName)
	case *PropertyStoreBlock:
		storages := make([]map[string]interface{}, 0, len(b.Storages))
		for _, storage := range b.Storages {
			storages = append(storages, storage.report(f))
		}
		r.set("storages", storages)
	case *KnownFolderBlock:
		r.set("known_folder_id", b.KnownFolderID.String())
		r.raw("offset", b.Offset)
	case *ShellItemListBlock:
		r.set("items", shellItemsReport(b.Items, f))
	case *UnknownBlock:
		r.set("signature", fmt.Sprintf("0x%08X", b.BlockSignature))
		r.raw("data", hex.EncodeToString(b.Data))
	}
}

func droidReport(d Droid) map[string]interface{} {
	out := map[string]interface{}{
		"id":      d.ID.String(),
		"version": d.Version,
	}
	if d.Time != "" {
		out["time"] = d.Time
		out["mac"] = d.MAC
		out["clock_sequence"] = d.ClockSequence
	}
	return out
}

func (s PropertyStorage) report(f Fidelity) map[string]interface{} {
	r := newReport(f)
	r.set("format_id", s.FormatID.String())
	r.set("version", hex32(s.Version))
	r.raw("storage_size", s.StorageSize)
	values := make([]map[string]interface{}, 0, len(s.Values))
	for _, v := range s.Values {
		value := newReport(f)
		if s.NamedValues() {
			value.set("name", v.Name)
			value.raw("name_size", v.NameSize)
		} else {
			value.set("id", v.ID)
		}
		value.set("value", hex.EncodeToString(v.Value))
		value.raw("value_size", v.ValueSize)
		values = append(values, value.values)
	}
	r.set("values", values)
	return r.values
}
