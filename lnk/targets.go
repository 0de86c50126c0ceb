package lnk

import "fmt"

// ShellItemClass is the coarse kind of a shell item, derived from its type
// indicator byte.
type ShellItemClass string

// Shell item classes.
const (
	ClassUnknown            ShellItemClass = "Unknown"
	ClassRootFolder         ShellItemClass = "Root folder"
	ClassVolume             ShellItemClass = "My Computer"
	ClassFileEntry          ShellItemClass = "File entry"
	ClassNetworkLocation    ShellItemClass = "Network location"
	ClassCompressedFolder   ShellItemClass = "Compressed folder"
	ClassURI                ShellItemClass = "Internet"
	ClassControlPanel       ShellItemClass = "Control panel"
	ClassPrinters           ShellItemClass = "Printers"
	ClassCommonPlacesFolder ShellItemClass = "Common places folder"
	ClassUsersFilesFolder   ShellItemClass = "Users files folder"
)

var shellItemClasses = map[byte]ShellItemClass{
	0x1e: ClassRootFolder,
	0x1f: ClassRootFolder,
	0x52: ClassCompressedFolder,
	0x61: ClassURI,
	0x70: ClassControlPanel,
	0x71: ClassControlPanel,
	0x72: ClassPrinters,
	0x73: ClassCommonPlacesFolder,
	0x74: ClassUsersFilesFolder,
}

// ClassOf maps a type indicator to its class. Volume, file entry and network
// location items use a range of indicators each.
func ClassOf(indicator byte) ShellItemClass {
	switch {
	case indicator >= 0x20 && indicator <= 0x2f:
		return ClassVolume
	case indicator >= 0x30 && indicator <= 0x3f:
		return ClassFileEntry
	case indicator >= 0x40 && indicator <= 0x4f:
		return ClassNetworkLocation
	}
	if class, ok := shellItemClasses[indicator]; ok {
		return class
	}
	return ClassUnknown
}

// ShellItem is one entry of an item ID list. Data holds the whole item,
// including the size field.
type ShellItem struct {
	Size             uint16         `json:"size"`
	Type             byte           `json:"type"`
	Class            ShellItemClass `json:"class"`
	Name             string         `json:"name,omitempty"`
	FolderID         *GUID          `json:"folderId,omitempty"`
	ModificationTime *DosDateTime   `json:"modificationTime,omitempty"`
	Data             []byte         `json:"data"`
}

// TypeName renders the type indicator as hex.
func (s ShellItem) TypeName() string {
	return fmt.Sprintf("0x%02x", s.Type)
}

// TargetIDList is the shell namespace path of the link target.
type TargetIDList struct {
	Size  uint16      `json:"size"`
	Items []ShellItem `json:"items"`
}

const (
	sectionTargets    = "targetIDList"
	fileEntryUnicode  = 0x04
	fileEntryNameAt   = 14
	fileEntryMinSize  = 12
	rootFolderMinSize = 20
)

func (d *decoder) targetIDList(offset int) (*TargetIDList, int) {
	size, err := d.c.Uint16(offset)
	if err != nil {
		d.fail(sectionTargets, "size", offset, err)
		return nil, d.c.Len()
	}
	list := &TargetIDList{Size: size}
	start := offset + 2
	end := start + int(size)
	if end > d.c.Len() {
		d.fail(sectionTargets, "size", offset, malformed("list of 0x%x bytes exceeds file", size))
		end = d.c.Len()
	}
	list.Items = d.itemIDs(sectionTargets, start, end)
	return list, end
}

// itemIDs walks the items between start and end. The walk stops at the
// terminal (zero sized) item, at end, or at the first item that does not fit.
func (d *decoder) itemIDs(section string, start, end int) []ShellItem {
	items := []ShellItem{}
	for offset := start; offset+2 <= end; {
		size, err := d.c.Uint16(offset)
		if err != nil {
			d.fail(section, "item", offset, err)
			break
		}
		if size == 0 {
			break
		}
		if size < 3 || offset+int(size) > end {
			d.fail(section, "item", offset, malformed("item of 0x%x bytes does not fit", size))
			break
		}
		raw, err := d.c.Bytes(offset, int(size))
		if err != nil {
			d.fail(section, "item", offset, err)
			break
		}
		items = append(items, d.shellItem(raw))
		offset += int(size)
	}
	return items
}

func (d *decoder) shellItem(raw []byte) ShellItem {
	item := ShellItem{
		Size: uint16(len(raw)),
		Type: raw[2],
		Data: raw,
	}
	item.Class = ClassOf(item.Type)
	text := d.c.Text()
	switch item.Class {
	case ClassRootFolder:
		if len(raw) >= rootFolderMinSize {
			var id GUID
			copy(id[:], raw[4:20])
			item.FolderID = &id
		}
	case ClassVolume:
		item.Name = text.ReadString(raw, 3)
	case ClassFileEntry:
		if len(raw) >= fileEntryMinSize {
			date := uint16(raw[8]) | uint16(raw[9])<<8
			clock := uint16(raw[10]) | uint16(raw[11])<<8
			modified := NewDosDateTime(date, clock)
			item.ModificationTime = &modified
		}
		if item.Type&fileEntryUnicode != 0 {
			item.Name = text.ReadUnicode(raw, fileEntryNameAt)
		} else {
			item.Name = text.ReadString(raw, fileEntryNameAt)
		}
	}
	return item
}
