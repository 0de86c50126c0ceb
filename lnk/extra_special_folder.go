package lnk

const (
	nameSpecialFolder      = "SPECIAL_FOLDER_LOCATION_BLOCK"
	specialFolderBlockSize = 0x10
)

// SpecialFolderBlock locates the special folder, by CSIDL, that the target ID
// list was built from.
type SpecialFolderBlock struct {
	blockHeader
	SpecialFolderID uint32 `json:"specialFolderId"`
	Offset          uint32 `json:"offset"`
}

// Name returns SPECIAL_FOLDER_LOCATION_BLOCK.
func (*SpecialFolderBlock) Name() string { return nameSpecialFolder }

func (d *decoder) specialFolderBlock(offset int, header blockHeader) (Block, error) {
	b := &SpecialFolderBlock{blockHeader: header}
	b.SpecialFolderID, _ = d.c.Uint32(offset + 8)
	b.Offset, _ = d.c.Uint32(offset + 12)
	return b, nil
}
