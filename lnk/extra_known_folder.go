package lnk

const (
	nameKnownFolder      = "KNOWN_FOLDER_LOCATION_BLOCK"
	knownFolderBlockSize = 0x1C
)

// KnownFolderBlock locates the known folder that the target ID list was
// built from.
type KnownFolderBlock struct {
	blockHeader
	KnownFolderID GUID   `json:"knownFolderId"`
	Offset        uint32 `json:"offset"`
}

// Name returns KNOWN_FOLDER_LOCATION_BLOCK.
func (*KnownFolderBlock) Name() string { return nameKnownFolder }

func (d *decoder) knownFolderBlock(offset int, header blockHeader) (Block, error) {
	id, err := d.c.Array16(offset + 8)
	if err != nil {
		return nil, err
	}
	b := &KnownFolderBlock{blockHeader: header, KnownFolderID: id}
	b.Offset, _ = d.c.Uint32(offset + 24)
	return b, nil
}
