package lnk

const (
	nameShellItemList         = "SHELL_ITEM_IDENTIFIER_BLOCK"
	shellItemListBlockMinSize = 0x0A
)

// ShellItemListBlock holds an alternate ID list used in place of the target
// ID list on Vista and later.
type ShellItemListBlock struct {
	blockHeader
	Items []ShellItem `json:"items"`
}

// Name returns SHELL_ITEM_IDENTIFIER_BLOCK.
func (*ShellItemListBlock) Name() string { return nameShellItemList }

func (d *decoder) shellItemListBlock(offset int, header blockHeader) (Block, error) {
	return &ShellItemListBlock{
		blockHeader: header,
		Items:       d.itemIDs(sectionExtra+"."+nameShellItemList, offset+8, offset+int(header.BlockSize)),
	}, nil
}
