package lnk

const (
	nameShim         = "SHIM_LAYER_BLOCK"
	shimBlockMinSize = 0x88
)

// ShimBlock names the application compatibility layer applied when the
// target is launched.
type ShimBlock struct {
	blockHeader
	LayerName string `json:"layerName"`
}

// Name returns SHIM_LAYER_BLOCK.
func (*ShimBlock) Name() string { return nameShim }

func (d *decoder) shimBlock(offset int, header blockHeader) (Block, error) {
	layer, err := d.c.FixedUnicode(offset+8, int(header.BlockSize)-8)
	if err != nil {
		return nil, err
	}
	return &ShimBlock{blockHeader: header, LayerName: layer}, nil
}
