package lnk

const nameDarwin = "DARWIN_BLOCK"

// DarwinBlock holds the Windows Installer descriptor of an advertised
// application.
type DarwinBlock struct {
	blockHeader
	DataANSI    string `json:"darwinDataAnsi"`
	DataUnicode string `json:"darwinDataUnicode"`
}

// Name returns DARWIN_BLOCK.
func (*DarwinBlock) Name() string { return nameDarwin }

func (d *decoder) darwinBlock(offset int, header blockHeader) (Block, error) {
	ansi, unicode, err := d.dualString(offset)
	if err != nil {
		return nil, err
	}
	return &DarwinBlock{
		blockHeader: header,
		DataANSI:    ansi,
		DataUnicode: unicode,
	}, nil
}
