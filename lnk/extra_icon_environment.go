package lnk

const nameIconEnvironment = "ICON_LOCATION_BLOCK"

// IconEnvironmentBlock holds the icon path in a form that may contain
// environment variables.
type IconEnvironmentBlock struct {
	blockHeader
	TargetANSI    string `json:"targetAnsi"`
	TargetUnicode string `json:"targetUnicode"`
}

// Name returns ICON_LOCATION_BLOCK.
func (*IconEnvironmentBlock) Name() string { return nameIconEnvironment }

func (d *decoder) iconEnvironmentBlock(offset int, header blockHeader) (Block, error) {
	ansi, unicode, err := d.dualString(offset)
	if err != nil {
		return nil, err
	}
	return &IconEnvironmentBlock{
		blockHeader:   header,
		TargetANSI:    ansi,
		TargetUnicode: unicode,
	}, nil
}
