package lnk

const (
	nameEnvironment = "ENVIRONMENTAL_VARIABLES_LOCATION_BLOCK"

	dualStringBlockSize = 0x314
	dualStringANSIAt    = 8
	dualStringANSIWidth = 260
	dualStringWideAt    = dualStringANSIAt + dualStringANSIWidth
	dualStringWideWidth = 520
)

// EnvironmentBlock holds the target path in a form that may contain
// environment variables, such as %windir%.
type EnvironmentBlock struct {
	blockHeader
	TargetANSI    string `json:"targetAnsi"`
	TargetUnicode string `json:"targetUnicode"`
}

// Name returns ENVIRONMENTAL_VARIABLES_LOCATION_BLOCK.
func (*EnvironmentBlock) Name() string { return nameEnvironment }

// Target prefers the Unicode rendition.
func (b *EnvironmentBlock) Target() string {
	return firstNonEmpty(b.TargetUnicode, b.TargetANSI)
}

// dualString reads the fixed width ANSI and Unicode fields shared by the
// environment, darwin and icon environment blocks.
func (d *decoder) dualString(offset int) (string, string, error) {
	ansi, err := d.c.FixedANSI(offset+dualStringANSIAt, dualStringANSIWidth)
	if err != nil {
		return "", "", err
	}
	unicode, err := d.c.FixedUnicode(offset+dualStringWideAt, dualStringWideWidth)
	if err != nil {
		return "", "", err
	}
	return ansi, unicode, nil
}

func (d *decoder) environmentBlock(offset int, header blockHeader) (Block, error) {
	ansi, unicode, err := d.dualString(offset)
	if err != nil {
		return nil, err
	}
	return &EnvironmentBlock{
		blockHeader:   header,
		TargetANSI:    ansi,
		TargetUnicode: unicode,
	}, nil
}
