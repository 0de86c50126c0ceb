package lnk

import "github.com/andrewstucki/shortcut/internal"

const (
	nameCodePage      = "CONSOLE_CODEPAGE_BLOCK"
	codePageBlockSize = 0x0C
)

// CodePageBlock holds the code page of a console window.
type CodePageBlock struct {
	blockHeader
	CodePage uint32 `json:"codePage"`
}

// Name returns CONSOLE_CODEPAGE_BLOCK.
func (*CodePageBlock) Name() string { return nameCodePage }

// Supported reports whether strings in this code page can be decoded with
// WithCodePage.
func (b *CodePageBlock) Supported() bool {
	_, ok := internal.CodePage(int(b.CodePage))
	return ok
}

func (d *decoder) codePageBlock(offset int, header blockHeader) (Block, error) {
	cp, err := d.c.Uint32(offset + 8)
	if err != nil {
		return nil, err
	}
	return &CodePageBlock{blockHeader: header, CodePage: cp}, nil
}
