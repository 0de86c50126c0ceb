package lnk

const (
	nameConsole      = "CONSOLE_PROPERTIES_BLOCK"
	consoleBlockSize = 0xCC

	consoleFaceNameAt    = 44
	consoleFaceNameWidth = 64
	consoleColorTableAt  = 140
	consoleColors        = 16
)

// ConsoleBlock holds the display settings of a console window.
type ConsoleBlock struct {
	blockHeader
	FillAttributes         uint16   `json:"fillAttributes"`
	PopupFillAttributes    uint16   `json:"popupFillAttributes"`
	ScreenBufferSizeX      int16    `json:"screenBufferSizeX"`
	ScreenBufferSizeY      int16    `json:"screenBufferSizeY"`
	WindowSizeX            int16    `json:"windowSizeX"`
	WindowSizeY            int16    `json:"windowSizeY"`
	WindowOriginX          int16    `json:"windowOriginX"`
	WindowOriginY          int16    `json:"windowOriginY"`
	FontSize               uint32   `json:"fontSize"`
	FontFamily             uint32   `json:"fontFamily"`
	FontWeight             uint32   `json:"fontWeight"`
	FaceName               string   `json:"faceName"`
	CursorSize             uint32   `json:"cursorSize"`
	FullScreen             uint32   `json:"fullScreen"`
	QuickEdit              uint32   `json:"quickEdit"`
	InsertMode             uint32   `json:"insertMode"`
	AutoPosition           uint32   `json:"autoPosition"`
	HistoryBufferSize      uint32   `json:"historyBufferSize"`
	NumberOfHistoryBuffers uint32   `json:"numberOfHistoryBuffers"`
	HistoryNoDup           uint32   `json:"historyNoDup"`
	ColorTable             []uint32 `json:"colorTable"`
}

// Name returns CONSOLE_PROPERTIES_BLOCK.
func (*ConsoleBlock) Name() string { return nameConsole }

// The block size has already been checked, every read below is in bounds.
func (d *decoder) consoleBlock(offset int, header blockHeader) (Block, error) {
	b := &ConsoleBlock{blockHeader: header}
	b.FillAttributes, _ = d.c.Uint16(offset + 8)
	b.PopupFillAttributes, _ = d.c.Uint16(offset + 10)
	b.ScreenBufferSizeX, _ = d.c.Int16(offset + 12)
	b.ScreenBufferSizeY, _ = d.c.Int16(offset + 14)
	b.WindowSizeX, _ = d.c.Int16(offset + 16)
	b.WindowSizeY, _ = d.c.Int16(offset + 18)
	b.WindowOriginX, _ = d.c.Int16(offset + 20)
	b.WindowOriginY, _ = d.c.Int16(offset + 22)
	b.FontSize, _ = d.c.Uint32(offset + 32)
	b.FontFamily, _ = d.c.Uint32(offset + 36)
	b.FontWeight, _ = d.c.Uint32(offset + 40)

	face, err := d.c.FixedUnicode(offset+consoleFaceNameAt, consoleFaceNameWidth)
	if err != nil {
		return nil, err
	}
	b.FaceName = face

	tail := []*uint32{
		&b.CursorSize,
		&b.FullScreen,
		&b.QuickEdit,
		&b.InsertMode,
		&b.AutoPosition,
		&b.HistoryBufferSize,
		&b.NumberOfHistoryBuffers,
		&b.HistoryNoDup,
	}
	for i, field := range tail {
		*field, _ = d.c.Uint32(offset + 108 + 4*i)
	}

	b.ColorTable = make([]uint32, consoleColors)
	for i := range b.ColorTable {
		b.ColorTable[i], _ = d.c.Uint32(offset + consoleColorTableAt + 4*i)
	}
	return b, nil
}
