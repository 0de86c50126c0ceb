package lnk

import (
	"fmt"

	"go.uber.org/zap"
)

// Extra data block signatures.
const (
	SignatureEnvironment     uint32 = 0xA0000001
	SignatureConsole         uint32 = 0xA0000002
	SignatureTracker         uint32 = 0xA0000003
	SignatureCodePage        uint32 = 0xA0000004
	SignatureSpecialFolder   uint32 = 0xA0000005
	SignatureDarwin          uint32 = 0xA0000006
	SignatureIconEnvironment uint32 = 0xA0000007
	SignatureShim            uint32 = 0xA0000008
	SignaturePropertyStore   uint32 = 0xA0000009
	SignatureKnownFolder     uint32 = 0xA000000B
	SignatureShellItemList   uint32 = 0xA000000C
)

// the loop needs room for a size, a signature and at least one more field
const extraBlockMinRemaining = 10

// Block is one decoded extra data block. The concrete types are the *Block
// structs of this package and *UnknownBlock.
type Block interface {
	// Name is the well known name of the block type.
	Name() string
	Size() uint32
	Signature() uint32
	block()
}

type blockHeader struct {
	BlockSize      uint32 `json:"blockSize"`
	BlockSignature uint32 `json:"blockSignature"`
}

func (h blockHeader) Size() uint32      { return h.BlockSize }
func (h blockHeader) Signature() uint32 { return h.BlockSignature }
func (blockHeader) block()              {}

// UnknownBlock preserves a block whose signature is not recognized.
type UnknownBlock struct {
	blockHeader
	Data []byte `json:"data"`
}

// Name renders the signature, since there is no known name.
func (b *UnknownBlock) Name() string {
	return fmt.Sprintf("UNKNOWN_BLOCK_0x%08X", b.BlockSignature)
}

type blockDecoder struct {
	name string
	// size is the required block size, or the minimum one when atLeast is set
	size    uint32
	atLeast bool
	decode  func(d *decoder, offset int, header blockHeader) (Block, error)
}

var blockDecoders = map[uint32]blockDecoder{
	SignatureEnvironment:     {nameEnvironment, dualStringBlockSize, false, (*decoder).environmentBlock},
	SignatureConsole:         {nameConsole, consoleBlockSize, false, (*decoder).consoleBlock},
	SignatureTracker:         {nameTracker, trackerBlockSize, false, (*decoder).trackerBlock},
	SignatureCodePage:        {nameCodePage, codePageBlockSize, false, (*decoder).codePageBlock},
	SignatureSpecialFolder:   {nameSpecialFolder, specialFolderBlockSize, false, (*decoder).specialFolderBlock},
	SignatureDarwin:          {nameDarwin, dualStringBlockSize, false, (*decoder).darwinBlock},
	SignatureIconEnvironment: {nameIconEnvironment, dualStringBlockSize, false, (*decoder).iconEnvironmentBlock},
	SignatureShim:            {nameShim, shimBlockMinSize, true, (*decoder).shimBlock},
	SignaturePropertyStore:   {namePropertyStore, propertyStoreBlockMinSize, true, (*decoder).propertyStoreBlock},
	SignatureKnownFolder:     {nameKnownFolder, knownFolderBlockSize, false, (*decoder).knownFolderBlock},
	SignatureShellItemList:   {nameShellItemList, shellItemListBlockMinSize, true, (*decoder).shellItemListBlock},
}

// BlockName returns the well known name for a signature.
func BlockName(signature uint32) (string, bool) {
	known, ok := blockDecoders[signature]
	return known.name, ok
}

const sectionExtra = "extraData"

// extraData walks the block chain starting at offset. Blocks decoded before a
// corrupt block are kept.
func (d *decoder) extraData(offset int) []Block {
	blocks := []Block{}
	for d.c.Remaining(offset) >= extraBlockMinRemaining {
		size, _ := d.c.Uint32(offset)
		signature, _ := d.c.Uint32(offset + 4)
		if size == 0 {
			break
		}
		header := blockHeader{BlockSize: size, BlockSignature: signature}
		if size < 8 || int(size) > d.c.Remaining(offset) {
			d.fail(sectionExtra, blockLabel(signature), offset,
				malformed("block size 0x%x with 0x%x bytes remaining", size, d.c.Remaining(offset)))
			break
		}

		block, err := d.extraBlock(offset, header)
		if err != nil {
			d.fail(sectionExtra, blockLabel(signature), offset, err)
			break
		}
		blocks = append(blocks, block)
		offset += int(size)
	}
	return blocks
}

func (d *decoder) extraBlock(offset int, header blockHeader) (Block, error) {
	known, ok := blockDecoders[header.BlockSignature]
	if !ok {
		d.log.Debug("unknown extra data block",
			zap.Int("offset", offset),
			zap.String("signature", fmt.Sprintf("0x%08X", header.BlockSignature)),
			zap.Uint32("size", header.BlockSize),
		)
		data, err := d.c.Bytes(offset+8, int(header.BlockSize)-8)
		if err != nil {
			return nil, err
		}
		return &UnknownBlock{blockHeader: header, Data: data}, nil
	}

	switch {
	case known.atLeast && header.BlockSize < known.size:
		return nil, malformed("block size 0x%x below minimum 0x%x", header.BlockSize, known.size)
	case !known.atLeast && header.BlockSize != known.size:
		return nil, malformed("block size 0x%x, expected 0x%x", header.BlockSize, known.size)
	}
	return known.decode(d, offset, header)
}

func blockLabel(signature uint32) string {
	if name, ok := BlockName(signature); ok {
		return name
	}
	return fmt.Sprintf("0x%08X", signature)
}
