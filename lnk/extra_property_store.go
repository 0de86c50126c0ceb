package lnk

const (
	namePropertyStore         = "METADATA_PROPERTIES_BLOCK"
	propertyStoreBlockMinSize = 0x0C

	propertyStorageVersion    = 0x53505331
	propertyStorageHeaderSize = 24
	propertyValueMinSize      = 9
)

// fmtidUserDefined is D5CDD505-2E9C-101B-9397-08002B2CF9AE, the format whose
// properties are identified by name rather than by integer id.
var fmtidUserDefined = GUID{
	0x05, 0xd5, 0xcd, 0xd5, 0x9c, 0x2e, 0x1b, 0x10,
	0x93, 0x97, 0x08, 0x00, 0x2b, 0x2c, 0xf9, 0xae,
}

// PropertyStoreBlock holds serialized property storages. Property values are
// kept as raw typed property value bytes.
type PropertyStoreBlock struct {
	blockHeader
	Storages []PropertyStorage `json:"storages"`
}

// Name returns METADATA_PROPERTIES_BLOCK.
func (*PropertyStoreBlock) Name() string { return namePropertyStore }

// PropertyStorage is one serialized property storage.
type PropertyStorage struct {
	StorageSize uint32          `json:"storageSize"`
	Version     uint32          `json:"version"`
	FormatID    GUID            `json:"formatId"`
	Values      []PropertyValue `json:"values"`
}

// NamedValues reports whether the values are identified by name.
func (s PropertyStorage) NamedValues() bool {
	return s.FormatID == fmtidUserDefined
}

// PropertyValue is a single serialized property. Exactly one of Name and ID
// is meaningful, depending on the storage format.
type PropertyValue struct {
	ValueSize uint32 `json:"valueSize"`
	NameSize  uint32 `json:"nameSize,omitempty"`
	Name      string `json:"name,omitempty"`
	ID        uint32 `json:"id,omitempty"`
	Value     []byte `json:"value"`
}

var sectionPropertyStore = sectionExtra + "." + namePropertyStore

// propertyStoreBlock decodes every storage in the block. Problems inside the
// block end the storage walk but keep what was decoded so far.
func (d *decoder) propertyStoreBlock(offset int, header blockHeader) (Block, error) {
	b := &PropertyStoreBlock{blockHeader: header, Storages: []PropertyStorage{}}
	end := offset + int(header.BlockSize)
	for at := offset + 8; at+4 <= end; {
		size, _ := d.c.Uint32(at)
		if size == 0 {
			break
		}
		if size < propertyStorageHeaderSize || at+int(size) > end {
			d.fail(sectionPropertyStore, "storageSize", at, malformed("storage of 0x%x bytes does not fit", size))
			break
		}
		storage, ok := d.propertyStorage(at, size)
		b.Storages = append(b.Storages, storage)
		if !ok {
			break
		}
		at += int(size)
	}
	return b, nil
}

func (d *decoder) propertyStorage(offset int, size uint32) (PropertyStorage, bool) {
	storage := PropertyStorage{StorageSize: size, Values: []PropertyValue{}}
	storage.Version, _ = d.c.Uint32(offset + 4)
	storage.FormatID, _ = d.c.Array16(offset + 8)
	if storage.Version != propertyStorageVersion {
		d.fail(sectionPropertyStore, "version", offset+4, malformed("storage version 0x%x", storage.Version))
		return storage, false
	}

	named := storage.NamedValues()
	end := offset + int(size)
	for at := offset + propertyStorageHeaderSize; at+4 <= end; {
		valueSize, _ := d.c.Uint32(at)
		if valueSize == 0 {
			break
		}
		if valueSize < propertyValueMinSize || at+int(valueSize) > end {
			d.fail(sectionPropertyStore, "valueSize", at, malformed("value of 0x%x bytes does not fit", valueSize))
			return storage, false
		}
		value, err := d.propertyValue(at, valueSize, named)
		if err != nil {
			d.fail(sectionPropertyStore, "value", at, err)
			return storage, false
		}
		storage.Values = append(storage.Values, value)
		at += int(valueSize)
	}
	return storage, true
}

// propertyValue decodes one value entry of valueSize bytes at offset. The
// entry is known to fit inside its storage.
func (d *decoder) propertyValue(offset int, valueSize uint32, named bool) (PropertyValue, error) {
	value := PropertyValue{ValueSize: valueSize}
	// the reserved byte follows the name size or id
	payload := offset + propertyValueMinSize
	end := offset + int(valueSize)
	if named {
		value.NameSize, _ = d.c.Uint32(offset + 4)
		if int(value.NameSize) > end-payload {
			return value, malformed("name of 0x%x bytes does not fit value of 0x%x bytes", value.NameSize, valueSize)
		}
		name, err := d.c.FixedUnicode(payload, int(value.NameSize))
		if err != nil {
			return value, err
		}
		value.Name = name
		payload += int(value.NameSize)
	} else {
		value.ID, _ = d.c.Uint32(offset + 4)
	}
	raw, err := d.c.Bytes(payload, end-payload)
	if err != nil {
		return value, err
	}
	value.Value = raw
	return value, nil
}
