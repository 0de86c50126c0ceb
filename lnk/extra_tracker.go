package lnk

const (
	nameTracker      = "DISTRIBUTED_LINK_TRACKER_BLOCK"
	trackerBlockSize = 0x60
	trackerMinLength = 0x58
)

// TrackerBlock holds the distributed link tracking data used to find a target
// that moved.
type TrackerBlock struct {
	blockHeader
	Length           uint32 `json:"length"`
	Version          uint32 `json:"version"`
	MachineID        string `json:"machineId"`
	DroidVolumeID    Droid  `json:"droidVolumeId"`
	DroidFileID      Droid  `json:"droidFileId"`
	BirthDroidVolume Droid  `json:"birthDroidVolumeId"`
	BirthDroidFile   Droid  `json:"birthDroidFileId"`
}

// Name returns DISTRIBUTED_LINK_TRACKER_BLOCK.
func (*TrackerBlock) Name() string { return nameTracker }

func (d *decoder) trackerBlock(offset int, header blockHeader) (Block, error) {
	b := &TrackerBlock{blockHeader: header}
	b.Length, _ = d.c.Uint32(offset + 8)
	b.Version, _ = d.c.Uint32(offset + 12)
	if b.Length < trackerMinLength {
		return nil, malformed("tracker data length 0x%x below minimum 0x%x", b.Length, trackerMinLength)
	}

	machine, err := d.c.FixedANSI(offset+16, 16)
	if err != nil {
		return nil, err
	}
	b.MachineID = machine

	droids := []*Droid{&b.DroidVolumeID, &b.DroidFileID, &b.BirthDroidVolume, &b.BirthDroidFile}
	for i, droid := range droids {
		id, err := d.c.Array16(offset + 32 + 16*i)
		if err != nil {
			return nil, err
		}
		*droid = newDroid(id)
	}
	return b, nil
}
