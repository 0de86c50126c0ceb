package lnk

import (
	"net"
	"time"

	"github.com/Microsoft/go-winio/pkg/guid"
	"github.com/google/uuid"
)

// GUID is a 16 byte identifier stored in Windows (mixed endian) byte order.
type GUID [16]byte

func (g GUID) String() string {
	return guid.FromWindowsArray(g).String()
}

// MarshalText renders the canonical GUID string.
func (g GUID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UUID returns the identifier in RFC 4122 byte order.
func (g GUID) UUID() uuid.UUID {
	return uuid.UUID(guid.FromWindowsArray(g).ToArray())
}

// shellLinkCLSID is 00021401-0000-0000-C000-000000000046.
var shellLinkCLSID = GUID{
	0x01, 0x14, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xc0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46,
}

// Droid is a distributed link tracking identifier. Version 1 identifiers
// embed the creation time and the MAC address of the machine that created
// them.
type Droid struct {
	ID            GUID   `json:"id"`
	Version       int    `json:"version"`
	Time          string `json:"time,omitempty"`
	MAC           string `json:"mac,omitempty"`
	ClockSequence int    `json:"clockSequence,omitempty"`
}

func newDroid(id GUID) Droid {
	u := id.UUID()
	droid := Droid{
		ID:      id,
		Version: int(u.Version()),
	}
	if u.Version() == 1 {
		sec, nsec := u.Time().UnixTime()
		droid.Time = time.Unix(sec, nsec).UTC().Format(TimeFormat)
		droid.MAC = net.HardwareAddr(u.NodeID()).String()
		droid.ClockSequence = u.ClockSequence()
	}
	return droid
}
