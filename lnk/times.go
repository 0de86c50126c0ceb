package lnk

import (
	"math"
	"strconv"
	"time"
)

const (
	// TimeAbsent is rendered for a FILETIME or DOS date/time of zero.
	TimeAbsent = "absent"
	// TimeInvalid is rendered for values that do not form a calendar date.
	TimeInvalid = "invalid"

	// TimeFormat is used to render decoded timestamps.
	TimeFormat = "2006-01-02T15:04:05Z"

	ticksPerSecond   = 10000000
	epochDifference  = 11644473600
	dosEpochYear     = 1980
	dosSecondsFactor = 2
)

// FileTime is a Windows FILETIME: 100ns ticks since 1601-01-01 UTC.
type FileTime uint64

// IsZero reports whether the timestamp is absent.
func (t FileTime) IsZero() bool {
	return t == 0
}

// Valid returns ErrInvalidTimestamp when the tick count does not fit the
// signed range Windows uses.
func (t FileTime) Valid() error {
	if uint64(t) > math.MaxInt64 {
		return ErrInvalidTimestamp
	}
	return nil
}

// Time converts the timestamp to UTC. The second return value is false for
// absent or invalid timestamps.
func (t FileTime) Time() (time.Time, bool) {
	if t.IsZero() || t.Valid() != nil {
		return time.Time{}, false
	}
	seconds := int64(uint64(t)/ticksPerSecond) - epochDifference
	return time.Unix(seconds, 0).UTC(), true
}

func (t FileTime) String() string {
	if t.IsZero() {
		return TimeAbsent
	}
	parsed, ok := t.Time()
	if !ok {
		return TimeInvalid
	}
	return parsed.Format(TimeFormat)
}

// MarshalText renders the timestamp the same way String does.
func (t FileTime) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// DosDateTime is a packed FAT date and time. The date occupies the high 16
// bits (7 bits year since 1980, 4 bits month, 5 bits day) and the time the
// low 16 bits (5 bits hour, 6 bits minute, 5 bits seconds/2).
type DosDateTime uint32

// NewDosDateTime packs separately stored FAT date and time words.
func NewDosDateTime(date, clock uint16) DosDateTime {
	return DosDateTime(uint32(date)<<16 | uint32(clock))
}

// IsZero reports whether the value is absent.
func (d DosDateTime) IsZero() bool {
	return d == 0
}

func (d DosDateTime) fields() (year, month, day, hour, minute, second int) {
	v := uint32(d)
	year = int(v>>25) + dosEpochYear
	month = int(v>>21) & 0x0f
	day = int(v>>16) & 0x1f
	hour = int(v>>11) & 0x1f
	minute = int(v>>5) & 0x3f
	second = int(v&0x1f) * dosSecondsFactor
	return
}

// Time converts the value to a UTC time. It returns ErrInvalidDate when the
// packed fields do not form a real calendar date and time.
func (d DosDateTime) Time() (time.Time, error) {
	year, month, day, hour, minute, second := d.fields()
	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, ErrInvalidDate
	}
	parsed := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	// time.Date normalizes overflowing days (Feb 30 -> Mar 2)
	if parsed.Day() != day {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

func (d DosDateTime) String() string {
	if d.IsZero() {
		return TimeAbsent
	}
	parsed, err := d.Time()
	if err != nil {
		return TimeInvalid
	}
	return parsed.Format(TimeFormat)
}

// MarshalText renders the value the same way String does.
func (d DosDateTime) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func hex32(v uint32) string {
	return "0x" + strconv.FormatUint(uint64(v), 16)
}
