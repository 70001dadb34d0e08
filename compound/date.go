package compound

import (
	"encoding/binary"
	"math"
	"time"
)

const (
	propRecordLen = 16
	ptSysTime     = 0x0040

	// 100ns intervals between 1601-01-01 and the Unix epoch
	filetimeUnixOffset = 116444736000000000

	rfc822UTC = "Mon, 02 Jan 2006 15:04:05 -0700"
)

// propertiesTime finds the time property in the fixed size records of the
// properties stream. The stream starts with a header whose length depends on
// where the stream lives, which is skipped by aligning to the end of the
// stream. When several time properties exist, the last one wins.
func (m *Message) propertiesTime() (time.Time, bool) {
	props, ok := m.ReadStream(propsStream)
	if !ok {
		return time.Time{}, false
	}

	props = props[len(props)%propRecordLen:]

	var (
		value []byte
		found bool
	)
	for off := 0; off+propRecordLen <= len(props); off += propRecordLen {
		rec := props[off : off+propRecordLen]
		if binary.LittleEndian.Uint16(rec[0:2]) == ptSysTime {
			value = rec[8:16]
			found = true
		}
	}
	if !found {
		return time.Time{}, false
	}

	return FiletimeToTime(binary.LittleEndian.Uint64(value)), true
}

// FiletimeToTime converts a Windows FILETIME, a count of 100ns intervals
// since 1601-01-01 UTC, to a time in UTC.
func FiletimeToTime(ft uint64) time.Time {
	if ft > math.MaxInt64 {
		ft = math.MaxInt64
	}
	ticks := int64(ft) - filetimeUnixOffset
	return time.Unix(ticks/1e7, (ticks%1e7)*100).UTC()
}
