// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"time"
)

// CP56Time2a encodes a time.Time into the 7-octet binary time 2a format.
// The year is stored as an offset from 2000.
func CP56Time2a(t time.Time, loc *time.Location) []byte {
	if loc == nil {
		loc = time.UTC
	}
	ts := t.In(loc)
	msec := ts.Nanosecond()/int(time.Millisecond) + ts.Second()*1000
	dow := byte(ts.Weekday())
	if dow == 0 { // ISO day of week, Sunday is 7
		dow = 7
	}
	return []byte{
		byte(msec),
		byte(msec >> 8),
		byte(ts.Minute()),
		byte(ts.Hour()),
		byte(ts.Day()) | dow<<5,
		byte(ts.Month()),
		byte(ts.Year() % 100),
	}
}

// ParseCP56Time2a decodes a 7-octet binary time 2a value. The zero time is
// returned when the buffer is too short or the invalid flag is set.
func ParseCP56Time2a(b []byte, loc *time.Location) time.Time {
	if len(b) < 7 || b[2]&0x80 != 0 {
		return time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}
	msec := int(b[1])<<8 | int(b[0])
	sec := msec / 1000
	nsec := (msec % 1000) * int(time.Millisecond)
	min := int(b[2] & 0x3f)
	hour := int(b[3] & 0x1f)
	day := int(b[4] & 0x1f)
	month := time.Month(b[5] & 0x0f)
	year := 2000 + int(b[6]&0x7f)
	return time.Date(year, month, day, hour, min, sec, nsec, loc)
}

// CP24Time2a encodes the minute-local part of a time.Time into the 3-octet
// binary time 2a format.
func CP24Time2a(t time.Time, loc *time.Location) []byte {
	if loc == nil {
		loc = time.UTC
	}
	ts := t.In(loc)
	msec := ts.Nanosecond()/int(time.Millisecond) + ts.Second()*1000
	return []byte{
		byte(msec),
		byte(msec >> 8),
		byte(ts.Minute()),
	}
}

// ParseCP24Time2a decodes a 3-octet binary time 2a value within the current
// hour. The zero time is returned when the buffer is too short or the invalid
// flag is set.
func ParseCP24Time2a(b []byte, loc *time.Location) time.Time {
	if len(b) < 3 || b[2]&0x80 != 0 {
		return time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}
	msec := int(b[1])<<8 | int(b[0])
	sec := msec / 1000
	nsec := (msec % 1000) * int(time.Millisecond)
	min := int(b[2] & 0x3f)

	now := time.Now().In(loc)
	val := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), min, sec, nsec, loc)
	// A timestamp in the future falls in the previous hour.
	if val.After(now) {
		val = val.Add(-time.Hour)
	}
	return val
}

// CP16Time2a encodes a millisecond duration into the 2-octet binary time
// format, used for delay acquisition.
func CP16Time2a(msec uint16) []byte {
	return []byte{byte(msec), byte(msec >> 8)}
}

// ParseCP16Time2a decodes a 2-octet millisecond value.
func ParseCP16Time2a(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}
