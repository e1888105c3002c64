// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package date provides the compact Time representation scalar.Value's
// CalendarString uses to render a Date32, Date64 or Timestamp as an
// RFC3339 string. Only the Unix-epoch construction path and RFC3339Nano
// rendering are kept here; the teacher package's own string parser and
// calendar-duration arithmetic have no caller in this module and were
// dropped rather than carried as unreachable code.
package date

import "time"

// A Time represents a date and time with a nanosecond component, packed
// into a single uint64 plus a separate nanosecond field so that
// extracting date components is cheaper than round-tripping through
// time.Time.
//
// This representation cannot store years below 0 or above 16,383. Years
// falling outside that range are truncated to fit within it.
type Time struct {
	ts uint64
	ns uint32
}

func pack(year, month, day, hour, min, sec, ns int) Time {
	if year < 0 {
		year = 0
	} else if year > (1<<14)-1 {
		year = (1 << 14) - 1
	}
	ts := (uint64(year) & 0xffff << 40) |
		(uint64(month-1) & 0xff << 32) |
		(uint64(day-1) & 0xff << 24) |
		(uint64(hour) & 0xff << 16) |
		(uint64(min) & 0xff << 8) |
		(uint64(sec) & 0xff)
	return Time{ts: ts, ns: uint32(ns)}
}

// FromTime returns a Time equivalent to t, normalized to UTC.
func FromTime(t time.Time) Time {
	t = t.UTC()
	year, month, day := t.Year(), int(t.Month()), t.Day()
	hour, min, sec := t.Hour(), t.Minute(), t.Second()
	return pack(year, month, day, hour, min, sec, t.Nanosecond())
}

// Unix returns a Time from a Unix timestamp given as seconds and
// nanoseconds.
func Unix(sec, ns int64) Time {
	return FromTime(time.Unix(sec, ns))
}

// Time returns t as a time.Time in UTC.
func (t Time) Time() time.Time {
	year, month, day := t.Year(), time.Month(t.Month()), t.Day()
	hour, min, sec := t.Hour(), t.Minute(), t.Second()
	return time.Date(year, month, day, hour, min, sec, int(t.ns), time.UTC)
}

// Year returns the year component of t.
func (t Time) Year() int {
	return int(t.ts & 0xffff0000000000 >> 40)
}

// Month returns the month component of t.
func (t Time) Month() int {
	return int(t.ts&0xff00000000>>32) + 1
}

// Day returns the day component of t.
func (t Time) Day() int {
	return int(t.ts&0xff000000>>24) + 1
}

// Hour returns the hour component of t.
func (t Time) Hour() int {
	return int(t.ts & 0xff0000 >> 16)
}

// Minute returns the minute component of t.
func (t Time) Minute() int {
	return int(t.ts & 0xff00 >> 8)
}

// Second returns the second component of t.
func (t Time) Second() int {
	return int(t.ts & 0xff)
}

// Nanosecond returns the nanosecond component of t.
func (t Time) Nanosecond() int {
	return int(t.ns)
}

// Equal returns whether t == t2.
func (t Time) Equal(t2 Time) bool {
	return t == t2
}

// AppendRFC3339Nano appends t formatted as an RFC3339 string with
// nanosecond precision to b.
func (t Time) AppendRFC3339Nano(b []byte) []byte {
	return t.Time().AppendFormat(b, time.RFC3339Nano)
}
