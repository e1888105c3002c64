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

package date

import (
	"testing"
	"time"
)

func TestUnixRFC3339Nano(t *testing.T) {
	cases := []struct {
		sec, ns int64
		want    string
	}{
		{0, 0, "1970-01-01T00:00:00Z"},
		{1_577_836_800, 0, "2020-01-01T00:00:00Z"},
		{1_577_836_800, 123_000_000, "2020-01-01T00:00:00.123Z"},
		{-1, 0, "1969-12-31T23:59:59Z"},
	}
	for _, c := range cases {
		got := string(Unix(c.sec, c.ns).AppendRFC3339Nano(nil))
		if got != c.want {
			t.Errorf("Unix(%d, %d): got %q, want %q", c.sec, c.ns, got, c.want)
		}
	}
}

func TestFromTimeRoundTrip(t *testing.T) {
	ref := time.Date(2021, time.April, 7, 12, 30, 15, 123456789, time.UTC)
	got := FromTime(ref)
	if got.Year() != 2021 || got.Month() != 4 || got.Day() != 7 {
		t.Errorf("date parts: got %d-%d-%d", got.Year(), got.Month(), got.Day())
	}
	if got.Hour() != 12 || got.Minute() != 30 || got.Second() != 15 || got.Nanosecond() != 123456789 {
		t.Errorf("time parts: got %d:%d:%d.%d", got.Hour(), got.Minute(), got.Second(), got.Nanosecond())
	}
	if !got.Time().Equal(ref) {
		t.Errorf("Time(): got %s, want %s", got.Time(), ref)
	}
	if !got.Equal(FromTime(ref)) {
		t.Error("Equal: expected two FromTime conversions of the same instant to be equal")
	}
}
