package types

import "testing"

func TestEqual(t *testing.T) {
	cases := []struct {
		a, b Type
		want bool
	}{
		{Int32(), Int32(), true},
		{Int32(), Int64(), false},
		{Decimal128(10, 2), Decimal128(10, 2), true},
		{Decimal128(10, 2), Decimal128(10, 3), false},
		{List(Int32()), List(Int32()), true},
		{List(Int32()), List(Utf8()), false},
		{Timestamp(Nanosecond, "UTC"), Timestamp(Nanosecond, "UTC"), true},
		{Timestamp(Nanosecond, "UTC"), Timestamp(Nanosecond, ""), false},
	}
	for _, c := range cases {
		if got := c.a.Equal(c.b); got != c.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestArrowRoundTrip(t *testing.T) {
	for _, ty := range []Type{
		Bool(), Int8(), Int16(), Int32(), Int64(),
		Uint8(), Uint16(), Uint32(), Uint64(),
		Float32(), Float64(),
		Decimal128(10, 3),
		Utf8(), LargeUtf8(), Binary(), LargeBinary(),
		Date32(), Date64(),
		Timestamp(Nanosecond, "UTC"),
		Interval(IntervalYearMonth),
		Interval(IntervalDayTime),
		Interval(IntervalMonthDayNano),
		List(Int64()),
		Struct([]Field{{Name: "a", Type: Int32()}, {Name: "b", Type: Utf8(), Nullable: true}}),
		Dictionary(Int32(), Utf8()),
	} {
		if _, err := ty.Arrow(); err != nil {
			t.Errorf("Arrow() for %v: %v", ty, err)
		}
	}
}

func TestDisplay(t *testing.T) {
	if got := Decimal128(10, 2).String(); got != "Decimal128(10,2)" {
		t.Errorf("got %q", got)
	}
	if got := Timestamp(Nanosecond, "UTC").String(); got != "Timestamp(ns,UTC)" {
		t.Errorf("got %q", got)
	}
}
