package scalar

import (
	"math/big"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/stretchr/testify/require"

	"github.com/arrowplan/arrowplan/arrowcol"
	"github.com/arrowplan/arrowplan/qerrors"
	"github.com/arrowplan/arrowplan/types"
)

func roundTrip(t *testing.T, v Value) {
	t.Helper()
	require := require.New(t)

	arr, err := v.ToArrayOfSize(3)
	require.NoError(err)
	require.Equal(3, arr.Len())

	got, err := FromArray(arr, 1)
	require.NoError(err)
	require.True(v.Equal(got), "from_array(to_array_of_size(v,n), 1) == v: got %#v want %#v", got, v)

	ok, err := v.EqArray(arr, 1)
	require.NoError(err)
	require.True(ok)
}

func TestRoundTripPrimitives(t *testing.T) {
	roundTrip(t, Int32(7))
	roundTrip(t, Uint64(7))
	roundTrip(t, Float64(3.5))
	roundTrip(t, Bool(true))
	roundTrip(t, Utf8("hello"))
	roundTrip(t, Binary([]byte{1, 2, 3}))
	roundTrip(t, Date32(19000))
	roundTrip(t, Date64(1_700_000_000_000))
}

func TestRoundTripDecimal(t *testing.T) {
	d, err := NewDecimal128(big.NewInt(12345), 10, 2)
	require.NoError(t, err)
	roundTrip(t, d)
}

func TestRoundTripTimestampWithZone(t *testing.T) {
	roundTrip(t, Timestamp(types.Nanosecond, "UTC", 123))
}

func TestRoundTripIntervals(t *testing.T) {
	roundTrip(t, IntervalValue(types.IntervalYearMonth, Interval{Months: 14}))
	roundTrip(t, IntervalValue(types.IntervalDayTime, Interval{Days: 3, Millis: 500}))
	roundTrip(t, IntervalValue(types.IntervalMonthDayNano, Interval{Months: 1, Days: 2, Nanos: 300}))
}

func TestRoundTripList(t *testing.T) {
	lst, err := List(types.Utf8(), []Value{Utf8("a"), Utf8("b")})
	require.NoError(t, err)
	roundTrip(t, lst)

	ints, err := List(types.Int64(), []Value{Int64(1), Int64(2), Int64(3)})
	require.NoError(t, err)
	roundTrip(t, ints)
}

func TestRoundTripStruct(t *testing.T) {
	fields := []types.Field{{Name: "a", Type: types.Int32()}, {Name: "b", Type: types.Utf8()}}
	s, err := Struct(fields, []Value{Int32(1), Utf8("x")})
	require.NoError(t, err)
	roundTrip(t, s)
}

func TestFromArrayDictionaryDecodesToValueType(t *testing.T) {
	require := require.New(t)

	b, err := arrowcol.NewBuilder(types.Dictionary(types.Int32(), types.Utf8()))
	require.NoError(err)
	defer b.Release()
	sb := b.(*array.BinaryDictionaryBuilder)
	require.NoError(sb.AppendString("x"))
	require.NoError(sb.AppendString("y"))
	require.NoError(sb.AppendString("x"))
	arr := sb.NewArray()
	defer arr.Release()

	v, err := FromArray(arr, 0)
	require.NoError(err)
	require.Equal(types.KindUtf8, v.Type().Kind)
	require.True(v.Equal(Utf8("x")))

	ok, err := Utf8("x").EqArray(arr, 2)
	require.NoError(err)
	require.True(ok)

	ok, err = Utf8("y").EqArray(arr, 0)
	require.NoError(err)
	require.False(ok)
}

func TestToArrayOfSizeNull(t *testing.T) {
	require := require.New(t)
	n, err := NullOf(types.Int32())
	require.NoError(err)
	arr, err := n.ToArrayOfSize(4)
	require.NoError(err)
	require.Equal(4, arr.Len())
	for i := 0; i < 4; i++ {
		require.True(arr.IsNull(i))
	}
	got, err := FromArray(arr, 2)
	require.NoError(err)
	require.True(got.IsNull())
	require.Equal(types.KindInt32, got.Type().Kind)
}

func TestArrayFromIterRejectsEmptyAndHeterogeneous(t *testing.T) {
	require := require.New(t)
	_, err := ArrayFromIter(nil)
	require.ErrorIs(err, qerrors.ErrEmpty)

	_, err = ArrayFromIter([]Value{Int32(1), Utf8("x")})
	require.ErrorIs(err, qerrors.ErrHeterogeneous)

	arr, err := ArrayFromIter([]Value{Int32(1), Int32(2), Int32(3)})
	require.NoError(err)
	require.Equal(3, arr.Len())
}

func TestScaledString(t *testing.T) {
	require := require.New(t)
	d, err := NewDecimal128(big.NewInt(12345), 10, 2)
	require.NoError(err)
	s, ok := d.ScaledString()
	require.True(ok)
	require.Equal("123.45", s)
}
