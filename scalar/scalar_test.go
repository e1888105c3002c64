package scalar

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowplan/arrowplan/qerrors"
	"github.com/arrowplan/arrowplan/types"
)

func TestEqualTagFirst(t *testing.T) {
	require := require.New(t)
	require.True(Int32(1).Equal(Int32(1)))
	require.False(Int32(1).Equal(Int64(1)))
	require.True(Null.Equal(Null))
	n, err := NullOf(types.Int32())
	require.NoError(err)
	require.False(n.Equal(Int32(0)))
}

func TestFloatTotalOrderNaN(t *testing.T) {
	require := require.New(t)
	nan1 := Float64(nan())
	nan2 := Float64(negNan())
	require.True(nan1.Equal(nan2), "all NaN payloads collapse to one equivalence class")
	require.Equal(nan1.Hash([2]uint64{1, 2}), nan2.Hash([2]uint64{1, 2}))
}

func nan() float64 {
	var z float64
	return z / z
}

func negNan() float64 {
	return -nan()
}

func TestNegateNegateIsIdentity(t *testing.T) {
	require := require.New(t)
	v := Int64(-42)
	neg, err := v.Negate()
	require.NoError(err)
	back, err := neg.Negate()
	require.NoError(err)
	require.True(v.Equal(back))

	_, err = Utf8("x").Negate()
	require.ErrorIs(err, qerrors.ErrNotNegatable)
}

func TestDecimalBoundary(t *testing.T) {
	require := require.New(t)
	_, err := NewDecimal128(big.NewInt(1), 38, 38)
	require.NoError(err)
	_, err = NewDecimal128(big.NewInt(1), 39, 0)
	require.ErrorIs(err, qerrors.ErrInvalidDecimal)
	_, err = NewDecimal128(big.NewInt(1), 5, 6)
	require.ErrorIs(err, qerrors.ErrInvalidDecimal)
}

func TestDecimalCompareRequiresMatchingScale(t *testing.T) {
	require := require.New(t)
	a, err := NewDecimal128(big.NewInt(100), 10, 2)
	require.NoError(err)
	b, err := NewDecimal128(big.NewInt(100), 10, 3)
	require.NoError(err)
	_, ok := a.Compare(b)
	require.False(ok)
	require.False(a.Equal(b))
}

func TestTimestampIgnoresZoneForEquality(t *testing.T) {
	require := require.New(t)
	a := Timestamp(types.Nanosecond, "UTC", 123)
	b := Timestamp(types.Nanosecond, "America/New_York", 123)
	require.True(a.Equal(b))
	c := Timestamp(types.Millisecond, "UTC", 123)
	require.False(a.Equal(c))
}

func TestListAndStructConstruction(t *testing.T) {
	require := require.New(t)
	lst, err := List(types.Int64(), []Value{Int64(1), Int64(2)})
	require.NoError(err)
	elems, ok := lst.Elements()
	require.True(ok)
	require.Len(elems, 2)

	_, err = List(types.Int64(), []Value{Int64(1), Utf8("x")})
	require.ErrorIs(err, qerrors.ErrHeterogeneous)

	fields := []types.Field{{Name: "a", Type: types.Int32()}, {Name: "b", Type: types.Utf8()}}
	s, err := Struct(fields, []Value{Int32(1), Utf8("hi")})
	require.NoError(err)
	require.Equal("{a:1,b:hi}", s.String())
}

func TestDisplayAndDebug(t *testing.T) {
	require := require.New(t)
	d, err := NewDecimal128(big.NewInt(12345), 10, 2)
	require.NoError(err)
	require.Equal("12345,10,2", d.String())

	require.Equal(`Int32(42)`, Int32(42).GoString())
	require.Equal(`Utf8("x")`, Utf8("x").GoString())
	ts := Timestamp(types.Nanosecond, "UTC", 123)
	require.Equal(`TimestampNanosecond(123, Some("UTC"))`, ts.GoString())
}
