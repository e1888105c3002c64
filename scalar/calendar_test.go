package scalar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowplan/arrowplan/types"
)

func TestCalendarStringDate32(t *testing.T) {
	require := require.New(t)
	s, ok := Date32(0).CalendarString()
	require.True(ok)
	require.Equal("1970-01-01T00:00:00Z", s)
}

func TestCalendarStringTimestamp(t *testing.T) {
	require := require.New(t)
	s, ok := Timestamp(types.Second, "", 0).CalendarString()
	require.True(ok)
	require.Equal("1970-01-01T00:00:00Z", s)

	s, ok = Timestamp(types.Millisecond, "", 1500).CalendarString()
	require.True(ok)
	require.Equal("1970-01-01T00:00:01.5Z", s)
}

func TestCalendarStringNullAndOtherKinds(t *testing.T) {
	require := require.New(t)
	n, err := NullOf(types.Date32())
	require.NoError(err)
	_, ok := n.CalendarString()
	require.False(ok)

	_, ok = Int32(1).CalendarString()
	require.False(ok)
}
