package scalar

import (
	"github.com/arrowplan/arrowplan/date"
	"github.com/arrowplan/arrowplan/types"
)

// CalendarString renders a Date32, Date64 or Timestamp value as an RFC3339
// string via the date package, a human-readable companion to String's raw
// integer representation (spec.md §6 fixes Display to the raw int64; this
// is the conventional-calendar rendering, same relationship ScaledString
// has to Decimal128's raw-coefficient String). Returns false for any other
// kind or a null value.
func (v Value) CalendarString() (string, bool) {
	if v.null {
		return "", false
	}
	switch v.typ.Kind {
	case types.KindDate32:
		return string(date.Unix(int64(v.i)*86400, 0).AppendRFC3339Nano(nil)), true
	case types.KindDate64:
		sec, ms := v.i/1000, v.i%1000
		return string(date.Unix(sec, ms*1_000_000).AppendRFC3339Nano(nil)), true
	case types.KindTimestamp:
		var sec, ns int64
		switch v.typ.Unit {
		case types.Second:
			sec = v.i
		case types.Millisecond:
			sec, ns = v.i/1000, (v.i%1000)*1_000_000
		case types.Microsecond:
			sec, ns = v.i/1_000_000, (v.i%1_000_000)*1_000
		default:
			sec, ns = v.i/1_000_000_000, v.i%1_000_000_000
		}
		return string(date.Unix(sec, ns).AppendRFC3339Nano(nil)), true
	default:
		return "", false
	}
}
