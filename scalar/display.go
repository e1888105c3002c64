package scalar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arrowplan/arrowplan/types"
)

// String implements the Display formatting of spec.md §6: NULL for absent
// payloads, primitives via their natural decimal representation, decimal as
// "value,precision,scale", binary as comma-joined byte decimals, list as
// comma-joined element renderings, struct as "{name:value,...}".
func (v Value) String() string {
	if v.null {
		return "NULL"
	}
	switch v.typ.Kind {
	case types.KindNull:
		return "NULL"
	case types.KindBool:
		return strconv.FormatBool(v.i != 0)
	case types.KindInt8, types.KindInt16, types.KindInt32, types.KindInt64,
		types.KindDate32, types.KindDate64, types.KindTimestamp:
		return strconv.FormatInt(v.i, 10)
	case types.KindUint8, types.KindUint16, types.KindUint32, types.KindUint64:
		return strconv.FormatUint(v.u, 10)
	case types.KindFloat32, types.KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case types.KindDecimal128:
		return fmt.Sprintf("%s,%d,%d", v.dec.String(), v.typ.Precision, v.typ.Scale)
	case types.KindUtf8, types.KindLargeUtf8:
		return v.s
	case types.KindBinary, types.KindLargeBinary:
		parts := make([]string, len(v.bin))
		for i, b := range v.bin {
			parts[i] = strconv.Itoa(int(b))
		}
		return strings.Join(parts, ",")
	case types.KindInterval:
		return fmt.Sprintf("%d,%d,%d,%d", v.iv.Months, v.iv.Days, v.iv.Millis, v.iv.Nanos)
	case types.KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return strings.Join(parts, ",")
	case types.KindStruct:
		parts := make([]string, len(v.strc))
		for i, f := range v.typ.Fields {
			parts[i] = fmt.Sprintf("%s:%s", f.Name, v.strc[i].String())
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return "NULL"
	}
}

// GoString implements the Debug formatting of spec.md §6: the Display
// string wrapped with the type tag, e.g. Int32(42), Utf8("x"),
// TimestampNanosecond(123, Some("UTC")).
func (v Value) GoString() string {
	tag := debugTag(v.typ)
	if v.typ.Kind == types.KindUtf8 || v.typ.Kind == types.KindLargeUtf8 {
		if v.null {
			return tag + "(None)"
		}
		return fmt.Sprintf("%s(%q)", tag, v.s)
	}
	if v.typ.Kind == types.KindTimestamp {
		zone := "None"
		if v.typ.Zone != "" {
			zone = fmt.Sprintf("Some(%q)", v.typ.Zone)
		}
		if v.null {
			return fmt.Sprintf("%s(None, %s)", tag, zone)
		}
		return fmt.Sprintf("%s(%d, %s)", tag, v.i, zone)
	}
	if v.null {
		return tag + "(None)"
	}
	return fmt.Sprintf("%s(%s)", tag, v.String())
}

func debugTag(t types.Type) string {
	switch t.Kind {
	case types.KindTimestamp:
		switch t.Unit {
		case types.Second:
			return "TimestampSecond"
		case types.Millisecond:
			return "TimestampMillisecond"
		case types.Microsecond:
			return "TimestampMicrosecond"
		default:
			return "TimestampNanosecond"
		}
	case types.KindInterval:
		switch t.IntervalU {
		case types.IntervalYearMonth:
			return "IntervalYearMonth"
		case types.IntervalDayTime:
			return "IntervalDayTime"
		default:
			return "IntervalMonthDayNano"
		}
	default:
		return t.Kind.String()
	}
}
