package scalar

import (
	"math"

	"github.com/arrowplan/arrowplan/types"
)

// Equal implements spec.md §3.1/§4.1 equality: tag-first (Kind, and for
// parameterized kinds the type parameters that make up the "variant"),
// Null equals only Null (I7), floats compare via their total-order
// encoding (I4), decimals require equal precision/scale (I5), timestamps
// compare by payload only, ignoring timezone (I6).
func (v Value) Equal(o Value) bool {
	if v.typ.Kind != o.typ.Kind {
		return false
	}
	if v.null || o.null {
		return v.null && o.null
	}
	switch v.typ.Kind {
	case types.KindNull:
		return true
	case types.KindBool,
		types.KindInt8, types.KindInt16, types.KindInt32, types.KindInt64,
		types.KindDate32, types.KindDate64:
		return v.i == o.i
	case types.KindUint8, types.KindUint16, types.KindUint32, types.KindUint64:
		return v.u == o.u
	case types.KindFloat32, types.KindFloat64:
		return floatOrderKey(v.f) == floatOrderKey(o.f)
	case types.KindDecimal128:
		if v.typ.Precision != o.typ.Precision || v.typ.Scale != o.typ.Scale {
			return false
		}
		return v.dec.Cmp(o.dec) == 0
	case types.KindUtf8, types.KindLargeUtf8:
		return v.s == o.s
	case types.KindBinary, types.KindLargeBinary:
		return string(v.bin) == string(o.bin)
	case types.KindTimestamp:
		if v.typ.Unit != o.typ.Unit {
			return false
		}
		return v.i == o.i
	case types.KindInterval:
		if v.typ.IntervalU != o.typ.IntervalU {
			return false
		}
		return *v.iv == *o.iv
	case types.KindList:
		if !v.typ.Elem.Equal(*o.typ.Elem) || len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case types.KindStruct:
		if !v.typ.Equal(o.typ) {
			return false
		}
		for i := range v.strc {
			if !v.strc[i].Equal(o.strc[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare returns (-1,0,1, true) when v and o are comparable under the
// spec's total order, or (0, false) when incomparable — mismatched tags,
// mismatched decimal precision/scale, or mismatched nested element/field
// types (spec.md §3.1/§4.1/I5).
func (v Value) Compare(o Value) (int, bool) {
	if v.typ.Kind != o.typ.Kind {
		return 0, false
	}
	if v.null || o.null {
		switch {
		case v.null && o.null:
			return 0, true
		case v.null:
			return -1, true
		default:
			return 1, true
		}
	}
	switch v.typ.Kind {
	case types.KindNull:
		return 0, true
	case types.KindBool:
		return cmpInt64(v.i, o.i), true
	case types.KindInt8, types.KindInt16, types.KindInt32, types.KindInt64,
		types.KindDate32, types.KindDate64:
		return cmpInt64(v.i, o.i), true
	case types.KindUint8, types.KindUint16, types.KindUint32, types.KindUint64:
		return cmpUint64(v.u, o.u), true
	case types.KindFloat32, types.KindFloat64:
		return cmpUint64(floatOrderKey(v.f), floatOrderKey(o.f)), true
	case types.KindDecimal128:
		if v.typ.Precision != o.typ.Precision || v.typ.Scale != o.typ.Scale {
			return 0, false
		}
		return v.dec.Cmp(o.dec), true
	case types.KindUtf8, types.KindLargeUtf8:
		return cmpString(v.s, o.s), true
	case types.KindBinary, types.KindLargeBinary:
		return cmpString(string(v.bin), string(o.bin)), true
	case types.KindTimestamp:
		if v.typ.Unit != o.typ.Unit {
			return 0, false
		}
		return cmpInt64(v.i, o.i), true
	case types.KindInterval:
		if v.typ.IntervalU != o.typ.IntervalU {
			return 0, false
		}
		return cmpInterval(*v.iv, *o.iv), true
	case types.KindList:
		if !v.typ.Elem.Equal(*o.typ.Elem) {
			return 0, false
		}
		n := len(v.list)
		if len(o.list) < n {
			n = len(o.list)
		}
		for i := 0; i < n; i++ {
			c, ok := v.list[i].Compare(o.list[i])
			if !ok {
				return 0, false
			}
			if c != 0 {
				return c, true
			}
		}
		return cmpInt64(int64(len(v.list)), int64(len(o.list))), true
	case types.KindStruct:
		if !v.typ.Equal(o.typ) {
			return 0, false
		}
		for i := range v.strc {
			c, ok := v.strc[i].Compare(o.strc[i])
			if !ok {
				return 0, false
			}
			if c != 0 {
				return c, true
			}
		}
		return 0, true
	default:
		return 0, false
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInterval(a, b Interval) int {
	if c := cmpInt64(int64(a.Months), int64(b.Months)); c != 0 {
		return c
	}
	if c := cmpInt64(int64(a.Days), int64(b.Days)); c != 0 {
		return c
	}
	if c := cmpInt64(int64(a.Millis), int64(b.Millis)); c != 0 {
		return c
	}
	return cmpInt64(a.Nanos, b.Nanos)
}

// floatOrderKey is the canonical total-order encoding for IEEE-754 floats
// described in spec.md §9: the bit pattern with the sign flipped so that
// unsigned-integer order of the key matches numeric order, with every NaN
// payload canonicalized to a single representative so NaN forms one
// equivalence class for both Equal and Hash (I4).
func floatOrderKey(f float64) uint64 {
	if math.IsNaN(f) {
		f = math.NaN()
	}
	bits := math.Float64bits(f)
	const signMask = uint64(1) << 63
	if bits&signMask != 0 {
		return ^bits
	}
	return bits | signMask
}
