// Package scalar implements the universal scalar value (spec.md §3.1): a
// tagged value bridging single rows with the columnar array representation
// of github.com/apache/arrow-go/v18 via the arrowcol adapter.
//
// A Value is immutable after construction (spec.md "Lifecycle"): every
// method that would "change" a Value returns a new one.
package scalar

import (
	"fmt"
	"math/big"

	"github.com/arrowplan/arrowplan/qerrors"
	"github.com/arrowplan/arrowplan/types"
)

// Interval is the payload for an Interval scalar. Only the fields relevant
// to the type's IntervalUnit are meaningful; the others are zero.
type Interval struct {
	Months int32 // YearMonth, MonthDayNano
	Days   int32 // DayTime, MonthDayNano
	Millis int32 // DayTime
	Nanos  int64 // MonthDayNano
}

// Value is the disjoint-sum scalar described in spec.md §3.1. The zero
// Value is the untyped Null (types.Null(), is_null() true).
type Value struct {
	typ  types.Type
	null bool

	i    int64    // bool/int8..int64/date32(days)/date64(ms)/timestamp(raw)
	u    uint64   // uint8..uint64
	f    float64  // float32/float64 (float32 widened)
	dec  *big.Int // decimal128 unscaled coefficient
	s    string   // utf8/large-utf8
	bin  []byte   // binary/large-binary
	iv   *Interval
	list []Value // List payload
	strc []Value // Struct payload, len == len(typ.Fields)
}

// Type reconstructs the scalar's logical type, including nested List
// element type and Struct fields (spec.md "type_of").
func (v Value) Type() types.Type { return v.typ }

// IsNull is true for the untyped Null and for any typed variant whose
// payload is absent.
func (v Value) IsNull() bool { return v.null || v.typ.Kind == types.KindNull }

func typed(t types.Type, null bool) Value { return Value{typ: t, null: null} }

// NullOf returns the typed null Value for t (spec.md "null_of").
func NullOf(t types.Type) (Value, error) {
	switch t.Kind {
	case types.KindDictionary:
		if t.Value.Kind == types.KindList || t.Value.Kind == types.KindStruct || t.Value.Kind == types.KindDictionary {
			return Value{}, fmt.Errorf("%w: dictionary of nested value type", qerrors.ErrUnsupported)
		}
	}
	return typed(t, true), nil
}

// Null is the zero-value, untyped null.
var Null = Value{typ: types.Null(), null: true}

func Bool(b bool) Value {
	v := typed(types.Bool(), false)
	if b {
		v.i = 1
	}
	return v
}

func Int8(x int8) Value   { v := typed(types.Int8(), false); v.i = int64(x); return v }
func Int16(x int16) Value { v := typed(types.Int16(), false); v.i = int64(x); return v }
func Int32(x int32) Value { v := typed(types.Int32(), false); v.i = int64(x); return v }
func Int64(x int64) Value { v := typed(types.Int64(), false); v.i = x; return v }

func Uint8(x uint8) Value   { v := typed(types.Uint8(), false); v.u = uint64(x); return v }
func Uint16(x uint16) Value { v := typed(types.Uint16(), false); v.u = uint64(x); return v }
func Uint32(x uint32) Value { v := typed(types.Uint32(), false); v.u = uint64(x); return v }
func Uint64(x uint64) Value { v := typed(types.Uint64(), false); v.u = x; return v }

func Float32(x float32) Value { v := typed(types.Float32(), false); v.f = float64(x); return v }
func Float64(x float64) Value { v := typed(types.Float64(), false); v.f = x; return v }

// NewDecimal128 constructs a decimal scalar, failing with InvalidDecimal if
// precision is out of [1,38] or scale is out of [0,precision] (spec.md
// §4.1 try_new_decimal).
func NewDecimal128(coeff *big.Int, precision, scale int32) (Value, error) {
	if precision < 1 || precision > 38 {
		return Value{}, fmt.Errorf("%w: precision %d out of [1,38]", qerrors.ErrInvalidDecimal, precision)
	}
	if scale < 0 || scale > precision {
		return Value{}, fmt.Errorf("%w: scale %d out of [0,%d]", qerrors.ErrInvalidDecimal, scale, precision)
	}
	bound := pow10(precision)
	if coeff != nil {
		abs := new(big.Int).Abs(coeff)
		if abs.Cmp(bound) >= 0 {
			return Value{}, fmt.Errorf("%w: coefficient %s exceeds precision %d", qerrors.ErrInvalidDecimal, coeff.String(), precision)
		}
	}
	v := typed(types.Decimal128(precision, scale), coeff == nil)
	v.dec = coeff
	return v, nil
}

func pow10(n int32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

func Utf8(s string) Value      { v := typed(types.Utf8(), false); v.s = s; return v }
func LargeUtf8(s string) Value { v := typed(types.LargeUtf8(), false); v.s = s; return v }

func Binary(b []byte) Value {
	v := typed(types.Binary(), false)
	v.bin = append([]byte(nil), b...)
	return v
}

func LargeBinary(b []byte) Value {
	v := typed(types.LargeBinary(), false)
	v.bin = append([]byte(nil), b...)
	return v
}

func Date32(days int32) Value { v := typed(types.Date32(), false); v.i = int64(days); return v }
func Date64(millis int64) Value { v := typed(types.Date64(), false); v.i = millis; return v }

// Timestamp constructs a non-null timestamp scalar; raw is the number of
// units (per unit/zone) since the epoch.
func Timestamp(unit types.TimeUnit, zone string, raw int64) Value {
	v := typed(types.Timestamp(unit, zone), false)
	v.i = raw
	return v
}

// IntervalValue constructs a non-null interval scalar of the given unit.
func IntervalValue(unit types.IntervalUnit, iv Interval) Value {
	v := typed(types.Interval(unit), false)
	cp := iv
	v.iv = &cp
	return v
}

// List constructs a non-null list scalar. Every element's declared type
// must equal elemType (invariant I2); this is checked eagerly.
func List(elemType types.Type, elems []Value) (Value, error) {
	for i, e := range elems {
		if !e.Type().Equal(elemType) {
			return Value{}, fmt.Errorf("%w: list element %d has type %s, want %s", qerrors.ErrHeterogeneous, i, e.Type(), elemType)
		}
	}
	v := typed(types.List(elemType), false)
	v.list = append([]Value(nil), elems...)
	return v, nil
}

// Struct constructs a non-null struct scalar. len(values) must equal
// len(fields) and values[i] must have type fields[i].Type (invariant I3).
func Struct(fields []types.Field, values []Value) (Value, error) {
	if len(values) != len(fields) {
		return Value{}, fmt.Errorf("%w: struct has %d fields but %d values", qerrors.ErrUnsupported, len(fields), len(values))
	}
	for i, f := range fields {
		if !values[i].Type().Equal(f.Type) {
			return Value{}, fmt.Errorf("%w: struct field %q has type %s, want %s", qerrors.ErrHeterogeneous, f.Name, values[i].Type(), f.Type)
		}
	}
	v := typed(types.Struct(fields), false)
	v.strc = append([]Value(nil), values...)
	return v, nil
}

// DecimalCoefficient returns the unscaled i128 coefficient and whether the
// value is non-null. Only valid on Decimal128 scalars.
func (v Value) DecimalCoefficient() (*big.Int, bool) {
	return v.dec, !v.null
}

// IntervalParts returns the interval payload; only valid on Interval
// scalars.
func (v Value) IntervalParts() (Interval, bool) {
	if v.iv == nil {
		return Interval{}, false
	}
	return *v.iv, true
}

// Elements returns the List payload; only valid on List scalars.
func (v Value) Elements() ([]Value, bool) {
	if v.null {
		return nil, false
	}
	return v.list, true
}

// Fields returns the Struct payload; only valid on Struct scalars.
func (v Value) Fields() ([]Value, bool) {
	if v.null {
		return nil, false
	}
	return v.strc, true
}

// Negate produces the arithmetic negation for signed numerics, floats and
// decimals; it fails with NotNegatable otherwise. A null payload is
// preserved (spec.md §4.1 negate()).
func (v Value) Negate() (Value, error) {
	out := v
	switch v.typ.Kind {
	case types.KindInt8, types.KindInt16, types.KindInt32, types.KindInt64:
		if !v.null {
			out.i = -v.i
		}
		return out, nil
	case types.KindFloat32, types.KindFloat64:
		if !v.null {
			out.f = -v.f
		}
		return out, nil
	case types.KindDecimal128:
		if !v.null {
			out.dec = new(big.Int).Neg(v.dec)
		}
		return out, nil
	default:
		return Value{}, fmt.Errorf("%w: %s", qerrors.ErrNotNegatable, v.typ)
	}
}

func rawInt64(v Value) int64 { return v.i }
