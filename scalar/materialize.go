package scalar

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal128"

	"github.com/arrowplan/arrowplan/arrowcol"
	"github.com/arrowplan/arrowplan/qerrors"
	"github.com/arrowplan/arrowplan/types"
)

// ToArrayOfSize replicates v into a length-n columnar array: a single
// all-null array for a null payload, otherwise n repeats of the same
// element appended through the arrowcol builder (spec.md §4.1
// to_array_of_size).
func (v Value) ToArrayOfSize(n int) (arrow.Array, error) {
	if v.null {
		return arrowcol.NewNullArray(v.typ, n)
	}
	b, err := arrowcol.NewBuilder(v.typ)
	if err != nil {
		return nil, err
	}
	defer b.Release()
	for i := 0; i < n; i++ {
		if err := appendValue(b, v); err != nil {
			return nil, err
		}
	}
	return b.NewArray(), nil
}

// ArrayFromIter builds an array from a non-empty, homogeneously typed
// sequence of scalars (spec.md §4.1 iter_to_array): ErrEmpty if values is
// empty, ErrHeterogeneous if any element's declared type differs from the
// first.
func ArrayFromIter(values []Value) (arrow.Array, error) {
	if len(values) == 0 {
		return nil, qerrors.ErrEmpty
	}
	t := values[0].Type()
	b, err := arrowcol.NewBuilder(t)
	if err != nil {
		return nil, err
	}
	defer b.Release()
	for i, v := range values {
		if !v.Type().Equal(t) {
			return nil, fmt.Errorf("%w: element %d has type %s, want %s", qerrors.ErrHeterogeneous, i, v.Type(), t)
		}
		if err := appendValue(b, v); err != nil {
			return nil, err
		}
	}
	return b.NewArray(), nil
}

func appendValue(b array.Builder, v Value) error {
	if v.null {
		b.AppendNull()
		return nil
	}
	switch bt := b.(type) {
	case *array.BooleanBuilder:
		bt.Append(v.i != 0)
	case *array.Int8Builder:
		bt.Append(int8(v.i))
	case *array.Int16Builder:
		bt.Append(int16(v.i))
	case *array.Int32Builder:
		bt.Append(int32(v.i))
	case *array.Int64Builder:
		bt.Append(v.i)
	case *array.Uint8Builder:
		bt.Append(uint8(v.u))
	case *array.Uint16Builder:
		bt.Append(uint16(v.u))
	case *array.Uint32Builder:
		bt.Append(uint32(v.u))
	case *array.Uint64Builder:
		bt.Append(v.u)
	case *array.Float32Builder:
		bt.Append(float32(v.f))
	case *array.Float64Builder:
		bt.Append(v.f)
	case *array.Decimal128Builder:
		num, err := decimal128.FromBigInt(v.dec)
		if err != nil {
			return arrowcol.AdapterError(err)
		}
		bt.Append(num)
	case *array.StringBuilder:
		bt.Append(v.s)
	case *array.LargeStringBuilder:
		bt.Append(v.s)
	case *array.BinaryBuilder:
		bt.Append(v.bin)
	case *array.LargeBinaryBuilder:
		bt.Append(v.bin)
	case *array.Date32Builder:
		bt.Append(arrow.Date32(int32(v.i)))
	case *array.Date64Builder:
		bt.Append(arrow.Date64(v.i))
	case *array.TimestampBuilder:
		bt.Append(arrow.Timestamp(v.i))
	case *array.MonthIntervalBuilder:
		bt.Append(arrow.MonthInterval(v.iv.Months))
	case *array.DayTimeIntervalBuilder:
		bt.Append(arrow.DayTimeInterval{Days: v.iv.Days, Milliseconds: v.iv.Millis})
	case *array.MonthDayNanoIntervalBuilder:
		bt.Append(arrow.MonthDayNanoInterval{Months: v.iv.Months, Days: v.iv.Days, Nanoseconds: v.iv.Nanos})
	case *array.ListBuilder:
		bt.Append(true)
		eb := bt.ValueBuilder()
		for _, e := range v.list {
			if err := appendValue(eb, e); err != nil {
				return err
			}
		}
	case *array.LargeListBuilder:
		bt.Append(true)
		eb := bt.ValueBuilder()
		for _, e := range v.list {
			if err := appendValue(eb, e); err != nil {
				return err
			}
		}
	case *array.StructBuilder:
		bt.Append(true)
		for i, e := range v.strc {
			if err := appendValue(bt.FieldBuilder(i), e); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unsupported builder %T", qerrors.ErrUnsupported, b)
	}
	return nil
}

// FromArray round-trips a single row out of a columnar array at index i
// (spec.md §4.1 from_array). Dictionary-encoded arrays decode to the
// dictionary's value type; fixed-size lists normalize to variable-size List
// scalars; a null at i yields the typed null of the array's logical type,
// preserving the type rather than collapsing to the untyped Null.
func FromArray(a arrow.Array, i int) (Value, error) {
	if d, ok := a.(*array.Dictionary); ok {
		keys, dict, err := arrowcol.DictionaryParts(a)
		if err != nil {
			return Value{}, err
		}
		if d.IsNull(i) {
			t, err := types.FromArrow(a.DataType())
			if err != nil {
				return Value{}, err
			}
			return NullOf(t)
		}
		return FromArray(dict, int(keys.Value(i)))
	}
	if a.IsNull(i) {
		t, err := types.FromArrow(a.DataType())
		if err != nil {
			return Value{}, err
		}
		return NullOf(t)
	}
	switch at := a.(type) {
	case *array.Boolean:
		return Bool(at.Value(i)), nil
	case *array.Int8:
		return Int8(at.Value(i)), nil
	case *array.Int16:
		return Int16(at.Value(i)), nil
	case *array.Int32:
		return Int32(at.Value(i)), nil
	case *array.Int64:
		return Int64(at.Value(i)), nil
	case *array.Uint8:
		return Uint8(at.Value(i)), nil
	case *array.Uint16:
		return Uint16(at.Value(i)), nil
	case *array.Uint32:
		return Uint32(at.Value(i)), nil
	case *array.Uint64:
		return Uint64(at.Value(i)), nil
	case *array.Float32:
		return Float32(at.Value(i)), nil
	case *array.Float64:
		return Float64(at.Value(i)), nil
	case *array.Decimal128:
		dt := at.DataType().(*arrow.Decimal128Type)
		return NewDecimal128(at.Value(i).BigInt(), dt.Precision, dt.Scale)
	case *array.String:
		return Utf8(at.Value(i)), nil
	case *array.LargeString:
		return LargeUtf8(at.Value(i)), nil
	case *array.Binary:
		return Binary(at.Value(i)), nil
	case *array.LargeBinary:
		return LargeBinary(at.Value(i)), nil
	case *array.Date32:
		return Date32(int32(at.Value(i))), nil
	case *array.Date64:
		return Date64(int64(at.Value(i))), nil
	case *array.Timestamp:
		t, err := types.FromArrow(at.DataType())
		if err != nil {
			return Value{}, err
		}
		return Timestamp(t.Unit, t.Zone, int64(at.Value(i))), nil
	case *array.MonthInterval:
		return IntervalValue(types.IntervalYearMonth, Interval{Months: int32(at.Value(i))}), nil
	case *array.DayTimeInterval:
		dti := at.Value(i)
		return IntervalValue(types.IntervalDayTime, Interval{Days: dti.Days, Millis: dti.Milliseconds}), nil
	case *array.MonthDayNanoInterval:
		mdn := at.Value(i)
		return IntervalValue(types.IntervalMonthDayNano, Interval{Months: mdn.Months, Days: mdn.Days, Nanos: mdn.Nanoseconds}), nil
	case *array.List:
		return fromListLike(at, at.DataType().(*arrow.ListType).Elem(), i)
	case *array.LargeList:
		return fromListLike(at, at.DataType().(*arrow.LargeListType).Elem(), i)
	case *array.FixedSizeList:
		return fromListLike(at, at.DataType().(*arrow.FixedSizeListType).Elem(), i)
	case *array.Struct:
		return fromStruct(at, i)
	default:
		return Value{}, fmt.Errorf("%w: unsupported array %T", qerrors.ErrUnsupported, a)
	}
}

func fromListLike(a arrow.Array, elemDT arrow.DataType, i int) (Value, error) {
	child, err := arrowcol.ListChild(a, i)
	if err != nil {
		return Value{}, err
	}
	elemType, err := types.FromArrow(elemDT)
	if err != nil {
		return Value{}, err
	}
	elems := make([]Value, child.Len())
	for j := range elems {
		e, err := FromArray(child, j)
		if err != nil {
			return Value{}, err
		}
		elems[j] = e
	}
	return List(elemType, elems)
}

func fromStruct(a *array.Struct, i int) (Value, error) {
	st := a.DataType().(*arrow.StructType)
	n := st.NumFields()
	fields := make([]types.Field, n)
	values := make([]Value, n)
	for fi, f := range st.Fields() {
		ft, err := types.FromArrow(f.Type)
		if err != nil {
			return Value{}, err
		}
		fields[fi] = types.Field{Name: f.Name, Type: ft, Nullable: f.Nullable}
		col, err := arrowcol.StructColumn(a, fi)
		if err != nil {
			return Value{}, err
		}
		v, err := FromArray(col, i)
		if err != nil {
			return Value{}, err
		}
		values[fi] = v
	}
	return Struct(fields, values)
}

// EqArray reports whether the row at index i of a equals v, without
// materializing a's row as an intermediate Value (spec.md §4.1 "Fast Per-Row
// Equality" — used for hash-table probes in downstream executors).
// Dictionary arrays decode their index and recurse into the dictionary.
func (v Value) EqArray(a arrow.Array, i int) (bool, error) {
	if d, ok := a.(*array.Dictionary); ok {
		keys, dict, err := arrowcol.DictionaryParts(a)
		if err != nil {
			return false, err
		}
		if d.IsNull(i) {
			return v.null, nil
		}
		return v.EqArray(dict, int(keys.Value(i)))
	}
	if a.IsNull(i) {
		return v.null, nil
	}
	if v.null {
		return false, nil
	}
	switch at := a.(type) {
	case *array.Boolean:
		return v.typ.Kind == types.KindBool && (v.i != 0) == at.Value(i), nil
	case *array.Int8:
		return v.typ.Kind == types.KindInt8 && v.i == int64(at.Value(i)), nil
	case *array.Int16:
		return v.typ.Kind == types.KindInt16 && v.i == int64(at.Value(i)), nil
	case *array.Int32:
		return v.typ.Kind == types.KindInt32 && v.i == int64(at.Value(i)), nil
	case *array.Int64:
		return v.typ.Kind == types.KindInt64 && v.i == at.Value(i), nil
	case *array.Uint8:
		return v.typ.Kind == types.KindUint8 && v.u == uint64(at.Value(i)), nil
	case *array.Uint16:
		return v.typ.Kind == types.KindUint16 && v.u == uint64(at.Value(i)), nil
	case *array.Uint32:
		return v.typ.Kind == types.KindUint32 && v.u == uint64(at.Value(i)), nil
	case *array.Uint64:
		return v.typ.Kind == types.KindUint64 && v.u == at.Value(i), nil
	case *array.Float32:
		return v.typ.Kind == types.KindFloat32 && floatOrderKey(v.f) == floatOrderKey(float64(at.Value(i))), nil
	case *array.Float64:
		return v.typ.Kind == types.KindFloat64 && floatOrderKey(v.f) == floatOrderKey(at.Value(i)), nil
	case *array.Decimal128:
		if v.typ.Kind != types.KindDecimal128 {
			return false, nil
		}
		dt := at.DataType().(*arrow.Decimal128Type)
		if dt.Precision != v.typ.Precision || dt.Scale != v.typ.Scale {
			return false, nil
		}
		return v.dec.Cmp(at.Value(i).BigInt()) == 0, nil
	case *array.String:
		return v.typ.Kind == types.KindUtf8 && v.s == at.Value(i), nil
	case *array.LargeString:
		return v.typ.Kind == types.KindLargeUtf8 && v.s == at.Value(i), nil
	case *array.Binary:
		return v.typ.Kind == types.KindBinary && string(v.bin) == string(at.Value(i)), nil
	case *array.LargeBinary:
		return v.typ.Kind == types.KindLargeBinary && string(v.bin) == string(at.Value(i)), nil
	case *array.Date32:
		return v.typ.Kind == types.KindDate32 && v.i == int64(at.Value(i)), nil
	case *array.Date64:
		return v.typ.Kind == types.KindDate64 && v.i == int64(at.Value(i)), nil
	case *array.Timestamp:
		if v.typ.Kind != types.KindTimestamp {
			return false, nil
		}
		t, err := types.FromArrow(at.DataType())
		if err != nil {
			return false, err
		}
		if t.Unit != v.typ.Unit {
			return false, nil
		}
		return v.i == int64(at.Value(i)), nil
	case *array.MonthInterval:
		return v.typ.Kind == types.KindInterval && v.typ.IntervalU == types.IntervalYearMonth &&
			v.iv.Months == int32(at.Value(i)), nil
	case *array.DayTimeInterval:
		if v.typ.Kind != types.KindInterval || v.typ.IntervalU != types.IntervalDayTime {
			return false, nil
		}
		dti := at.Value(i)
		return v.iv.Days == dti.Days && v.iv.Millis == dti.Milliseconds, nil
	case *array.MonthDayNanoInterval:
		if v.typ.Kind != types.KindInterval || v.typ.IntervalU != types.IntervalMonthDayNano {
			return false, nil
		}
		mdn := at.Value(i)
		return v.iv.Months == mdn.Months && v.iv.Days == mdn.Days && v.iv.Nanos == mdn.Nanoseconds, nil
	case *array.List:
		return v.eqList(at, at.DataType().(*arrow.ListType).Elem(), i)
	case *array.LargeList:
		return v.eqList(at, at.DataType().(*arrow.LargeListType).Elem(), i)
	case *array.FixedSizeList:
		return v.eqList(at, at.DataType().(*arrow.FixedSizeListType).Elem(), i)
	case *array.Struct:
		return v.eqStruct(at, i)
	default:
		return false, fmt.Errorf("%w: unsupported array %T", qerrors.ErrUnsupported, a)
	}
}

func (v Value) eqList(a arrow.Array, elemDT arrow.DataType, i int) (bool, error) {
	if v.typ.Kind != types.KindList {
		return false, nil
	}
	elemType, err := types.FromArrow(elemDT)
	if err != nil {
		return false, err
	}
	if !v.typ.Elem.Equal(elemType) {
		return false, nil
	}
	child, err := arrowcol.ListChild(a, i)
	if err != nil {
		return false, err
	}
	if child.Len() != len(v.list) {
		return false, nil
	}
	for j, e := range v.list {
		ok, err := e.EqArray(child, j)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (v Value) eqStruct(a *array.Struct, i int) (bool, error) {
	if v.typ.Kind != types.KindStruct {
		return false, nil
	}
	st := a.DataType().(*arrow.StructType)
	if st.NumFields() != len(v.strc) {
		return false, nil
	}
	for fi := range v.strc {
		col, err := arrowcol.StructColumn(a, fi)
		if err != nil {
			return false, err
		}
		ok, err := v.strc[fi].EqArray(col, i)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
