// Package types enumerates the logical data type catalog shared by the
// scalar and logical-plan layers, and provides the narrow adapter that maps
// each logical type to and from the external arrow columnar vocabulary
// (github.com/apache/arrow-go/v18/arrow).
package types

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// Kind is the tag of a logical type.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindDecimal128
	KindUtf8
	KindLargeUtf8
	KindBinary
	KindLargeBinary
	KindDate32
	KindDate64
	KindTimestamp
	KindInterval
	KindList
	KindStruct
	KindDictionary
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Boolean"
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindUint8:
		return "UInt8"
	case KindUint16:
		return "UInt16"
	case KindUint32:
		return "UInt32"
	case KindUint64:
		return "UInt64"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindDecimal128:
		return "Decimal128"
	case KindUtf8:
		return "Utf8"
	case KindLargeUtf8:
		return "LargeUtf8"
	case KindBinary:
		return "Binary"
	case KindLargeBinary:
		return "LargeBinary"
	case KindDate32:
		return "Date32"
	case KindDate64:
		return "Date64"
	case KindTimestamp:
		return "Timestamp"
	case KindInterval:
		return "Interval"
	case KindList:
		return "List"
	case KindStruct:
		return "Struct"
	case KindDictionary:
		return "Dictionary"
	default:
		return "Unknown"
	}
}

// TimeUnit mirrors arrow.TimeUnit for timestamp/interval-bearing types.
type TimeUnit int

const (
	Second TimeUnit = iota
	Millisecond
	Microsecond
	Nanosecond
)

func (u TimeUnit) arrow() arrow.TimeUnit {
	switch u {
	case Second:
		return arrow.Second
	case Millisecond:
		return arrow.Millisecond
	case Microsecond:
		return arrow.Microsecond
	default:
		return arrow.Nanosecond
	}
}

// IntervalUnit distinguishes the three interval representations: year-month,
// day-time, and month-day-nanosecond.
type IntervalUnit int

const (
	IntervalYearMonth IntervalUnit = iota
	IntervalDayTime
	IntervalMonthDayNano
)

// Field is a named, typed, nullable slot — the building block of Schema and
// of List/Struct element typing.
type Field struct {
	Name     string
	Type     Type
	Nullable bool
}

// Type is the logical data type value. Most Kinds need no parameters;
// Decimal128, Timestamp, Interval, List, Struct and Dictionary carry extra
// fields, all zero-valued when irrelevant to the Kind.
type Type struct {
	Kind Kind

	// Decimal128
	Precision int32
	Scale     int32

	// Timestamp
	Unit TimeUnit
	Zone string // "" means no zone attached

	// Interval
	IntervalU IntervalUnit

	// List
	Elem *Type

	// Struct
	Fields []Field

	// Dictionary
	Key   *Type
	Value *Type
}

func simple(k Kind) Type { return Type{Kind: k} }

func Null() Type       { return simple(KindNull) }
func Bool() Type       { return simple(KindBool) }
func Int8() Type       { return simple(KindInt8) }
func Int16() Type      { return simple(KindInt16) }
func Int32() Type      { return simple(KindInt32) }
func Int64() Type      { return simple(KindInt64) }
func Uint8() Type      { return simple(KindUint8) }
func Uint16() Type     { return simple(KindUint16) }
func Uint32() Type     { return simple(KindUint32) }
func Uint64() Type     { return simple(KindUint64) }
func Float32() Type    { return simple(KindFloat32) }
func Float64() Type    { return simple(KindFloat64) }
func Utf8() Type       { return simple(KindUtf8) }
func LargeUtf8() Type  { return simple(KindLargeUtf8) }
func Binary() Type     { return simple(KindBinary) }
func LargeBinary() Type{ return simple(KindLargeBinary) }
func Date32() Type     { return simple(KindDate32) }
func Date64() Type     { return simple(KindDate64) }

// Decimal128 constructs a decimal type without validating bounds; use
// scalar.NewDecimal128 for value construction, which does validate
// precision/scale per spec.md §4.1.
func Decimal128(precision, scale int32) Type {
	return Type{Kind: KindDecimal128, Precision: precision, Scale: scale}
}

// Timestamp constructs a timestamp type, optionally zoned.
func Timestamp(unit TimeUnit, zone string) Type {
	return Type{Kind: KindTimestamp, Unit: unit, Zone: zone}
}

// Interval constructs an interval type of the given representation.
func Interval(unit IntervalUnit) Type {
	return Type{Kind: KindInterval, IntervalU: unit}
}

// List constructs a list type over the given element type.
func List(elem Type) Type {
	return Type{Kind: KindList, Elem: &elem}
}

// Struct constructs a struct type over the given ordered fields.
func Struct(fields []Field) Type {
	return Type{Kind: KindStruct, Fields: fields}
}

// Dictionary constructs a dictionary-encoded type.
func Dictionary(key, value Type) Type {
	return Type{Kind: KindDictionary, Key: &key, Value: &value}
}

// Equal reports whether two logical types are structurally identical,
// including nested element/field types and decimal precision/scale.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindDecimal128:
		return t.Precision == o.Precision && t.Scale == o.Scale
	case KindTimestamp:
		return t.Unit == o.Unit && t.Zone == o.Zone
	case KindInterval:
		return t.IntervalU == o.IntervalU
	case KindList:
		return t.Elem.Equal(*o.Elem)
	case KindStruct:
		if len(t.Fields) != len(o.Fields) {
			return false
		}
		for i := range t.Fields {
			if t.Fields[i].Name != o.Fields[i].Name ||
				t.Fields[i].Nullable != o.Fields[i].Nullable ||
				!t.Fields[i].Type.Equal(o.Fields[i].Type) {
				return false
			}
		}
		return true
	case KindDictionary:
		return t.Key.Equal(*o.Key) && t.Value.Equal(*o.Value)
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.Kind {
	case KindDecimal128:
		return fmt.Sprintf("Decimal128(%d,%d)", t.Precision, t.Scale)
	case KindTimestamp:
		if t.Zone != "" {
			return fmt.Sprintf("Timestamp(%s,%s)", unitName(t.Unit), t.Zone)
		}
		return fmt.Sprintf("Timestamp(%s)", unitName(t.Unit))
	case KindInterval:
		return fmt.Sprintf("Interval(%s)", intervalName(t.IntervalU))
	case KindList:
		return fmt.Sprintf("List(%s)", t.Elem.String())
	case KindStruct:
		return fmt.Sprintf("Struct(%d fields)", len(t.Fields))
	case KindDictionary:
		return fmt.Sprintf("Dictionary(%s,%s)", t.Key.String(), t.Value.String())
	default:
		return t.Kind.String()
	}
}

func unitName(u TimeUnit) string {
	switch u {
	case Second:
		return "s"
	case Millisecond:
		return "ms"
	case Microsecond:
		return "us"
	default:
		return "ns"
	}
}

func intervalName(u IntervalUnit) string {
	switch u {
	case IntervalYearMonth:
		return "YM"
	case IntervalDayTime:
		return "DT"
	default:
		return "MDN"
	}
}

// Arrow converts t to the external arrow type vocabulary. It is the
// implementer-supplied half of the "narrow adapter" spec.md §1 describes:
// only the vocabulary needed to drive array.Builder/array.Array is exposed
// here, never the runtime itself.
func (t Type) Arrow() (arrow.DataType, error) {
	switch t.Kind {
	case KindNull:
		return arrow.Null, nil
	case KindBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case KindInt8:
		return arrow.PrimitiveTypes.Int8, nil
	case KindInt16:
		return arrow.PrimitiveTypes.Int16, nil
	case KindInt32:
		return arrow.PrimitiveTypes.Int32, nil
	case KindInt64:
		return arrow.PrimitiveTypes.Int64, nil
	case KindUint8:
		return arrow.PrimitiveTypes.Uint8, nil
	case KindUint16:
		return arrow.PrimitiveTypes.Uint16, nil
	case KindUint32:
		return arrow.PrimitiveTypes.Uint32, nil
	case KindUint64:
		return arrow.PrimitiveTypes.Uint64, nil
	case KindFloat32:
		return arrow.PrimitiveTypes.Float32, nil
	case KindFloat64:
		return arrow.PrimitiveTypes.Float64, nil
	case KindDecimal128:
		return &arrow.Decimal128Type{Precision: t.Precision, Scale: t.Scale}, nil
	case KindUtf8:
		return arrow.BinaryTypes.String, nil
	case KindLargeUtf8:
		return arrow.BinaryTypes.LargeString, nil
	case KindBinary:
		return arrow.BinaryTypes.Binary, nil
	case KindLargeBinary:
		return arrow.BinaryTypes.LargeBinary, nil
	case KindDate32:
		return arrow.FixedWidthTypes.Date32, nil
	case KindDate64:
		return arrow.FixedWidthTypes.Date64, nil
	case KindTimestamp:
		return &arrow.TimestampType{Unit: t.Unit.arrow(), TimeZone: t.Zone}, nil
	case KindInterval:
		switch t.IntervalU {
		case IntervalYearMonth:
			return arrow.FixedWidthTypes.MonthInterval, nil
		case IntervalDayTime:
			return arrow.FixedWidthTypes.DayTimeInterval, nil
		default:
			return arrow.FixedWidthTypes.MonthDayNanoInterval, nil
		}
	case KindList:
		elemArrow, err := t.Elem.Arrow()
		if err != nil {
			return nil, err
		}
		return arrow.ListOf(elemArrow), nil
	case KindStruct:
		fields := make([]arrow.Field, len(t.Fields))
		for i, f := range t.Fields {
			af, err := f.Type.Arrow()
			if err != nil {
				return nil, err
			}
			fields[i] = arrow.Field{Name: f.Name, Type: af, Nullable: f.Nullable}
		}
		return arrow.StructOf(fields...), nil
	case KindDictionary:
		keyArrow, err := t.Key.Arrow()
		if err != nil {
			return nil, err
		}
		valArrow, err := t.Value.Arrow()
		if err != nil {
			return nil, err
		}
		return &arrow.DictionaryType{IndexType: keyArrow, ValueType: valArrow}, nil
	default:
		return nil, fmt.Errorf("types: unsupported kind %v", t.Kind)
	}
}

// FromArrow is the inverse of Arrow: it recovers the logical type that
// produced an arrow.DataType, for use when reading columnar arrays the
// scalar/arrowcol layer did not itself build (spec.md §6 from_array). A
// Dictionary arrow type resolves to the dictionary's *value* type, since a
// decoded Scalar carries the value's type, not Dictionary (spec.md §6:
// "Dictionary-encoded arrays are decoded to the dictionary value type").
func FromArrow(dt arrow.DataType) (Type, error) {
	switch at := dt.(type) {
	case *arrow.NullType:
		return Null(), nil
	case *arrow.BooleanType:
		return Bool(), nil
	case *arrow.Int8Type:
		return Int8(), nil
	case *arrow.Int16Type:
		return Int16(), nil
	case *arrow.Int32Type:
		return Int32(), nil
	case *arrow.Int64Type:
		return Int64(), nil
	case *arrow.Uint8Type:
		return Uint8(), nil
	case *arrow.Uint16Type:
		return Uint16(), nil
	case *arrow.Uint32Type:
		return Uint32(), nil
	case *arrow.Uint64Type:
		return Uint64(), nil
	case *arrow.Float32Type:
		return Float32(), nil
	case *arrow.Float64Type:
		return Float64(), nil
	case *arrow.Decimal128Type:
		return Decimal128(at.Precision, at.Scale), nil
	case *arrow.StringType:
		return Utf8(), nil
	case *arrow.LargeStringType:
		return LargeUtf8(), nil
	case *arrow.BinaryType:
		return Binary(), nil
	case *arrow.LargeBinaryType:
		return LargeBinary(), nil
	case *arrow.Date32Type:
		return Date32(), nil
	case *arrow.Date64Type:
		return Date64(), nil
	case *arrow.TimestampType:
		unit, err := fromArrowUnit(at.Unit)
		if err != nil {
			return Type{}, err
		}
		return Timestamp(unit, at.TimeZone), nil
	case *arrow.MonthIntervalType:
		return Interval(IntervalYearMonth), nil
	case *arrow.DayTimeIntervalType:
		return Interval(IntervalDayTime), nil
	case *arrow.MonthDayNanoIntervalType:
		return Interval(IntervalMonthDayNano), nil
	case *arrow.ListType:
		elem, err := FromArrow(at.Elem())
		if err != nil {
			return Type{}, err
		}
		return List(elem), nil
	case *arrow.LargeListType:
		elem, err := FromArrow(at.Elem())
		if err != nil {
			return Type{}, err
		}
		return List(elem), nil
	case *arrow.FixedSizeListType:
		elem, err := FromArrow(at.Elem())
		if err != nil {
			return Type{}, err
		}
		return List(elem), nil
	case *arrow.StructType:
		fields := make([]Field, at.NumFields())
		for i, f := range at.Fields() {
			ft, err := FromArrow(f.Type)
			if err != nil {
				return Type{}, err
			}
			fields[i] = Field{Name: f.Name, Type: ft, Nullable: f.Nullable}
		}
		return Struct(fields), nil
	case *arrow.DictionaryType:
		return FromArrow(at.ValueType)
	default:
		return Type{}, fmt.Errorf("types: unsupported arrow type %s", dt)
	}
}

func fromArrowUnit(u arrow.TimeUnit) (TimeUnit, error) {
	switch u {
	case arrow.Second:
		return Second, nil
	case arrow.Millisecond:
		return Millisecond, nil
	case arrow.Microsecond:
		return Microsecond, nil
	case arrow.Nanosecond:
		return Nanosecond, nil
	default:
		return 0, fmt.Errorf("types: unsupported arrow time unit %v", u)
	}
}
