// Package arrowcol is the Column Array Adapter (spec.md §2.3): the thin,
// one-directional interface the scalar package uses to construct and read
// columnar arrays. It wraps github.com/apache/arrow-go/v18/arrow/array
// builders and never imports the scalar package back — scalar depends on
// arrowcol, not the reverse, matching the teacher lineage's ion/expr
// layering (expr depends on ion.Datum, never vice versa).
package arrowcol

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arrowplan/arrowplan/qerrors"
	"github.com/arrowplan/arrowplan/types"
)

// Allocator is the shared allocator used by every builder this package
// constructs. Tests and callers may override it; production code gets the
// default Go-heap allocator, matching arrow-go's own recommended default.
var Allocator memory.Allocator = memory.NewGoAllocator()

// NewBuilder returns the array.Builder appropriate for t's Kind. arrow-go's
// generic array.NewBuilder already dispatches on the arrow.DataType ID for
// nested (List, Struct, Dictionary) types, so no per-Kind special-casing is
// needed here.
func NewBuilder(t types.Type) (array.Builder, error) {
	at, err := t.Arrow()
	if err != nil {
		return nil, err
	}
	return array.NewBuilder(Allocator, at), nil
}

// NewNullArray builds an all-null array of length n with logical type t
// (spec.md §2.3 new_null(type, n)).
func NewNullArray(t types.Type, n int) (arrow.Array, error) {
	b, err := NewBuilder(t)
	if err != nil {
		return nil, err
	}
	defer b.Release()
	b.AppendNulls(n)
	return b.NewArray(), nil
}

// ListChild returns the child array backing a single list element at row i
// of a (large) list array, resolved through the adapter so the scalar
// package never imports array.List/array.LargeList directly.
func ListChild(a arrow.Array, i int) (arrow.Array, error) {
	switch l := a.(type) {
	case *array.List:
		start, end := l.ValueOffsets(i)
		return array.NewSlice(l.ListValues(), start, end), nil
	case *array.LargeList:
		start, end := l.ValueOffsets(i)
		return array.NewSlice(l.ListValues(), start, end), nil
	case *array.FixedSizeList:
		start, end := l.ValueOffsets(i)
		return array.NewSlice(l.ListValues(), start, end), nil
	default:
		return nil, AdapterError(fmt.Errorf("ListChild: not a list array: %T", a))
	}
}

// StructColumn returns the i-th field array of a struct array.
func StructColumn(a arrow.Array, i int) (arrow.Array, error) {
	s, ok := a.(*array.Struct)
	if !ok {
		return nil, AdapterError(fmt.Errorf("StructColumn: not a struct array: %T", a))
	}
	return s.Field(i), nil
}

// DictionaryParts returns the key index array and the decoded value array
// underlying a dictionary-encoded array.
func DictionaryParts(a arrow.Array) (keys *array.Int32, dict arrow.Array, err error) {
	d, ok := a.(*array.Dictionary)
	if !ok {
		return nil, nil, AdapterError(fmt.Errorf("DictionaryParts: not a dictionary array: %T", a))
	}
	ik, ok := d.Indices().(*array.Int32)
	if !ok {
		return nil, nil, AdapterError(fmt.Errorf("DictionaryParts: unsupported index type %T", d.Indices()))
	}
	return ik, d.Dictionary(), nil
}

// AdapterError wraps an error surfaced while building or reading an array,
// per spec.md §7 AdapterError(inner).
func AdapterError(inner error) error {
	return fmt.Errorf("%w: %v", qerrors.ErrAdapter, inner)
}
