package schema

import (
	"errors"
	"testing"

	"github.com/arrowplan/arrowplan/qerrors"
	"github.com/arrowplan/arrowplan/types"
)

func employee() QSchema {
	s := Schema{Fields: []Field{
		{Name: "id", Type: types.Int32()},
		{Name: "first_name", Type: types.Utf8()},
		{Name: "state", Type: types.Utf8()},
	}}
	return Qualified("employee_csv", s)
}

func TestResolveUnambiguous(t *testing.T) {
	s := employee()
	f, err := s.Resolve(nil, "state", nil)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name() != "employee_csv.state" {
		t.Errorf("got %s", f.Name())
	}
}

func TestResolveAmbiguous(t *testing.T) {
	left := employee()
	right := Qualified("other", Schema{Fields: []Field{{Name: "state", Type: types.Utf8()}}})
	both := left.Append(right)
	_, err := both.Resolve(nil, "state", nil)
	if !errors.Is(err, qerrors.ErrAmbiguousReference) {
		t.Fatalf("expected ambiguous reference, got %v", err)
	}
	// using_columns disambiguates.
	f, err := both.Resolve(nil, "state", map[string]struct{}{"state": {}})
	if err != nil {
		t.Fatal(err)
	}
	if f.Name() != "employee_csv.state" {
		t.Errorf("using should pick first match, got %s", f.Name())
	}
}

func TestResolveNotFound(t *testing.T) {
	s := employee()
	_, err := s.Resolve(nil, "salary", nil)
	if !errors.Is(err, qerrors.ErrFieldNotFound) {
		t.Fatalf("expected field not found, got %v", err)
	}
}

func TestCheckUniqueNames(t *testing.T) {
	dup := QSchema{Fields: []QField{
		{Field: Field{Name: "id"}},
		{Field: Field{Name: "id"}},
	}}
	if err := CheckUniqueNames(dup); !errors.Is(err, qerrors.ErrDuplicateOutputName) {
		t.Fatalf("expected duplicate output name, got %v", err)
	}
}

func TestArrowCompatible(t *testing.T) {
	a := Schema{Fields: []Field{{Name: "x", Type: types.Int32()}}}
	b := Schema{Fields: []Field{{Name: "y", Type: types.Int64()}}}
	if !FromUnqualified(a).ArrowCompatible(FromUnqualified(b)) {
		t.Error("int32/int64 should be compatible")
	}
	c := Schema{Fields: []Field{{Name: "z", Type: types.Utf8()}}}
	if FromUnqualified(a).ArrowCompatible(FromUnqualified(c)) {
		t.Error("int32/utf8 should not be compatible")
	}
}
