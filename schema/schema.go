// Package schema defines the Field/Schema vocabulary (spec.md §2.4) shared by
// expressions and logical plan nodes, including the qualified variants used
// for name resolution across join inputs.
package schema

import (
	"fmt"
	"strings"

	"github.com/arrowplan/arrowplan/qerrors"
	"github.com/arrowplan/arrowplan/types"
)

// Field is a name/type/nullable triple, analogous to an arrow.Field but
// expressed in the logical type catalog.
type Field struct {
	Name     string
	Type     types.Type
	Nullable bool
}

// Schema is an ordered list of fields plus free-form metadata.
type Schema struct {
	Fields   []Field
	Metadata map[string]string
}

// Qualifier names the table or alias a field is scoped to. A nil Qualifier
// means the field is unqualified (as produced by, e.g., a Values relation).
type Qualifier struct {
	Name string
}

func Qualify(name string) *Qualifier {
	if name == "" {
		return nil
	}
	return &Qualifier{Name: name}
}

func (q *Qualifier) String() string {
	if q == nil {
		return ""
	}
	return q.Name
}

func (q *Qualifier) Equal(o *Qualifier) bool {
	if q == nil || o == nil {
		return q == o
	}
	return q.Name == o.Name
}

// QField is a Field scoped to an optional Qualifier — the unit QSchema is
// built from.
type QField struct {
	Qualifier *Qualifier
	Field     Field
}

// Name returns "qualifier.name" when qualified, else the bare field name.
func (f QField) Name() string {
	if f.Qualifier == nil {
		return f.Field.Name
	}
	return f.Qualifier.Name + "." + f.Field.Name
}

// QSchema is the ordered list of qualified fields produced by a plan node.
type QSchema struct {
	Fields []QField
}

// Empty returns a QSchema with no fields.
func Empty() QSchema { return QSchema{} }

// FromUnqualified wraps an unqualified Schema into a QSchema with no
// qualifier on any field.
func FromUnqualified(s Schema) QSchema {
	out := make([]QField, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = QField{Field: f}
	}
	return QSchema{Fields: out}
}

// Qualified wraps every field of s with the given qualifier.
func Qualified(qualifier string, s Schema) QSchema {
	q := Qualify(qualifier)
	out := make([]QField, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = QField{Qualifier: q, Field: f}
	}
	return QSchema{Fields: out}
}

// Unqualify drops qualifiers, returning the bare Schema (used by
// planbuilder's Union for its unqualified output schema).
func (s QSchema) Unqualify() Schema {
	out := make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Field
	}
	return Schema{Fields: out}
}

// Append returns the concatenation of s and o (used for Join/CrossJoin schema
// construction, spec.md P5).
func (s QSchema) Append(o QSchema) QSchema {
	out := make([]QField, 0, len(s.Fields)+len(o.Fields))
	out = append(out, s.Fields...)
	out = append(out, o.Fields...)
	return QSchema{Fields: out}
}

// FieldByQualifiedName resolves a (qualifier, name) pair exactly; qualifier
// may be nil to mean "unqualified name as given".
func (s QSchema) FieldByQualifiedName(qualifier *Qualifier, name string) (QField, int, bool) {
	for i, f := range s.Fields {
		if f.Field.Name == name && f.Qualifier.Equal(qualifier) {
			return f, i, true
		}
	}
	return QField{}, -1, false
}

// Resolve resolves a bare column name against the schema. If qualifier is
// non-nil it must match exactly (FieldNotFound otherwise). If qualifier is
// nil and more than one field shares name, the reference is ambiguous unless
// using restricts candidates to the one usable join side (spec.md §4.2
// normalize_against / "using_columns").
func (s QSchema) Resolve(qualifier *Qualifier, name string, using map[string]struct{}) (QField, error) {
	if qualifier != nil {
		f, _, ok := s.FieldByQualifiedName(qualifier, name)
		if !ok {
			return QField{}, fmt.Errorf("%w: %s.%s", qerrors.ErrFieldNotFound, qualifier.Name, name)
		}
		return f, nil
	}
	var matches []QField
	for _, f := range s.Fields {
		if f.Field.Name == name {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 0:
		return QField{}, fmt.Errorf("%w: %s", qerrors.ErrFieldNotFound, name)
	case 1:
		return matches[0], nil
	default:
		if _, ok := using[name]; ok {
			return matches[0], nil
		}
		return QField{}, fmt.Errorf("%w: %s", qerrors.ErrAmbiguousReference, name)
	}
}

// CheckUniqueNames enforces invariant P2: within a single Projection,
// Aggregate or Window, all output field names (qualifier+name) must be
// distinct.
func CheckUniqueNames(s QSchema) error {
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		key := f.Name()
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s", qerrors.ErrDuplicateOutputName, key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Replace returns a copy of s with every field's qualifier set to alias.
func (s QSchema) Replace(alias string) QSchema {
	q := Qualify(alias)
	out := make([]QField, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = QField{Qualifier: q, Field: f.Field}
	}
	return QSchema{Fields: out}
}

// String returns every field's qualified display name, joined with ", ".
func (s QSchema) String() string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name()
	}
	return strings.Join(names, ", ")
}

// ArrowCompatible reports whether s and o have the same arity and pairwise
// "compatible" element types, used by Union's schema check (spec.md P4).
// Two types are compatible when they are Equal or are both numeric kinds
// (allowing integer/float unions, the way arrow's common-supertype cast
// would widen them at execution time — which is out of scope here).
func (s QSchema) ArrowCompatible(o QSchema) bool {
	if len(s.Fields) != len(o.Fields) {
		return false
	}
	for i := range s.Fields {
		if !compatible(s.Fields[i].Field.Type, o.Fields[i].Field.Type) {
			return false
		}
	}
	return true
}

func compatible(a, b types.Type) bool {
	if a.Equal(b) {
		return true
	}
	return numeric(a.Kind) && numeric(b.Kind)
}

func numeric(k types.Kind) bool {
	switch k {
	case types.KindInt8, types.KindInt16, types.KindInt32, types.KindInt64,
		types.KindUint8, types.KindUint16, types.KindUint32, types.KindUint64,
		types.KindFloat32, types.KindFloat64, types.KindDecimal128:
		return true
	default:
		return false
	}
}
