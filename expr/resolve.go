package expr

import (
	"fmt"

	"github.com/arrowplan/arrowplan/qerrors"
	"github.com/arrowplan/arrowplan/schema"
	"github.com/arrowplan/arrowplan/types"
)

// SchemaSource is the surface the plan layer exposes for name resolution
// (spec.md §4.2 normalize_against). It is satisfied structurally by
// plan.Plan, so this package never imports package plan.
type SchemaSource interface {
	AllSchemas() []schema.QSchema
	UsingColumns() map[string]struct{}
}

// staticSchema adapts a single QSchema into a SchemaSource, for callers
// (NameIn, TypeIn) that only have a schema, not a full plan, in hand.
type staticSchema struct{ s schema.QSchema }

func (s staticSchema) AllSchemas() []schema.QSchema     { return []schema.QSchema{s.s} }
func (s staticSchema) UsingColumns() map[string]struct{} { return nil }

// NameIn returns the deterministic canonical name of n once bare column
// references are qualified against s (spec.md §4.2 name_in), e.g. "#t.c" or
// "SUM(#t.c) AS total".
func NameIn(n Node, s schema.QSchema) (string, error) {
	norm, err := NormalizeAgainst(n, staticSchema{s})
	if err != nil {
		return "", err
	}
	return norm.String(), nil
}

// ColumnsReferenced returns the set of Column leaves n depends on, used by
// the plan builder's sort back-propagation (spec.md §4.2, §4.3.5).
func ColumnsReferenced(n Node) map[Column]struct{} {
	out := make(map[Column]struct{})
	var collect func(Node)
	collect = func(n Node) {
		if n == nil {
			return
		}
		if c, ok := n.(*Column); ok {
			out[*c] = struct{}{}
			return
		}
		for _, child := range n.Children() {
			collect(child)
		}
	}
	collect(n)
	return out
}

// NormalizeAgainst rewrites every bare Column in n to a fully qualified one
// using src's visible schemas, resolving ambiguity via src.UsingColumns()
// (spec.md §4.2). Wildcard/QualifiedWildcard are left untouched — expansion
// is the builder's job (spec.md §4.3.3), not normalization's.
func NormalizeAgainst(n Node, src SchemaSource) (Node, error) {
	if n == nil {
		return nil, nil
	}
	switch c := n.(type) {
	case *Column:
		if c.Qualifier != nil {
			return c, nil
		}
		combined := schema.Empty()
		for _, s := range src.AllSchemas() {
			combined = combined.Append(s)
		}
		f, err := combined.Resolve(nil, c.Name, src.UsingColumns())
		if err != nil {
			return nil, err
		}
		return &Column{Qualifier: f.Qualifier, Name: f.Field.Name}, nil
	default:
		children := n.Children()
		if len(children) == 0 {
			return n, nil
		}
		newChildren := make([]Node, len(children))
		for i, child := range children {
			nc, err := NormalizeAgainst(child, src)
			if err != nil {
				return nil, err
			}
			newChildren[i] = nc
		}
		return n.WithNewChildren(newChildren)
	}
}

// TypeIn infers n's static type against schema s (spec.md §4.2 type_in).
func TypeIn(n Node, s schema.QSchema) (types.Type, error) {
	switch e := n.(type) {
	case *Column:
		f, err := s.Resolve(e.Qualifier, e.Name, nil)
		if err != nil {
			return types.Type{}, err
		}
		return f.Field.Type, nil
	case *Literal:
		return e.Value.Type(), nil
	case *ScalarVariable:
		return e.Typ, nil
	case *BinaryExpr:
		return typeInBinary(e, s)
	case *UnaryExpr:
		switch e.Op {
		case Not, IsNull, IsNotNull, IsTrue, IsFalse, IsUnknown:
			return types.Bool(), nil
		default:
			return TypeIn(e.Expr, s)
		}
	case *Between:
		return types.Bool(), nil
	case *InList:
		return types.Bool(), nil
	case *InSubquery:
		return types.Bool(), nil
	case *Exists:
		return types.Bool(), nil
	case *ScalarSubquery:
		fields := e.Subquery.Schema().Fields
		if len(fields) != 1 {
			return types.Type{}, fmt.Errorf("%w: scalar subquery must produce exactly one column", qerrors.ErrTypeMismatch)
		}
		return fields[0].Field.Type, nil
	case *Case:
		if len(e.WhenThen) == 0 {
			return types.Type{}, fmt.Errorf("%w: CASE with no WHEN clauses", qerrors.ErrTypeMismatch)
		}
		return TypeIn(e.WhenThen[0][1], s)
	case *Alias:
		return TypeIn(e.Expr, s)
	case *Cast:
		return e.Typ, nil
	case *Call:
		return e.Typ, nil
	case *AggregateFunction:
		return e.Typ, nil
	case *WindowFunction:
		return e.Typ, nil
	case *GetIndexedField:
		return typeInIndexed(e, s)
	case Wildcard, QualifiedWildcard:
		return types.Type{}, fmt.Errorf("%w: wildcard has no single type", qerrors.ErrTypeMismatch)
	default:
		return types.Type{}, fmt.Errorf("%w: unsupported node %T", qerrors.ErrUnsupported, n)
	}
}

func typeInBinary(b *BinaryExpr, s schema.QSchema) (types.Type, error) {
	switch b.Op {
	case Eq, NotEq, Lt, LtEq, Gt, GtEq, IsDistinctFrom, IsNotDistinctFrom, And, Or, Like, NotLike:
		return types.Bool(), nil
	default:
		lt, err := TypeIn(b.Left, s)
		if err != nil {
			return types.Type{}, err
		}
		rt, err := TypeIn(b.Right, s)
		if err != nil {
			return types.Type{}, err
		}
		if !lt.Equal(rt) {
			return types.Type{}, fmt.Errorf("%w: %s %s %s", qerrors.ErrTypeMismatch, lt, b.Op, rt)
		}
		return lt, nil
	}
}

func typeInIndexed(g *GetIndexedField, s schema.QSchema) (types.Type, error) {
	baseType, err := TypeIn(g.Expr, s)
	if err != nil {
		return types.Type{}, err
	}
	lit, ok := g.Key.(*Literal)
	if !ok {
		return types.Type{}, fmt.Errorf("%w: indexed field key must be a literal", qerrors.ErrTypeMismatch)
	}
	switch baseType.Kind {
	case types.KindStruct:
		key := lit.Value.String()
		for _, f := range baseType.Fields {
			if f.Name == key {
				return f.Type, nil
			}
		}
		return types.Type{}, fmt.Errorf("%w: field %q", qerrors.ErrFieldNotFound, key)
	case types.KindList:
		return *baseType.Elem, nil
	default:
		return types.Type{}, fmt.Errorf("%w: cannot index %s", qerrors.ErrTypeMismatch, baseType)
	}
}
