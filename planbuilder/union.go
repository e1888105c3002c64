package planbuilder

import (
	"fmt"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/plan"
	"github.com/arrowplan/arrowplan/qerrors"
	"github.com/arrowplan/arrowplan/schema"
)

// Union builds a Union over ins (spec.md §4.3.8): nested Unions are
// flattened into a single N-ary node, every input's schema must be
// ArrowCompatible (P4) with the first, and every input whose field names
// differ from the first input's is wrapped in a Projection that re-aliases
// its fields positionally to those names (inputs already named alike are
// kept as they are), so the Union's own output schema names come from one
// place.
func Union(ins ...*Builder) (*Builder, error) {
	if len(ins) == 0 {
		return nil, fmt.Errorf("%w", qerrors.ErrEmptyUnion)
	}
	var flat []plan.Plan
	for _, b := range ins {
		flat = append(flat, flattenUnion(b.plan)...)
	}
	out := flat[0].Schema()
	aligned := make([]plan.Plan, len(flat))
	for i, p := range flat {
		if !p.Schema().ArrowCompatible(out) {
			return nil, fmt.Errorf("%w: union input %d has schema %s, expected arity/types matching %s",
				qerrors.ErrSchemaIncompatible, i, p.Schema(), out)
		}
		aligned[i] = projectWithColumnIndexAlias(p, out)
	}
	return with(&plan.Union{Ins: aligned, Sch: schema.FromUnqualified(out.Unqualify())}), nil
}

func flattenUnion(p plan.Plan) []plan.Plan {
	if u, ok := p.(*plan.Union); ok {
		var out []plan.Plan
		for _, in := range u.Ins {
			out = append(out, flattenUnion(in)...)
		}
		return out
	}
	return []plan.Plan{p}
}

// projectWithColumnIndexAlias returns p unchanged when its field names
// already equal like's; otherwise it wraps p in a Projection whose fields
// are p's own columns by position but named after like's fields, so every
// Union input presents identical output names regardless of its own column
// naming.
func projectWithColumnIndexAlias(p plan.Plan, like schema.QSchema) plan.Plan {
	sch := p.Schema()
	exprs := make([]expr.Node, len(sch.Fields))
	fields := make([]schema.QField, len(sch.Fields))
	same := true
	for i, f := range sch.Fields {
		exprs[i] = &expr.Column{Qualifier: f.Qualifier, Name: f.Field.Name}
		name := like.Fields[i].Field.Name
		if name != f.Field.Name {
			same = false
		}
		fields[i] = schema.QField{Field: schema.Field{Name: name, Type: f.Field.Type, Nullable: f.Field.Nullable}}
	}
	if same {
		return p
	}
	return &plan.Projection{Expr: exprs, Input: p, Sch: schema.QSchema{Fields: fields}}
}

// Distinct is Aggregate(group=every column, aggr=none) followed by a
// wildcard Projection to restore the original column order and names
// (spec.md §4.3.9).
func (b *Builder) Distinct() (*Builder, error) {
	input := b.plan
	group := make([]expr.Node, len(input.Schema().Fields))
	for i, f := range input.Schema().Fields {
		group[i] = &expr.Column{Qualifier: f.Qualifier, Name: f.Field.Name}
	}
	agg, err := with(input).Aggregate(group, nil)
	if err != nil {
		return nil, err
	}
	return agg.Project(expr.Wildcard{})
}

// Intersect returns rows of b present in other, via a semi join on
// positional column equality with NullEqualsNull true (spec.md §4.3.10).
// When all is false, b is first made Distinct.
func (b *Builder) Intersect(other *Builder, all bool) (*Builder, error) {
	return b.setOp(other, plan.Semi, all)
}

// Except returns rows of b absent from other, via an anti join on
// positional column equality with NullEqualsNull true (spec.md §4.3.10).
// When all is false, b is first made Distinct.
func (b *Builder) Except(other *Builder, all bool) (*Builder, error) {
	return b.setOp(other, plan.Anti, all)
}

// setOp builds the semi/anti join directly, by position, rather than going
// through JoinDetailed's qualifier-based key-side disambiguation: left and
// right of a set operation are frequently two queries over the same
// underlying table, so their schemas can share identical qualifier+name
// pairs, which would make disambiguation by resolution alone ambiguous.
// Position is unambiguous and is exactly what P4's ArrowCompatible check
// already requires.
func (b *Builder) setOp(other *Builder, joinType plan.JoinType, all bool) (*Builder, error) {
	left := b
	if !all {
		d, err := left.Distinct()
		if err != nil {
			return nil, err
		}
		left = d
	}
	leftSch, rightSch := left.plan.Schema(), other.plan.Schema()
	if !leftSch.ArrowCompatible(rightSch) {
		return nil, fmt.Errorf("%w: %s vs %s", qerrors.ErrSchemaIncompatible, leftSch, rightSch)
	}
	on := make([][2]*expr.Column, len(leftSch.Fields))
	for i := range leftSch.Fields {
		lf, rf := leftSch.Fields[i], rightSch.Fields[i]
		on[i] = [2]*expr.Column{
			{Qualifier: lf.Qualifier, Name: lf.Field.Name},
			{Qualifier: rf.Qualifier, Name: rf.Field.Name},
		}
	}
	sch, err := joinSchema(joinType, leftSch, rightSch)
	if err != nil {
		return nil, err
	}
	return with(&plan.Join{
		Left: left.plan, Right: other.plan, On: on, Type: joinType,
		Constraint: plan.On, Sch: sch, NullEqualsNull: true,
	}), nil
}
