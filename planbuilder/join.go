package planbuilder

import (
	"fmt"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/plan"
	"github.com/arrowplan/arrowplan/qerrors"
	"github.com/arrowplan/arrowplan/schema"
)

// Join is JoinDetailed with null_equals_null false (spec.md §4.3.6).
func (b *Builder) Join(right *Builder, joinType plan.JoinType, leftKeys, rightKeys []expr.Node) (*Builder, error) {
	return b.JoinDetailed(right, joinType, leftKeys, rightKeys, false)
}

// JoinDetailed builds an equi-join on the parallel key lists leftKeys/
// rightKeys (equal length, else JoinKeyArityMismatch). For each pair,
// key-side disambiguation resolves each key against both input schemas and
// assigns it to whichever side it actually belongs to, swapping as needed
// (spec.md §4.3.6) — this single mechanism covers all four cases the spec
// lists (both qualified, one qualified, neither qualified, unresolved)
// because resolution always tries the key's own qualifier (if any) against
// both sides and falls back to a bare-name search otherwise.
func (b *Builder) JoinDetailed(right *Builder, joinType plan.JoinType, leftKeys, rightKeys []expr.Node, nullEqualsNull bool) (*Builder, error) {
	if len(leftKeys) != len(rightKeys) {
		return nil, fmt.Errorf("%w: %d left keys, %d right keys", qerrors.ErrJoinKeyArityMismatch, len(leftKeys), len(rightKeys))
	}
	left, rightPlan := b.plan, right.plan
	leftSch, rightSch := left.Schema(), rightPlan.Schema()
	on := make([][2]*expr.Column, len(leftKeys))
	for i := range leftKeys {
		pair, err := resolveJoinPair(leftKeys[i], rightKeys[i], leftSch, rightSch)
		if err != nil {
			return nil, err
		}
		on[i] = pair
	}
	sch, err := joinSchema(joinType, leftSch, rightSch)
	if err != nil {
		return nil, err
	}
	return with(&plan.Join{
		Left: left, Right: rightPlan, On: on, Type: joinType,
		Constraint: plan.On, Sch: sch, NullEqualsNull: nullEqualsNull,
	}), nil
}

// JoinUsing is a `JOIN ... USING (cols...)` join: each name in cols is
// resolved to whichever side it belongs to, exactly like JoinDetailed. The
// Join displays like an ON join, but its Using constraint makes it report
// cols from UsingColumns, so later unqualified references to them resolve.
func (b *Builder) JoinUsing(right *Builder, joinType plan.JoinType, cols []string) (*Builder, error) {
	leftKeys := make([]expr.Node, len(cols))
	rightKeys := make([]expr.Node, len(cols))
	for i, c := range cols {
		leftKeys[i] = &expr.Column{Name: c}
		rightKeys[i] = &expr.Column{Name: c}
	}
	built, err := b.JoinDetailed(right, joinType, leftKeys, rightKeys, false)
	if err != nil {
		return nil, err
	}
	j := built.plan.(*plan.Join)
	j.Constraint = plan.Using
	return with(j), nil
}

// CrossJoin is the unconditional cartesian product of b and right.
func (b *Builder) CrossJoin(right *Builder) (*Builder, error) {
	left, rightPlan := b.plan, right.plan
	return with(&plan.CrossJoin{Left: left, Right: rightPlan, Sch: left.Schema().Append(rightPlan.Schema())}), nil
}

func joinSchema(t plan.JoinType, left, right schema.QSchema) (schema.QSchema, error) {
	switch t {
	case plan.Inner, plan.Left, plan.Right, plan.Full:
		return left.Append(right), nil
	case plan.Semi, plan.Anti:
		return left, nil
	default:
		return schema.QSchema{}, fmt.Errorf("%w: unknown join type %d", qerrors.ErrInternal, t)
	}
}

// resolveJoinPair resolves l against leftSch and r against rightSch, each
// preferring its own side of the pair so a name present on both sides (the
// common USING/unqualified case) resolves to the side it was actually
// written on; a qualifier that only matches the opposite side still swaps
// the key over, exactly as before.
func resolveJoinPair(l, r expr.Node, leftSch, rightSch schema.QSchema) ([2]*expr.Column, error) {
	lc, lside, err := resolveJoinKey(l, leftSch, rightSch, 0)
	if err != nil {
		return [2]*expr.Column{}, err
	}
	rc, rside, err := resolveJoinKey(r, leftSch, rightSch, 1)
	if err != nil {
		return [2]*expr.Column{}, err
	}
	switch {
	case lside == 0 && rside == 1:
		return [2]*expr.Column{lc, rc}, nil
	case lside == 1 && rside == 0:
		return [2]*expr.Column{rc, lc}, nil
	default:
		return [2]*expr.Column{}, fmt.Errorf("%w: %s and %s resolve to the same side", qerrors.ErrJoinKeyNotFound, l, r)
	}
}

// resolveJoinKey returns key's resolved, fully-qualified Column and which
// side (0 = left, 1 = right) it belongs to. preferred is tried first (0 =
// leftSch, 1 = rightSch), so an unqualified or USING key written on a given
// side resolves to that side whenever the name exists there, rather than
// always landing on the left; a qualifier that only matches the other side
// still falls through to it.
func resolveJoinKey(key expr.Node, leftSch, rightSch schema.QSchema, preferred int) (*expr.Column, int, error) {
	c, ok := key.(*expr.Column)
	if !ok {
		return nil, 0, fmt.Errorf("%w: join key must be a column, got %T", qerrors.ErrJoinKeyNotFound, key)
	}
	schemas := [2]schema.QSchema{leftSch, rightSch}
	first, second := preferred, 1-preferred
	if f, err := schemas[first].Resolve(c.Qualifier, c.Name, nil); err == nil {
		return &expr.Column{Qualifier: f.Qualifier, Name: f.Field.Name}, first, nil
	}
	if f, err := schemas[second].Resolve(c.Qualifier, c.Name, nil); err == nil {
		return &expr.Column{Qualifier: f.Qualifier, Name: f.Field.Name}, second, nil
	}
	return nil, 0, fmt.Errorf("%w: %s", qerrors.ErrJoinKeyNotFound, c)
}
