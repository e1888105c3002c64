package planbuilder

import (
	"fmt"
	"sort"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/plan"
	"github.com/arrowplan/arrowplan/qerrors"
	"github.com/arrowplan/arrowplan/schema"
)

// Sort appends a Sort node, with back-propagation for sort keys that
// reference columns absent from the current schema but present further
// down the plan (spec.md §4.3.5) — typically a column an intervening
// Projection dropped.
func (b *Builder) Sort(sorts ...expr.SortExpr) (*Builder, error) {
	input := b.plan
	prepared := make([]expr.SortExpr, len(sorts))
	for i, s := range sorts {
		prepared[i] = expr.SortExpr{Expr: rewriteAggregateAlias(s.Expr, input), Asc: s.Asc, NullsFirst: s.NullsFirst}
	}

	missing := collectMissing(prepared, input)
	if len(missing) == 0 {
		norm, err := normalizeSorts(prepared, input)
		if err != nil {
			return nil, err
		}
		return with(&plan.Sort{Expr: norm, Input: input}), nil
	}

	widened, err := threadMissingColumns(input, missing)
	if err != nil {
		return nil, err
	}
	norm, err := normalizeSorts(prepared, widened)
	if err != nil {
		return nil, err
	}
	sortNode := &plan.Sort{Expr: norm, Input: widened}

	restoreExprs := make([]expr.Node, len(input.Schema().Fields))
	for i, f := range input.Schema().Fields {
		restoreExprs[i] = &expr.Column{Qualifier: f.Qualifier, Name: f.Field.Name}
	}
	return with(&plan.Projection{Expr: restoreExprs, Input: sortNode, Sch: input.Schema()}), nil
}

func normalizeSorts(sorts []expr.SortExpr, against plan.Plan) ([]expr.SortExpr, error) {
	out := make([]expr.SortExpr, len(sorts))
	for i, s := range sorts {
		n, err := columnize(s.Expr, against)
		if err != nil {
			return nil, err
		}
		out[i] = expr.SortExpr{Expr: n, Asc: s.Asc, NullsFirst: s.NullsFirst}
	}
	return out, nil
}

// rewriteAggregateAlias implements step 1 of spec.md §4.3.5: a bare,
// unqualified Column matching one of input's Aggregate output aliases is
// rewritten to that alias's underlying expression (e.g. `ORDER BY
// total_salary` resolves through the alias to `SUM(salary)` directly,
// ahead of the general missing-column search below).
func rewriteAggregateAlias(e expr.Node, input plan.Plan) expr.Node {
	col, ok := e.(*expr.Column)
	if !ok || col.Qualifier != nil {
		return e
	}
	agg, ok := input.(*plan.Aggregate)
	if !ok {
		return e
	}
	for _, a := range agg.AggrExpr {
		if alias, ok := a.(*expr.Alias); ok && alias.Name == col.Name {
			return alias.Expr
		}
	}
	return e
}

// collectMissing returns, in a deterministic order, every Column
// referenced by sorts that does not resolve against input's current
// schema.
func collectMissing(sorts []expr.SortExpr, input plan.Plan) []*expr.Column {
	seen := make(map[expr.Column]struct{})
	var out []*expr.Column
	for _, s := range sorts {
		for c := range expr.ColumnsReferenced(s.Expr) {
			if _, err := input.Schema().Resolve(c.Qualifier, c.Name, input.UsingColumns()); err == nil {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			cc := c
			out = append(out, &cc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// threadMissingColumns walks down p's single-input chain looking for the
// lowest Projection whose input schema already contains every column in
// missing, widens that Projection to include them, and rebuilds every
// intervening passthrough node with the widened subtree as its new input
// (spec.md §4.3.5 steps 3-4). A node whose schema is not a pure function
// of its input (Aggregate, Window, Join, a leaf, ...) blocks the search:
// back-propagating through it would expose a column its own semantics
// already discarded.
func threadMissingColumns(p plan.Plan, missing []*expr.Column) (plan.Plan, error) {
	switch n := p.(type) {
	case *plan.Projection:
		if allResolve(n.Input.Schema(), missing) {
			return widenProjection(n, n.Input, missing)
		}
		child, err := threadMissingColumns(n.Input, missing)
		if err != nil {
			return nil, err
		}
		return widenProjection(n, child, missing)
	case *plan.Filter:
		child, err := threadMissingColumns(n.Input, missing)
		if err != nil {
			return nil, err
		}
		return &plan.Filter{Predicate: n.Predicate, Input: child}, nil
	case *plan.Limit:
		child, err := threadMissingColumns(n.Input, missing)
		if err != nil {
			return nil, err
		}
		return &plan.Limit{N: n.N, Input: child}, nil
	case *plan.Repartition:
		child, err := threadMissingColumns(n.Input, missing)
		if err != nil {
			return nil, err
		}
		return &plan.Repartition{Input: child, Scheme: n.Scheme}, nil
	case *plan.SubqueryAlias:
		child, err := threadMissingColumns(n.Input, missing)
		if err != nil {
			return nil, err
		}
		return &plan.SubqueryAlias{Input: child, Alias: n.Alias, Sch: child.Schema().Replace(n.Alias)}, nil
	default:
		return nil, fmt.Errorf("%w: %s", qerrors.ErrUnresolvedSortColumn, missingNames(missing))
	}
}

func allResolve(s schema.QSchema, missing []*expr.Column) bool {
	for _, c := range missing {
		if _, err := s.Resolve(c.Qualifier, c.Name, nil); err != nil {
			return false
		}
	}
	return true
}

func widenProjection(n *plan.Projection, newInput plan.Plan, missing []*expr.Column) (*plan.Projection, error) {
	newExprs := append([]expr.Node(nil), n.Expr...)
	newFields := append([]schema.QField(nil), n.Sch.Fields...)
	for _, c := range missing {
		if _, err := schema.QSchema{Fields: newFields}.Resolve(c.Qualifier, c.Name, nil); err == nil {
			continue
		}
		f, err := newInput.Schema().Resolve(c.Qualifier, c.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", qerrors.ErrUnresolvedSortColumn, c)
		}
		newExprs = append(newExprs, &expr.Column{Qualifier: f.Qualifier, Name: f.Field.Name})
		newFields = append(newFields, f)
	}
	return &plan.Projection{Expr: newExprs, Input: newInput, Sch: schema.QSchema{Fields: newFields}, Alias: n.Alias}, nil
}

func missingNames(missing []*expr.Column) string {
	s := ""
	for i, c := range missing {
		if i > 0 {
			s += ", "
		}
		s += c.String()
	}
	return s
}
