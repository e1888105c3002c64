package planbuilder

import (
	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/plan"
	"github.com/arrowplan/arrowplan/schema"
	"golang.org/x/exp/slices"
)

// Aggregate appends an Aggregate node (spec.md §4.3.7): groupExpr and
// aggrExpr are normalized against b's plan, and the output schema is
// groupExpr's fields followed by aggrExpr's fields, matching
// Aggregate.Expressions()'s group-then-aggregate concatenation so a later
// rewrite can split the two back apart by len(GroupExpr).
func (b *Builder) Aggregate(groupExpr, aggrExpr []expr.Node) (*Builder, error) {
	input := b.plan
	group, err := columnizeAll(groupExpr, input)
	if err != nil {
		return nil, err
	}
	aggr, err := columnizeAll(aggrExpr, input)
	if err != nil {
		return nil, err
	}
	fields := make([]schema.QField, 0, len(group)+len(aggr))
	for _, e := range group {
		f, err := projectionField(e, input.Schema())
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	for _, e := range aggr {
		f, err := projectionField(e, input.Schema())
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	sch := schema.QSchema{Fields: fields}
	if err := schema.CheckUniqueNames(sch); err != nil {
		return nil, err
	}
	return with(&plan.Aggregate{Input: input, GroupExpr: group, AggrExpr: aggr, Sch: sch}), nil
}

// Window appends a Window node (spec.md §4.3.7): windowExpr is normalized
// against b's plan and its fields are appended to the input's own schema,
// since window functions add computed columns alongside every input row
// rather than collapsing rows the way Aggregate does.
func (b *Builder) Window(windowExpr []expr.Node) (*Builder, error) {
	input := b.plan
	win, err := columnizeAll(windowExpr, input)
	if err != nil {
		return nil, err
	}
	fields := slices.Clone(input.Schema().Fields)
	for _, e := range win {
		f, err := projectionField(e, input.Schema())
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	sch := schema.QSchema{Fields: fields}
	if err := schema.CheckUniqueNames(sch); err != nil {
		return nil, err
	}
	return with(&plan.Window{Input: input, WindowExpr: win, Sch: sch}), nil
}

// WindowPlan splits a flat list of window expressions into one or more
// Window nodes, each holding the expressions that share an identical
// (PartitionBy, OrderBy) pair, and nests them deepest-first: the group with
// the most sort keys becomes the innermost Window, since a later group can
// reuse an already-sorted input but an earlier, coarser sort cannot reuse a
// finer one (spec.md §4.3.11).
func (b *Builder) WindowPlan(windowExpr []expr.Node) (*Builder, error) {
	input := b.plan
	win, err := columnizeAll(windowExpr, input)
	if err != nil {
		return nil, err
	}
	groups := groupWindowExprs(win)
	cur := with(input)
	for _, g := range groups {
		cur, err = cur.Window(g)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func groupWindowExprs(exprs []expr.Node) [][]expr.Node {
	type group struct {
		key   string
		exprs []expr.Node
		sorts int
	}
	var groups []*group
	index := make(map[string]*group)
	for _, e := range exprs {
		wf, ok := unwrapAlias(e).(*expr.WindowFunction)
		key := ""
		sorts := 0
		if ok {
			key = windowGroupKey(wf)
			sorts = len(wf.OrderBy)
		}
		g, found := index[key]
		if !found {
			g = &group{key: key, sorts: sorts}
			index[key] = g
			groups = append(groups, g)
		}
		g.exprs = append(g.exprs, e)
	}
	// Stable sort, deepest (most sort keys) first, so finer-grained windows
	// nest as children of coarser ones.
	for i := 1; i < len(groups); i++ {
		for j := i; j > 0 && groups[j].sorts > groups[j-1].sorts; j-- {
			groups[j], groups[j-1] = groups[j-1], groups[j]
		}
	}
	out := make([][]expr.Node, len(groups))
	for i, g := range groups {
		out[i] = g.exprs
	}
	return out
}

func unwrapAlias(e expr.Node) expr.Node {
	if a, ok := e.(*expr.Alias); ok {
		return a.Expr
	}
	return e
}

func windowGroupKey(wf *expr.WindowFunction) string {
	s := "partition:"
	for _, p := range wf.PartitionBy {
		s += p.String() + ","
	}
	s += "|order:"
	for _, o := range wf.OrderBy {
		s += o.String() + ","
	}
	return s
}
