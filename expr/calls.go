package expr

import (
	"fmt"
	"strings"

	"github.com/arrowplan/arrowplan/types"
)

// Call is a scalar function or UDF invocation. Typ is the call's static
// return type, supplied by the builder at construction time since this
// package carries no function-signature registry (expression evaluation is
// out of scope; only the type that registry would have produced is kept).
type Call struct {
	Func     string
	Args     []Node
	Distinct bool
	Typ      types.Type
}

func (c *Call) String() string {
	d := ""
	if c.Distinct {
		d = "DISTINCT "
	}
	return fmt.Sprintf("%s(%s%s)", c.Func, d, joinNodes(c.Args))
}
func (c *Call) Children() []Node { return c.Args }
func (c *Call) WithNewChildren(children []Node) (Node, error) {
	return &Call{Func: c.Func, Args: children, Distinct: c.Distinct, Typ: c.Typ}, nil
}
func (c *Call) walk(v Visitor) { walkAll(v, c.Args) }
func (c *Call) rewrite(r Rewriter) Node {
	c.Args = rewriteAll(r, c.Args)
	return c
}

// AggregateFunction is an aggregate invocation (SUM, COUNT, ...), optionally
// filtered by a boolean expression (SQL FILTER (WHERE ...)). Typ is its
// static return type (see Call's doc comment).
type AggregateFunction struct {
	Func     string
	Args     []Node
	Distinct bool
	Filter   Node // nil if unfiltered
	Typ      types.Type
}

func (a *AggregateFunction) String() string {
	d := ""
	if a.Distinct {
		d = "DISTINCT "
	}
	s := fmt.Sprintf("%s(%s%s)", a.Func, d, joinNodes(a.Args))
	if a.Filter != nil {
		s += fmt.Sprintf(" FILTER (WHERE %s)", a.Filter)
	}
	return s
}
func (a *AggregateFunction) Children() []Node {
	children := append([]Node(nil), a.Args...)
	if a.Filter != nil {
		children = append(children, a.Filter)
	}
	return children
}
func (a *AggregateFunction) WithNewChildren(children []Node) (Node, error) {
	n := len(a.Args)
	if a.Filter != nil {
		if len(children) != n+1 {
			return nil, fmt.Errorf("expr: AggregateFunction takes %d children, got %d", n+1, len(children))
		}
		return &AggregateFunction{Func: a.Func, Args: children[:n], Distinct: a.Distinct, Filter: children[n], Typ: a.Typ}, nil
	}
	if len(children) != n {
		return nil, fmt.Errorf("expr: AggregateFunction takes %d children, got %d", n, len(children))
	}
	return &AggregateFunction{Func: a.Func, Args: children, Distinct: a.Distinct, Typ: a.Typ}, nil
}
func (a *AggregateFunction) walk(v Visitor) {
	walkAll(v, a.Args)
	if a.Filter != nil {
		Walk(v, a.Filter)
	}
}
func (a *AggregateFunction) rewrite(r Rewriter) Node {
	a.Args = rewriteAll(r, a.Args)
	if a.Filter != nil {
		a.Filter = Rewrite(r, a.Filter)
	}
	return a
}

// WindowFunction is a windowed aggregate or ranking call. Typ is its static
// return type (see Call's doc comment).
type WindowFunction struct {
	Func        string
	Args        []Node
	PartitionBy []Node
	OrderBy     []SortExpr
	Typ         types.Type
}

func (w *WindowFunction) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%s) OVER (", w.Func, joinNodes(w.Args))
	wrote := false
	if len(w.PartitionBy) > 0 {
		fmt.Fprintf(&b, "PARTITION BY %s", joinNodes(w.PartitionBy))
		wrote = true
	}
	if len(w.OrderBy) > 0 {
		if wrote {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "ORDER BY %s", joinSortExprs(w.OrderBy))
	}
	b.WriteByte(')')
	return b.String()
}
func (w *WindowFunction) Children() []Node {
	children := append([]Node(nil), w.Args...)
	children = append(children, w.PartitionBy...)
	for _, s := range w.OrderBy {
		children = append(children, s.Expr)
	}
	return children
}
func (w *WindowFunction) WithNewChildren(children []Node) (Node, error) {
	na, np, no := len(w.Args), len(w.PartitionBy), len(w.OrderBy)
	if len(children) != na+np+no {
		return nil, fmt.Errorf("expr: WindowFunction takes %d children, got %d", na+np+no, len(children))
	}
	out := &WindowFunction{
		Func:        w.Func,
		Args:        children[:na],
		PartitionBy: children[na : na+np],
		OrderBy:     make([]SortExpr, no),
		Typ:         w.Typ,
	}
	for i, s := range w.OrderBy {
		out.OrderBy[i] = SortExpr{Expr: children[na+np+i], Asc: s.Asc, NullsFirst: s.NullsFirst}
	}
	return out, nil
}
func (w *WindowFunction) walk(v Visitor) {
	walkAll(v, w.Args)
	walkAll(v, w.PartitionBy)
	for _, s := range w.OrderBy {
		Walk(v, s.Expr)
	}
}
func (w *WindowFunction) rewrite(r Rewriter) Node {
	w.Args = rewriteAll(r, w.Args)
	w.PartitionBy = rewriteAll(r, w.PartitionBy)
	for i := range w.OrderBy {
		w.OrderBy[i].Expr = Rewrite(r, w.OrderBy[i].Expr)
	}
	return w
}

func joinNodes(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}

func joinSortExprs(sorts []SortExpr) string {
	parts := make([]string, len(sorts))
	for i, s := range sorts {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

func walkAll(v Visitor, nodes []Node) {
	for _, n := range nodes {
		Walk(v, n)
	}
}

func rewriteAll(r Rewriter, nodes []Node) []Node {
	for i, n := range nodes {
		nodes[i] = Rewrite(r, n)
	}
	return nodes
}
