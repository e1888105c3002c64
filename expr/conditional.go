package expr

import (
	"fmt"
	"strings"

	"github.com/arrowplan/arrowplan/schema"
)

// Case is a CASE expression: optional base (`CASE x WHEN ...`), one or more
// WHEN/THEN pairs, and an optional ELSE.
type Case struct {
	Expr     Node // optional base; nil for searched CASE
	WhenThen [][2]Node
	Else     Node // optional; nil if absent
}

func (c *Case) String() string {
	var b strings.Builder
	b.WriteString("CASE")
	if c.Expr != nil {
		fmt.Fprintf(&b, " %s", c.Expr)
	}
	for _, wt := range c.WhenThen {
		fmt.Fprintf(&b, " WHEN %s THEN %s", wt[0], wt[1])
	}
	if c.Else != nil {
		fmt.Fprintf(&b, " ELSE %s", c.Else)
	}
	b.WriteString(" END")
	return b.String()
}
func (c *Case) Children() []Node {
	var children []Node
	if c.Expr != nil {
		children = append(children, c.Expr)
	}
	for _, wt := range c.WhenThen {
		children = append(children, wt[0], wt[1])
	}
	if c.Else != nil {
		children = append(children, c.Else)
	}
	return children
}
func (c *Case) WithNewChildren(children []Node) (Node, error) {
	want := len(c.WhenThen) * 2
	if c.Expr != nil {
		want++
	}
	if c.Else != nil {
		want++
	}
	if len(children) != want {
		return nil, fmt.Errorf("expr: Case takes %d children, got %d", want, len(children))
	}
	out := &Case{WhenThen: make([][2]Node, len(c.WhenThen))}
	i := 0
	if c.Expr != nil {
		out.Expr = children[i]
		i++
	}
	for j := range out.WhenThen {
		out.WhenThen[j] = [2]Node{children[i], children[i+1]}
		i += 2
	}
	if c.Else != nil {
		out.Else = children[i]
	}
	return out, nil
}
func (c *Case) walk(v Visitor) {
	if c.Expr != nil {
		Walk(v, c.Expr)
	}
	for _, wt := range c.WhenThen {
		Walk(v, wt[0])
		Walk(v, wt[1])
	}
	if c.Else != nil {
		Walk(v, c.Else)
	}
}
func (c *Case) rewrite(r Rewriter) Node {
	if c.Expr != nil {
		c.Expr = Rewrite(r, c.Expr)
	}
	for i := range c.WhenThen {
		c.WhenThen[i][0] = Rewrite(r, c.WhenThen[i][0])
		c.WhenThen[i][1] = Rewrite(r, c.WhenThen[i][1])
	}
	if c.Else != nil {
		c.Else = Rewrite(r, c.Else)
	}
	return c
}

// Between is `expr [NOT] BETWEEN low AND high`.
type Between struct {
	Expr, Low, High Node
	Negated         bool
}

func (b *Between) String() string {
	neg := ""
	if b.Negated {
		neg = "NOT "
	}
	return fmt.Sprintf("%s %sBETWEEN %s AND %s", b.Expr, neg, b.Low, b.High)
}
func (b *Between) Children() []Node { return []Node{b.Expr, b.Low, b.High} }
func (b *Between) WithNewChildren(children []Node) (Node, error) {
	if len(children) != 3 {
		return nil, fmt.Errorf("expr: Between takes 3 children, got %d", len(children))
	}
	return &Between{Expr: children[0], Low: children[1], High: children[2], Negated: b.Negated}, nil
}
func (b *Between) walk(v Visitor) { Walk(v, b.Expr); Walk(v, b.Low); Walk(v, b.High) }
func (b *Between) rewrite(r Rewriter) Node {
	b.Expr, b.Low, b.High = Rewrite(r, b.Expr), Rewrite(r, b.Low), Rewrite(r, b.High)
	return b
}

// InList is `expr [NOT] IN (list...)`.
type InList struct {
	Expr    Node
	List    []Node
	Negated bool
}

func (in *InList) String() string {
	neg := ""
	if in.Negated {
		neg = "NOT "
	}
	return fmt.Sprintf("%s %sIN (%s)", in.Expr, neg, joinNodes(in.List))
}
func (in *InList) Children() []Node { return append([]Node{in.Expr}, in.List...) }
func (in *InList) WithNewChildren(children []Node) (Node, error) {
	if len(children) < 1 {
		return nil, fmt.Errorf("expr: InList takes at least 1 child, got %d", len(children))
	}
	return &InList{Expr: children[0], List: children[1:], Negated: in.Negated}, nil
}
func (in *InList) walk(v Visitor) { Walk(v, in.Expr); walkAll(v, in.List) }
func (in *InList) rewrite(r Rewriter) Node {
	in.Expr = Rewrite(r, in.Expr)
	in.List = rewriteAll(r, in.List)
	return in
}

// SubqueryPlan is the minimal surface a logical plan exposes to the
// expression layer for subquery forms (InSubquery, Exists, ScalarSubquery).
// It is satisfied structurally by plan.Plan without expr importing package
// plan, which would otherwise cycle back through Projection/Filter's
// Node-typed fields.
type SubqueryPlan interface {
	Schema() schema.QSchema
	String() string
}

// InSubquery is `expr [NOT] IN (subquery)`.
type InSubquery struct {
	Expr     Node
	Subquery SubqueryPlan
	Negated  bool
}

func (in *InSubquery) String() string {
	neg := ""
	if in.Negated {
		neg = "NOT "
	}
	return fmt.Sprintf("%s %sIN (%s)", in.Expr, neg, in.Subquery)
}
func (in *InSubquery) Children() []Node { return []Node{in.Expr} }
func (in *InSubquery) WithNewChildren(children []Node) (Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expr: InSubquery takes 1 child, got %d", len(children))
	}
	return &InSubquery{Expr: children[0], Subquery: in.Subquery, Negated: in.Negated}, nil
}
func (in *InSubquery) walk(v Visitor)       { Walk(v, in.Expr) }
func (in *InSubquery) rewrite(r Rewriter) Node {
	in.Expr = Rewrite(r, in.Expr)
	return in
}

// Exists is `[NOT] EXISTS (subquery)`.
type Exists struct {
	Subquery SubqueryPlan
	Negated  bool
}

func (e *Exists) String() string {
	neg := ""
	if e.Negated {
		neg = "NOT "
	}
	return fmt.Sprintf("%sEXISTS (%s)", neg, e.Subquery)
}
func (e *Exists) Children() []Node { return nil }
func (e *Exists) WithNewChildren(children []Node) (Node, error) {
	return noChildren(e, children)
}
func (e *Exists) walk(Visitor)          {}
func (e *Exists) rewrite(Rewriter) Node { return e }

// ScalarSubquery is a subquery used in scalar position; it must resolve to
// exactly one row, one column.
type ScalarSubquery struct {
	Subquery SubqueryPlan
}

func (s *ScalarSubquery) String() string { return fmt.Sprintf("(%s)", s.Subquery) }
func (s *ScalarSubquery) Children() []Node { return nil }
func (s *ScalarSubquery) WithNewChildren(children []Node) (Node, error) {
	return noChildren(s, children)
}
func (s *ScalarSubquery) walk(Visitor)          {}
func (s *ScalarSubquery) rewrite(Rewriter) Node { return s }
