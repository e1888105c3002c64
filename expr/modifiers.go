package expr

import (
	"fmt"

	"github.com/arrowplan/arrowplan/types"
)

// SortExpr is a single ORDER BY key.
type SortExpr struct {
	Expr       Node
	Asc        bool
	NullsFirst bool
}

func (s SortExpr) String() string {
	dir := "ASC"
	if !s.Asc {
		dir = "DESC"
	}
	nulls := "NULLS LAST"
	if s.NullsFirst {
		nulls = "NULLS FIRST"
	}
	return fmt.Sprintf("%s %s %s", s.Expr, dir, nulls)
}
func (s SortExpr) Children() []Node { return []Node{s.Expr} }
func (s SortExpr) WithNewChildren(children []Node) (Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expr: SortExpr takes 1 child, got %d", len(children))
	}
	return SortExpr{Expr: children[0], Asc: s.Asc, NullsFirst: s.NullsFirst}, nil
}
func (s SortExpr) walk(v Visitor)       { Walk(v, s.Expr) }
func (s SortExpr) rewrite(r Rewriter) Node {
	s.Expr = Rewrite(r, s.Expr)
	return s
}

// Alias renames expr's output field to Name.
type Alias struct {
	Expr Node
	Name string
}

func (a *Alias) String() string { return fmt.Sprintf("%s AS %s", a.Expr, a.Name) }
func (a *Alias) Children() []Node { return []Node{a.Expr} }
func (a *Alias) WithNewChildren(children []Node) (Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expr: Alias takes 1 child, got %d", len(children))
	}
	return &Alias{Expr: children[0], Name: a.Name}, nil
}
func (a *Alias) walk(v Visitor)       { Walk(v, a.Expr) }
func (a *Alias) rewrite(r Rewriter) Node {
	a.Expr = Rewrite(r, a.Expr)
	return a
}

// Cast converts Expr to Typ; if Try is set (TryCast), a conversion failure
// yields NULL instead of an error at evaluation time.
type Cast struct {
	Expr Node
	Typ  types.Type
	Try  bool
}

func (c *Cast) String() string {
	if c.Try {
		return fmt.Sprintf("TRY_CAST(%s AS %s)", c.Expr, c.Typ)
	}
	return fmt.Sprintf("CAST(%s AS %s)", c.Expr, c.Typ)
}
func (c *Cast) Children() []Node { return []Node{c.Expr} }
func (c *Cast) WithNewChildren(children []Node) (Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expr: Cast takes 1 child, got %d", len(children))
	}
	return &Cast{Expr: children[0], Typ: c.Typ, Try: c.Try}, nil
}
func (c *Cast) walk(v Visitor)       { Walk(v, c.Expr) }
func (c *Cast) rewrite(r Rewriter) Node {
	c.Expr = Rewrite(r, c.Expr)
	return c
}

// GetIndexedField accesses a struct field (Key is a Utf8 Literal) or a list
// index (Key is an Int64 Literal) of Expr.
type GetIndexedField struct {
	Expr Node
	Key  Node
}

func (g *GetIndexedField) String() string { return fmt.Sprintf("%s[%s]", g.Expr, g.Key) }
func (g *GetIndexedField) Children() []Node { return []Node{g.Expr, g.Key} }
func (g *GetIndexedField) WithNewChildren(children []Node) (Node, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("expr: GetIndexedField takes 2 children, got %d", len(children))
	}
	return &GetIndexedField{Expr: children[0], Key: children[1]}, nil
}
func (g *GetIndexedField) walk(v Visitor) { Walk(v, g.Expr); Walk(v, g.Key) }
func (g *GetIndexedField) rewrite(r Rewriter) Node {
	g.Expr, g.Key = Rewrite(r, g.Expr), Rewrite(r, g.Key)
	return g
}

// GroupingSetKind distinguishes the three GROUP BY extensions.
type GroupingSetKind int

const (
	Rollup GroupingSetKind = iota
	Cube
	GroupingSets
)

// GroupingSet is a GROUP BY ROLLUP/CUBE/GROUPING SETS clause. Rollup and
// Cube carry a flat Exprs list; GroupingSets carries an explicit list of
// column-sets in Sets, and Exprs is empty.
type GroupingSet struct {
	Kind  GroupingSetKind
	Exprs []Node
	Sets  [][]Node
}

func (g *GroupingSet) String() string {
	switch g.Kind {
	case Rollup:
		return fmt.Sprintf("ROLLUP (%s)", joinNodes(g.Exprs))
	case Cube:
		return fmt.Sprintf("CUBE (%s)", joinNodes(g.Exprs))
	default:
		parts := make([]string, len(g.Sets))
		for i, s := range g.Sets {
			parts[i] = fmt.Sprintf("(%s)", joinNodes(s))
		}
		out := "GROUPING SETS ("
		for i, p := range parts {
			if i > 0 {
				out += ", "
			}
			out += p
		}
		return out + ")"
	}
}
func (g *GroupingSet) Children() []Node {
	if g.Kind != GroupingSets {
		return append([]Node(nil), g.Exprs...)
	}
	var children []Node
	for _, s := range g.Sets {
		children = append(children, s...)
	}
	return children
}
func (g *GroupingSet) WithNewChildren(children []Node) (Node, error) {
	if g.Kind != GroupingSets {
		return &GroupingSet{Kind: g.Kind, Exprs: children}, nil
	}
	out := &GroupingSet{Kind: GroupingSets, Sets: make([][]Node, len(g.Sets))}
	i := 0
	for si, s := range g.Sets {
		out.Sets[si] = children[i : i+len(s)]
		i += len(s)
	}
	return out, nil
}
func (g *GroupingSet) walk(v Visitor) {
	if g.Kind != GroupingSets {
		walkAll(v, g.Exprs)
		return
	}
	for _, s := range g.Sets {
		walkAll(v, s)
	}
}
func (g *GroupingSet) rewrite(r Rewriter) Node {
	if g.Kind != GroupingSets {
		g.Exprs = rewriteAll(r, g.Exprs)
		return g
	}
	for i, s := range g.Sets {
		g.Sets[i] = rewriteAll(r, s)
	}
	return g
}
