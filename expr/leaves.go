package expr

import (
	"fmt"

	"github.com/arrowplan/arrowplan/scalar"
	"github.com/arrowplan/arrowplan/schema"
	"github.com/arrowplan/arrowplan/types"
)

// Column is a (possibly qualified) column reference.
type Column struct {
	Qualifier *schema.Qualifier
	Name      string
}

func (c *Column) String() string {
	if c.Qualifier != nil {
		return fmt.Sprintf("#%s.%s", c.Qualifier.Name, c.Name)
	}
	return "#" + c.Name
}
func (c *Column) Children() []Node { return nil }
func (c *Column) WithNewChildren(children []Node) (Node, error) {
	return noChildren(c, children)
}
func (c *Column) walk(Visitor)         {}
func (c *Column) rewrite(Rewriter) Node { return c }

// Literal carries a materialized scalar value.
type Literal struct {
	Value scalar.Value
}

func (l *Literal) String() string { return l.Value.GoString() }
func (l *Literal) Children() []Node { return nil }
func (l *Literal) WithNewChildren(children []Node) (Node, error) {
	return noChildren(l, children)
}
func (l *Literal) walk(Visitor)         {}
func (l *Literal) rewrite(Rewriter) Node { return l }

// ScalarVariable is a named external parameter resolved outside the plan
// (e.g. a session variable); it carries its own static type since it has no
// schema to infer one from.
type ScalarVariable struct {
	Name string
	Typ  types.Type
}

func (s *ScalarVariable) String() string { return "@" + s.Name }
func (s *ScalarVariable) Children() []Node { return nil }
func (s *ScalarVariable) WithNewChildren(children []Node) (Node, error) {
	return noChildren(s, children)
}
func (s *ScalarVariable) walk(Visitor)         {}
func (s *ScalarVariable) rewrite(Rewriter) Node { return s }

// Wildcard is the unqualified `*` of `SELECT *`.
type Wildcard struct{}

func (Wildcard) String() string                               { return "*" }
func (Wildcard) Children() []Node                              { return nil }
func (w Wildcard) WithNewChildren(children []Node) (Node, error) { return noChildren(w, children) }
func (Wildcard) walk(Visitor)                                  {}
func (w Wildcard) rewrite(Rewriter) Node                        { return w }

// QualifiedWildcard is `t.*`.
type QualifiedWildcard struct {
	Qualifier schema.Qualifier
}

func (q QualifiedWildcard) String() string { return q.Qualifier.Name + ".*" }
func (q QualifiedWildcard) Children() []Node { return nil }
func (q QualifiedWildcard) WithNewChildren(children []Node) (Node, error) {
	return noChildren(q, children)
}
func (QualifiedWildcard) walk(Visitor)          {}
func (q QualifiedWildcard) rewrite(Rewriter) Node { return q }

func noChildren(n Node, children []Node) (Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expr: %T takes no children, got %d", n, len(children))
	}
	return n, nil
}
