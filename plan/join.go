package plan

import (
	"fmt"
	"strings"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/schema"
)

// JoinType is the relational join kind.
type JoinType int

const (
	Inner JoinType = iota
	Left
	Right
	Full
	Semi
	Anti
)

func (t JoinType) String() string {
	switch t {
	case Inner:
		return "Inner"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Full:
		return "Full"
	case Semi:
		return "LeftSemi"
	case Anti:
		return "LeftAnti"
	default:
		return "?"
	}
}

// JoinConstraint distinguishes `ON` from `USING` joins. Both display the
// same way; a Using join also reports its key names from UsingColumns, so
// unqualified references to them resolve without ambiguity.
type JoinConstraint int

const (
	On JoinConstraint = iota
	Using
)

// Join is an equi-join between Left and Right on paired columns On.
// NullEqualsNull is an opaque bit carried through to the executor (set true
// by planbuilder's Intersect/Except so NULLs compare equal, SQL set-op
// semantics).
type Join struct {
	Left, Right    Plan
	On             [][2]*expr.Column
	Type           JoinType
	Constraint     JoinConstraint
	Sch            schema.QSchema
	NullEqualsNull bool
}

func (j *Join) Inputs() []Plan           { return []Plan{j.Left, j.Right} }
func (j *Join) Expressions() []expr.Node { return nil }
func (j *Join) Schema() schema.QSchema   { return j.Sch }
func (j *Join) AllSchemas() []schema.QSchema {
	return passthroughAllSchemas(j)
}
func (j *Join) UsingColumns() map[string]struct{} {
	out := make(map[string]struct{})
	if j.Constraint == Using {
		for _, pair := range j.On {
			out[pair[0].Name] = struct{}{}
		}
	}
	for _, in := range j.Inputs() {
		for k := range in.UsingColumns() {
			out[k] = struct{}{}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
func (j *Join) String() string   { return Display(j) }
func (j *Join) GoString() string { return fmt.Sprintf("%#v", *j) }
func (j *Join) displayLine() string {
	parts := make([]string, len(j.On))
	for i, pair := range j.On {
		parts[i] = fmt.Sprintf("%s = %s", pair[0], pair[1])
	}
	return fmt.Sprintf("%s Join: %s", j.Type, strings.Join(parts, ", "))
}

// CrossJoin is the cartesian product of Left and Right.
type CrossJoin struct {
	Left, Right Plan
	Sch         schema.QSchema
}

func (c *CrossJoin) Inputs() []Plan               { return []Plan{c.Left, c.Right} }
func (c *CrossJoin) Expressions() []expr.Node     { return nil }
func (c *CrossJoin) Schema() schema.QSchema       { return c.Sch }
func (c *CrossJoin) AllSchemas() []schema.QSchema { return passthroughAllSchemas(c) }
func (c *CrossJoin) UsingColumns() map[string]struct{} {
	return passthroughUsingColumns(c.Inputs())
}
func (c *CrossJoin) String() string   { return Display(c) }
func (c *CrossJoin) GoString() string { return fmt.Sprintf("%#v", *c) }
func (c *CrossJoin) displayLine() string {
	return "CrossJoin:"
}
