package plan

import (
	"fmt"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/schema"
)

// Union concatenates Ins row-wise; planbuilder.Union flattens nested
// unions so a chain of N unions of the same relation ends up as a single
// node with N+1 inputs (spec.md §4.3.8, §8 scenario 5), rather than a
// binary tree of Union nodes.
type Union struct {
	Ins   []Plan
	Sch   schema.QSchema
	Alias string
}

func (u *Union) Inputs() []Plan               { return u.Ins }
func (u *Union) Expressions() []expr.Node     { return nil }
func (u *Union) Schema() schema.QSchema       { return u.Sch }
func (u *Union) AllSchemas() []schema.QSchema { return passthroughAllSchemas(u) }
func (u *Union) UsingColumns() map[string]struct{} {
	return passthroughUsingColumns(u.Ins)
}
func (u *Union) String() string   { return Display(u) }
func (u *Union) GoString() string { return fmt.Sprintf("%#v", *u) }
func (u *Union) displayLine() string {
	return "Union"
}
