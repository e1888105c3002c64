package plan

import (
	"fmt"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/schema"
)

// Aggregate groups Input's rows by GroupExpr and reduces each group with
// AggrExpr. Expressions() returns GroupExpr followed by AggrExpr, the
// ordering rewrite.FromPlan relies on to split a flat rebuilt list back
// into the two fields (spec.md §4.4).
type Aggregate struct {
	Input     Plan
	GroupExpr []expr.Node
	AggrExpr  []expr.Node
	Sch       schema.QSchema
}

func (a *Aggregate) Inputs() []Plan { return []Plan{a.Input} }
func (a *Aggregate) Expressions() []expr.Node {
	out := make([]expr.Node, 0, len(a.GroupExpr)+len(a.AggrExpr))
	out = append(out, a.GroupExpr...)
	out = append(out, a.AggrExpr...)
	return out
}
func (a *Aggregate) Schema() schema.QSchema       { return a.Sch }
func (a *Aggregate) AllSchemas() []schema.QSchema { return passthroughAllSchemas(a) }
func (a *Aggregate) UsingColumns() map[string]struct{} { return a.Input.UsingColumns() }
func (a *Aggregate) String() string                    { return Display(a) }
func (a *Aggregate) GoString() string                   { return fmt.Sprintf("%#v", *a) }
func (a *Aggregate) displayLine() string {
	return fmt.Sprintf("Aggregate: groupBy=[[%s]], aggr=[[%s]]",
		projectionString(a.GroupExpr), projectionString(a.AggrExpr))
}

// Window evaluates WindowExpr (each an *expr.WindowFunction, typically
// wrapped in an *expr.Alias) alongside Input's own columns.
type Window struct {
	Input      Plan
	WindowExpr []expr.Node
	Sch        schema.QSchema
}

func (w *Window) Inputs() []Plan               { return []Plan{w.Input} }
func (w *Window) Expressions() []expr.Node     { return w.WindowExpr }
func (w *Window) Schema() schema.QSchema       { return w.Sch }
func (w *Window) AllSchemas() []schema.QSchema { return passthroughAllSchemas(w) }
func (w *Window) UsingColumns() map[string]struct{} { return w.Input.UsingColumns() }
func (w *Window) String() string                    { return Display(w) }
func (w *Window) GoString() string                   { return fmt.Sprintf("%#v", *w) }
func (w *Window) displayLine() string {
	return fmt.Sprintf("WindowAggr: windowExpr=[[%s]]", projectionString(w.WindowExpr))
}
