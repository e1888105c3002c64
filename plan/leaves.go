package plan

import (
	"fmt"
	"strings"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/schema"
)

// EmptyRelation produces zero or one row with no columns, depending on
// ProduceOneRow (the `SELECT 1` / `VALUES ()` degenerate relation).
type EmptyRelation struct {
	ProduceOneRow bool
	Sch           schema.QSchema
}

func (e *EmptyRelation) Inputs() []Plan           { return nil }
func (e *EmptyRelation) Expressions() []expr.Node { return nil }
func (e *EmptyRelation) Schema() schema.QSchema   { return e.Sch }
func (e *EmptyRelation) AllSchemas() []schema.QSchema {
	return []schema.QSchema{e.Sch}
}
func (e *EmptyRelation) UsingColumns() map[string]struct{} { return nil }
func (e *EmptyRelation) String() string                    { return Display(e) }
func (e *EmptyRelation) GoString() string                   { return fmt.Sprintf("%#v", *e) }
func (e *EmptyRelation) displayLine() string {
	return fmt.Sprintf("EmptyRelation: produce_one_row=%t", e.ProduceOneRow)
}

// Values is a literal row set, one Expr slice per row, every row the same
// width (spec.md §4.3.2).
type Values struct {
	Sch  schema.QSchema
	Rows [][]expr.Node
}

func (v *Values) Inputs() []Plan { return nil }
func (v *Values) Expressions() []expr.Node {
	var out []expr.Node
	for _, row := range v.Rows {
		out = append(out, row...)
	}
	return out
}
func (v *Values) Schema() schema.QSchema { return v.Sch }
func (v *Values) AllSchemas() []schema.QSchema {
	return []schema.QSchema{v.Sch}
}
func (v *Values) UsingColumns() map[string]struct{} { return nil }
func (v *Values) String() string                    { return Display(v) }
func (v *Values) GoString() string                   { return fmt.Sprintf("%#v", *v) }
func (v *Values) displayLine() string {
	return fmt.Sprintf("Values: %d rows x %d columns", len(v.Rows), len(v.Sch.Fields))
}

// TableScan reads a named table, optionally projected, filtered and
// limited; Projection is nil when no column subset was requested.
type TableScan struct {
	Name           string
	ProjectedSch   schema.QSchema
	Projection     []int
	Filters        []expr.Node
	Limit          *int
}

func (t *TableScan) Inputs() []Plan               { return nil }
func (t *TableScan) Expressions() []expr.Node     { return t.Filters }
func (t *TableScan) Schema() schema.QSchema       { return t.ProjectedSch }
func (t *TableScan) AllSchemas() []schema.QSchema { return []schema.QSchema{t.ProjectedSch} }
func (t *TableScan) UsingColumns() map[string]struct{} { return nil }
func (t *TableScan) String() string               { return Display(t) }
func (t *TableScan) GoString() string              { return fmt.Sprintf("%#v", *t) }
func (t *TableScan) displayLine() string {
	proj := "None"
	if t.Projection != nil {
		parts := make([]string, len(t.Projection))
		for i, p := range t.Projection {
			parts[i] = fmt.Sprintf("%d", p)
		}
		proj = fmt.Sprintf("Some([%s])", strings.Join(parts, ", "))
	}
	s := fmt.Sprintf("TableScan: %s projection=%s", t.Name, proj)
	if len(t.Filters) > 0 {
		s += fmt.Sprintf(", full_filters=[%s]", projectionString(t.Filters))
	}
	if t.Limit != nil {
		s += fmt.Sprintf(", fetch=%d", *t.Limit)
	}
	return s
}

// CreateExternalTable registers a table backed by an external location; a
// minimal DDL leaf carried from the original source (SPEC_FULL.md §9).
type CreateExternalTable struct {
	Name     string
	Location string
	Sch      schema.QSchema
}

func (c *CreateExternalTable) Inputs() []Plan               { return nil }
func (c *CreateExternalTable) Expressions() []expr.Node     { return nil }
func (c *CreateExternalTable) Schema() schema.QSchema       { return c.Sch }
func (c *CreateExternalTable) AllSchemas() []schema.QSchema { return []schema.QSchema{c.Sch} }
func (c *CreateExternalTable) UsingColumns() map[string]struct{} { return nil }
func (c *CreateExternalTable) String() string               { return Display(c) }
func (c *CreateExternalTable) GoString() string              { return fmt.Sprintf("%#v", *c) }
func (c *CreateExternalTable) displayLine() string {
	return fmt.Sprintf("CreateExternalTable: %s LOCATION %s", c.Name, c.Location)
}

// DropTable removes a table from the catalog; no schema of its own.
type DropTable struct {
	Name     string
	IfExists bool
}

func (d *DropTable) Inputs() []Plan                   { return nil }
func (d *DropTable) Expressions() []expr.Node         { return nil }
func (d *DropTable) Schema() schema.QSchema           { return schema.Empty() }
func (d *DropTable) AllSchemas() []schema.QSchema     { return []schema.QSchema{schema.Empty()} }
func (d *DropTable) UsingColumns() map[string]struct{} { return nil }
func (d *DropTable) String() string                   { return Display(d) }
func (d *DropTable) GoString() string                  { return fmt.Sprintf("%#v", *d) }
func (d *DropTable) displayLine() string {
	if d.IfExists {
		return fmt.Sprintf("DropTable: %s IF EXISTS", d.Name)
	}
	return fmt.Sprintf("DropTable: %s", d.Name)
}
