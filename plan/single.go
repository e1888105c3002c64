package plan

import (
	"fmt"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/schema"
)

// Projection evaluates Expr against Input's rows. Alias, when non-empty,
// was applied by planbuilder.ProjectWithAlias and re-qualifies Sch's
// fields; it is kept (rather than folded away) so rewrite.FromPlan can
// preserve it across an Expressions-only rebuild.
type Projection struct {
	Expr  []expr.Node
	Input Plan
	Sch   schema.QSchema
	Alias string
}

func (p *Projection) Inputs() []Plan           { return []Plan{p.Input} }
func (p *Projection) Expressions() []expr.Node { return p.Expr }
func (p *Projection) Schema() schema.QSchema   { return p.Sch }
func (p *Projection) AllSchemas() []schema.QSchema {
	return passthroughAllSchemas(p)
}
func (p *Projection) UsingColumns() map[string]struct{} { return p.Input.UsingColumns() }
func (p *Projection) String() string                    { return Display(p) }
func (p *Projection) GoString() string                  { return fmt.Sprintf("%#v", *p) }
func (p *Projection) displayLine() string {
	return fmt.Sprintf("Projection: %s", projectionString(p.Expr))
}

// Filter keeps rows matching Predicate; its schema is exactly Input's.
type Filter struct {
	Predicate expr.Node
	Input     Plan
}

func (f *Filter) Inputs() []Plan               { return []Plan{f.Input} }
func (f *Filter) Expressions() []expr.Node     { return []expr.Node{f.Predicate} }
func (f *Filter) Schema() schema.QSchema       { return f.Input.Schema() }
func (f *Filter) AllSchemas() []schema.QSchema { return passthroughAllSchemas(f) }
func (f *Filter) UsingColumns() map[string]struct{} { return f.Input.UsingColumns() }
func (f *Filter) String() string                    { return Display(f) }
func (f *Filter) GoString() string                   { return fmt.Sprintf("%#v", *f) }
func (f *Filter) displayLine() string {
	return fmt.Sprintf("Filter: %s", f.Predicate)
}

// Sort orders Input's rows by Expr; its schema is exactly Input's.
type Sort struct {
	Expr  []expr.SortExpr
	Input Plan
}

func (s *Sort) Inputs() []Plan { return []Plan{s.Input} }
func (s *Sort) Expressions() []expr.Node {
	out := make([]expr.Node, len(s.Expr))
	for i, e := range s.Expr {
		out[i] = e
	}
	return out
}
func (s *Sort) Schema() schema.QSchema       { return s.Input.Schema() }
func (s *Sort) AllSchemas() []schema.QSchema { return passthroughAllSchemas(s) }
func (s *Sort) UsingColumns() map[string]struct{} { return s.Input.UsingColumns() }
func (s *Sort) String() string                    { return Display(s) }
func (s *Sort) GoString() string                   { return fmt.Sprintf("%#v", *s) }
func (s *Sort) displayLine() string {
	parts := make([]string, len(s.Expr))
	for i, e := range s.Expr {
		parts[i] = e.String()
	}
	return fmt.Sprintf("Sort: %s", joinStrings(parts))
}

// Limit caps Input to at most N rows.
type Limit struct {
	N     int
	Input Plan
}

func (l *Limit) Inputs() []Plan               { return []Plan{l.Input} }
func (l *Limit) Expressions() []expr.Node     { return nil }
func (l *Limit) Schema() schema.QSchema       { return l.Input.Schema() }
func (l *Limit) AllSchemas() []schema.QSchema { return passthroughAllSchemas(l) }
func (l *Limit) UsingColumns() map[string]struct{} { return l.Input.UsingColumns() }
func (l *Limit) String() string                    { return Display(l) }
func (l *Limit) GoString() string                   { return fmt.Sprintf("%#v", *l) }
func (l *Limit) displayLine() string {
	return fmt.Sprintf("Limit: fetch=%d", l.N)
}

// SubqueryAlias re-qualifies Input's schema under Alias, for `FROM (...) AS
// alias` and CTE references.
type SubqueryAlias struct {
	Input Plan
	Alias string
	Sch   schema.QSchema
}

func (s *SubqueryAlias) Inputs() []Plan               { return []Plan{s.Input} }
func (s *SubqueryAlias) Expressions() []expr.Node     { return nil }
func (s *SubqueryAlias) Schema() schema.QSchema       { return s.Sch }
func (s *SubqueryAlias) AllSchemas() []schema.QSchema { return passthroughAllSchemas(s) }
func (s *SubqueryAlias) UsingColumns() map[string]struct{} { return s.Input.UsingColumns() }
func (s *SubqueryAlias) String() string                    { return Display(s) }
func (s *SubqueryAlias) GoString() string                   { return fmt.Sprintf("%#v", *s) }
func (s *SubqueryAlias) displayLine() string {
	return fmt.Sprintf("SubqueryAlias: %s", s.Alias)
}

// Subquery wraps a nested Plan for use from expr.SubqueryPlan positions
// (InSubquery/Exists/ScalarSubquery); it satisfies expr.SubqueryPlan simply
// by exposing Inner's Schema and String.
type Subquery struct {
	Inner Plan
}

func (s *Subquery) Inputs() []Plan               { return []Plan{s.Inner} }
func (s *Subquery) Expressions() []expr.Node     { return nil }
func (s *Subquery) Schema() schema.QSchema       { return s.Inner.Schema() }
func (s *Subquery) AllSchemas() []schema.QSchema { return passthroughAllSchemas(s) }
func (s *Subquery) UsingColumns() map[string]struct{} { return s.Inner.UsingColumns() }
func (s *Subquery) String() string                    { return Display(s) }
func (s *Subquery) GoString() string                   { return fmt.Sprintf("%#v", *s) }
func (s *Subquery) displayLine() string {
	return "Subquery:"
}

// Explain wraps Input for `EXPLAIN`/`EXPLAIN ANALYZE`; its own schema is
// the fixed {plan_type, plan} text description, carried by Sch.
type Explain struct {
	Input   Plan
	Analyze bool
	Sch     schema.QSchema
}

func (e *Explain) Inputs() []Plan               { return []Plan{e.Input} }
func (e *Explain) Expressions() []expr.Node     { return nil }
func (e *Explain) Schema() schema.QSchema       { return e.Sch }
func (e *Explain) AllSchemas() []schema.QSchema { return passthroughAllSchemas(e) }
func (e *Explain) UsingColumns() map[string]struct{} { return nil }
func (e *Explain) String() string                    { return Display(e) }
func (e *Explain) GoString() string                   { return fmt.Sprintf("%#v", *e) }
func (e *Explain) displayLine() string {
	if e.Analyze {
		return "Analyze"
	}
	return "Explain"
}

// RepartitionKind selects how Repartition distributes rows across
// partitions.
type RepartitionKind int

const (
	RoundRobin RepartitionKind = iota
	Hash
)

// RepartitionScheme is Repartition's distribution strategy: RoundRobin
// ignores Exprs, Hash partitions by Exprs. N is the target partition count.
type RepartitionScheme struct {
	Kind  RepartitionKind
	N     int
	Exprs []expr.Node
}

// Repartition redistributes Input's rows across N partitions, by round
// robin or by hashing Scheme.Exprs.
type Repartition struct {
	Input  Plan
	Scheme RepartitionScheme
}

func (r *Repartition) Inputs() []Plan               { return []Plan{r.Input} }
func (r *Repartition) Expressions() []expr.Node     { return r.Scheme.Exprs }
func (r *Repartition) Schema() schema.QSchema       { return r.Input.Schema() }
func (r *Repartition) AllSchemas() []schema.QSchema { return passthroughAllSchemas(r) }
func (r *Repartition) UsingColumns() map[string]struct{} { return r.Input.UsingColumns() }
func (r *Repartition) String() string                    { return Display(r) }
func (r *Repartition) GoString() string                   { return fmt.Sprintf("%#v", *r) }
func (r *Repartition) displayLine() string {
	switch r.Scheme.Kind {
	case Hash:
		return fmt.Sprintf("Repartition: Hash([%s], %d)", projectionString(r.Scheme.Exprs), r.Scheme.N)
	default:
		return fmt.Sprintf("Repartition: RoundRobinBatch(%d)", r.Scheme.N)
	}
}

func joinStrings(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
