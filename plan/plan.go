// Package plan implements the logical plan algebra (spec.md §3.3, §4.4): the
// relational tree that the plan builder constructs and normalizes, rooted at
// the Plan interface every node variant in this package implements.
//
// Plan nodes are dumb containers once built — invariants P1-P5 are enforced
// by package planbuilder at construction time, never re-checked here, the
// way the teacher lineage's pir.Step nodes never re-validate themselves
// after a Trace builds them.
package plan

import (
	"fmt"
	"strings"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/schema"
)

// Plan is a node in the logical plan tree.
type Plan interface {
	// Inputs returns the node's direct child plans, 0 to 2 of them.
	Inputs() []Plan
	// Expressions returns the node's own expressions, in the order
	// package rewrite's FromPlan expects them back.
	Expressions() []expr.Node
	// Schema is the QSchema this node produces.
	Schema() schema.QSchema
	// AllSchemas returns the schemas visible for unqualified name
	// resolution against this node: a single-element slice of its own
	// schema. Join and CrossJoin do the same; their own schema already
	// holds the left fields followed by the right ones.
	AllSchemas() []schema.QSchema
	// UsingColumns is the set of column names made unambiguous by an
	// enclosing JOIN ... USING clause, propagated from inputs.
	UsingColumns() map[string]struct{}
	String() string
	GoString() string
}

// displayer is implemented by every node in this package to print its own
// line, independent of its children; Display walks Inputs() to indent the
// rest of the tree (spec.md §8 scenarios 1-5).
type displayer interface {
	displayLine() string
}

// Display renders p and its descendants as an indented tree, matching the
// format exercised by spec.md §8's literal-IO scenarios.
func Display(p Plan) string {
	var b strings.Builder
	writeTree(&b, p, 0)
	return strings.TrimRight(b.String(), "\n")
}

func writeTree(b *strings.Builder, p Plan, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if d, ok := p.(displayer); ok {
		b.WriteString(d.displayLine())
	} else {
		fmt.Fprintf(b, "%T", p)
	}
	b.WriteByte('\n')
	for _, in := range p.Inputs() {
		writeTree(b, in, depth+1)
	}
}

// passthroughAllSchemas is the AllSchemas() behavior of every non-leaf node
// (Projection, Filter, Sort, Limit, Repartition, SubqueryAlias, Subquery,
// Explain, Aggregate, Window, Join, CrossJoin, Union):
// only the node's own schema is exposed, not the input's — which is why
// planbuilder's Sort back-propagation (spec.md §4.3.5) exists at all.
func passthroughAllSchemas(p Plan) []schema.QSchema {
	return []schema.QSchema{p.Schema()}
}

func passthroughUsingColumns(inputs []Plan) map[string]struct{} {
	for _, in := range inputs {
		if u := in.UsingColumns(); len(u) > 0 {
			return u
		}
	}
	return nil
}

func projectionString(exprs []expr.Node) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// CheckNoExprsNoInputs is the assertion rewrite.FromPlan applies to leaf
// nodes (EmptyRelation, TableScan, DDL): they take no rebuilt expressions
// or inputs (spec.md §4.4).
func CheckNoExprsNoInputs(kind string, newExprs []expr.Node, newInputs []Plan) error {
	if len(newExprs) != 0 {
		return fmt.Errorf("plan: %s takes no expressions, got %d", kind, len(newExprs))
	}
	if len(newInputs) != 0 {
		return fmt.Errorf("plan: %s takes no inputs, got %d", kind, len(newInputs))
	}
	return nil
}
