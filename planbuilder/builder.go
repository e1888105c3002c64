// Package planbuilder implements the fluent logical plan builder (spec.md
// §4.3): a Builder wraps a plan.Plan and every method returns a new Builder
// (or a typed error), enforcing invariants P1-P5 at construction time since
// plan.Plan nodes never re-validate themselves once built.
package planbuilder

import (
	"fmt"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/plan"
	"github.com/arrowplan/arrowplan/qerrors"
	"github.com/arrowplan/arrowplan/schema"
)

// TableProvider is the catalog capability this package consumes (spec.md
// §6): "a TableProvider trait exposing schema() -> Schema". The catalog
// itself, and how a TableProvider is looked up by name, are out of scope.
type TableProvider interface {
	Schema() schema.Schema
}

// Builder wraps a plan.Plan under construction. The zero Builder is not
// valid; use New. Builder is cheap to copy — the wrapped plan.Plan is a
// pointer tree shared across copies, never deep-copied, matching spec.md
// §4.3's "structurally shared via reference counting of sub-plans".
type Builder struct {
	plan plan.Plan
}

// New starts a Builder from an already-built plan (e.g. a Subquery's inner
// plan, or a plan produced by another Builder).
func New(p plan.Plan) *Builder { return &Builder{plan: p} }

// Build returns the constructed plan, or an error if the Builder never
// produced one.
func (b *Builder) Build() (plan.Plan, error) {
	if b.plan == nil {
		return nil, fmt.Errorf("%w: builder has no plan", qerrors.ErrInternal)
	}
	return b.plan, nil
}

// Plan returns the current plan without finalizing the Builder, for
// methods (Join, Union, ...) that need to read another Builder's plan.
func (b *Builder) Plan() plan.Plan { return b.plan }

func with(p plan.Plan) *Builder { return &Builder{plan: p} }

// columnize turns a bare Column into a normalized reference against src,
// and recursively normalizes every other expression kind the same way
// (spec.md §4.3.3's "rewrites other expressions by columnizing then
// normalizing").
func columnize(n expr.Node, src plan.Plan) (expr.Node, error) {
	return expr.NormalizeAgainst(n, src)
}

func columnizeAll(exprs []expr.Node, src plan.Plan) ([]expr.Node, error) {
	out := make([]expr.Node, len(exprs))
	for i, e := range exprs {
		n, err := columnize(e, src)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
