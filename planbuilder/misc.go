package planbuilder

import (
	"github.com/arrowplan/arrowplan/plan"
	"github.com/arrowplan/arrowplan/schema"
	"github.com/arrowplan/arrowplan/types"
)

// Limit appends a Limit node capping output to n rows. Schema passes
// through unchanged.
func (b *Builder) Limit(n int) (*Builder, error) {
	return with(&plan.Limit{N: n, Input: b.plan}), nil
}

// Repartition appends a Repartition node under scheme. Schema passes
// through unchanged.
func (b *Builder) Repartition(scheme plan.RepartitionScheme) (*Builder, error) {
	return with(&plan.Repartition{Input: b.plan, Scheme: scheme}), nil
}

// Explain wraps b's plan, exposing a fixed two-column (plan_type, plan)
// schema describing the wrapped plan rather than its data.
func (b *Builder) Explain(analyze bool) (*Builder, error) {
	sch := schema.FromUnqualified(schema.Schema{Fields: []schema.Field{
		{Name: "plan_type", Type: types.Utf8()},
		{Name: "plan", Type: types.Utf8()},
	}})
	return with(&plan.Explain{Input: b.plan, Analyze: analyze, Sch: sch}), nil
}

// SubqueryAlias re-qualifies every field of b's plan under alias.
func (b *Builder) SubqueryAlias(alias string) (*Builder, error) {
	input := b.plan
	return with(&plan.SubqueryAlias{Input: input, Alias: alias, Sch: input.Schema().Replace(alias)}), nil
}

// Subquery wraps b's plan as an uncorrelated scalar/IN/EXISTS subquery,
// exposing its inner plan's schema unchanged.
func (b *Builder) Subquery() (*Builder, error) {
	return with(&plan.Subquery{Inner: b.plan}), nil
}
