package planbuilder

import "github.com/arrowplan/arrowplan/plan"
import "github.com/arrowplan/arrowplan/expr"

// Filter appends a Filter node, normalizing predicate against b's plan
// (spec.md §4.3.4). The output schema equals the input schema exactly.
func (b *Builder) Filter(predicate expr.Node) (*Builder, error) {
	norm, err := columnize(predicate, b.plan)
	if err != nil {
		return nil, err
	}
	return with(&plan.Filter{Predicate: norm, Input: b.plan}), nil
}
