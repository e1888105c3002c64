// Package rewrite implements the plan-rewrite utility an optimizer rule
// driver calls after transforming a plan node's own expressions and inputs
// (spec.md §4.4): given the original node, a new flat expression list, and
// a new input list, FromPlan reconstructs that node's concrete variant,
// preserving every non-expression field (schema, alias, join type,
// partitioning...) except where the variant's own schema is a function of
// its inputs (Join, CrossJoin), which recompute it.
package rewrite

import (
	"fmt"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/plan"
	"github.com/arrowplan/arrowplan/qerrors"
	"github.com/arrowplan/arrowplan/schema"
	"golang.org/x/exp/slices"
)

// FromPlan rebuilds p's concrete variant from newExprs/newInputs. The
// ordering rules of spec.md §4.4 apply per variant (e.g. Aggregate's first
// len(GroupExpr) entries are group expressions, the remainder aggregate
// expressions) — callers are expected to have derived newExprs from
// p.Expressions() by index-preserving transformation, exactly as
// expr.Node.WithNewChildren expects of its own children list.
func FromPlan(p plan.Plan, newExprs []expr.Node, newInputs []plan.Plan) (plan.Plan, error) {
	switch n := p.(type) {
	case *plan.EmptyRelation:
		if err := plan.CheckNoExprsNoInputs("EmptyRelation", newExprs, newInputs); err != nil {
			return nil, err
		}
		return n, nil

	case *plan.Values:
		if len(newInputs) != 0 {
			return nil, fmt.Errorf("%w: Values takes no inputs, got %d", qerrors.ErrInternal, len(newInputs))
		}
		width := len(n.Sch.Fields)
		if width == 0 || len(newExprs) != len(n.Rows)*width {
			return nil, fmt.Errorf("%w: Values expects %d expressions, got %d", qerrors.ErrInternal, len(n.Rows)*width, len(newExprs))
		}
		rows := make([][]expr.Node, len(n.Rows))
		for i := range rows {
			rows[i] = slices.Clone(newExprs[i*width : (i+1)*width])
		}
		return &plan.Values{Sch: n.Sch, Rows: rows}, nil

	case *plan.TableScan:
		// Mirrors the original source's own from_plan: a TableScan's pushdown
		// filters are rewritten by a dedicated predicate-pushdown pass, not
		// through this generic expression-rewrite path, so new_exprs/new_inputs
		// must both be empty here (spec.md §4.4).
		if err := plan.CheckNoExprsNoInputs("TableScan", newExprs, newInputs); err != nil {
			return nil, err
		}
		return n, nil

	case *plan.CreateExternalTable:
		if err := plan.CheckNoExprsNoInputs("CreateExternalTable", newExprs, newInputs); err != nil {
			return nil, err
		}
		return n, nil

	case *plan.DropTable:
		if err := plan.CheckNoExprsNoInputs("DropTable", newExprs, newInputs); err != nil {
			return nil, err
		}
		return n, nil

	case *plan.Projection:
		input, err := oneInput("Projection", newInputs)
		if err != nil {
			return nil, err
		}
		return &plan.Projection{Expr: newExprs, Input: input, Sch: n.Sch, Alias: n.Alias}, nil

	case *plan.Filter:
		input, err := oneInput("Filter", newInputs)
		if err != nil {
			return nil, err
		}
		pred, err := oneExpr("Filter", newExprs)
		if err != nil {
			return nil, err
		}
		return &plan.Filter{Predicate: pred, Input: input}, nil

	case *plan.Sort:
		input, err := oneInput("Sort", newInputs)
		if err != nil {
			return nil, err
		}
		if len(newExprs) != len(n.Expr) {
			return nil, fmt.Errorf("%w: Sort expects %d expressions, got %d", qerrors.ErrInternal, len(n.Expr), len(newExprs))
		}
		sorts := make([]expr.SortExpr, len(newExprs))
		for i, e := range newExprs {
			s, ok := e.(expr.SortExpr)
			if !ok {
				return nil, fmt.Errorf("%w: Sort expression %d is %T, not a SortExpr", qerrors.ErrInternal, i, e)
			}
			sorts[i] = s
		}
		return &plan.Sort{Expr: sorts, Input: input}, nil

	case *plan.Limit:
		input, err := oneInput("Limit", newInputs)
		if err != nil {
			return nil, err
		}
		if len(newExprs) != 0 {
			return nil, fmt.Errorf("%w: Limit takes no expressions, got %d", qerrors.ErrInternal, len(newExprs))
		}
		return &plan.Limit{N: n.N, Input: input}, nil

	case *plan.SubqueryAlias:
		input, err := oneInput("SubqueryAlias", newInputs)
		if err != nil {
			return nil, err
		}
		if len(newExprs) != 0 {
			return nil, fmt.Errorf("%w: SubqueryAlias takes no expressions, got %d", qerrors.ErrInternal, len(newExprs))
		}
		return &plan.SubqueryAlias{Input: input, Alias: n.Alias, Sch: n.Sch}, nil

	case *plan.Subquery:
		input, err := oneInput("Subquery", newInputs)
		if err != nil {
			return nil, err
		}
		if len(newExprs) != 0 {
			return nil, fmt.Errorf("%w: Subquery takes no expressions, got %d", qerrors.ErrInternal, len(newExprs))
		}
		return &plan.Subquery{Inner: input}, nil

	case *plan.Explain:
		input, err := oneInput("Explain", newInputs)
		if err != nil {
			return nil, err
		}
		if len(newExprs) != 0 {
			return nil, fmt.Errorf("%w: Explain takes no expressions, got %d", qerrors.ErrInternal, len(newExprs))
		}
		return &plan.Explain{Input: input, Analyze: n.Analyze, Sch: n.Sch}, nil

	case *plan.Repartition:
		input, err := oneInput("Repartition", newInputs)
		if err != nil {
			return nil, err
		}
		if len(newExprs) != len(n.Scheme.Exprs) {
			return nil, fmt.Errorf("%w: Repartition expects %d expressions, got %d", qerrors.ErrInternal, len(n.Scheme.Exprs), len(newExprs))
		}
		return &plan.Repartition{Input: input, Scheme: plan.RepartitionScheme{Kind: n.Scheme.Kind, N: n.Scheme.N, Exprs: newExprs}}, nil

	case *plan.Aggregate:
		input, err := oneInput("Aggregate", newInputs)
		if err != nil {
			return nil, err
		}
		want := len(n.GroupExpr) + len(n.AggrExpr)
		if len(newExprs) != want {
			return nil, fmt.Errorf("%w: Aggregate expects %d expressions, got %d", qerrors.ErrInternal, want, len(newExprs))
		}
		return &plan.Aggregate{
			Input:     input,
			GroupExpr: slices.Clone(newExprs[:len(n.GroupExpr)]),
			AggrExpr:  slices.Clone(newExprs[len(n.GroupExpr):]),
			Sch:       n.Sch,
		}, nil

	case *plan.Window:
		input, err := oneInput("Window", newInputs)
		if err != nil {
			return nil, err
		}
		if len(newExprs) != len(n.WindowExpr) {
			return nil, fmt.Errorf("%w: Window expects %d expressions, got %d", qerrors.ErrInternal, len(n.WindowExpr), len(newExprs))
		}
		return &plan.Window{Input: input, WindowExpr: newExprs, Sch: n.Sch}, nil

	case *plan.Join:
		if len(newExprs) != 0 {
			return nil, fmt.Errorf("%w: Join takes no expressions, got %d", qerrors.ErrInternal, len(newExprs))
		}
		if len(newInputs) != 2 {
			return nil, fmt.Errorf("%w: Join expects 2 inputs, got %d", qerrors.ErrInternal, len(newInputs))
		}
		sch, err := joinOutputSchema(n.Type, newInputs[0].Schema(), newInputs[1].Schema())
		if err != nil {
			return nil, err
		}
		return &plan.Join{
			Left: newInputs[0], Right: newInputs[1], On: n.On, Type: n.Type,
			Constraint: n.Constraint, Sch: sch, NullEqualsNull: n.NullEqualsNull,
		}, nil

	case *plan.CrossJoin:
		if len(newExprs) != 0 {
			return nil, fmt.Errorf("%w: CrossJoin takes no expressions, got %d", qerrors.ErrInternal, len(newExprs))
		}
		if len(newInputs) != 2 {
			return nil, fmt.Errorf("%w: CrossJoin expects 2 inputs, got %d", qerrors.ErrInternal, len(newInputs))
		}
		return &plan.CrossJoin{Left: newInputs[0], Right: newInputs[1], Sch: newInputs[0].Schema().Append(newInputs[1].Schema())}, nil

	case *plan.Union:
		if len(newExprs) != 0 {
			return nil, fmt.Errorf("%w: Union takes no expressions, got %d", qerrors.ErrInternal, len(newExprs))
		}
		if len(newInputs) == 0 {
			return nil, fmt.Errorf("%w", qerrors.ErrEmptyUnion)
		}
		return &plan.Union{Ins: newInputs, Sch: n.Sch, Alias: n.Alias}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported plan node %T", qerrors.ErrInternal, p)
	}
}

func oneInput(kind string, newInputs []plan.Plan) (plan.Plan, error) {
	if len(newInputs) != 1 {
		return nil, fmt.Errorf("%w: %s expects 1 input, got %d", qerrors.ErrInternal, kind, len(newInputs))
	}
	return newInputs[0], nil
}

func oneExpr(kind string, newExprs []expr.Node) (expr.Node, error) {
	if len(newExprs) != 1 {
		return nil, fmt.Errorf("%w: %s expects 1 expression, got %d", qerrors.ErrInternal, kind, len(newExprs))
	}
	return newExprs[0], nil
}

// joinOutputSchema mirrors planbuilder's own P5 schema rule, duplicated
// here (rather than imported) since planbuilder sits beside this package,
// not beneath it — importing it would create a cycle the moment
// planbuilder needs anything from rewrite.
func joinOutputSchema(t plan.JoinType, left, right schema.QSchema) (schema.QSchema, error) {
	switch t {
	case plan.Inner, plan.Left, plan.Right, plan.Full:
		return left.Append(right), nil
	case plan.Semi, plan.Anti:
		return left, nil
	default:
		return schema.QSchema{}, fmt.Errorf("%w: unknown join type %d", qerrors.ErrInternal, t)
	}
}
