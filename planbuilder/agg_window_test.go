package planbuilder

import (
	"testing"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/plan"
	"github.com/arrowplan/arrowplan/schema"
	"github.com/arrowplan/arrowplan/types"
	"github.com/stretchr/testify/require"
)

func TestAggregateOutputSchema(t *testing.T) {
	require := require.New(t)
	b, err := Scan("employee_csv", employeeCSV(), nil)
	require.NoError(err)
	sum := &expr.AggregateFunction{Func: "SUM", Args: []expr.Node{col("employee_csv", "salary")}, Typ: types.Int64()}
	b, err = b.Aggregate([]expr.Node{col("employee_csv", "state")}, []expr.Node{&expr.Alias{Expr: sum, Name: "total_salary"}})
	require.NoError(err)
	require.Equal([]string{"employee_csv.state", "total_salary"}, names(b.Plan().Schema()))
}

func TestWindowAppendsToInputSchema(t *testing.T) {
	require := require.New(t)
	b, err := Scan("employee_csv", employeeCSV(), nil)
	require.NoError(err)
	rank := &expr.WindowFunction{Func: "RANK", PartitionBy: []expr.Node{col("employee_csv", "state")}}
	b, err = b.Window([]expr.Node{&expr.Alias{Expr: rank, Name: "rnk"}})
	require.NoError(err)
	require.Equal(6, len(b.Plan().Schema().Fields))
}

func TestWindowPlanGroupsByPartitionOrder(t *testing.T) {
	require := require.New(t)
	b, err := Scan("employee_csv", employeeCSV(), nil)
	require.NoError(err)

	rankByState := &expr.WindowFunction{Func: "RANK", PartitionBy: []expr.Node{col("employee_csv", "state")}}
	rowNumByStateSalary := &expr.WindowFunction{
		Func:        "ROW_NUMBER",
		PartitionBy: []expr.Node{col("employee_csv", "state")},
		OrderBy:     []expr.SortExpr{{Expr: col("employee_csv", "salary"), Asc: false}},
	}
	b, err = b.WindowPlan([]expr.Node{
		&expr.Alias{Expr: rankByState, Name: "rnk"},
		&expr.Alias{Expr: rowNumByStateSalary, Name: "rn"},
	})
	require.NoError(err)

	// The shallower-sorted group (rnk, no ORDER BY) sits on top; the
	// deeper-sorted, more specific group (rn, one ORDER BY key) sits
	// directly on the scan.
	outer, ok := b.Plan().(*plan.Window)
	require.True(ok)
	require.Len(outer.WindowExpr, 1)
	outerAlias, ok := outer.WindowExpr[0].(*expr.Alias)
	require.True(ok)
	require.Equal("rnk", outerAlias.Name)

	inner, ok := outer.Input.(*plan.Window)
	require.True(ok)
	require.Len(inner.WindowExpr, 1)
	innerAlias, ok := inner.WindowExpr[0].(*expr.Alias)
	require.True(ok)
	require.Equal("rn", innerAlias.Name)
}

func TestLimitAndExplainPassthroughSchema(t *testing.T) {
	require := require.New(t)
	b, err := Scan("employee_csv", employeeCSV(), []int{0})
	require.NoError(err)
	limited, err := b.Limit(10)
	require.NoError(err)
	require.Equal(b.Plan().Schema(), limited.Plan().Schema())

	explained, err := b.Explain(false)
	require.NoError(err)
	require.Equal([]string{"plan_type", "plan"}, names(explained.Plan().Schema()))
}

func TestSubqueryAliasRequalifies(t *testing.T) {
	require := require.New(t)
	b, err := Scan("employee_csv", employeeCSV(), []int{0})
	require.NoError(err)
	aliased, err := b.SubqueryAlias("e")
	require.NoError(err)
	require.Equal([]string{"e.id"}, names(aliased.Plan().Schema()))
}

func TestIntersectUsesSemiJoin(t *testing.T) {
	require := require.New(t)
	left, err := Scan("employee_csv", employeeCSV(), []int{3})
	require.NoError(err)
	right, err := Scan("employee_csv2", employeeCSV(), []int{3})
	require.NoError(err)
	out, err := left.Intersect(right, true)
	require.NoError(err)
	j, ok := out.Plan().(*plan.Join)
	require.True(ok)
	require.Equal(plan.Semi, j.Type)
	require.True(j.NullEqualsNull)
}

func TestExceptUsesAntiJoinWithDistinctWhenNotAll(t *testing.T) {
	require := require.New(t)
	left, err := Scan("employee_csv", employeeCSV(), []int{3})
	require.NoError(err)
	right, err := Scan("employee_csv2", employeeCSV(), []int{3})
	require.NoError(err)
	out, err := left.Except(right, false)
	require.NoError(err)
	j, ok := out.Plan().(*plan.Join)
	require.True(ok)
	require.Equal(plan.Anti, j.Type)
	// left side of the anti join is Distinct()'d: Aggregate + wildcard Projection.
	_, ok = j.Left.(*plan.Projection)
	require.True(ok)
}

func names(s schema.QSchema) []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name()
	}
	return out
}
