package rewrite

import (
	"testing"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/plan"
	"github.com/arrowplan/arrowplan/scalar"
	"github.com/arrowplan/arrowplan/schema"
	"github.com/arrowplan/arrowplan/types"
	"github.com/stretchr/testify/require"
)

func employeeCSV() schema.QSchema {
	return schema.Qualified("employee_csv", schema.Schema{Fields: []schema.Field{
		{Name: "id", Type: types.Int32()},
		{Name: "state", Type: types.Utf8()},
		{Name: "salary", Type: types.Int32()},
	}})
}

func col(qualifier, name string) *expr.Column {
	return &expr.Column{Qualifier: schema.Qualify(qualifier), Name: name}
}

func TestFromPlanProjectionReplacesExprsKeepsSchema(t *testing.T) {
	require := require.New(t)
	full := employeeCSV()
	scan := &plan.TableScan{Name: "employee_csv", ProjectedSch: full, Projection: []int{0, 1, 2}}
	proj := &plan.Projection{
		Expr:  []expr.Node{col("employee_csv", "id")},
		Input: scan,
		Sch:   schema.QSchema{Fields: []schema.QField{full.Fields[0]}},
	}

	rebuilt, err := FromPlan(proj, []expr.Node{col("employee_csv", "state")}, []plan.Plan{scan})
	require.NoError(err)
	p, ok := rebuilt.(*plan.Projection)
	require.True(ok)
	require.Equal([]expr.Node{col("employee_csv", "state")}, p.Expr)
	require.Equal(proj.Sch, p.Sch)
}

func TestFromPlanTableScanAssertsEmpty(t *testing.T) {
	require := require.New(t)
	scan := &plan.TableScan{Name: "employee_csv", ProjectedSch: employeeCSV()}
	_, err := FromPlan(scan, []expr.Node{col("employee_csv", "id")}, nil)
	require.Error(err)

	rebuilt, err := FromPlan(scan, nil, nil)
	require.NoError(err)
	require.Same(scan, rebuilt)
}

func TestFromPlanAggregateSplitsGroupAndAggr(t *testing.T) {
	require := require.New(t)
	full := employeeCSV()
	scan := &plan.TableScan{Name: "employee_csv", ProjectedSch: full}
	sumSalary := &expr.AggregateFunction{Func: "SUM", Args: []expr.Node{col("employee_csv", "salary")}, Typ: types.Int64()}
	agg := &plan.Aggregate{
		Input:     scan,
		GroupExpr: []expr.Node{col("employee_csv", "state")},
		AggrExpr:  []expr.Node{&expr.Alias{Expr: sumSalary, Name: "total_salary"}},
		Sch: schema.QSchema{Fields: []schema.QField{
			full.Fields[1],
			{Field: schema.Field{Name: "total_salary", Type: types.Int64()}},
		}},
	}

	newCount := &expr.AggregateFunction{Func: "COUNT", Args: []expr.Node{col("employee_csv", "id")}, Typ: types.Int64()}
	rebuilt, err := FromPlan(agg, []expr.Node{col("employee_csv", "state"), &expr.Alias{Expr: newCount, Name: "total_salary"}}, []plan.Plan{scan})
	require.NoError(err)
	a, ok := rebuilt.(*plan.Aggregate)
	require.True(ok)
	require.Len(a.GroupExpr, 1)
	require.Len(a.AggrExpr, 1)
	require.Equal(agg.Sch, a.Sch)
}

func TestFromPlanSortPreservesDirection(t *testing.T) {
	require := require.New(t)
	scan := &plan.TableScan{Name: "employee_csv", ProjectedSch: employeeCSV()}
	sort := &plan.Sort{Expr: []expr.SortExpr{{Expr: col("employee_csv", "salary"), Asc: false}}, Input: scan}

	rebuilt, err := FromPlan(sort, []expr.Node{expr.SortExpr{Expr: col("employee_csv", "salary"), Asc: false}}, []plan.Plan{scan})
	require.NoError(err)
	s, ok := rebuilt.(*plan.Sort)
	require.True(ok)
	require.False(s.Expr[0].Asc)
}

func TestFromPlanJoinRecomputesSchema(t *testing.T) {
	require := require.New(t)
	leftSch := schema.Qualified("t1", schema.Schema{Fields: []schema.Field{{Name: "id", Type: types.Int32()}}})
	rightSch := schema.Qualified("t2", schema.Schema{Fields: []schema.Field{{Name: "id", Type: types.Int32()}}})
	left := &plan.TableScan{Name: "t1", ProjectedSch: leftSch}
	right := &plan.TableScan{Name: "t2", ProjectedSch: rightSch}
	j := &plan.Join{
		Left: left, Right: right, Type: plan.Inner, Constraint: plan.On,
		On:  [][2]*expr.Column{{col("t1", "id"), col("t2", "id")}},
		Sch: leftSch.Append(rightSch),
	}

	newLeft := &plan.TableScan{Name: "t1", ProjectedSch: schema.Qualified("t1", schema.Schema{Fields: []schema.Field{
		{Name: "id", Type: types.Int32()}, {Name: "extra", Type: types.Utf8()},
	}})}
	rebuilt, err := FromPlan(j, nil, []plan.Plan{newLeft, right})
	require.NoError(err)
	nj, ok := rebuilt.(*plan.Join)
	require.True(ok)
	require.Len(nj.Sch.Fields, 3)
}

func TestFromPlanValuesRechunks(t *testing.T) {
	require := require.New(t)
	sch := schema.FromUnqualified(schema.Schema{Fields: []schema.Field{{Name: "column1", Type: types.Int32(), Nullable: true}}})
	v := &plan.Values{Sch: sch, Rows: [][]expr.Node{{&expr.Literal{Value: scalar.Int32(1)}}, {&expr.Literal{Value: scalar.Int32(2)}}}}

	rebuilt, err := FromPlan(v, []expr.Node{&expr.Literal{Value: scalar.Int32(3)}, &expr.Literal{Value: scalar.Int32(4)}}, nil)
	require.NoError(err)
	nv, ok := rebuilt.(*plan.Values)
	require.True(ok)
	require.Len(nv.Rows, 2)
	require.Equal(scalar.Int32(3), nv.Rows[0][0].(*expr.Literal).Value)
}
