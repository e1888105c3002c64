package plan

import (
	"testing"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/scalar"
	"github.com/arrowplan/arrowplan/schema"
	"github.com/arrowplan/arrowplan/types"
	"github.com/stretchr/testify/require"
)

func employeeCSV() schema.QSchema {
	return schema.Qualified("employee_csv", schema.Schema{Fields: []schema.Field{
		{Name: "id", Type: types.Int32()},
		{Name: "first_name", Type: types.Utf8()},
		{Name: "last_name", Type: types.Utf8()},
		{Name: "state", Type: types.Utf8()},
		{Name: "salary", Type: types.Int32()},
	}})
}

func col(qualifier, name string) *expr.Column {
	return &expr.Column{Qualifier: schema.Qualify(qualifier), Name: name}
}

// TestScenario1Display reproduces spec.md §8 scenario 1 by hand: a
// TableScan projected to [id, state], filtered by state = "CO", projected
// down to id.
func TestScenario1Display(t *testing.T) {
	require := require.New(t)
	full := employeeCSV()
	projectedSch := schema.QSchema{Fields: []schema.QField{full.Fields[0], full.Fields[3]}}

	scan := &TableScan{Name: "employee_csv", ProjectedSch: projectedSch, Projection: []int{0, 3}}
	filter := &Filter{
		Predicate: &expr.BinaryExpr{Op: expr.Eq, Left: col("employee_csv", "state"), Right: &expr.Literal{Value: scalar.Utf8("CO")}},
		Input:     scan,
	}
	proj := &Projection{
		Expr:  []expr.Node{col("employee_csv", "id")},
		Input: filter,
		Sch:   schema.QSchema{Fields: []schema.QField{full.Fields[0]}},
	}

	want := "Projection: #employee_csv.id\n" +
		"  Filter: #employee_csv.state = Utf8(\"CO\")\n" +
		"    TableScan: employee_csv projection=Some([0, 3])"
	require.Equal(want, proj.String())
}

// TestScenario2Display reproduces spec.md §8 scenario 2: aggregate by
// state, sum(salary) AS total_salary, then project state and the alias.
func TestScenario2Display(t *testing.T) {
	require := require.New(t)
	full := employeeCSV()
	projectedSch := schema.QSchema{Fields: []schema.QField{full.Fields[3], full.Fields[4]}}

	scan := &TableScan{Name: "employee_csv", ProjectedSch: projectedSch, Projection: []int{3, 4}}
	sumSalary := &expr.AggregateFunction{Func: "SUM", Args: []expr.Node{col("employee_csv", "salary")}, Typ: types.Int64()}
	agg := &Aggregate{
		Input:     scan,
		GroupExpr: []expr.Node{col("employee_csv", "state")},
		AggrExpr:  []expr.Node{&expr.Alias{Expr: sumSalary, Name: "total_salary"}},
		Sch: schema.QSchema{Fields: []schema.QField{
			full.Fields[3],
			{Field: schema.Field{Name: "total_salary", Type: types.Int64()}},
		}},
	}
	proj := &Projection{
		Expr:  []expr.Node{col("employee_csv", "state"), &expr.Column{Name: "total_salary"}},
		Input: agg,
		Sch:   agg.Sch,
	}

	want := "Projection: #employee_csv.state, #total_salary\n" +
		"  Aggregate: groupBy=[[#employee_csv.state]], aggr=[[SUM(#employee_csv.salary) AS total_salary]]\n" +
		"    TableScan: employee_csv projection=Some([3, 4])"
	require.Equal(want, proj.String())
}

func TestEmptyRelationAndValuesDisplay(t *testing.T) {
	require := require.New(t)
	er := &EmptyRelation{ProduceOneRow: true, Sch: schema.Empty()}
	require.Equal("EmptyRelation: produce_one_row=true", er.String())

	vals := &Values{
		Sch: schema.FromUnqualified(schema.Schema{Fields: []schema.Field{{Name: "column1", Type: types.Int64(), Nullable: true}}}),
		Rows: [][]expr.Node{
			{&expr.Literal{Value: scalar.Int64(1)}},
			{&expr.Literal{Value: scalar.Int64(2)}},
		},
	}
	require.Equal("Values: 2 rows x 1 columns", vals.String())
	require.Len(vals.Expressions(), 2)
}

func TestUnionFlattenedDisplay(t *testing.T) {
	require := require.New(t)
	leaf := func() Plan {
		return &EmptyRelation{ProduceOneRow: true, Sch: schema.Empty()}
	}
	u := &Union{Ins: []Plan{leaf(), leaf(), leaf(), leaf()}, Sch: schema.Empty()}
	require.Len(u.Inputs(), 4)
	require.Equal("Union\n"+
		"  EmptyRelation: produce_one_row=true\n"+
		"  EmptyRelation: produce_one_row=true\n"+
		"  EmptyRelation: produce_one_row=true\n"+
		"  EmptyRelation: produce_one_row=true", u.String())
}

func TestJoinSchemaAndDisplay(t *testing.T) {
	require := require.New(t)
	left := &TableScan{Name: "t1", ProjectedSch: schema.Qualified("t1", schema.Schema{Fields: []schema.Field{
		{Name: "id", Type: types.Int32()}, {Name: "x", Type: types.Int32()},
	}})}
	right := &TableScan{Name: "t2", ProjectedSch: schema.Qualified("t2", schema.Schema{Fields: []schema.Field{
		{Name: "id", Type: types.Int32()}, {Name: "y", Type: types.Int32()},
	}})}
	j := &Join{
		Left: left, Right: right,
		On:         [][2]*expr.Column{{col("t1", "id"), col("t2", "id")}},
		Type:       Inner,
		Constraint: Using,
		Sch:        left.Schema().Append(right.Schema()),
	}
	require.Equal("Inner Join: #t1.id = #t2.id", j.displayLine())
	require.Equal(map[string]struct{}{"id": {}}, j.UsingColumns())
	require.Len(j.Schema().Fields, 4)
}

func TestCrossJoinCartesianSchema(t *testing.T) {
	require := require.New(t)
	left := &EmptyRelation{Sch: schema.FromUnqualified(schema.Schema{Fields: []schema.Field{{Name: "a", Type: types.Int32()}}})}
	right := &EmptyRelation{Sch: schema.FromUnqualified(schema.Schema{Fields: []schema.Field{{Name: "b", Type: types.Int32()}}})}
	cj := &CrossJoin{Left: left, Right: right, Sch: left.Schema().Append(right.Schema())}
	require.Len(cj.Schema().Fields, 2)
	require.Equal([]Plan{left, right}, cj.Inputs())
}
