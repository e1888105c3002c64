package planbuilder

import (
	"testing"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/plan"
	"github.com/arrowplan/arrowplan/scalar"
	"github.com/arrowplan/arrowplan/schema"
	"github.com/arrowplan/arrowplan/types"
	"github.com/stretchr/testify/require"
)

type staticTable struct{ sch schema.Schema }

func (t staticTable) Schema() schema.Schema { return t.sch }

func employeeCSV() staticTable {
	return staticTable{schema.Schema{Fields: []schema.Field{
		{Name: "id", Type: types.Int32()},
		{Name: "first_name", Type: types.Utf8()},
		{Name: "last_name", Type: types.Utf8()},
		{Name: "state", Type: types.Utf8()},
		{Name: "salary", Type: types.Int32()},
	}}}
}

func col(qualifier, name string) *expr.Column {
	return &expr.Column{Qualifier: schema.Qualify(qualifier), Name: name}
}

func lit(v scalar.Value) *expr.Literal { return &expr.Literal{Value: v} }

// TestScenario1EndToEnd reproduces spec.md §8 scenario 1 through the actual
// fluent builder API, rather than hand-constructed plan nodes.
func TestScenario1EndToEnd(t *testing.T) {
	require := require.New(t)
	b, err := Scan("employee_csv", employeeCSV(), []int{0, 3})
	require.NoError(err)
	b, err = b.Filter(&expr.BinaryExpr{Op: expr.Eq, Left: col("employee_csv", "state"), Right: lit(scalar.Utf8("CO"))})
	require.NoError(err)
	b, err = b.Project(col("employee_csv", "id"))
	require.NoError(err)

	want := "Projection: #employee_csv.id\n" +
		"  Filter: #employee_csv.state = Utf8(\"CO\")\n" +
		"    TableScan: employee_csv projection=Some([0, 3])"
	require.Equal(want, b.Plan().String())
}

// TestScenario2EndToEnd reproduces spec.md §8 scenario 2.
func TestScenario2EndToEnd(t *testing.T) {
	require := require.New(t)
	b, err := Scan("employee_csv", employeeCSV(), []int{3, 4})
	require.NoError(err)
	sumSalary := &expr.AggregateFunction{Func: "SUM", Args: []expr.Node{col("employee_csv", "salary")}, Typ: types.Int64()}
	b, err = b.Aggregate(
		[]expr.Node{col("employee_csv", "state")},
		[]expr.Node{&expr.Alias{Expr: sumSalary, Name: "total_salary"}},
	)
	require.NoError(err)
	b, err = b.Project(col("employee_csv", "state"), &expr.Column{Name: "total_salary"})
	require.NoError(err)

	want := "Projection: #employee_csv.state, #total_salary\n" +
		"  Aggregate: groupBy=[[#employee_csv.state]], aggr=[[SUM(#employee_csv.salary) AS total_salary]]\n" +
		"    TableScan: employee_csv projection=Some([3, 4])"
	require.Equal(want, b.Plan().String())
}

// TestScenario3WildcardUsingDedup reproduces spec.md §8 scenario 3: a
// `SELECT * FROM t1 JOIN t2 USING (id)` expands to id once, then t1's other
// fields, then t2's other fields.
func TestScenario3WildcardUsingDedup(t *testing.T) {
	require := require.New(t)
	t1Sch := staticTable{schema.Schema{Fields: []schema.Field{
		{Name: "id", Type: types.Int32()},
		{Name: "a", Type: types.Utf8()},
	}}}
	t2Sch := staticTable{schema.Schema{Fields: []schema.Field{
		{Name: "id", Type: types.Int32()},
		{Name: "b", Type: types.Utf8()},
	}}}
	left, err := Scan("t1", t1Sch, nil)
	require.NoError(err)
	right, err := Scan("t2", t2Sch, nil)
	require.NoError(err)
	joined, err := left.JoinUsing(right, plan.Inner, []string{"id"})
	require.NoError(err)
	proj, err := joined.Project(expr.Wildcard{})
	require.NoError(err)

	var names []string
	for _, f := range proj.Plan().Schema().Fields {
		names = append(names, f.Name())
	}
	require.Equal([]string{"t1.id", "t1.a", "t2.b"}, names)
}

// TestScenario4SortBackPropagation reproduces spec.md §8 scenario 4: sorting
// by a column an outer Projection already dropped widens the inner
// Projection, then restores the original output schema above the Sort.
func TestScenario4SortBackPropagation(t *testing.T) {
	require := require.New(t)
	b, err := Scan("employee_csv", employeeCSV(), nil)
	require.NoError(err)
	b, err = b.Project(col("employee_csv", "state"), col("employee_csv", "salary"))
	require.NoError(err)
	b, err = b.Project(col("", "state"))
	require.NoError(err)
	b, err = b.Sort(expr.SortExpr{Expr: col("", "salary"), Asc: false})
	require.NoError(err)

	outer, ok := b.Plan().(*plan.Projection)
	require.True(ok)
	require.Equal([]string{"state"}, fieldNames(outer.Sch))

	sortNode, ok := outer.Input.(*plan.Sort)
	require.True(ok)
	require.Len(sortNode.Expr, 1)

	widened, ok := sortNode.Input.(*plan.Projection)
	require.True(ok)
	require.Equal([]string{"state", "salary"}, fieldNames(widened.Sch))
}

// TestScenario5UnionFlattening reproduces spec.md §8 scenario 5: a chain of
// three UNIONs over the same relation flattens into one N-ary Union.
func TestScenario5UnionFlattening(t *testing.T) {
	require := require.New(t)
	scan := func() *Builder {
		b, err := Scan("employee_csv", employeeCSV(), []int{0})
		require.NoError(err)
		return b
	}
	u1, err := Union(scan(), scan())
	require.NoError(err)
	u2, err := Union(u1, scan())
	require.NoError(err)
	u3, err := Union(u2, scan())
	require.NoError(err)

	union, ok := u3.Plan().(*plan.Union)
	require.True(ok)
	require.Len(union.Ins, 4)
}

func TestJoinKeyArityMismatch(t *testing.T) {
	require := require.New(t)
	left, err := Scan("employee_csv", employeeCSV(), []int{0})
	require.NoError(err)
	right, err := Scan("employee_csv2", employeeCSV(), []int{0})
	require.NoError(err)
	_, err = left.Join(right, plan.Inner, []expr.Node{col("employee_csv", "id")}, nil)
	require.Error(err)
}

func TestJoinKeySwappedQualifiers(t *testing.T) {
	require := require.New(t)
	left, err := Scan("t1", staticTable{schema.Schema{Fields: []schema.Field{{Name: "id", Type: types.Int32()}}}}, nil)
	require.NoError(err)
	right, err := Scan("t2", staticTable{schema.Schema{Fields: []schema.Field{{Name: "id", Type: types.Int32()}}}}, nil)
	require.NoError(err)

	joined, err := left.Join(right, plan.Inner, []expr.Node{col("t2", "id")}, []expr.Node{col("t1", "id")})
	require.NoError(err)
	j, ok := joined.Plan().(*plan.Join)
	require.True(ok)
	require.Equal("t1", j.On[0][0].Qualifier.String())
	require.Equal("t2", j.On[0][1].Qualifier.String())
}

func TestDistinct(t *testing.T) {
	require := require.New(t)
	b, err := Scan("employee_csv", employeeCSV(), []int{3})
	require.NoError(err)
	b, err = b.Distinct()
	require.NoError(err)
	require.Equal([]string{"state"}, fieldNames(b.Plan().Schema()))
}

func fieldNames(s schema.QSchema) []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Field.Name
	}
	return out
}
