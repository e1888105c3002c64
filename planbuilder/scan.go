package planbuilder

import (
	"fmt"

	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/plan"
	"github.com/arrowplan/arrowplan/qerrors"
	"github.com/arrowplan/arrowplan/scalar"
	"github.com/arrowplan/arrowplan/schema"
	"github.com/arrowplan/arrowplan/types"
)

// Scan creates a TableScan over table, optionally restricted to the
// columns in projection (indices into src.Schema().Fields). A nil
// projection scans every column (spec.md §4.3.1).
func Scan(table string, src TableProvider, projection []int) (*Builder, error) {
	return ScanWithFilters(table, src, projection, nil)
}

// ScanWithFilters is Scan plus filter expressions pushed down to the scan
// (spec.md §4.3.1); filters are normalized against the scan's own output
// schema, matching TableScan.Filters' role as already-resolved predicates.
func ScanWithFilters(table string, src TableProvider, projection []int, filters []expr.Node) (*Builder, error) {
	if table == "" {
		return nil, fmt.Errorf("%w: scan requires a non-empty table name", qerrors.ErrInternal)
	}
	full := src.Schema()
	var projected schema.Schema
	if projection == nil {
		projected = full
	} else {
		projected = schema.Schema{Fields: make([]schema.Field, len(projection))}
		for i, idx := range projection {
			if idx < 0 || idx >= len(full.Fields) {
				return nil, fmt.Errorf("%w: projection index %d out of range for %s", qerrors.ErrFieldNotFound, idx, table)
			}
			projected.Fields[i] = full.Fields[idx]
		}
	}
	scan := &plan.TableScan{
		Name:         table,
		ProjectedSch: schema.Qualified(table, projected),
		Projection:   projection,
	}
	normFilters, err := columnizeAll(filters, scan)
	if err != nil {
		return nil, err
	}
	scan.Filters = normFilters
	return with(scan), nil
}

// Values builds a Values relation from a non-empty, uniform-width matrix of
// expressions (spec.md §4.3.2). Column types are inferred from the first
// non-null cell of each column; later rows must agree.
func Values(rows [][]expr.Node) (*Builder, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w", qerrors.ErrEmptyValues)
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("%w", qerrors.ErrEmptyValues)
	}
	for _, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row width %d, expected %d", qerrors.ErrInconsistentRowShape, len(row), width)
		}
	}
	fields := make([]schema.Field, width)
	for col := 0; col < width; col++ {
		fields[col] = schema.Field{Name: fmt.Sprintf("column%d", col+1), Nullable: true}
		found := false
		for _, row := range rows {
			t, isNull, err := literalType(row[col])
			if err != nil {
				return nil, err
			}
			if isNull {
				continue
			}
			if !found {
				fields[col].Type = t
				found = true
				continue
			}
			if !fields[col].Type.Equal(t) {
				return nil, fmt.Errorf("%w: column %d has both %s and %s", qerrors.ErrInconsistentColType, col, fields[col].Type, t)
			}
		}
	}
	retyped := make([][]expr.Node, len(rows))
	for r, row := range rows {
		retyped[r] = append([]expr.Node(nil), row...)
		for col, cell := range row {
			if lit := cell.(*expr.Literal); lit.Value.IsNull() && !lit.Value.Type().Equal(fields[col].Type) {
				typedNull, err := scalar.NullOf(fields[col].Type)
				if err != nil {
					return nil, err
				}
				retyped[r][col] = &expr.Literal{Value: typedNull}
			}
		}
	}
	return with(&plan.Values{
		Sch:  schema.FromUnqualified(schema.Schema{Fields: fields}),
		Rows: retyped,
	}), nil
}

// literalType reports the logical type of a Values cell. Only Literal
// nodes are meaningful cell values for this builder (spec.md §4.3.2 talks
// about "the null literal" and "column type" retyping, not arbitrary
// expressions); isNull is true for a null literal, which carries no usable
// type of its own and is retyped once a non-null cell in the column fixes
// one.
func literalType(n expr.Node) (t types.Type, isNull bool, err error) {
	lit, ok := n.(*expr.Literal)
	if !ok {
		return types.Type{}, false, fmt.Errorf("%w: VALUES cell must be a literal, got %T", qerrors.ErrInternal, n)
	}
	if lit.Value.IsNull() {
		return types.Type{}, true, nil
	}
	return lit.Value.Type(), false, nil
}
