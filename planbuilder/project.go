package planbuilder

import (
	"github.com/arrowplan/arrowplan/expr"
	"github.com/arrowplan/arrowplan/plan"
	"github.com/arrowplan/arrowplan/schema"
)

// Project appends a Projection over b's plan (spec.md §4.3.3): Wildcard
// expands to every field of the input schema, QualifiedWildcard(q) expands
// to q's fields only, and every other expression is columnized (bare
// Column -> resolved Column) then normalized. Output names must be unique
// (P2).
func (b *Builder) Project(exprs ...expr.Node) (*Builder, error) {
	return b.ProjectWithAlias("", exprs...)
}

// ProjectWithAlias is Project with every output field re-qualified under
// alias.
func (b *Builder) ProjectWithAlias(alias string, exprs ...expr.Node) (*Builder, error) {
	input := b.plan
	expanded, err := expandWildcards(exprs, input)
	if err != nil {
		return nil, err
	}
	norm, err := columnizeAll(expanded, input)
	if err != nil {
		return nil, err
	}
	fields := make([]schema.QField, len(norm))
	for i, e := range norm {
		f, err := projectionField(e, input.Schema())
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	out := schema.QSchema{Fields: fields}
	if alias != "" {
		out = out.Replace(alias)
	}
	if err := schema.CheckUniqueNames(out); err != nil {
		return nil, err
	}
	return with(&plan.Projection{Expr: norm, Input: input, Sch: out, Alias: alias}), nil
}

// expandWildcards replaces Wildcard with every field of src's schema and
// QualifiedWildcard(q) with q's fields, leaving every other expression
// untouched (spec.md §4.3.3).
func expandWildcards(exprs []expr.Node, src plan.Plan) ([]expr.Node, error) {
	var out []expr.Node
	sch := src.Schema()
	using := src.UsingColumns()
	for _, e := range exprs {
		switch w := e.(type) {
		case expr.Wildcard:
			seen := make(map[string]struct{})
			for _, f := range sch.Fields {
				if _, isUsing := using[f.Field.Name]; isUsing {
					if _, dup := seen[f.Field.Name]; dup {
						continue
					}
					seen[f.Field.Name] = struct{}{}
				}
				out = append(out, &expr.Column{Qualifier: f.Qualifier, Name: f.Field.Name})
			}
		case expr.QualifiedWildcard:
			for _, f := range sch.Fields {
				if f.Qualifier.Equal(&w.Qualifier) {
					out = append(out, &expr.Column{Qualifier: f.Qualifier, Name: f.Field.Name})
				}
			}
		default:
			out = append(out, e)
		}
	}
	return out, nil
}

// projectionField computes the output QField for a normalized projection
// expression: Column keeps its qualifier; Alias renames; everything else
// becomes an unqualified field named after its String() form.
func projectionField(e expr.Node, s schema.QSchema) (schema.QField, error) {
	switch n := e.(type) {
	case *expr.Column:
		f, err := s.Resolve(n.Qualifier, n.Name, nil)
		if err != nil {
			return schema.QField{}, err
		}
		return f, nil
	case *expr.Alias:
		t, err := expr.TypeIn(n.Expr, s)
		if err != nil {
			return schema.QField{}, err
		}
		return schema.QField{Field: schema.Field{Name: n.Name, Type: t, Nullable: true}}, nil
	default:
		t, err := expr.TypeIn(e, s)
		if err != nil {
			return schema.QField{}, err
		}
		return schema.QField{Field: schema.Field{Name: e.String(), Type: t, Nullable: true}}, nil
	}
}
