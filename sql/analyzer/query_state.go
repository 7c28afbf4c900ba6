// Copyright 2023 Skiff Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analyzer

import (
	"strconv"
	"strings"

	"github.com/dolthub/vitess/go/vt/sqlparser"
	"github.com/mitchellh/hashstructure"

	"github.com/skiffdb/skiff/sql"
	"github.com/skiffdb/skiff/sql/expression"
)

// OrderField is one analyzed ORDER BY field.
type OrderField struct {
	Expr       sql.Expression
	Descending bool
}

// QueryState is the analyzed form of one select statement. The analysis
// stages fill it in a fixed order: filter, group by, aggregate, having,
// order by, projection. Every column reference in its expression lists is
// bound to a position of JoinedSchema.
type QueryState struct {
	// JoinedSchema is the composed schema of the FROM clause.
	JoinedSchema sql.QualifiedSchema
	// BeforeAggregateSchema is the schema entering the aggregation stage:
	// the group keys and aggregate arguments, or JoinedSchema when rows
	// reach aggregation unchanged.
	BeforeAggregateSchema sql.QualifiedSchema
	// AfterAggregateSchema is the schema leaving the aggregation stage:
	// group keys, then aggregates. Equal to JoinedSchema when the
	// statement does not aggregate.
	AfterAggregateSchema sql.QualifiedSchema
	// FinalizeSchema is the output schema of the statement, derived from
	// the projection. It is the only schema enclosing queries see.
	FinalizeSchema sql.Schema

	// FilterPredicate is the conjunction of all join conditions and the
	// WHERE clause, nil when there is neither.
	FilterPredicate sql.Expression
	// BeforeGroupByExprs are the expressions computed on joined rows
	// before grouping: group keys and aggregate arguments, deduplicated.
	BeforeGroupByExprs []sql.Expression
	// GroupByExprs are the group keys.
	GroupByExprs []sql.Expression
	// AggregateExprs are the aggregate calls of the projection.
	AggregateExprs []sql.Expression
	// BeforeHavingExprs are aggregate calls appearing only in HAVING or
	// ORDER BY. The aggregation stage computes them even though they do
	// not project out.
	BeforeHavingExprs []sql.Expression
	// HavingPredicate is the HAVING clause, nil when absent.
	HavingPredicate sql.Expression
	// OrderByExprs are the ORDER BY fields in declaration order.
	OrderByExprs []OrderField
	// ProjectionExprs are the output expressions, stars expanded.
	ProjectionExprs []sql.Expression
	// ProjectionAliases maps a lowercased projection alias to the
	// expression it names.
	ProjectionAliases map[string]sql.Expression
	// Distinct is whether the statement deduplicates its output rows.
	Distinct bool

	analyzer       *Analyzer
	joinConditions []sqlparser.Expr
	rawAliases     map[string]sqlparser.Expr
	beforeSeen     map[uint64]struct{}
	aggSeen        map[uint64]struct{}
}

// newQueryState resolves the FROM clause of a select statement into a joined
// schema and returns the state the analysis stages fill in. Everything beyond
// JoinedSchema is empty until the owning stage has run.
func (a *Analyzer) newQueryState(ctx *sql.Context, sel *sqlparser.Select, depth int) (*QueryState, error) {
	span, ctx := ctx.Span("create_query_state")
	defer span.Finish()

	rpn, err := BuildRelationRPN(sel.From)
	if err != nil {
		return nil, err
	}

	a.Log("relation sequence: %s", rpn)

	joined, conditions, err := a.resolveRelations(ctx, rpn, depth)
	if err != nil {
		return nil, err
	}

	aliases := make(map[string]sqlparser.Expr)
	for _, se := range sel.SelectExprs {
		if ae, ok := se.(*sqlparser.AliasedExpr); ok && !ae.As.IsEmpty() {
			aliases[ae.As.Lowered()] = ae.Expr
		}
	}

	return &QueryState{
		JoinedSchema:          joined,
		BeforeAggregateSchema: sql.QualifiedSchema{},
		AfterAggregateSchema:  sql.QualifiedSchema{},
		FinalizeSchema:        sql.Schema{},
		ProjectionAliases:     map[string]sql.Expression{},
		analyzer:              a,
		joinConditions:        conditions,
		rawAliases:            aliases,
		beforeSeen:            map[uint64]struct{}{},
		aggSeen:               map[uint64]struct{}{},
	}, nil
}

// analyzeFilter folds the join conditions, in the order the joins folded,
// and the WHERE clause into a single predicate. Projection aliases are not
// visible here.
func (qs *QueryState) analyzeFilter(ctx *sql.Context, sel *sqlparser.Select) error {
	ea := &ExpressionAnalyzer{analyzer: qs.analyzer, schema: qs.JoinedSchema, clause: "ON"}

	var predicates []sql.Expression
	for _, cond := range qs.joinConditions {
		p, err := ea.Analyze(ctx, cond)
		if err != nil {
			return err
		}
		predicates = append(predicates, p)
	}

	if sel.Where != nil {
		ea.clause = "WHERE"
		p, err := ea.Analyze(ctx, sel.Where.Expr)
		if err != nil {
			return err
		}
		predicates = append(predicates, p)
	}

	qs.FilterPredicate = expression.JoinAnd(predicates...)
	return nil
}

// analyzeGroupBy binds the group keys. A key may be a column reference, a
// computed expression, a projection alias or a 1-based ordinal into the
// select list.
func (qs *QueryState) analyzeGroupBy(ctx *sql.Context, sel *sqlparser.Select) error {
	if len(sel.GroupBy) == 0 {
		return nil
	}

	ea := &ExpressionAnalyzer{
		analyzer: qs.analyzer,
		schema:   qs.JoinedSchema,
		aliases:  qs.rawAliases,
		clause:   "GROUP BY",
	}

	for _, g := range sel.GroupBy {
		expr := g
		if pos, ok := intOrdinal(g); ok {
			e, err := positionalExpr(sel, pos, "GROUP BY")
			if err != nil {
				return err
			}
			expr = e
		}

		key, err := ea.Analyze(ctx, expr)
		if err != nil {
			return err
		}

		qs.GroupByExprs = append(qs.GroupByExprs, key)
		qs.addBeforeGroupBy(key)
	}

	return nil
}

// analyzeAggregate collects every aggregate call of the projection, HAVING
// and ORDER BY clauses, deduplicates them, and derives the schemas around
// the aggregation stage. Arguments of aggregates are pushed into the before
// group by list since they are computed on pre-aggregation rows.
func (qs *QueryState) analyzeAggregate(ctx *sql.Context, sel *sqlparser.Select) error {
	projAggs := collectAggregations(sel.SelectExprs)

	var extra []sqlparser.SQLNode
	if sel.Having != nil {
		extra = append(extra, sel.Having.Expr)
	}
	for _, o := range sel.OrderBy {
		extra = append(extra, o.Expr)
	}
	extraAggs := collectAggregations(extra...)

	if len(projAggs) == 0 && len(extraAggs) == 0 && len(qs.GroupByExprs) == 0 {
		qs.BeforeAggregateSchema = qs.JoinedSchema
		qs.AfterAggregateSchema = qs.JoinedSchema
		return nil
	}

	ea := &ExpressionAnalyzer{
		analyzer:        qs.analyzer,
		schema:          qs.JoinedSchema,
		clause:          "SELECT",
		allowAggregates: true,
	}

	for _, fe := range projAggs {
		agg, err := ea.Analyze(ctx, fe)
		if err != nil {
			return err
		}
		if qs.seenAggregate(agg) {
			continue
		}
		qs.AggregateExprs = append(qs.AggregateExprs, agg)
		qs.addAggregateArgs(agg)
	}

	for _, fe := range extraAggs {
		agg, err := ea.Analyze(ctx, fe)
		if err != nil {
			return err
		}
		if qs.seenAggregate(agg) {
			continue
		}
		qs.BeforeHavingExprs = append(qs.BeforeHavingExprs, agg)
		qs.addAggregateArgs(agg)
	}

	if len(qs.BeforeGroupByExprs) == 0 {
		qs.BeforeAggregateSchema = qs.JoinedSchema
	} else {
		qs.BeforeAggregateSchema = schemaFromExprs(qs.BeforeGroupByExprs)
	}

	after := make([]sql.Expression, 0, len(qs.GroupByExprs)+len(qs.AggregateExprs)+len(qs.BeforeHavingExprs))
	after = append(after, qs.GroupByExprs...)
	after = append(after, qs.AggregateExprs...)
	after = append(after, qs.BeforeHavingExprs...)
	qs.AfterAggregateSchema = schemaFromExprs(after)

	qs.analyzer.Log("%d group keys, %d aggregates",
		len(qs.GroupByExprs), len(qs.AggregateExprs)+len(qs.BeforeHavingExprs))

	return nil
}

func (qs *QueryState) analyzeHaving(ctx *sql.Context, sel *sqlparser.Select) error {
	if sel.Having == nil {
		return nil
	}

	ea := &ExpressionAnalyzer{
		analyzer:        qs.analyzer,
		schema:          qs.JoinedSchema,
		aliases:         qs.rawAliases,
		clause:          "HAVING",
		allowAggregates: true,
	}

	p, err := ea.Analyze(ctx, sel.Having.Expr)
	if err != nil {
		return err
	}

	qs.HavingPredicate = p
	return nil
}

func (qs *QueryState) analyzeOrderBy(ctx *sql.Context, sel *sqlparser.Select) error {
	if len(sel.OrderBy) == 0 {
		return nil
	}

	ea := &ExpressionAnalyzer{
		analyzer:        qs.analyzer,
		schema:          qs.JoinedSchema,
		aliases:         qs.rawAliases,
		clause:          "ORDER BY",
		allowAggregates: true,
	}

	for _, o := range sel.OrderBy {
		expr := o.Expr
		if pos, ok := intOrdinal(o.Expr); ok {
			e, err := positionalExpr(sel, pos, "ORDER BY")
			if err != nil {
				return err
			}
			expr = e
		}

		e, err := ea.Analyze(ctx, expr)
		if err != nil {
			return err
		}

		qs.OrderByExprs = append(qs.OrderByExprs, OrderField{
			Expr:       e,
			Descending: o.Direction == sqlparser.DescScr,
		})
	}

	return nil
}

// analyzeProjection binds the select list, expanding stars against the
// joined schema, and derives the finalize schema. Aliased expressions keep
// their alias as output column name and are recorded in ProjectionAliases.
func (qs *QueryState) analyzeProjection(ctx *sql.Context, sel *sqlparser.Select) error {
	ea := &ExpressionAnalyzer{
		analyzer:        qs.analyzer,
		schema:          qs.JoinedSchema,
		clause:          "SELECT",
		allowAggregates: true,
	}

	finalize := make(sql.Schema, 0, len(sel.SelectExprs))

	for _, se := range sel.SelectExprs {
		switch e := se.(type) {
		case *sqlparser.StarExpr:
			qualifier := starQualifierPath(e.TableName)

			matched := false
			for i, col := range qs.JoinedSchema {
				if len(qualifier) > 0 && !col.HasPrefix(qualifier) {
					continue
				}
				matched = true
				qs.ProjectionExprs = append(qs.ProjectionExprs,
					expression.NewGetField(i, col.Prefix, col.Name, col.Type, col.Nullable))
				finalize = append(finalize, col.Column)
			}
			if len(qualifier) > 0 && !matched {
				return sql.ErrTableNotFound.New(strings.Join(qualifier, "."))
			}
		case *sqlparser.AliasedExpr:
			expr, err := ea.Analyze(ctx, e.Expr)
			if err != nil {
				return err
			}

			if !e.As.IsEmpty() {
				name := e.As.String()
				qs.ProjectionAliases[e.As.Lowered()] = expr
				qs.ProjectionExprs = append(qs.ProjectionExprs, expression.NewAlias(name, expr))
				finalize = append(finalize, &sql.Column{
					Name:     name,
					Type:     expr.Type(),
					Nullable: expr.IsNullable(),
				})
				continue
			}

			qs.ProjectionExprs = append(qs.ProjectionExprs, expr)
			finalize = append(finalize, finalizeColumn(expr))
		default:
			return sql.ErrUnsupportedSyntax.New(sqlparser.String(se))
		}
	}

	qs.FinalizeSchema = finalize
	qs.Distinct = sel.Distinct != ""

	qs.analyzer.Log("finalize schema: %d columns", len(finalize))

	return nil
}

func (qs *QueryState) addBeforeGroupBy(e sql.Expression) {
	if key, ok := exprKey(e); ok {
		if _, seen := qs.beforeSeen[key]; seen {
			return
		}
		qs.beforeSeen[key] = struct{}{}
	}
	qs.BeforeGroupByExprs = append(qs.BeforeGroupByExprs, e)
}

func (qs *QueryState) seenAggregate(e sql.Expression) bool {
	key, ok := exprKey(e)
	if !ok {
		return false
	}
	if _, seen := qs.aggSeen[key]; seen {
		return true
	}
	qs.aggSeen[key] = struct{}{}
	return false
}

func (qs *QueryState) addAggregateArgs(agg sql.Expression) {
	for _, child := range agg.Children() {
		if _, ok := child.(*expression.Star); ok {
			continue
		}
		qs.addBeforeGroupBy(child)
	}
}

// exprKey is the deduplication key of an analyzed expression. Two references
// to the same column through different spellings resolve to the same bound
// expression and therefore the same key.
func exprKey(e sql.Expression) (uint64, bool) {
	key, err := hashstructure.Hash(e.String(), nil)
	if err != nil {
		return 0, false
	}
	return key, true
}

func intOrdinal(e sqlparser.Expr) (int, bool) {
	v, ok := e.(*sqlparser.SQLVal)
	if !ok || v.Type != sqlparser.IntVal {
		return 0, false
	}
	n, err := strconv.Atoi(string(v.Val))
	if err != nil {
		return 0, false
	}
	return n, true
}

// positionalExpr maps a 1-based ordinal to the select expression it names.
func positionalExpr(sel *sqlparser.Select, pos int, clause string) (sqlparser.Expr, error) {
	if pos < 1 || pos > len(sel.SelectExprs) {
		return nil, sql.ErrColumnIndexOutOfRange.New(pos, clause)
	}
	ae, ok := sel.SelectExprs[pos-1].(*sqlparser.AliasedExpr)
	if !ok {
		return nil, sql.ErrUnsupportedFeature.New(
			"ordinal reference to " + sqlparser.String(sel.SelectExprs[pos-1]))
	}
	return ae.Expr, nil
}

func starQualifierPath(tn sqlparser.TableName) []string {
	if tn.Name.IsEmpty() {
		return nil
	}
	if tn.Qualifier.IsEmpty() {
		return []string{tn.Name.String()}
	}
	return []string{tn.Qualifier.String(), tn.Name.String()}
}

// schemaFromExprs derives a schema from bound expressions. Column references
// keep their name path so they stay reachable qualified, anything computed is
// only reachable by its textual form.
func schemaFromExprs(exprs []sql.Expression) sql.QualifiedSchema {
	schema := make(sql.QualifiedSchema, 0, len(exprs))
	for _, e := range exprs {
		if gf, ok := e.(*expression.GetField); ok {
			var source string
			if p := gf.Path(); len(p) > 0 {
				source = p[len(p)-1]
			}
			schema = append(schema, &sql.QualifiedColumn{
				Column: &sql.Column{
					Name:     gf.Name(),
					Type:     gf.Type(),
					Nullable: gf.IsNullable(),
					Source:   source,
				},
				Prefix: gf.Path(),
			})
			continue
		}

		schema = append(schema, &sql.QualifiedColumn{
			Column: &sql.Column{
				Name:     e.String(),
				Type:     e.Type(),
				Nullable: e.IsNullable(),
			},
		})
	}
	return schema
}

func finalizeColumn(e sql.Expression) *sql.Column {
	if gf, ok := e.(*expression.GetField); ok {
		var source string
		if p := gf.Path(); len(p) > 0 {
			source = p[len(p)-1]
		}
		return &sql.Column{
			Name:     gf.Name(),
			Type:     gf.Type(),
			Nullable: gf.IsNullable(),
			Source:   source,
		}
	}

	return &sql.Column{
		Name:     e.String(),
		Type:     e.Type(),
		Nullable: e.IsNullable(),
	}
}
