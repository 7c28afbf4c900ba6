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
	"fmt"
	"strconv"

	"github.com/dolthub/vitess/go/vt/sqlparser"

	"github.com/skiffdb/skiff/sql"
	"github.com/skiffdb/skiff/sql/expression"
)

// ExpressionAnalyzer binds AST expressions against a schema, producing
// resolved expression trees. Column references become positions into the
// schema, function names are looked up in the catalog.
type ExpressionAnalyzer struct {
	analyzer *Analyzer
	schema   sql.QualifiedSchema
	// aliases are the raw projection aliases, visible to unqualified
	// references in the clauses that allow alias backreferences.
	aliases map[string]sqlparser.Expr
	// clause names the clause being analyzed, for error messages.
	clause string
	// allowAggregates permits aggregate function calls.
	allowAggregates bool
	// inAggregate is set while analyzing the arguments of an aggregate.
	inAggregate bool
	// expanding guards alias expansion against reference cycles.
	expanding map[string]bool
}

// NewExpressionAnalyzer returns an analyzer binding expressions against the
// given schema, with no alias backreferences and aggregates rejected.
func NewExpressionAnalyzer(a *Analyzer, schema sql.QualifiedSchema) *ExpressionAnalyzer {
	return &ExpressionAnalyzer{analyzer: a, schema: schema}
}

// Analyze resolves one AST expression.
func (ea *ExpressionAnalyzer) Analyze(ctx *sql.Context, e sqlparser.Expr) (sql.Expression, error) {
	switch v := e.(type) {
	case *sqlparser.ColName:
		return ea.analyzeColName(ctx, v)
	case *sqlparser.SQLVal:
		return ea.analyzeSQLVal(v)
	case sqlparser.BoolVal:
		return expression.NewLiteral(bool(v), sql.Boolean), nil
	case *sqlparser.NullVal:
		return expression.NewLiteral(nil, sql.Null), nil
	case *sqlparser.ParenExpr:
		return ea.Analyze(ctx, v.Expr)
	case *sqlparser.AndExpr:
		left, err := ea.Analyze(ctx, v.Left)
		if err != nil {
			return nil, err
		}
		right, err := ea.Analyze(ctx, v.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewAnd(left, right), nil
	case *sqlparser.OrExpr:
		left, err := ea.Analyze(ctx, v.Left)
		if err != nil {
			return nil, err
		}
		right, err := ea.Analyze(ctx, v.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewOr(left, right), nil
	case *sqlparser.NotExpr:
		child, err := ea.Analyze(ctx, v.Expr)
		if err != nil {
			return nil, err
		}
		return expression.NewNot(child), nil
	case *sqlparser.ComparisonExpr:
		return ea.analyzeComparison(ctx, v)
	case *sqlparser.IsExpr:
		return ea.analyzeIs(ctx, v)
	case *sqlparser.RangeCond:
		return ea.analyzeRange(ctx, v)
	case *sqlparser.BinaryExpr:
		return ea.analyzeBinary(ctx, v)
	case *sqlparser.UnaryExpr:
		return ea.analyzeUnary(ctx, v)
	case sqlparser.ValTuple:
		exprs := make([]sql.Expression, len(v))
		for i, te := range v {
			expr, err := ea.Analyze(ctx, te)
			if err != nil {
				return nil, err
			}
			exprs[i] = expr
		}
		return expression.NewTuple(exprs...), nil
	case *sqlparser.FuncExpr:
		return ea.analyzeFuncExpr(ctx, v)
	case *sqlparser.ConvertExpr:
		return ea.analyzeConvert(ctx, v)
	case *sqlparser.Subquery:
		return nil, sql.ErrUnsupportedFeature.New("scalar subqueries")
	case *sqlparser.CaseExpr:
		return nil, sql.ErrUnsupportedFeature.New("CASE expressions")
	case *sqlparser.IntervalExpr:
		return nil, sql.ErrUnsupportedFeature.New("INTERVAL expressions")
	default:
		return nil, sql.ErrUnsupportedSyntax.New(sqlparser.String(e))
	}
}

func (ea *ExpressionAnalyzer) analyzeColName(ctx *sql.Context, v *sqlparser.ColName) (sql.Expression, error) {
	name := v.Name.String()

	var path []string
	if !v.Qualifier.Name.IsEmpty() {
		if !v.Qualifier.Qualifier.IsEmpty() {
			path = []string{v.Qualifier.Qualifier.String(), v.Qualifier.Name.String()}
		} else {
			path = []string{v.Qualifier.Name.String()}
		}
	}

	col, idx, err := ea.schema.Resolve(path, name)
	if err != nil {
		if len(path) == 0 && sql.ErrColumnNotFound.Is(err) {
			if raw, ok := ea.aliases[v.Name.Lowered()]; ok {
				return ea.expandAlias(ctx, v.Name.Lowered(), raw)
			}
		}
		return nil, err
	}

	return expression.NewGetField(idx, col.Prefix, col.Name, col.Type, col.Nullable), nil
}

// expandAlias analyzes the expression behind a projection alias in place of
// the reference to it. A name already being expanded means the aliases form
// a cycle, which surfaces as the column not being found.
func (ea *ExpressionAnalyzer) expandAlias(ctx *sql.Context, name string, raw sqlparser.Expr) (sql.Expression, error) {
	if ea.expanding[name] {
		return nil, sql.ErrColumnNotFound.New(name)
	}
	if ea.expanding == nil {
		ea.expanding = map[string]bool{}
	}
	ea.expanding[name] = true
	defer delete(ea.expanding, name)

	return ea.Analyze(ctx, raw)
}

func (ea *ExpressionAnalyzer) analyzeSQLVal(v *sqlparser.SQLVal) (sql.Expression, error) {
	switch v.Type {
	case sqlparser.IntVal:
		if i, err := strconv.ParseInt(string(v.Val), 10, 64); err == nil {
			return expression.NewLiteral(i, sql.Int64), nil
		}
		if u, err := strconv.ParseUint(string(v.Val), 10, 64); err == nil {
			return expression.NewLiteral(u, sql.Uint64), nil
		}
		if f, err := strconv.ParseFloat(string(v.Val), 64); err == nil {
			return expression.NewLiteral(f, sql.Float64), nil
		}
		return nil, sql.ErrSyntaxError.New(fmt.Sprintf("invalid numeric literal %q", v.Val))
	case sqlparser.FloatVal:
		f, err := strconv.ParseFloat(string(v.Val), 64)
		if err != nil {
			return nil, sql.ErrSyntaxError.New(fmt.Sprintf("invalid numeric literal %q", v.Val))
		}
		return expression.NewLiteral(f, sql.Float64), nil
	case sqlparser.StrVal:
		return expression.NewLiteral(string(v.Val), sql.Text), nil
	case sqlparser.ValArg:
		return nil, sql.ErrUnsupportedFeature.New("prepared statement arguments")
	case sqlparser.HexNum, sqlparser.HexVal:
		return nil, sql.ErrUnsupportedFeature.New("hex literals")
	case sqlparser.BitVal:
		return nil, sql.ErrUnsupportedFeature.New("bit literals")
	default:
		return nil, sql.ErrUnsupportedFeature.New(fmt.Sprintf("literals of type %v", v.Type))
	}
}

func (ea *ExpressionAnalyzer) analyzeComparison(ctx *sql.Context, v *sqlparser.ComparisonExpr) (sql.Expression, error) {
	left, err := ea.Analyze(ctx, v.Left)
	if err != nil {
		return nil, err
	}
	right, err := ea.Analyze(ctx, v.Right)
	if err != nil {
		return nil, err
	}

	switch v.Operator {
	case sqlparser.EqualStr:
		return expression.NewEquals(left, right), nil
	case sqlparser.NotEqualStr:
		return expression.NewNot(expression.NewEquals(left, right)), nil
	case sqlparser.LessThanStr:
		return expression.NewLessThan(left, right), nil
	case sqlparser.LessEqualStr:
		return expression.NewLessThanOrEqual(left, right), nil
	case sqlparser.GreaterThanStr:
		return expression.NewGreaterThan(left, right), nil
	case sqlparser.GreaterEqualStr:
		return expression.NewGreaterThanOrEqual(left, right), nil
	case sqlparser.InStr:
		return expression.NewIn(left, right), nil
	case sqlparser.NotInStr:
		return expression.NewNot(expression.NewIn(left, right)), nil
	case sqlparser.LikeStr:
		return expression.NewLike(left, right), nil
	case sqlparser.NotLikeStr:
		return expression.NewNot(expression.NewLike(left, right)), nil
	case sqlparser.RegexpStr:
		return expression.NewRegexp(left, right), nil
	case sqlparser.NotRegexpStr:
		return expression.NewNot(expression.NewRegexp(left, right)), nil
	default:
		return nil, sql.ErrUnsupportedFeature.New(fmt.Sprintf("operator %s", v.Operator))
	}
}

func (ea *ExpressionAnalyzer) analyzeIs(ctx *sql.Context, v *sqlparser.IsExpr) (sql.Expression, error) {
	child, err := ea.Analyze(ctx, v.Expr)
	if err != nil {
		return nil, err
	}

	switch v.Operator {
	case sqlparser.IsNullStr:
		return expression.NewIsNull(child), nil
	case sqlparser.IsNotNullStr:
		return expression.NewNot(expression.NewIsNull(child)), nil
	default:
		return nil, sql.ErrUnsupportedFeature.New(fmt.Sprintf("operator %s", v.Operator))
	}
}

func (ea *ExpressionAnalyzer) analyzeRange(ctx *sql.Context, v *sqlparser.RangeCond) (sql.Expression, error) {
	val, err := ea.Analyze(ctx, v.Left)
	if err != nil {
		return nil, err
	}
	lower, err := ea.Analyze(ctx, v.From)
	if err != nil {
		return nil, err
	}
	upper, err := ea.Analyze(ctx, v.To)
	if err != nil {
		return nil, err
	}

	switch v.Operator {
	case sqlparser.BetweenStr:
		return expression.NewBetween(val, lower, upper), nil
	case sqlparser.NotBetweenStr:
		return expression.NewNot(expression.NewBetween(val, lower, upper)), nil
	default:
		return nil, sql.ErrUnsupportedFeature.New(fmt.Sprintf("operator %s", v.Operator))
	}
}

func (ea *ExpressionAnalyzer) analyzeBinary(ctx *sql.Context, v *sqlparser.BinaryExpr) (sql.Expression, error) {
	switch v.Operator {
	case sqlparser.PlusStr, sqlparser.MinusStr, sqlparser.MultStr,
		sqlparser.DivStr, sqlparser.ModStr, sqlparser.IntDivStr:
	default:
		return nil, sql.ErrUnsupportedFeature.New(fmt.Sprintf("operator %s", v.Operator))
	}

	left, err := ea.Analyze(ctx, v.Left)
	if err != nil {
		return nil, err
	}
	right, err := ea.Analyze(ctx, v.Right)
	if err != nil {
		return nil, err
	}

	return expression.NewArithmetic(left, right, v.Operator), nil
}

func (ea *ExpressionAnalyzer) analyzeUnary(ctx *sql.Context, v *sqlparser.UnaryExpr) (sql.Expression, error) {
	child, err := ea.Analyze(ctx, v.Expr)
	if err != nil {
		return nil, err
	}

	switch v.Operator {
	case sqlparser.UMinusStr:
		return expression.NewUnaryMinus(child), nil
	case sqlparser.UPlusStr:
		return child, nil
	default:
		return nil, sql.ErrUnsupportedFeature.New(fmt.Sprintf("operator %s", v.Operator))
	}
}

func (ea *ExpressionAnalyzer) analyzeFuncExpr(ctx *sql.Context, v *sqlparser.FuncExpr) (sql.Expression, error) {
	if !v.Qualifier.IsEmpty() {
		return nil, sql.ErrUnsupportedFeature.New("qualified function names")
	}
	if v.Over != nil {
		return nil, sql.ErrUnsupportedFeature.New("window functions")
	}

	name := v.Name.Lowered()

	if v.IsAggregate() {
		if ea.inAggregate {
			return nil, sql.ErrNestedAggregate.New()
		}
		if !ea.allowAggregates {
			return nil, sql.ErrInvalidAggregate.New(name, ea.clause)
		}
	}
	if v.Distinct {
		if v.IsAggregate() {
			return nil, sql.ErrUnsupportedFeature.New("DISTINCT aggregates")
		}
		return nil, sql.ErrUnsupportedSyntax.New(sqlparser.String(v))
	}

	argAnalyzer := ea
	if v.IsAggregate() {
		sub := *ea
		sub.inAggregate = true
		argAnalyzer = &sub
	}

	args := make([]sql.Expression, 0, len(v.Exprs))
	for _, se := range v.Exprs {
		switch arg := se.(type) {
		case *sqlparser.AliasedExpr:
			e, err := argAnalyzer.Analyze(ctx, arg.Expr)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		case *sqlparser.StarExpr:
			if name != "count" || !arg.TableName.Name.IsEmpty() {
				return nil, sql.ErrUnsupportedSyntax.New(sqlparser.String(v))
			}
			args = append(args, expression.NewStar())
		default:
			return nil, sql.ErrUnsupportedSyntax.New(sqlparser.String(se))
		}
	}

	fn, err := ea.analyzer.Catalog.Function(name)
	if err != nil {
		return nil, err
	}

	return fn.Call(args...)
}

func (ea *ExpressionAnalyzer) analyzeConvert(ctx *sql.Context, v *sqlparser.ConvertExpr) (sql.Expression, error) {
	child, err := ea.Analyze(ctx, v.Expr)
	if err != nil {
		return nil, err
	}

	return expression.NewConvert(child, v.Type.Type), nil
}
