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
	"strings"

	"github.com/dolthub/vitess/go/vt/sqlparser"

	"github.com/skiffdb/skiff/sql"
)

// RelationItem is one entry of a postfix relation sequence: either a relation
// operand (a table, a table function or a derived table) or a join operator
// folding the two operands below it.
type RelationItem interface {
	fmt.Stringer
	relationItem()
}

// TableItem is a catalog table reference.
type TableItem struct {
	// Parts is the name path of the table, either [table] or [db, table].
	Parts []string
	// Alias is the name the query knows the table by, if it was aliased.
	Alias string
}

func (*TableItem) relationItem() {}

func (i *TableItem) String() string {
	name := strings.Join(i.Parts, ".")
	if i.Alias != "" {
		return fmt.Sprintf("%s AS %s", name, i.Alias)
	}
	return name
}

// TableFuncItem is a call to a registered table function.
type TableFuncItem struct {
	Name string
	Args sqlparser.SelectExprs
}

func (*TableFuncItem) relationItem() {}

func (i *TableFuncItem) String() string {
	return fmt.Sprintf("%s(%s)", i.Name, sqlparser.String(i.Args))
}

// DerivedItem is a derived table, that is, a subquery in the FROM clause.
type DerivedItem struct {
	Select sqlparser.SelectStatement
	// Columns renames the subquery output columns when non-empty.
	Columns sqlparser.Columns
	Alias   string
}

func (*DerivedItem) relationItem() {}

func (i *DerivedItem) String() string {
	if i.Alias != "" {
		return fmt.Sprintf("(subquery) AS %s", i.Alias)
	}
	return "(subquery)"
}

// JoinKind classifies a join operator in a relation sequence.
type JoinKind byte

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullOuterJoin
	CrossJoin
)

func (k JoinKind) String() string {
	switch k {
	case InnerJoin:
		return "JOIN"
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case FullOuterJoin:
		return "FULL OUTER JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	default:
		return fmt.Sprintf("JoinKind(%d)", k)
	}
}

// JoinItem is a join operator. It folds the two relation operands pushed
// before it into one.
type JoinItem struct {
	Kind JoinKind
	// On is the join condition, nil for cross joins.
	On sqlparser.Expr
}

func (*JoinItem) relationItem() {}

func (i *JoinItem) String() string {
	return i.Kind.String()
}

// RelationRPN is a FROM clause flattened into postfix order. Evaluating it as
// a stack program, pushing operands and folding two of them on every join
// operator, yields the joined relation: a sequence with n operands always
// carries exactly n-1 join operators.
type RelationRPN []RelationItem

func (r RelationRPN) String() string {
	items := make([]string, len(r))
	for i, it := range r {
		items[i] = it.String()
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// BuildRelationRPN flattens a FROM clause into a postfix relation sequence.
// A query without a FROM clause, which the parser surfaces as the bare "dual"
// table, reads from the one-row system table instead. Comma-separated entries
// become cross joins.
func BuildRelationRPN(from sqlparser.TableExprs) (RelationRPN, error) {
	if len(from) == 0 || isDualFrom(from) {
		return RelationRPN{
			&TableItem{Parts: []string{sql.SystemDatabaseName, sql.OneTableName}},
		}, nil
	}

	var b rpnBuilder
	for i, te := range from {
		if err := b.visitTableExpr(te); err != nil {
			return nil, err
		}
		if i > 0 {
			b.items = append(b.items, &JoinItem{Kind: CrossJoin})
		}
	}

	return b.items, nil
}

func isDualFrom(from sqlparser.TableExprs) bool {
	if len(from) != 1 {
		return false
	}
	te, ok := from[0].(*sqlparser.AliasedTableExpr)
	if !ok || !te.As.IsEmpty() {
		return false
	}
	tn, ok := te.Expr.(sqlparser.TableName)
	return ok && tn.Qualifier.IsEmpty() && strings.ToLower(tn.Name.String()) == "dual"
}

type rpnBuilder struct {
	items RelationRPN
}

func (b *rpnBuilder) visitTableExpr(te sqlparser.TableExpr) error {
	switch t := te.(type) {
	case *sqlparser.AliasedTableExpr:
		return b.visitAliasedTableExpr(t)
	case *sqlparser.JoinTableExpr:
		return b.visitJoinTableExpr(t)
	case *sqlparser.ParenTableExpr:
		for i, inner := range t.Exprs {
			if err := b.visitTableExpr(inner); err != nil {
				return err
			}
			if i > 0 {
				b.items = append(b.items, &JoinItem{Kind: CrossJoin})
			}
		}
		return nil
	case *sqlparser.TableFuncExpr:
		if !t.Alias.IsEmpty() {
			return sql.ErrUnsupportedSyntax.New("aliased table function")
		}
		b.items = append(b.items, &TableFuncItem{Name: t.Name, Args: t.Exprs})
		return nil
	case *sqlparser.JSONTableExpr:
		return sql.ErrUnsupportedFeature.New("JSON_TABLE")
	default:
		return sql.ErrUnsupportedSyntax.New(sqlparser.String(te))
	}
}

func (b *rpnBuilder) visitAliasedTableExpr(te *sqlparser.AliasedTableExpr) error {
	if te.Lateral {
		return sql.ErrUnsupportedFeature.New("LATERAL derived tables")
	}
	if te.AsOf != nil {
		return sql.ErrUnsupportedFeature.New("AS OF queries")
	}
	if te.Hints != nil {
		return sql.ErrUnsupportedFeature.New("index hints")
	}

	switch e := te.Expr.(type) {
	case sqlparser.TableName:
		parts := []string{e.Name.String()}
		if !e.Qualifier.IsEmpty() {
			parts = []string{e.Qualifier.String(), e.Name.String()}
		}
		b.items = append(b.items, &TableItem{Parts: parts, Alias: te.As.String()})
		return nil
	case *sqlparser.Subquery:
		b.items = append(b.items, &DerivedItem{
			Select:  e.Select,
			Columns: e.Columns,
			Alias:   te.As.String(),
		})
		return nil
	default:
		return sql.ErrUnsupportedSyntax.New(sqlparser.String(te))
	}
}

func (b *rpnBuilder) visitJoinTableExpr(te *sqlparser.JoinTableExpr) error {
	join := strings.ToLower(te.Join)
	if strings.Contains(join, "natural") {
		return sql.ErrUnsupportedFeature.New("natural joins")
	}
	if join == sqlparser.StraightJoinStr {
		return sql.ErrUnsupportedFeature.New("STRAIGHT_JOIN")
	}
	if len(te.Condition.Using) > 0 {
		return sql.ErrUnsupportedFeature.New("JOIN ... USING")
	}

	var kind JoinKind
	switch join {
	case sqlparser.JoinStr:
		kind = InnerJoin
		if te.Condition.On == nil {
			kind = CrossJoin
		}
	case sqlparser.LeftJoinStr:
		kind = LeftJoin
	case sqlparser.RightJoinStr:
		kind = RightJoin
	case sqlparser.FullOuterJoinStr:
		kind = FullOuterJoin
	default:
		return sql.ErrUnsupportedFeature.New(fmt.Sprintf("%s joins", te.Join))
	}

	if err := b.visitTableExpr(te.LeftExpr); err != nil {
		return err
	}
	if err := b.visitTableExpr(te.RightExpr); err != nil {
		return err
	}

	b.items = append(b.items, &JoinItem{Kind: kind, On: te.Condition.On})
	return nil
}
