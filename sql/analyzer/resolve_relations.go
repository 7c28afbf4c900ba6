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

// resolveRelations evaluates a relation sequence as a stack program, strictly
// left to right. Operands resolve to qualified schemas and join operators fold
// the top two schemas into one, so a well formed sequence leaves exactly one
// schema on the stack. Join conditions are collected in fold order for the
// filter stage, they are not evaluated here.
func (a *Analyzer) resolveRelations(ctx *sql.Context, rpn RelationRPN, depth int) (sql.QualifiedSchema, []sqlparser.Expr, error) {
	span, ctx := ctx.Span("resolve_relations")
	defer span.Finish()

	var (
		stack      []sql.QualifiedSchema
		conditions []sqlparser.Expr
	)

	for _, item := range rpn {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		switch it := item.(type) {
		case *TableItem:
			schema, err := a.resolveTable(ctx, it)
			if err != nil {
				return nil, nil, err
			}
			stack = append(stack, schema)
		case *TableFuncItem:
			schema, err := a.resolveTableFunction(ctx, it)
			if err != nil {
				return nil, nil, err
			}
			stack = append(stack, schema)
		case *DerivedItem:
			schema, err := a.resolveSubquery(ctx, it, depth)
			if err != nil {
				return nil, nil, err
			}
			stack = append(stack, schema)
		case *JoinItem:
			if len(stack) < 2 {
				return nil, nil, sql.ErrInternalRelation.New("join with fewer than 2 operands")
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			joined, err := left.Concat(right)
			if err != nil {
				return nil, nil, err
			}
			stack = append(stack, joined)

			if it.On != nil {
				conditions = append(conditions, it.On)
			}
		default:
			return nil, nil, sql.ErrInternalRelation.New(fmt.Sprintf("unknown item %T", item))
		}
	}

	if len(stack) != 1 {
		return nil, nil, sql.ErrInternalRelation.New(fmt.Sprintf(
			"%d schemas left after evaluation, expected exactly 1", len(stack),
		))
	}

	a.Log("joined schema: %s", stack[0])

	return stack[0], conditions, nil
}

// resolveTableName turns a name path into a (database, table) pair. A bare
// name takes the session's current database, a two part name is db.table, and
// anything longer is invalid.
func resolveTableName(ctx *sql.Context, parts []string) (string, string, error) {
	switch len(parts) {
	case 1:
		db := ctx.GetCurrentDatabase()
		if db == "" {
			return "", "", sql.ErrNoDatabaseSelected.New()
		}
		return db, parts[0], nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", sql.ErrInvalidTableName.New(strings.Join(parts, "."))
	}
}

func (a *Analyzer) resolveTable(ctx *sql.Context, it *TableItem) (sql.QualifiedSchema, error) {
	db, table, err := resolveTableName(ctx, it.Parts)
	if err != nil {
		return nil, err
	}

	t, err := a.Catalog.Table(ctx, db, table)
	if err != nil {
		return nil, err
	}

	prefix := []string{db, table}
	if it.Alias != "" {
		prefix = []string{it.Alias}
	}

	a.Log("table %s.%s resolved as %s", db, table, strings.Join(prefix, "."))

	return sql.QualifySchema(t.Schema(), prefix...), nil
}

// resolveTableFunction binds a table function call. Arguments are analyzed
// against the empty schema, they cannot reference any column, and the schema
// the function instance declares is left unprefixed so its columns are only
// reachable unqualified.
func (a *Analyzer) resolveTableFunction(ctx *sql.Context, it *TableFuncItem) (sql.QualifiedSchema, error) {
	if strings.Contains(it.Name, ".") {
		return nil, sql.ErrUnsupportedSyntax.New("qualified table function name")
	}

	argAnalyzer := NewExpressionAnalyzer(a, sql.QualifiedSchema{})

	args := make([]sql.Expression, 0, len(it.Args))
	for _, se := range it.Args {
		ae, ok := se.(*sqlparser.AliasedExpr)
		if !ok {
			return nil, sql.ErrUnsupportedSyntax.New(sqlparser.String(se))
		}

		arg, err := argAnalyzer.Analyze(ctx, ae.Expr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	fn, err := a.Catalog.TableFunction(ctx, it.Name)
	if err != nil {
		return nil, err
	}

	t, err := fn.NewInstance(ctx, args)
	if err != nil {
		return nil, err
	}

	a.Log("table function %s resolved", it.Name)

	return sql.QualifySchema(t.Schema()), nil
}
