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

	"github.com/skiffdb/skiff/sql"
)

// resolveSubquery analyzes a derived table by running the whole select
// pipeline on the nested statement, one nesting level down. Only the finalize
// schema of the nested state survives, renamed and prefixed according to the
// derived table declaration. Everything else about the nested query is
// discarded.
func (a *Analyzer) resolveSubquery(ctx *sql.Context, it *DerivedItem, depth int) (sql.QualifiedSchema, error) {
	span, ctx := ctx.Span("resolve_subquery")
	defer span.Finish()

	if depth+1 > a.MaxSubqueryDepth {
		return nil, sql.ErrSubqueryTooDeep.New(a.MaxSubqueryDepth)
	}

	a.Log("analyzing subquery %s", it)

	result, err := a.analyzeStatement(ctx, it.Select, depth+1)
	if err != nil {
		return nil, err
	}
	if result.Select == nil {
		return nil, sql.ErrInternalSubquery.New(fmt.Sprintf("%T", it.Select))
	}

	inner := result.Select.FinalizeSchema

	if len(it.Columns) > 0 {
		if len(it.Columns) != len(inner) {
			return nil, sql.ErrColumnCountMismatch.New(it.Alias, len(inner), len(it.Columns))
		}

		renamed := make(sql.Schema, len(inner))
		for i, col := range inner {
			nc := *col
			nc.Name = it.Columns[i].String()
			renamed[i] = &nc
		}
		inner = renamed
	}

	seen := make(map[string]struct{}, len(inner))
	for _, col := range inner {
		name := strings.ToLower(col.Name)
		if _, ok := seen[name]; ok {
			return nil, sql.ErrDuplicateColumn.New(col.Name)
		}
		seen[name] = struct{}{}
	}

	if it.Alias == "" {
		return sql.QualifySchema(inner), nil
	}
	return sql.QualifySchema(inner, it.Alias), nil
}
