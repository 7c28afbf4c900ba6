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
	"github.com/dolthub/vitess/go/vt/sqlparser"
)

// collectAggregations returns every top level aggregate call under the given
// nodes, in source order. It does not descend into the arguments of a found
// aggregate nor into subqueries, which have their own aggregation scope.
func collectAggregations(nodes ...sqlparser.SQLNode) []*sqlparser.FuncExpr {
	var aggs []*sqlparser.FuncExpr

	_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		switch n := node.(type) {
		case *sqlparser.Subquery:
			return false, nil
		case *sqlparser.FuncExpr:
			if n.IsAggregate() {
				aggs = append(aggs, n)
				return false, nil
			}
		}
		return true, nil
	}, nodes...)

	return aggs
}
