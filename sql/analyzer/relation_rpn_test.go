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
	"testing"

	"github.com/stretchr/testify/require"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/skiffdb/skiff/sql"
)

func buildRPN(t *testing.T, query string) (RelationRPN, error) {
	t.Helper()
	return BuildRelationRPN(parseSelect(t, query).From)
}

func TestBuildRelationRPNCounts(t *testing.T) {
	testCases := []struct {
		query    string
		operands int
	}{
		{"SELECT * FROM a", 1},
		{"SELECT * FROM a, b", 2},
		{"SELECT * FROM a JOIN b ON a.id = b.id", 2},
		{"SELECT * FROM a, b JOIN c ON b.x = c.x", 3},
		{"SELECT * FROM a JOIN b ON a.id = b.id JOIN c ON b.x = c.x", 3},
		{"SELECT * FROM (a, b), c", 3},
		{"SELECT * FROM a JOIN b ON a.id = b.id, c JOIN t ON c.x = t.x", 4},
		{"SELECT * FROM a, (SELECT x FROM t) AS s", 2},
		{"SELECT * FROM sequence(5), a", 2},
	}

	for _, tt := range testCases {
		t.Run(tt.query, func(t *testing.T) {
			require := require.New(t)

			rpn, err := buildRPN(t, tt.query)
			require.NoError(err)

			var operands, operators int
			for _, item := range rpn {
				if _, ok := item.(*JoinItem); ok {
					operators++
				} else {
					operands++
				}
			}

			require.Equal(tt.operands, operands)
			require.Equal(tt.operands-1, operators)
			require.Len(rpn, 2*tt.operands-1)
		})
	}
}

// A comma entry after a join folds in as a cross join, so mixed FROM clauses
// keep the operands in declaration order with the operators trailing them.
func TestBuildRelationRPNShape(t *testing.T) {
	require := require.New(t)

	rpn, err := buildRPN(t, "SELECT * FROM a, b JOIN c ON b.x = c.x")
	require.NoError(err)
	require.Len(rpn, 5)

	ta, ok := rpn[0].(*TableItem)
	require.True(ok)
	require.Equal([]string{"a"}, ta.Parts)
	require.Empty(ta.Alias)

	tb, ok := rpn[1].(*TableItem)
	require.True(ok)
	require.Equal([]string{"b"}, tb.Parts)

	tc, ok := rpn[2].(*TableItem)
	require.True(ok)
	require.Equal([]string{"c"}, tc.Parts)

	join, ok := rpn[3].(*JoinItem)
	require.True(ok)
	require.Equal(InnerJoin, join.Kind)
	require.NotNil(join.On)

	cross, ok := rpn[4].(*JoinItem)
	require.True(ok)
	require.Equal(CrossJoin, cross.Kind)
	require.Nil(cross.On)

	require.Equal("[a, b, c, JOIN, CROSS JOIN]", rpn.String())
}

func TestBuildRelationRPNNoFrom(t *testing.T) {
	require := require.New(t)

	// The parser surfaces a missing FROM clause as the bare "dual" table.
	rpn, err := buildRPN(t, "SELECT 1")
	require.NoError(err)
	require.Len(rpn, 1)

	table, ok := rpn[0].(*TableItem)
	require.True(ok)
	require.Equal([]string{sql.SystemDatabaseName, sql.OneTableName}, table.Parts)

	rpn, err = BuildRelationRPN(nil)
	require.NoError(err)
	require.Len(rpn, 1)
	require.Equal(rpn[0], table)
}

func TestBuildRelationRPNJoinKinds(t *testing.T) {
	testCases := []struct {
		query string
		kind  JoinKind
		hasOn bool
	}{
		{"SELECT * FROM a JOIN b ON a.id = b.id", InnerJoin, true},
		{"SELECT * FROM a INNER JOIN b ON a.id = b.id", InnerJoin, true},
		{"SELECT * FROM a LEFT JOIN b ON a.id = b.id", LeftJoin, true},
		{"SELECT * FROM a LEFT OUTER JOIN b ON a.id = b.id", LeftJoin, true},
		{"SELECT * FROM a RIGHT JOIN b ON a.id = b.id", RightJoin, true},
		{"SELECT * FROM a CROSS JOIN b", CrossJoin, false},
		{"SELECT * FROM a JOIN b", CrossJoin, false},
	}

	for _, tt := range testCases {
		t.Run(tt.query, func(t *testing.T) {
			require := require.New(t)

			rpn, err := buildRPN(t, tt.query)
			require.NoError(err)
			require.Len(rpn, 3)

			join, ok := rpn[2].(*JoinItem)
			require.True(ok)
			require.Equal(tt.kind, join.Kind)
			if tt.hasOn {
				require.NotNil(join.On)
			} else {
				require.Nil(join.On)
			}
		})
	}
}

func TestBuildRelationRPNAliases(t *testing.T) {
	require := require.New(t)

	rpn, err := buildRPN(t, "SELECT * FROM mydb.a AS x, (SELECT 1) AS s (one)")
	require.NoError(err)
	require.Len(rpn, 3)

	table, ok := rpn[0].(*TableItem)
	require.True(ok)
	require.Equal([]string{"mydb", "a"}, table.Parts)
	require.Equal("x", table.Alias)
	require.Equal("mydb.a AS x", table.String())

	derived, ok := rpn[1].(*DerivedItem)
	require.True(ok)
	require.Equal("s", derived.Alias)
	require.Len(derived.Columns, 1)
	require.Equal("one", derived.Columns[0].String())
	require.NotNil(derived.Select)
	require.Equal("(subquery) AS s", derived.String())
}

func TestBuildRelationRPNTableFunction(t *testing.T) {
	require := require.New(t)

	rpn, err := buildRPN(t, "SELECT * FROM sequence(5)")
	require.NoError(err)
	require.Len(rpn, 1)

	fn, ok := rpn[0].(*TableFuncItem)
	require.True(ok)
	require.Equal("sequence", fn.Name)
	require.Len(fn.Args, 1)
}

func TestBuildRelationRPNUnsupported(t *testing.T) {
	testCases := []struct {
		query string
		kind  *errors.Kind
	}{
		{"SELECT * FROM a NATURAL JOIN b", sql.ErrUnsupportedFeature},
		{"SELECT * FROM a STRAIGHT_JOIN b", sql.ErrUnsupportedFeature},
		{"SELECT * FROM a JOIN b USING (id)", sql.ErrUnsupportedFeature},
		{"SELECT * FROM a USE INDEX (id_idx)", sql.ErrUnsupportedFeature},
		{"SELECT * FROM a AS OF '2019-01-01'", sql.ErrUnsupportedFeature},
		{"SELECT * FROM t, LATERAL (SELECT x FROM b) AS s", sql.ErrUnsupportedFeature},
		{"SELECT * FROM JSON_TABLE('[1,2]', '$[*]' columns (i int path '$')) AS jt", sql.ErrUnsupportedFeature},
		{"SELECT * FROM sequence(5) AS s", sql.ErrUnsupportedSyntax},
	}

	for _, tt := range testCases {
		t.Run(tt.query, func(t *testing.T) {
			require := require.New(t)

			_, err := buildRPN(t, tt.query)
			require.Error(err)
			require.True(tt.kind.Is(err), "unexpected error: %s", err)
		})
	}
}

func TestBuildRelationRPNParens(t *testing.T) {
	require := require.New(t)

	// Parenthesized groups flatten in place.
	rpn, err := buildRPN(t, "SELECT * FROM (a, b) JOIN c ON b.x = c.x")
	require.NoError(err)
	require.Equal("[a, b, CROSS JOIN, c, JOIN]", rpn.String())
}

func TestJoinKindString(t *testing.T) {
	require := require.New(t)

	require.Equal("JOIN", InnerJoin.String())
	require.Equal("LEFT JOIN", LeftJoin.String())
	require.Equal("RIGHT JOIN", RightJoin.String())
	require.Equal("FULL OUTER JOIN", FullOuterJoin.String())
	require.Equal("CROSS JOIN", CrossJoin.String())
	require.Equal("JoinKind(42)", JoinKind(42).String())
}
