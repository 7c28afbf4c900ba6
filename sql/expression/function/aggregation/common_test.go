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

package aggregation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skiffdb/skiff/sql"
	"github.com/skiffdb/skiff/sql/expression"
)

func TestAggregationTypes(t *testing.T) {
	field := expression.NewGetField(0, []string{"t"}, "x", sql.Int32, true)

	testCases := []struct {
		agg      sql.Expression
		str      string
		typ      sql.Type
		nullable bool
	}{
		{NewSum(field), "sum(t.x)", sql.Float64, true},
		{NewAvg(field), "avg(t.x)", sql.Float64, true},
		{NewMin(field), "min(t.x)", sql.Int32, true},
		{NewMax(field), "max(t.x)", sql.Int32, true},
	}

	for _, tt := range testCases {
		t.Run(tt.str, func(t *testing.T) {
			require := require.New(t)
			require.Equal(tt.str, tt.agg.String())
			require.Equal(tt.typ, tt.agg.Type())
			require.Equal(tt.nullable, tt.agg.IsNullable())
		})
	}
}

func TestAggregationEvalNotSupported(t *testing.T) {
	field := expression.NewGetField(0, []string{"t"}, "x", sql.Int32, true)

	for _, agg := range []sql.Expression{
		NewSum(field),
		NewAvg(field),
		NewMin(field),
		NewMax(field),
	} {
		_, err := agg.Eval(sql.NewEmptyContext(), sql.NewRow(int32(1)))
		require.Error(t, err)
		require.True(t, ErrEvalNotSupported.Is(err))
	}
}

func TestAggregationWithChildren(t *testing.T) {
	require := require.New(t)

	field := expression.NewGetField(0, []string{"t"}, "x", sql.Int32, true)
	other := expression.NewGetField(1, []string{"t"}, "y", sql.Int64, false)

	agg, err := NewSum(field).WithChildren(other)
	require.NoError(err)
	require.Equal("sum(t.y)", agg.String())

	_, err = NewSum(field).WithChildren(field, other)
	require.Error(err)
	require.True(sql.ErrInvalidChildrenNumber.Is(err))
}
