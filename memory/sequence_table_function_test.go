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

package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skiffdb/skiff/sql"
	"github.com/skiffdb/skiff/sql/expression"
)

func TestSequenceTableFunction(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	fn := SequenceTableFunction{}
	require.Equal("sequence", fn.Name())

	table, err := fn.NewInstance(ctx, []sql.Expression{
		expression.NewLiteral(int64(3), sql.Int64),
	})
	require.NoError(err)
	require.Equal("sequence", table.Name())

	schema := table.Schema()
	require.Len(schema, 1)
	require.Equal("i", schema[0].Name)
	require.Equal(sql.Uint64, schema[0].Type)
	require.Equal("sequence", schema[0].Source)
}

func TestSequenceTableFunctionArgumentNumber(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()
	fn := SequenceTableFunction{}

	_, err := fn.NewInstance(ctx, nil)
	require.Error(err)
	require.True(sql.ErrInvalidArgumentNumber.Is(err))

	_, err = fn.NewInstance(ctx, []sql.Expression{
		expression.NewLiteral(int64(1), sql.Int64),
		expression.NewLiteral(int64(2), sql.Int64),
	})
	require.Error(err)
	require.True(sql.ErrInvalidArgumentNumber.Is(err))
}

func TestSequenceTableFunctionInvalidArgument(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()
	fn := SequenceTableFunction{}

	_, err := fn.NewInstance(ctx, []sql.Expression{
		expression.NewLiteral("foo", sql.Text),
	})
	require.Error(err)
	require.True(sql.ErrInvalidArgument.Is(err))

	_, err = fn.NewInstance(ctx, []sql.Expression{
		expression.NewLiteral(int64(-1), sql.Int64),
	})
	require.Error(err)
	require.True(sql.ErrInvalidArgument.Is(err))
}
