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

package function

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skiffdb/skiff/sql"
	"github.com/skiffdb/skiff/sql/expression"
	"github.com/skiffdb/skiff/sql/expression/function/aggregation"
)

func TestDefaults(t *testing.T) {
	require := require.New(t)

	registry := sql.NewFunctionRegistry()
	err := registry.RegisterMany(Defaults)
	require.NoError(err)

	for _, name := range []string{
		"count", "min", "max", "avg", "sum",
		"abs", "char_length", "coalesce", "length", "lower", "upper",
	} {
		fn, err := registry.Function(name)
		require.NoError(err)
		require.NotNil(fn)
	}

	_, err = registry.Function("foo")
	require.Error(err)
	require.True(sql.ErrFunctionNotFound.Is(err))
}

func TestDefaultsCall(t *testing.T) {
	require := require.New(t)

	registry := sql.NewFunctionRegistry()
	require.NoError(registry.RegisterMany(Defaults))

	arg := expression.NewGetField(0, []string{"t"}, "x", sql.Int64, false)

	fn, err := registry.Function("sum")
	require.NoError(err)
	e, err := fn.Call(arg)
	require.NoError(err)
	require.IsType(&aggregation.Sum{}, e)

	fn, err = registry.Function("abs")
	require.NoError(err)
	e, err = fn.Call(arg)
	require.NoError(err)
	require.IsType(&AbsVal{}, e)

	_, err = fn.Call(arg, arg)
	require.Error(err)
	require.True(sql.ErrInvalidArgumentNumber.Is(err))

	fn, err = registry.Function("coalesce")
	require.NoError(err)
	e, err = fn.Call(arg, expression.NewLiteral(int64(0), sql.Int64))
	require.NoError(err)
	require.IsType(&Coalesce{}, e)
}
