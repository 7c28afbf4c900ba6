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

package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skiffdb/skiff/sql"
)

func TestGetField(t *testing.T) {
	require := require.New(t)

	get := NewGetField(1, []string{"mydb", "t"}, "x", sql.Int64, true)
	require.True(get.Resolved())
	require.True(get.IsNullable())
	require.Equal(1, get.Index())
	require.Equal([]string{"mydb", "t"}, get.Path())
	require.Equal("x", get.Name())
	require.Equal(sql.Int64, get.Type())

	require.Equal(int64(2), eval(t, get, sql.NewRow(int64(1), int64(2))))
}

func TestGetFieldOutOfBounds(t *testing.T) {
	require := require.New(t)

	get := NewGetField(3, nil, "x", sql.Int64, false)
	_, err := get.Eval(sql.NewEmptyContext(), sql.NewRow(int64(1)))
	require.Error(err)
	require.True(ErrIndexOutOfBounds.Is(err))
}

func TestGetFieldWithIndex(t *testing.T) {
	require := require.New(t)

	get := NewGetField(0, []string{"t"}, "x", sql.Int64, false)
	moved := get.WithIndex(2)

	require.Equal(0, get.Index())
	require.Equal(2, moved.(*GetField).Index())
	require.Equal(int64(3), eval(t, moved, sql.NewRow(int64(1), int64(2), int64(3))))
}

func TestGetFieldString(t *testing.T) {
	require := require.New(t)

	require.Equal("x", NewGetField(0, nil, "x", sql.Int64, false).String())
	require.Equal("t.x", NewGetField(0, []string{"t"}, "x", sql.Int64, false).String())
	require.Equal("mydb.t.x", NewGetField(0, []string{"mydb", "t"}, "x", sql.Int64, false).String())
}
