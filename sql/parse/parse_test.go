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

package parse

import (
	"testing"

	"github.com/dolthub/vitess/go/vt/sqlparser"
	"github.com/stretchr/testify/require"

	"github.com/skiffdb/skiff/sql"
)

func TestParseSelect(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	stmt, err := Parse(ctx, "SELECT id FROM t WHERE id > 1")
	require.NoError(err)
	require.IsType(&sqlparser.Select{}, stmt)
}

func TestParseTrailingSemicolon(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	stmt, err := Parse(ctx, "  SELECT 1 ;  ")
	require.NoError(err)
	require.IsType(&sqlparser.Select{}, stmt)
}

func TestParseEmpty(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	for _, query := range []string{"", "   ", ";"} {
		_, err := Parse(ctx, query)
		require.Error(err)
		require.True(sql.ErrSyntaxError.Is(err))
	}
}

func TestParseSyntaxError(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	_, err := Parse(ctx, "SELECT FROM WHERE")
	require.Error(err)
	require.True(sql.ErrSyntaxError.Is(err))
}

func TestParseUnion(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	stmt, err := Parse(ctx, "SELECT 1 UNION SELECT 2")
	require.NoError(err)
	require.IsType(&sqlparser.Union{}, stmt)
}
