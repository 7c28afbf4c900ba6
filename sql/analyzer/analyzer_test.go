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
	"context"
	"os"
	"testing"

	"github.com/dolthub/vitess/go/vt/sqlparser"
	"github.com/stretchr/testify/require"

	"github.com/skiffdb/skiff/memory"
	"github.com/skiffdb/skiff/sql"
	"github.com/skiffdb/skiff/sql/expression/function"
)

func testCatalog(t *testing.T) *sql.Catalog {
	t.Helper()

	db := memory.NewDatabase("mydb")
	db.AddTable("a", memory.NewTable("a", sql.Schema{
		{Name: "id", Type: sql.Int64, Source: "a"},
	}))
	db.AddTable("b", memory.NewTable("b", sql.Schema{
		{Name: "id", Type: sql.Int64, Source: "b"},
		{Name: "x", Type: sql.Int64, Source: "b"},
	}))
	db.AddTable("c", memory.NewTable("c", sql.Schema{
		{Name: "x", Type: sql.Int64, Source: "c"},
		{Name: "y", Type: sql.Text, Source: "c"},
	}))
	db.AddTable("t", memory.NewTable("t", sql.Schema{
		{Name: "x", Type: sql.Int64, Source: "t"},
		{Name: "y", Type: sql.Text, Source: "t", Nullable: true},
	}))

	catalog := sql.NewCatalog()
	catalog.AddDatabase(db)
	require.NoError(t, catalog.RegisterFunctions(function.Defaults))
	require.NoError(t, catalog.RegisterTableFunction(memory.SequenceTableFunction{}))

	return catalog
}

func testContext() *sql.Context {
	session := sql.NewSession("localhost:3306", "client", "user", 1)
	session.SetCurrentDatabase("mydb")
	return sql.NewContext(context.Background(), sql.WithSession(session))
}

func parseSelect(t *testing.T, query string) *sqlparser.Select {
	t.Helper()

	stmt, err := sqlparser.Parse(query)
	require.NoError(t, err)

	sel, ok := stmt.(*sqlparser.Select)
	require.True(t, ok, "expected a select statement, got %T", stmt)
	return sel
}

func analyzeQuery(t *testing.T, a *Analyzer, query string) (*QueryState, error) {
	t.Helper()

	stmt, err := sqlparser.Parse(query)
	require.NoError(t, err)

	result, err := a.AnalyzeStatement(testContext(), stmt)
	if err != nil {
		return nil, err
	}
	return result.Select, nil
}

func TestBuilderDefaults(t *testing.T) {
	require := require.New(t)
	require.NoError(os.Unsetenv(debugAnalyzerKey))

	c := testCatalog(t)
	a := NewDefault(c)

	require.False(a.Debug)
	require.Equal(DefaultMaxSubqueryDepth, a.MaxSubqueryDepth)
	require.Equal(c, a.Catalog)
}

func TestBuilderOptions(t *testing.T) {
	require := require.New(t)
	require.NoError(os.Unsetenv(debugAnalyzerKey))

	c := testCatalog(t)

	a := NewBuilder(c).WithDebug().WithMaxSubqueryDepth(2).Build()
	require.True(a.Debug)
	require.Equal(2, a.MaxSubqueryDepth)

	a = NewBuilder(c).WithConfig(Config{Debug: true, MaxSubqueryDepth: 8}).Build()
	require.True(a.Debug)
	require.Equal(8, a.MaxSubqueryDepth)

	// The zero config changes nothing.
	a = NewBuilder(c).WithConfig(Config{}).Build()
	require.False(a.Debug)
	require.Equal(DefaultMaxSubqueryDepth, a.MaxSubqueryDepth)
}

func TestBuilderDebugEnv(t *testing.T) {
	require := require.New(t)

	require.NoError(os.Setenv(debugAnalyzerKey, "1"))
	defer func() {
		require.NoError(os.Unsetenv(debugAnalyzerKey))
	}()

	a := NewBuilder(testCatalog(t)).Build()
	require.True(a.Debug)
}

func TestAnalyzeStatementParenSelect(t *testing.T) {
	require := require.New(t)
	a := NewDefault(testCatalog(t))

	stmt, err := sqlparser.Parse("(SELECT id FROM a)")
	require.NoError(err)

	result, err := a.AnalyzeStatement(testContext(), stmt)
	require.NoError(err)
	require.NotNil(result.Select)
	require.Equal("id", result.Select.FinalizeSchema[0].Name)
}

func TestAnalyzeStatementUnsupported(t *testing.T) {
	require := require.New(t)
	a := NewDefault(testCatalog(t))

	stmt, err := sqlparser.Parse("SELECT id FROM a UNION SELECT id FROM b")
	require.NoError(err)
	_, err = a.AnalyzeStatement(testContext(), stmt)
	require.Error(err)
	require.True(sql.ErrUnsupportedFeature.Is(err))

	stmt, err = sqlparser.Parse("INSERT INTO a VALUES (1)")
	require.NoError(err)
	_, err = a.AnalyzeStatement(testContext(), stmt)
	require.Error(err)
	require.True(sql.ErrUnsupportedSyntax.Is(err))
}

func TestDebugContext(t *testing.T) {
	require := require.New(t)
	a := NewDefault(testCatalog(t))

	a.PushDebugContext("outer")
	a.PushDebugContext("inner")
	require.Equal([]string{"outer", "inner"}, a.debugCtx)

	a.PopDebugContext()
	require.Equal([]string{"outer"}, a.debugCtx)

	a.PopDebugContext()
	a.PopDebugContext()
	require.Empty(a.debugCtx)

	// A nil analyzer logs nothing and must not panic.
	var nilA *Analyzer
	nilA.PushDebugContext("x")
	nilA.PopDebugContext()
	nilA.Log("message")
}
