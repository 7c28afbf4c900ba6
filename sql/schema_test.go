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

package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColumnCheck(t *testing.T) {
	require := require.New(t)

	nullable := &Column{Name: "x", Type: Int64, Nullable: true}
	require.True(nullable.Check(nil))
	require.True(nullable.Check(int64(1)))

	notNull := &Column{Name: "x", Type: Int64}
	require.False(notNull.Check(nil))
	require.True(notNull.Check(int64(1)))
	require.False(notNull.Check("foo"))
}

func TestColumnEquals(t *testing.T) {
	require := require.New(t)

	a := &Column{Name: "x", Type: Int64, Source: "t"}
	require.True(a.Equals(&Column{Name: "x", Type: Int64, Source: "t"}))
	require.False(a.Equals(&Column{Name: "y", Type: Int64, Source: "t"}))
	require.False(a.Equals(&Column{Name: "x", Type: Text, Source: "t"}))
	require.False(a.Equals(&Column{Name: "x", Type: Int64, Source: "u"}))
	require.False(a.Equals(&Column{Name: "x", Type: Int64, Source: "t", Nullable: true}))
}

func TestSchemaCheckRow(t *testing.T) {
	require := require.New(t)

	schema := Schema{
		{Name: "id", Type: Int64},
		{Name: "name", Type: Text, Nullable: true},
	}

	require.NoError(schema.CheckRow(NewRow(int64(1), "foo")))
	require.NoError(schema.CheckRow(NewRow(int64(1), nil)))

	err := schema.CheckRow(NewRow(int64(1)))
	require.Error(err)
	require.True(ErrUnexpectedRowLength.Is(err))

	err = schema.CheckRow(NewRow(nil, "foo"))
	require.Error(err)
	require.True(ErrUnexpectedType.Is(err))
}

func TestSchemaIndexOf(t *testing.T) {
	require := require.New(t)

	schema := Schema{
		{Name: "id", Type: Int64, Source: "t"},
		{Name: "name", Type: Text, Source: "t"},
	}

	require.Equal(0, schema.IndexOf("id", "t"))
	require.Equal(1, schema.IndexOf("NAME", "T"))
	require.Equal(-1, schema.IndexOf("id", "u"))
	require.True(schema.Contains("name", "t"))
	require.False(schema.Contains("name", "u"))
}

func TestSchemaEquals(t *testing.T) {
	require := require.New(t)

	schema := Schema{
		{Name: "id", Type: Int64, Source: "t"},
		{Name: "name", Type: Text, Source: "t"},
	}

	require.True(schema.Equals(Schema{
		{Name: "id", Type: Int64, Source: "t"},
		{Name: "name", Type: Text, Source: "t"},
	}))
	require.False(schema.Equals(schema[:1]))
	require.False(schema.Equals(Schema{
		{Name: "id", Type: Int64, Source: "t"},
		{Name: "other", Type: Text, Source: "t"},
	}))
}
