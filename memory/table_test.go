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
)

func TestTableName(t *testing.T) {
	require := require.New(t)
	table := NewTable("test", nil)
	require.Equal("test", table.Name())
}

func TestTableSchema(t *testing.T) {
	require := require.New(t)
	schema := sql.Schema{
		{Name: "col1", Type: sql.Text, Source: "test", Nullable: true},
		{Name: "col2", Type: sql.Int64, Source: "test"},
	}

	table := NewTable("test", schema)
	require.Equal(schema, table.Schema())
}
