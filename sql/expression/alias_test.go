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

func TestAlias(t *testing.T) {
	require := require.New(t)

	alias := NewAlias("total", NewGetField(0, []string{"t"}, "x", sql.Int64, false))
	require.Equal("total", alias.Name())
	require.Equal(sql.Int64, alias.Type())
	require.Equal("t.x as total", alias.String())
	require.Equal(int64(7), eval(t, alias, sql.NewRow(int64(7))))
}
