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

import "strings"

const (
	// SystemDatabaseName is the name of the built-in database every catalog
	// carries.
	SystemDatabaseName = "system"

	// OneTableName is the name of the single-row table queries without a FROM
	// clause read from.
	OneTableName = "one"
)

// OneTableSchema is the schema of the system.one table.
var OneTableSchema = Schema{
	{Name: "dummy", Source: OneTableName, Type: Uint8, Nullable: false},
}

// IsOneTable returns whether the given table is the system.one table.
func IsOneTable(t Table) bool {
	if t == nil {
		return false
	}
	return strings.ToLower(t.Name()) == OneTableName && t.Schema().Equals(OneTableSchema)
}

type systemDatabase struct {
	tables map[string]Table
}

func newSystemDatabase() Database {
	return &systemDatabase{
		tables: map[string]Table{
			OneTableName: oneTable{},
		},
	}
}

// Name implements the Database interface.
func (d *systemDatabase) Name() string { return SystemDatabaseName }

// Tables implements the Database interface.
func (d *systemDatabase) Tables() map[string]Table { return d.tables }

type oneTable struct{}

// Name implements the Table interface.
func (oneTable) Name() string { return OneTableName }

// Schema implements the Table interface.
func (oneTable) Schema() Schema { return OneTableSchema }
