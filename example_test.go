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

package skiff_test

import (
	"context"
	"fmt"

	"github.com/skiffdb/skiff"
	"github.com/skiffdb/skiff/memory"
	"github.com/skiffdb/skiff/sql"
)

func Example() {
	e := skiff.NewDefault()

	// Register a database holding only table definitions.
	e.AddDatabase(createTestDatabase())

	session := sql.NewSession("0.0.0.0:3306", "client", "john", 1)
	session.SetCurrentDatabase("test")
	ctx := sql.NewContext(context.Background(), sql.WithSession(session))

	state, err := e.AnalyzeQuery(ctx, `SELECT name, count(*) AS total FROM mytable
	WHERE email LIKE '%doe.com'
	GROUP BY name`)
	checkIfError(err)

	// The finalize schema is what the query will return once planned.
	for _, col := range state.FinalizeSchema {
		fmt.Println(col.Name, col.Type)
	}

	// Output:
	// name TEXT
	// total INT64
}

func checkIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func createTestDatabase() sql.Database {
	db := memory.NewDatabase("test")
	db.AddTable("mytable", memory.NewTable("mytable", sql.Schema{
		{Name: "name", Type: sql.Text, Source: "mytable"},
		{Name: "email", Type: sql.Text, Source: "mytable"},
	}))

	return db
}
