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
	"github.com/skiffdb/skiff/sql"
)

// SequenceTableFunction produces a bounded integer sequence relation. It is
// invoked as sequence(n) in a FROM clause and declares a single unsigned
// column named i.
type SequenceTableFunction struct{}

var _ sql.TableFunction = SequenceTableFunction{}

var sequenceSchema = sql.Schema{
	{Name: "i", Type: sql.Uint64, Source: "sequence", Nullable: false},
}

// Name returns the name the function registers under.
func (SequenceTableFunction) Name() string {
	return "sequence"
}

// NewInstance binds the function to its evaluated arguments.
func (SequenceTableFunction) NewInstance(ctx *sql.Context, args []sql.Expression) (sql.Table, error) {
	if len(args) != 1 {
		return nil, sql.ErrInvalidArgumentNumber.New(1, len(args))
	}

	v, err := args[0].Eval(ctx, nil)
	if err != nil {
		return nil, err
	}

	count, err := sql.Int64.Convert(v)
	if err != nil {
		return nil, sql.ErrInvalidArgument.New("sequence", err.Error())
	}
	if count.(int64) < 0 {
		return nil, sql.ErrInvalidArgument.New("sequence", "count must not be negative")
	}

	return &sequenceTable{count: count.(int64)}, nil
}

type sequenceTable struct {
	count int64
}

func (t *sequenceTable) Name() string {
	return "sequence"
}

func (t *sequenceTable) Schema() sql.Schema {
	return sequenceSchema
}
