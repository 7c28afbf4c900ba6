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

import "fmt"

// Nameable is something that has a name.
type Nameable interface {
	// Name returns the name.
	Name() string
}

// Resolvable is something that can be resolved or not.
type Resolvable interface {
	// Resolved returns whether the node is resolved.
	Resolved() bool
}

// Expression is a resolved scalar expression node produced by the analyzer.
type Expression interface {
	Resolvable
	fmt.Stringer
	// Type returns the expression type.
	Type() Type
	// IsNullable returns whether the expression can be null.
	IsNullable() bool
	// Eval evaluates the given row and returns a result.
	Eval(ctx *Context, row Row) (interface{}, error)
	// Children returns the children expressions of this expression.
	Children() []Expression
	// WithChildren returns a copy of the expression with children replaced.
	// It must return an error if the number of children is different than
	// the current number of children. They must be given in the same order
	// as they are returned by Children.
	WithChildren(children ...Expression) (Expression, error)
}

// Table represents a named relation with a fixed schema.
type Table interface {
	Nameable
	// Schema returns the stored schema of the relation.
	Schema() Schema
}

// Database represents a collection of tables.
type Database interface {
	Nameable
	// Tables returns the tables of the database, keyed by name.
	Tables() map[string]Table
}

// TableFunction is a catalog-registered function that produces a relation
// from scalar arguments, usable in a FROM clause in place of a table.
type TableFunction interface {
	Nameable
	// NewInstance binds the function to the given argument expressions and
	// returns the relation the call produces. The arguments are analyzed
	// against the empty schema, so they can hold no column references.
	NewInstance(ctx *Context, args []Expression) (Table, error)
}
