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
	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrSyntaxError is returned when a query cannot be parsed.
	ErrSyntaxError = errors.NewKind("syntax error: %s")

	// ErrUnsupportedSyntax is returned when a parsed query contains syntax the
	// analyzer does not handle.
	ErrUnsupportedSyntax = errors.NewKind("unsupported syntax: %s")

	// ErrUnsupportedFeature is thrown when a feature is not already supported.
	ErrUnsupportedFeature = errors.NewKind("unsupported feature: %s")

	// ErrInvalidTableName is returned when a table reference has more than two
	// name parts.
	ErrInvalidTableName = errors.NewKind("invalid table name %q, must be of the form [database.]table")

	// ErrDatabaseNotFound is thrown when a database is not found.
	ErrDatabaseNotFound = errors.NewKind("database not found: %s")

	// ErrTableNotFound is returned when the table is not available from the
	// current scope.
	ErrTableNotFound = errors.NewKind("table not found: %s")

	// ErrTableFunctionNotFound is returned when a query references a table
	// function that was never registered.
	ErrTableFunctionNotFound = errors.NewKind("table function not found: %s")

	// ErrFunctionNotFound is thrown when a function is not found.
	ErrFunctionNotFound = errors.NewKind("function not found: %s")

	// ErrFunctionAlreadyRegistered is thrown when a function is already
	// registered.
	ErrFunctionAlreadyRegistered = errors.NewKind("function %q is already registered")

	// ErrNoDatabaseSelected is thrown when a database is not selected and the
	// table reference does not name one.
	ErrNoDatabaseSelected = errors.NewKind("no database selected")

	// ErrColumnNotFound is returned when the column does not exist in any
	// table in scope.
	ErrColumnNotFound = errors.NewKind("column %q could not be found in any table in scope")

	// ErrTableColumnNotFound is thrown when a column is not found in the table
	// its reference names.
	ErrTableColumnNotFound = errors.NewKind("table %q does not have column %q")

	// ErrAmbiguousColumnName is returned when there is a column reference that
	// is present in more than one table.
	ErrAmbiguousColumnName = errors.NewKind("ambiguous column name %q, it's present in all these tables: %v")

	// ErrDuplicateAliasOrTable should be returned when a query contains a
	// duplicate alias or table name.
	ErrDuplicateAliasOrTable = errors.NewKind("Not unique table/alias: %s")

	// ErrDuplicateColumn is returned when a derived table would expose two
	// columns with the same name.
	ErrDuplicateColumn = errors.NewKind("Duplicate column name %q")

	// ErrColumnCountMismatch is returned when a derived table column list does
	// not match the number of columns the subquery produces.
	ErrColumnCountMismatch = errors.NewKind("derived table %q has %d columns available but %d columns specified")

	// ErrInvalidArgument is returned when an argument to a function is invalid.
	ErrInvalidArgument = errors.NewKind("invalid argument to %s: %s")

	// ErrInvalidArgumentNumber is returned when the number of arguments to call
	// a function is different from the function arity.
	ErrInvalidArgumentNumber = errors.NewKind("expecting %v arguments for calling this function, %d received")

	// ErrColumnIndexOutOfRange is returned when a positional reference names a
	// column outside the projection.
	ErrColumnIndexOutOfRange = errors.NewKind("column position %d is out of range in the %s clause")

	// ErrInvalidAggregate is returned when an aggregate call appears in a
	// clause that does not admit one.
	ErrInvalidAggregate = errors.NewKind("aggregate function %s is not allowed in the %s clause")

	// ErrNestedAggregate is returned when an aggregate call appears inside the
	// arguments of another aggregate.
	ErrNestedAggregate = errors.NewKind("aggregate function calls cannot be nested")

	// ErrSubqueryTooDeep is returned when subqueries nest past the configured
	// maximum depth.
	ErrSubqueryTooDeep = errors.NewKind("subquery is nested too deeply, maximum depth is %d")

	// ErrInvalidChildrenNumber is returned when the WithChildren method of an
	// expression is called with an invalid number of arguments.
	ErrInvalidChildrenNumber = errors.NewKind("%T: invalid children number, got %d, expected %d")

	// ErrTableAlreadyExists is thrown when someone tries to create a
	// table with a name of an existing one.
	ErrTableAlreadyExists = errors.NewKind("table with name %s already exists")

	// ErrInternalRelation is returned when the relation sequence handed to the
	// resolver is malformed. It always indicates a bug in the sequence
	// builder, never a problem with the query.
	ErrInternalRelation = errors.NewKind("internal error: malformed relation sequence: %s")

	// ErrInternalSubquery is returned when a nested query analyzes to something
	// other than a select result. It always indicates a bug in the analyzer.
	ErrInternalSubquery = errors.NewKind("internal error: nested query analysis returned %s, expected a select result")
)

// IsInternalError reports whether err was caused by a bug in the analyzer
// rather than by the query under analysis.
func IsInternalError(err error) bool {
	return ErrInternalRelation.Is(err) || ErrInternalSubquery.Is(err)
}
