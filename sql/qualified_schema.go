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
	"fmt"
	"strings"
)

// QualifiedColumn is a column together with the name path under which it is
// visible in a scope. A column read from table "t" of database "db" carries
// the prefix [db, t], a column of an aliased relation carries [alias], and a
// column of an unaliased derived relation or a table function carries no
// prefix at all.
type QualifiedColumn struct {
	*Column

	// Prefix is the name path qualifying the column. It may be empty.
	Prefix []string
}

// HasPrefix reports whether the column can be addressed through the given
// path. A path addresses the column when it matches the tail of the column
// prefix, so a column under [db, t] answers to both "t" and "db.t". Name
// parts are compared case insensitively. The empty path addresses every
// column.
func (c *QualifiedColumn) HasPrefix(path []string) bool {
	if len(path) > len(c.Prefix) {
		return false
	}

	tail := c.Prefix[len(c.Prefix)-len(path):]
	for i := range path {
		if !strings.EqualFold(path[i], tail[i]) {
			return false
		}
	}
	return true
}

// QualifiedName returns the fully qualified name of the column, with the
// prefix parts joined by dots.
func (c *QualifiedColumn) QualifiedName() string {
	if len(c.Prefix) == 0 {
		return c.Name
	}
	return strings.Join(c.Prefix, ".") + "." + c.Name
}

// QualifiedSchema is an ordered set of qualified columns describing everything
// a query scope can see. Schemas are composed, never mutated: Concat returns
// a new schema and leaves both inputs untouched.
type QualifiedSchema []*QualifiedColumn

// QualifySchema wraps every column of schema with the given prefix. The
// column pointers are shared with the input schema.
func QualifySchema(schema Schema, prefix ...string) QualifiedSchema {
	qs := make(QualifiedSchema, len(schema))
	for i, col := range schema {
		qs[i] = &QualifiedColumn{Column: col, Prefix: prefix}
	}
	return qs
}

// Concat returns a new schema with the columns of s followed by the columns
// of other. It fails when both sides expose the same non-empty prefix, since
// references through that prefix could never be resolved to a single
// relation.
func (s QualifiedSchema) Concat(other QualifiedSchema) (QualifiedSchema, error) {
	seen := make(map[string]struct{})
	for _, col := range s {
		if len(col.Prefix) > 0 {
			seen[strings.ToLower(strings.Join(col.Prefix, "."))] = struct{}{}
		}
	}

	for _, col := range other {
		if len(col.Prefix) == 0 {
			continue
		}
		if _, ok := seen[strings.ToLower(strings.Join(col.Prefix, "."))]; ok {
			return nil, ErrDuplicateAliasOrTable.New(strings.Join(col.Prefix, "."))
		}
	}

	result := make(QualifiedSchema, 0, len(s)+len(other))
	result = append(result, s...)
	result = append(result, other...)
	return result, nil
}

// Resolve finds the single column addressed by the given path and name and
// returns it along with its position in the schema. Resolution fails when no
// column matches or when more than one does.
func (s QualifiedSchema) Resolve(path []string, name string) (*QualifiedColumn, int, error) {
	var found *QualifiedColumn
	var foundIdx int
	var prefixes []string

	for i, col := range s {
		if !strings.EqualFold(col.Name, name) || !col.HasPrefix(path) {
			continue
		}

		if found == nil {
			found, foundIdx = col, i
		}
		prefix := strings.Join(col.Prefix, ".")
		if prefix == "" {
			prefix = "(unqualified)"
		}
		prefixes = append(prefixes, prefix)
	}

	switch len(prefixes) {
	case 0:
		if len(path) == 0 {
			return nil, 0, ErrColumnNotFound.New(name)
		}
		return nil, 0, ErrTableColumnNotFound.New(strings.Join(path, "."), name)
	case 1:
		return found, foundIdx, nil
	default:
		return nil, 0, ErrAmbiguousColumnName.New(name, strings.Join(prefixes, ", "))
	}
}

// Contains reports whether the path and name resolve to exactly one column.
func (s QualifiedSchema) Contains(path []string, name string) bool {
	_, _, err := s.Resolve(path, name)
	return err == nil
}

// Schema strips the qualification and returns the plain column definitions,
// sharing the column pointers with s.
func (s QualifiedSchema) Schema() Schema {
	schema := make(Schema, len(s))
	for i, col := range s {
		schema[i] = col.Column
	}
	return schema
}

func (s QualifiedSchema) String() string {
	names := make([]string, len(s))
	for i, col := range s {
		names[i] = fmt.Sprintf("%s %s", col.QualifiedName(), col.Type)
	}
	return "(" + strings.Join(names, ", ") + ")"
}
