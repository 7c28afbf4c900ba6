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
	"strings"

	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/skiffdb/skiff/sql"
)

// GetField is an expression to get the field of a relation in scope. It is
// produced by resolving a column reference against a qualified schema and
// carries the position of the column in that schema.
type GetField struct {
	fieldIndex int
	path       []string
	name       string
	fieldType  sql.Type
	nullable   bool
}

var _ sql.Expression = (*GetField)(nil)

// NewGetField creates a GetField expression. The path is the name path the
// column is qualified under, which may be empty.
func NewGetField(index int, path []string, fieldName string, fieldType sql.Type, nullable bool) *GetField {
	return &GetField{
		fieldIndex: index,
		path:       path,
		name:       fieldName,
		fieldType:  fieldType,
		nullable:   nullable,
	}
}

// Index returns the index where the GetField will look for the value from a
// sql.Row.
func (p *GetField) Index() int { return p.fieldIndex }

// Path returns the name path of the field.
func (p *GetField) Path() []string { return p.path }

// Name implements the Nameable interface.
func (p *GetField) Name() string { return p.name }

// Children implements the Expression interface.
func (*GetField) Children() []sql.Expression {
	return nil
}

// Resolved implements the Expression interface.
func (p *GetField) Resolved() bool {
	return true
}

// IsNullable returns whether the field is nullable or not.
func (p *GetField) IsNullable() bool {
	return p.nullable
}

// Type returns the type of the field.
func (p *GetField) Type() sql.Type {
	return p.fieldType
}

// ErrIndexOutOfBounds is returned when the field index is out of the bounds.
var ErrIndexOutOfBounds = errors.NewKind("unable to find field with index %d in row of %d columns")

// Eval implements the Expression interface.
func (p *GetField) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	if p.fieldIndex < 0 || p.fieldIndex >= len(row) {
		return nil, ErrIndexOutOfBounds.New(p.fieldIndex, len(row))
	}
	return row[p.fieldIndex], nil
}

// WithChildren implements the Expression interface.
func (p *GetField) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(children), 0)
	}
	return p, nil
}

// WithIndex returns this same GetField with a new index.
func (p *GetField) WithIndex(n int) sql.Expression {
	p2 := *p
	p2.fieldIndex = n
	return &p2
}

func (p *GetField) String() string {
	if len(p.path) == 0 {
		return p.name
	}
	return strings.Join(p.path, ".") + "." + p.name
}
