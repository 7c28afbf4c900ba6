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
	"bytes"
	"fmt"
	"regexp"

	"github.com/skiffdb/skiff/sql"
)

// Like performs pattern matching against two strings.
type Like struct {
	BinaryExpression
}

// NewLike creates a new LIKE expression.
func NewLike(left, right sql.Expression) *Like {
	return &Like{BinaryExpression{left, right}}
}

// Type implements the Expression interface.
func (l *Like) Type() sql.Type { return sql.Boolean }

// Eval implements the Expression interface.
func (l *Like) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	left, err := l.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}

	right, err := l.Right.Eval(ctx, row)
	if err != nil {
		return nil, err
	}

	if left == nil || right == nil {
		return nil, nil
	}

	lv, err := sql.Text.Convert(left)
	if err != nil {
		return nil, err
	}

	rv, err := sql.Text.Convert(right)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(patternToRegex(rv.(string)))
	if err != nil {
		return nil, err
	}

	return re.MatchString(lv.(string)), nil
}

func (l *Like) String() string {
	return fmt.Sprintf("%s LIKE %s", l.Left, l.Right)
}

// WithChildren implements the Expression interface.
func (l *Like) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(l, len(children), 2)
	}
	return NewLike(children[0], children[1]), nil
}

func patternToRegex(pattern string) string {
	var buf bytes.Buffer
	buf.WriteRune('^')
	for _, r := range pattern {
		switch r {
		case '_':
			buf.WriteRune('.')
		case '%':
			buf.WriteString(".*")
		default:
			buf.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	buf.WriteRune('$')
	return buf.String()
}
