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
	"fmt"
	"regexp"

	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/skiffdb/skiff/sql"
)

// ErrUnsupportedInOperand is returned when there is an invalid righthand
// operand in an IN operation.
var ErrUnsupportedInOperand = errors.NewKind("right operand in IN operation must be tuple, but is %T")

type comparison struct {
	BinaryExpression
}

func newComparison(left, right sql.Expression) comparison {
	return comparison{BinaryExpression{left, right}}
}

// Compare the two given values using the types of the expressions in the
// comparison. Since both types should be equal, it does not matter which type
// is used, but for reference, the left type is always used.
func (c *comparison) Compare(a, b interface{}) (int, error) {
	return c.Left.Type().Compare(a, b)
}

func (c *comparison) evalLeftAndRight(ctx *sql.Context, row sql.Row) (interface{}, interface{}, error) {
	left, err := c.Left.Eval(ctx, row)
	if err != nil {
		return nil, nil, err
	}

	right, err := c.Right.Eval(ctx, row)
	if err != nil {
		return nil, nil, err
	}

	return left, right, nil
}

// Type implements the Expression interface.
func (*comparison) Type() sql.Type {
	return sql.Boolean
}

// Equals is a comparison that checks an expression is equal to another.
type Equals struct {
	comparison
}

// NewEquals returns a new Equals expression.
func NewEquals(left sql.Expression, right sql.Expression) *Equals {
	return &Equals{newComparison(left, right)}
}

// Eval implements the Expression interface.
func (e *Equals) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	a, b, err := e.evalLeftAndRight(ctx, row)
	if err != nil {
		return nil, err
	}

	if a == nil || b == nil {
		return nil, nil
	}

	cmp, err := e.Compare(a, b)
	if err != nil {
		return nil, err
	}

	return cmp == 0, nil
}

// WithChildren implements the Expression interface.
func (e *Equals) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(e, len(children), 2)
	}
	return NewEquals(children[0], children[1]), nil
}

func (e *Equals) String() string {
	return fmt.Sprintf("%s = %s", e.Left, e.Right)
}

// LessThan is a comparison that checks an expression is less than another.
type LessThan struct {
	comparison
}

// NewLessThan creates a new LessThan expression.
func NewLessThan(left sql.Expression, right sql.Expression) *LessThan {
	return &LessThan{newComparison(left, right)}
}

// Eval implements the expression interface.
func (lt *LessThan) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	a, b, err := lt.evalLeftAndRight(ctx, row)
	if err != nil {
		return nil, err
	}

	if a == nil || b == nil {
		return nil, nil
	}

	cmp, err := lt.Compare(a, b)
	if err != nil {
		return nil, err
	}

	return cmp == -1, nil
}

// WithChildren implements the Expression interface.
func (lt *LessThan) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(lt, len(children), 2)
	}
	return NewLessThan(children[0], children[1]), nil
}

func (lt *LessThan) String() string {
	return fmt.Sprintf("%s < %s", lt.Left, lt.Right)
}

// GreaterThan is a comparison that checks an expression is greater than
// another.
type GreaterThan struct {
	comparison
}

// NewGreaterThan creates a new GreaterThan expression.
func NewGreaterThan(left sql.Expression, right sql.Expression) *GreaterThan {
	return &GreaterThan{newComparison(left, right)}
}

// Eval implements the Expression interface.
func (gt *GreaterThan) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	a, b, err := gt.evalLeftAndRight(ctx, row)
	if err != nil {
		return nil, err
	}

	if a == nil || b == nil {
		return nil, nil
	}

	cmp, err := gt.Compare(a, b)
	if err != nil {
		return nil, err
	}

	return cmp == 1, nil
}

// WithChildren implements the Expression interface.
func (gt *GreaterThan) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(gt, len(children), 2)
	}
	return NewGreaterThan(children[0], children[1]), nil
}

func (gt *GreaterThan) String() string {
	return fmt.Sprintf("%s > %s", gt.Left, gt.Right)
}

// LessThanOrEqual is a comparison that checks an expression is equal or lower
// than another.
type LessThanOrEqual struct {
	comparison
}

// NewLessThanOrEqual creates a LessThanOrEqual expression.
func NewLessThanOrEqual(left sql.Expression, right sql.Expression) *LessThanOrEqual {
	return &LessThanOrEqual{newComparison(left, right)}
}

// Eval implements the Expression interface.
func (lte *LessThanOrEqual) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	a, b, err := lte.evalLeftAndRight(ctx, row)
	if err != nil {
		return nil, err
	}

	if a == nil || b == nil {
		return nil, nil
	}

	cmp, err := lte.Compare(a, b)
	if err != nil {
		return nil, err
	}

	return cmp < 1, nil
}

// WithChildren implements the Expression interface.
func (lte *LessThanOrEqual) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(lte, len(children), 2)
	}
	return NewLessThanOrEqual(children[0], children[1]), nil
}

func (lte *LessThanOrEqual) String() string {
	return fmt.Sprintf("%s <= %s", lte.Left, lte.Right)
}

// GreaterThanOrEqual is a comparison that checks an expression is greater or
// equal to another.
type GreaterThanOrEqual struct {
	comparison
}

// NewGreaterThanOrEqual creates a new GreaterThanOrEqual expression.
func NewGreaterThanOrEqual(left sql.Expression, right sql.Expression) *GreaterThanOrEqual {
	return &GreaterThanOrEqual{newComparison(left, right)}
}

// Eval implements the Expression interface.
func (gte *GreaterThanOrEqual) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	a, b, err := gte.evalLeftAndRight(ctx, row)
	if err != nil {
		return nil, err
	}

	if a == nil || b == nil {
		return nil, nil
	}

	cmp, err := gte.Compare(a, b)
	if err != nil {
		return nil, err
	}

	return cmp > -1, nil
}

// WithChildren implements the Expression interface.
func (gte *GreaterThanOrEqual) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(gte, len(children), 2)
	}
	return NewGreaterThanOrEqual(children[0], children[1]), nil
}

func (gte *GreaterThanOrEqual) String() string {
	return fmt.Sprintf("%s >= %s", gte.Left, gte.Right)
}

// In is a comparison that checks an expression is inside a list of
// expressions.
type In struct {
	comparison
}

// NewIn creates an In expression.
func NewIn(left sql.Expression, right sql.Expression) *In {
	return &In{newComparison(left, right)}
}

// Eval implements the Expression interface.
func (in *In) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	typ := in.Right.Type()
	if !sql.IsTuple(typ) {
		return nil, ErrUnsupportedInOperand.New(in.Right)
	}

	left, err := in.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if left == nil {
		return nil, nil
	}

	right, err := in.Right.Eval(ctx, row)
	if err != nil {
		return nil, err
	}

	values, ok := right.([]interface{})
	if !ok {
		return nil, ErrUnsupportedInOperand.New(right)
	}

	for _, el := range values {
		cmp, err := in.Left.Type().Compare(left, el)
		if err != nil {
			return nil, err
		}

		if cmp == 0 {
			return true, nil
		}
	}

	return false, nil
}

// WithChildren implements the Expression interface.
func (in *In) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(in, len(children), 2)
	}
	return NewIn(children[0], children[1]), nil
}

func (in *In) String() string {
	return fmt.Sprintf("%s IN %s", in.Left, in.Right)
}

// Regexp is a comparison that checks an expression matches a regexp.
type Regexp struct {
	comparison
}

// NewRegexp creates a new Regexp expression.
func NewRegexp(left sql.Expression, right sql.Expression) *Regexp {
	return &Regexp{newComparison(left, right)}
}

// Eval implements the Expression interface.
func (re *Regexp) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	l, r, err := re.evalLeftAndRight(ctx, row)
	if err != nil {
		return nil, err
	}

	if l == nil || r == nil {
		return nil, nil
	}

	sl, okl := l.(string)
	sr, okr := r.(string)
	if !okl || !okr {
		cmp, err := re.Compare(l, r)
		if err != nil {
			return nil, err
		}
		return cmp == 0, nil
	}

	reg, err := regexp.Compile(sr)
	if err != nil {
		return false, err
	}

	return reg.MatchString(sl), nil
}

// WithChildren implements the Expression interface.
func (re *Regexp) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(re, len(children), 2)
	}
	return NewRegexp(children[0], children[1]), nil
}

func (re *Regexp) String() string {
	return fmt.Sprintf("%s REGEXP %s", re.Left, re.Right)
}
