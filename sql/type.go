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
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dolthub/vitess/go/sqltypes"
	"github.com/dolthub/vitess/go/vt/proto/query"
	"github.com/spf13/cast"
	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrInvalidType is thrown when there is an unexpected type at some part of
	// the analysis tree.
	ErrInvalidType = errors.NewKind("invalid type: %s")

	// ErrValueNotNil is thrown when a value that was expected to be nil, is not.
	ErrValueNotNil = errors.NewKind("value not nil: %#v")

	// ErrNotTuple is returned when a value is not a tuple.
	ErrNotTuple = errors.NewKind("value of type %T is not a tuple")

	// ErrInvalidColumnNumber is returned when a tuple has an invalid number of
	// values.
	ErrInvalidColumnNumber = errors.NewKind("tuple should contain %d column(s), but has %d")

	// ErrConvertingToTime is thrown when a value cannot be converted to a time.
	ErrConvertingToTime = errors.NewKind("value %q can't be converted to time.Time")
)

// Type represents a SQL type.
type Type interface {
	// Type returns the query.Type for the given Type.
	Type() query.Type
	// Convert a value of a compatible type to a most accurate type.
	Convert(v interface{}) (interface{}, error)
	// Compare returns an integer comparing two values. The result will be 0 if
	// a==b, -1 if a < b, and +1 if a > b.
	Compare(a interface{}, b interface{}) (int, error)
	fmt.Stringer
}

const (
	// TimestampLayout is the formatting string for timestamp values.
	TimestampLayout = "2006-01-02 15:04:05"
	// DateLayout is the formatting string for date values.
	DateLayout = "2006-01-02"
)

var (
	// Null represents the null type.
	Null nullT

	// Boolean is a boolean type.
	Boolean booleanT

	// Int8 is an integer of 8 bits.
	Int8 = numberT{id: sqltypes.Int8}
	// Int16 is an integer of 16 bits.
	Int16 = numberT{id: sqltypes.Int16}
	// Int32 is an integer of 32 bits.
	Int32 = numberT{id: sqltypes.Int32}
	// Int64 is an integer of 64 bits.
	Int64 = numberT{id: sqltypes.Int64}
	// Uint8 is an unsigned integer of 8 bits.
	Uint8 = numberT{id: sqltypes.Uint8}
	// Uint16 is an unsigned integer of 16 bits.
	Uint16 = numberT{id: sqltypes.Uint16}
	// Uint32 is an unsigned integer of 32 bits.
	Uint32 = numberT{id: sqltypes.Uint32}
	// Uint64 is an unsigned integer of 64 bits.
	Uint64 = numberT{id: sqltypes.Uint64}
	// Float32 is a floating point number of 32 bits.
	Float32 = numberT{id: sqltypes.Float32}
	// Float64 is a floating point number of 64 bits.
	Float64 = numberT{id: sqltypes.Float64}

	// Text is a string type.
	Text textT

	// Blob is a type for binary data.
	Blob blobT

	// Date is a date with day precision.
	Date dateT

	// Timestamp is a date and a time with second precision.
	Timestamp timestampT
)

// Tuple returns a new tuple type with the given element types.
func Tuple(types ...Type) Type {
	return tupleT(types)
}

// MysqlTypeToType gets the column type using the mysql type.
func MysqlTypeToType(t query.Type) (Type, error) {
	switch t {
	case sqltypes.Null:
		return Null, nil
	case sqltypes.Int8:
		return Int8, nil
	case sqltypes.Int16:
		return Int16, nil
	case sqltypes.Int32:
		return Int32, nil
	case sqltypes.Int64:
		return Int64, nil
	case sqltypes.Uint8:
		return Uint8, nil
	case sqltypes.Uint16:
		return Uint16, nil
	case sqltypes.Uint32:
		return Uint32, nil
	case sqltypes.Uint64:
		return Uint64, nil
	case sqltypes.Float32:
		return Float32, nil
	case sqltypes.Float64:
		return Float64, nil
	case sqltypes.Bit:
		return Boolean, nil
	case sqltypes.Text, sqltypes.VarChar, sqltypes.Char:
		return Text, nil
	case sqltypes.Blob, sqltypes.VarBinary, sqltypes.Binary:
		return Blob, nil
	case sqltypes.Date:
		return Date, nil
	case sqltypes.Timestamp, sqltypes.Datetime:
		return Timestamp, nil
	default:
		return nil, ErrInvalidType.New(t)
	}
}

type nullT struct{}

func (t nullT) String() string { return "NULL" }

// Type implements Type interface.
func (t nullT) Type() query.Type {
	return sqltypes.Null
}

// Convert implements Type interface.
func (t nullT) Convert(v interface{}) (interface{}, error) {
	if v != nil {
		return nil, ErrValueNotNil.New(v)
	}

	return nil, nil
}

// Compare implements Type interface. Note that while this returns 0 (equals)
// for ordering purposes, in SQL NULL != NULL.
func (t nullT) Compare(a interface{}, b interface{}) (int, error) {
	return 0, nil
}

type numberT struct {
	id query.Type
}

func (t numberT) String() string { return strings.ToUpper(t.id.String()) }

// Type implements Type interface.
func (t numberT) Type() query.Type {
	return t.id
}

// Convert implements Type interface.
func (t numberT) Convert(v interface{}) (interface{}, error) {
	switch t.id {
	case sqltypes.Int8:
		return cast.ToInt8E(v)
	case sqltypes.Int16:
		return cast.ToInt16E(v)
	case sqltypes.Int32:
		return cast.ToInt32E(v)
	case sqltypes.Int64:
		return cast.ToInt64E(v)
	case sqltypes.Uint8:
		return cast.ToUint8E(v)
	case sqltypes.Uint16:
		return cast.ToUint16E(v)
	case sqltypes.Uint32:
		return cast.ToUint32E(v)
	case sqltypes.Uint64:
		return cast.ToUint64E(v)
	case sqltypes.Float32:
		return cast.ToFloat32E(v)
	case sqltypes.Float64:
		return cast.ToFloat64E(v)
	default:
		return nil, ErrInvalidType.New(t.id)
	}
}

// Compare implements Type interface.
func (t numberT) Compare(a interface{}, b interface{}) (int, error) {
	if cmp, done := compareNulls(a, b); done {
		return cmp, nil
	}

	switch t.id {
	case sqltypes.Uint8, sqltypes.Uint16, sqltypes.Uint32, sqltypes.Uint64:
		ca, err := cast.ToUint64E(a)
		if err != nil {
			return 0, err
		}
		cb, err := cast.ToUint64E(b)
		if err != nil {
			return 0, err
		}

		if ca == cb {
			return 0, nil
		}
		if ca < cb {
			return -1, nil
		}
		return 1, nil
	case sqltypes.Float32, sqltypes.Float64:
		ca, err := cast.ToFloat64E(a)
		if err != nil {
			return 0, err
		}
		cb, err := cast.ToFloat64E(b)
		if err != nil {
			return 0, err
		}

		if ca == cb {
			return 0, nil
		}
		if ca < cb {
			return -1, nil
		}
		return 1, nil
	default:
		ca, err := cast.ToInt64E(a)
		if err != nil {
			return 0, err
		}
		cb, err := cast.ToInt64E(b)
		if err != nil {
			return 0, err
		}

		if ca == cb {
			return 0, nil
		}
		if ca < cb {
			return -1, nil
		}
		return 1, nil
	}
}

type booleanT struct{}

func (t booleanT) String() string { return "BOOLEAN" }

// Type implements Type interface.
func (t booleanT) Type() query.Type {
	return sqltypes.Bit
}

// Convert implements Type interface.
func (t booleanT) Convert(v interface{}) (interface{}, error) {
	return cast.ToBoolE(v)
}

// Compare implements Type interface.
func (t booleanT) Compare(a interface{}, b interface{}) (int, error) {
	if cmp, done := compareNulls(a, b); done {
		return cmp, nil
	}

	ca, err := cast.ToBoolE(a)
	if err != nil {
		return 0, err
	}
	cb, err := cast.ToBoolE(b)
	if err != nil {
		return 0, err
	}

	if ca == cb {
		return 0, nil
	}
	if !ca {
		return -1, nil
	}
	return 1, nil
}

type textT struct{}

func (t textT) String() string { return "TEXT" }

// Type implements Type interface.
func (t textT) Type() query.Type {
	return sqltypes.Text
}

// Convert implements Type interface.
func (t textT) Convert(v interface{}) (interface{}, error) {
	return cast.ToStringE(v)
}

// Compare implements Type interface.
func (t textT) Compare(a interface{}, b interface{}) (int, error) {
	if cmp, done := compareNulls(a, b); done {
		return cmp, nil
	}

	ca, err := cast.ToStringE(a)
	if err != nil {
		return 0, err
	}
	cb, err := cast.ToStringE(b)
	if err != nil {
		return 0, err
	}

	return strings.Compare(ca, cb), nil
}

type blobT struct{}

func (t blobT) String() string { return "BLOB" }

// Type implements Type interface.
func (t blobT) Type() query.Type {
	return sqltypes.Blob
}

// Convert implements Type interface.
func (t blobT) Convert(v interface{}) (interface{}, error) {
	switch value := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return value, nil
	case string:
		return []byte(value), nil
	case fmt.Stringer:
		return []byte(value.String()), nil
	default:
		return nil, ErrInvalidType.New(fmt.Sprintf("%T", v))
	}
}

// Compare implements Type interface.
func (t blobT) Compare(a interface{}, b interface{}) (int, error) {
	if cmp, done := compareNulls(a, b); done {
		return cmp, nil
	}

	ca, err := t.Convert(a)
	if err != nil {
		return 0, err
	}
	cb, err := t.Convert(b)
	if err != nil {
		return 0, err
	}

	return bytes.Compare(ca.([]byte), cb.([]byte)), nil
}

type timestampT struct{}

func (t timestampT) String() string { return "TIMESTAMP" }

// Type implements Type interface.
func (t timestampT) Type() query.Type {
	return sqltypes.Timestamp
}

// Convert implements Type interface.
func (t timestampT) Convert(v interface{}) (interface{}, error) {
	switch value := v.(type) {
	case time.Time:
		return value.UTC(), nil
	case string:
		ts, err := time.Parse(TimestampLayout, value)
		if err != nil {
			ts, err = time.Parse(DateLayout, value)
			if err != nil {
				return nil, ErrConvertingToTime.Wrap(err, v)
			}
		}
		return ts.UTC(), nil
	default:
		ts, err := Int64.Convert(v)
		if err != nil {
			return nil, ErrInvalidType.New(fmt.Sprintf("%T", v))
		}

		return time.Unix(ts.(int64), 0).UTC(), nil
	}
}

// Compare implements Type interface.
func (t timestampT) Compare(a interface{}, b interface{}) (int, error) {
	if cmp, done := compareNulls(a, b); done {
		return cmp, nil
	}

	av, err := t.Convert(a)
	if err != nil {
		return 0, err
	}
	bv, err := t.Convert(b)
	if err != nil {
		return 0, err
	}

	ta, tb := av.(time.Time), bv.(time.Time)
	if ta.Before(tb) {
		return -1, nil
	} else if ta.After(tb) {
		return 1, nil
	}
	return 0, nil
}

type dateT struct{}

func truncateDate(t time.Time) time.Time {
	return t.Truncate(24 * time.Hour)
}

func (t dateT) String() string { return "DATE" }

// Type implements Type interface.
func (t dateT) Type() query.Type {
	return sqltypes.Date
}

// Convert implements Type interface.
func (t dateT) Convert(v interface{}) (interface{}, error) {
	switch value := v.(type) {
	case time.Time:
		return truncateDate(value.UTC()), nil
	case string:
		ts, err := time.Parse(DateLayout, value)
		if err != nil {
			return nil, ErrConvertingToTime.Wrap(err, v)
		}
		return truncateDate(ts.UTC()), nil
	default:
		ts, err := Int64.Convert(v)
		if err != nil {
			return nil, ErrInvalidType.New(fmt.Sprintf("%T", v))
		}

		return truncateDate(time.Unix(ts.(int64), 0).UTC()), nil
	}
}

// Compare implements Type interface.
func (t dateT) Compare(a interface{}, b interface{}) (int, error) {
	if cmp, done := compareNulls(a, b); done {
		return cmp, nil
	}

	av, err := t.Convert(a)
	if err != nil {
		return 0, err
	}
	bv, err := t.Convert(b)
	if err != nil {
		return 0, err
	}

	ta, tb := av.(time.Time), bv.(time.Time)
	if ta.Before(tb) {
		return -1, nil
	} else if ta.After(tb) {
		return 1, nil
	}
	return 0, nil
}

type tupleT []Type

func (t tupleT) String() string {
	var elems = make([]string, len(t))
	for i, el := range t {
		elems[i] = el.String()
	}
	return fmt.Sprintf("TUPLE(%s)", strings.Join(elems, ", "))
}

// Type implements Type interface.
func (t tupleT) Type() query.Type {
	return sqltypes.Expression
}

// Convert implements Type interface.
func (t tupleT) Convert(v interface{}) (interface{}, error) {
	if vals, ok := v.([]interface{}); ok {
		if len(vals) != len(t) {
			return nil, ErrInvalidColumnNumber.New(len(t), len(vals))
		}

		var result = make([]interface{}, len(t))
		for i, typ := range t {
			var err error
			result[i], err = typ.Convert(vals[i])
			if err != nil {
				return nil, err
			}
		}

		return result, nil
	}
	return nil, ErrNotTuple.New(v)
}

// Compare implements Type interface.
func (t tupleT) Compare(a, b interface{}) (int, error) {
	if cmp, done := compareNulls(a, b); done {
		return cmp, nil
	}

	av, err := t.Convert(a)
	if err != nil {
		return 0, err
	}
	bv, err := t.Convert(b)
	if err != nil {
		return 0, err
	}

	as := av.([]interface{})
	bs := bv.([]interface{})
	for i := range as {
		cmp, err := t[i].Compare(as[i], bs[i])
		if err != nil {
			return 0, err
		}
		if cmp != 0 {
			return cmp, nil
		}
	}

	return 0, nil
}

// compareNulls compares two values and returns true if either is null. Nulls
// order before every other value.
func compareNulls(a interface{}, b interface{}) (int, bool) {
	aIsNull := a == nil
	bIsNull := b == nil
	if aIsNull && bIsNull {
		return 0, true
	} else if aIsNull && !bIsNull {
		return -1, true
	} else if !aIsNull && bIsNull {
		return 1, true
	}
	return 0, false
}

// IsNumber checks if t is a number type.
func IsNumber(t Type) bool {
	_, ok := t.(numberT)
	return ok
}

// IsSigned checks if t is a signed type.
func IsSigned(t Type) bool {
	return t == Int8 || t == Int16 || t == Int32 || t == Int64
}

// IsUnsigned checks if t is an unsigned type.
func IsUnsigned(t Type) bool {
	return t == Uint8 || t == Uint16 || t == Uint32 || t == Uint64
}

// IsDecimal checks if t is a decimal type.
func IsDecimal(t Type) bool {
	return t == Float32 || t == Float64
}

// IsText checks if t is a text type.
func IsText(t Type) bool {
	return t == Text || t == Blob
}

// IsTuple checks if t is a tuple type. Tuples with just one value are not
// considered tuples, but parenthesized values.
func IsTuple(t Type) bool {
	v, ok := t.(tupleT)
	return ok && len(v) > 1
}

// NumColumns returns the number of columns in a type. This is one for all
// types, except tuples.
func NumColumns(t Type) int {
	v, ok := t.(tupleT)
	if !ok {
		return 1
	}
	return len(v)
}
