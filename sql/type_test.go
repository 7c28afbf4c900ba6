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
	"testing"
	"time"

	"github.com/dolthub/vitess/go/sqltypes"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	convert(t, Text, "", "")
	convert(t, Text, 1, "1")

	lt(t, Text, "a", "b")
	eq(t, Text, "a", "a")
	gt(t, Text, "b", "a")
}

func TestInt32(t *testing.T) {
	convert(t, Int32, int32(1), int32(1))
	convert(t, Int32, 1, int32(1))
	convert(t, Int32, int64(1), int32(1))
	convert(t, Int32, "5", int32(5))
	convertErr(t, Int32, "foo")

	lt(t, Int32, int32(1), int32(2))
	eq(t, Int32, int32(1), int32(1))
	gt(t, Int32, int32(2), int32(1))
}

func TestInt64(t *testing.T) {
	convert(t, Int64, int64(1), int64(1))
	convert(t, Int64, 1, int64(1))
	convert(t, Int64, int32(1), int64(1))
	convert(t, Int64, "5", int64(5))
	convertErr(t, Int64, "foo")

	lt(t, Int64, int64(1), int64(2))
	eq(t, Int64, int64(1), int64(1))
	gt(t, Int64, int64(2), int64(1))
	lt(t, Int64, int64(-1), int64(1))
}

func TestUint64(t *testing.T) {
	convert(t, Uint64, uint64(1), uint64(1))
	convert(t, Uint64, 1, uint64(1))
	convert(t, Uint64, "18446744073709551615", uint64(18446744073709551615))

	lt(t, Uint64, uint64(1), uint64(2))
	eq(t, Uint64, uint64(1), uint64(1))
	gt(t, Uint64, uint64(2), uint64(1))
}

func TestFloat64(t *testing.T) {
	convert(t, Float64, float64(1.5), float64(1.5))
	convert(t, Float64, 1, float64(1))
	convert(t, Float64, "1.5", float64(1.5))

	lt(t, Float64, float64(1.1), float64(1.2))
	eq(t, Float64, float64(1.1), float64(1.1))
	gt(t, Float64, float64(1.2), float64(1.1))
}

func TestBoolean(t *testing.T) {
	convert(t, Boolean, true, true)
	convert(t, Boolean, 1, true)
	convert(t, Boolean, 0, false)
	convert(t, Boolean, "true", true)

	lt(t, Boolean, false, true)
	eq(t, Boolean, true, true)
	gt(t, Boolean, true, false)
}

func TestBlob(t *testing.T) {
	convert(t, Blob, []byte("foo"), []byte("foo"))
	convert(t, Blob, "foo", []byte("foo"))
	convertErr(t, Blob, 1)

	lt(t, Blob, []byte("a"), []byte("b"))
	eq(t, Blob, []byte("a"), []byte("a"))
	gt(t, Blob, []byte("b"), []byte("a"))
}

func TestTimestamp(t *testing.T) {
	require := require.New(t)

	now := time.Now().UTC().Truncate(time.Second)
	v, err := Timestamp.Convert(now)
	require.NoError(err)
	require.Equal(now, v)

	v, err = Timestamp.Convert(now.Format(TimestampLayout))
	require.NoError(err)
	require.Equal(now.Format(TimestampLayout), v.(time.Time).Format(TimestampLayout))

	v, err = Timestamp.Convert(now.Unix())
	require.NoError(err)
	require.Equal(now.Format(TimestampLayout), v.(time.Time).Format(TimestampLayout))

	_, err = Timestamp.Convert("not a timestamp")
	require.Error(err)
	require.True(ErrConvertingToTime.Is(err))

	after := now.Add(time.Second)
	lt(t, Timestamp, now, after)
	eq(t, Timestamp, now, now)
	gt(t, Timestamp, after, now)
}

func TestDate(t *testing.T) {
	require := require.New(t)

	now := time.Now().UTC()
	v, err := Date.Convert(now)
	require.NoError(err)
	require.Equal(now.Format(DateLayout), v.(time.Time).Format(DateLayout))

	v, err = Date.Convert("2019-07-21")
	require.NoError(err)
	require.Equal("2019-07-21", v.(time.Time).Format(DateLayout))

	_, err = Date.Convert("not a date")
	require.Error(err)
	require.True(ErrConvertingToTime.Is(err))
}

func TestTuple(t *testing.T) {
	require := require.New(t)

	typ := Tuple(Int32, Text)
	_, err := typ.Convert("foo")
	require.Error(err)
	require.True(ErrNotTuple.Is(err))

	_, err = typ.Convert([]interface{}{1, 2, 3})
	require.Error(err)
	require.True(ErrInvalidColumnNumber.Is(err))

	conv, err := typ.Convert([]interface{}{1, "foo"})
	require.NoError(err)
	require.Equal([]interface{}{int32(1), "foo"}, conv)

	lt(t, typ, []interface{}{1, "a"}, []interface{}{2, "a"})
	lt(t, typ, []interface{}{1, "a"}, []interface{}{1, "b"})
	eq(t, typ, []interface{}{1, "a"}, []interface{}{1, "a"})
	gt(t, typ, []interface{}{2, "a"}, []interface{}{1, "a"})

	require.Equal("TUPLE(INT32, TEXT)", typ.String())
}

func TestNull(t *testing.T) {
	require := require.New(t)

	v, err := Null.Convert(nil)
	require.NoError(err)
	require.Nil(v)

	_, err = Null.Convert(1)
	require.Error(err)
	require.True(ErrValueNotNil.Is(err))
}

func TestCompareNulls(t *testing.T) {
	// Nulls order before everything else.
	lt(t, Int64, nil, int64(1))
	gt(t, Int64, int64(1), nil)
	eq(t, Int64, nil, nil)
}

func TestMysqlTypeToType(t *testing.T) {
	require := require.New(t)

	typ, err := MysqlTypeToType(sqltypes.Int64)
	require.NoError(err)
	require.Equal(Int64, typ)

	typ, err = MysqlTypeToType(sqltypes.VarChar)
	require.NoError(err)
	require.Equal(Text, typ)

	_, err = MysqlTypeToType(sqltypes.Geometry)
	require.Error(err)
	require.True(ErrInvalidType.Is(err))
}

func TestTypePredicates(t *testing.T) {
	require := require.New(t)

	require.True(IsNumber(Int64))
	require.False(IsNumber(Text))
	require.True(IsSigned(Int32))
	require.False(IsSigned(Uint32))
	require.True(IsUnsigned(Uint64))
	require.True(IsDecimal(Float64))
	require.True(IsText(Text))
	require.True(IsText(Blob))

	require.False(IsTuple(Tuple(Int64)))
	require.True(IsTuple(Tuple(Int64, Text)))
	require.Equal(1, NumColumns(Int64))
	require.Equal(2, NumColumns(Tuple(Int64, Text)))
}

func convert(t *testing.T, typ Type, val interface{}, expected interface{}) {
	t.Helper()
	v, err := typ.Convert(val)
	require.NoError(t, err)
	require.Equal(t, expected, v)
}

func convertErr(t *testing.T, typ Type, val interface{}) {
	t.Helper()
	_, err := typ.Convert(val)
	require.Error(t, err)
}

func lt(t *testing.T, typ Type, a, b interface{}) {
	t.Helper()
	cmp, err := typ.Compare(a, b)
	require.NoError(t, err)
	require.Equal(t, -1, cmp)
}

func eq(t *testing.T, typ Type, a, b interface{}) {
	t.Helper()
	cmp, err := typ.Compare(a, b)
	require.NoError(t, err)
	require.Equal(t, 0, cmp)
}

func gt(t *testing.T, typ Type, a, b interface{}) {
	t.Helper()
	cmp, err := typ.Compare(a, b)
	require.NoError(t, err)
	require.Equal(t, 1, cmp)
}
