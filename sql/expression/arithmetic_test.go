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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skiffdb/skiff/sql"
)

func TestPlus(t *testing.T) {
	require := require.New(t)

	op := NewPlus(
		NewGetField(0, nil, "a", sql.Float64, false),
		NewGetField(1, nil, "b", sql.Float64, false),
	)
	require.Equal(sql.Float64, op.Type())
	require.Equal(float64(3), eval(t, op, sql.NewRow(float64(1), float64(2))))
	require.Nil(eval(t, op, sql.NewRow(nil, float64(2))))
}

func TestMinus(t *testing.T) {
	require := require.New(t)

	op := NewMinus(
		NewGetField(0, nil, "a", sql.Float64, false),
		NewGetField(1, nil, "b", sql.Float64, false),
	)
	require.Equal(float64(-1), eval(t, op, sql.NewRow(float64(1), float64(2))))
}

func TestMult(t *testing.T) {
	require := require.New(t)

	op := NewMult(
		NewGetField(0, nil, "a", sql.Float64, false),
		NewGetField(1, nil, "b", sql.Float64, false),
	)
	require.Equal(float64(6), eval(t, op, sql.NewRow(float64(2), float64(3))))
}

func TestDiv(t *testing.T) {
	require := require.New(t)

	op := NewDiv(
		NewGetField(0, nil, "a", sql.Float64, false),
		NewGetField(1, nil, "b", sql.Float64, false),
	)
	require.Equal(float64(2), eval(t, op, sql.NewRow(float64(6), float64(3))))

	// Division by zero is NULL, not an error.
	require.Nil(eval(t, op, sql.NewRow(float64(1), float64(0))))
}

func TestIntDiv(t *testing.T) {
	require := require.New(t)

	op := NewIntDiv(
		NewGetField(0, nil, "a", sql.Int64, false),
		NewGetField(1, nil, "b", sql.Int64, false),
	)
	require.Equal(sql.Int64, op.Type())
	require.Equal(int64(2), eval(t, op, sql.NewRow(int64(7), int64(3))))
	require.Nil(eval(t, op, sql.NewRow(int64(1), int64(0))))
}

func TestMod(t *testing.T) {
	require := require.New(t)

	op := NewMod(
		NewGetField(0, nil, "a", sql.Int64, false),
		NewGetField(1, nil, "b", sql.Int64, false),
	)
	require.Equal(int64(1), eval(t, op, sql.NewRow(int64(7), int64(3))))
	require.Nil(eval(t, op, sql.NewRow(int64(1), int64(0))))
}

func TestArithmeticString(t *testing.T) {
	require := require.New(t)

	a := NewGetField(0, []string{"t"}, "a", sql.Int64, false)
	b := NewGetField(1, []string{"t"}, "b", sql.Int64, false)

	require.Equal("(t.a + t.b)", NewPlus(a, b).String())
	require.Equal("(t.a - t.b)", NewMinus(a, b).String())
	require.Equal("(t.a * t.b)", NewMult(a, b).String())
	require.Equal("(t.a / t.b)", NewDiv(a, b).String())
	require.Equal("(t.a % t.b)", NewMod(a, b).String())
	require.Equal("((t.a + t.b) * t.a)", NewMult(NewPlus(a, b), a).String())
}

func TestUnaryMinus(t *testing.T) {
	testCases := []struct {
		name     string
		input    interface{}
		typ      sql.Type
		expected interface{}
	}{
		{"int64", int64(1), sql.Int64, int64(-1)},
		{"int32", int32(1), sql.Int32, int32(-1)},
		{"float64", float64(1.5), sql.Float64, float64(-1.5)},
		{"string number", "1", sql.Text, float64(-1)},
		{"nil", nil, sql.Int64, nil},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			op := NewUnaryMinus(NewGetField(0, nil, "n", tt.typ, true))
			require.Equal(t, tt.expected, eval(t, op, sql.NewRow(tt.input)))
		})
	}
}

func TestUnaryMinusString(t *testing.T) {
	require := require.New(t)
	op := NewUnaryMinus(NewGetField(0, []string{"t"}, "n", sql.Int64, false))
	require.Equal("-t.n", op.String())
}
