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

// Package aggregation holds the aggregate functions the analyzer understands.
// These expressions describe the shape of an aggregation for schema purposes.
// They cannot be evaluated against a row, since their value depends on a
// whole group.
package aggregation

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrEvalNotSupported is returned when an aggregation is evaluated as a plain
// row expression.
var ErrEvalNotSupported = errors.NewKind("%s is an aggregation, it cannot be evaluated as a row expression")
