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

package parse

import (
	"strings"

	"github.com/dolthub/vitess/go/vt/sqlparser"
	opentracing "github.com/opentracing/opentracing-go"

	"github.com/skiffdb/skiff/sql"
)

// Parse parses the given SQL sentence and returns the corresponding statement.
func Parse(ctx *sql.Context, query string) (sqlparser.Statement, error) {
	span, _ := ctx.Span("parse", opentracing.Tag{Key: "query", Value: query})
	defer span.Finish()

	s := strings.TrimSpace(query)
	if strings.HasSuffix(s, ";") {
		s = strings.TrimSpace(s[:len(s)-1])
	}

	if s == "" {
		return nil, sql.ErrSyntaxError.New("query was empty")
	}

	stmt, err := sqlparser.Parse(s)
	if err != nil {
		return nil, sql.ErrSyntaxError.New(err.Error())
	}

	return stmt, nil
}
