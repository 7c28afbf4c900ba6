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

// Package skiff analyzes SQL queries against a catalog of databases. It
// parses a query, resolves every relation in its FROM clause into one
// qualified schema and threads the remaining clauses through a typed
// analysis state for a downstream planner.
package skiff

import (
	opentracing "github.com/opentracing/opentracing-go"

	"github.com/skiffdb/skiff/sql"
	"github.com/skiffdb/skiff/sql/analyzer"
	"github.com/skiffdb/skiff/sql/expression/function"
	"github.com/skiffdb/skiff/sql/parse"
)

// Engine is a SQL analysis engine.
type Engine struct {
	Catalog   *sql.Catalog
	Analyzer  *analyzer.Analyzer
	Processes *ProcessList
}

// New creates a new Engine from the given analyzer.
func New(a *analyzer.Analyzer) *Engine {
	return &Engine{a.Catalog, a, NewProcessList()}
}

// NewDefault creates a new default Engine.
func NewDefault() *Engine {
	c := sql.NewCatalog()
	c.RegisterFunctions(function.Defaults)

	return New(analyzer.NewDefault(c))
}

// AnalyzeQuery parses and analyzes a select query, tracking it in the
// process list for the duration of the analysis. The returned state carries
// the joined and finalize schemas and every analyzed clause of the query.
func (e *Engine) AnalyzeQuery(ctx *sql.Context, query string) (*analyzer.QueryState, error) {
	span, ctx := ctx.Span("query", opentracing.Tag{Key: "query", Value: query})
	defer span.Finish()

	ctx = e.Processes.AddProcess(ctx, query)
	defer e.Processes.Done(ctx.Pid())

	parsed, err := parse.Parse(ctx, query)
	if err != nil {
		return nil, err
	}

	result, err := e.Analyzer.AnalyzeStatement(ctx, parsed)
	if err != nil {
		return nil, err
	}

	return result.Select, nil
}

// AnalyzeQueries analyzes the given queries concurrently and returns their
// states in input order, failing on the first error. Each query runs in its
// own sub-context with its own analyzer, so a failure cancels the rest and
// debug contexts never interleave.
func (e *Engine) AnalyzeQueries(ctx *sql.Context, queries []string) ([]*analyzer.QueryState, error) {
	states := make([]*analyzer.QueryState, len(queries))

	eg, ctx := ctx.NewErrgroup()
	for i, query := range queries {
		i, query := i, query
		a := *e.Analyzer
		sub := &Engine{Catalog: e.Catalog, Analyzer: &a, Processes: e.Processes}

		eg.Go(func() error {
			state, err := sub.AnalyzeQuery(ctx, query)
			if err != nil {
				return err
			}

			states[i] = state
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return states, nil
}

// AddDatabase adds the given database to the catalog.
func (e *Engine) AddDatabase(db sql.Database) {
	e.Catalog.AddDatabase(db)
}
