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

package analyzer

import (
	"os"
	"strings"

	"github.com/dolthub/vitess/go/vt/sqlparser"
	"github.com/sirupsen/logrus"

	"github.com/skiffdb/skiff/sql"
)

const debugAnalyzerKey = "DEBUG_ANALYZER"

// DefaultMaxSubqueryDepth is the nesting depth at which subquery analysis
// gives up unless configured otherwise.
const DefaultMaxSubqueryDepth = 64

// Builder provides an easy way to generate Analyzers with custom options.
type Builder struct {
	catalog          *sql.Catalog
	debug            bool
	maxSubqueryDepth int
}

// NewBuilder creates a new Builder from a specific catalog.
func NewBuilder(c *sql.Catalog) *Builder {
	return &Builder{catalog: c, maxSubqueryDepth: DefaultMaxSubqueryDepth}
}

// WithDebug activates debug on the Analyzer.
func (ab *Builder) WithDebug() *Builder {
	ab.debug = true

	return ab
}

// WithMaxSubqueryDepth sets the nesting depth after which subquery analysis
// fails.
func (ab *Builder) WithMaxSubqueryDepth(depth int) *Builder {
	ab.maxSubqueryDepth = depth
	return ab
}

// WithConfig applies a configuration to the builder.
func (ab *Builder) WithConfig(cfg Config) *Builder {
	if cfg.Debug {
		ab.debug = true
	}
	if cfg.MaxSubqueryDepth > 0 {
		ab.maxSubqueryDepth = cfg.MaxSubqueryDepth
	}
	return ab
}

// Build creates a new Analyzer from the builder.
func (ab *Builder) Build() *Analyzer {
	_, debug := os.LookupEnv(debugAnalyzerKey)

	return &Analyzer{
		Debug:            debug || ab.debug,
		MaxSubqueryDepth: ab.maxSubqueryDepth,
		Catalog:          ab.catalog,
		debugCtx:         make([]string, 0),
	}
}

// Analyzer resolves the relations a query reads from and derives the column
// schema of every stage of the query.
type Analyzer struct {
	// Whether to log various debugging messages.
	Debug bool
	// MaxSubqueryDepth is the nesting depth after which subquery analysis
	// fails.
	MaxSubqueryDepth int
	// Catalog of databases and registered functions.
	Catalog *sql.Catalog

	debugCtx []string
}

// NewDefault creates a default Analyzer instance with the default
// configuration. To customize it, use the Builder.
func NewDefault(c *sql.Catalog) *Analyzer {
	return NewBuilder(c).Build()
}

// Log prints an INFO message to stdout with the given message and args
// if the analyzer is in debug mode.
func (a *Analyzer) Log(msg string, args ...interface{}) {
	if a != nil && a.Debug {
		if len(a.debugCtx) > 0 {
			ctx := strings.Join(a.debugCtx, "/")
			logrus.Infof("%s: "+msg, append([]interface{}{ctx}, args...)...)
		} else {
			logrus.Infof(msg, args...)
		}
	}
}

// PushDebugContext pushes the given context string onto the context stack, to
// use when logging debug messages.
func (a *Analyzer) PushDebugContext(msg string) {
	if a != nil {
		a.debugCtx = append(a.debugCtx, msg)
	}
}

// PopDebugContext pops a context message off the context stack.
func (a *Analyzer) PopDebugContext() {
	if a != nil && len(a.debugCtx) > 0 {
		a.debugCtx = a.debugCtx[:len(a.debugCtx)-1]
	}
}

// AnalyzedResult holds the outcome of analyzing one statement. Only select
// statements produce a result today, so Select is always set on success.
type AnalyzedResult struct {
	// Select is the analyzed state of a select statement.
	Select *QueryState
}

// AnalyzeStatement analyzes a parsed statement against the catalog.
func (a *Analyzer) AnalyzeStatement(ctx *sql.Context, stmt sqlparser.Statement) (*AnalyzedResult, error) {
	return a.analyzeStatement(ctx, stmt, 0)
}

func (a *Analyzer) analyzeStatement(ctx *sql.Context, stmt sqlparser.Statement, depth int) (*AnalyzedResult, error) {
	switch n := stmt.(type) {
	case *sqlparser.Select:
		state, err := a.analyzeSelect(ctx, n, depth)
		if err != nil {
			return nil, err
		}
		return &AnalyzedResult{Select: state}, nil
	case *sqlparser.ParenSelect:
		return a.analyzeStatement(ctx, n.Select, depth)
	case *sqlparser.Union:
		return nil, sql.ErrUnsupportedFeature.New("set operations (UNION, INTERSECT, EXCEPT)")
	default:
		return nil, sql.ErrUnsupportedSyntax.New(sqlparser.String(stmt))
	}
}

// analyzeSelect derives the schemas and bound expressions of a single select
// statement, stage by stage. Each stage only sees the schema produced by the
// stages before it.
func (a *Analyzer) analyzeSelect(ctx *sql.Context, sel *sqlparser.Select, depth int) (*QueryState, error) {
	span, ctx := ctx.Span("analyze_select")
	defer span.Finish()

	state, err := a.newQueryState(ctx, sel, depth)
	if err != nil {
		return nil, err
	}

	stages := []struct {
		name string
		fn   func(*sql.Context, *sqlparser.Select) error
	}{
		{"analyze_filter", state.analyzeFilter},
		{"analyze_group_by", state.analyzeGroupBy},
		{"analyze_aggregate", state.analyzeAggregate},
		{"analyze_having", state.analyzeHaving},
		{"analyze_order_by", state.analyzeOrderBy},
		{"analyze_projection", state.analyzeProjection},
	}

	for _, stage := range stages {
		err := func() error {
			stageSpan, stageCtx := ctx.Span(stage.name)
			defer stageSpan.Finish()

			a.PushDebugContext(stage.name)
			defer a.PopDebugContext()

			return stage.fn(stageCtx, sel)
		}()
		if err != nil {
			return nil, err
		}
	}

	return state, nil
}
