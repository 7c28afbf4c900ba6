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
	"context"
	"sync"
	"sync/atomic"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Client holds session user information.
type Client struct {
	// User of the session.
	User string
	// Address of the client.
	Address string
}

// Session holds the session data.
type Session interface {
	// Address of the server.
	Address() string
	// Client returns the client of the session.
	Client() Client
	// ID returns the unique ID of the connection.
	ID() uint32
	// GetCurrentDatabase returns the current database for this session.
	GetCurrentDatabase() string
	// SetCurrentDatabase sets the current database for this session.
	SetCurrentDatabase(dbName string)
	// GetLogger returns the logger for this session, creating one if it does
	// not already exist.
	GetLogger() *logrus.Entry
	// SetLogger sets the logger to use for this session.
	SetLogger(*logrus.Entry)
}

// BaseSession is the basic session type.
type BaseSession struct {
	id     uint32
	addr   string
	client Client

	mu        sync.RWMutex
	currentDB string
	logger    *logrus.Entry
}

var autoSessionIDs uint32

// Address returns the server address.
func (s *BaseSession) Address() string { return s.addr }

// Client returns session's client information.
func (s *BaseSession) Client() Client { return s.client }

// ID implements the Session interface.
func (s *BaseSession) ID() uint32 { return s.id }

// GetCurrentDatabase implements the Session interface.
func (s *BaseSession) GetCurrentDatabase() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentDB
}

// SetCurrentDatabase implements the Session interface.
func (s *BaseSession) SetCurrentDatabase(dbName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentDB = dbName
}

// GetLogger implements the Session interface.
func (s *BaseSession) GetLogger() *logrus.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.logger == nil {
		s.logger = logrus.StandardLogger().WithField("connection_id", s.id)
	}
	return s.logger
}

// SetLogger implements the Session interface.
func (s *BaseSession) SetLogger(logger *logrus.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
}

// NewSession creates a new session with data.
func NewSession(address, client, user string, id uint32) Session {
	return &BaseSession{
		id:     id,
		addr:   address,
		client: Client{Address: client, User: user},
	}
}

// NewBaseSession creates a new empty session.
func NewBaseSession() Session {
	return &BaseSession{id: atomic.AddUint32(&autoSessionIDs, 1)}
}

// Context of the query analysis.
type Context struct {
	context.Context
	Session
	pid       uint64
	query     string
	queryID   string
	queryTime time.Time
	tracer    opentracing.Tracer
	rootSpan  opentracing.Span
}

// ContextOption is a function to configure the context.
type ContextOption func(*Context)

// WithSession adds the given session to the context.
func WithSession(session Session) ContextOption {
	return func(ctx *Context) {
		ctx.Session = session
	}
}

// WithTracer adds the given tracer to the context.
func WithTracer(t opentracing.Tracer) ContextOption {
	return func(ctx *Context) {
		ctx.tracer = t
	}
}

// WithPid adds the given pid to the context.
func WithPid(pid uint64) ContextOption {
	return func(ctx *Context) {
		ctx.pid = pid
	}
}

// WithQuery adds the given query to the context.
func WithQuery(q string) ContextOption {
	return func(ctx *Context) {
		ctx.query = q
	}
}

// WithQueryID adds the given query ID to the context.
func WithQueryID(id string) ContextOption {
	return func(ctx *Context) {
		ctx.queryID = id
	}
}

// WithRootSpan sets the root span of the context.
func WithRootSpan(span opentracing.Span) ContextOption {
	return func(ctx *Context) {
		ctx.rootSpan = span
	}
}

var ctxNowFunc = time.Now

// NewContext creates a new query context. Options can be passed to configure
// the context. If some aspect of the context is not configured, the default
// value will be used.
// By default, the context will have an empty base session and a noop tracer.
func NewContext(
	ctx context.Context,
	opts ...ContextOption,
) *Context {
	c := &Context{
		Context:   ctx,
		Session:   NewBaseSession(),
		queryTime: ctxNowFunc(),
		tracer:    opentracing.NoopTracer{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewEmptyContext returns a default context with default values.
func NewEmptyContext() *Context { return NewContext(context.TODO()) }

// ApplyOpts the options given to the context. Mostly for tests, not safe for
// use after construction of the context.
func (c *Context) ApplyOpts(opts ...ContextOption) {
	for _, opt := range opts {
		opt(c)
	}
}

// Pid returns the process id associated with this context.
func (c *Context) Pid() uint64 { return c.pid }

// Query returns the query string associated with this context.
func (c *Context) Query() string { return c.query }

// QueryID returns the query ID associated with this context.
func (c *Context) QueryID() string { return c.queryID }

// QueryTime returns the time.Time when the context associated with this query
// was created.
func (c *Context) QueryTime() time.Time {
	return c.queryTime
}

// Span creates a new tracing span with the given context.
// It will return the span and a new context that should be used in order to
// be able to create children spans.
func (c *Context) Span(
	opName string,
	opts ...opentracing.StartSpanOption,
) (opentracing.Span, *Context) {
	parentSpan := opentracing.SpanFromContext(c.Context)
	if parentSpan != nil {
		opts = append(opts, opentracing.ChildOf(parentSpan.Context()))
	}

	span := c.tracer.StartSpan(opName, opts...)
	ctx := opentracing.ContextWithSpan(c.Context, span)

	nc := *c
	nc.Context = ctx
	return span, &nc
}

// NewSubContext creates a new sub-context with the current context as parent.
// Returns the resulting context.CancelFunc as well as the new *sql.Context,
// which can be used to cancel the new context before the parent is finished.
func (c *Context) NewSubContext() (*Context, context.CancelFunc) {
	ctx, cancelFunc := context.WithCancel(c.Context)

	nc := *c
	nc.Context = ctx
	return &nc, cancelFunc
}

// WithContext returns a new context with the given underlying context.
func (c *Context) WithContext(ctx context.Context) *Context {
	nc := *c
	nc.Context = ctx
	return &nc
}

// RootSpan returns the root span, if any.
func (c *Context) RootSpan() opentracing.Span {
	return c.rootSpan
}

// NewErrgroup returns a new errgroup.Group and *Context for the current
// context. The returned *Context is cancelled in the case of any task
// returning an error.
func (c *Context) NewErrgroup() (*errgroup.Group, *Context) {
	eg, egCtx := errgroup.WithContext(c.Context)
	return eg, c.WithContext(egCtx)
}
