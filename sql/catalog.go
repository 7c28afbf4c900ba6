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
	"strings"
	"sync"
)

// Catalog holds databases, tables, functions and table functions. All lookups
// through a Catalog check the context for cancellation first, since catalog
// access is where analysis suspends to fetch metadata.
type Catalog struct {
	mu             sync.RWMutex
	dbs            Databases
	functions      FunctionRegistry
	tableFunctions map[string]TableFunction
}

// NewCatalog returns a new Catalog seeded with the system database.
func NewCatalog() *Catalog {
	return &Catalog{
		dbs:            Databases{newSystemDatabase()},
		functions:      NewFunctionRegistry(),
		tableFunctions: make(map[string]TableFunction),
	}
}

// AddDatabase adds a new database to the catalog.
func (c *Catalog) AddDatabase(db Database) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dbs = append(c.dbs, db)
}

// AllDatabases returns all databases in the catalog.
func (c *Catalog) AllDatabases() Databases {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(Databases, len(c.dbs))
	copy(result, c.dbs)
	return result
}

// Database returns the database with the given name.
func (c *Catalog) Database(name string) (Database, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dbs.Database(name)
}

// Table returns the table in the given database.
func (c *Catalog) Table(ctx *Context, dbName string, tableName string) (Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dbs.Table(dbName, tableName)
}

// TableFunction returns the table function with the given name.
func (c *Catalog) TableFunction(ctx *Context, name string) (TableFunction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if fn, ok := c.tableFunctions[strings.ToLower(name)]; ok {
		return fn, nil
	}
	return nil, ErrTableFunctionNotFound.New(name)
}

// RegisterTableFunction registers a table function under its name.
func (c *Catalog) RegisterTableFunction(fn TableFunction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := strings.ToLower(fn.Name())
	if _, ok := c.tableFunctions[name]; ok {
		return ErrFunctionAlreadyRegistered.New(name)
	}

	c.tableFunctions[name] = fn
	return nil
}

// RegisterFunctions registers a map of functions.
func (c *Catalog) RegisterFunctions(funcs Functions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.functions.RegisterMany(funcs)
}

// MustRegister registers a function and panics if its name is already taken.
func (c *Catalog) MustRegister(name string, fn Function) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.functions.MustRegister(name, fn)
}

// Function returns the function with the given name.
func (c *Catalog) Function(name string) (Function, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.functions.Function(name)
}

// Databases is a collection of Database.
type Databases []Database

// Database returns the Database with the given name if it exists.
func (d Databases) Database(name string) (Database, error) {
	for _, db := range d {
		if strings.EqualFold(db.Name(), name) {
			return db, nil
		}
	}

	return nil, ErrDatabaseNotFound.New(name)
}

// Table returns the Table with the given name if it exists.
func (d Databases) Table(dbName string, tableName string) (Table, error) {
	db, err := d.Database(dbName)
	if err != nil {
		return nil, err
	}

	tableName = strings.ToLower(tableName)
	tables := db.Tables()

	// Try to get the table by key, but if the name is not the same,
	// then use the slower method.
	//
	// This is done in hope of avoiding a linear search when there
	// are a lot of tables.
	t, ok := tables[tableName]
	if !ok {
		for name, table := range tables {
			if strings.ToLower(name) == tableName {
				t = table
				break
			}
		}
	}

	if t == nil {
		return nil, ErrTableNotFound.New(tableName)
	}

	return t, nil
}
