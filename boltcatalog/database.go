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

// Package boltcatalog stores table schemas in a bolt file so a database
// definition survives process restarts. Only the metadata the resolver
// needs is persisted: table names and their column definitions.
package boltcatalog

import (
	"bytes"
	"encoding/gob"
	"sync"

	"github.com/boltdb/bolt"
	"github.com/dolthub/vitess/go/vt/proto/query"

	"github.com/skiffdb/skiff/sql"
)

// Database is a bolt-backed schema catalog. It implements sql.Database and
// keeps a decoded copy of every table in memory, writing through to the
// bolt file on every change. Each database owns one bucket, keyed by its
// name, so several databases can share a file.
type Database struct {
	name string

	mut    sync.RWMutex
	db     *bolt.DB
	tables map[string]sql.Table
}

var _ sql.Database = (*Database)(nil)

// storedColumn is the gob representation of a column definition. Types are
// stored by their wire id and rebuilt through sql.MysqlTypeToType.
type storedColumn struct {
	Name       string
	Type       query.Type
	Nullable   bool
	Source     string
	PrimaryKey bool
	Comment    string
}

type storedTable struct {
	Name    string
	Columns []storedColumn
}

// New opens or creates the bolt file at path and loads every stored table.
func New(path, name string) (*Database, error) {
	db, err := bolt.Open(path, 0640, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	d := &Database{
		name:   name,
		db:     db,
		tables: map[string]sql.Table{},
	}

	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(name))
		return b.ForEach(func(k, v []byte) error {
			var st storedTable
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&st); err != nil {
				return err
			}

			t, err := st.table()
			if err != nil {
				return err
			}

			d.tables[st.Name] = t
			return nil
		})
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return d, nil
}

// Name implements sql.Database.
func (d *Database) Name() string {
	return d.name
}

// Tables implements sql.Database.
func (d *Database) Tables() map[string]sql.Table {
	d.mut.RLock()
	defer d.mut.RUnlock()

	tables := make(map[string]sql.Table, len(d.tables))
	for name, t := range d.tables {
		tables[name] = t
	}
	return tables
}

// CreateTable stores a new table definition. It returns an error if a table
// with the same name already exists.
func (d *Database) CreateTable(name string, schema sql.Schema) error {
	d.mut.Lock()
	defer d.mut.Unlock()

	if _, ok := d.tables[name]; ok {
		return sql.ErrTableAlreadyExists.New(name)
	}

	st := storedTable{Name: name, Columns: make([]storedColumn, len(schema))}
	for i, col := range schema {
		st.Columns[i] = storedColumn{
			Name:       col.Name,
			Type:       col.Type.Type(),
			Nullable:   col.Nullable,
			Source:     col.Source,
			PrimaryKey: col.PrimaryKey,
			Comment:    col.Comment,
		}
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(st); err != nil {
		return err
	}

	err := d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(d.name)).Put([]byte(name), buf.Bytes())
	})
	if err != nil {
		return err
	}

	d.tables[name] = &table{name: name, schema: schema}
	return nil
}

// DropTable removes a stored table definition.
func (d *Database) DropTable(name string) error {
	d.mut.Lock()
	defer d.mut.Unlock()

	if _, ok := d.tables[name]; !ok {
		return sql.ErrTableNotFound.New(name)
	}

	err := d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(d.name)).Delete([]byte(name))
	})
	if err != nil {
		return err
	}

	delete(d.tables, name)
	return nil
}

// Close closes the underlying bolt file.
func (d *Database) Close() error {
	d.mut.Lock()
	defer d.mut.Unlock()
	return d.db.Close()
}

func (st storedTable) table() (sql.Table, error) {
	schema := make(sql.Schema, len(st.Columns))
	for i, sc := range st.Columns {
		typ, err := sql.MysqlTypeToType(sc.Type)
		if err != nil {
			return nil, err
		}

		schema[i] = &sql.Column{
			Name:       sc.Name,
			Type:       typ,
			Nullable:   sc.Nullable,
			Source:     sc.Source,
			PrimaryKey: sc.PrimaryKey,
			Comment:    sc.Comment,
		}
	}

	return &table{name: st.Name, schema: schema}, nil
}

type table struct {
	name   string
	schema sql.Schema
}

var _ sql.Table = (*table)(nil)

func (t *table) Name() string {
	return t.name
}

func (t *table) Schema() sql.Schema {
	return t.schema
}
