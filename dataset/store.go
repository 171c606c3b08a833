// SQLite dataset persistence
//
// Copyright (c) 2024, 2025  The go-mancala authors
//
// This file is part of go-mancala.
//
// go-mancala is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-mancala is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-mancala. If not, see
// <http://www.gnu.org/licenses/>

package dataset

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"math"
	"strconv"
	"strings"

	mancala "go-mancala"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Store persists datasets in a SQLite database.  Reads and writes go
// over separate connections; the write connection is restricted to
// one handle as SQLite serialises writers anyway.
type Store struct {
	read  *sql.DB
	write *sql.DB
}

var pragmas = []string{
	// https://www.sqlite.org/wal.html
	"PRAGMA journal_mode = WAL;",
	// https://www.sqlite.org/pragma.html#pragma_synchronous
	"PRAGMA synchronous = normal;",
	// https://www.sqlite.org/pragma.html#pragma_temp_store
	"PRAGMA temp_store = memory;",
	// https://www.sqlite.org/foreignkeys.html
	"PRAGMA foreign_keys = on;",
}

// OpenStore opens or creates the dataset database in file.
func OpenStore(ctx context.Context, file string) (*Store, error) {
	read, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", file, err)
	}
	write, err := sql.Open("sqlite3", file)
	if err != nil {
		read.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", file, err)
	}
	write.SetMaxOpenConns(1)

	for _, db := range []*sql.DB{read, write} {
		for _, pragma := range pragmas {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				read.Close()
				write.Close()
				return nil, fmt.Errorf("pragma %s: %w", pragma, err)
			}
		}
	}

	if _, err := write.ExecContext(ctx, schema); err != nil {
		read.Close()
		write.Close()
		return nil, fmt.Errorf("failed to initialise database: %w", err)
	}

	return &Store{read: read, write: write}, nil
}

func encodeVec(v []float64) string {
	fields := make([]string, len(v))
	for i, f := range v {
		fields[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(fields, " ")
}

func decodeVec(enc string) []float64 {
	fields := strings.Fields(enc)
	v := make([]float64, len(fields))
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			f = math.NaN()
		}
		v[i] = f
	}
	return v
}

// SaveDataset appends all examples of d in a single transaction.
func (st *Store) SaveDataset(ctx context.Context, d *Dataset) error {
	tx, err := st.write.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO examples (pits, vec) VALUES (?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range d.Examples {
		_, err := stmt.ExecContext(ctx, e.State.Pits(), encodeVec(e.Vec()))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadDataset returns all stored examples for the given board size,
// in insertion order.
func (st *Store) LoadDataset(ctx context.Context, pits int) (*Dataset, error) {
	rows, err := st.read.QueryContext(ctx,
		`SELECT vec FROM examples WHERE pits = ? ORDER BY id;`, pits)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d := &Dataset{}
	for rows.Next() {
		var enc string
		if err := rows.Scan(&enc); err != nil {
			return nil, err
		}
		e, err := ExampleFromVec(decodeVec(enc))
		if err != nil {
			return nil, err
		}
		d.Examples = append(d.Examples, e)
	}
	return d, rows.Err()
}

// Close flushes the query planner statistics and closes both
// connections.
func (st *Store) Close() {
	// https://www.sqlite.org/pragma.html#pragma_optimize
	if _, err := st.write.Exec("PRAGMA optimize;"); err != nil {
		mancala.Debug.Printf("Failed to optimize database: %s", err)
	}
	st.read.Close()
	st.write.Close()
}
