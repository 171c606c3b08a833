// Dataset container, deduplication and CSV persistence
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
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	mancala "go-mancala"
)

// A Dataset is an ordered collection of examples over boards of the
// same size.
type Dataset struct {
	Examples []Example
}

// Pits returns the board size the dataset was generated for, or zero
// if it is empty.
func (d *Dataset) Pits() int {
	if len(d.Examples) == 0 {
		return 0
	}
	return d.Examples[0].State.Pits()
}

// key maps a flattened example to a comparable value.  Going through
// the bit pattern keeps the infinities and any NaN apart.
func key(v []float64) string {
	var sb strings.Builder
	for _, f := range v {
		fmt.Fprintf(&sb, "%016x", math.Float64bits(f))
	}
	return sb.String()
}

// Deduplicated returns a copy without exact duplicates, keeping the
// first occurrence of each example and the original order otherwise.
func (d *Dataset) Deduplicated() *Dataset {
	seen := make(map[string]bool)
	out := &Dataset{}
	for _, e := range d.Examples {
		k := key(e.Vec())
		if seen[k] {
			continue
		}
		seen[k] = true
		out.Examples = append(out.Examples, e)
	}
	return out
}

func header(pits int) []string {
	h := []string{"store1", "store2"}
	for p := 1; p <= 2; p++ {
		for i := 1; i <= pits; i++ {
			h = append(h, fmt.Sprintf("player%dp%d", p, i))
		}
	}
	h = append(h, "turn", "ply", "p2_moved", "util_swap")
	for i := 1; i <= pits; i++ {
		h = append(h, fmt.Sprintf("util_%d", i))
	}
	return h
}

// SaveCSV writes the dataset to a CSV file with a header row.  Values
// are rendered with strconv.FormatFloat in the shortest form that
// round-trips, so loading the file reproduces the vectors bit for
// bit.
func (d *Dataset) SaveCSV(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()

	wr := csv.NewWriter(file)
	if err := wr.Write(header(d.Pits())); err != nil {
		return err
	}
	for _, e := range d.Examples {
		vec := e.Vec()
		rec := make([]string, len(vec))
		for i, f := range vec {
			rec[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		if err := wr.Write(rec); err != nil {
			return err
		}
	}
	wr.Flush()
	return wr.Error()
}

// LoadCSV reads a dataset written by SaveCSV.  The header row is
// skipped; fields that do not parse as numbers become NaN, as the
// shape of a record matters more than any one value.
func LoadCSV(name string) (*Dataset, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	d := &Dataset{}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		vec := make([]float64, len(rec))
		for j, field := range rec {
			f, err := strconv.ParseFloat(field, 64)
			if err != nil {
				f = math.NaN()
			}
			vec[j] = f
		}
		e, err := ExampleFromVec(vec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, i+1, err)
		}
		d.Examples = append(d.Examples, e)
	}

	mancala.Debug.Printf("Loaded %d examples from %s", len(d.Examples), name)
	return d, nil
}
