// Training example model and flat-vector codec
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
	"fmt"
	"math"

	mancala "go-mancala"
	"go-mancala/minimax"
)

// An Example couples a game state with the per-move utilities a
// search assigned to it.  Flattened, an example is the vector
//
//	[store1, store2, p1 pits..., p2 pits...,
//	 turn (1|2), ply, p2moved (0|1),
//	 utilSwap, utilPit1, ..., utilPitN]
//
// Moves the search never explored carry negative infinity.
type Example struct {
	State mancala.State
	Utils []minimax.MoveValue
}

func pitsToLen(pits int) int { return 3*pits + 5 }
func lenToPits(l int) int    { return (l - 5) / 3 }

// NewExample builds an example, filling in a negative-infinity
// utility for every move absent from utils.
func NewExample(s mancala.State, utils []minimax.MoveValue) Example {
	expanded := make([]minimax.MoveValue, len(utils))
	copy(expanded, utils)
	for m := mancala.Move(0); int(m) <= s.Pits(); m++ {
		seen := false
		for _, mv := range expanded {
			if mv.Move == m {
				seen = true
				break
			}
		}
		if !seen {
			expanded = append(expanded, minimax.MoveValue{
				Move:  m,
				Value: math.Inf(-1),
			})
		}
	}
	return Example{State: s, Utils: expanded}
}

// Vec flattens the example.
func (e Example) Vec() []float64 {
	pits := e.State.Pits()
	v := make([]float64, 0, pitsToLen(pits))

	v = append(v,
		float64(e.State.Store(mancala.Player1)),
		float64(e.State.Store(mancala.Player2)))
	for _, p := range []mancala.Player{mancala.Player1, mancala.Player2} {
		for i := 0; i < pits; i++ {
			v = append(v, float64(e.State.Stones(p, i)))
		}
	}
	v = append(v, float64(e.State.Turn().Number()))
	v = append(v, float64(e.State.Ply()))
	if e.State.Player2Moved() {
		v = append(v, 1)
	} else {
		v = append(v, 0)
	}

	utils := make([]float64, pits+1)
	for i := range utils {
		utils[i] = math.Inf(-1)
	}
	for _, mv := range e.Utils {
		utils[int(mv.Move)] = mv.Value
	}
	return append(v, utils...)
}

// ExampleFromVec rebuilds an example from its flattened form, on a
// growable state.  Malformed records are rejected, not coerced.
func ExampleFromVec(v []float64) (Example, error) {
	if len(v) < pitsToLen(1) || (len(v)-5)%3 != 0 {
		return Example{}, fmt.Errorf("invalid record length %d", len(v))
	}
	pits := lenToPits(len(v))

	var rows [2][]int
	for p := 0; p < 2; p++ {
		rows[p] = make([]int, pits)
		for i := 0; i < pits; i++ {
			rows[p][i] = int(v[2+p*pits+i])
		}
	}

	turn, err := mancala.PlayerFromNumber(int(v[2+2*pits]))
	if err != nil {
		return Example{}, fmt.Errorf("invalid record: %w", err)
	}
	ply := int(v[3+2*pits])
	p2moved := v[4+2*pits] != 0

	state, err := mancala.DynFromRows(rows, int(v[0]), int(v[1]), turn, ply, p2moved)
	if err != nil {
		return Example{}, err
	}

	utils := make([]minimax.MoveValue, 0, pits+1)
	for i, u := range v[5+2*pits:] {
		utils = append(utils, minimax.MoveValue{
			Move:  mancala.Move(i),
			Value: u,
		})
	}
	return Example{State: state, Utils: utils}, nil
}
