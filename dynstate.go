// Growable game state model
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

package mancala

import "fmt"

// DynState is a game state over a board of arbitrary size.  It is the
// representation of choice for user-facing configuration and imports;
// the search path prefers StaticState.
type DynState struct {
	rows    [2][]int
	stores  [2]int
	ply     int
	turn    Player
	p2moved bool
}

// MakeDynState builds a start position with SIZE pits of INIT stones
// per player.
func MakeDynState(size, init int) *DynState {
	s := &DynState{ply: 1, turn: Player1}
	for p := 0; p < 2; p++ {
		s.rows[p] = make([]int, size)
		for i := range s.rows[p] {
			s.rows[p][i] = init
		}
	}
	return s
}

// DynFromRows builds a state from an existing board position.  The
// two rows must have the same length.
func DynFromRows(rows [2][]int, store1, store2 int, turn Player, ply int, p2moved bool) (*DynState, error) {
	if len(rows[0]) != len(rows[1]) {
		return nil, fmt.Errorf("unequal row lengths %d and %d",
			len(rows[0]), len(rows[1]))
	}
	s := &DynState{
		stores:  [2]int{store1, store2},
		ply:     ply,
		turn:    turn,
		p2moved: p2moved,
	}
	for p := 0; p < 2; p++ {
		s.rows[p] = make([]int, len(rows[p]))
		copy(s.rows[p], rows[p])
	}
	return s, nil
}

func (s *DynState) Pits() int                  { return len(s.rows[0]) }
func (s *DynState) Stones(p Player, i int) int { return s.rows[p][i] }
func (s *DynState) Store(p Player) int         { return s.stores[p] }
func (s *DynState) Ply() int                   { return s.ply }
func (s *DynState) Turn() Player               { return s.turn }
func (s *DynState) Player2Moved() bool         { return s.p2moved }

func (s *DynState) Row(p Player) []int {
	row := make([]int, len(s.rows[p]))
	copy(row, s.rows[p])
	return row
}

func (s *DynState) Clone() State {
	c := *s
	for p := 0; p < 2; p++ {
		c.rows[p] = make([]int, len(s.rows[p]))
		copy(c.rows[p], s.rows[p])
	}
	return &c
}

// Static converts the state into the fixed-size representation.  The
// conversion fails unless both rows have exactly StdPits pits.
func (s *DynState) Static() (*StaticState, error) {
	if len(s.rows[0]) != StdPits || len(s.rows[1]) != StdPits {
		return nil, fmt.Errorf("board with %dx%d pits cannot become a static state of %d pits",
			len(s.rows[0]), len(s.rows[1]), StdPits)
	}
	c := &StaticState{
		stores:  s.stores,
		ply:     s.ply,
		turn:    s.turn,
		p2moved: s.p2moved,
	}
	for p := 0; p < 2; p++ {
		copy(c.rows[p][:], s.rows[p])
	}
	return c, nil
}

func (s *DynState) String() string {
	return format(s, "Dynamic GameState")
}

func (s *DynState) setStones(p Player, i, n int) { s.rows[p][i] = n }
func (s *DynState) addStore(p Player, n int)     { s.stores[p] += n }
func (s *DynState) setTurn(p Player)             { s.turn = p }
func (s *DynState) setPly(n int)                 { s.ply = n }
func (s *DynState) setPlayer2Moved(v bool)       { s.p2moved = v }

func (s *DynState) swapSides() {
	s.rows[0], s.rows[1] = s.rows[1], s.rows[0]
	s.stores[0], s.stores[1] = s.stores[1], s.stores[0]
}
