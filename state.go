// Game state model
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

import (
	"bytes"
	"fmt"
)

// StdPits is the number of pits per player on a standard board.
const StdPits = 6

// StdInit is the number of stones per pit at the start of a standard
// game.
const StdInit = 4

// State is the capability set shared by both board representations.
// A state is never modified after it has been handed out; the rule
// engine clones a state before applying a move, which is what makes
// it safe for the search engine to expand many futures from one
// ancestor.
type State interface {
	fmt.Stringer

	// Pits returns the number of pits per player.
	Pits() int
	// Stones returns the number of stones in a pit, counting pits
	// from 0.
	Stones(p Player, pit int) int
	// Row returns a copy of a player's pit row.
	Row(p Player) []int
	// Store returns the number of stones in a player's store.
	Store(p Player) int
	// Ply returns the current move number, counting from 1.
	Ply() int
	// Turn returns the player that is next to move.
	Turn() Player
	// Player2Moved returns true once Player 2 has completed a
	// non-swap move.
	Player2Moved() bool
	// Clone returns an independent copy of the state.
	Clone() State

	// Mutators used by the rule engine.  Kept unexported so that
	// a state handed to a caller cannot be modified behind its
	// back.
	setStones(p Player, pit, n int)
	addStore(p Player, n int)
	setTurn(p Player)
	setPly(n int)
	setPlayer2Moved(v bool)
	swapSides()
}

// StaticState is a game state with the standard board size, backed by
// fixed-length arrays.  Cloning is a plain value copy, which keeps
// the search hot path free of per-pit allocations.
type StaticState struct {
	rows    [2][StdPits]int
	stores  [2]int
	ply     int
	turn    Player
	p2moved bool
}

// Start returns the default start state: six pits of four stones per
// player, empty stores, ply 1, Player 1 to move.
func Start() *StaticState {
	s := &StaticState{ply: 1, turn: Player1}
	for p := 0; p < 2; p++ {
		for i := 0; i < StdPits; i++ {
			s.rows[p][i] = StdInit
		}
	}
	return s
}

// MakeStaticState builds a state from an arbitrary standard-size
// board position.
func MakeStaticState(rows [2][StdPits]int, store1, store2 int, turn Player, ply int, p2moved bool) *StaticState {
	return &StaticState{
		rows:    rows,
		stores:  [2]int{store1, store2},
		ply:     ply,
		turn:    turn,
		p2moved: p2moved,
	}
}

func (s *StaticState) Pits() int                  { return StdPits }
func (s *StaticState) Stones(p Player, i int) int { return s.rows[p][i] }
func (s *StaticState) Store(p Player) int         { return s.stores[p] }
func (s *StaticState) Ply() int                   { return s.ply }
func (s *StaticState) Turn() Player               { return s.turn }
func (s *StaticState) Player2Moved() bool         { return s.p2moved }

func (s *StaticState) Row(p Player) []int {
	row := make([]int, StdPits)
	copy(row, s.rows[p][:])
	return row
}

func (s *StaticState) Clone() State {
	c := *s
	return &c
}

// Dyn converts the state into its growable representation.
func (s *StaticState) Dyn() *DynState {
	return &DynState{
		rows:    [2][]int{s.Row(Player1), s.Row(Player2)},
		stores:  s.stores,
		ply:     s.ply,
		turn:    s.turn,
		p2moved: s.p2moved,
	}
}

func (s *StaticState) String() string {
	return format(s, "Static GameState")
}

func (s *StaticState) setStones(p Player, i, n int) { s.rows[p][i] = n }
func (s *StaticState) addStore(p Player, n int)     { s.stores[p] += n }
func (s *StaticState) setTurn(p Player)             { s.turn = p }
func (s *StaticState) setPly(n int)                 { s.ply = n }
func (s *StaticState) setPlayer2Moved(v bool)       { s.p2moved = v }

func (s *StaticState) swapSides() {
	s.rows[0], s.rows[1] = s.rows[1], s.rows[0]
	s.stores[0], s.stores[1] = s.stores[1], s.stores[0]
}

// format renders the bird's-eye view of a board.  Player 1's row is
// printed right to left so that the two rows line up the way the
// stones actually travel.
func format(s State, title string) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Bird's-Eye View of %s\n", title)
	for i := 0; i < len("Bird's-Eye View of ")+len(title); i++ {
		buf.WriteByte('=')
	}
	buf.WriteByte('\n')

	mark := func(p Player) byte {
		if s.Turn() == p {
			return '*'
		}
		return ' '
	}

	fmt.Fprintf(&buf, "%c P1:  (%02d)  [ ", mark(Player1), s.Store(Player1))
	for i := s.Pits() - 1; i >= 0; i-- {
		fmt.Fprintf(&buf, "%02d ", s.Stones(Player1, i))
	}
	fmt.Fprint(&buf, "]\n")

	fmt.Fprintf(&buf, "%c P2:        [ ", mark(Player2))
	for i := 0; i < s.Pits(); i++ {
		fmt.Fprintf(&buf, "%02d ", s.Stones(Player2, i))
	}
	fmt.Fprintf(&buf, "]  (%02d)\n", s.Store(Player2))

	fmt.Fprintf(&buf, "Move Number: %d\n", s.Ply())

	fmt.Fprint(&buf, "Valid Moves: ")
	var swap bool
	var pits []int
	for _, m := range ValidMoves(s) {
		if m.IsSwap() {
			swap = true
		} else {
			pits = append(pits, m.PitNumber())
		}
	}
	if len(pits) == 0 && !swap {
		fmt.Fprint(&buf, "None")
	} else {
		for i := len(pits) - 1; i >= 0; i-- {
			fmt.Fprintf(&buf, "%d", pits[i])
			if i > 0 || swap {
				fmt.Fprint(&buf, ", ")
			}
		}
		if swap {
			fmt.Fprint(&buf, "SWAP")
		}
	}
	buf.WriteByte('\n')

	return buf.String()
}
