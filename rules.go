// Rule engine
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

import "math/rand"

// IsOver returns true once both rows are empty.
func IsOver(s State) bool {
	for p := Player1; p <= Player2; p++ {
		for i := 0; i < s.Pits(); i++ {
			if s.Stones(p, i) != 0 {
				return false
			}
		}
	}
	return true
}

// Score returns the store count of a player.
func Score(s State, p Player) int {
	return s.Store(p)
}

// OutcomeOf derives the current outcome from the scores.
func OutcomeOf(s State) Outcome {
	if !IsOver(s) {
		return ONGOING
	}
	switch {
	case Score(s, Player1) > Score(s, Player2):
		return PLAYER1_WON
	case Score(s, Player2) > Score(s, Player1):
		return PLAYER2_WON
	default:
		return TIE
	}
}

// SwapAllowed reports whether the swap move is currently legal.
//
// This condition is a known narrowing of the traditional pie rule: it
// only admits the swap as Player 2's immediate answer to the opening
// move.  Do not widen it without reworking the states recorded in
// existing datasets.
func SwapAllowed(s State) bool {
	return s.Turn() == Player2 && s.Ply() == 2
}

// ValidMoves enumerates the legal moves for the player next to move,
// in descending pit order with the swap move last.  This order is
// also the default search order and thereby decides which of several
// equally valued moves a search reports, so it must not change.
func ValidMoves(s State) []Move {
	moves := make([]Move, 0, s.Pits()+1)
	for i := s.Pits(); i >= 1; i-- {
		if s.Stones(s.Turn(), i-1) > 0 {
			moves = append(moves, Pit(i))
		}
	}
	if SwapAllowed(s) {
		moves = append(moves, Swap)
	}
	return moves
}

// MakeMove applies a move and returns the resulting state.  The
// second return value is false if the move is illegal; the input
// state is never modified.
func MakeMove(s State, m Move) (State, bool) {
	if m.IsSwap() {
		if !SwapAllowed(s) {
			return nil, false
		}
		n := s.Clone()
		n.swapSides()
		n.setTurn(n.Turn().Other())
		n.setPly(n.Ply() + 1)
		return n, true
	}

	pit := m.PitNumber()
	if pit < 1 || pit > s.Pits() {
		return nil, false
	}
	mover := s.Turn()
	stones := s.Stones(mover, pit-1)
	if stones == 0 {
		return nil, false
	}

	n := s.Clone()
	size := n.Pits()
	n.setStones(mover, pit-1, 0)

	// Sow towards the store, through the opponent's row and back,
	// skipping the opponent's store.
	row, idx := mover, pit
	goAgain := false
	for stones > 0 {
		if idx == size {
			if row == mover {
				n.addStore(mover, 1)
				stones--
				if stones == 0 {
					goAgain = true
				}
			}
			row, idx = row.Other(), 0
			continue
		}
		n.setStones(row, idx, n.Stones(row, idx)+1)
		stones--
		if stones == 0 && row == mover && n.Stones(row, idx) == 1 {
			// The last stone landed in an empty pit on the
			// mover's side: capture it together with the
			// opposite pit.
			opp := size - 1 - idx
			n.addStore(mover, n.Stones(row, idx)+n.Stones(row.Other(), opp))
			n.setStones(row, idx, 0)
			n.setStones(row.Other(), opp, 0)
		}
		idx++
	}

	// Once either row runs empty, the other player sweeps their own
	// remaining stones and the game is over.
	if rowSum(n, Player1) == 0 {
		sweep(n, Player2)
	} else if rowSum(n, Player2) == 0 {
		sweep(n, Player1)
	}

	if mover == Player2 {
		n.setPlayer2Moved(true)
	}
	if !goAgain {
		n.setTurn(mover.Other())
	}
	n.setPly(n.Ply() + 1)
	return n, true
}

// MakeMovePit applies a pit move without the Move wrapper.
func MakeMovePit(s State, pit int) (State, bool) {
	return MakeMove(s, Pit(pit))
}

// MakeMoveSwap applies the swap move without the Move wrapper.
func MakeMoveSwap(s State) (State, bool) {
	return MakeMove(s, Swap)
}

// MakeRandomMove applies a uniformly chosen legal move.  It fails
// only when the game is over.
func MakeRandomMove(s State) (State, Move, bool) {
	moves := ValidMoves(s)
	if len(moves) == 0 {
		return nil, 0, false
	}
	m := moves[rand.Intn(len(moves))]
	n, ok := MakeMove(s, m)
	if !ok {
		panic("Valid move was rejected")
	}
	return n, m, true
}

// TotalStones sums every pit and store.  The total is invariant over
// the whole game.
func TotalStones(s State) int {
	total := s.Store(Player1) + s.Store(Player2)
	for p := Player1; p <= Player2; p++ {
		for i := 0; i < s.Pits(); i++ {
			total += s.Stones(p, i)
		}
	}
	return total
}

func rowSum(s State, p Player) int {
	sum := 0
	for i := 0; i < s.Pits(); i++ {
		sum += s.Stones(p, i)
	}
	return sum
}

func sweep(s State, p Player) {
	for i := 0; i < s.Pits(); i++ {
		s.addStore(p, s.Stones(p, i))
		s.setStones(p, i, 0)
	}
}
