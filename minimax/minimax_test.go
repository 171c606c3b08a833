// Search engine tests
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

package minimax

import (
	"testing"

	mancala "go-mancala"

	"github.com/stretchr/testify/require"
)

// exhaustive is an unpruned full-depth reference search.  The value
// it computes is what the pruned engine must reproduce.
func exhaustive(s mancala.State, opt mancala.Player, maximize bool) float64 {
	if mancala.IsOver(s) {
		return StoreDiff(s, opt)
	}

	var best float64
	first := true
	for _, m := range mancala.ValidMoves(s) {
		next, ok := mancala.MakeMove(s, m)
		if !ok {
			panic("Valid move was rejected")
		}
		var v float64
		if next.Turn() == s.Turn() {
			v = exhaustive(next, opt, maximize)
		} else {
			v = exhaustive(next, opt, !maximize)
		}
		if first || (maximize && v > best) || (!maximize && v < best) {
			best = v
			first = false
		}
	}
	return best
}

// smallStates returns the opening position of a 3-pit, 2-stone game
// together with a sample of states reachable from it.
func smallStates(t *testing.T) []mancala.State {
	t.Helper()
	states := []mancala.State{mancala.MakeDynState(3, 2)}
	for walk := 0; walk < 8; walk++ {
		s := mancala.State(mancala.MakeDynState(3, 2))
		for i := 0; i < 1+walk; i++ {
			next, _, ok := mancala.MakeRandomMove(s)
			if !ok {
				break
			}
			s = next
		}
		if !mancala.IsOver(s) {
			states = append(states, s)
		}
	}
	return states
}

func TestSearchSoundness(t *testing.T) {
	for _, s := range smallStates(t) {
		mm := NewBuilder().NoDepthLimit().OptimizeFor(s.Turn()).Build()

		m, v, ok := mm.SearchUtility(s)
		require.True(t, ok, "no move found on %s", s)
		require.Equal(t, exhaustive(s, s.Turn(), true), v,
			"pruned value differs on %s", s)

		next, ok := mancala.MakeMove(s, m)
		require.True(t, ok, "chosen move %s is illegal on %s", m, s)
		require.NotNil(t, next)
	}
}

func TestTieBreaking(t *testing.T) {
	// Of several equally valued moves, the first in the enumeration
	// order must be reported.
	for _, s := range smallStates(t) {
		mm := NewBuilder().NoDepthLimit().OptimizeFor(s.Turn()).Build()

		var want mancala.Move
		best := 0.0
		first := true
		for _, m := range mancala.ValidMoves(s) {
			next, _ := mancala.MakeMove(s, m)
			var v float64
			if next.Turn() == s.Turn() {
				v = exhaustive(next, s.Turn(), true)
			} else {
				v = exhaustive(next, s.Turn(), false)
			}
			if first || v > best {
				best = v
				want = m
				first = false
			}
		}

		got, _, ok := mm.SearchUtility(s)
		require.True(t, ok)
		require.Equal(t, want, got, "tie broken differently on %s", s)
	}
}

func TestSearchUtilityAll(t *testing.T) {
	for _, s := range smallStates(t) {
		mm := NewBuilder().NoDepthLimit().OptimizeFor(s.Turn()).Build()

		utils, ok := mm.SearchUtilityAll(s)
		require.True(t, ok)

		valid := mancala.ValidMoves(s)
		require.Len(t, utils, len(valid),
			"distribution does not cover all moves on %s", s)
		for i, mv := range utils {
			require.Equal(t, valid[i], mv.Move)
		}

		// The best entry of the distribution must agree with the
		// plain search.
		_, v, ok := mm.SearchUtility(s)
		require.True(t, ok)
		best := utils[0].Value
		for _, mv := range utils[1:] {
			if mv.Value > best {
				best = mv.Value
			}
		}
		require.Equal(t, v, best, "distribution maximum differs on %s", s)
	}
}

func TestExhaustedBudget(t *testing.T) {
	s := mancala.Start()
	mm := NewBuilder().MaxDepth(0).Build()

	t.Run("search", func(t *testing.T) {
		m, v, ok := mm.SearchUtility(s)
		require.False(t, ok, "no move can be solved at depth 0")
		require.Equal(t, mancala.Move(0), m)
		require.Equal(t, StoreDiff(s, mancala.Player1), v,
			"a cut-off root reports the heuristic value")
	})

	t.Run("all", func(t *testing.T) {
		utils, ok := mm.SearchUtilityAll(s)
		require.False(t, ok)
		require.Nil(t, utils)
	})
}

func TestTerminalRoot(t *testing.T) {
	over, err := mancala.DynFromRows([2][]int{{0, 0, 0}, {0, 0, 0}},
		4, 8, mancala.Player1, 20, true)
	require.NoError(t, err)

	mm := NewBuilder().Build()
	_, ok := mm.Search(over)
	require.False(t, ok, "a finished game has no move to search for")

	utils, ok := mm.SearchUtilityAll(over)
	require.False(t, ok)
	require.Nil(t, utils)
}

func TestBonusTurnKeepsRole(t *testing.T) {
	// Player 1's third pit lands its last stone in the store, so a
	// one-ply search already sees the extra move worth of score.
	s := mancala.Start()
	mm := NewBuilder().MaxDepth(1).Build()

	utils, ok := mm.SearchUtilityAll(s)
	require.True(t, ok)

	byMove := make(map[mancala.Move]float64)
	for _, mv := range utils {
		byMove[mv.Move] = mv.Value
	}
	require.Equal(t, 1.0, byMove[mancala.Pit(3)])
	require.Equal(t, 0.0, byMove[mancala.Pit(1)])
}

func TestReentrancy(t *testing.T) {
	// A single engine must serve concurrent searches.
	s := mancala.MakeDynState(3, 2)
	mm := NewBuilder().NoDepthLimit().Build()
	want := exhaustive(s, mancala.Player1, true)

	done := make(chan float64)
	for i := 0; i < 4; i++ {
		go func() {
			_, v, _ := mm.SearchUtility(s)
			done <- v
		}()
	}
	for i := 0; i < 4; i++ {
		require.Equal(t, want, <-done)
	}
}
