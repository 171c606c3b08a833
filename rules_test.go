// Rule engine tests
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

import "testing"

func rowEq(s State, p Player, want []int) bool {
	got := s.Row(p)
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestOpeningMove(t *testing.T) {
	s, ok := MakeMovePit(Start(), 3)
	if !ok {
		t.Fatal("Opening move was rejected")
	}

	if !rowEq(s, Player1, []int{4, 4, 0, 5, 5, 5}) {
		t.Errorf("Unexpected row for player 1: %v", s.Row(Player1))
	}
	if !rowEq(s, Player2, []int{4, 4, 4, 4, 4, 4}) {
		t.Errorf("Unexpected row for player 2: %v", s.Row(Player2))
	}
	if s.Store(Player1) != 1 || s.Store(Player2) != 0 {
		t.Errorf("Unexpected stores: %d, %d",
			s.Store(Player1), s.Store(Player2))
	}
	if s.Turn() != Player1 {
		t.Error("Bonus turn was not granted")
	}
	if s.Ply() != 2 {
		t.Errorf("Unexpected ply: %d", s.Ply())
	}
}

func TestSwapEligibility(t *testing.T) {
	start := Start()
	for _, m := range ValidMoves(start) {
		if m.IsSwap() {
			t.Error("Swap must not be legal on the opening move")
		}
	}

	// Pit 1 ends in the mover's own row, so the turn passes.
	s, ok := MakeMovePit(start, 1)
	if !ok {
		t.Fatal("Opening move was rejected")
	}
	if s.Turn() != Player2 || s.Ply() != 2 {
		t.Fatalf("Unexpected successor: turn %s, ply %d", s.Turn(), s.Ply())
	}
	if !SwapAllowed(s) {
		t.Error("Swap must be legal for player 2 at ply 2")
	}
	found := false
	for _, m := range ValidMoves(s) {
		if m.IsSwap() {
			found = true
		}
	}
	if !found {
		t.Error("ValidMoves is missing the swap move")
	}

	// A bonus turn keeps player 1 moving at ply 2, so there the
	// swap stays illegal.
	s, ok = MakeMovePit(start, 3)
	if !ok {
		t.Fatal("Opening move was rejected")
	}
	if SwapAllowed(s) {
		t.Error("Swap must not be legal while player 1 holds the turn")
	}
}

func TestSwapMove(t *testing.T) {
	s, ok := MakeMovePit(Start(), 1)
	if !ok {
		t.Fatal("Opening move was rejected")
	}

	n, ok := MakeMoveSwap(s)
	if !ok {
		t.Fatal("Swap move was rejected")
	}
	if !rowEq(n, Player1, s.Row(Player2)) || !rowEq(n, Player2, s.Row(Player1)) {
		t.Error("Swap did not rotate the rows")
	}
	if n.Store(Player1) != s.Store(Player2) || n.Store(Player2) != s.Store(Player1) {
		t.Error("Swap did not rotate the stores")
	}
	if n.Turn() != Player1 {
		t.Errorf("Unexpected turn after swap: %s", n.Turn())
	}
	if n.Ply() != 3 {
		t.Errorf("Unexpected ply after swap: %d", n.Ply())
	}
	if n.Player2Moved() {
		t.Error("Swap must not count as a regular move by player 2")
	}

	if _, ok := MakeMoveSwap(n); ok {
		t.Error("Swap must not be legal past ply 2")
	}
}

func TestCapture(t *testing.T) {
	for i, test := range []struct {
		rows    [2][StdPits]int
		pit     int
		wantRow [2][StdPits]int
		store   int
	}{
		{
			// The last stone lands in the empty second pit
			// and takes the 4 stones opposite.
			rows:    [2][StdPits]int{{1, 0, 4, 4, 4, 4}, {4, 4, 4, 4, 4, 4}},
			pit:     1,
			wantRow: [2][StdPits]int{{0, 0, 4, 4, 4, 4}, {4, 4, 4, 4, 0, 4}},
			store:   5,
		},
		{
			// Empty opposite pit: the single stone is still
			// captured.
			rows:    [2][StdPits]int{{1, 0, 4, 4, 4, 4}, {4, 4, 4, 4, 0, 4}},
			pit:     1,
			wantRow: [2][StdPits]int{{0, 0, 4, 4, 4, 4}, {4, 4, 4, 4, 0, 4}},
			store:   1,
		},
		{
			// The last stone ends in a pit that was not
			// empty, so nothing is captured.
			rows:    [2][StdPits]int{{1, 2, 4, 4, 4, 4}, {4, 4, 4, 4, 4, 4}},
			pit:     1,
			wantRow: [2][StdPits]int{{0, 3, 4, 4, 4, 4}, {4, 4, 4, 4, 4, 4}},
			store:   0,
		},
	} {
		s := MakeStaticState(test.rows, 0, 0, Player1, 3, true)
		n, ok := MakeMovePit(s, test.pit)
		if !ok {
			t.Fatalf("(%d) Move was rejected", i)
		}
		if !rowEq(n, Player1, test.wantRow[0][:]) {
			t.Errorf("(%d) Unexpected row for player 1: %v",
				i, n.Row(Player1))
		}
		if !rowEq(n, Player2, test.wantRow[1][:]) {
			t.Errorf("(%d) Unexpected row for player 2: %v",
				i, n.Row(Player2))
		}
		if n.Store(Player1) != test.store {
			t.Errorf("(%d) Unexpected store: %d",
				i, n.Store(Player1))
		}
	}
}

func TestSweep(t *testing.T) {
	// Player 2's final stone goes to their store, emptying the row;
	// player 1 sweeps their own remaining stones.
	rows := [2][StdPits]int{{2, 0, 0, 1, 0, 3}, {0, 0, 0, 0, 0, 1}}
	s := MakeStaticState(rows, 10, 20, Player2, 30, true)

	n, ok := MakeMovePit(s, 6)
	if !ok {
		t.Fatal("Move was rejected")
	}

	if !IsOver(n) {
		t.Error("Game should be over after the sweep")
	}
	if !rowEq(n, Player1, []int{0, 0, 0, 0, 0, 0}) {
		t.Errorf("Player 1's row was not swept: %v", n.Row(Player1))
	}
	if n.Store(Player1) != 16 {
		t.Errorf("Unexpected store for player 1: %d", n.Store(Player1))
	}
	if n.Store(Player2) != 21 {
		t.Errorf("Unexpected store for player 2: %d", n.Store(Player2))
	}
	if OutcomeOf(n) != PLAYER2_WON {
		t.Errorf("Unexpected outcome: %s", OutcomeOf(n))
	}
}

func TestConservation(t *testing.T) {
	for game := 0; game < 16; game++ {
		var s State = Start()
		total := TotalStones(s)
		for !IsOver(s) {
			n, m, ok := MakeRandomMove(s)
			if !ok {
				t.Fatal("No move in a running game")
			}
			if TotalStones(n) != total {
				t.Fatalf("Move %s changed the stone count from %d to %d on %s",
					m, total, TotalStones(n), s)
			}
			s = n
		}
	}
}

func TestLegalityConsistency(t *testing.T) {
	var s State = Start()
	for ply := 0; ply < 256 && !IsOver(s); ply++ {
		legal := make(map[Move]bool)
		for _, m := range ValidMoves(s) {
			legal[m] = true
			if _, ok := MakeMove(s, m); !ok {
				t.Errorf("Legal move %s was rejected on %s", m, s)
			}
		}
		for m := Move(0); int(m) <= s.Pits()+1; m++ {
			if legal[m] {
				continue
			}
			if _, ok := MakeMove(s, m); ok {
				t.Errorf("Illegal move %s was accepted on %s", m, s)
			}
		}

		s, _, _ = MakeRandomMove(s)
	}
}

func TestTermination(t *testing.T) {
	var s State = Start()
	for !IsOver(s) {
		if OutcomeOf(s) != ONGOING {
			t.Fatalf("Premature outcome %s on %s", OutcomeOf(s), s)
		}
		n, _, ok := MakeRandomMove(s)
		if !ok {
			t.Fatal("No move in a running game")
		}
		s = n
	}

	if len(ValidMoves(s)) != 0 {
		t.Errorf("Finished game still has moves: %v", ValidMoves(s))
	}
	if _, _, ok := MakeRandomMove(s); ok {
		t.Error("MakeRandomMove succeeded on a finished game")
	}

	outcome := OutcomeOf(s)
	p1, p2 := Score(s, Player1), Score(s, Player2)
	switch {
	case p1 > p2 && outcome != PLAYER1_WON,
		p2 > p1 && outcome != PLAYER2_WON,
		p1 == p2 && outcome != TIE:
		t.Errorf("Outcome %s does not match scores %d to %d",
			outcome, p1, p2)
	}
}

func TestMoveOrder(t *testing.T) {
	s, ok := MakeMovePit(Start(), 1)
	if !ok {
		t.Fatal("Opening move was rejected")
	}

	// Descending pit order with the swap last backs the search
	// tie-breaking; see ValidMoves.
	want := []Move{Pit(6), Pit(5), Pit(4), Pit(3), Pit(2), Pit(1), Swap}
	got := ValidMoves(s)
	if len(got) != len(want) {
		t.Fatalf("Unexpected move count: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Move %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
