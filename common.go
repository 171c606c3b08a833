// Common types
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

// Player identifies one of the two sides of the board.  Player1 moves
// first in a default game.
type Player uint8

const (
	Player1 Player = iota
	Player2
)

// Other returns the opposing player.
func (p Player) Other() Player {
	return 1 - p
}

// Number returns the conventional 1-based number of the player, as
// used by the terminal interface and the dataset encoding.
func (p Player) Number() int {
	return int(p) + 1
}

// PlayerFromNumber converts a 1-based player number back into a
// Player.
func PlayerFromNumber(n int) (Player, error) {
	switch n {
	case 1:
		return Player1, nil
	case 2:
		return Player2, nil
	default:
		return 0, fmt.Errorf("invalid player number %d", n)
	}
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	}
	panic("Illegal player")
}

// Move is either the swap move (0) or the selection of a pit,
// numbered 1 to Pits().  The numeric encoding is shared with the
// external agent protocol and the dataset format.
type Move int

// Swap mirrors the board between the players.  It is only legal for
// Player 2 on the second ply, see SwapAllowed.
const Swap Move = 0

// Pit returns the move that sows pit N, counting from 1.
func Pit(n int) Move {
	return Move(n)
}

// IsSwap returns true if the move is the swap move.
func (m Move) IsSwap() bool {
	return m == Swap
}

// PitNumber returns the 1-based pit number of a pit move, or 0 for
// the swap move.
func (m Move) PitNumber() int {
	return int(m)
}

func (m Move) String() string {
	if m.IsSwap() {
		return "SWAP"
	}
	return fmt.Sprintf("%d", int(m))
}

// Outcome describes the current result of a game.
type Outcome uint8

const (
	ONGOING Outcome = iota
	PLAYER1_WON
	PLAYER2_WON
	TIE
)

// Winner returns the outcome in which P has won.
func Winner(p Player) Outcome {
	if p == Player1 {
		return PLAYER1_WON
	}
	return PLAYER2_WON
}

// Winner returns the winning player, if there is one.
func (o Outcome) Winner() (Player, bool) {
	switch o {
	case PLAYER1_WON:
		return Player1, true
	case PLAYER2_WON:
		return Player2, true
	}
	return 0, false
}

func (o Outcome) String() string {
	switch o {
	case ONGOING:
		return "Ongoing"
	case PLAYER1_WON:
		return "Player 1 won"
	case PLAYER2_WON:
		return "Player 2 won"
	case TIE:
		return "Tie"
	default:
		panic(fmt.Sprintf("Illegal outcome: %d", o))
	}
}
