// Alpha-beta minimax search
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
	"fmt"
	"math"
	"time"

	mancala "go-mancala"
)

// EvalFunc scores a state from the point of view of a player.  Higher
// is better.
type EvalFunc func(s mancala.State, p mancala.Player) float64

// OrderFunc enumerates the legal moves of a state in the order the
// search should try them.  Every returned move must be legal.
type OrderFunc func(s mancala.State) []mancala.Move

// MoveValue pairs a move with the utility the search assigned to it.
type MoveValue struct {
	Move  mancala.Move
	Value float64
}

// StoreDiff is the default evaluator and heuristic: the store
// differential in favour of the given player.
func StoreDiff(s mancala.State, p mancala.Player) float64 {
	return float64(mancala.Score(s, p) - mancala.Score(s, p.Other()))
}

// Minimax is an immutable search configuration.  All per-invocation
// state lives in a search context local to each call, so a single
// instance may serve concurrent searches.
type Minimax struct {
	optimizeFor mancala.Player
	maxDepth    int
	depthLimit  bool
	maxTime     time.Duration
	orderer     OrderFunc
	evaluator   EvalFunc
	heuristic   EvalFunc
}

// OptimizeFor returns the player whose outcome the search maximises.
func (mm *Minimax) OptimizeFor() mancala.Player {
	return mm.optimizeFor
}

// MaxDepth returns the depth cutoff, if one is set.
func (mm *Minimax) MaxDepth() (int, bool) {
	return mm.maxDepth, mm.depthLimit
}

// MaxTime returns the time budget, if one is set.
func (mm *Minimax) MaxTime() (time.Duration, bool) {
	return mm.maxTime, mm.maxTime > 0
}

// Search returns the best move for the configured player, or false if
// the state has no legal moves.
func (mm *Minimax) Search(s mancala.State) (mancala.Move, bool) {
	m, _, ok := mm.SearchUtility(s)
	return m, ok
}

// SearchUtility returns the best move together with the utility that
// backs it, or false if the state has no legal moves.
func (mm *Minimax) SearchUtility(s mancala.State) (mancala.Move, float64, bool) {
	r := mm.start()
	return r.maxValue(s, math.Inf(-1), math.Inf(1), 0)
}

// SearchUtilityAll evaluates every legal root move to the full budget
// with pruning disabled at the root, yielding the complete utility
// distribution.  This costs about one extra search-width factor over
// Search.  It returns false if the root is terminal or the budget is
// exhausted before any child can be solved.
func (mm *Minimax) SearchUtilityAll(s mancala.State) ([]MoveValue, bool) {
	r := mm.start()
	if mancala.IsOver(s) || r.cutoff(0) {
		return nil, false
	}

	var out []MoveValue
	for _, m := range mm.orderer(s) {
		next := r.apply(s, m)
		var v float64
		if next.Turn() == s.Turn() {
			_, v, _ = r.maxValue(next, math.Inf(-1), math.Inf(1), 1)
		} else {
			_, v, _ = r.minValue(next, math.Inf(-1), math.Inf(1), 1)
		}
		out = append(out, MoveValue{Move: m, Value: v})
	}
	return out, true
}

// run is the per-call search context.  Keeping the deadline here
// instead of on the engine is what makes Minimax reentrant.
type run struct {
	mm       *Minimax
	deadline time.Time
}

func (mm *Minimax) start() *run {
	r := &run{mm: mm}
	if mm.maxTime > 0 {
		r.deadline = time.Now().Add(mm.maxTime)
	}
	return r
}

// cutoff reports whether the artificial budget is exhausted at a
// node.  The time check happens at node entry only; a node that has
// been entered runs to completion.
func (r *run) cutoff(depth int) bool {
	if r.mm.depthLimit && depth >= r.mm.maxDepth {
		return true
	}
	return !r.deadline.IsZero() && !time.Now().Before(r.deadline)
}

func (r *run) apply(s mancala.State, m mancala.Move) mancala.State {
	next, ok := mancala.MakeMove(s, m)
	if !ok {
		panic(fmt.Sprintf("Move orderer proposed illegal move %s for %s", m, s))
	}
	return next
}

// maxValue maximises the utility for a state.  The returned flag is
// false when no move was chosen, i.e. at terminal and cutoff nodes.
func (r *run) maxValue(s mancala.State, alpha, beta float64, depth int) (mancala.Move, float64, bool) {
	if mancala.IsOver(s) {
		return 0, r.mm.evaluator(s, r.mm.optimizeFor), false
	}
	if r.cutoff(depth) {
		return 0, r.mm.heuristic(s, r.mm.optimizeFor), false
	}

	depth++
	v := math.Inf(-1)
	var best mancala.Move
	found := false

	for _, m := range r.mm.orderer(s) {
		next := r.apply(s, m)
		var v2 float64
		// A bonus turn keeps the same player moving, so the
		// node role does not flip.
		if next.Turn() == s.Turn() {
			_, v2, _ = r.maxValue(next, alpha, beta, depth)
		} else {
			_, v2, _ = r.minValue(next, alpha, beta, depth)
		}

		// Strictly greater: on a tie the earliest move in the
		// search order is kept.
		if v2 > v {
			v = v2
			best = m
			found = true
			if v > alpha {
				alpha = v
			}
		}
		if v >= beta {
			return best, v, found
		}
	}

	return best, v, found
}

// minValue minimises the utility for a state.
func (r *run) minValue(s mancala.State, alpha, beta float64, depth int) (mancala.Move, float64, bool) {
	if mancala.IsOver(s) {
		return 0, r.mm.evaluator(s, r.mm.optimizeFor), false
	}
	if r.cutoff(depth) {
		return 0, r.mm.heuristic(s, r.mm.optimizeFor), false
	}

	depth++
	v := math.Inf(1)
	var best mancala.Move
	found := false

	for _, m := range r.mm.orderer(s) {
		next := r.apply(s, m)
		var v2 float64
		if next.Turn() == s.Turn() {
			_, v2, _ = r.minValue(next, alpha, beta, depth)
		} else {
			_, v2, _ = r.maxValue(next, alpha, beta, depth)
		}

		if v2 < v {
			v = v2
			best = m
			found = true
			if v < beta {
				beta = v
			}
		}
		if v <= alpha {
			return best, v, found
		}
	}

	return best, v, found
}
