// Search configuration builder
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
	"time"

	mancala "go-mancala"
)

// Builder accumulates overrides on top of the default search
// configuration:
//
//   - optimize for Player 1
//   - depth limit 12, no time limit
//   - move order as enumerated by mancala.ValidMoves
//   - StoreDiff as both evaluator and heuristic
//
// No validation is performed beyond the type signatures; an evaluator
// or orderer that misbehaves is a caller error.
type Builder struct {
	mm Minimax
}

// NewBuilder returns a builder holding the default configuration.
func NewBuilder() *Builder {
	return &Builder{mm: Minimax{
		optimizeFor: mancala.Player1,
		maxDepth:    12,
		depthLimit:  true,
		orderer:     mancala.ValidMoves,
		evaluator:   StoreDiff,
		heuristic:   StoreDiff,
	}}
}

// Clone returns an independent copy of the builder.
func (b *Builder) Clone() *Builder {
	c := *b
	return &c
}

// OptimizeFor sets the player whose outcome the search maximises.
func (b *Builder) OptimizeFor(p mancala.Player) *Builder {
	b.mm.optimizeFor = p
	return b
}

// MaxDepth sets the depth cutoff.
func (b *Builder) MaxDepth(depth int) *Builder {
	b.mm.maxDepth = depth
	b.mm.depthLimit = true
	return b
}

// NoDepthLimit removes the depth cutoff.  Without a depth or time
// limit the search only terminates by exhausting the game tree, which
// may be intractable on large boards.
func (b *Builder) NoDepthLimit() *Builder {
	b.mm.depthLimit = false
	return b
}

// MaxTime sets the wall-clock budget per search invocation.  Zero
// removes the limit.
func (b *Builder) MaxTime(d time.Duration) *Builder {
	b.mm.maxTime = d
	return b
}

// MoveOrderer sets the move ordering function.  The order also acts
// as the tie-breaker: the first move reaching the best value wins.
func (b *Builder) MoveOrderer(o OrderFunc) *Builder {
	b.mm.orderer = o
	return b
}

// Evaluator sets the function applied to true terminal states.
func (b *Builder) Evaluator(e EvalFunc) *Builder {
	b.mm.evaluator = e
	return b
}

// Heuristic sets the function applied once the depth or time budget
// is exhausted at a non-terminal node.
func (b *Builder) Heuristic(h EvalFunc) *Builder {
	b.mm.heuristic = h
	return b
}

// Build returns the assembled search configuration.
func (b *Builder) Build() *Minimax {
	mm := b.mm
	return &mm
}
