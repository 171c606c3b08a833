// Parallel dataset generation
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
	"runtime"
	"sync"

	mancala "go-mancala"
	"go-mancala/minimax"
)

// walkRetries bounds how often a single walk depth may restart after
// landing on a terminal state.
const walkRetries = 64

// randomWalk plays n random moves from the opening position and
// returns the end state, which may be terminal.
func randomWalk(start mancala.State, n int) mancala.State {
	s := start
	for i := 0; i < n; i++ {
		next, _, ok := mancala.MakeRandomMove(s)
		if !ok {
			break
		}
		s = next
	}
	return s
}

// Generate produces maxMoves examples per run: each run random-walks
// 0, 1, ..., maxMoves-1 moves from the opening position and labels
// every reached state with the utility distribution of a search
// configured by b.  Walking zero moves labels the opening position
// itself.  Terminal states carry no move to label, so a walk that
// lands on one starts over; a walk depth that keeps landing on
// terminal states is eventually dropped, which only matters for
// degenerate boards.
//
// Runs are spread over the available CPUs.  The builder is cloned per
// example to set the optimized player, so b itself is not modified.
func Generate(b *minimax.Builder, start mancala.State, maxMoves, runs int) *Dataset {
	tasks := make(chan int)
	results := make(chan Example)

	var wg sync.WaitGroup
	for w := 0; w < runtime.NumCPU(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range tasks {
				for n := 0; n < maxMoves; n++ {
					for retry := 0; retry < walkRetries; retry++ {
						s := randomWalk(start, n)
						if mancala.IsOver(s) {
							continue
						}
						mm := b.Clone().OptimizeFor(s.Turn()).Build()
						utils, ok := mm.SearchUtilityAll(s)
						if !ok {
							continue
						}
						results <- NewExample(s, utils)
						break
					}
				}
			}
		}()
	}

	go func() {
		for i := 0; i < runs; i++ {
			tasks <- i
		}
		close(tasks)
		wg.Wait()
		close(results)
	}()

	d := &Dataset{}
	for e := range results {
		d.Examples = append(d.Examples, e)
	}
	return d
}
