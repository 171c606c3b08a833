// Lua evaluation tests
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
	"os"
	"path/filepath"
	"testing"

	mancala "go-mancala"

	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eval.lua")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestScriptStoreDiff(t *testing.T) {
	// A Lua rendition of the built-in store differential must agree
	// with it everywhere.
	sc, err := LoadScript(writeScript(t, `
function evaluate(stores, rows, turn, ply, player)
   local other = 3 - player
   return stores[player] - stores[other]
end
`))
	require.NoError(t, err)
	defer sc.Close()

	s := mancala.State(mancala.Start())
	for i := 0; i < 32 && !mancala.IsOver(s); i++ {
		for _, p := range []mancala.Player{mancala.Player1, mancala.Player2} {
			require.Equal(t, StoreDiff(s, p), sc.Eval(s, p),
				"script disagrees on %s", s)
		}
		s, _, _ = mancala.MakeRandomMove(s)
	}
}

func TestScriptAsHeuristic(t *testing.T) {
	sc, err := LoadScript(writeScript(t, `
function evaluate(stores, rows, turn, ply, player)
   return stores[player]
end
`))
	require.NoError(t, err)
	defer sc.Close()

	mm := NewBuilder().MaxDepth(2).Heuristic(sc.Eval).Build()
	_, ok := mm.Search(mancala.Start())
	require.True(t, ok)
}

func TestScriptErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadScript(filepath.Join(t.TempDir(), "no-such.lua"))
		require.Error(t, err)
	})

	t.Run("no evaluate", func(t *testing.T) {
		_, err := LoadScript(writeScript(t, `x = 1`))
		require.Error(t, err)
	})

	t.Run("not a function", func(t *testing.T) {
		_, err := LoadScript(writeScript(t, `evaluate = 42`))
		require.Error(t, err)
	})

	t.Run("runtime fault scores zero", func(t *testing.T) {
		sc, err := LoadScript(writeScript(t, `
function evaluate(stores, rows, turn, ply, player)
   error("boom")
end
`))
		require.NoError(t, err)
		defer sc.Close()
		require.Equal(t, 0.0, sc.Eval(mancala.Start(), mancala.Player1))
	})
}
